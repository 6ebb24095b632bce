// Package sampler draws categorical selections and descriptive details for
// synthetic submissions.
//
// The static path picks one option per dimension of the rule table. When a
// form is supplied for the category, its questions are the source instead.
// Either way, a selection is only ever drawn from its governing source.
package sampler

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/okian/meritsim/internal/domain/draw"
	"github.com/okian/meritsim/internal/domain/model"
	"github.com/okian/meritsim/internal/domain/rules"
	"github.com/okian/meritsim/internal/domain/schema"
)

const (
	defaultOptionalFieldRate = 0.7
	proofSuffixMin           = 100_000_000
	proofSuffixMax           = 999_999_999
)

// Option applies a configuration option to the Sampler.
type Option func(*Sampler)

// WithOptionalFieldRate sets the chance each optional form field is filled.
func WithOptionalFieldRate(p float64) Option {
	return func(s *Sampler) {
		if p >= 0 && p <= 1 {
			s.optionalRate = p
		}
	}
}

// WithEventNames overrides the event name catalogue for a category.
func WithEventNames(category model.Category, names []string) Option {
	return func(s *Sampler) {
		if len(names) > 0 {
			s.events[category] = append([]string(nil), names...)
		}
	}
}

// Sampler is stateless apart from configuration; randomness comes from the
// caller's stream so one Sampler can serve many goroutines.
type Sampler struct {
	table        *rules.Table
	optionalRate float64
	events       map[model.Category][]string
}

// New returns a sampler over the static table.
func New(table *rules.Table, opts ...Option) *Sampler {
	s := &Sampler{
		table:        table,
		optionalRate: defaultOptionalFieldRate,
		events:       defaultEventNames(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample draws one option per dimension. With a nil form the static table
// governs; an undeclared category then fails with *rules.UnknownOptionError.
func (s *Sampler) Sample(r *rand.Rand, category model.Category, form *schema.Form) (model.Selections, error) {
	if form != nil {
		out := make(model.Selections, 0, len(form.CustomQuestions))
		for _, q := range form.CustomQuestions {
			out = append(out, model.Selection{Dimension: q.ID, Option: draw.Uniform(r, q.Options)})
		}
		return out, nil
	}

	dims := s.table.Dimensions(category)
	if dims == nil {
		return nil, &rules.UnknownOptionError{Category: category}
	}
	out := make(model.Selections, 0, len(dims))
	for _, d := range dims {
		out = append(out, model.Selection{Dimension: d.Name, Option: draw.Uniform(r, d.Options).Name})
	}
	return out, nil
}

// Details holds the descriptive, unscored parts of a submission.
type Details struct {
	EventName      string
	Description    string
	OptionalFields map[string]string
	ProofURLs      []string
	PDFDocument    string
}

// Describe draws an event name plus optional fields and proofs. Without a
// form, one proof link and one certificate PDF are attached.
func (s *Sampler) Describe(r *rand.Rand, category model.Category, form *schema.Form, at time.Time) Details {
	name := s.eventName(r, category)
	d := Details{
		EventName:   name,
		Description: "Participated in " + name,
	}

	if form == nil {
		d.ProofURLs = []string{"https://drive.google.com/proof/" + draw.UUID(r)}
		d.PDFDocument = "certificate_" + draw.UUID(r) + ".pdf"
		return d
	}

	for _, field := range form.OptionalFields {
		if r.Float64() >= s.optionalRate {
			continue
		}
		if d.OptionalFields == nil {
			d.OptionalFields = make(map[string]string, len(form.OptionalFields))
		}
		d.OptionalFields[field] = optionalValue(r, field)
	}

	pc := form.ProofConfig
	if pc.RequireCertificateImage {
		n := 1
		if pc.AllowMultipleCertificates && pc.MaxCertificateSize > 1 {
			n = draw.IntBetween(r, 1, pc.MaxCertificateSize)
		}
		for i := 0; i < n; i++ {
			d.ProofURLs = append(d.ProofURLs, fmt.Sprintf("/uploads/certificates/certificateImages-%d-%d.jpeg",
				at.Unix(), draw.IntBetween(r, proofSuffixMin, proofSuffixMax)))
		}
	}
	if pc.RequirePDFProof {
		d.PDFDocument = fmt.Sprintf("/uploads/documents/pdfDocument-%d-%d.pdf",
			at.Unix(), draw.IntBetween(r, proofSuffixMin, proofSuffixMax))
	}
	return d
}

func (s *Sampler) eventName(r *rand.Rand, category model.Category) string {
	names := s.events[category]
	if len(names) == 0 {
		return string(category) + " Event"
	}
	return draw.Uniform(r, names)
}

func optionalValue(r *rand.Rand, field string) string {
	switch field {
	case "teamName":
		return "Team " + draw.Uniform(r, teamColors)
	case "eventLocation":
		return draw.Uniform(r, []string{"College Campus", "Online", "Convention Center"})
	case "certificateLink":
		return "https://certificates.example.com/" + draw.UUID(r)
	case "publicationLink":
		return "https://doi.org/10.1234/" + strings.ReplaceAll(draw.UUID(r), "-", "")[:8]
	case "githubRepoUrl":
		return "https://github.com/user/" + draw.Uniform(r, repoWords) + "-" + draw.Uniform(r, repoWords)
	case "organizationName":
		return draw.Uniform(r, organizations)
	case "role":
		return draw.Uniform(r, []string{"Leader", "Coordinator", "Organizer", "Member"})
	case "sportName":
		return draw.Uniform(r, []string{"Cricket", "Football", "Basketball", "Tennis", "Athletics"})
	default:
		return ""
	}
}
