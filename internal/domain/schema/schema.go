// Package schema loads per-category form configurations. When a form exists
// for a category, attribute sampling draws from the form's questions instead
// of the static rule table.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/okian/meritsim/internal/domain/model"
)

//go:embed form.schema.json
var formSchemaJSON []byte

const formSchemaURL = "https://meritsim.local/schema/forms.schema.json"

var (
	compileOnce sync.Once //nolint:gochecknoglobals // compiled once per process
	compiled    *jsonschema.Schema
	compileErr  error
)

// Question is one categorical question of a form.
type Question struct {
	ID      string   `json:"id"`
	Label   string   `json:"label,omitempty"`
	Options []string `json:"options"`
}

// ProofConfig controls which proof artifacts a submission carries.
type ProofConfig struct {
	RequireCertificateImage   bool `json:"requireCertificateImage"`
	RequirePDFProof           bool `json:"requirePdfProof"`
	AllowMultipleCertificates bool `json:"allowMultipleCertificates"`
	MaxCertificateSize        int  `json:"maxCertificateSize"`
}

// Form is the configuration for one category.
type Form struct {
	Category        model.Category `json:"category"`
	CustomQuestions []Question     `json:"customQuestions"`
	OptionalFields  []string       `json:"optionalFields,omitempty"`
	ProofConfig     ProofConfig    `json:"proofConfig"`
}

// Source resolves forms by category. A nil *Source has no forms.
type Source struct {
	order []model.Category
	forms map[model.Category]*Form
}

// Parse validates a JSON array of forms against the embedded JSON Schema and
// indexes it. Duplicate categories and duplicate question IDs are rejected.
func Parse(data []byte) (*Source, error) {
	sch, err := formSchema()
	if err != nil {
		return nil, err
	}
	var doc any
	raw := json.NewDecoder(bytes.NewReader(data))
	raw.UseNumber()
	if err := raw.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	var forms []Form
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&forms); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}

	s := &Source{forms: make(map[model.Category]*Form, len(forms))}
	for i := range forms {
		f := forms[i]
		if _, dup := s.forms[f.Category]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidSchema, f.Category)
		}
		seen := make(map[string]bool, len(f.CustomQuestions))
		for _, q := range f.CustomQuestions {
			if seen[q.ID] {
				return nil, fmt.Errorf("%w: %s repeats question %q", ErrInvalidSchema, f.Category, q.ID)
			}
			seen[q.ID] = true
		}
		if f.ProofConfig.MaxCertificateSize == 0 {
			f.ProofConfig.MaxCertificateSize = 1
		}
		s.order = append(s.order, f.Category)
		s.forms[f.Category] = &f
	}
	return s, nil
}

// LoadFile reads and parses a forms file.
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadSchema, err)
	}
	return Parse(data)
}

// Form returns the form for category, or *MissingCategoryConfigError.
func (s *Source) Form(category model.Category) (*Form, error) {
	if s != nil {
		if f, ok := s.forms[category]; ok {
			return f, nil
		}
	}
	return nil, &MissingCategoryConfigError{Category: category}
}

// Categories returns the configured categories in file order.
func (s *Source) Categories() []model.Category {
	if s == nil {
		return nil
	}
	return append([]model.Category(nil), s.order...)
}

func formSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(formSchemaURL, bytes.NewReader(formSchemaJSON)); err != nil {
			compileErr = fmt.Errorf("form schema load failed: %w", err)
			return
		}
		compiled, compileErr = c.Compile(formSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("form schema compile failed: %w", compileErr)
		}
	})
	return compiled, compileErr
}
