// Package report summarises a generation run.
package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/gowebpki/jcs"
	"gopkg.in/yaml.v3"

	"github.com/okian/meritsim/internal/adapters/leaderboard"
	"github.com/okian/meritsim/internal/domain/model"
)

// StatusCount is the share of one workflow state.
type StatusCount struct {
	Status  model.Status `json:"status" yaml:"status"`
	Count   int          `json:"count" yaml:"count"`
	Percent float64      `json:"percent" yaml:"percent"`
}

// CategoryStats aggregates the submissions of one category.
type CategoryStats struct {
	Category    model.Category `json:"category" yaml:"category"`
	Submissions int            `json:"submissions" yaml:"submissions"`
	Approved    int            `json:"approved" yaml:"approved"`
	RawPoints   int            `json:"rawPoints" yaml:"rawPoints"`
	Payout      int            `json:"payout" yaml:"payout"`
}

// Report is the summary of one run.
type Report struct {
	Policy             string              `json:"policy" yaml:"policy"`
	Seed               int64               `json:"seed" yaml:"seed"`
	Actors             int                 `json:"actors" yaml:"actors"`
	ActiveActors       int                 `json:"activeActors" yaml:"activeActors"`
	Submissions        int                 `json:"submissions" yaml:"submissions"`
	TotalPayout        int                 `json:"totalPayout" yaml:"totalPayout"`
	Achievements       int                 `json:"achievements" yaml:"achievements"`
	SkippedActors      int                 `json:"skippedActors" yaml:"skippedActors"`
	SkippedSubmissions int                 `json:"skippedSubmissions" yaml:"skippedSubmissions"`
	Statuses           []StatusCount       `json:"statuses" yaml:"statuses"`
	Categories         []CategoryStats     `json:"categories" yaml:"categories"`
	Leaderboard        []leaderboard.Entry `json:"leaderboard" yaml:"leaderboard"`
	Digest             string              `json:"digest" yaml:"digest"`
}

// Input carries what a report is built from.
type Input struct {
	Policy             string
	Seed               int64
	Actors             []model.Actor
	Submissions        []model.Submission
	SkippedActors      int
	SkippedSubmissions int
	TopN               int
}

// Build summarises a run.
func Build(ctx context.Context, in Input) (*Report, error) {
	rep := &Report{
		Policy:             in.Policy,
		Seed:               in.Seed,
		Actors:             len(in.Actors),
		Submissions:        len(in.Submissions),
		SkippedActors:      in.SkippedActors,
		SkippedSubmissions: in.SkippedSubmissions,
	}

	statuses := map[model.Status]int{}
	categories := map[model.Category]*CategoryStats{}
	for i := range in.Submissions {
		s := &in.Submissions[i]
		statuses[s.Status]++
		rep.TotalPayout += s.Payout

		c, ok := categories[s.Category]
		if !ok {
			c = &CategoryStats{Category: s.Category}
			categories[s.Category] = c
		}
		c.Submissions++
		c.RawPoints += s.RawPoints
		c.Payout += s.Payout
		if s.Status == model.StatusApproved {
			c.Approved++
		}
	}

	for _, st := range model.Statuses() {
		sc := StatusCount{Status: st, Count: statuses[st]}
		if rep.Submissions > 0 {
			sc.Percent = 100 * float64(sc.Count) / float64(rep.Submissions)
		}
		rep.Statuses = append(rep.Statuses, sc)
	}

	for _, c := range categories {
		rep.Categories = append(rep.Categories, *c)
	}
	sort.Slice(rep.Categories, func(i, j int) bool {
		return rep.Categories[i].Category < rep.Categories[j].Category
	})

	for i := range in.Actors {
		if len(in.Actors[i].Submissions) > 0 {
			rep.ActiveActors++
		}
		rep.Achievements += len(in.Actors[i].Achievements)
	}

	if in.TopN > 0 && len(in.Actors) > 0 {
		board := leaderboard.NewBoard()
		if err := leaderboard.Load(ctx, board, in.Actors); err != nil {
			return nil, err
		}
		top, err := board.TopN(ctx, in.TopN)
		if err != nil {
			return nil, err
		}
		rep.Leaderboard = top
	}

	digest, err := Digest(in.Submissions)
	if err != nil {
		return nil, err
	}
	rep.Digest = digest
	return rep, nil
}

// Digest returns the hex SHA-256 of the RFC 8785 canonical JSON of v.
// Equal digests mean byte-identical output.
func Digest(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDigest, err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDigest, err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Write renders the report as "text", "json" or "yaml".
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case "", "text":
		return r.writeText(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (r *Report) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "policy\t%s\n", r.Policy)
	fmt.Fprintf(tw, "seed\t%d\n", r.Seed)
	fmt.Fprintf(tw, "actors\t%d (%d active, %d skipped)\n", r.Actors, r.ActiveActors, r.SkippedActors)
	fmt.Fprintf(tw, "submissions\t%d (%d skipped)\n", r.Submissions, r.SkippedSubmissions)
	fmt.Fprintf(tw, "total payout\t%d\n", r.TotalPayout)
	fmt.Fprintf(tw, "achievements\t%d\n", r.Achievements)
	fmt.Fprintf(tw, "digest\t%s\n\n", r.Digest)

	fmt.Fprintln(tw, "STATUS\tCOUNT\tPERCENT")
	for _, s := range r.Statuses {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", s.Status, s.Count, s.Percent)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "CATEGORY\tSUBMISSIONS\tAPPROVED\tRAW\tPAYOUT")
	for _, c := range r.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", c.Category, c.Submissions, c.Approved, c.RawPoints, c.Payout)
	}

	if len(r.Leaderboard) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "RANK\tACTOR\tNAME\tPOINTS\tACHIEVEMENTS")
		for _, e := range r.Leaderboard {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", e.Rank, e.ActorID, e.Name, e.Points, e.Achievements)
		}
	}
	return tw.Flush()
}
