// Package model contains the domain entities passed between layers:
// actors, their submissions, and the categorical selections that get scored.
package model

import (
	"fmt"
	"time"
)

// Category names a kind of activity a submission can claim.
type Category string

// Built-in categories.
const (
	Hackathon          Category = "Hackathon"
	CodingCompetitions Category = "Coding Competitions"
	OpenSource         Category = "Open Source"
	Research           Category = "Research"
	Certifications     Category = "Certifications"
	NCCNSSYRC          Category = "NCC_NSS_YRC"
	Sports             Category = "Sports"
	Workshops          Category = "Workshops"
	StudentLeadership  Category = "Student Leadership"
	SocialWork         Category = "Social Work & Community Impact"
)

// DefaultCategories returns the built-in categories in declaration order.
func DefaultCategories() []Category {
	return []Category{
		Hackathon, CodingCompetitions, OpenSource, Research, Certifications,
		NCCNSSYRC, Sports, Workshops, StudentLeadership, SocialWork,
	}
}

// Status is the approval state of a submission.
type Status string

// Workflow states. Pending is initial; the others are terminal.
const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Statuses lists every state in draw order.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected}
}

// Terminal reports whether the status ends the workflow.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Selection is one chosen option for one dimension.
type Selection struct {
	Dimension string `json:"dimension"`
	Option    string `json:"option"`
}

// Selections holds one option per dimension, in sampling order.
type Selections []Selection

// Get returns the option picked for dim.
func (s Selections) Get(dim string) (string, bool) {
	for _, sel := range s {
		if sel.Dimension == dim {
			return sel.Option, true
		}
	}
	return "", false
}

// Achievement marks a high-value approved submission on an actor's profile.
type Achievement struct {
	SubmissionID string    `json:"id"`
	Title        string    `json:"title"`
	Points       int       `json:"points"`
	Date         time.Time `json:"date"`
}

// Actor is a participant who files submissions.
type Actor struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	GroupID      string        `json:"groupId"`
	Department   string        `json:"department,omitempty"`
	Tier         string        `json:"tier,omitempty"`
	TotalPoints  int           `json:"totalPoints"`
	Submissions  []string      `json:"submissions"`
	Achievements []Achievement `json:"achievements"`
}

// Submission is a single claim with its score and workflow outcome.
type Submission struct {
	ID             string            `json:"id"`
	SubmitterID    string            `json:"submitterId"`
	ReviewerID     string            `json:"reviewerId,omitempty"`
	Category       Category          `json:"category"`
	Selections     Selections        `json:"selections"`
	EventName      string            `json:"eventName"`
	Description    string            `json:"description"`
	EventDate      time.Time         `json:"eventDate"`
	RawPoints      int               `json:"rawPoints"`
	Status         Status            `json:"status"`
	Payout         int               `json:"payout"`
	CreatedAt      time.Time         `json:"createdAt"`
	ResolvedAt     time.Time         `json:"resolvedAt"`
	OptionalFields map[string]string `json:"optionalFields,omitempty"`
	ProofURLs      []string          `json:"proofUrls,omitempty"`
	PDFDocument    string            `json:"pdfDocument,omitempty"`
	FormDriven     bool              `json:"formDriven"`
}

// Check verifies the payout and reviewer rules for a single submission.
func (s *Submission) Check() error {
	switch s.Status {
	case StatusApproved:
		if s.Payout != s.RawPoints {
			return fmt.Errorf("%w: approved submission %s pays %d of %d", ErrInconsistent, s.ID, s.Payout, s.RawPoints)
		}
	case StatusPending, StatusRejected:
		if s.Payout != 0 {
			return fmt.Errorf("%w: %s submission %s pays %d", ErrInconsistent, s.Status, s.ID, s.Payout)
		}
	default:
		return fmt.Errorf("%w: submission %s has unknown status %q", ErrInconsistent, s.ID, s.Status)
	}
	if s.Status.Terminal() && s.ReviewerID == "" {
		return fmt.Errorf("%w: resolved submission %s has no reviewer", ErrInconsistent, s.ID)
	}
	if !s.Status.Terminal() && s.ReviewerID != "" {
		return fmt.Errorf("%w: pending submission %s has a reviewer", ErrInconsistent, s.ID)
	}
	if !s.Status.Terminal() && !s.ResolvedAt.Equal(s.CreatedAt) {
		return fmt.Errorf("%w: pending submission %s was resolved", ErrInconsistent, s.ID)
	}
	return nil
}

// Credit appends s to the actor and adds its payout to the running total.
func (a *Actor) Credit(s *Submission) {
	a.Submissions = append(a.Submissions, s.ID)
	a.TotalPoints += s.Payout
}
