package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/meritsim/internal/domain/model"

	_ "modernc.org/sqlite"
)

var schemaStatements = []string{ //nolint:gochecknoglobals // DDL
	`CREATE TABLE IF NOT EXISTS actors (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		group_id TEXT NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		tier TEXT NOT NULL DEFAULT '',
		total_points INTEGER NOT NULL,
		submissions TEXT NOT NULL,
		achievements TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		submitter_id TEXT NOT NULL,
		reviewer_id TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		selections TEXT NOT NULL,
		event_name TEXT NOT NULL,
		description TEXT NOT NULL,
		event_date TEXT NOT NULL,
		raw_points INTEGER NOT NULL,
		status TEXT NOT NULL,
		payout INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		resolved_at TEXT NOT NULL,
		optional_fields TEXT,
		proof_urls TEXT,
		pdf_document TEXT NOT NULL DEFAULT '',
		form_driven INTEGER NOT NULL
	)`,
}

const (
	insertActor = `INSERT OR REPLACE INTO actors
		(id, name, group_id, department, tier, total_points, submissions, achievements)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	insertSubmission = `INSERT OR REPLACE INTO submissions
		(id, submitter_id, reviewer_id, category, selections, event_name, description, event_date,
		 raw_points, status, payout, created_at, resolved_at, optional_fields, proof_urls, pdf_document, form_driven)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// SQLite bulk inserts a run in a single transaction.
type SQLite struct {
	db *sql.DB
}

var _ Sink = (*SQLite)(nil)

// OpenSQLite opens or creates the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite serialises writers.
	db.SetMaxOpenConns(1)

	s, err := NewSQLite(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLite wraps an open database and creates the tables.
func NewSQLite(ctx context.Context, db *sql.DB) (*SQLite, error) {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &SQLite{db: db}, nil
}

// Name implements Sink.
func (s *SQLite) Name() string { return "sqlite" }

// Write implements Sink. Nothing is kept when any row fails.
func (s *SQLite) Write(ctx context.Context, actors []model.Actor, submissions []model.Submission) (err error) {
	start := time.Now()
	defer func() { observe(s.Name(), start, err) }()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i := range actors {
		if err = insertActorRow(ctx, tx, &actors[i]); err != nil {
			return err
		}
	}
	for i := range submissions {
		if err = insertSubmissionRow(ctx, tx, &submissions[i]); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrWrite, err)
	}
	return nil
}

// Close implements Sink.
func (s *SQLite) Close() error { return s.db.Close() }

func insertActorRow(ctx context.Context, tx *sql.Tx, a *model.Actor) error {
	subs, err := jsonText(a.Submissions, "[]")
	if err != nil {
		return err
	}
	achievements, err := jsonText(a.Achievements, "[]")
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insertActor,
		a.ID, a.Name, a.GroupID, a.Department, a.Tier, a.TotalPoints, subs, achievements,
	); err != nil {
		return fmt.Errorf("%w: actor %s: %w", ErrWrite, a.ID, err)
	}
	return nil
}

func insertSubmissionRow(ctx context.Context, tx *sql.Tx, s *model.Submission) error {
	selections, err := jsonText(s.Selections, "{}")
	if err != nil {
		return err
	}
	optional, err := jsonText(s.OptionalFields, "{}")
	if err != nil {
		return err
	}
	proofs, err := jsonText(s.ProofURLs, "[]")
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insertSubmission,
		s.ID, s.SubmitterID, s.ReviewerID, string(s.Category), selections, s.EventName, s.Description,
		timestamp(s.EventDate), s.RawPoints, string(s.Status), s.Payout,
		timestamp(s.CreatedAt), timestamp(s.ResolvedAt), optional, proofs, s.PDFDocument, s.FormDriven,
	); err != nil {
		return fmt.Errorf("%w: submission %s: %w", ErrWrite, s.ID, err)
	}
	return nil
}

func jsonText[T any](v T, empty string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: encode column: %w", ErrWrite, err)
	}
	if string(b) == "null" {
		return empty, nil
	}
	return string(b), nil
}

func timestamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }
