package sink

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/meritsim/internal/domain/model"
)

const (
	directoryPermission = 0o755
	filePermission      = 0o644

	// SubmissionsFile and ActorsFile are the names written under the output directory.
	SubmissionsFile = "submissions.jsonl"
	ActorsFile      = "actors.jsonl"
)

// JSONL writes one JSON document per line into two files.
type JSONL struct {
	dir string
}

var _ Sink = (*JSONL)(nil)

// NewJSONL creates dir if needed.
func NewJSONL(dir string) (*JSONL, error) {
	if dir == "" {
		return nil, ErrEmptyPath
	}
	if err := os.MkdirAll(dir, directoryPermission); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &JSONL{dir: dir}, nil
}

// Name implements Sink.
func (j *JSONL) Name() string { return "jsonl" }

// Write implements Sink. Existing files are replaced.
func (j *JSONL) Write(ctx context.Context, actors []model.Actor, submissions []model.Submission) (err error) {
	start := time.Now()
	defer func() { observe(j.Name(), start, err) }()

	if err = writeLines(ctx, filepath.Join(j.dir, SubmissionsFile), submissions); err != nil {
		return err
	}
	return writeLines(ctx, filepath.Join(j.dir, ActorsFile), actors)
}

// Close implements Sink.
func (j *JSONL) Close() error { return nil }

func writeLines[T any](ctx context.Context, path string, items []T) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePermission)
	if err != nil {
		return fmt.Errorf("%w: failed to create file: %w", ErrWrite, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %w", ErrWrite, filepath.Base(path), cerr)
		}
	}()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := enc.Encode(&items[i]); err != nil {
			return fmt.Errorf("%w: line %d of %s: %w", ErrWrite, i, filepath.Base(path), err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: flush %s: %w", ErrWrite, filepath.Base(path), err)
	}
	return nil
}
