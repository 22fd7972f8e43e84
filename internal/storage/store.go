package storage

import (
	"context"
	"errors"
	"time"

	"guidelint/internal/diagnostic"
)

// ErrNoRuns is returned by LatestRun on an empty history.
var ErrNoRuns = errors.New("no runs recorded")

// Run is one recorded check.
type Run struct {
	ID          int64     `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	Roots       []string  `json:"roots"`
	Files       int       `json:"files"`
	Diagnostics int       `json:"diagnostics"`
	Errors      int       `json:"errors"`
}

// Store persists check runs and their diagnostics.
type Store interface {
	RunStore
	Close() error
}

// RunStore defines operations for the run history.
type RunStore interface {
	// SaveRun records run and its diagnostics and returns the new run id.
	SaveRun(ctx context.Context, run Run, diags []diagnostic.Diagnostic) (int64, error)

	// Runs lists recorded runs, newest first.
	Runs(ctx context.Context) ([]Run, error)

	// LatestRun returns the newest run or ErrNoRuns.
	LatestRun(ctx context.Context) (Run, error)

	// Diagnostics returns the diagnostics of a run in report order.
	Diagnostics(ctx context.Context, runID int64) ([]diagnostic.Diagnostic, error)
}
