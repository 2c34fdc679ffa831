package storage

import (
	"context"

	"github.com/poiesic/filescout/core"
)

// RunRepository provides operations for persisting scan runs and their
// result rows. Implementations must be thread-safe and support concurrent
// access.
type RunRepository interface {
	// AddRun adds a run to storage, assigning Id from a sequence and
	// setting StartedAt if unset. Returns the run with the Id populated.
	AddRun(ctx context.Context, run *core.Run) (*core.Run, error)

	// UpdateRun overwrites an existing run.
	// Returns ErrNotFound if the run doesn't exist.
	UpdateRun(ctx context.Context, run *core.Run) error

	// GetRun retrieves a single run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	GetRun(ctx context.Context, id core.ID) (*core.Run, error)

	// ListRuns retrieves up to limit runs, most recently started first.
	// limit <= 0 means no limit.
	ListRuns(ctx context.Context, limit int) ([]*core.Run, error)

	// DeleteRun removes a run together with its match and exception rows.
	// Returns ErrNotFound if the run doesn't exist.
	DeleteRun(ctx context.Context, id core.ID) error

	// AddMatches appends match rows to a run. RunId is set from runID and
	// Id is assigned from a sequence.
	AddMatches(ctx context.Context, runID core.ID, records ...*core.MatchRecord) error

	// GetMatches retrieves up to limit match rows of a run in insertion
	// (traversal) order. limit <= 0 means no limit.
	GetMatches(ctx context.Context, runID core.ID, limit int) ([]*core.MatchRecord, error)

	// AddExceptions appends exception rows to a run.
	AddExceptions(ctx context.Context, runID core.ID, records ...*core.ExceptionRecord) error

	// GetExceptions retrieves up to limit exception rows of a run in
	// insertion order. limit <= 0 means no limit.
	GetExceptions(ctx context.Context, runID core.ID, limit int) ([]*core.ExceptionRecord, error)

	// Close closes the repository and releases resources.
	Close() error
}
