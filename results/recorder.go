package results

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/poiesic/filescout/core"
	"github.com/poiesic/filescout/scan"
	"github.com/poiesic/filescout/storage"
)

const defaultBatchSize = 64

// Recorder is a Monitor that persists a run and its rows to a repository.
//
// A run record is created on RunStarted and finalized on RunFinished; match
// and exception rows are written in batches along the way. Persistence
// failures do not surface into the scan: the first error is kept and all
// later writes are skipped, so a run summary is still produced. Check Err
// after the run.
type Recorder struct {
	repo      storage.RunRepository
	roots     []string
	query     string
	batchSize int
	logger    *slog.Logger

	mu                sync.Mutex
	run               *core.Run
	matchSeq          uint64
	exceptionSeq      uint64
	pendingMatches    []*core.MatchRecord
	pendingExceptions []*core.ExceptionRecord
	err               error
}

var _ scan.Monitor = (*Recorder)(nil)

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder) error

// WithBatchSize sets how many rows are buffered before being written.
// Default is 64.
func WithBatchSize(n int) RecorderOption {
	return func(r *Recorder) error {
		if n < 1 {
			return ErrInvalidBatchSize
		}
		r.batchSize = n
		return nil
	}
}

// WithRecorderLogger sets a custom logger.
// Default is slog.Default().
func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRecorder creates a new Recorder. roots and query describe the scan
// configuration and are stored on the run record.
func NewRecorder(repo storage.RunRepository, roots []string, query string, opts ...RecorderOption) (*Recorder, error) {
	if repo == nil {
		return nil, ErrNilRepository
	}

	r := &Recorder{
		repo:      repo,
		roots:     slices.Clone(roots),
		query:     query,
		batchSize: defaultBatchSize,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// RunStarted creates the run record.
func (r *Recorder) RunStarted(headers []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.run = nil
	r.matchSeq = 0
	r.exceptionSeq = 0
	r.pendingMatches = nil
	r.pendingExceptions = nil
	r.err = nil

	run, err := r.repo.AddRun(context.Background(), &core.Run{
		Roots:     slices.Clone(r.roots),
		Query:     r.query,
		Headers:   slices.Clone(headers),
		Status:    core.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	})
	if err != nil {
		r.fail(err)
		return
	}
	r.run = run
}

// FileTested is a no-op; tallies are taken from the final summary.
func (r *Recorder) FileTested(_ *core.FileRef) {}

// FileMatched buffers a match row.
func (r *Recorder) FileMatched(file *core.FileRef, values []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq := r.matchSeq
	r.matchSeq++

	if r.err != nil {
		return
	}

	r.pendingMatches = append(r.pendingMatches, &core.MatchRecord{
		Filename:   file.Name,
		Path:       file.Path(),
		Values:     slices.Clone(values),
		Seq:        seq,
		RecordedAt: time.Now().UTC(),
	})
	if len(r.pendingMatches) >= r.batchSize {
		r.flushMatches()
	}
}

// FileFailed buffers an exception row.
func (r *Recorder) FileFailed(failure *scan.Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq := r.exceptionSeq
	r.exceptionSeq++

	if r.err != nil {
		return
	}

	record := &core.ExceptionRecord{
		Path:       failure.Path,
		Stage:      failure.Stage,
		Message:    failure.Err.Error(),
		Seq:        seq,
		RecordedAt: time.Now().UTC(),
	}
	if failure.File != nil {
		record.Filename = failure.File.Name
	}

	r.pendingExceptions = append(r.pendingExceptions, record)
	if len(r.pendingExceptions) >= r.batchSize {
		r.flushExceptions()
	}
}

// RunFinished flushes buffered rows and finalizes the run record.
func (r *Recorder) RunFinished(summary scan.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return
	}

	r.flushMatches()
	r.flushExceptions()
	if r.err != nil {
		return
	}

	r.run.Status = summary.Status
	r.run.Tested = summary.Tested
	r.run.Matched = summary.Matched
	r.run.Exceptions = summary.Exceptions
	r.run.FinishedAt = time.Now().UTC()

	if err := r.repo.UpdateRun(context.Background(), r.run); err != nil {
		r.fail(err)
	}
}

// Run returns the persisted run record, or nil when none was created.
func (r *Recorder) Run() *core.Run {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.run
}

// Err returns the first persistence error, if any.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

// flushMatches writes buffered match rows. Must be called with lock held.
func (r *Recorder) flushMatches() {
	if r.err != nil || len(r.pendingMatches) == 0 {
		return
	}
	if err := r.repo.AddMatches(context.Background(), r.run.Id, r.pendingMatches...); err != nil {
		r.fail(err)
		return
	}
	r.pendingMatches = nil
}

// flushExceptions writes buffered exception rows. Must be called with lock held.
func (r *Recorder) flushExceptions() {
	if r.err != nil || len(r.pendingExceptions) == 0 {
		return
	}
	if err := r.repo.AddExceptions(context.Background(), r.run.Id, r.pendingExceptions...); err != nil {
		r.fail(err)
		return
	}
	r.pendingExceptions = nil
}

// fail records the first persistence error. Must be called with lock held.
func (r *Recorder) fail(err error) {
	if r.err != nil {
		return
	}
	r.err = err
	r.logger.Error("error persisting run results", "err", err)
}
