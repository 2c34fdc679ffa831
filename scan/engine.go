package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/poiesic/filescout/condition"
	"github.com/poiesic/filescout/core"
	"github.com/poiesic/filescout/fields"
)

// ActionFunc is the optional per-match side effect hook. It runs after the
// matched event for a file; a returned error is reported on the exception
// channel and never ends the run.
type ActionFunc func(file *core.FileRef, values []string) error

// Engine walks a root set, evaluates a condition against every file and
// extracts display values from matches, streaming tested, matched and
// exception events to a Monitor.
//
// Traversal is single-threaded and sequential per run; determinism of the
// event order is part of the contract. The engine may run on a goroutine
// distinct from the one issuing RequestStop or cancelling the context: both
// signals are checked at every file boundary. An in-flight single-file
// evaluation is never interrupted.
type Engine struct {
	roots   []string
	cond    condition.Condition
	sources []fields.Source
	headers []string
	monitor Monitor
	action  ActionFunc
	logger  *slog.Logger

	stopped atomic.Bool
	running atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine) error

// WithMonitor sets the progress observer. Default is a no-op monitor.
func WithMonitor(monitor Monitor) Option {
	return func(e *Engine) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		e.monitor = monitor
		return nil
	}
}

// WithAction sets the optional per-match action hook.
func WithAction(action ActionFunc) Option {
	return func(e *Engine) error {
		e.action = action
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// New creates an engine for one search configuration. The result schema is
// resolved here and fixed for the engine's lifetime; changing configuration
// mid-run is not possible.
func New(roots []string, cond condition.Condition, sources []fields.Source, opts ...Option) (*Engine, error) {
	if len(roots) == 0 {
		return nil, ErrNoRoots
	}
	if cond == nil {
		return nil, ErrConditionRequired
	}

	e := &Engine{
		roots:   append([]string(nil), roots...),
		cond:    cond,
		sources: append([]fields.Source(nil), sources...),
		headers: fields.ResolveHeaders(cond, sources),
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Headers returns the resolved column schema for this engine's runs. The
// consumer queries it before a run to build its result storage.
func (e *Engine) Headers() []string {
	return append([]string(nil), e.headers...)
}

// Condition returns a human-readable description of the configured condition.
func (e *Engine) Condition() string {
	return e.cond.String()
}

// RequestStop asks the engine to end the current run at the next file
// boundary. It is idempotent and sticky: once set it stays set for the life
// of the engine instance, so a fresh run needs a fresh engine or a Reset.
// Unlike context cancellation, a stop request expresses "stop but keep
// results"; the two signals are tracked independently.
func (e *Engine) RequestStop() {
	e.stopped.Store(true)
}

// StopRequested reports whether a stop has been requested.
func (e *Engine) StopRequested() bool {
	return e.stopped.Load()
}

// Reset clears a previous stop request so the engine can run again.
// It fails if a run is in flight.
func (e *Engine) Reset() error {
	if e.running.Load() {
		return ErrRunInProgress
	}
	e.stopped.Store(false)
	return nil
}

// Run traverses the root set and streams events until traversal completes or
// a stop/cancellation ends it early. Per-file failures are reported via the
// monitor and never abort the run; the returned error is non-nil only when
// Run is called while another run is in flight.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	if !e.running.CompareAndSwap(false, true) {
		return Summary{}, ErrRunInProgress
	}
	defer e.running.Store(false)

	start := time.Now()
	summary := Summary{Status: core.RunStatusCompleted}

	e.monitor.RunStarted(e.Headers())
	e.logger.Debug("run started", "roots", e.roots, "condition", e.cond.String())

	if e.interrupted(ctx) {
		// Cancelled before the first file: no tested/matched/exception events.
		summary.Status = core.RunStatusCancelled
	} else {
		w := &walker{roots: e.roots}
		err := w.walk(
			func(file *core.FileRef) error {
				if e.interrupted(ctx) {
					summary.Status = core.RunStatusCancelled
					return errWalkStop
				}
				e.process(file, &summary)
				return nil
			},
			func(path string, err error) {
				summary.Exceptions++
				e.monitor.FileFailed(&Failure{Path: path, Stage: core.StageTraverse, Err: err})
			},
		)
		if err != nil {
			// walk only propagates visit errors, and the visit above returns
			// nothing but errWalkStop, which walk swallows.
			e.logger.Error("traversal failed", "err", err)
		}
	}

	summary.Elapsed = time.Since(start)
	e.monitor.RunFinished(summary)
	e.logger.Debug("run finished",
		"status", summary.Status.String(),
		"tested", summary.Tested,
		"matched", summary.Matched,
		"exceptions", summary.Exceptions,
		"elapsed", summary.Elapsed)

	return summary, nil
}

// interrupted reports whether either termination signal is set. Polled at
// every file boundary.
func (e *Engine) interrupted(ctx context.Context) bool {
	return ctx.Err() != nil || e.stopped.Load()
}

// process handles a single candidate file: condition evaluation, the tested
// event, extraction and the matched event, funnelling every failure through
// the exception channel.
func (e *Engine) process(file *core.FileRef, summary *Summary) {
	outcome, evalErr := e.cond.Evaluate(file)
	if evalErr != nil {
		// Evaluation failures leave the file unmatched; the scan continues.
		summary.Exceptions++
		e.monitor.FileFailed(&Failure{
			File:  file,
			Path:  file.Path(),
			Stage: core.StageEvaluate,
			Err:   evalErr,
		})
	}

	summary.Tested++
	e.monitor.FileTested(file)

	if evalErr != nil || !outcome.Matched {
		return
	}

	values, extractErr := e.extract(file, outcome)
	if extractErr != nil {
		// The tested event already counted; only the matched event is lost.
		summary.Exceptions++
		e.monitor.FileFailed(&Failure{
			File:  file,
			Path:  file.Path(),
			Stage: core.StageExtract,
			Err:   extractErr,
		})
		return
	}

	summary.Matched++
	e.monitor.FileMatched(file, values)

	if e.action != nil {
		if err := e.action(file, values); err != nil {
			summary.Exceptions++
			e.monitor.FileFailed(&Failure{
				File:  file,
				Path:  file.Path(),
				Stage: core.StageAction,
				Err:   err,
			})
		}
	}
}

// extract builds the header-ordered value sequence for a matched file:
// capture columns in declaration order, then each source's values in
// configuration order.
func (e *Engine) extract(file *core.FileRef, outcome condition.Outcome) ([]string, error) {
	values := make([]string, 0, len(e.headers)-2)

	used := make([]bool, len(outcome.Captures))
	for _, name := range e.cond.CaptureNames() {
		v := ""
		for i, c := range outcome.Captures {
			if !used[i] && c.Name == name {
				v = c.Value
				used[i] = true
				break
			}
		}
		values = append(values, v)
	}

	for _, source := range e.sources {
		out, err := source.Extract(file)
		if err != nil {
			return nil, err
		}
		if len(out) != len(source.Headers()) {
			return nil, fmt.Errorf("%w: source %v returned %d values for %d headers",
				ErrValueArity, source.Headers(), len(out), len(source.Headers()))
		}
		values = append(values, out...)
	}

	return values, nil
}
