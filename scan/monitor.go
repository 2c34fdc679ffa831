package scan

import (
	"time"

	"github.com/poiesic/filescout/core"
)

// Failure describes one recovered per-file failure. File is nil when the
// failure was not tied to a single candidate file, e.g. an unreadable
// directory during traversal; Path then names the location that failed.
type Failure struct {
	File  *core.FileRef
	Path  string
	Stage core.FailureStage
	Err   error
}

// Summary reports how a run ended and what it counted. The counts cover
// every emitted event, regardless of whether the observer materialized it.
type Summary struct {
	Status     core.RunStatus
	Tested     uint64
	Matched    uint64
	Exceptions uint64
	Elapsed    time.Duration
}

// Monitor receives progress events from an engine run.
//
// All methods are invoked synchronously from the traversal goroutine, in
// traversal order, once per event. A slow monitor throttles the whole run;
// that backpressure is intentional. Monitors that need to hand events to
// another execution context should do their own marshaling (see
// results.AsyncMonitor). Bounding storage is the monitor's responsibility:
// the engine emits every event unconditionally.
type Monitor interface {
	// RunStarted is called once before traversal with the resolved headers.
	RunStarted(headers []string)

	// FileTested is called exactly once per file examined, whatever the
	// match outcome.
	FileTested(file *core.FileRef)

	// FileMatched is called at most once per file, only when the condition
	// matched and every extraction succeeded. values is header-ordered and
	// covers the non-fixed columns.
	FileMatched(file *core.FileRef, values []string)

	// FileFailed is called once per recovered per-file failure. Failures
	// never suppress the corresponding FileTested call.
	FileFailed(failure *Failure)

	// RunFinished is called once after the run ends, including cancelled runs.
	RunFinished(summary Summary)
}

// noopMonitor is a no-op implementation of Monitor.
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) RunStarted(_ []string)                   {}
func (n *noopMonitor) FileTested(_ *core.FileRef)              {}
func (n *noopMonitor) FileMatched(_ *core.FileRef, _ []string) {}
func (n *noopMonitor) FileFailed(_ *Failure)                   {}
func (n *noopMonitor) RunFinished(_ Summary)                   {}

// Tee fans events out to several monitors, invoking them in the given order.
func Tee(monitors ...Monitor) Monitor {
	return teeMonitor(monitors)
}

type teeMonitor []Monitor

func (t teeMonitor) RunStarted(headers []string) {
	for _, m := range t {
		m.RunStarted(headers)
	}
}

func (t teeMonitor) FileTested(file *core.FileRef) {
	for _, m := range t {
		m.FileTested(file)
	}
}

func (t teeMonitor) FileMatched(file *core.FileRef, values []string) {
	for _, m := range t {
		m.FileMatched(file, values)
	}
}

func (t teeMonitor) FileFailed(failure *Failure) {
	for _, m := range t {
		m.FileFailed(failure)
	}
}

func (t teeMonitor) RunFinished(summary Summary) {
	for _, m := range t {
		m.RunFinished(summary)
	}
}
