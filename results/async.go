package results

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/filescout/core"
	"github.com/poiesic/filescout/scan"
)

// AsyncMonitor decouples a monitor from the traversal goroutine. Events are
// handed to a single-worker pool, so the wrapped monitor still sees them in
// traversal order but no longer throttles the scan.
type AsyncMonitor struct {
	inner  scan.Monitor
	pool   *ants.Pool
	logger *slog.Logger
	wg     sync.WaitGroup
}

var _ scan.Monitor = (*AsyncMonitor)(nil)

// NewAsyncMonitor wraps inner so its callbacks run off the traversal goroutine.
func NewAsyncMonitor(inner scan.Monitor) (*AsyncMonitor, error) {
	if inner == nil {
		return nil, ErrNilMonitor
	}

	// A single worker keeps event order intact.
	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	return &AsyncMonitor{
		inner:  inner,
		pool:   pool,
		logger: slog.Default(),
	}, nil
}

// RunStarted forwards the event asynchronously.
func (a *AsyncMonitor) RunStarted(headers []string) {
	headers = slices.Clone(headers)
	a.submit(func() { a.inner.RunStarted(headers) })
}

// FileTested forwards the event asynchronously.
func (a *AsyncMonitor) FileTested(file *core.FileRef) {
	a.submit(func() { a.inner.FileTested(file) })
}

// FileMatched forwards the event asynchronously.
func (a *AsyncMonitor) FileMatched(file *core.FileRef, values []string) {
	values = slices.Clone(values)
	a.submit(func() { a.inner.FileMatched(file, values) })
}

// FileFailed forwards the event asynchronously.
func (a *AsyncMonitor) FileFailed(failure *scan.Failure) {
	a.submit(func() { a.inner.FileFailed(failure) })
}

// RunFinished forwards the event asynchronously.
func (a *AsyncMonitor) RunFinished(summary scan.Summary) {
	a.submit(func() { a.inner.RunFinished(summary) })
}

// Wait blocks until every event submitted so far has been delivered.
func (a *AsyncMonitor) Wait() {
	a.wg.Wait()
}

// Release drains pending events and releases the worker pool.
// The monitor should not be used after calling Release.
func (a *AsyncMonitor) Release() {
	a.wg.Wait()
	a.pool.Release()
}

func (a *AsyncMonitor) submit(fn func()) {
	a.wg.Add(1)
	err := a.pool.Submit(func() {
		defer a.wg.Done()
		fn()
	})
	if err != nil {
		a.wg.Done()
		a.logger.Error("error submitting monitor event", "err", err)
	}
}
