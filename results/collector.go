package results

import (
	"slices"
	"sync"

	"github.com/poiesic/filescout/core"
	"github.com/poiesic/filescout/scan"
)

// Row is one matched file together with its header-ordered extracted values.
type Row struct {
	Filename string
	Path     string
	Values   []string
}

// Exception is one recovered per-file failure. Filename is empty when the
// failure was not tied to a single file.
type Exception struct {
	Filename string
	Path     string
	Stage    core.FailureStage
	Message  string
}

// Collector is a Monitor that accumulates rows and exceptions in memory.
//
// Storage is bounded: once a cap is reached further rows are discarded,
// while the counters keep advancing so the final tallies still describe
// the whole run.
type Collector struct {
	maxRows       int
	maxExceptions int

	mu         sync.Mutex
	headers    []string
	rows       []Row
	exceptions []Exception
	tested     uint64
	matched    uint64
	failed     uint64
	summary    *scan.Summary
}

var _ scan.Monitor = (*Collector)(nil)

// CollectorOption configures a Collector.
type CollectorOption func(*Collector) error

// WithMaxRows caps how many match rows are kept. Zero means unlimited.
func WithMaxRows(n int) CollectorOption {
	return func(c *Collector) error {
		if n < 0 {
			return ErrInvalidLimit
		}
		c.maxRows = n
		return nil
	}
}

// WithMaxExceptions caps how many exception rows are kept. Zero means unlimited.
func WithMaxExceptions(n int) CollectorOption {
	return func(c *Collector) error {
		if n < 0 {
			return ErrInvalidLimit
		}
		c.maxExceptions = n
		return nil
	}
}

// NewCollector creates a new Collector.
func NewCollector(opts ...CollectorOption) (*Collector, error) {
	c := &Collector{}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// RunStarted resets the collector for a fresh run.
func (c *Collector) RunStarted(headers []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.headers = slices.Clone(headers)
	c.rows = nil
	c.exceptions = nil
	c.tested = 0
	c.matched = 0
	c.failed = 0
	c.summary = nil
}

// FileTested counts an examined file.
func (c *Collector) FileTested(_ *core.FileRef) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tested++
}

// FileMatched records a match row, unless the row cap has been reached.
func (c *Collector) FileMatched(file *core.FileRef, values []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.matched++
	if c.maxRows > 0 && len(c.rows) >= c.maxRows {
		return
	}
	c.rows = append(c.rows, Row{
		Filename: file.Name,
		Path:     file.Path(),
		Values:   slices.Clone(values),
	})
}

// FileFailed records an exception row, unless the exception cap has been reached.
func (c *Collector) FileFailed(failure *scan.Failure) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failed++
	if c.maxExceptions > 0 && len(c.exceptions) >= c.maxExceptions {
		return
	}
	exc := Exception{
		Path:    failure.Path,
		Stage:   failure.Stage,
		Message: failure.Err.Error(),
	}
	if failure.File != nil {
		exc.Filename = failure.File.Name
	}
	c.exceptions = append(c.exceptions, exc)
}

// RunFinished stores the run summary.
func (c *Collector) RunFinished(summary scan.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary = &summary
}

// Headers returns the resolved headers of the current run.
func (c *Collector) Headers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.headers)
}

// Rows returns the kept match rows in traversal order.
func (c *Collector) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.rows)
}

// Exceptions returns the kept exception rows in traversal order.
func (c *Collector) Exceptions() []Exception {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.exceptions)
}

// Tested returns how many files were examined so far.
func (c *Collector) Tested() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tested
}

// Matched returns how many files matched so far, kept or not.
func (c *Collector) Matched() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.matched
}

// Failed returns how many failures were reported so far, kept or not.
func (c *Collector) Failed() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.failed
}

// Summary returns the final run summary. ok is false while the run is
// still in flight.
func (c *Collector) Summary() (summary scan.Summary, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.summary == nil {
		return scan.Summary{}, false
	}
	return *c.summary, true
}

// RowsTruncated reports whether the row cap discarded any matches.
func (c *Collector) RowsTruncated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return uint64(len(c.rows)) < c.matched
}

// ExceptionsTruncated reports whether the exception cap discarded any failures.
func (c *Collector) ExceptionsTruncated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return uint64(len(c.exceptions)) < c.failed
}
