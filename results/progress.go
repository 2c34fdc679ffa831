package results

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/poiesic/filescout/core"
	"github.com/poiesic/filescout/scan"
)

// ProgressTracker is a Monitor that periodically reports scan progress.
//
// The total number of candidate files is unknown up front, so reports
// carry the running counts and the scan rate instead of a percentage.
type ProgressTracker struct {
	writer         io.Writer
	reportInterval int

	mu           sync.Mutex
	tested       int
	matched      int
	failed       int
	lastReported int
	startTime    time.Time
	started      bool
}

var _ scan.Monitor = (*ProgressTracker)(nil)

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stderr)
// reportInterval: report progress every N tested files
func NewProgressTracker(writer io.Writer, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		reportInterval: reportInterval,
	}
}

// RunStarted begins tracking progress.
func (p *ProgressTracker) RunStarted(_ []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.tested = 0
	p.matched = 0
	p.failed = 0
	p.lastReported = 0
}

// FileTested advances the tested count and reports when an interval is crossed.
func (p *ProgressTracker) FileTested(_ *core.FileRef) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.tested++
	if p.tested-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.tested
	}
}

// FileMatched advances the matched count.
func (p *ProgressTracker) FileMatched(_ *core.FileRef, _ []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.matched++
}

// FileFailed advances the failure count.
func (p *ProgressTracker) FileFailed(_ *scan.Failure) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.failed++
}

// RunFinished prints the final progress line.
func (p *ProgressTracker) RunFinished(_ scan.Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.report()
	fmt.Fprintln(p.writer) // Print newline after final progress
	p.started = false
}

// Elapsed returns the time elapsed since the run started.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.tested) / elapsed.Seconds()

	fmt.Fprintf(p.writer, "\rScanned: %d (%d matched, %d failed) - %.1f files/s",
		p.tested, p.matched, p.failed, rate)
}
