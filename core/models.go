package core

import (
	"encoding/binary"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RunStatus describes how a scan run ended.
type RunStatus int

const (
	// RunStatusRunning marks a run that has started but not yet finished.
	RunStatusRunning RunStatus = iota + 1
	// RunStatusCompleted marks a run that examined every candidate file.
	RunStatusCompleted
	// RunStatusCancelled marks a run ended early by cancellation or a stop request.
	RunStatusCancelled
)

// String returns a human-readable name for the status.
func (s RunStatus) String() string {
	switch s {
	case RunStatusRunning:
		return "running"
	case RunStatusCompleted:
		return "completed"
	case RunStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// FailureStage identifies where a per-file failure occurred.
type FailureStage int

const (
	// StageTraverse covers failures while enumerating candidate files.
	StageTraverse FailureStage = iota + 1
	// StageEvaluate covers failures while evaluating the condition against a file.
	StageEvaluate
	// StageExtract covers failures while extracting display values from a matched file.
	StageExtract
	// StageAction covers failures of the optional per-match action.
	StageAction
)

// String returns a human-readable name for the stage.
func (s FailureStage) String() string {
	switch s {
	case StageTraverse:
		return "traverse"
	case StageEvaluate:
		return "evaluate"
	case StageExtract:
		return "extract"
	case StageAction:
		return "action"
	default:
		return "unknown"
	}
}

// FileRef identifies one candidate file: its name and containing directory,
// plus lazy access to attributes and content. A FileRef is immutable once
// yielded by traversal; the cached content is safe to read from other
// goroutines after the first access.
type FileRef struct {
	Name string
	Dir  string

	info fs.FileInfo

	contentOnce sync.Once
	content     []byte
	contentErr  error
}

// NewFileRef creates a FileRef for the named file in dir.
func NewFileRef(dir, name string) *FileRef {
	return &FileRef{Name: name, Dir: dir}
}

// NewFileRefInfo creates a FileRef with pre-resolved file attributes,
// avoiding a redundant stat when traversal already has them.
func NewFileRefInfo(dir, name string, info fs.FileInfo) *FileRef {
	return &FileRef{Name: name, Dir: dir, info: info}
}

// Path returns the full path of the file.
func (f *FileRef) Path() string {
	return filepath.Join(f.Dir, f.Name)
}

// Id returns a deterministic identifier derived from the file path.
func (f *FileRef) Id() ID {
	return IDFromContent(f.Path())
}

// Stat returns the file attributes, resolving and caching them on first use.
func (f *FileRef) Stat() (fs.FileInfo, error) {
	if f.info != nil {
		return f.info, nil
	}
	info, err := os.Stat(f.Path())
	if err != nil {
		return nil, err
	}
	f.info = info
	return info, nil
}

// Content returns the file content, reading and caching it on first use.
// The returned slice must not be modified.
func (f *FileRef) Content() ([]byte, error) {
	f.contentOnce.Do(func() {
		f.content, f.contentErr = os.ReadFile(f.Path())
	})
	return f.content, f.contentErr
}

// Capture is a named value exposed by a condition leaf upon successful match.
type Capture struct {
	Name  string
	Value string
}

// MatchRecord is one matched file together with its header-ordered extracted
// values. The value sequence length equals the number of non-fixed headers.
type MatchRecord struct {
	Id         ID
	RunId      ID
	Filename   string
	Path       string
	Values     []string
	Seq        uint64 // position among the run's matches, starting at 0
	RecordedAt time.Time
}

// ExceptionRecord is one recovered per-file failure. Filename may be empty
// when the failure was not tied to a single file.
type ExceptionRecord struct {
	Id         ID
	RunId      ID
	Filename   string
	Path       string
	Stage      FailureStage
	Message    string
	Seq        uint64
	RecordedAt time.Time
}

// Run describes one scan run: its configuration snapshot, final status and
// event tallies.
type Run struct {
	Id         ID
	Roots      []string
	Query      string // human-readable condition description
	Headers    []string
	Status     RunStatus
	Tested     uint64
	Matched    uint64
	Exceptions uint64
	StartedAt  time.Time
	FinishedAt time.Time
}
