package scan

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/poiesic/filescout/core"
)

// errWalkStop ends traversal early without signalling a failure.
var errWalkStop = errors.New("walk stopped")

// walker enumerates candidate files from a root set in a stable,
// deterministic order: roots in configured order; within a directory,
// subdirectories before files, each group lexically. Repeated walks over an
// unchanged tree yield identical sequences.
type walker struct {
	roots []string
}

// walk calls visit for every candidate file and fail for every location that
// could not be read. A visit error ends the walk immediately; errWalkStop is
// swallowed, anything else propagates.
func (w *walker) walk(visit func(file *core.FileRef) error, fail func(path string, err error)) error {
	for _, root := range w.roots {
		info, err := os.Stat(root)
		if err != nil {
			fail(root, err)
			continue
		}
		if !info.IsDir() {
			dir, name := filepath.Split(root)
			err = visit(core.NewFileRefInfo(filepath.Clean(dir), name, info))
		} else {
			err = w.walkDir(root, visit, fail)
		}
		if err != nil {
			if errors.Is(err, errWalkStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (w *walker) walkDir(dir string, visit func(file *core.FileRef) error, fail func(path string, err error)) error {
	entries, err := os.ReadDir(dir) // sorted by filename
	if err != nil {
		fail(dir, err)
		return nil
	}

	// Subdirectories first, then files, lexical within each group.
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := w.walkDir(filepath.Join(dir, entry.Name()), visit, fail); err != nil {
			return err
		}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			fail(filepath.Join(dir, entry.Name()), err)
			continue
		}
		if err := visit(core.NewFileRefInfo(dir, entry.Name(), info)); err != nil {
			return err
		}
	}
	return nil
}
