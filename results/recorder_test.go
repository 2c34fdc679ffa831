package results

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/filescout/condition"
	"github.com/poiesic/filescout/core"
	"github.com/poiesic/filescout/scan"
	"github.com/poiesic/filescout/storage"
	"github.com/poiesic/filescout/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644))
}

func newTestRepo(t *testing.T) storage.RunRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestNewRecorder_Validation(t *testing.T) {
	repo := newTestRepo(t)

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewRecorder(nil, []string{"/srv/data"}, "q")
		assert.ErrorIs(t, err, ErrNilRepository)
	})

	t.Run("invalid batch size", func(t *testing.T) {
		_, err := NewRecorder(repo, []string{"/srv/data"}, "q", WithBatchSize(0))
		assert.ErrorIs(t, err, ErrInvalidBatchSize)
	})
}

func TestRecorder_PersistsRun(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	recorder, err := NewRecorder(repo, []string{"/srv/data"}, `name glob "*.log"`)
	require.NoError(t, err)

	recorder.RunStarted([]string{"Filename", "Path", "Size"})
	require.NoError(t, recorder.Err())

	run := recorder.Run()
	require.NotNil(t, run)
	assert.NotZero(t, run.Id)

	// Run is visible as running while in flight
	stored, err := repo.GetRun(ctx, run.Id)
	require.NoError(t, err)
	assert.Equal(t, core.RunStatusRunning, stored.Status)
	assert.Equal(t, []string{"/srv/data"}, stored.Roots)
	assert.Equal(t, `name glob "*.log"`, stored.Query)
	assert.Equal(t, []string{"Filename", "Path", "Size"}, stored.Headers)

	fileA := core.NewFileRef("/srv/data", "a.log")
	fileB := core.NewFileRef("/srv/data", "b.log")
	recorder.FileTested(fileA)
	recorder.FileMatched(fileA, []string{"10"})
	recorder.FileTested(fileB)
	recorder.FileMatched(fileB, []string{"20"})
	recorder.FileFailed(&scan.Failure{
		Path:  "/srv/data/c.bin",
		Stage: core.StageEvaluate,
		Err:   errors.New("permission denied"),
	})

	recorder.RunFinished(scan.Summary{
		Status:     core.RunStatusCompleted,
		Tested:     3,
		Matched:    2,
		Exceptions: 1,
		Elapsed:    time.Second,
	})
	require.NoError(t, recorder.Err())

	stored, err = repo.GetRun(ctx, run.Id)
	require.NoError(t, err)
	assert.Equal(t, core.RunStatusCompleted, stored.Status)
	assert.Equal(t, uint64(3), stored.Tested)
	assert.Equal(t, uint64(2), stored.Matched)
	assert.Equal(t, uint64(1), stored.Exceptions)
	assert.False(t, stored.FinishedAt.IsZero())

	matches, err := repo.GetMatches(ctx, run.Id, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a.log", matches[0].Filename)
	assert.Equal(t, []string{"10"}, matches[0].Values)
	assert.Equal(t, uint64(0), matches[0].Seq)
	assert.Equal(t, "b.log", matches[1].Filename)
	assert.Equal(t, uint64(1), matches[1].Seq)

	exceptions, err := repo.GetExceptions(ctx, run.Id, 0)
	require.NoError(t, err)
	require.Len(t, exceptions, 1)
	assert.Equal(t, "/srv/data/c.bin", exceptions[0].Path)
	assert.Equal(t, core.StageEvaluate, exceptions[0].Stage)
	assert.Equal(t, "permission denied", exceptions[0].Message)
}

func TestRecorder_BatchFlush(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	recorder, err := NewRecorder(repo, []string{"/srv/data"}, "q", WithBatchSize(2))
	require.NoError(t, err)

	recorder.RunStarted([]string{"Filename", "Path"})
	run := recorder.Run()
	require.NotNil(t, run)

	fileA := core.NewFileRef("/srv/data", "a.txt")
	fileB := core.NewFileRef("/srv/data", "b.txt")
	recorder.FileMatched(fileA, nil)

	// Below the batch size, nothing written yet
	matches, err := repo.GetMatches(ctx, run.Id, 0)
	require.NoError(t, err)
	assert.Empty(t, matches)

	recorder.FileMatched(fileB, nil)

	// Batch full, rows flushed
	matches, err = repo.GetMatches(ctx, run.Id, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestRecorder_ScannedWithEngine(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	dir := t.TempDir()
	writeTestFile(t, dir, "report.txt", "quarterly report")
	writeTestFile(t, dir, "notes.md", "misc notes")

	cond, err := condition.NameContains("report")
	require.NoError(t, err)

	recorder, err := NewRecorder(repo, []string{dir}, cond.String())
	require.NoError(t, err)

	engine, err := scan.New([]string{dir}, cond, nil, scan.WithMonitor(recorder))
	require.NoError(t, err)

	summary, err := engine.Run(ctx)
	require.NoError(t, err)
	require.NoError(t, recorder.Err())
	assert.Equal(t, core.RunStatusCompleted, summary.Status)

	run := recorder.Run()
	require.NotNil(t, run)

	stored, err := repo.GetRun(ctx, run.Id)
	require.NoError(t, err)
	assert.Equal(t, core.RunStatusCompleted, stored.Status)
	assert.Equal(t, uint64(2), stored.Tested)
	assert.Equal(t, uint64(1), stored.Matched)

	matches, err := repo.GetMatches(ctx, run.Id, 0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "report.txt", matches[0].Filename)
}
