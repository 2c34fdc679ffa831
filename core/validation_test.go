package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRun() *Run {
	return &Run{
		Roots:     []string{"/tmp"},
		Headers:   []string{"Filename", "Path"},
		Status:    RunStatusCompleted,
		StartedAt: time.Now().UTC(),
	}
}

func TestValidateRun(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, ValidateRun(validRun()))
	})

	t.Run("nil run", func(t *testing.T) {
		err := ValidateRun(nil)
		assert.ErrorIs(t, err, ErrInvalidRun)
	})

	t.Run("no roots", func(t *testing.T) {
		run := validRun()
		run.Roots = nil
		err := ValidateRun(run)
		assert.ErrorIs(t, err, ErrInvalidRun)
		assert.ErrorIs(t, err, ErrNoRoots)
	})

	t.Run("no headers", func(t *testing.T) {
		run := validRun()
		run.Headers = nil
		err := ValidateRun(run)
		assert.ErrorIs(t, err, ErrNoHeaders)
	})

	t.Run("bad status", func(t *testing.T) {
		run := validRun()
		run.Status = RunStatus(42)
		err := ValidateRun(run)
		assert.ErrorIs(t, err, ErrInvalidRunStatus)
	})
}

func TestValidateMatchRecord(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		record := &MatchRecord{Filename: "a.txt", Path: "/tmp/a.txt"}
		require.NoError(t, ValidateMatchRecord(record))
	})

	t.Run("nil record", func(t *testing.T) {
		assert.ErrorIs(t, ValidateMatchRecord(nil), ErrInvalidMatchRecord)
	})

	t.Run("empty filename", func(t *testing.T) {
		err := ValidateMatchRecord(&MatchRecord{Path: "/tmp/a.txt"})
		assert.ErrorIs(t, err, ErrEmptyFilename)
	})
}

func TestValidateExceptionRecord(t *testing.T) {
	t.Run("valid without file", func(t *testing.T) {
		record := &ExceptionRecord{Stage: StageTraverse, Message: "permission denied"}
		require.NoError(t, ValidateExceptionRecord(record))
	})

	t.Run("nil record", func(t *testing.T) {
		assert.ErrorIs(t, ValidateExceptionRecord(nil), ErrInvalidExceptionRecord)
	})

	t.Run("bad stage", func(t *testing.T) {
		record := &ExceptionRecord{Stage: FailureStage(9), Message: "x"}
		assert.ErrorIs(t, ValidateExceptionRecord(record), ErrInvalidFailureStage)
	})

	t.Run("empty message", func(t *testing.T) {
		record := &ExceptionRecord{Stage: StageEvaluate}
		assert.ErrorIs(t, ValidateExceptionRecord(record), ErrInvalidExceptionRecord)
	})
}
