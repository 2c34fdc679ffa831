package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMUS_RoundTrip(t *testing.T) {
	run := Run{
		Id:         42,
		Roots:      []string{"/home/a", "/srv/data"},
		Query:      `name contains "report" and size >= 1024`,
		Headers:    []string{"Filename", "Path", "Size", "Size (2)"},
		Status:     RunStatusCancelled,
		Tested:     1000,
		Matched:    17,
		Exceptions: 3,
		StartedAt:  time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 11, 2, 9, 31, 12, 0, time.UTC),
	}

	buf := make([]byte, RunMUS.Size(run))
	n := RunMUS.Marshal(run, buf)
	assert.Equal(t, len(buf), n)

	got, m, err := RunMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, run, got)

	skipped, err := RunMUS.Skip(buf)
	require.NoError(t, err)
	assert.Equal(t, n, skipped)
}

func TestMatchRecordMUS_RoundTrip(t *testing.T) {
	record := MatchRecord{
		Id:         IDFromContent("/tmp/a.txt"),
		RunId:      7,
		Filename:   "a.txt",
		Path:       "/tmp/a.txt",
		Values:     []string{"123", "", "2025-11-02T09:30:00Z"},
		Seq:        99,
		RecordedAt: time.Date(2025, 11, 2, 9, 30, 5, 0, time.UTC),
	}

	buf := make([]byte, MatchRecordMUS.Size(record))
	MatchRecordMUS.Marshal(record, buf)

	got, _, err := MatchRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestExceptionRecordMUS_RoundTrip(t *testing.T) {
	record := ExceptionRecord{
		RunId:      7,
		Filename:   "b.bin",
		Path:       "/tmp/b.bin",
		Stage:      StageExtract,
		Message:    "read b.bin: permission denied",
		Seq:        3,
		RecordedAt: time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC),
	}

	buf := make([]byte, ExceptionRecordMUS.Size(record))
	ExceptionRecordMUS.Marshal(record, buf)

	got, _, err := ExceptionRecordMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestRunMUS_TruncatedData(t *testing.T) {
	run := Run{Roots: []string{"/tmp"}, Headers: []string{"Filename", "Path"}, Status: RunStatusCompleted}
	buf := make([]byte, RunMUS.Size(run))
	RunMUS.Marshal(run, buf)

	_, _, err := RunMUS.Unmarshal(buf[:2])
	assert.Error(t, err)
}
