package storage

import (
	"testing"
	"time"

	"github.com/poiesic/filescout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("/srv/data/report.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalRun(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		run  *core.Run
	}{
		{
			name: "minimal run",
			run: &core.Run{
				Id:        core.ID(1),
				Roots:     []string{"/srv/data"},
				Query:     `name contains "report"`,
				Headers:   []string{"Filename", "Path"},
				Status:    core.RunStatusRunning,
				StartedAt: now,
			},
		},
		{
			name: "completed run with tallies",
			run: &core.Run{
				Id:         core.ID(2),
				Roots:      []string{"/srv/data", "/home/alice/notes"},
				Query:      `(name glob "*.log" and size >= 1024)`,
				Headers:    []string{"Filename", "Path", "Size", "Modified"},
				Status:     core.RunStatusCompleted,
				Tested:     1204,
				Matched:    37,
				Exceptions: 2,
				StartedAt:  now,
				FinishedAt: now.Add(3 * time.Second),
			},
		},
		{
			name: "cancelled run",
			run: &core.Run{
				Id:         core.ID(3),
				Roots:      []string{"/tmp"},
				Query:      `content matches "TODO"`,
				Headers:    []string{"Filename", "Path"},
				Status:     core.RunStatusCancelled,
				Tested:     10,
				StartedAt:  now,
				FinishedAt: now.Add(100 * time.Millisecond),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalRun(tt.run)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalRun(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.run.Id, decoded.Id)
			assert.Equal(t, tt.run.Roots, decoded.Roots)
			assert.Equal(t, tt.run.Query, decoded.Query)
			assert.Equal(t, tt.run.Headers, decoded.Headers)
			assert.Equal(t, tt.run.Status, decoded.Status)
			assert.Equal(t, tt.run.Tested, decoded.Tested)
			assert.Equal(t, tt.run.Matched, decoded.Matched)
			assert.Equal(t, tt.run.Exceptions, decoded.Exceptions)
			assert.True(t, tt.run.StartedAt.Equal(decoded.StartedAt))
			assert.True(t, tt.run.FinishedAt.Equal(decoded.FinishedAt))
		})
	}
}

func TestUnmarshalRun_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalRun(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalMatchRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		record *core.MatchRecord
	}{
		{
			name: "record without extra columns",
			record: &core.MatchRecord{
				Id:         core.ID(1),
				RunId:      core.ID(10),
				Filename:   "report.txt",
				Path:       "/srv/data/report.txt",
				Seq:        0,
				RecordedAt: now,
			},
		},
		{
			name: "record with values",
			record: &core.MatchRecord{
				Id:         core.ID(2),
				RunId:      core.ID(10),
				Filename:   "app.log",
				Path:       "/var/log/app.log",
				Values:     []string{"4096", "2026-03-01T12:00:00Z", ".log"},
				Seq:        7,
				RecordedAt: now,
			},
		},
		{
			name: "unicode filename",
			record: &core.MatchRecord{
				Id:         core.ID(3),
				RunId:      core.ID(11),
				Filename:   "résumé.txt",
				Path:       "/home/alice/résumé.txt",
				Values:     []string{""},
				Seq:        1,
				RecordedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalMatchRecord(tt.record)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalMatchRecord(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.record.Id, decoded.Id)
			assert.Equal(t, tt.record.RunId, decoded.RunId)
			assert.Equal(t, tt.record.Filename, decoded.Filename)
			assert.Equal(t, tt.record.Path, decoded.Path)
			assert.Equal(t, tt.record.Seq, decoded.Seq)
			assert.True(t, tt.record.RecordedAt.Equal(decoded.RecordedAt))
			if len(tt.record.Values) == 0 {
				assert.Empty(t, decoded.Values)
			} else {
				assert.Equal(t, tt.record.Values, decoded.Values)
			}
		})
	}
}

func TestMarshalUnmarshalExceptionRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name   string
		record *core.ExceptionRecord
	}{
		{
			name: "evaluate failure",
			record: &core.ExceptionRecord{
				Id:         core.ID(1),
				RunId:      core.ID(10),
				Filename:   "locked.bin",
				Path:       "/srv/data/locked.bin",
				Stage:      core.StageEvaluate,
				Message:    "open /srv/data/locked.bin: permission denied",
				Seq:        0,
				RecordedAt: now,
			},
		},
		{
			name: "traverse failure without filename",
			record: &core.ExceptionRecord{
				Id:         core.ID(2),
				RunId:      core.ID(10),
				Path:       "/srv/gone",
				Stage:      core.StageTraverse,
				Message:    "stat /srv/gone: no such file or directory",
				Seq:        1,
				RecordedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalExceptionRecord(tt.record)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalExceptionRecord(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.record.Id, decoded.Id)
			assert.Equal(t, tt.record.RunId, decoded.RunId)
			assert.Equal(t, tt.record.Filename, decoded.Filename)
			assert.Equal(t, tt.record.Path, decoded.Path)
			assert.Equal(t, tt.record.Stage, decoded.Stage)
			assert.Equal(t, tt.record.Message, decoded.Message)
			assert.Equal(t, tt.record.Seq, decoded.Seq)
			assert.True(t, tt.record.RecordedAt.Equal(decoded.RecordedAt))
		})
	}
}

func TestUnmarshalRecords_Invalid(t *testing.T) {
	t.Run("match record", func(t *testing.T) {
		_, err := UnmarshalMatchRecord([]byte{})
		assert.Error(t, err)
	})

	t.Run("exception record", func(t *testing.T) {
		_, err := UnmarshalExceptionRecord([]byte{})
		assert.Error(t, err)
	})
}
