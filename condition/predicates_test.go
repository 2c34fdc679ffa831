package condition

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/filescout/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) *core.FileRef {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return core.NewFileRef(dir, name)
}

func TestNameContains(t *testing.T) {
	cond, err := NameContains("Report")
	require.NoError(t, err)

	out, err := cond.Evaluate(core.NewFileRef("/tmp", "annual-report.txt"))
	require.NoError(t, err)
	assert.True(t, out.Matched, "match is case-insensitive")

	out, err = cond.Evaluate(core.NewFileRef("/tmp", "notes.txt"))
	require.NoError(t, err)
	assert.False(t, out.Matched)

	_, err = NameContains("")
	assert.ErrorIs(t, err, ErrEmptyPattern)
}

func TestNameGlob(t *testing.T) {
	cond, err := NameGlob("*.go")
	require.NoError(t, err)

	out, err := cond.Evaluate(core.NewFileRef("/src", "main.go"))
	require.NoError(t, err)
	assert.True(t, out.Matched)

	out, err = cond.Evaluate(core.NewFileRef("/src", "main.rs"))
	require.NoError(t, err)
	assert.False(t, out.Matched)

	_, err = NameGlob("[")
	assert.Error(t, err)
}

func TestNameRegex(t *testing.T) {
	cond, err := NameRegex(`^(?P<Base>[a-z]+)-(?P<Rev>\d+)\.log$`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Base", "Rev"}, cond.CaptureNames())

	out, err := cond.Evaluate(core.NewFileRef("/var/log", "app-42.log"))
	require.NoError(t, err)
	assert.True(t, out.Matched)
	assert.Equal(t, []core.Capture{
		{Name: "Base", Value: "app"},
		{Name: "Rev", Value: "42"},
	}, out.Captures)

	out, err = cond.Evaluate(core.NewFileRef("/var/log", "app.log"))
	require.NoError(t, err)
	assert.False(t, out.Matched)
	assert.Empty(t, out.Captures)

	_, err = NameRegex("(")
	assert.Error(t, err)
}

func TestContentRegex(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.ini", "port = 8080\nhost = localhost\n")

	cond, err := ContentRegex(`port = (?P<Port>\d+)`)
	require.NoError(t, err)

	out, err := cond.Evaluate(file)
	require.NoError(t, err)
	assert.True(t, out.Matched)
	assert.Equal(t, []core.Capture{{Name: "Port", Value: "8080"}}, out.Captures)

	t.Run("unreadable file is an evaluation error", func(t *testing.T) {
		_, err := cond.Evaluate(core.NewFileRef(dir, "missing.ini"))
		assert.Error(t, err)
	})
}

func TestContentAnyOf(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "main.go", "package main\n// TODO: fix retries\n")

	t.Run("matches and captures the literal", func(t *testing.T) {
		cond, err := ContentAnyOf([]string{"FIXME", "TODO"}, WithCaptureName("Marker"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Marker"}, cond.CaptureNames())

		out, err := cond.Evaluate(file)
		require.NoError(t, err)
		assert.True(t, out.Matched)
		assert.Equal(t, []core.Capture{{Name: "Marker", Value: "TODO"}}, out.Captures)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		cond, err := ContentAnyOf([]string{"todo"}, WithCaseInsensitive())
		require.NoError(t, err)
		out, err := cond.Evaluate(file)
		require.NoError(t, err)
		assert.True(t, out.Matched)
	})

	t.Run("no match", func(t *testing.T) {
		cond, err := ContentAnyOf([]string{"XXX"})
		require.NoError(t, err)
		out, err := cond.Evaluate(file)
		require.NoError(t, err)
		assert.False(t, out.Matched)
		assert.Empty(t, out.Captures)
	})

	t.Run("empty literal set", func(t *testing.T) {
		_, err := ContentAnyOf(nil)
		assert.ErrorIs(t, err, ErrEmptyPattern)
	})
}

func TestSizePredicates(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "five.txt", "12345")

	atLeast, err := SizeAtLeast(5)
	require.NoError(t, err)
	out, err := atLeast.Evaluate(file)
	require.NoError(t, err)
	assert.True(t, out.Matched)

	atMost, err := SizeAtMost(4)
	require.NoError(t, err)
	out, err = atMost.Evaluate(file)
	require.NoError(t, err)
	assert.False(t, out.Matched)

	_, err = SizeAtLeast(-1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestModifiedAfter(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "new.txt", "x")

	past, err := ModifiedAfter(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	out, err := past.Evaluate(file)
	require.NoError(t, err)
	assert.True(t, out.Matched)

	future, err := ModifiedAfter(time.Now().Add(time.Hour))
	require.NoError(t, err)
	out, err = future.Evaluate(file)
	require.NoError(t, err)
	assert.False(t, out.Matched)

	_, err = ModifiedAfter(time.Time{})
	assert.ErrorIs(t, err, ErrEmptyPattern)
}
