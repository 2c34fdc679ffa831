package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newScanContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("scan", flag.ContinueOnError)
	flags := []cli.Flag{
		&cli.StringFlag{Name: "name-contains"},
		&cli.StringFlag{Name: "name-glob"},
		&cli.StringFlag{Name: "name-regex"},
		&cli.StringFlag{Name: "content-regex"},
		&cli.StringSliceFlag{Name: "content-any"},
		&cli.BoolFlag{Name: "ignore-case"},
		&cli.Int64Flag{Name: "min-size"},
		&cli.Int64Flag{Name: "max-size"},
		&cli.StringFlag{Name: "modified-after"},
		&cli.BoolFlag{Name: "any"},
		&cli.StringSliceFlag{Name: "show"},
		&cli.StringSliceFlag{Name: "extract"},
	}
	for _, f := range flags {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))

	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestBuildCondition(t *testing.T) {
	t.Run("no condition flags", func(t *testing.T) {
		c := newScanContext(t)
		_, err := buildCondition(c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "condition flag")
	})

	t.Run("single leaf", func(t *testing.T) {
		c := newScanContext(t, "--name-contains", "report")
		cond, err := buildCondition(c)
		require.NoError(t, err)
		assert.Equal(t, `name contains "report"`, cond.String())
	})

	t.Run("multiple leaves default to and", func(t *testing.T) {
		c := newScanContext(t, "--name-glob", "*.log", "--min-size", "1024")
		cond, err := buildCondition(c)
		require.NoError(t, err)
		assert.Contains(t, cond.String(), " and ")
	})

	t.Run("any combines with or", func(t *testing.T) {
		c := newScanContext(t, "--any", "--name-glob", "*.log", "--name-contains", "report")
		cond, err := buildCondition(c)
		require.NoError(t, err)
		assert.Contains(t, cond.String(), " or ")
	})

	t.Run("invalid regex", func(t *testing.T) {
		c := newScanContext(t, "--name-regex", "(")
		_, err := buildCondition(c)
		assert.Error(t, err)
	})

	t.Run("invalid timestamp", func(t *testing.T) {
		c := newScanContext(t, "--name-contains", "x", "--modified-after", "yesterday")
		_, err := buildCondition(c)
		assert.Error(t, err)
	})
}

func TestBuildSources(t *testing.T) {
	t.Run("builtin columns", func(t *testing.T) {
		c := newScanContext(t, "--show", "size", "--show", "ext", "--show", "digest")
		sources, err := buildSources(c)
		require.NoError(t, err)
		require.Len(t, sources, 3)
		assert.Equal(t, []string{"Size"}, sources[0].Headers())
		assert.Equal(t, []string{"Extension"}, sources[1].Headers())
	})

	t.Run("unknown column", func(t *testing.T) {
		c := newScanContext(t, "--show", "owner")
		_, err := buildSources(c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "owner")
	})

	t.Run("extract spec", func(t *testing.T) {
		c := newScanContext(t, "--extract", "Ticket=JIRA-[0-9]+")
		sources, err := buildSources(c)
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, []string{"Ticket"}, sources[0].Headers())
	})

	t.Run("malformed extract spec", func(t *testing.T) {
		c := newScanContext(t, "--extract", "no-equals-sign")
		_, err := buildSources(c)
		assert.Error(t, err)
	})
}

func TestSetupLogger_InvalidLevel(t *testing.T) {
	set := flag.NewFlagSet("app", flag.ContinueOnError)
	levelFlag := &cli.StringFlag{Name: "log-level", Value: "info"}
	require.NoError(t, levelFlag.Apply(set))
	require.NoError(t, set.Parse([]string{"--log-level", "verbose"}))

	err := setupLogger(cli.NewContext(cli.NewApp(), set, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}

func TestScanCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.txt"), []byte("quarterly"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("misc"), 0644))

	dbDir := filepath.Join(t.TempDir(), "db")

	app := &cli.App{
		Name: "filescout",
		Commands: []*cli.Command{
			{
				Name:   "scan",
				Action: scanCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name-contains"},
					&cli.StringFlag{Name: "name-glob"},
					&cli.StringFlag{Name: "name-regex"},
					&cli.StringFlag{Name: "content-regex"},
					&cli.StringSliceFlag{Name: "content-any"},
					&cli.BoolFlag{Name: "ignore-case"},
					&cli.Int64Flag{Name: "min-size"},
					&cli.Int64Flag{Name: "max-size"},
					&cli.StringFlag{Name: "modified-after"},
					&cli.BoolFlag{Name: "any"},
					&cli.StringSliceFlag{Name: "show"},
					&cli.StringSliceFlag{Name: "extract"},
					&cli.IntFlag{Name: "limit"},
					&cli.IntFlag{Name: "max-rows"},
					&cli.IntFlag{Name: "max-exceptions"},
					&cli.BoolFlag{Name: "progress"},
					&cli.IntFlag{Name: "report-interval", Value: 100},
					&cli.StringFlag{Name: "db"},
				},
			},
			{
				Name:   "runs",
				Action: runsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
					&cli.IntFlag{Name: "limit", Value: 20},
				},
			},
		},
	}

	err := app.Run([]string{"filescout", "scan", "--name-contains", "report", "--show", "size", "--db", dbDir, dir})
	require.NoError(t, err)

	err = app.Run([]string{"filescout", "runs", "--db", dbDir})
	require.NoError(t, err)
}
