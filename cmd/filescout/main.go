// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "filescout",
		Usage: "Condition-driven file search over directory trees",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "scan",
				Usage:     "Scan directory trees for files matching a condition",
				ArgsUsage: "ROOT [ROOT...]",
				Action:    scanCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name-contains",
						Usage: "Match files whose name contains the given text (case-insensitive)",
					},
					&cli.StringFlag{
						Name:  "name-glob",
						Usage: "Match files whose name matches the given glob pattern",
					},
					&cli.StringFlag{
						Name:  "name-regex",
						Usage: "Match files whose name matches the given regular expression",
					},
					&cli.StringFlag{
						Name:  "content-regex",
						Usage: "Match files whose content matches the given regular expression",
					},
					&cli.StringSliceFlag{
						Name:  "content-any",
						Usage: "Match files whose content contains any of the given literals",
					},
					&cli.BoolFlag{
						Name:  "ignore-case",
						Usage: "Make content literal matching case-insensitive",
					},
					&cli.Int64Flag{
						Name:  "min-size",
						Usage: "Match files of at least this many bytes",
					},
					&cli.Int64Flag{
						Name:  "max-size",
						Usage: "Match files of at most this many bytes",
					},
					&cli.StringFlag{
						Name:  "modified-after",
						Usage: "Match files modified after the given RFC 3339 timestamp",
					},
					&cli.BoolFlag{
						Name:  "any",
						Usage: "Combine conditions with OR instead of AND",
					},
					&cli.StringSliceFlag{
						Name:  "show",
						Usage: "Add a result column (size, modified, ext, lines, digest)",
					},
					&cli.StringSliceFlag{
						Name:  "extract",
						Usage: "Add a column extracted by regex, as HEADER=EXPR",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Stop the scan after this many matches (0 = unlimited)",
					},
					&cli.IntFlag{
						Name:  "max-rows",
						Usage: "Keep at most this many match rows in memory (0 = unlimited)",
					},
					&cli.IntFlag{
						Name:  "max-exceptions",
						Usage: "Keep at most this many exception rows in memory (0 = unlimited)",
					},
					&cli.BoolFlag{
						Name:  "progress",
						Usage: "Report scan progress on stderr",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N files",
						Value: 100,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Persist the run to a BadgerDB database directory",
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "List persisted scan runs",
				Action: runsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "List at most this many runs (0 = unlimited)",
						Value: 20,
					},
				},
			},
			{
				Name:   "show",
				Usage:  "Show the rows of a persisted scan run",
				Action: showCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.Uint64Flag{
						Name:     "run",
						Aliases:  []string{"r"},
						Usage:    "Run ID",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Show at most this many rows (0 = unlimited)",
					},
					&cli.BoolFlag{
						Name:  "exceptions",
						Usage: "Show the run's exceptions instead of its matches",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return t, nil
}
