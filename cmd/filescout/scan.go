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
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/poiesic/filescout"
	"github.com/poiesic/filescout/condition"
	"github.com/poiesic/filescout/core"
	"github.com/poiesic/filescout/fields"
	"github.com/poiesic/filescout/results"
	"github.com/poiesic/filescout/scan"
	"github.com/urfave/cli/v2"
)

func scanCommand(c *cli.Context) error {
	roots := c.Args().Slice()
	if len(roots) == 0 {
		return fmt.Errorf("at least one root directory is required")
	}

	cond, err := buildCondition(c)
	if err != nil {
		return err
	}

	sources, err := buildSources(c)
	if err != nil {
		return err
	}

	collector, err := results.NewCollector(
		results.WithMaxRows(c.Int("max-rows")),
		results.WithMaxExceptions(c.Int("max-exceptions")),
	)
	if err != nil {
		return err
	}

	monitors := []scan.Monitor{collector}
	if c.Bool("progress") {
		monitors = append(monitors, results.NewProgressTracker(os.Stderr, c.Int("report-interval")))
	}

	// Optional persistence
	var recorder *results.Recorder
	var async *results.AsyncMonitor
	if dbPath := c.String("db"); dbPath != "" {
		db, err := filescout.NewDatabase(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		recorder, err = db.NewRecorder(roots, cond.String())
		if err != nil {
			return err
		}
		async, err = results.NewAsyncMonitor(recorder)
		if err != nil {
			return err
		}
		defer async.Release()
		monitors = append(monitors, async)
	}

	opts := []scan.Option{scan.WithMonitor(scan.Tee(monitors...))}

	// A match limit is enforced through a stop request, so the run still
	// ends with an ordinary cancelled summary.
	var engine *scan.Engine
	if limit := c.Int("limit"); limit > 0 {
		matched := 0
		opts = append(opts, scan.WithAction(func(_ *core.FileRef, _ []string) error {
			matched++
			if matched >= limit {
				engine.RequestStop()
			}
			return nil
		}))
	}

	engine, err = scan.New(roots, cond, sources, opts...)
	if err != nil {
		return err
	}

	// Ctrl-C ends the run cooperatively
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := engine.Run(ctx)
	if err != nil {
		return err
	}
	if async != nil {
		async.Wait()
	}

	printRows(engine.Headers(), collector.Rows())
	printExceptions(collector.Exceptions())

	fmt.Fprintf(os.Stderr, "\n%s: tested %d, matched %d, %d exceptions in %s\n",
		summary.Status, summary.Tested, summary.Matched, summary.Exceptions,
		summary.Elapsed.Round(time.Millisecond))
	if collector.RowsTruncated() {
		fmt.Fprintf(os.Stderr, "(output truncated to %d rows)\n", c.Int("max-rows"))
	}
	if recorder != nil {
		if err := recorder.Err(); err != nil {
			return fmt.Errorf("run persistence failed: %w", err)
		}
		if run := recorder.Run(); run != nil {
			fmt.Fprintf(os.Stderr, "saved as run %d\n", run.Id)
		}
	}

	return nil
}

// buildCondition assembles the condition tree from the scan flags.
func buildCondition(c *cli.Context) (condition.Condition, error) {
	var leaves []condition.Condition

	add := func(cond condition.Condition, err error) error {
		if err != nil {
			return err
		}
		leaves = append(leaves, cond)
		return nil
	}

	if substr := c.String("name-contains"); substr != "" {
		if err := add(condition.NameContains(substr)); err != nil {
			return nil, err
		}
	}
	if pattern := c.String("name-glob"); pattern != "" {
		if err := add(condition.NameGlob(pattern)); err != nil {
			return nil, err
		}
	}
	if expr := c.String("name-regex"); expr != "" {
		if err := add(condition.NameRegex(expr)); err != nil {
			return nil, err
		}
	}
	if expr := c.String("content-regex"); expr != "" {
		if err := add(condition.ContentRegex(expr)); err != nil {
			return nil, err
		}
	}
	if literals := c.StringSlice("content-any"); len(literals) > 0 {
		var opts []condition.ContentAnyOfOption
		if c.Bool("ignore-case") {
			opts = append(opts, condition.WithCaseInsensitive())
		}
		if err := add(condition.ContentAnyOf(literals, opts...)); err != nil {
			return nil, err
		}
	}
	if c.IsSet("min-size") {
		if err := add(condition.SizeAtLeast(c.Int64("min-size"))); err != nil {
			return nil, err
		}
	}
	if c.IsSet("max-size") {
		if err := add(condition.SizeAtMost(c.Int64("max-size"))); err != nil {
			return nil, err
		}
	}
	if value := c.String("modified-after"); value != "" {
		t, err := parseTimestamp(value)
		if err != nil {
			return nil, err
		}
		if err := add(condition.ModifiedAfter(t)); err != nil {
			return nil, err
		}
	}

	switch len(leaves) {
	case 0:
		return nil, fmt.Errorf("at least one condition flag is required")
	case 1:
		return leaves[0], nil
	}

	if c.Bool("any") {
		return condition.Or(leaves...), nil
	}
	return condition.And(leaves...), nil
}

// buildSources assembles the field sources from the scan flags.
func buildSources(c *cli.Context) ([]fields.Source, error) {
	var sources []fields.Source

	for _, name := range c.StringSlice("show") {
		switch strings.ToLower(name) {
		case "size":
			sources = append(sources, fields.NewSize())
		case "modified":
			sources = append(sources, fields.NewModified(time.RFC3339))
		case "ext":
			sources = append(sources, fields.NewExtension())
		case "lines":
			sources = append(sources, fields.NewLineCount())
		case "digest":
			sources = append(sources, fields.NewDigest())
		default:
			return nil, fmt.Errorf("unknown column %q: must be one of size, modified, ext, lines, digest", name)
		}
	}

	for _, spec := range c.StringSlice("extract") {
		header, expr, found := strings.Cut(spec, "=")
		if !found || header == "" {
			return nil, fmt.Errorf("invalid extract spec %q: expected HEADER=EXPR", spec)
		}
		source, err := fields.NewRegex(header, expr, ", ")
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	return sources, nil
}
