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
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/poiesic/filescout"
	"github.com/poiesic/filescout/core"
	"github.com/poiesic/filescout/results"
	"github.com/urfave/cli/v2"
)

func runsCommand(c *cli.Context) error {
	db, err := filescout.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runs, err := db.RunRepository().ListRuns(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tSTATUS\tTESTED\tMATCHED\tEXCEPTIONS\tQUERY")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%s\n",
			run.Id,
			run.StartedAt.Local().Format(time.DateTime),
			run.Status,
			run.Tested,
			run.Matched,
			run.Exceptions,
			run.Query,
		)
	}
	return w.Flush()
}

func showCommand(c *cli.Context) error {
	db, err := filescout.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := db.RunRepository()
	runID := core.ID(c.Uint64("run"))

	run, err := repo.GetRun(c.Context, runID)
	if err != nil {
		return fmt.Errorf("failed to load run %d: %w", runID, err)
	}

	if c.Bool("exceptions") {
		records, err := repo.GetExceptions(c.Context, runID, c.Int("limit"))
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STAGE\tPATH\tMESSAGE")
		for _, record := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\n", record.Stage, record.Path, record.Message)
		}
		return w.Flush()
	}

	records, err := repo.GetMatches(c.Context, runID, c.Int("limit"))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(run.Headers, "\t")))
	for _, record := range records {
		columns := append([]string{record.Filename, record.Path}, record.Values...)
		fmt.Fprintln(w, strings.Join(columns, "\t"))
	}
	return w.Flush()
}

func printRows(headers []string, rows []results.Row) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(headers, "\t")))
	for _, row := range rows {
		columns := append([]string{row.Filename, row.Path}, row.Values...)
		fmt.Fprintln(w, strings.Join(columns, "\t"))
	}
	w.Flush()
}

func printExceptions(exceptions []results.Exception) {
	if len(exceptions) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr)
	for _, exc := range exceptions {
		fmt.Fprintf(os.Stderr, "exception (%s) %s: %s\n", exc.Stage, exc.Path, exc.Message)
	}
}
