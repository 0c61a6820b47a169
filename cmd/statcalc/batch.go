package main

import (
	"fmt"

	"github.com/panbanda/statcalc/internal/output"
	"github.com/panbanda/statcalc/internal/progress"
	"github.com/panbanda/statcalc/internal/service/analysis"
	"github.com/urfave/cli/v2"
)

func batchCmd() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Aliases:   []string{"b"},
		Usage:     "Compute statistics for the same column across many files",
		ArgsUsage: "<file|dir...>",
		Flags: append(analysisFlags(),
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Number of concurrent workers (default: config batch.workers, then 2x CPUs)",
			},
		),
		Action: runBatchCmd,
	}
}

func runBatchCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, "<file|dir...>"); err != nil {
		return err
	}

	svc, cfg, err := newService(c)
	if err != nil {
		return err
	}
	paths, err := datasetArgs(c, svc)
	if err != nil {
		return err
	}
	tmpl, err := request(c, "")
	if err != nil {
		return err
	}
	if c.Int("jobs") < 0 {
		return fmt.Errorf("--jobs must not be negative (got %d)", c.Int("jobs"))
	}

	tracker := progress.NewTracker("Analyzing files...", len(paths))
	items, batchErr := svc.DescribeBatch(c.Context, paths, tmpl, analysis.BatchOptions{
		Workers:    c.Int("jobs"),
		OnProgress: tracker.Tick,
	})
	tracker.FinishSuccess()

	view := &output.BatchView{Entries: make([]output.BatchEntry, len(items))}
	failed := 0
	for i, item := range items {
		entry := output.BatchEntry{SummaryView: output.SummaryView{Source: item.Path}, Err: item.Err}
		if item.Result != nil {
			entry.Column = item.Result.Column
			entry.Summary = item.Result.Summary
		}
		if item.Err != nil {
			failed++
		}
		view.Entries[i] = entry
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := formatter.Output(view); err != nil {
		return err
	}
	if batchErr != nil {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}
