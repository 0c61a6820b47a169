package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panbanda/statcalc/internal/progress"
	"github.com/panbanda/statcalc/internal/report"
	"github.com/panbanda/statcalc/internal/service/analysis"
	"github.com/urfave/cli/v2"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Write an HTML report comparing the intervals of many files",
		ArgsUsage: "<file|dir...>",
		Description: `Runs the same analysis as batch and renders the results as a standalone
HTML page with every interval drawn on a shared axis.

Examples:
  statcalc -o report.html report runs/
  statcalc -o latency.html report --column latency --confidence 99 a.csv b.csv`,
		Flags: append(analysisFlags(),
			&cli.StringFlag{
				Name:  "title",
				Value: "Dataset Report",
				Usage: "Report title",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Number of concurrent workers",
			},
		),
		Action: runReportCmd,
	}
}

func runReportCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, "<file|dir...>"); err != nil {
		return err
	}
	outputPath := c.String("output")
	if outputPath == "" {
		return fmt.Errorf("report requires --output (e.g. statcalc -o report.html report <file|dir...>)")
	}

	svc, _, err := newService(c)
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

	tracker := progress.NewTracker("Analyzing files...", len(paths))
	// Failures are shown in the report itself.
	items, _ := svc.DescribeBatch(c.Context, paths, tmpl, analysis.BatchOptions{
		Workers:    c.Int("jobs"),
		OnProgress: tracker.Tick,
	})
	tracker.FinishSuccess()
	if err := c.Context.Err(); err != nil {
		return err
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load report template: %w", err)
	}
	data := report.FromBatch(c.String("title"), version, items)
	if err := renderer.RenderToFile(data, outputPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	color.Green("Report written to %s (%d succeeded, %d empty, %d failed)", outputPath, data.Succeeded, data.Empty, data.Failed)
	return nil
}
