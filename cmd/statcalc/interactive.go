package main

import (
	"os"

	"github.com/panbanda/statcalc/internal/output"
	"github.com/panbanda/statcalc/internal/service/analysis"
	"github.com/panbanda/statcalc/internal/wizard"
	"github.com/panbanda/statcalc/pkg/dataset"
	"github.com/urfave/cli/v2"
)

func interactiveCmd() *cli.Command {
	return &cli.Command{
		Name:      "interactive",
		Aliases:   []string{"ui"},
		Usage:     "Pick a file, column and confidence level from a form",
		ArgsUsage: "[file]",
		Action:    runInteractiveCmd,
	}
}

func runInteractiveCmd(c *cli.Context) error {
	svc, cfg, err := newService(c)
	if err != nil {
		return err
	}

	sel, err := wizard.Run(os.Stdin, os.Stdout, c.Args().First(), func(path string) ([]dataset.ColumnInfo, error) {
		return svc.Columns(path, "")
	})
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	res, err := svc.Describe(c.Context, analysis.Request{
		Path:       sel.Path,
		Column:     sel.Column,
		Confidence: sel.Confidence,
	})
	if err != nil {
		return err
	}

	if formatter.Format() == output.FormatText {
		formatter.Success("%s loaded successfully!", loadedName(res.Format))
	}
	return formatter.Output(summaryView(res))
}
