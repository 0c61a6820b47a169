package main

import (
	"github.com/panbanda/statcalc/internal/output"
	"github.com/panbanda/statcalc/pkg/dataset"
	"github.com/urfave/cli/v2"
)

func describeCmd() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Aliases:   []string{"d"},
		Usage:     "Compute statistics and a confidence interval for one column",
		ArgsUsage: "<file>",
		Flags:     analysisFlags(),
		Action:    runDescribeCmd,
	}
}

func runDescribeCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, "<file>"); err != nil {
		return err
	}
	path := c.Args().First()

	svc, cfg, err := newService(c)
	if err != nil {
		return err
	}
	req, err := request(c, path)
	if err != nil {
		return err
	}

	res, err := svc.Describe(c.Context, req)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if c.Bool("verbose") && formatter.Format() == output.FormatText {
		formatter.Success("%s loaded successfully!", loadedName(res.Format))
	}
	return formatter.Output(summaryView(res))
}

func loadedName(f dataset.Format) string {
	if f == dataset.FormatCSV {
		return "CSV file"
	}
	return "Data file"
}
