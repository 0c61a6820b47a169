package main

import (
	"github.com/panbanda/statcalc/internal/output"
	"github.com/urfave/cli/v2"
)

func columnsCmd() *cli.Command {
	return &cli.Command{
		Name:      "columns",
		Aliases:   []string{"cols"},
		Usage:     "List the columns of a file and which are numeric",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input-format",
				Aliases: []string{"i"},
				Usage:   "Input format: " + formatList(),
			},
		},
		Action: runColumnsCmd,
	}
}

func runColumnsCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, "<file>"); err != nil {
		return err
	}
	path := c.Args().First()

	svc, cfg, err := newService(c)
	if err != nil {
		return err
	}

	infos, err := svc.Columns(path, c.String("input-format"))
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(output.NewColumnsTable(path, infos))
}
