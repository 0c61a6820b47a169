package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func newApp() *cli.App {
	return &cli.App{
		Name:     "statcalc",
		Usage:    "Descriptive statistics and confidence intervals for numeric data",
		Version:  version,
		Metadata: make(map[string]interface{}),
		Description: `statcalc computes the mean, sample variance, standard deviation and a
Student's t confidence interval for the mean of a numeric sample.

Input: CSV files (pick a column) or text files with one value per line.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"STATCALC_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable caching",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Before: func(c *cli.Context) error {
			log.SetOutput(os.Stderr)
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			log.SetLevel(log.InfoLevel)
			if c.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			describeCmd(),
			columnsCmd(),
			batchCmd(),
			watchCmd(),
			interactiveCmd(),
			mcpCmd(),
			initCmd(),
			configCmd(),
			cacheCmd(),
			reportCmd(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// analysisFlags are shared by every command that computes a summary.
func analysisFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "column",
			Usage: "Column to analyze (default: first numeric column)",
		},
		&cli.StringFlag{
			Name:    "confidence",
			Aliases: []string{"l"},
			Usage:   "Confidence level: 90, 95, 99, or a fraction such as 0.95 (default from config)",
		},
		&cli.StringFlag{
			Name:    "input-format",
			Aliases: []string{"i"},
			Usage:   fmt.Sprintf("Input format: %s (default: from file extension)", formatList()),
		},
	}
}
