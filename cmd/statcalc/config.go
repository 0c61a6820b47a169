package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/panbanda/statcalc/pkg/config"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Subcommands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "Validate a configuration file",
				Description: `Validates a statcalc configuration file against its schema and value ranges.

Examples:
  statcalc config validate                       # Validates default config locations
  statcalc -c statcalc.toml config validate      # Validates specific file`,
				Action: runConfigValidateCmd,
			},
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Description: `Shows the merged configuration from defaults and config file.

Examples:
  statcalc config show                      # Show effective config
  statcalc -c statcalc.toml config show     # Show config from specific file`,
				Action: runConfigShowCmd,
			},
		},
	}
}

func configPath(c *cli.Context) string {
	if path := c.String("config"); path != "" {
		return path
	}
	return config.FindConfigFile()
}

func runConfigValidateCmd(c *cli.Context) error {
	path := configPath(c)
	if path == "" {
		color.Yellow("No config file found. Default configuration is valid.")
		return nil
	}

	problems, err := config.ValidateFile(path)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		color.Red("Configuration validation failed: %s", path)
		for _, p := range problems {
			fmt.Fprintf(c.App.Writer, "  - %s\n", p)
		}
		return fmt.Errorf("%d problem(s) in %s", len(problems), path)
	}

	color.Green("Configuration valid: %s", path)
	return nil
}

func runConfigShowCmd(c *cli.Context) error {
	var opts []config.LoadOption
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithPath(path))
	}

	result, err := config.LoadConfig(opts...)
	if err != nil {
		return err
	}

	if result.Source != "" {
		fmt.Fprintf(c.App.Writer, "# Configuration from: %s\n\n", result.Source)
	} else {
		fmt.Fprintln(c.App.Writer, "# Default configuration (no config file found)")
	}

	content, err := toml.Marshal(result.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Fprint(c.App.Writer, string(content))

	return nil
}
