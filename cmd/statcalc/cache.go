package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/panbanda/statcalc/internal/cache"
	"github.com/panbanda/statcalc/internal/output"
	"github.com/panbanda/statcalc/pkg/config"
	"github.com/urfave/cli/v2"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the result cache",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count, size and age",
				Action: runCacheStatsCmd,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached results",
				Action: runCacheClearCmd,
			},
		},
	}
}

func openConfiguredCache(c *cli.Context) (*cache.Cache, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	rc, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled)
	if err != nil {
		return nil, nil, err
	}
	return rc, cfg, nil
}

func runCacheStatsCmd(c *cli.Context) error {
	rc, cfg, err := openConfiguredCache(c)
	if err != nil {
		return err
	}
	st, err := rc.GetStats()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := [][]string{
		{"Entries", fmt.Sprintf("%d", st.Entries)},
		{"Total Size", fmt.Sprintf("%d bytes", st.TotalSize)},
		{"Oldest", st.OldestAge.Round(time.Second).String()},
		{"Newest", st.NewestAge.Round(time.Second).String()},
	}
	return formatter.Output(output.NewTable("Cache", []string{"Metric", "Value"}, rows, nil, st))
}

func runCacheClearCmd(c *cli.Context) error {
	rc, _, err := openConfiguredCache(c)
	if err != nil {
		return err
	}
	if !rc.Enabled() {
		color.Yellow("Cache is disabled in config; nothing to clear.")
		return nil
	}
	if err := rc.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	color.Green("Cache cleared")
	return nil
}
