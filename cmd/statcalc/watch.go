package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/panbanda/statcalc/internal/output"
	"github.com/panbanda/statcalc/pkg/watch"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Aliases:   []string{"w"},
		Usage:     "Recompute statistics whenever a file changes",
		ArgsUsage: "<file|dir...>",
		Flags: append(analysisFlags(),
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "Quiet period before recomputing (default: config watch.debounce_ms)",
			},
		),
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, "<file|dir...>"); err != nil {
		return err
	}
	paths := c.Args().Slice()

	svc, cfg, err := newService(c)
	if err != nil {
		return err
	}
	tmpl, err := request(c, "")
	if err != nil {
		return err
	}

	debounce := c.Duration("debounce")
	if debounce <= 0 {
		debounce = time.Duration(cfg.Watch.DebounceMS) * time.Millisecond
	}

	watcher, err := watch.NewWatcher(paths, debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	// Watch output always goes to the terminal.
	formatter := output.NewWriterFormatter(outputFormat(c, cfg), os.Stdout, cfg.Output.Color)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	describe := func(path string) {
		req := tmpl
		req.Path = path
		res, err := svc.Describe(ctx, req)
		if err != nil {
			color.Red("Error: %v", err)
			return
		}
		log.WithFields(log.Fields{"path": path, "cached": res.Cached}).Debug("recomputed")
		if err := formatter.Output(summaryView(res)); err != nil {
			color.Red("Error: %v", err)
		}
	}

	// Initial pass over the named files so the first result is visible at once.
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			describe(p)
		}
	}
	watcher.SetCallback(describe)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Println("\nStopping watch...")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
