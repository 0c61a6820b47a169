package main

import (
	"fmt"
	"strings"

	"github.com/panbanda/statcalc/internal/cache"
	"github.com/panbanda/statcalc/internal/output"
	"github.com/panbanda/statcalc/internal/service/analysis"
	"github.com/panbanda/statcalc/pkg/config"
	"github.com/panbanda/statcalc/pkg/dataset"
	"github.com/panbanda/statcalc/pkg/stats"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// loadConfig loads the file named by --config, or the first one found in
// the standard locations. Errors in an existing file are returned.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var opts []config.LoadOption
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithPath(path))
	}

	result, err := config.LoadConfig(opts...)
	if err != nil {
		return nil, err
	}
	if result.Source != "" {
		log.WithField("path", result.Source).Debug("loaded config")
	}
	if result.Config.Output.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	return result.Config, nil
}

// openCache returns the configured cache, or nil when caching is off.
func openCache(c *cli.Context, cfg *config.Config) *cache.Cache {
	if c.Bool("no-cache") || !cfg.Cache.Enabled {
		return nil
	}
	rc, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
	if err != nil {
		log.WithError(err).Warn("cache disabled")
		return nil
	}
	return rc
}

// newService builds an analysis service from config and global flags.
func newService(c *cli.Context) (*analysis.Service, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	opts := []analysis.Option{analysis.WithConfig(cfg)}
	if rc := openCache(c, cfg); rc != nil {
		opts = append(opts, analysis.WithCache(rc))
	}
	return analysis.New(opts...), cfg, nil
}

// outputFormat prefers an explicit --format over the configured one.
func outputFormat(c *cli.Context, cfg *config.Config) output.Format {
	format := cfg.Output.Format
	if c.IsSet("format") || format == "" {
		format = c.String("format")
	}
	return output.ParseFormat(format)
}

// newFormatter honors --format and --output, falling back to config.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	return output.NewFormatter(outputFormat(c, cfg), c.String("output"), cfg.Output.Color)
}

// confidenceFlag parses --confidence. Zero means "use the configured level".
func confidenceFlag(c *cli.Context) (float64, error) {
	raw := c.String("confidence")
	if raw == "" {
		return 0, nil
	}
	return stats.ParseConfidence(raw)
}

// request builds an analysis request from the shared analysis flags.
func request(c *cli.Context, path string) (analysis.Request, error) {
	confidence, err := confidenceFlag(c)
	if err != nil {
		return analysis.Request{}, err
	}
	return analysis.Request{
		Path:       path,
		Format:     c.String("input-format"),
		Column:     c.String("column"),
		Confidence: confidence,
	}, nil
}

// summaryView adapts an analysis result for rendering.
func summaryView(res *analysis.Result) *output.SummaryView {
	return &output.SummaryView{Source: res.Source, Column: res.Column, Summary: res.Summary}
}

// requireArgs checks the positional argument count.
func requireArgs(c *cli.Context, min int, usage string) error {
	if c.NArg() < min {
		return fmt.Errorf("missing argument: %s %s", c.Command.Name, usage)
	}
	return nil
}

func formatList() string {
	names := make([]string, 0, len(dataset.Formats()))
	for _, f := range dataset.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// datasetArgs expands the positional arguments, replacing directories with
// the dataset files they contain.
func datasetArgs(c *cli.Context, svc *analysis.Service) ([]string, error) {
	paths, err := svc.ExpandPaths(c.Args().Slice())
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no dataset files found in %s", strings.Join(c.Args().Slice(), ", "))
	}
	return paths, nil
}
