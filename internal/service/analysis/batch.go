package analysis

import (
	"context"

	"github.com/panbanda/statcalc/internal/fileproc"
	"github.com/panbanda/statcalc/internal/scanner"
	log "github.com/sirupsen/logrus"
)

// BatchOptions tunes DescribeBatch.
type BatchOptions struct {
	Workers    int    // <= 0 uses the configured worker count, then 2x NumCPU
	OnProgress func() // called once per finished file
}

// BatchItem is the outcome for one path. Exactly one of Result and Err is set.
type BatchItem struct {
	Path   string
	Result *Result
	Err    error
}

// ExpandPaths replaces directory arguments with the dataset files beneath
// them, applying the configured exclusions. Other paths pass through.
func (s *Service) ExpandPaths(paths []string) ([]string, error) {
	return scanner.NewScanner(s.config).ScanPaths(paths)
}

// DescribeBatch runs Describe for every path concurrently. Column, format and
// confidence from tmpl apply to every file. Items come back in path order;
// the returned error is non-nil when at least one file failed.
func (s *Service) DescribeBatch(ctx context.Context, paths []string, tmpl Request, opts BatchOptions) ([]BatchItem, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = s.config.Batch.Workers
	}

	outcomes, errs := fileproc.MapFiles(ctx, paths, workers, func(ctx context.Context, path string) (*Result, error) {
		req := tmpl
		req.Path = path
		return s.Describe(ctx, req)
	}, opts.OnProgress)

	items := make([]BatchItem, len(outcomes))
	for i, o := range outcomes {
		items[i] = BatchItem{Path: o.Path, Result: o.Result, Err: o.Err}
	}

	if errs != nil {
		log.WithField("failed", len(errs.Errors)).Debug("batch finished with errors")
		return items, errs
	}
	return items, nil
}
