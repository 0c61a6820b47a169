// Package analysis loads datasets and computes their summaries, with
// optional result caching and concurrent batch processing.
package analysis

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/panbanda/statcalc/internal/cache"
	"github.com/panbanda/statcalc/pkg/config"
	"github.com/panbanda/statcalc/pkg/dataset"
	"github.com/panbanda/statcalc/pkg/stats"
	log "github.com/sirupsen/logrus"
)

// Service orchestrates loading and computing.
type Service struct {
	config *config.Config
	cache  *cache.Cache
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithCache sets the result cache. Without one, every request is computed.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

// New creates a new analysis service.
func New(opts ...Option) *Service {
	s := &Service{
		config: config.LoadOrDefault(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request describes one computation. Zero values fall back to config.
type Request struct {
	Path       string
	Format     string // csv, lines, or empty/auto to use the file extension
	Column     string // empty selects the configured or first numeric column
	Confidence float64
}

// Result is the outcome of a Request. Summary is nil for an empty sample.
type Result struct {
	Source  string         `json:"source" toon:"source"`
	Format  dataset.Format `json:"format" toon:"format"`
	Column  string         `json:"column" toon:"column"`
	N       int            `json:"n" toon:"n"`
	Summary *stats.Summary `json:"result" toon:"result"`
	Cached  bool           `json:"-" toon:"-"`
}

func (s *Service) normalize(req Request) (Request, dataset.Format, error) {
	if req.Format == "" {
		req.Format = s.config.Analysis.InputFormat
	}
	format, err := dataset.Resolve(req.Format, req.Path)
	if err != nil {
		return req, "", err
	}
	if req.Confidence == 0 {
		req.Confidence = s.config.Analysis.Confidence
	}
	if err := stats.ValidateConfidence(req.Confidence); err != nil {
		return req, "", err
	}
	if req.Column == "" {
		req.Column = s.config.Analysis.Column
	}
	return req, format, nil
}

// parser returns the parser for format, honoring the configured delimiter.
func (s *Service) parser(format dataset.Format) (dataset.Parser, error) {
	if format == dataset.FormatCSV {
		return dataset.CSVParser{Comma: s.config.DelimiterRune()}, nil
	}
	return dataset.ParserFor(format)
}

// parserOptions fingerprints the settings that change how format is parsed.
func (s *Service) parserOptions(format dataset.Format) string {
	if format == dataset.FormatCSV {
		return string(s.config.DelimiterRune())
	}
	return ""
}

// Load reads and parses a file in the given format.
func (s *Service) Load(path string, format dataset.Format) (*dataset.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.parse(data, format)
}

func (s *Service) parse(data []byte, format dataset.Format) (*dataset.Table, error) {
	p, err := s.parser(format)
	if err != nil {
		return nil, err
	}
	return p.Parse(bytes.NewReader(data))
}

// Columns loads a file and describes its columns.
func (s *Service) Columns(path, format string) ([]dataset.ColumnInfo, error) {
	if format == "" {
		format = s.config.Analysis.InputFormat
	}
	f, err := dataset.Resolve(format, path)
	if err != nil {
		return nil, err
	}
	table, err := s.Load(path, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table.Describe(), nil
}

// Describe loads the requested column and computes its summary.
func (s *Service) Describe(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req, format, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, err
	}

	caching := s.cache != nil && s.cache.Enabled()
	var hash string
	if caching {
		hash = cache.HashBytes(data)
	}

	// Lookups need the column up front; a default column is only known
	// after parsing, so those requests always compute.
	if caching && req.Column != "" {
		key := cache.Key(req.Path, string(format), s.parserOptions(format), req.Column, req.Confidence)
		if entry, ok := s.cache.Get(key, hash); ok {
			log.WithFields(log.Fields{"path": req.Path, "column": req.Column}).Debug("cache hit")
			return &Result{
				Source:  req.Path,
				Format:  format,
				Column:  req.Column,
				N:       entry.N,
				Summary: entry.Summary,
				Cached:  true,
			}, nil
		}
	}

	table, err := s.parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Path, err)
	}

	column := req.Column
	if column == "" {
		column, err = table.Default()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", req.Path, err)
		}
	}

	sample, err := table.Column(column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Path, err)
	}

	summary, err := stats.Compute(sample, req.Confidence)
	if err != nil {
		return nil, fmt.Errorf("%s [%s]: %w", req.Path, column, err)
	}

	log.WithFields(log.Fields{
		"path":   req.Path,
		"format": format,
		"column": column,
		"n":      len(sample),
	}).Debug("computed summary")

	if caching {
		key := cache.Key(req.Path, string(format), s.parserOptions(format), column, req.Confidence)
		if err := s.cache.Set(key, hash, len(sample), summary); err != nil {
			log.WithError(err).WithField("path", req.Path).Debug("cache write failed")
		}
	}

	return &Result{
		Source:  req.Path,
		Format:  format,
		Column:  column,
		N:       len(sample),
		Summary: summary,
	}, nil
}

// Compute summarizes an in-memory sample. Confidence 0 uses the configured level.
func (s *Service) Compute(sample stats.Sample, confidence float64) (*stats.Summary, error) {
	if confidence == 0 {
		confidence = s.config.Analysis.Confidence
	}
	return stats.Compute(sample, confidence)
}
