package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for statcalc.
type Config struct {
	// Analysis defaults applied when flags are not given
	Analysis AnalysisConfig `koanf:"analysis" toml:"analysis"`

	// Batch mode settings
	Batch BatchConfig `koanf:"batch" toml:"batch"`

	// Watch mode settings
	Watch WatchConfig `koanf:"watch" toml:"watch"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// AnalysisConfig sets defaults for a single computation.
type AnalysisConfig struct {
	Confidence  float64 `koanf:"confidence" toml:"confidence"`
	Column      string  `koanf:"column" toml:"column"`             // empty selects the first numeric column
	InputFormat string  `koanf:"input_format" toml:"input_format"` // auto, csv, lines
	Delimiter   string  `koanf:"delimiter" toml:"delimiter"`       // CSV field separator
}

// BatchConfig controls concurrent processing of many files.
type BatchConfig struct {
	Workers   int      `koanf:"workers" toml:"workers"`     // 0 means 2x NumCPU
	Exclude   []string `koanf:"exclude" toml:"exclude"`     // gitignore-style patterns skipped when expanding directories
	Gitignore bool     `koanf:"gitignore" toml:"gitignore"` // honor .gitignore files when expanding directories
}

// WatchConfig controls file watching.
type WatchConfig struct {
	DebounceMS int `koanf:"debounce_ms" toml:"debounce_ms"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Confidence:  0.95,
			InputFormat: "auto",
			Delimiter:   ",",
		},
		Batch: BatchConfig{
			Workers:   0,
			Gitignore: true,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".statcalc/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// configNames are searched, in order, in each of searchDirs.
var configNames = []string{
	"statcalc.toml",
	"statcalc.yaml",
	"statcalc.yml",
	"statcalc.json",
	".statcalc.toml",
	".statcalc.yaml",
	".statcalc.yml",
	".statcalc.json",
}

var searchDirs = []string{".", ".statcalc"}

// parserFor picks a koanf parser from the file extension, defaulting to TOML.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	case ".json":
		return json.Parser()
	default:
		return toml.Parser()
	}
}

// loadKoanf reads path into a fresh koanf instance.
func loadKoanf(path string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, err
	}
	return k, nil
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k, err := loadKoanf(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile returns the first config file found in the standard
// locations, or "" if there is none.
func FindConfigFile() string {
	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	if path := FindConfigFile(); path != "" {
		cfg, err := Load(path)
		if err == nil {
			return cfg
		}
	}
	return DefaultConfig()
}

// LoadResult is a loaded configuration and where it came from.
type LoadResult struct {
	Config *Config
	Source string // empty when defaults were used
}

type loadOptions struct {
	path string
}

// LoadOption configures LoadConfig.
type LoadOption func(*loadOptions)

// WithPath loads from an explicit file instead of searching.
func WithPath(path string) LoadOption {
	return func(o *loadOptions) {
		o.path = path
	}
}

// LoadConfig loads and validates configuration. Unlike LoadOrDefault, errors
// in an existing file are returned rather than ignored.
func LoadConfig(opts ...LoadOption) (*LoadResult, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	path := o.path
	if path == "" {
		path = FindConfigFile()
	}
	if path == "" {
		return &LoadResult{Config: DefaultConfig()}, nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &LoadResult{Config: cfg, Source: path}, nil
}

// Validate checks value ranges that the file format cannot express.
func (c *Config) Validate() error {
	var errs []error

	if !(c.Analysis.Confidence > 0 && c.Analysis.Confidence < 1) {
		errs = append(errs, fmt.Errorf("analysis.confidence must be between 0 and 1 (exclusive), got %v", c.Analysis.Confidence))
	}
	switch strings.ToLower(c.Analysis.InputFormat) {
	case "", "auto", "csv", "lines", "txt":
	default:
		errs = append(errs, fmt.Errorf("analysis.input_format must be auto, csv or lines, got %q", c.Analysis.InputFormat))
	}
	if len([]rune(c.Analysis.Delimiter)) > 1 {
		errs = append(errs, fmt.Errorf("analysis.delimiter must be a single character, got %q", c.Analysis.Delimiter))
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers))
	}
	if c.Watch.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMS))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative, got %d", c.Cache.TTL))
	}
	switch strings.ToLower(c.Output.Format) {
	case "", "text", "json", "markdown", "md", "toon":
	default:
		errs = append(errs, fmt.Errorf("output.format must be text, json, markdown or toon, got %q", c.Output.Format))
	}

	return errors.Join(errs...)
}

// DelimiterRune returns the CSV delimiter, defaulting to ','.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Analysis.Delimiter {
		return r
	}
	return ','
}
