// Package dataset loads one-dimensional numeric samples from delimited files.
package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported input layout.
type Format string

const (
	// FormatCSV is comma-separated columnar data with a header row.
	FormatCSV Format = "csv"
	// FormatLines is one scalar value per line.
	FormatLines Format = "lines"
)

// ErrUnsupportedFormat is returned for formats outside the known set.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatCSV, FormatLines}
}

// ParseFormat resolves a format name. "txt" is accepted as an alias for lines.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "lines", "txt", "text":
		return FormatLines, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatForPath maps a file name to a format by its extension. Callers that
// know the format should pass it explicitly instead.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".txt":
		return FormatLines, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Resolve returns the named format, or the one implied by path when name is
// empty or "auto".
func Resolve(name, path string) (Format, error) {
	if name == "" || strings.EqualFold(name, "auto") {
		return FormatForPath(path)
	}
	return ParseFormat(name)
}
