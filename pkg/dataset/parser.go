package dataset

import (
	"fmt"
	"io"
	"os"
)

// Parser reads raw input into a Table.
type Parser interface {
	Parse(r io.Reader) (*Table, error)
}

// ParserFor returns the parser for a format.
func ParserFor(f Format) (Parser, error) {
	switch f {
	case FormatCSV:
		return CSVParser{}, nil
	case FormatLines:
		return LinesParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// Load parses r with the parser for format.
func Load(r io.Reader, format Format) (*Table, error) {
	p, err := ParserFor(format)
	if err != nil {
		return nil, err
	}
	return p.Parse(r)
}

// LoadFile opens path and parses it with the parser for format.
func LoadFile(path string, format Format) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return table, nil
}
