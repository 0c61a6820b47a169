package dataset

import (
	"bufio"
	"fmt"
	"io"
)

// LinesColumn is the single column name exposed for line-delimited input.
const LinesColumn = "value"

// LinesParser reads one value per line.
type LinesParser struct{}

// Parse implements Parser.
func (LinesParser) Parse(r io.Reader) (*Table, error) {
	table := NewTable(FormatLines, []string{LinesColumn})

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		table.AddRow(line, []string{scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}

	return table, nil
}
