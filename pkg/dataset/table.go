package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/panbanda/statcalc/pkg/stats"
)

// missingMarkers are cell values treated as absent, compared case-insensitively.
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
}

// IsMissing reports whether a raw cell denotes an absent value.
func IsMissing(cell string) bool {
	return missingMarkers[strings.ToLower(strings.TrimSpace(cell))]
}

// missing applies the format's notion of an absent cell. Line-delimited
// input only treats blank lines as missing, so "nan" and "inf" are kept.
func (t *Table) missing(cell string) bool {
	if t.Format == FormatLines {
		return strings.TrimSpace(cell) == ""
	}
	return IsMissing(cell)
}

// Table holds raw cells by column. Cells are parsed lazily when a column is
// extracted, so non-numeric columns do not fail the load.
type Table struct {
	Format  Format
	headers []string
	cells   [][]string // cells[col][row]
	lines   []int      // source line of each row
}

// NewTable creates an empty table with the given column names.
func NewTable(format Format, headers []string) *Table {
	return &Table{
		Format:  format,
		headers: headers,
		cells:   make([][]string, len(headers)),
	}
}

// AddRow appends a record read from the given source line. Short records are
// padded with missing cells; extra cells are ignored.
func (t *Table) AddRow(line int, record []string) {
	for i := range t.headers {
		cell := ""
		if i < len(record) {
			cell = record[i]
		}
		t.cells[i] = append(t.cells[i], cell)
	}
	t.lines = append(t.lines, line)
}

// Columns returns the header names in file order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.headers...)
}

// Rows returns the number of data rows.
func (t *Table) Rows() int {
	return len(t.lines)
}

func (t *Table) index(name string) (int, error) {
	for i, h := range t.headers {
		if h == name {
			return i, nil
		}
	}
	for i, h := range t.headers {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (available: %s)", ErrUnknownColumn, name, strings.Join(t.headers, ", "))
}

// Column extracts the named column as a sample, dropping missing cells.
func (t *Table) Column(name string) (stats.Sample, error) {
	idx, err := t.index(name)
	if err != nil {
		return nil, err
	}

	sample := make(stats.Sample, 0, len(t.cells[idx]))
	for row, cell := range t.cells[idx] {
		if t.missing(cell) {
			continue
		}
		raw := strings.TrimSpace(cell)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			pe := &ParseError{Line: t.lines[row], Value: raw, Err: err}
			if t.Format == FormatCSV {
				pe.Column = t.headers[idx]
			}
			return nil, pe
		}
		sample = append(sample, v)
	}
	return sample, nil
}

// ColumnInfo summarizes a column's contents.
type ColumnInfo struct {
	Name    string `json:"name" toon:"name"`
	Values  int    `json:"values" toon:"values"`
	Missing int    `json:"missing" toon:"missing"`
	Numeric bool   `json:"numeric" toon:"numeric"`
}

// Describe returns per-column counts. A column is numeric when it has at
// least one value and every present value parses as a number.
func (t *Table) Describe() []ColumnInfo {
	infos := make([]ColumnInfo, len(t.headers))
	for i, h := range t.headers {
		info := ColumnInfo{Name: h, Numeric: true}
		for _, cell := range t.cells[i] {
			if t.missing(cell) {
				info.Missing++
				continue
			}
			info.Values++
			if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
				info.Numeric = false
			}
		}
		if info.Values == 0 {
			info.Numeric = false
		}
		infos[i] = info
	}
	return infos
}

// NumericColumns returns the names of columns that Column can extract
// without error and that contain at least one value.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, info := range t.Describe() {
		if info.Numeric {
			names = append(names, info.Name)
		}
	}
	return names
}

// Default returns the first numeric column name.
func (t *Table) Default() (string, error) {
	names := t.NumericColumns()
	if len(names) == 0 {
		if len(t.headers) == 1 {
			// A single column is still the only sensible choice; Column will
			// report the parse failure or an empty sample.
			return t.headers[0], nil
		}
		return "", ErrNoNumericColumn
	}
	return names[0], nil
}
