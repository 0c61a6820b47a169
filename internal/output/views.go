package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/panbanda/statcalc/pkg/dataset"
	"github.com/panbanda/statcalc/pkg/stats"
)

// EmptyNotice is shown when a sample has no values.
const EmptyNotice = "No data to analyze."

// FormatFloat renders a value in its shortest exact form.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatInterval renders an interval as "(lower, upper)".
func FormatInterval(i stats.Interval) string {
	return fmt.Sprintf("(%s, %s)", FormatFloat(i.Lower), FormatFloat(i.Upper))
}

// SummaryView renders the statistics for one sample.
type SummaryView struct {
	Source  string
	Column  string
	Summary *stats.Summary // nil for an empty sample
}

// summaryData is the serialized form of a SummaryView.
type summaryData struct {
	Source  string         `json:"source,omitempty" toon:"source,omitempty"`
	Column  string         `json:"column,omitempty" toon:"column,omitempty"`
	Result  *stats.Summary `json:"result" toon:"result"`
	Message string         `json:"message,omitempty" toon:"message,omitempty"`
}

func (v *SummaryView) RenderData() any {
	d := summaryData{Source: v.Source, Column: v.Column, Result: v.Summary}
	if v.Summary == nil {
		d.Message = EmptyNotice
	}
	return d
}

func (v *SummaryView) title() string {
	switch {
	case v.Source != "" && v.Column != "":
		return fmt.Sprintf("Results: %s [%s]", v.Source, v.Column)
	case v.Source != "":
		return "Results: " + v.Source
	default:
		return "Results"
	}
}

func (v *SummaryView) table() *Table {
	s := v.Summary
	rows := [][]string{
		{"Sample Size", strconv.Itoa(s.N)},
		{"Mean", FormatFloat(s.Mean)},
		{"Variance", FormatFloat(s.Variance)},
		{"Standard Deviation", FormatFloat(s.StdDev)},
		{"Standard Error", FormatFloat(s.StdErr)},
		{"t-Score", FormatFloat(s.TScore)},
		{"Margin of Error", FormatFloat(s.MarginOfError)},
		{s.Label(), FormatInterval(s.Interval)},
	}
	return NewTable(v.title(), []string{"Statistic", "Value"}, rows, nil, nil)
}

func (v *SummaryView) RenderText(w io.Writer, colored bool) error {
	if v.Summary == nil {
		writeTitle(w, v.title(), colored)
		if colored {
			color.New(color.FgYellow).Fprintln(w, EmptyNotice)
		} else {
			fmt.Fprintln(w, EmptyNotice)
		}
		return nil
	}
	return v.table().RenderText(w, colored)
}

func (v *SummaryView) RenderMarkdown(w io.Writer) error {
	if v.Summary == nil {
		fmt.Fprintf(w, "## %s\n\n%s\n\n", v.title(), EmptyNotice)
		return nil
	}
	return v.table().RenderMarkdown(w)
}

// BatchEntry is one file's outcome in a batch run.
type BatchEntry struct {
	SummaryView
	Err error
}

// BatchView renders the outcome of many files.
type BatchView struct {
	Entries []BatchEntry
}

type batchEntryData struct {
	Source string         `json:"source" toon:"source"`
	Column string         `json:"column,omitempty" toon:"column,omitempty"`
	Result *stats.Summary `json:"result" toon:"result"`
	Error  string         `json:"error,omitempty" toon:"error,omitempty"`
}

type batchData struct {
	Files     []batchEntryData `json:"files" toon:"files"`
	Succeeded int              `json:"succeeded" toon:"succeeded"`
	Failed    int              `json:"failed" toon:"failed"`
}

func (b *BatchView) counts() (ok, failed int) {
	for _, e := range b.Entries {
		if e.Err != nil {
			failed++
		} else {
			ok++
		}
	}
	return ok, failed
}

func (b *BatchView) RenderData() any {
	d := batchData{Files: make([]batchEntryData, len(b.Entries))}
	for i, e := range b.Entries {
		d.Files[i] = batchEntryData{Source: e.Source, Column: e.Column, Result: e.Summary}
		if e.Err != nil {
			d.Files[i].Error = e.Err.Error()
		}
	}
	d.Succeeded, d.Failed = b.counts()
	return d
}

func (b *BatchView) table() *Table {
	rows := make([][]string, 0, len(b.Entries))
	for _, e := range b.Entries {
		switch {
		case e.Err != nil:
			rows = append(rows, []string{e.Source, e.Column, "-", "-", "-", "error: " + e.Err.Error()})
		case e.Summary == nil:
			rows = append(rows, []string{e.Source, e.Column, "0", "-", "-", EmptyNotice})
		default:
			s := e.Summary
			rows = append(rows, []string{
				e.Source,
				e.Column,
				strconv.Itoa(s.N),
				fmt.Sprintf("%.4f", s.Mean),
				fmt.Sprintf("%.4f", s.StdDev),
				fmt.Sprintf("(%.4f, %.4f) @ %s", s.Interval.Lower, s.Interval.Upper, stats.FormatPercent(s.Confidence)),
			})
		}
	}
	ok, failed := b.counts()
	footer := []string{"", "", "", "", "", fmt.Sprintf("%d succeeded, %d failed", ok, failed)}
	return NewTable("Batch Results", []string{"File", "Column", "N", "Mean", "Std Dev", "Confidence Interval"}, rows, footer, nil)
}

func (b *BatchView) RenderText(w io.Writer, colored bool) error {
	return b.table().RenderText(w, colored)
}

func (b *BatchView) RenderMarkdown(w io.Writer) error {
	return b.table().RenderMarkdown(w)
}

// NewColumnsTable lists the columns of a loaded file.
func NewColumnsTable(source string, infos []dataset.ColumnInfo) *Table {
	rows := make([][]string, len(infos))
	for i, info := range infos {
		numeric := "no"
		if info.Numeric {
			numeric = "yes"
		}
		rows[i] = []string{info.Name, strconv.Itoa(info.Values), strconv.Itoa(info.Missing), numeric}
	}
	return NewTable("Columns: "+source, []string{"Column", "Values", "Missing", "Numeric"}, rows, nil, infos)
}
