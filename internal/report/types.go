package report

import (
	"math"
	"time"

	"github.com/panbanda/statcalc/internal/service/analysis"
)

// RenderData contains all data needed to render the report.
type RenderData struct {
	Metadata  Metadata
	Files     []FileRow
	Succeeded int
	Failed    int
	Empty     int
	// Scale spans every interval so bars share one axis.
	Scale Scale
}

// Metadata describes the report run.
type Metadata struct {
	Title       string
	Version     string
	GeneratedAt time.Time
}

// FileRow is one file's line in the report.
type FileRow struct {
	Source     string
	Column     string
	N          int
	Confidence float64
	Mean       float64
	StdDev     float64
	Margin     float64
	Lower      float64
	Upper      float64
	Error      string
	Empty      bool
}

// Scale is the shared axis for interval bars.
type Scale struct {
	Min float64
	Max float64
}

// Position returns v's offset along the scale as a percentage.
func (s Scale) Position(v float64) float64 {
	span := s.Max - s.Min
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 50
	}
	p := (v - s.Min) / span * 100
	return math.Max(0, math.Min(100, p))
}

// Succeeded reports whether the row has a computed interval.
func (r FileRow) Succeeded() bool {
	return r.Error == "" && !r.Empty
}

// FromBatch converts batch outcomes into report data.
func FromBatch(title, version string, items []analysis.BatchItem) *RenderData {
	data := &RenderData{
		Metadata: Metadata{Title: title, Version: version, GeneratedAt: time.Now()},
		Files:    make([]FileRow, len(items)),
		Scale:    Scale{Min: math.Inf(1), Max: math.Inf(-1)},
	}

	for i, item := range items {
		row := FileRow{Source: item.Path}
		switch {
		case item.Err != nil:
			row.Error = item.Err.Error()
			data.Failed++
		case item.Result.Summary == nil:
			row.Column = item.Result.Column
			row.Empty = true
			data.Empty++
		default:
			s := item.Result.Summary
			row.Column = item.Result.Column
			row.N = s.N
			row.Confidence = s.Confidence
			row.Mean = s.Mean
			row.StdDev = s.StdDev
			row.Margin = s.MarginOfError
			row.Lower = s.Interval.Lower
			row.Upper = s.Interval.Upper
			data.Succeeded++
			if finite(row.Lower) && finite(row.Upper) {
				data.Scale.Min = math.Min(data.Scale.Min, row.Lower)
				data.Scale.Max = math.Max(data.Scale.Max, row.Upper)
			}
		}
		data.Files[i] = row
	}

	if math.IsInf(data.Scale.Min, 1) {
		data.Scale = Scale{}
	}
	return data
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
