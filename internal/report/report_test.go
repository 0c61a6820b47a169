package report

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/panbanda/statcalc/internal/service/analysis"
	"github.com/panbanda/statcalc/internal/testutil"
	"github.com/panbanda/statcalc/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchItems(t *testing.T) []analysis.BatchItem {
	t.Helper()
	a, err := stats.Compute(stats.Sample{2, 4, 4, 4, 5, 5, 7, 9}, 0.95)
	require.NoError(t, err)
	b, err := stats.Compute(stats.Sample{1200, 1300, 1250, 1275}, 0.90)
	require.NoError(t, err)

	return []analysis.BatchItem{
		{Path: "a.csv", Result: &analysis.Result{Source: "a.csv", Column: "score", N: 8, Summary: a}},
		{Path: "b.txt", Result: &analysis.Result{Source: "b.txt", Column: "value", N: 4, Summary: b}},
		{Path: "empty.txt", Result: &analysis.Result{Source: "empty.txt", Column: "value"}},
		{Path: "bad.txt", Err: errors.New("bad.txt: line 2: invalid number \"x\"")},
	}
}

func TestFromBatch(t *testing.T) {
	data := FromBatch("Dataset Report", "1.0.0", batchItems(t))

	assert.Equal(t, "Dataset Report", data.Metadata.Title)
	assert.Equal(t, 2, data.Succeeded)
	assert.Equal(t, 1, data.Empty)
	assert.Equal(t, 1, data.Failed)
	require.Len(t, data.Files, 4)

	assert.True(t, data.Files[0].Succeeded())
	assert.InDelta(t, 5.0, data.Files[0].Mean, 1e-12)
	assert.True(t, data.Files[2].Empty)
	assert.False(t, data.Files[2].Succeeded())
	assert.NotEmpty(t, data.Files[3].Error)

	assert.InDelta(t, data.Files[0].Lower, data.Scale.Min, 1e-12)
	assert.InDelta(t, data.Files[1].Upper, data.Scale.Max, 1e-12)
}

func TestFromBatch_NoIntervals(t *testing.T) {
	data := FromBatch("r", "dev", []analysis.BatchItem{{Path: "x", Err: errors.New("boom")}})
	assert.Equal(t, Scale{}, data.Scale)
	assert.Equal(t, 50.0, data.Scale.Position(1))
}

func TestScalePosition(t *testing.T) {
	s := Scale{Min: 0, Max: 10}
	tests := []struct {
		v    float64
		want float64
	}{
		{0, 0},
		{5, 50},
		{10, 100},
		{-5, 0},
		{15, 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, s.Position(tt.v), 1e-12, "Position(%v)", tt.v)
	}
	assert.Equal(t, 50.0, Scale{Min: 1, Max: math.Inf(1)}.Position(2))
}

func TestRender(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(FromBatch("Dataset Report", "1.0.0", batchItems(t)), &buf))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Dataset Report</title>")
	assert.Contains(t, html, "a.csv")
	assert.Contains(t, html, "Score")
	assert.Contains(t, html, "5.0000")
	assert.Contains(t, html, "1,256.2500", "thousands should be grouped")
	assert.Contains(t, html, "95%: (")
	assert.Contains(t, html, "90%: (")
	assert.Contains(t, html, "No data to analyze.")
	assert.Contains(t, html, "invalid number")
	assert.NotContains(t, html, "ZgotmplZ")
}

func TestRenderToFile(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, r.RenderToFile(FromBatch("R", "dev", batchItems(t)), out))
	assert.Contains(t, testutil.ReadFile(t, out), "</html>")
}
