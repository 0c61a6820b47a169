package mcpserver

import (
	"bytes"
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/statcalc/internal/output"
	"github.com/panbanda/statcalc/internal/service/analysis"
	"github.com/panbanda/statcalc/pkg/stats"
)

// FormatInput selects how a tool result is rendered.
type FormatInput struct {
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// ComputeInput holds inline values for compute_statistics.
type ComputeInput struct {
	FormatInput
	Values     []float64 `json:"values" jsonschema:"The sample values."`
	Confidence float64   `json:"confidence,omitempty" jsonschema:"Confidence level as a fraction (0.90, 0.95, 0.99) or percent (95). Default 0.95."`
}

// FileInput identifies a dataset on disk.
type FileInput struct {
	FormatInput
	Path        string `json:"path" jsonschema:"Path to a CSV or line-delimited file."`
	InputFormat string `json:"input_format,omitempty" jsonschema:"Input format: csv or lines. Defaults to the file extension."`
}

// DescribeInput adds column and confidence selection to FileInput.
type DescribeInput struct {
	FileInput
	Column     string  `json:"column,omitempty" jsonschema:"Column to analyze. Defaults to the first numeric column."`
	Confidence float64 `json:"confidence,omitempty" jsonschema:"Confidence level as a fraction (0.90, 0.95, 0.99) or percent (95). Default 0.95."`
}

// BatchInput describes many files with shared settings.
type BatchInput struct {
	FormatInput
	Paths       []string `json:"paths" jsonschema:"Files or directories to analyze. Directories are searched for .csv and .txt files."`
	InputFormat string   `json:"input_format,omitempty" jsonschema:"Input format: csv or lines. Defaults to each file's extension."`
	Column      string   `json:"column,omitempty" jsonschema:"Column to analyze in every file. Defaults to each file's first numeric column."`
	Confidence  float64  `json:"confidence,omitempty" jsonschema:"Confidence level as a fraction or percent. Default 0.95."`
}

func getFormat(input FormatInput) output.Format {
	switch strings.ToLower(input.Format) {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

// normalizeConfidence accepts 95 as well as 0.95. Zero means the default.
func normalizeConfidence(c float64) float64 {
	if c >= 1 {
		return c / 100
	}
	return c
}

func formatOutput(data any, format output.Format) (string, error) {
	var buf bytes.Buffer
	if err := output.NewWriterFormatter(format, &buf, false).Output(data); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// Tool handlers

func (s *Server) handleComputeStatistics(ctx context.Context, req *mcp.CallToolRequest, input ComputeInput) (*mcp.CallToolResult, any, error) {
	summary, err := s.service.Compute(stats.Sample(input.Values), normalizeConfidence(input.Confidence))
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(&output.SummaryView{Summary: summary}, getFormat(input.FormatInput))
}

func (s *Server) handleDescribeFile(ctx context.Context, req *mcp.CallToolRequest, input DescribeInput) (*mcp.CallToolResult, any, error) {
	if input.Path == "" {
		return toolError("path is required")
	}

	res, err := s.service.Describe(ctx, analysis.Request{
		Path:       input.Path,
		Format:     input.InputFormat,
		Column:     input.Column,
		Confidence: normalizeConfidence(input.Confidence),
	})
	if err != nil {
		return toolError(err.Error())
	}

	view := &output.SummaryView{Source: res.Source, Column: res.Column, Summary: res.Summary}
	return toolResult(view, getFormat(input.FormatInput))
}

func (s *Server) handleListColumns(ctx context.Context, req *mcp.CallToolRequest, input FileInput) (*mcp.CallToolResult, any, error) {
	if input.Path == "" {
		return toolError("path is required")
	}

	infos, err := s.service.Columns(input.Path, input.InputFormat)
	if err != nil {
		return toolError(err.Error())
	}
	return toolResult(output.NewColumnsTable(input.Path, infos), getFormat(input.FormatInput))
}

func (s *Server) handleDescribeBatch(ctx context.Context, req *mcp.CallToolRequest, input BatchInput) (*mcp.CallToolResult, any, error) {
	if len(input.Paths) == 0 {
		return toolError("at least one path is required")
	}

	tmpl := analysis.Request{
		Format:     input.InputFormat,
		Column:     input.Column,
		Confidence: normalizeConfidence(input.Confidence),
	}
	paths, err := s.service.ExpandPaths(input.Paths)
	if err != nil {
		return toolError(err.Error())
	}
	if len(paths) == 0 {
		return toolError("no dataset files found")
	}
	// Per-file failures are reported inside the view.
	items, _ := s.service.DescribeBatch(ctx, paths, tmpl, analysis.BatchOptions{})
	if err := ctx.Err(); err != nil {
		return toolError(err.Error())
	}

	view := &output.BatchView{Entries: make([]output.BatchEntry, len(items))}
	for i, item := range items {
		entry := output.BatchEntry{SummaryView: output.SummaryView{Source: item.Path}, Err: item.Err}
		if item.Result != nil {
			entry.Column = item.Result.Column
			entry.Summary = item.Result.Summary
		}
		view.Entries[i] = entry
	}
	return toolResult(view, getFormat(input.FormatInput))
}
