// Package report renders batch results as a standalone HTML page.
package report

import (
	"embed"
	"html/template"
	"io"
	"os"

	"github.com/panbanda/statcalc/pkg/stats"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed template.html
var templateFS embed.FS

// Renderer handles HTML report generation.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a new renderer with the embedded template.
func NewRenderer() (*Renderer, error) {
	p := message.NewPrinter(language.English)

	funcMap := template.FuncMap{
		"title": cases.Title(language.English).String,
		"num": func(v float64) string {
			return p.Sprintf("%.4f", v)
		},
		"count": func(n int) string {
			return p.Sprintf("%d", n)
		},
		"percent": stats.FormatPercent,
		"pos": func(s Scale, v float64) string {
			return p.Sprintf("%.2f", s.Position(v))
		},
		"span": func(s Scale, lo, hi float64) string {
			return p.Sprintf("%.2f", s.Position(hi)-s.Position(lo))
		},
	}

	tmplContent, err := templateFS.ReadFile("template.html")
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(string(tmplContent))
	if err != nil {
		return nil, err
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the HTML report for data.
func (r *Renderer) Render(data *RenderData, w io.Writer) error {
	return r.tmpl.Execute(w, data)
}

// RenderToFile writes the HTML report to outputPath.
func (r *Renderer) RenderToFile(data *RenderData, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return r.Render(data, f)
}
