// Package wizard prompts for the inputs of a describe run.
package wizard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/panbanda/statcalc/pkg/dataset"
	"github.com/panbanda/statcalc/pkg/stats"
	"golang.org/x/term"
)

// Selection holds everything collected by the wizard.
type Selection struct {
	Path       string
	Column     string
	Confidence float64
}

// ColumnLister returns the columns of a dataset file.
type ColumnLister func(path string) ([]dataset.ColumnInfo, error)

// Run asks for a dataset file, then a column and confidence level. If
// initialPath is non-empty it pre-populates the file field.
func Run(in io.Reader, out io.Writer, initialPath string, columns ColumnLister) (*Selection, error) {
	path := initialPath

	fileForm := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dataset file").
				Description("A CSV file or a text file with one value per line").
				Placeholder("data.csv").
				Value(&path).
				Validate(func(s string) error {
					return ValidatePath(strings.TrimSpace(s))
				}),
		),
	)
	if err := run(fileForm, in, out); err != nil {
		return nil, err
	}
	path = strings.TrimSpace(path)

	infos, err := columns(path)
	if err != nil {
		return nil, err
	}
	choices := SelectableColumns(infos)
	if len(choices) == 0 {
		return nil, fmt.Errorf("%s: %w", path, dataset.ErrNoNumericColumn)
	}

	sel := &Selection{Path: path, Column: choices[0]}
	confidence := confidenceValue(stats.DefaultConfidence)

	var fields []huh.Field
	if len(choices) > 1 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Column").
			Description("Columns holding text are not listed").
			Options(huh.NewOptions(choices...)...).
			Value(&sel.Column))
	}
	fields = append(fields, huh.NewSelect[string]().
		Title("Confidence level").
		Options(ConfidenceOptions()...).
		Value(&confidence))

	if err := run(huh.NewForm(huh.NewGroup(fields...)), in, out); err != nil {
		return nil, err
	}

	sel.Confidence, err = stats.ParseConfidence(confidence)
	if err != nil {
		return nil, err
	}
	return sel, nil
}

func run(form *huh.Form, in io.Reader, out io.Writer) error {
	form = form.WithInput(in).WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}

// ValidatePath checks that path names a readable file in a supported format.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("a file is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	_, err = dataset.FormatForPath(path)
	return err
}

// SelectableColumns returns the columns a describe run can use: numeric
// columns, plus columns with no values at all, which summarize as an empty
// sample rather than failing.
func SelectableColumns(infos []dataset.ColumnInfo) []string {
	var names []string
	for _, info := range infos {
		if info.Numeric || info.Values == 0 {
			names = append(names, info.Name)
		}
	}
	return names
}

// ConfidenceOptions lists the supported confidence levels, default first.
func ConfidenceOptions() []huh.Option[string] {
	opts := []huh.Option[string]{
		huh.NewOption(stats.FormatPercent(stats.DefaultConfidence), confidenceValue(stats.DefaultConfidence)),
	}
	for _, level := range stats.Levels {
		if level == stats.DefaultConfidence {
			continue
		}
		opts = append(opts, huh.NewOption(stats.FormatPercent(level), confidenceValue(level)))
	}
	return opts
}

func confidenceValue(level float64) string {
	return fmt.Sprintf("%g", level)
}
