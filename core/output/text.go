package output

import (
	"fmt"
	"io"

	"pricebook/core/pricebook"
	"pricebook/core/ui"
)

// TextFormatter renders reports for a terminal
type TextFormatter struct {
	opts Options
}

// NewTextFormatter creates a text formatter
func NewTextFormatter(opts Options) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Format returns FormatText
func (f *TextFormatter) Format() Format { return FormatText }

// Render writes the report
func (f *TextFormatter) Render(w io.Writer, report *Report) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	if f.opts.Verbose {
		out.SetVerbosity(2)
	}
	if report.Title != "" {
		out.Header(report.Title)
	}

	switch {
	case report.Quote != nil:
		q := report.Quote
		t := out.NewTable("Field", "Value")
		for _, row := range f.opts.quoteRows(q) {
			t.AddRow(row[0], row[1])
		}
		t.Render()
		out.Debug("selection: category=%s level=%s modifier=%s", q.Selection.Category, q.Selection.Level, modifierOrNone(q.Selection.Modifier))
		if !q.Found {
			out.Println("")
			out.Error("no price for this selection")
			if q.Reason != "" {
				out.Println("%s", out.Color(ui.Dim, "  "+q.Reason))
			}
		}

	case report.Summary != nil:
		s := report.Summary
		t := out.NewTable("Source", "Format", "Regions", "Countries", "Categories", "Prices")
		t.AddRow(s.Source, s.Format,
			fmt.Sprint(s.Stats.Regions),
			fmt.Sprint(s.Stats.Countries),
			fmt.Sprint(s.Stats.Categories),
			fmt.Sprint(s.Stats.Prices))
		t.Render()

	default:
		if len(report.Options) == 0 {
			out.Info("(none)")
		}
		for _, opt := range report.Options {
			if opt.Label == "" || opt.Label == opt.Value {
				out.Println("  %s", opt.Value)
				continue
			}
			out.Println("  %-28s %s", opt.Value, out.Color(ui.Dim, opt.Label))
		}
		out.Debug("%d options", len(report.Options))
	}

	if len(report.Issues) > 0 {
		out.Println("")
		out.SubHeader(fmt.Sprintf("Issues (%d)", len(report.Issues)))
		for _, issue := range report.Issues {
			out.Warning("%s", issue.Error())
		}
	}
	return nil
}

func modifierOrNone(m pricebook.Modifier) string {
	if m == "" {
		return "none"
	}
	return string(m)
}
