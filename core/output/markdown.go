package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MarkdownFormatter renders reports as markdown, e.g. for tickets or wiki pages
type MarkdownFormatter struct {
	opts Options
}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter(opts Options) *MarkdownFormatter {
	return &MarkdownFormatter{opts: opts}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format { return FormatMarkdown }

// Render writes the report
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	bw := bufio.NewWriter(w)
	if report.Title != "" {
		fmt.Fprintf(bw, "## %s\n\n", report.Title)
	}

	switch {
	case report.Quote != nil:
		fmt.Fprintln(bw, "| Field | Value |")
		fmt.Fprintln(bw, "|---|---|")
		for _, row := range f.opts.quoteRows(report.Quote) {
			fmt.Fprintf(bw, "| %s | %s |\n", row[0], mdCell(row[1]))
		}
		if !report.Quote.Found && report.Quote.Reason != "" {
			fmt.Fprintf(bw, "\n> %s\n", report.Quote.Reason)
		}

	case report.Summary != nil:
		s := report.Summary
		fmt.Fprintln(bw, "| Source | Format | Regions | Countries | Categories | Prices |")
		fmt.Fprintln(bw, "|---|---|---:|---:|---:|---:|")
		fmt.Fprintf(bw, "| %s | %s | %d | %d | %d | %d |\n", mdCell(s.Source), s.Format,
			s.Stats.Regions, s.Stats.Countries, s.Stats.Categories, s.Stats.Prices)

	default:
		if len(report.Options) == 0 {
			fmt.Fprintln(bw, "_none_")
		}
		for _, opt := range report.Options {
			if opt.Label == "" || opt.Label == opt.Value {
				fmt.Fprintf(bw, "- `%s`\n", opt.Value)
			} else {
				fmt.Fprintf(bw, "- `%s` %s\n", opt.Value, opt.Label)
			}
		}
	}

	if len(report.Issues) > 0 {
		fmt.Fprintf(bw, "\n### Issues (%d)\n\n", len(report.Issues))
		for _, issue := range report.Issues {
			fmt.Fprintf(bw, "- %s\n", issue.Error())
		}
	}
	return bw.Flush()
}

func mdCell(s string) string {
	if s == "" {
		return " "
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
