package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter renders reports as indented JSON
type JSONFormatter struct {
	opts Options
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(opts Options) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format { return FormatJSON }

type jsonReport struct {
	*Report
	DisplayPrice string `json:"display_price,omitempty"`
}

// Render writes the report
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	doc := jsonReport{Report: report}
	if report.Quote != nil {
		doc.DisplayPrice = FormatPrice(report.Quote.Price, f.opts.quoteCurrency(report.Quote))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
