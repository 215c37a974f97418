// Package output provides output formatting interfaces.
// This package produces human and machine-readable pricebook reports.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"pricebook/core/calculator"
	"pricebook/core/pricebook"
)

// Format represents output format type
type Format string

const (
	// FormatText is human-readable terminal output
	FormatText Format = "text"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// NotFoundMark is shown in place of a price that does not resolve
const NotFoundMark = "-"

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Report is the content of one command or endpoint response.
// Exactly one of Options, Quote or Summary is normally set.
type Report struct {
	// Title names the report, e.g. "Countries in EMEA"
	Title string `json:"title"`

	// Options lists selectable values
	Options []calculator.Option `json:"options,omitempty"`

	// Quote is a calculated price
	Quote *calculator.Result `json:"quote,omitempty"`

	// Summary describes a loaded pricebook
	Summary *Summary `json:"summary,omitempty"`

	// Issues are the problems found while loading
	Issues []pricebook.Issue `json:"issues,omitempty"`
}

// Summary describes a loaded pricebook
type Summary struct {
	Source string          `json:"source"`
	Format string          `json:"format"`
	Stats  pricebook.Stats `json:"stats"`
}

// Options configures formatters
type Options struct {
	// NoColor disables ANSI colors in text output
	NoColor bool

	// Verbose adds selection details to text output
	Verbose bool

	// DefaultCurrency is shown when the quoted country has none
	DefaultCurrency string
}

// FormatPrice renders a price with two decimals followed by the currency.
// An unresolved price renders as NotFoundMark.
func FormatPrice(price decimal.NullDecimal, currency string) string {
	if !price.Valid {
		return NotFoundMark
	}
	s := price.Decimal.StringFixed(2)
	if currency != "" {
		s += " " + currency
	}
	return s
}

// quoteCurrency picks the country currency, falling back to the configured default
func (o Options) quoteCurrency(q *calculator.Result) string {
	if q.Currency != "" {
		return q.Currency
	}
	return o.DefaultCurrency
}

// quoteRows returns the label/value pairs shown for a quote
func (o Options) quoteRows(q *calculator.Result) [][2]string {
	rows := [][2]string{
		{"Region", q.Selection.Region},
		{"Country", q.Selection.Country},
	}
	if q.Supplier != "" {
		rows = append(rows, [2]string{"Supplier", q.Supplier})
	}
	if q.PaymentTerms != "" {
		rows = append(rows, [2]string{"Payment Terms", q.PaymentTerms})
	}
	rows = append(rows,
		[2]string{"Category", q.CategoryLabel},
		[2]string{"Service Level", q.Selection.Level},
	)
	if q.ModifierLabel != "" {
		rows = append(rows, [2]string{"Backfill Option", q.ModifierLabel})
	}
	return append(rows, [2]string{"Price", FormatPrice(q.Price, o.quoteCurrency(q))})
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding the text, JSON and markdown formatters
func NewRegistry(opts Options) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	_ = r.Register(NewTextFormatter(opts))
	_ = r.Register(NewJSONFormatter(opts))
	_ = r.Register(NewMarkdownFormatter(opts))
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	if _, exists := r.formatters[f.Format()]; exists {
		return fmt.Errorf("formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format name; "md" is accepted for markdown
func (r *Registry) Get(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if format == "md" {
		format = FormatMarkdown
	}
	f, ok := r.formatters[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Names returns the registered format names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
