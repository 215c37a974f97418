package pricebook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound is the single failure outcome of the engine.
// Partial selections and malformed entries both resolve to it.
var ErrNotFound = errors.New("pricebook: not found")

// LookupError names the link of the selection path that failed to resolve
type LookupError struct {
	Step  Field
	Value string

	// Reason is an optional detail such as "empty offer"
	Reason string
}

// Error implements the error interface
func (e *LookupError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("pricebook: %s %q: %s", e.Step, e.Value, e.Reason)
	case e.Value == "":
		return fmt.Sprintf("pricebook: %s not set", e.Step)
	default:
		return fmt.Sprintf("pricebook: %s %q not found", e.Step, e.Value)
	}
}

// Unwrap returns ErrNotFound
func (e *LookupError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound reports whether err is a NotFound outcome
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func notFound(step Field, value string) error {
	return &LookupError{Step: step, Value: value}
}

// RegionsOf returns the distinct region names in first-seen order
func RegionsOf(t *Table) []string {
	if t == nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(t.Regions))
	out := make([]string, 0, len(t.Regions))
	for _, r := range t.Regions {
		if _, dup := seen[r.Name]; dup {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r.Name)
	}
	return out
}

// CountriesOf returns the country names of a region in table order.
// An unset or unknown region yields an empty list.
func CountriesOf(t *Table, region string) []string {
	r, ok := t.Region(region)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(r.Countries))
	for _, c := range r.Countries {
		out = append(out, c.Name)
	}
	return out
}

// LookupCountry resolves a region/country pair to its record
func LookupCountry(t *Table, region, country string) (*Country, bool) {
	r, ok := t.Region(region)
	if !ok {
		return nil, false
	}
	return r.Country(country)
}

// AvailableCategories returns the categories selectable for a country.
// The network operations pseudo-category is always present and always first.
func AvailableCategories(t *Table, region, country string) []CategoryKey {
	out := []CategoryKey{CategoryNetworkOperations}

	c, ok := LookupCountry(t, region, country)
	if !ok {
		return out
	}
	for _, e := range c.Categories {
		if e.Key.IsPseudo() || IsReservedKey(string(e.Key)) {
			continue
		}
		out = append(out, e.Key)
	}
	return out
}

// LevelsFor returns the service levels selectable for a category.
func LevelsFor(t *Table, region, country string, category CategoryKey) []LevelKey {
	if category.IsPseudo() {
		return FixedLevels()
	}

	c, ok := LookupCountry(t, region, country)
	if !ok || category == "" {
		return []LevelKey{}
	}
	offer, ok := c.Category(category)
	if !ok {
		return []LevelKey{}
	}
	row, ok := offer.First()
	if !ok {
		return []LevelKey{}
	}

	if category.HasFreeFormLevels() {
		return row.Keys()
	}
	out := []LevelKey{}
	for _, k := range row.Keys() {
		if strings.HasPrefix(k, LevelPrefix) {
			out = append(out, k)
		}
	}
	return out
}

// ResolvePrice resolves the price for a selection.
// Any missing link yields a *LookupError wrapping ErrNotFound; a zero price is a valid price.
func ResolvePrice(t *Table, sel Selection) (decimal.Decimal, error) {
	if sel.Category == "" {
		return decimal.Decimal{}, notFound(FieldCategory, "")
	}
	if sel.Level == "" {
		return decimal.Decimal{}, notFound(FieldLevel, "")
	}
	if sel.Category.IsPseudo() && !sel.Modifier.IsValid() {
		return decimal.Decimal{}, notFound(FieldModifier, string(sel.Modifier))
	}

	r, ok := t.Region(sel.Region)
	if !ok {
		return decimal.Decimal{}, notFound(FieldRegion, sel.Region)
	}
	c, ok := r.Country(sel.Country)
	if !ok {
		return decimal.Decimal{}, notFound(FieldCountry, sel.Country)
	}

	if sel.Category.IsPseudo() {
		row, ok := c.LevelRow(sel.Level)
		if !ok {
			return decimal.Decimal{}, notFound(FieldLevel, sel.Level)
		}
		price, ok := row[sel.Modifier]
		if !ok {
			return decimal.Decimal{}, notFound(FieldModifier, string(sel.Modifier))
		}
		return price, nil
	}

	offer, ok := c.Category(sel.Category)
	if !ok {
		return decimal.Decimal{}, notFound(FieldCategory, string(sel.Category))
	}
	row, ok := offer.First()
	if !ok {
		return decimal.Decimal{}, &LookupError{Step: FieldCategory, Value: string(sel.Category), Reason: "empty offer"}
	}
	price, ok := row.Price(sel.Level)
	if !ok {
		return decimal.Decimal{}, notFound(FieldLevel, sel.Level)
	}
	return price, nil
}

// QuoteResult is a resolved price with the descriptive country fields
type QuoteResult struct {
	Selection     Selection           `json:"selection"`
	CategoryLabel string              `json:"category_label,omitempty"`
	Price         decimal.NullDecimal `json:"price"`
	Found         bool                `json:"found"`
	Reason        string              `json:"reason,omitempty"`
	Supplier      string              `json:"supplier,omitempty"`
	Currency      string              `json:"currency,omitempty"`
	PaymentTerms  string              `json:"payment_terms,omitempty"`
}

// Quote resolves a selection and attaches the country's commercial terms.
// NotFound is reported through Found and Reason, never as an error.
func Quote(t *Table, sel Selection) QuoteResult {
	q := QuoteResult{Selection: sel}
	if sel.Category != "" {
		q.CategoryLabel = CategoryLabel(sel.Category)
	}
	if c, ok := LookupCountry(t, sel.Region, sel.Country); ok {
		q.Supplier = c.Supplier
		q.Currency = c.Currency
		q.PaymentTerms = c.PaymentTerms
	}

	price, err := ResolvePrice(t, sel)
	if err != nil {
		q.Reason = err.Error()
		return q
	}
	q.Price = decimal.NewNullDecimal(price)
	q.Found = true
	return q
}
