// Package calculator - Presentation-layer state for the pricing calculator.
// A Form owns the current Selection and the "result shown" flag, enforces the
// cascading reset, and delegates every lookup to the pricebook engine.
//
// A Form is owned by a single caller and is not safe for concurrent use.
package calculator

import (
	"errors"
	"fmt"

	"pricebook/core/pricebook"
)

var (
	// ErrInvalidOption is returned when a value is not among the field's current options
	ErrInvalidOption = errors.New("option not available")

	// ErrNotReady is returned by Calculate when the selection cannot be priced yet
	ErrNotReady = errors.New("selection not ready to calculate")
)

// Form is the calculator form state
type Form struct {
	table *pricebook.Table
	sel   pricebook.Selection
	shown bool
}

// New creates an empty form over a table
func New(table *pricebook.Table) *Form {
	return &Form{table: table}
}

// Table returns the table the form reads from
func (f *Form) Table() *pricebook.Table {
	return f.table
}

// Selection returns the current selection
func (f *Form) Selection() pricebook.Selection {
	return f.sel
}

// Set changes a field. An empty value clears it.
// Dependent fields are cleared and any displayed result is hidden.
func (f *Form) Set(field pricebook.Field, value string) error {
	if !f.Enabled(field) {
		return fmt.Errorf("%w: %s is disabled", ErrInvalidOption, field)
	}
	if value != "" && !contains(f.Options(field), value) {
		return fmt.Errorf("%w: %s %q", ErrInvalidOption, field, value)
	}
	f.sel = f.sel.With(field, value)
	f.shown = false
	return nil
}

// SetRegion selects a region
func (f *Form) SetRegion(region string) error {
	return f.Set(pricebook.FieldRegion, region)
}

// SetCountry selects a country
func (f *Form) SetCountry(country string) error {
	return f.Set(pricebook.FieldCountry, country)
}

// SetCategory selects a category
func (f *Form) SetCategory(category pricebook.CategoryKey) error {
	return f.Set(pricebook.FieldCategory, string(category))
}

// SetLevel selects a service level
func (f *Form) SetLevel(level pricebook.LevelKey) error {
	return f.Set(pricebook.FieldLevel, level)
}

// SetModifier selects the backfill option
func (f *Form) SetModifier(m pricebook.Modifier) error {
	return f.Set(pricebook.FieldModifier, string(m))
}

// Apply replaces the selection with sel, validating each field in dependency order.
// On error the form is left unchanged.
func (f *Form) Apply(sel pricebook.Selection) error {
	next := New(f.table)
	for _, field := range pricebook.Fields() {
		value := sel.Get(field)
		if value == "" {
			continue
		}
		if err := next.Set(field, value); err != nil {
			return err
		}
	}
	f.sel = next.sel
	f.shown = false
	return nil
}

// Reset clears the selection and hides the result
func (f *Form) Reset() {
	f.sel = pricebook.Selection{}
	f.shown = false
}

// Options returns the values currently selectable for a field
func (f *Form) Options(field pricebook.Field) []string {
	switch field {
	case pricebook.FieldRegion:
		return pricebook.RegionsOf(f.table)
	case pricebook.FieldCountry:
		return pricebook.CountriesOf(f.table, f.sel.Region)
	case pricebook.FieldCategory:
		cats := pricebook.AvailableCategories(f.table, f.sel.Region, f.sel.Country)
		out := make([]string, 0, len(cats))
		for _, c := range cats {
			out = append(out, string(c))
		}
		return out
	case pricebook.FieldLevel:
		return pricebook.LevelsFor(f.table, f.sel.Region, f.sel.Country, f.sel.Category)
	case pricebook.FieldModifier:
		mods := pricebook.Modifiers()
		out := make([]string, 0, len(mods))
		for _, m := range mods {
			out = append(out, string(m))
		}
		return out
	}
	return nil
}

// Enabled reports whether a field's prerequisites are set
func (f *Form) Enabled(field pricebook.Field) bool {
	switch field {
	case pricebook.FieldRegion:
		return true
	case pricebook.FieldCountry:
		return f.sel.Region != ""
	case pricebook.FieldCategory:
		return f.sel.Country != ""
	case pricebook.FieldLevel:
		return f.sel.Category != ""
	case pricebook.FieldModifier:
		return f.sel.Category.IsPseudo() && f.sel.Level != ""
	}
	return false
}

// CanCalculate reports whether the calculate action is available
func (f *Form) CanCalculate() bool {
	return !f.shown && f.sel.Level != "" && (!f.sel.NeedsModifier() || f.sel.Modifier.IsValid())
}

// Calculate resolves the current selection and shows the result.
// A NotFound price is a valid result, not an error.
func (f *Form) Calculate() (Result, error) {
	if !f.CanCalculate() {
		if f.shown {
			return Result{}, fmt.Errorf("%w: result already shown", ErrNotReady)
		}
		return Result{}, ErrNotReady
	}
	f.shown = true
	return f.result(), nil
}

// Result returns the displayed result while one is shown
func (f *Form) Result() (Result, bool) {
	if !f.shown {
		return Result{}, false
	}
	return f.result(), true
}

// Shown reports whether a result is displayed
func (f *Form) Shown() bool {
	return f.shown
}

func (f *Form) result() Result {
	return Quote(f.table, f.sel)
}

// Quote resolves any selection, valid or not, into a displayable result
func Quote(table *pricebook.Table, sel pricebook.Selection) Result {
	r := Result{QuoteResult: pricebook.Quote(table, sel)}
	if sel.NeedsModifier() && sel.Modifier != "" {
		r.ModifierLabel = ModifierLabel(sel.Modifier)
	}
	return r
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
