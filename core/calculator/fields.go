package calculator

import "pricebook/core/pricebook"

// Result is what the form displays after Calculate
type Result struct {
	pricebook.QuoteResult
	ModifierLabel string `json:"modifier_label,omitempty"`
}

// Option is a selectable value with its display label
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldState describes one form field for rendering
type FieldState struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Value    string   `json:"value,omitempty"`
	Options  []Option `json:"options"`
	Enabled  bool     `json:"enabled"`
	ReadOnly bool     `json:"read_only,omitempty"`
	Hidden   bool     `json:"hidden,omitempty"`
}

var modifierLabels = map[pricebook.Modifier]string{
	pricebook.ModifierWithBackfill:    "With Backfill",
	pricebook.ModifierWithoutBackfill: "Without Backfill",
}

// ModifierLabel returns the display label for a modifier
func ModifierLabel(m pricebook.Modifier) string {
	if label, ok := modifierLabels[m]; ok {
		return label
	}
	return string(m)
}

var fieldLabels = map[pricebook.Field]string{
	pricebook.FieldRegion:   "Region",
	pricebook.FieldCountry:  "Country",
	pricebook.FieldCategory: "Category",
	pricebook.FieldLevel:    "Service Level",
	pricebook.FieldModifier: "Backfill Option",
}

// Fields returns the form fields in display order, including the read-only
// supplier, currency and payment terms of the selected country.
func (f *Form) Fields() []FieldState {
	out := []FieldState{
		f.selectable(pricebook.FieldRegion, labelSame),
		f.selectable(pricebook.FieldCountry, labelSame),
	}

	country, _ := pricebook.LookupCountry(f.table, f.sel.Region, f.sel.Country)
	var supplier, currency, terms string
	if country != nil {
		supplier, currency, terms = country.Supplier, country.Currency, country.PaymentTerms
	}
	out = append(out,
		readOnly("supplier", "Supplier", supplier),
		readOnly("currency", "Currency", currency),
		readOnly("paymentTerms", "Payment Terms", terms),
		f.selectable(pricebook.FieldCategory, func(v string) string {
			return pricebook.CategoryLabel(pricebook.CategoryKey(v))
		}),
		f.selectable(pricebook.FieldLevel, labelSame),
	)

	mod := f.selectable(pricebook.FieldModifier, func(v string) string {
		return ModifierLabel(pricebook.Modifier(v))
	})
	mod.Hidden = !mod.Enabled
	out = append(out, mod)
	return out
}

func (f *Form) selectable(field pricebook.Field, label func(string) string) FieldState {
	values := f.Options(field)
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Value: v, Label: label(v)})
	}
	return FieldState{
		Name:    string(field),
		Label:   fieldLabels[field],
		Value:   f.sel.Get(field),
		Options: opts,
		Enabled: f.Enabled(field),
	}
}

func readOnly(name, label, value string) FieldState {
	fs := FieldState{Name: name, Label: label, Value: value, Options: []Option{}, ReadOnly: true}
	if value != "" {
		fs.Options = []Option{{Value: value, Label: value}}
	}
	return fs
}

func labelSame(v string) string { return v }
