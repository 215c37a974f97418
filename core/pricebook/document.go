package pricebook

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Object is an ordered key/value node of a decoded document.
// Decoders produce trees of *Object, []any, decimal.Decimal, string, bool and nil.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject creates an empty object
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores a value, keeping the position of an existing key
func (o *Object) Set(key string, value any) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in document order
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Len returns the number of keys
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Issue describes a malformed entry that was skipped or degraded while building a table
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error implements the error interface so issues can be aggregated
func (i Issue) Error() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

type builder struct {
	issues []Issue
}

func (b *builder) issue(path, format string, args ...interface{}) {
	b.issues = append(b.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Build converts a decoded document into a Table.
// The document is a list of {region, countries} objects; a single region object is also accepted.
// Malformed entries never fail the build: they are skipped or degraded and reported as issues.
func Build(doc any) (*Table, []Issue) {
	b := &builder{}
	table := &Table{Regions: []Region{}}

	var regions []any
	switch v := doc.(type) {
	case []any:
		regions = v
	case *Object:
		if list, ok := v.Get("regions"); ok {
			l, isList := list.([]any)
			if !isList {
				b.issue("regions", "expected a list, got %s", kindOf(list))
				return table, b.issues
			}
			regions = l
		} else {
			regions = []any{v}
		}
	case nil:
		b.issue("", "empty document")
		return table, b.issues
	default:
		b.issue("", "expected a list of regions, got %s", kindOf(doc))
		return table, b.issues
	}

	for i, raw := range regions {
		path := fmt.Sprintf("[%d]", i)
		if r, ok := b.region(path, raw); ok {
			table.Regions = append(table.Regions, r)
		}
	}
	return table, b.issues
}

func (b *builder) region(path string, raw any) (Region, bool) {
	obj, ok := raw.(*Object)
	if !ok {
		b.issue(path, "expected a region object, got %s", kindOf(raw))
		return Region{}, false
	}

	name, ok := stringField(obj, "region")
	if !ok || name == "" {
		b.issue(path, "region name missing")
		return Region{}, false
	}
	region := Region{Name: name, Countries: []Country{}}

	rawCountries, ok := obj.Get("countries")
	if !ok {
		b.issue(path, "region %q has no countries", name)
		return region, true
	}
	list, ok := rawCountries.([]any)
	if !ok {
		b.issue(path+".countries", "expected a list, got %s", kindOf(rawCountries))
		return region, true
	}

	for i, rc := range list {
		cpath := fmt.Sprintf("%s.countries[%d]", path, i)
		if c, ok := b.country(cpath, rc); ok {
			region.Countries = append(region.Countries, c)
		}
	}
	return region, true
}

func (b *builder) country(path string, raw any) (Country, bool) {
	obj, ok := raw.(*Object)
	if !ok {
		b.issue(path, "expected a country object, got %s", kindOf(raw))
		return Country{}, false
	}

	name, ok := stringField(obj, KeyCountry)
	if !ok || name == "" {
		b.issue(path, "country name missing")
		return Country{}, false
	}
	c := Country{Name: name}

	for _, key := range obj.Keys() {
		value, _ := obj.Get(key)
		kpath := path + "." + key

		switch {
		case key == KeyCountry:
		case key == KeySupplier:
			c.Supplier = b.text(kpath, value)
		case key == KeyCurrency:
			c.Currency = b.text(kpath, value)
		case key == KeyPaymentTerms:
			c.PaymentTerms = b.text(kpath, value)
		case key == KeyServiceLevels, CategoryKey(key).IsPseudo():
		case IsFixedLevel(key):
			if rows, ok := b.modifierRows(kpath, value); ok {
				if c.Levels == nil {
					c.Levels = make(map[LevelKey][]ModifierRow)
				}
				c.Levels[key] = rows
			}
		case IsReservedKey(key):
		default:
			c.Categories = append(c.Categories, CategoryEntry{
				Key:   CategoryKey(key),
				Offer: b.offer(kpath, value),
			})
		}
	}
	return c, true
}

func (b *builder) modifierRows(path string, raw any) ([]ModifierRow, bool) {
	list, ok := raw.([]any)
	if !ok {
		b.issue(path, "expected a list of backfill rows, got %s", kindOf(raw))
		return nil, false
	}

	rows := make([]ModifierRow, 0, len(list))
	for i, item := range list {
		rpath := fmt.Sprintf("%s[%d]", path, i)
		row := ModifierRow{}
		obj, ok := item.(*Object)
		if !ok {
			b.issue(rpath, "expected an object, got %s", kindOf(item))
			rows = append(rows, row)
			continue
		}
		for _, key := range obj.Keys() {
			m := Modifier(key)
			if !m.IsValid() {
				b.issue(rpath+"."+key, "unknown modifier")
				continue
			}
			value, _ := obj.Get(key)
			if price, ok := b.price(rpath+"."+key, value); ok {
				row[m] = price
			}
		}
		rows = append(rows, row)
	}
	return rows, true
}

func (b *builder) offer(path string, raw any) CategoryOffer {
	list, ok := raw.([]any)
	if !ok {
		b.issue(path, "expected a list of price rows, got %s", kindOf(raw))
		return CategoryOffer{}
	}
	if len(list) == 0 {
		b.issue(path, "empty offer")
	}

	offer := make(CategoryOffer, 0, len(list))
	for i, item := range list {
		rpath := fmt.Sprintf("%s[%d]", path, i)
		var row PriceRow
		obj, ok := item.(*Object)
		if !ok {
			b.issue(rpath, "expected an object, got %s", kindOf(item))
			offer = append(offer, row)
			continue
		}
		for _, key := range obj.Keys() {
			value, _ := obj.Get(key)
			if price, ok := b.price(rpath+"."+key, value); ok {
				row.Set(key, price)
			}
		}
		offer = append(offer, row)
	}
	return offer
}

func (b *builder) price(path string, raw any) (decimal.Decimal, bool) {
	d, err := ToDecimal(raw)
	if err != nil {
		b.issue(path, "%v", err)
		return decimal.Decimal{}, false
	}
	return d, true
}

func (b *builder) text(path string, raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case decimal.Decimal:
		return v.String()
	case nil:
		return ""
	default:
		b.issue(path, "expected text, got %s", kindOf(raw))
		return ""
	}
}

// ToDecimal converts a document scalar to a price
func ToDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("price %q is not a number", v)
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("price must be a number, got %s", kindOf(raw))
	}
}

func stringField(obj *Object, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case decimal.Decimal:
		return s.String(), true
	case int:
		return strconv.Itoa(s), true
	}
	return "", false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Object:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case decimal.Decimal, json.Number, int, int64, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
