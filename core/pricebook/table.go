package pricebook

import "github.com/shopspring/decimal"

// Table is the price table: an ordered collection of regions.
// A Table is read-only once built and safe to share.
type Table struct {
	Regions []Region `json:"regions"`
}

// Region groups the countries priced in a geographic region
type Region struct {
	Name      string    `json:"name"`
	Countries []Country `json:"countries"`
}

// Country carries the commercial terms and the category offers of one country
type Country struct {
	Name         string `json:"name"`
	Supplier     string `json:"supplier,omitempty"`
	Currency     string `json:"currency,omitempty"`
	PaymentTerms string `json:"payment_terms,omitempty"`

	// Levels holds the network operations rows keyed by L1-L5
	Levels map[LevelKey][]ModifierRow `json:"levels,omitempty"`

	// Categories in document order
	Categories []CategoryEntry `json:"categories,omitempty"`
}

// CategoryEntry binds a category key to its offer
type CategoryEntry struct {
	Key   CategoryKey   `json:"key"`
	Offer CategoryOffer `json:"offer"`
}

// CategoryOffer is the ordered list of price rows for a category.
// Only the first row is consulted.
type CategoryOffer []PriceRow

// First returns the first row of the offer
func (o CategoryOffer) First() (PriceRow, bool) {
	if len(o) == 0 {
		return PriceRow{}, false
	}
	return o[0], true
}

// ModifierRow prices a network operations level per modifier
type ModifierRow map[Modifier]decimal.Decimal

// PriceEntry is a single level price
type PriceEntry struct {
	Key   LevelKey        `json:"key"`
	Price decimal.Decimal `json:"price"`
}

// PriceRow maps level keys to prices, preserving insertion order
type PriceRow struct {
	Entries []PriceEntry `json:"entries"`
}

// Keys returns the level keys in order
func (r PriceRow) Keys() []LevelKey {
	keys := make([]LevelKey, 0, len(r.Entries))
	for _, e := range r.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Price returns the price for a level key
func (r PriceRow) Price(key LevelKey) (decimal.Decimal, bool) {
	for _, e := range r.Entries {
		if e.Key == key {
			return e.Price, true
		}
	}
	return decimal.Decimal{}, false
}

// Set adds or replaces the price for key
func (r *PriceRow) Set(key LevelKey, price decimal.Decimal) {
	for i := range r.Entries {
		if r.Entries[i].Key == key {
			r.Entries[i].Price = price
			return
		}
	}
	r.Entries = append(r.Entries, PriceEntry{Key: key, Price: price})
}

// Len returns the number of entries
func (r PriceRow) Len() int {
	return len(r.Entries)
}

// Region returns the first region with the given name
func (t *Table) Region(name string) (*Region, bool) {
	if t == nil || name == "" {
		return nil, false
	}
	for i := range t.Regions {
		if t.Regions[i].Name == name {
			return &t.Regions[i], true
		}
	}
	return nil, false
}

// Country returns the first country with the given name
func (r *Region) Country(name string) (*Country, bool) {
	if r == nil || name == "" {
		return nil, false
	}
	for i := range r.Countries {
		if r.Countries[i].Name == name {
			return &r.Countries[i], true
		}
	}
	return nil, false
}

// Category returns the offer stored under key
func (c *Country) Category(key CategoryKey) (CategoryOffer, bool) {
	if c == nil {
		return nil, false
	}
	for _, e := range c.Categories {
		if e.Key == key {
			return e.Offer, true
		}
	}
	return nil, false
}

// LevelRow returns the first network operations row for a level
func (c *Country) LevelRow(level LevelKey) (ModifierRow, bool) {
	if c == nil {
		return nil, false
	}
	rows, ok := c.Levels[level]
	if !ok || len(rows) == 0 || rows[0] == nil {
		return nil, false
	}
	return rows[0], true
}

// Stats summarises the size of a table
type Stats struct {
	Regions    int `json:"regions"`
	Countries  int `json:"countries"`
	Categories int `json:"categories"`
	Prices     int `json:"prices"`
}

// Stats counts regions, countries, category offers and individual prices
func (t *Table) Stats() Stats {
	var s Stats
	if t == nil {
		return s
	}
	s.Regions = len(RegionsOf(t))
	for _, r := range t.Regions {
		s.Countries += len(r.Countries)
		for _, c := range r.Countries {
			s.Categories += len(c.Categories)
			for _, e := range c.Categories {
				for _, row := range e.Offer {
					s.Prices += row.Len()
				}
			}
			for _, rows := range c.Levels {
				for _, row := range rows {
					s.Prices += len(row)
				}
			}
		}
	}
	return s
}
