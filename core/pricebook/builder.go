package pricebook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FlatRow is one price of a flat (spreadsheet-style) price sheet
type FlatRow struct {
	Region       string
	Country      string
	Supplier     string
	Currency     string
	PaymentTerms string
	Category     CategoryKey
	Level        LevelKey
	Modifier     Modifier
	Price        decimal.Decimal
}

// TableBuilder assembles a Table from flat rows, preserving first-seen order
type TableBuilder struct {
	table Table
}

// NewTableBuilder creates an empty builder
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{table: Table{Regions: []Region{}}}
}

// Add merges one row into the table.
// Rows that cannot be placed are rejected with an error and leave the table unchanged.
func (b *TableBuilder) Add(row FlatRow) error {
	switch {
	case row.Region == "":
		return fmt.Errorf("region missing")
	case row.Country == "":
		return fmt.Errorf("country missing")
	case row.Category == "":
		return fmt.Errorf("category missing")
	case row.Level == "":
		return fmt.Errorf("level missing")
	}
	if row.Category.IsPseudo() {
		if !IsFixedLevel(row.Level) {
			return fmt.Errorf("level %q is not one of L1-L5", row.Level)
		}
		if !row.Modifier.IsValid() {
			return fmt.Errorf("modifier %q must be %s or %s", row.Modifier, ModifierWithBackfill, ModifierWithoutBackfill)
		}
	} else if IsReservedKey(string(row.Category)) {
		return fmt.Errorf("category %q is a reserved key", row.Category)
	}

	c := b.country(row.Region, row.Country)
	if c.Supplier == "" {
		c.Supplier = row.Supplier
	}
	if c.Currency == "" {
		c.Currency = row.Currency
	}
	if c.PaymentTerms == "" {
		c.PaymentTerms = row.PaymentTerms
	}

	if row.Category.IsPseudo() {
		if c.Levels == nil {
			c.Levels = make(map[LevelKey][]ModifierRow)
		}
		if len(c.Levels[row.Level]) == 0 {
			c.Levels[row.Level] = []ModifierRow{{}}
		}
		c.Levels[row.Level][0][row.Modifier] = row.Price
		return nil
	}

	idx := -1
	for i, e := range c.Categories {
		if e.Key == row.Category {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.Categories = append(c.Categories, CategoryEntry{Key: row.Category, Offer: CategoryOffer{{}}})
		idx = len(c.Categories) - 1
	}
	c.Categories[idx].Offer[0].Set(row.Level, row.Price)
	return nil
}

func (b *TableBuilder) country(region, country string) *Country {
	ri := -1
	for i := range b.table.Regions {
		if b.table.Regions[i].Name == region {
			ri = i
			break
		}
	}
	if ri < 0 {
		b.table.Regions = append(b.table.Regions, Region{Name: region, Countries: []Country{}})
		ri = len(b.table.Regions) - 1
	}

	r := &b.table.Regions[ri]
	for i := range r.Countries {
		if r.Countries[i].Name == country {
			return &r.Countries[i]
		}
	}
	r.Countries = append(r.Countries, Country{Name: country})
	return &r.Countries[len(r.Countries)-1]
}

// Table returns the assembled table. The builder must not be used afterwards.
func (b *TableBuilder) Table() *Table {
	t := b.table
	return &t
}
