package pricebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableBuilder(t *testing.T) {
	b := NewTableBuilder()

	rows := []FlatRow{
		{Region: "EMEA", Country: "UK", Supplier: "Northwind", Currency: "GBP", PaymentTerms: "Net 30", Category: CategoryFullDayVisit, Level: "L1", Price: d(100)},
		{Region: "EMEA", Country: "UK", Category: CategoryFullDayVisit, Level: "L2", Price: d(150)},
		{Region: "EMEA", Country: "UK", Supplier: "Ignored", Category: CategoryNetworkOperations, Level: "L1", Modifier: ModifierWithBackfill, Price: d(500)},
		{Region: "EMEA", Country: "UK", Category: CategoryNetworkOperations, Level: "L1", Modifier: ModifierWithoutBackfill, Price: d(400)},
		{Region: "EMEA", Country: "UK", Category: CategoryDispatchTicket, Level: "Onsite", Price: d(60)},
		{Region: "APAC", Country: "Japan", Category: CategoryShortTerm, Level: "L1", Price: d(30)},
		{Region: "EMEA", Country: "Germany", Category: CategoryLongTerm, Level: "L2", Price: d(70)},
		{Region: "EMEA", Country: "UK", Category: CategoryFullDayVisit, Level: "L1", Price: d(110)},
	}
	for _, r := range rows {
		require.NoError(t, b.Add(r))
	}
	table := b.Table()

	assert.Equal(t, []string{"EMEA", "APAC"}, RegionsOf(table))
	assert.Equal(t, []string{"UK", "Germany"}, CountriesOf(table, "EMEA"))
	assert.Equal(t, []CategoryKey{CategoryNetworkOperations, CategoryFullDayVisit, CategoryDispatchTicket},
		AvailableCategories(table, "EMEA", "UK"))
	assert.Equal(t, []LevelKey{"L1", "L2"}, LevelsFor(table, "EMEA", "UK", CategoryFullDayVisit))

	c, ok := LookupCountry(table, "EMEA", "UK")
	require.True(t, ok)
	assert.Equal(t, "Northwind", c.Supplier)

	price, err := ResolvePrice(table, Selection{Region: "EMEA", Country: "UK", Category: CategoryFullDayVisit, Level: "L1"})
	require.NoError(t, err)
	assert.Equal(t, "110", price.String())

	price, err = ResolvePrice(table, Selection{Region: "EMEA", Country: "UK", Category: CategoryNetworkOperations, Level: "L1", Modifier: ModifierWithoutBackfill})
	require.NoError(t, err)
	assert.Equal(t, "400", price.String())
}

func TestTableBuilderRejectsUnplaceableRows(t *testing.T) {
	tests := []struct {
		name string
		row  FlatRow
	}{
		{"no region", FlatRow{Country: "UK", Category: CategoryFullDayVisit, Level: "L1"}},
		{"no country", FlatRow{Region: "EMEA", Category: CategoryFullDayVisit, Level: "L1"}},
		{"no category", FlatRow{Region: "EMEA", Country: "UK", Level: "L1"}},
		{"no level", FlatRow{Region: "EMEA", Country: "UK", Category: CategoryFullDayVisit}},
		{"pseudo level out of range", FlatRow{Region: "EMEA", Country: "UK", Category: CategoryNetworkOperations, Level: "L6", Modifier: ModifierWithBackfill}},
		{"pseudo without modifier", FlatRow{Region: "EMEA", Country: "UK", Category: CategoryNetworkOperations, Level: "L1"}},
		{"reserved category", FlatRow{Region: "EMEA", Country: "UK", Category: "currency", Level: "L1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewTableBuilder()
			assert.Error(t, b.Add(tt.row))
			assert.Empty(t, RegionsOf(b.Table()))
		})
	}
}
