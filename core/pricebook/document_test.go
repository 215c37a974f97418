package pricebook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obj(kv ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1])
	}
	return o
}

func TestObjectPreservesOrder(t *testing.T) {
	o := obj("b", 1, "a", 2, "c", 3)
	o.Set("a", 4)
	assert.Equal(t, []string{"b", "a", "c"}, o.Keys())
	v, ok := o.Get("a")
	require.True(t, ok)
	assert.Equal(t, 4, v)
	assert.Equal(t, 3, o.Len())

	var nilObj *Object
	assert.Equal(t, 0, nilObj.Len())
	_, ok = nilObj.Get("a")
	assert.False(t, ok)
}

func TestBuildScenario(t *testing.T) {
	doc := []any{
		obj("region", "EMEA", "countries", []any{
			obj(
				"country", "UK",
				"supplier", "Northwind",
				"currency", "GBP",
				"paymentTerms", "Net 30",
				"L1", []any{obj("withBackfill", decimal.NewFromInt(500), "withoutBackfill", decimal.NewFromInt(400))},
				"fullDayVisit", []any{obj("L1", decimal.NewFromInt(100), "L2", decimal.NewFromInt(150))},
				"serviceLevels", []any{"L1", "L2"},
				"dispatchTicket", []any{obj("Onsite", decimal.NewFromInt(60), "Remote", decimal.NewFromInt(45))},
			),
		}),
	}

	table, issues := Build(doc)
	assert.Empty(t, issues)

	assert.Equal(t, []string{"EMEA"}, RegionsOf(table))
	assert.Equal(t, []CategoryKey{CategoryNetworkOperations, CategoryFullDayVisit, CategoryDispatchTicket},
		AvailableCategories(table, "EMEA", "UK"))

	price, err := ResolvePrice(table, Selection{Region: "EMEA", Country: "UK", Category: CategoryFullDayVisit, Level: "L1"})
	require.NoError(t, err)
	assert.Equal(t, "100", price.String())

	_, err = ResolvePrice(table, Selection{Region: "EMEA", Country: "UK", Category: CategoryFullDayVisit, Level: "L3"})
	assert.True(t, IsNotFound(err))

	price, err = ResolvePrice(table, Selection{Region: "EMEA", Country: "UK", Category: CategoryNetworkOperations, Level: "L1", Modifier: ModifierWithoutBackfill})
	require.NoError(t, err)
	assert.Equal(t, "400", price.String())

	assert.Equal(t, []LevelKey{"Onsite", "Remote"}, LevelsFor(table, "EMEA", "UK", CategoryDispatchTicket))
}

func TestBuildDegradesMalformedEntries(t *testing.T) {
	doc := []any{
		"not a region",
		obj("countries", []any{}),
		obj("region", "EMEA", "countries", []any{
			obj("supplier", "nameless"),
			obj(
				"country", "UK",
				"supplier", true,
				"L1", "oops",
				"L2", []any{obj("withBackfill", "abc", "withYear", decimal.NewFromInt(1))},
				"fullDayVisit", "not a list",
				"shortTerm", []any{},
				"longTerm", []any{"bad row", obj("L1", decimal.NewFromInt(9))},
				"halfDayVisits", []any{obj("L1", "70.50", "L2", nil)},
			),
		}),
		obj("region", "APAC", "countries", "nope"),
	}

	table, issues := Build(doc)
	require.NotEmpty(t, issues)

	assert.Equal(t, []string{"EMEA", "APAC"}, RegionsOf(table))
	assert.Equal(t, []string{"UK"}, CountriesOf(table, "EMEA"))
	assert.Empty(t, CountriesOf(table, "APAC"))

	c, ok := LookupCountry(table, "EMEA", "UK")
	require.True(t, ok)
	assert.Empty(t, c.Supplier)

	// non-list category value still listed, resolves to nothing
	assert.Contains(t, AvailableCategories(table, "EMEA", "UK"), CategoryFullDayVisit)
	assert.Empty(t, LevelsFor(table, "EMEA", "UK", CategoryFullDayVisit))
	assert.Empty(t, LevelsFor(table, "EMEA", "UK", CategoryShortTerm))

	// a malformed first row hides the rest of the offer
	_, err := ResolvePrice(table, Selection{Region: "EMEA", Country: "UK", Category: CategoryLongTerm, Level: "L1"})
	assert.True(t, IsNotFound(err))

	// numeric strings are prices, nulls are dropped
	price, err := ResolvePrice(table, Selection{Region: "EMEA", Country: "UK", Category: CategoryHalfDayVisits, Level: "L1"})
	require.NoError(t, err)
	assert.Equal(t, "70.5", price.String())
	assert.Equal(t, []LevelKey{"L1"}, LevelsFor(table, "EMEA", "UK", CategoryHalfDayVisits))

	// bad backfill price and unknown modifier are dropped
	_, err = ResolvePrice(table, Selection{Region: "EMEA", Country: "UK", Category: CategoryNetworkOperations, Level: "L2", Modifier: ModifierWithBackfill})
	assert.True(t, IsNotFound(err))
	_, err = ResolvePrice(table, Selection{Region: "EMEA", Country: "UK", Category: CategoryNetworkOperations, Level: "L1", Modifier: ModifierWithBackfill})
	assert.True(t, IsNotFound(err))

	paths := make([]string, 0, len(issues))
	for _, i := range issues {
		paths = append(paths, i.Path)
	}
	assert.Contains(t, paths, "[0]")
	assert.Contains(t, paths, "[2].countries[1].L1")
	assert.Contains(t, paths, "[2].countries[1].fullDayVisit")
	assert.Contains(t, paths, "[3].countries")
}

func TestBuildDocumentShapes(t *testing.T) {
	single := obj("region", "NA", "countries", []any{obj("country", "US")})
	table, issues := Build(single)
	assert.Empty(t, issues)
	assert.Equal(t, []string{"US"}, CountriesOf(table, "NA"))

	wrapped := obj("regions", []any{single})
	table, issues = Build(wrapped)
	assert.Empty(t, issues)
	assert.Equal(t, []string{"NA"}, RegionsOf(table))

	table, issues = Build(nil)
	assert.Len(t, issues, 1)
	assert.Empty(t, RegionsOf(table))

	_, issues = Build("scalar")
	assert.Len(t, issues, 1)

	_, issues = Build(obj("regions", "scalar"))
	assert.Len(t, issues, 1)
}

func TestToDecimal(t *testing.T) {
	tests := []struct {
		in      any
		want    string
		wantErr bool
	}{
		{decimal.RequireFromString("12.5"), "12.5", false},
		{"99.90", "99.9", false},
		{42, "42", false},
		{int64(7), "7", false},
		{1.25, "1.25", false},
		{"n/a", "", true},
		{true, "", true},
		{nil, "", true},
	}
	for _, tt := range tests {
		got, err := ToDecimal(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestIssueError(t *testing.T) {
	assert.Equal(t, "[0].countries: expected a list, got string", Issue{Path: "[0].countries", Message: "expected a list, got string"}.Error())
	assert.Equal(t, "empty document", Issue{Message: "empty document"}.Error())
}
