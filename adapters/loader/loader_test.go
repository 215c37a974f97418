package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricebook/core/pricebook"
	"pricebook/internal/errors"
)

func TestLoadAllFormatsAgree(t *testing.T) {
	files := map[Format]string{
		FormatJSON: "pricebook.json",
		FormatYAML: "pricebook.yaml",
		FormatHCL:  "pricebook.hcl",
		FormatCSV:  "pricebook.csv",
		FormatHTML: "pricebook.html",
	}

	for format, file := range files {
		t.Run(string(format), func(t *testing.T) {
			res, err := Load(context.Background(), filepath.Join("testdata", file))
			require.NoError(t, err)
			assert.Equal(t, format, res.Format)
			assert.Empty(t, res.Issues)

			table := res.Table
			assert.Equal(t, []string{"EMEA", "APAC"}, pricebook.RegionsOf(table))
			assert.Equal(t, []string{"UK", "Germany"}, pricebook.CountriesOf(table, "EMEA"))
			assert.Equal(t, []pricebook.CategoryKey{
				pricebook.CategoryNetworkOperations,
				pricebook.CategoryFullDayVisit,
				pricebook.CategoryHalfDayVisits,
				pricebook.CategoryDispatchTicket,
			}, pricebook.AvailableCategories(table, "EMEA", "UK"))

			assert.Equal(t, []string{"L1", "L2"}, pricebook.LevelsFor(table, "EMEA", "UK", pricebook.CategoryHalfDayVisits))
			assert.Equal(t, []string{"Onsite", "Remote"}, pricebook.LevelsFor(table, "EMEA", "UK", pricebook.CategoryDispatchTicket))
			assert.Equal(t, []string{"Next Business Day", "4 Hour"}, pricebook.LevelsFor(table, "APAC", "Japan", pricebook.CategoryDispatchPricing))

			uk := pricebook.Selection{Region: "EMEA", Country: "UK"}
			cases := []struct {
				sel  pricebook.Selection
				want string
			}{
				{uk.WithCategory(pricebook.CategoryFullDayVisit).WithLevel("L1"), "100"},
				{uk.WithCategory(pricebook.CategoryDispatchTicket).WithLevel("Onsite"), "60"},
				{uk.WithCategory(pricebook.CategoryNetworkOperations).WithLevel("L1").WithModifier(pricebook.ModifierWithBackfill), "500"},
				{uk.WithCategory(pricebook.CategoryNetworkOperations).WithLevel("L2").WithModifier(pricebook.ModifierWithBackfill), "650.25"},
				{uk.WithCategory(pricebook.CategoryNetworkOperations).WithLevel("L1").WithModifier(pricebook.ModifierWithoutBackfill), "400"},
			}
			for _, c := range cases {
				price, err := pricebook.ResolvePrice(table, c.sel)
				require.NoError(t, err, "%+v", c.sel)
				assert.Equal(t, c.want, price.String(), "%+v", c.sel)
			}

			_, err = pricebook.ResolvePrice(table, uk.WithCategory(pricebook.CategoryFullDayVisit).WithLevel("L3"))
			assert.True(t, pricebook.IsNotFound(err))

			q := pricebook.Quote(table, pricebook.Selection{Region: "EMEA", Country: "Germany", Category: pricebook.CategoryShortTerm, Level: "L1"})
			assert.True(t, q.Found)
			assert.Equal(t, "Rheinland IT", q.Supplier)
			assert.Equal(t, "EUR", q.Currency)
			assert.Equal(t, "Net 45", q.PaymentTerms)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	for path, want := range map[string]Format{
		"a.JSON":     FormatJSON,
		"a.yml":      FormatYAML,
		"a.yaml":     FormatYAML,
		"dir/b.hcl":  FormatHCL,
		"sheet.csv":  FormatCSV,
		"export.htm": FormatHTML,
	} {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := DetectFormat("book.xlsx")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotSupported))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Load(ctx, filepath.Join("testdata", "pricebook.json"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeSyntaxErrors(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatJSON, `[{"region": "EMEA",`},
		{FormatJSON, `[{"region": "EMEA"}] trailing`},
		{FormatYAML, "- region: EMEA\n  countries: [\n"},
		{FormatYAML, "a: &x\n  b: *x\n"},
		{FormatYAML, "- &x [*x]\n"},
		{FormatYAML, "- country: UK\n  <<: 5\n"},
		{FormatHCL, `region "EMEA" {`},
		{FormatCSV, "region,country\nEMEA,UK,extra\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			_, err := Decode(tt.format, strings.NewReader(tt.input), "input")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeParsing), err.Error())
		})
	}

	_, err := Decode("xlsx", strings.NewReader(""), "input")
	assert.True(t, errors.IsType(err, errors.TypeNotSupported))
}

func TestDecodeEmptyDocuments(t *testing.T) {
	for _, format := range Formats() {
		t.Run(string(format), func(t *testing.T) {
			res, err := Decode(format, strings.NewReader(""), "empty")
			require.NoError(t, err)
			assert.Empty(t, pricebook.RegionsOf(res.Table))
			if format != FormatHCL {
				assert.NotEmpty(t, res.Issues)
			}
		})
	}
}

func TestDecodeHCLReportsIgnoredContent(t *testing.T) {
	src := `
owner = "ops"

region "EMEA" {
  currency = "EUR"

  country "UK" {
    fullDayVisit = [{ L1 = 100 }]
    halfDayVisits = [{ L1 = upper("x") }]
  }

  office "London" {}
}

depot {}
`
	res, err := Decode(FormatHCL, strings.NewReader(src), "book.hcl")
	require.NoError(t, err)
	assert.Len(t, res.Issues, 5)

	price, err := pricebook.ResolvePrice(res.Table, pricebook.Selection{Region: "EMEA", Country: "UK", Category: pricebook.CategoryFullDayVisit, Level: "L1"})
	require.NoError(t, err)
	assert.Equal(t, "100", price.String())
	assert.Equal(t, []pricebook.CategoryKey{pricebook.CategoryNetworkOperations, pricebook.CategoryFullDayVisit},
		pricebook.AvailableCategories(res.Table, "EMEA", "UK"))
}

func TestDecodeHCLIgnoredAttributesInSourceOrder(t *testing.T) {
	src := `
zeta  = 1
alpha = 2
mid   = 3

region "EMEA" {
  owner    = "ops"
  currency = "EUR"
  badge    = "b"

  country "UK" {
    fullDayVisit = [{ L1 = 100 }]
  }
}
`
	for i := 0; i < 5; i++ {
		res, err := Decode(FormatHCL, strings.NewReader(src), "book.hcl")
		require.NoError(t, err)
		var got []string
		for _, issue := range res.Issues {
			got = append(got, issue.Message)
		}
		assert.Equal(t, []string{
			`top-level attribute "zeta" ignored`,
			`top-level attribute "alpha" ignored`,
			`top-level attribute "mid" ignored`,
			`attribute "owner" ignored in region "EMEA"`,
			`attribute "currency" ignored in region "EMEA"`,
			`attribute "badge" ignored in region "EMEA"`,
		}, got)
	}
}

func TestDecodeFlatSheetsReportBadRows(t *testing.T) {
	csv := strings.Join([]string{
		"region,country,category,level,modifier,price",
		"EMEA,UK,fullDayVisit,L1,,100",
		"EMEA,UK,fullDayVisit,L2,,n/a",
		"EMEA,UK,networkOperationsLevels,L1,withYear,10",
		",UK,fullDayVisit,L1,,100",
	}, "\n")

	res, err := Decode(FormatCSV, strings.NewReader(csv), "sheet.csv")
	require.NoError(t, err)
	require.Len(t, res.Issues, 3)
	assert.Equal(t, "line 3", res.Issues[0].Path)
	assert.Equal(t, []string{"L1"}, pricebook.LevelsFor(res.Table, "EMEA", "UK", pricebook.CategoryFullDayVisit))

	html := `<table><tr><td>Region</td><td>Country</td><td>Category</td><td>Level</td><td>Price</td><td>Comment</td></tr>
<tr><td>EMEA</td><td>UK</td><td>shortTerm</td><td>L1</td><td>1,000</td><td>x</td></tr>
<tr><td>EMEA</td><td>UK</td><td>shortTerm</td><td>L2</td><td>1200</td><td>y</td></tr></table>`
	res, err = Decode(FormatHTML, strings.NewReader(html), "sheet.html")
	require.NoError(t, err)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "row 1", res.Issues[0].Path)
	assert.Equal(t, []string{"L2"}, pricebook.LevelsFor(res.Table, "EMEA", "UK", pricebook.CategoryShortTerm))
}

func TestDecodeJSONKeepsKeyOrderAndPrecision(t *testing.T) {
	src := `{"region":"NA","countries":[{"country":"US","longTerm":[{"L3":1.10,"L1":0.1,"L2":12345678901234567890}]}]}`
	res, err := Decode(FormatJSON, strings.NewReader(src), "one.json")
	require.NoError(t, err)

	assert.Equal(t, []string{"L3", "L1", "L2"}, pricebook.LevelsFor(res.Table, "NA", "US", pricebook.CategoryLongTerm))
	price, err := pricebook.ResolvePrice(res.Table, pricebook.Selection{Region: "NA", Country: "US", Category: pricebook.CategoryLongTerm, Level: "L2"})
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567890", price.String())
}

func TestDecodeYAMLBoundsAliasExpansion(t *testing.T) {
	var b strings.Builder
	b.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 9; i++ {
		fmt.Fprintf(&b, "a%d: &a%d [", i, i)
		for j := 0; j < 9; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*a%d", i-1)
		}
		b.WriteString("]\n")
	}

	_, err := Decode(FormatYAML, strings.NewReader(b.String()), "laughs.yaml")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing), err.Error())
}

func TestDecodeYAMLMergeKeys(t *testing.T) {
	src := `
- region: EMEA
  countries:
    - &uk
      country: UK
      supplier: Northwind Field Services
      currency: GBP
      L1:
        - withBackfill: 500
      fullDayVisit:
        - L1: 100
    - <<: *uk
      country: Ireland
      currency: EUR
`
	res, err := Decode(FormatYAML, strings.NewReader(src), "merge.yaml")
	require.NoError(t, err)
	assert.Empty(t, res.Issues)

	assert.Equal(t, []string{"UK", "Ireland"}, pricebook.CountriesOf(res.Table, "EMEA"))
	assert.Equal(t, []pricebook.CategoryKey{pricebook.CategoryNetworkOperations, pricebook.CategoryFullDayVisit},
		pricebook.AvailableCategories(res.Table, "EMEA", "Ireland"))

	price, err := pricebook.ResolvePrice(res.Table, pricebook.Selection{Region: "EMEA", Country: "Ireland", Category: pricebook.CategoryFullDayVisit, Level: "L1"})
	require.NoError(t, err)
	assert.Equal(t, "100", price.String())

	region, ok := res.Table.Region("EMEA")
	require.True(t, ok)
	ireland, ok := region.Country("Ireland")
	require.True(t, ok)
	assert.Equal(t, "EUR", ireland.Currency)
	assert.Equal(t, "Northwind Field Services", ireland.Supplier)
}

func TestDecodeYAMLMergeSequencePrecedence(t *testing.T) {
	src := `
base: &base
  country: Base
  supplier: First
extra: &extra
  supplier: Second
  currency: USD
countries:
  - <<: [*base, *extra]
    country: US
`
	res, err := decodeYAML(strings.NewReader(src))
	require.NoError(t, err)

	doc := res.(*pricebook.Object)
	list, _ := doc.Get("countries")
	us := list.([]any)[0].(*pricebook.Object)
	assert.Equal(t, []string{"supplier", "currency", "country"}, us.Keys())
	for key, want := range map[string]string{"country": "US", "supplier": "First", "currency": "USD"} {
		got, _ := us.Get(key)
		assert.Equal(t, want, got, key)
	}
}
