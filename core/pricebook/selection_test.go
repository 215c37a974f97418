package pricebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullSelection() Selection {
	return Selection{
		Region:   "EMEA",
		Country:  "UK",
		Category: CategoryNetworkOperations,
		Level:    "L1",
		Modifier: ModifierWithBackfill,
	}
}

func TestSelectionCascadingReset(t *testing.T) {
	sel := fullSelection()

	assert.Equal(t, Selection{Region: "APAC"}, sel.WithRegion("APAC"))
	assert.Equal(t, Selection{Region: "EMEA", Country: "Germany"}, sel.WithCountry("Germany"))
	assert.Equal(t, Selection{Region: "EMEA", Country: "UK", Category: CategoryFullDayVisit}, sel.WithCategory(CategoryFullDayVisit))

	// level and modifier are siblings
	assert.Equal(t, ModifierWithBackfill, sel.WithLevel("L2").Modifier)
	assert.Equal(t, LevelKey("L1"), sel.WithModifier(ModifierWithoutBackfill).Level)

	// the original value is untouched
	assert.Equal(t, fullSelection(), sel)
}

func TestSelectionWithByField(t *testing.T) {
	sel := fullSelection()
	for _, f := range Fields() {
		next := sel.With(f, "x")
		assert.Equal(t, "x", next.Get(f))
		for _, dep := range f.Dependents() {
			assert.Empty(t, next.Get(dep), "%s should clear %s", f, dep)
		}
	}
}

func TestSelectionIsComplete(t *testing.T) {
	assert.True(t, fullSelection().IsComplete())
	assert.False(t, fullSelection().WithModifier("").IsComplete())
	assert.False(t, fullSelection().WithModifier("withYear").IsComplete())
	assert.False(t, fullSelection().WithLevel("").IsComplete())
	assert.True(t, Selection{Region: "EMEA", Country: "UK", Category: CategoryFullDayVisit, Level: "L1"}.IsComplete())
	assert.False(t, Selection{}.IsComplete())
}

func TestCategoryLabel(t *testing.T) {
	tests := map[CategoryKey]string{
		CategoryNetworkOperations: "Network Operations Levels",
		CategoryHalfDayVisits:     "Half Day Visit",
		CategoryDispatchPricing:   "Dispatch Pricing",
		"afterHoursSupport":       "After Hours Support",
		"on_call":                 "On Call",
		"SLA":                     "SLA",
		"":                        "",
	}
	for key, want := range tests {
		assert.Equal(t, want, CategoryLabel(key), string(key))
	}
}

func TestVocabulary(t *testing.T) {
	assert.True(t, CategoryDispatchTicket.HasFreeFormLevels())
	assert.True(t, CategoryDispatchPricing.HasFreeFormLevels())
	assert.False(t, CategoryFullDayVisit.HasFreeFormLevels())
	assert.True(t, CategoryNetworkOperations.IsPseudo())

	for _, k := range []string{"country", "L1", "L5", "supplier", "currency", "paymentTerms", "serviceLevels"} {
		assert.True(t, IsReservedKey(k), k)
	}
	assert.False(t, IsReservedKey("fullDayVisit"))
	assert.False(t, IsReservedKey("L6"))

	assert.True(t, ModifierWithBackfill.IsValid())
	assert.False(t, Modifier("with_year").IsValid())
	assert.Len(t, KnownCategories(), 7)
}
