// Package pricebook - Price table model and the cascading price resolution engine.
// The engine is a set of pure functions over an immutable Table and a caller-owned Selection.
package pricebook

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CategoryKey identifies a service category offered by a country
type CategoryKey string

const (
	// CategoryNetworkOperations is the pseudo-category synthesized from the fixed L1-L5 levels
	CategoryNetworkOperations CategoryKey = "networkOperationsLevels"

	CategoryFullDayVisit    CategoryKey = "fullDayVisit"
	CategoryHalfDayVisits   CategoryKey = "halfDayVisits"
	CategoryDispatchTicket  CategoryKey = "dispatchTicket"
	CategoryDispatchPricing CategoryKey = "dispatchPricing"
	CategoryShortTerm       CategoryKey = "shortTerm"
	CategoryLongTerm        CategoryKey = "longTerm"
)

// String returns the string representation
func (k CategoryKey) String() string {
	return string(k)
}

// IsPseudo reports whether k is the network operations pseudo-category
func (k CategoryKey) IsPseudo() bool {
	return k == CategoryNetworkOperations
}

// HasFreeFormLevels reports whether the category's level keys are free-form names
// rather than the fixed L-prefixed levels.
func (k CategoryKey) HasFreeFormLevels() bool {
	return k == CategoryDispatchTicket || k == CategoryDispatchPricing
}

// KnownCategories returns the enumerated category vocabulary in display order
func KnownCategories() []CategoryKey {
	return []CategoryKey{
		CategoryNetworkOperations,
		CategoryFullDayVisit,
		CategoryHalfDayVisits,
		CategoryDispatchTicket,
		CategoryDispatchPricing,
		CategoryShortTerm,
		CategoryLongTerm,
	}
}

// LevelKey identifies a service level within a category
type LevelKey = string

// LevelPrefix marks level-shaped keys in ordinary categories
const LevelPrefix = "L"

// fixedLevels are the network operations levels
var fixedLevels = []LevelKey{"L1", "L2", "L3", "L4", "L5"}

// FixedLevels returns a fresh copy of the fixed L1-L5 sequence
func FixedLevels() []LevelKey {
	out := make([]LevelKey, len(fixedLevels))
	copy(out, fixedLevels)
	return out
}

// IsFixedLevel reports whether key is one of L1-L5
func IsFixedLevel(key string) bool {
	for _, l := range fixedLevels {
		if l == key {
			return true
		}
	}
	return false
}

// Modifier selects the network operations price variant
type Modifier string

const (
	ModifierWithBackfill    Modifier = "withBackfill"
	ModifierWithoutBackfill Modifier = "withoutBackfill"
)

// IsValid reports whether m is one of the two recognised modifiers
func (m Modifier) IsValid() bool {
	switch m {
	case ModifierWithBackfill, ModifierWithoutBackfill:
		return true
	}
	return false
}

// String returns the string representation
func (m Modifier) String() string {
	return string(m)
}

// Modifiers returns both modifiers, with-backfill first
func Modifiers() []Modifier {
	return []Modifier{ModifierWithBackfill, ModifierWithoutBackfill}
}

// Country record metadata keys
const (
	KeyCountry       = "country"
	KeySupplier      = "supplier"
	KeyCurrency      = "currency"
	KeyPaymentTerms  = "paymentTerms"
	KeyServiceLevels = "serviceLevels"
)

// ReservedKeys are country record keys that never name a category
var ReservedKeys = map[string]struct{}{
	KeyCountry:       {},
	"L1":             {},
	"L2":             {},
	"L3":             {},
	"L4":             {},
	"L5":             {},
	KeySupplier:      {},
	KeyCurrency:      {},
	KeyPaymentTerms:  {},
	KeyServiceLevels: {},
}

// IsReservedKey reports whether key is country metadata rather than a category
func IsReservedKey(key string) bool {
	_, ok := ReservedKeys[key]
	return ok
}

var categoryLabels = map[CategoryKey]string{
	CategoryNetworkOperations: "Network Operations Levels",
	CategoryFullDayVisit:      "Full Day Visit",
	CategoryHalfDayVisits:     "Half Day Visit",
	CategoryDispatchTicket:    "Dispatch Ticket",
	CategoryDispatchPricing:   "Dispatch Pricing",
	CategoryShortTerm:         "Short Term",
	CategoryLongTerm:          "Long Term",
}

// CategoryLabel returns the display label for a category.
// Keys outside the vocabulary are humanized: "afterHoursSupport" becomes "After Hours Support".
func CategoryLabel(key CategoryKey) string {
	if label, ok := categoryLabels[key]; ok {
		return label
	}
	return humanize(string(key))
}

func humanize(key string) string {
	if key == "" {
		return ""
	}

	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
			continue
		case i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_' && runes[i-1] != '-':
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	// Casers carry state, one per call
	return cases.Title(language.English, cases.NoLower).String(strings.Join(strings.Fields(b.String()), " "))
}
