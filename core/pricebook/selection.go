package pricebook

// Field names a step of the selection path
type Field string

const (
	FieldRegion   Field = "region"
	FieldCountry  Field = "country"
	FieldCategory Field = "category"
	FieldLevel    Field = "level"
	FieldModifier Field = "modifier"
)

// Fields returns the selection fields in dependency order
func Fields() []Field {
	return []Field{FieldRegion, FieldCountry, FieldCategory, FieldLevel, FieldModifier}
}

// Dependents returns the fields that must be cleared when f changes
func (f Field) Dependents() []Field {
	switch f {
	case FieldRegion:
		return []Field{FieldCountry, FieldCategory, FieldLevel, FieldModifier}
	case FieldCountry:
		return []Field{FieldCategory, FieldLevel, FieldModifier}
	case FieldCategory:
		return []Field{FieldLevel, FieldModifier}
	default:
		return nil
	}
}

// Selection is the path a user has picked through the table.
// It is an immutable value; every With method returns a copy with dependent fields cleared.
type Selection struct {
	Region   string      `json:"region,omitempty"`
	Country  string      `json:"country,omitempty"`
	Category CategoryKey `json:"category,omitempty"`
	Level    LevelKey    `json:"level,omitempty"`
	Modifier Modifier    `json:"modifier,omitempty"`
}

// WithRegion selects a region and clears everything below it
func (s Selection) WithRegion(region string) Selection {
	return Selection{Region: region}
}

// WithCountry selects a country and clears category, level and modifier
func (s Selection) WithCountry(country string) Selection {
	return Selection{Region: s.Region, Country: country}
}

// WithCategory selects a category and clears level and modifier
func (s Selection) WithCategory(category CategoryKey) Selection {
	return Selection{Region: s.Region, Country: s.Country, Category: category}
}

// WithLevel selects a service level
func (s Selection) WithLevel(level LevelKey) Selection {
	s.Level = level
	return s
}

// WithModifier selects the backfill modifier
func (s Selection) WithModifier(m Modifier) Selection {
	s.Modifier = m
	return s
}

// With sets a field by name, applying the cascading reset
func (s Selection) With(f Field, value string) Selection {
	switch f {
	case FieldRegion:
		return s.WithRegion(value)
	case FieldCountry:
		return s.WithCountry(value)
	case FieldCategory:
		return s.WithCategory(CategoryKey(value))
	case FieldLevel:
		return s.WithLevel(value)
	case FieldModifier:
		return s.WithModifier(Modifier(value))
	}
	return s
}

// Get returns the value of a field
func (s Selection) Get(f Field) string {
	switch f {
	case FieldRegion:
		return s.Region
	case FieldCountry:
		return s.Country
	case FieldCategory:
		return string(s.Category)
	case FieldLevel:
		return s.Level
	case FieldModifier:
		return string(s.Modifier)
	}
	return ""
}

// NeedsModifier reports whether the selected category is priced per modifier
func (s Selection) NeedsModifier() bool {
	return s.Category.IsPseudo()
}

// IsComplete reports whether every field required to resolve a price is set
func (s Selection) IsComplete() bool {
	if s.Region == "" || s.Country == "" || s.Category == "" || s.Level == "" {
		return false
	}
	if s.NeedsModifier() && !s.Modifier.IsValid() {
		return false
	}
	return true
}
