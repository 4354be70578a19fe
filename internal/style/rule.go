package style

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Variant is the active display theme.
type Variant int

const (
	VariantLight Variant = iota
	VariantDark
)

// ParseVariant accepts "dark" or "light" (case-insensitive). Anything else
// is light.
func ParseVariant(s string) Variant {
	if strings.EqualFold(s, "dark") {
		return VariantDark
	}
	return VariantLight
}

func (v Variant) String() string {
	if v == VariantDark {
		return "dark"
	}
	return "light"
}

// ThemeFilter restricts a Rule to one Variant, or none.
type ThemeFilter int

const (
	FilterAny ThemeFilter = iota
	FilterDark
	FilterLight
)

// Allows reports whether a rule with this filter applies under v.
func (f ThemeFilter) Allows(v Variant) bool {
	switch f {
	case FilterDark:
		return v == VariantDark
	case FilterLight:
		return v == VariantLight
	default:
		return true
	}
}

func (f ThemeFilter) String() string {
	switch f {
	case FilterDark:
		return "Dark"
	case FilterLight:
		return "Light"
	default:
		return "None"
	}
}

func (f ThemeFilter) MarshalYAML() (any, error) {
	return f.String(), nil
}

func (f *ThemeFilter) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		*f = FilterDark
	case "light":
		*f = FilterLight
	case "", "none", "any":
		*f = FilterAny
	default:
		return fmt.Errorf("style: line %d: unknown styletype %q", value.Line, s)
	}
	return nil
}

// Rule is a weighted attribute list. Rules with a higher weight are applied
// later and win conflicts.
type Rule struct {
	Attributes []Attribute `yaml:"stylenames"`
	Weight     int         `yaml:"weight"`
	Filter     ThemeFilter `yaml:"styletype"`
}
