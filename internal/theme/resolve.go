package theme

import (
	"sort"

	"cloud.google.com/go/civil"

	"termcal/internal/model"
	"termcal/internal/style"
)

// Resolve returns the attribute sequence for one date. Matching date styles
// are collected in theme order, followed by the rule of every occurrence on
// that date; rules not allowed under variant are dropped and the rest are
// stably sorted by weight before their attributes are concatenated.
//
// An empty theme with no occurrences yields nil.
func Resolve(date, monthFirst, reference civil.Date, occurrences []model.Occurrence, styles []DateStyle, variant style.Variant) []style.Attribute {
	var onDate []model.Occurrence
	for _, o := range occurrences {
		if o.Date == date {
			onDate = append(onDate, o)
		}
	}
	return resolve(Cell{Date: date, MonthFirst: monthFirst, Reference: reference}, onDate, styles, variant)
}

func resolve(c Cell, onDate []model.Occurrence, styles []DateStyle, variant style.Variant) []style.Attribute {
	hasEvent := len(onDate) > 0

	rules := make([]style.Rule, 0, len(styles)+len(onDate))
	for _, ds := range styles {
		if Satisfies(ds.Properties, c, hasEvent) {
			rules = append(rules, ds.Rule)
		}
	}
	for _, o := range onDate {
		rules = append(rules, o.Style)
	}

	kept := rules[:0]
	for _, r := range rules {
		if r.Filter.Allows(variant) {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Weight < kept[j].Weight })

	var out []style.Attribute
	for _, r := range kept {
		out = append(out, r.Attributes...)
	}
	return out
}

// Resolver resolves many cells against the same theme, reference date and
// occurrences. Occurrences are indexed by date once.
type Resolver struct {
	theme     Theme
	reference civil.Date
	variant   style.Variant
	byDate    map[civil.Date][]model.Occurrence
}

// NewResolver indexes occurrences for repeated lookups.
func NewResolver(t Theme, reference civil.Date, variant style.Variant, occurrences []model.Occurrence) *Resolver {
	byDate := make(map[civil.Date][]model.Occurrence)
	for _, o := range occurrences {
		byDate[o.Date] = append(byDate[o.Date], o)
	}
	return &Resolver{theme: t, reference: reference, variant: variant, byDate: byDate}
}

// Cell resolves date as displayed in the month starting at monthFirst.
// The result equals Resolve with the same inputs.
func (r *Resolver) Cell(date, monthFirst civil.Date) []style.Attribute {
	c := Cell{Date: date, MonthFirst: monthFirst, Reference: r.reference}
	return resolve(c, r.byDate[date], r.theme.Date, r.variant)
}

// Occurrences returns the occurrences on date in expansion order.
func (r *Resolver) Occurrences(date civil.Date) []model.Occurrence {
	return r.byDate[date]
}

// Variant is the active display variant.
func (r *Resolver) Variant() style.Variant {
	return r.variant
}

// OccurrenceStyle returns the attributes of an occurrence's own rule, or
// nil when its filter excludes the active variant.
func (r *Resolver) OccurrenceStyle(o model.Occurrence) []style.Attribute {
	if !o.Style.Filter.Allows(r.variant) {
		return nil
	}
	return o.Style.Attributes
}
