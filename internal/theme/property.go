// Package theme holds date styling rules and resolves them, together with
// event occurrences, into the attribute sequence for one calendar cell.
package theme

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"gopkg.in/yaml.v3"

	"termcal/internal/calendar"
)

// DateProperty is a named predicate over a date in its display context.
type DateProperty int

const (
	FirstDayOfMonth DateProperty = iota
	BeforeFirstDayOfMonth
	BeforeCurrentDate
	CurrentDate
	AfterCurrentDate
	AfterLastDayOfMonth
	LastDayOfMonth
	IsEvent
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
	Odd
	Even
)

var propertyNames = [...]string{
	FirstDayOfMonth:       "FirstDayOfMonth",
	BeforeFirstDayOfMonth: "BeforeFirstDayOfMonth",
	BeforeCurrentDate:     "BeforeCurrentDate",
	CurrentDate:           "CurrentDate",
	AfterCurrentDate:      "AfterCurrentDate",
	AfterLastDayOfMonth:   "AfterLastDayOfMonth",
	LastDayOfMonth:        "LastDayOfMonth",
	IsEvent:               "IsEvent",
	Monday:                "Monday",
	Tuesday:               "Tuesday",
	Wednesday:             "Wednesday",
	Thursday:              "Thursday",
	Friday:                "Friday",
	Saturday:              "Saturday",
	Sunday:                "Sunday",
	Odd:                   "Odd",
	Even:                  "Even",
}

var weekdayProperty = map[DateProperty]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// ParseDateProperty maps a theme-file name to its DateProperty.
func ParseDateProperty(s string) (DateProperty, error) {
	for p, name := range propertyNames {
		if name == s {
			return DateProperty(p), nil
		}
	}
	return 0, fmt.Errorf("unknown date property %q", s)
}

func (p DateProperty) String() string {
	if p < 0 || int(p) >= len(propertyNames) {
		return fmt.Sprintf("DateProperty(%d)", int(p))
	}
	return propertyNames[p]
}

func (p DateProperty) MarshalYAML() (any, error) {
	return p.String(), nil
}

func (p *DateProperty) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseDateProperty(s)
	if err != nil {
		return fmt.Errorf("theme: line %d: %w", value.Line, err)
	}
	*p = parsed
	return nil
}

// Cell is the context a date is evaluated in.
type Cell struct {
	Date       civil.Date
	MonthFirst civil.Date // first day of the displayed month
	Reference  civil.Date // the user-set "today"
}

// Holds evaluates a single property. hasEvent tells whether any occurrence
// falls on the cell's date.
func (p DateProperty) Holds(c Cell, hasEvent bool) bool {
	switch p {
	case FirstDayOfMonth:
		return c.Date == c.MonthFirst
	case BeforeFirstDayOfMonth:
		return c.Date.Before(c.MonthFirst)
	case BeforeCurrentDate:
		return c.Date.Before(c.Reference)
	case CurrentDate:
		return c.Date == c.Reference
	case AfterCurrentDate:
		return c.Date.After(c.Reference)
	case AfterLastDayOfMonth:
		return c.Date.After(calendar.LastDayOfMonth(c.MonthFirst))
	case LastDayOfMonth:
		return c.Date == calendar.LastDayOfMonth(c.MonthFirst)
	case IsEvent:
		return hasEvent
	case Odd:
		return c.Date.Day%2 == 1
	case Even:
		return c.Date.Day%2 == 0
	}
	if wd, ok := weekdayProperty[p]; ok {
		return calendar.Weekday(c.Date) == wd
	}
	return false
}

// Satisfies reports whether every property holds. An empty set matches.
func Satisfies(props []DateProperty, c Cell, hasEvent bool) bool {
	for _, p := range props {
		if !p.Holds(c, hasEvent) {
			return false
		}
	}
	return true
}
