// Package calendar holds the date arithmetic and month grid layout used by
// every calendar view. All functions are pure and operate on civil dates.
package calendar

import (
	"time"

	"cloud.google.com/go/civil"
)

// WeekConvention selects the weekday a displayed week starts on.
type WeekConvention int

const (
	MondayFirst WeekConvention = iota
	SundayFirst
)

// ParseWeekConvention maps the config/CLI spelling to a WeekConvention.
// Anything other than "sunday" yields MondayFirst.
func ParseWeekConvention(s string) WeekConvention {
	if s == "sunday" {
		return SundayFirst
	}
	return MondayFirst
}

func (c WeekConvention) String() string {
	if c == SundayFirst {
		return "sunday"
	}
	return "monday"
}

// Weekdays returns the seven weekdays in display order.
func (c WeekConvention) Weekdays() []time.Weekday {
	out := make([]time.Weekday, 7)
	for i := range out {
		out[i] = time.Weekday((int(c.firstWeekday()) + i) % 7)
	}
	return out
}

func (c WeekConvention) firstWeekday() time.Weekday {
	if c == SundayFirst {
		return time.Sunday
	}
	return time.Monday
}

// daysFromWeekStart is the position of wd inside a week (0..6).
func (c WeekConvention) daysFromWeekStart(wd time.Weekday) int {
	return (int(wd) - int(c.firstWeekday()) + 7) % 7
}

// Today returns the current local date.
func Today() civil.Date {
	return civil.DateOf(time.Now())
}

// Weekday returns the day of the week of d.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// YearDay returns the ordinal day of d within its year, 1..366.
func YearDay(d civil.Date) int {
	return d.In(time.UTC).YearDay()
}

// DaysInYear returns 365 or 366.
func DaysInYear(d civil.Date) int {
	return LastDayOfYear(d).DaysSince(FirstDayOfYear(d)) + 1
}

// Compare returns -1, 0 or +1 depending on whether a is before, equal to or
// after b.
func Compare(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func FirstDayOfMonth(d civil.Date) civil.Date {
	return civil.Date{Year: d.Year, Month: d.Month, Day: 1}
}

func LastDayOfMonth(d civil.Date) civil.Date {
	return FirstDayOfNextMonth(d).AddDays(-1)
}

func FirstDayOfYear(d civil.Date) civil.Date {
	return civil.Date{Year: d.Year, Month: time.January, Day: 1}
}

func LastDayOfYear(d civil.Date) civil.Date {
	return civil.Date{Year: d.Year, Month: time.December, Day: 31}
}

// FirstDayOfNextMonth normalizes through time.Date so December rolls into
// January of the following year.
func FirstDayOfNextMonth(d civil.Date) civil.Date {
	return civil.DateOf(time.Date(d.Year, d.Month+1, 1, 0, 0, 0, 0, time.UTC))
}

// FirstDayOfWeekBeforeFirstDayOfMonth walks back from the first day of d's
// month to the start of that week (0 to 6 days).
func FirstDayOfWeekBeforeFirstDayOfMonth(d civil.Date, conv WeekConvention) civil.Date {
	first := FirstDayOfMonth(d)
	return first.AddDays(-conv.daysFromWeekStart(Weekday(first)))
}

// LastDayOfWeekAfterLastDayOfMonth walks forward from the last day of d's
// month to the end of that week (0 to 6 days).
func LastDayOfWeekAfterLastDayOfMonth(d civil.Date, conv WeekConvention) civil.Date {
	last := LastDayOfMonth(d)
	return last.AddDays(6 - conv.daysFromWeekStart(Weekday(last)))
}
