package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
)

// SpanKind classifies how many months a calendar view shows.
type SpanKind int

const (
	SpanOne SpanKind = iota
	SpanThree
	SpanMonths
	SpanYear
)

// Span is a requested view size. Months is only used with SpanMonths.
type Span struct {
	Kind   SpanKind
	Months int
}

// Range translates the span around ref into an inclusive date range that
// always starts on a first and ends on a last day of a month.
func (s Span) Range(ref civil.Date) (begin, end civil.Date) {
	switch s.Kind {
	case SpanThree:
		begin = FirstDayOfMonth(FirstDayOfMonth(ref).AddDays(-1))
		end = LastDayOfMonth(FirstDayOfNextMonth(ref))
	case SpanMonths:
		n := max(s.Months, 1)
		begin = FirstDayOfMonth(ref)
		last := begin
		for i := 1; i < n; i++ {
			last = FirstDayOfNextMonth(last)
		}
		end = LastDayOfMonth(last)
	case SpanYear:
		begin = FirstDayOfYear(ref)
		end = LastDayOfYear(ref)
	default:
		begin = FirstDayOfMonth(ref)
		end = LastDayOfMonth(ref)
	}
	return begin, end
}

// Columns is the number of months rendered side by side.
func (s Span) Columns() int {
	if s.Kind == SpanOne || (s.Kind == SpanMonths && s.Months <= 1) {
		return 1
	}
	return 3
}

var (
	ErrInvalidYear  = errors.New("illegal year value: use 1-9999")
	ErrInvalidMonth = errors.New("illegal month value: use 1-12")
	ErrInvalidDay   = errors.New("illegal day value: use 1-31")
)

// ErrAmbiguousDate is returned together with today when the positional
// arguments cannot be turned into a date; callers log it and continue.
var ErrAmbiguousDate = errors.New("could not parse date value(s), using today")

// ParseReferenceDate builds the reference date from up to three positional
// arguments (year, month, day). Missing parts come from today. Values out of
// range are hard errors; too many arguments or a date that does not exist
// (e.g. 2007 2 30) fall back to today together with ErrAmbiguousDate.
func ParseReferenceDate(args []string, today civil.Date) (civil.Date, error) {
	year, month, day := today.Year, int(today.Month), today.Day

	if len(args) >= 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > 9999 {
			return civil.Date{}, fmt.Errorf("%w: %s", ErrInvalidYear, args[0])
		}
		year = n
	}
	if len(args) >= 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 || n > 12 {
			return civil.Date{}, fmt.Errorf("%w: %s", ErrInvalidMonth, args[1])
		}
		month = n
	}
	if len(args) >= 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 0 || n > 31 {
			return civil.Date{}, fmt.Errorf("%w: %s", ErrInvalidDay, args[2])
		}
		day = n
	}
	if len(args) > 3 {
		return today, ErrAmbiguousDate
	}

	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return today, ErrAmbiguousDate
	}
	return d, nil
}
