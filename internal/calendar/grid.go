package calendar

import "cloud.google.com/go/civil"

// Month is one displayed month: its first day plus every date shown for it,
// padded to whole weeks.
type Month struct {
	First civil.Date
	Dates []civil.Date
}

// Weeks splits the padded dates into rows of seven.
func (m Month) Weeks() [][]civil.Date {
	weeks := make([][]civil.Date, 0, len(m.Dates)/7)
	for i := 0; i+7 <= len(m.Dates); i += 7 {
		weeks = append(weeks, m.Dates[i:i+7])
	}
	return weeks
}

// Generate returns one padded Month for every month touched by
// [begin, end]. Callers must ensure begin is not after end.
func Generate(begin, end civil.Date, conv WeekConvention) []Month {
	var months []Month
	for first := FirstDayOfMonth(begin); !first.After(end); first = FirstDayOfNextMonth(first) {
		months = append(months, padMonth(first, conv))
	}
	return months
}

func padMonth(first civil.Date, conv WeekConvention) Month {
	from := FirstDayOfWeekBeforeFirstDayOfMonth(first, conv)
	to := LastDayOfWeekAfterLastDayOfMonth(first, conv)

	dates := make([]civil.Date, 0, to.DaysSince(from)+1)
	for d := from; !d.After(to); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return Month{First: first, Dates: dates}
}

// ChunkIntoColumns groups months into rows of n for side-by-side output.
// The last row keeps whatever is left; it is never padded.
func ChunkIntoColumns(months []Month, n int) [][]Month {
	if n < 1 {
		n = 1
	}
	rows := make([][]Month, 0, (len(months)+n-1)/n)
	for i := 0; i < len(months); i += n {
		end := min(i+n, len(months))
		rows = append(rows, months[i:end])
	}
	return rows
}
