package calendar

import (
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestMonthAndYearBoundaries(t *testing.T) {
	assert.Equal(t, date(2021, 1, 1), FirstDayOfMonth(date(2021, 1, 15)))
	assert.Equal(t, date(2021, 1, 31), LastDayOfMonth(date(2021, 1, 15)))
	assert.Equal(t, date(2024, 2, 29), LastDayOfMonth(date(2024, 2, 3)))
	assert.Equal(t, date(2023, 2, 28), LastDayOfMonth(date(2023, 2, 28)))
	assert.Equal(t, date(2021, 1, 1), FirstDayOfYear(date(2021, 2, 15)))
	assert.Equal(t, date(2021, 12, 31), LastDayOfYear(date(2021, 1, 15)))
	assert.Equal(t, date(2021, 3, 1), FirstDayOfNextMonth(date(2021, 2, 1)))
	assert.Equal(t, date(2022, 1, 1), FirstDayOfNextMonth(date(2021, 12, 31)))
}

func TestWeekPadding(t *testing.T) {
	tests := []struct {
		name  string
		conv  WeekConvention
		first civil.Date
		last  civil.Date
	}{
		{"monday", MondayFirst, date(2021, 11, 29), date(2022, 1, 2)},
		{"sunday", SundayFirst, date(2021, 11, 28), date(2022, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := date(2021, 12, 15)
			assert.Equal(t, tt.first, FirstDayOfWeekBeforeFirstDayOfMonth(d, tt.conv))
			assert.Equal(t, tt.last, LastDayOfWeekAfterLastDayOfMonth(d, tt.conv))
		})
	}
}

func TestGenerateJanuary1970(t *testing.T) {
	months := Generate(date(1970, 1, 1), date(1970, 1, 31), MondayFirst)
	require.Len(t, months, 1)

	m := months[0]
	assert.Equal(t, date(1970, 1, 1), m.First)
	require.Len(t, m.Dates, 35)
	assert.Equal(t, date(1969, 12, 29), m.Dates[0])
	assert.Equal(t, time.Monday, Weekday(m.Dates[0]))
	assert.Equal(t, date(1970, 2, 1), m.Dates[34])
	assert.Equal(t, time.Sunday, Weekday(m.Dates[34]))
	assert.Len(t, m.Weeks(), 5)
}

func TestGenerateGridProperties(t *testing.T) {
	for _, conv := range []WeekConvention{MondayFirst, SundayFirst} {
		begin := date(1999, 11, 20)
		end := date(2001, 3, 2)
		months := Generate(begin, end, conv)
		require.Len(t, months, 17)

		for _, m := range months {
			require.Zero(t, len(m.Dates)%7, "month %s", m.First)
			for i := 1; i < len(m.Dates); i++ {
				require.Equal(t, 1, m.Dates[i].DaysSince(m.Dates[i-1]))
			}
			assert.Contains(t, m.Dates, m.First)
			assert.Contains(t, m.Dates, LastDayOfMonth(m.First))

			lead := m.First.DaysSince(m.Dates[0])
			trail := m.Dates[len(m.Dates)-1].DaysSince(LastDayOfMonth(m.First))
			assert.True(t, lead >= 0 && lead <= 6)
			assert.True(t, trail >= 0 && trail <= 6)
			assert.Equal(t, conv.Weekdays()[0], Weekday(m.Dates[0]))
		}
	}
}

func TestGenerateSingleDayRange(t *testing.T) {
	months := Generate(date(2021, 6, 30), date(2021, 6, 30), SundayFirst)
	require.Len(t, months, 1)
	assert.Equal(t, date(2021, 6, 1), months[0].First)
}

func TestChunkIntoColumns(t *testing.T) {
	months := Generate(date(2021, 1, 1), date(2021, 12, 31), MondayFirst)
	rows := ChunkIntoColumns(months, 3)
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Len(t, row, 3)
	}

	five := Generate(date(2021, 1, 1), date(2021, 5, 31), MondayFirst)
	rows = ChunkIntoColumns(five, 3)
	require.Len(t, rows, 2)
	assert.Len(t, rows[1], 2)
	assert.Equal(t, date(2021, 5, 1), rows[1][1].First)

	assert.Len(t, ChunkIntoColumns(five, 0), 5)
	assert.Empty(t, ChunkIntoColumns(nil, 3))
}

func TestSpanRange(t *testing.T) {
	ref := date(2021, 1, 31)
	tests := []struct {
		span    Span
		begin   civil.Date
		end     civil.Date
		columns int
	}{
		{Span{Kind: SpanOne}, date(2021, 1, 1), date(2021, 1, 31), 1},
		{Span{Kind: SpanThree}, date(2020, 12, 1), date(2021, 2, 28), 3},
		{Span{Kind: SpanMonths, Months: 4}, date(2021, 1, 1), date(2021, 4, 30), 3},
		{Span{Kind: SpanMonths, Months: 1}, date(2021, 1, 1), date(2021, 1, 31), 1},
		{Span{Kind: SpanYear}, date(2021, 1, 1), date(2021, 12, 31), 3},
	}
	for _, tt := range tests {
		begin, end := tt.span.Range(ref)
		assert.Equal(t, tt.begin, begin)
		assert.Equal(t, tt.end, end)
		assert.Equal(t, tt.columns, tt.span.Columns())
	}
}

func TestYearDayHelpers(t *testing.T) {
	assert.Equal(t, 1, YearDay(date(1970, 1, 1)))
	assert.Equal(t, 366, DaysInYear(date(2024, 7, 1)))
	assert.Equal(t, 365, DaysInYear(date(2023, 7, 1)))
	assert.Equal(t, -1, Compare(date(2023, 7, 1), date(2023, 7, 2)))
	assert.Equal(t, 0, Compare(date(2023, 7, 1), date(2023, 7, 1)))
}

func TestParseReferenceDate(t *testing.T) {
	today := date(2021, 5, 17)

	d, err := ParseReferenceDate(nil, today)
	require.NoError(t, err)
	assert.Equal(t, today, d)

	d, err = ParseReferenceDate([]string{"2007"}, today)
	require.NoError(t, err)
	assert.Equal(t, date(2007, 5, 17), d)

	d, err = ParseReferenceDate([]string{"2007", "1", "28"}, today)
	require.NoError(t, err)
	assert.Equal(t, date(2007, 1, 28), d)

	d, err = ParseReferenceDate([]string{"2007", "1", "28", "28"}, today)
	assert.True(t, errors.Is(err, ErrAmbiguousDate))
	assert.Equal(t, today, d)

	d, err = ParseReferenceDate([]string{"2007", "2", "30"}, today)
	assert.True(t, errors.Is(err, ErrAmbiguousDate))
	assert.Equal(t, today, d)

	for _, tt := range []struct {
		args []string
		want error
	}{
		{[]string{"999999", "11", "28"}, ErrInvalidYear},
		{[]string{"foo", "1", "2"}, ErrInvalidYear},
		{[]string{"2007", "13", "28"}, ErrInvalidMonth},
		{[]string{"2007", "foo", "23"}, ErrInvalidMonth},
		{[]string{"2007", "11", "33"}, ErrInvalidDay},
		{[]string{"2007", "11", "foo"}, ErrInvalidDay},
		{[]string{"99999", "1", "1", "1"}, ErrInvalidYear},
		{[]string{"2007", "0", "32", "1"}, ErrInvalidDay},
	} {
		_, err := ParseReferenceDate(tt.args, today)
		assert.ErrorIs(t, err, tt.want, "args %v", tt.args)
	}
}
