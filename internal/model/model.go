package model

import (
	"time"

	"cloud.google.com/go/civil"

	"termcal/internal/style"
)

// Recurrence is a recurrence rule set reduced to the one query the expander
// needs: every occurrence start in [after, before], at most limit of them.
type Recurrence interface {
	Between(after, before time.Time, limit int) []time.Time
}

// Event represents a logical calendar event before recurrence expansion.
type Event struct {
	SourceID string // calendar source ID (e.g., config ICS ID)
	UID      string // iCalendar UID

	Summary string

	// Style is the style of the calendar source, copied in at parse time.
	Style style.Rule

	// AllDay is set when DTSTART is a DATE value; EndAllDay likewise for
	// DTEND. Date-only values are stored at midnight UTC.
	AllDay    bool
	EndAllDay bool

	Start time.Time
	// End is zero when the source had no DTEND.
	End time.Time

	// Recurrences holds one entry per RRULE. Empty means a single event.
	Recurrences []Recurrence
}

// HasEnd reports whether the source carried an explicit end.
func (e Event) HasEnd() bool {
	return !e.End.IsZero()
}

// Occurrence represents a single concrete date on which an event is active,
// carrying the style of the calendar source it came from.
type Occurrence struct {
	Date  civil.Date
	Event *Event
	Style style.Rule

	// Start is the instance start in the display location, used to order
	// agenda entries within a day.
	Start time.Time
}
