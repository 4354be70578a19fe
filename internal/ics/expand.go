package ics

import (
	"errors"
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"termcal/internal/calendar"
	"termcal/internal/model"
)

const endOfDay = 23*time.Hour + 59*time.Minute + 59*time.Second

// ExpandConfig controls how events are turned into dated occurrences.
type ExpandConfig struct {
	// Location is the zone timed events are converted to before their date
	// is taken. If nil, time.Local is used. All-day events are always
	// evaluated as floating UTC dates.
	Location *time.Location

	// Begin / End define the inclusive date window for occurrences.
	Begin civil.Date
	End   civil.Date
}

func (cfg ExpandConfig) location(allDay bool) *time.Location {
	if allDay {
		return time.UTC
	}
	if cfg.Location == nil {
		return time.Local
	}
	return cfg.Location
}

// ExpandOccurrences expands every event into occurrences within the window
// and returns them ordered by date, then start time. Occurrences produced by
// different rule sets of the same event are kept even when they share a
// date.
func ExpandOccurrences(events []model.Event, cfg ExpandConfig) ([]model.Occurrence, error) {
	if cfg.End.Before(cfg.Begin) {
		return nil, errors.New("expand: End is before Begin")
	}

	out := make([]model.Occurrence, 0)
	for i := range events {
		out = append(out, Instances(&events[i], cfg)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := calendar.Compare(out[i].Date, out[j].Date); c != 0 {
			return c < 0
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}

// Instances returns the occurrences of a single event inside the window.
func Instances(ev *model.Event, cfg ExpandConfig) []model.Occurrence {
	if len(ev.Recurrences) == 0 {
		return singleInstances(ev, cfg)
	}
	return recurringInstances(ev, cfg)
}

// singleInstances walks the event's own span, so a long query window costs
// nothing for a short event.
func singleInstances(ev *model.Event, cfg ExpandConfig) []model.Occurrence {
	loc := cfg.location(ev.AllDay)
	start := ev.Start.In(loc)
	startDate := civil.DateOf(start)

	endDate := startDate
	if ev.HasEnd() {
		endDate = civil.DateOf(ev.End.In(cfg.location(ev.EndAllDay)))
		// Date-only events commonly use an exclusive DTEND one day later.
		if ev.AllDay && ev.EndAllDay && endDate == startDate.AddDays(1) {
			endDate = startDate
		}
		if endDate.Before(startDate) {
			endDate = startDate
		}
	}

	from := startDate
	if from.Before(cfg.Begin) {
		from = cfg.Begin
	}
	to := endDate
	if to.After(cfg.End) {
		to = cfg.End
	}

	var out []model.Occurrence
	for d := from; !d.After(to); d = d.AddDays(1) {
		out = append(out, model.Occurrence{Date: d, Event: ev, Style: ev.Style, Start: start})
	}
	return out
}

// recurringInstances queries every rule set for the whole-day window,
// bounded by the number of days in it.
func recurringInstances(ev *model.Event, cfg ExpandConfig) []model.Occurrence {
	loc := cfg.location(ev.AllDay)
	after := cfg.Begin.In(loc)
	before := cfg.End.In(loc).Add(endOfDay)
	limit := cfg.End.DaysSince(cfg.Begin) + 1

	var out []model.Occurrence
	for _, rec := range ev.Recurrences {
		for _, t := range rec.Between(after, before, limit) {
			t = t.In(loc)
			out = append(out, model.Occurrence{Date: civil.DateOf(t), Event: ev, Style: ev.Style, Start: t})
		}
	}
	return out
}
