package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "termcal/internal/log"
	"termcal/internal/model"
)

// parsedEvent is the raw view of one VEVENT before its recurrence rules are
// turned into rule sets.
type parsedEvent struct {
	UID     string
	Summary string

	Start     time.Time
	End       time.Time
	AllDay    bool
	EndAllDay bool

	RawRRules  []string
	ExDates    []time.Time
	RDates     []time.Time
	Recurrence *time.Time // RECURRENCE-ID (if present)
}

// ParseICS parses a single ICS payload into a list of events.
//
//   - DATE values (VALUE=DATE or no 'T') become all-day events stored at
//     midnight UTC. DATE-TIME values honor TZID; floating ones are read in
//     loc (time.Local when nil).
//   - Every RRULE becomes its own rule set; a malformed RRULE is logged and
//     dropped without affecting the rest of the event or file.
//   - VEVENTs carrying a RECURRENCE-ID are kept as standalone events and
//     their original instance is excluded from the recurring base event.
func ParseICS(src Source, body []byte, loc *time.Location) ([]model.Event, error) {
	if loc == nil {
		loc = time.Local
	}
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err, "id", src.ID, "location", src.describe())
		return nil, err
	}

	parsed := make([]parsedEvent, 0)
	for _, comp := range cal.Events() {
		ev, perr := parseVEvent(comp, loc)
		if perr != nil {
			// Log and skip this event, but keep parsing others.
			appLog.Error("ics vevent parse failed", perr, "id", src.ID, "location", src.describe())
			continue
		}
		parsed = append(parsed, ev)
	}

	events := buildEvents(src, parsed)
	appLog.Debug("ics parse completed", "id", src.ID, "location", src.describe(), "event_count", len(events))
	return events, nil
}

// buildEvents attaches overrides to their base events and constructs the
// recurrence rule sets.
func buildEvents(src Source, parsed []parsedEvent) []model.Event {
	overridden := make(map[string][]time.Time)
	for _, pe := range parsed {
		if pe.Recurrence != nil && pe.UID != "" {
			overridden[pe.UID] = append(overridden[pe.UID], *pe.Recurrence)
		}
	}

	events := make([]model.Event, 0, len(parsed))
	for _, pe := range parsed {
		ev := model.Event{
			SourceID:  src.ID,
			UID:       pe.UID,
			Summary:   pe.Summary,
			Style:     src.Style,
			AllDay:    pe.AllDay,
			EndAllDay: pe.EndAllDay,
			Start:     pe.Start,
			End:       pe.End,
		}

		if pe.Recurrence == nil {
			exdates := append(append([]time.Time(nil), pe.ExDates...), overridden[pe.UID]...)
			for _, raw := range pe.RawRRules {
				rec, err := NewRecurrence(raw, pe.Start, exdates, pe.RDates)
				if err != nil {
					appLog.Error("ics: dropping unparseable RRULE", err, "id", src.ID, "uid", pe.UID, "rrule", raw)
					continue
				}
				ev.Recurrences = append(ev.Recurrences, rec)
			}
		}
		events = append(events, ev)
	}
	return events
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (parsedEvent, error) {
	var out parsedEvent

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = strings.ReplaceAll(p.Value, `\`, "")
	}

	// DTSTART is the only mandatory piece.
	dtStartProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStartProp == nil || dtStartProp.Value == "" {
		return out, errors.New("missing DTSTART")
	}
	start, allDay, err := propertyTime(dtStartProp, loc)
	if err != nil {
		if fallback, ferr := ve.GetStartAt(); ferr == nil {
			start, allDay, err = fallback, false, nil
		}
	}
	if err != nil {
		return out, err
	}
	out.Start = start
	out.AllDay = allDay

	if dtEndProp := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEndProp != nil && dtEndProp.Value != "" {
		end, endAllDay, err := propertyTime(dtEndProp, start.Location())
		if err != nil {
			if fallback, ferr := ve.GetEndAt(); ferr == nil {
				end, endAllDay, err = fallback, false, nil
			}
		}
		if err == nil {
			out.End = end
			out.EndAllDay = endAllDay
		}
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyRrule) {
		if v := strings.TrimSpace(p.Value); v != "" {
			out.RawRRules = append(out.RawRRules, v)
		}
	}

	out.ExDates = propertyTimes(ve.GetProperties(ical.ComponentPropertyExdate), start.Location())
	out.RDates = propertyTimes(ve.GetProperties("RDATE"), start.Location())

	// RECURRENCE-ID (overridden instance)
	// Use raw property name to avoid constant mismatch.
	if ridProp := ve.GetProperty("RECURRENCE-ID"); ridProp != nil {
		if t, _, err := propertyTime(ridProp, start.Location()); err == nil {
			out.Recurrence = &t
		}
	}

	return out, nil
}

// propertyTime parses a DATE or DATE-TIME property honoring VALUE and TZID.
// Floating date-times are read in loc.
func propertyTime(p *ical.IANAProperty, loc *time.Location) (time.Time, bool, error) {
	v := strings.TrimSpace(p.Value)
	dateOnly := !strings.Contains(v, "T")
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		dateOnly = true
	}
	if dateOnly {
		t, err := parseICSTime(v, time.UTC)
		return t, true, err
	}
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		if tz, err := time.LoadLocation(tzs[0]); err == nil {
			loc = tz
		}
	}
	t, err := parseICSTime(v, loc)
	return t, false, err
}

// propertyTimes collects comma separated EXDATE/RDATE values. Values that
// cannot be parsed are skipped.
func propertyTimes(props []*ical.IANAProperty, loc *time.Location) []time.Time {
	var out []time.Time
	for _, p := range props {
		if p.Value == "" {
			continue
		}
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			single := *p
			single.Value = part
			if t, _, err := propertyTime(&single, loc); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// parseICSTime parses a basic ICS date/date-time string into time.Time.
// UTC forms keep UTC; everything else is read in loc.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	// UTC form, e.g., 20250101T090000Z
	if strings.HasSuffix(v, "Z") {
		const layout = "20060102T150405Z"
		return time.Parse(layout, v)
	}

	// Local date-time, e.g., 20250101T090000
	if strings.Contains(v, "T") {
		const layout = "20060102T150405"
		return time.ParseInLocation(layout, v, loc)
	}

	// Date-only (all-day), e.g., 20250101
	const layoutDate = "20060102"
	return time.ParseInLocation(layoutDate, v, loc)
}
