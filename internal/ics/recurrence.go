package ics

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	appLog "termcal/internal/log"
	"termcal/internal/model"
)

// maxRecurrenceScan caps how many raw instances a single rule set may
// produce while seeking into a query window. Rules that started long before
// the window (or use SECONDLY/MINUTELY frequencies) stop here.
const maxRecurrenceScan = 500000

// ruleSet adapts an rrule.Set to model.Recurrence.
type ruleSet struct {
	set *rrule.Set
	raw string
}

// NewRecurrence builds a rule set from a raw RRULE value anchored at
// dtstart. EXDATE and RDATE values are aligned with dtstart's location.
func NewRecurrence(raw string, dtstart time.Time, exdates, rdates []time.Time) (model.Recurrence, error) {
	r, err := rrule.StrToRRule(raw)
	if err != nil {
		return nil, err
	}

	// Ensure Dtstart is set to the event's DTSTART.
	r.DTStart(dtstart)

	set := &rrule.Set{}
	set.RRule(r)
	for _, ex := range exdates {
		set.ExDate(ex.In(dtstart.Location()))
	}
	for _, rd := range rdates {
		set.RDate(rd.In(dtstart.Location()))
	}
	return &ruleSet{set: set, raw: raw}, nil
}

// Between returns the instances in [after, before], ascending, at most
// limit of them.
func (s *ruleSet) Between(after, before time.Time, limit int) []time.Time {
	if limit <= 0 || before.Before(after) {
		return nil
	}

	next := s.set.Iterator()
	out := make([]time.Time, 0)
	for scanned := 0; scanned < maxRecurrenceScan; scanned++ {
		t, ok := next()
		if !ok || t.After(before) {
			return out
		}
		if t.Before(after) {
			continue
		}
		out = append(out, t)
		if len(out) >= limit {
			return out
		}
	}

	appLog.Error("recurrence scan ceiling reached", errors.New("max scan reached"),
		"rrule", s.raw,
		"cap", maxRecurrenceScan,
	)
	return out
}
