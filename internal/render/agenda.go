package render

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"termcal/internal/calendar"
	"termcal/internal/model"
	"termcal/internal/theme"
)

const (
	agendaDateLayout = "Mon, Jan, _2"
	agendaTimeLayout = "15:04"
)

// AgendaLine formats one occurrence, e.g. "Thu, Jan,  1: New Year" or
// "Mon, Jan,  4 (09:00): Standup" for timed events.
func AgendaLine(o model.Occurrence) string {
	when := o.Date.In(time.UTC).Format(agendaDateLayout)
	if o.Event != nil && !o.Event.AllDay {
		when += " (" + o.Start.Format(agendaTimeLayout) + ")"
	}
	summary := ""
	if o.Event != nil {
		summary = strings.ReplaceAll(o.Event.Summary, `\`, "")
	}
	return when + ": " + summary
}

// Agenda lists occurrences in the given order, one per line, each with a
// bullet styled by its calendar source.
func (r *Renderer) Agenda(occurrences []model.Occurrence, res *theme.Resolver) string {
	var b strings.Builder
	b.WriteString("Agenda\n")
	for _, o := range occurrences {
		b.WriteString(r.paint("·", res.OccurrenceStyle(o)))
		b.WriteString(" ")
		b.WriteString(AgendaLine(o))
		b.WriteString("\n")
	}
	return b.String()
}

// YearProgress reports how far ref is into its year.
func (r *Renderer) YearProgress(ref civil.Date) string {
	day := calendar.YearDay(ref)
	total := calendar.DaysInYear(ref)
	percent := float64(day*100) / float64(total)

	bold := r.lg.NewStyle().Bold(true)
	var b strings.Builder
	b.WriteString(bold.Render(fmt.Sprintf("Yearprogress (%d):", ref.Year)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%.3f%% of %d\n", percent, ref.Year)
	fmt.Fprintf(&b, "Day number %d, %d left\n", day, total-day)
	return b.String()
}
