package ics

import (
	"context"
	"time"

	appLog "termcal/internal/log"
	"termcal/internal/model"
)

// LoadEvents fetches and parses every source. Sources or files that fail are
// logged and skipped so one bad calendar never blanks the whole display.
// Floating date-times are read in loc.
func LoadEvents(ctx context.Context, f *Fetcher, sources []Source, loc *time.Location) []model.Event {
	results, errs := f.FetchAll(ctx, sources)
	if len(errs) > 0 {
		appLog.Info("some calendar sources were skipped", "error_count", len(errs))
	}

	events := make([]model.Event, 0)
	for _, res := range results {
		parsed, err := ParseICS(res.Source, res.Body, loc)
		if err != nil {
			appLog.Error("ics parse failed for source", err, "id", res.Source.ID, "name", res.Name)
			continue
		}
		events = append(events, parsed...)
	}
	return events
}
