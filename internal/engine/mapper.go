package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-ctfcal/internal/config"
)

// WeightFilter keeps events whose weight does not exceed maxWeight.
// A maxWeight of zero disables filtering.
func WeightFilter(maxWeight float64) func(RawEvent) bool {
	return func(e RawEvent) bool {
		return maxWeight == config.NoWeightFilter || e.Weight <= maxWeight
	}
}

// FilterEvents returns the events accepted by match, in their original order.
func FilterEvents(events []RawEvent, match func(RawEvent) bool) []RawEvent {
	kept := make([]RawEvent, 0, len(events))

	for _, e := range events {
		if match(e) {
			kept = append(kept, e)
		}
	}

	return kept
}

// DefaultDescription renders the description used when no translator is wired.
func DefaultDescription(infoURL string) string {
	return fmt.Sprintf(config.FallbackDescription, infoURL)
}

// MapEvents converts raw events into calendar entries with local start/end times.
// describe builds the description from the event's info URL; nil selects DefaultDescription.
func MapEvents(events []RawEvent, loc *time.Location, describe func(string) string) ([]CalendarEntry, error) {
	if describe == nil {
		describe = DefaultDescription
	}

	entries := make([]CalendarEntry, 0, len(events))

	for _, e := range events {
		start, err := ToLocal(e.Start, loc)
		if err != nil {
			return nil, fmt.Errorf("event %q start: %w", e.Title, err)
		}
		end, err := ToLocal(e.Finish, loc)
		if err != nil {
			return nil, fmt.Errorf("event %q finish: %w", e.Title, err)
		}

		entries = append(entries, CalendarEntry{
			Name:        e.Title,
			Start:       start,
			End:         end,
			URL:         e.URL,
			Description: describe(e.InfoURL),
		})
	}

	return entries, nil
}

// ToLocal parses a listing timestamp and converts it to loc (time.Local when nil).
// Timestamps carrying an offset keep their instant; timestamps without one are UTC.
func ToLocal(src string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(config.DateFormatRFC3339, src); err == nil {
		return t.UTC().In(loc), nil
	}

	naive := []string{
		config.DateFormatISONoZone,
		config.DateFormatSpaceNoTZ,
		config.DateFormatISOMinutes,
		config.DateFormatSpaceMin,
	}
	for _, layout := range naive {
		if t, err := time.ParseInLocation(layout, src, time.UTC); err == nil {
			return t.In(loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %s %q", ErrMalformedResponse, config.ErrTimestamp, src)
}
