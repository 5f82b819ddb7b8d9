package engine_test

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-ctfcal/internal/config"
	"github.com/tartampluch/go-ctfcal/internal/engine"
)

func sampleEvents() []engine.RawEvent {
	weights := []float64{25.5, 0, 10, 10.01, 99.9, 3.25, 10}
	events := make([]engine.RawEvent, 0, len(weights))
	for i, w := range weights {
		events = append(events, engine.RawEvent{
			Title:   fmt.Sprintf("event-%d", i),
			Start:   "2026-10-20T10:00:00+00:00",
			Finish:  "2026-10-21T10:00:00+00:00",
			InfoURL: fmt.Sprintf("https://ctftime.org/event/%d/", i),
			Weight:  w,
		})
	}
	return events
}

func titles(events []engine.RawEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

func TestFilterEvents_NoFilter(t *testing.T) {
	events := sampleEvents()

	kept := engine.FilterEvents(events, engine.WeightFilter(0))

	assert.Equal(t, events, kept, "A zero threshold must keep every record in order")
}

func TestFilterEvents_Threshold(t *testing.T) {
	events := sampleEvents()

	for _, maxWeight := range []float64{0.5, 3.25, 10, 10.005, 25.5, 50, 100} {
		t.Run(fmt.Sprint(maxWeight), func(t *testing.T) {
			var want []string
			for _, e := range events {
				if e.Weight <= maxWeight {
					want = append(want, e.Title)
				}
			}

			kept := engine.FilterEvents(events, engine.WeightFilter(maxWeight))

			if len(want) == 0 {
				assert.Empty(t, kept)
				return
			}
			assert.Equal(t, want, titles(kept), "Subset with weight <= %v, in original order", maxWeight)
		})
	}
}

func TestFilterEvents_SingleRecordScenarios(t *testing.T) {
	events := []engine.RawEvent{{Title: "Heavy CTF", Weight: 25.5}}

	assert.Len(t, engine.FilterEvents(events, engine.WeightFilter(0.0)), 1)
	assert.Empty(t, engine.FilterEvents(events, engine.WeightFilter(10.0)))
}

func TestToLocal(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	tests := []struct {
		name     string
		src      string
		want     string
		wantZone int // offset in seconds east of UTC
	}{
		{"Summer time", "2026-07-01T12:00:00+00:00", "2026-07-01 14:00", 2 * 3600},
		{"Winter time", "2026-12-01T12:00:00+00:00", "2026-12-01 13:00", 1 * 3600},
		{"Zulu suffix", "2026-12-01T12:00:00Z", "2026-12-01 13:00", 1 * 3600},
		{"Before DST end", "2026-10-25T00:30:00+00:00", "2026-10-25 02:30", 2 * 3600},
		{"After DST end", "2026-10-25T01:30:00+00:00", "2026-10-25 02:30", 1 * 3600},
		{"Explicit offset", "2026-12-01T15:00:00+03:00", "2026-12-01 13:00", 1 * 3600},
		{"No offset is UTC", "2026-12-01T12:00:00", "2026-12-01 13:00", 1 * 3600},
		{"Space separated", "2026-12-01 12:00:00", "2026-12-01 13:00", 1 * 3600},
		{"Minutes only", "2026-12-01T12:00", "2026-12-01 13:00", 1 * 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ToLocal(tt.src, paris)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got.Format(config.DateFormatEntry))
			_, offset := got.Zone()
			assert.Equal(t, tt.wantZone, offset)
			assert.Equal(t, paris, got.Location())
		})
	}
}

func TestToLocal_Invalid(t *testing.T) {
	for _, src := range []string{"", "tomorrow", "2026-13-01T00:00:00Z", "20261020"} {
		_, err := engine.ToLocal(src, time.UTC)
		assert.ErrorIs(t, err, engine.ErrMalformedResponse, "input %q", src)
	}
}

func TestToLocal_NilLocationUsesLocal(t *testing.T) {
	got, err := engine.ToLocal("2026-12-01T12:00:00Z", nil)
	require.NoError(t, err)
	assert.Equal(t, time.Local, got.Location())
}

// TestMapEvents_RoundTrip checks that rendered start/end strings parse back to
// the source instant in the local zone.
func TestMapEvents_RoundTrip(t *testing.T) {
	for _, zone := range []string{"UTC", "Europe/Paris", "America/New_York", "Asia/Kolkata", "Australia/Lord_Howe"} {
		t.Run(zone, func(t *testing.T) {
			loc, err := time.LoadLocation(zone)
			require.NoError(t, err)

			sources := []string{
				"2026-01-15T08:45:00+00:00",
				"2026-03-29T01:15:00+00:00",
				"2026-07-04T23:59:00+00:00",
				"2026-11-01T06:30:00+00:00",
			}

			raw := make([]engine.RawEvent, 0, len(sources))
			for _, s := range sources {
				raw = append(raw, engine.RawEvent{Title: s, Start: s, Finish: s})
			}

			entries, err := engine.MapEvents(raw, loc, nil)
			require.NoError(t, err)
			require.Len(t, entries, len(sources))

			for i, entry := range entries {
				src, err := time.Parse(time.RFC3339, sources[i])
				require.NoError(t, err)

				assert.True(t, src.Equal(entry.Start), "Start must be the same instant")
				assert.True(t, src.Equal(entry.End), "End must use the same conversion")

				// The rendered wall time matches the zone offset in effect at that instant.
				parsed, err := time.Parse(config.DateFormatEntry, entry.StartDate())
				require.NoError(t, err)
				_, offset := src.In(loc).Zone()
				assert.True(t, src.Add(time.Duration(offset)*time.Second).Equal(parsed),
					"%s should render as %s", sources[i], parsed)
				assert.Equal(t, entry.StartDate(), entry.EndDate())
			}
		})
	}
}

func TestMapEvents_Fields(t *testing.T) {
	raw := []engine.RawEvent{{
		Title:   "Alpha CTF 2026",
		Start:   "2026-10-20T10:00:00+00:00",
		Finish:  "2026-10-22T10:00:00+00:00",
		URL:     "https://alpha.example.org/",
		InfoURL: "https://ctftime.org/event/3001/",
		Weight:  25.5,
	}}

	entries, err := engine.MapEvents(raw, time.UTC, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Alpha CTF 2026", e.Name)
	assert.Equal(t, "https://alpha.example.org/", e.URL)
	assert.Equal(t, "For more info see: https://ctftime.org/event/3001/", e.Description)
	assert.Equal(t, "2026-10-20 10:00", e.StartDate())
	assert.Equal(t, "2026-10-22 10:00", e.EndDate())
}

func TestMapEvents_CustomDescription(t *testing.T) {
	raw := []engine.RawEvent{{Title: "x", Start: "2026-10-20T10:00:00Z", Finish: "2026-10-20T12:00:00Z", InfoURL: "u"}}

	entries, err := engine.MapEvents(raw, time.UTC, func(u string) string { return "Voir " + u })
	require.NoError(t, err)
	assert.Equal(t, "Voir u", entries[0].Description)
}

func TestMapEvents_PreservesOrder(t *testing.T) {
	raw := sampleEvents()

	entries, err := engine.MapEvents(raw, time.UTC, nil)
	require.NoError(t, err)
	require.Len(t, entries, len(raw))

	for i := range raw {
		assert.Equal(t, raw[i].Title, entries[i].Name)
	}
}

func TestMapEvents_BadTimestamp(t *testing.T) {
	raw := []engine.RawEvent{
		{Title: "ok", Start: "2026-10-20T10:00:00Z", Finish: "2026-10-20T12:00:00Z"},
		{Title: "broken", Start: "2026-10-20T10:00:00Z", Finish: "soon"},
	}

	entries, err := engine.MapEvents(raw, time.UTC, nil)

	require.Error(t, err)
	assert.Nil(t, entries)
	assert.ErrorIs(t, err, engine.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "broken")
}

func TestNewWindow(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	// 23:30 UTC on Oct 19 is already Oct 20 in Paris.
	now := time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC)
	w := engine.NewWindow(now, 7, paris)

	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, paris), w.Start)
	// The window crosses the DST change on Oct 25; the bound stays on midnight.
	assert.Equal(t, time.Date(2026, 10, 27, 0, 0, 0, 0, paris), w.Finish)
	assert.Equal(t, 7*24*time.Hour+time.Hour, w.Finish.Sub(w.Start))

	zero := engine.NewWindow(now, 0, paris)
	assert.Equal(t, zero.Start, zero.Finish)
}
