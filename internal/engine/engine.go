package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-ctfcal/internal/config"
)

// RunConfig contains the parameters of one export.
type RunConfig struct {
	Days      int     // Size of the forward-looking window, in days.
	MaxWeight float64 // Events heavier than this are dropped; 0 keeps everything.
}

// Generator is the core service: it fetches the listing and turns it into an iCalendar document.
type Generator struct {
	Clock   Clock        // Interface for time mocking.
	Fetcher EventFetcher // Interface for network abstraction.

	// Location is the zone entries are converted to. Nil means time.Local.
	Location *time.Location

	// FormatDescription lets the caller inject the localized description text.
	FormatDescription func(infoURL string) string
}

// Run executes the fetch, filter, map and encode pipeline.
// It returns the ICS data and the entries it contains. Nothing is written to disk.
func (g *Generator) Run(ctx context.Context, cfg RunConfig) ([]byte, []CalendarEntry, error) {
	if g.Fetcher == nil {
		return nil, nil, errors.New(config.ErrFetcherMissing)
	}
	if g.Clock == nil {
		return nil, nil, errors.New(config.ErrClockMissing)
	}
	if cfg.Days < 0 {
		return nil, nil, errors.New(config.ErrNegativeWindow)
	}

	start := time.Now()
	loc := g.location()
	now := g.Clock.Now()
	window := NewWindow(now, cfg.Days, loc)

	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyDays, cfg.Days,
		config.LogKeyMaxWeight, cfg.MaxWeight,
	)
	log.InfoContext(ctx, config.MsgRunStarted,
		config.LogKeyStart, window.Start.Format(time.RFC3339),
		config.LogKeyFinish, window.Finish.Format(time.RFC3339),
	)

	raw, err := g.Fetcher.Fetch(ctx, window)
	if err != nil {
		return nil, nil, err
	}

	match := WeightFilter(cfg.MaxWeight)
	kept := FilterEvents(raw, func(e RawEvent) bool {
		ok := match(e)
		if !ok {
			log.Debug(config.MsgEventFiltered,
				config.LogKeyTitle, e.Title,
				config.LogKeyWeight, e.Weight,
			)
		}
		return ok
	})

	entries, err := MapEvents(kept, loc, g.FormatDescription)
	if err != nil {
		return nil, nil, err
	}

	ics, err := EncodeCalendar(BuildCalendar(entries, now))
	if err != nil {
		return nil, nil, err
	}

	log.Info(config.MsgRunFinished,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyFetched, len(raw)),
			slog.Int(config.LogKeyKept, len(entries)),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)

	return ics, entries, nil
}

func (g *Generator) location() *time.Location {
	if g.Location == nil {
		return time.Local
	}
	return g.Location
}

// Export runs the generator and writes the result to path (create or append).
// The file is opened only after the whole listing has been fetched and
// encoded, so a failed run leaves an existing file untouched.
func (g *Generator) Export(ctx context.Context, cfg RunConfig, path string) ([]CalendarEntry, error) {
	ics, entries, err := g.Run(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := WriteCalendar(path, ics); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return entries, nil
}
