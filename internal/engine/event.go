package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-ctfcal/internal/config"
)

// RawEvent is one record of the CTFtime events listing.
// It only lives until the mapping step.
type RawEvent struct {
	Title   string
	Start   string
	Finish  string
	URL     string
	InfoURL string
	Weight  float64
}

// rawEventJSON mirrors the wire format. Pointers distinguish a missing key
// from a zero value.
type rawEventJSON struct {
	Title      *string  `json:"title"`
	Start      *string  `json:"start"`
	Finish     *string  `json:"finish"`
	URL        *string  `json:"url"`
	CTFtimeURL *string  `json:"ctftime_url"`
	Weight     *float64 `json:"weight"`
}

// UnmarshalJSON decodes a listing record and rejects records that lack one
// of the fields the calendar needs.
func (e *RawEvent) UnmarshalJSON(data []byte) error {
	var raw rawEventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%s: %w", config.ErrFieldType, err)
		}
		return err
	}

	required := []struct {
		name    string
		present bool
	}{
		{"title", raw.Title != nil},
		{"start", raw.Start != nil},
		{"finish", raw.Finish != nil},
		{"url", raw.URL != nil},
		{"ctftime_url", raw.CTFtimeURL != nil},
		{"weight", raw.Weight != nil},
	}
	for _, f := range required {
		if !f.present {
			return fmt.Errorf("%s: %q", config.ErrMissingField, f.name)
		}
	}

	*e = RawEvent{
		Title:   *raw.Title,
		Start:   *raw.Start,
		Finish:  *raw.Finish,
		URL:     *raw.URL,
		InfoURL: *raw.CTFtimeURL,
		Weight:  *raw.Weight,
	}
	return nil
}

// CalendarEntry is the normalized form of a RawEvent that survived filtering.
// Start and End are expressed in the host's local zone.
type CalendarEntry struct {
	Name        string
	Start       time.Time
	End         time.Time
	URL         string
	Description string
}

// StartDate returns the local start time as "YYYY-MM-DD HH:MM".
func (c CalendarEntry) StartDate() string {
	return c.Start.Format(config.DateFormatEntry)
}

// EndDate returns the local end time as "YYYY-MM-DD HH:MM".
func (c CalendarEntry) EndDate() string {
	return c.End.Format(config.DateFormatEntry)
}

func (c CalendarEntry) String() string {
	return fmt.Sprintf("name: %s, start: %s, end: %s, url: %s", c.Name, c.StartDate(), c.EndDate(), c.URL)
}
