package engine

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-ctfcal/internal/config"
)

// BuildCalendar creates one VEVENT per entry, in entry order.
// now is stamped as DTSTAMP on every event.
func BuildCalendar(entries []CalendarEntry, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, entry := range entries {
		event := newEvent(entry)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	return cal
}

func newEvent(entry CalendarEntry) *ical.Event {
	event := ical.NewEvent()

	event.Props.SetText(config.PropUID, eventUID(entry))
	event.Props.SetText(config.PropSummary, entry.Name)

	// Times are serialized as UTC instants; calendar clients render them in
	// their own zone, which matches the local wall time held by the entry.
	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDateTime(entry.Start.UTC())
	event.Props.Set(dtStartProp)

	dtEndProp := ical.NewProp(config.PropDTEnd)
	dtEndProp.SetDateTime(entry.End.UTC())
	event.Props.Set(dtEndProp)

	if entry.URL != "" {
		// URL has the URI value type; SetText would escape commas and semicolons.
		urlProp := ical.NewProp(config.PropURL)
		urlProp.Value = entry.URL
		event.Props.Set(urlProp)
	}

	event.Props.SetText(config.PropDescription, entry.Description)

	return event
}

// eventUID derives a stable UID so calendar clients recognise a re-imported event.
func eventUID(entry CalendarEntry) string {
	input := fmt.Sprintf(config.FormatUIDInput, entry.Name, entry.Start.UTC().Format(time.RFC3339), entry.URL)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(input)).String() + config.UIDNamespaceSuffix
}

// EncodeCalendar serializes cal. A calendar without events is rendered as a
// minimal VCALENDAR so the output file stays importable.
func EncodeCalendar(cal *ical.Calendar) ([]byte, error) {
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	return buf.Bytes(), nil
}
