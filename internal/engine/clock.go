package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Generator uses it to anchor the date window on "today".
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Window is the date range sent to the event source.
type Window struct {
	Start  time.Time
	Finish time.Time
}

// NewWindow returns [today, today+days] where both bounds are local midnights in loc.
// AddDate keeps the bound on midnight across daylight-saving transitions.
func NewWindow(now time.Time, days int, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := now.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)

	return Window{
		Start:  start,
		Finish: start.AddDate(0, 0, days),
	}
}
