package acquire

import (
	"fmt"
	"time"

	"github.com/wonny/lmed/internal/calendar"
)

// Window is the padded multi-day range requested from the provider for one
// target date. The provider rejects single-day minute queries, so the
// request spans several days and rows are filtered back to the target
// afterwards. Do not narrow this to a single-day query.
type Window struct {
	Target time.Time
	Start  time.Time
	End    time.Time
}

// NewWindow builds the request window: pad calendar days before the target,
// stepped back to a business day, through the business day after the
// target.
func NewWindow(target time.Time, pad int, holidays calendar.HolidaySet) (Window, error) {
	if pad < 2 {
		return Window{}, fmt.Errorf("window pad must be at least 2 days, got %d", pad)
	}

	start := target.AddDate(0, 0, -pad)
	if !calendar.IsBusinessDay(start, holidays) {
		start = calendar.PreviousBusinessDay(start, holidays)
	}

	end := calendar.NextBusinessDay(target, holidays)

	return Window{Target: target, Start: start, End: end}, nil
}

// Contains reports whether a timestamp falls on the window's target date.
// Comparison is by formatted date component; the provider's timestamps are
// already in the target local calendar and are never converted.
func (w Window) Contains(ts time.Time) bool {
	return ts.Format("2006-01-02") == w.Target.Format("2006-01-02")
}
