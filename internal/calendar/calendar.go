package calendar

import (
	"fmt"
	"time"
)

// monthCodes is the exchange month-code table used in contract identifiers.
// Immutable process-wide constant; index by time.Month.
var monthCodes = map[time.Month]string{
	time.January:   "F",
	time.February:  "G",
	time.March:     "H",
	time.April:     "J",
	time.May:       "K",
	time.June:      "M",
	time.July:      "N",
	time.August:    "Q",
	time.September: "U",
	time.October:   "V",
	time.November:  "X",
	time.December:  "Z",
}

// maxBusinessDaySteps bounds the backward/forward walk over the calendar.
// A realistic holiday density never needs more than a handful of steps.
const maxBusinessDaySteps = 10

// MonthCode returns the single-letter exchange code for a month (1-12).
func MonthCode(month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month: %d", month)
	}
	return monthCodes[time.Month(month)], nil
}

// ThirdWednesday returns the date of the third Wednesday of the given month.
func ThirdWednesday(year int, month time.Month) (time.Time, error) {
	return NthWeekday(year, month, time.Wednesday, 3)
}

// NthWeekday returns the date of the nth occurrence of a weekday in a month.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) (time.Time, error) {
	if month < time.January || month > time.December {
		return time.Time{}, fmt.Errorf("invalid month: %d", month)
	}
	if year < 1970 || year > 2200 {
		return time.Time{}, fmt.Errorf("invalid year: %d", year)
	}
	if n < 1 || n > 5 {
		return time.Time{}, fmt.Errorf("invalid occurrence: %d", n)
	}

	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(firstDay.Weekday()) + 7) % 7
	candidate := firstDay.AddDate(0, 0, offset+(n-1)*7)

	if candidate.Month() != month {
		return time.Time{}, fmt.Errorf("no %dth %s in %d-%02d", n, weekday, year, month)
	}
	return candidate, nil
}

// PreviousBusinessDay steps back one day at a time while the candidate is a
// weekend day or a configured holiday. An empty holiday set means
// weekends-only. The walk is bounded; if no qualifying day is found within
// the bound, the last candidate is returned.
func PreviousBusinessDay(d time.Time, holidays HolidaySet) time.Time {
	candidate := d.AddDate(0, 0, -1)
	for i := 0; i < maxBusinessDaySteps; i++ {
		if IsBusinessDay(candidate, holidays) {
			return candidate
		}
		candidate = candidate.AddDate(0, 0, -1)
	}
	return candidate
}

// NextBusinessDay is the forward analogue of PreviousBusinessDay.
func NextBusinessDay(d time.Time, holidays HolidaySet) time.Time {
	candidate := d.AddDate(0, 0, 1)
	for i := 0; i < maxBusinessDaySteps; i++ {
		if IsBusinessDay(candidate, holidays) {
			return candidate
		}
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

// IsBusinessDay reports whether d is neither a weekend day nor a holiday.
func IsBusinessDay(d time.Time, holidays HolidaySet) bool {
	if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		return false
	}
	return !holidays.Contains(d)
}
