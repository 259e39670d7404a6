package calendar

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// HolidaySet is a set of market holidays. Dates are compared by their
// YYYY-MM-DD representation, so the time-of-day and location of a queried
// date never affect membership.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a holiday set from YYYY-MM-DD strings.
func NewHolidaySet(dates []string) (HolidaySet, error) {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", d, err)
		}
		set[d] = struct{}{}
	}
	return set, nil
}

// Contains reports whether the set holds d's calendar date.
func (s HolidaySet) Contains(d time.Time) bool {
	if s == nil {
		return false
	}
	_, ok := s[d.Format(dateLayout)]
	return ok
}

// Add inserts a date into the set.
func (s HolidaySet) Add(d time.Time) {
	s[d.Format(dateLayout)] = struct{}{}
}

// Merge adds every date from other into the set.
func (s HolidaySet) Merge(other []time.Time) {
	for _, d := range other {
		s.Add(d)
	}
}
