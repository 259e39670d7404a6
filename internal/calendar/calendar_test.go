package calendar

import (
	"testing"
	"time"
)

func TestMonthCode(t *testing.T) {
	tests := []struct {
		month   int
		want    string
		wantErr bool
	}{
		{1, "F", false},
		{2, "G", false},
		{3, "H", false},
		{6, "M", false},
		{7, "N", false},
		{11, "X", false},
		{12, "Z", false},
		{0, "", true},
		{13, "", true},
		{-1, "", true},
	}

	for _, tt := range tests {
		got, err := MonthCode(tt.month)
		if (err != nil) != tt.wantErr {
			t.Errorf("MonthCode(%d) error = %v, wantErr %v", tt.month, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("MonthCode(%d) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestThirdWednesday(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2025, time.June, "2025-06-18"},
		{2025, time.July, "2025-07-16"},
		{2025, time.December, "2025-12-17"},
		{2026, time.January, "2026-01-21"},
		{2024, time.February, "2024-02-21"}, // leap year
	}

	for _, tt := range tests {
		got, err := ThirdWednesday(tt.year, tt.month)
		if err != nil {
			t.Fatalf("ThirdWednesday(%d, %s) error: %v", tt.year, tt.month, err)
		}
		if got.Format("2006-01-02") != tt.want {
			t.Errorf("ThirdWednesday(%d, %s) = %s, want %s",
				tt.year, tt.month, got.Format("2006-01-02"), tt.want)
		}
		if got.Weekday() != time.Wednesday {
			t.Errorf("ThirdWednesday(%d, %s) fell on %s", tt.year, tt.month, got.Weekday())
		}
	}
}

// Twelve consecutive months must produce twelve distinct months, each with
// the requested weekday.
func TestThirdWednesdayConsecutiveMonths(t *testing.T) {
	seen := make(map[time.Month]bool)
	for m := time.January; m <= time.December; m++ {
		d, err := ThirdWednesday(2025, m)
		if err != nil {
			t.Fatalf("ThirdWednesday(2025, %s) error: %v", m, err)
		}
		if d.Month() != m {
			t.Errorf("ThirdWednesday(2025, %s) landed in %s", m, d.Month())
		}
		if seen[d.Month()] {
			t.Errorf("duplicate month %s", d.Month())
		}
		seen[d.Month()] = true
	}
	if len(seen) != 12 {
		t.Errorf("expected 12 distinct months, got %d", len(seen))
	}
}

func TestThirdWednesdayInvalidArguments(t *testing.T) {
	if _, err := ThirdWednesday(2025, time.Month(0)); err == nil {
		t.Error("expected error for month 0")
	}
	if _, err := ThirdWednesday(2025, time.Month(13)); err == nil {
		t.Error("expected error for month 13")
	}
	if _, err := ThirdWednesday(1800, time.June); err == nil {
		t.Error("expected error for out-of-range year")
	}
}

func TestPreviousBusinessDay(t *testing.T) {
	holidays, err := NewHolidaySet([]string{"2025-06-13"})
	if err != nil {
		t.Fatalf("NewHolidaySet failed: %v", err)
	}

	tests := []struct {
		name     string
		date     string
		holidays HolidaySet
		want     string
	}{
		{"monday to friday", "2025-06-16", nil, "2025-06-13"},
		{"saturday to friday", "2025-06-14", nil, "2025-06-13"},
		{"sunday to friday", "2025-06-15", nil, "2025-06-13"},
		{"tuesday to monday", "2025-06-17", nil, "2025-06-16"},
		{"holiday friday skipped", "2025-06-16", holidays, "2025-06-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := time.Parse("2006-01-02", tt.date)
			got := PreviousBusinessDay(d, tt.holidays)
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("PreviousBusinessDay(%s) = %s, want %s",
					tt.date, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestNextBusinessDay(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2025-06-13") // Friday
	got := NextBusinessDay(d, nil)
	if got.Format("2006-01-02") != "2025-06-16" {
		t.Errorf("NextBusinessDay(2025-06-13) = %s, want 2025-06-16", got.Format("2006-01-02"))
	}
}

func TestHolidaySetContains(t *testing.T) {
	set, err := NewHolidaySet([]string{"2025-12-25"})
	if err != nil {
		t.Fatalf("NewHolidaySet failed: %v", err)
	}

	// Time-of-day must not affect membership.
	d := time.Date(2025, 12, 25, 15, 30, 0, 0, time.UTC)
	if !set.Contains(d) {
		t.Error("expected holiday set to contain 2025-12-25 regardless of time")
	}

	if set.Contains(time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)) {
		t.Error("2025-12-24 should not be a holiday")
	}

	var nilSet HolidaySet
	if nilSet.Contains(d) {
		t.Error("nil set should contain nothing")
	}
}

func TestNewHolidaySetInvalid(t *testing.T) {
	if _, err := NewHolidaySet([]string{"25-12-2025"}); err == nil {
		t.Error("expected error for malformed date")
	}
}
