package acquire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/lmed/internal/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name   string
		target time.Time
		pad    int
		start  time.Time
		end    time.Time
	}{
		{
			name:   "midweek target",
			target: date(2025, time.June, 19),
			pad:    3,
			start:  date(2025, time.June, 16),
			end:    date(2025, time.June, 20),
		},
		{
			name:   "start lands on weekend",
			target: date(2025, time.June, 16),
			pad:    2,
			start:  date(2025, time.June, 13),
			end:    date(2025, time.June, 17),
		},
		{
			name:   "end crosses weekend",
			target: date(2025, time.June, 20),
			pad:    3,
			start:  date(2025, time.June, 17),
			end:    date(2025, time.June, 23),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWindow(tt.target, tt.pad, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
			assert.Equal(t, tt.target, w.Target)
		})
	}
}

func TestNewWindowHoliday(t *testing.T) {
	holidays, err := calendar.NewHolidaySet([]string{"2025-06-16"})
	require.NoError(t, err)

	// Pad lands on Monday the 16th, a holiday, so the start steps back
	// to Friday the 13th.
	w, err := NewWindow(date(2025, time.June, 19), 3, holidays)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.June, 13), w.Start)
	assert.Equal(t, date(2025, time.June, 20), w.End)
}

func TestNewWindowPadTooSmall(t *testing.T) {
	_, err := NewWindow(date(2025, time.June, 19), 1, nil)
	assert.Error(t, err)
}

func TestWindowContains(t *testing.T) {
	w, err := NewWindow(date(2025, time.June, 19), 3, nil)
	require.NoError(t, err)

	assert.True(t, w.Contains(time.Date(2025, time.June, 19, 14, 30, 0, 0, time.UTC)))
	assert.True(t, w.Contains(time.Date(2025, time.June, 19, 0, 0, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2025, time.June, 18, 23, 59, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2025, time.June, 20, 0, 1, 0, 0, time.UTC)))
}
