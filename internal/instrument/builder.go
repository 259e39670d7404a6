package instrument

import (
	"fmt"
	"time"

	"github.com/wonny/lmed/internal/calendar"
)

// DefaultHorizonMonths is the number of forward monthly expiries generated
// when no horizon is configured (universe of 27 with Cash and 3Month).
const DefaultHorizonMonths = 25

// Universe is the ordered set of tradable instruments for one run. It is
// built fresh from an as-of date and never mutated afterwards.
type Universe struct {
	AsOf        time.Time
	Instruments []Instrument
}

// Len returns the number of instruments in the universe.
func (u Universe) Len() int {
	return len(u.Instruments)
}

// MonthlyExpiries returns only the monthly-expiry instruments, in order.
func (u Universe) MonthlyExpiries() []Instrument {
	out := make([]Instrument, 0, len(u.Instruments))
	for _, ins := range u.Instruments {
		if ins.Kind == MonthlyExpiry {
			out = append(out, ins)
		}
	}
	return out
}

// BuildUniverse generates the instrument universe for an as-of date:
// Cash, 3Month, then `horizon` forward monthly expiries starting with the
// month after the as-of month. Month arithmetic is exact; year rollover
// carries, so December + 1 is January of the next year rather than a
// 30-day approximation drifting across month boundaries.
func BuildUniverse(asOf time.Time, horizon int) (Universe, error) {
	if horizon < 1 {
		return Universe{}, fmt.Errorf("invalid horizon: %d", horizon)
	}

	instruments := make([]Instrument, 0, horizon+2)
	instruments = append(instruments,
		Instrument{Kind: Cash, Code: "0"},
		Instrument{Kind: ThreeMonth, Code: "3"},
	)

	seen := make(map[string]Instrument, horizon)
	for i := 1; i <= horizon; i++ {
		month := time.Month((int(asOf.Month())-1+i)%12 + 1)
		year := asOf.Year() + (int(asOf.Month())-1+i)/12

		code, err := calendar.MonthCode(int(month))
		if err != nil {
			return Universe{}, fmt.Errorf("month code for %s: %w", month, err)
		}
		code = fmt.Sprintf("%s%02d", code, year%100)

		// One code per calendar month within a single run.
		if prev, dup := seen[code]; dup {
			return Universe{}, fmt.Errorf("duplicate contract code %s for %d-%02d and %d-%02d",
				code, prev.Year, prev.Month, year, month)
		}

		expiry, err := calendar.ThirdWednesday(year, month)
		if err != nil {
			return Universe{}, fmt.Errorf("expiry for %d-%02d: %w", year, month, err)
		}

		ins := Instrument{
			Kind:   MonthlyExpiry,
			Code:   code,
			Month:  month,
			Year:   year,
			Expiry: expiry,
		}
		seen[code] = ins
		instruments = append(instruments, ins)
	}

	return Universe{AsOf: asOf, Instruments: instruments}, nil
}
