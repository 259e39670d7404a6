package instrument

import (
	"fmt"
)

// Spread is one unordered pair of distinct universe instruments, realized
// as a single directional near-far identifier.
type Spread struct {
	Near Instrument
	Far  Instrument
}

// RIC returns the provider identifier for the spread, e.g. "CMCU0-3".
func (s Spread) RIC() string {
	return fmt.Sprintf("%s%s-%s", DefaultRICBase, s.Near.Code, s.Far.Code)
}

// Description returns a human-readable label, e.g. "Cash vs N25".
func (s Spread) Description() string {
	return fmt.Sprintf("%s vs %s", s.Near.Name(), s.Far.Name())
}

// Combinations generates every unordered pair over the universe, ordered by
// near-leg index then far-leg index so downstream processing order is
// reproducible. The result holds exactly n(n-1)/2 spreads; any other count
// is a broken contract, not a runtime condition.
func Combinations(u Universe) ([]Spread, error) {
	n := len(u.Instruments)
	spreads := make([]Spread, 0, n*(n-1)/2)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			spreads = append(spreads, Spread{
				Near: u.Instruments[i],
				Far:  u.Instruments[j],
			})
		}
	}

	if want := n * (n - 1) / 2; len(spreads) != want {
		return nil, fmt.Errorf("combination count mismatch: got %d, want %d", len(spreads), want)
	}
	return spreads, nil
}
