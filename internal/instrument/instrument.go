package instrument

import (
	"fmt"
	"time"
)

// DefaultRICBase is the exchange RIC root for LME copper.
const DefaultRICBase = "CMCU"

// Kind identifies the variant of a tradable instrument.
type Kind int

const (
	// Cash is the spot-like position.
	Cash Kind = iota
	// ThreeMonth is the fixed short-tenor position.
	ThreeMonth
	// MonthlyExpiry is a specific third-Wednesday contract month.
	MonthlyExpiry
)

// String returns the kind name for logs and diagnostics.
func (k Kind) String() string {
	switch k {
	case Cash:
		return "cash"
	case ThreeMonth:
		return "3month"
	case MonthlyExpiry:
		return "third_wednesday"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Instrument identifies one tradable exchange position. The Code is an
// opaque value built by the universe builder; the calendar facts live in
// Month/Year/Expiry and are never recovered by parsing the code.
type Instrument struct {
	Kind   Kind
	Code   string // "0" (cash), "3" (3-month), or monthCode+2-digit-year
	Month  time.Month
	Year   int
	Expiry time.Time // third Wednesday; zero for Cash/ThreeMonth
}

// Name returns a human-readable label for reports and logs.
func (i Instrument) Name() string {
	switch i.Kind {
	case Cash:
		return "Cash"
	case ThreeMonth:
		return "3Month"
	default:
		return i.Code
	}
}

// RIC returns the provider identifier for the outright instrument.
func (i Instrument) RIC() string {
	return DefaultRICBase + i.Code
}
