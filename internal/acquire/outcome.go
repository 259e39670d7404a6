package acquire

import (
	"time"

	"github.com/shopspring/decimal"
)

// OutcomeKind classifies what acquisition produced for one item.
type OutcomeKind int

const (
	// SuccessWithTrades - rows matched the target date and at least one
	// carried volume.
	SuccessWithTrades OutcomeKind = iota
	// SuccessNoTrades - the query succeeded but no traded rows matched the
	// target date.
	SuccessNoTrades
	// NoDataAvailable - the provider has no data for the range. Expected
	// for illiquid or far-dated contracts.
	NoDataAvailable
	// InvalidInstrument - the provider does not know the identifier.
	// Expected for not-yet-listed expiries.
	InvalidInstrument
	// TransientFailure - retries were exhausted on a retryable failure.
	TransientFailure
	// FatalFailure - the session is unusable; the batch was aborted here.
	FatalFailure
)

// String returns the diagnostic label for the kind.
func (k OutcomeKind) String() string {
	switch k {
	case SuccessWithTrades:
		return "success_with_trades"
	case SuccessNoTrades:
		return "success_no_trades"
	case NoDataAvailable:
		return "no_data"
	case InvalidInstrument:
		return "invalid_instrument"
	case TransientFailure:
		return "transient_error"
	case FatalFailure:
		return "fatal_error"
	default:
		return "unknown"
	}
}

// IsSuccess reports whether the item is known-valid (the query itself
// worked, with or without trades).
func (k OutcomeKind) IsSuccess() bool {
	return k == SuccessWithTrades || k == SuccessNoTrades
}

// TradeRecord is one matched intraday bar with trading activity on the
// target date.
type TradeRecord struct {
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Price     decimal.Decimal // bar close
	Volume    int64
}

// Outcome is the resolved result for one item.
type Outcome struct {
	Kind   OutcomeKind
	Trades []TradeRecord
	Err    error // set for the failure kinds
}

// BatchResult holds the outcome set for one run. Outcomes are keyed by item
// RIC; Truncated marks a batch cut short by a fatal provider failure, in
// which case later items have no entry.
type BatchResult struct {
	Target    time.Time
	Outcomes  map[string]Outcome
	Truncated bool
}

// Outcome returns the outcome for a RIC, if present.
func (r *BatchResult) Outcome(ric string) (Outcome, bool) {
	o, ok := r.Outcomes[ric]
	return o, ok
}
