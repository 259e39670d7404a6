// Package provider defines the market-data port consumed by the acquisition
// pipeline and the error taxonomy its adapters must map into.
package provider

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Interval is the bar granularity of a time-series query.
type Interval string

const (
	IntervalMinute Interval = "minute"
	IntervalDaily  Interval = "daily"
)

// Bar is one interval row returned by the provider. Timestamps are taken as
// already being in the target market's local calendar; callers compare date
// components and never convert timezones.
type Bar struct {
	Timestamp time.Time
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    int64
}

// TimeSeriesQuerier is the single capability the core consumes from a
// market-data provider.
type TimeSeriesQuerier interface {
	// QueryTimeSeries returns bars for the identifier over [start, end].
	// The provider rejects single-day minute queries, so callers always
	// pass a padded multi-day window and filter afterwards.
	QueryTimeSeries(ctx context.Context, ric string, start, end time.Time, interval Interval) ([]Bar, error)

	// QueryPointValue returns the daily close for the identifier on one date.
	QueryPointValue(ctx context.Context, ric string, date time.Time) (decimal.Decimal, error)
}
