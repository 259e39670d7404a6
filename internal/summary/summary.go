// Package summary aggregates per-instrument acquisition outcomes into the
// daily report structures consumed by the exporter and the CLI.
package summary

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/lmed/internal/acquire"
)

// Record is the aggregated view of one instrument that traded on the
// target date.
type Record struct {
	RIC           string
	Description   string
	TradeCount    int
	TotalVolume   int64
	PriceMin      decimal.Decimal
	PriceMax      decimal.Decimal
	FirstPrice    decimal.Decimal
	LastPrice     decimal.Decimal
	FinalClose    decimal.Decimal
	PreviousClose *decimal.Decimal
	Change        *decimal.Decimal
	ChangePercent *decimal.Decimal
}

// Diagnostic records how each requested instrument fared, traded or not.
type Diagnostic struct {
	RIC         string
	Description string
	Outcome     acquire.OutcomeKind
	Detail      string
}

// Report is the full result of one batch day.
type Report struct {
	Target      time.Time
	Records     []Record
	Diagnostics []Diagnostic
	Truncated   bool
}

// Aggregate folds batch outcomes into a report. Records appear in item
// order and cover only instruments that produced trades; diagnostics cover
// every item that has an outcome.
func Aggregate(items []acquire.Item, result *acquire.BatchResult, prevCloses map[string]*decimal.Decimal) Report {
	report := Report{
		Target:    result.Target,
		Truncated: result.Truncated,
	}

	for _, item := range items {
		outcome, ok := result.Outcome(item.RIC)
		if !ok {
			continue
		}

		diag := Diagnostic{
			RIC:         item.RIC,
			Description: item.Description,
			Outcome:     outcome.Kind,
		}
		if outcome.Err != nil {
			diag.Detail = outcome.Err.Error()
		}
		report.Diagnostics = append(report.Diagnostics, diag)

		if outcome.Kind != acquire.SuccessWithTrades {
			continue
		}
		report.Records = append(report.Records, buildRecord(item, outcome.Trades, prevCloses[item.RIC]))
	}

	return report
}

func buildRecord(item acquire.Item, trades []acquire.TradeRecord, prevClose *decimal.Decimal) Record {
	// Provider row order is not guaranteed.
	trades = append([]acquire.TradeRecord(nil), trades...)
	sort.Slice(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})

	rec := Record{
		RIC:           item.RIC,
		Description:   item.Description,
		TradeCount:    len(trades),
		PreviousClose: prevClose,
	}

	for i, trade := range trades {
		rec.TotalVolume += trade.Volume
		if i == 0 {
			rec.PriceMin = trade.Low
			rec.PriceMax = trade.High
			rec.FirstPrice = trade.Price
		} else {
			if trade.Low.LessThan(rec.PriceMin) {
				rec.PriceMin = trade.Low
			}
			if trade.High.GreaterThan(rec.PriceMax) {
				rec.PriceMax = trade.High
			}
		}
		rec.LastPrice = trade.Price
	}
	rec.FinalClose = rec.LastPrice

	if prevClose != nil && !prevClose.IsZero() {
		change := rec.FinalClose.Sub(*prevClose)
		pct := change.Div(*prevClose).Mul(decimal.NewFromInt(100)).Round(4)
		rec.Change = &change
		rec.ChangePercent = &pct
	}

	return rec
}
