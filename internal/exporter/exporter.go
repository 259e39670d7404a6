// Package exporter writes batch reports to dated CSV files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wonny/lmed/internal/acquire"
	"github.com/wonny/lmed/internal/summary"
	"github.com/wonny/lmed/pkg/logger"
)

const timestampLayout = "2006-01-02 15:04:05"

// Exporter writes report files under a fixed output directory.
type Exporter struct {
	outputDir string
	logger    *logger.Logger
}

func New(outputDir string, log *logger.Logger) *Exporter {
	return &Exporter{outputDir: outputDir, logger: log}
}

// WriteAll writes the trade, summary, and diagnostic files for one report
// and returns the paths written.
func (e *Exporter) WriteAll(report summary.Report, result *acquire.BatchResult, items []acquire.Item) ([]string, error) {
	trades, err := e.WriteTrades(result, items)
	if err != nil {
		return nil, err
	}
	sum, err := e.WriteSummary(report)
	if err != nil {
		return nil, err
	}
	diag, err := e.WriteDiagnostics(report)
	if err != nil {
		return nil, err
	}
	return []string{trades, sum, diag}, nil
}

// WriteTrades writes every retained bar, sorted by timestamp then RIC.
func (e *Exporter) WriteTrades(result *acquire.BatchResult, items []acquire.Item) (string, error) {
	type row struct {
		ric   string
		trade acquire.TradeRecord
	}

	var rows []row
	for _, item := range items {
		outcome, ok := result.Outcome(item.RIC)
		if !ok {
			continue
		}
		for _, trade := range outcome.Trades {
			rows = append(rows, row{ric: item.RIC, trade: trade})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].trade.Timestamp.Equal(rows[j].trade.Timestamp) {
			return rows[i].trade.Timestamp.Before(rows[j].trade.Timestamp)
		}
		return rows[i].ric < rows[j].ric
	})

	records := [][]string{{"timestamp", "ric", "open", "high", "low", "close", "volume"}}
	for _, r := range rows {
		records = append(records, []string{
			r.trade.Timestamp.Format(timestampLayout),
			r.ric,
			r.trade.Open.String(),
			r.trade.High.String(),
			r.trade.Low.String(),
			r.trade.Price.String(),
			fmt.Sprintf("%d", r.trade.Volume),
		})
	}

	return e.writeFile("copper_spread_trades", result.Target.Format("2006-01-02"), records)
}

// WriteSummary writes the per-instrument aggregate rows.
func (e *Exporter) WriteSummary(report summary.Report) (string, error) {
	records := [][]string{{
		"ric", "description", "trade_count", "total_volume",
		"price_min", "price_max", "first_price", "last_price",
		"final_close", "previous_close", "change", "change_pct",
	}}
	for _, rec := range report.Records {
		records = append(records, []string{
			rec.RIC,
			rec.Description,
			fmt.Sprintf("%d", rec.TradeCount),
			fmt.Sprintf("%d", rec.TotalVolume),
			rec.PriceMin.String(),
			rec.PriceMax.String(),
			rec.FirstPrice.String(),
			rec.LastPrice.String(),
			rec.FinalClose.String(),
			decimalOrEmpty(rec.PreviousClose),
			decimalOrEmpty(rec.Change),
			decimalOrEmpty(rec.ChangePercent),
		})
	}

	return e.writeFile("copper_spread_summary", report.Target.Format("2006-01-02"), records)
}

// WriteDiagnostics writes one row per requested instrument.
func (e *Exporter) WriteDiagnostics(report summary.Report) (string, error) {
	records := [][]string{{"ric", "description", "outcome", "detail"}}
	for _, diag := range report.Diagnostics {
		records = append(records, []string{
			diag.RIC,
			diag.Description,
			diag.Outcome.String(),
			diag.Detail,
		})
	}

	return e.writeFile("copper_spread_diagnostics", report.Target.Format("2006-01-02"), records)
}

func (e *Exporter) writeFile(prefix, date string, records [][]string) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("%s_%s.csv", prefix, date))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush %s: %w", path, err)
	}

	e.logger.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(records) - 1,
	}).Info("report file written")

	return path, nil
}

func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
