package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/lmed/internal/acquire"
	"github.com/wonny/lmed/internal/summary"
	"github.com/wonny/lmed/pkg/logger"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteTrades(t *testing.T) {
	dir := t.TempDir()
	target := time.Date(2025, time.June, 19, 0, 0, 0, 0, time.UTC)

	price := decimal.NewFromInt(9500)
	later := decimal.NewFromInt(9510)
	result := &acquire.BatchResult{
		Target: target,
		Outcomes: map[string]acquire.Outcome{
			"CMCU0-3": {Kind: acquire.SuccessWithTrades, Trades: []acquire.TradeRecord{
				{Timestamp: target.Add(14 * time.Hour), Open: later, High: later, Low: later, Price: later, Volume: 2},
			}},
			"CMCU0-N25": {Kind: acquire.SuccessWithTrades, Trades: []acquire.TradeRecord{
				{Timestamp: target.Add(9 * time.Hour), Open: price, High: price, Low: price, Price: price, Volume: 1},
			}},
		},
	}
	items := []acquire.Item{{RIC: "CMCU0-3"}, {RIC: "CMCU0-N25"}}

	e := New(dir, logger.NewNop())
	path, err := e.WriteTrades(result, items)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "copper_spread_trades_2025-06-19.csv"), path)

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"timestamp", "ric", "open", "high", "low", "close", "volume"}, records[0])
	// Sorted by timestamp, the 09:00 bar comes first.
	assert.Equal(t, "2025-06-19 09:00:00", records[1][0])
	assert.Equal(t, "CMCU0-N25", records[1][1])
	assert.Equal(t, "CMCU0-3", records[2][1])
	assert.Equal(t, "9510", records[2][5])
}

func TestWriteSummaryAndDiagnostics(t *testing.T) {
	dir := t.TempDir()
	target := time.Date(2025, time.June, 19, 0, 0, 0, 0, time.UTC)

	prev := decimal.NewFromInt(9400)
	change := decimal.NewFromInt(100)
	report := summary.Report{
		Target: target,
		Records: []summary.Record{{
			RIC:           "CMCU0-3",
			Description:   "Cash vs 3Month",
			TradeCount:    2,
			TotalVolume:   5,
			PriceMin:      decimal.NewFromInt(9480),
			PriceMax:      decimal.NewFromInt(9520),
			FirstPrice:    decimal.NewFromInt(9490),
			LastPrice:     decimal.NewFromInt(9500),
			FinalClose:    decimal.NewFromInt(9500),
			PreviousClose: &prev,
			Change:        &change,
		}},
		Diagnostics: []summary.Diagnostic{
			{RIC: "CMCU0-3", Description: "Cash vs 3Month", Outcome: acquire.SuccessWithTrades},
			{RIC: "CMCU0-N25", Outcome: acquire.NoDataAvailable, Detail: "no data available for range"},
		},
	}

	e := New(dir, logger.NewNop())

	sumPath, err := e.WriteSummary(report)
	require.NoError(t, err)
	sumRecords := readCSV(t, sumPath)
	require.Len(t, sumRecords, 2)
	assert.Equal(t, "CMCU0-3", sumRecords[1][0])
	assert.Equal(t, "9400", sumRecords[1][9])
	assert.Equal(t, "100", sumRecords[1][10])
	// ChangePercent was nil and stays empty.
	assert.Equal(t, "", sumRecords[1][11])

	diagPath, err := e.WriteDiagnostics(report)
	require.NoError(t, err)
	diagRecords := readCSV(t, diagPath)
	require.Len(t, diagRecords, 3)
	assert.Equal(t, "success_with_trades", diagRecords[1][2])
	assert.Equal(t, "no_data", diagRecords[2][2])
	assert.Equal(t, "no data available for range", diagRecords[2][3])
}

func TestWriteAllCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	target := time.Date(2025, time.June, 19, 0, 0, 0, 0, time.UTC)
	result := &acquire.BatchResult{Target: target, Outcomes: map[string]acquire.Outcome{}}

	e := New(dir, logger.NewNop())
	paths, err := e.WriteAll(summary.Report{Target: target}, result, nil)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}
