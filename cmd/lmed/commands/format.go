package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/wonny/lmed/internal/curve"
	"github.com/wonny/lmed/internal/summary"
)

func renderSummary(report summary.Report) {
	if len(report.Records) == 0 {
		fmt.Println("\nNo instruments traded on the target date.")
		return
	}

	fmt.Printf("\nTraded instruments (%d):\n", len(report.Records))

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("RIC", "Trades", "Volume", "Low", "High", "Close", "Prev", "Chg%")
	for _, rec := range report.Records {
		table.Append(
			rec.RIC,
			fmt.Sprintf("%d", rec.TradeCount),
			fmt.Sprintf("%d", rec.TotalVolume),
			rec.PriceMin.String(),
			rec.PriceMax.String(),
			rec.FinalClose.String(),
			decimalLabel(rec.PreviousClose),
			decimalLabel(rec.ChangePercent),
		)
	}
	table.Render()
}

func renderDiagnostics(report summary.Report) {
	counts := make(map[string]int)
	for _, diag := range report.Diagnostics {
		counts[diag.Outcome.String()]++
	}

	fmt.Printf("\nOutcomes across %d items:\n", len(report.Diagnostics))
	for _, kind := range []string{
		"success_with_trades", "success_no_trades", "no_data",
		"invalid_instrument", "transient_error", "fatal_error",
	} {
		if n := counts[kind]; n > 0 {
			fmt.Printf("  %-20s %d\n", kind, n)
		}
	}
	if report.Truncated {
		fmt.Println("  (batch truncated, not all items were attempted)")
	}
}

func renderCurve(points []curve.Point, analysis curve.Analysis) {
	if len(points) == 0 {
		fmt.Println("No curve points resolved.")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Code", "RIC", "Expiry", "Close")
	for _, p := range points {
		table.Append(p.Code, p.RIC, p.Expiry.Format("2006-01-02"), p.Price.String())
	}
	table.Render()

	if analysis.Shape == curve.ShapeUnknown {
		fmt.Println("\nCurve shape: unknown (not enough points)")
		return
	}
	fmt.Printf("\nCurve shape: %s (%s vs %s, spread %s, %s%%)\n",
		analysis.Shape,
		analysis.Near.Code,
		analysis.Far.Code,
		analysis.Spread.String(),
		analysis.SpreadPercent.String(),
	)
}

func decimalLabel(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}
