package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/lmed/internal/calendar"
	"github.com/wonny/lmed/internal/curve"
	"github.com/wonny/lmed/internal/external/eikon"
	"github.com/wonny/lmed/internal/instrument"
	"github.com/wonny/lmed/pkg/config"
	"github.com/wonny/lmed/pkg/logger"
)

var curveDate string

// curveCmd represents the curve command
var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Build and classify the copper forward curve",
	Long: `Queries the previous business day's close for every monthly expiry
and classifies the curve as contango, backwardation, or flat.

Examples:
  lmed curve
  lmed curve --date 2025-06-19`,
	RunE: showCurve,
}

func init() {
	rootCmd.AddCommand(curveCmd)
	curveCmd.Flags().StringVar(&curveDate, "date", "", "target date (YYYY-MM-DD, default: today)")
}

func showCurve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	target := time.Now()
	if curveDate != "" {
		parsed, err := time.Parse("2006-01-02", curveDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", curveDate, err)
		}
		target = parsed
	}

	holidays, err := calendar.NewHolidaySet(cfg.Calendar.Holidays)
	if err != nil {
		return fmt.Errorf("configured holidays: %w", err)
	}

	u, err := instrument.BuildUniverse(target, cfg.Batch.HorizonMonths)
	if err != nil {
		return fmt.Errorf("build universe: %w", err)
	}

	querier := eikon.NewClient(cfg.Eikon, log)
	builder := curve.NewBuilder(querier, log, cfg.Batch.RequestRate, cfg.Batch.RequestBurst)

	points, err := builder.Build(cmd.Context(), u, target, holidays)
	if err != nil {
		return fmt.Errorf("build curve: %w", err)
	}

	renderCurve(points, curve.Analyze(points))
	return nil
}
