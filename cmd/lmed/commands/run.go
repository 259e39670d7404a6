package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/lmed/internal/batch"
	"github.com/wonny/lmed/internal/external/eikon"
	"github.com/wonny/lmed/internal/external/lmecal"
	"github.com/wonny/lmed/pkg/config"
	"github.com/wonny/lmed/pkg/httputil"
	"github.com/wonny/lmed/pkg/logger"
)

var (
	runDate  string
	runLimit int
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the spread acquisition batch",
	Long: `Runs the full spread acquisition batch for one target date.

The batch generates the contract universe as of the target date,
enumerates all spread combinations, acquires minute bars over a padded
window, filters them back to the target date, resolves previous closes,
and writes the trade, summary, and diagnostic CSV files.

Without --date the batch targets the previous business day.

Examples:
  lmed run
  lmed run --date 2025-06-19
  lmed run --date 2025-06-19 --limit 10`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runDate, "date", "", "target date (YYYY-MM-DD, default: previous business day)")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "cap the number of spread items (0 = all)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	runner, _, err := initRunner()
	if err != nil {
		return err
	}

	target, err := resolveTarget(runner, runDate)
	if err != nil {
		return err
	}

	fmt.Printf("Running spread batch for %s\n", target.Format("2006-01-02"))

	result, err := runner.Run(cmd.Context(), target, runLimit)
	if err != nil {
		return fmt.Errorf("run batch: %w", err)
	}

	renderSummary(result.Report)
	renderDiagnostics(result.Report)

	fmt.Println("\nFiles written:")
	for _, path := range result.Files {
		fmt.Printf("  %s\n", path)
	}

	if result.Report.Truncated {
		return fmt.Errorf("batch truncated by fatal provider error")
	}
	return nil
}

// initRunner builds the batch runner and its provider clients from
// configuration.
func initRunner() (*batch.Runner, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	querier := eikon.NewClient(cfg.Eikon, log)

	var holidays batch.HolidaySource
	if cfg.Calendar.CalendarURL != "" {
		httpClient := httputil.New(log, cfg.Eikon.RequestTimeout)
		holidays = lmecal.NewClient(httpClient, log)
	}

	return batch.NewRunner(cfg, querier, holidays, log), cfg, nil
}

func resolveTarget(runner *batch.Runner, flag string) (time.Time, error) {
	if flag == "" {
		return runner.PreviousBusinessTarget(time.Now())
	}
	target, err := time.Parse("2006-01-02", flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", flag, err)
	}
	return target, nil
}
