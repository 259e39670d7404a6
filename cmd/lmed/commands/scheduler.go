package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/lmed/internal/scheduler"
	"github.com/wonny/lmed/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run and inspect the batch scheduler",
	Long: `Controls the scheduler that runs the daily spread batch.

Subcommands:
  start   - start the scheduler daemon
  list    - list registered jobs
  run     - trigger a job immediately

Examples:
  lmed scheduler start
  lmed scheduler run spread-batch`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		Long: `Starts the scheduler and registers the daily spread batch at
BATCH_SCHEDULE. The batch targets the previous business day and exports
its reports to OUTPUT_DIR. Stop with Ctrl+C.`,
		RunE: startScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Trigger a job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  triggerJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func initScheduler() (*scheduler.Scheduler, error) {
	runner, cfg, err := initRunner()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg)

	sched := scheduler.New(log, cfg.Batch.MaxRetries, cfg.Batch.RetryDelay)
	if err := sched.AddJob(scheduler.NewSpreadBatchJob(runner, log, cfg.Batch.Schedule)); err != nil {
		return nil, fmt.Errorf("register spread batch: %w", err)
	}
	return sched, nil
}

func startScheduler(cmd *cobra.Command, args []string) error {
	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	sched.Start()

	fmt.Println("Scheduler started. Registered jobs:")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down scheduler...")
	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Println("Registered jobs:")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}

func triggerJob(cmd *cobra.Command, args []string) error {
	name := args[0]

	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	if err := sched.RunJob(name); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	fmt.Printf("Job %s started (running in background)\n", name)
	return nil
}
