package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/lmed/internal/batch"
	"github.com/wonny/lmed/pkg/logger"
)

// SpreadBatchJob runs the daily spread acquisition for the previous
// business day.
type SpreadBatchJob struct {
	runner   *batch.Runner
	logger   *logger.Logger
	schedule string
	now      func() time.Time
}

func NewSpreadBatchJob(runner *batch.Runner, log *logger.Logger, schedule string) *SpreadBatchJob {
	return &SpreadBatchJob{
		runner:   runner,
		logger:   log,
		schedule: schedule,
		now:      time.Now,
	}
}

func (j *SpreadBatchJob) Name() string { return "spread-batch" }

func (j *SpreadBatchJob) Schedule() string { return j.schedule }

func (j *SpreadBatchJob) Run(ctx context.Context) error {
	target, err := j.runner.PreviousBusinessTarget(j.now())
	if err != nil {
		return fmt.Errorf("resolve batch target: %w", err)
	}

	result, err := j.runner.Run(ctx, target, 0)
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"target":    target.Format("2006-01-02"),
		"items":     len(result.Items),
		"traded":    len(result.Report.Records),
		"truncated": result.Report.Truncated,
		"files":     result.Files,
	}).Info("daily spread batch finished")

	if result.Report.Truncated {
		return fmt.Errorf("batch for %s truncated by fatal provider error", target.Format("2006-01-02"))
	}
	return nil
}
