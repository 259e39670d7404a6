// Package batch orchestrates one full spread acquisition run: universe
// generation, spread enumeration, acquisition, previous-close resolution,
// aggregation, and export.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/lmed/internal/acquire"
	"github.com/wonny/lmed/internal/calendar"
	"github.com/wonny/lmed/internal/exporter"
	"github.com/wonny/lmed/internal/instrument"
	"github.com/wonny/lmed/internal/provider"
	"github.com/wonny/lmed/internal/summary"
	"github.com/wonny/lmed/pkg/config"
	"github.com/wonny/lmed/pkg/logger"
)

// HolidaySource fetches market holidays from an external calendar.
type HolidaySource interface {
	FetchHolidays(ctx context.Context, url string) ([]time.Time, error)
}

// Result bundles everything one run produced.
type Result struct {
	Universe instrument.Universe
	Items    []acquire.Item
	Batch    *acquire.BatchResult
	Report   summary.Report
	Files    []string
}

// Runner executes the daily spread batch.
type Runner struct {
	cfg      *config.Config
	querier  provider.TimeSeriesQuerier
	holidays HolidaySource
	logger   *logger.Logger
}

// NewRunner creates a batch runner. The holiday source may be nil, in
// which case only configured holidays apply.
func NewRunner(cfg *config.Config, querier provider.TimeSeriesQuerier, holidays HolidaySource, log *logger.Logger) *Runner {
	return &Runner{cfg: cfg, querier: querier, holidays: holidays, logger: log}
}

// Run executes the batch for the target date. A limit above zero caps the
// number of spread items, which is useful for smoke runs against the
// provider.
func (r *Runner) Run(ctx context.Context, target time.Time, limit int) (*Result, error) {
	holidays, err := r.resolveHolidays(ctx)
	if err != nil {
		return nil, err
	}

	universe, err := instrument.BuildUniverse(target, r.cfg.Batch.HorizonMonths)
	if err != nil {
		return nil, fmt.Errorf("build universe: %w", err)
	}

	spreads, err := instrument.Combinations(universe)
	if err != nil {
		return nil, fmt.Errorf("enumerate spreads: %w", err)
	}

	items := acquire.ItemsFromSpreads(spreads)
	if limit > 0 && limit < len(items) {
		r.logger.WithFields(map[string]interface{}{
			"limit": limit,
			"total": len(items),
		}).Warn("item limit applied")
		items = items[:limit]
	}

	sched := acquire.NewScheduler(r.querier, r.logger, acquire.Config{
		WindowPadDays:  r.cfg.Batch.WindowPadDays,
		RequestRate:    r.cfg.Batch.RequestRate,
		RequestBurst:   r.cfg.Batch.RequestBurst,
		RequestTimeout: r.cfg.Eikon.RequestTimeout,
		MaxRetries:     r.cfg.Batch.MaxRetries,
		RetryDelay:     r.cfg.Batch.RetryDelay,
		Workers:        r.cfg.Batch.Workers,
	})

	batchResult, err := sched.Run(ctx, items, target, holidays)
	if err != nil {
		return nil, fmt.Errorf("acquisition batch: %w", err)
	}

	resolver := acquire.NewPrevCloseResolver(r.querier, r.logger, r.cfg.Batch.RequestRate, r.cfg.Batch.RequestBurst)
	prevCloses := resolver.Resolve(ctx, items, batchResult, holidays)

	report := summary.Aggregate(items, batchResult, prevCloses)

	exp := exporter.New(r.cfg.OutputDir, r.logger)
	files, err := exp.WriteAll(report, batchResult, items)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return &Result{
		Universe: universe,
		Items:    items,
		Batch:    batchResult,
		Report:   report,
		Files:    files,
	}, nil
}

// resolveHolidays merges configured holidays with the external calendar.
// A calendar fetch failure is logged and skipped.
func (r *Runner) resolveHolidays(ctx context.Context) (calendar.HolidaySet, error) {
	holidays, err := calendar.NewHolidaySet(r.cfg.Calendar.Holidays)
	if err != nil {
		return nil, fmt.Errorf("configured holidays: %w", err)
	}

	if r.holidays != nil && r.cfg.Calendar.CalendarURL != "" {
		fetched, err := r.holidays.FetchHolidays(ctx, r.cfg.Calendar.CalendarURL)
		if err != nil {
			r.logger.WithError(err).Warn("holiday calendar fetch failed, using configured holidays only")
		} else {
			holidays.Merge(fetched)
		}
	}

	return holidays, nil
}

// PreviousBusinessTarget returns the default batch target: the business
// day before now.
func (r *Runner) PreviousBusinessTarget(now time.Time) (time.Time, error) {
	holidays, err := calendar.NewHolidaySet(r.cfg.Calendar.Holidays)
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return calendar.PreviousBusinessDay(day, holidays), nil
}
