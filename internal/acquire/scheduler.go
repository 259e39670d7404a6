package acquire

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/lmed/internal/calendar"
	"github.com/wonny/lmed/internal/provider"
	"github.com/wonny/lmed/pkg/logger"
)

// Config controls how a batch run issues requests against the provider.
type Config struct {
	WindowPadDays  int
	RequestRate    float64
	RequestBurst   int
	RequestTimeout time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Workers        int
}

// Scheduler runs the acquisition batch: every item is queried over the
// padded window, rows are filtered to the target date, and the result is
// classified into an outcome. A fatal error truncates the batch.
type Scheduler struct {
	querier provider.TimeSeriesQuerier
	logger  *logger.Logger
	cfg     Config
	limiter *rate.Limiter
}

// NewScheduler creates a batch scheduler. Workers below 1 and a burst
// below 1 are raised to 1.
func NewScheduler(querier provider.TimeSeriesQuerier, log *logger.Logger, cfg Config) *Scheduler {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.RequestBurst < 1 {
		cfg.RequestBurst = 1
	}
	return &Scheduler{
		querier: querier,
		logger:  log,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestRate), cfg.RequestBurst),
	}
}

// Run acquires minute bars for every item on the target date. Outcomes are
// recorded per RIC. When a fatal error occurs the remaining work is
// cancelled and the result is marked truncated; outcomes already recorded
// are kept.
func (s *Scheduler) Run(ctx context.Context, items []Item, target time.Time, holidays calendar.HolidaySet) (*BatchResult, error) {
	window, err := NewWindow(target, s.cfg.WindowPadDays, holidays)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{
		Target:   target,
		Outcomes: make(map[string]Outcome, len(items)),
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	record := func(ric string, o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		if result.Truncated {
			return
		}
		result.Outcomes[ric] = o
		if o.Kind == FatalFailure {
			result.Truncated = true
			cancel()
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"items":   len(items),
		"target":  target.Format("2006-01-02"),
		"start":   window.Start.Format("2006-01-02"),
		"end":     window.End.Format("2006-01-02"),
		"workers": s.cfg.Workers,
	}).Info("acquisition batch started")

	work := make(chan Item)
	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range work {
				outcome := s.acquire(runCtx, item, window)
				if runCtx.Err() != nil && outcome.Kind != FatalFailure {
					// Batch was cancelled while this item was in
					// flight; its outcome is discarded.
					continue
				}
				record(item.RIC, outcome)
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case work <- item:
		case <-runCtx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	s.logger.WithFields(map[string]interface{}{
		"outcomes":  len(result.Outcomes),
		"truncated": result.Truncated,
	}).Info("acquisition batch finished")

	return result, nil
}

// acquire queries one item with the retry budget applied and classifies
// the result.
func (s *Scheduler) acquire(ctx context.Context, item Item, window Window) Outcome {
	var lastErr error
	delay := s.cfg.RetryDelay

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			s.logger.WithFields(map[string]interface{}{
				"ric":     item.RIC,
				"attempt": attempt,
				"delay":   delay.String(),
			}).Warn("retrying request")
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Outcome{Kind: TransientFailure, Err: ctx.Err()}
			}
			delay *= 2
		}

		bars, err := s.query(ctx, item.RIC, window)
		if err == nil {
			return s.classify(item, bars, window)
		}

		switch {
		case errors.Is(err, provider.ErrNoData):
			return Outcome{Kind: NoDataAvailable, Err: err}
		case errors.Is(err, provider.ErrInvalidInstrument):
			return Outcome{Kind: InvalidInstrument, Err: err}
		case provider.IsFatal(err):
			s.logger.WithError(err).WithField("ric", item.RIC).Error("fatal provider error")
			return Outcome{Kind: FatalFailure, Err: err}
		default:
			lastErr = err
		}
	}

	s.logger.WithError(lastErr).WithField("ric", item.RIC).Warn("retry budget exhausted")
	return Outcome{Kind: TransientFailure, Err: lastErr}
}

func (s *Scheduler) query(ctx context.Context, ric string, window Window) ([]provider.Bar, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, provider.Transient(err)
	}

	reqCtx := ctx
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	bars, err := s.querier.QueryTimeSeries(reqCtx, ric, window.Start, window.End, provider.IntervalMinute)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, provider.Transient(err)
		}
		return nil, err
	}
	return bars, nil
}

// classify filters the returned bars to the target date and maps them to
// trade records. Zero-volume bars never become trades; a query that
// succeeds but keeps no traded rows is still a success.
func (s *Scheduler) classify(item Item, bars []provider.Bar, window Window) Outcome {
	var trades []TradeRecord
	for _, bar := range bars {
		if !window.Contains(bar.Timestamp) || bar.Volume <= 0 {
			continue
		}
		trades = append(trades, TradeRecord{
			Timestamp: bar.Timestamp,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Price:     bar.Close,
			Volume:    bar.Volume,
		})
	}

	if len(trades) == 0 {
		return Outcome{Kind: SuccessNoTrades}
	}
	return Outcome{Kind: SuccessWithTrades, Trades: trades}
}
