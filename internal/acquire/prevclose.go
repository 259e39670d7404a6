package acquire

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/wonny/lmed/internal/calendar"
	"github.com/wonny/lmed/internal/provider"
	"github.com/wonny/lmed/pkg/logger"
)

// maxPrevCloseLookback bounds how many calendar days the resolver walks
// back from the target when searching for a prior settlement.
const maxPrevCloseLookback = 7

// PrevCloseResolver looks up the previous business day's closing price for
// each item. Lookups are best effort: a price that cannot be resolved is
// reported as absent, never as a batch failure.
type PrevCloseResolver struct {
	querier provider.TimeSeriesQuerier
	logger  *logger.Logger
	limiter *rate.Limiter
}

func NewPrevCloseResolver(querier provider.TimeSeriesQuerier, log *logger.Logger, requestRate float64, burst int) *PrevCloseResolver {
	if burst < 1 {
		burst = 1
	}
	return &PrevCloseResolver{
		querier: querier,
		logger:  log,
		limiter: rate.NewLimiter(rate.Limit(requestRate), burst),
	}
}

// Resolve returns previous closes keyed by RIC. Only items with a
// successful outcome are looked up; the map holds nil for items with no
// resolvable close.
func (r *PrevCloseResolver) Resolve(ctx context.Context, items []Item, result *BatchResult, holidays calendar.HolidaySet) map[string]*decimal.Decimal {
	closes := make(map[string]*decimal.Decimal, len(items))

	for _, item := range items {
		outcome, ok := result.Outcome(item.RIC)
		if !ok || !outcome.Kind.IsSuccess() {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		closes[item.RIC] = r.resolveOne(ctx, item.RIC, result.Target, holidays)
	}

	return closes
}

// resolveOne walks back day by day from the target until it finds a
// business day with a settlement price.
func (r *PrevCloseResolver) resolveOne(ctx context.Context, ric string, target time.Time, holidays calendar.HolidaySet) *decimal.Decimal {
	for back := 1; back <= maxPrevCloseLookback; back++ {
		day := target.AddDate(0, 0, -back)
		if !calendar.IsBusinessDay(day, holidays) {
			continue
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return nil
		}

		price, err := r.querier.QueryPointValue(ctx, ric, day)
		if err != nil {
			r.logger.WithError(err).WithFields(map[string]interface{}{
				"ric":  ric,
				"date": day.Format("2006-01-02"),
			}).Debug("previous close lookup failed")
			continue
		}
		return &price
	}

	r.logger.WithField("ric", ric).Debug("no previous close within lookback")
	return nil
}
