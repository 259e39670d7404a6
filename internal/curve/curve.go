// Package curve builds a copper forward curve from the monthly expiry
// instruments and classifies its shape.
package curve

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/wonny/lmed/internal/calendar"
	"github.com/wonny/lmed/internal/instrument"
	"github.com/wonny/lmed/internal/provider"
	"github.com/wonny/lmed/pkg/logger"
)

// Point is one settlement on the forward curve.
type Point struct {
	RIC    string
	Code   string
	Expiry time.Time
	Price  decimal.Decimal
}

// Builder resolves curve points from the provider.
type Builder struct {
	querier provider.TimeSeriesQuerier
	logger  *logger.Logger
	limiter *rate.Limiter
}

func NewBuilder(querier provider.TimeSeriesQuerier, log *logger.Logger, requestRate float64, burst int) *Builder {
	if burst < 1 {
		burst = 1
	}
	return &Builder{
		querier: querier,
		logger:  log,
		limiter: rate.NewLimiter(rate.Limit(requestRate), burst),
	}
}

// Build queries the previous business day's close for every monthly
// expiry in the universe. Instruments without a resolvable price are
// skipped; points come back ordered by expiry because the universe is.
func (b *Builder) Build(ctx context.Context, u instrument.Universe, target time.Time, holidays calendar.HolidaySet) ([]Point, error) {
	day := calendar.PreviousBusinessDay(target, holidays)

	var points []Point
	for _, inst := range u.MonthlyExpiries() {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		price, err := b.querier.QueryPointValue(ctx, inst.RIC(), day)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			b.logger.WithError(err).WithField("ric", inst.RIC()).Debug("curve point unavailable")
			continue
		}

		points = append(points, Point{
			RIC:    inst.RIC(),
			Code:   inst.Code,
			Expiry: inst.Expiry,
			Price:  price,
		})
	}

	b.logger.WithFields(map[string]interface{}{
		"points": len(points),
		"date":   day.Format("2006-01-02"),
	}).Info("forward curve built")

	return points, nil
}
