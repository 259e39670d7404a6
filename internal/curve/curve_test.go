package curve

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/lmed/internal/instrument"
	"github.com/wonny/lmed/internal/provider"
	"github.com/wonny/lmed/pkg/logger"
)

type pointQuerier struct {
	prices map[string]decimal.Decimal
	days   map[string]string
}

func (q *pointQuerier) QueryTimeSeries(ctx context.Context, ric string, start, end time.Time, interval provider.Interval) ([]provider.Bar, error) {
	return nil, provider.ErrNoData
}

func (q *pointQuerier) QueryPointValue(ctx context.Context, ric string, day time.Time) (decimal.Decimal, error) {
	if q.days != nil {
		q.days[ric] = day.Format("2006-01-02")
	}
	p, ok := q.prices[ric]
	if !ok {
		return decimal.Zero, provider.ErrNoData
	}
	return p, nil
}

func TestBuild(t *testing.T) {
	asOf := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	u, err := instrument.BuildUniverse(asOf, 3)
	require.NoError(t, err)
	expiries := u.MonthlyExpiries()
	require.Len(t, expiries, 3)

	querier := &pointQuerier{
		prices: map[string]decimal.Decimal{
			expiries[0].RIC(): decimal.NewFromInt(9500),
			expiries[2].RIC(): decimal.NewFromInt(9560),
		},
		days: make(map[string]string),
	}

	b := NewBuilder(querier, logger.NewNop(), 1000, 10)
	target := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
	points, err := b.Build(context.Background(), u, target, nil)
	require.NoError(t, err)

	// The middle expiry has no price and is skipped.
	require.Len(t, points, 2)
	assert.Equal(t, expiries[0].Code, points[0].Code)
	assert.Equal(t, expiries[2].Code, points[1].Code)
	assert.True(t, points[0].Expiry.Before(points[1].Expiry))

	// Monday target resolves against the prior Friday.
	assert.Equal(t, "2025-06-13", querier.days[expiries[0].RIC()])
}

func TestBuildCancelled(t *testing.T) {
	asOf := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	u, err := instrument.BuildUniverse(asOf, 3)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBuilder(&pointQuerier{}, logger.NewNop(), 1000, 10)
	_, err = b.Build(ctx, u, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), nil)
	assert.Error(t, err)
}

func point(code string, price float64) Point {
	return Point{Code: code, Price: decimal.NewFromFloat(price)}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name  string
		near  float64
		far   float64
		shape Shape
	}{
		{"contango", 9500, 9600, ShapeContango},
		{"backwardation", 9600, 9500, ShapeBackwardation},
		{"flat slight premium", 9500, 9520, ShapeFlat},
		{"flat slight discount", 9500, 9480, ShapeFlat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze([]Point{point("N25", tt.near), point("Q25", 0.5*(tt.near+tt.far)), point("U25", tt.far)})
			assert.Equal(t, tt.shape, a.Shape)
			assert.Equal(t, "N25", a.Near.Code)
			assert.Equal(t, "U25", a.Far.Code)
		})
	}
}

func TestAnalyzeDegenerate(t *testing.T) {
	assert.Equal(t, ShapeUnknown, Analyze(nil).Shape)
	assert.Equal(t, ShapeUnknown, Analyze([]Point{point("N25", 9500)}).Shape)
	assert.Equal(t, ShapeUnknown, Analyze([]Point{point("N25", 0), point("Q25", 9500)}).Shape)
}
