package curve

import (
	"github.com/shopspring/decimal"
)

// Shape classifies the slope of the forward curve.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeContango
	ShapeBackwardation
	ShapeFlat
)

func (s Shape) String() string {
	switch s {
	case ShapeContango:
		return "contango"
	case ShapeBackwardation:
		return "backwardation"
	case ShapeFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// shapeThresholdPct is the spread percentage beyond which the curve is no
// longer considered flat.
var shapeThresholdPct = decimal.NewFromFloat(0.5)

// Analysis compares the nearest and furthest curve points.
type Analysis struct {
	Shape         Shape
	Near          Point
	Far           Point
	Spread        decimal.Decimal
	SpreadPercent decimal.Decimal
}

// Analyze classifies the curve from its endpoints: far above near by more
// than the threshold is contango, below by more is backwardation,
// otherwise flat. Fewer than two points or a zero near price is unknown.
func Analyze(points []Point) Analysis {
	if len(points) < 2 {
		return Analysis{Shape: ShapeUnknown}
	}

	near := points[0]
	far := points[len(points)-1]
	if near.Price.IsZero() {
		return Analysis{Shape: ShapeUnknown, Near: near, Far: far}
	}

	spread := far.Price.Sub(near.Price)
	pct := spread.Div(near.Price).Mul(decimal.NewFromInt(100)).Round(4)

	shape := ShapeFlat
	switch {
	case pct.GreaterThan(shapeThresholdPct):
		shape = ShapeContango
	case pct.LessThan(shapeThresholdPct.Neg()):
		shape = ShapeBackwardation
	}

	return Analysis{
		Shape:         shape,
		Near:          near,
		Far:           far,
		Spread:        spread,
		SpreadPercent: pct,
	}
}
