// Package probability computes the volatility-adjusted probability that a
// strategy's terminal spot lands in each profit or loss range at
// expiration, assuming a lognormal terminal distribution
// S_T ~ logN(ln(S0) + (r - sigma^2/2)T, sigma*sqrt(T)) built from the
// strategy's own leg implied vols.
package probability

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/optionstrat/optionstratlib-go/internal/primitives"
	"github.com/optionstrat/optionstratlib-go/internal/strategy"
)

var (
	// ErrNoLegs is returned when Analyze is given a strategy with no positions.
	ErrNoLegs = errors.New("probability: strategy has no legs")
	// ErrMetrics wraps a failure from the underlying payoff/break-even
	// machinery while computing range probabilities.
	ErrMetrics = errors.New("probability: metrics calculation failed")
)

// Range represents an interval of terminal spot prices with an attached
// probability mass and the largest-magnitude PnL observed in that interval.
type Range struct {
	Lower       *primitives.Positive
	Upper       *primitives.Positive
	MaxPnL      primitives.Positive
	Probability primitives.Positive
}

// Analyze partitions the real line at the strategy's break-even points into
// alternating profit/loss ranges, computes each range's lognormal
// probability mass under S_T ~ logN(ln(S0) + (r - sigma^2/2)T, sigma*sqrt(T)),
// and returns the profit ranges and loss ranges separately. sigma is the
// mean of the strategy's leg implied vols (stat.Mean); volStdDev (the
// stat.StdDev across legs) is returned alongside for callers that want a
// dispersion estimate of the vol assumption itself.
func Analyze(s *strategy.Strategy) (profitRanges, lossRanges []Range, volStdDev primitives.Decimal, err error) {
	if len(s.Positions) == 0 {
		return nil, nil, primitives.Decimal{}, ErrNoLegs
	}

	breakEvens, err := s.BreakEvenPoints()
	if err != nil {
		return nil, nil, primitives.Decimal{}, fmt.Errorf("%w: %v", ErrMetrics, err)
	}

	ivs := make([]float64, len(s.Positions))
	for i, p := range s.Positions {
		ivs[i] = p.Contract.ImpliedVol.Float64()
	}
	meanIV := stat.Mean(ivs, nil)
	stdIV := stat.StdDev(ivs, nil)

	spot := s.Positions[0].Contract.UnderlyingPrice.Float64()
	rate := s.Positions[0].Contract.RiskFreeRate.Float64()
	expiration, err := s.Expiration()
	if err != nil {
		return nil, nil, primitives.Decimal{}, fmt.Errorf("%w: %v", ErrMetrics, err)
	}
	years := expiration.Years().Float64()
	if years <= 0 {
		years = 1e-6
	}

	mu := math.Log(spot) + (rate-0.5*meanIV*meanIV)*years
	sigmaT := meanIV * math.Sqrt(years)
	if sigmaT <= 0 {
		sigmaT = 1e-6
	}
	dist := distuv.LogNormal{Mu: mu, Sigma: sigmaT}

	bounds := append([]primitives.Positive{}, breakEvens...)
	sort.Slice(bounds, func(i, j int) bool { return bounds[i].LessThan(bounds[j]) })

	cdf := func(x *primitives.Positive) float64 {
		if x == nil {
			return 1
		}
		return dist.CDF(x.Float64())
	}

	// Build N+1 ranges from N break-evens: (-inf, b0], (b0,b1], ..., (bN,+inf).
	lowerBounds := append([]*primitives.Positive{nil}, ptrSlice(bounds)...)
	upperBounds := append(ptrSlice(bounds), nil)

	for i := range lowerBounds {
		lower, upper := lowerBounds[i], upperBounds[i]
		lowerCDF := 0.0
		if lower != nil {
			lowerCDF = cdf(lower)
		}
		prob := cdf(upper) - lowerCDF
		if prob < 0 {
			prob = 0
		}
		sampleLow := sampleSpot(lower, spot*0.01)
		sampleHigh := sampleSpot(upper, spot*10+1000)
		maxAbs, sign, perr := extremumInRange(s, sampleLow, sampleHigh)
		if perr != nil {
			return nil, nil, primitives.Decimal{}, fmt.Errorf("%w: %v", ErrMetrics, perr)
		}
		r := Range{
			Lower:       lower,
			Upper:       upper,
			MaxPnL:      primitives.MustPositiveFloat(maxAbs),
			Probability: primitives.MustPositiveFloat(prob),
		}
		if sign >= 0 {
			profitRanges = append(profitRanges, r)
		} else {
			lossRanges = append(lossRanges, r)
		}
	}

	return profitRanges, lossRanges, primitives.NewDecimalFromFloat(stdIV), nil
}

func ptrSlice(ps []primitives.Positive) []*primitives.Positive {
	out := make([]*primitives.Positive, len(ps))
	for i := range ps {
		v := ps[i]
		out[i] = &v
	}
	return out
}

func sampleSpot(bound *primitives.Positive, fallback float64) float64 {
	if bound == nil {
		return fallback
	}
	return bound.Float64()
}

// extremumInRange samples the strategy's net PnL at the range's bounds and
// at any strikes falling inside it (the payoff is piecewise-linear, so the
// extremum is always at one of these points), returning the largest
// magnitude and its sign.
func extremumInRange(s *strategy.Strategy, lo, hi float64) (float64, int, error) {
	points := []float64{lo, hi}
	for _, k := range s.Breakpoints() {
		v := k.Float64()
		if v > lo && v < hi {
			points = append(points, v)
		}
	}
	bestAbs := 0.0
	bestSign := 1
	for _, p := range points {
		spot, err := primitives.NewPositiveFromFloat(p)
		if err != nil {
			continue
		}
		pnl, err := s.PnLAtExpiration(spot)
		if err != nil {
			return 0, 0, err
		}
		v := pnl.Float64()
		if math.Abs(v) > bestAbs {
			bestAbs = math.Abs(v)
			if v < 0 {
				bestSign = -1
			} else {
				bestSign = 1
			}
		}
	}
	return bestAbs, bestSign, nil
}
