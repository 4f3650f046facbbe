package pricing

import (
	"math"
	"sort"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

const (
	defaultCliquetLocalCap   = 0.1
	defaultCliquetLocalFloor = 0.0
)

// Cliquet prices a forward-starting (ratchet) option as a sum of
// forward-starting unit-notional calls over each reset interval: each
// period's contribution is the present value of a locally capped/floored
// return, scaled by the period's expected starting spot.
func Cliquet(c options.Contract) (primitives.Decimal, error) {
	ct, ok := c.Type.(options.CliquetType)
	if !ok {
		return primitives.Decimal{}, errUnsupportedType("Cliquet", c.Type)
	}

	localCap := defaultCliquetLocalCap
	localFloor := defaultCliquetLocalFloor
	if c.ExoticParams != nil {
		if c.ExoticParams.CliquetLocalCap != nil {
			localCap = c.ExoticParams.CliquetLocalCap.Float64()
		}
		if c.ExoticParams.CliquetLocalFloor != nil {
			localFloor = c.ExoticParams.CliquetLocalFloor.Float64()
		}
	}

	tTotal := c.Expiration.Years().Float64()
	sign := c.Side.Sign().Float64()

	dates := make([]float64, len(ct.ResetDates))
	for i, d := range ct.ResetDates {
		dates[i] = d.Float64()
	}
	sort.Float64s(dates)

	resetYears := []float64{0}
	for _, t := range dates {
		if t > 0 && t < tTotal {
			resetYears = append(resetYears, t)
		}
	}
	resetYears = append(resetYears, tTotal)
	resetYears = dedup(resetYears)

	s0 := c.UnderlyingPrice.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()

	total := 0.0
	for i := 1; i < len(resetYears); i++ {
		tPrev := resetYears[i-1]
		dt := resetYears[i] - tPrev
		total += cliquetPeriod(s0, r, q, sigma, tPrev, dt, localCap, localFloor)
	}

	if c.ExoticParams != nil {
		if c.ExoticParams.CliquetGlobalCap != nil {
			total = math.Min(total, c.ExoticParams.CliquetGlobalCap.Float64())
		}
		if c.ExoticParams.CliquetGlobalFloor != nil {
			total = math.Max(total, c.ExoticParams.CliquetGlobalFloor.Float64())
		}
	}

	return primitives.NewDecimalFromFloat(sign * total), nil
}

func cliquetPeriod(s0, r, q, sigma, tStart, dt, cap, floor float64) float64 {
	if dt <= 0 {
		return 0
	}
	sPrevPV := s0 * math.Exp(-q*tStart)
	callFloor := unitCallPrice(r, q, sigma, dt, 1+floor)
	callCap := unitCallPrice(r, q, sigma, dt, 1+cap)
	floorPart := floor * math.Exp(-r*dt)
	periodValAtPrev := floorPart + callFloor - callCap
	return sPrevPV * periodValAtPrev
}

// unitCallPrice prices a Black-Scholes call with unit spot (S=1) at strike k,
// the building block for a forward-starting cliquet period's payoff.
func unitCallPrice(r, q, sigma, t, k float64) float64 {
	if k <= 0 {
		return math.Exp(-q*t) - k*math.Exp(-r*t)
	}
	if sigma <= 0 || t <= 0 {
		forward := math.Exp((r - q) * t)
		return math.Max(forward-k, 0) * math.Exp(-r*t)
	}
	sqrtT := math.Sqrt(t)
	b := r - q
	d1 := (-math.Log(k) + (b+sigma*sigma/2)*t) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT
	return math.Exp(-q*t)*greeks.BigN(d1) - k*math.Exp(-r*t)*greeks.BigN(d2)
}

func dedup(xs []float64) []float64 {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}
