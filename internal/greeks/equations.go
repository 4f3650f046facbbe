package greeks

import (
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Greek bundles the six sensitivities the engine exposes for a contract:
// delta (∂V/∂S), gamma (∂²V/∂S²), theta (∂V/∂T, negative = decay), vega
// (∂V/∂σ), rho (∂V/∂r), and rho_d (∂V/∂q).
type Greek struct {
	Delta primitives.Decimal
	Gamma primitives.Decimal
	Theta primitives.Decimal
	Vega  primitives.Decimal
	Rho   primitives.Decimal
	RhoD  primitives.Decimal
}

// Add returns the element-wise sum of two Greek sets, used to aggregate a
// strategy's per-position Greeks into a portfolio total.
func (g Greek) Add(other Greek) Greek {
	return Greek{
		Delta: g.Delta.Add(other.Delta),
		Gamma: g.Gamma.Add(other.Gamma),
		Theta: g.Theta.Add(other.Theta),
		Vega:  g.Vega.Add(other.Vega),
		Rho:   g.Rho.Add(other.Rho),
		RhoD:  g.RhoD.Add(other.RhoD),
	}
}

// Scale multiplies every Greek by a scalar (used to apply quantity × side
// sign when aggregating a Position into a Strategy total).
func (g Greek) Scale(factor primitives.Decimal) Greek {
	return Greek{
		Delta: g.Delta.Mul(factor),
		Gamma: g.Gamma.Mul(factor),
		Theta: g.Theta.Mul(factor),
		Vega:  g.Vega.Mul(factor),
		Rho:   g.Rho.Mul(factor),
		RhoD:  g.RhoD.Mul(factor),
	}
}

// EuropeanAnalytic computes the closed-form Black-Scholes Greeks for a
// vanilla European contract, including the dividend-yield discount factor
// on delta/gamma and the dividend sensitivity rho_d. Vega and the rhos are
// reported per point (divided by 100), matching market convention.
func EuropeanAnalytic(c options.Contract) Greek {
	s := c.UnderlyingPrice.Float64()
	k := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	sign := c.Side.Sign().Float64()

	if t <= 0 {
		return zeroTimeGreeks(s, k, c, sign)
	}
	if sigma <= 0 {
		return zeroVolGreeks(s, k, c, sign)
	}

	sqrtT := math.Sqrt(t)
	b := r - q
	d1 := D1(s, k, b, sigma, t)
	d2 := D2(d1, sigma, t)
	discQ := math.Exp(-q * t)
	discR := math.Exp(-r * t)

	var delta, gamma, theta, vega, rho, rhoD float64
	gamma = discQ * SmallN(d1) / (s * sigma * sqrtT)
	vega = s * discQ * SmallN(d1) * sqrtT / 100

	if c.Style == options.Call {
		delta = discQ * BigN(d1)
		theta = -(s*discQ*SmallN(d1)*sigma)/(2*sqrtT) - r*k*discR*BigN(d2) + q*s*discQ*BigN(d1)
		rho = k * t * discR * BigN(d2) / 100
		rhoD = -s * t * discQ * BigN(d1) / 100
	} else {
		delta = discQ * (BigN(d1) - 1)
		theta = -(s*discQ*SmallN(d1)*sigma)/(2*sqrtT) + r*k*discR*BigN(-d2) - q*s*discQ*BigN(-d1)
		rho = -k * t * discR * BigN(-d2) / 100
		rhoD = s * t * discQ * BigN(-d1) / 100
	}

	return Greek{
		Delta: primitives.NewDecimalFromFloat(sign * delta),
		Gamma: primitives.NewDecimalFromFloat(sign * gamma),
		Theta: primitives.NewDecimalFromFloat(sign * theta),
		Vega:  primitives.NewDecimalFromFloat(sign * vega),
		Rho:   primitives.NewDecimalFromFloat(sign * rho),
		RhoD:  primitives.NewDecimalFromFloat(sign * rhoD),
	}
}

func zeroVolGreeks(s, k float64, c options.Contract, sign float64) Greek {
	var delta float64
	if c.Style == options.Call {
		if s >= k {
			delta = 1
		}
	} else {
		if s <= k {
			delta = -1
		}
	}
	return Greek{Delta: primitives.NewDecimalFromFloat(sign * delta)}
}

func zeroTimeGreeks(s, k float64, c options.Contract, sign float64) Greek {
	return zeroVolGreeks(s, k, c, sign)
}

// NumericBump computes a generic finite-difference Greek set given a pricing
// function. This is the fallback used for exotic OptionTypes that have no
// closed-form Greek formula: delta and gamma use central differences in
// spot, vega and rho a forward bump in vol and rate, and theta a one-day step
// back in time (zero when less than a day remains). RhoD is left zero.
func NumericBump(price func(spot, vol, rate, years float64) (float64, error), s, sigma, r, t float64) (Greek, error) {
	const (
		dS     = 0.01
		dVol   = 0.0001
		dRate  = 0.0001
		dYears = 1.0 / 365.0
	)

	base, err := price(s, sigma, r, t)
	if err != nil {
		return Greek{}, err
	}
	up, err := price(s+dS, sigma, r, t)
	if err != nil {
		return Greek{}, err
	}
	down, err := price(s-dS, sigma, r, t)
	if err != nil {
		return Greek{}, err
	}
	delta := (up - down) / (2 * dS)
	gamma := (up - 2*base + down) / (dS * dS)

	volUp, err := price(s, sigma+dVol, r, t)
	if err != nil {
		return Greek{}, err
	}
	vega := (volUp - base) / dVol / 100

	rateUp, err := price(s, sigma, r+dRate, t)
	if err != nil {
		return Greek{}, err
	}
	rho := (rateUp - base) / dRate / 100

	var theta float64
	if t > dYears {
		timeDown, err := price(s, sigma, r, t-dYears)
		if err != nil {
			return Greek{}, err
		}
		theta = (timeDown - base) / dYears
	}

	return Greek{
		Delta: primitives.NewDecimalFromFloat(delta),
		Gamma: primitives.NewDecimalFromFloat(gamma),
		Theta: primitives.NewDecimalFromFloat(theta),
		Vega:  primitives.NewDecimalFromFloat(vega),
		Rho:   primitives.NewDecimalFromFloat(rho),
	}, nil
}
