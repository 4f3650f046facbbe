package pricing

import (
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Quanto prices a guaranteed-exchange-rate (quanto) option: the asset's
// cost-of-carry is adjusted by -ρ·σ_S·σ_FX, the standard quanto drift
// correction, and the result is converted at the contract's fixed exchange
// rate, then discounted at the domestic rate.
func Quanto(c options.Contract) (primitives.Decimal, error) {
	qt, ok := c.Type.(options.QuantoType)
	if !ok {
		return primitives.Decimal{}, errUnsupportedType("Quanto", c.Type)
	}
	params, err := c.RequireExoticParams("Quanto")
	if err != nil {
		return primitives.Decimal{}, err
	}
	if params.QuantoFXVolatility == nil || params.QuantoCorrelation == nil {
		return primitives.Decimal{}, errUnsupportedType("Quanto (missing fx params)", c.Type)
	}

	s := c.UnderlyingPrice.Float64()
	k := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	sign := c.Side.Sign().Float64()

	sigmaFX := params.QuantoFXVolatility.Float64()
	rho := params.QuantoCorrelation.Float64()

	if t <= 0 {
		return primitives.NewDecimalFromFloat(sign * qt.ExchangeRate.Float64() * intrinsic(s, k, c.Style)), nil
	}

	adjB := r - q - rho*sigma*sigmaFX
	price := generalizedBS(s, k, adjB, r, sigma, t, c.Style)
	return primitives.NewDecimalFromFloat(sign * qt.ExchangeRate.Float64() * price), nil
}

// Power prices a power option (payoff (S^n - K)+ for a call) with the
// standard closed-form extension of Black-Scholes to a power of the
// terminal spot (Haug, "The Complete Guide to Option Pricing Formulas",
// Power options).
func Power(c options.Contract) (primitives.Decimal, error) {
	pt, ok := c.Type.(options.PowerType)
	if !ok {
		return primitives.Decimal{}, errUnsupportedType("Power", c.Type)
	}

	s := c.UnderlyingPrice.Float64()
	k := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	n := pt.Exponent.Float64()
	sign := c.Side.Sign().Float64()

	if t <= 0 || sigma <= 0 {
		spotPow := math.Pow(s, n)
		return primitives.NewDecimalFromFloat(sign * intrinsic(spotPow, k, c.Style)), nil
	}
	if n == 0 {
		n = 1
	}

	sqrtT := math.Sqrt(t)
	d1 := (math.Log(s/math.Pow(k, 1/n)) + (r-q+(n-0.5)*sigma*sigma)*t) / (sigma * sqrtT)
	d2 := d1 - n*sigma*sqrtT

	carryExp := (n-1)*(r+n*sigma*sigma/2) - n*q
	scaledSpot := math.Pow(s, n) * math.Exp(carryExp*t)
	discR := math.Exp(-r * t)

	var price float64
	if c.Style == options.Call {
		price = scaledSpot*greeks.BigN(d1) - k*discR*greeks.BigN(d2)
	} else {
		price = k*discR*greeks.BigN(-d2) - scaledSpot*greeks.BigN(-d1)
	}
	return primitives.NewDecimalFromFloat(sign * math.Max(price, 0)), nil
}
