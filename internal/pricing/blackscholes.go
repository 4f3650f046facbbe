// Package pricing dispatches a Contract to the closed-form or numerical
// pricer matching its OptionType and returns the theoretical fair value,
// one file per payoff family.
package pricing

import (
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// BlackScholes prices a vanilla European contract with continuous dividend
// yield q (the Merton 1973 extension of the 1973 Black-Scholes formula).
func BlackScholes(c options.Contract) primitives.Decimal {
	return blackScholesRaw(
		c.UnderlyingPrice.Float64(),
		c.Strike.Float64(),
		c.RiskFreeRate.Float64(),
		c.DividendYield.Float64(),
		c.ImpliedVol.Float64(),
		c.Expiration.Years().Float64(),
		c.Style,
		c.Side,
	)
}

func blackScholesRaw(s, k, r, q, sigma, t float64, style options.OptionStyle, side options.Side) primitives.Decimal {
	sign := side.Sign().Float64()
	if t <= 0 {
		return primitives.NewDecimalFromFloat(sign * intrinsic(s, k, style))
	}
	if sigma <= 0 {
		discR := math.Exp(-r * t)
		forward := s * math.Exp((r-q)*t)
		return primitives.NewDecimalFromFloat(sign * discR * intrinsic(forward, k, style))
	}

	b := r - q
	d1 := greeks.D1(s, k, b, sigma, t)
	d2 := greeks.D2(d1, sigma, t)
	discQ := math.Exp(-q * t)
	discR := math.Exp(-r * t)

	var price float64
	if style == options.Call {
		price = s*discQ*greeks.BigN(d1) - k*discR*greeks.BigN(d2)
	} else {
		price = k*discR*greeks.BigN(-d2) - s*discQ*greeks.BigN(-d1)
	}
	return primitives.NewDecimalFromFloat(sign * price)
}

func intrinsic(s, k float64, style options.OptionStyle) float64 {
	if style == options.Call {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}

// generalizedBS is the Black-1976-style formula with an explicit
// cost-of-carry b distinct from the discount rate r, used by the exotic
// pricers (Asian, Cliquet, Exchange) whose forward already embeds a carry
// term that differs from the plain r-q of a vanilla option.
func generalizedBS(s, k, b, r, sigma, t float64, style options.OptionStyle) float64 {
	if t <= 0 {
		return intrinsic(s, k, style)
	}
	if sigma <= 0 {
		return math.Exp(-r*t) * math.Max(0, intrinsic(s*math.Exp(b*t), k, style))
	}
	d1 := greeks.D1(s, k, b, sigma, t)
	d2 := greeks.D2(d1, sigma, t)
	discCarry := math.Exp((b - r) * t)
	discR := math.Exp(-r * t)
	if style == options.Call {
		return s*discCarry*greeks.BigN(d1) - k*discR*greeks.BigN(d2)
	}
	return k*discR*greeks.BigN(-d2) - s*discCarry*greeks.BigN(-d1)
}
