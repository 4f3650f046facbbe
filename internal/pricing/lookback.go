package pricing

import (
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Lookback prices a lookback option. Floating-strike uses the
// Goldman-Sosin-Gatto (1979) closed form assuming a freshly-written contract
// (S_min = S_max = S at inception); fixed-strike uses the Conze-Viswanathan
// (1991) decomposition into a vanilla Black-Scholes price plus a lookback
// premium term.
func Lookback(c options.Contract) (primitives.Decimal, error) {
	lt, ok := c.Type.(options.LookbackType)
	if !ok {
		return primitives.Decimal{}, errUnsupportedType("Lookback", c.Type)
	}

	s := c.UnderlyingPrice.Float64()
	k := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	sign := c.Side.Sign().Float64()

	var price float64
	if lt.Kind == options.FloatingStrike {
		price = floatingStrikeLookback(s, r, q, sigma, t, c.Style)
	} else {
		price = fixedStrikeLookback(s, k, r, q, sigma, t, c.Style)
	}
	return primitives.NewDecimalFromFloat(sign * price), nil
}

func floatingStrikeLookback(s, r, q, sigma, t float64, style options.OptionStyle) float64 {
	if t <= 0 {
		return 0
	}
	discR := math.Exp(-r * t)
	if sigma <= 0 {
		forward := s * math.Exp((r-q)*t)
		if style == options.Call {
			return math.Max(forward-s, 0) * discR
		}
		return math.Max(s-forward, 0) * discR
	}

	b := r - q
	sigma2 := sigma * sigma
	sqrtT := math.Sqrt(t)
	discQ := math.Exp(-q * t)

	if math.Abs(b) < 1e-10 {
		a1 := sigma * sqrtT / 2
		if style == options.Call {
			return math.Max(0, s*sigma*sqrtT*(2*greeks.BigN(a1)-1))
		}
		return math.Max(0, s*sigma*sqrtT*0.5)
	}

	a1 := (b + sigma2/2) * t / (sigma * sqrtT)
	a2 := a1 - sigma*sqrtT

	if style == options.Call {
		term1 := s * discQ * greeks.BigN(a1)
		term2 := s * discR * greeks.BigN(a2)
		term3 := s * discR * (sigma2 / (2 * b)) * (greeks.BigN(a2) - math.Exp(b*t)*greeks.BigN(-a1))
		return math.Max(0, term1-term2+term3)
	}

	term1 := s * discR * greeks.BigN(-a2)
	term2 := s * discQ * greeks.BigN(-a1)
	term3 := s * discR * (sigma2 / (2 * b)) * (math.Exp(b*t)*greeks.BigN(a1) - greeks.BigN(a2))
	return math.Max(0, term1-term2+term3)
}

func fixedStrikeLookback(s, k, r, q, sigma, t float64, style options.OptionStyle) float64 {
	if t <= 0 {
		return intrinsic(s, k, style)
	}
	if sigma <= 0 {
		forward := s * math.Exp((r-q)*t)
		discR := math.Exp(-r * t)
		return math.Max(0, intrinsic(forward, k, style)) * discR
	}

	b := r - q
	sigma2 := sigma * sigma
	sqrtT := math.Sqrt(t)
	discR := math.Exp(-r * t)
	discQ := math.Exp(-q * t)
	d1 := greeks.D1(s, k, b, sigma, t)
	d2 := greeks.D2(d1, sigma, t)

	var lambda float64
	if math.Abs(b) < 1e-10 {
		lambda = 1 + sigma2*t/2
	} else {
		lambda = (b + sigma2/2) * t / (sigma * sqrtT)
	}
	nLambda := greeks.BigN(lambda)
	lookbackPremium := s * sigma * sqrtT * (nLambda - 0.5) * 0.5

	if style == options.Call {
		bsCall := s*discQ*greeks.BigN(d1) - k*discR*greeks.BigN(d2)
		return math.Max(0, bsCall+lookbackPremium)
	}
	bsPut := k*discR*greeks.BigN(-d2) - s*discQ*greeks.BigN(-d1)
	return math.Max(0, bsPut+lookbackPremium)
}
