package pricing

import (
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Asian prices a geometric-average Asian option with the Kemna-Vorst (1990)
// closed form, and an arithmetic-average Asian option with the
// Turnbull-Wakeman (1991) moment-matching approximation. Both reduce to a
// single generalized Black-Scholes evaluation with an adjusted volatility
// and cost-of-carry.
func Asian(c options.Contract) (primitives.Decimal, error) {
	at, ok := c.Type.(options.AsianType)
	if !ok {
		return primitives.Decimal{}, errUnsupportedType("Asian", c.Type)
	}

	s := c.UnderlyingPrice.Float64()
	k := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	sign := c.Side.Sign().Float64()
	b := r - q

	if t <= 0 {
		return primitives.NewDecimalFromFloat(sign * intrinsic(s, k, c.Style)), nil
	}

	var price float64
	if at.Averaging == options.Geometric {
		price = kemnaVorst(s, k, b, r, sigma, t, c.Style)
	} else {
		price = turnbullWakeman(s, k, b, r, sigma, t, c.Style)
	}
	return primitives.NewDecimalFromFloat(sign * price), nil
}

// kemnaVorst prices a geometric-average Asian option: the geometric average
// of a lognormal process is itself lognormal, so the adjusted volatility
// σ/√3 and adjusted carry (b - σ²/6)/2 give an exact closed form.
func kemnaVorst(s, k, b, r, sigma, t float64, style options.OptionStyle) float64 {
	adjSigma := sigma / math.Sqrt(3)
	adjB := 0.5*(b-sigma*sigma/6)
	return generalizedBS(s, k, adjB, r, adjSigma, t, style)
}

// turnbullWakeman approximates the arithmetic average's first two moments
// under the risk-neutral measure and matches them to a lognormal, then
// reuses the generalized Black-Scholes formula with the implied adjusted
// volatility.
func turnbullWakeman(s, k, b, r, sigma, t float64, style options.OptionStyle) float64 {
	m1 := arithmeticM1(s, b, t)
	m2 := arithmeticM2(s, b, sigma, t)

	if m1 <= 0 || m2 <= 0 {
		return math.Exp(-r*t) * math.Max(0, intrinsic(m1, k, style))
	}

	adjSigma2 := math.Log(m2/(m1*m1)) / t
	if adjSigma2 < 0 {
		adjSigma2 = 0
	}
	adjSigma := math.Sqrt(adjSigma2)
	adjB := math.Log(m1/s) / t

	return generalizedBS(s, k, adjB, r, adjSigma, t, style)
}

func arithmeticM1(s, b, t float64) float64 {
	if math.Abs(b) < 1e-12 {
		return s
	}
	return s * (math.Exp(b*t) - 1) / (b * t)
}

func arithmeticM2(s, b, sigma, t float64) float64 {
	sigma2 := sigma * sigma
	if math.Abs(b) < 1e-12 && sigma2 < 1e-12 {
		return s * s
	}
	term1 := 2 * s * s * math.Exp((2*b+sigma2)*t) / ((b + sigma2) * (2*b + sigma2) * t * t)
	term2 := 2 * s * s / (b * t * t) * (1/(2*b+sigma2) - math.Exp(b*t)/(b+sigma2))
	return term1 + term2
}
