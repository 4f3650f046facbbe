package pricing

import (
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Chooser prices a simple chooser option with the Rubinstein (1991)
// closed-form solution: at the choice date t < T the holder commits to
// whichever of call/put is worth more, so the value decomposes into the
// standard call priced to T plus a correction term built from d-values
// evaluated at the earlier choice date.
func Chooser(c options.Contract) (primitives.Decimal, error) {
	ct, ok := c.Type.(options.ChooserType)
	if !ok {
		return primitives.Decimal{}, errUnsupportedType("Chooser", c.Type)
	}

	s := c.UnderlyingPrice.Float64()
	k := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	tChoice := ct.ChoiceDateYears.Float64()
	sign := c.Side.Sign().Float64()

	if tChoice >= t {
		return primitives.NewDecimalFromFloat(sign * straddleAtExpiry(s, k, r, q, sigma, t)), nil
	}
	if t <= 0 {
		return primitives.NewDecimalFromFloat(sign * math.Max(intrinsic(s, k, options.Call), intrinsic(s, k, options.Put))), nil
	}
	if sigma <= 0 {
		discT := math.Exp(-r * t)
		forward := s * math.Exp((r-q)*t)
		callVal := math.Max(forward-k, 0) * discT
		putVal := math.Max(k-forward, 0) * discT
		return primitives.NewDecimalFromFloat(sign * math.Max(callVal, putVal)), nil
	}

	b := r - q
	sqrtTChoice := math.Sqrt(tChoice)

	d1 := greeks.D1(s, k, b, sigma, t)
	d2 := greeks.D2(d1, sigma, t)
	y1 := (math.Log(s/k) + (b+sigma*sigma/2)*tChoice) / (sigma * sqrtTChoice)
	y2 := y1 - sigma*sqrtTChoice

	discQT := math.Exp(-q * t)
	discRT := math.Exp(-r * t)
	discQChoice := math.Exp(-q * tChoice)
	discRChoice := math.Exp(-r * tChoice)

	price := s*discQT*greeks.BigN(d1) - k*discRT*greeks.BigN(d2) +
		k*discRChoice*greeks.BigN(-y2) - s*discQChoice*greeks.BigN(-y1)

	return primitives.NewDecimalFromFloat(sign * math.Max(price, 0)), nil
}

func straddleAtExpiry(s, k, r, q, sigma, t float64) float64 {
	if t <= 0 {
		return math.Max(intrinsic(s, k, options.Call), intrinsic(s, k, options.Put))
	}
	call := blackScholesRaw(s, k, r, q, sigma, t, options.Call, options.Long).Float64()
	put := blackScholesRaw(s, k, r, q, sigma, t, options.Put, options.Long).Float64()
	return call + put
}
