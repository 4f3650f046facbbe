package pricing

import (
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Binary prices a digital option: cash-or-nothing pays a fixed cash amount
// when in the money, asset-or-nothing pays the spot itself, and gap pays
// spot-strike, with the contract's single Strike serving as both trigger
// and payout strike.
func Binary(c options.Contract) (primitives.Decimal, error) {
	bt, ok := c.Type.(options.BinaryType)
	if !ok {
		return primitives.Decimal{}, errUnsupportedType("Binary", c.Type)
	}

	s := c.UnderlyingPrice.Float64()
	k := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	sign := c.Side.Sign().Float64()

	if t <= 0 || sigma <= 0 {
		return primitives.NewDecimalFromFloat(sign * binaryIntrinsic(s, k, c.Style, bt.Kind)), nil
	}

	b := r - q
	d1 := greeks.D1(s, k, b, sigma, t)
	d2 := greeks.D2(d1, sigma, t)
	discR := math.Exp(-r * t)
	discQ := math.Exp(-q * t)

	var price float64
	switch bt.Kind {
	case options.CashOrNothing:
		if c.Style == options.Call {
			price = discR * greeks.BigN(d2)
		} else {
			price = discR * greeks.BigN(-d2)
		}
	case options.AssetOrNothing:
		if c.Style == options.Call {
			price = s * discQ * greeks.BigN(d1)
		} else {
			price = s * discQ * greeks.BigN(-d1)
		}
	case options.Gap:
		if c.Style == options.Call {
			price = s*discQ*greeks.BigN(d1) - k*discR*greeks.BigN(d2)
		} else {
			price = k*discR*greeks.BigN(-d2) - s*discQ*greeks.BigN(-d1)
		}
	}
	return primitives.NewDecimalFromFloat(sign * price), nil
}

func binaryIntrinsic(s, k float64, style options.OptionStyle, kind options.BinaryKind) float64 {
	itm := s > k
	if style == options.Put {
		itm = s < k
	}
	if !itm {
		return 0
	}
	switch kind {
	case options.AssetOrNothing:
		return s
	case options.Gap:
		return s - k
	default:
		return 1
	}
}
