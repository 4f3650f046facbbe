package pricing

import (
	"context"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Greeks computes the sensitivity set for a Contract. European contracts use
// the closed-form formulas in internal/greeks directly; every other
// OptionType falls back to finite-difference bumps against this package's
// own Price dispatcher, since most exotics have no tractable closed-form
// Greek and repricing is always available once a pricer exists.
func Greeks(ctx context.Context, c options.Contract) (greeks.Greek, error) {
	if _, ok := c.Type.(options.EuropeanType); ok {
		return greeks.EuropeanAnalytic(c), nil
	}

	s := c.UnderlyingPrice.Float64()
	sigma := c.ImpliedVol.Float64()
	r := c.RiskFreeRate.Float64()
	t := c.Expiration.Years().Float64()

	priceAt := func(spot, vol, rate, years float64) (float64, error) {
		bumped := c
		bumped.UnderlyingPrice = primitives.MustPositiveFloat(spot)
		bumped.ImpliedVol = primitives.MustPositiveFloat(vol)
		bumped.RiskFreeRate = c.RiskFreeRate.Add(primitives.NewDecimalFromFloat(rate - r))
		bumped.Expiration = options.NewExpirationDays(primitives.MustPositiveFloat(years * 365))
		price, err := Price(ctx, bumped)
		if err != nil {
			return 0, err
		}
		return price.Float64(), nil
	}

	return greeks.NumericBump(priceAt, s, sigma, r, t)
}
