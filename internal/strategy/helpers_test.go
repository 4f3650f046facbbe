package strategy_test

import (
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
	"github.com/optionstrat/optionstratlib-go/internal/strategy"
)

func buildPosition(t *testing.T, style options.OptionStyle, side options.Side, strike, spot, premium float64) strategy.Position {
	t.Helper()
	c, err := options.NewContract(options.Contract{
		Type:            options.EuropeanType{},
		Style:           style,
		Side:            side,
		Quantity:        primitives.OnePositive(),
		Strike:          primitives.MustPositiveFloat(strike),
		UnderlyingPrice: primitives.MustPositiveFloat(spot),
		Expiration:      options.NewExpirationDays(primitives.MustPositiveFloat(30)),
		ImpliedVol:      primitives.MustPositiveFloat(0.2),
		RiskFreeRate:    primitives.NewDecimalFromFloat(0.01),
		DividendYield:   primitives.ZeroPositive(),
	})
	if err != nil {
		t.Fatalf("NewContract: %v", err)
	}
	return strategy.NewPosition(c, primitives.MustPositiveFloat(premium), primitives.ZeroPositive(), primitives.ZeroPositive(), primitives.Now())
}

const floatTolerance = 1e-6

func approxEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < floatTolerance
}

func mustStrike(t *testing.T, v float64) primitives.Positive {
	t.Helper()
	return primitives.MustPositiveFloat(v)
}

func primitivesTwo(t *testing.T) primitives.Positive {
	t.Helper()
	return primitives.MustPositiveFloat(2)
}
