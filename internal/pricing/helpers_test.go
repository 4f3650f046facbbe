package pricing_test

import (
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// buildContract constructs a Contract for the given OptionType with common
// sane defaults, letting each test override just the fields it cares about.
func buildContract(t *testing.T, typ options.OptionType, style options.OptionStyle, spot, strike, rate, dividend, vol, days float64, exotic *options.ExoticParams) options.Contract {
	t.Helper()
	c, err := options.NewContract(options.Contract{
		Symbol:          "TEST",
		Type:            typ,
		Style:           style,
		Side:            options.Long,
		Quantity:        primitives.OnePositive(),
		Strike:          primitives.MustPositiveFloat(strike),
		UnderlyingPrice: primitives.MustPositiveFloat(spot),
		Expiration:      options.NewExpirationDays(primitives.MustPositiveFloat(days)),
		ImpliedVol:      primitives.MustPositiveFloat(vol),
		RiskFreeRate:    primitives.NewDecimalFromFloat(rate),
		DividendYield:   primitives.MustPositiveFloat(dividend),
		ExoticParams:    exotic,
	})
	if err != nil {
		t.Fatalf("NewContract: %v", err)
	}
	return c
}

func ptrDecimal(f float64) *primitives.Decimal {
	d := primitives.NewDecimalFromFloat(f)
	return &d
}

func ptrPositive(f float64) *primitives.Positive {
	p := primitives.MustPositiveFloat(f)
	return &p
}
