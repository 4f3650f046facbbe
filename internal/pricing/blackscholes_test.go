package pricing_test

import (
	"context"
	"math"
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/pricing"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

const (
	priceTolerance  = 0.01
	greeksTolerance = 0.01
)

func vanillaContract(t *testing.T, style options.OptionStyle, side options.Side, spot, strike, rate, dividend, vol, days float64) options.Contract {
	t.Helper()
	c, err := options.NewContract(options.Contract{
		Symbol:          "TEST",
		Type:            options.EuropeanType{},
		Style:           style,
		Side:            side,
		Quantity:        primitives.OnePositive(),
		Strike:          primitives.MustPositiveFloat(strike),
		UnderlyingPrice: primitives.MustPositiveFloat(spot),
		Expiration:      options.NewExpirationDays(primitives.MustPositiveFloat(days)),
		ImpliedVol:      primitives.MustPositiveFloat(vol),
		RiskFreeRate:    primitives.NewDecimalFromFloat(rate),
		DividendYield:   primitives.MustPositiveFloat(dividend),
	})
	if err != nil {
		t.Fatalf("NewContract: %v", err)
	}
	return c
}

func TestBlackScholesKnownValues(t *testing.T) {
	tests := []struct {
		name  string
		style options.OptionStyle
		want  float64
	}{
		// S=100, K=100, r=0.05, q=0, sigma=0.2, T=1 (textbook ATM case).
		{"ATM call", options.Call, 10.4506},
		{"ATM put", options.Put, 5.5735},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := vanillaContract(t, tt.style, options.Long, 100, 100, 0.05, 0, 0.2, 365)
			got := pricing.BlackScholes(c).Float64()
			if math.Abs(got-tt.want) > priceTolerance {
				t.Errorf("BlackScholes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlackScholesThirtyDayATMCall(t *testing.T) {
	// S=100, K=100, T=30/365, sigma=0.2, r=0.05, q=0 -> ~2.49.
	c := vanillaContract(t, options.Call, options.Long, 100, 100, 0.05, 0, 0.2, 30)
	got := pricing.BlackScholes(c).Float64()
	if math.Abs(got-2.49) > priceTolerance {
		t.Errorf("30-day ATM call = %v, want 2.49", got)
	}
}

func TestBlackScholesMonotoneInVolatility(t *testing.T) {
	for _, style := range []options.OptionStyle{options.Call, options.Put} {
		prev := -math.MaxFloat64
		for _, vol := range []float64{0.05, 0.1, 0.2, 0.4, 0.8} {
			c := vanillaContract(t, style, options.Long, 100, 100, 0.05, 0, vol, 180)
			price := pricing.BlackScholes(c).Float64()
			if price < prev-1e-9 {
				t.Errorf("%s price decreased from %v to %v as vol rose to %v", style, prev, price, vol)
			}
			prev = price
		}
	}
}

func TestBlackScholesMonotoneInStrike(t *testing.T) {
	prevCall := math.MaxFloat64
	prevPut := -math.MaxFloat64
	for _, strike := range []float64{80, 90, 100, 110, 120} {
		call := vanillaContract(t, options.Call, options.Long, 100, strike, 0.05, 0, 0.2, 180)
		put := vanillaContract(t, options.Put, options.Long, 100, strike, 0.05, 0, 0.2, 180)
		callPrice := pricing.BlackScholes(call).Float64()
		putPrice := pricing.BlackScholes(put).Float64()
		if callPrice > prevCall+1e-9 {
			t.Errorf("call price increased from %v to %v as strike rose to %v", prevCall, callPrice, strike)
		}
		if putPrice < prevPut-1e-9 {
			t.Errorf("put price decreased from %v to %v as strike rose to %v", prevPut, putPrice, strike)
		}
		prevCall, prevPut = callPrice, putPrice
	}
}

func TestBlackScholesShortNegatesLong(t *testing.T) {
	long := vanillaContract(t, options.Call, options.Long, 100, 100, 0.05, 0, 0.2, 365)
	short := vanillaContract(t, options.Call, options.Short, 100, 100, 0.05, 0, 0.2, 365)

	longPrice := pricing.BlackScholes(long).Float64()
	shortPrice := pricing.BlackScholes(short).Float64()

	if math.Abs(longPrice+shortPrice) > 1e-9 {
		t.Errorf("short price %v is not the negation of long price %v", shortPrice, longPrice)
	}
}

func TestBlackScholesZeroVolatilityIsIntrinsic(t *testing.T) {
	c := vanillaContract(t, options.Call, options.Long, 110, 100, 0.05, 0, 0, 365)
	got := pricing.BlackScholes(c).Float64()
	discounted := 10.0 * math.Exp(-0.05)
	if math.Abs(got-discounted) > priceTolerance {
		t.Errorf("zero-vol call = %v, want discounted intrinsic %v", got, discounted)
	}
}

func TestBlackScholesPutCallParity(t *testing.T) {
	call := vanillaContract(t, options.Call, options.Long, 105, 100, 0.03, 0.01, 0.25, 180)
	put := vanillaContract(t, options.Put, options.Long, 105, 100, 0.03, 0.01, 0.25, 180)

	callPrice := pricing.BlackScholes(call).Float64()
	putPrice := pricing.BlackScholes(put).Float64()

	s, k, r, q, tYears := 105.0, 100.0, 0.03, 0.01, 180.0/365

	lhs := callPrice - putPrice
	rhs := s*math.Exp(-q*tYears) - k*math.Exp(-r*tYears)

	if math.Abs(lhs-rhs) > priceTolerance {
		t.Errorf("put-call parity violated: call-put=%v, want %v", lhs, rhs)
	}
}

func TestEuropeanGreeksDeltaBounds(t *testing.T) {
	call := vanillaContract(t, options.Call, options.Long, 100, 100, 0.05, 0, 0.2, 365)
	g, err := pricing.Greeks(context.Background(), call)
	if err != nil {
		t.Fatalf("Greeks: %v", err)
	}
	delta := g.Delta.Float64()
	if delta < 0 || delta > 1 {
		t.Errorf("call delta %v out of [0,1]", delta)
	}
}
