package options_test

import (
	"math"
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

func info(spot, strike float64, style options.OptionStyle, side options.Side) options.PayoffInfo {
	return options.PayoffInfo{
		Spot:   primitives.MustPositiveFloat(spot),
		Strike: primitives.MustPositiveFloat(strike),
		Style:  style,
		Side:   side,
	}
}

func TestPayoffStandardCallAndPut(t *testing.T) {
	tests := []struct {
		name  string
		spot  float64
		style options.OptionStyle
		want  float64
	}{
		{"ITM call", 120, options.Call, 20},
		{"OTM call", 80, options.Call, 0},
		{"ITM put", 80, options.Put, 20},
		{"OTM put", 120, options.Put, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := options.Payoff(options.EuropeanType{}, info(tt.spot, 100, tt.style, options.Long))
			if got.Float64() != tt.want {
				t.Errorf("Payoff = %v, want %v", got.Float64(), tt.want)
			}
		})
	}
}

func TestPayoffShortNegates(t *testing.T) {
	long := options.Payoff(options.EuropeanType{}, info(120, 100, options.Call, options.Long))
	short := options.Payoff(options.EuropeanType{}, info(120, 100, options.Call, options.Short))
	if long.Add(short).Float64() != 0 {
		t.Errorf("short payoff %v is not the negation of long %v", short.Float64(), long.Float64())
	}
}

func TestPayoffAsianUsesPathAverage(t *testing.T) {
	pi := info(130, 100, options.Call, options.Long)
	pi.SpotPrices = []primitives.Positive{
		primitives.MustPositiveFloat(100),
		primitives.MustPositiveFloat(110),
		primitives.MustPositiveFloat(120),
	}
	arith := options.Payoff(options.AsianType{Averaging: options.Arithmetic}, pi)
	if arith.Float64() != 10 { // mean 110, strike 100
		t.Errorf("arithmetic Asian payoff = %v, want 10", arith.Float64())
	}

	geo := options.Payoff(options.AsianType{Averaging: options.Geometric}, pi)
	wantGeo := math.Pow(100*110*120, 1.0/3) - 100
	if math.Abs(geo.Float64()-wantGeo) > 1e-6 {
		t.Errorf("geometric Asian payoff = %v, want %v", geo.Float64(), wantGeo)
	}

	empty := info(130, 100, options.Call, options.Long)
	if got := options.Payoff(options.AsianType{Averaging: options.Arithmetic}, empty); got.Float64() != 0 {
		t.Errorf("Asian payoff with no path = %v, want 0", got.Float64())
	}
}

func TestPayoffBarrierGating(t *testing.T) {
	level := primitives.MustPositiveFloat(110)
	itm := info(120, 100, options.Call, options.Long) // above the barrier

	upIn := options.Payoff(options.BarrierType{Kind: options.UpAndIn, Level: level}, itm)
	if upIn.Float64() != 20 {
		t.Errorf("up-and-in with spot above barrier = %v, want 20", upIn.Float64())
	}
	upOut := options.Payoff(options.BarrierType{Kind: options.UpAndOut, Level: level}, itm)
	if upOut.Float64() != 0 {
		t.Errorf("up-and-out with spot above barrier = %v, want 0 (knocked out)", upOut.Float64())
	}

	below := info(105, 100, options.Call, options.Long) // below the barrier
	if got := options.Payoff(options.BarrierType{Kind: options.UpAndIn, Level: level}, below); got.Float64() != 0 {
		t.Errorf("up-and-in with spot below barrier = %v, want 0 (never knocked in)", got.Float64())
	}
	if got := options.Payoff(options.BarrierType{Kind: options.UpAndOut, Level: level}, below); got.Float64() != 5 {
		t.Errorf("up-and-out with spot below barrier = %v, want 5", got.Float64())
	}
}

func TestPayoffBinaryKinds(t *testing.T) {
	itm := info(120, 100, options.Call, options.Long)
	if got := options.Payoff(options.BinaryType{Kind: options.CashOrNothing}, itm); got.Float64() != 1 {
		t.Errorf("cash-or-nothing ITM = %v, want 1", got.Float64())
	}
	if got := options.Payoff(options.BinaryType{Kind: options.AssetOrNothing}, itm); got.Float64() != 120 {
		t.Errorf("asset-or-nothing ITM = %v, want spot 120", got.Float64())
	}
	if got := options.Payoff(options.BinaryType{Kind: options.Gap}, itm); got.Float64() != 20 {
		t.Errorf("gap ITM = %v, want 20", got.Float64())
	}
	otm := info(90, 100, options.Call, options.Long)
	if got := options.Payoff(options.BinaryType{Kind: options.CashOrNothing}, otm); got.Float64() != 0 {
		t.Errorf("cash-or-nothing OTM = %v, want 0", got.Float64())
	}
}

func TestPayoffLookbackFloatingStrike(t *testing.T) {
	pi := info(115, 100, options.Call, options.Long)
	min := primitives.MustPositiveFloat(95)
	max := primitives.MustPositiveFloat(130)
	pi.SpotMin, pi.SpotMax = &min, &max

	call := options.Payoff(options.LookbackType{Kind: options.FloatingStrike}, pi)
	if call.Float64() != 20 { // spot - min
		t.Errorf("floating lookback call = %v, want 20", call.Float64())
	}
	pi.Style = options.Put
	put := options.Payoff(options.LookbackType{Kind: options.FloatingStrike}, pi)
	if put.Float64() != 15 { // max - spot
		t.Errorf("floating lookback put = %v, want 15", put.Float64())
	}

	// Missing extrema are treated as zero, not an error.
	bare := info(115, 100, options.Call, options.Long)
	if got := options.Payoff(options.LookbackType{Kind: options.FloatingStrike}, bare); got.Float64() != 115 {
		t.Errorf("floating lookback call with no min = %v, want spot 115", got.Float64())
	}
}

func TestPayoffChooserTakesBetterOf(t *testing.T) {
	up := options.Payoff(options.ChooserType{ChoiceDateYears: primitives.MustPositiveFloat(0.25)}, info(120, 100, options.Call, options.Long))
	if up.Float64() != 20 {
		t.Errorf("chooser payoff with spot above strike = %v, want 20 (call side)", up.Float64())
	}
	down := options.Payoff(options.ChooserType{ChoiceDateYears: primitives.MustPositiveFloat(0.25)}, info(80, 100, options.Call, options.Long))
	if down.Float64() != 20 {
		t.Errorf("chooser payoff with spot below strike = %v, want 20 (put side)", down.Float64())
	}
}

func TestPayoffQuantoScalesByExchangeRate(t *testing.T) {
	got := options.Payoff(options.QuantoType{ExchangeRate: primitives.MustPositiveFloat(1.5)}, info(120, 100, options.Call, options.Long))
	if got.Float64() != 30 {
		t.Errorf("quanto payoff = %v, want 20 * 1.5 = 30", got.Float64())
	}
}

func TestPayoffPowerOption(t *testing.T) {
	got := options.Payoff(options.PowerType{Exponent: primitives.NewDecimalFromFloat(2)}, info(12, 100, options.Call, options.Long))
	if got.Float64() != 44 { // 12^2 - 100
		t.Errorf("power payoff = %v, want 44", got.Float64())
	}
}

func TestPayoffCompoundDelegatesToInner(t *testing.T) {
	inner := options.CompoundType{Underlying: options.BinaryType{Kind: options.CashOrNothing}}
	got := options.Payoff(inner, info(120, 100, options.Call, options.Long))
	if got.Float64() != 1 {
		t.Errorf("compound-over-binary payoff = %v, want 1", got.Float64())
	}
}
