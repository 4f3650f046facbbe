package pricing_test

import (
	"context"
	"math"
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/pricing"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

func TestPriceDispatchesEuropean(t *testing.T) {
	c := buildContract(t, options.EuropeanType{}, options.Call, 100, 100, 0.05, 0, 0.2, 365, nil)
	got, err := pricing.Price(context.Background(), c)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	want := pricing.BlackScholes(c)
	if math.Abs(got.Float64()-want.Float64()) > 1e-9 {
		t.Errorf("Price() = %v, want BlackScholes() = %v", got.Float64(), want.Float64())
	}
}

func TestPriceDispatchesBermudaToBinomial(t *testing.T) {
	exercise := []primitives.Positive{primitives.MustPositiveFloat(0.5), primitives.MustPositiveFloat(1)}
	c := buildContract(t, options.BermudaType{ExerciseDates: exercise}, options.Put, 100, 105, 0.05, 0.02, 0.25, 365, nil)
	got, err := pricing.Price(context.Background(), c)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if got.Float64() < 0 {
		t.Errorf("Bermuda price = %v, want non-negative", got.Float64())
	}
}

func TestMonteCarloPriceApproximatesBlackScholes(t *testing.T) {
	c := buildContract(t, options.EuropeanType{}, options.Call, 100, 100, 0.05, 0, 0.2, 365, nil)
	bsPrice := pricing.BlackScholes(c).Float64()

	mcPrice, err := pricing.MonteCarloPrice(context.Background(), c, 20000)
	if err != nil {
		t.Fatalf("MonteCarloPrice: %v", err)
	}
	if math.Abs(mcPrice.Float64()-bsPrice) > bsPrice*0.1 {
		t.Errorf("MonteCarloPrice() = %v, want within 10%% of BlackScholes %v", mcPrice.Float64(), bsPrice)
	}
}

