package pricing_test

import (
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/pricing"
)

func TestLookbackFloatingAtLeastVanilla(t *testing.T) {
	// A floating-strike lookback call (strike = realized minimum) is worth
	// at least as much as a vanilla at-the-money call, since its effective
	// strike can only be as good or better than the fixed spot.
	lb := buildContract(t, options.LookbackType{Kind: options.FloatingStrike}, options.Call, 100, 100, 0.05, 0, 0.2, 365, nil)
	euro := buildContract(t, options.EuropeanType{}, options.Call, 100, 100, 0.05, 0, 0.2, 365, nil)

	lbPrice, err := pricing.Lookback(lb)
	if err != nil {
		t.Fatalf("Lookback: %v", err)
	}
	euroPrice := pricing.BlackScholes(euro)

	if lbPrice.Float64() < euroPrice.Float64()-1e-6 {
		t.Errorf("floating lookback %v below vanilla %v", lbPrice.Float64(), euroPrice.Float64())
	}
}

func TestLookbackFixedStrikeNonNegative(t *testing.T) {
	lb := buildContract(t, options.LookbackType{Kind: options.FixedStrike}, options.Put, 100, 110, 0.05, 0.02, 0.3, 180, nil)
	price, err := pricing.Lookback(lb)
	if err != nil {
		t.Fatalf("Lookback: %v", err)
	}
	if price.Float64() < 0 {
		t.Errorf("fixed-strike lookback put price = %v, want non-negative", price.Float64())
	}
}
