package pricing_test

import (
	"math"
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/pricing"
)

func TestAmericanAtLeastEuropean(t *testing.T) {
	tests := []struct {
		name  string
		style options.OptionStyle
	}{
		{"call", options.Call},
		{"put", options.Put},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			euro := buildContract(t, options.EuropeanType{}, tt.style, 100, 100, 0.05, 0.03, 0.25, 365, nil)
			amer := buildContract(t, options.AmericanType{}, tt.style, 100, 100, 0.05, 0.03, 0.25, 365, nil)

			euroPrice := pricing.BlackScholes(euro).Float64()
			amerPrice, err := pricing.American(amer)
			if err != nil {
				t.Fatalf("American: %v", err)
			}

			if amerPrice.Float64() < euroPrice-1e-9 {
				t.Errorf("American price %v below European price %v", amerPrice.Float64(), euroPrice)
			}
		})
	}
}

func TestAmericanATMPutAboveEuropean(t *testing.T) {
	// S = K = 100, T = 1, sigma = 0.2, r = 0.05, q = 0: early exercise of the
	// put carries value, so the American price strictly dominates the
	// European one, and both are positive and finite.
	euro := buildContract(t, options.EuropeanType{}, options.Put, 100, 100, 0.05, 0, 0.2, 365, nil)
	amer := buildContract(t, options.AmericanType{}, options.Put, 100, 100, 0.05, 0, 0.2, 365, nil)

	euroPrice := pricing.BlackScholes(euro).Float64()
	amerPrice, err := pricing.American(amer)
	if err != nil {
		t.Fatalf("American: %v", err)
	}
	got := amerPrice.Float64()

	if got < euroPrice {
		t.Errorf("American ATM put %v below European %v", got, euroPrice)
	}
	if got <= 0 || math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("American ATM put = %v, want positive and finite", got)
	}
}

func TestAmericanNoDividendCallEqualsEuropean(t *testing.T) {
	// With zero dividend yield, early exercise of an American call is never
	// optimal, so its price should match the European price closely.
	euro := buildContract(t, options.EuropeanType{}, options.Call, 100, 100, 0.05, 0, 0.2, 365, nil)
	amer := buildContract(t, options.AmericanType{}, options.Call, 100, 100, 0.05, 0, 0.2, 365, nil)

	euroPrice := pricing.BlackScholes(euro).Float64()
	amerPrice, err := pricing.American(amer)
	if err != nil {
		t.Fatalf("American: %v", err)
	}

	if math.Abs(amerPrice.Float64()-euroPrice) > priceTolerance*10 {
		t.Errorf("American no-dividend call = %v, want close to European %v", amerPrice.Float64(), euroPrice)
	}
}

func TestAmericanZeroTimeReturnsIntrinsic(t *testing.T) {
	amer := buildContract(t, options.AmericanType{}, options.Put, 90, 100, 0.05, 0, 0.2, 0, nil)
	price, err := pricing.American(amer)
	if err != nil {
		t.Fatalf("American: %v", err)
	}
	if math.Abs(price.Float64()-10) > priceTolerance {
		t.Errorf("zero-time American put = %v, want intrinsic 10", price.Float64())
	}
}
