package pricing_test

import (
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/pricing"
)

func TestCompoundNonNegative(t *testing.T) {
	tests := []struct {
		name  string
		style options.OptionStyle
	}{
		{"call-on-call", options.Call},
		{"put-on-call", options.Put},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := options.CompoundType{Underlying: options.EuropeanType{}}
			c := buildContract(t, inner, tt.style, 100, 5, 0.05, 0, 0.25, 180, nil)
			price, err := pricing.Compound(c)
			if err != nil {
				t.Fatalf("Compound: %v", err)
			}
			if price.Float64() < 0 {
				t.Errorf("compound %s price = %v, want non-negative", tt.name, price.Float64())
			}
		})
	}
}

func TestCompoundHonorsExplicitSubstrikeAndExpiry(t *testing.T) {
	inner := options.CompoundType{Underlying: options.EuropeanType{}}
	exotic := &options.ExoticParams{
		CompoundSubstrike:       ptrPositive(100),
		CompoundInnerExpiryDays: ptrPositive(365),
	}
	c := buildContract(t, inner, options.Call, 100, 5, 0.05, 0, 0.25, 180, exotic)
	price, err := pricing.Compound(c)
	if err != nil {
		t.Fatalf("Compound: %v", err)
	}
	if price.Float64() < 0 {
		t.Errorf("compound with explicit params price = %v, want non-negative", price.Float64())
	}
}
