package probability_test

import (
	"math"
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
	"github.com/optionstrat/optionstratlib-go/internal/probability"
	"github.com/optionstrat/optionstratlib-go/internal/strategy"
)

func buildStraddle(t *testing.T) *strategy.Strategy {
	t.Helper()
	build := func(style options.OptionStyle, premium float64) strategy.Position {
		c, err := options.NewContract(options.Contract{
			Type:            options.EuropeanType{},
			Style:           style,
			Side:            options.Long,
			Quantity:        primitives.OnePositive(),
			Strike:          primitives.MustPositiveFloat(100),
			UnderlyingPrice: primitives.MustPositiveFloat(100),
			Expiration:      options.NewExpirationDays(primitives.MustPositiveFloat(30)),
			ImpliedVol:      primitives.MustPositiveFloat(0.25),
			RiskFreeRate:    primitives.NewDecimalFromFloat(0.01),
			DividendYield:   primitives.ZeroPositive(),
		})
		if err != nil {
			t.Fatalf("NewContract: %v", err)
		}
		return strategy.NewPosition(c, primitives.MustPositiveFloat(premium), primitives.ZeroPositive(), primitives.ZeroPositive(), primitives.Now())
	}
	call := build(options.Call, 5)
	put := build(options.Put, 4)
	strat, err := strategy.NewLongStraddleStrategy([]strategy.Position{call, put})
	if err != nil {
		t.Fatalf("NewLongStraddleStrategy: %v", err)
	}
	return strat
}

func TestAnalyzeProbabilityMassSumsToOne(t *testing.T) {
	strat := buildStraddle(t)
	profitRanges, lossRanges, _, err := probability.Analyze(strat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	total := 0.0
	for _, r := range profitRanges {
		total += r.Probability.Float64()
	}
	for _, r := range lossRanges {
		total += r.Probability.Float64()
	}
	if math.Abs(total-1) > 1e-6 {
		t.Errorf("expected total probability mass ~1, got %v", total)
	}
}

func TestAnalyzeSeparatesProfitAndLossRanges(t *testing.T) {
	strat := buildStraddle(t)
	profitRanges, lossRanges, _, err := probability.Analyze(strat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(profitRanges) == 0 {
		t.Error("expected at least one profit range for a long straddle")
	}
	if len(lossRanges) == 0 {
		t.Error("expected at least one loss range for a long straddle")
	}
}

func TestAnalyzeRejectsEmptyStrategy(t *testing.T) {
	empty, err := strategy.NewCustomStrategy("empty", nil)
	if err == nil {
		if _, _, _, aerr := probability.Analyze(empty); aerr != probability.ErrNoLegs {
			t.Errorf("expected ErrNoLegs, got %v", aerr)
		}
		return
	}
	// NewCustomStrategy itself rejecting an empty leg set also satisfies the intent.
}
