package adjustment_test

import (
	"context"
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/adjustment"
	"github.com/optionstrat/optionstratlib-go/internal/chain"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
	"github.com/optionstrat/optionstratlib-go/internal/strategy"
)

func buildCallPosition(t *testing.T, strike, spot, days, vol float64) strategy.Position {
	t.Helper()
	c, err := options.NewContract(options.Contract{
		Type:            options.EuropeanType{},
		Style:           options.Call,
		Side:            options.Long,
		Quantity:        primitives.OnePositive(),
		Strike:          primitives.MustPositiveFloat(strike),
		UnderlyingPrice: primitives.MustPositiveFloat(spot),
		Expiration:      options.NewExpirationDays(primitives.MustPositiveFloat(days)),
		ImpliedVol:      primitives.MustPositiveFloat(vol),
		RiskFreeRate:    primitives.NewDecimalFromFloat(0.01),
		DividendYield:   primitives.ZeroPositive(),
	})
	if err != nil {
		t.Fatalf("NewContract: %v", err)
	}
	return strategy.NewPosition(c, primitives.MustPositiveFloat(5), primitives.ZeroPositive(), primitives.ZeroPositive(), primitives.Now())
}

func TestOptimizeRejectsEmptyPortfolio(t *testing.T) {
	_, err := adjustment.Optimize(context.Background(), nil, nil, chain.Chain{}, adjustment.DefaultConfig(), adjustment.Target{})
	if err != adjustment.ErrNoPositions {
		t.Fatalf("expected ErrNoPositions, got %v", err)
	}
}

func TestOptimizeReturnsNoAdjustmentWhenWithinTolerance(t *testing.T) {
	pos := buildCallPosition(t, 100, 100, 30, 0.2)
	cfg := adjustment.DefaultConfig()

	g, err := pos.Greeks(context.Background())
	if err != nil {
		t.Fatalf("Greeks: %v", err)
	}

	plan, err := adjustment.Optimize(context.Background(), []strategy.Position{pos}, nil, chain.Chain{}, cfg,
		adjustment.Target{Delta: g.Delta})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(plan.Actions) != 1 {
		t.Fatalf("expected a single action, got %d", len(plan.Actions))
	}
	if _, ok := plan.Actions[0].(adjustment.NoAdjustmentNeeded); !ok {
		t.Errorf("expected NoAdjustmentNeeded, got %#v", plan.Actions[0])
	}
}

func TestOptimizeFallsBackToUnderlyingWhenLegDeltaIsNegligible(t *testing.T) {
	// deep OTM, short-dated, low-vol call: per-contract delta is too small
	// for existingLegsCandidate to act on, and no chain rows are supplied,
	// so the only viable candidate is AddUnderlying.
	pos := buildCallPosition(t, 500, 100, 1, 0.05)
	cfg := adjustment.DefaultConfig()

	plan, err := adjustment.Optimize(context.Background(), []strategy.Position{pos}, nil, chain.Chain{}, cfg,
		adjustment.Target{Delta: primitives.NewDecimalFromFloat(50)})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(plan.Actions) != 1 {
		t.Fatalf("expected a single action, got %d", len(plan.Actions))
	}
	if _, ok := plan.Actions[0].(adjustment.AddUnderlying); !ok {
		t.Errorf("expected AddUnderlying, got %#v", plan.Actions[0])
	}
	if plan.ResidualDelta.Abs().Float64() > cfg.DeltaTolerance.Float64() {
		t.Errorf("expected residual delta within tolerance, got %v", plan.ResidualDelta.Float64())
	}
}

func TestOptimizeDeltaNeutralSellsUnderlyingAgainstLongCall(t *testing.T) {
	// A single long ATM call hedged to delta-neutral with the underlying
	// allowed: the plan is exactly one AddUnderlying sized to -delta
	// (existing-legs scaling cannot help, since shrinking the only leg to
	// zero delta would require a non-positive quantity).
	pos := buildCallPosition(t, 100, 100, 30, 0.2)
	cfg := adjustment.DefaultConfig()

	g, err := pos.Greeks(context.Background())
	if err != nil {
		t.Fatalf("Greeks: %v", err)
	}

	plan, err := adjustment.Optimize(context.Background(), []strategy.Position{pos}, nil, chain.Chain{}, cfg,
		adjustment.Target{Delta: primitives.Zero()})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if len(plan.Actions) != 1 {
		t.Fatalf("expected exactly one action, got %d: %#v", len(plan.Actions), plan.Actions)
	}
	add, ok := plan.Actions[0].(adjustment.AddUnderlying)
	if !ok {
		t.Fatalf("expected AddUnderlying, got %#v", plan.Actions[0])
	}
	wantQty := g.Delta.Neg().Float64()
	if got := add.SignedQty.Float64(); approxAbs(got-wantQty) > 0.01 {
		t.Errorf("AddUnderlying quantity = %v, want -delta = %v", got, wantQty)
	}
}

func approxAbs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func TestOptimizeGammaTargetExcludesUnderlyingCandidate(t *testing.T) {
	pos := buildCallPosition(t, 100, 100, 30, 0.2)
	cfg := adjustment.DefaultConfig()
	gamma := primitives.NewDecimalFromFloat(0.05)

	plan, err := adjustment.Optimize(context.Background(), []strategy.Position{pos}, nil, chain.Chain{}, cfg,
		adjustment.Target{Delta: primitives.NewDecimalFromFloat(2), Gamma: &gamma})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	for _, a := range plan.Actions {
		if _, ok := a.(adjustment.AddUnderlying); ok {
			t.Errorf("expected no AddUnderlying action when a gamma target is set, got %#v", plan.Actions)
		}
	}
}

func TestOptimizeUsesNewLegsFromChain(t *testing.T) {
	pos := buildCallPosition(t, 500, 100, 1, 0.05) // negligible delta, forces new-legs/underlying path
	cfg := adjustment.DefaultConfig()
	cfg.AllowUnderlying = false

	adapter := chain.Chain{
		Symbol:          "TEST",
		UnderlyingPrice: primitives.MustPositiveFloat(100),
		ExpirationDate:  primitives.Now().Add(primitives.Days(30)),
	}
	rows := []chain.Row{
		{
			Strike:            primitives.MustPositiveFloat(100),
			ImpliedVolatility: chain.Field{Value: primitives.NewDecimalFromFloat(0.2), Ok: true},
			OpenInterest:      chain.Field{Value: primitives.NewDecimalFromFloat(500), Ok: true},
		},
	}

	plan, err := adjustment.Optimize(context.Background(), []strategy.Position{pos}, rows, adapter, cfg,
		adjustment.Target{Delta: primitives.NewDecimalFromFloat(50)})
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	found := false
	for _, a := range plan.Actions {
		if _, ok := a.(adjustment.AddLeg); ok {
			found = true
		}
	}
	if !found {
		t.Errorf("expected at least one AddLeg action, got %#v", plan.Actions)
	}
}
