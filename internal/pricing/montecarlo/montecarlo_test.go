package montecarlo_test

import (
	"context"
	"math"
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/pricing/montecarlo"
)

func TestSimulateTerminalIsDeterministic(t *testing.T) {
	params := montecarlo.GBMParams{Spot: 100, Rate: 0.05, Volatility: 0.2, Years: 1}

	a, err := montecarlo.SimulateTerminal(context.Background(), params, 1000)
	if err != nil {
		t.Fatalf("SimulateTerminal: %v", err)
	}
	b, err := montecarlo.SimulateTerminal(context.Background(), params, 1000)
	if err != nil {
		t.Fatalf("SimulateTerminal: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("path %d differs across identically-seeded runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSimulateTerminalMeanMatchesForward(t *testing.T) {
	// E[S_T] = S0 * e^(rT) under the risk-neutral measure.
	params := montecarlo.GBMParams{Spot: 100, Rate: 0.05, Volatility: 0.2, Years: 1}
	terminal, err := montecarlo.SimulateTerminal(context.Background(), params, 50000)
	if err != nil {
		t.Fatalf("SimulateTerminal: %v", err)
	}

	sum := 0.0
	for _, s := range terminal {
		if s < 0 {
			t.Fatalf("negative terminal price %v", s)
		}
		sum += s
	}
	mean := sum / float64(len(terminal))
	forward := 100 * math.Exp(0.05)
	if math.Abs(mean-forward) > forward*0.02 {
		t.Errorf("terminal mean %v, want within 2%% of forward %v", mean, forward)
	}
}

func TestSimulateTerminalHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := montecarlo.SimulateTerminal(ctx, montecarlo.GBMParams{Spot: 100, Volatility: 0.2, Years: 1}, 1000); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestSimulateTelegraphTerminalPositivePrices(t *testing.T) {
	params := montecarlo.TelegraphParams{
		Spot: 100, Rate: 0.05, Volatility: 0.2, Years: 1,
		LambdaUp: 2, LambdaDown: 2,
	}
	terminal, err := montecarlo.SimulateTelegraphTerminal(context.Background(), params, 500)
	if err != nil {
		t.Fatalf("SimulateTelegraphTerminal: %v", err)
	}
	if len(terminal) != 500 {
		t.Fatalf("expected 500 paths, got %d", len(terminal))
	}
	for _, s := range terminal {
		if s <= 0 {
			t.Fatalf("telegraph terminal price %v, want positive (multiplicative updates)", s)
		}
	}
}

func TestEstimateTelegraphParameters(t *testing.T) {
	// Alternating two-step runs: mean duration 2 in each state -> lambda 0.5.
	returns := []float64{1, 1, -1, -1, 1, 1, -1, -1, 1, 1, -1, -1}
	up, down, err := montecarlo.EstimateTelegraphParameters(returns, 0)
	if err != nil {
		t.Fatalf("EstimateTelegraphParameters: %v", err)
	}
	if math.Abs(up-0.5) > 1e-9 || math.Abs(down-0.5) > 1e-9 {
		t.Errorf("estimated rates (%v, %v), want (0.5, 0.5)", up, down)
	}
}

func TestEstimateTelegraphParametersRejectsSingleRegime(t *testing.T) {
	returns := []float64{1, 1, 1, 1}
	if _, _, err := montecarlo.EstimateTelegraphParameters(returns, 0); err == nil {
		t.Error("expected error for a series that never changes regime")
	}
}

func TestGenerateReturnsLengthAndScale(t *testing.T) {
	returns := montecarlo.GenerateReturns(0.2, 252, 1.0/252)
	if len(returns) != 252 {
		t.Fatalf("expected 252 returns, got %d", len(returns))
	}
	var sumSq float64
	for _, r := range returns {
		sumSq += r * r
	}
	annualized := math.Sqrt(sumSq / float64(len(returns)) * 252)
	if annualized < 0.1 || annualized > 0.3 {
		t.Errorf("annualized vol of generated returns = %v, want near 0.2", annualized)
	}
}
