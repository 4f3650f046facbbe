package pricing

import (
	"context"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/pricing/montecarlo"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// TelegraphPrice prices a contract's vanilla call/put payoff (whatever its
// OptionType) under the two-state telegraph
// regime-switching process (the diffusion's sign alternates between +1 and
// -1 according to transition rates lambdaUp/lambdaDown, rather than staying
// fixed as in plain GBM), averaged over `paths` simulated terminal prices.
// When lambdaUp/lambdaDown are both zero, they are estimated from a
// synthetic zero-drift return series sampled at the contract's own
// volatility — a placeholder estimate, not a calibration against real
// market history.
func TelegraphPrice(ctx context.Context, c options.Contract, paths int, lambdaUp, lambdaDown float64) (primitives.Decimal, error) {
	s := c.UnderlyingPrice.Float64()
	r := c.RiskFreeRate.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	k := c.Strike.Float64()
	sign := c.Side.Sign().Float64()

	if t <= 0 {
		return primitives.NewDecimalFromFloat(sign * intrinsic(s, k, c.Style)), nil
	}

	if lambdaUp == 0 && lambdaDown == 0 {
		returns := montecarlo.GenerateReturns(sigma, 100, 1.0/252.0)
		up, down, err := montecarlo.EstimateTelegraphParameters(returns, 0)
		if err != nil {
			return primitives.Decimal{}, err
		}
		lambdaUp, lambdaDown = up, down
	}

	terminal, err := montecarlo.SimulateTelegraphTerminal(ctx, montecarlo.TelegraphParams{
		Spot:       s,
		Rate:       r,
		Volatility: sigma,
		Years:      t,
		LambdaUp:   lambdaUp,
		LambdaDown: lambdaDown,
	}, paths)
	if err != nil {
		return primitives.Decimal{}, err
	}

	sum := 0.0
	for _, st := range terminal {
		sum += intrinsic(st, k, c.Style)
	}
	mean := sum / float64(len(terminal))
	return primitives.NewDecimalFromFloat(sign * mean * discountFactor(r, t)), nil
}
