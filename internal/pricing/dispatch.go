package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/pricing/montecarlo"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// ErrUnsupportedOptionType is returned when a Contract's OptionType has no
// registered pricer, or when it was found but its ExoticParams are missing
// a field that type needs.
var ErrUnsupportedOptionType = errors.New("unsupported option type")

// ErrOther covers pricing failures that are not a dispatch problem: a
// degenerate input a formula cannot absorb (zero vol where the model needs
// a diffusion term, a negative discriminant in a critical-price solve).
var ErrOther = errors.New("pricing error")

func errUnsupportedType(pricer string, t options.OptionType) error {
	return fmt.Errorf("%w: %s pricer received %T", ErrUnsupportedOptionType, pricer, t)
}

// Price dispatches a Contract to its matching pricer by the concrete
// OptionType it carries. ctx is accepted for API uniformity but is not
// consulted: every dispatched pricer (closed-form, or the 200-step binomial
// tree for Bermuda) runs to completion without checking it.
func Price(ctx context.Context, c options.Contract) (primitives.Decimal, error) {
	switch c.Type.(type) {
	case options.EuropeanType:
		return BlackScholes(c), nil
	case options.AmericanType:
		return American(c)
	case options.BermudaType:
		return Binomial(c, 200), nil
	case options.AsianType:
		return Asian(c)
	case options.BarrierType:
		return Barrier(c)
	case options.BinaryType:
		return Binary(c)
	case options.LookbackType:
		return Lookback(c)
	case options.CompoundType:
		return Compound(c)
	case options.ChooserType:
		return Chooser(c)
	case options.CliquetType:
		return Cliquet(c)
	case options.RainbowType:
		return RainbowBestOf(c)
	case options.SpreadType:
		return Spread(c)
	case options.ExchangeType:
		return Exchange(c)
	case options.QuantoType:
		return Quanto(c)
	case options.PowerType:
		return Power(c)
	default:
		return primitives.Decimal{}, errUnsupportedType("dispatch", c.Type)
	}
}

// MonteCarloPrice prices a contract by Monte Carlo simulation under
// geometric Brownian motion, using paths sampled by the montecarlo package.
// It values the vanilla call/put payoff on the terminal price whatever the
// contract's OptionType, and simulates with the risk-free rate only (the
// dividend yield is not used). A caller can request it explicitly, e.g. to
// cross-check a closed-form vanilla price.
func MonteCarloPrice(ctx context.Context, c options.Contract, paths int) (primitives.Decimal, error) {
	s := c.UnderlyingPrice.Float64()
	r := c.RiskFreeRate.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	k := c.Strike.Float64()
	sign := c.Side.Sign().Float64()

	if t <= 0 {
		return primitives.NewDecimalFromFloat(sign * intrinsic(s, k, c.Style)), nil
	}

	terminal, err := montecarlo.SimulateTerminal(ctx, montecarlo.GBMParams{
		Spot:       s,
		Rate:       r,
		Volatility: sigma,
		Years:      t,
	}, paths)
	if err != nil {
		return primitives.Decimal{}, err
	}

	sum := 0.0
	for _, st := range terminal {
		sum += intrinsic(st, k, c.Style)
	}
	mean := sum / float64(len(terminal))
	discounted := mean * discountFactor(r, t)
	return primitives.NewDecimalFromFloat(sign * discounted), nil
}

func discountFactor(r, t float64) float64 {
	return math.Exp(-r * t)
}
