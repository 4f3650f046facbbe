package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
	"github.com/optionstrat/optionstratlib-go/internal/strategy"
)

var strategyFlags struct {
	kind     string
	legs     []string
	spot     float64
	vol      float64
	rate     float64
	dividend float64
	days     float64
}

func init() {
	f := strategyCmd.Flags()
	f.StringVar(&strategyFlags.kind, "kind", "custom", "strategy kind: straddle, strangle, bull_call_spread, bear_call_spread, bull_put_spread, bear_put_spread, iron_butterfly, iron_condor, butterfly_call, poor_mans_covered_call, custom")
	f.StringArrayVar(&strategyFlags.legs, "leg", nil, `one leg per flag, "style:side:strike:premium:qty", e.g. --leg call:long:100:5:1`)
	f.Float64Var(&strategyFlags.spot, "spot", 100, "underlying spot price shared by every leg")
	f.Float64Var(&strategyFlags.vol, "vol", 0.2, "implied volatility shared by every leg")
	f.Float64Var(&strategyFlags.rate, "rate", 0.01, "risk-free rate shared by every leg")
	f.Float64Var(&strategyFlags.dividend, "dividend", 0, "dividend yield shared by every leg")
	f.Float64Var(&strategyFlags.days, "days", 30, "days to expiration shared by every leg")
	rootCmd.AddCommand(strategyCmd)
}

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Analyze a multi-leg option strategy's payoff profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(strategyFlags.legs) == 0 {
			return fmt.Errorf("strategy: at least one --leg is required")
		}
		positions := make([]strategy.Position, 0, len(strategyFlags.legs))
		for _, spec := range strategyFlags.legs {
			pos, err := parseLeg(spec)
			if err != nil {
				return fmt.Errorf("strategy: %w", err)
			}
			positions = append(positions, pos)
		}

		strat, err := buildStrategy(strategyFlags.kind, positions)
		if err != nil {
			return fmt.Errorf("strategy: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "strategy: %s (%s)\n", strat.Name, strat.Kind)

		breakEvens, err := strat.BreakEvenPoints()
		if err != nil {
			return fmt.Errorf("break-evens: %w", err)
		}
		if len(breakEvens) == 0 {
			fmt.Fprintln(out, "break-evens: none")
		} else {
			parts := make([]string, len(breakEvens))
			for i, b := range breakEvens {
				parts[i] = b.String()
			}
			fmt.Fprintf(out, "break-evens: %s\n", strings.Join(parts, ", "))
		}

		if maxProfit, err := strat.MaxProfit(); err == nil {
			fmt.Fprintf(out, "max profit: %s\n", maxProfit.String())
		} else {
			fmt.Fprintf(out, "max profit: %v\n", err)
		}
		if maxLoss, err := strat.MaxLoss(); err == nil {
			fmt.Fprintf(out, "max loss: %s\n", maxLoss.String())
		} else {
			fmt.Fprintf(out, "max loss: %v\n", err)
		}
		fmt.Fprintf(out, "profit ratio: %s\n", strat.ProfitRatio().String())

		if area, err := strat.ProfitArea(); err == nil {
			fmt.Fprintf(out, "profit area: %s\n", area.String())
		}

		g, err := strat.AggregateGreeks(context.Background())
		if err != nil {
			return fmt.Errorf("greeks: %w", err)
		}
		printGreeks(cmd, g)
		return nil
	},
}

// parseLeg parses "style:side:strike:premium[:qty]" into a Position, sharing
// spot/vol/rate/dividend/days across every leg via strategyFlags.
func parseLeg(spec string) (strategy.Position, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 4 {
		return strategy.Position{}, fmt.Errorf("leg %q: want style:side:strike:premium[:qty]", spec)
	}
	style, err := parseStyle(parts[0])
	if err != nil {
		return strategy.Position{}, err
	}
	side, err := parseSide(parts[1])
	if err != nil {
		return strategy.Position{}, err
	}
	strikeF, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return strategy.Position{}, fmt.Errorf("leg %q: invalid strike: %w", spec, err)
	}
	premiumF, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return strategy.Position{}, fmt.Errorf("leg %q: invalid premium: %w", spec, err)
	}
	qtyF := 1.0
	if len(parts) >= 5 {
		qtyF, err = strconv.ParseFloat(parts[4], 64)
		if err != nil {
			return strategy.Position{}, fmt.Errorf("leg %q: invalid quantity: %w", spec, err)
		}
	}

	strike, err := primitives.NewPositiveFromFloat(strikeF)
	if err != nil {
		return strategy.Position{}, err
	}
	premium, err := primitives.NewPositiveFromFloat(premiumF)
	if err != nil {
		return strategy.Position{}, err
	}
	qty, err := primitives.NewPositiveFromFloat(qtyF)
	if err != nil {
		return strategy.Position{}, err
	}
	spot, err := primitives.NewPositiveFromFloat(strategyFlags.spot)
	if err != nil {
		return strategy.Position{}, err
	}
	vol, err := primitives.NewPositiveFromFloat(strategyFlags.vol)
	if err != nil {
		return strategy.Position{}, err
	}
	days, err := primitives.NewPositiveFromFloat(strategyFlags.days)
	if err != nil {
		return strategy.Position{}, err
	}
	dividend, err := primitives.NewPositiveFromFloat(strategyFlags.dividend)
	if err != nil {
		return strategy.Position{}, err
	}

	contract, err := options.NewContract(options.Contract{
		Type:            options.EuropeanType{},
		Style:           style,
		Side:            side,
		Quantity:        qty,
		Strike:          strike,
		UnderlyingPrice: spot,
		Expiration:      options.NewExpirationDays(days),
		ImpliedVol:      vol,
		RiskFreeRate:    primitives.NewDecimalFromFloat(strategyFlags.rate),
		DividendYield:   dividend,
	})
	if err != nil {
		return strategy.Position{}, err
	}
	return strategy.NewPosition(contract, premium, primitives.ZeroPositive(), primitives.ZeroPositive(), primitives.Now()), nil
}

func buildStrategy(kind string, positions []strategy.Position) (*strategy.Strategy, error) {
	switch kind {
	case "straddle":
		return strategy.NewLongStraddleStrategy(positions)
	case "strangle":
		return strategy.NewStrangleStrategy(positions)
	case "bull_call_spread":
		return strategy.NewBullCallSpreadStrategy(positions)
	case "bear_call_spread":
		return strategy.NewBearCallSpreadStrategy(positions)
	case "bull_put_spread":
		return strategy.NewBullPutSpreadStrategy(positions)
	case "bear_put_spread":
		return strategy.NewBearPutSpreadStrategy(positions)
	case "iron_butterfly":
		return strategy.NewIronButterflyStrategy(positions)
	case "iron_condor":
		return strategy.NewIronCondorStrategy(positions)
	case "butterfly_call":
		return strategy.NewLongButterflyCallStrategy(positions)
	case "poor_mans_covered_call":
		return strategy.NewPoorMansCoveredCallStrategy(positions)
	case "custom":
		return strategy.NewCustomStrategy("Custom Strategy", positions)
	default:
		return nil, fmt.Errorf("unknown --kind %q", kind)
	}
}
