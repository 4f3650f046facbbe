package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/pricing"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

var priceFlags struct {
	optionType string
	style      string
	side       string
	strike     float64
	spot       float64
	vol        float64
	rate       float64
	dividend   float64
	days       float64
	quantity   float64
	withGreeks bool
	mcPaths    int
	useMC      bool
}

func init() {
	f := priceCmd.Flags()
	f.StringVar(&priceFlags.optionType, "type", "european", "option type: european, american")
	f.StringVar(&priceFlags.style, "style", "call", "call or put")
	f.StringVar(&priceFlags.side, "side", "long", "long or short")
	f.Float64Var(&priceFlags.strike, "strike", 100, "strike price")
	f.Float64Var(&priceFlags.spot, "spot", 100, "underlying spot price")
	f.Float64Var(&priceFlags.vol, "vol", 0.2, "implied volatility")
	f.Float64Var(&priceFlags.rate, "rate", 0.01, "risk-free rate")
	f.Float64Var(&priceFlags.dividend, "dividend", 0, "continuous dividend yield")
	f.Float64Var(&priceFlags.days, "days", 30, "days to expiration")
	f.Float64Var(&priceFlags.quantity, "qty", 1, "contract quantity")
	f.BoolVar(&priceFlags.withGreeks, "greeks", false, "also print the Greeks")
	f.BoolVar(&priceFlags.useMC, "monte-carlo", false, "price via Monte Carlo GBM simulation instead of the closed-form/dispatch pricer")
	f.IntVar(&priceFlags.mcPaths, "mc-paths", 10000, "number of Monte Carlo paths when --monte-carlo is set")
	rootCmd.AddCommand(priceCmd)
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price a single option contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		contract, err := buildContractFromFlags()
		if err != nil {
			return err
		}

		ctx := context.Background()
		var value primitives.Decimal
		if priceFlags.useMC {
			value, err = pricing.MonteCarloPrice(ctx, contract, priceFlags.mcPaths)
		} else {
			value, err = pricing.Price(ctx, contract)
		}
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "price: %s\n", value.String())

		if priceFlags.withGreeks {
			g, err := pricing.Greeks(ctx, contract)
			if err != nil {
				return fmt.Errorf("greeks: %w", err)
			}
			printGreeks(cmd, g)
		}
		return nil
	},
}

func printGreeks(cmd *cobra.Command, g greeks.Greek) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "delta: %s\n", g.Delta.String())
	fmt.Fprintf(out, "gamma: %s\n", g.Gamma.String())
	fmt.Fprintf(out, "theta: %s\n", g.Theta.String())
	fmt.Fprintf(out, "vega: %s\n", g.Vega.String())
	fmt.Fprintf(out, "rho: %s\n", g.Rho.String())
	fmt.Fprintf(out, "rho_d: %s\n", g.RhoD.String())
}

func buildContractFromFlags() (options.Contract, error) {
	style, err := parseStyle(priceFlags.style)
	if err != nil {
		return options.Contract{}, err
	}
	side, err := parseSide(priceFlags.side)
	if err != nil {
		return options.Contract{}, err
	}
	optType, err := parseOptionType(priceFlags.optionType)
	if err != nil {
		return options.Contract{}, err
	}

	qty, err := primitives.NewPositiveFromFloat(priceFlags.quantity)
	if err != nil {
		return options.Contract{}, fmt.Errorf("qty: %w", err)
	}
	strike, err := primitives.NewPositiveFromFloat(priceFlags.strike)
	if err != nil {
		return options.Contract{}, fmt.Errorf("strike: %w", err)
	}
	spot, err := primitives.NewPositiveFromFloat(priceFlags.spot)
	if err != nil {
		return options.Contract{}, fmt.Errorf("spot: %w", err)
	}
	vol, err := primitives.NewPositiveFromFloat(priceFlags.vol)
	if err != nil {
		return options.Contract{}, fmt.Errorf("vol: %w", err)
	}
	days, err := primitives.NewPositiveFromFloat(priceFlags.days)
	if err != nil {
		return options.Contract{}, fmt.Errorf("days: %w", err)
	}
	dividend, err := primitives.NewPositiveFromFloat(priceFlags.dividend)
	if err != nil {
		return options.Contract{}, fmt.Errorf("dividend: %w", err)
	}

	return options.NewContract(options.Contract{
		Type:            optType,
		Style:           style,
		Side:            side,
		Quantity:        qty,
		Strike:          strike,
		UnderlyingPrice: spot,
		Expiration:      options.NewExpirationDays(days),
		ImpliedVol:      vol,
		RiskFreeRate:    primitives.NewDecimalFromFloat(priceFlags.rate),
		DividendYield:   dividend,
	})
}

func parseStyle(s string) (options.OptionStyle, error) {
	switch s {
	case "call":
		return options.Call, nil
	case "put":
		return options.Put, nil
	default:
		return 0, fmt.Errorf("unknown style %q (want call or put)", s)
	}
}

func parseSide(s string) (options.Side, error) {
	switch s {
	case "long":
		return options.Long, nil
	case "short":
		return options.Short, nil
	default:
		return 0, fmt.Errorf("unknown side %q (want long or short)", s)
	}
}

func parseOptionType(s string) (options.OptionType, error) {
	switch s {
	case "european":
		return options.EuropeanType{}, nil
	case "american":
		return options.AmericanType{}, nil
	default:
		return nil, fmt.Errorf("unsupported --type %q for the price command (want european or american; exotic types are built programmatically)", s)
	}
}
