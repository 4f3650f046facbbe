package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/optionstrat/optionstratlib-go/internal/adjustment"
	"github.com/optionstrat/optionstratlib-go/internal/chain"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
	"github.com/optionstrat/optionstratlib-go/internal/strategy"
)

var adjustFlags struct {
	legs            []string
	targetDelta     float64
	chainFile       string
	chainSymbol     string
	deltaTolerance  float64
	allowNewLegs    bool
	allowUnderlying bool
	maxNewLegs      int
	spot            float64
	vol             float64
	rate            float64
	dividend        float64
	days            float64
}

func init() {
	f := adjustCmd.Flags()
	f.StringArrayVar(&adjustFlags.legs, "leg", nil, `one existing position per flag, "style:side:strike:premium[:qty]"`)
	f.Float64Var(&adjustFlags.targetDelta, "target-delta", 0, "portfolio delta to reach")
	f.StringVar(&adjustFlags.chainFile, "chain-csv", "", "path to a chain CSV file (see internal/chain) supplying candidate new legs")
	f.StringVar(&adjustFlags.chainSymbol, "chain-symbol", "", "underlying symbol for contracts built from the chain")
	f.Float64Var(&adjustFlags.deltaTolerance, "delta-tolerance", 0.1, "acceptable residual delta")
	f.BoolVar(&adjustFlags.allowNewLegs, "allow-new-legs", true, "allow the optimizer to propose new legs from the chain")
	f.BoolVar(&adjustFlags.allowUnderlying, "allow-underlying", true, "allow the optimizer to propose buying/selling the underlying")
	f.IntVar(&adjustFlags.maxNewLegs, "max-new-legs", 3, "maximum new legs the optimizer may add")
	f.Float64Var(&adjustFlags.spot, "spot", 100, "underlying spot price shared by every leg")
	f.Float64Var(&adjustFlags.vol, "vol", 0.2, "implied volatility shared by every leg")
	f.Float64Var(&adjustFlags.rate, "rate", 0.01, "risk-free rate shared by every leg")
	f.Float64Var(&adjustFlags.dividend, "dividend", 0, "dividend yield shared by every leg")
	f.Float64Var(&adjustFlags.days, "days", 30, "days to expiration shared by every leg")
	rootCmd.AddCommand(adjustCmd)
}

var adjustCmd = &cobra.Command{
	Use:   "adjust",
	Short: "Propose a delta adjustment plan for a portfolio of option legs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(adjustFlags.legs) == 0 {
			return fmt.Errorf("adjust: at least one --leg is required")
		}

		saved := strategyFlags
		strategyFlags.spot, strategyFlags.vol = adjustFlags.spot, adjustFlags.vol
		strategyFlags.rate, strategyFlags.dividend, strategyFlags.days = adjustFlags.rate, adjustFlags.dividend, adjustFlags.days
		defer func() { strategyFlags = saved }()

		positions := make([]strategy.Position, 0, len(adjustFlags.legs))
		for _, spec := range adjustFlags.legs {
			pos, err := parseLeg(spec)
			if err != nil {
				return fmt.Errorf("adjust: %w", err)
			}
			positions = append(positions, pos)
		}

		var rows []chain.Row
		chainAdapter := chain.Chain{
			Symbol:          adjustFlags.chainSymbol,
			UnderlyingPrice: primitives.MustPositiveFloat(adjustFlags.spot),
			ExpirationDate:  primitives.Now().Add(primitives.Days(adjustFlags.days)),
		}
		if adjustFlags.chainFile != "" {
			f, err := os.Open(adjustFlags.chainFile)
			if err != nil {
				return fmt.Errorf("adjust: open chain csv: %w", err)
			}
			defer f.Close()
			rows, err = chain.ReadCSV(f)
			if err != nil {
				return fmt.Errorf("adjust: %w", err)
			}
		}

		cfg := adjustment.DefaultConfig()
		cfg.DeltaTolerance = primitives.MustPositiveFloat(adjustFlags.deltaTolerance)
		cfg.AllowNewLegs = adjustFlags.allowNewLegs
		cfg.AllowUnderlying = adjustFlags.allowUnderlying
		cfg.MaxNewLegs = adjustFlags.maxNewLegs

		plan, err := adjustment.Optimize(context.Background(), positions, rows, chainAdapter, cfg,
			adjustment.Target{Delta: primitives.NewDecimalFromFloat(adjustFlags.targetDelta)})
		if err != nil {
			return fmt.Errorf("adjust: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "actions (%d):\n", len(plan.Actions))
		for _, a := range plan.Actions {
			fmt.Fprintf(out, "  %#v\n", a)
		}
		fmt.Fprintf(out, "total cost: %s\n", plan.TotalCost.String())
		fmt.Fprintf(out, "residual delta: %s\n", plan.ResidualDelta.String())
		fmt.Fprintf(out, "quality score: %s\n", plan.QualityScore.String())
		return nil
	},
}
