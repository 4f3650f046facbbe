// Package cmd wires the optionctl subcommands onto a Cobra root command.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "optionctl",
	Short: "Price options, analyze strategies, and plan delta adjustments",
	Long: `optionctl prices European and American options via closed-form and
Monte Carlo models, analyzes multi-leg option strategy payoffs (break-evens,
max profit/loss, profit area), and proposes delta adjustment plans, optionally
drawing new legs from a supplied option chain.`,
}

// Execute runs the root command, exiting with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
