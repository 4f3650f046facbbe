// Command optionctl is the command-line front end for the option pricing,
// strategy-analysis, and delta adjustment engine.
package main

import "github.com/optionstrat/optionstratlib-go/cmd/optionctl/cmd"

func main() {
	cmd.Execute()
}
