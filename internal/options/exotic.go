package options

import "github.com/optionstrat/optionstratlib-go/internal/primitives"

// ExoticParams is the optional parameter bag carried by a Contract whose
// OptionType requires data beyond spot/strike/vol/rate. It is absent unless
// the OptionType variant needs one of its fields; pricers that require a
// field and find it nil return a descriptive error rather than guessing.
type ExoticParams struct {
	// Path-dependent statistics, consumed by Asian/Lookback/Barrier payoffs.
	SpotPrices []primitives.Positive
	SpotMin    *primitives.Positive
	SpotMax    *primitives.Positive

	// Cliquet caps/floors.
	CliquetLocalCap    *primitives.Decimal
	CliquetLocalFloor  *primitives.Decimal
	CliquetGlobalCap   *primitives.Decimal
	CliquetGlobalFloor *primitives.Decimal

	// Rainbow/Spread/Exchange second-asset parameters.
	SecondAssetPrice      *primitives.Positive
	SecondAssetVolatility *primitives.Positive
	SecondAssetDividend   *primitives.Positive
	Correlation           *primitives.Decimal

	// Quanto fx parameters.
	QuantoFXVolatility  *primitives.Positive
	QuantoCorrelation   *primitives.Decimal

	// Compound-option parameters.
	CompoundSubstrike        *primitives.Positive
	CompoundInnerExpiryDays  *primitives.Positive
}
