// Package options defines the canonical option-contract model: the closed
// OptionType sum type, the Expiration value type, the Contract aggregate, and
// the stateless payoff evaluator all pricers and strategies build on.
package options

import (
	"errors"
	"fmt"

	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

var (
	// ErrInvalidContract is returned when a Contract's fields violate an
	// invariant (non-positive strike/underlying/quantity).
	ErrInvalidContract = errors.New("invalid contract")
	// ErrMissingExoticParams is returned when an OptionType variant requires
	// ExoticParams the Contract does not carry.
	ErrMissingExoticParams = errors.New("missing required exotic parameters")
)

// Contract is the canonical, immutable description of a single option leg.
// Construction validates every invariant up front so pricers never have to
// re-check strike/underlying/quantity positivity.
type Contract struct {
	Symbol          string
	Type            OptionType
	Style           OptionStyle
	Side            Side
	Quantity        primitives.Positive
	Strike          primitives.Positive
	UnderlyingPrice primitives.Positive
	Expiration      Expiration
	ImpliedVol      primitives.Positive
	RiskFreeRate    primitives.Decimal
	DividendYield   primitives.Positive
	ExoticParams    *ExoticParams
}

// NewContract validates and returns a Contract. Strike, underlying price, and
// quantity must be strictly positive; volatility may be zero (the pricers
// special-case it).
func NewContract(c Contract) (Contract, error) {
	if c.Strike.IsZero() {
		return Contract{}, fmt.Errorf("%w: strike must be positive", ErrInvalidContract)
	}
	if c.UnderlyingPrice.IsZero() {
		return Contract{}, fmt.Errorf("%w: underlying price must be positive", ErrInvalidContract)
	}
	if c.Quantity.IsZero() {
		return Contract{}, fmt.Errorf("%w: quantity must be positive", ErrInvalidContract)
	}
	return c, nil
}

// RequireExoticParams returns the Contract's ExoticParams or a descriptive
// error naming the OptionType that required them.
func (c Contract) RequireExoticParams(forType string) (*ExoticParams, error) {
	if c.ExoticParams == nil {
		return nil, fmt.Errorf("%w: %s requires exotic_params", ErrMissingExoticParams, forType)
	}
	return c.ExoticParams, nil
}

// CostOfCarry returns r - q, the standard Black-Scholes cost-of-carry term.
func (c Contract) CostOfCarry() primitives.Decimal {
	return c.RiskFreeRate.Sub(c.DividendYield.Decimal())
}
