// Package adjustment implements the delta/gamma adjustment optimizer: given
// a portfolio of option Positions and a Greek target, it proposes a ranked
// AdjustmentPlan (modify/add/close/roll/add-underlying) that closes the gap
// within tolerance at the lowest quality score, evaluating up to three
// candidate plans: scale existing legs, add legs from an option chain, or
// trade the underlying.
package adjustment

import (
	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Target pins the portfolio delta the optimizer should reach, and
// optionally a gamma target. When Gamma is non-nil, the underlying-only
// candidate is unavailable (a share of stock carries zero gamma, so it can
// never help satisfy a gamma target).
type Target struct {
	Delta primitives.Decimal
	Gamma *primitives.Decimal
}

// Config bounds the search space the optimizer is allowed to consider.
type Config struct {
	MaxCost            *primitives.Positive
	DeltaTolerance      primitives.Positive
	PreferExistingLegs  bool
	AllowNewLegs        bool
	AllowUnderlying     bool
	MaxNewLegs          int
	MinLiquidity        primitives.Positive
	StrikeRangeLow      *primitives.Positive
	StrikeRangeHigh     *primitives.Positive
	AllowedStyles       []options.OptionStyle
}

// DefaultConfig returns a permissive configuration: every candidate plan is
// allowed, with a delta tolerance of 0.1.
func DefaultConfig() Config {
	return Config{
		DeltaTolerance:  primitives.MustPositiveFloat(0.1),
		AllowNewLegs:    true,
		AllowUnderlying: true,
		MaxNewLegs:      3,
		MinLiquidity:    primitives.ZeroPositive(),
		AllowedStyles:   []options.OptionStyle{options.Call, options.Put},
	}
}

func (c Config) styleAllowed(s options.OptionStyle) bool {
	if len(c.AllowedStyles) == 0 {
		return true
	}
	for _, allowed := range c.AllowedStyles {
		if allowed == s {
			return true
		}
	}
	return false
}

// Action is a single step of a Plan. It is a closed sum type, realized as an
// interface with an unexported marker method so no new action kinds can be
// added outside this package.
type Action interface {
	isAdjustmentAction()
}

type ModifyQuantity struct {
	Leg    int
	NewQty primitives.Positive
}

func (ModifyQuantity) isAdjustmentAction() {}

type AddLeg struct {
	Option options.Contract
	Side   options.Side
	Qty    primitives.Positive
}

func (AddLeg) isAdjustmentAction() {}

type CloseLeg struct {
	Leg int
}

func (CloseLeg) isAdjustmentAction() {}

// AddUnderlying buys (positive) or sells (negative) SignedQty shares of the
// underlying; each share carries delta = 1.
type AddUnderlying struct {
	SignedQty primitives.Decimal
}

func (AddUnderlying) isAdjustmentAction() {}

type RollStrike struct {
	Leg       int
	NewStrike primitives.Positive
	Qty       primitives.Positive
}

func (RollStrike) isAdjustmentAction() {}

type RollExpiration struct {
	Leg           int
	NewExpiration options.Expiration
	Qty           primitives.Positive
}

func (RollExpiration) isAdjustmentAction() {}

type NoAdjustmentNeeded struct{}

func (NoAdjustmentNeeded) isAdjustmentAction() {}

// Plan is the optimizer's output: an ordered action sequence, its estimated
// total cost, the portfolio Greeks it would produce, the residual delta
// after applying it, and the quality score used to rank it against
// alternative candidate plans (lower is better).
type Plan struct {
	Actions         []Action
	TotalCost       primitives.Decimal
	ResultingGreeks greeks.Greek
	ResidualDelta   primitives.Decimal
	QualityScore    primitives.Decimal
}
