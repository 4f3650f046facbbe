// Package strategy binds Contracts into Positions and Positions into named
// multi-leg Strategy structures, computing aggregate payoff curves,
// break-evens, profit/loss extrema, and portfolio Greeks.
package strategy

import (
	"context"
	"fmt"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/pricing"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// PnL reports either a realized or an unrealized profit/loss for a Position,
// never both: a still-open position has Unrealized populated, a settled or
// closed one has Realized populated.
type PnL struct {
	Realized      *primitives.Decimal
	Unrealized    *primitives.Decimal
	InitialCosts  primitives.Positive
	InitialIncome primitives.Positive
	DateTime      primitives.Time
}

// Position wraps a Contract with the economics of having traded it: the
// premium paid or received, open/close fees, and the timestamp it was
// opened. Side on the underlying Contract drives the sign of PnL relative to
// the premium.
type Position struct {
	Contract options.Contract
	Premium  primitives.Positive
	OpenFee  primitives.Positive
	CloseFee primitives.Positive
	OpenedAt primitives.Time
}

// NewPosition constructs a Position. Premium and fees are Positive by
// construction so no additional sign check is required here.
func NewPosition(contract options.Contract, premium, openFee, closeFee primitives.Positive, openedAt primitives.Time) Position {
	return Position{Contract: contract, Premium: premium, OpenFee: openFee, CloseFee: closeFee, OpenedAt: openedAt}
}

// CalculatePnLAtExpiration returns the realized PnL of the position assuming
// the underlying settles at spot at expiration. Close fees are counted even
// at expiration because the position is conceptually settled, not merely
// marked to market.
func (p Position) CalculatePnLAtExpiration(spot primitives.Positive) (PnL, error) {
	info := options.PayoffInfo{
		Spot:   spot,
		Strike: p.Contract.Strike,
		Style:  p.Contract.Style,
		Side:   p.Contract.Side,
	}
	if ep := p.Contract.ExoticParams; ep != nil {
		info.SpotPrices = ep.SpotPrices
		info.SpotMin = ep.SpotMin
		info.SpotMax = ep.SpotMax
	}
	payoff := options.Payoff(p.Contract.Type, info).Mul(p.Contract.Quantity.Decimal())

	signedPremium := p.Contract.Side.Sign().Mul(p.Premium.Decimal()).Mul(p.Contract.Quantity.Decimal())
	fees := p.OpenFee.Add(p.CloseFee).Mul(p.Contract.Quantity).Decimal()

	realized := payoff.Sub(signedPremium).Sub(fees)

	return PnL{
		Realized:      &realized,
		InitialCosts:  p.cost(),
		InitialIncome: p.income(),
		DateTime:      p.OpenedAt,
	}, nil
}

// CalculatePnL returns unrealized PnL by re-pricing the contract at the
// given market parameters and subtracting only the open fee; close fees are
// not charged while the position remains open.
func (p Position) CalculatePnL(ctx context.Context, marketSpot primitives.Positive, expiration options.Expiration, iv primitives.Positive) (PnL, error) {
	bumped := p.Contract
	bumped.UnderlyingPrice = marketSpot
	bumped.Expiration = expiration
	bumped.ImpliedVol = iv

	current, err := pricing.Price(ctx, bumped)
	if err != nil {
		return PnL{}, fmt.Errorf("reprice position: %w", err)
	}

	sign := p.Contract.Side.Sign()
	delta := current.Sub(p.Premium.Decimal())
	unrealized := sign.Mul(delta).Mul(p.Contract.Quantity.Decimal()).Sub(p.OpenFee.Mul(p.Contract.Quantity).Decimal())

	return PnL{
		Unrealized:    &unrealized,
		InitialCosts:  p.cost(),
		InitialIncome: p.income(),
		DateTime:      primitives.Now(),
	}, nil
}

// Greeks returns the position's contribution to portfolio Greeks: the
// contract's per-unit Greeks scaled by quantity (side sign is already baked
// into the per-unit Greek by internal/greeks).
func (p Position) Greeks(ctx context.Context) (greeks.Greek, error) {
	g, err := pricing.Greeks(ctx, p.Contract)
	if err != nil {
		return greeks.Greek{}, err
	}
	return g.Scale(p.Contract.Quantity.Decimal()), nil
}

// cost returns the premium paid plus open fee for a Long position, only the
// open fee for a Short (which receives rather than pays the premium). Fees
// are charged per contract, so both terms scale with quantity.
func (p Position) cost() primitives.Positive {
	fees := p.OpenFee.Mul(p.Contract.Quantity)
	if p.Contract.Side == options.Short {
		return fees
	}
	return p.Premium.Mul(p.Contract.Quantity).Add(fees)
}

// income returns the premium received for a Short position, zero for Long.
func (p Position) income() primitives.Positive {
	if p.Contract.Side == options.Short {
		return p.Premium.Mul(p.Contract.Quantity)
	}
	return primitives.ZeroPositive()
}

// WithQuantity returns a copy of p with its contract quantity replaced,
// re-validated through options.NewContract so invariants hold. This is the
// only sanctioned way to change a Position's size — used by
// Strategy.ModifyPosition and the adjustment optimizer.
func (p Position) WithQuantity(qty primitives.Positive) (Position, error) {
	c := p.Contract
	c.Quantity = qty
	validated, err := options.NewContract(c)
	if err != nil {
		return Position{}, err
	}
	p.Contract = validated
	return p, nil
}
