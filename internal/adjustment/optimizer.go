package adjustment

import (
	"context"
	"fmt"
	"sort"

	"github.com/optionstrat/optionstratlib-go/internal/chain"
	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/pricing"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
	"github.com/optionstrat/optionstratlib-go/internal/strategy"
)

// candidate bundles a tentative plan with whether it actually closed the
// gap within tolerance (feasible) before cost is considered.
type candidate struct {
	plan      Plan
	feasible  bool
	cost      primitives.Decimal
	residual  primitives.Decimal
}

// Optimize evaluates up to three candidate plans (existing legs, new legs
// from chainRows, and the underlying) and returns the one with the lowest
// quality score among those that close the delta gap within tolerance. If
// Config.MaxCost is set and that best plan costs more, it returns
// ErrCostExceeded instead.
func Optimize(ctx context.Context, positions []strategy.Position, chainRows []chain.Row, chainAdapter chain.Chain, cfg Config, target Target) (Plan, error) {
	if len(positions) == 0 {
		return Plan{}, ErrNoPositions
	}

	current, err := aggregateGreeks(ctx, positions)
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %v", ErrGreeksError, err)
	}

	deltaGap := target.Delta.Sub(current.Delta)
	reference := referenceSpot(positions)

	if deltaGap.Abs().Float64() <= cfg.DeltaTolerance.Float64() {
		return Plan{
			Actions:         []Action{NoAdjustmentNeeded{}},
			TotalCost:       primitives.Zero(),
			ResultingGreeks: current,
			ResidualDelta:   deltaGap,
			QualityScore:    deltaGap.Abs(),
		}, nil
	}

	var candidates []candidate

	if c, ok := existingLegsCandidate(ctx, positions, current, deltaGap, cfg, reference); ok {
		if cfg.PreferExistingLegs && c.feasible {
			if cfg.MaxCost == nil || !c.cost.GreaterThan(cfg.MaxCost.Decimal()) {
				return c.plan, nil
			}
		}
		candidates = append(candidates, c)
	}
	if cfg.AllowNewLegs && len(chainRows) > 0 {
		if c, ok := newLegsCandidate(ctx, chainAdapter, chainRows, current, deltaGap, cfg, reference); ok {
			candidates = append(candidates, c)
		}
	}
	if cfg.AllowUnderlying && target.Gamma == nil {
		if c, ok := underlyingCandidate(current, deltaGap, cfg, reference); ok {
			candidates = append(candidates, c)
		}
	}

	feasible := candidates[:0]
	for _, c := range candidates {
		if c.feasible {
			feasible = append(feasible, c)
		}
	}
	if len(feasible) == 0 {
		return Plan{}, ErrNoViablePlan
	}

	sort.Slice(feasible, func(i, j int) bool {
		return feasible[i].plan.QualityScore.LessThan(feasible[j].plan.QualityScore)
	})
	best := feasible[0]

	if cfg.MaxCost != nil && best.cost.GreaterThan(cfg.MaxCost.Decimal()) {
		return Plan{}, ErrCostExceeded
	}

	return best.plan, nil
}

func aggregateGreeks(ctx context.Context, positions []strategy.Position) (greeks.Greek, error) {
	total := greeks.Greek{}
	for _, p := range positions {
		g, err := p.Greeks(ctx)
		if err != nil {
			return greeks.Greek{}, err
		}
		total = total.Add(g)
	}
	return total, nil
}

func referenceSpot(positions []strategy.Position) primitives.Positive {
	if len(positions) == 0 {
		return primitives.OnePositive()
	}
	return positions[0].Contract.UnderlyingPrice
}

func qualityScore(residualDelta, cost, reference primitives.Decimal) primitives.Decimal {
	const lambda = 1.0
	refAbs := reference.Abs()
	costTerm := cost.Abs()
	if !refAbs.IsZero() {
		if q, err := costTerm.Div(refAbs); err == nil {
			costTerm = q
		}
	}
	return residualDelta.Abs().Add(costTerm.Mul(primitives.NewDecimalFromFloat(lambda)))
}

// existingLegsCandidate greedily scales existing legs' quantities, sorted
// by |delta per contract| descending, skipping legs whose per-contract
// delta is too small to move the needle (< 0.001) and any leg whose
// required new quantity would be non-positive (ModifyQuantity cannot flip
// a position's side).
func existingLegsCandidate(ctx context.Context, positions []strategy.Position, current greeks.Greek, deltaGap primitives.Decimal, cfg Config, reference primitives.Positive) (candidate, bool) {
	type legInfo struct {
		index      int
		unitDelta  float64
	}
	var legs []legInfo
	for i, p := range positions {
		unit := p.Contract
		unit.Quantity = primitives.OnePositive()
		g, err := pricing.Greeks(ctx, unit)
		if err != nil {
			continue
		}
		legs = append(legs, legInfo{index: i, unitDelta: g.Delta.Float64()})
	}
	sort.Slice(legs, func(i, j int) bool {
		return abs(legs[i].unitDelta) > abs(legs[j].unitDelta)
	})

	remaining := deltaGap.Float64()
	var actions []Action
	totalCost := primitives.Zero()

	for _, leg := range legs {
		if abs(remaining) <= cfg.DeltaTolerance.Float64() {
			break
		}
		if abs(leg.unitDelta) < 0.001 {
			continue
		}
		p := positions[leg.index]
		qtyChange := remaining / leg.unitDelta
		newQty := p.Contract.Quantity.Float64() + qtyChange
		if newQty <= 0 {
			continue
		}
		newQtyPositive := primitives.MustPositiveFloat(newQty)
		price, err := pricing.Price(ctx, p.Contract)
		if err != nil {
			continue
		}
		cost := price.Abs().Mul(primitives.NewDecimalFromFloat(abs(qtyChange)))
		totalCost = totalCost.Add(cost)
		actions = append(actions, ModifyQuantity{Leg: leg.index, NewQty: newQtyPositive})
		remaining -= leg.unitDelta * qtyChange
	}

	if len(actions) == 0 {
		return candidate{}, false
	}

	residual := primitives.NewDecimalFromFloat(remaining)
	feasible := abs(remaining) <= cfg.DeltaTolerance.Float64()
	resultingGreeks := current
	resultingGreeks.Delta = resultingGreeks.Delta.Add(deltaGap.Sub(residual))

	plan := Plan{
		Actions:         actions,
		TotalCost:       totalCost,
		ResultingGreeks: resultingGreeks,
		ResidualDelta:   residual,
		QualityScore:    qualityScore(residual, totalCost, reference.Decimal()),
	}
	return candidate{plan: plan, feasible: feasible, cost: totalCost, residual: residual}, true
}

// newLegsCandidate filters chain rows by liquidity, strike range, and
// allowed style, ranks the remaining rows by delta-per-dollar-cost, and
// greedily adds legs (up to Config.MaxNewLegs) whose delta sign matches the
// gap direction.
func newLegsCandidate(ctx context.Context, adapter chain.Chain, rows []chain.Row, current greeks.Greek, deltaGap primitives.Decimal, cfg Config, reference primitives.Positive) (candidate, bool) {
	filtered := chain.FilterLiquid(rows, cfg.MinLiquidity)
	if cfg.StrikeRangeLow != nil && cfg.StrikeRangeHigh != nil {
		filtered = chain.FilterStrikeRange(filtered, *cfg.StrikeRangeLow, *cfg.StrikeRangeHigh)
	}

	side := options.Long
	if deltaGap.IsNegative() {
		side = options.Short
	}

	type legCandidate struct {
		contract        options.Contract
		unitDelta       float64
		price           float64
		deltaPerDollar  float64
	}
	var pool []legCandidate
	for _, row := range filtered {
		for _, style := range []options.OptionStyle{options.Call, options.Put} {
			if !cfg.styleAllowed(style) {
				continue
			}
			c, err := adapter.ToContract(row, style, side, primitives.OnePositive(), primitives.Zero(), primitives.ZeroPositive())
			if err != nil {
				continue
			}
			g, err := pricing.Greeks(ctx, c)
			if err != nil {
				continue
			}
			price, err := pricing.Price(ctx, c)
			if err != nil || price.IsZero() {
				continue
			}
			unitDelta := g.Delta.Float64()
			if sameSign(unitDelta, deltaGap.Float64()) {
				pool = append(pool, legCandidate{
					contract:       c,
					unitDelta:      unitDelta,
					price:          price.Abs().Float64(),
					deltaPerDollar: abs(unitDelta) / price.Abs().Float64(),
				})
			}
		}
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].deltaPerDollar > pool[j].deltaPerDollar })

	remaining := deltaGap.Float64()
	var actions []Action
	totalCost := primitives.Zero()
	added := 0
	for _, cand := range pool {
		if added >= cfg.MaxNewLegs {
			break
		}
		if abs(remaining) <= cfg.DeltaTolerance.Float64() {
			break
		}
		qty := remaining / cand.unitDelta
		if qty <= 0 {
			continue
		}
		qtyPositive := primitives.MustPositiveFloat(qty)
		cost := primitives.NewDecimalFromFloat(cand.price * qty)
		totalCost = totalCost.Add(cost)
		actions = append(actions, AddLeg{Option: cand.contract, Side: side, Qty: qtyPositive})
		remaining -= cand.unitDelta * qty
		added++
	}

	if len(actions) == 0 {
		return candidate{}, false
	}

	residual := primitives.NewDecimalFromFloat(remaining)
	feasible := abs(remaining) <= cfg.DeltaTolerance.Float64()
	resultingGreeks := current
	resultingGreeks.Delta = resultingGreeks.Delta.Add(deltaGap.Sub(residual))

	plan := Plan{
		Actions:         actions,
		TotalCost:       totalCost,
		ResultingGreeks: resultingGreeks,
		ResidualDelta:   residual,
		QualityScore:    qualityScore(residual, totalCost, reference.Decimal()),
	}
	return candidate{plan: plan, feasible: feasible, cost: totalCost, residual: residual}, true
}

// underlyingCandidate emits a single AddUnderlying action sized to close
// the delta gap exactly (each share carries delta = 1).
func underlyingCandidate(current greeks.Greek, deltaGap primitives.Decimal, cfg Config, reference primitives.Positive) (candidate, bool) {
	cost := deltaGap.Abs().Mul(reference.Decimal())
	resultingGreeks := current
	resultingGreeks.Delta = resultingGreeks.Delta.Add(deltaGap)

	plan := Plan{
		Actions:         []Action{AddUnderlying{SignedQty: deltaGap}},
		TotalCost:       cost,
		ResultingGreeks: resultingGreeks,
		ResidualDelta:   primitives.Zero(),
		QualityScore:    qualityScore(primitives.Zero(), cost, reference.Decimal()),
	}
	return candidate{plan: plan, feasible: true, cost: cost, residual: primitives.Zero()}, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func sameSign(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}
