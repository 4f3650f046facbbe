package strategy

import (
	"context"
	"fmt"
	"sort"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Kind tags which named multi-leg composition a Strategy was built as.
type Kind string

const (
	KindLongButterflyCall  Kind = "long_butterfly_call"
	KindShortButterflyCall Kind = "short_butterfly_call"
	KindCallButterfly      Kind = "call_butterfly"
	KindLongStraddle       Kind = "long_straddle"
	KindStrangle           Kind = "strangle"
	KindBullCallSpread     Kind = "bull_call_spread"
	KindBearCallSpread     Kind = "bear_call_spread"
	KindBullPutSpread      Kind = "bull_put_spread"
	KindBearPutSpread      Kind = "bear_put_spread"
	KindIronButterfly      Kind = "iron_butterfly"
	KindIronCondor         Kind = "iron_condor"
	KindPoorMansCoveredCall Kind = "poor_mans_covered_call"
	KindCustom             Kind = "custom"
)

// InfiniteRatio is the sentinel ProfitRatio returns when max_loss is zero:
// there is no finite denominator, so the ratio is reported as an effectively
// unbounded decimal rather than dividing by zero.
var InfiniteRatio = primitives.NewDecimalFromFloat(1e18)

// validator checks a candidate leg set against a Kind's structural
// invariants (leg count, styles, sides, strike ordering, matching
// expirations) before a Strategy is allowed to exist.
type validator func([]Position) error

// Strategy is an ordered collection of Positions bound together under a
// named Kind, plus cached break-even points. A Strategy is a fixed leg
// pattern with payoff-analysis capabilities, not a rebalancing policy;
// rebalancing lives one layer up, in pkg/backtest.
type Strategy struct {
	Name        string
	Kind        Kind
	Description string
	Positions   []Position

	check      validator
	breakEvens []primitives.Positive
}

func newStrategy(name string, kind Kind, description string, positions []Position, check validator) (*Strategy, error) {
	if err := check(positions); err != nil {
		return nil, err
	}
	cp := make([]Position, len(positions))
	copy(cp, positions)
	return &Strategy{Name: name, Kind: kind, Description: description, Positions: cp, check: check}, nil
}

// Validate re-runs the Kind's structural check against the current leg set.
func (s *Strategy) Validate() bool {
	return s.check(s.Positions) == nil
}

// commonExpiration requires every position to share the same Expiration
// (compared by Years(), since Expiration has no other equality notion) and
// returns it, or a ValidationError.
func commonExpiration(positions []Position) (options.Expiration, error) {
	if len(positions) == 0 {
		return options.Expiration{}, &ValidationError{Reason: "strategy has no positions"}
	}
	first := positions[0].Contract.Expiration.Years()
	for _, p := range positions[1:] {
		if !p.Contract.Expiration.Years().Equal(first) {
			return options.Expiration{}, &ValidationError{Reason: "positions have mismatched expirations"}
		}
	}
	return positions[0].Contract.Expiration, nil
}

func requireLegCount(positions []Position, n int) error {
	if len(positions) != n {
		return &ValidationError{Reason: fmt.Sprintf("expected %d legs, got %d", n, len(positions))}
	}
	return nil
}

func requireStyle(p Position, style options.OptionStyle) error {
	if p.Contract.Style != style {
		return &ValidationError{Reason: fmt.Sprintf("expected %s, got %s", style, p.Contract.Style)}
	}
	return nil
}

func requireSide(p Position, side options.Side) error {
	if p.Contract.Side != side {
		return &IncompatibleSideError{Side: p.Contract.Side.String(), Reason: fmt.Sprintf("expected %s", side)}
	}
	return nil
}

// netPnLAtExpiration sums every position's realized PnL at a common
// terminal spot. Since every Strategy variant in this package is built from
// vanilla European/American legs, this is piecewise-linear in spot.
func netPnLAtExpiration(positions []Position, spot primitives.Positive) (primitives.Decimal, error) {
	total := primitives.Zero()
	for _, p := range positions {
		pnl, err := p.CalculatePnLAtExpiration(spot)
		if err != nil {
			return primitives.Decimal{}, err
		}
		total = total.Add(*pnl.Realized)
	}
	return total, nil
}

// strikeBreakpoints returns the distinct strikes across positions, sorted
// ascending; these are the only points at which the net payoff's slope can
// change.
func strikeBreakpoints(positions []Position) []primitives.Positive {
	seen := map[string]bool{}
	var out []primitives.Positive
	for _, p := range positions {
		k := p.Contract.Strike
		key := k.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out
}

// domainBounds returns a lower bound near zero and an upper bound far beyond
// the highest strike, wide enough to observe the asymptotic slope of a
// piecewise-linear net payoff without actually evaluating at infinity.
func domainBounds(strikes []primitives.Positive) (primitives.Positive, primitives.Positive) {
	lower := primitives.MustPositiveFloat(0.01)
	if len(strikes) == 0 {
		return lower, primitives.MustPositiveFloat(1000)
	}
	maxStrike := strikes[len(strikes)-1]
	upper := maxStrike.Mul(primitives.MustPositiveFloat(10)).Add(primitives.MustPositiveFloat(1000))
	return lower, upper
}

// samplePoints returns the ordered sequence of spots at which the net payoff
// changes slope, bracketed by domainBounds.
func samplePoints(positions []Position) []primitives.Positive {
	strikes := strikeBreakpoints(positions)
	lower, upper := domainBounds(strikes)
	pts := append([]primitives.Positive{lower}, strikes...)
	pts = append(pts, upper)
	return pts
}

// BreakEvenPoints solves netPnLAtExpiration(S) = 0 on each monotone segment
// of the piecewise-linear payoff, caching and returning the ascending,
// deduplicated (within 1e-6) result.
func (s *Strategy) BreakEvenPoints() ([]primitives.Positive, error) {
	if s.breakEvens != nil {
		return s.breakEvens, nil
	}
	pts := samplePoints(s.Positions)
	values := make([]primitives.Decimal, len(pts))
	for i, p := range pts {
		v, err := netPnLAtExpiration(s.Positions, p)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	var roots []primitives.Positive
	const dedupTolerance = 1e-6
	addRoot := func(r primitives.Positive) {
		for _, existing := range roots {
			if r.Sub(existing).Abs().Float64() < dedupTolerance {
				return
			}
		}
		roots = append(roots, r)
	}

	for i := 0; i < len(pts)-1; i++ {
		lo, hi := pts[i], pts[i+1]
		fLo, fHi := values[i], values[i+1]
		if fLo.IsZero() {
			addRoot(lo)
		}
		if fLo.IsNegative() == fHi.IsNegative() && !fHi.IsZero() {
			continue // no sign change within this segment
		}
		denom := fHi.Sub(fLo)
		if denom.IsZero() {
			continue
		}
		frac, err := fLo.Neg().Div(denom)
		if err != nil {
			continue
		}
		span := hi.Sub(lo)
		root := lo.Add(primitives.MustPositiveFloat(frac.Float64() * span.Float64()))
		if root.GreaterThan(lo) && (root.LessThan(hi) || root.Equal(hi)) {
			addRoot(root)
		}
	}
	if len(values) > 0 && values[len(values)-1].IsZero() {
		addRoot(pts[len(pts)-1])
	}

	sort.Slice(roots, func(i, j int) bool { return roots[i].LessThan(roots[j]) })
	s.breakEvens = roots
	return roots, nil
}

// extrema evaluates the net payoff at every breakpoint and returns the
// minimum and maximum observed values across the sampled domain.
func (s *Strategy) extrema() (min, max primitives.Decimal, err error) {
	pts := samplePoints(s.Positions)
	min, err = netPnLAtExpiration(s.Positions, pts[0])
	if err != nil {
		return primitives.Decimal{}, primitives.Decimal{}, err
	}
	max = min
	for _, p := range pts[1:] {
		v, err := netPnLAtExpiration(s.Positions, p)
		if err != nil {
			return primitives.Decimal{}, primitives.Decimal{}, err
		}
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max, nil
}

// MaxProfit returns the largest net PnL observed across the sampled domain,
// or a ProfitLossError{MaxProfitError} if that extremum is not positive
// (the apex landed on the loss side, e.g. a mis-specified butterfly).
func (s *Strategy) MaxProfit() (primitives.Positive, error) {
	_, max, err := s.extrema()
	if err != nil {
		return primitives.Positive{}, err
	}
	if !max.IsPositive() {
		return primitives.Positive{}, &ProfitLossError{Kind: MaxProfitError, Reason: "strategy has no profitable region"}
	}
	return primitives.MustPositiveFloat(max.Float64()), nil
}

// MaxLoss returns the magnitude of the smallest (most negative) net PnL
// observed across the sampled domain, or a ProfitLossError{MaxLossError} if
// the worst case is not actually a loss.
func (s *Strategy) MaxLoss() (primitives.Positive, error) {
	min, _, err := s.extrema()
	if err != nil {
		return primitives.Positive{}, err
	}
	if !min.IsNegative() {
		return primitives.Positive{}, &ProfitLossError{Kind: MaxLossError, Reason: "strategy has no loss region"}
	}
	return primitives.MustPositiveFloat(min.Abs().Float64()), nil
}

// ProfitArea integrates the positive part of the net payoff across the
// sampled domain. Because the payoff is exactly piecewise-linear between
// breakpoints, trapezoidal quadrature per segment is exact, not an
// approximation. The result is scaled by 1/200 for presentation.
func (s *Strategy) ProfitArea() (primitives.Decimal, error) {
	pts := samplePoints(s.Positions)
	area := 0.0
	prevSpot := pts[0].Float64()
	prevVal, err := netPnLAtExpiration(s.Positions, pts[0])
	if err != nil {
		return primitives.Decimal{}, err
	}
	prev := prevVal.Float64()
	for _, p := range pts[1:] {
		spot := p.Float64()
		val, err := netPnLAtExpiration(s.Positions, p)
		if err != nil {
			return primitives.Decimal{}, err
		}
		cur := val.Float64()
		width := spot - prevSpot
		if width > 0 {
			pPrev := prev
			if pPrev < 0 {
				pPrev = 0
			}
			pCur := cur
			if pCur < 0 {
				pCur = 0
			}
			if prev >= 0 && cur >= 0 {
				area += width * (pPrev + pCur) / 2
			} else if prev >= 0 && cur < 0 {
				// crosses zero within the segment; integrate only the positive triangle
				frac := prev / (prev - cur)
				area += (width * frac) * prev / 2
			} else if prev < 0 && cur >= 0 {
				frac := -prev / (cur - prev)
				area += (width * (1 - frac)) * cur / 2
			}
		}
		prevSpot, prev = spot, cur
	}
	return primitives.NewDecimalFromFloat(area / 200), nil
}

// ProfitRatio returns max_profit/max_loss * 100. A zero max_loss yields
// InfiniteRatio (there is no finite denominator); a zero max_profit yields
// zero regardless of max_loss.
func (s *Strategy) ProfitRatio() primitives.Decimal {
	maxProfit, profErr := s.MaxProfit()
	maxLoss, lossErr := s.MaxLoss()
	if profErr != nil || maxProfit.IsZero() {
		return primitives.Zero()
	}
	if lossErr != nil || maxLoss.IsZero() {
		return InfiniteRatio
	}
	ratio, err := maxProfit.Div(maxLoss)
	if err != nil {
		return InfiniteRatio
	}
	return ratio.Decimal().Mul(primitives.NewDecimal(100))
}

// PnLAtExpiration returns the strategy's net realized PnL assuming the
// underlying settles at spot. Exported for internal/probability, which
// needs to evaluate the payoff curve at arbitrary spots without duplicating
// the per-position aggregation logic.
func (s *Strategy) PnLAtExpiration(spot primitives.Positive) (primitives.Decimal, error) {
	return netPnLAtExpiration(s.Positions, spot)
}

// Breakpoints returns the distinct strikes across the strategy's legs,
// sorted ascending — the only spots at which the net payoff's slope can
// change. Exported for internal/probability's range partitioning.
func (s *Strategy) Breakpoints() []primitives.Positive {
	return strikeBreakpoints(s.Positions)
}

// Expiration returns the (validated, shared) expiration of every leg.
func (s *Strategy) Expiration() (options.Expiration, error) {
	return commonExpiration(s.Positions)
}

// AggregateGreeks sums every position's Greek contribution (already scaled
// by quantity and side sign within Position.Greeks).
func (s *Strategy) AggregateGreeks(ctx context.Context) (greeks.Greek, error) {
	total := greeks.Greek{}
	for _, p := range s.Positions {
		g, err := p.Greeks(ctx)
		if err != nil {
			return greeks.Greek{}, fmt.Errorf("aggregate greeks: %w", err)
		}
		total = total.Add(g)
	}
	return total, nil
}

// ModifyPosition replaces the quantity of the leg at index i, re-validating
// the Kind's structural invariants afterward (a quantity change can break a
// butterfly's 1:2:1 ratio), and invalidates the cached break-even points.
func (s *Strategy) ModifyPosition(i int, newQty primitives.Positive) error {
	if i < 0 || i >= len(s.Positions) {
		return &OperationError{Kind: InvalidParameters, Operation: "ModifyPosition", Reason: "leg index out of range"}
	}
	updated, err := s.Positions[i].WithQuantity(newQty)
	if err != nil {
		return fmt.Errorf("modify position: %w", err)
	}
	candidate := make([]Position, len(s.Positions))
	copy(candidate, s.Positions)
	candidate[i] = updated
	if err := s.check(candidate); err != nil {
		return fmt.Errorf("modify position: %w", err)
	}
	s.Positions = candidate
	s.breakEvens = nil
	return nil
}
