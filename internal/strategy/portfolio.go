package strategy

import (
	"sync"

	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Portfolio is the mutable aggregate the backtest harness replays a
// Strategy's legs through over time. RWMutex-protected because a backtest
// event loop may read break-evens/Greeks/PnL concurrently with a rebalance
// hook applying adjustments.
type Portfolio struct {
	mu       sync.RWMutex
	Strategy *Strategy
}

// NewPortfolio wraps a Strategy for mutation under lock.
func NewPortfolio(s *Strategy) *Portfolio {
	return &Portfolio{Strategy: s}
}

// Apply runs fn against the portfolio's Strategy under an exclusive lock,
// the single mutation path every Action funnels through.
func (p *Portfolio) Apply(fn func(*Strategy) error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.Strategy)
}

// View runs fn against the portfolio's Strategy under a shared lock, for
// read-only queries (break-evens, Greeks, PnL) made while a concurrent
// Apply may be in flight.
func (p *Portfolio) View(fn func(*Strategy) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return fn(p.Strategy)
}

// Action is a single adjustment a rebalancing policy wants applied to a
// Portfolio. It mirrors internal/adjustment.Action's vocabulary but is kept
// independent so the backtest harness does not need to import the
// adjustment optimizer to replay a fixed sequence of actions.
type Action interface {
	Apply(p *Portfolio) error
}

// ModifyQuantityAction changes the quantity of the leg at Index.
type ModifyQuantityAction struct {
	Index  int
	NewQty primitives.Positive
}

func (a ModifyQuantityAction) Apply(p *Portfolio) error {
	return p.Apply(func(s *Strategy) error {
		return s.ModifyPosition(a.Index, a.NewQty)
	})
}
