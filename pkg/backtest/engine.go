// Package backtest replays a synthetic or chain-derived underlying price
// path through a strategy.Strategy, marking it to market at each step of a
// deterministic MarketSnapshot sequence and reporting portfolio value,
// drawdown, and return metrics along the path.
package backtest

import (
	"context"
	"fmt"

	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
	"github.com/optionstrat/optionstratlib-go/internal/strategy"
)

// MarketSnapshot is one point along the replayed path: the underlying spot,
// the implied vol to mark positions at, and the years remaining to
// expiration at that point. YearsRemaining is supplied by the caller rather
// than derived from wall-clock time, so a backtest is reproducible
// regardless of when it is run.
type MarketSnapshot struct {
	Time            primitives.Time
	UnderlyingPrice primitives.Positive
	ImpliedVol      primitives.Positive
	YearsRemaining  primitives.Positive
}

// Config controls Engine behavior. InitialCash seeds Result.InitialValue;
// the strategy's mark-to-market PnL is added on top of it at each step.
type Config struct {
	InitialCash           primitives.Decimal
	EnableDetailedLogging bool
}

// DefaultConfig returns a zero cash base with detailed logging disabled.
func DefaultConfig() Config {
	return Config{InitialCash: primitives.Zero(), EnableDetailedLogging: false}
}

// Engine replays a MarketSnapshot path through a strategy.Portfolio,
// recording the portfolio's mark-to-market value at each step.
type Engine struct {
	config Config
}

// NewEngine builds an Engine with an explicit Config.
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// NewEngineWithDefaults builds an Engine using DefaultConfig().
func NewEngineWithDefaults() *Engine {
	return NewEngine(DefaultConfig())
}

// Rebalance is invoked after each snapshot's mark-to-market, returning
// adjustment actions to apply before the next step. A nil Rebalance
// replays the portfolio buy-and-hold.
type Rebalance func(ctx context.Context, p *strategy.Portfolio, snap MarketSnapshot) ([]strategy.Action, error)

// Run replays snapshots through portfolio, marking it to market at each
// step via Position.CalculatePnLAtExpiration once a snapshot's
// YearsRemaining reaches zero, or Position.CalculatePnL (unrealized) while
// time remains.
func (e *Engine) Run(ctx context.Context, portfolio *strategy.Portfolio, snapshots []MarketSnapshot, rebalance Rebalance) (*Result, error) {
	if portfolio == nil || portfolio.Strategy == nil {
		return nil, fmt.Errorf("backtest: portfolio must not be nil")
	}
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("backtest: snapshots must not be empty")
	}

	history := make([]ValuePoint, 0, len(snapshots))
	var initialValue, finalValue primitives.Decimal

	for i, snap := range snapshots {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("backtest: cancelled: %w", ctx.Err())
		default:
		}

		var value primitives.Decimal
		err := portfolio.View(func(s *strategy.Strategy) error {
			v, verr := e.portfolioValue(ctx, s, snap)
			if verr != nil {
				return verr
			}
			value = v
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("backtest: mark to market at step %d: %w", i, err)
		}

		history = append(history, ValuePoint{Time: snap.Time, Value: value})
		if i == 0 {
			initialValue = value
		}
		finalValue = value

		if rebalance != nil {
			actions, rerr := rebalance(ctx, portfolio, snap)
			if rerr != nil {
				return nil, fmt.Errorf("backtest: rebalance at step %d: %w", i, rerr)
			}
			for actionIdx, action := range actions {
				if aerr := action.Apply(portfolio); aerr != nil {
					return nil, fmt.Errorf("backtest: apply action %d at step %d: %w", actionIdx, i, aerr)
				}
			}
		}
	}

	result := &Result{
		InitialValue: initialValue,
		FinalValue:   finalValue,
		ValueHistory: history,
		Portfolio:    portfolio,
	}
	if err := result.calculateMetrics(); err != nil {
		return nil, fmt.Errorf("backtest: %w", err)
	}
	return result, nil
}

// portfolioValue marks every position in s to market at snap and sums the
// result on top of the engine's configured initial cash.
func (e *Engine) portfolioValue(ctx context.Context, s *strategy.Strategy, snap MarketSnapshot) (primitives.Decimal, error) {
	total := e.config.InitialCash
	for _, p := range s.Positions {
		if snap.YearsRemaining.IsZero() {
			pnl, err := p.CalculatePnLAtExpiration(snap.UnderlyingPrice)
			if err != nil {
				return primitives.Decimal{}, err
			}
			total = total.Add(*pnl.Realized)
			continue
		}
		expiration := options.NewExpirationDays(snap.YearsRemaining.Mul(primitives.MustPositiveFloat(365)))
		pnl, err := p.CalculatePnL(ctx, snap.UnderlyingPrice, expiration, snap.ImpliedVol)
		if err != nil {
			return primitives.Decimal{}, err
		}
		total = total.Add(*pnl.Unrealized)
	}
	return total, nil
}
