package backtest

import (
	"fmt"
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/primitives"
	"github.com/optionstrat/optionstratlib-go/internal/strategy"
)

// Result contains the outcomes of a backtest execution: raw portfolio value
// over time plus derived performance metrics. All metrics use decimal
// arithmetic, bridging through float64 only for math.Sqrt/math.Pow.
type Result struct {
	InitialValue primitives.Decimal
	FinalValue   primitives.Decimal
	ValueHistory []ValuePoint
	Portfolio    *strategy.Portfolio

	TotalReturn      primitives.Decimal
	AnnualizedReturn primitives.Decimal
	Sharpe           primitives.Decimal
	MaxDrawdown      primitives.Decimal
	MaxDrawdownValue primitives.Decimal
}

// ValuePoint represents the portfolio value at a specific point in time.
type ValuePoint struct {
	Time  primitives.Time
	Value primitives.Decimal
}

// calculateMetrics computes derived performance metrics, called
// automatically by Engine.Run() after a backtest completes.
func (r *Result) calculateMetrics() error {
	if len(r.ValueHistory) < 2 {
		return fmt.Errorf("insufficient value history (need at least 2 points)")
	}

	if !r.InitialValue.IsZero() {
		ret, err := r.FinalValue.Sub(r.InitialValue).Div(r.InitialValue)
		if err != nil {
			return fmt.Errorf("failed to calculate total return: %w", err)
		}
		r.TotalReturn = ret
	} else {
		r.TotalReturn = r.FinalValue.Sub(r.InitialValue)
	}

	if err := r.calculateAnnualizedReturn(); err != nil {
		return fmt.Errorf("failed to calculate annualized return: %w", err)
	}
	if err := r.calculateSharpe(); err != nil {
		return fmt.Errorf("failed to calculate Sharpe ratio: %w", err)
	}
	if err := r.calculateMaxDrawdown(); err != nil {
		return fmt.Errorf("failed to calculate max drawdown: %w", err)
	}
	return nil
}

// calculateAnnualizedReturn computes the annualized return over the replayed
// period: AnnualizedReturn = (1 + TotalReturn)^(secondsPerYear/periodSeconds) - 1.
// When the period is not positive, or 1 + TotalReturn is not positive (the
// fractional power is then undefined), AnnualizedReturn is zero.
func (r *Result) calculateAnnualizedReturn() error {
	startTime := r.ValueHistory[0].Time
	endTime := r.ValueHistory[len(r.ValueHistory)-1].Time
	periodSeconds := endTime.Sub(startTime).Seconds()
	if periodSeconds <= 0 {
		r.AnnualizedReturn = primitives.Zero()
		return nil
	}

	const secondsPerYear = 365.25 * 24 * 60 * 60
	totalReturnFloat := r.TotalReturn.Float64()
	if 1+totalReturnFloat <= 0 {
		r.AnnualizedReturn = primitives.Zero()
		return nil
	}
	exponent := secondsPerYear / periodSeconds
	annualizedFloat := math.Pow(1+totalReturnFloat, exponent) - 1
	r.AnnualizedReturn = primitives.NewDecimalFromFloat(annualizedFloat)
	return nil
}

// calculateSharpe computes the Sharpe ratio from point-to-point returns,
// assuming a zero risk-free rate.
func (r *Result) calculateSharpe() error {
	returns := make([]primitives.Decimal, 0, len(r.ValueHistory)-1)
	for i := 1; i < len(r.ValueHistory); i++ {
		prev := r.ValueHistory[i-1].Value
		curr := r.ValueHistory[i].Value
		if prev.IsZero() {
			continue
		}
		ret, err := curr.Sub(prev).Div(prev)
		if err != nil {
			continue
		}
		returns = append(returns, ret)
	}

	if len(returns) < 2 {
		r.Sharpe = primitives.Zero()
		return nil
	}

	sum := primitives.Zero()
	for _, ret := range returns {
		sum = sum.Add(ret)
	}
	n := primitives.NewDecimal(int64(len(returns)))
	mean, err := sum.Div(n)
	if err != nil {
		return fmt.Errorf("failed to calculate mean: %w", err)
	}

	varianceSum := primitives.Zero()
	for _, ret := range returns {
		diff := ret.Sub(mean)
		varianceSum = varianceSum.Add(diff.Mul(diff))
	}
	variance, err := varianceSum.Div(n)
	if err != nil {
		return fmt.Errorf("failed to calculate variance: %w", err)
	}
	stdDev := primitives.NewDecimalFromFloat(math.Sqrt(variance.Float64()))
	if stdDev.IsZero() {
		r.Sharpe = primitives.Zero()
		return nil
	}

	totalSeconds := r.ValueHistory[len(r.ValueHistory)-1].Time.Sub(r.ValueHistory[0].Time).Seconds()
	avgSecondsPerPeriod := totalSeconds / float64(len(returns))
	const secondsPerYear = 365.25 * 24 * 60 * 60
	periodsPerYear := secondsPerYear / avgSecondsPerPeriod

	sharpeRaw, err := mean.Div(stdDev)
	if err != nil {
		return fmt.Errorf("failed to calculate Sharpe: %w", err)
	}
	annualizationFactor := primitives.NewDecimalFromFloat(math.Sqrt(periodsPerYear))
	r.Sharpe = sharpeRaw.Mul(annualizationFactor)
	return nil
}

// calculateMaxDrawdown computes the maximum peak-to-trough decline.
func (r *Result) calculateMaxDrawdown() error {
	maxDrawdown := primitives.Zero()
	maxDrawdownValue := primitives.Zero()
	peak := r.ValueHistory[0].Value

	for i := 1; i < len(r.ValueHistory); i++ {
		current := r.ValueHistory[i].Value
		if current.GreaterThan(peak) {
			peak = current
		}
		if peak.IsPositive() {
			drawdownAmt := peak.Sub(current)
			drawdown, err := drawdownAmt.Div(peak)
			if err != nil {
				continue
			}
			if drawdown.GreaterThan(maxDrawdown) {
				maxDrawdown = drawdown
				maxDrawdownValue = drawdownAmt
			}
		}
	}

	r.MaxDrawdown = maxDrawdown
	r.MaxDrawdownValue = maxDrawdownValue
	return nil
}

// Summary returns a human-readable summary of the backtest results.
func (r *Result) Summary() string {
	totalRetPct := r.TotalReturn.Mul(primitives.NewDecimal(100))
	annRetPct := r.AnnualizedReturn.Mul(primitives.NewDecimal(100))
	maxDDPct := r.MaxDrawdown.Mul(primitives.NewDecimal(100))

	return fmt.Sprintf(
		"Backtest Results:\n"+
			"  Initial Value: %s\n"+
			"  Final Value: %s\n"+
			"  Total Return: %.2f%%\n"+
			"  Annualized Return: %.2f%%\n"+
			"  Sharpe Ratio: %.2f\n"+
			"  Max Drawdown: %.2f%% (%s)\n"+
			"  Data Points: %d",
		r.InitialValue.String(),
		r.FinalValue.String(),
		totalRetPct.Float64(),
		annRetPct.Float64(),
		r.Sharpe.Float64(),
		maxDDPct.Float64(),
		r.MaxDrawdownValue.String(),
		len(r.ValueHistory),
	)
}
