package options

import "github.com/optionstrat/optionstratlib-go/internal/primitives"

// PayoffInfo bundles the terminal state a payoff evaluation needs: the
// settlement spot, the contract's strike/style/side, and — for
// path-dependent families — the observed path statistics.
type PayoffInfo struct {
	Spot       primitives.Positive
	Strike     primitives.Positive
	Style      OptionStyle
	Side       Side
	SpotPrices []primitives.Positive
	SpotMin    *primitives.Positive
	SpotMax    *primitives.Positive
}

// standardPayoff returns max(s-k, 0) for calls, max(k-s, 0) for puts.
func standardPayoff(spot, strike primitives.Positive, style OptionStyle) primitives.Decimal {
	if style == Call {
		return spot.Sub(strike).Max(primitives.Zero())
	}
	return strike.Sub(spot).Max(primitives.Zero())
}

func average(prices []primitives.Positive, geometric bool) primitives.Positive {
	if len(prices) == 0 {
		return primitives.ZeroPositive()
	}
	if geometric {
		logSum := primitives.Zero()
		for _, p := range prices {
			ln, err := p.Ln()
			if err != nil {
				return primitives.ZeroPositive()
			}
			logSum = logSum.Add(ln)
		}
		n := primitives.NewDecimal(int64(len(prices)))
		meanLog, _ := logSum.Div(n)
		return primitives.MustPositiveFloat(meanLog.Exp().Float64())
	}
	sum := primitives.ZeroPositive()
	for _, p := range prices {
		sum = sum.Add(p)
	}
	n := primitives.MustPositiveFloat(float64(len(prices)))
	avg, _ := sum.Div(n)
	return avg
}

// Payoff computes the terminal cash flow of a contract's OptionType given the
// information in info. Side Short negates the result.
func Payoff(t OptionType, info PayoffInfo) primitives.Decimal {
	result := payoffLong(t, info)
	if info.Side == Short {
		return result.Neg()
	}
	return result
}

func payoffLong(t OptionType, info PayoffInfo) primitives.Decimal {
	switch v := t.(type) {
	case EuropeanType, AmericanType, BermudaType, CliquetType:
		return standardPayoff(info.Spot, info.Strike, info.Style)
	case AsianType:
		if len(info.SpotPrices) == 0 {
			return primitives.Zero()
		}
		avg := average(info.SpotPrices, v.Averaging == Geometric)
		return standardPayoff(avg, info.Strike, info.Style)
	case BarrierType:
		return barrierPayoff(v, info)
	case BinaryType:
		return binaryPayoff(v, info)
	case LookbackType:
		return lookbackPayoff(v, info)
	case CompoundType:
		return payoffLong(v.Underlying, info)
	case ChooserType:
		callPayoff := standardPayoff(info.Spot, info.Strike, Call)
		putPayoff := standardPayoff(info.Spot, info.Strike, Put)
		return callPayoff.Max(putPayoff)
	case QuantoType:
		return standardPayoff(info.Spot, info.Strike, info.Style).Mul(v.ExchangeRate.Decimal())
	case PowerType:
		spotPow := primitives.MustPositiveFloat(info.Spot.Float64()).Pow(int(v.Exponent.Float64()))
		if info.Style == Call {
			return spotPow.Sub(info.Strike).Max(primitives.Zero())
		}
		return info.Strike.Sub(spotPow).Max(primitives.Zero())
	default:
		return standardPayoff(info.Spot, info.Strike, info.Style)
	}
}

func barrierPayoff(b BarrierType, info PayoffInfo) primitives.Decimal {
	crossed := false
	switch b.Kind {
	case UpAndIn, UpAndOut:
		crossed = info.Spot.GreaterThan(b.Level) || info.Spot.Equal(b.Level)
	case DownAndIn, DownAndOut:
		crossed = info.Spot.LessThan(b.Level) || info.Spot.Equal(b.Level)
	}
	isKnockIn := b.Kind == UpAndIn || b.Kind == DownAndIn
	active := crossed == isKnockIn
	if !active {
		return primitives.Zero()
	}
	return standardPayoff(info.Spot, info.Strike, info.Style)
}

func binaryPayoff(b BinaryType, info PayoffInfo) primitives.Decimal {
	itm := false
	if info.Style == Call {
		itm = info.Spot.GreaterThan(info.Strike)
	} else {
		itm = info.Spot.LessThan(info.Strike)
	}
	if !itm {
		return primitives.Zero()
	}
	switch b.Kind {
	case CashOrNothing:
		return primitives.One()
	case AssetOrNothing:
		return info.Spot.Decimal()
	case Gap:
		return info.Spot.Sub(info.Strike)
	default:
		return primitives.Zero()
	}
}

func lookbackPayoff(l LookbackType, info PayoffInfo) primitives.Decimal {
	if l.Kind == FixedStrike {
		return standardPayoff(info.Spot, info.Strike, info.Style)
	}
	min := primitives.ZeroPositive()
	if info.SpotMin != nil {
		min = *info.SpotMin
	}
	max := primitives.ZeroPositive()
	if info.SpotMax != nil {
		max = *info.SpotMax
	}
	if info.Style == Call {
		return info.Spot.Sub(min)
	}
	return max.Sub(info.Spot)
}
