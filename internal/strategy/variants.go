package strategy

import (
	"fmt"

	"github.com/optionstrat/optionstratlib-go/internal/options"
)

func qtyRatio(p Position, want float64) bool {
	got := p.Contract.Quantity.Float64()
	const tol = 1e-9
	d := got - want
	if d < 0 {
		d = -d
	}
	return d < tol
}

// NewLongButterflyCallStrategy builds a 3-leg long call butterfly: long 1 at
// K1, short 2 at K2, long 1 at K3, with K2-K1 == K3-K2 and all legs sharing a
// common expiration.
func NewLongButterflyCallStrategy(positions []Position) (*Strategy, error) {
	check := func(positions []Position) error {
		if err := requireLegCount(positions, 3); err != nil {
			return err
		}
		if _, err := commonExpiration(positions); err != nil {
			return err
		}
		lo, mid, hi := positions[0], positions[1], positions[2]
		for _, p := range positions {
			if err := requireStyle(p, options.Call); err != nil {
				return err
			}
		}
		if err := requireSide(lo, options.Long); err != nil {
			return err
		}
		if err := requireSide(mid, options.Short); err != nil {
			return err
		}
		if err := requireSide(hi, options.Long); err != nil {
			return err
		}
		if !lo.Contract.Strike.LessThan(mid.Contract.Strike) || !mid.Contract.Strike.LessThan(hi.Contract.Strike) {
			return &ValidationError{Reason: "butterfly legs must be strictly ordered K1 < K2 < K3"}
		}
		width1 := mid.Contract.Strike.Sub(lo.Contract.Strike)
		width2 := hi.Contract.Strike.Sub(mid.Contract.Strike)
		if width1.Sub(width2).Abs().Float64() > 1e-6 {
			return &ValidationError{Reason: "butterfly wings must be symmetric: K2-K1 == K3-K2"}
		}
		if !qtyRatio(lo, 1) || !qtyRatio(mid, 2) || !qtyRatio(hi, 1) {
			return &ValidationError{Reason: "butterfly requires quantity ratio 1:2:1"}
		}
		return nil
	}
	return newStrategy("Long Butterfly Spread", KindLongButterflyCall, "long 1 call K1, short 2 calls K2, long 1 call K3", positions, check)
}

// NewShortButterflyCallStrategy is the mirror of the long butterfly: short
// 1 at K1, long 2 at K2, short 1 at K3, same symmetric-strike invariant.
func NewShortButterflyCallStrategy(positions []Position) (*Strategy, error) {
	check := func(positions []Position) error {
		if err := requireLegCount(positions, 3); err != nil {
			return err
		}
		if _, err := commonExpiration(positions); err != nil {
			return err
		}
		lo, mid, hi := positions[0], positions[1], positions[2]
		for _, p := range positions {
			if err := requireStyle(p, options.Call); err != nil {
				return err
			}
		}
		if err := requireSide(lo, options.Short); err != nil {
			return err
		}
		if err := requireSide(mid, options.Long); err != nil {
			return err
		}
		if err := requireSide(hi, options.Short); err != nil {
			return err
		}
		if !lo.Contract.Strike.LessThan(mid.Contract.Strike) || !mid.Contract.Strike.LessThan(hi.Contract.Strike) {
			return &ValidationError{Reason: "butterfly legs must be strictly ordered K1 < K2 < K3"}
		}
		width1 := mid.Contract.Strike.Sub(lo.Contract.Strike)
		width2 := hi.Contract.Strike.Sub(mid.Contract.Strike)
		if width1.Sub(width2).Abs().Float64() > 1e-6 {
			return &ValidationError{Reason: "butterfly wings must be symmetric: K2-K1 == K3-K2"}
		}
		if !qtyRatio(lo, 1) || !qtyRatio(mid, 2) || !qtyRatio(hi, 1) {
			return &ValidationError{Reason: "butterfly requires quantity ratio 1:2:1"}
		}
		return nil
	}
	return newStrategy("Short Butterfly Spread", KindShortButterflyCall, "short 1 call K1, long 2 calls K2, short 1 call K3", positions, check)
}

// NewCallButterflyStrategy is the asymmetric-wing variant: same side/style
// pattern as the long butterfly, but K2-K1 need not equal K3-K2.
func NewCallButterflyStrategy(positions []Position) (*Strategy, error) {
	check := func(positions []Position) error {
		if err := requireLegCount(positions, 3); err != nil {
			return err
		}
		if _, err := commonExpiration(positions); err != nil {
			return err
		}
		lo, mid, hi := positions[0], positions[1], positions[2]
		for _, p := range positions {
			if err := requireStyle(p, options.Call); err != nil {
				return err
			}
		}
		if err := requireSide(lo, options.Long); err != nil {
			return err
		}
		if err := requireSide(mid, options.Short); err != nil {
			return err
		}
		if err := requireSide(hi, options.Long); err != nil {
			return err
		}
		if !lo.Contract.Strike.LessThan(mid.Contract.Strike) || !mid.Contract.Strike.LessThan(hi.Contract.Strike) {
			return &ValidationError{Reason: "butterfly legs must be strictly ordered K1 < K2 < K3"}
		}
		if !qtyRatio(lo, 1) || !qtyRatio(mid, 2) || !qtyRatio(hi, 1) {
			return &ValidationError{Reason: "butterfly requires quantity ratio 1:2:1"}
		}
		return nil
	}
	return newStrategy("Call Butterfly", KindCallButterfly, "asymmetric long call butterfly", positions, check)
}

// NewLongStraddleStrategy builds a long call + long put at the same strike
// and expiration.
func NewLongStraddleStrategy(positions []Position) (*Strategy, error) {
	check := func(positions []Position) error {
		if err := requireLegCount(positions, 2); err != nil {
			return err
		}
		if _, err := commonExpiration(positions); err != nil {
			return err
		}
		call, put := positions[0], positions[1]
		if call.Contract.Style != options.Call {
			call, put = put, call
		}
		if err := requireStyle(call, options.Call); err != nil {
			return err
		}
		if err := requireStyle(put, options.Put); err != nil {
			return err
		}
		if err := requireSide(call, options.Long); err != nil {
			return err
		}
		if err := requireSide(put, options.Long); err != nil {
			return err
		}
		if !call.Contract.Strike.Equal(put.Contract.Strike) {
			return &ValidationError{Reason: "straddle legs must share a strike"}
		}
		return nil
	}
	return newStrategy("Long Straddle", KindLongStraddle, "long call + long put, same strike", positions, check)
}

// NewStrangleStrategy builds a call + put at different strikes (call strike
// strictly greater than put strike), both the same side (long or short) and
// expiration.
func NewStrangleStrategy(positions []Position) (*Strategy, error) {
	check := func(positions []Position) error {
		if err := requireLegCount(positions, 2); err != nil {
			return err
		}
		if _, err := commonExpiration(positions); err != nil {
			return err
		}
		call, put := positions[0], positions[1]
		if call.Contract.Style != options.Call {
			call, put = put, call
		}
		if err := requireStyle(call, options.Call); err != nil {
			return err
		}
		if err := requireStyle(put, options.Put); err != nil {
			return err
		}
		if call.Contract.Side != put.Contract.Side {
			return &IncompatibleSideError{Side: put.Contract.Side.String(), Reason: "strangle legs must share a side"}
		}
		if !call.Contract.Strike.GreaterThan(put.Contract.Strike) {
			return &ValidationError{Reason: "strangle call strike must exceed put strike"}
		}
		return nil
	}
	return newStrategy("Strangle", KindStrangle, "call and put at different strikes, same side", positions, check)
}

func verticalSpreadValidator(name Kind, style options.OptionStyle, longIsLowerStrike bool) validator {
	return func(positions []Position) error {
		if err := requireLegCount(positions, 2); err != nil {
			return err
		}
		if _, err := commonExpiration(positions); err != nil {
			return err
		}
		for _, p := range positions {
			if err := requireStyle(p, style); err != nil {
				return err
			}
		}
		a, b := positions[0], positions[1]
		var long, short Position
		if a.Contract.Side == options.Long {
			long, short = a, b
		} else {
			long, short = b, a
		}
		if err := requireSide(long, options.Long); err != nil {
			return err
		}
		if err := requireSide(short, options.Short); err != nil {
			return err
		}
		if long.Contract.Strike.Equal(short.Contract.Strike) {
			return &ValidationError{Reason: "spread legs must have distinct strikes"}
		}
		if longIsLowerStrike && !long.Contract.Strike.LessThan(short.Contract.Strike) {
			return &ValidationError{Reason: fmt.Sprintf("%s requires the long leg at the lower strike", name)}
		}
		if !longIsLowerStrike && !long.Contract.Strike.GreaterThan(short.Contract.Strike) {
			return &ValidationError{Reason: fmt.Sprintf("%s requires the long leg at the higher strike", name)}
		}
		return nil
	}
}

// NewBullCallSpreadStrategy: long call at the lower strike, short call at
// the higher strike.
func NewBullCallSpreadStrategy(positions []Position) (*Strategy, error) {
	return newStrategy("Bull Call Spread", KindBullCallSpread, "long call K1 + short call K2 > K1",
		positions, verticalSpreadValidator(KindBullCallSpread, options.Call, true))
}

// NewBearCallSpreadStrategy: short call at the lower strike, long call at
// the higher strike.
func NewBearCallSpreadStrategy(positions []Position) (*Strategy, error) {
	return newStrategy("Bear Call Spread", KindBearCallSpread, "short call K1 + long call K2 > K1",
		positions, verticalSpreadValidator(KindBearCallSpread, options.Call, false))
}

// NewBullPutSpreadStrategy: long put at the lower strike, short put at the
// higher strike.
func NewBullPutSpreadStrategy(positions []Position) (*Strategy, error) {
	return newStrategy("Bull Put Spread", KindBullPutSpread, "long put K1 + short put K2 > K1",
		positions, verticalSpreadValidator(KindBullPutSpread, options.Put, true))
}

// NewBearPutSpreadStrategy: short put at the lower strike, long put at the
// higher strike.
func NewBearPutSpreadStrategy(positions []Position) (*Strategy, error) {
	return newStrategy("Bear Put Spread", KindBearPutSpread, "short put K1 + long put K2 > K1",
		positions, verticalSpreadValidator(KindBearPutSpread, options.Put, false))
}

// NewIronButterflyStrategy builds a 4-leg iron butterfly: long put K1, short
// put K2, short call K2, long call K3, K1 < K2 < K3, all same expiration.
func NewIronButterflyStrategy(positions []Position) (*Strategy, error) {
	check := func(positions []Position) error {
		if err := requireLegCount(positions, 4); err != nil {
			return err
		}
		if _, err := commonExpiration(positions); err != nil {
			return err
		}
		var longPut, shortPut, shortCall, longCall *Position
		for i := range positions {
			p := &positions[i]
			switch {
			case p.Contract.Style == options.Put && p.Contract.Side == options.Long:
				longPut = p
			case p.Contract.Style == options.Put && p.Contract.Side == options.Short:
				shortPut = p
			case p.Contract.Style == options.Call && p.Contract.Side == options.Short:
				shortCall = p
			case p.Contract.Style == options.Call && p.Contract.Side == options.Long:
				longCall = p
			}
		}
		if longPut == nil || shortPut == nil || shortCall == nil || longCall == nil {
			return &ValidationError{Reason: "iron butterfly requires long put, short put, short call, long call"}
		}
		if !shortPut.Contract.Strike.Equal(shortCall.Contract.Strike) {
			return &ValidationError{Reason: "iron butterfly body strikes (short put/call) must match"}
		}
		if !longPut.Contract.Strike.LessThan(shortPut.Contract.Strike) {
			return &ValidationError{Reason: "iron butterfly long put must be below the body strike"}
		}
		if !longCall.Contract.Strike.GreaterThan(shortCall.Contract.Strike) {
			return &ValidationError{Reason: "iron butterfly long call must be above the body strike"}
		}
		return nil
	}
	return newStrategy("Iron Butterfly", KindIronButterfly, "long put K1, short put+call K2, long call K3", positions, check)
}

// NewIronCondorStrategy builds a 4-leg iron condor: long put K1, short put
// K2, short call K3, long call K4, with K1 < K2 <= K3 < K4.
func NewIronCondorStrategy(positions []Position) (*Strategy, error) {
	check := func(positions []Position) error {
		if err := requireLegCount(positions, 4); err != nil {
			return err
		}
		if _, err := commonExpiration(positions); err != nil {
			return err
		}
		var longPut, shortPut, shortCall, longCall *Position
		for i := range positions {
			p := &positions[i]
			switch {
			case p.Contract.Style == options.Put && p.Contract.Side == options.Long:
				longPut = p
			case p.Contract.Style == options.Put && p.Contract.Side == options.Short:
				shortPut = p
			case p.Contract.Style == options.Call && p.Contract.Side == options.Short:
				shortCall = p
			case p.Contract.Style == options.Call && p.Contract.Side == options.Long:
				longCall = p
			}
		}
		if longPut == nil || shortPut == nil || shortCall == nil || longCall == nil {
			return &ValidationError{Reason: "iron condor requires long put, short put, short call, long call"}
		}
		if !longPut.Contract.Strike.LessThan(shortPut.Contract.Strike) {
			return &ValidationError{Reason: "iron condor long put must be below short put"}
		}
		if shortPut.Contract.Strike.GreaterThan(shortCall.Contract.Strike) {
			return &ValidationError{Reason: "iron condor short put must not exceed short call"}
		}
		if !shortCall.Contract.Strike.LessThan(longCall.Contract.Strike) {
			return &ValidationError{Reason: "iron condor short call must be below long call"}
		}
		return nil
	}
	return newStrategy("Iron Condor", KindIronCondor, "long put K1, short put K2, short call K3, long call K4", positions, check)
}

// NewPoorMansCoveredCallStrategy builds a deep-ITM long call (acting as a
// stock surrogate) plus a short OTM call, same style (Call) and expiration.
func NewPoorMansCoveredCallStrategy(positions []Position) (*Strategy, error) {
	check := func(positions []Position) error {
		if err := requireLegCount(positions, 2); err != nil {
			return err
		}
		if _, err := commonExpiration(positions); err != nil {
			return err
		}
		for _, p := range positions {
			if err := requireStyle(p, options.Call); err != nil {
				return err
			}
		}
		a, b := positions[0], positions[1]
		var long, short Position
		if a.Contract.Side == options.Long {
			long, short = a, b
		} else {
			long, short = b, a
		}
		if err := requireSide(long, options.Long); err != nil {
			return err
		}
		if err := requireSide(short, options.Short); err != nil {
			return err
		}
		if !long.Contract.Strike.LessThan(short.Contract.Strike) {
			return &ValidationError{Reason: "poor man's covered call requires the long leg deep ITM (lower strike)"}
		}
		if !long.Contract.Strike.LessThan(long.Contract.UnderlyingPrice) {
			return &ValidationError{Reason: "poor man's covered call requires the long leg strike below spot (ITM)"}
		}
		return nil
	}
	return newStrategy("Poor Man's Covered Call", KindPoorMansCoveredCall, "deep ITM long call + OTM short call", positions, check)
}

// NewCustomStrategy accepts any non-empty leg set, validating only that
// every position shares the same expiration.
func NewCustomStrategy(name string, positions []Position) (*Strategy, error) {
	check := func(positions []Position) error {
		_, err := commonExpiration(positions)
		return err
	}
	return newStrategy(name, KindCustom, "user-defined leg set", positions, check)
}
