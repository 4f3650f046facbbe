package pricing

import (
	"fmt"
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Barrier prices a single-barrier knock-in/knock-out option with the
// Reiner-Rubinstein (1991) closed-form decomposition into six component
// terms (A-F), selected by the φ (call/put) and η (up/down) sign parameters
// and combined per the standard in/out/rebate table.
func Barrier(c options.Contract) (primitives.Decimal, error) {
	bt, ok := c.Type.(options.BarrierType)
	if !ok {
		return primitives.Decimal{}, errUnsupportedType("Barrier", c.Type)
	}

	s := c.UnderlyingPrice.Float64()
	k := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	h := bt.Level.Float64()
	sign := c.Side.Sign().Float64()

	rebate := 0.0
	if bt.Rebate != nil {
		rebate = bt.Rebate.Float64()
	}

	if t <= 0 {
		return primitives.NewDecimalFromFloat(sign * intrinsic(s, k, c.Style)), nil
	}
	if sigma <= 0 {
		return primitives.Decimal{}, fmt.Errorf("%w: barrier pricing requires positive volatility", ErrOther)
	}

	phi := 1.0
	if c.Style == options.Put {
		phi = -1.0
	}
	eta := 1.0
	switch bt.Kind {
	case options.UpAndIn, options.UpAndOut:
		eta = -1.0
	case options.DownAndIn, options.DownAndOut:
		eta = 1.0
	}

	b := r - q
	price := reinerRubinstein(s, k, h, r, b, sigma, t, phi, eta, rebate, bt.Kind)
	return primitives.NewDecimalFromFloat(sign * price), nil
}

func reinerRubinstein(s, k, h, r, b, sigma, t, phi, eta, rebate float64, kind options.BarrierKind) float64 {
	sigmaT := sigma * math.Sqrt(t)
	mu := (b - sigma*sigma/2) / (sigma * sigma)
	lambda := math.Sqrt(mu*mu + 2*r/(sigma*sigma))

	x1 := math.Log(s/k)/sigmaT + (1+mu)*sigmaT
	x2 := math.Log(s/h)/sigmaT + (1+mu)*sigmaT
	y1 := math.Log(h*h/(s*k))/sigmaT + (1+mu)*sigmaT
	y2 := math.Log(h/s)/sigmaT + (1+mu)*sigmaT
	z := math.Log(h/s)/sigmaT + lambda*sigmaT

	discR := math.Exp(-r * t)
	carry := math.Exp((b - r) * t)

	a := phi*s*carry*greeks.BigN(phi*x1) - phi*k*discR*greeks.BigN(phi*x1-phi*sigmaT)
	bTerm := phi*s*carry*greeks.BigN(phi*x2) - phi*k*discR*greeks.BigN(phi*x2-phi*sigmaT)
	cTerm := phi*s*carry*math.Pow(h/s, 2*(mu+1))*greeks.BigN(eta*y1) - phi*k*discR*math.Pow(h/s, 2*mu)*greeks.BigN(eta*y1-eta*sigmaT)
	dTerm := phi*s*carry*math.Pow(h/s, 2*(mu+1))*greeks.BigN(eta*y2) - phi*k*discR*math.Pow(h/s, 2*mu)*greeks.BigN(eta*y2-eta*sigmaT)
	e := rebate * discR * (greeks.BigN(eta*x2-eta*sigmaT) - math.Pow(h/s, 2*mu)*greeks.BigN(eta*y2-eta*sigmaT))
	f := rebate * (math.Pow(h/s, mu+lambda)*greeks.BigN(eta*z) + math.Pow(h/s, mu-lambda)*greeks.BigN(eta*z-2*eta*lambda*sigmaT))

	isCall := phi > 0
	isUp := kind == options.UpAndIn || kind == options.UpAndOut
	isIn := kind == options.UpAndIn || kind == options.DownAndIn

	// Knock-in component sums from the Reiner-Rubinstein table, indexed by
	// direction, style, and the strike's position relative to the barrier.
	var knockIn float64
	switch {
	case isUp && isCall:
		if k > h {
			knockIn = a
		} else {
			knockIn = bTerm - cTerm + dTerm
		}
	case !isUp && isCall:
		if k > h {
			knockIn = cTerm
		} else {
			knockIn = a - bTerm + dTerm
		}
	case isUp && !isCall:
		if k > h {
			knockIn = a - bTerm + dTerm
		} else {
			knockIn = cTerm
		}
	default: // down and put
		if k > h {
			knockIn = bTerm - cTerm + dTerm
		} else {
			knockIn = a
		}
	}

	if isIn {
		return knockIn + e
	}
	// Knock-out = vanilla European - knock-in + rebate-at-hit term f.
	european := blackScholesRaw(s, k, r, r-b, sigma, t, optionStyleFromPhi(phi), options.Long).Float64()
	return european - knockIn + f
}

func optionStyleFromPhi(phi float64) options.OptionStyle {
	if phi > 0 {
		return options.Call
	}
	return options.Put
}
