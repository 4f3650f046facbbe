package pricing

import (
	"fmt"
	"math"

	"github.com/optionstrat/optionstratlib-go/internal/greeks"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// American prices an American-style option via the Barone-Adesi-Whaley (1987)
// quadratic approximation: the early-exercise premium is approximated by
// solving for the critical exercise price S* with Newton-Raphson and adding a
// power-law premium term to the European value below that boundary.
func American(c options.Contract) (primitives.Decimal, error) {
	s := c.UnderlyingPrice.Float64()
	k := c.Strike.Float64()
	r := c.RiskFreeRate.Float64()
	q := c.DividendYield.Float64()
	sigma := c.ImpliedVol.Float64()
	t := c.Expiration.Years().Float64()
	sign := c.Side.Sign().Float64()

	if t <= 0 || sigma <= 0 {
		return primitives.NewDecimalFromFloat(sign * intrinsic(s, k, c.Style)), nil
	}

	b := r - q
	m := 2 * r / (sigma * sigma)
	n := 2 * b / (sigma * sigma)
	k1 := 1 - math.Exp(-r*t)
	discriminant := (n-1)*(n-1) + 4*m/k1
	if discriminant < 0 {
		return primitives.Decimal{}, fmt.Errorf("%w: cannot calculate square root of negative discriminant", ErrOther)
	}

	european := blackScholesRaw(s, k, r, q, sigma, t, c.Style, options.Long).Float64()

	var price float64
	if c.Style == options.Call {
		if b >= r {
			price = european
		} else {
			price = americanCall(s, k, b, r, sigma, t, european)
		}
	} else {
		price = americanPut(s, k, b, r, sigma, t, european)
	}
	return primitives.NewDecimalFromFloat(sign * price), nil
}

func americanCall(s, k, b, r, sigma, t, european float64) float64 {
	m := 2 * r / (sigma * sigma)
	n := 2 * b / (sigma * sigma)
	k1 := 1 - math.Exp(-r*t)
	q2 := (-(n - 1) + math.Sqrt((n-1)*(n-1)+4*m/k1)) / 2

	sStar := criticalPrice(k, b, r, sigma, t, q2, true)
	if s >= sStar {
		return s - k
	}
	d1 := greeks.D1(sStar, k, b, sigma, t)
	a2 := (sStar / q2) * (1 - math.Exp((b-r)*t)*greeks.BigN(d1))
	return european + a2*math.Pow(s/sStar, q2)
}

func americanPut(s, k, b, r, sigma, t, european float64) float64 {
	m := 2 * r / (sigma * sigma)
	n := 2 * b / (sigma * sigma)
	k1 := 1 - math.Exp(-r*t)
	q1 := (-(n - 1) - math.Sqrt((n-1)*(n-1)+4*m/k1)) / 2

	sStar := criticalPrice(k, b, r, sigma, t, q1, false)
	if s <= sStar {
		return k - s
	}
	d1 := greeks.D1(sStar, k, b, sigma, t)
	a1 := -(sStar / q1) * (1 - math.Exp((b-r)*t)*greeks.BigN(-d1))
	return european + a1*math.Pow(s/sStar, q1)
}

// criticalPrice solves for S* via Newton-Raphson with a finite-difference
// derivative, starting from the intrinsic-value boundary.
func criticalPrice(k, b, r, sigma, t, q float64, isCall bool) float64 {
	sStar := k
	if isCall {
		sStar = k * math.Max(1, r/(r-b+1e-9))
	}
	const (
		maxIter = 100
		tol     = 1e-6
		step    = 1e-4
	)
	f := func(s float64) float64 {
		style := options.Put
		sign := -1.0
		if isCall {
			style = options.Call
			sign = 1.0
		}
		euro := generalizedBS(s, k, b, r, sigma, t, style)
		d1 := greeks.D1(s, k, b, sigma, t)
		premium := sign * (s / q) * (1 - math.Exp((b-r)*t)*greeks.BigN(sign*d1))
		return sign*(s-k) - euro - premium
	}
	for i := 0; i < maxIter; i++ {
		fx := f(sStar)
		fPrime := (f(sStar+step) - f(sStar-step)) / (2 * step)
		if fPrime == 0 {
			break
		}
		next := sStar - fx/fPrime
		if next <= 0 {
			next = sStar / 2
		}
		if math.Abs(next-sStar) < tol {
			sStar = next
			break
		}
		sStar = next
	}
	return sStar
}
