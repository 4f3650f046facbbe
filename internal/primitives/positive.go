package primitives

import (
	"fmt"
	"math"
)

// InvalidValueError reports a failed attempt to construct a Positive from an
// out-of-domain input (negative or NaN).
type InvalidValueError struct {
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %s: %s", e.Value, e.Reason)
}

// Positive is a non-negative decimal scalar. Zero is representable; negative
// values and NaN are rejected at construction so every downstream consumer
// can rely on the sign without re-checking it.
type Positive struct {
	value Decimal
}

// NewPositive constructs a Positive from a Decimal, failing if it is negative.
func NewPositive(value Decimal) (Positive, error) {
	if value.IsNegative() {
		return Positive{}, &InvalidValueError{Value: value.String(), Reason: "value is negative"}
	}
	return Positive{value: value}, nil
}

// NewPositiveFromFloat constructs a Positive from a float64, failing if it is
// negative or NaN.
func NewPositiveFromFloat(f float64) (Positive, error) {
	if math.IsNaN(f) {
		return Positive{}, &InvalidValueError{Value: "NaN", Reason: "value is NaN"}
	}
	if f < 0 {
		return Positive{}, &InvalidValueError{Value: fmt.Sprintf("%v", f), Reason: "value is negative"}
	}
	return Positive{value: NewDecimalFromFloat(f)}, nil
}

// MustPositive constructs a Positive, panicking on invalid input.
// Only use for known-valid constants in tests or initialization.
func MustPositive(value Decimal) Positive {
	p, err := NewPositive(value)
	if err != nil {
		panic(err)
	}
	return p
}

// MustPositiveFloat is the float64 analogue of MustPositive.
func MustPositiveFloat(f float64) Positive {
	p, err := NewPositiveFromFloat(f)
	if err != nil {
		panic(err)
	}
	return p
}

// ZeroPositive returns the additive identity.
func ZeroPositive() Positive { return Positive{value: Zero()} }

// OnePositive returns the multiplicative identity.
func OnePositive() Positive { return Positive{value: One()} }

// TwoPositive returns the constant 2.
func TwoPositive() Positive { return Positive{value: NewDecimal(2)} }

// HundredPositive returns the constant 100.
func HundredPositive() Positive { return Positive{value: NewDecimal(100)} }

// Decimal returns the underlying signed Decimal representation.
func (p Positive) Decimal() Decimal { return p.value }

// Float64 returns the float64 representation, for transcendental math only.
func (p Positive) Float64() float64 { return p.value.Float64() }

// Add returns p + other.
func (p Positive) Add(other Positive) Positive {
	return Positive{value: p.value.Add(other.value)}
}

// Sub returns p - other as a signed Decimal; the caller inspects the sign
// rather than the subtraction silently clamping, so underflow is never lost.
func (p Positive) Sub(other Positive) Decimal {
	return p.value.Sub(other.value)
}

// Mul returns p * other.
func (p Positive) Mul(other Positive) Positive {
	return Positive{value: p.value.Mul(other.value)}
}

// Div returns p / other. Fails on a zero divisor.
func (p Positive) Div(other Positive) (Positive, error) {
	q, err := p.value.Div(other.value)
	if err != nil {
		return Positive{}, err
	}
	return Positive{value: q}, nil
}

// Pow raises p to an integer power.
func (p Positive) Pow(n int) Positive {
	result := OnePositive()
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

// Ln returns the natural log of p. Fails if p is zero.
func (p Positive) Ln() (Decimal, error) {
	return p.value.Ln()
}

// Sqrt returns the square root of p.
func (p Positive) Sqrt() Positive {
	s, _ := p.value.Sqrt() // p.value is never negative by construction
	return Positive{value: s}
}

// Exp returns e^p.
func (p Positive) Exp() Positive {
	return Positive{value: p.value.Exp()}
}

// RoundTo rounds to dp decimal places, half-away-from-zero.
func (p Positive) RoundTo(dp int32) Positive {
	return Positive{value: p.value.Round(dp)}
}

func (p Positive) IsZero() bool { return p.value.IsZero() }

func (p Positive) GreaterThan(other Positive) bool { return p.value.GreaterThan(other.value) }
func (p Positive) LessThan(other Positive) bool    { return p.value.LessThan(other.value) }
func (p Positive) Equal(other Positive) bool       { return p.value.Equal(other.value) }

// GreaterThanDecimal/LessThanDecimal compare against a signed Decimal without
// requiring the caller to first wrap it as a Positive (useful for comparing
// against zero or against the result of a Sub).
func (p Positive) GreaterThanDecimal(other Decimal) bool { return p.value.GreaterThan(other) }
func (p Positive) LessThanDecimal(other Decimal) bool    { return p.value.LessThan(other) }

// Max returns the greater of p and other.
func (p Positive) Max(other Positive) Positive {
	if p.GreaterThan(other) {
		return p
	}
	return other
}

// Min returns the lesser of p and other.
func (p Positive) Min(other Positive) Positive {
	if p.LessThan(other) {
		return p
	}
	return other
}

func (p Positive) String() string { return p.value.String() }
