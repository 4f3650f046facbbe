// Package primitives provides the type-safe decimal scalars used across the
// pricing, Greeks, and strategy layers. All financial calculations route
// through decimal arithmetic to avoid floating-point precision errors; float64
// is only reintroduced at the edges where a transcendental function (ln, exp,
// erf, sqrt) has no decimal-native implementation.
package primitives

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrDivisionByZero indicates attempted division by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidDecimal indicates an invalid decimal value.
	ErrInvalidDecimal = errors.New("invalid decimal value")
	// ErrNegativeValue indicates a value that violates a non-negativity invariant.
	ErrNegativeValue = errors.New("value cannot be negative")
	// ErrNaN indicates a value that is not a number.
	ErrNaN = errors.New("value is NaN")
	// ErrNonPositive indicates a value that must be strictly positive (e.g. Ln input).
	ErrNonPositive = errors.New("value must be strictly positive")
)

// Decimal wraps shopspring/decimal.Decimal for precise arithmetic. Used as the
// base type for every financial calculation in the engine.
type Decimal struct {
	value decimal.Decimal
}

// NewDecimal creates a Decimal from an int64 value.
func NewDecimal(value int64) Decimal {
	return Decimal{value: decimal.NewFromInt(value)}
}

// NewDecimalFromFloat creates a Decimal from a float64 value.
// Use sparingly; prefer NewDecimalFromString for external data.
func NewDecimalFromFloat(value float64) Decimal {
	return Decimal{value: decimal.NewFromFloat(value)}
}

// NewDecimalFromString creates a Decimal from a string representation.
func NewDecimalFromString(value string) (Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Decimal{}, fmt.Errorf("%w: %s", ErrInvalidDecimal, err)
	}
	return Decimal{value: d}, nil
}

// MustDecimalFromString creates a Decimal from a string, panicking on error.
// Only use for known-valid constants in tests or initialization.
func MustDecimalFromString(value string) Decimal {
	d, err := NewDecimalFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns a Decimal representing zero.
func Zero() Decimal { return Decimal{value: decimal.Zero} }

// One returns a Decimal representing one.
func One() Decimal { return Decimal{value: decimal.NewFromInt(1)} }

func (d Decimal) Add(other Decimal) Decimal { return Decimal{value: d.value.Add(other.value)} }
func (d Decimal) Sub(other Decimal) Decimal { return Decimal{value: d.value.Sub(other.value)} }
func (d Decimal) Mul(other Decimal) Decimal { return Decimal{value: d.value.Mul(other.value)} }

// Div returns the quotient of two Decimals. Fails on zero divisor.
func (d Decimal) Div(other Decimal) (Decimal, error) {
	if other.value.IsZero() {
		return Decimal{}, ErrDivisionByZero
	}
	return Decimal{value: d.value.Div(other.value)}, nil
}

func (d Decimal) Abs() Decimal { return Decimal{value: d.value.Abs()} }
func (d Decimal) Neg() Decimal { return Decimal{value: d.value.Neg()} }

func (d Decimal) IsZero() bool     { return d.value.IsZero() }
func (d Decimal) IsNegative() bool { return d.value.IsNegative() }
func (d Decimal) IsPositive() bool { return d.value.IsPositive() }

func (d Decimal) GreaterThan(other Decimal) bool        { return d.value.GreaterThan(other.value) }
func (d Decimal) GreaterThanOrEqual(other Decimal) bool  { return d.value.GreaterThanOrEqual(other.value) }
func (d Decimal) LessThan(other Decimal) bool            { return d.value.LessThan(other.value) }
func (d Decimal) LessThanOrEqual(other Decimal) bool     { return d.value.LessThanOrEqual(other.value) }
func (d Decimal) Equal(other Decimal) bool               { return d.value.Equal(other.value) }

// Max returns the greater of d and other.
func (d Decimal) Max(other Decimal) Decimal {
	if d.GreaterThan(other) {
		return d
	}
	return other
}

// Min returns the lesser of d and other.
func (d Decimal) Min(other Decimal) Decimal {
	if d.LessThan(other) {
		return d
	}
	return other
}

// Float64 returns the float64 representation of the Decimal.
// Use only for transcendental functions or display; not for bookkeeping.
func (d Decimal) Float64() float64 {
	f, _ := d.value.Float64()
	return f
}

// Exp returns e^d, computed via float64 (no decimal-native exponential exists).
func (d Decimal) Exp() Decimal {
	return NewDecimalFromFloat(math.Exp(d.Float64()))
}

// Ln returns the natural logarithm of d. Fails if d <= 0.
func (d Decimal) Ln() (Decimal, error) {
	if !d.value.IsPositive() {
		return Decimal{}, ErrNonPositive
	}
	return NewDecimalFromFloat(math.Log(d.Float64())), nil
}

// Sqrt returns the square root of d. Fails if d < 0.
func (d Decimal) Sqrt() (Decimal, error) {
	if d.value.IsNegative() {
		return Decimal{}, ErrNegativeValue
	}
	return NewDecimalFromFloat(math.Sqrt(d.Float64())), nil
}

// Round rounds to the given number of decimal places, half-away-from-zero.
func (d Decimal) Round(places int32) Decimal {
	return Decimal{value: d.value.Round(places)}
}

// String returns the string representation of the Decimal.
func (d Decimal) String() string { return d.value.String() }
