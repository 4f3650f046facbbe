package primitives_test

import (
	"errors"
	"math"
	"testing"

	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

func TestNewPositiveRejectsNegativeAndNaN(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		valid bool
	}{
		{"negative", -1, false},
		{"tiny negative", -1e-18, false},
		{"NaN", math.NaN(), false},
		{"zero", 0, true},
		{"positive", 42.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := primitives.NewPositiveFromFloat(tt.input)
			if tt.valid && err != nil {
				t.Errorf("NewPositiveFromFloat(%v) = %v, want success", tt.input, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("NewPositiveFromFloat(%v) succeeded, want InvalidValueError", tt.input)
			}
			if !tt.valid {
				var invalid *primitives.InvalidValueError
				if !errors.As(err, &invalid) {
					t.Errorf("expected *InvalidValueError, got %T", err)
				}
			}
		})
	}
}

func TestPositiveSubReturnsSignedDecimal(t *testing.T) {
	small := primitives.MustPositiveFloat(3)
	large := primitives.MustPositiveFloat(10)

	diff := small.Sub(large)
	if !diff.IsNegative() {
		t.Errorf("3 - 10 = %v, want negative", diff.Float64())
	}
	if diff.Float64() != -7 {
		t.Errorf("3 - 10 = %v, want -7", diff.Float64())
	}

	if got := large.Sub(small); got.Float64() != 7 {
		t.Errorf("10 - 3 = %v, want 7", got.Float64())
	}
}

func TestPositiveDivByZeroFails(t *testing.T) {
	if _, err := primitives.OnePositive().Div(primitives.ZeroPositive()); !errors.Is(err, primitives.ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestPositiveLnOfZeroFails(t *testing.T) {
	if _, err := primitives.ZeroPositive().Ln(); !errors.Is(err, primitives.ErrNonPositive) {
		t.Errorf("expected ErrNonPositive, got %v", err)
	}
	ln, err := primitives.MustPositiveFloat(math.E).Ln()
	if err != nil {
		t.Fatalf("Ln(e): %v", err)
	}
	if math.Abs(ln.Float64()-1) > 1e-9 {
		t.Errorf("Ln(e) = %v, want 1", ln.Float64())
	}
}

func TestPositiveConstantsAndOrdering(t *testing.T) {
	if !primitives.ZeroPositive().LessThan(primitives.OnePositive()) {
		t.Error("expected 0 < 1")
	}
	if !primitives.TwoPositive().LessThan(primitives.HundredPositive()) {
		t.Error("expected 2 < 100")
	}
	if got := primitives.TwoPositive().Max(primitives.HundredPositive()); !got.Equal(primitives.HundredPositive()) {
		t.Errorf("Max(2, 100) = %v, want 100", got.String())
	}
	if got := primitives.TwoPositive().Min(primitives.HundredPositive()); !got.Equal(primitives.TwoPositive()) {
		t.Errorf("Min(2, 100) = %v, want 2", got.String())
	}
}

func TestPositivePowAndSqrt(t *testing.T) {
	three := primitives.MustPositiveFloat(3)
	if got := three.Pow(4).Float64(); got != 81 {
		t.Errorf("3^4 = %v, want 81", got)
	}
	if got := three.Pow(0).Float64(); got != 1 {
		t.Errorf("3^0 = %v, want 1", got)
	}
	nine := primitives.MustPositiveFloat(9)
	if got := nine.Sqrt().Float64(); math.Abs(got-3) > 1e-9 {
		t.Errorf("sqrt(9) = %v, want 3", got)
	}
}

func TestPositiveRoundTo(t *testing.T) {
	p := primitives.MustPositiveFloat(2.4567)
	if got := p.RoundTo(2).String(); got != "2.46" {
		t.Errorf("RoundTo(2) = %q, want 2.46", got)
	}
	half := primitives.MustPositiveFloat(2.5)
	if got := half.RoundTo(0).Float64(); got != 3 {
		t.Errorf("RoundTo(0) of 2.5 = %v, want 3 (half away from zero)", got)
	}
}

func TestDecimalStringRoundTrip(t *testing.T) {
	d, err := primitives.NewDecimalFromString("-12.345")
	if err != nil {
		t.Fatalf("NewDecimalFromString: %v", err)
	}
	if d.String() != "-12.345" {
		t.Errorf("round-trip = %q, want -12.345", d.String())
	}
	if _, err := primitives.NewDecimalFromString("not-a-number"); !errors.Is(err, primitives.ErrInvalidDecimal) {
		t.Errorf("expected ErrInvalidDecimal, got %v", err)
	}
}
