package options

import (
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Expiration represents time-to-expiry as either a day count from valuation
// or an absolute UTC timestamp. Years() always returns a non-negative
// year-fraction, clamping a past DateTime to zero rather than a negative.
type Expiration struct {
	days     *primitives.Positive
	datetime *primitives.Time
}

// NewExpirationDays builds an Expiration from a day count.
func NewExpirationDays(days primitives.Positive) Expiration {
	d := days
	return Expiration{days: &d}
}

// NewExpirationDate builds an Expiration from an absolute UTC timestamp.
func NewExpirationDate(t primitives.Time) Expiration {
	dt := t
	return Expiration{datetime: &dt}
}

// Years returns the remaining time to expiry as a fraction of 365 days.
func (e Expiration) Years() primitives.Positive {
	if e.days != nil {
		d, err := e.days.Div(primitives.MustPositiveFloat(365))
		if err != nil {
			return primitives.ZeroPositive()
		}
		return d
	}
	if e.datetime != nil {
		remaining := e.datetime.Sub(primitives.Now()).Seconds()
		const secondsPerDay = 24 * 60 * 60
		years := remaining / secondsPerDay / 365
		if years < 0 {
			return primitives.ZeroPositive()
		}
		return primitives.MustPositiveFloat(years)
	}
	return primitives.ZeroPositive()
}

// IsZero reports whether the expiration has already lapsed (years() == 0).
func (e Expiration) IsZero() bool {
	return e.Years().IsZero()
}
