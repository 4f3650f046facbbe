package primitives

import (
	"errors"
	"time"
)

// ErrInvalidDuration indicates an invalid duration value.
var ErrInvalidDuration = errors.New("invalid duration")

// Time wraps time.Time for temporal operations in the engine.
type Time struct {
	value time.Time
}

// NewTime creates a Time from a time.Time value.
func NewTime(t time.Time) Time { return Time{value: t} }

// Now returns the current time.
func Now() Time { return Time{value: time.Now()} }

// Add returns the time t+d.
func (t Time) Add(d Duration) Time { return Time{value: t.value.Add(d.value)} }

// Sub returns the duration t-u.
func (t Time) Sub(u Time) Duration { return Duration{value: t.value.Sub(u.value)} }

// Before reports whether t is before u.
func (t Time) Before(u Time) bool { return t.value.Before(u.value) }

// After reports whether t is after u.
func (t Time) After(u Time) bool { return t.value.After(u.value) }

// Time returns the underlying time.Time value.
func (t Time) Time() time.Time { return t.value }

// String returns the string representation of the Time.
func (t Time) String() string { return t.value.String() }

// Duration wraps time.Duration for temporal durations in the engine.
type Duration struct {
	value time.Duration
}

// Days creates a Duration from days (24-hour periods).
func Days(days float64) Duration {
	return Duration{value: time.Duration(days * float64(24*time.Hour))}
}

// Seconds returns the duration as a floating point number of seconds.
func (d Duration) Seconds() float64 { return d.value.Seconds() }

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration { return d.value }
