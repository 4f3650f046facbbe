package adjustment

import "errors"

var (
	// ErrNoPositions is returned when Optimize is given an empty portfolio.
	ErrNoPositions = errors.New("adjustment: no positions")
	// ErrNoViablePlan is returned when no candidate strategy closes the
	// delta (and, if targeted, gamma) gap within tolerance.
	ErrNoViablePlan = errors.New("adjustment: no viable plan")
	// ErrCostExceeded is returned when the best candidate plan breaches
	// Config.MaxCost.
	ErrCostExceeded = errors.New("adjustment: cost exceeded")
	// ErrGreeksError wraps a failure from an underlying analytic Greek call.
	ErrGreeksError = errors.New("adjustment: greeks calculation failed")
)
