package strategy

import "fmt"

// ValidationError reports a Position or leg-pattern that fails a Strategy's
// structural invariants (wrong side, wrong style, asymmetric strikes).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid position: %s", e.Reason) }

// IncompatibleSideError reports a position whose Side does not match what
// the strategy variant requires at that leg slot.
type IncompatibleSideError struct {
	Side   string
	Reason string
}

func (e *IncompatibleSideError) Error() string {
	return fmt.Sprintf("incompatible side %s: %s", e.Side, e.Reason)
}

// OperationErrorKind classifies a failed strategy operation.
type OperationErrorKind int

const (
	InvalidParameters OperationErrorKind = iota
)

// OperationError reports a strategy-level operation that could not proceed,
// e.g. ModifyPosition given a leg index out of range.
type OperationError struct {
	Kind      OperationErrorKind
	Operation string
	Reason    string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Reason)
}

// ProfitLossErrorKind distinguishes a degenerate max-profit from a
// degenerate max-loss.
type ProfitLossErrorKind int

const (
	MaxProfitError ProfitLossErrorKind = iota
	MaxLossError
)

// ProfitLossError reports that an extremum landed on the wrong side of zero
// (e.g. a mis-constructed butterfly whose apex is a loss, not a profit).
type ProfitLossError struct {
	Kind   ProfitLossErrorKind
	Reason string
}

func (e *ProfitLossError) Error() string {
	name := "max_profit"
	if e.Kind == MaxLossError {
		name = "max_loss"
	}
	return fmt.Sprintf("%s: %s", name, e.Reason)
}
