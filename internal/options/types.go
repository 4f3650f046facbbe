package options

import "github.com/optionstrat/optionstratlib-go/internal/primitives"

// Side indicates whether a position is long or short. It multiplies every
// cash flow and Greek sign by +1 or -1 respectively.
type Side int

const (
	Long Side = iota
	Short
)

// Sign returns +1 for Long, -1 for Short.
func (s Side) Sign() primitives.Decimal {
	if s == Short {
		return primitives.NewDecimal(-1)
	}
	return primitives.NewDecimal(1)
}

func (s Side) String() string {
	if s == Short {
		return "short"
	}
	return "long"
}

// OptionStyle distinguishes a call from a put; it drives payoff sign
// selection inside every pricer.
type OptionStyle int

const (
	Call OptionStyle = iota
	Put
)

func (s OptionStyle) String() string {
	if s == Put {
		return "put"
	}
	return "call"
}

// AsianAveragingType selects arithmetic or geometric averaging for an Asian
// option's path statistic.
type AsianAveragingType int

const (
	Arithmetic AsianAveragingType = iota
	Geometric
)

// BarrierKind selects the direction and in/out behavior of a Barrier option.
type BarrierKind int

const (
	UpAndIn BarrierKind = iota
	UpAndOut
	DownAndIn
	DownAndOut
)

// BinaryKind selects the payoff shape of a Binary/digital option.
type BinaryKind int

const (
	CashOrNothing BinaryKind = iota
	AssetOrNothing
	Gap
)

// LookbackKind selects whether the strike is fixed at inception or floats to
// the observed path extremum.
type LookbackKind int

const (
	FixedStrike LookbackKind = iota
	FloatingStrike
)

// OptionType is a closed sum type enumerating every payoff family the engine
// understands. It is realized as an interface with an unexported marker
// method so no type outside this package may add a new variant.
type OptionType interface {
	isOptionType()
}

type EuropeanType struct{}

func (EuropeanType) isOptionType() {}

type AmericanType struct{}

func (AmericanType) isOptionType() {}

// BermudaType carries the ordered exercise dates, in year-fractions.
type BermudaType struct {
	ExerciseDates []primitives.Positive
}

func (BermudaType) isOptionType() {}

type AsianType struct {
	Averaging AsianAveragingType
}

func (AsianType) isOptionType() {}

type BarrierType struct {
	Kind   BarrierKind
	Level  primitives.Positive
	Rebate *primitives.Decimal
}

func (BarrierType) isOptionType() {}

type BinaryType struct {
	Kind BinaryKind
}

func (BinaryType) isOptionType() {}

type LookbackType struct {
	Kind LookbackKind
}

func (LookbackType) isOptionType() {}

// CompoundType wraps an inner OptionType; the compound option's payoff is a
// function of the inner option's price at the compound's own expiry.
type CompoundType struct {
	Underlying OptionType
}

func (CompoundType) isOptionType() {}

// ChooserType carries the choice date, in year-fractions, at which the
// holder commits to Call or Put.
type ChooserType struct {
	ChoiceDateYears primitives.Positive
}

func (ChooserType) isOptionType() {}

// CliquetType carries the ordered strike-reset dates, in year-fractions.
type CliquetType struct {
	ResetDates []primitives.Positive
}

func (CliquetType) isOptionType() {}

type RainbowType struct {
	NumAssets int
}

func (RainbowType) isOptionType() {}

type SpreadType struct {
	SecondAsset primitives.Positive
}

func (SpreadType) isOptionType() {}

type QuantoType struct {
	ExchangeRate primitives.Positive
}

func (QuantoType) isOptionType() {}

type ExchangeType struct {
	SecondAsset primitives.Positive
}

func (ExchangeType) isOptionType() {}

type PowerType struct {
	Exponent primitives.Decimal
}

func (PowerType) isOptionType() {}
