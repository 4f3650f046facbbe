// Package chain maps option-chain quote rows — as read from a CSV or JSON
// snapshot file — onto Contracts, and filters/ranks candidate rows for the
// adjustment optimizer's "add new legs" strategy. The chain itself is
// produced by an external collaborator (a file reader, a market-data feed);
// this package only defines the row shape and the adapter onto Contract.
package chain

import (
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// Field is an optional decimal quote cell: a blank CSV cell or an absent
// JSON field is represented by Ok == false rather than a nil pointer, so
// rows stay plain copyable values.
type Field struct {
	Value primitives.Decimal
	Ok    bool
}

func some(d primitives.Decimal) Field { return Field{Value: d, Ok: true} }

// Row mirrors one line of the CSV header: Strike Price, Call Bid, Call Ask,
// Put Bid, Put Ask, Implied Volatility, Delta, Volume, Open Interest.
type Row struct {
	Strike              primitives.Positive
	CallBid             Field
	CallAsk             Field
	PutBid              Field
	PutAsk              Field
	ImpliedVolatility   Field
	Delta               Field
	Volume              Field
	OpenInterest         Field
}

// Chain is the top-level snapshot: symbol, underlying price, expiration
// date, and the quote rows for every strike.
type Chain struct {
	Symbol          string
	UnderlyingPrice primitives.Positive
	ExpirationDate  primitives.Time
	Rows            []Row
}

// Mid returns the midpoint of bid/ask for a call or put, or false if either
// side is missing.
func (r Row) Mid(style options.OptionStyle) (primitives.Decimal, bool) {
	bid, ask := r.CallBid, r.CallAsk
	if style == options.Put {
		bid, ask = r.PutBid, r.PutAsk
	}
	if !bid.Ok || !ask.Ok {
		return primitives.Decimal{}, false
	}
	sum := bid.Value.Add(ask.Value)
	mid, err := sum.Div(primitives.NewDecimal(2))
	if err != nil {
		return primitives.Decimal{}, false
	}
	return mid, true
}

// ToContract builds a Contract from this row at the chain's underlying
// price and expiration date, for the given style/side/quantity/risk-free
// rate/dividend yield. Implied volatility is taken from the row's quoted IV.
func (c Chain) ToContract(r Row, style options.OptionStyle, side options.Side, quantity primitives.Positive, riskFreeRate primitives.Decimal, dividendYield primitives.Positive) (options.Contract, error) {
	iv := primitives.ZeroPositive()
	if r.ImpliedVolatility.Ok {
		iv = primitives.MustPositiveFloat(r.ImpliedVolatility.Value.Float64())
	}
	return options.NewContract(options.Contract{
		Symbol:          c.Symbol,
		Type:            options.EuropeanType{},
		Style:           style,
		Side:            side,
		Quantity:        quantity,
		Strike:          r.Strike,
		UnderlyingPrice: c.UnderlyingPrice,
		Expiration:      options.NewExpirationDate(c.ExpirationDate),
		ImpliedVol:      iv,
		RiskFreeRate:    riskFreeRate,
		DividendYield:   dividendYield,
	})
}

// FilterLiquid returns the rows whose open interest is at or above
// minLiquidity. A row with no open interest quote is excluded.
func FilterLiquid(rows []Row, minLiquidity primitives.Positive) []Row {
	var out []Row
	for _, r := range rows {
		if !r.OpenInterest.Ok {
			continue
		}
		if r.OpenInterest.Value.GreaterThanOrEqual(minLiquidity.Decimal()) {
			out = append(out, r)
		}
	}
	return out
}

// FilterStrikeRange returns the rows whose strike falls within [lo, hi]
// inclusive.
func FilterStrikeRange(rows []Row, lo, hi primitives.Positive) []Row {
	var out []Row
	for _, r := range rows {
		if (r.Strike.GreaterThan(lo) || r.Strike.Equal(lo)) && (r.Strike.LessThan(hi) || r.Strike.Equal(hi)) {
			out = append(out, r)
		}
	}
	return out
}
