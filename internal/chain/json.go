package chain

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// OptionData mirrors one CSV row in the JSON wire format.
type OptionData struct {
	StrikePrice        float64  `json:"strike_price"`
	CallBid            *float64 `json:"call_bid,omitempty"`
	CallAsk            *float64 `json:"call_ask,omitempty"`
	PutBid             *float64 `json:"put_bid,omitempty"`
	PutAsk             *float64 `json:"put_ask,omitempty"`
	ImpliedVolatility  *float64 `json:"implied_volatility,omitempty"`
	Delta              *float64 `json:"delta,omitempty"`
	Volume             *float64 `json:"volume,omitempty"`
	OpenInterest       *float64 `json:"open_interest,omitempty"`
}

// document is the top-level JSON shape: symbol, underlying_price,
// expiration_date, options.
type document struct {
	Symbol          string       `json:"symbol"`
	UnderlyingPrice float64      `json:"underlying_price"`
	ExpirationDate  string       `json:"expiration_date"`
	Options         []OptionData `json:"options"`
}

// ReadJSON parses a chain JSON snapshot. The caller is responsible for
// turning ExpirationDate (a string) into a primitives.Time using whatever
// layout the snapshot source uses; ReadJSON returns it as a raw string
// alongside symbol/underlying price/rows.
func ReadJSON(r io.Reader) (symbol string, underlyingPrice primitives.Positive, expirationDate string, rows []Row, err error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return "", primitives.Positive{}, "", nil, fmt.Errorf("read chain json: %w", err)
	}
	up, perr := primitives.NewPositiveFromFloat(doc.UnderlyingPrice)
	if perr != nil {
		return "", primitives.Positive{}, "", nil, fmt.Errorf("read chain json: %w", perr)
	}
	for _, o := range doc.Options {
		strike, perr := primitives.NewPositiveFromFloat(o.StrikePrice)
		if perr != nil {
			return "", primitives.Positive{}, "", nil, fmt.Errorf("read chain json: %w", perr)
		}
		rows = append(rows, Row{
			Strike:            strike,
			CallBid:           fieldFromPtr(o.CallBid),
			CallAsk:           fieldFromPtr(o.CallAsk),
			PutBid:            fieldFromPtr(o.PutBid),
			PutAsk:            fieldFromPtr(o.PutAsk),
			ImpliedVolatility: fieldFromPtr(o.ImpliedVolatility),
			Delta:             fieldFromPtr(o.Delta),
			Volume:            fieldFromPtr(o.Volume),
			OpenInterest:      fieldFromPtr(o.OpenInterest),
		})
	}
	return doc.Symbol, up, doc.ExpirationDate, rows, nil
}

// WriteJSON renders a Chain snapshot back to the document shape.
func WriteJSON(w io.Writer, symbol string, underlyingPrice primitives.Positive, expirationDate string, rows []Row) error {
	doc := document{
		Symbol:          symbol,
		UnderlyingPrice: underlyingPrice.Float64(),
		ExpirationDate:  expirationDate,
	}
	for _, row := range rows {
		doc.Options = append(doc.Options, OptionData{
			StrikePrice:       row.Strike.Float64(),
			CallBid:           ptrFromField(row.CallBid),
			CallAsk:           ptrFromField(row.CallAsk),
			PutBid:            ptrFromField(row.PutBid),
			PutAsk:            ptrFromField(row.PutAsk),
			ImpliedVolatility: ptrFromField(row.ImpliedVolatility),
			Delta:             ptrFromField(row.Delta),
			Volume:            ptrFromField(row.Volume),
			OpenInterest:      ptrFromField(row.OpenInterest),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write chain json: %w", err)
	}
	return nil
}

func fieldFromPtr(f *float64) Field {
	if f == nil {
		return Field{}
	}
	return some(primitives.NewDecimalFromFloat(*f))
}

func ptrFromField(f Field) *float64 {
	if !f.Ok {
		return nil
	}
	v := f.Value.Float64()
	return &v
}
