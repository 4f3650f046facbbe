package chain_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/optionstrat/optionstratlib-go/internal/chain"
	"github.com/optionstrat/optionstratlib-go/internal/options"
	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

func sampleRows() []chain.Row {
	return []chain.Row{
		{
			Strike:            primitives.MustPositiveFloat(95),
			CallBid:           chain.Field{Value: primitives.NewDecimalFromFloat(6.1), Ok: true},
			CallAsk:           chain.Field{Value: primitives.NewDecimalFromFloat(6.3), Ok: true},
			ImpliedVolatility: chain.Field{Value: primitives.NewDecimalFromFloat(0.22), Ok: true},
			OpenInterest:      chain.Field{Value: primitives.NewDecimalFromFloat(1200), Ok: true},
		},
		{
			Strike: primitives.MustPositiveFloat(105),
			// blank bid/ask/IV/open interest cells
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	rows := sampleRows()
	var buf bytes.Buffer
	if err := chain.WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	got, err := chain.ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(got))
	}
	if !got[0].CallBid.Ok || got[0].CallBid.Value.Float64() != 6.1 {
		t.Errorf("expected call bid 6.1, got %+v", got[0].CallBid)
	}
	if got[1].CallBid.Ok {
		t.Errorf("expected blank call bid to round-trip as absent, got %+v", got[1].CallBid)
	}
	if got[1].Strike.Float64() != 105 {
		t.Errorf("expected strike 105, got %v", got[1].Strike.Float64())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	rows := sampleRows()
	var buf bytes.Buffer
	if err := chain.WriteJSON(&buf, "TEST", primitives.MustPositiveFloat(100), "2026-08-21", rows); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	symbol, underlying, expiration, got, err := chain.ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if symbol != "TEST" {
		t.Errorf("expected symbol TEST, got %q", symbol)
	}
	if underlying.Float64() != 100 {
		t.Errorf("expected underlying 100, got %v", underlying.Float64())
	}
	if expiration != "2026-08-21" {
		t.Errorf("expected expiration date to round-trip, got %q", expiration)
	}
	if len(got) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(got))
	}
	if got[1].CallBid.Ok {
		t.Errorf("expected absent call bid to round-trip as absent, got %+v", got[1].CallBid)
	}
}

func TestFilenameRoundTrip(t *testing.T) {
	info := chain.FilenameInfo{
		Symbol:          "SPY",
		ExpirationDate:  time.Date(2026, time.August, 21, 0, 0, 0, 0, time.UTC),
		UnderlyingPrice: primitives.MustPositiveFloat(450.5),
	}
	name := chain.Filename(info, "csv")

	parsed, err := chain.ParseFilename(name)
	if err != nil {
		t.Fatalf("ParseFilename: %v", err)
	}
	if parsed.Symbol != info.Symbol {
		t.Errorf("expected symbol %q, got %q", info.Symbol, parsed.Symbol)
	}
	if !parsed.ExpirationDate.Equal(info.ExpirationDate) {
		t.Errorf("expected expiration %v, got %v", info.ExpirationDate, parsed.ExpirationDate)
	}
	if parsed.UnderlyingPrice.Float64() != info.UnderlyingPrice.Float64() {
		t.Errorf("expected price %v, got %v", info.UnderlyingPrice.Float64(), parsed.UnderlyingPrice.Float64())
	}
}

func TestFilenameToleratesCommaDecimalSeparatorOnRead(t *testing.T) {
	parsed, err := chain.ParseFilename("SPY-21-Aug-2026-450,5.csv")
	if err != nil {
		t.Fatalf("ParseFilename: %v", err)
	}
	if parsed.UnderlyingPrice.Float64() != 450.5 {
		t.Errorf("expected price 450.5, got %v", parsed.UnderlyingPrice.Float64())
	}

	// Filename never emits ',' itself, even when parsed from one.
	rendered := chain.Filename(parsed, "csv")
	if bytes.ContainsAny([]byte(rendered), ",") {
		t.Errorf("expected rendered filename to use '.' only, got %q", rendered)
	}
}

func TestFilterLiquidAndStrikeRange(t *testing.T) {
	rows := sampleRows()
	liquid := chain.FilterLiquid(rows, primitives.MustPositiveFloat(1000))
	if len(liquid) != 1 {
		t.Fatalf("expected 1 liquid row, got %d", len(liquid))
	}

	ranged := chain.FilterStrikeRange(rows, primitives.MustPositiveFloat(100), primitives.MustPositiveFloat(110))
	if len(ranged) != 1 || ranged[0].Strike.Float64() != 105 {
		t.Fatalf("expected single row at strike 105, got %+v", ranged)
	}
}

func TestRowMidRequiresBothSides(t *testing.T) {
	rows := sampleRows()
	if _, ok := rows[0].Mid(options.Call); !ok {
		t.Error("expected call mid to be available when both bid and ask are set")
	}
	if _, ok := rows[1].Mid(options.Call); ok {
		t.Error("expected call mid to be unavailable when bid/ask are blank")
	}
}
