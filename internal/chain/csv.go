package chain

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// csvHeader is the canonical column order a Chain CSV file must declare.
var csvHeader = []string{
	"Strike Price", "Call Bid", "Call Ask", "Put Bid", "Put Ask",
	"Implied Volatility", "Delta", "Volume", "Open Interest",
}

// ReadCSV parses a chain CSV body (header + one row per strike) into Rows.
// Blank cells parse as an absent Field rather than zero.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read chain csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	var rows []Row
	for _, rec := range records[1:] {
		if len(rec) < len(csvHeader) {
			return nil, fmt.Errorf("read chain csv: expected %d columns, got %d", len(csvHeader), len(rec))
		}
		strike, err := parseRequiredDecimal(rec[0])
		if err != nil {
			return nil, fmt.Errorf("read chain csv: strike: %w", err)
		}
		row := Row{
			Strike:            primitives.MustPositiveFloat(strike.Float64()),
			CallBid:           parseField(rec[1]),
			CallAsk:           parseField(rec[2]),
			PutBid:            parseField(rec[3]),
			PutAsk:            parseField(rec[4]),
			ImpliedVolatility: parseField(rec[5]),
			Delta:             parseField(rec[6]),
			Volume:            parseField(rec[7]),
			OpenInterest:      parseField(rec[8]),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV renders rows back out in the canonical column order.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write chain csv: %w", err)
	}
	for _, row := range rows {
		rec := []string{
			row.Strike.String(),
			renderField(row.CallBid),
			renderField(row.CallAsk),
			renderField(row.PutBid),
			renderField(row.PutAsk),
			renderField(row.ImpliedVolatility),
			renderField(row.Delta),
			renderField(row.Volume),
			renderField(row.OpenInterest),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write chain csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseField(s string) Field {
	s = strings.TrimSpace(s)
	if s == "" {
		return Field{}
	}
	d, err := parseRequiredDecimal(s)
	if err != nil {
		return Field{}
	}
	return some(d)
}

func parseRequiredDecimal(s string) (primitives.Decimal, error) {
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return primitives.Decimal{}, err
	}
	return primitives.NewDecimalFromFloat(f), nil
}

func renderField(f Field) string {
	if !f.Ok {
		return ""
	}
	return f.Value.String()
}
