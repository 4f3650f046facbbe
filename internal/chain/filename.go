package chain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/optionstrat/optionstratlib-go/internal/primitives"
)

// FilenameInfo is the parsed form of the {symbol}-{DD}-{MMM}-{YYYY}-{price}
// convention. The canonical decimal separator for the price field is '.';
// ',' is accepted on read for locale tolerance but is never emitted on write.
type FilenameInfo struct {
	Symbol          string
	ExpirationDate  time.Time
	UnderlyingPrice primitives.Positive
}

var filenameMonths = [...]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// ParseFilename parses "{symbol}-{DD}-{MMM}-{YYYY}-{price}.{csv|json}". A
// trailing ".csv" or ".json" is stripped here; what remains must split into
// exactly 5 hyphen-delimited fields, so a symbol containing '-' is rejected.
func ParseFilename(name string) (FilenameInfo, error) {
	base := strings.TrimSuffix(strings.TrimSuffix(name, ".csv"), ".json")
	parts := strings.Split(base, "-")
	if len(parts) != 5 {
		return FilenameInfo{}, fmt.Errorf("parse chain filename %q: expected symbol-DD-MMM-YYYY-price", name)
	}
	symbol, dayStr, monStr, yearStr, priceStr := parts[0], parts[1], parts[2], parts[3], parts[4]

	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return FilenameInfo{}, fmt.Errorf("parse chain filename %q: day: %w", name, err)
	}
	month, err := parseMonth(monStr)
	if err != nil {
		return FilenameInfo{}, fmt.Errorf("parse chain filename %q: %w", name, err)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return FilenameInfo{}, fmt.Errorf("parse chain filename %q: year: %w", name, err)
	}

	// Tolerate both '.' and ',' as the decimal separator on read.
	normalizedPrice := strings.Replace(priceStr, ",", ".", 1)
	price, err := strconv.ParseFloat(normalizedPrice, 64)
	if err != nil {
		return FilenameInfo{}, fmt.Errorf("parse chain filename %q: price: %w", name, err)
	}
	underlying, err := primitives.NewPositiveFromFloat(price)
	if err != nil {
		return FilenameInfo{}, fmt.Errorf("parse chain filename %q: %w", name, err)
	}

	return FilenameInfo{
		Symbol:          symbol,
		ExpirationDate:  time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		UnderlyingPrice: underlying,
	}, nil
}

func parseMonth(s string) (int, error) {
	for i, m := range filenameMonths {
		if strings.EqualFold(m, s) {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unrecognized month %q", s)
}

// Filename renders a FilenameInfo back to the canonical form, always using
// '.' as the decimal separator, with the given extension ("csv" or "json").
func Filename(info FilenameInfo, extension string) string {
	month := filenameMonths[info.ExpirationDate.Month()-1]
	return fmt.Sprintf("%s-%02d-%s-%04d-%s.%s",
		info.Symbol, info.ExpirationDate.Day(), month, info.ExpirationDate.Year(),
		info.UnderlyingPrice.String(), extension)
}
