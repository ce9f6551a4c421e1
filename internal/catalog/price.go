package catalog

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// currencyMarks are stripped from price strings before parsing
var currencyMarks = []string{"€", "$", "&euro;", "&#8364;", `\u20ac`}

// ParsePrice parses a scraped price string such as "19,99€" or "$1,299.00".
// A comma without a dot is a decimal separator; otherwise commas are thousands
// separators. The boolean is false when the input is not a finite number.
func ParsePrice(s string) (float64, bool) {
	for _, mark := range currencyMarks {
		s = strings.ReplaceAll(s, mark, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = strings.ReplaceAll(s, ",", "")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

// priceField reads a raw price that may be a number or a string
func priceField(v any) *float64 {
	switch p := v.(type) {
	case nil, bool:
		return nil
	case string:
		if f, ok := ParsePrice(p); ok {
			return &f
		}
		return nil
	default:
		f, err := cast.ToFloat64E(p)
		if err != nil || !isFinite(f) {
			return nil
		}
		return &f
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
