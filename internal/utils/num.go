package utils

import (
	"math"
	"strconv"
	"strings"
)

// разделители разрядов: запятая, NBSP, узкий NBSP, тонкий пробел
var groupSep = strings.NewReplacer(",", "", "\u00A0", "", "\u202F", "", "\u2009", "")

// ParseMetric парсит ячейку показателя: "1,234" -> 1234, "" -> false.
// NaN и ±Inf считаются нечисловыми.
func ParseMetric(s string) (float64, bool) {
	s = strings.TrimSpace(groupSep.Replace(s))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseBound parses an optional filter bound; "" means unset.
func ParseBound(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	f, ok := ParseMetric(s)
	if !ok {
		return nil, false
	}
	return &f, true
}
