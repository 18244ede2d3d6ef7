package services

import (
	"math"
	"strconv"
	"strings"
)

// ParseUnitPrice converts a localized unit-price label such as
// "101,37 ₺/kg" into a comparable number. The source locale uses the
// comma as decimal separator; every other non-digit rune (currency,
// unit, thousands dot) is stripped. Absent or unparseable labels map to
// +Inf so they always sort after real prices. The function is total and
// never fails.
func ParseUnitPrice(label string) float64 {
	var b strings.Builder
	for _, r := range label {
		if (r >= '0' && r <= '9') || r == ',' {
			b.WriteRune(r)
		}
	}

	cleaned := strings.ReplaceAll(b.String(), ",", ".")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}
