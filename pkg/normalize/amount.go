package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// amountStrip removes every character that cannot appear in a price amount.
var amountStrip = regexp.MustCompile(`[^\d,.\-]`)

// leadingFloat matches the longest float at the start of a stripped amount,
// so trailing garbage like a second dot is ignored ("1.234.56" → "1.234").
var leadingFloat = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)

// ParseAmount converts a loosely formatted price such as "17,90 €" into a
// number. The first comma is treated as the decimal separator, so European
// prices with thousands separators ("1.234,56 €") parse as 1.234.
// Empty or unparseable input yields 0.
func ParseAmount(text string) float64 {
	if text == "" {
		return 0
	}

	cleaned := amountStrip.ReplaceAllString(text, "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)

	match := leadingFloat.FindString(cleaned)
	if match == "" {
		return 0
	}

	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
