package domain

import "math"

// CentTolerance is the fixed rounding tolerance for settlement comparisons
const CentTolerance = 0.01

// RoundCents rounds a dollar amount to the nearest cent
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// AmountsMatch reports whether two dollar amounts are the same number of
// cents. Comparing rounded cents absorbs float noise without letting a real
// one-cent short payment through.
func AmountsMatch(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}
