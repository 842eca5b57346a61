package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// ParseAmount coerces a monetary or percentage value persisted as decimal
// text. Malformed or empty input yields zero, so a bad stored amount
// contributes nothing to any sum that consumes it.
func ParseAmount(s string) decimal.Decimal {
	return ParseAmountOr(s, decimal.Zero)
}

// ParseAmountOr is ParseAmount with an explicit fallback
func ParseAmountOr(s string, fallback decimal.Decimal) decimal.Decimal {
	if s == "" {
		return fallback
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fallback
	}
	return d
}

// ClampPercent clamps a percentage to [0,100], mapping non-finite input to 0
func ClampPercent(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Max(0, math.Min(100, f))
}

// SafeProgress returns invested/target as a percentage clamped to [0,100].
// A target of zero or less yields 0 (a goal without a meaningful target has
// no progress, and the division is never attempted).
func SafeProgress(invested, target decimal.Decimal) float64 {
	if target.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	p := invested.Div(target).InexactFloat64() * 100
	return ClampPercent(p)
}

// Percent returns part/whole as a percentage, 0 when whole is zero or less
func Percent(part, whole decimal.Decimal) float64 {
	if whole.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return part.Div(whole).InexactFloat64() * 100
}
