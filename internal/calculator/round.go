// Package calculator derives profit, hit rate, debt and progress figures
// from raw ledger records. Every function is pure and order independent.
package calculator

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// roundMoney rounds to cents, half away from zero.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// percentOf returns round(part / whole × 100) clamped to [0, 100].
// A non-positive whole yields 0.
func percentOf(part, whole decimal.Decimal) int {
	if !whole.IsPositive() {
		return 0
	}
	pct := part.Mul(hundred).Div(whole).Round(0).IntPart()
	return clampPercent(pct)
}

func clampPercent(pct int64) int {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}
