package calculator

import "github.com/shopspring/decimal"

// ChallengeProgress places bankroll on the range [startStake, targetStake]
// as a whole percentage clamped to [0, 100]. A range with targetStake at or
// below startStake is misconfigured and yields 0.
func ChallengeProgress(bankroll, startStake, targetStake decimal.Decimal) int {
	span := targetStake.Sub(startStake)
	if !span.IsPositive() {
		return 0
	}
	return percentOf(bankroll.Sub(startStake), span)
}
