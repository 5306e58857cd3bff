package calculator

import (
	"github.com/mmynk/paydown/internal/models"
	"github.com/shopspring/decimal"
)

// BetStats holds aggregate performance over settled bets.
type BetStats struct {
	SettledCount int `json:"settled_count"`
	WonCount     int `json:"won_count"`
	HitRatePct   int `json:"hit_rate_pct"`

	TotalStaked  decimal.Decimal `json:"total_staked"`
	TotalReturns decimal.Decimal `json:"total_returns"`
	Profit       decimal.Decimal `json:"profit"`

	// ProgressPct is profit as a share of the target profit, clamped to [0, 100].
	ProgressPct int `json:"progress_pct"`

	PendingCount int             `json:"pending_count"`
	PendingStake decimal.Decimal `json:"pending_stake"`
}

// CalculateBetStats folds bets into aggregate metrics.
//
// Algorithm:
// - Only settled bets (won or lost) count toward stakes, returns and hit rate
// - Profit = returns - staked, rounded to cents
// - Hit rate and progress default to 0 when their denominator is not positive
// - Pending bets are tallied separately as open exposure
func CalculateBetStats(bets []models.Bet, targetProfit decimal.Decimal) BetStats {
	stats := BetStats{
		TotalStaked:  decimal.Zero,
		TotalReturns: decimal.Zero,
		PendingStake: decimal.Zero,
	}

	for _, bet := range bets {
		if !bet.Settled() {
			stats.PendingCount++
			stats.PendingStake = stats.PendingStake.Add(bet.Stake)
			continue
		}

		stats.SettledCount++
		if bet.Status == models.BetWon {
			stats.WonCount++
		}
		stats.TotalStaked = stats.TotalStaked.Add(bet.Stake)

		// settled bets always resolve
		ret, _ := Resolve(bet).Value()
		stats.TotalReturns = stats.TotalReturns.Add(ret)
	}

	stats.TotalStaked = roundMoney(stats.TotalStaked)
	stats.TotalReturns = roundMoney(stats.TotalReturns)
	stats.PendingStake = roundMoney(stats.PendingStake)
	stats.Profit = roundMoney(stats.TotalReturns.Sub(stats.TotalStaked))

	stats.HitRatePct = percentOf(decimal.NewFromInt(int64(stats.WonCount)), decimal.NewFromInt(int64(stats.SettledCount)))
	stats.ProgressPct = percentOf(stats.Profit, targetProfit)

	return stats
}
