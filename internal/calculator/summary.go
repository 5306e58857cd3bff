package calculator

import (
	"github.com/mmynk/paydown/internal/models"
	"github.com/shopspring/decimal"
)

// Summary is the dashboard view of a snapshot.
type Summary struct {
	Bets    BetStats     `json:"bets"`
	Debt    DebtSummary  `json:"debt"`
	Sources SourceTotals `json:"sources"`

	// BankedFromBetting is every betting-sourced payment, automatic or manual.
	BankedFromBetting decimal.Decimal `json:"banked_from_betting"`

	// AvailableProfit is betting profit not yet moved into the payoff pool.
	AvailableProfit decimal.Decimal `json:"available_profit"`

	Bankroll     decimal.Decimal `json:"bankroll"`
	ChallengePct int             `json:"challenge_pct"`

	MilestoneCounter int `json:"milestone_counter"`
}

// Summarize recomputes every derived figure from a snapshot.
func Summarize(s *models.Snapshot) Summary {
	settings := s.Settings

	stats := CalculateBetStats(s.Bets, settings.TargetProfit)
	sources := CalculateSourceTotals(s.Payments)
	bankroll := roundMoney(settings.StartingBankroll.Add(stats.Profit))

	return Summary{
		Bets:              stats,
		Debt:              CalculateDebt(s.Cards, s.Payments, settings.LegacyDebtTotal),
		Sources:           sources,
		BankedFromBetting: sources.Betting,
		AvailableProfit:   AvailableProfit(stats.Profit, sources.Betting),
		Bankroll:          bankroll,
		ChallengePct:      ChallengeProgress(bankroll, settings.ChallengeStartStake, settings.ChallengeTargetStake),
		MilestoneCounter:  s.MilestoneCounter,
	}
}

// AvailableProfit is betting profit minus what has already been banked from
// it, so money extracted by a manual bank is never counted twice.
func AvailableProfit(bettingProfit, bankedFromBetting decimal.Decimal) decimal.Decimal {
	return roundMoney(bettingProfit.Sub(bankedFromBetting))
}
