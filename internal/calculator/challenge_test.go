package calculator

import (
	"testing"

	"github.com/mmynk/paydown/internal/models"
)

func TestChallengeProgress(t *testing.T) {
	tests := []struct {
		bankroll, start, target string
		want                    int
	}{
		{"5", "5", "100", 0},
		{"100", "5", "100", 100},
		{"52.5", "5", "100", 50},
		{"250", "5", "100", 100}, // over target clamps
		{"1", "5", "100", 0},     // below start clamps
		{"50", "100", "100", 0},  // empty range
		{"50", "100", "20", 0},   // inverted range
	}

	for _, tt := range tests {
		t.Run(tt.bankroll+"/"+tt.start+"-"+tt.target, func(t *testing.T) {
			got := ChallengeProgress(d(tt.bankroll), d(tt.start), d(tt.target))
			if got != tt.want {
				t.Errorf("ChallengeProgress(%s, %s, %s) = %d, want %d", tt.bankroll, tt.start, tt.target, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	snap := models.NewSnapshot()
	snap.Settings.StartingBankroll = d("5")
	snap.Settings.TargetProfit = d("100")
	snap.Bets = []models.Bet{
		{Stake: d("10"), Odds: d("6"), Status: models.BetWon},   // +50
		{Stake: d("2.5"), Odds: d("2"), Status: models.BetLost}, // -2.5
	}
	snap.Payments = []models.Payment{
		{Amount: d("20"), Source: models.SourceBetting},
		{Amount: d("100"), Source: models.SourceSavings},
	}
	snap.Settings.LegacyDebtTotal = d("1000")
	snap.MilestoneCounter = 3

	got := Summarize(snap)

	if !got.Bets.Profit.Equal(d("47.5")) {
		t.Errorf("Profit = %s, want 47.5", got.Bets.Profit)
	}
	if !got.BankedFromBetting.Equal(d("20")) {
		t.Errorf("BankedFromBetting = %s, want 20", got.BankedFromBetting)
	}
	if !got.AvailableProfit.Equal(d("27.5")) {
		t.Errorf("AvailableProfit = %s, want 27.5", got.AvailableProfit)
	}
	if !got.Bankroll.Equal(d("52.5")) {
		t.Errorf("Bankroll = %s, want 52.5", got.Bankroll)
	}
	if got.ChallengePct != 50 {
		t.Errorf("ChallengePct = %d, want 50", got.ChallengePct)
	}
	if !got.Debt.Remaining.Equal(d("880")) {
		t.Errorf("Debt.Remaining = %s, want 880", got.Debt.Remaining)
	}
	if got.MilestoneCounter != 3 {
		t.Errorf("MilestoneCounter = %d, want 3", got.MilestoneCounter)
	}
}
