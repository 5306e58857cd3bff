package calculator

import (
	"testing"

	"github.com/mmynk/paydown/internal/models"
)

func TestTotalDebt(t *testing.T) {
	cards := []models.Card{{ID: "c1", Balance: d("1000")}, {ID: "c2", Balance: d("500")}}

	if got := TotalDebt(cards, d("0")); !got.Equal(d("1500")) {
		t.Errorf("TotalDebt(cards) = %s, want 1500", got)
	}
	if got := TotalDebt(cards, d("9999")); !got.Equal(d("1500")) {
		t.Errorf("legacy total should be ignored with cards, got %s", got)
	}
	if got := TotalDebt(nil, d("800")); !got.Equal(d("800")) {
		t.Errorf("TotalDebt(no cards) = %s, want 800", got)
	}
}

func TestRemainingDebt(t *testing.T) {
	cards := []models.Card{{ID: "c1", Balance: d("1000")}, {ID: "c2", Balance: d("500")}}

	tests := []struct {
		name     string
		cards    []models.Card
		payments []models.Payment
		legacy   string
		want     string
	}{
		{
			name:  "earmarked payments reduce their cards",
			cards: cards,
			payments: []models.Payment{
				{Amount: d("200"), CardID: "c1"},
				{Amount: d("100"), CardID: "c2"},
			},
			want: "1200",
		},
		{
			name:  "unearmarked payments reduce no card",
			cards: cards,
			payments: []models.Payment{
				{Amount: d("200"), CardID: "c1"},
				{Amount: d("300")},
			},
			want: "1300",
		},
		{
			name:  "overpayment clamps at zero and does not roll over",
			cards: cards,
			payments: []models.Payment{
				{Amount: d("1500"), CardID: "c1"},
			},
			want: "500",
		},
		{
			name:  "payments to a deleted card are ignored",
			cards: cards,
			payments: []models.Payment{
				{Amount: d("250"), CardID: "gone"},
			},
			want: "1500",
		},
		{
			name:     "legacy mode subtracts every payment",
			payments: []models.Payment{{Amount: d("200"), CardID: "whatever"}, {Amount: d("100")}},
			legacy:   "800",
			want:     "500",
		},
		{
			name:     "legacy mode floors at zero",
			payments: []models.Payment{{Amount: d("1000")}},
			legacy:   "800",
			want:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			legacy := tt.legacy
			if legacy == "" {
				legacy = "0"
			}
			got := RemainingDebt(tt.cards, tt.payments, d(legacy))
			if !got.Equal(d(tt.want)) {
				t.Errorf("RemainingDebt() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestContributedToCard(t *testing.T) {
	payments := []models.Payment{
		{Amount: d("10.10"), CardID: "c1"},
		{Amount: d("5.05"), CardID: "c1"},
		{Amount: d("7"), CardID: "c2"},
		{Amount: d("3")},
	}
	if got := ContributedToCard(payments, "c1"); !got.Equal(d("15.15")) {
		t.Errorf("ContributedToCard(c1) = %s, want 15.15", got)
	}
	if got := ContributedToCard(payments, "c3"); !got.IsZero() {
		t.Errorf("ContributedToCard(c3) = %s, want 0", got)
	}
}

func TestCalculateDebt(t *testing.T) {
	cards := []models.Card{{ID: "c1", Name: "Visa", Balance: d("1000")}, {ID: "c2", Name: "Amex", Balance: d("500")}}
	payments := []models.Payment{
		{Amount: d("250"), CardID: "c1", Source: models.SourceSavings},
		{Amount: d("600"), CardID: "c2", Source: models.SourceTrading},
		{Amount: d("40"), Source: models.SourceBetting},
	}

	got := CalculateDebt(cards, payments, d("0"))

	if got.Legacy {
		t.Error("Legacy = true with cards present")
	}
	if !got.Total.Equal(d("1500")) || !got.Remaining.Equal(d("750")) || !got.Paid.Equal(d("750")) {
		t.Errorf("total/remaining/paid = %s/%s/%s, want 1500/750/750", got.Total, got.Remaining, got.Paid)
	}
	if got.ProgressPct != 50 {
		t.Errorf("ProgressPct = %d, want 50", got.ProgressPct)
	}
	if len(got.Cards) != 2 {
		t.Fatalf("expected 2 card breakdowns, got %d", len(got.Cards))
	}

	amex := got.Cards[1]
	if !amex.Contributed.Equal(d("600")) {
		t.Errorf("Amex contributed = %s, want 600", amex.Contributed)
	}
	if !amex.Paid.Equal(d("500")) || !amex.Remaining.IsZero() || amex.ProgressPct != 100 {
		t.Errorf("Amex = paid %s remaining %s pct %d, want 500/0/100", amex.Paid, amex.Remaining, amex.ProgressPct)
	}
}

func TestCalculateDebtLegacy(t *testing.T) {
	got := CalculateDebt(nil, []models.Payment{{Amount: d("200")}}, d("800"))

	if !got.Legacy {
		t.Error("Legacy = false with no cards")
	}
	if !got.Paid.Equal(d("200")) || got.ProgressPct != 25 {
		t.Errorf("paid/pct = %s/%d, want 200/25", got.Paid, got.ProgressPct)
	}
	if len(got.Cards) != 0 {
		t.Errorf("expected no card breakdowns, got %d", len(got.Cards))
	}
}

func TestCalculateSourceTotals(t *testing.T) {
	payments := []models.Payment{
		{Amount: d("10"), Source: models.SourceBetting},
		{Amount: d("20.5"), Source: models.SourceTrading},
		{Amount: d("30"), Source: models.SourceSavings},
		{Amount: d("5"), Source: models.SourceBetting},
	}

	got := CalculateSourceTotals(payments)

	if !got.Betting.Equal(d("15")) || !got.Trading.Equal(d("20.5")) || !got.Savings.Equal(d("30")) {
		t.Errorf("totals = %s/%s/%s, want 15/20.5/30", got.Betting, got.Trading, got.Savings)
	}
	if !got.Total.Equal(d("65.5")) {
		t.Errorf("Total = %s, want 65.5", got.Total)
	}
}
