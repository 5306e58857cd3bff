package calculator

import (
	"github.com/mmynk/paydown/internal/models"
	"github.com/shopspring/decimal"
)

// CardDebt is the derived state of one card.
type CardDebt struct {
	Card        models.Card     `json:"card"`
	Contributed decimal.Decimal `json:"contributed"` // Σ payments earmarked to the card
	Paid        decimal.Decimal `json:"paid"`        // balance - remaining, never above balance
	Remaining   decimal.Decimal `json:"remaining"`
	ProgressPct int             `json:"progress_pct"`
}

// DebtSummary is the derived state of the whole debt.
type DebtSummary struct {
	// Legacy is true when no cards exist and LegacyDebtTotal is used.
	Legacy bool `json:"legacy"`

	Total       decimal.Decimal `json:"total"`
	Remaining   decimal.Decimal `json:"remaining"`
	Paid        decimal.Decimal `json:"paid"`
	ProgressPct int             `json:"progress_pct"`

	Cards []CardDebt `json:"cards"`
}

// SourceTotals sums payments per income stream.
type SourceTotals struct {
	Betting decimal.Decimal `json:"betting"`
	Trading decimal.Decimal `json:"trading"`
	Savings decimal.Decimal `json:"savings"`
	Total   decimal.Decimal `json:"total"`
}

// ContributedToCard sums the payments earmarked to cardID.
func ContributedToCard(payments []models.Payment, cardID string) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.CardID == cardID {
			sum = sum.Add(p.Amount)
		}
	}
	return roundMoney(sum)
}

// TotalDebt is the sum of card balances, or legacyTotal when there are no cards.
func TotalDebt(cards []models.Card, legacyTotal decimal.Decimal) decimal.Decimal {
	if len(cards) == 0 {
		return roundMoney(legacyTotal)
	}
	sum := decimal.Zero
	for _, c := range cards {
		sum = sum.Add(c.Balance)
	}
	return roundMoney(sum)
}

// RemainingDebt derives what is still owed.
//
// With no cards, every payment reduces legacyTotal, floored at zero.
// With cards, each card owes max(0, balance - earmarked payments);
// unearmarked payments reduce no card and overpaying one card does not
// roll over to another.
func RemainingDebt(cards []models.Card, payments []models.Payment, legacyTotal decimal.Decimal) decimal.Decimal {
	if len(cards) == 0 {
		return roundMoney(floorZero(legacyTotal.Sub(sumPayments(payments))))
	}
	sum := decimal.Zero
	for _, c := range cards {
		sum = sum.Add(cardRemaining(c, payments))
	}
	return roundMoney(sum)
}

// CalculateDebt bundles total, remaining, paid and the per-card breakdown.
func CalculateDebt(cards []models.Card, payments []models.Payment, legacyTotal decimal.Decimal) DebtSummary {
	summary := DebtSummary{
		Legacy:    len(cards) == 0,
		Total:     TotalDebt(cards, legacyTotal),
		Remaining: RemainingDebt(cards, payments, legacyTotal),
		Cards:     make([]CardDebt, 0, len(cards)),
	}
	summary.Paid = summary.Total.Sub(summary.Remaining)
	summary.ProgressPct = percentOf(summary.Paid, summary.Total)

	for _, c := range cards {
		remaining := roundMoney(cardRemaining(c, payments))
		paid := roundMoney(c.Balance.Sub(remaining))
		summary.Cards = append(summary.Cards, CardDebt{
			Card:        c,
			Contributed: ContributedToCard(payments, c.ID),
			Paid:        paid,
			Remaining:   remaining,
			ProgressPct: percentOf(paid, c.Balance),
		})
	}

	return summary
}

// CalculateSourceTotals sums payments per income stream.
func CalculateSourceTotals(payments []models.Payment) SourceTotals {
	totals := SourceTotals{
		Betting: decimal.Zero,
		Trading: decimal.Zero,
		Savings: decimal.Zero,
	}
	for _, p := range payments {
		switch p.Source {
		case models.SourceBetting:
			totals.Betting = totals.Betting.Add(p.Amount)
		case models.SourceTrading:
			totals.Trading = totals.Trading.Add(p.Amount)
		case models.SourceSavings:
			totals.Savings = totals.Savings.Add(p.Amount)
		}
	}
	totals.Betting = roundMoney(totals.Betting)
	totals.Trading = roundMoney(totals.Trading)
	totals.Savings = roundMoney(totals.Savings)
	totals.Total = totals.Betting.Add(totals.Trading).Add(totals.Savings)
	return totals
}

func cardRemaining(c models.Card, payments []models.Payment) decimal.Decimal {
	return floorZero(c.Balance.Sub(ContributedToCard(payments, c.ID)))
}

func sumPayments(payments []models.Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
