// Package milestone converts accumulated betting profit into debt payments.
//
// Two paths share the per-milestone amount but not their bookkeeping:
//
//   - Evaluate fires automatically once available profit crosses whole
//     multiples of the target profit. A persisted counter records how many
//     multiples were already converted, so re-evaluating the same state
//     never fires twice.
//   - BankNow is a manual one-shot transfer that ignores the counter.
package milestone

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/paydown/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrNothingToBank is returned when target profit or bank percent make
	// the per-milestone amount zero.
	ErrNothingToBank = errors.New("nothing to bank: per-milestone amount is zero")

	// ErrInsufficientProfit is returned by BankNow when available profit
	// does not cover one milestone.
	ErrInsufficientProfit = errors.New("available profit is below the per-milestone amount")
)

const (
	autoNote   = "Auto-bank milestone"
	manualNote = "Manual bank"
)

var hundred = decimal.NewFromInt(100)

// Result is the outcome of one evaluation.
type Result struct {
	// Payment is the payment to record, nil when nothing fired.
	Payment *models.Payment

	// Counter is the milestone counter to persist with the payment.
	Counter int

	// Crossed is the number of milestones converted by this evaluation.
	Crossed int
}

// Fired reports whether the evaluation produced a payment.
func (r Result) Fired() bool {
	return r.Payment != nil
}

// AmountPerMilestone is round(target × percent / 100, 2).
func AmountPerMilestone(s models.Settings) decimal.Decimal {
	return s.TargetProfit.Mul(s.BankPercentOnTarget).Div(hundred).Round(2)
}

// NextThreshold is the available profit at which the next milestone fires,
// or zero when Evaluate would never fire.
func NextThreshold(s models.Settings, counter int) decimal.Decimal {
	if !active(s) {
		return decimal.Zero
	}
	return s.TargetProfit.Mul(decimal.NewFromInt(int64(counter + 1)))
}

// Evaluate checks available profit against the milestone counter.
//
// Algorithm:
// - Disabled auto-bank, or a non-positive target or percent, is a no-op
// - multiples = floor(available / target); nothing fires unless it exceeds counter
// - The payment covers every newly crossed milestone at once and is
// earmarked to the configured card, the first card, or nothing
// - The returned counter becomes multiples
//
// Available profit must already exclude everything banked from betting.
func Evaluate(settings models.Settings, cards []models.Card, available decimal.Decimal, counter int, today time.Time) Result {
	noop := Result{Counter: counter}

	if !active(settings) {
		return noop
	}

	multiples := floorDiv(available, settings.TargetProfit)
	if multiples <= counter {
		return noop
	}

	crossed := multiples - counter
	total := AmountPerMilestone(settings).Mul(decimal.NewFromInt(int64(crossed))).Round(2)
	if !total.IsPositive() {
		return noop
	}

	return Result{
		Payment: &models.Payment{
			Date:   models.DateOf(today),
			Amount: total,
			Source: models.SourceBetting,
			Note:   autoNote,
			CardID: earmark(settings, cards),
		},
		Counter: multiples,
		Crossed: crossed,
	}
}

// Apply records a fired result on the snapshot: the payment and the counter
// move together. The counter never decreases.
func Apply(s *models.Snapshot, r Result) {
	if !r.Fired() {
		return
	}
	s.Payments = append(s.Payments, *r.Payment)
	if r.Counter > s.MilestoneCounter {
		s.MilestoneCounter = r.Counter
	}
}

// BankNow moves one milestone's worth of profit into the payoff pool,
// provided enough profit is available. The milestone counter is untouched,
// so auto-bank may still fire later for the same multiple.
func BankNow(settings models.Settings, cards []models.Card, available decimal.Decimal, today time.Time) (models.Payment, error) {
	amount := AmountPerMilestone(settings)
	if !amount.IsPositive() {
		return models.Payment{}, ErrNothingToBank
	}
	if available.LessThan(amount) {
		return models.Payment{}, fmt.Errorf("%w: %s available, %s needed", ErrInsufficientProfit, available.StringFixed(2), amount.StringFixed(2))
	}

	return models.Payment{
		Date:   models.DateOf(today),
		Amount: amount,
		Source: models.SourceBetting,
		Note:   manualNote,
		CardID: earmark(settings, cards),
	}, nil
}

// active reports whether auto-bank is on and a milestone banks a
// positive amount.
func active(s models.Settings) bool {
	return s.AutoBankEnabled && s.TargetProfit.IsPositive() && s.BankPercentOnTarget.IsPositive()
}

// earmark picks the card for a banked payment: the configured card if it
// still exists, else the first card, else none.
func earmark(settings models.Settings, cards []models.Card) string {
	if c, ok := models.FindCard(cards, settings.AutoBankCardID); ok {
		return c.ID
	}
	if len(cards) > 0 {
		return cards[0].ID
	}
	return ""
}

// floorDiv returns floor(a / b) for positive b.
func floorDiv(a, b decimal.Decimal) int {
	q, r := a.QuoRem(b, 0)
	if r.IsNegative() {
		q = q.Sub(decimal.NewFromInt(1))
	}
	return int(q.IntPart())
}
