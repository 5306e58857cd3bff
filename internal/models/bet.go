package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the format of every calendar date in the ledger.
const DateLayout = "2006-01-02"

// BetStatus is the settlement state of a bet.
type BetStatus string

const (
	BetPending BetStatus = "pending"
	BetWon     BetStatus = "won"
	BetLost    BetStatus = "lost"
)

// Valid reports whether s is a known status.
func (s BetStatus) Valid() bool {
	switch s {
	case BetPending, BetWon, BetLost:
		return true
	}
	return false
}

// BetCategory groups bets for display.
type BetCategory string

const (
	CategorySingle      BetCategory = "single"
	CategoryAccumulator BetCategory = "accumulator"
	CategoryBetBuilder  BetCategory = "bet_builder"
	CategoryOther       BetCategory = "other"
)

// Valid reports whether c is a known category.
func (c BetCategory) Valid() bool {
	switch c {
	case CategorySingle, CategoryAccumulator, CategoryBetBuilder, CategoryOther:
		return true
	}
	return false
}

// Bet represents a single wagered event.
type Bet struct {
	// ID is the unique identifier for the bet (UUID format).
	ID string `json:"id"`

	// Date is the calendar day the bet was placed (YYYY-MM-DD).
	Date string `json:"date"`

	Description string      `json:"description"`
	Category    BetCategory `json:"category"`

	// Stake is the amount wagered.
	Stake decimal.Decimal `json:"stake"`

	// Odds is the decimal odds multiplier, 2.0 doubles the stake.
	Odds decimal.Decimal `json:"odds"`

	Status BetStatus `json:"status"`

	// ReturnOverride, when valid, replaces the computed return. It models
	// cash-outs and manual corrections.
	ReturnOverride decimal.NullDecimal `json:"return_override"`

	// SettledAt is the Unix timestamp of the transition out of pending.
	// Nil while the bet is pending.
	SettledAt *int64 `json:"settled_at"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Settled reports whether the bet has been resolved as won or lost.
func (b Bet) Settled() bool {
	return b.Status != BetPending
}

// SetStatus moves the bet to status and maintains SettledAt: leaving pending
// stamps it with now, switching between won and lost keeps the first stamp,
// and going back to pending clears it.
func (b *Bet) SetStatus(status BetStatus, now time.Time) {
	switch {
	case status == BetPending:
		b.SettledAt = nil
	case b.SettledAt == nil:
		ts := now.Unix()
		b.SettledAt = &ts
	}
	b.Status = status
}

// Validate checks the bet's fields.
func (b Bet) Validate() error {
	if _, err := time.Parse(DateLayout, b.Date); err != nil {
		return ErrInvalidDate
	}
	if b.Stake.IsNegative() {
		return ErrInvalidStake
	}
	if b.Odds.LessThan(decimal.NewFromInt(1)) {
		return ErrInvalidOdds
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	if !b.Category.Valid() {
		return ErrInvalidCategory
	}
	if b.ReturnOverride.Valid && b.ReturnOverride.Decimal.IsNegative() {
		return ErrInvalidReturn
	}
	if len(strings.TrimSpace(b.Description)) > 200 {
		return ErrDescriptionTooLong
	}
	return nil
}

// DateOf formats t as a ledger date.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
