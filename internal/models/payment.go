package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source is the income stream a payment was funded from.
type Source string

const (
	SourceBetting Source = "betting"
	SourceTrading Source = "trading"
	SourceSavings Source = "savings"
)

// Sources lists every income stream in display order.
var Sources = []Source{SourceBetting, SourceTrading, SourceSavings}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	switch s {
	case SourceBetting, SourceTrading, SourceSavings:
		return true
	}
	return false
}

// Payment represents money moved into the debt payoff pool.
// Payments are immutable once created; they can only be deleted.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string `json:"id"`

	// Date is the calendar day of the payment (YYYY-MM-DD).
	Date string `json:"date"`

	Amount decimal.Decimal `json:"amount"`
	Source Source          `json:"source"`
	Note   string          `json:"note,omitempty"`

	// CardID earmarks the payment to one card. Empty means unearmarked:
	// the payment counts toward global totals only.
	CardID string `json:"card_id,omitempty"`

	CreatedAt int64 `json:"created_at"`
}

// Validate checks the payment's fields.
func (p Payment) Validate() error {
	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return ErrInvalidDate
	}
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !p.Source.Valid() {
		return ErrInvalidSource
	}
	return nil
}
