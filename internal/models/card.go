package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Card represents a named debt account.
//
// Balance is the starting snapshot of the debt and is never reduced in
// place; the remaining balance is derived from earmarked payments.
type Card struct {
	// ID is the unique identifier for the card (UUID format).
	ID string `json:"id"`

	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`

	CreatedAt int64 `json:"created_at"`
}

// Validate checks the card's fields.
func (c Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.Balance.IsNegative() {
		return ErrInvalidBalance
	}
	return nil
}
