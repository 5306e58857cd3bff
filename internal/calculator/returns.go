package calculator

import (
	"github.com/mmynk/paydown/internal/models"
	"github.com/shopspring/decimal"
)

// ResolutionKind tells how a bet's return was obtained.
type ResolutionKind int

const (
	// ReturnUnresolved means the bet is pending and has no return yet.
	ReturnUnresolved ResolutionKind = iota
	// ReturnComputed means the return was derived from status, stake and odds.
	ReturnComputed
	// ReturnOverridden means a manual override was used.
	ReturnOverridden
)

func (k ResolutionKind) String() string {
	switch k {
	case ReturnComputed:
		return "computed"
	case ReturnOverridden:
		return "overridden"
	default:
		return "unresolved"
	}
}

// Resolution is the realized return of one bet.
type Resolution struct {
	Kind   ResolutionKind
	Amount decimal.Decimal // zero when Kind is ReturnUnresolved
}

// Value returns the amount and whether the bet is resolved.
func (r Resolution) Value() (decimal.Decimal, bool) {
	return r.Amount, r.Kind != ReturnUnresolved
}

// NullDecimal collapses the resolution to an optional amount.
func (r Resolution) NullDecimal() decimal.NullDecimal {
	if r.Kind == ReturnUnresolved {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(r.Amount)
}

// Resolve computes the return of a bet.
//
// Precedence:
//  1. a return override wins regardless of status
//  2. won: stake × odds, rounded to cents
//  3. lost: zero
//  4. pending: unresolved
func Resolve(bet models.Bet) Resolution {
	if bet.ReturnOverride.Valid {
		return Resolution{Kind: ReturnOverridden, Amount: bet.ReturnOverride.Decimal}
	}
	switch bet.Status {
	case models.BetWon:
		return Resolution{Kind: ReturnComputed, Amount: roundMoney(bet.Stake.Mul(bet.Odds))}
	case models.BetLost:
		return Resolution{Kind: ReturnComputed, Amount: decimal.Zero}
	default:
		return Resolution{Kind: ReturnUnresolved}
	}
}

// ReturnOf is Resolve collapsed to an optional amount; invalid means pending.
func ReturnOf(bet models.Bet) decimal.NullDecimal {
	return Resolve(bet).NullDecimal()
}
