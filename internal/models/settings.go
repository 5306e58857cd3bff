package models

import "github.com/shopspring/decimal"

// Settings holds the user-editable ledger configuration.
type Settings struct {
	// LegacyDebtTotal is the single undifferentiated debt figure used
	// while no cards exist.
	LegacyDebtTotal decimal.Decimal `json:"legacy_debt_total"`

	// StartingBankroll is the betting bankroll before any settled bet.
	StartingBankroll decimal.Decimal `json:"starting_bankroll"`

	// TargetProfit is the size of one milestone.
	TargetProfit decimal.Decimal `json:"target_profit"`

	// BankPercentOnTarget is the share of TargetProfit, in percent, moved
	// into the payoff pool for each milestone.
	BankPercentOnTarget decimal.Decimal `json:"bank_percent_on_target"`

	AutoBankEnabled bool `json:"auto_bank_enabled"`

	// AutoBankCardID is the default card for auto-banked payments.
	AutoBankCardID string `json:"auto_bank_card_id,omitempty"`

	ChallengeStartStake  decimal.Decimal `json:"challenge_start_stake"`
	ChallengeTargetStake decimal.Decimal `json:"challenge_target_stake"`
}

// DefaultSettings returns the settings of a fresh ledger. Persistence
// backends substitute these for missing or unreadable fields.
func DefaultSettings() Settings {
	return Settings{
		LegacyDebtTotal:      decimal.Zero,
		StartingBankroll:     decimal.Zero,
		TargetProfit:         decimal.NewFromInt(100),
		BankPercentOnTarget:  decimal.NewFromInt(50),
		AutoBankEnabled:      false,
		ChallengeStartStake:  decimal.NewFromInt(5),
		ChallengeTargetStake: decimal.NewFromInt(100),
	}
}

// Validate checks the settings' ranges. A zero TargetProfit is allowed and
// disables milestones.
func (s Settings) Validate() error {
	for _, v := range []decimal.Decimal{
		s.LegacyDebtTotal,
		s.StartingBankroll,
		s.TargetProfit,
		s.ChallengeStartStake,
		s.ChallengeTargetStake,
	} {
		if v.IsNegative() {
			return ErrNegativeSetting
		}
	}
	if s.BankPercentOnTarget.IsNegative() || s.BankPercentOnTarget.GreaterThan(decimal.NewFromInt(100)) {
		return ErrInvalidPercent
	}
	return nil
}
