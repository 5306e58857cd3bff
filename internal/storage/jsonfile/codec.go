package jsonfile

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/paydown/internal/models"
)

// formatVersion is written to every document.
const formatVersion = 1

// document is the on-disk shape. Records are kept raw so that one malformed
// entry does not take the rest of the ledger down with it.
type document struct {
	Version          int               `json:"version"`
	Bets             []json.RawMessage `json:"bets"`
	Payments         []json.RawMessage `json:"payments"`
	Cards            []json.RawMessage `json:"cards"`
	Settings         json.RawMessage   `json:"settings"`
	MilestoneCounter json.RawMessage   `json:"milestone_counter"`
}

// Encode renders a snapshot as indented JSON. Optional fields are written
// as explicit nulls.
func Encode(snap *models.Snapshot) ([]byte, error) {
	out := struct {
		Version int `json:"version"`
		*models.Snapshot
	}{formatVersion, snap}
	return json.MarshalIndent(out, "", "  ")
}

// Decode parses a document and never fails. Anything unreadable is replaced
// by its default and reported through logger:
//
//   - an unparseable document yields models.NewSnapshot()
//   - every record and settings field is decoded on its own; a field that
//     cannot be read keeps its zero value (settings: models.DefaultSettings())
//   - records that are not objects, or have no id, are dropped
//   - unknown bet statuses become pending, unknown categories become other,
//     odds below 1 become 1, negative money becomes 0 (a negative return
//     override becomes null) and unknown payment sources become savings
//   - a missing or negative milestone counter becomes 0
func Decode(data []byte, logger *slog.Logger) *models.Snapshot {
	snap := models.NewSnapshot()

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn("Snapshot unreadable, starting from defaults", "error", err)
		return snap
	}

	snap.Settings = decodeSettings(doc.Settings, logger)

	for i, raw := range doc.Cards {
		if c, ok := decodeCard(raw, i, logger); ok {
			snap.Cards = append(snap.Cards, c)
		}
	}
	for i, raw := range doc.Bets {
		if b, ok := decodeBet(raw, i, logger); ok {
			snap.Bets = append(snap.Bets, b)
		}
	}
	for i, raw := range doc.Payments {
		if p, ok := decodePayment(raw, i, logger); ok {
			snap.Payments = append(snap.Payments, p)
		}
	}

	if len(doc.MilestoneCounter) > 0 {
		var counter int
		if err := json.Unmarshal(doc.MilestoneCounter, &counter); err != nil || counter < 0 {
			logger.Warn("Invalid milestone counter, using 0", "raw", string(doc.MilestoneCounter))
		} else {
			snap.MilestoneCounter = counter
		}
	}

	return snap
}

// setter decodes one JSON value into a field.
type setter func(json.RawMessage) error

// into returns a setter that assigns dst only when the value decodes.
func into[T any](dst *T) setter {
	return func(raw json.RawMessage) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// decodeFields applies each setter to its key in the object raw. Missing,
// null and unreadable values leave the field as it was. It fails only when
// raw is not an object.
func decodeFields(raw json.RawMessage, setters map[string]setter, log func(key string, err error)) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}
	if fields == nil {
		return errors.New("record is null")
	}
	for key, set := range setters {
		value, ok := fields[key]
		if !ok || string(value) == "null" {
			continue
		}
		if err := set(value); err != nil {
			log(key, err)
		}
	}
	return nil
}

// decodeRecord decodes one record field by field and reports whether it has
// an id to keep it by.
func decodeRecord(kind string, index int, raw json.RawMessage, id *string, setters map[string]setter, logger *slog.Logger) bool {
	setters["id"] = into(id)
	err := decodeFields(raw, setters, func(key string, err error) {
		logger.Warn("Invalid "+kind+" field, using default", "index", index, "field", key, "error", err)
	})
	if err != nil {
		logger.Warn("Dropping malformed "+kind, "index", index, "error", err)
		return false
	}
	if *id == "" {
		logger.Warn("Dropping "+kind+" without id", "index", index)
		return false
	}
	return true
}

func decodeCard(raw json.RawMessage, index int, logger *slog.Logger) (models.Card, bool) {
	var c models.Card
	ok := decodeRecord("card", index, raw, &c.ID, map[string]setter{
		"name":       into(&c.Name),
		"balance":    into(&c.Balance),
		"created_at": into(&c.CreatedAt),
	}, logger)
	if !ok {
		return c, false
	}
	if c.Balance.IsNegative() {
		logger.Warn("Negative card balance, using 0", "card_id", c.ID, "balance", c.Balance)
		c.Balance = decimal.Zero
	}
	return c, true
}

func decodeBet(raw json.RawMessage, index int, logger *slog.Logger) (models.Bet, bool) {
	var b models.Bet
	ok := decodeRecord("bet", index, raw, &b.ID, map[string]setter{
		"date":            into(&b.Date),
		"description":     into(&b.Description),
		"category":        into(&b.Category),
		"stake":           into(&b.Stake),
		"odds":            into(&b.Odds),
		"status":          into(&b.Status),
		"return_override": into(&b.ReturnOverride),
		"settled_at":      into(&b.SettledAt),
		"created_at":      into(&b.CreatedAt),
		"updated_at":      into(&b.UpdatedAt),
	}, logger)
	if !ok {
		return b, false
	}
	return normalizeBet(b, logger), true
}

func decodePayment(raw json.RawMessage, index int, logger *slog.Logger) (models.Payment, bool) {
	var p models.Payment
	ok := decodeRecord("payment", index, raw, &p.ID, map[string]setter{
		"date":       into(&p.Date),
		"amount":     into(&p.Amount),
		"source":     into(&p.Source),
		"note":       into(&p.Note),
		"card_id":    into(&p.CardID),
		"created_at": into(&p.CreatedAt),
	}, logger)
	if !ok {
		return p, false
	}
	if !p.Source.Valid() {
		logger.Warn("Unknown payment source, using savings", "payment_id", p.ID, "source", p.Source)
		p.Source = models.SourceSavings
	}
	if p.Amount.IsNegative() {
		logger.Warn("Negative payment amount, using 0", "payment_id", p.ID, "amount", p.Amount)
		p.Amount = decimal.Zero
	}
	return p, true
}

func normalizeBet(b models.Bet, logger *slog.Logger) models.Bet {
	if !b.Status.Valid() {
		logger.Warn("Unknown bet status, using pending", "bet_id", b.ID, "status", b.Status)
		b.Status = models.BetPending
	}
	if b.Status == models.BetPending {
		b.SettledAt = nil
	}
	if !b.Category.Valid() {
		b.Category = models.CategoryOther
	}
	if b.Stake.IsNegative() {
		logger.Warn("Negative stake, using 0", "bet_id", b.ID, "stake", b.Stake)
		b.Stake = decimal.Zero
	}
	if b.Odds.LessThan(decimal.NewFromInt(1)) {
		logger.Warn("Odds below 1, using 1", "bet_id", b.ID, "odds", b.Odds)
		b.Odds = decimal.NewFromInt(1)
	}
	if b.ReturnOverride.Valid && b.ReturnOverride.Decimal.IsNegative() {
		logger.Warn("Negative return override, using none", "bet_id", b.ID)
		b.ReturnOverride = decimal.NullDecimal{}
	}
	return b
}

// decodeSettings decodes field by field onto the defaults, so a bad value
// only loses itself.
func decodeSettings(raw json.RawMessage, logger *slog.Logger) models.Settings {
	settings := models.DefaultSettings()
	if len(raw) == 0 {
		return settings
	}

	keys := map[string]setter{
		"legacy_debt_total":      into(&settings.LegacyDebtTotal),
		"starting_bankroll":      into(&settings.StartingBankroll),
		"target_profit":          into(&settings.TargetProfit),
		"bank_percent_on_target": into(&settings.BankPercentOnTarget),
		"auto_bank_enabled":      into(&settings.AutoBankEnabled),
		"auto_bank_card_id":      into(&settings.AutoBankCardID),
		"challenge_start_stake":  into(&settings.ChallengeStartStake),
		"challenge_target_stake": into(&settings.ChallengeTargetStake),
	}
	err := decodeFields(raw, keys, func(key string, err error) {
		logger.Warn("Invalid setting, using default", "field", key, "error", err)
	})
	if err != nil {
		logger.Warn("Settings unreadable, using defaults", "error", err)
		return models.DefaultSettings()
	}

	defaults := models.DefaultSettings()
	for key := range keys {
		if !settingInRange(&settings, key) {
			logger.Warn("Setting out of range, using default", "field", key)
			resetField(&settings, &defaults, key)
		}
	}

	return settings
}

func settingInRange(s *models.Settings, key string) bool {
	switch key {
	case "legacy_debt_total":
		return !s.LegacyDebtTotal.IsNegative()
	case "starting_bankroll":
		return !s.StartingBankroll.IsNegative()
	case "target_profit":
		return !s.TargetProfit.IsNegative()
	case "bank_percent_on_target":
		return !s.BankPercentOnTarget.IsNegative() && !s.BankPercentOnTarget.GreaterThan(decimal.NewFromInt(100))
	case "challenge_start_stake":
		return !s.ChallengeStartStake.IsNegative()
	case "challenge_target_stake":
		return !s.ChallengeTargetStake.IsNegative()
	}
	return true
}

// resetField restores one settings field to its default.
func resetField(settings, defaults *models.Settings, key string) {
	switch key {
	case "legacy_debt_total":
		settings.LegacyDebtTotal = defaults.LegacyDebtTotal
	case "starting_bankroll":
		settings.StartingBankroll = defaults.StartingBankroll
	case "target_profit":
		settings.TargetProfit = defaults.TargetProfit
	case "bank_percent_on_target":
		settings.BankPercentOnTarget = defaults.BankPercentOnTarget
	case "auto_bank_enabled":
		settings.AutoBankEnabled = defaults.AutoBankEnabled
	case "auto_bank_card_id":
		settings.AutoBankCardID = defaults.AutoBankCardID
	case "challenge_start_stake":
		settings.ChallengeStartStake = defaults.ChallengeStartStake
	case "challenge_target_stake":
		settings.ChallengeTargetStake = defaults.ChallengeTargetStake
	}
}
