package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/paydown/internal/calculator"
	"github.com/mmynk/paydown/internal/metrics"
	"github.com/mmynk/paydown/internal/milestone"
	"github.com/mmynk/paydown/internal/models"
	"github.com/mmynk/paydown/internal/storage"
)

var (
	// ErrNotFound is returned when a bet, payment, or card id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput wraps every validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCard is returned when a new payment is earmarked to a card
	// that does not exist.
	ErrUnknownCard = errors.New("unknown card")
)

// LedgerService owns the ledger. Every mutation runs under one lock as
// load, apply, auto-bank check, save.
type LedgerService struct {
	store storage.Store
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// Option configures a LedgerService.
type Option func(*LedgerService)

// WithClock overrides the clock used for dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) {
		s.now = now
	}
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, opts ...Option) *LedgerService {
	s := &LedgerService{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dashboard is the summary plus the milestone figures a client shows next
// to it.
type Dashboard struct {
	calculator.Summary

	AmountPerMilestone decimal.Decimal `json:"amount_per_milestone"`

	// NextMilestoneAt is the available profit that fires the next
	// milestone, zero when milestones are disabled.
	NextMilestoneAt decimal.Decimal `json:"next_milestone_at"`
}

func newDashboard(snap *models.Snapshot) *Dashboard {
	return &Dashboard{
		Summary:            calculator.Summarize(snap),
		AmountPerMilestone: milestone.AmountPerMilestone(snap.Settings),
		NextMilestoneAt:    milestone.NextThreshold(snap.Settings, snap.MilestoneCounter),
	}
}

// BetInput holds the user-editable fields of a bet.
type BetInput struct {
	Date           string              `json:"date"`
	Description    string              `json:"description"`
	Category       models.BetCategory  `json:"category"`
	Stake          decimal.Decimal     `json:"stake"`
	Odds           decimal.Decimal     `json:"odds"`
	Status         models.BetStatus    `json:"status"`
	ReturnOverride decimal.NullDecimal `json:"return_override"`
}

// PaymentInput holds the fields of a new payment.
type PaymentInput struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Source models.Source   `json:"source"`
	Note   string          `json:"note,omitempty"`
	CardID string          `json:"card_id,omitempty"`
}

// Summary recomputes the dashboard from the stored ledger.
func (s *LedgerService) Summary(ctx context.Context) (*Dashboard, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return newDashboard(snap), nil
}

// Snapshot returns the stored ledger.
func (s *LedgerService) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	return s.load(ctx)
}

// AddBet records a new bet.
func (s *LedgerService) AddBet(ctx context.Context, in BetInput) (models.Bet, error) {
	var created models.Bet
	_, err := s.mutate(ctx, "add_bet", func(snap *models.Snapshot, now time.Time) error {
		bet := models.Bet{
			ID:        s.newID(),
			CreatedAt: now.Unix(),
		}
		applyBetInput(&bet, in, now)
		if err := bet.Validate(); err != nil {
			return invalid(err)
		}
		snap.Bets = append(snap.Bets, bet)
		created = bet
		return nil
	})
	if err != nil {
		return models.Bet{}, err
	}
	slog.Info("Bet added", "bet_id", created.ID, "status", created.Status, "stake", created.Stake)
	return created, nil
}

// UpdateBet replaces the editable fields of a bet. Changing the status
// maintains SettledAt; everything else about the bet is kept.
func (s *LedgerService) UpdateBet(ctx context.Context, id string, in BetInput) (models.Bet, error) {
	var updated models.Bet
	_, err := s.mutate(ctx, "update_bet", func(snap *models.Snapshot, now time.Time) error {
		i := snap.BetIndex(id)
		if i < 0 {
			return fmt.Errorf("bet %s: %w", id, ErrNotFound)
		}
		bet := snap.Bets[i]
		applyBetInput(&bet, in, now)
		if err := bet.Validate(); err != nil {
			return invalid(err)
		}
		snap.Bets[i] = bet
		updated = bet
		return nil
	})
	if err != nil {
		return models.Bet{}, err
	}
	slog.Info("Bet updated", "bet_id", id, "status", updated.Status)
	return updated, nil
}

// DeleteBet removes a bet.
func (s *LedgerService) DeleteBet(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "delete_bet", func(snap *models.Snapshot, _ time.Time) error {
		i := snap.BetIndex(id)
		if i < 0 {
			return fmt.Errorf("bet %s: %w", id, ErrNotFound)
		}
		snap.Bets = append(snap.Bets[:i], snap.Bets[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Bet deleted", "bet_id", id)
	return nil
}

// AddPayment records a payment. An earmarked payment must name an
// existing card.
func (s *LedgerService) AddPayment(ctx context.Context, in PaymentInput) (models.Payment, error) {
	var created models.Payment
	_, err := s.mutate(ctx, "add_payment", func(snap *models.Snapshot, now time.Time) error {
		payment := models.Payment{
			ID:        s.newID(),
			Date:      in.Date,
			Amount:    in.Amount,
			Source:    in.Source,
			Note:      strings.TrimSpace(in.Note),
			CardID:    in.CardID,
			CreatedAt: now.Unix(),
		}
		if err := payment.Validate(); err != nil {
			return invalid(err)
		}
		if payment.CardID != "" {
			if _, ok := snap.Card(payment.CardID); !ok {
				return invalid(fmt.Errorf("%w %s", ErrUnknownCard, payment.CardID))
			}
		}
		snap.Payments = append(snap.Payments, payment)
		created = payment
		return nil
	})
	if err != nil {
		return models.Payment{}, err
	}
	slog.Info("Payment added", "payment_id", created.ID, "source", created.Source, "amount", created.Amount, "card_id", created.CardID)
	return created, nil
}

// DeletePayment removes a payment. Deleting an auto-banked payment does
// not lower the milestone counter.
func (s *LedgerService) DeletePayment(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "delete_payment", func(snap *models.Snapshot, _ time.Time) error {
		i := snap.PaymentIndex(id)
		if i < 0 {
			return fmt.Errorf("payment %s: %w", id, ErrNotFound)
		}
		snap.Payments = append(snap.Payments[:i], snap.Payments[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	slog.Info("Payment deleted", "payment_id", id)
	return nil
}

// AddCard records a new debt card.
func (s *LedgerService) AddCard(ctx context.Context, name string, balance decimal.Decimal) (models.Card, error) {
	var created models.Card
	_, err := s.mutate(ctx, "add_card", func(snap *models.Snapshot, now time.Time) error {
		card := models.Card{
			ID:        s.newID(),
			Name:      strings.TrimSpace(name),
			Balance:   balance,
			CreatedAt: now.Unix(),
		}
		if err := card.Validate(); err != nil {
			return invalid(err)
		}
		snap.Cards = append(snap.Cards, card)
		created = card
		return nil
	})
	if err != nil {
		return models.Card{}, err
	}
	slog.Info("Card added", "card_id", created.ID, "name", created.Name, "balance", created.Balance)
	return created, nil
}

// DeleteCard removes a card. Payments earmarked to it and the auto-bank
// default keep the dangling id.
func (s *LedgerService) DeleteCard(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, "delete_card", func(snap *models.Snapshot, _ time.Time) error {
		for i := range snap.Cards {
			if snap.Cards[i].ID == id {
				snap.Cards = append(snap.Cards[:i], snap.Cards[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("card %s: %w", id, ErrNotFound)
	})
	if err != nil {
		return err
	}
	slog.Info("Card deleted", "card_id", id)
	return nil
}

// UpdateSettings replaces the settings. Enabling auto-bank or lowering the
// target can fire milestones immediately.
func (s *LedgerService) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if err := settings.Validate(); err != nil {
		return models.Settings{}, invalid(err)
	}
	settings.AutoBankCardID = strings.TrimSpace(settings.AutoBankCardID)

	_, err := s.mutate(ctx, "update_settings", func(snap *models.Snapshot, _ time.Time) error {
		snap.Settings = settings
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	slog.Info("Settings updated",
		"target_profit", settings.TargetProfit,
		"bank_percent", settings.BankPercentOnTarget,
		"auto_bank", settings.AutoBankEnabled,
	)
	return settings, nil
}

// BankNow moves one milestone's worth of available profit into the payoff
// pool without touching the milestone counter.
func (s *LedgerService) BankNow(ctx context.Context) (models.Payment, error) {
	var banked models.Payment
	_, err := s.mutate(ctx, "bank_now", func(snap *models.Snapshot, now time.Time) error {
		summary := calculator.Summarize(snap)
		payment, err := milestone.BankNow(snap.Settings, snap.Cards, summary.AvailableProfit, now)
		if err != nil {
			return fmt.Errorf("bank now: %w", err)
		}
		payment.ID = s.newID()
		payment.CreatedAt = now.Unix()
		snap.Payments = append(snap.Payments, payment)
		banked = payment
		return nil
	})
	if err != nil {
		return models.Payment{}, err
	}
	metrics.RecordBank(metrics.PathManual, banked.Amount)
	slog.Info("Profit banked", "payment_id", banked.ID, "amount", banked.Amount, "card_id", banked.CardID)
	return banked, nil
}

// Import replaces the whole ledger with snap. Records that fail validation
// are dropped, settings that fail validation reject the import, and the
// milestone counter is never lowered.
func (s *LedgerService) Import(ctx context.Context, imported *models.Snapshot) (*Dashboard, error) {
	if err := imported.Settings.Validate(); err != nil {
		return nil, invalid(err)
	}

	dropped := 0
	snap, err := s.mutate(ctx, "import", func(snap *models.Snapshot, _ time.Time) error {
		counter := snap.MilestoneCounter
		*snap = *imported
		if snap.MilestoneCounter < counter {
			snap.MilestoneCounter = counter
		}
		var n int
		snap.Bets, n = validOnly(snap.Bets, "bet", func(b models.Bet) string { return b.ID })
		dropped += n
		snap.Payments, n = validOnly(snap.Payments, "payment", func(p models.Payment) string { return p.ID })
		dropped += n
		snap.Cards, n = validOnly(snap.Cards, "card", func(c models.Card) string { return c.ID })
		dropped += n
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Ledger imported",
		"bets", len(snap.Bets),
		"payments", len(snap.Payments),
		"cards", len(snap.Cards),
		"dropped", dropped,
	)
	return newDashboard(snap), nil
}

// validOnly returns the records that pass Validate and how many were dropped.
func validOnly[T interface{ Validate() error }](records []T, kind string, id func(T) string) ([]T, int) {
	kept := make([]T, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			slog.Warn("Dropping invalid imported record", "kind", kind, "id", id(r), "error", err)
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}

func (s *LedgerService) load(ctx context.Context) (*models.Snapshot, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	return snap, nil
}

// mutate applies fn to the latest ledger, converts any newly crossed
// milestones, and saves the result as one commit.
func (s *LedgerService) mutate(ctx context.Context, kind string, fn func(snap *models.Snapshot, now time.Time) error) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := fn(snap, now); err != nil {
		return nil, err
	}

	result := s.checkMilestones(snap, now)

	if err := s.store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}

	metrics.Mutations.WithLabelValues(kind).Inc()
	if result.Fired() {
		metrics.MilestonesFired.Add(float64(result.Crossed))
		metrics.RecordBank(metrics.PathAuto, result.Payment.Amount)
		slog.Info("Milestone reached, profit auto-banked",
			"payment_id", result.Payment.ID,
			"amount", result.Payment.Amount,
			"crossed", result.Crossed,
			"counter", result.Counter,
			"card_id", result.Payment.CardID,
		)
	}
	metrics.ObserveSummary(calculator.Summarize(snap))

	return snap, nil
}

// checkMilestones evaluates auto-bank against the mutated ledger and
// applies any payment it produces.
func (s *LedgerService) checkMilestones(snap *models.Snapshot, now time.Time) milestone.Result {
	summary := calculator.Summarize(snap)
	result := milestone.Evaluate(snap.Settings, snap.Cards, summary.AvailableProfit, snap.MilestoneCounter, now)
	if !result.Fired() {
		return result
	}
	result.Payment.ID = s.newID()
	result.Payment.CreatedAt = now.Unix()
	milestone.Apply(snap, result)
	return result
}

func applyBetInput(bet *models.Bet, in BetInput, now time.Time) {
	bet.Date = in.Date
	bet.Description = strings.TrimSpace(in.Description)
	bet.Category = in.Category
	if bet.Category == "" {
		bet.Category = models.CategoryOther
	}
	bet.Stake = in.Stake
	bet.Odds = in.Odds
	bet.ReturnOverride = in.ReturnOverride
	status := in.Status
	if status == "" {
		status = models.BetPending
	}
	bet.SetStatus(status, now)
	bet.UpdatedAt = now.Unix()
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
