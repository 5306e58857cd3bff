// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/paydown/internal/models"
	"github.com/mmynk/paydown/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: readers queue behind a save instead of hitting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the whole ledger. Records come back in the order they were saved.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Snapshot, error) {
	snap := models.NewSnapshot()

	if err := s.loadState(ctx, snap); err != nil {
		return nil, err
	}

	var err error
	if snap.Cards, err = s.loadCards(ctx); err != nil {
		return nil, err
	}
	if snap.Bets, err = s.loadBets(ctx); err != nil {
		return nil, err
	}
	if snap.Payments, err = s.loadPayments(ctx); err != nil {
		return nil, err
	}

	return snap, nil
}

// Save replaces the stored ledger with snapshot in a single transaction, so a
// milestone payment and its counter are committed together or not at all.
func (s *SQLiteStore) Save(ctx context.Context, snap *models.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"bets", "payments", "cards"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, c := range snap.Cards {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO cards (id, position, name, balance, created_at) VALUES (?, ?, ?, ?, ?)",
			c.ID, i, c.Name, c.Balance, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert card %s: %w", c.ID, err)
		}
	}

	for i, b := range snap.Bets {
		var settledAt interface{}
		if b.SettledAt != nil {
			settledAt = *b.SettledAt
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO bets (id, position, date, description, category, stake, odds, status,
			                   return_override, settled_at, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, i, b.Date, b.Description, string(b.Category), b.Stake, b.Odds, string(b.Status),
			b.ReturnOverride, settledAt, b.CreatedAt, b.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bet %s: %w", b.ID, err)
		}
	}

	for i, p := range snap.Payments {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO payments (id, position, date, amount, source, note, card_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, i, p.Date, p.Amount, string(p.Source), p.Note, p.CardID, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment %s: %w", p.ID, err)
		}
	}

	st := snap.Settings
	_, err = tx.ExecContext(ctx,
		`INSERT INTO ledger_state (id, legacy_debt_total, starting_bankroll, target_profit,
		                           bank_percent_on_target, auto_bank_enabled, auto_bank_card_id,
		                           challenge_start_stake, challenge_target_stake, milestone_counter)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     legacy_debt_total = excluded.legacy_debt_total,
		     starting_bankroll = excluded.starting_bankroll,
		     target_profit = excluded.target_profit,
		     bank_percent_on_target = excluded.bank_percent_on_target,
		     auto_bank_enabled = excluded.auto_bank_enabled,
		     auto_bank_card_id = excluded.auto_bank_card_id,
		     challenge_start_stake = excluded.challenge_start_stake,
		     challenge_target_stake = excluded.challenge_target_stake,
		     milestone_counter = excluded.milestone_counter`,
		st.LegacyDebtTotal, st.StartingBankroll, st.TargetProfit, st.BankPercentOnTarget,
		st.AutoBankEnabled, st.AutoBankCardID, st.ChallengeStartStake, st.ChallengeTargetStake,
		snap.MilestoneCounter,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// loadState reads settings and the milestone counter. A database that was
// never saved keeps the snapshot defaults.
func (s *SQLiteStore) loadState(ctx context.Context, snap *models.Snapshot) error {
	st := &snap.Settings
	err := s.db.QueryRowContext(ctx,
		`SELECT legacy_debt_total, starting_bankroll, target_profit, bank_percent_on_target,
		        auto_bank_enabled, auto_bank_card_id, challenge_start_stake, challenge_target_stake,
		        milestone_counter
		 FROM ledger_state WHERE id = 1`,
	).Scan(&st.LegacyDebtTotal, &st.StartingBankroll, &st.TargetProfit, &st.BankPercentOnTarget,
		&st.AutoBankEnabled, &st.AutoBankCardID, &st.ChallengeStartStake, &st.ChallengeTargetStake,
		&snap.MilestoneCounter)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get ledger state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadCards(ctx context.Context) ([]models.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, balance, created_at FROM cards ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.Card{}
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.Name, &c.Balance, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return cards, nil
}

func (s *SQLiteStore) loadBets(ctx context.Context) ([]models.Bet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, description, category, stake, odds, status,
		        return_override, settled_at, created_at, updated_at
		 FROM bets ORDER BY position`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	defer rows.Close()

	bets := []models.Bet{}
	for rows.Next() {
		var (
			b         models.Bet
			category  string
			status    string
			override  decimal.NullDecimal
			settledAt sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &b.Date, &b.Description, &category, &b.Stake, &b.Odds, &status,
			&override, &settledAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		b.Category = models.BetCategory(category)
		b.Status = models.BetStatus(status)
		b.ReturnOverride = override
		if settledAt.Valid {
			ts := settledAt.Int64
			b.SettledAt = &ts
		}
		bets = append(bets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}
	return bets, nil
}

func (s *SQLiteStore) loadPayments(ctx context.Context) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, amount, source, note, card_id, created_at FROM payments ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var (
			p      models.Payment
			source string
		)
		if err := rows.Scan(&p.ID, &p.Date, &p.Amount, &source, &p.Note, &p.CardID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Source = models.Source(source)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
