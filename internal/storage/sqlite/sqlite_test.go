package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/paydown/internal/calculator"
	"github.com/mmynk/paydown/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleSnapshot() *models.Snapshot {
	settled := int64(1718000000)
	snap := models.NewSnapshot()
	snap.Cards = []models.Card{
		{ID: "card-b", Name: "Visa", Balance: d("1000"), CreatedAt: 1},
		{ID: "card-a", Name: "Amex", Balance: d("500.50"), CreatedAt: 2},
	}
	snap.Bets = []models.Bet{
		{ID: "bet-1", Date: "2025-06-01", Description: "Derby", Category: models.CategorySingle,
			Stake: d("10"), Odds: d("2.25"), Status: models.BetWon, SettledAt: &settled,
			CreatedAt: 10, UpdatedAt: 11},
		{ID: "bet-2", Date: "2025-06-02", Category: models.CategoryAccumulator,
			Stake: d("5"), Odds: d("7.5"), Status: models.BetPending, CreatedAt: 12, UpdatedAt: 12},
		{ID: "bet-3", Date: "2025-06-03", Category: models.CategoryOther,
			Stake: d("20"), Odds: d("3"), Status: models.BetLost, SettledAt: &settled,
			ReturnOverride: decimal.NewNullDecimal(d("8.40")), CreatedAt: 13, UpdatedAt: 14},
	}
	snap.Payments = []models.Payment{
		{ID: "pay-1", Date: "2025-06-05", Amount: d("200"), Source: models.SourceSavings, CardID: "card-b", CreatedAt: 20},
		{ID: "pay-2", Date: "2025-06-06", Amount: d("12.34"), Source: models.SourceBetting, Note: "cash out", CreatedAt: 21},
	}
	snap.Settings.AutoBankEnabled = true
	snap.Settings.AutoBankCardID = "card-a"
	snap.Settings.StartingBankroll = d("25")
	snap.MilestoneCounter = 4
	return snap
}

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "paydown-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Load on empty database returns defaults", func(t *testing.T) {
		snap, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(snap.Bets) != 0 || len(snap.Payments) != 0 || len(snap.Cards) != 0 {
			t.Errorf("expected empty records, got %d/%d/%d", len(snap.Bets), len(snap.Payments), len(snap.Cards))
		}
		if !snap.Settings.TargetProfit.Equal(models.DefaultSettings().TargetProfit) {
			t.Errorf("TargetProfit = %s, want default", snap.Settings.TargetProfit)
		}
		if snap.MilestoneCounter != 0 {
			t.Errorf("MilestoneCounter = %d, want 0", snap.MilestoneCounter)
		}
	})

	t.Run("Save and Load round-trip every field", func(t *testing.T) {
		original := sampleSnapshot()
		if err := store.Save(ctx, original); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if got.MilestoneCounter != 4 {
			t.Errorf("MilestoneCounter = %d, want 4", got.MilestoneCounter)
		}
		if !got.Settings.AutoBankEnabled || got.Settings.AutoBankCardID != "card-a" {
			t.Errorf("auto-bank settings lost: %+v", got.Settings)
		}

		// order is preserved; the first card is the auto-bank fallback
		if len(got.Cards) != 2 || got.Cards[0].ID != "card-b" {
			t.Fatalf("cards = %+v, want card-b first", got.Cards)
		}
		if !got.Cards[1].Balance.Equal(d("500.5")) {
			t.Errorf("card balance = %s, want 500.50", got.Cards[1].Balance)
		}

		if len(got.Bets) != 3 {
			t.Fatalf("bets = %d, want 3", len(got.Bets))
		}
		if got.Bets[1].SettledAt != nil {
			t.Errorf("pending bet SettledAt = %d, want nil", *got.Bets[1].SettledAt)
		}
		if got.Bets[1].ReturnOverride.Valid {
			t.Error("pending bet gained a return override")
		}
		if got.Bets[2].SettledAt == nil || *got.Bets[2].SettledAt != 1718000000 {
			t.Errorf("settled bet SettledAt = %v", got.Bets[2].SettledAt)
		}
		if !got.Bets[2].ReturnOverride.Valid || !got.Bets[2].ReturnOverride.Decimal.Equal(d("8.4")) {
			t.Errorf("override = %+v, want 8.40", got.Bets[2].ReturnOverride)
		}
		if !got.Bets[0].Odds.Equal(d("2.25")) || got.Bets[0].Description != "Derby" {
			t.Errorf("bet-1 = %+v", got.Bets[0])
		}

		if len(got.Payments) != 2 {
			t.Fatalf("payments = %d, want 2", len(got.Payments))
		}
		if got.Payments[0].CardID != "card-b" || got.Payments[1].CardID != "" {
			t.Errorf("payment earmarks = %q/%q", got.Payments[0].CardID, got.Payments[1].CardID)
		}
		if got.Payments[1].Note != "cash out" || got.Payments[1].Source != models.SourceBetting {
			t.Errorf("pay-2 = %+v", got.Payments[1])
		}
	})

	t.Run("Summary is identical after reload", func(t *testing.T) {
		original := sampleSnapshot()
		before := calculator.Summarize(original)

		if err := store.Save(ctx, original); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		reloaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		after := calculator.Summarize(reloaded)

		if !before.Bets.Profit.Equal(after.Bets.Profit) ||
			!before.Debt.Remaining.Equal(after.Debt.Remaining) ||
			!before.AvailableProfit.Equal(after.AvailableProfit) ||
			before.ChallengePct != after.ChallengePct ||
			before.Bets.HitRatePct != after.Bets.HitRatePct {
			t.Errorf("summary drifted:\nbefore %+v\nafter  %+v", before, after)
		}
	})

	t.Run("Save replaces deleted records", func(t *testing.T) {
		snap := sampleSnapshot()
		if err := store.Save(ctx, snap); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		snap.Cards = snap.Cards[:1]
		snap.Payments = nil
		if err := store.Save(ctx, snap); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(got.Cards) != 1 || len(got.Payments) != 0 {
			t.Errorf("cards/payments = %d/%d, want 1/0", len(got.Cards), len(got.Payments))
		}
		// the dangling auto-bank card id survives as a weak reference
		if got.Settings.AutoBankCardID != "card-a" {
			t.Errorf("AutoBankCardID = %q, want card-a", got.Settings.AutoBankCardID)
		}
	})
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store.Close()

	// migrations are idempotent on an existing database
	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	snap, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Bets) != 3 || snap.MilestoneCounter != 4 {
		t.Errorf("bets/counter = %d/%d, want 3/4", len(snap.Bets), snap.MilestoneCounter)
	}
}
