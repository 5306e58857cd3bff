package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/mmynk/paydown/internal/calculator"
)

func TestObserveSummary(t *testing.T) {
	var s calculator.Summary
	s.Debt.Remaining = decimal.RequireFromString("412.50")
	s.AvailableProfit = decimal.RequireFromString("-20")
	s.MilestoneCounter = 3

	ObserveSummary(s)

	if got := testutil.ToFloat64(debtRemaining); got != 412.5 {
		t.Errorf("debt_remaining = %v, want 412.5", got)
	}
	if got := testutil.ToFloat64(availableProfit); got != -20 {
		t.Errorf("available_profit = %v, want -20", got)
	}
	if got := testutil.ToFloat64(milestoneCounter); got != 3 {
		t.Errorf("milestone_counter = %v, want 3", got)
	}
}

func TestRecordBank(t *testing.T) {
	auto := AmountBanked.WithLabelValues(PathAuto)
	manual := AmountBanked.WithLabelValues(PathManual)
	autoBefore, manualBefore := testutil.ToFloat64(auto), testutil.ToFloat64(manual)

	RecordBank(PathAuto, decimal.RequireFromString("100"))
	RecordBank(PathManual, decimal.RequireFromString("12.5"))

	if got := testutil.ToFloat64(auto) - autoBefore; got != 100 {
		t.Errorf("auto banked grew by %v, want 100", got)
	}
	if got := testutil.ToFloat64(manual) - manualBefore; got != 12.5 {
		t.Errorf("manual banked grew by %v, want 12.5", got)
	}
}
