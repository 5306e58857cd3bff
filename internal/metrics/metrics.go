// Package metrics exposes Prometheus instruments for the ledger.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/mmynk/paydown/internal/calculator"
)

const namespace = "paydown"

// Bank paths for AmountBanked.
const (
	PathAuto   = "auto"
	PathManual = "manual"
)

// MilestonesFired counts milestones converted by auto-bank.
var MilestonesFired = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "milestones_fired_total",
	Help:      "Profit milestones converted into payments by auto-bank.",
})

// AmountBanked totals betting profit moved into the payoff pool.
var AmountBanked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "amount_banked_total",
	Help:      "Betting profit banked into the payoff pool, by path.",
}, []string{"path"})

// Mutations counts committed ledger mutations.
var Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "mutations_total",
	Help:      "Committed ledger mutations, by kind.",
}, []string{"kind"})

// RPCDuration tracks RPC latency.
var RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "rpc_duration_seconds",
	Help:      "RPC handling latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"procedure", "code"})

var debtRemaining = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "debt_remaining",
	Help:      "Debt still owed after the last committed mutation.",
})

var availableProfit = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "available_profit",
	Help:      "Betting profit not yet banked.",
})

var milestoneCounter = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "milestone_counter",
	Help:      "Persisted milestone counter.",
})

// ObserveSummary updates the ledger gauges.
func ObserveSummary(s calculator.Summary) {
	debtRemaining.Set(s.Debt.Remaining.InexactFloat64())
	availableProfit.Set(s.AvailableProfit.InexactFloat64())
	milestoneCounter.Set(float64(s.MilestoneCounter))
}

// RecordBank counts a banked amount on path.
func RecordBank(path string, amount decimal.Decimal) {
	AmountBanked.WithLabelValues(path).Add(amount.InexactFloat64())
}

// ObserveRPC records one RPC's latency.
func ObserveRPC(procedure, code string, elapsed time.Duration) {
	RPCDuration.WithLabelValues(procedure, code).Observe(elapsed.Seconds())
}
