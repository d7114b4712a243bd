package keeper

import (
	"errors"
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/onsenswap/onsenswap/x/pair/types"
)

// PairMetrics holds all Prometheus metrics for the pair module
type PairMetrics struct {
	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapLatency prometheus.Histogram

	// Skim metrics
	SkimsTotal  *prometheus.CounterVec
	SkimLatency prometheus.Histogram

	// Ledger metrics
	Reserves         *prometheus.GaugeVec
	AccumulatorSkips prometheus.Counter

	// Security metrics
	ReentrancyRejections *prometheus.CounterVec
	InvariantsBroken     *prometheus.CounterVec
}

var (
	pairMetricsOnce sync.Once
	pairMetrics     *PairMetrics
)

// NewPairMetrics creates and registers pair metrics (singleton pattern)
func NewPairMetrics() *PairMetrics {
	pairMetricsOnce.Do(func() {
		pairMetrics = &PairMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "onsenswap",
					Subsystem: "pair",
					Name:      "swaps_total",
					Help:      "Total number of swaps by outcome",
				},
				[]string{"status"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "onsenswap",
					Subsystem: "pair",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			SkimsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "onsenswap",
					Subsystem: "pair",
					Name:      "skims_total",
					Help:      "Total number of skims by outcome",
				},
				[]string{"status"},
			),
			SkimLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "onsenswap",
					Subsystem: "pair",
					Name:      "skim_latency_seconds",
					Help:      "Skim execution latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			Reserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "onsenswap",
					Subsystem: "pair",
					Name:      "reserve",
					Help:      "Last committed reserve per asset index",
				},
				[]string{"asset"},
			),
			AccumulatorSkips: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "onsenswap",
					Subsystem: "pair",
					Name:      "price_accumulator_skips_total",
					Help:      "Commits that crossed a block boundary without updating price accumulators",
				},
			),
			ReentrancyRejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "onsenswap",
					Subsystem: "pair",
					Name:      "reentrancy_rejections_total",
					Help:      "Nested calls rejected by the reentrancy guard",
				},
				[]string{"operation"},
			),
			InvariantsBroken: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "onsenswap",
					Subsystem: "pair",
					Name:      "invariants_broken_total",
					Help:      "Ledger audits that found a broken invariant",
				},
				[]string{"invariant"},
			),
		}
	})
	return pairMetrics
}

// statusErrors maps sentinel errors to metric labels, checked in order.
var statusErrors = []struct {
	err    error
	status string
}{
	{types.ErrInsufficientOutputAmount, "insufficient_output_amount"},
	{types.ErrInsufficientLiquidity, "insufficient_liquidity"},
	{types.ErrInvalidRecipient, "invalid_recipient"},
	{types.ErrTransferFailed, "transfer_failed"},
	{types.ErrInvariantViolated, "invariant_violated"},
	{types.ErrNotOwner, "not_owner"},
	{types.ErrReserveAccountingError, "reserve_accounting_error"},
	{types.ErrReentrancy, "reentrancy"},
	{types.ErrPoolNotFound, "pool_not_found"},
}

func errorStatus(err error) string {
	if err == nil {
		return "success"
	}
	for _, s := range statusErrors {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return "error"
}

func intToFloat(i math.Int) float64 {
	f, _ := new(big.Float).SetInt(i.BigInt()).Float64()
	return f
}
