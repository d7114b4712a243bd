package app

import (
	"context"
	"sync"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
)

// SwapJournal keeps the most recent committed swaps in memory. It is
// registered as a pair hook.
type SwapJournal struct {
	logger log.Logger
	size   int

	mu      sync.RWMutex
	records []pairtypes.SwapRecord
	skims   uint64
}

var _ pairtypes.PairHooks = (*SwapJournal)(nil)

// NewSwapJournal returns a journal holding at most size swaps.
func NewSwapJournal(logger log.Logger, size int) *SwapJournal {
	return &SwapJournal{logger: logger, size: size}
}

// AfterSwap records a committed swap.
func (j *SwapJournal) AfterSwap(_ context.Context, record pairtypes.SwapRecord) error {
	if j.size == 0 {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, record)
	if len(j.records) > j.size {
		j.records = j.records[len(j.records)-j.size:]
	}
	return nil
}

// AfterSkim counts sweeps and logs them.
func (j *SwapJournal) AfterSkim(_ context.Context, recipient onsen.AccountID, amount0, amount1 math.Int) error {
	j.mu.Lock()
	j.skims++
	j.mu.Unlock()

	j.logger.Info("surplus skimmed", "recipient", recipient.String(), "amount0", amount0.String(), "amount1", amount1.String())
	return nil
}

// Recent returns up to limit swaps, newest first.
func (j *SwapJournal) Recent(limit int) []pairtypes.SwapRecord {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if limit <= 0 || limit > len(j.records) {
		limit = len(j.records)
	}
	out := make([]pairtypes.SwapRecord, 0, limit)
	for i := len(j.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.records[i])
	}
	return out
}

// Skims returns how many sweeps were observed since startup.
func (j *SwapJournal) Skims() uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.skims
}
