package types

import (
	"context"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
)

// SwapRecord describes a committed swap.
type SwapRecord struct {
	Recipient  onsen.AccountID `json:"recipient"`
	Amount0In  math.Int        `json:"amount0_in"`
	Amount1In  math.Int        `json:"amount1_in"`
	Amount0Out math.Int        `json:"amount0_out"`
	Amount1Out math.Int        `json:"amount1_out"`
	Reserve0   math.Int        `json:"reserve0"`
	Reserve1   math.Int        `json:"reserve1"`
	Block      uint64          `json:"block"`
}

// PairHooks defines the interface for pair callbacks.
type PairHooks interface {
	// AfterSwap is called after a swap has been committed to the ledger.
	AfterSwap(ctx context.Context, record SwapRecord) error

	// AfterSkim is called after surplus balances were swept to recipient.
	AfterSkim(ctx context.Context, recipient onsen.AccountID, amount0, amount1 math.Int) error
}

// MultiPairHooks combines multiple pair hooks into a single hook that calls all of them.
type MultiPairHooks []PairHooks

// NewMultiPairHooks creates a new MultiPairHooks from a list of hooks.
func NewMultiPairHooks(hooks ...PairHooks) MultiPairHooks {
	return hooks
}

// AfterSwap calls AfterSwap on all registered hooks.
func (h MultiPairHooks) AfterSwap(ctx context.Context, record SwapRecord) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterSwap(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// AfterSkim calls AfterSkim on all registered hooks.
func (h MultiPairHooks) AfterSkim(ctx context.Context, recipient onsen.AccountID, amount0, amount1 math.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterSkim(ctx, recipient, amount0, amount1); err != nil {
			return err
		}
	}
	return nil
}
