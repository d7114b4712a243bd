package keeper

import (
	"context"
	"encoding/json"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

// GetLedger returns the stored pool ledger.
func (k *Keeper) GetLedger(ctx context.Context) (types.Ledger, error) {
	bz, err := k.db.Get(types.LedgerKey)
	if err != nil {
		return types.Ledger{}, err
	}
	if bz == nil {
		return types.Ledger{}, types.ErrPoolNotFound
	}

	var ledger types.Ledger
	if err := json.Unmarshal(bz, &ledger); err != nil {
		return types.Ledger{}, types.ErrStateCorruption.Wrapf("failed to decode ledger: %v", err)
	}
	return ledger, nil
}

// HasLedger reports whether the pool has been constructed.
func (k *Keeper) HasLedger(ctx context.Context) (bool, error) {
	return k.db.Has(types.LedgerKey)
}

func (k *Keeper) setLedger(ctx context.Context, ledger types.Ledger) error {
	bz, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	return k.db.Set(types.LedgerKey, bz)
}

// GetReserves returns both reserves and the block they were last committed at.
func (k *Keeper) GetReserves(ctx context.Context) (math.Int, math.Int, uint64, error) {
	ledger, err := k.GetLedger(ctx)
	if err != nil {
		return math.Int{}, math.Int{}, 0, err
	}
	reserve0, reserve1, block := ledger.Reserves()
	return reserve0, reserve1, block, nil
}

// GetKLast returns the invariant checkpoint.
func (k *Keeper) GetKLast(ctx context.Context) (math.Int, error) {
	ledger, err := k.GetLedger(ctx)
	if err != nil {
		return math.Int{}, err
	}
	return ledger.KLast, nil
}

// Owner returns the identity allowed to skim. It is zero once renounced.
func (k *Keeper) Owner(ctx context.Context) (onsen.AccountID, error) {
	ledger, err := k.GetLedger(ctx)
	if err != nil {
		return onsen.ZeroAccountID, err
	}
	return ledger.Owner, nil
}

// Factory returns the identity that constructed the pool.
func (k *Keeper) Factory(ctx context.Context) (onsen.AccountID, error) {
	ledger, err := k.GetLedger(ctx)
	if err != nil {
		return onsen.ZeroAccountID, err
	}
	return ledger.Factory, nil
}

// PoolAccount returns the account holding the pool's tokens.
func (k *Keeper) PoolAccount(ctx context.Context) (onsen.AccountID, error) {
	ledger, err := k.GetLedger(ctx)
	if err != nil {
		return onsen.ZeroAccountID, err
	}
	return ledger.PoolAccount(), nil
}

// commit is the only writer of reserve state. Callers validate the balances
// beforehand.
func (k *Keeper) commit(ctx context.Context, ledger types.Ledger, balance0, balance1 math.Int) (types.Ledger, error) {
	block := k.blockKeeper.CurrentBlock(ctx)
	if block != ledger.LastUpdateBlock && !ledger.Reserve0.IsZero() && !ledger.Reserve1.IsZero() {
		// price accumulators are not implemented
		k.Logger().Debug("skipping price accumulator update",
			"last_update_block", ledger.LastUpdateBlock,
			"block", block,
		)
		k.metrics.AccumulatorSkips.Inc()
	}

	ledger.Reserve0 = balance0
	ledger.Reserve1 = balance1
	ledger.LastUpdateBlock = block
	if err := k.setLedger(ctx, ledger); err != nil {
		return types.Ledger{}, types.ErrStateCorruption.Wrapf("failed to persist ledger: %v", err)
	}

	k.metrics.Reserves.WithLabelValues("0").Set(intToFloat(balance0))
	k.metrics.Reserves.WithLabelValues("1").Set(intToFloat(balance1))
	k.Logger().Info(types.EventTypeSync,
		"reserve0", balance0.String(),
		"reserve1", balance1.String(),
		"block", block,
	)
	return ledger, nil
}
