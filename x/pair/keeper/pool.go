package keeper

import (
	"context"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

// InitPool constructs the pool trading asset0 against asset1. The creator
// becomes both owner and factory. A pool is constructed exactly once.
func (k *Keeper) InitPool(ctx context.Context, creator, asset0, asset1 onsen.AccountID) (types.Ledger, error) {
	if creator.Empty() {
		return types.Ledger{}, onsen.ErrInvalidAccount.Wrap("creator must be set")
	}
	if err := types.ValidateAssetPair(asset0, asset1); err != nil {
		return types.Ledger{}, err
	}

	exists, err := k.HasLedger(ctx)
	if err != nil {
		return types.Ledger{}, err
	}
	if exists {
		return types.Ledger{}, types.ErrPoolAlreadyExists
	}

	ledger := types.NewLedger(creator, asset0, asset1, k.blockKeeper.CurrentBlock(ctx))
	if err := k.setLedger(ctx, ledger); err != nil {
		return types.Ledger{}, err
	}

	k.Logger().Info(types.EventTypeCreate,
		"asset0", asset0.String(),
		"asset1", asset1.String(),
		"pool", ledger.PoolAccount().String(),
		"owner", creator.String(),
	)
	return ledger, nil
}
