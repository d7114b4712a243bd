package keeper

import (
	"context"
	"time"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

// Skim sends recipient whatever the pool holds above its reserves. Only the
// owner may skim. Reserves are not updated.
func (k *Keeper) Skim(ctx context.Context, caller, recipient onsen.AccountID) (amount0, amount1 math.Int, err error) {
	start := time.Now()
	defer func() {
		k.metrics.SkimLatency.Observe(time.Since(start).Seconds())
		k.metrics.SkimsTotal.WithLabelValues(errorStatus(err)).Inc()
	}()

	err = k.WithReentrancyGuard(ctx, "skim", func() error {
		var skimErr error
		amount0, amount1, skimErr = k.skim(ctx, caller, recipient)
		return skimErr
	})
	if err != nil {
		k.Logger().Error("skim failed", "caller", caller.String(), "recipient", recipient.String(), "error", err)
		return math.Int{}, math.Int{}, err
	}

	if k.hooks != nil {
		if hookErr := k.hooks.AfterSkim(ctx, recipient, amount0, amount1); hookErr != nil {
			k.Logger().Error("AfterSkim hook failed", "error", hookErr)
		}
	}
	return amount0, amount1, nil
}

func (k *Keeper) skim(ctx context.Context, caller, recipient onsen.AccountID) (math.Int, math.Int, error) {
	ledger, err := k.GetLedger(ctx)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := onlyOwner(ledger, caller); err != nil {
		return math.Int{}, math.Int{}, err
	}

	balance0, balance1, err := k.poolBalances(ctx, ledger)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	// both surpluses are checked before anything moves
	surplus0, err := SafeSub(balance0, ledger.Reserve0)
	if err != nil {
		return math.Int{}, math.Int{}, sdkerrors.Wrapf(types.ErrReserveAccountingError, "asset0: %s", err)
	}
	surplus1, err := SafeSub(balance1, ledger.Reserve1)
	if err != nil {
		return math.Int{}, math.Int{}, sdkerrors.Wrapf(types.ErrReserveAccountingError, "asset1: %s", err)
	}

	pool := ledger.PoolAccount()
	if err := k.tokenKeeper.TransferFrom(ctx, ledger.Asset0, pool, recipient, surplus0, nil); err != nil {
		return math.Int{}, math.Int{}, types.NewTransferError(ledger.Asset0, "transfer_from", err)
	}
	if err := k.tokenKeeper.TransferFrom(ctx, ledger.Asset1, pool, recipient, surplus1, nil); err != nil {
		return math.Int{}, math.Int{}, types.NewTransferError(ledger.Asset1, "transfer_from", err)
	}

	k.Logger().Info(types.EventTypeSkim,
		"recipient", recipient.String(),
		"amount0", surplus0.String(),
		"amount1", surplus1.String(),
	)
	return surplus0, surplus1, nil
}
