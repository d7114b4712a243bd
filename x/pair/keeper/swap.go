package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

// Swap pays amount0Out and amount1Out to recipient and keeps whatever the
// caller deposited into the pool beforehand (or from a receive callback) as
// input. The fee-adjusted constant product must hold on the new balances.
//
// Validation failures leave everything untouched. Once the outbound transfers
// have run, a later failure leaves the ledger untouched but the transfers are
// not reverted by the pair; that is up to the token collaborator.
func (k *Keeper) Swap(
	ctx context.Context,
	amount0Out, amount1Out math.Int,
	recipient onsen.AccountID,
	data []byte,
) (record types.SwapRecord, err error) {
	start := time.Now()
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
		k.metrics.SwapsTotal.WithLabelValues(errorStatus(err)).Inc()
	}()

	err = k.WithReentrancyGuard(ctx, "swap", func() error {
		var swapErr error
		record, swapErr = k.swap(ctx, amount0Out, amount1Out, recipient, data)
		return swapErr
	})
	if err != nil {
		k.Logger().Error("swap failed",
			"amount0_out", amount0Out.String(),
			"amount1_out", amount1Out.String(),
			"recipient", recipient.String(),
			"error", err,
		)
		return types.SwapRecord{}, err
	}

	if k.hooks != nil {
		if hookErr := k.hooks.AfterSwap(ctx, record); hookErr != nil {
			k.Logger().Error("AfterSwap hook failed", "error", hookErr)
		}
	}
	return record, nil
}

func (k *Keeper) swap(
	ctx context.Context,
	amount0Out, amount1Out math.Int,
	recipient onsen.AccountID,
	data []byte,
) (types.SwapRecord, error) {
	if amount0Out.IsNil() || amount1Out.IsNil() || amount0Out.IsNegative() || amount1Out.IsNegative() {
		return types.SwapRecord{}, types.ErrInvalidAmount.Wrapf("output amounts must be non-negative, got %v/%v", amount0Out, amount1Out)
	}

	// 1. something must be requested
	if !amount0Out.IsPositive() && !amount1Out.IsPositive() {
		return types.SwapRecord{}, types.ErrInsufficientOutputAmount
	}

	// 2. a reserve can never be drained to zero
	ledger, err := k.GetLedger(ctx)
	if err != nil {
		return types.SwapRecord{}, err
	}
	reserve0, reserve1, _ := ledger.Reserves()
	if amount0Out.GTE(reserve0) || amount1Out.GTE(reserve1) {
		return types.SwapRecord{}, types.ErrInsufficientLiquidity.Wrapf(
			"requested %s/%s, reserves %s/%s", amount0Out, amount1Out, reserve0, reserve1)
	}

	// 3. proceeds cannot go to the token contracts
	if ledger.IsAsset(recipient) {
		return types.SwapRecord{}, types.ErrInvalidRecipient.Wrapf("%s is a pool asset", recipient)
	}

	// 4-5. pay out, asset0 first
	pool := ledger.PoolAccount()
	if err := k.tokenKeeper.TransferFrom(ctx, ledger.Asset0, pool, recipient, amount0Out, data); err != nil {
		return types.SwapRecord{}, types.NewTransferError(ledger.Asset0, "transfer_from", err)
	}
	if err := k.tokenKeeper.TransferFrom(ctx, ledger.Asset1, pool, recipient, amount1Out, data); err != nil {
		return types.SwapRecord{}, types.NewTransferError(ledger.Asset1, "transfer_from", err)
	}

	// 6. observe what the pool actually holds now
	balance0, balance1, err := k.poolBalances(ctx, ledger)
	if err != nil {
		return types.SwapRecord{}, err
	}

	// 7. whatever exceeds reserve-out was paid in
	amount0In := ImplicitDeposit(balance0, reserve0, amount0Out)
	amount1In := ImplicitDeposit(balance1, reserve1, amount1Out)

	// 8. fee-adjusted invariant
	if !ConstantProductHolds(balance0, balance1, amount0In, amount1In, reserve0, reserve1) {
		return types.SwapRecord{}, types.ErrInvariantViolated.Wrapf(
			"balances %s/%s with inputs %s/%s do not cover reserves %s/%s",
			balance0, balance1, amount0In, amount1In, reserve0, reserve1)
	}

	// 9. commit the observed balances
	ledger, err = k.commit(ctx, ledger, balance0, balance1)
	if err != nil {
		return types.SwapRecord{}, err
	}

	k.Logger().Info(types.EventTypeSwap,
		"recipient", recipient.String(),
		"amount0_in", amount0In.String(),
		"amount1_in", amount1In.String(),
		"amount0_out", amount0Out.String(),
		"amount1_out", amount1Out.String(),
	)

	return types.SwapRecord{
		Recipient:  recipient,
		Amount0In:  amount0In,
		Amount1In:  amount1In,
		Amount0Out: amount0Out,
		Amount1Out: amount1Out,
		Reserve0:   ledger.Reserve0,
		Reserve1:   ledger.Reserve1,
		Block:      ledger.LastUpdateBlock,
	}, nil
}

// poolBalances reads the pool's holdings of both assets from the token
// collaborator.
func (k *Keeper) poolBalances(ctx context.Context, ledger types.Ledger) (math.Int, math.Int, error) {
	pool := ledger.PoolAccount()
	balance0, err := k.tokenKeeper.BalanceOf(ctx, ledger.Asset0, pool)
	if err != nil {
		return math.Int{}, math.Int{}, types.NewTransferError(ledger.Asset0, "balance_of", err)
	}
	balance1, err := k.tokenKeeper.BalanceOf(ctx, ledger.Asset1, pool)
	if err != nil {
		return math.Int{}, math.Int{}, types.NewTransferError(ledger.Asset1, "balance_of", err)
	}
	return balance0, balance1, nil
}

// QuoteSwap returns the outputs a swap should request to trade amountIn of
// assetIn at the current reserves.
func (k *Keeper) QuoteSwap(ctx context.Context, assetIn onsen.AccountID, amountIn math.Int) (math.Int, math.Int, error) {
	ledger, err := k.GetLedger(ctx)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	switch assetIn {
	case ledger.Asset0:
		out, err := GetAmountOut(amountIn, ledger.Reserve0, ledger.Reserve1)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		return math.ZeroInt(), out, nil
	case ledger.Asset1:
		out, err := GetAmountOut(amountIn, ledger.Reserve1, ledger.Reserve0)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		return out, math.ZeroInt(), nil
	default:
		return math.Int{}, math.Int{}, types.ErrInvalidAssetPair.Wrapf("%s is not traded by this pool", assetIn)
	}
}
