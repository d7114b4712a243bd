package app

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
	tokentypes "github.com/onsenswap/onsenswap/x/token/types"
)

// CreateToken registers a token minted by minter.
func (app *OnsenApp) CreateToken(ctx context.Context, minter onsen.AccountID, symbol string, decimals uint32) (tokentypes.Token, error) {
	var token tokentypes.Token
	err := app.Execute(ctx, "create_token", func(ctx context.Context) error {
		var err error
		token, err = app.TokenKeeper.CreateToken(ctx, minter, symbol, decimals)
		return err
	})
	return token, err
}

// Mint credits amount of token to to.
func (app *OnsenApp) Mint(ctx context.Context, token, minter, to onsen.AccountID, amount math.Int) error {
	return app.Execute(ctx, "mint", func(ctx context.Context) error {
		return app.TokenKeeper.Mint(ctx, token, minter, to, amount)
	})
}

// Transfer moves amount of token between holders. Sending to the pool
// account is how a trader pays into a swap.
func (app *OnsenApp) Transfer(ctx context.Context, token, from, to onsen.AccountID, amount math.Int) error {
	return app.Execute(ctx, "transfer", func(ctx context.Context) error {
		return app.TokenKeeper.Transfer(ctx, token, from, to, amount)
	})
}

// CreatePair constructs the pool.
func (app *OnsenApp) CreatePair(ctx context.Context, msg *pairtypes.MsgCreatePair) (*pairtypes.MsgCreatePairResponse, error) {
	var resp *pairtypes.MsgCreatePairResponse
	err := app.Execute(ctx, "create_pair", func(ctx context.Context) error {
		var err error
		resp, err = app.pairMsgServer.CreatePair(ctx, msg)
		return err
	})
	return resp, err
}

// Swap executes a raw swap: inputs must already be in the pool.
func (app *OnsenApp) Swap(ctx context.Context, msg *pairtypes.MsgSwap) (*pairtypes.MsgSwapResponse, error) {
	var resp *pairtypes.MsgSwapResponse
	err := app.Execute(ctx, "swap", func(ctx context.Context) error {
		var err error
		resp, err = app.pairMsgServer.Swap(ctx, msg)
		return err
	})
	return resp, err
}

// SwapExactIn deposits amountIn of assetIn from trader and swaps it for the
// quoted output, failing if that is below minOut. Deposit and swap share one
// block; if the swap fails the deposit is returned.
func (app *OnsenApp) SwapExactIn(
	ctx context.Context,
	trader, assetIn onsen.AccountID,
	amountIn, minOut math.Int,
) (*pairtypes.MsgSwapResponse, error) {
	var resp *pairtypes.MsgSwapResponse
	err := app.Execute(ctx, "swap_exact_in", func(ctx context.Context) error {
		out0, out1, err := app.PairKeeper.QuoteSwap(ctx, assetIn, amountIn)
		if err != nil {
			return err
		}
		if !minOut.IsNil() && out0.Add(out1).LT(minOut) {
			return pairtypes.ErrInsufficientOutputAmount.Wrapf("quote %s is below minimum %s", out0.Add(out1), minOut)
		}

		pool, err := app.PairKeeper.PoolAccount(ctx)
		if err != nil {
			return err
		}
		if err := app.TokenKeeper.Transfer(ctx, assetIn, trader, pool, amountIn); err != nil {
			return fmt.Errorf("deposit: %w", err)
		}

		resp, err = app.pairMsgServer.Swap(ctx, &pairtypes.MsgSwap{
			Recipient:  trader.String(),
			Amount0Out: out0,
			Amount1Out: out1,
		})
		if err != nil {
			if refundErr := app.TokenKeeper.Transfer(ctx, assetIn, pool, trader, amountIn); refundErr != nil {
				app.logger.Error("failed to refund swap deposit", "trader", trader.String(), "amount", amountIn.String(), "error", refundErr)
			}
			return err
		}
		return nil
	})
	return resp, err
}

// Skim sweeps surplus balances. Owner only.
func (app *OnsenApp) Skim(ctx context.Context, msg *pairtypes.MsgSkim) (*pairtypes.MsgSkimResponse, error) {
	var resp *pairtypes.MsgSkimResponse
	err := app.Execute(ctx, "skim", func(ctx context.Context) error {
		var err error
		resp, err = app.pairMsgServer.Skim(ctx, msg)
		return err
	})
	return resp, err
}

// TransferOwnership hands the owner capability on.
func (app *OnsenApp) TransferOwnership(ctx context.Context, msg *pairtypes.MsgTransferOwnership) (*pairtypes.MsgOwnershipResponse, error) {
	var resp *pairtypes.MsgOwnershipResponse
	err := app.Execute(ctx, "transfer_ownership", func(ctx context.Context) error {
		var err error
		resp, err = app.pairMsgServer.TransferOwnership(ctx, msg)
		return err
	})
	return resp, err
}

// RenounceOwnership clears the owner.
func (app *OnsenApp) RenounceOwnership(ctx context.Context, msg *pairtypes.MsgRenounceOwnership) (*pairtypes.MsgOwnershipResponse, error) {
	var resp *pairtypes.MsgOwnershipResponse
	err := app.Execute(ctx, "renounce_ownership", func(ctx context.Context) error {
		var err error
		resp, err = app.pairMsgServer.RenounceOwnership(ctx, msg)
		return err
	})
	return resp, err
}

// Balance returns holder's balance of token.
func (app *OnsenApp) Balance(ctx context.Context, token, holder onsen.AccountID) (math.Int, error) {
	var balance math.Int
	err := app.Query(ctx, func(ctx context.Context) error {
		var err error
		balance, err = app.TokenKeeper.BalanceOf(ctx, token, holder)
		return err
	})
	return balance, err
}
