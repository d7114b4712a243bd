package keeper

import (
	"context"
	"fmt"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePair handles the pool constructor
func (k msgServer) CreatePair(goCtx context.Context, msg *types.MsgCreatePair) (*types.MsgCreatePairResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePair: validate: %w", err)
	}

	ledger, err := k.InitPool(goCtx,
		onsen.MustAccountIDFromBech32(msg.Creator),
		onsen.MustAccountIDFromBech32(msg.Asset0),
		onsen.MustAccountIDFromBech32(msg.Asset1),
	)
	if err != nil {
		return nil, fmt.Errorf("CreatePair: %w", err)
	}

	return &types.MsgCreatePairResponse{Pool: ledger.PoolAccount().String()}, nil
}

// Swap handles token swaps
func (k msgServer) Swap(goCtx context.Context, msg *types.MsgSwap) (*types.MsgSwapResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Swap: validate: %w", err)
	}

	record, err := k.Keeper.Swap(goCtx, msg.Amount0Out, msg.Amount1Out, onsen.MustAccountIDFromBech32(msg.Recipient), msg.Data)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}

	return &types.MsgSwapResponse{Record: record}, nil
}

// Skim handles surplus sweeps
func (k msgServer) Skim(goCtx context.Context, msg *types.MsgSkim) (*types.MsgSkimResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Skim: validate: %w", err)
	}

	amount0, amount1, err := k.Keeper.Skim(goCtx,
		onsen.MustAccountIDFromBech32(msg.Caller),
		onsen.MustAccountIDFromBech32(msg.Recipient),
	)
	if err != nil {
		return nil, fmt.Errorf("Skim: %w", err)
	}

	return &types.MsgSkimResponse{Amount0: amount0, Amount1: amount1}, nil
}

// TransferOwnership handles owner handover
func (k msgServer) TransferOwnership(goCtx context.Context, msg *types.MsgTransferOwnership) (*types.MsgOwnershipResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("TransferOwnership: validate: %w", err)
	}

	newOwner := onsen.MustAccountIDFromBech32(msg.NewOwner)
	if err := k.Keeper.TransferOwnership(goCtx, onsen.MustAccountIDFromBech32(msg.Caller), newOwner); err != nil {
		return nil, fmt.Errorf("TransferOwnership: %w", err)
	}

	return &types.MsgOwnershipResponse{Owner: newOwner.String()}, nil
}

// RenounceOwnership handles owner removal
func (k msgServer) RenounceOwnership(goCtx context.Context, msg *types.MsgRenounceOwnership) (*types.MsgOwnershipResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RenounceOwnership: validate: %w", err)
	}

	if err := k.Keeper.RenounceOwnership(goCtx, onsen.MustAccountIDFromBech32(msg.Caller)); err != nil {
		return nil, fmt.Errorf("RenounceOwnership: %w", err)
	}

	return &types.MsgOwnershipResponse{Owner: onsen.ZeroAccountID.String()}, nil
}
