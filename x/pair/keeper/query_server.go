package keeper

import (
	"context"
	"fmt"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

type queryServer struct {
	*Keeper
}

// NewQueryServerImpl returns an implementation of the pair QueryServer interface
func NewQueryServerImpl(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Ledger returns the stored ledger
func (qs queryServer) Ledger(goCtx context.Context, req *types.QueryLedgerRequest) (*types.QueryLedgerResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	ledger, err := qs.Keeper.GetLedger(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Ledger: %w", err)
	}

	return &types.QueryLedgerResponse{
		Ledger: ledger,
		Pool:   ledger.PoolAccount().String(),
	}, nil
}

// Reserves returns the committed reserves
func (qs queryServer) Reserves(goCtx context.Context, req *types.QueryReservesRequest) (*types.QueryReservesResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	reserve0, reserve1, block, err := qs.Keeper.GetReserves(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Reserves: %w", err)
	}

	return &types.QueryReservesResponse{
		Reserve0:        reserve0,
		Reserve1:        reserve1,
		LastUpdateBlock: block,
	}, nil
}

// KLast returns the invariant checkpoint
func (qs queryServer) KLast(goCtx context.Context, req *types.QueryKLastRequest) (*types.QueryKLastResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	kLast, err := qs.Keeper.GetKLast(goCtx)
	if err != nil {
		return nil, fmt.Errorf("KLast: %w", err)
	}

	return &types.QueryKLastResponse{KLast: kLast}, nil
}

// Owner returns the owner and factory identities
func (qs queryServer) Owner(goCtx context.Context, req *types.QueryOwnerRequest) (*types.QueryOwnerResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	ledger, err := qs.Keeper.GetLedger(goCtx)
	if err != nil {
		return nil, fmt.Errorf("Owner: %w", err)
	}

	return &types.QueryOwnerResponse{
		Owner:   ledger.Owner.String(),
		Factory: ledger.Factory.String(),
	}, nil
}

// Quote prices a swap at the current reserves
func (qs queryServer) Quote(goCtx context.Context, req *types.QueryQuoteRequest) (*types.QueryQuoteResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	assetIn, err := onsen.AccountIDFromBech32(req.AssetIn)
	if err != nil {
		return nil, fmt.Errorf("Quote: asset in: %w", err)
	}

	out0, out1, err := qs.Keeper.QuoteSwap(goCtx, assetIn, req.AmountIn)
	if err != nil {
		return nil, fmt.Errorf("Quote: %w", err)
	}

	return &types.QueryQuoteResponse{Amount0Out: out0, Amount1Out: out1}, nil
}
