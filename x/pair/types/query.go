package types

import (
	"context"

	"cosmossdk.io/math"
)

// QueryLedgerRequest asks for the full pool ledger.
type QueryLedgerRequest struct{}

// QueryLedgerResponse carries the ledger and the derived pool account.
type QueryLedgerResponse struct {
	Ledger Ledger `json:"ledger"`
	Pool   string `json:"pool"`
}

// QueryReservesRequest asks for the committed reserves.
type QueryReservesRequest struct{}

// QueryReservesResponse is the result of get_reserves.
type QueryReservesResponse struct {
	Reserve0        math.Int `json:"reserve0"`
	Reserve1        math.Int `json:"reserve1"`
	LastUpdateBlock uint64   `json:"last_update_block"`
}

// QueryKLastRequest asks for the invariant checkpoint.
type QueryKLastRequest struct{}

// QueryKLastResponse is the result of k_last.
type QueryKLastResponse struct {
	KLast math.Int `json:"k_last"`
}

// QueryOwnerRequest asks for the owner and factory identities.
type QueryOwnerRequest struct{}

// QueryOwnerResponse reports owner and factory. Owner is the zero account
// once renounced.
type QueryOwnerResponse struct {
	Owner   string `json:"owner"`
	Factory string `json:"factory"`
}

// QueryQuoteRequest prices a swap of AmountIn of AssetIn.
type QueryQuoteRequest struct {
	AssetIn  string   `json:"asset_in"`
	AmountIn math.Int `json:"amount_in"`
}

// QueryQuoteResponse holds the outputs to request from swap.
type QueryQuoteResponse struct {
	Amount0Out math.Int `json:"amount0_out"`
	Amount1Out math.Int `json:"amount1_out"`
}

// QueryServer is the read surface of the pair.
type QueryServer interface {
	Ledger(context.Context, *QueryLedgerRequest) (*QueryLedgerResponse, error)
	Reserves(context.Context, *QueryReservesRequest) (*QueryReservesResponse, error)
	KLast(context.Context, *QueryKLastRequest) (*QueryKLastResponse, error)
	Owner(context.Context, *QueryOwnerRequest) (*QueryOwnerResponse, error)
	Quote(context.Context, *QueryQuoteRequest) (*QueryQuoteResponse, error)
}
