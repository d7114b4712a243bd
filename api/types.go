package api

import (
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
	tokentypes "github.com/onsenswap/onsenswap/x/token/types"
)

// ==================== Transaction Requests ====================
// Accounts are bech32 strings, amounts are base-10 integer strings.

// CreateTokenRequest registers a token
type CreateTokenRequest struct {
	Minter   string `json:"minter" binding:"required"`
	Symbol   string `json:"symbol" binding:"required"`
	Decimals uint32 `json:"decimals"`
}

// MintRequest credits new supply
type MintRequest struct {
	Token  string `json:"token" binding:"required"`
	Minter string `json:"minter" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// TransferRequest moves tokens; sending to the pool is how a swap is paid
type TransferRequest struct {
	Token  string `json:"token" binding:"required"`
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// CreatePairRequest constructs the pool
type CreatePairRequest struct {
	Creator string `json:"creator" binding:"required"`
	Asset0  string `json:"asset0" binding:"required"`
	Asset1  string `json:"asset1" binding:"required"`
}

// SwapRequest is a raw swap against inputs already in the pool
type SwapRequest struct {
	Recipient  string `json:"recipient" binding:"required"`
	Amount0Out string `json:"amount0_out" binding:"required"`
	Amount1Out string `json:"amount1_out" binding:"required"`
	Data       []byte `json:"data,omitempty"`
}

// SwapExactInRequest deposits AmountIn of AssetIn and swaps it at the quote
type SwapExactInRequest struct {
	Trader   string `json:"trader" binding:"required"`
	AssetIn  string `json:"asset_in" binding:"required"`
	AmountIn string `json:"amount_in" binding:"required"`
	MinOut   string `json:"min_out,omitempty"`
}

// SkimRequest sweeps surplus balances
type SkimRequest struct {
	Caller    string `json:"caller" binding:"required"`
	Recipient string `json:"recipient" binding:"required"`
}

// TransferOwnershipRequest hands the owner capability on
type TransferOwnershipRequest struct {
	Caller   string `json:"caller" binding:"required"`
	NewOwner string `json:"new_owner" binding:"required"`
}

// RenounceOwnershipRequest clears the owner
type RenounceOwnershipRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// ==================== Responses ====================

// TxResponse wraps the result of a committed operation
type TxResponse struct {
	Height uint64      `json:"height"`
	Result interface{} `json:"result,omitempty"`
}

// StatusResponse describes the node
type StatusResponse struct {
	ChainID     string `json:"chain_id"`
	Height      uint64 `json:"height"`
	Initialized bool   `json:"initialized"`
	TxEnabled   bool   `json:"tx_enabled"`
}

// SwapsResponse lists recent swaps, newest first
type SwapsResponse struct {
	Swaps []pairtypes.SwapRecord `json:"swaps"`
	Count int                    `json:"count"`
}

// InvariantsResponse reports the ledger audit
type InvariantsResponse struct {
	Broken  bool   `json:"broken"`
	Message string `json:"message"`
}

// TokensResponse lists tokens
type TokensResponse struct {
	Tokens []tokentypes.Token `json:"tokens"`
	Count  int                `json:"count"`
}

// BalanceResponse is one holder's balance
type BalanceResponse struct {
	Token   string `json:"token"`
	Holder  string `json:"holder"`
	Balance string `json:"balance"`
}

// BalancesResponse lists every holder of a token
type BalancesResponse struct {
	Balances []tokentypes.Balance `json:"balances"`
	Count    int                  `json:"count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
