package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
)

func (s *Server) respondTx(c *gin.Context, result interface{}, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TxResponse{Height: s.node.Height(), Result: result})
}

// handleCreateToken registers a token
func (s *Server) handleCreateToken(c *gin.Context) {
	var req CreateTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	v := &ValidationErrors{}
	minter := v.Account("minter", req.Minter)
	if v.HasErrors() {
		respondError(c, v)
		return
	}

	token, err := s.node.CreateToken(c.Request.Context(), minter, req.Symbol, req.Decimals)
	s.respondTx(c, token, err)
}

// handleMint credits new supply
func (s *Server) handleMint(c *gin.Context) {
	var req MintRequest
	if !bindJSON(c, &req) {
		return
	}
	v := &ValidationErrors{}
	token := v.Account("token", req.Token)
	minter := v.Account("minter", req.Minter)
	to := v.Account("to", req.To)
	amount := v.Amount("amount", req.Amount)
	if v.HasErrors() {
		respondError(c, v)
		return
	}

	err := s.node.Mint(c.Request.Context(), token, minter, to, amount)
	s.respondTx(c, nil, err)
}

// handleTransfer moves tokens between holders
func (s *Server) handleTransfer(c *gin.Context) {
	var req TransferRequest
	if !bindJSON(c, &req) {
		return
	}
	v := &ValidationErrors{}
	token := v.Account("token", req.Token)
	from := v.Account("from", req.From)
	to := v.Account("to", req.To)
	amount := v.Amount("amount", req.Amount)
	if v.HasErrors() {
		respondError(c, v)
		return
	}

	err := s.node.Transfer(c.Request.Context(), token, from, to, amount)
	s.respondTx(c, nil, err)
}

// handleCreatePair constructs the pool
func (s *Server) handleCreatePair(c *gin.Context) {
	var req CreatePairRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := s.node.CreatePair(c.Request.Context(), &pairtypes.MsgCreatePair{
		Creator: req.Creator,
		Asset0:  req.Asset0,
		Asset1:  req.Asset1,
	})
	s.respondTx(c, resp, err)
}

// handleSwap executes a raw swap
func (s *Server) handleSwap(c *gin.Context) {
	var req SwapRequest
	if !bindJSON(c, &req) {
		return
	}
	v := &ValidationErrors{}
	amount0Out := v.Amount("amount0_out", req.Amount0Out)
	amount1Out := v.Amount("amount1_out", req.Amount1Out)
	if v.HasErrors() {
		respondError(c, v)
		return
	}

	resp, err := s.node.Swap(c.Request.Context(), &pairtypes.MsgSwap{
		Recipient:  req.Recipient,
		Amount0Out: amount0Out,
		Amount1Out: amount1Out,
		Data:       req.Data,
	})
	s.respondTx(c, resp, err)
}

// handleSwapExactIn deposits and swaps at the quote
func (s *Server) handleSwapExactIn(c *gin.Context) {
	var req SwapExactInRequest
	if !bindJSON(c, &req) {
		return
	}
	v := &ValidationErrors{}
	trader := v.Account("trader", req.Trader)
	assetIn := v.Account("asset_in", req.AssetIn)
	amountIn := v.Amount("amount_in", req.AmountIn)
	minOut := v.OptionalAmount("min_out", req.MinOut)
	if v.HasErrors() {
		respondError(c, v)
		return
	}

	resp, err := s.node.SwapExactIn(c.Request.Context(), trader, assetIn, amountIn, minOut)
	s.respondTx(c, resp, err)
}

// handleSkim sweeps surplus balances
func (s *Server) handleSkim(c *gin.Context) {
	var req SkimRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := s.node.Skim(c.Request.Context(), &pairtypes.MsgSkim{
		Caller:    req.Caller,
		Recipient: req.Recipient,
	})
	s.respondTx(c, resp, err)
}

// handleTransferOwnership hands the owner capability on
func (s *Server) handleTransferOwnership(c *gin.Context) {
	var req TransferOwnershipRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := s.node.TransferOwnership(c.Request.Context(), &pairtypes.MsgTransferOwnership{
		Caller:   req.Caller,
		NewOwner: req.NewOwner,
	})
	s.respondTx(c, resp, err)
}

// handleRenounceOwnership clears the owner
func (s *Server) handleRenounceOwnership(c *gin.Context) {
	var req RenounceOwnershipRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := s.node.RenounceOwnership(c.Request.Context(), &pairtypes.MsgRenounceOwnership{Caller: req.Caller})
	s.respondTx(c, resp, err)
}
