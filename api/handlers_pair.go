package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
)

// handleStatus describes the node
func (s *Server) handleStatus(c *gin.Context) {
	initialized, err := s.node.Initialized()
	if err != nil {
		respondError(c, err)
		return
	}
	chainID, err := s.node.ChainID()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		ChainID:     chainID,
		Height:      s.node.Height(),
		Initialized: initialized,
		TxEnabled:   s.config.EnableTx,
	})
}

// queryPair runs fn against the pair query server under the node's read lock
func (s *Server) queryPair(c *gin.Context, fn func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error)) {
	var resp interface{}
	err := s.node.Query(c.Request.Context(), func(ctx context.Context) error {
		var err error
		resp, err = fn(ctx, s.node.PairQueryServer())
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleGetLedger returns the whole pool ledger
func (s *Server) handleGetLedger(c *gin.Context) {
	s.queryPair(c, func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error) {
		return qs.Ledger(ctx, &pairtypes.QueryLedgerRequest{})
	})
}

// handleGetReserves returns both reserves and the last update block
func (s *Server) handleGetReserves(c *gin.Context) {
	s.queryPair(c, func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error) {
		return qs.Reserves(ctx, &pairtypes.QueryReservesRequest{})
	})
}

// handleGetKLast returns the invariant checkpoint
func (s *Server) handleGetKLast(c *gin.Context) {
	s.queryPair(c, func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error) {
		return qs.KLast(ctx, &pairtypes.QueryKLastRequest{})
	})
}

// handleGetOwner returns the owner and factory
func (s *Server) handleGetOwner(c *gin.Context) {
	s.queryPair(c, func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error) {
		return qs.Owner(ctx, &pairtypes.QueryOwnerRequest{})
	})
}

// handleGetQuote prices ?asset_in=&amount_in=
func (s *Server) handleGetQuote(c *gin.Context) {
	v := &ValidationErrors{}
	assetIn := v.Account("asset_in", c.Query("asset_in"))
	amountIn := v.Amount("amount_in", c.Query("amount_in"))
	if v.HasErrors() {
		respondError(c, v)
		return
	}

	s.queryPair(c, func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error) {
		return qs.Quote(ctx, &pairtypes.QueryQuoteRequest{AssetIn: assetIn.String(), AmountIn: amountIn})
	})
}

// handleGetRecentSwaps returns the journal, newest first
func (s *Server) handleGetRecentSwaps(c *gin.Context) {
	v := &ValidationErrors{}
	limit := parseLimit(c, v)
	if v.HasErrors() {
		respondError(c, v)
		return
	}

	swaps := s.node.Journal.Recent(limit)
	c.JSON(http.StatusOK, SwapsResponse{Swaps: swaps, Count: len(swaps)})
}

// handleGetInvariants runs the ledger audit
func (s *Server) handleGetInvariants(c *gin.Context) {
	msg, broken := s.node.CheckInvariants(c.Request.Context())
	status := http.StatusOK
	if broken {
		status = http.StatusConflict
	}
	c.JSON(status, InvariantsResponse{Broken: broken, Message: msg})
}
