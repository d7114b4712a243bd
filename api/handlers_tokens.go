package api

import (
	"context"
	"net/http"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"

	tokentypes "github.com/onsenswap/onsenswap/x/token/types"
)

// handleGetTokens lists every token
func (s *Server) handleGetTokens(c *gin.Context) {
	var tokens []tokentypes.Token
	err := s.node.Query(c.Request.Context(), func(ctx context.Context) error {
		var err error
		tokens, err = s.node.TokenKeeper.GetAllTokens(ctx)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokensResponse{Tokens: tokens, Count: len(tokens)})
}

// handleGetToken returns token metadata
func (s *Server) handleGetToken(c *gin.Context) {
	v := &ValidationErrors{}
	id := v.Account("token", c.Param("token"))
	if v.HasErrors() {
		respondError(c, v)
		return
	}

	var token tokentypes.Token
	err := s.node.Query(c.Request.Context(), func(ctx context.Context) error {
		var err error
		token, err = s.node.TokenKeeper.GetToken(ctx, id)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// handleGetBalances lists every holder of a token
func (s *Server) handleGetBalances(c *gin.Context) {
	v := &ValidationErrors{}
	id := v.Account("token", c.Param("token"))
	if v.HasErrors() {
		respondError(c, v)
		return
	}

	var balances []tokentypes.Balance
	err := s.node.Query(c.Request.Context(), func(ctx context.Context) error {
		if _, err := s.node.TokenKeeper.GetToken(ctx, id); err != nil {
			return err
		}
		var err error
		balances, err = s.node.TokenKeeper.GetAllBalances(ctx, id)
		return err
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, BalancesResponse{Balances: balances, Count: len(balances)})
}

// handleGetBalance returns one holder's balance
func (s *Server) handleGetBalance(c *gin.Context) {
	v := &ValidationErrors{}
	token := v.Account("token", c.Param("token"))
	holder := v.Account("holder", c.Param("holder"))
	if v.HasErrors() {
		respondError(c, v)
		return
	}

	balance, err := s.node.Balance(c.Request.Context(), token, holder)
	if err != nil {
		respondError(c, err)
		return
	}
	if balance.IsNil() {
		balance = math.ZeroInt()
	}
	c.JSON(http.StatusOK, BalanceResponse{
		Token:   token.String(),
		Holder:  holder.String(),
		Balance: balance.String(),
	})
}
