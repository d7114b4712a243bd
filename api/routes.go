package api

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/status", s.handleStatus)

		// Pair routes (public)
		pair := api.Group("/pair")
		{
			pair.GET("", s.handleGetLedger)
			pair.GET("/reserves", s.handleGetReserves)
			pair.GET("/k-last", s.handleGetKLast)
			pair.GET("/owner", s.handleGetOwner)
			pair.GET("/quote", s.handleGetQuote)
			pair.GET("/swaps", s.handleGetRecentSwaps)
			pair.GET("/invariants", s.handleGetInvariants)
		}

		// Token routes (public)
		tokens := api.Group("/tokens")
		{
			tokens.GET("", s.handleGetTokens)
			tokens.GET("/:token", s.handleGetToken)
			tokens.GET("/:token/balances", s.handleGetBalances)
			tokens.GET("/:token/balances/:holder", s.handleGetBalance)
		}

		// Transaction routes. Callers are taken from the request body
		// unsigned, so these exist on dev nodes only.
		if s.config.EnableTx {
			tx := api.Group("/tx")
			tx.Use(AuditMiddleware(s.auditLogger, s.node.Height), AuthMiddleware(s.auth, s.auditLogger))
			{
				tx.POST("/tokens", s.handleCreateToken)
				tx.POST("/mint", s.handleMint)
				tx.POST("/transfer", s.handleTransfer)
				tx.POST("/pair", s.handleCreatePair)
				tx.POST("/swap", s.handleSwap)
				tx.POST("/swap-exact-in", s.handleSwapExactIn)
				tx.POST("/skim", s.handleSkim)
				tx.POST("/ownership/transfer", s.handleTransferOwnership)
				tx.POST("/ownership/renounce", s.handleRenounceOwnership)
			}
		}
	}
}
