package keeper

import (
	"context"
	"fmt"

	"github.com/onsenswap/onsenswap/x/token/types"
)

// InitGenesis initializes the token module's state from a genesis state.
func (k *Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid token genesis state: %w", err)
	}

	for _, token := range genState.Tokens {
		if err := k.setToken(token); err != nil {
			return fmt.Errorf("failed to set token %s: %w", token.Symbol, err)
		}
	}

	batch := k.db.NewBatch()
	defer batch.Close()
	for _, bal := range genState.Balances {
		if err := k.setBalance(batch, bal.Token, bal.Holder, bal.Amount); err != nil {
			return fmt.Errorf("failed to set balance of %s: %w", bal.Holder, err)
		}
	}
	return batch.Write()
}

// ExportGenesis returns the token module's exported genesis.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()

	tokens, err := k.GetAllTokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export tokens: %w", err)
	}
	for _, token := range tokens {
		genesis.Tokens = append(genesis.Tokens, token)

		balances, err := k.GetAllBalances(ctx, token.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to export balances of %s: %w", token.Symbol, err)
		}
		genesis.Balances = append(genesis.Balances, balances...)
	}
	return genesis, nil
}
