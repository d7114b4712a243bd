package keeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/onsenswap/onsenswap/x/pair/types"
)

// InitGenesis initializes the pair module's state from a genesis state.
// This is how reserves from an earlier liquidity event are seeded.
func (k *Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid pair genesis state: %w", err)
	}
	if genState.Ledger == nil {
		return nil
	}

	exists, err := k.HasLedger(ctx)
	if err != nil {
		return err
	}
	if exists {
		return types.ErrPoolAlreadyExists
	}
	if err := k.setLedger(ctx, *genState.Ledger); err != nil {
		return fmt.Errorf("failed to set ledger: %w", err)
	}

	k.Logger().Info("imported pair ledger", "ledger", genState.Ledger.String())
	return nil
}

// ExportGenesis returns the pair module's exported genesis.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()

	ledger, err := k.GetLedger(ctx)
	if errors.Is(err, types.ErrPoolNotFound) {
		return genesis, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to export ledger: %w", err)
	}

	genesis.Ledger = &ledger
	return genesis, nil
}
