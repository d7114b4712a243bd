package keeper

import (
	"context"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/types"
	sharedkeeper "github.com/onsenswap/onsenswap/x/shared/keeper"
)

func onlyOwner(ledger types.Ledger, caller onsen.AccountID) error {
	if err := sharedkeeper.ValidateAuthority(ledger.Owner, caller); err != nil {
		return types.ErrNotOwner.Wrap(err.Error())
	}
	return nil
}

// TransferOwnership hands the owner capability to newOwner. Owner only.
func (k *Keeper) TransferOwnership(ctx context.Context, caller, newOwner onsen.AccountID) error {
	return k.setOwner(ctx, caller, newOwner, false)
}

// RenounceOwnership clears the owner. Skim is unavailable afterwards. Owner only.
func (k *Keeper) RenounceOwnership(ctx context.Context, caller onsen.AccountID) error {
	return k.setOwner(ctx, caller, onsen.ZeroAccountID, true)
}

func (k *Keeper) setOwner(ctx context.Context, caller, newOwner onsen.AccountID, renounce bool) error {
	ledger, err := k.GetLedger(ctx)
	if err != nil {
		return err
	}
	if err := onlyOwner(ledger, caller); err != nil {
		return err
	}
	if newOwner.Empty() && !renounce {
		return types.ErrNewOwnerIsZero
	}

	previous := ledger.Owner
	ledger.Owner = newOwner
	if err := k.setLedger(ctx, ledger); err != nil {
		return err
	}

	k.Logger().Info(types.EventTypeOwnershipTransfer,
		"previous_owner", previous.String(),
		"new_owner", newOwner.String(),
	)
	return nil
}
