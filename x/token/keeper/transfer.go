package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/token/types"
)

// BalanceOf returns the amount of token held by owner.
func (k *Keeper) BalanceOf(ctx context.Context, token, owner onsen.AccountID) (math.Int, error) {
	exists, err := k.db.Has(types.GetTokenKey(token[:]))
	if err != nil {
		return math.Int{}, err
	}
	if !exists {
		return math.Int{}, types.ErrTokenNotFound.Wrapf("token %s", token)
	}
	return k.getBalance(token, owner)
}

// GetAllBalances returns every non-zero balance of a token.
func (k *Keeper) GetAllBalances(ctx context.Context, token onsen.AccountID) ([]types.Balance, error) {
	iter, err := dbm.NewPrefixDB(k.db, types.GetBalancePrefix(token[:])).Iterator(nil, nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var balances []types.Balance
	for ; iter.Valid(); iter.Next() {
		var holder onsen.AccountID
		if len(iter.Key()) != onsen.AccountIDLen {
			return nil, types.ErrStateCorruption.Wrapf("balance key %X", iter.Key())
		}
		copy(holder[:], iter.Key())

		var amount math.Int
		if err := amount.Unmarshal(iter.Value()); err != nil {
			return nil, types.ErrStateCorruption.Wrapf("balance of %s: %v", holder, err)
		}
		balances = append(balances, types.Balance{Token: token, Holder: holder, Amount: amount})
	}
	return balances, iter.Error()
}

// Transfer moves value of token between holders without payload.
func (k *Keeper) Transfer(ctx context.Context, token, from, to onsen.AccountID, value math.Int) error {
	return k.TransferFrom(ctx, token, from, to, value, nil)
}

// TransferFrom moves value of token from one holder to another. If to has a
// registered receiver it is called with data once the balances are updated;
// a rejection moves the value back and fails the transfer. Zero-value
// transfers succeed.
func (k *Keeper) TransferFrom(ctx context.Context, token, from, to onsen.AccountID, value math.Int, data []byte) error {
	if value.IsNil() || value.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("transfer amount must be non-negative, got %v", value)
	}
	if from.Empty() || to.Empty() {
		return onsen.ErrInvalidAccount.Wrap("transfer endpoints must be non-zero")
	}

	if err := k.move(ctx, token, from, to, value); err != nil {
		return err
	}

	k.Logger().Debug("transferred", "token", token.String(), "from", from.String(), "to", to.String(), "amount", value.String())

	r := k.receiver(to)
	if r == nil {
		return nil
	}
	if err := r.OnReceived(ctx, token, from, to, value, data); err != nil {
		if revertErr := k.move(ctx, token, to, from, value); revertErr != nil {
			k.Logger().Error("failed to revert rejected transfer", "token", token.String(), "to", to.String(), "error", revertErr)
			return fmt.Errorf("%w: %w; revert failed: %v", types.ErrReceiverRejected, err, revertErr)
		}
		return fmt.Errorf("%w: %s rejected %s: %w", types.ErrReceiverRejected, to, value, err)
	}
	return nil
}

// move debits from and credits to in one batch.
func (k *Keeper) move(ctx context.Context, token, from, to onsen.AccountID, value math.Int) error {
	fromBal, err := k.BalanceOf(ctx, token, from)
	if err != nil {
		return err
	}
	if fromBal.LT(value) {
		return types.ErrInsufficientBalance.Wrapf("%s holds %s, needs %s", from, fromBal, value)
	}
	if from == to || value.IsZero() {
		return nil
	}
	toBal, err := k.getBalance(token, to)
	if err != nil {
		return err
	}

	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setBalance(batch, token, from, fromBal.Sub(value)); err != nil {
		return err
	}
	if err := k.setBalance(batch, token, to, toBal.Add(value)); err != nil {
		return err
	}
	return batch.Write()
}

func (k *Keeper) getBalance(token, holder onsen.AccountID) (math.Int, error) {
	bz, err := k.db.Get(types.GetBalanceKey(token[:], holder[:]))
	if err != nil {
		return math.Int{}, err
	}
	if bz == nil {
		return math.ZeroInt(), nil
	}

	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		return math.Int{}, types.ErrStateCorruption.Wrapf("balance of %s: %v", holder, err)
	}
	return amount, nil
}

func (k *Keeper) setBalance(batch dbm.Batch, token, holder onsen.AccountID, amount math.Int) error {
	key := types.GetBalanceKey(token[:], holder[:])
	if amount.IsZero() {
		return batch.Delete(key)
	}
	bz, err := amount.Marshal()
	if err != nil {
		return err
	}
	return batch.Set(key, bz)
}
