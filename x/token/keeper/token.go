package keeper

import (
	"context"
	"encoding/json"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"

	onsen "github.com/onsenswap/onsenswap/types"
	sharedkeeper "github.com/onsenswap/onsenswap/x/shared/keeper"
	"github.com/onsenswap/onsenswap/x/token/types"
)

// CreateToken registers a new token with zero supply. Only its minter may
// mint it.
func (k *Keeper) CreateToken(ctx context.Context, minter onsen.AccountID, symbol string, decimals uint32) (types.Token, error) {
	if minter.Empty() {
		return types.Token{}, onsen.ErrInvalidAccount.Wrap("minter must be set")
	}
	if err := types.ValidateSymbol(symbol); err != nil {
		return types.Token{}, err
	}

	token := types.Token{
		ID:          types.TokenID(minter, symbol),
		Symbol:      symbol,
		Decimals:    decimals,
		Minter:      minter,
		TotalSupply: math.ZeroInt(),
	}
	exists, err := k.db.Has(types.GetTokenKey(token.ID[:]))
	if err != nil {
		return types.Token{}, err
	}
	if exists {
		return types.Token{}, types.ErrTokenExists.Wrapf("%s already created by %s", symbol, minter)
	}
	if err := k.setToken(token); err != nil {
		return types.Token{}, err
	}

	k.Logger().Info("token created", "token", token.ID.String(), "symbol", symbol, "minter", minter.String())
	return token, nil
}

// GetToken returns a token's metadata.
func (k *Keeper) GetToken(ctx context.Context, id onsen.AccountID) (types.Token, error) {
	bz, err := k.db.Get(types.GetTokenKey(id[:]))
	if err != nil {
		return types.Token{}, err
	}
	if bz == nil {
		return types.Token{}, types.ErrTokenNotFound.Wrapf("token %s", id)
	}

	var token types.Token
	if err := json.Unmarshal(bz, &token); err != nil {
		return types.Token{}, types.ErrStateCorruption.Wrapf("token %s: %v", id, err)
	}
	return token, nil
}

// GetAllTokens returns every registered token ordered by identity.
func (k *Keeper) GetAllTokens(ctx context.Context) ([]types.Token, error) {
	iter, err := dbm.NewPrefixDB(k.db, types.TokenKeyPrefix).Iterator(nil, nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var tokens []types.Token
	for ; iter.Valid(); iter.Next() {
		var token types.Token
		if err := json.Unmarshal(iter.Value(), &token); err != nil {
			return nil, types.ErrStateCorruption.Wrapf("token %X: %v", iter.Key(), err)
		}
		tokens = append(tokens, token)
	}
	return tokens, iter.Error()
}

// TotalSupply returns the amount of a token in existence.
func (k *Keeper) TotalSupply(ctx context.Context, id onsen.AccountID) (math.Int, error) {
	token, err := k.GetToken(ctx, id)
	if err != nil {
		return math.Int{}, err
	}
	return token.TotalSupply, nil
}

// Mint creates amount of a token and credits it to to. Minting does not
// notify receivers.
func (k *Keeper) Mint(ctx context.Context, id, minter, to onsen.AccountID, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("mint amount must be positive")
	}
	if to.Empty() {
		return onsen.ErrInvalidAccount.Wrap("cannot mint to the zero account")
	}

	token, err := k.GetToken(ctx, id)
	if err != nil {
		return err
	}
	if err := sharedkeeper.ValidateAuthority(token.Minter, minter); err != nil {
		return sdkerrors.Wrapf(err, "mint %s", token.Symbol)
	}

	supply, err := token.TotalSupply.SafeAdd(amount)
	if err != nil {
		return types.ErrSupplyOverflow.Wrapf("%s: %v", token.Symbol, err)
	}
	balance, err := k.BalanceOf(ctx, id, to)
	if err != nil {
		return err
	}
	// supply bounds every balance, so this cannot overflow once supply fits
	balance = balance.Add(amount)

	token.TotalSupply = supply
	tokenBz, err := json.Marshal(token)
	if err != nil {
		return err
	}
	balanceBz, err := balance.Marshal()
	if err != nil {
		return err
	}

	batch := k.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(types.GetTokenKey(id[:]), tokenBz); err != nil {
		return err
	}
	if err := batch.Set(types.GetBalanceKey(id[:], to[:]), balanceBz); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}

	k.Logger().Info("minted", "token", token.Symbol, "to", to.String(), "amount", amount.String())
	return nil
}

func (k *Keeper) setToken(token types.Token) error {
	bz, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return k.db.Set(types.GetTokenKey(token.ID[:]), bz)
}
