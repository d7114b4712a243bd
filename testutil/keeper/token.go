package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/token/keeper"
	"github.com/onsenswap/onsenswap/x/token/types"
)

// TokenKeeper creates a test keeper for the token module over an in-memory DB
func TokenKeeper(t require.TestingT) (*keeper.Keeper, context.Context) {
	k := keeper.NewKeeper(dbm.NewMemDB(), log.NewNopLogger())
	return k, context.Background()
}

// CreateTestToken creates a token owned by minter and mints supply to each holder
func CreateTestToken(t require.TestingT, k *keeper.Keeper, ctx context.Context, minter onsen.AccountID, symbol string, balances map[onsen.AccountID]math.Int) types.Token {
	token, err := k.CreateToken(ctx, minter, symbol, 6)
	require.NoError(t, err)
	for holder, amount := range balances {
		require.NoError(t, k.Mint(ctx, token.ID, minter, holder, amount))
	}
	return token
}
