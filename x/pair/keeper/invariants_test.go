package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/onsenswap/onsenswap/testutil/keeper"
	"github.com/onsenswap/onsenswap/x/pair/keeper"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

func TestInvariants_Healthy(t *testing.T) {
	f := keepertest.PairKeeperWithPool(t, math.NewInt(1000), math.NewInt(1000))
	f.Deposit(t, f.Asset0, math.NewInt(1000))
	_, err := f.Keeper.Swap(f.Ctx, math.ZeroInt(), math.NewInt(400), trader, nil)
	require.NoError(t, err)

	for _, route := range keeper.InvariantRoutes(f.Keeper) {
		msg, broken := route.Invariant(f.Ctx)
		require.False(t, broken, "%s: %s", route.Name, msg)
	}
	_, broken := keeper.AllInvariants(f.Keeper)(f.Ctx)
	require.False(t, broken)
}

func TestInvariants_NotInitialized(t *testing.T) {
	f := keepertest.PairKeeper(t)

	msg, broken := keeper.AllInvariants(f.Keeper)(f.Ctx)
	require.False(t, broken, msg)
}

func TestPoolBalancesInvariant_Broken(t *testing.T) {
	f := keepertest.PairKeeperWithPool(t, math.NewInt(1000), math.NewInt(1000))
	require.NoError(t, f.Tokens.Transfer(f.Ctx, f.Asset1, f.Pool, trader, math.NewInt(1)))

	msg, broken := keeper.PoolBalancesInvariant(f.Keeper)(f.Ctx)
	require.True(t, broken)
	require.Contains(t, msg, "found 1 asset(s) below reserve")

	_, broken = keeper.AllInvariants(f.Keeper)(f.Ctx)
	require.True(t, broken)
}

func TestKLastInvariant_Broken(t *testing.T) {
	f := keepertest.PairKeeper(t)

	ledger := types.NewLedger(f.Owner, f.Asset0, f.Asset1, 1)
	ledger.Reserve0 = math.NewInt(10)
	ledger.Reserve1 = math.NewInt(10)
	ledger.KLast = math.NewInt(101)
	require.NoError(t, f.Keeper.InitGenesis(f.Ctx, types.GenesisState{Ledger: &ledger}))

	msg, broken := keeper.KLastInvariant(f.Keeper)(f.Ctx)
	require.True(t, broken)
	require.Contains(t, msg, "k_last 101, reserve product 100")
}

func TestInvariants_CorruptedLedger(t *testing.T) {
	f := keepertest.PairKeeper(t)
	require.NoError(t, f.DB.Set(append([]byte(types.StoreKey), types.LedgerKey...), []byte("garbage")))

	_, broken := keeper.ReservesConsistencyInvariant(f.Keeper)(f.Ctx)
	require.True(t, broken)
}
