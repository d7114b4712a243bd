package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/onsenswap/onsenswap/testutil/keeper"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

func TestGenesis_Empty(t *testing.T) {
	f := keepertest.PairKeeper(t)

	require.NoError(t, f.Keeper.InitGenesis(f.Ctx, *types.DefaultGenesis()))

	exported, err := f.Keeper.ExportGenesis(f.Ctx)
	require.NoError(t, err)
	require.Nil(t, exported.Ledger)
}

func TestGenesis_RoundTrip(t *testing.T) {
	f := keepertest.PairKeeperWithPool(t, math.NewInt(1000), math.NewInt(1000))
	f.Deposit(t, f.Asset0, math.NewInt(1000))
	_, err := f.Keeper.Swap(f.Ctx, math.ZeroInt(), math.NewInt(300), trader, nil)
	require.NoError(t, err)
	require.NoError(t, f.Keeper.TransferOwnership(f.Ctx, f.Owner, trader))

	exported, err := f.Keeper.ExportGenesis(f.Ctx)
	require.NoError(t, err)
	require.NotNil(t, exported.Ledger)
	require.NoError(t, exported.Validate())

	g := keepertest.PairKeeper(t)
	require.NoError(t, g.Keeper.InitGenesis(g.Ctx, *exported))

	ledger, err := g.Keeper.GetLedger(g.Ctx)
	require.NoError(t, err)
	require.Equal(t, exported.Ledger.String(), ledger.String())
	require.Equal(t, trader, ledger.Owner)
	require.Equal(t, f.Owner, ledger.Factory)
	require.Equal(t, math.NewInt(2000), ledger.Reserve0)
	require.Equal(t, math.NewInt(700), ledger.Reserve1)
}

func TestGenesis_AlreadyInitialized(t *testing.T) {
	f := keepertest.PairKeeperWithPool(t, math.NewInt(1000), math.NewInt(1000))

	exported, err := f.Keeper.ExportGenesis(f.Ctx)
	require.NoError(t, err)
	require.ErrorIs(t, f.Keeper.InitGenesis(f.Ctx, *exported), types.ErrPoolAlreadyExists)
}

func TestGenesis_Invalid(t *testing.T) {
	f := keepertest.PairKeeper(t)

	ledger := types.NewLedger(f.Owner, f.Asset0, f.Asset1, 1)
	ledger.Reserve0 = math.NewInt(10)

	err := f.Keeper.InitGenesis(f.Ctx, types.GenesisState{Ledger: &ledger})
	require.ErrorIs(t, err, types.ErrInvalidLedger)

	exists, err := f.Keeper.HasLedger(f.Ctx)
	require.NoError(t, err)
	require.False(t, exists)
}
