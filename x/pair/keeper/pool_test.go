package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/onsenswap/onsenswap/testutil/keeper"
	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

func TestInitPool(t *testing.T) {
	f := keepertest.PairKeeper(t)
	f.Blocks.Advance(41)

	ledger, err := f.Keeper.InitPool(f.Ctx, f.Owner, f.Asset0, f.Asset1)
	require.NoError(t, err)
	require.Equal(t, f.Pool, ledger.PoolAccount())

	r0, r1, block := f.Reserves(t)
	require.True(t, r0.IsZero())
	require.True(t, r1.IsZero())
	require.Equal(t, uint64(42), block)

	kLast, err := f.Keeper.GetKLast(f.Ctx)
	require.NoError(t, err)
	require.True(t, kLast.IsZero())

	owner, err := f.Keeper.Owner(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, f.Owner, owner)

	factory, err := f.Keeper.Factory(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, f.Owner, factory)

	pool, err := f.Keeper.PoolAccount(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, f.Pool, pool)
}

func TestInitPool_Twice(t *testing.T) {
	f := keepertest.PairKeeper(t)

	_, err := f.Keeper.InitPool(f.Ctx, f.Owner, f.Asset0, f.Asset1)
	require.NoError(t, err)

	_, err = f.Keeper.InitPool(f.Ctx, trader, f.Asset0, f.Asset1)
	require.ErrorIs(t, err, types.ErrPoolAlreadyExists)

	owner, err := f.Keeper.Owner(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, f.Owner, owner)
}

func TestInitPool_Invalid(t *testing.T) {
	f := keepertest.PairKeeper(t)

	tests := []struct {
		name    string
		creator onsen.AccountID
		asset0  onsen.AccountID
		asset1  onsen.AccountID
		err     error
	}{
		{"identical assets", f.Owner, f.Asset0, f.Asset0, types.ErrInvalidAssetPair},
		{"zero asset0", f.Owner, onsen.ZeroAccountID, f.Asset1, types.ErrInvalidAssetPair},
		{"zero asset1", f.Owner, f.Asset0, onsen.ZeroAccountID, types.ErrInvalidAssetPair},
		{"zero creator", onsen.ZeroAccountID, f.Asset0, f.Asset1, onsen.ErrInvalidAccount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.Keeper.InitPool(f.Ctx, tc.creator, tc.asset0, tc.asset1)
			require.ErrorIs(t, err, tc.err)

			exists, err := f.Keeper.HasLedger(f.Ctx)
			require.NoError(t, err)
			require.False(t, exists)
		})
	}
}

func TestGetReserves_NotInitialized(t *testing.T) {
	f := keepertest.PairKeeper(t)

	_, _, _, err := f.Keeper.GetReserves(f.Ctx)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
	_, err = f.Keeper.GetKLast(f.Ctx)
	require.ErrorIs(t, err, types.ErrPoolNotFound)
}

func TestGetReserves_Idempotent(t *testing.T) {
	f := keepertest.PairKeeperWithPool(t, math.NewInt(1234), math.NewInt(5678))

	r0a, r1a, blockA := f.Reserves(t)
	r0b, r1b, blockB := f.Reserves(t)
	require.Equal(t, r0a, r0b)
	require.Equal(t, r1a, r1b)
	require.Equal(t, blockA, blockB)
}

func TestGetLedger_Corrupted(t *testing.T) {
	f := keepertest.PairKeeper(t)
	require.NoError(t, f.DB.Set(append([]byte(types.StoreKey), types.LedgerKey...), []byte("{not json")))

	_, err := f.Keeper.GetLedger(f.Ctx)
	require.ErrorIs(t, err, types.ErrStateCorruption)
}
