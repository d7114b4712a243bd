package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	keepertest "github.com/onsenswap/onsenswap/testutil/keeper"
	"github.com/onsenswap/onsenswap/x/pair/keeper"
)

// TestCommit_SameBlock does not touch the price accumulator path
func TestCommit_SameBlock(t *testing.T) {
	f := keepertest.PairKeeperWithPool(t, math.NewInt(1000), math.NewInt(1000))
	skips := testutil.ToFloat64(keeper.NewPairMetrics().AccumulatorSkips)

	f.Deposit(t, f.Asset0, math.NewInt(1000))
	_, err := f.Keeper.Swap(f.Ctx, math.ZeroInt(), math.NewInt(10), trader, nil)
	require.NoError(t, err)

	require.Equal(t, skips, testutil.ToFloat64(keeper.NewPairMetrics().AccumulatorSkips))
}

// TestCommit_NewBlock crosses a block boundary with non-empty reserves: the
// accumulator update is skipped but reserves and block are still committed.
func TestCommit_NewBlock(t *testing.T) {
	f := keepertest.PairKeeperWithPool(t, math.NewInt(1000), math.NewInt(1000))
	skips := testutil.ToFloat64(keeper.NewPairMetrics().AccumulatorSkips)
	f.Blocks.Advance(5)

	f.Deposit(t, f.Asset0, math.NewInt(1000))
	_, err := f.Keeper.Swap(f.Ctx, math.ZeroInt(), math.NewInt(10), trader, nil)
	require.NoError(t, err)

	require.Equal(t, skips+1, testutil.ToFloat64(keeper.NewPairMetrics().AccumulatorSkips))
	r0, r1, block := f.Reserves(t)
	require.Equal(t, math.NewInt(2000), r0)
	require.Equal(t, math.NewInt(990), r1)
	require.Equal(t, uint64(6), block)
}

// TestCommit_KLastUnchanged keeps the checkpoint across swaps
func TestCommit_KLastUnchanged(t *testing.T) {
	f := keepertest.PairKeeperWithPool(t, math.NewInt(1000), math.NewInt(1000))
	f.Deposit(t, f.Asset0, math.NewInt(1000))

	_, err := f.Keeper.Swap(f.Ctx, math.ZeroInt(), math.NewInt(10), trader, nil)
	require.NoError(t, err)

	kLast, err := f.Keeper.GetKLast(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1000000), kLast)
}
