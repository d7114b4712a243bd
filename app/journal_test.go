package app

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	onsen "github.com/onsenswap/onsenswap/types"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
)

func TestSwapJournal_Bounded(t *testing.T) {
	j := NewSwapJournal(log.NewNopLogger(), 3)
	for i := uint64(1); i <= 5; i++ {
		require.NoError(t, j.AfterSwap(context.Background(), pairtypes.SwapRecord{Block: i}))
	}

	recent := j.Recent(0)
	require.Len(t, recent, 3)
	require.Equal(t, []uint64{5, 4, 3}, []uint64{recent[0].Block, recent[1].Block, recent[2].Block})
	require.Len(t, j.Recent(2), 2)
}

func TestSwapJournal_Disabled(t *testing.T) {
	j := NewSwapJournal(log.NewNopLogger(), 0)
	require.NoError(t, j.AfterSwap(context.Background(), pairtypes.SwapRecord{Block: 1}))
	require.Empty(t, j.Recent(10))

	require.NoError(t, j.AfterSkim(context.Background(), onsen.TestAccountID("sweeper"), math.OneInt(), math.ZeroInt()))
	require.Equal(t, uint64(1), j.Skims())
}

func TestBlockClock_Persists(t *testing.T) {
	db := dbm.NewMemDB()

	clock, err := NewBlockClock(db, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), clock.Height())
	require.NoError(t, clock.Advance())
	require.NoError(t, clock.Advance())

	reloaded, err := NewBlockClock(db, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(3), reloaded.CurrentBlock(context.Background()))

	require.NoError(t, db.Set(heightKey, []byte{1}))
	_, err = NewBlockClock(db, 1)
	require.Error(t, err)
}
