package types_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	onsen "github.com/onsenswap/onsenswap/types"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

var (
	creator = onsen.TestAccountID("creator")
	asset0  = onsen.TestAccountID("asset0")
	asset1  = onsen.TestAccountID("asset1")
)

func TestNewLedger(t *testing.T) {
	ledger := types.NewLedger(creator, asset0, asset1, 7)

	require.Equal(t, creator, ledger.Owner)
	require.Equal(t, creator, ledger.Factory)
	r0, r1, block := ledger.Reserves()
	require.True(t, r0.IsZero())
	require.True(t, r1.IsZero())
	require.Equal(t, uint64(7), block)
	require.NoError(t, ledger.Validate())
}

func TestPoolAccountID(t *testing.T) {
	pool := types.PoolAccountID(asset0, asset1)

	require.Equal(t, pool, types.PoolAccountID(asset0, asset1))
	require.NotEqual(t, pool, types.PoolAccountID(asset1, asset0))
	require.Equal(t, pool, types.NewLedger(creator, asset0, asset1, 1).PoolAccount())
}

func TestLedger_IsAsset(t *testing.T) {
	ledger := types.NewLedger(creator, asset0, asset1, 1)

	require.True(t, ledger.IsAsset(asset0))
	require.True(t, ledger.IsAsset(asset1))
	require.False(t, ledger.IsAsset(creator))
	require.False(t, ledger.IsAsset(ledger.PoolAccount()))
}

func TestLedger_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Ledger)
		err    error
	}{
		{name: "valid", mutate: func(*types.Ledger) {}},
		{
			name: "renounced owner is valid",
			mutate: func(l *types.Ledger) {
				l.Owner = onsen.ZeroAccountID
			},
		},
		{
			name: "funded",
			mutate: func(l *types.Ledger) {
				l.Reserve0 = math.NewInt(10)
				l.Reserve1 = math.NewInt(20)
				l.KLast = math.NewInt(200)
			},
		},
		{
			name:   "identical assets",
			mutate: func(l *types.Ledger) { l.Asset1 = l.Asset0 },
			err:    types.ErrInvalidAssetPair,
		},
		{
			name:   "zero asset",
			mutate: func(l *types.Ledger) { l.Asset0 = onsen.ZeroAccountID },
			err:    types.ErrInvalidAssetPair,
		},
		{
			name:   "missing factory",
			mutate: func(l *types.Ledger) { l.Factory = onsen.ZeroAccountID },
			err:    types.ErrInvalidLedger,
		},
		{
			name:   "nil reserve",
			mutate: func(l *types.Ledger) { l.Reserve0 = math.Int{} },
			err:    types.ErrInvalidLedger,
		},
		{
			name:   "negative reserve",
			mutate: func(l *types.Ledger) { l.Reserve1 = math.NewInt(-1) },
			err:    types.ErrInvalidLedger,
		},
		{
			name:   "negative k_last",
			mutate: func(l *types.Ledger) { l.KLast = math.NewInt(-1) },
			err:    types.ErrInvalidLedger,
		},
		{
			name:   "one sided reserves",
			mutate: func(l *types.Ledger) { l.Reserve0 = math.NewInt(5) },
			err:    types.ErrInvalidLedger,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := types.NewLedger(creator, asset0, asset1, 1)
			tc.mutate(&ledger)
			err := ledger.Validate()
			if tc.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLedger_SeedReserves(t *testing.T) {
	pow2 := func(n uint) math.Int {
		return math.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), n))
	}

	tests := []struct {
		name     string
		reserve0 math.Int
		reserve1 math.Int
		kLast    math.Int
		err      error
	}{
		{name: "empty", reserve0: math.ZeroInt(), reserve1: math.ZeroInt(), kLast: math.ZeroInt()},
		{name: "small", reserve0: math.NewInt(1000), reserve1: math.NewInt(2000), kLast: math.NewInt(2_000_000)},
		{name: "above 128 bits", reserve0: pow2(130), reserve1: pow2(120), kLast: pow2(250)},
		{name: "product overflows", reserve0: pow2(200), reserve1: pow2(100), err: types.ErrInvalidLedger},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := types.NewLedger(creator, asset0, asset1, 1)
			err := ledger.SeedReserves(tc.reserve0, tc.reserve1)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.True(t, ledger.Reserve0.IsZero())
				require.True(t, ledger.KLast.IsZero())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.kLast.String(), ledger.KLast.String())
			require.NoError(t, ledger.Validate())
		})
	}
}

func TestLedger_JSON(t *testing.T) {
	ledger := types.NewLedger(creator, asset0, asset1, 3)
	ledger.Reserve0 = math.NewInt(1000)
	ledger.Reserve1 = math.NewInt(2000)
	ledger.KLast = math.NewInt(2_000_000)

	bz, err := json.Marshal(ledger)
	require.NoError(t, err)

	var decoded types.Ledger
	require.NoError(t, json.Unmarshal(bz, &decoded))
	require.Equal(t, ledger.String(), decoded.String())
	require.NoError(t, decoded.Validate())
}

func TestGenesisState_Validate(t *testing.T) {
	require.NoError(t, types.DefaultGenesis().Validate())

	ledger := types.NewLedger(creator, asset0, asset1, 1)
	require.NoError(t, types.GenesisState{Ledger: &ledger}.Validate())

	ledger.Reserve0 = math.NewInt(1)
	require.ErrorIs(t, types.GenesisState{Ledger: &ledger}.Validate(), types.ErrInvalidLedger)

	var missing types.GenesisState
	require.NoError(t, json.Unmarshal([]byte(`{"ledger":{"asset0":"`+asset0.String()+`","asset1":"`+asset1.String()+`","factory":"`+creator.String()+`","owner":"`+creator.String()+`"}}`), &missing))
	require.ErrorIs(t, missing.Validate(), types.ErrInvalidLedger)
}

func TestGetReentrancyLockKey(t *testing.T) {
	key := types.GetReentrancyLockKey("swap")
	require.Equal(t, append([]byte{0x02}, []byte("swap")...), key)
	require.Equal(t, []byte{0x02}, types.ReentrancyLockKey)
}
