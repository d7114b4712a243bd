package keeper_test

import (
	"math/big"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/onsenswap/onsenswap/x/pair/keeper"
	"github.com/onsenswap/onsenswap/x/pair/types"
)

func TestSafeSub(t *testing.T) {
	res, err := keeper.SafeSub(math.NewInt(10), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(7), res)

	res, err = keeper.SafeSub(math.NewInt(3), math.NewInt(3))
	require.NoError(t, err)
	require.True(t, res.IsZero())

	_, err = keeper.SafeSub(math.NewInt(3), math.NewInt(4))
	require.ErrorIs(t, err, types.ErrArithmeticUnderflow)
}

func TestImplicitDeposit(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		reserve int64
		out     int64
		want    int64
	}{
		{"no deposit", 900, 1000, 100, 0},
		{"deposit", 1500, 1000, 100, 600},
		{"balance below expected", 800, 1000, 100, 0},
		{"no output", 1200, 1000, 0, 200},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := keeper.ImplicitDeposit(math.NewInt(tc.balance), math.NewInt(tc.reserve), math.NewInt(tc.out))
			require.Equal(t, tc.want, got.Int64())
		})
	}
}

func TestFeeAdjustedBalance(t *testing.T) {
	got := keeper.FeeAdjustedBalance(math.NewInt(2000), math.NewInt(1000))
	require.Equal(t, big.NewInt(1997000), got)
}

func TestConstantProductHolds(t *testing.T) {
	tests := []struct {
		name             string
		b0, b1, in0, in1 int64
		r0, r1           int64
		want             bool
	}{
		// (2000*1000-3000)*(3*1000) = 5.991e9 < 1e12
		{"fee eats the output", 2000, 3, 1000, 0, 1000, 1000, false},
		{"largest valid output", 2000, 501, 1000, 0, 1000, 1000, true},
		{"one over", 2000, 500, 1000, 0, 1000, 1000, false},
		{"untouched pool", 1000, 1000, 0, 0, 1000, 1000, true},
		{"empty reserves", 5, 0, 5, 0, 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := keeper.ConstantProductHolds(
				math.NewInt(tc.b0), math.NewInt(tc.b1),
				math.NewInt(tc.in0), math.NewInt(tc.in1),
				math.NewInt(tc.r0), math.NewInt(tc.r1),
			)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestConstantProductHolds_WideReserves uses reserves whose product does not
// fit in 256 bits.
func TestConstantProductHolds_WideReserves(t *testing.T) {
	huge, ok := math.NewIntFromString("100000000000000000000000000000000000000000000000000") // 1e50
	require.True(t, ok)

	require.True(t, keeper.ConstantProductHolds(huge, huge, math.ZeroInt(), math.ZeroInt(), huge, huge))
	require.False(t, keeper.ConstantProductHolds(huge.SubRaw(1), huge, math.ZeroInt(), math.ZeroInt(), huge, huge))
}

func TestGetAmountOut(t *testing.T) {
	out, err := keeper.GetAmountOut(math.NewInt(1000), math.NewInt(1000), math.NewInt(1000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(499), out)

	// 1000*997*10000 / (5000*1000 + 997000) = 1662.49
	out, err = keeper.GetAmountOut(math.NewInt(1000), math.NewInt(5000), math.NewInt(10000))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(1662), out)

	_, err = keeper.GetAmountOut(math.ZeroInt(), math.NewInt(5000), math.NewInt(10000))
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	_, err = keeper.GetAmountOut(math.NewInt(1), math.ZeroInt(), math.NewInt(10000))
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}
