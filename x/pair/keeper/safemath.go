package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/onsenswap/onsenswap/x/pair/types"
)

// Fee arithmetic: 0.3% is charged on the inbound leg, expressed in thousandths.
const (
	feeDenominator = 1000
	feeNumerator   = 3
)

var (
	bigFeeDenominator = big.NewInt(feeDenominator)
	bigFeeNumerator   = big.NewInt(feeNumerator)
	bigFeeKept        = big.NewInt(feeDenominator - feeNumerator)
)

// SafeSub subtracts b from a, failing instead of going negative.
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrArithmeticUnderflow.Wrapf("cannot subtract %s from %s", b, a)
	}
	return a.Sub(b), nil
}

// ImplicitDeposit infers how much of an asset was paid in: whatever balance
// exceeds reserve-out. Callers guarantee out < reserve.
func ImplicitDeposit(balance, reserve, out math.Int) math.Int {
	expected := reserve.Sub(out)
	if balance.GT(expected) {
		return balance.Sub(expected)
	}
	return math.ZeroInt()
}

// FeeAdjustedBalance returns balance*1000 - 3*amountIn. The result is
// unbounded so it is kept as a big.Int.
func FeeAdjustedBalance(balance, amountIn math.Int) *big.Int {
	adjusted := new(big.Int).Mul(balance.BigInt(), bigFeeDenominator)
	fee := new(big.Int).Mul(amountIn.BigInt(), bigFeeNumerator)
	return adjusted.Sub(adjusted, fee)
}

// ConstantProductHolds reports whether the fee-adjusted balances keep the
// product of the reserves:
//
//	(b0*1000 - 3*in0) * (b1*1000 - 3*in1) >= r0 * r1 * 1000^2
//
// Products are computed without a width limit.
func ConstantProductHolds(balance0, balance1, amount0In, amount1In, reserve0, reserve1 math.Int) bool {
	lhs := new(big.Int).Mul(
		FeeAdjustedBalance(balance0, amount0In),
		FeeAdjustedBalance(balance1, amount1In),
	)

	rhs := new(big.Int).Mul(reserve0.BigInt(), reserve1.BigInt())
	rhs.Mul(rhs, bigFeeDenominator)
	rhs.Mul(rhs, bigFeeDenominator)

	return lhs.Cmp(rhs) >= 0
}

// GetAmountOut returns the largest output the pool pays for amountIn of the
// other asset given the current reserves, using the same fee arithmetic as
// the swap check.
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.Int{}, types.ErrInvalidAmount.Wrap("input amount must be positive")
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("pool has no reserves")
	}

	amountInWithFee := new(big.Int).Mul(amountIn.BigInt(), bigFeeKept)
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut.BigInt())
	denominator := new(big.Int).Mul(reserveIn.BigInt(), bigFeeDenominator)
	denominator.Add(denominator, amountInWithFee)

	// strictly below reserveOut, so it fits
	return math.NewIntFromBigInt(numerator.Quo(numerator, denominator)), nil
}

// ConstantProduct returns r0*r1 without a width limit.
func ConstantProduct(reserve0, reserve1 math.Int) *big.Int {
	return new(big.Int).Mul(reserve0.BigInt(), reserve1.BigInt())
}
