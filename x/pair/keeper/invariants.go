package keeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/onsenswap/onsenswap/x/pair/types"
)

// InvariantRoute is a named ledger audit.
type InvariantRoute struct {
	Name      string
	Invariant types.Invariant
}

// InvariantRoutes returns all pair invariants in the order AllInvariants runs them
func InvariantRoutes(k *Keeper) []InvariantRoute {
	return []InvariantRoute{
		{"reserves-consistency", ReservesConsistencyInvariant(k)},
		{"pool-balances", PoolBalancesInvariant(k)},
		{"k-last", KLastInvariant(k)},
	}
}

// AllInvariants runs all invariants of the pair module
func AllInvariants(k *Keeper) types.Invariant {
	return func(ctx context.Context) (string, bool) {
		for _, route := range InvariantRoutes(k) {
			if res, stop := route.Invariant(ctx); stop {
				k.metrics.InvariantsBroken.WithLabelValues(route.Name).Inc()
				return res, stop
			}
		}
		return "", false
	}
}

// ReservesConsistencyInvariant checks that both reserves are zero or both are positive
func ReservesConsistencyInvariant(k *Keeper) types.Invariant {
	return func(ctx context.Context) (string, bool) {
		ledger, done, res := k.ledgerForInvariant(ctx, "reserves-consistency")
		if done {
			return res.msg, res.broken
		}

		broken := ledger.Reserve0.IsNegative() || ledger.Reserve1.IsNegative() ||
			ledger.Reserve0.IsZero() != ledger.Reserve1.IsZero()
		msg := fmt.Sprintf("reserves %s/%s", ledger.Reserve0, ledger.Reserve1)
		return types.FormatInvariant(types.ModuleName, "reserves-consistency", msg), broken
	}
}

// PoolBalancesInvariant checks that the pool holds at least its reserves of each asset
func PoolBalancesInvariant(k *Keeper) types.Invariant {
	return func(ctx context.Context) (string, bool) {
		ledger, done, res := k.ledgerForInvariant(ctx, "pool-balances")
		if done {
			return res.msg, res.broken
		}

		balance0, balance1, err := k.poolBalances(ctx, ledger)
		if err != nil {
			return types.FormatInvariant(types.ModuleName, "pool-balances",
				fmt.Sprintf("failed to read pool balances: %v", err)), true
		}

		var (
			msg   string
			count int
		)
		if balance0.LT(ledger.Reserve0) {
			count++
			msg += fmt.Sprintf("asset0 %s: balance (%s) < reserve (%s)\n", ledger.Asset0, balance0, ledger.Reserve0)
		}
		if balance1.LT(ledger.Reserve1) {
			count++
			msg += fmt.Sprintf("asset1 %s: balance (%s) < reserve (%s)\n", ledger.Asset1, balance1, ledger.Reserve1)
		}

		broken := count != 0
		return types.FormatInvariant(types.ModuleName, "pool-balances",
			fmt.Sprintf("found %d asset(s) below reserve\n%s", count, msg)), broken
	}
}

// KLastInvariant checks that the checkpoint never exceeds the current product
func KLastInvariant(k *Keeper) types.Invariant {
	return func(ctx context.Context) (string, bool) {
		ledger, done, res := k.ledgerForInvariant(ctx, "k-last")
		if done {
			return res.msg, res.broken
		}

		product := ConstantProduct(ledger.Reserve0, ledger.Reserve1)
		broken := ledger.KLast.IsNegative() || ledger.KLast.BigInt().Cmp(product) > 0
		msg := fmt.Sprintf("k_last %s, reserve product %s", ledger.KLast, product)
		return types.FormatInvariant(types.ModuleName, "k-last", msg), broken
	}
}

type invariantResult struct {
	msg    string
	broken bool
}

// ledgerForInvariant loads the ledger. An unconstructed pool passes every
// invariant; an undecodable one breaks them.
func (k *Keeper) ledgerForInvariant(ctx context.Context, name string) (types.Ledger, bool, invariantResult) {
	ledger, err := k.GetLedger(ctx)
	switch {
	case errors.Is(err, types.ErrPoolNotFound):
		return types.Ledger{}, true, invariantResult{
			msg: types.FormatInvariant(types.ModuleName, name, "pool not initialized"),
		}
	case err != nil:
		return types.Ledger{}, true, invariantResult{
			msg:    types.FormatInvariant(types.ModuleName, name, err.Error()),
			broken: true,
		}
	}
	return ledger, false, invariantResult{}
}
