package keeper

import (
	"context"
	"sync"

	dbm "github.com/cosmos/cosmos-db"

	"github.com/onsenswap/onsenswap/x/pair/types"
)

// poolLockKey names the single busy flag of the pool. Swap and skim share it.
const poolLockKey = "pool"

// ReentrancyGuard provides lightweight in-memory named locks.
type ReentrancyGuard struct {
	mu    sync.Mutex
	locks map[string]struct{}
}

// NewReentrancyGuard creates a new guard instance.
func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{locks: make(map[string]struct{})}
}

// Lock acquires a named lock or returns an error if already held.
func (g *ReentrancyGuard) Lock(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.locks[key]; exists {
		return types.ErrReentrancy.Wrapf("reentrancy detected for %s", key)
	}

	g.locks[key] = struct{}{}
	return nil
}

// Unlock releases a named lock.
func (g *ReentrancyGuard) Unlock(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locks, key)
}

// WithReentrancyGuard executes fn while holding the pool's busy flag. A call
// made while the flag is held, for instance from a token callback, fails
// with ErrReentrancy.
// The flag is also marked in the store so that an interrupted operation is
// visible after a restart.
func (k *Keeper) WithReentrancyGuard(ctx context.Context, operation string, fn func() error) error {
	if err := k.guard.Lock(poolLockKey); err != nil {
		k.metrics.ReentrancyRejections.WithLabelValues(operation).Inc()
		k.Logger().Error("rejected reentrant call", "operation", operation)
		return err
	}
	defer k.guard.Unlock(poolLockKey)

	if err := k.acquireReentrancyLock(ctx, operation); err != nil {
		return err
	}

	// Ensure lock is released even if fn panics
	defer k.releaseReentrancyLock(ctx, operation)

	return fn()
}

// acquireReentrancyLock records a marker for operation in the store
func (k *Keeper) acquireReentrancyLock(ctx context.Context, operation string) error {
	key := types.GetReentrancyLockKey(operation)
	held, err := k.db.Has(key)
	if err != nil {
		return err
	}
	if held {
		return types.ErrReentrancy.Wrapf("operation %s is already locked", operation)
	}
	return k.db.Set(key, []byte{0x01})
}

// releaseReentrancyLock removes the marker for operation
func (k *Keeper) releaseReentrancyLock(ctx context.Context, operation string) {
	if err := k.db.Delete(types.GetReentrancyLockKey(operation)); err != nil {
		k.Logger().Error("failed to release reentrancy lock", "operation", operation, "error", err)
	}
}

// ClearStaleLocks removes markers left behind by an operation that was
// interrupted before it could release them. It returns the operations that
// were cleared. Call it once at startup, before serving any operation.
func (k *Keeper) ClearStaleLocks(ctx context.Context) ([]string, error) {
	iter, err := dbm.NewPrefixDB(k.db, types.ReentrancyLockKey).Iterator(nil, nil)
	if err != nil {
		return nil, err
	}

	var stale []string
	for ; iter.Valid(); iter.Next() {
		stale = append(stale, string(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		iter.Close()
		return nil, err
	}
	iter.Close()

	batch := k.db.NewBatch()
	defer batch.Close()
	for _, op := range stale {
		if err := batch.Delete(types.GetReentrancyLockKey(op)); err != nil {
			return nil, err
		}
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}

	for _, op := range stale {
		k.Logger().Error("cleared stale reentrancy lock; the interrupted operation may have moved tokens", "operation", op)
	}
	return stale, nil
}
