package types

import (
	"fmt"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
)

// Ledger is the persisted state of a pair: its two reserves, the block of the
// last committed update, the invariant checkpoint and the fixed pool identities.
type Ledger struct {
	Factory         onsen.AccountID `json:"factory"`
	Owner           onsen.AccountID `json:"owner"`
	Asset0          onsen.AccountID `json:"asset0"`
	Asset1          onsen.AccountID `json:"asset1"`
	Reserve0        math.Int        `json:"reserve0"`
	Reserve1        math.Int        `json:"reserve1"`
	LastUpdateBlock uint64          `json:"last_update_block"`
	KLast           math.Int        `json:"k_last"`
}

// NewLedger returns a freshly constructed ledger with empty reserves.
func NewLedger(creator, asset0, asset1 onsen.AccountID, block uint64) Ledger {
	return Ledger{
		Factory:         creator,
		Owner:           creator,
		Asset0:          asset0,
		Asset1:          asset1,
		Reserve0:        math.ZeroInt(),
		Reserve1:        math.ZeroInt(),
		LastUpdateBlock: block,
		KLast:           math.ZeroInt(),
	}
}

// SeedReserves sets the reserves and records their product as k_last. It
// fails when the product does not fit in a math.Int.
func (l *Ledger) SeedReserves(reserve0, reserve1 math.Int) error {
	kLast, err := reserve0.SafeMul(reserve1)
	if err != nil {
		return ErrInvalidLedger.Wrapf("k_last of reserves %s/%s: %s", reserve0, reserve1, err)
	}
	l.Reserve0 = reserve0
	l.Reserve1 = reserve1
	l.KLast = kLast
	return nil
}

// PoolAccountID returns the holding account of the pair trading asset0 and asset1.
func PoolAccountID(asset0, asset1 onsen.AccountID) onsen.AccountID {
	return onsen.DeriveAccountID(ModuleName, asset0[:], asset1[:])
}

// PoolAccount returns the pair's own holding account.
func (l Ledger) PoolAccount() onsen.AccountID {
	return PoolAccountID(l.Asset0, l.Asset1)
}

// Reserves returns the reserves and the block they were last committed at.
func (l Ledger) Reserves() (math.Int, math.Int, uint64) {
	return l.Reserve0, l.Reserve1, l.LastUpdateBlock
}

// IsAsset reports whether id is one of the two traded assets.
func (l Ledger) IsAsset(id onsen.AccountID) bool {
	return id == l.Asset0 || id == l.Asset1
}

// ValidateAssetPair checks the identities a pair may be constructed with.
func ValidateAssetPair(asset0, asset1 onsen.AccountID) error {
	if asset0.Empty() || asset1.Empty() {
		return ErrInvalidAssetPair.Wrap("asset identities must be non-zero")
	}
	if asset0 == asset1 {
		return ErrInvalidAssetPair.Wrapf("identical assets %s", asset0)
	}
	pool := PoolAccountID(asset0, asset1)
	if asset0 == pool || asset1 == pool {
		return ErrInvalidAssetPair.Wrap("asset cannot be the pool itself")
	}
	return nil
}

// Validate performs stateless validation of the ledger.
func (l Ledger) Validate() error {
	if err := ValidateAssetPair(l.Asset0, l.Asset1); err != nil {
		return err
	}
	if l.Factory.Empty() {
		return ErrInvalidLedger.Wrap("factory must be set")
	}
	if l.Reserve0.IsNil() || l.Reserve1.IsNil() || l.KLast.IsNil() {
		return ErrInvalidLedger.Wrap("reserves and k_last must be set")
	}
	if l.Reserve0.IsNegative() || l.Reserve1.IsNegative() {
		return ErrInvalidLedger.Wrapf("negative reserve: %s/%s", l.Reserve0, l.Reserve1)
	}
	if l.KLast.IsNegative() {
		return ErrInvalidLedger.Wrapf("negative k_last: %s", l.KLast)
	}
	if l.Reserve0.IsZero() != l.Reserve1.IsZero() {
		return ErrInvalidLedger.Wrapf("reserves must be both zero or both positive, got %s/%s", l.Reserve0, l.Reserve1)
	}
	return nil
}

func (l Ledger) String() string {
	return fmt.Sprintf("pair %s/%s reserves=%s/%s block=%d k_last=%s owner=%s",
		l.Asset0, l.Asset1, l.Reserve0, l.Reserve1, l.LastUpdateBlock, l.KLast, l.Owner)
}
