package types

import (
	"context"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
)

// TokenKeeper defines the asset collaborator a pair trades against. Every
// token is addressed by its own identity.
type TokenKeeper interface {
	// BalanceOf returns the amount of token held by owner.
	BalanceOf(ctx context.Context, token, owner onsen.AccountID) (math.Int, error)

	// TransferFrom moves value of token from one holder to another, forwarding
	// data to the recipient's receive hook if it has one.
	TransferFrom(ctx context.Context, token, from, to onsen.AccountID, value math.Int, data []byte) error
}

// BlockKeeper exposes the host's monotonic block clock.
type BlockKeeper interface {
	CurrentBlock(ctx context.Context) uint64
}
