package types

import (
	"context"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
)

// Receiver is notified when a holder it is registered for is credited through
// TransferFrom. Returning an error rejects the transfer.
type Receiver interface {
	OnReceived(ctx context.Context, token, from, to onsen.AccountID, value math.Int, data []byte) error
}

// ReceiverFunc adapts a function to the Receiver interface.
type ReceiverFunc func(ctx context.Context, token, from, to onsen.AccountID, value math.Int, data []byte) error

// OnReceived implements Receiver.
func (f ReceiverFunc) OnReceived(ctx context.Context, token, from, to onsen.AccountID, value math.Int, data []byte) error {
	return f(ctx, token, from, to, value, data)
}
