package types

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
)

// MsgCreatePair constructs the pool. Creator becomes owner and factory.
type MsgCreatePair struct {
	Creator string `json:"creator"`
	Asset0  string `json:"asset0"`
	Asset1  string `json:"asset1"`
}

// MsgCreatePairResponse returns the pool's holding account.
type MsgCreatePairResponse struct {
	Pool string `json:"pool"`
}

// MsgSwap requests amount0_out/amount1_out to recipient; inputs are inferred
// from the pool's balances.
type MsgSwap struct {
	Recipient  string   `json:"recipient"`
	Amount0Out math.Int `json:"amount0_out"`
	Amount1Out math.Int `json:"amount1_out"`
	Data       []byte   `json:"data,omitempty"`
}

// MsgSwapResponse reports the inferred inputs and the committed reserves.
type MsgSwapResponse struct {
	Record SwapRecord `json:"record"`
}

// MsgSkim sweeps surplus balances to recipient. Owner only.
type MsgSkim struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
}

// MsgSkimResponse reports the swept amounts.
type MsgSkimResponse struct {
	Amount0 math.Int `json:"amount0"`
	Amount1 math.Int `json:"amount1"`
}

// MsgTransferOwnership hands the owner capability to NewOwner.
type MsgTransferOwnership struct {
	Caller   string `json:"caller"`
	NewOwner string `json:"new_owner"`
}

// MsgRenounceOwnership clears the owner.
type MsgRenounceOwnership struct {
	Caller string `json:"caller"`
}

// MsgOwnershipResponse is returned by ownership messages.
type MsgOwnershipResponse struct {
	Owner string `json:"owner"`
}

// MsgServer is the message surface of the pair.
type MsgServer interface {
	CreatePair(context.Context, *MsgCreatePair) (*MsgCreatePairResponse, error)
	Swap(context.Context, *MsgSwap) (*MsgSwapResponse, error)
	Skim(context.Context, *MsgSkim) (*MsgSkimResponse, error)
	TransferOwnership(context.Context, *MsgTransferOwnership) (*MsgOwnershipResponse, error)
	RenounceOwnership(context.Context, *MsgRenounceOwnership) (*MsgOwnershipResponse, error)
}

// ValidateBasic performs stateless validation
func (msg MsgCreatePair) ValidateBasic() error {
	if _, err := onsen.AccountIDFromBech32(msg.Creator); err != nil {
		return sdkerrors.Wrap(err, "creator")
	}
	asset0, err := onsen.AccountIDFromBech32(msg.Asset0)
	if err != nil {
		return sdkerrors.Wrap(err, "asset0")
	}
	asset1, err := onsen.AccountIDFromBech32(msg.Asset1)
	if err != nil {
		return sdkerrors.Wrap(err, "asset1")
	}
	return ValidateAssetPair(asset0, asset1)
}

// ValidateBasic performs stateless validation. Liquidity and recipient checks
// need the ledger and happen in the keeper.
func (msg MsgSwap) ValidateBasic() error {
	if _, err := onsen.AccountIDFromBech32(msg.Recipient); err != nil {
		return sdkerrors.Wrap(err, "recipient")
	}
	if msg.Amount0Out.IsNil() || msg.Amount1Out.IsNil() {
		return ErrInvalidAmount.Wrap("output amounts must be set")
	}
	if msg.Amount0Out.IsNegative() || msg.Amount1Out.IsNegative() {
		return ErrInvalidAmount.Wrapf("negative output amount: %s/%s", msg.Amount0Out, msg.Amount1Out)
	}
	return nil
}

// ValidateBasic performs stateless validation
func (msg MsgSkim) ValidateBasic() error {
	if _, err := onsen.AccountIDFromBech32(msg.Caller); err != nil {
		return sdkerrors.Wrap(err, "caller")
	}
	if _, err := onsen.AccountIDFromBech32(msg.Recipient); err != nil {
		return sdkerrors.Wrap(err, "recipient")
	}
	return nil
}

// ValidateBasic performs stateless validation
func (msg MsgTransferOwnership) ValidateBasic() error {
	if _, err := onsen.AccountIDFromBech32(msg.Caller); err != nil {
		return sdkerrors.Wrap(err, "caller")
	}
	if _, err := onsen.AccountIDFromBech32(msg.NewOwner); err != nil {
		return sdkerrors.Wrap(err, "new owner")
	}
	return nil
}

// ValidateBasic performs stateless validation
func (msg MsgRenounceOwnership) ValidateBasic() error {
	if _, err := onsen.AccountIDFromBech32(msg.Caller); err != nil {
		return sdkerrors.Wrap(err, "caller")
	}
	return nil
}
