package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Token module sentinel errors
var (
	ErrTokenNotFound       = sdkerrors.Register(ModuleName, 2, "token not found")
	ErrTokenExists         = sdkerrors.Register(ModuleName, 3, "token already exists")
	ErrInvalidSymbol       = sdkerrors.Register(ModuleName, 4, "invalid token symbol")
	ErrInvalidAmount       = sdkerrors.Register(ModuleName, 5, "invalid amount")
	ErrInsufficientBalance = sdkerrors.Register(ModuleName, 6, "insufficient balance")
	ErrReceiverRejected    = sdkerrors.Register(ModuleName, 7, "receiver rejected transfer")
	ErrStateCorruption     = sdkerrors.Register(ModuleName, 8, "state corruption detected")
	ErrSupplyOverflow      = sdkerrors.Register(ModuleName, 9, "total supply overflow")
)
