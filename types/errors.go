package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// RootCodespace is the codespace for errors shared by every module
const RootCodespace = "onsen"

var (
	// ErrInvalidAccount is returned for malformed or empty account identities
	ErrInvalidAccount = sdkerrors.Register(RootCodespace, 2, "invalid account")

	// ErrUnauthorized is returned when the caller does not hold a capability
	ErrUnauthorized = sdkerrors.Register(RootCodespace, 3, "unauthorized")
)
