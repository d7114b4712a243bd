// Package keeper provides keeper utilities shared across modules.
package keeper

import (
	onsen "github.com/onsenswap/onsenswap/types"
)

// ValidateAuthority checks that the caller holds the capability recorded as
// expected. The zero identity holds nothing: once a capability has been
// renounced no caller matches it.
//
// Usage example:
//
//	if err := keeper.ValidateAuthority(ledger.Owner, caller); err != nil {
//	    return types.ErrNotOwner.Wrap(err.Error())
//	}
func ValidateAuthority(expected, actual onsen.AccountID) error {
	if expected.Empty() {
		return onsen.ErrUnauthorized.Wrap("capability has been renounced")
	}
	if expected != actual {
		return onsen.ErrUnauthorized.Wrapf(
			"invalid authority; expected %s, got %s",
			expected,
			actual,
		)
	}
	return nil
}
