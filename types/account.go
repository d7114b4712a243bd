// Package types holds the identity and error primitives shared by every module.
package types

import (
	"encoding/binary"
	"fmt"

	"github.com/cosmos/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	// AccountIDLen is the byte length of an account identity
	AccountIDLen = 32

	// Bech32Prefix is the human readable part of encoded account identities
	Bech32Prefix = "onsen"
)

// AccountID identifies a holder, a token contract or a pool on the host ledger.
type AccountID [AccountIDLen]byte

// ZeroAccountID is the null identity. It never owns anything.
var ZeroAccountID AccountID

// Empty reports whether a is the zero identity.
func (a AccountID) Empty() bool {
	return a == ZeroAccountID
}

// Equals reports whether two identities are the same.
func (a AccountID) Equals(other AccountID) bool {
	return a == other
}

// Bytes returns a copy of the raw identity bytes.
func (a AccountID) Bytes() []byte {
	return append([]byte{}, a[:]...)
}

// String returns the bech32 form of the identity.
func (a AccountID) String() string {
	s, err := bech32.EncodeFromBase256(Bech32Prefix, a[:])
	if err != nil {
		return fmt.Sprintf("%X", a[:])
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (a AccountID) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccountID) UnmarshalText(text []byte) error {
	id, err := AccountIDFromBech32(string(text))
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// AccountIDFromBech32 parses a bech32 encoded identity.
func AccountIDFromBech32(s string) (AccountID, error) {
	var id AccountID
	if len(s) == 0 {
		return id, ErrInvalidAccount.Wrap("empty account string")
	}

	hrp, bz, err := bech32.DecodeToBase256(s)
	if err != nil {
		return id, ErrInvalidAccount.Wrapf("%s: %s", s, err)
	}
	if hrp != Bech32Prefix {
		return id, ErrInvalidAccount.Wrapf("invalid prefix %q, expected %q", hrp, Bech32Prefix)
	}
	if len(bz) != AccountIDLen {
		return id, ErrInvalidAccount.Wrapf("invalid length %d, expected %d", len(bz), AccountIDLen)
	}

	copy(id[:], bz)
	return id, nil
}

// MustAccountIDFromBech32 is AccountIDFromBech32 that panics on error.
func MustAccountIDFromBech32(s string) AccountID {
	id, err := AccountIDFromBech32(s)
	if err != nil {
		panic(err)
	}
	return id
}

// DeriveAccountID deterministically derives an identity from a namespace and
// a list of keys. The namespace and each key are length prefixed, so distinct
// (namespace, keys) inputs never share a preimage.
func DeriveAccountID(namespace string, keys ...[]byte) AccountID {
	h, err := blake2b.New256(nil)
	if err != nil {
		// only possible with a key longer than 64 bytes
		panic(err)
	}
	var lenBuf [8]byte
	writePrefixed := func(bz []byte) {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(bz)))
		h.Write(lenBuf[:])
		h.Write(bz)
	}
	writePrefixed([]byte(namespace))
	for _, key := range keys {
		writePrefixed(key)
	}

	var id AccountID
	copy(id[:], h.Sum(nil))
	return id
}

