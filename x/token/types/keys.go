package types

const (
	// ModuleName defines the module name
	ModuleName = "token"

	// StoreKey defines the prefix under which the token keeper stores its state
	StoreKey = ModuleName + "/"
)

// Store key prefixes
var (
	TokenKeyPrefix   = []byte{0x01}
	BalanceKeyPrefix = []byte{0x02}
)

// GetTokenKey returns the store key for a token's metadata
func GetTokenKey(token []byte) []byte {
	return append(append([]byte{}, TokenKeyPrefix...), token...)
}

// GetBalancePrefix returns the prefix of every balance of a token
func GetBalancePrefix(token []byte) []byte {
	return append(append([]byte{}, BalanceKeyPrefix...), token...)
}

// GetBalanceKey returns the store key for a holder's balance of a token
func GetBalanceKey(token, holder []byte) []byte {
	return append(GetBalancePrefix(token), holder...)
}
