package types

const (
	// ModuleName defines the module name
	ModuleName = "pair"

	// StoreKey defines the prefix under which the pair keeper stores its state
	StoreKey = ModuleName + "/"
)

// Store keys
var (
	LedgerKey         = []byte{0x01} // pool ledger singleton
	ReentrancyLockKey = []byte{0x02} // prefix for persisted reentrancy markers
)

// GetReentrancyLockKey returns the store key for a named reentrancy marker
func GetReentrancyLockKey(operation string) []byte {
	return append(append([]byte{}, ReentrancyLockKey...), []byte(operation)...)
}
