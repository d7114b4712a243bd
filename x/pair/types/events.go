package types

// Log event names for the pair module
const (
	EventTypeCreate            = "pair_created"
	EventTypeSwap              = "swap"
	EventTypeSync              = "sync"
	EventTypeSkim              = "skim"
	EventTypeOwnershipTransfer = "ownership_transferred"
)
