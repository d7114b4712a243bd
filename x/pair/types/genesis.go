package types

import "fmt"

// GenesisState is the exported state of a pair. A nil Ledger means the pool
// has not been constructed yet.
type GenesisState struct {
	Ledger *Ledger `json:"ledger,omitempty"`
}

// DefaultGenesis returns the default genesis state for the pair module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{}
}

// Validate ensures the genesis state is well-formed.
func (gs GenesisState) Validate() error {
	if gs.Ledger == nil {
		return nil
	}
	if err := gs.Ledger.Validate(); err != nil {
		return fmt.Errorf("invalid ledger: %w", err)
	}
	return nil
}
