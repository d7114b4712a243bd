package types

import (
	"fmt"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
)

// Balance is a holder's amount of one token.
type Balance struct {
	Token  onsen.AccountID `json:"token"`
	Holder onsen.AccountID `json:"holder"`
	Amount math.Int        `json:"amount"`
}

// GenesisState is the exported state of the token module.
type GenesisState struct {
	Tokens   []Token   `json:"tokens"`
	Balances []Balance `json:"balances"`
}

// DefaultGenesis returns the default genesis state for the token module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Tokens:   []Token{},
		Balances: []Balance{},
	}
}

// Validate checks token uniqueness and that balances add up to each token's
// total supply.
func (gs GenesisState) Validate() error {
	supplies := make(map[onsen.AccountID]math.Int, len(gs.Tokens))
	for _, token := range gs.Tokens {
		if err := token.Validate(); err != nil {
			return fmt.Errorf("invalid token %s: %w", token.Symbol, err)
		}
		if _, dup := supplies[token.ID]; dup {
			return ErrTokenExists.Wrapf("duplicate token %s", token.ID)
		}
		supplies[token.ID] = math.ZeroInt()
	}

	seen := make(map[[2]onsen.AccountID]struct{}, len(gs.Balances))
	for _, bal := range gs.Balances {
		sum, ok := supplies[bal.Token]
		if !ok {
			return ErrTokenNotFound.Wrapf("balance for unknown token %s", bal.Token)
		}
		if bal.Holder.Empty() {
			return onsen.ErrInvalidAccount.Wrapf("empty holder for token %s", bal.Token)
		}
		if bal.Amount.IsNil() || !bal.Amount.IsPositive() {
			return ErrInvalidAmount.Wrapf("balance of %s for token %s must be positive", bal.Holder, bal.Token)
		}
		key := [2]onsen.AccountID{bal.Token, bal.Holder}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate balance of %s for token %s", bal.Holder, bal.Token)
		}
		seen[key] = struct{}{}
		next, err := sum.SafeAdd(bal.Amount)
		if err != nil {
			return ErrSupplyOverflow.Wrapf("token %s", bal.Token)
		}
		supplies[bal.Token] = next
	}

	for _, token := range gs.Tokens {
		if !supplies[token.ID].Equal(token.TotalSupply) {
			return ErrInvalidAmount.Wrapf("token %s: balances sum to %s, total supply is %s",
				token.Symbol, supplies[token.ID], token.TotalSupply)
		}
	}
	return nil
}
