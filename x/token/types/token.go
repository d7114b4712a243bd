package types

import (
	"fmt"
	"regexp"

	"cosmossdk.io/math"

	onsen "github.com/onsenswap/onsenswap/types"
)

var symbolRegex = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,11}$`)

// Token is the metadata of a fungible asset. Its ID is the identity the pair
// addresses it by.
type Token struct {
	ID          onsen.AccountID `json:"id"`
	Symbol      string          `json:"symbol"`
	Decimals    uint32          `json:"decimals"`
	Minter      onsen.AccountID `json:"minter"`
	TotalSupply math.Int        `json:"total_supply"`
}

// TokenID derives the identity of the token a minter creates under symbol.
func TokenID(minter onsen.AccountID, symbol string) onsen.AccountID {
	return onsen.DeriveAccountID(ModuleName, minter[:], []byte(symbol))
}

// ValidateSymbol checks a ticker symbol.
func ValidateSymbol(symbol string) error {
	if !symbolRegex.MatchString(symbol) {
		return ErrInvalidSymbol.Wrapf("%q must be 2-12 upper case alphanumerics starting with a letter", symbol)
	}
	return nil
}

// Validate performs stateless validation of the token metadata.
func (t Token) Validate() error {
	if err := ValidateSymbol(t.Symbol); err != nil {
		return err
	}
	if t.Minter.Empty() {
		return onsen.ErrInvalidAccount.Wrap("minter must be set")
	}
	if t.ID != TokenID(t.Minter, t.Symbol) {
		return onsen.ErrInvalidAccount.Wrapf("token id %s does not match minter and symbol", t.ID)
	}
	if t.TotalSupply.IsNil() || t.TotalSupply.IsNegative() {
		return ErrInvalidAmount.Wrap("total supply must be non-negative")
	}
	return nil
}

func (t Token) String() string {
	return fmt.Sprintf("%s (%s) supply=%s", t.Symbol, t.ID, t.TotalSupply)
}
