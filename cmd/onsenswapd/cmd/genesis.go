package cmd

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/onsenswap/onsenswap/app"
	onsen "github.com/onsenswap/onsenswap/types"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
	tokentypes "github.com/onsenswap/onsenswap/x/token/types"
)

const (
	flagDecimals = "decimals"
	flagReserve0 = "reserve0"
	flagReserve1 = "reserve1"
)

// GenesisCmd groups the commands that edit genesis.json before the node starts
func GenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Edit and validate the genesis file",
	}
	cmd.AddCommand(
		AddGenesisTokenCmd(),
		AddGenesisBalanceCmd(),
		SetGenesisPairCmd(),
		ValidateGenesisCmd(),
	)
	return cmd
}

// AddGenesisTokenCmd registers a token with zero supply in genesis.json
func AddGenesisTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-token [symbol] [minter]",
		Short: "Add a token to genesis.json",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minter, err := onsen.AccountIDFromBech32(args[1])
			if err != nil {
				return fmt.Errorf("minter: %w", err)
			}
			decimals, err := cmd.Flags().GetUint32(flagDecimals)
			if err != nil {
				return err
			}

			token := tokentypes.Token{
				ID:          tokentypes.TokenID(minter, args[0]),
				Symbol:      args[0],
				Decimals:    decimals,
				Minter:      minter,
				TotalSupply: math.ZeroInt(),
			}
			if err := token.Validate(); err != nil {
				return err
			}

			err = editGenesis(cmd, func(tokens *tokentypes.GenesisState, _ *pairtypes.GenesisState) error {
				for _, t := range tokens.Tokens {
					if t.ID == token.ID {
						return tokentypes.ErrTokenExists.Wrapf("%s by %s", token.Symbol, minter)
					}
				}
				tokens.Tokens = append(tokens.Tokens, token)
				return nil
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, token)
		},
	}
	cmd.Flags().Uint32(flagDecimals, 6, "display decimals of the token")
	return cmd
}

// AddGenesisBalanceCmd credits a holder in genesis.json and raises the supply
func AddGenesisBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-balance [token] [holder] [amount]",
		Short: "Credit a genesis balance",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := onsen.AccountIDFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("token: %w", err)
			}
			holder, err := onsen.AccountIDFromBech32(args[1])
			if err != nil {
				return fmt.Errorf("holder: %w", err)
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			return editGenesis(cmd, func(tokens *tokentypes.GenesisState, _ *pairtypes.GenesisState) error {
				return creditGenesis(tokens, token, holder, amount)
			})
		},
	}
}

// SetGenesisPairCmd constructs the pair in genesis.json. Non-zero reserves are
// minted to the pool account so they are backed by balances.
func SetGenesisPairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-pair [asset0] [asset1] [owner]",
		Short: "Construct the pair at genesis, optionally with seeded reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]onsen.AccountID, len(args))
			for i, arg := range args {
				id, err := onsen.AccountIDFromBech32(arg)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				ids[i] = id
			}
			reserve0, err := amountFlag(cmd, flagReserve0)
			if err != nil {
				return err
			}
			reserve1, err := amountFlag(cmd, flagReserve1)
			if err != nil {
				return err
			}

			var ledger pairtypes.Ledger
			err = editGenesis(cmd, func(tokens *tokentypes.GenesisState, pair *pairtypes.GenesisState) error {
				if pair.Ledger != nil {
					return pairtypes.ErrPoolAlreadyExists
				}
				ledger = pairtypes.NewLedger(ids[2], ids[0], ids[1], 1)
				if err := ledger.SeedReserves(reserve0, reserve1); err != nil {
					return err
				}
				if err := ledger.Validate(); err != nil {
					return err
				}

				pool := ledger.PoolAccount()
				if reserve0.IsPositive() {
					if err := creditGenesis(tokens, ledger.Asset0, pool, reserve0); err != nil {
						return err
					}
				}
				if reserve1.IsPositive() {
					if err := creditGenesis(tokens, ledger.Asset1, pool, reserve1); err != nil {
						return err
					}
				}
				pair.Ledger = &ledger
				return nil
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, pairtypes.QueryLedgerResponse{Ledger: ledger, Pool: ledger.PoolAccount().String()})
		},
	}
	cmd.Flags().String(flagReserve0, "0", "seeded reserve of asset0")
	cmd.Flags().String(flagReserve1, "0", "seeded reserve of asset1")
	return cmd
}

// ValidateGenesisCmd checks genesis.json without importing it
func ValidateGenesisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a genesis file, defaulting to the node's",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := getCmdContext(cmd).Config.GenesisFile()
			if len(args) == 1 {
				path = args[0]
			}
			doc, err := app.GenesisDocFromFile(path)
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return fmt.Errorf("error validating genesis file %s: %w", path, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "File at %s is a valid genesis file\n", path)
			return err
		},
	}
}

// editGenesis loads the node genesis, applies fn to both module sections and
// saves the result if it still validates
func editGenesis(cmd *cobra.Command, fn func(*tokentypes.GenesisState, *pairtypes.GenesisState) error) error {
	path := getCmdContext(cmd).Config.GenesisFile()
	doc, err := app.GenesisDocFromFile(path)
	if err != nil {
		return fmt.Errorf("failed to read genesis doc from file: %w", err)
	}

	tokens, pair, err := doc.AppState.ModuleStates()
	if err != nil {
		return err
	}
	if err := fn(tokens, pair); err != nil {
		return err
	}

	tokenJSON, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	pairJSON, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	doc.AppState[tokentypes.ModuleName] = tokenJSON
	doc.AppState[pairtypes.ModuleName] = pairJSON

	if err := doc.Validate(); err != nil {
		return err
	}
	return doc.SaveAs(path)
}

func creditGenesis(gs *tokentypes.GenesisState, token, holder onsen.AccountID, amount math.Int) error {
	idx := -1
	for i, t := range gs.Tokens {
		if t.ID == token {
			idx = i
			break
		}
	}
	if idx < 0 {
		return tokentypes.ErrTokenNotFound.Wrap(token.String())
	}
	supply, err := gs.Tokens[idx].TotalSupply.SafeAdd(amount)
	if err != nil {
		return tokentypes.ErrSupplyOverflow.Wrapf("token %s", gs.Tokens[idx].Symbol)
	}
	gs.Tokens[idx].TotalSupply = supply

	for i, bal := range gs.Balances {
		if bal.Token == token && bal.Holder == holder {
			gs.Balances[i].Amount = bal.Amount.Add(amount)
			return nil
		}
	}
	gs.Balances = append(gs.Balances, tokentypes.Balance{Token: token, Holder: holder, Amount: amount})
	return nil
}
