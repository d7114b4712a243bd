package cmd

import (
	"encoding/hex"
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/onsenswap/onsenswap/app"
	onsen "github.com/onsenswap/onsenswap/types"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
)

const (
	flagAmount0Out = "amount0-out"
	flagAmount1Out = "amount1-out"
	flagData       = "data"
	flagMinOut     = "min-out"

	accountNamespace = "account"
)

// txResult is what every state-changing command prints
type txResult struct {
	Height uint64      `json:"height"`
	Result interface{} `json:"result,omitempty"`
}

func runTx(cmd *cobra.Command, fn func(node *app.OnsenApp) (interface{}, error)) error {
	return withApp(cmd, func(node *app.OnsenApp) error {
		result, err := fn(node)
		if err != nil {
			return err
		}
		return printJSON(cmd, txResult{Height: node.Height(), Result: result})
	})
}

// DeriveAccountCmd prints the account identity for a name. Useful for local
// networks where accounts are not backed by keys.
func DeriveAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive-account [name]",
		Short: "Derive a deterministic account identity from a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := onsen.DeriveAccountID(accountNamespace, []byte(args[0]))
			return printJSON(cmd, map[string]string{"name": args[0], "account": id.String()})
		},
	}
}

// CreateTokenCmd registers a token minted by minter
func CreateTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-token [minter] [symbol]",
		Short: "Register a token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minter, err := parseAccount("minter", args[0])
			if err != nil {
				return err
			}
			decimals, err := cmd.Flags().GetUint32(flagDecimals)
			if err != nil {
				return err
			}
			return runTx(cmd, func(node *app.OnsenApp) (interface{}, error) {
				return node.CreateToken(cmd.Context(), minter, args[1], decimals)
			})
		},
	}
	cmd.Flags().Uint32(flagDecimals, 6, "display decimals of the token")
	return cmd
}

// MintCmd credits new supply. Only the token's minter may mint.
func MintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mint [token] [minter] [to] [amount]",
		Short: "Mint tokens to an account",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseAccounts([]string{"token", "minter", "to"}, args[:3])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[3])
			if err != nil {
				return err
			}
			return runTx(cmd, func(node *app.OnsenApp) (interface{}, error) {
				return nil, node.Mint(cmd.Context(), ids[0], ids[1], ids[2], amount)
			})
		},
	}
}

// TransferCmd moves tokens between holders. Sending to the pool account is how
// liquidity and swap inputs are deposited.
func TransferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer [token] [from] [to] [amount]",
		Short: "Transfer tokens",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseAccounts([]string{"token", "from", "to"}, args[:3])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[3])
			if err != nil {
				return err
			}
			return runTx(cmd, func(node *app.OnsenApp) (interface{}, error) {
				return nil, node.Transfer(cmd.Context(), ids[0], ids[1], ids[2], amount)
			})
		},
	}
}

// CreatePairCmd constructs the pool; creator becomes owner and factory
func CreatePairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-pair [creator] [asset0] [asset1]",
		Short: "Construct the pair",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTx(cmd, func(node *app.OnsenApp) (interface{}, error) {
				return node.CreatePair(cmd.Context(), &pairtypes.MsgCreatePair{
					Creator: args[0],
					Asset0:  args[1],
					Asset1:  args[2],
				})
			})
		},
	}
}

// SwapCmd requests raw outputs. The inputs must already have been transferred
// to the pool account.
func SwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [recipient]",
		Short: "Swap against balances already deposited in the pool",
		Long: `Swap sends the requested outputs to recipient. Inputs are whatever the pool
holds above its reserves, so transfer them to the pool account first. Use
swap-exact-in to deposit and swap in one step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount0Out, err := amountFlag(cmd, flagAmount0Out)
			if err != nil {
				return err
			}
			amount1Out, err := amountFlag(cmd, flagAmount1Out)
			if err != nil {
				return err
			}
			dataHex, err := cmd.Flags().GetString(flagData)
			if err != nil {
				return err
			}
			data, err := hex.DecodeString(dataHex)
			if err != nil {
				return fmt.Errorf("invalid --%s: %w", flagData, err)
			}

			return runTx(cmd, func(node *app.OnsenApp) (interface{}, error) {
				return node.Swap(cmd.Context(), &pairtypes.MsgSwap{
					Recipient:  args[0],
					Amount0Out: amount0Out,
					Amount1Out: amount1Out,
					Data:       data,
				})
			})
		},
	}
	cmd.Flags().String(flagAmount0Out, "0", "amount of asset0 to send to recipient")
	cmd.Flags().String(flagAmount1Out, "0", "amount of asset1 to send to recipient")
	cmd.Flags().String(flagData, "", "hex encoded payload forwarded to the recipient")
	return cmd
}

// SwapExactInCmd deposits amount-in from trader and swaps it at the quote
func SwapExactInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap-exact-in [trader] [asset-in] [amount-in]",
		Short: "Deposit an exact input and swap it for the quoted output",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseAccounts([]string{"trader", "asset-in"}, args[:2])
			if err != nil {
				return err
			}
			amountIn, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			minOut := math.Int{}
			if cmd.Flags().Changed(flagMinOut) {
				if minOut, err = amountFlag(cmd, flagMinOut); err != nil {
					return err
				}
			}

			return runTx(cmd, func(node *app.OnsenApp) (interface{}, error) {
				return node.SwapExactIn(cmd.Context(), ids[0], ids[1], amountIn, minOut)
			})
		},
	}
	cmd.Flags().String(flagMinOut, "", "fail if the quoted output is below this")
	return cmd
}

// SkimCmd sweeps balances above the reserves to recipient. Owner only.
func SkimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skim [caller] [recipient]",
		Short: "Sweep pool balances above the reserves",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTx(cmd, func(node *app.OnsenApp) (interface{}, error) {
				return node.Skim(cmd.Context(), &pairtypes.MsgSkim{Caller: args[0], Recipient: args[1]})
			})
		},
	}
}

// TransferOwnershipCmd hands the owner capability to new-owner
func TransferOwnershipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer-ownership [caller] [new-owner]",
		Short: "Transfer pair ownership",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTx(cmd, func(node *app.OnsenApp) (interface{}, error) {
				return node.TransferOwnership(cmd.Context(), &pairtypes.MsgTransferOwnership{Caller: args[0], NewOwner: args[1]})
			})
		},
	}
}

// RenounceOwnershipCmd clears the owner for good
func RenounceOwnershipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "renounce-ownership [caller]",
		Short: "Renounce pair ownership",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTx(cmd, func(node *app.OnsenApp) (interface{}, error) {
				return node.RenounceOwnership(cmd.Context(), &pairtypes.MsgRenounceOwnership{Caller: args[0]})
			})
		},
	}
}

func parseAccount(name, s string) (onsen.AccountID, error) {
	id, err := onsen.AccountIDFromBech32(s)
	if err != nil {
		return onsen.AccountID{}, fmt.Errorf("%s: %w", name, err)
	}
	return id, nil
}

func parseAccounts(names, values []string) ([]onsen.AccountID, error) {
	ids := make([]onsen.AccountID, len(values))
	for i, v := range values {
		id, err := parseAccount(names[i], v)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// parseAmount parses a strictly positive integer amount
func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid amount %q", s)
	}
	if !amount.IsPositive() {
		return math.Int{}, fmt.Errorf("amount must be positive, got %s", amount)
	}
	return amount, nil
}

// amountFlag reads a non-negative integer amount from a string flag
func amountFlag(cmd *cobra.Command, name string) (math.Int, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return math.Int{}, err
	}
	amount, ok := math.NewIntFromString(s)
	if !ok || amount.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid --%s %q", name, s)
	}
	return amount, nil
}
