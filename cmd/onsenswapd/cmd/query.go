package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onsenswap/onsenswap/app"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
	tokentypes "github.com/onsenswap/onsenswap/x/token/types"
)

// QueryCmd groups the read-only commands
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		DisableFlagParsing:         false,
		SuggestionsMinimumDistance: 2,
	}

	cmd.AddCommand(
		pairQueryCmd("ledger", "Show the pool ledger", func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error) {
			return qs.Ledger(ctx, &pairtypes.QueryLedgerRequest{})
		}),
		pairQueryCmd("reserves", "Show the committed reserves and last update block", func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error) {
			return qs.Reserves(ctx, &pairtypes.QueryReservesRequest{})
		}),
		pairQueryCmd("k-last", "Show the invariant checkpoint", func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error) {
			return qs.KLast(ctx, &pairtypes.QueryKLastRequest{})
		}),
		pairQueryCmd("owner", "Show the owner and factory", func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error) {
			return qs.Owner(ctx, &pairtypes.QueryOwnerRequest{})
		}),
		GetCmdQueryQuote(),
		GetCmdQueryInvariants(),
		GetCmdQueryStatus(),
		GetCmdQueryTokens(),
		GetCmdQueryBalance(),
	)

	return cmd
}

func pairQueryCmd(use, short string, fn func(ctx context.Context, qs pairtypes.QueryServer) (interface{}, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuery(cmd, func(ctx context.Context, node *app.OnsenApp) (interface{}, error) {
				return fn(ctx, node.PairQueryServer())
			})
		},
	}
}

func runQuery(cmd *cobra.Command, fn func(ctx context.Context, node *app.OnsenApp) (interface{}, error)) error {
	return withApp(cmd, func(node *app.OnsenApp) error {
		var resp interface{}
		err := node.Query(cmd.Context(), func(ctx context.Context) error {
			var err error
			resp, err = fn(ctx, node)
			return err
		})
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	})
}

// GetCmdQueryQuote prices a swap without executing it
func GetCmdQueryQuote() *cobra.Command {
	return &cobra.Command{
		Use:   "quote [asset-in] [amount-in]",
		Short: "Quote the outputs for an exact input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountIn, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx context.Context, node *app.OnsenApp) (interface{}, error) {
				return node.PairQueryServer().Quote(ctx, &pairtypes.QueryQuoteRequest{AssetIn: args[0], AmountIn: amountIn})
			})
		},
	}
}

// GetCmdQueryInvariants audits the ledger against the pool balances. It fails
// when any invariant is broken.
func GetCmdQueryInvariants() *cobra.Command {
	return &cobra.Command{
		Use:   "invariants",
		Short: "Check the pair invariants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(node *app.OnsenApp) error {
				msg, broken := node.CheckInvariants(cmd.Context())
				if err := printJSON(cmd, map[string]interface{}{"broken": broken, "message": msg}); err != nil {
					return err
				}
				if broken {
					return fmt.Errorf("invariants broken")
				}
				return nil
			})
		},
	}
}

// GetCmdQueryStatus shows chain id and height
func GetCmdQueryStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show chain id and current block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(node *app.OnsenApp) error {
				chainID, err := node.ChainID()
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]interface{}{"chain_id": chainID, "height": node.Height()})
			})
		},
	}
}

// GetCmdQueryTokens lists the registered tokens, or one token by identity
func GetCmdQueryTokens() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [token]",
		Short: "List registered tokens",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, func(ctx context.Context, node *app.OnsenApp) (interface{}, error) {
				if len(args) == 1 {
					id, err := parseAccount("token", args[0])
					if err != nil {
						return nil, err
					}
					return node.TokenKeeper.GetToken(ctx, id)
				}
				tokens, err := node.TokenKeeper.GetAllTokens(ctx)
				if tokens == nil {
					tokens = []tokentypes.Token{}
				}
				return tokens, err
			})
		},
	}
}

// GetCmdQueryBalance shows one holder's balance, or every balance of a token
func GetCmdQueryBalance() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [token] [holder]",
		Short: "Show token balances",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := parseAccount("token", args[0])
			if err != nil {
				return err
			}
			return runQuery(cmd, func(ctx context.Context, node *app.OnsenApp) (interface{}, error) {
				if len(args) == 1 {
					return node.TokenKeeper.GetAllBalances(ctx, token)
				}
				holder, err := parseAccount("holder", args[1])
				if err != nil {
					return nil, err
				}
				balance, err := node.TokenKeeper.BalanceOf(ctx, token, holder)
				if err != nil {
					return nil, err
				}
				return tokentypes.Balance{Token: token, Holder: holder, Amount: balance}, nil
			})
		},
	}
}
