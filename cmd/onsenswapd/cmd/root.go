package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onsenswap/onsenswap/app"
)

type contextKey struct{}

// cmdContext carries what PersistentPreRunE resolved to every subcommand
type cmdContext struct {
	Config app.Config
	Logger log.Logger
}

// NewRootCmd creates a new root command for onsenswapd. It is called once in
// the main function.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   app.Name,
		Short: "onsenswap constant-product pair node",
		Long: `onsenswapd runs a single constant-product pair over a local token ledger.

Commands other than start open the node database directly. With the goleveldb
backend only one process can hold it, so stop the node or use its HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			cfg, err := app.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogJSON)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, contextKey{}, &cmdContext{Config: cfg, Logger: logger}))
			return nil
		},
	}

	def := app.DefaultConfig()
	rootCmd.PersistentFlags().String(app.FlagHome, def.Home, "directory for config and data")
	rootCmd.PersistentFlags().String(app.FlagDBBackend, def.DBBackend, "database backend: goleveldb, pebbledb or memdb")
	rootCmd.PersistentFlags().String(app.FlagLogLevel, def.LogLevel, "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().Bool(app.FlagLogJSON, def.LogJSON, "emit logs as JSON")
	rootCmd.PersistentFlags().Int(app.FlagJournalSize, def.JournalSize, "number of recent swaps kept in memory")

	rootCmd.AddCommand(
		InitCmd(),
		GenesisCmd(),
		DeriveAccountCmd(),
		CreateTokenCmd(),
		MintCmd(),
		TransferCmd(),
		CreatePairCmd(),
		SwapCmd(),
		SwapExactInCmd(),
		SkimCmd(),
		TransferOwnershipCmd(),
		RenounceOwnershipCmd(),
		QueryCmd(),
		ExportCmd(),
		APITokenCmd(),
		StartCmd(),
	)

	return rootCmd
}

// NewLogger builds the node logger
func NewLogger(w io.Writer, level string, jsonOutput bool) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", app.FlagLogLevel, level, err)
	}

	opts := []log.Option{log.LevelOption(lvl)}
	if jsonOutput {
		opts = append(opts, log.OutputJSONOption())
	} else {
		opts = append(opts, log.ColorOption(false))
	}
	return log.NewLogger(w, opts...), nil
}

func getCmdContext(cmd *cobra.Command) *cmdContext {
	if cctx, ok := cmd.Context().Value(contextKey{}).(*cmdContext); ok {
		return cctx
	}
	cfg := app.DefaultConfig()
	return &cmdContext{Config: cfg, Logger: log.NewNopLogger()}
}

// openApp opens the node under the configured home and imports the genesis
// file if that has not happened yet. The caller must close the app.
func openApp(cmd *cobra.Command) (*app.OnsenApp, error) {
	cctx := getCmdContext(cmd)

	db, err := app.OpenDB(cctx.Config)
	if err != nil {
		return nil, err
	}
	node, err := app.NewOnsenApp(cctx.Logger, db, cctx.Config.JournalSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := ensureGenesis(cmd.Context(), node, cctx.Config); err != nil {
		_ = node.Close()
		return nil, err
	}
	return node, nil
}

func ensureGenesis(ctx context.Context, node *app.OnsenApp, cfg app.Config) error {
	initialized, err := node.Initialized()
	if err != nil || initialized {
		return err
	}

	doc, err := app.GenesisDocFromFile(cfg.GenesisFile())
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("node at %s is not initialized; run `%s init` first", cfg.Home, app.Name)
	}
	if err != nil {
		return err
	}
	return node.InitChain(ctx, *doc)
}

// withApp runs fn against an opened node and closes it afterwards
func withApp(cmd *cobra.Command, fn func(node *app.OnsenApp) error) error {
	node, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := node.Close(); cerr != nil {
			getCmdContext(cmd).Logger.Error("failed to close database", "error", cerr)
		}
	}()
	return fn(node)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
