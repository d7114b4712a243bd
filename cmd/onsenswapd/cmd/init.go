package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/onsenswap/onsenswap/app"
)

const (
	flagOverwrite = "overwrite"
	flagChainID   = "chain-id"
)

// InitCmd writes the node configuration and an empty genesis document
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize config.toml and genesis.json under the node home",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getCmdContext(cmd).Config

			overwrite, err := cmd.Flags().GetBool(flagOverwrite)
			if err != nil {
				return err
			}
			chainID, err := cmd.Flags().GetString(flagChainID)
			if err != nil {
				return err
			}
			if chainID == "" {
				chainID = app.DefaultChainID
			}

			genFile := cfg.GenesisFile()
			if _, err := os.Stat(genFile); err == nil && !overwrite {
				return fmt.Errorf("genesis.json file already exists: %v", genFile)
			}

			configFile, err := cfg.WriteConfigFile()
			if err != nil {
				return err
			}
			if err := app.NewGenesisDoc(chainID).SaveAs(genFile); err != nil {
				return fmt.Errorf("failed to write genesis file: %w", err)
			}

			return printJSON(cmd, map[string]string{
				"chain_id": chainID,
				"home":     cfg.Home,
				"config":   configFile,
				"genesis":  genFile,
			})
		},
	}

	cmd.Flags().BoolP(flagOverwrite, "o", false, "overwrite the genesis.json file")
	cmd.Flags().String(flagChainID, "", "genesis file chain-id, defaults to "+app.DefaultChainID)

	return cmd
}
