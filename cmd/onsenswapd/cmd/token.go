package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/onsenswap/onsenswap/api"
	"github.com/onsenswap/onsenswap/app"
)

const flagTTL = "ttl"

// APITokenCmd signs a bearer token for the HTTP tx routes with the configured
// api.auth-secret
func APITokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api-token [operator]",
		Short: "Issue a bearer token for the /api/tx routes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getCmdContext(cmd).Config
			auth := api.NewTokenAuth(cfg.API.AuthSecret)
			if auth == nil {
				return errors.New(app.FlagAPIAuthSecret + " is not configured")
			}

			ttl, err := cmd.Flags().GetDuration(flagTTL)
			if err != nil {
				return err
			}
			token, err := auth.GenerateToken(args[0], ttl)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"operator":   args[0],
				"token":      token,
				"expires_at": time.Now().Add(ttl).UTC(),
			})
		},
	}
	cmd.Flags().Duration(flagTTL, 24*time.Hour, "token lifetime")
	return cmd
}
