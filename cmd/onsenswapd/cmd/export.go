package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onsenswap/onsenswap/app"
)

const flagOutputDocument = "output-document"

// ExportCmd dumps the current state as a genesis document
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export state to a genesis file",
		Long:  "Export the token and pair state at the current block. Importing it with InitChain on a fresh home restores the node.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputDocument, err := cmd.Flags().GetString(flagOutputDocument)
			if err != nil {
				return err
			}

			return withApp(cmd, func(node *app.OnsenApp) error {
				doc, err := node.ExportGenesis(cmd.Context())
				if err != nil {
					return fmt.Errorf("error exporting state: %w", err)
				}
				if outputDocument != "" {
					return doc.SaveAs(outputDocument)
				}

				return printJSON(cmd, doc)
			})
		},
	}
	cmd.Flags().String(flagOutputDocument, "", "write the exported genesis to this path instead of stdout")
	return cmd
}
