package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/trading-engine-go/internal/adapters/dataset"
)

// NewDatasetCommand creates the dataset command with subcommands
func NewDatasetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage the settlement and cargo dataset",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import [path]",
		Short: "Import settlements and cargo from a YAML dataset",
		Long: `Import settlements and cargo from a YAML dataset into the database.

Existing rows with the same name are replaced. Without a path the embedded
default dataset is imported.

Examples:
  trading dataset import
  trading dataset import ./campaign.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			ds, err := dataset.LoadOrDefault(path)
			if err != nil {
				return err
			}
			return withRuntime(func(ctx context.Context, rt *runtime) error {
				summary, err := dataset.Import(ctx, ds, rt.data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d settlements and %d cargo types\n", summary.Settlements, summary.Cargo)
				return nil
			})
		},
	})

	return cmd
}
