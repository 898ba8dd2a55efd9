package commands

import (
	"github.com/spf13/cobra"

	"fitkit/internal/cli"
)

// models: list the registered fit models with estimators and defaults.
func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available fit models",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cli.PrintModelCatalog(
				appCtx.Set.ModelNames(),
				appCtx.Set.ModelEstimators(),
				appCtx.Set.ModelDefaultParameters(),
				cmd.OutOrStdout(),
			)
		},
	}
}
