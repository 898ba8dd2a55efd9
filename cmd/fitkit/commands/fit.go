package commands

import (
	"github.com/spf13/cobra"

	apperrors "fitkit/internal/errors"
)

// fit <config> <data.csv>: run one fit configuration against a data file.
func fitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fit <config> <data.csv>",
		Short: "Fit a single configuration to a data file",
		Long: `Fit runs the named fit configuration against the (x, y) samples in the
given CSV file and prints the resulting parameters.

Passing the reserved configuration name "No Fit" resets the last fit state
without running a solver.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := appCtx.RunFit(cmd.Context(), args[0], args[1], cmd.OutOrStdout())
			if code != apperrors.ExitSuccess {
				return exitError{code: code}
			}
			return nil
		},
	}
}
