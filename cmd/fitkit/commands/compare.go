package commands

import (
	"github.com/spf13/cobra"

	apperrors "fitkit/internal/errors"
)

// compare <data.csv> [configs...]: fit several configurations concurrently
// and rank them by goodness of fit.
func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <data.csv> [configs...]",
		Short: "Compare fit configurations against the same data",
		Long: `Compare fits the listed configurations against the (x, y) samples in the
given CSV file concurrently, then prints a table ranked by chi-square with
failed fits last.

When no configuration names are given, every saved configuration is compared.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := appCtx.RunCompare(cmd.Context(), args[1:], args[0], cmd.OutOrStdout())
			if code != apperrors.ExitSuccess {
				return exitError{code: code}
			}
			return nil
		},
	}
}
