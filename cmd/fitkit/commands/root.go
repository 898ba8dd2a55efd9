package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fitkit/internal/app"
	apperrors "fitkit/internal/errors"
	"fitkit/internal/ui"
)

var (
	appCtx *app.Application

	noColor     bool
	quiet       bool
	verbose     bool
	format      string
	metricsAddr string
)

// exitError carries a domain exit code through cobra's error return.
type exitError struct {
	code int
}

func (e exitError) Error() string { return fmt.Sprintf("exit code %d", e.code) }

// Execute runs the fitkit command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	root := &cobra.Command{
		Use:           "fitkit",
		Short:         "Manage and run curve fit configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.InitTheme(noColor)

			a, err := app.New(os.Stderr)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("quiet") {
				a.Config.Output.Quiet = quiet
			}
			if cmd.Flags().Changed("verbose") {
				a.Config.Output.Verbose = verbose
			}
			if cmd.Flags().Changed("format") {
				a.Config.Output.Format = format
			}
			if metricsAddr != "" {
				a.EnableMetricsEndpoint(metricsAddr)
			}
			appCtx = a
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress and diagnostic output")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show diagnostic output after runs")
	root.PersistentFlags().StringVar(&format, "format", "", "result format: text or dict")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "expose Prometheus metrics at this address during runs")

	root.AddCommand(modelsCmd(), configCmd(), fitCmd(), compareCmd())

	root.SetContext(ctx)
	if err := root.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			return ee.code
		}
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return apperrors.ExitCodeFor(err)
	}
	return apperrors.ExitSuccess
}
