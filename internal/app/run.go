package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"fitkit/internal/cli"
	apperrors "fitkit/internal/errors"
	"fitkit/internal/fitting"
	"fitkit/internal/format"
	"fitkit/internal/metrics"
	"fitkit/internal/orchestration"
	"fitkit/internal/server"
)

// runtimeOptions holds per-invocation settings that come from flags rather
// than the persisted configuration.
type runtimeOptions struct {
	// metricsAddr, when non-empty, enables the Prometheus endpoint for the
	// duration of a run.
	metricsAddr string
}

// EnableMetricsEndpoint exposes the fit metrics over HTTP at addr while a
// run is in flight.
func (a *Application) EnableMetricsEndpoint(addr string) {
	a.runtime.metricsAddr = addr
}

// withLifecycle applies the configured fit timeout and SIGINT/SIGTERM
// handling, and starts the metrics endpoint when one is configured. The
// returned stop function must be deferred.
func (a *Application) withLifecycle(ctx context.Context) (context.Context, func()) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Fit.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)

	serverDone := make(chan struct{})
	if a.runtime.metricsAddr != "" {
		srv := server.New(a.runtime.metricsAddr, a.Metrics, a.Logger)
		go func() {
			defer close(serverDone)
			if err := srv.Start(ctx); err != nil {
				a.Logger.Error("metrics endpoint failed", err)
			}
		}()
	} else {
		close(serverDone)
	}

	return ctx, func() {
		stopSignals()
		cancelTimeout()
		<-serverDone
	}
}

// presenter builds the CLI presenter from the configured units and output
// format.
func (a *Application) presenter() cli.CLIResultPresenter {
	return cli.CLIResultPresenter{Units: a.Config.Fit.Units, Format: a.Config.Output.Format}
}

// RunFit executes a single named fit configuration against the data file and
// renders the result.
//
// Parameters:
//   - ctx: The parent context.
//   - configName: The fit configuration to execute (may be fitting.NoFit).
//   - dataPath: The CSV file of (x, y) samples.
//   - out: The writer for results.
//
// Returns:
//   - int: The process exit code.
func (a *Application) RunFit(ctx context.Context, configName, dataPath string, out io.Writer) int {
	presenter := a.presenter()

	x, y, err := cli.LoadDataFile(dataPath)
	if err != nil {
		return presenter.HandleError(err, a.ErrWriter)
	}

	ctx, stop := a.withLifecycle(ctx)
	defer stop()

	name, result, err := a.Container.Fit(ctx, configName, x, y)
	if err != nil {
		return presenter.HandleError(err, a.ErrWriter)
	}
	if result == nil {
		if !a.Config.Output.Quiet {
			fmt.Fprintf(out, "fit state reset (%s)\n", name)
		}
		return apperrors.ExitSuccess
	}

	if a.Config.Output.Format == "dict" {
		raw, err := yaml.Marshal(fitting.DictResult(result, a.Config.Fit.Units))
		if err != nil {
			return presenter.HandleError(err, a.ErrWriter)
		}
		fmt.Fprint(out, string(raw))
	} else {
		fmt.Fprint(out, fitting.FormattedResult(result, a.Config.Fit.Units))
		if !a.Config.Output.Quiet {
			fmt.Fprintf(out, "chi-square: %.6g\n", result.ChiSquare)
		}
	}

	a.displayMemoryStatsIfVerbose(out)
	return apperrors.ExitSuccess
}

// RunCompare fits several configurations against the same data file
// concurrently and renders a ranked comparison.
//
// Parameters:
//   - ctx: The parent context.
//   - configNames: The configurations to compare; empty means all.
//   - dataPath: The CSV file of (x, y) samples.
//   - out: The writer for the report.
//
// Returns:
//   - int: The process exit code.
func (a *Application) RunCompare(ctx context.Context, configNames []string, dataPath string, out io.Writer) int {
	presenter := a.presenter()

	if len(configNames) == 0 {
		configNames = a.Set.ConfigurationNames()
	}
	if len(configNames) == 0 {
		return presenter.HandleError(apperrors.NewConfigError("no fit configurations defined"), a.ErrWriter)
	}

	x, y, err := cli.LoadDataFile(dataPath)
	if err != nil {
		return presenter.HandleError(err, a.ErrWriter)
	}

	ctx, stop := a.withLifecycle(ctx)
	defer stop()

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Output.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		fmt.Fprintf(out, "Comparing %d fit configurations over %d points (timeout %s)\n",
			len(configNames), len(x), format.FormatExecutionDuration(a.Config.Fit.Timeout))
		progressReporter = cli.CLIProgressReporter{}
	}

	outcomes := orchestration.ExecuteComparison(ctx, a.Container, configNames, x, y, progressReporter, progressOut)
	exitCode := orchestration.AnalyzeComparison(outcomes, presenter, out)

	a.displayMemoryStatsIfVerbose(out)
	return exitCode
}

// displayMemoryStatsIfVerbose prints runtime memory statistics after a run
// when verbose output is enabled.
func (a *Application) displayMemoryStatsIfVerbose(out io.Writer) {
	if !a.Config.Output.Verbose {
		return
	}
	cli.DisplayMemoryStats(metrics.NewMemoryCollector().Snapshot(), out)
	cli.DisplaySystemStats(metrics.SystemSample(), out)
}
