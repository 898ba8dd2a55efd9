package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "fitkit/internal/errors"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking fit
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteComparison orchestrates the concurrent execution of several fit
// configurations against the same dataset.
//
// It manages the lifecycle of the fit goroutines, collects their outcomes in
// input order, and coordinates the display of progress updates. Each fit
// reports a single completion update; individual failures are captured in the
// corresponding outcome rather than aborting the run.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - fitter: The fit executor to run each configuration through.
//   - configNames: The fit configurations to compare.
//   - x: The independent values shared by all fits.
//   - y: The dependent values shared by all fits.
//   - progressReporter: The progress reporter for displaying updates (use
//     NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []FitOutcome: One outcome per configuration, in input order.
func ExecuteComparison(ctx context.Context, fitter Fitter, configNames []string, x, y []float64, progressReporter ProgressReporter, out io.Writer) []FitOutcome {
	g, ctx := errgroup.WithContext(ctx)
	outcomes := make([]FitOutcome, len(configNames))
	progressChan := make(chan ProgressUpdate, len(configNames)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(configNames), out)

	for i, name := range configNames {
		idx, configName := i, name
		g.Go(func() error {
			startTime := time.Now()
			_, result, err := fitter.Fit(ctx, configName, x, y)
			outcome := FitOutcome{
				Config: configName, Result: result, Duration: time.Since(startTime), Err: err,
			}
			if result != nil {
				outcome.Model = result.Model
			}
			outcomes[idx] = outcome
			progressChan <- ProgressUpdate{ConfigIndex: idx, Value: 1.0}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return outcomes
}

// AnalyzeComparison processes the outcomes of a comparison run and generates
// a summary report.
//
// It sorts the outcomes with successful fits first, successes ordered by
// goodness of fit (ascending chi-square) and failures by duration, then
// displays a comparative table and the winning fit. It handles the logic for
// determining global success or failure based on the individual outcomes.
//
// Parameters:
//   - outcomes: The fit outcomes to analyze. Sorted in place.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparison(outcomes []FitOutcome, presenter ResultPresenter, out io.Writer) int {
	sort.SliceStable(outcomes, func(i, j int) bool {
		if (outcomes[i].Err == nil) != (outcomes[j].Err == nil) {
			return outcomes[i].Err == nil
		}
		if outcomes[i].Err == nil {
			return outcomes[i].Result.ChiSquare < outcomes[j].Result.ChiSquare
		}
		return outcomes[i].Duration < outcomes[j].Duration
	})

	var firstError error
	successCount := 0
	for i := range outcomes {
		if outcomes[i].Err != nil {
			if firstError == nil {
				firstError = outcomes[i].Err
			}
		} else {
			successCount++
		}
	}

	presenter.PresentComparisonTable(outcomes, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No configuration could fit the data.\n")
		return presenter.HandleError(firstError, out)
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. %d of %d configurations fit the data.\n", successCount, len(outcomes))
	presenter.PresentBestFit(outcomes[0], out)
	return apperrors.ExitSuccess
}
