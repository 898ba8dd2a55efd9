package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"fitkit/internal/fitmodel"
)

// FitOutcome encapsulates the outcome of a single fit execution. It serves as
// the shared domain type between orchestration and presentation layers.
type FitOutcome struct {
	// Config is the name of the fit configuration that was executed.
	Config string
	// Model is the registry name of the fit model behind the configuration.
	Model string
	// Result is the completed fit result. It is nil if an error occurred.
	Result *fitmodel.Result
	// Duration is the time taken to complete the fit.
	Duration time.Duration
	// Err contains any error that occurred during the fit.
	Err error
}

// ProgressUpdate reports completion progress of one fit in a comparison run.
type ProgressUpdate struct {
	// ConfigIndex is the position of the configuration in the comparison.
	ConfigIndex int
	// Value is the progress of this fit, 0.0 to 1.0.
	Value float64
}

// Fitter executes a named fit configuration against a dataset. It is the
// narrow slice of the fit container the orchestration layer depends on,
// keeping coordination logic independent of the container's state tracking.
type Fitter interface {
	Fit(ctx context.Context, configName string, x, y []float64) (string, *fitmodel.Result, error)
}

// ProgressReporter defines the interface for displaying fit progress. It
// decouples the orchestration layer from the presentation layer; the
// orchestrator coordinates the fits while implementations handle the visual
// representation (spinner, plain text, nothing).
type ProgressReporter interface {
	// DisplayProgress consumes progress updates from the channel until it is
	// closed. It should be called in a separate goroutine.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving updates from running fits.
	//   - numConfigs: The number of concurrent fits being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numConfigs int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numConfigs int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numConfigs int, out io.Writer) {
	f(wg, progressChan, numConfigs, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter. It
// drains the progress channel without displaying anything. Useful for quiet
// mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting comparison outcomes.
// It decouples the orchestration layer from presentation concerns, allowing
// different output formats without modifying the coordination logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table.
	PresentComparisonTable(outcomes []FitOutcome, out io.Writer)

	// PresentBestFit displays the winning fit result in detail.
	PresentBestFit(outcome FitOutcome, out io.Writer)

	// HandleError reports a fit failure and returns the exit code for it.
	HandleError(err error, out io.Writer) int
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}
