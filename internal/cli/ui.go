package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"fitkit/internal/orchestration"
)

// ProgressRefreshRate defines the refresh frequency of the progress spinner.
const ProgressRefreshRate = 200 * time.Millisecond

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// It decouples DisplayProgress from a specific spinner implementation,
// facilitating easier testing.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for spinner.Spinner that implements the Spinner
// interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner tracking how many of the concurrent fits
// have completed. It consumes the progress channel until it is closed and
// signals wg when done.
//
// Parameters:
//   - wg: The WaitGroup signaled on completion.
//   - progressChan: Channel receiving completion updates from running fits.
//   - numConfigs: The number of fits being tracked.
//   - out: The writer for spinner output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numConfigs int, out io.Writer) {
	defer wg.Done()

	if numConfigs <= 0 {
		for range progressChan {
		}
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(fmt.Sprintf(" fitting 0/%d configurations", numConfigs))
	sp.Start()
	defer sp.Stop()

	completed := 0
	for update := range progressChan {
		if update.Value >= 1.0 {
			completed++
		}
		sp.UpdateSuffix(fmt.Sprintf(" fitting %d/%d configurations", completed, numConfigs))
	}
}
