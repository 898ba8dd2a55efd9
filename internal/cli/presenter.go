package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "fitkit/internal/errors"
	"fitkit/internal/fitting"
	"fitkit/internal/format"
	"fitkit/internal/orchestration"
	"fitkit/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It wraps DisplayProgress to provide a spinner during comparison
// runs.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner tracking the ongoing fits.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numConfigs int, out io.Writer) {
	DisplayProgress(wg, progressChan, numConfigs, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, styled output for fit outcomes in the command-line
// interface.
type CLIResultPresenter struct {
	// Units maps parameter names to display units.
	Units map[string]string
	// Format selects the best-fit rendering: "text" or "dict".
	Format string
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with
// configuration names, models, chi-squares, durations and status in a styled
// tabular layout. Column widths are computed from the plain cell text so the
// lipgloss styling never skews the alignment.
func (p CLIResultPresenter) PresentComparisonTable(outcomes []orchestration.FitOutcome, out io.Writer) {
	styles := ui.GetTableStyles()

	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	type row struct {
		config, model, chi, duration, status string
		failed                               bool
	}
	rows := make([]row, 0, len(outcomes))
	for _, outcome := range outcomes {
		r := row{config: outcome.Config, model: outcome.Model, duration: format.FormatExecutionDuration(outcome.Duration)}
		if outcome.Duration == 0 {
			r.duration = "< 1µs"
		}
		if outcome.Err != nil {
			r.failed = true
			r.chi = "-"
			r.model = "-"
			r.status = fmt.Sprintf("failure (%v)", outcome.Err)
		} else {
			r.chi = fmt.Sprintf("%.6g", outcome.Result.ChiSquare)
			r.status = "success"
		}
		rows = append(rows, r)
	}

	headers := [5]string{"Configuration", "Model", "Chi-Square", "Duration", "Status"}
	widths := [5]int{len(headers[0]), len(headers[1]), len(headers[2]), len(headers[3]), len(headers[4])}
	for _, r := range rows {
		cells := [5]string{r.config, r.model, r.chi, r.duration, r.status}
		for i, cell := range cells {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range headers {
		fmt.Fprintf(out, "%s%s", styles.Header.Render(h), pad(len(h), widths[i]))
		if i < len(headers)-1 {
			fmt.Fprint(out, "   ")
		}
	}
	fmt.Fprintln(out)

	for _, r := range rows {
		statusStyle := styles.Success
		if r.failed {
			statusStyle = styles.Error
		}
		fmt.Fprintf(out, "%s%s   %s%s   %s%s   %s%s   %s\n",
			styles.Config.Render(r.config), pad(len(r.config), widths[0]),
			styles.Model.Render(r.model), pad(len(r.model), widths[1]),
			styles.Value.Render(r.chi), pad(len(r.chi), widths[2]),
			styles.Value.Render(r.duration), pad(len(r.duration), widths[3]),
			statusStyle.Render(r.status))
	}
}

// pad returns the spaces needed to extend a cell of the given length to the
// column width.
func pad(length, width int) string {
	if width <= length {
		return ""
	}
	return fmt.Sprintf("%*s", width-length, "")
}

// PresentBestFit displays the winning fit result in a bordered panel, either
// as the unit-aware text summary or as a YAML export mapping.
func (p CLIResultPresenter) PresentBestFit(outcome orchestration.FitOutcome, out io.Writer) {
	styles := ui.GetTableStyles()

	var body string
	if p.Format == "dict" {
		raw, err := yaml.Marshal(fitting.DictResult(outcome.Result, p.Units))
		if err != nil {
			fmt.Fprintf(out, "\nerror rendering result: %v\n", err)
			return
		}
		body = string(raw)
	} else {
		body = fitting.FormattedResult(outcome.Result, p.Units)
	}

	fmt.Fprintf(out, "\nBest fit: %s (%s)\n", styles.Config.Render(outcome.Config), format.FormatExecutionDuration(outcome.Duration))
	fmt.Fprintln(out, styles.Panel.Render(trimTrailingNewline(body)))
}

// trimTrailingNewline removes one trailing newline so the panel border hugs
// the content.
func trimTrailingNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		return s[:len(s)-1]
	}
	return s
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError reports a fit failure and returns the exit code describing it.
func (CLIResultPresenter) HandleError(err error, out io.Writer) int {
	theme := ui.GetCurrentTheme()
	switch {
	case err == nil:
		return apperrors.ExitErrorGeneric
	case apperrors.IsContextError(err):
		fmt.Fprintf(out, "%sFit canceled: %v%s\n", theme.Warning, err, theme.Reset)
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", theme.Error, err, theme.Reset)
	}
	return apperrors.ExitCodeFor(err)
}
