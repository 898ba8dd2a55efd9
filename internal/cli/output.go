package cli

import (
	"fmt"
	"io"
	"math"

	"fitkit/internal/fitmodel"
	"fitkit/internal/format"
	"fitkit/internal/metrics"
	"fitkit/internal/ui"
)

// PrintModelCatalog lists every registered fit model with its estimators and
// default parameter table.
//
// Parameters:
//   - names: The model names, in display order.
//   - estimators: Estimator names per model.
//   - defaults: Default parameter tables per model.
//   - out: The writer for the listing.
func PrintModelCatalog(names []string, estimators map[string][]string, defaults map[string]fitmodel.Parameters, out io.Writer) {
	styles := ui.GetTableStyles()

	for _, name := range names {
		fmt.Fprintf(out, "%s\n", styles.Header.Render(name))

		if list := estimators[name]; len(list) > 0 {
			fmt.Fprint(out, "  estimators: ")
			for i, estimator := range list {
				if i > 0 {
					fmt.Fprint(out, ", ")
				}
				fmt.Fprint(out, styles.Model.Render(estimator))
			}
			fmt.Fprintln(out)
		}

		params := defaults[name]
		for _, pname := range params.Names() {
			param, _ := params.Get(pname)
			fmt.Fprintf(out, "  %s = %s  [%s, %s]\n",
				styles.Config.Render(pname),
				styles.Value.Render(formatBound(param.Value)),
				formatBound(param.Min), formatBound(param.Max))
		}
		fmt.Fprintln(out)
	}
}

// formatBound renders a parameter value or bound, keeping infinities compact.
func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return fmt.Sprintf("%g", v)
	}
}

// PrintConfigurationList lists saved fit configurations with their model and
// estimator.
func PrintConfigurationList(rows [][3]string, out io.Writer) {
	styles := ui.GetTableStyles()
	if len(rows) == 0 {
		fmt.Fprintln(out, "no fit configurations defined")
		return
	}
	for _, row := range rows {
		estimator := row[2]
		if estimator == "" {
			estimator = "-"
		}
		fmt.Fprintf(out, "%s  model=%s  estimator=%s\n",
			styles.Config.Render(row[0]), styles.Model.Render(row[1]), estimator)
	}
}

// DisplayMemoryStats shows runtime memory statistics after a batch run.
func DisplayMemoryStats(snapshot metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snapshot.HeapAlloc))
	fmt.Fprintf(out, "  Heap from OS:    %s\n", format.FormatBytes(snapshot.HeapSys))
	fmt.Fprintf(out, "  Heap objects:    %d\n", snapshot.HeapObjects)
	fmt.Fprintf(out, "  GC cycles:       %d\n", snapshot.NumGC)
	if snapshot.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snapshot.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}

// DisplaySystemStats shows system-wide CPU and memory usage after a batch run.
func DisplaySystemStats(snapshot metrics.SystemSnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nSystem Stats:\n")
	fmt.Fprintf(out, "  CPU usage:       %.1f%%\n", snapshot.CPUPercent)
	fmt.Fprintf(out, "  Memory usage:    %.1f%%\n", snapshot.MemPercent)
}
