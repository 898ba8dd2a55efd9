package fitting

import (
	"fmt"
	"math"
	"strings"

	"fitkit/internal/fitmodel"
)

// FormattedResult renders a completed fit result as a unit-aware text
// summary, one line per parameter. A parameter's standard error is reported
// only when the parameter was allowed to vary; a varying parameter whose
// error was not determined shows the NaN sentinel, and a fixed parameter is
// marked as fixed instead. A nil result yields the empty string.
//
// Parameters:
//   - result: The fit result, possibly nil.
//   - units: Optional parameter-name to unit mapping; missing entries
//     default to no unit.
//
// Returns:
//   - string: The rendered summary, "" for a nil result.
func FormattedResult(result *fitmodel.Result, units map[string]string) string {
	if result == nil {
		return ""
	}

	width := 0
	for _, name := range result.Params.Names() {
		if len(name) > width {
			width = len(name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Model: %s\n", result.Model)
	for _, name := range result.Params.Names() {
		param, _ := result.Params.Get(name)
		unit := units[name]
		if unit != "" {
			unit = " " + unit
		}
		switch {
		case !param.Vary:
			fmt.Fprintf(&b, "%-*s: %.6g%s (fixed)\n", width, name, param.Value, unit)
		case math.IsNaN(param.Stderr):
			fmt.Fprintf(&b, "%-*s: %.6g ± NaN%s\n", width, name, param.Value, unit)
		default:
			fmt.Fprintf(&b, "%-*s: %.6g ± %.3g%s\n", width, name, param.Value, param.Stderr, unit)
		}
	}
	return b.String()
}

// defaultExportKeys are the per-parameter fields exported by DictResult when
// the caller does not choose its own.
var defaultExportKeys = []string{"value", "stderr"}

// DictResult renders a completed fit result as an export mapping keyed by
// "model" plus one entry per parameter carrying the requested export keys
// and a unit tag. A nil result yields an empty mapping.
//
// Parameters:
//   - result: The fit result, possibly nil.
//   - units: Optional parameter-name to unit mapping; missing entries
//     default to the empty string.
//   - exportKeys: The per-parameter fields to export; defaults to
//     ("value", "stderr") when empty. Supported keys: value, stderr, min,
//     max, vary.
//
// Returns:
//   - map[string]any: The export mapping, empty for a nil result.
func DictResult(result *fitmodel.Result, units map[string]string, exportKeys ...string) map[string]any {
	export := make(map[string]any)
	if result == nil {
		return export
	}
	if len(exportKeys) == 0 {
		exportKeys = defaultExportKeys
	}

	export["model"] = result.Model
	for _, name := range result.Params.Names() {
		param, _ := result.Params.Get(name)
		entry := make(map[string]any, len(exportKeys)+1)
		for _, key := range exportKeys {
			switch key {
			case "value":
				entry[key] = param.Value
			case "stderr":
				entry[key] = param.Stderr
			case "min":
				entry[key] = param.Min
			case "max":
				entry[key] = param.Max
			case "vary":
				entry[key] = param.Vary
			}
		}
		entry["unit"] = units[name]
		export[name] = entry
	}
	return export
}
