package fitting

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"fitkit/internal/fitmodel"
)

// TestDumpLoadRoundTrip_PropertyBased verifies that serializing a
// configuration set and loading the dump into a fresh set reproduces the
// collection exactly: same names, same order, same parameter overrides.
// Float values survive because the wire format encodes them as strings with
// shortest-round-trip precision.
func TestDumpLoadRoundTrip_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("load(dump()) preserves names, order and overrides", prop.ForAll(
		func(names []string, slopeValue float64, vary bool) bool {
			set := NewConfigurationSet(testRegistry(), nil)

			slope := fitmodel.NewParameter(slopeValue)
			slope.Vary = vary
			custom := fitmodel.NewParameters()
			custom.Set(fitmodel.ParamSlope, slope)

			seen := make(map[string]bool)
			for _, name := range names {
				if name == "" || name == NoFit || seen[name] {
					continue
				}
				seen[name] = true
				if err := set.Add(name, "Linear", "default", &custom); err != nil {
					t.Logf("Add(%q) failed: %v", name, err)
					return false
				}
			}

			dump, err := set.Dump()
			if err != nil {
				t.Logf("Dump() failed: %v", err)
				return false
			}
			restored := NewConfigurationSet(testRegistry(), nil)
			restored.Load(dump)

			if !reflect.DeepEqual(restored.ConfigurationNames(), set.ConfigurationNames()) {
				return false
			}
			for _, cfg := range restored.Configurations() {
				got := cfg.CustomParameters()
				if got == nil {
					return false
				}
				gotSlope, ok := got.Get(fitmodel.ParamSlope)
				if !ok || gotSlope.Value != slopeValue || gotSlope.Vary != vary {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
		gen.Float64Range(-1e12, 1e12),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
