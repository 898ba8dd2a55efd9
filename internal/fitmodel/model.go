//go:generate mockgen -source=model.go -destination=mocks/mock_model.go -package=mocks

package fitmodel

import (
	"context"
	"sort"
)

// Estimator computes initial parameter guesses from raw data. The returned
// table must use the same parameter names as the model's MakeParams.
type Estimator func(data, x []float64) (Parameters, error)

// Model is the pluggable fit-model capability: a parametric function with
// one or more estimation strategies, a fitting routine and an evaluation
// routine. Implementations must be safe to instantiate per use; callers never
// assume a model instance keeps stable state across calls.
type Model interface {
	// Name returns the model's registry name (e.g., "Linear").
	Name() string

	// Estimators returns the named parameter-estimation strategies the
	// model offers.
	Estimators() map[string]Estimator

	// MakeParams returns the model's default parameter table.
	MakeParams() Parameters

	// Fit runs the model's fitting routine on (x, data) starting from the
	// given parameters. Fixed parameters (Vary=false) keep their value.
	//
	// Parameters:
	//   - ctx: The context for cancellation of long-running fits.
	//   - data: The dependent values (y).
	//   - params: The initial parameter table.
	//   - x: The independent values, same length as data.
	//
	// Returns:
	//   - *Result: The fit result on success.
	//   - error: A numerical or input failure; no partial result is returned.
	Fit(ctx context.Context, data []float64, params Parameters, x []float64) (*Result, error)

	// Eval evaluates the model function at x using the given parameter
	// values.
	Eval(params Parameters, x []float64) []float64
}

// Curve is a sampled (x, y) evaluation of a model function.
type Curve struct {
	X []float64
	Y []float64
}

// Result is the outcome of a completed fit. Params holds the fitted values
// together with per-parameter standard errors; a standard error is only
// meaningful for parameters that were allowed to vary.
type Result struct {
	// Model is the name of the model that produced this result.
	Model string
	// Params is the fitted parameter table.
	Params Parameters
	// BestFit is the model evaluated at the input x with fitted values.
	BestFit []float64
	// ChiSquare is the residual sum of squares of the fit.
	ChiSquare float64
	// HighRes is a densified evaluation curve for display, attached by the
	// fit orchestration layer after the fit completes. Nil until then.
	HighRes *Curve
}

// EstimatorNames returns the sorted estimator names of a model.
func EstimatorNames(m Model) []string {
	estimators := m.Estimators()
	names := make([]string, 0, len(estimators))
	for name := range estimators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
