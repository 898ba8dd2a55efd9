package fitmodel

import (
	"context"
	"math"
)

// Parameter names shared by the straight-line model and its estimators.
const (
	ParamSlope     = "slope"
	ParamIntercept = "intercept"
)

// LinearModel fits y = slope*x + intercept by ordinary least squares. Both
// parameters default to varying with unbounded limits; fixing either one
// reduces the solve to the remaining parameter.
type LinearModel struct{}

// Verify interface compliance.
var _ Model = (*LinearModel)(nil)

// Name returns the registry name of the model.
func (*LinearModel) Name() string { return "Linear" }

// MakeParams returns the default parameter table: slope 1, intercept 0,
// both varying and unbounded.
func (*LinearModel) MakeParams() Parameters {
	params := NewParameters()
	params.Set(ParamSlope, NewParameter(1))
	params.Set(ParamIntercept, NewParameter(0))
	return params
}

// Estimators returns the estimation strategies of the linear model. The
// "default" estimator seeds both parameters from a least-squares solve of
// the data itself.
func (m *LinearModel) Estimators() map[string]Estimator {
	return map[string]Estimator{
		"default": m.estimateDefault,
	}
}

// estimateDefault produces data-driven initial guesses for slope/intercept.
func (m *LinearModel) estimateDefault(data, x []float64) (Parameters, error) {
	params := m.MakeParams()
	fit, err := fitLine(x, data, 1, 0, true, true)
	if err != nil {
		return Parameters{}, err
	}
	slope, _ := params.Get(ParamSlope)
	slope.Value = fit.Slope
	params.Set(ParamSlope, slope)

	intercept, _ := params.Get(ParamIntercept)
	intercept.Value = fit.Intercept
	params.Set(ParamIntercept, intercept)
	return params, nil
}

// Fit solves the straight line against (x, data) starting from params.
func (m *LinearModel) Fit(ctx context.Context, data []float64, params Parameters, x []float64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	slopeParam, ok := params.Get(ParamSlope)
	if !ok {
		slopeParam = NewParameter(1)
	}
	interceptParam, ok := params.Get(ParamIntercept)
	if !ok {
		interceptParam = NewParameter(0)
	}

	fit, err := fitLine(x, data, slopeParam.Value, interceptParam.Value, slopeParam.Vary, interceptParam.Vary)
	if err != nil {
		return nil, err
	}

	slopeParam.Stderr = math.NaN()
	interceptParam.Stderr = math.NaN()
	if slopeParam.Vary {
		slopeParam.Value = clampToBounds(fit.Slope, slopeParam)
		slopeParam.Stderr = fit.SlopeErr
	}
	if interceptParam.Vary {
		interceptParam.Value = clampToBounds(fit.Intercept, interceptParam)
		interceptParam.Stderr = fit.InterceptErr
	}

	fitted := NewParameters()
	fitted.Set(ParamSlope, slopeParam)
	fitted.Set(ParamIntercept, interceptParam)

	return &Result{
		Model:     m.Name(),
		Params:    fitted,
		BestFit:   m.Eval(fitted, x),
		ChiSquare: residualSumOfSquares(x, data, slopeParam.Value, interceptParam.Value),
	}, nil
}

// Eval evaluates slope*x + intercept at every point of x.
func (m *LinearModel) Eval(params Parameters, x []float64) []float64 {
	slope, _ := params.Get(ParamSlope)
	intercept, _ := params.Get(ParamIntercept)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = slope.Value*v + intercept.Value
	}
	return out
}
