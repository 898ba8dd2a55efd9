package fitmodel

import (
	"context"
	"math"
)

// ParamOffset is the single parameter of the constant model.
const ParamOffset = "offset"

// ConstantModel fits y = offset, i.e. the mean of the data. It mostly serves
// as a baseline in comparisons and as the simplest possible registry entry.
type ConstantModel struct{}

var _ Model = (*ConstantModel)(nil)

// Name returns the registry name of the model.
func (*ConstantModel) Name() string { return "Constant" }

// MakeParams returns the default parameter table: offset 0, varying.
func (*ConstantModel) MakeParams() Parameters {
	params := NewParameters()
	params.Set(ParamOffset, NewParameter(0))
	return params
}

// Estimators returns the estimation strategies of the constant model.
func (m *ConstantModel) Estimators() map[string]Estimator {
	return map[string]Estimator{
		"mean": m.estimateMean,
	}
}

// estimateMean seeds offset with the mean of the data.
func (m *ConstantModel) estimateMean(data, x []float64) (Parameters, error) {
	if err := checkSeries(x, data); err != nil {
		return Parameters{}, err
	}
	params := m.MakeParams()
	offset, _ := params.Get(ParamOffset)
	offset.Value = meanOf(data)
	params.Set(ParamOffset, offset)
	return params, nil
}

// Fit solves the constant model: the varying offset is the data mean.
func (m *ConstantModel) Fit(ctx context.Context, data []float64, params Parameters, x []float64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkSeries(x, data); err != nil {
		return nil, err
	}
	offsetParam, ok := params.Get(ParamOffset)
	if !ok {
		offsetParam = NewParameter(0)
	}

	offsetParam.Stderr = math.NaN()
	if offsetParam.Vary {
		offsetParam.Value = clampToBounds(meanOf(data), offsetParam)
	}

	chi := 0.0
	for _, v := range data {
		r := v - offsetParam.Value
		chi += r * r
	}
	n := float64(len(data))
	if offsetParam.Vary && n > 1 {
		offsetParam.Stderr = math.Sqrt(chi / (n - 1) / n)
	}

	fitted := NewParameters()
	fitted.Set(ParamOffset, offsetParam)

	return &Result{
		Model:     m.Name(),
		Params:    fitted,
		BestFit:   m.Eval(fitted, x),
		ChiSquare: chi,
	}, nil
}

// Eval evaluates the constant at every point of x.
func (m *ConstantModel) Eval(params Parameters, x []float64) []float64 {
	offset, _ := params.Get(ParamOffset)
	out := make([]float64, len(x))
	for i := range x {
		out[i] = offset.Value
	}
	return out
}
