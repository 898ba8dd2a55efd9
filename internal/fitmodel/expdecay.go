package fitmodel

import (
	"context"
	"fmt"
	"math"
)

// Parameter names of the exponential decay model.
const (
	ParamAmplitude = "amplitude"
	ParamDecay     = "decay"
)

// ExpDecayModel fits y = amplitude * exp(-x/decay). The solve works on the
// log-linearized form ln(y) = ln(amplitude) - x/decay, which requires
// strictly positive data; non-positive samples are a fit failure, not a
// silent skip.
type ExpDecayModel struct{}

var _ Model = (*ExpDecayModel)(nil)

// Name returns the registry name of the model.
func (*ExpDecayModel) Name() string { return "Exponential Decay" }

// MakeParams returns the default parameter table: amplitude 1 (bounded below
// by zero), decay 1, both varying.
func (*ExpDecayModel) MakeParams() Parameters {
	amplitude := NewParameter(1)
	amplitude.Min = 0
	decay := NewParameter(1)

	params := NewParameters()
	params.Set(ParamAmplitude, amplitude)
	params.Set(ParamDecay, decay)
	return params
}

// Estimators returns the estimation strategies of the decay model.
func (m *ExpDecayModel) Estimators() map[string]Estimator {
	return map[string]Estimator{
		"decay": m.estimateDecay,
	}
}

// estimateDecay guesses amplitude from the first sample and the decay
// constant from the endpoints of the series.
func (m *ExpDecayModel) estimateDecay(data, x []float64) (Parameters, error) {
	if err := checkSeries(x, data); err != nil {
		return Parameters{}, err
	}
	params := m.MakeParams()

	amplitude, _ := params.Get(ParamAmplitude)
	amplitude.Value = data[0]
	if amplitude.Value <= 0 {
		amplitude.Value = 1
	}
	params.Set(ParamAmplitude, amplitude)

	decay, _ := params.Get(ParamDecay)
	decay.Value = (x[len(x)-1] - x[0]) / 2
	if last := data[len(data)-1]; last > 0 && amplitude.Value > last {
		span := x[len(x)-1] - x[0]
		decay.Value = span / math.Log(amplitude.Value/last)
	}
	if decay.Value <= 0 || math.IsNaN(decay.Value) || math.IsInf(decay.Value, 0) {
		decay.Value = 1
	}
	params.Set(ParamDecay, decay)
	return params, nil
}

// Fit solves the log-linearized decay against (x, data).
func (m *ExpDecayModel) Fit(ctx context.Context, data []float64, params Parameters, x []float64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkSeries(x, data); err != nil {
		return nil, err
	}
	logData := make([]float64, len(data))
	for i, v := range data {
		if v <= 0 {
			return nil, fmt.Errorf("exponential decay fit requires positive data, got %g at index %d", v, i)
		}
		logData[i] = math.Log(v)
	}

	amplitudeParam, ok := params.Get(ParamAmplitude)
	if !ok {
		amplitudeParam = NewParameter(1)
	}
	decayParam, ok := params.Get(ParamDecay)
	if !ok {
		decayParam = NewParameter(1)
	}
	if decayParam.Value == 0 {
		return nil, fmt.Errorf("decay constant must be non-zero")
	}
	if !amplitudeParam.Vary && amplitudeParam.Value <= 0 {
		return nil, fmt.Errorf("fixed amplitude must be positive, got %g", amplitudeParam.Value)
	}

	// In log space: intercept = ln(amplitude), slope = -1/decay.
	fit, err := fitLine(x, logData,
		-1/decayParam.Value, math.Log(math.Abs(amplitudeParam.Value)+math.SmallestNonzeroFloat64),
		decayParam.Vary, amplitudeParam.Vary)
	if err != nil {
		return nil, err
	}
	if fit.Slope == 0 {
		return nil, fmt.Errorf("data shows no decay: zero slope in log space")
	}

	amplitudeParam.Stderr = math.NaN()
	decayParam.Stderr = math.NaN()
	if amplitudeParam.Vary {
		amplitudeParam.Value = clampToBounds(math.Exp(fit.Intercept), amplitudeParam)
		// First-order error propagation through exp().
		amplitudeParam.Stderr = amplitudeParam.Value * fit.InterceptErr
	}
	if decayParam.Vary {
		decayParam.Value = clampToBounds(-1/fit.Slope, decayParam)
		// First-order error propagation through -1/slope.
		decayParam.Stderr = fit.SlopeErr / (fit.Slope * fit.Slope)
	}

	fitted := NewParameters()
	fitted.Set(ParamAmplitude, amplitudeParam)
	fitted.Set(ParamDecay, decayParam)

	bestFit := m.Eval(fitted, x)
	chi := 0.0
	for i := range data {
		r := data[i] - bestFit[i]
		chi += r * r
	}

	return &Result{
		Model:     m.Name(),
		Params:    fitted,
		BestFit:   bestFit,
		ChiSquare: chi,
	}, nil
}

// Eval evaluates amplitude*exp(-x/decay) at every point of x.
func (m *ExpDecayModel) Eval(params Parameters, x []float64) []float64 {
	amplitude, _ := params.Get(ParamAmplitude)
	decay, _ := params.Get(ParamDecay)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = amplitude.Value * math.Exp(-v/decay.Value)
	}
	return out
}
