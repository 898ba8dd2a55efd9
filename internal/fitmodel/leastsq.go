package fitmodel

import (
	"fmt"
	"math"
)

// lineFit is the outcome of a straight-line least-squares solve.
type lineFit struct {
	Slope        float64
	Intercept    float64
	SlopeErr     float64
	InterceptErr float64
	RSS          float64
}

// checkSeries validates that x and y describe a usable data series.
func checkSeries(x, y []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("empty data series")
	}
	if len(x) != len(y) {
		return fmt.Errorf("x and y length mismatch: %d != %d", len(x), len(y))
	}
	return nil
}

// meanOf returns the arithmetic mean of values.
func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// residualSumOfSquares computes sum((y - slope*x - intercept)^2).
func residualSumOfSquares(x, y []float64, slope, intercept float64) float64 {
	rss := 0.0
	for i := range x {
		r := y[i] - slope*x[i] - intercept
		rss += r * r
	}
	return rss
}

// fitLine solves y = slope*x + intercept by ordinary least squares, honoring
// fixed parameters. When a parameter is fixed its provided value is kept and
// its reported standard error is NaN. Standard errors are derived from the
// residual variance; with zero remaining degrees of freedom they are NaN.
func fitLine(x, y []float64, slope, intercept float64, varySlope, varyIntercept bool) (lineFit, error) {
	if err := checkSeries(x, y); err != nil {
		return lineFit{}, err
	}
	n := float64(len(x))
	fit := lineFit{
		Slope:        slope,
		Intercept:    intercept,
		SlopeErr:     math.NaN(),
		InterceptErr: math.NaN(),
	}

	xMean := meanOf(x)
	sxx := 0.0
	for _, v := range x {
		sxx += (v - xMean) * (v - xMean)
	}

	dof := n
	switch {
	case varySlope && varyIntercept:
		if sxx == 0 {
			return lineFit{}, fmt.Errorf("degenerate x data: all points share one x value")
		}
		yMean := meanOf(y)
		sxy := 0.0
		for i := range x {
			sxy += (x[i] - xMean) * (y[i] - yMean)
		}
		fit.Slope = sxy / sxx
		fit.Intercept = yMean - fit.Slope*xMean
		dof -= 2
	case varySlope:
		// Intercept fixed: minimize over slope only.
		sxxRaw, sxyRaw := 0.0, 0.0
		for i := range x {
			sxxRaw += x[i] * x[i]
			sxyRaw += x[i] * (y[i] - intercept)
		}
		if sxxRaw == 0 {
			return lineFit{}, fmt.Errorf("degenerate x data: all points at x = 0")
		}
		fit.Slope = sxyRaw / sxxRaw
		dof--
	case varyIntercept:
		residuals := make([]float64, len(x))
		for i := range x {
			residuals[i] = y[i] - slope*x[i]
		}
		fit.Intercept = meanOf(residuals)
		dof--
	}

	fit.RSS = residualSumOfSquares(x, y, fit.Slope, fit.Intercept)

	if dof > 0 {
		variance := fit.RSS / dof
		if varySlope && varyIntercept {
			fit.SlopeErr = math.Sqrt(variance / sxx)
			fit.InterceptErr = math.Sqrt(variance * (1/n + xMean*xMean/sxx))
		} else if varySlope {
			sxxRaw := 0.0
			for _, v := range x {
				sxxRaw += v * v
			}
			fit.SlopeErr = math.Sqrt(variance / sxxRaw)
		} else if varyIntercept {
			fit.InterceptErr = math.Sqrt(variance / n)
		}
	}
	return fit, nil
}

// clampToBounds limits value to the [min, max] range of the parameter.
func clampToBounds(value float64, param Parameter) float64 {
	if value < param.Min {
		return param.Min
	}
	if value > param.Max {
		return param.Max
	}
	return value
}
