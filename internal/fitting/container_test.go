package fitting

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"

	apperrors "fitkit/internal/errors"
	"fitkit/internal/fitmodel"
	"fitkit/internal/fitmodel/mocks"
)

// linearTestData returns a noiseless y = 2x + 1 sample.
func linearTestData() (x, y []float64) {
	x = []float64{0, 1, 2, 3}
	y = make([]float64, len(x))
	for i, xv := range x {
		y[i] = 2*xv + 1
	}
	return x, y
}

func newLinearContainer(t *testing.T) *Container {
	t.Helper()
	set := NewConfigurationSet(testRegistry(), nil)
	if err := set.Add("L1", "Linear", "default", nil); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	return NewContainer(set)
}

func TestContainerInitialState(t *testing.T) {
	t.Parallel()
	c := newLinearContainer(t)
	name, result := c.LastFit()
	if name != NoFit || result != nil {
		t.Errorf("initial state = (%q, %v), want (%q, nil)", name, result, NoFit)
	}
}

func TestContainerFitEmptyNameIsNoOp(t *testing.T) {
	t.Parallel()
	c := newLinearContainer(t)
	x, y := linearTestData()
	if _, _, err := c.Fit(context.Background(), "L1", x, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	notified := false
	c.OnResultChanged(func(string, *fitmodel.Result) { notified = true })

	name, result, err := c.Fit(context.Background(), "", x, y)
	if name != "" || result != nil || err != nil {
		t.Errorf("Fit(\"\") = (%q, %v, %v), want pure no-op", name, result, err)
	}
	if notified {
		t.Error("no-op fit must not notify listeners")
	}
	if lastName, lastResult := c.LastFit(); lastName != "L1" || lastResult == nil {
		t.Errorf("no-op fit must not touch last-fit state, got (%q, %v)", lastName, lastResult)
	}
}

func TestContainerFitNoFitResets(t *testing.T) {
	t.Parallel()
	c := newLinearContainer(t)
	x, y := linearTestData()
	if _, _, err := c.Fit(context.Background(), "L1", x, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	var gotName string
	var gotResult *fitmodel.Result
	notifications := 0
	c.OnResultChanged(func(name string, result *fitmodel.Result) {
		gotName, gotResult = name, result
		notifications++
	})

	name, result, err := c.Fit(context.Background(), NoFit, x, y)
	if name != NoFit || result != nil || err != nil {
		t.Errorf("Fit(NoFit) = (%q, %v, %v)", name, result, err)
	}
	if notifications != 1 || gotName != NoFit || gotResult != nil {
		t.Errorf("reset notification = (%q, %v) x%d, want (%q, nil) x1", gotName, gotResult, notifications, NoFit)
	}
	if lastName, lastResult := c.LastFit(); lastName != NoFit || lastResult != nil {
		t.Errorf("LastFit() after reset = (%q, %v)", lastName, lastResult)
	}
}

func TestContainerFitUnknownNameLeavesState(t *testing.T) {
	t.Parallel()
	c := newLinearContainer(t)
	x, y := linearTestData()
	if _, _, err := c.Fit(context.Background(), "L1", x, y); err != nil {
		t.Fatalf("Fit() error: %v", err)
	}

	_, _, err := c.Fit(context.Background(), "ghost", x, y)
	var nfErr apperrors.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if name, result := c.LastFit(); name != "L1" || result == nil {
		t.Errorf("failed fit must not touch last-fit state, got (%q, %v)", name, result)
	}
}

func TestContainerFitLinearEndToEnd(t *testing.T) {
	t.Parallel()
	c := newLinearContainer(t)
	x, y := linearTestData()

	var notifiedName string
	var notifiedResult *fitmodel.Result
	c.OnResultChanged(func(name string, result *fitmodel.Result) {
		notifiedName, notifiedResult = name, result
	})

	name, result, err := c.Fit(context.Background(), "L1", x, y)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	if name != "L1" || result == nil {
		t.Fatalf("Fit() = (%q, %v)", name, result)
	}
	if result.Model != "Linear" {
		t.Errorf("result model = %q", result.Model)
	}

	slope, _ := result.Params.Get(fitmodel.ParamSlope)
	intercept, _ := result.Params.Get(fitmodel.ParamIntercept)
	if math.Abs(slope.Value-2) > 1e-9 || math.Abs(intercept.Value-1) > 1e-9 {
		t.Errorf("fitted (slope, intercept) = (%v, %v), want (2, 1)", slope.Value, intercept.Value)
	}
	if result.ChiSquare > 1e-15 {
		t.Errorf("chi-square = %v for noiseless data", result.ChiSquare)
	}

	if result.HighRes == nil {
		t.Fatal("high resolution curve missing")
	}
	if got, want := len(result.HighRes.X), len(x)*HighResFactor; got != want {
		t.Errorf("high resolution points = %d, want %d", got, want)
	}
	if result.HighRes.X[0] != x[0] || result.HighRes.X[len(result.HighRes.X)-1] != x[len(x)-1] {
		t.Errorf("high resolution curve must span [%v, %v], got [%v, %v]",
			x[0], x[len(x)-1], result.HighRes.X[0], result.HighRes.X[len(result.HighRes.X)-1])
	}

	if notifiedName != "L1" || notifiedResult != result {
		t.Errorf("listener got (%q, %v), want the published pair", notifiedName, notifiedResult)
	}
	if lastName, lastResult := c.LastFit(); lastName != "L1" || lastResult != result {
		t.Errorf("LastFit() = (%q, %v), want the published pair", lastName, lastResult)
	}
}

func TestContainerFitRespectsOverrides(t *testing.T) {
	t.Parallel()
	set := NewConfigurationSet(testRegistry(), nil)

	// Fix the intercept at zero; only the slope may vary.
	intercept := fitmodel.NewParameter(0)
	intercept.Vary = false
	custom := fitmodel.NewParameters()
	custom.Set(fitmodel.ParamIntercept, intercept)
	if err := set.Add("through-origin", "Linear", "", &custom); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	c := NewContainer(set)

	x := []float64{1, 2, 3, 4}
	y := []float64{3, 6, 9, 12} // y = 3x
	_, result, err := c.Fit(context.Background(), "through-origin", x, y)
	if err != nil {
		t.Fatalf("Fit() error: %v", err)
	}
	gotIntercept, _ := result.Params.Get(fitmodel.ParamIntercept)
	if gotIntercept.Value != 0 || gotIntercept.Vary {
		t.Errorf("fixed intercept was not respected: %+v", gotIntercept)
	}
	gotSlope, _ := result.Params.Get(fitmodel.ParamSlope)
	if math.Abs(gotSlope.Value-3) > 1e-9 {
		t.Errorf("slope = %v, want 3", gotSlope.Value)
	}
}

func TestContainerFitSolverFailure(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	solverErr := errors.New("matrix is singular")
	model := mocks.NewMockModel(ctrl)
	model.EXPECT().Name().Return("Failing").AnyTimes()
	model.EXPECT().MakeParams().Return(fitmodel.NewParameters()).AnyTimes()
	model.EXPECT().
		Fit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, solverErr)

	registry := fitmodel.NewRegistry()
	if err := registry.Register(func() fitmodel.Model { return model }); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	registry.Freeze()

	set := NewConfigurationSet(registry, nil)
	if err := set.Add("F1", "Failing", "", nil); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	c := NewContainer(set)

	_, _, err := c.Fit(context.Background(), "F1", []float64{1, 2}, []float64{1, 2})
	var fitErr apperrors.FitError
	if !errors.As(err, &fitErr) {
		t.Fatalf("expected FitError, got %v", err)
	}
	if fitErr.Config != "F1" || fitErr.Model != "Failing" {
		t.Errorf("FitError identity = (%q, %q)", fitErr.Config, fitErr.Model)
	}
	if !errors.Is(err, solverErr) {
		t.Error("FitError must wrap the solver failure")
	}
	if name, result := c.LastFit(); name != NoFit || result != nil {
		t.Errorf("failed fit must not touch last-fit state, got (%q, %v)", name, result)
	}
}

func TestContainerFitCanceledContext(t *testing.T) {
	t.Parallel()
	c := newLinearContainer(t)
	x, y := linearTestData()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.Fit(ctx, "L1", x, y)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if name, result := c.LastFit(); name != NoFit || result != nil {
		t.Errorf("canceled fit must not touch last-fit state, got (%q, %v)", name, result)
	}
}

// TestContainerLastFitConsistency hammers the container with concurrent fits
// and resets while readers assert that the (name, result) pair is always
// observed as one consistent unit.
func TestContainerLastFitConsistency(t *testing.T) {
	t.Parallel()
	c := newLinearContainer(t)
	x, y := linearTestData()

	const (
		writers    = 4
		readers    = 8
		iterations = 200
	)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				name := "L1"
				if (i+w)%2 == 0 {
					name = NoFit
				}
				if _, _, err := c.Fit(context.Background(), name, x, y); err != nil {
					t.Errorf("Fit(%q) error: %v", name, err)
					return
				}
			}
		}(w)
	}

	for r := 0; r < readers; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				name, result := c.LastFit()
				switch name {
				case NoFit:
					if result != nil {
						t.Error("NoFit observed with a non-nil result")
						return
					}
				case "L1":
					if result == nil || result.Model != "Linear" {
						t.Error("fit name observed without its matching result")
						return
					}
				default:
					t.Errorf("unexpected last-fit name %q", name)
					return
				}
			}
		}()
	}

	wg.Wait()
}
