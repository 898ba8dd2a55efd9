package fitting

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "fitkit/internal/errors"
	"fitkit/internal/fitmodel"
	"fitkit/internal/logging"
	"fitkit/internal/metrics"
)

// HighResFactor is the sampling density multiplier of the display curve
// relative to the input data.
const HighResFactor = 10

// ResultListener receives the (configuration name, result) pair after every
// completed fit, including the NoFit reset where the result is nil.
type ResultListener func(configName string, result *fitmodel.Result)

// Container executes fits against a configuration set and tracks the single
// most recent result. The (config name, result) pair is one atomic unit
// guarded by a mutex held only for the state swap and for reads; the solver
// call itself runs lock-free so a long fit never blocks readers of the
// previous result.
type Container struct {
	set     *ConfigurationSet
	logger  logging.Logger
	metrics *metrics.FitMetrics
	tracer  trace.Tracer

	mu              sync.Mutex
	lastFitConfig   string
	lastFitResult   *fitmodel.Result
	resultListeners []ResultListener
}

// ContainerOption configures a Container during construction.
type ContainerOption func(*Container)

// WithLogger sets the container's logger.
func WithLogger(logger logging.Logger) ContainerOption {
	return func(c *Container) { c.logger = logger }
}

// WithMetrics attaches fit metrics collection.
func WithMetrics(m *metrics.FitMetrics) ContainerOption {
	return func(c *Container) { c.metrics = m }
}

// NewContainer creates a fit container over the given configuration set.
//
// Parameters:
//   - set: The configuration set used to resolve fit configurations.
//   - opts: Optional logger and metrics wiring.
//
// Returns:
//   - *Container: A container whose last-fit state starts at (NoFit, nil).
func NewContainer(set *ConfigurationSet, opts ...ContainerOption) *Container {
	c := &Container{
		set:           set,
		logger:        logging.NopLogger{},
		tracer:        otel.Tracer("fitkit/fitting"),
		lastFitConfig: NoFit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConfigurationSet returns the configuration set this container fits
// against.
func (c *Container) ConfigurationSet() *ConfigurationSet { return c.set }

// ConfigurationNames returns the names of the available fit configurations.
func (c *Container) ConfigurationNames() []string { return c.set.ConfigurationNames() }

// OnResultChanged registers a listener for last-fit changes. Listeners are
// invoked synchronously after the state swap, outside the state lock.
func (c *Container) OnResultChanged(listener ResultListener) {
	c.resultListeners = append(c.resultListeners, listener)
}

// LastFit returns the most recent (configuration name, result) pair as one
// consistent unit.
func (c *Container) LastFit() (string, *fitmodel.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFitConfig, c.lastFitResult
}

// publish atomically swaps in the new last-fit pair and notifies listeners.
func (c *Container) publish(configName string, result *fitmodel.Result) {
	c.mu.Lock()
	c.lastFitConfig = configName
	c.lastFitResult = result
	c.mu.Unlock()
	for _, listener := range c.resultListeners {
		listener(configName, result)
	}
}

// Fit executes the named fit configuration against (x, y).
//
// An empty configName is a pure no-op returning ("", nil). The reserved name
// NoFit atomically clears the last result. Any other name resolves through
// the configuration set, builds initial parameters from the configured
// estimator (or the model defaults), overlays the configured overrides, runs
// the model's fitting routine, and attaches a display curve sampled at
// HighResFactor times the input density across [x[0], x[len-1]].
//
// Solver failures propagate as a FitError; the last-fit state is only
// updated after a fully successful fit, so readers never observe a partial
// result.
//
// Parameters:
//   - ctx: The context passed through to the model's fitting routine.
//   - configName: The fit configuration name, "" or NoFit.
//   - x: The independent values.
//   - y: The dependent values, same length as x.
//
// Returns:
//   - string: The configuration name now held as last-fit state ("" for the
//     no-op case).
//   - *fitmodel.Result: The augmented result, nil for "" and NoFit.
//   - error: A NotFoundError, ValidationError or FitError.
func (c *Container) Fit(ctx context.Context, configName string, x, y []float64) (string, *fitmodel.Result, error) {
	if configName == "" {
		return "", nil, nil
	}
	if configName == NoFit {
		c.publish(NoFit, nil)
		return NoFit, nil, nil
	}

	cfg, err := c.set.GetByName(configName)
	if err != nil {
		return "", nil, err
	}
	// The registry is immutable after freeze, but configurations loaded
	// against a different registry generation surface drift here, at fit
	// time, rather than at load time.
	factory, ok := c.set.Registry().Get(cfg.Model())
	if !ok {
		return "", nil, apperrors.NotFoundError{Kind: "fit model", Name: cfg.Model()}
	}
	model := factory()

	params, err := c.initialParameters(cfg, model, x, y)
	if err != nil {
		return "", nil, err
	}

	ctx, span := c.tracer.Start(ctx, "fitting.fit", trace.WithAttributes(
		attribute.String("fit.config", configName),
		attribute.String("fit.model", cfg.Model()),
		attribute.Int("fit.points", len(x)),
	))
	defer span.End()

	if c.metrics != nil {
		c.metrics.FitStarted()
	}
	start := time.Now()
	result, err := model.Fit(ctx, y, params, x)
	elapsed := time.Since(start)
	if c.metrics != nil {
		c.metrics.FitFinished(cfg.Model(), elapsed, err)
	}
	if err != nil {
		fitErr := apperrors.FitError{Config: configName, Model: cfg.Model(), Cause: err}
		span.RecordError(fitErr)
		c.logger.Error("fit failed", fitErr,
			logging.String("config", configName),
			logging.String("model", cfg.Model()))
		return "", nil, fitErr
	}

	result.HighRes = highResCurve(model, result.Params, x)
	c.logger.Debug("fit finished",
		logging.String("config", configName),
		logging.String("model", cfg.Model()),
		logging.Int("points", len(x)),
		logging.Float64("chi_square", result.ChiSquare))

	c.publish(configName, result)
	return configName, result, nil
}

// initialParameters resolves the starting parameter table for a fit: the
// configured estimator applied to the data, or the model defaults, with the
// configured overrides overlaid by parameter name. Override names unknown to
// the current model are a validation error (stale overrides are caught here,
// lazily).
func (c *Container) initialParameters(cfg *Configuration, model fitmodel.Model, x, y []float64) (fitmodel.Parameters, error) {
	var params fitmodel.Parameters
	if estimator := cfg.Estimator(); estimator != "" {
		estimatorFn, ok := model.Estimators()[estimator]
		if !ok {
			return fitmodel.Parameters{}, apperrors.NewValidationError("estimator",
				"model %q no longer offers estimator %q", cfg.Model(), estimator)
		}
		estimated, err := estimatorFn(y, x)
		if err != nil {
			return fitmodel.Parameters{}, apperrors.FitError{Config: cfg.Name(), Model: cfg.Model(), Cause: err}
		}
		params = estimated
	} else {
		params = model.MakeParams()
	}

	if custom := cfg.CustomParameters(); custom != nil {
		for _, name := range custom.Names() {
			if !params.Has(name) {
				return fitmodel.Parameters{}, apperrors.NewValidationError("custom_parameters",
					"model %q no longer declares parameter %q", cfg.Model(), name)
			}
			override, _ := custom.Get(name)
			params.Set(name, override)
		}
	}
	return params, nil
}

// highResCurve samples the fitted model at HighResFactor times the input
// density, evenly spaced across the input domain, for smooth display.
func highResCurve(model fitmodel.Model, params fitmodel.Parameters, x []float64) *fitmodel.Curve {
	n := len(x) * HighResFactor
	if n == 0 {
		return &fitmodel.Curve{}
	}
	highX := make([]float64, n)
	x0, x1 := x[0], x[len(x)-1]
	if n == 1 {
		highX[0] = x0
	} else {
		step := (x1 - x0) / float64(n-1)
		for i := range highX {
			highX[i] = x0 + float64(i)*step
		}
		highX[n-1] = x1
	}
	return &fitmodel.Curve{X: highX, Y: model.Eval(params, highX)}
}
