// Package app wires configuration, logging, model registry, persistence and
// the fit container into one application instance shared by all commands.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"fitkit/internal/config"
	"fitkit/internal/fitmodel"
	"fitkit/internal/fitting"
	"fitkit/internal/logging"
	"fitkit/internal/metrics"
	"fitkit/internal/store"
)

// Application holds the long-lived dependencies of a fitkit invocation.
type Application struct {
	Config    config.AppConfig
	Logger    logging.Logger
	Registry  *fitmodel.Registry
	Set       *fitting.ConfigurationSet
	Store     *store.ConfigStore
	Container *fitting.Container
	Metrics   *metrics.FitMetrics
	ErrWriter io.Writer

	runtime runtimeOptions
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets a custom model registry for the application.
func WithRegistry(r *fitmodel.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithStore sets a custom configuration store for the application.
func WithStore(s *store.ConfigStore) AppOption {
	return func(a *Application) { a.Store = s }
}

// New creates an application instance: it loads the configuration, builds
// the logger at the configured level, assembles the model registry, restores
// persisted fit configurations from the store and constructs the fit
// container with metrics attached.
//
// Parameters:
//   - errWriter: The writer for error and log output.
//   - opts: Optional registry and store overrides.
//
// Returns:
//   - *Application: The wired application.
//   - error: A configuration loading or decoding failure.
func New(errWriter io.Writer, opts ...AppOption) (*Application, error) {
	if errWriter == nil {
		errWriter = os.Stderr
	}
	app := &Application{ErrWriter: errWriter}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	app.Logger = logging.NewLogger(errWriter, "fitkit")

	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = fitmodel.NewDefaultRegistry(app.Logger)
	}
	if app.Store == nil {
		app.Store = store.NewConfigStore(cfg.Storage.Path)
	}

	app.Set = fitting.NewConfigurationSet(app.Registry, app.Logger)
	dumps, err := app.Store.Load()
	if err != nil {
		return nil, err
	}
	app.Set.Load(dumps)

	app.Metrics = metrics.NewFitMetrics()
	app.Container = fitting.NewContainer(app.Set,
		fitting.WithLogger(app.Logger),
		fitting.WithMetrics(app.Metrics))
	return app, nil
}

// SaveConfigurations persists the current configuration set to the store.
func (a *Application) SaveConfigurations() error {
	dumps, err := a.Set.Dump()
	if err != nil {
		return err
	}
	return a.Store.Save(dumps)
}
