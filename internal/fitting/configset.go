package fitting

import (
	apperrors "fitkit/internal/errors"
	"fitkit/internal/fitmodel"
	"fitkit/internal/logging"
)

// NamesListener receives the full ordered tuple of configuration names after
// every structural change, including bulk reload.
type NamesListener func(names []string)

// ListObserver receives structural notifications suitable for driving an
// observable list view. Notifications are delivered synchronously on the
// mutating goroutine, before the mutating call returns; observers must not
// re-enter the set during the callback.
type ListObserver interface {
	// RowsInserted signals that rows [first, last] were appended.
	RowsInserted(first, last int)
	// RowsRemoved signals that rows [first, last] were removed.
	RowsRemoved(first, last int)
	// RowChanged signals that the configuration at row changed in place.
	RowChanged(row int)
	// Reset signals that the whole collection was replaced.
	Reset()
}

// ConfigurationSet is an ordered, observable collection of fit
// configurations, keyed by unique name. Insertion order is display order.
// The set owns its elements exclusively; mutation happens through Add,
// Remove, ReplaceParameters and Load only. It is not internally locked and
// assumes a single mutating goroutine.
type ConfigurationSet struct {
	registry       *fitmodel.Registry
	logger         logging.Logger
	configurations []*Configuration
	namesListeners []NamesListener
	listObservers  []ListObserver
}

// NewConfigurationSet creates an empty configuration set bound to the given
// model registry.
//
// Parameters:
//   - registry: The model registry used to validate configurations.
//   - logger: The logger for reload diagnostics; nil falls back to a no-op.
//
// Returns:
//   - *ConfigurationSet: The empty set.
func NewConfigurationSet(registry *fitmodel.Registry, logger logging.Logger) *ConfigurationSet {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &ConfigurationSet{registry: registry, logger: logger}
}

// Registry returns the model registry this set validates against.
func (s *ConfigurationSet) Registry() *fitmodel.Registry { return s.registry }

// OnNamesChanged registers a listener for the ordered name tuple.
func (s *ConfigurationSet) OnNamesChanged(listener NamesListener) {
	s.namesListeners = append(s.namesListeners, listener)
}

// AddListObserver registers a structural list observer.
func (s *ConfigurationSet) AddListObserver(observer ListObserver) {
	s.listObservers = append(s.listObservers, observer)
}

// notifyNames delivers the current name tuple to all listeners.
func (s *ConfigurationSet) notifyNames() {
	names := s.ConfigurationNames()
	for _, listener := range s.namesListeners {
		listener(names)
	}
}

// Len returns the number of configurations in the set.
func (s *ConfigurationSet) Len() int { return len(s.configurations) }

// ConfigurationNames returns the configuration names in display order.
func (s *ConfigurationSet) ConfigurationNames() []string {
	names := make([]string, len(s.configurations))
	for i, cfg := range s.configurations {
		names[i] = cfg.Name()
	}
	return names
}

// Configurations returns the configurations in display order. The slice is a
// copy; the elements are the live configurations.
func (s *ConfigurationSet) Configurations() []*Configuration {
	out := make([]*Configuration, len(s.configurations))
	copy(out, s.configurations)
	return out
}

// indexOf returns the row of the named configuration, or -1.
func (s *ConfigurationSet) indexOf(name string) int {
	for i, cfg := range s.configurations {
		if cfg.Name() == name {
			return i
		}
	}
	return -1
}

// Add constructs a configuration and appends it to the set. The new element
// always lands at the end; existing ordering is stable.
//
// Parameters:
//   - name: The unique configuration name.
//   - model: The registry name of the fit model.
//   - estimator: The estimator name, or "" for model defaults.
//   - custom: Parameter overrides, or nil.
//
// Returns:
//   - error: A DuplicateNameError if the name is taken, or a ValidationError
//     from configuration construction (including the reserved name).
func (s *ConfigurationSet) Add(name, model, estimator string, custom *fitmodel.Parameters) error {
	if s.indexOf(name) >= 0 {
		return apperrors.DuplicateNameError{Name: name}
	}
	cfg, err := NewConfiguration(s.registry, name, model, estimator, custom)
	if err != nil {
		return err
	}
	row := len(s.configurations)
	s.configurations = append(s.configurations, cfg)
	for _, observer := range s.listObservers {
		observer.RowsInserted(row, row)
	}
	s.notifyNames()
	return nil
}

// Remove deletes the named configuration. An absent name is a silent no-op
// producing no notification.
func (s *ConfigurationSet) Remove(name string) {
	row := s.indexOf(name)
	if row < 0 {
		return
	}
	s.configurations = append(s.configurations[:row], s.configurations[row+1:]...)
	for _, observer := range s.listObservers {
		observer.RowsRemoved(row, row)
	}
	s.notifyNames()
}

// GetByName returns the live named configuration. Callers mutate it through
// its own validated setters.
//
// Returns:
//   - *Configuration: The configuration.
//   - error: A NotFoundError if no configuration has that name.
func (s *ConfigurationSet) GetByName(name string) (*Configuration, error) {
	row := s.indexOf(name)
	if row < 0 {
		return nil, apperrors.NotFoundError{Kind: "fit configuration", Name: name}
	}
	return s.configurations[row], nil
}

// ReplaceParameters rewrites the estimator and parameter overrides of the
// named configuration from a full parameter table. Model-default parameters
// absent from overrides are pruned; the remaining entries adopt the supplied
// vary/value/min/max. An empty estimator clears the estimator; an empty
// pruned table clears the overrides. The operation is all-or-nothing: if any
// validation fails, the configuration is left untouched.
//
// Parameters:
//   - name: The configuration to update.
//   - estimator: The new estimator name, or "" to clear it.
//   - overrides: The full replacement parameter table.
//
// Returns:
//   - error: A NotFoundError or ValidationError; nil on success.
func (s *ConfigurationSet) ReplaceParameters(name, estimator string, overrides map[string]fitmodel.Parameter) error {
	row := s.indexOf(name)
	if row < 0 {
		return apperrors.NotFoundError{Kind: "fit configuration", Name: name}
	}
	cfg := s.configurations[row]

	// Validate the estimator up front so a failure cannot leave a
	// half-applied update behind.
	if estimator != "" {
		if _, ok := cfg.newModel().Estimators()[estimator]; !ok {
			return apperrors.NewValidationError("estimator", "unknown estimator %q for model %q", estimator, cfg.Model())
		}
	}

	pruned := cfg.DefaultParameters()
	for _, pname := range pruned.Names() {
		supplied, ok := overrides[pname]
		if !ok {
			pruned.Delete(pname)
			continue
		}
		param, _ := pruned.Get(pname)
		param.Vary = supplied.Vary
		param.Value = supplied.Value
		param.Min = supplied.Min
		param.Max = supplied.Max
		pruned.Set(pname, param)
	}

	var custom *fitmodel.Parameters
	if pruned.Len() > 0 {
		custom = &pruned
	}
	if err := cfg.SetCustomParameters(custom); err != nil {
		return err
	}
	if err := cfg.SetEstimator(estimator); err != nil {
		// Unreachable after the up-front check; kept so a failed set can
		// never be half-applied if validation rules evolve.
		return err
	}

	for _, observer := range s.listObservers {
		observer.RowChanged(row)
	}
	return nil
}

// Dump serializes all configurations in display order.
//
// Returns:
//   - []map[string]any: The dictionary representations (see ToDict).
//   - error: An error if any configuration fails to serialize.
func (s *ConfigurationSet) Dump() ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(s.configurations))
	for _, cfg := range s.configurations {
		d, err := cfg.ToDict()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Load replaces the entire collection with configurations reconstructed from
// dict representations. Entries that fail to parse are logged and skipped so
// one corrupt entry cannot abort the reload. A single reset notification
// fires for the whole collection.
//
// Parameters:
//   - dicts: The dictionary representations to load.
func (s *ConfigurationSet) Load(dicts []map[string]any) {
	loaded := make([]*Configuration, 0, len(dicts))
	for i, d := range dicts {
		cfg, err := FromDict(s.registry, d)
		if err != nil {
			s.logger.Warn("skipping unloadable fit configuration",
				logging.Int("index", i), logging.Err(err))
			continue
		}
		loaded = append(loaded, cfg)
	}
	s.configurations = loaded
	for _, observer := range s.listObservers {
		observer.Reset()
	}
	s.notifyNames()
}

// ModelNames returns the sorted names of all registered models, recomputed
// from the live registry.
func (s *ConfigurationSet) ModelNames() []string {
	return s.registry.Names()
}

// ModelEstimators returns the estimator names of every registered model,
// recomputed from the live registry.
func (s *ConfigurationSet) ModelEstimators() map[string][]string {
	out := make(map[string][]string, len(s.registry.Names()))
	for _, name := range s.registry.Names() {
		factory, _ := s.registry.Get(name)
		out[name] = fitmodel.EstimatorNames(factory())
	}
	return out
}

// ModelDefaultParameters returns the default parameter table of every
// registered model, recomputed from the live registry.
func (s *ConfigurationSet) ModelDefaultParameters() map[string]fitmodel.Parameters {
	out := make(map[string]fitmodel.Parameters, len(s.registry.Names()))
	for _, name := range s.registry.Names() {
		factory, _ := s.registry.Get(name)
		out[name] = factory().MakeParams()
	}
	return out
}
