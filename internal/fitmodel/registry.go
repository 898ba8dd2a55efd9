package fitmodel

import (
	"fmt"
	"sort"

	"fitkit/internal/logging"
)

// Factory produces a fresh model instance. Registries hold factories rather
// than instances so that callers can always obtain a model with pristine
// default state.
type Factory func() Model

// Registry maps model names to factories. It follows an explicit lifecycle:
// populated once before first use via Register, made immutable with Freeze,
// then injected into every component that needs model resolution. It is safe
// for concurrent reads after Freeze.
type Registry struct {
	factories map[string]Factory
	frozen    bool
}

// NewRegistry creates an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a model factory under the model's own name. It instantiates
// the factory once to probe the name and basic viability.
//
// Parameters:
//   - factory: The model factory to register.
//
// Returns:
//   - error: An error if the registry is frozen, the factory yields a nil
//     model, or the name is already taken.
func (r *Registry) Register(factory Factory) error {
	if r.frozen {
		return fmt.Errorf("model registry is frozen")
	}
	model := factory()
	if model == nil {
		return fmt.Errorf("model factory returned nil")
	}
	name := model.Name()
	if name == "" {
		return fmt.Errorf("model factory returned a model with an empty name")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("model %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Freeze makes the registry immutable. Further Register calls fail.
func (r *Registry) Freeze() { r.frozen = true }

// Has reports whether a model with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Get returns the factory for the given model name.
func (r *Registry) Get(name string) (Factory, bool) {
	factory, ok := r.factories[name]
	return factory, ok
}

// Names returns the sorted names of all registered models.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDefaultRegistry builds a frozen registry holding all builtin models.
// A factory that panics or yields an unusable model is logged and excluded;
// one broken model must not prevent the rest from registering.
//
// Parameters:
//   - logger: The logger for registration failures.
//
// Returns:
//   - *Registry: The frozen registry of usable builtin models.
func NewDefaultRegistry(logger logging.Logger) *Registry {
	registry := NewRegistry()
	for _, factory := range builtinFactories() {
		if err := safeRegister(registry, factory); err != nil {
			logger.Error("excluding fit model from registry", err)
		}
	}
	registry.Freeze()
	return registry
}

// safeRegister registers a factory, converting a factory panic into an error.
func safeRegister(registry *Registry, factory Factory) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model factory panicked: %v", r)
		}
	}()
	return registry.Register(factory)
}

// builtinFactories lists the model factories shipped with this module.
func builtinFactories() []Factory {
	return []Factory{
		func() Model { return &LinearModel{} },
		func() Model { return &ExpDecayModel{} },
		func() Model { return &ConstantModel{} },
	}
}
