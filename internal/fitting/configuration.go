package fitting

import (
	"fmt"

	apperrors "fitkit/internal/errors"
	"fitkit/internal/fitmodel"
)

// NoFit is the reserved virtual configuration name meaning "perform no fit".
// It is never creatable as a real configuration and always valid as a Fit
// argument to clear the last result.
const NoFit = "No Fit"

// Configuration is a validated, named binding of a fit model, an optional
// estimator and optional parameter overrides. Identity (name, model) is fixed
// at construction; estimator and custom parameters are mutable through
// validated setters that re-check against the registry's model on every
// assignment.
type Configuration struct {
	name      string
	model     string
	registry  *fitmodel.Registry
	estimator string
	custom    *fitmodel.Parameters
}

// NewConfiguration creates a validated fit configuration.
//
// Parameters:
//   - registry: The model registry used for all validation.
//   - name: The unique configuration name; must be non-empty and not NoFit.
//   - model: The registry name of the fit model.
//   - estimator: The estimator name, or "" for model defaults.
//   - custom: Parameter overrides, or nil for none. A defensive copy is stored.
//
// Returns:
//   - *Configuration: The validated configuration.
//   - error: A ValidationError describing the first violated contract.
func NewConfiguration(registry *fitmodel.Registry, name, model, estimator string, custom *fitmodel.Parameters) (*Configuration, error) {
	if registry == nil {
		return nil, apperrors.NewValidationError("registry", "model registry must not be nil")
	}
	if name == "" {
		return nil, apperrors.NewValidationError("name", "must be a non-empty string")
	}
	if name == NoFit {
		return nil, apperrors.NewValidationError("name", "%q is a reserved name for fit configurations", NoFit)
	}
	if !registry.Has(model) {
		return nil, apperrors.NewValidationError("model", "unknown fit model %q", model)
	}
	cfg := &Configuration{name: name, model: model, registry: registry}
	if err := cfg.SetEstimator(estimator); err != nil {
		return nil, err
	}
	if err := cfg.SetCustomParameters(custom); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Name returns the configuration name.
func (c *Configuration) Name() string { return c.name }

// Model returns the registry name of the bound fit model.
func (c *Configuration) Model() string { return c.model }

// Estimator returns the configured estimator name, or "" when the model's
// defaults are used.
func (c *Configuration) Estimator() string { return c.estimator }

// newModel instantiates the bound model afresh. The model's default state is
// never assumed stable across calls.
func (c *Configuration) newModel() fitmodel.Model {
	factory, _ := c.registry.Get(c.model)
	return factory()
}

// AvailableEstimators returns the sorted estimator names of the bound model.
func (c *Configuration) AvailableEstimators() []string {
	return fitmodel.EstimatorNames(c.newModel())
}

// DefaultParameters returns a fresh copy of the bound model's default
// parameter table.
func (c *Configuration) DefaultParameters() fitmodel.Parameters {
	return c.newModel().MakeParams()
}

// SetEstimator assigns the estimator, re-validating against the current
// model. An empty value clears the estimator.
//
// Returns:
//   - error: A ValidationError if the name is not an estimator of the model.
func (c *Configuration) SetEstimator(estimator string) error {
	if estimator != "" {
		if _, ok := c.newModel().Estimators()[estimator]; !ok {
			return apperrors.NewValidationError("estimator", "unknown estimator %q for model %q", estimator, c.model)
		}
	}
	c.estimator = estimator
	return nil
}

// CustomParameters returns a copy of the parameter overrides, or nil when
// none are set. Callers can never mutate internal state through the returned
// value.
func (c *Configuration) CustomParameters() *fitmodel.Parameters {
	if c.custom == nil {
		return nil
	}
	cp := c.custom.Copy()
	return &cp
}

// SetCustomParameters assigns parameter overrides, re-validating every key
// against the current model's default parameter names. A nil value clears
// the overrides. A defensive copy is stored.
//
// Returns:
//   - error: A ValidationError naming the first unknown parameter.
func (c *Configuration) SetCustomParameters(custom *fitmodel.Parameters) error {
	if custom == nil {
		c.custom = nil
		return nil
	}
	defaults := c.DefaultParameters()
	for _, name := range custom.Names() {
		if !defaults.Has(name) {
			return apperrors.NewValidationError("custom_parameters", "model %q has no parameter %q", c.model, name)
		}
	}
	cp := custom.Copy()
	c.custom = &cp
	return nil
}

// Dict keys of the serialized configuration form.
const (
	dictKeyName      = "name"
	dictKeyModel     = "model"
	dictKeyEstimator = "estimator"
	dictKeyCustom    = "custom_parameters"
)

// ToDict serializes the configuration into a flat mapping of strings and
// nulls, suitable for YAML-style persistence. The custom parameter table
// serializes to a string form that FromDict can parse back.
//
// Returns:
//   - map[string]any: The dictionary representation.
//   - error: An error if the parameter table cannot be encoded.
func (c *Configuration) ToDict() (map[string]any, error) {
	d := map[string]any{
		dictKeyName:      c.name,
		dictKeyModel:     c.model,
		dictKeyEstimator: nil,
		dictKeyCustom:    nil,
	}
	if c.estimator != "" {
		d[dictKeyEstimator] = c.estimator
	}
	if c.custom != nil {
		encoded, err := c.custom.EncodeString()
		if err != nil {
			return nil, fmt.Errorf("serializing configuration %q: %w", c.name, err)
		}
		d[dictKeyCustom] = encoded
	}
	return d, nil
}

// FromDict reconstructs a configuration from its dictionary representation.
// The mapping's key set must be exactly {name, model, estimator,
// custom_parameters}. Override entries naming parameters the model no longer
// declares are silently dropped, so a model that lost a parameter between
// dump and load does not poison the reload.
//
// Parameters:
//   - registry: The model registry used for validation.
//   - d: The dictionary representation.
//
// Returns:
//   - *Configuration: The reconstructed configuration.
//   - error: A ValidationError if the mapping is malformed or violates a
//     configuration contract.
func FromDict(registry *fitmodel.Registry, d map[string]any) (*Configuration, error) {
	if len(d) != 4 {
		return nil, apperrors.NewValidationError("dict", "expected exactly the keys name, model, estimator, custom_parameters, got %d keys", len(d))
	}
	for _, key := range []string{dictKeyName, dictKeyModel, dictKeyEstimator, dictKeyCustom} {
		if _, ok := d[key]; !ok {
			return nil, apperrors.NewValidationError("dict", "missing key %q", key)
		}
	}

	name, err := stringValue(d, dictKeyName)
	if err != nil {
		return nil, err
	}
	model, err := stringValue(d, dictKeyModel)
	if err != nil {
		return nil, err
	}
	estimator, err := optionalStringValue(d, dictKeyEstimator)
	if err != nil {
		return nil, err
	}
	customStr, err := optionalStringValue(d, dictKeyCustom)
	if err != nil {
		return nil, err
	}

	var custom *fitmodel.Parameters
	if customStr != "" {
		decoded, err := fitmodel.DecodeParameters(customStr)
		if err != nil {
			return nil, err
		}
		// Drop overrides for parameters the model no longer declares.
		if factory, ok := registry.Get(model); ok {
			defaults := factory().MakeParams()
			for _, pname := range decoded.Names() {
				if !defaults.Has(pname) {
					decoded.Delete(pname)
				}
			}
		}
		if decoded.Len() > 0 {
			custom = &decoded
		}
	}

	return NewConfiguration(registry, name, model, estimator, custom)
}

// stringValue extracts a mandatory string entry from a dict representation.
func stringValue(d map[string]any, key string) (string, error) {
	v, ok := d[key].(string)
	if !ok {
		return "", apperrors.NewValidationError("dict", "key %q must be a string, got %T", key, d[key])
	}
	return v, nil
}

// optionalStringValue extracts a string-or-null entry from a dict
// representation. Null maps to "".
func optionalStringValue(d map[string]any, key string) (string, error) {
	if d[key] == nil {
		return "", nil
	}
	return stringValue(d, key)
}
