package fitmodel

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	apperrors "fitkit/internal/errors"
)

// Parameter describes a single fit parameter: its current value, the bounds
// the solver must respect, whether the solver may vary it, and the standard
// error estimated by the last fit (NaN when unknown).
type Parameter struct {
	Value  float64
	Min    float64
	Max    float64
	Vary   bool
	Stderr float64
}

// NewParameter returns a varying parameter with the given value, unbounded
// limits and an unknown standard error.
func NewParameter(value float64) Parameter {
	return Parameter{
		Value:  value,
		Min:    math.Inf(-1),
		Max:    math.Inf(1),
		Vary:   true,
		Stderr: math.NaN(),
	}
}

// Parameters is an ordered, named parameter table. The zero value is not
// usable; construct with NewParameters. Insertion order is preserved, which
// keeps serialized forms and formatted output stable.
type Parameters struct {
	names []string
	table map[string]Parameter
}

// NewParameters creates an empty parameter table.
func NewParameters() Parameters {
	return Parameters{table: make(map[string]Parameter)}
}

// Len returns the number of parameters in the table.
func (p Parameters) Len() int { return len(p.names) }

// Names returns the parameter names in insertion order. The returned slice
// is a copy.
func (p Parameters) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// Has reports whether a parameter with the given name exists.
func (p Parameters) Has(name string) bool {
	_, ok := p.table[name]
	return ok
}

// Get returns the parameter with the given name.
func (p Parameters) Get(name string) (Parameter, bool) {
	param, ok := p.table[name]
	return param, ok
}

// Set inserts or updates the parameter with the given name. New names are
// appended, preserving insertion order for existing ones.
func (p *Parameters) Set(name string, param Parameter) {
	if p.table == nil {
		p.table = make(map[string]Parameter)
	}
	if _, ok := p.table[name]; !ok {
		p.names = append(p.names, name)
	}
	p.table[name] = param
}

// Delete removes the parameter with the given name. Absent names are a no-op.
func (p *Parameters) Delete(name string) {
	if _, ok := p.table[name]; !ok {
		return
	}
	delete(p.table, name)
	for i, n := range p.names {
		if n == name {
			p.names = append(p.names[:i], p.names[i+1:]...)
			break
		}
	}
}

// Copy returns a deep copy of the parameter table.
func (p Parameters) Copy() Parameters {
	out := Parameters{
		names: make([]string, len(p.names)),
		table: make(map[string]Parameter, len(p.table)),
	}
	copy(out.names, p.names)
	for name, param := range p.table {
		out.table[name] = param
	}
	return out
}

// paramWire is the serialized form of one parameter. Value and bounds travel
// as strings because the table routinely holds ±Inf bounds and NaN values,
// which plain JSON numbers cannot represent.
type paramWire struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Min   string `json:"min"`
	Max   string `json:"max"`
	Vary  bool   `json:"vary"`
}

// EncodeString serializes the table to a stable, order-preserving string
// suitable for embedding in flat text-oriented persistence formats such as
// YAML mappings of strings.
//
// Returns:
//   - string: The serialized parameter table.
//   - error: An error if encoding fails.
func (p Parameters) EncodeString() (string, error) {
	wire := make([]paramWire, 0, len(p.names))
	for _, name := range p.names {
		param := p.table[name]
		wire = append(wire, paramWire{
			Name:  name,
			Value: strconv.FormatFloat(param.Value, 'g', -1, 64),
			Min:   strconv.FormatFloat(param.Min, 'g', -1, 64),
			Max:   strconv.FormatFloat(param.Max, 'g', -1, 64),
			Vary:  param.Vary,
		})
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encoding parameters: %w", err)
	}
	return string(raw), nil
}

// DecodeParameters parses a string produced by EncodeString back into a
// parameter table. Standard errors are not persisted and come back as NaN.
//
// Parameters:
//   - s: The serialized parameter table.
//
// Returns:
//   - Parameters: The reconstructed table.
//   - error: A ValidationError if the string is malformed.
func DecodeParameters(s string) (Parameters, error) {
	var wire []paramWire
	if err := json.Unmarshal([]byte(s), &wire); err != nil {
		return Parameters{}, apperrors.NewValidationError("custom_parameters", "malformed parameter string: %v", err)
	}
	out := NewParameters()
	for _, w := range wire {
		value, err := strconv.ParseFloat(w.Value, 64)
		if err != nil {
			return Parameters{}, apperrors.NewValidationError("custom_parameters", "bad value for %q: %v", w.Name, err)
		}
		minVal, err := strconv.ParseFloat(w.Min, 64)
		if err != nil {
			return Parameters{}, apperrors.NewValidationError("custom_parameters", "bad min for %q: %v", w.Name, err)
		}
		maxVal, err := strconv.ParseFloat(w.Max, 64)
		if err != nil {
			return Parameters{}, apperrors.NewValidationError("custom_parameters", "bad max for %q: %v", w.Name, err)
		}
		out.Set(w.Name, Parameter{
			Value:  value,
			Min:    minVal,
			Max:    maxVal,
			Vary:   w.Vary,
			Stderr: math.NaN(),
		})
	}
	return out, nil
}
