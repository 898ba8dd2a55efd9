// Package fitmodel defines the pluggable fit-model capability: parameter
// tables with copy and serialization semantics, the Model interface
// (estimators, defaults, fit and eval routines), a name-keyed Registry with
// an explicit populate-then-freeze lifecycle, and the builtin closed-form
// models shipped with the toolkit.
package fitmodel
