package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorFit      = 2   // Indicates a numerical fit failure.
	ExitErrorNotFound = 3   // Indicates a named entity was not found.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ValidationError represents a fit configuration contract violation, such as
// an empty name, an unknown model, an unknown estimator or a parameter
// override that the model does not declare. It is raised synchronously at the
// point of violation; the caller never observes a partial mutation.
type ValidationError struct {
	// Field is the name of the configuration field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError for the given field with a
// formatted message.
//
// Parameters:
//   - field: The configuration field that failed validation.
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ValidationError instance containing the formatted message.
func NewValidationError(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}

// DuplicateNameError represents a name collision when adding a fit
// configuration to a configuration set.
type DuplicateNameError struct {
	// Name is the configuration name that is already in use.
	Name string
}

// Error returns a formatted message describing the collision.
func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("fit configuration %q already defined", e.Name)
}

// NotFoundError represents a lookup failure for a named entity, such as a fit
// configuration or a fit model that is not registered.
type NotFoundError struct {
	// Kind identifies what was looked up (e.g., "fit configuration").
	Kind string
	// Name is the name that could not be resolved.
	Name string
}

// Error returns a formatted message describing the failed lookup.
func (e NotFoundError) Error() string {
	return fmt.Sprintf("no %s found with name %q", e.Kind, e.Name)
}

// FitError encapsulates a numerical fit failure while preserving the original
// cause. It identifies the configuration and model involved so callers can
// report which fit failed without parsing message text.
type FitError struct {
	// Config is the name of the fit configuration being executed.
	Config string
	// Model is the name of the fit model that failed.
	Model string
	// Cause is the underlying error reported by the model's fit routine.
	Cause error
}

// Error returns a formatted message including the failing configuration.
func (e FitError) Error() string {
	return fmt.Sprintf("fit %q (model %q) failed: %v", e.Config, e.Model, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e FitError) Unwrap() error { return e.Cause }

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error to the application exit code that best describes
// it. Unrecognized errors map to the generic failure code.
//
// Parameters:
//   - err: The error to classify, possibly nil.
//
// Returns:
//   - int: The corresponding exit code.
func ExitCodeFor(err error) int {
	var (
		fitErr FitError
		nfErr  NotFoundError
		valErr ValidationError
		dupErr DuplicateNameError
		cfgErr ConfigError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case IsContextError(err):
		return ExitErrorCanceled
	case errors.As(err, &fitErr):
		return ExitErrorFit
	case errors.As(err, &nfErr):
		return ExitErrorNotFound
	case errors.As(err, &valErr), errors.As(err, &dupErr), errors.As(err, &cfgErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
