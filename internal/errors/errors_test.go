// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"testing"
)

func TestValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error includes field and message",
			err:      ValidationError{Field: "estimator", Message: "unknown estimator \"Peak\""},
			expected: `validation error for "estimator": unknown estimator "Peak"`,
		},
		{
			name:     "NewValidationError creates formatted error",
			err:      NewValidationError("name", "must not be %q", "No Fit"),
			expected: `validation error for "name": must not be "No Fit"`,
		},
		{
			name:        "ValidationError type assertion",
			err:         NewValidationError("model", "unknown model"),
			expected:    `validation error for "model": unknown model`,
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var valErr ValidationError
				if !errors.As(tt.err, &valErr) {
					t.Error("expected error to be ValidationError type")
				}
			}
		})
	}
}

func TestDuplicateNameError(t *testing.T) {
	t.Parallel()
	err := DuplicateNameError{Name: "Linear noise"}
	expected := `fit configuration "Linear noise" already defined`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestNotFoundError(t *testing.T) {
	t.Parallel()
	err := NotFoundError{Kind: "fit configuration", Name: "gone"}
	expected := `no fit configuration found with name "gone"`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestFitError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		cause       error
		checkIs     error
		checkUnwrap bool
	}{
		{
			name:  "Error includes config, model and cause",
			cause: errors.New("singular matrix"),
		},
		{
			name:        "Unwrap returns cause",
			cause:       errors.New("original error"),
			checkUnwrap: true,
		},
		{
			name:    "errors.Is works with wrapped error",
			cause:   context.Canceled,
			checkIs: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := FitError{Config: "L1", Model: "Linear", Cause: tt.cause}
			if got := err.Error(); got == "" {
				t.Error("expected non-empty error message")
			}
			if tt.checkUnwrap {
				if unwrapped := errors.Unwrap(err); !errors.Is(unwrapped, tt.cause) {
					t.Errorf("Unwrap() = %v, want %v", unwrapped, tt.cause)
				}
			}
			if tt.checkIs != nil {
				if !errors.Is(err, tt.checkIs) {
					t.Errorf("errors.Is(%v, %v) = false, want true", err, tt.checkIs)
				}
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("wraps non-nil error", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("boom")
		err := WrapError(cause, "loading %q", "configs.yml")
		if err == nil {
			t.Fatal("expected non-nil error")
		}
		if !errors.Is(err, cause) {
			t.Error("wrapped error should match cause with errors.Is")
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		t.Parallel()
		if err := WrapError(nil, "context"); err != nil {
			t.Errorf("WrapError(nil) = %v, want nil", err)
		}
	})
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped cancellation", WrapError(context.Canceled, "fit"), true},
		{"plain error", errors.New("other"), false},
		{"nil error", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"fit failure", FitError{Config: "L1", Model: "Linear", Cause: errors.New("diverged")}, ExitErrorFit},
		{"not found", NotFoundError{Kind: "fit configuration", Name: "x"}, ExitErrorNotFound},
		{"validation", NewValidationError("name", "empty"), ExitErrorConfig},
		{"duplicate", DuplicateNameError{Name: "x"}, ExitErrorConfig},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"generic", errors.New("unknown"), ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
