package fitmodel

import (
	"testing"

	"fitkit/internal/logging"
)

func TestRegistryLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("register then resolve", func(t *testing.T) {
		t.Parallel()
		registry := NewRegistry()
		if err := registry.Register(func() Model { return &LinearModel{} }); err != nil {
			t.Fatalf("Register() error: %v", err)
		}
		if !registry.Has("Linear") {
			t.Error("registered model not found by name")
		}
		factory, ok := registry.Get("Linear")
		if !ok {
			t.Fatal("Get() did not find registered model")
		}
		if factory().Name() != "Linear" {
			t.Error("factory produced a model with the wrong name")
		}
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		t.Parallel()
		registry := NewRegistry()
		factory := func() Model { return &LinearModel{} }
		if err := registry.Register(factory); err != nil {
			t.Fatalf("first Register() error: %v", err)
		}
		if err := registry.Register(factory); err == nil {
			t.Error("duplicate Register() should fail")
		}
	})

	t.Run("register after freeze fails", func(t *testing.T) {
		t.Parallel()
		registry := NewRegistry()
		registry.Freeze()
		if err := registry.Register(func() Model { return &LinearModel{} }); err == nil {
			t.Error("Register() after Freeze() should fail")
		}
	})

	t.Run("nil model rejected", func(t *testing.T) {
		t.Parallel()
		registry := NewRegistry()
		if err := registry.Register(func() Model { return nil }); err == nil {
			t.Error("Register() of a nil-producing factory should fail")
		}
	})
}

func TestNewDefaultRegistry(t *testing.T) {
	t.Parallel()
	registry := NewDefaultRegistry(logging.NopLogger{})

	names := registry.Names()
	want := []string{"Constant", "Exponential Decay", "Linear"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	// The default registry is frozen.
	if err := registry.Register(func() Model { return &LinearModel{} }); err == nil {
		t.Error("default registry should be frozen")
	}
}

func TestSafeRegisterRecoversPanic(t *testing.T) {
	t.Parallel()
	registry := NewRegistry()
	err := safeRegister(registry, func() Model { panic("broken model") })
	if err == nil {
		t.Fatal("safeRegister should turn a factory panic into an error")
	}
	if len(registry.Names()) != 0 {
		t.Error("panicking factory must not leave a registry entry behind")
	}
}
