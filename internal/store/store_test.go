package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "fit_configs.yaml")
	s := NewConfigStore(path)

	dumps := []map[string]any{
		{"name": "L1", "model": "Linear", "estimator": "default", "custom_parameters": nil},
		{"name": "C1", "model": "Constant", "estimator": nil, "custom_parameters": `[{"name":"offset","value":"1.5","min":"-Inf","max":"+Inf","vary":false}]`},
	}
	if err := s.Save(dumps); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Load() returned %d entries", len(got))
	}
	if got[0]["name"] != "L1" || got[1]["name"] != "C1" {
		t.Errorf("order not preserved: %v, %v", got[0]["name"], got[1]["name"])
	}
	if got[0]["estimator"] != "default" {
		t.Errorf("estimator = %v", got[0]["estimator"])
	}
	if got[1]["estimator"] != nil {
		t.Errorf("null estimator should load as nil, got %v", got[1]["estimator"])
	}
	if _, ok := got[1]["custom_parameters"].(string); !ok {
		t.Errorf("custom_parameters should stay a string, got %T", got[1]["custom_parameters"])
	}
}

func TestConfigStoreMissingFile(t *testing.T) {
	t.Parallel()
	s := NewConfigStore(filepath.Join(t.TempDir(), "absent.yaml"))
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != nil {
		t.Errorf("missing file should load as empty, got %v", got)
	}
}

func TestConfigStoreCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte(":\n  - not valid yaml: ["), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	s := NewConfigStore(path)
	if _, err := s.Load(); err == nil {
		t.Error("expected decode error for corrupt file")
	}
}

func TestConfigStoreOverwrite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "fit_configs.yaml")
	s := NewConfigStore(path)

	if err := s.Save([]map[string]any{{"name": "old", "model": "Linear", "estimator": nil, "custom_parameters": nil}}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Save([]map[string]any{{"name": "new", "model": "Constant", "estimator": nil, "custom_parameters": nil}}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(got) != 1 || got[0]["name"] != "new" {
		t.Errorf("overwrite failed: %v", got)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}
}
