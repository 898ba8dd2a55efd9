package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// buildBinary compiles the fitkit binary into dir and returns its path.
func buildBinary(t *testing.T, dir string) string {
	t.Helper()

	binName := "fitkit"
	if runtime.GOOS == "windows" {
		binName = "fitkit.exe"
	}
	binPath := filepath.Join(dir, binName)

	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/fitkit")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build fitkit: %v", err)
	}
	return binPath
}

// writeDataFile writes a small y = 2x + 1 dataset and returns its path.
func writeDataFile(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "data.csv")
	data := "x,y\n0,1\n1,3\n2,5\n3,7\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("Failed to write data file: %v", err)
	}
	return path
}

// TestCLI_E2E verifies the built binary functions correctly.
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binPath := buildBinary(t, tmpDir)
	dataPath := writeDataFile(t, tmpDir)
	storagePath := filepath.Join(tmpDir, "fit_configs.yaml")

	env := append(os.Environ(),
		"NO_COLOR=1",
		"FITKIT_STORAGE_PATH="+storagePath,
	)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binPath, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Commands run in order: config state persists across steps through the
	// storage file.
	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Model Catalog",
			args:     []string{"models"},
			wantOut:  "Linear",
			wantCode: 0,
		},
		{
			name:     "Empty Configuration List",
			args:     []string{"config", "list"},
			wantOut:  "no fit configurations defined",
			wantCode: 0,
		},
		{
			name:     "Add Linear Configuration",
			args:     []string{"config", "add", "L1", "Linear"},
			wantOut:  "",
			wantCode: 0,
		},
		{
			name:     "Add Constant Configuration",
			args:     []string{"config", "add", "C1", "Constant"},
			wantOut:  "",
			wantCode: 0,
		},
		{
			name:     "Configuration List",
			args:     []string{"config", "list"},
			wantOut:  "model=Linear",
			wantCode: 0,
		},
		{
			name:     "Single Fit",
			args:     []string{"fit", "L1", dataPath},
			wantOut:  "slope",
			wantCode: 0,
		},
		{
			name:     "Single Fit Dict Format",
			args:     []string{"--format", "dict", "fit", "L1", dataPath},
			wantOut:  "intercept",
			wantCode: 0,
		},
		{
			name:     "Unknown Configuration",
			args:     []string{"fit", "nope", dataPath},
			wantOut:  "",
			wantCode: 3,
		},
		{
			name:     "Missing Data File",
			args:     []string{"fit", "L1", filepath.Join(tmpDir, "absent.csv")},
			wantOut:  "",
			wantCode: 4,
		},
		{
			name:     "Compare All Configurations",
			args:     []string{"compare", dataPath},
			wantOut:  "Global Status: Success",
			wantCode: 0,
		},
		{
			name:     "Quiet Compare",
			args:     []string{"--quiet", "compare", dataPath, "L1"},
			wantOut:  "",
			wantCode: 0,
		},
		{
			name:     "Remove Configuration",
			args:     []string{"config", "remove", "C1"},
			wantOut:  "",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outStr, err := run(tt.args...)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				if err == nil {
					t.Errorf("Expected exit code %d, but command succeeded.\nOutput: %s", tt.wantCode, outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok {
					if exitErr.ExitCode() != tt.wantCode {
						t.Errorf("Exit code mismatch: got %d, want %d\nOutput: %s",
							exitErr.ExitCode(), tt.wantCode, outStr)
					}
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}
