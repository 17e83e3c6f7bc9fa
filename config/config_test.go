package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bcdannyboy/bsmvol/bsm"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load("", filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sc := cfg.SolverConfig()
	if sc.MaxIterations != bsm.DefaultIterations || sc.Tolerance != bsm.DefaultTolerance {
		t.Fatalf("unexpected solver defaults: %+v", sc)
	}
	if cfg.Solver.InitialSigma != defaultInitialSigma || cfg.Log.Level != "info" || cfg.Chain.Workers != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bsm.yaml", `
solver:
  max_iterations: 40
  tolerance: 0.000001
  initial_sigma: 0.3
chain:
  workers: 2
  progress: true
log:
  level: debug
`)
	t.Setenv("BSM_MAX_ITERATIONS", "60")
	t.Setenv("BSM_LOG_LEVEL", "warn")

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Solver.MaxIterations != 60 {
		t.Fatalf("env should override yaml max_iterations, got %d", cfg.Solver.MaxIterations)
	}
	if cfg.Solver.Tolerance != 1e-6 || cfg.Solver.InitialSigma != 0.3 {
		t.Fatalf("yaml solver values not applied: %+v", cfg.Solver)
	}
	if cfg.Chain.Workers != 2 || !cfg.Chain.Progress {
		t.Fatalf("yaml chain values not applied: %+v", cfg.Chain)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("env should override yaml log level, got %q", cfg.Log.Level)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "BSM_WORKERS=3\nBSM_INITIAL_SIGMA=0.25\n")
	t.Cleanup(func() {
		os.Unsetenv("BSM_WORKERS")
		os.Unsetenv("BSM_INITIAL_SIGMA")
	})

	cfg, err := Load("", envPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chain.Workers != 3 || cfg.Solver.InitialSigma != 0.25 {
		t.Fatalf(".env values not applied: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	noEnv := filepath.Join(dir, "missing.env")

	t.Run("bad yaml", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "solver: [unclosed")
		if _, err := Load(path, noEnv); err == nil {
			t.Fatalf("expected parse error")
		}
	})

	t.Run("bad env number", func(t *testing.T) {
		t.Setenv("BSM_TOLERANCE", "tight")
		if _, err := Load("", noEnv); err == nil {
			t.Fatalf("expected env parse error")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeFile(t, dir, "zero.yaml", "solver:\n  max_iterations: 0\n")
		if _, err := Load(path, noEnv); err == nil {
			t.Fatalf("expected validation error")
		}
	})
}
