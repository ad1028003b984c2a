package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRemesh(t *testing.T) {
	path := writeFile(t, "run.yaml", `
input_mesh: bunny.obj
out_mesh: bunny_lr.obj
num_samples: 500
resampling: true
evaluate: true
`)
	cfg, err := LoadRemesh(path)
	if err != nil {
		t.Fatalf("LoadRemesh: %v", err)
	}
	if cfg.InputMesh != "bunny.obj" || cfg.NumSamples != 500 {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.Resampling || !cfg.Evaluate {
		t.Errorf("booleans not loaded: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestRemeshValidate(t *testing.T) {
	c := &Remesh{NumSamples: 10}
	if err := c.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("missing input: err = %v, want ErrMissingField", err)
	}
	c = &Remesh{InputMesh: "a.obj", NumSamples: 0}
	if err := c.Validate(); err == nil {
		t.Error("expected error for non-positive num_samples")
	}
}

func TestLoadServerOverDefaults(t *testing.T) {
	path := writeFile(t, "server.yaml", `
addr: ":9000"
read_timeout_seconds: 5
max_concurrent: 2
`)
	cfg, err := LoadServer(path)
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.MaxConcurrent != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.ReadTimeout() != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.ReadTimeout())
	}
	// Untouched fields keep their defaults.
	if cfg.MaxSamples != DefaultServer().MaxSamples {
		t.Errorf("MaxSamples = %d, want default", cfg.MaxSamples)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadRemesh(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
