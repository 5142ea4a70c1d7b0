package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	pkgconfig "github.com/starford/timewarp/pkg/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Retry.Attempts < 1 {
		t.Errorf("retry attempts = %d, want >= 1", cfg.Retry.Attempts)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Library.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty library path should not validate")
	}

	cfg = NewDefaultConfig()
	cfg.Retry.Attempts = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero retry attempts should not validate")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
library:
  path: /tmp/Test.photoslibrary
retry:
  attempts: 3
  min_delay_ms: 50
  max_delay_ms: 1000
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Library.Path != "/tmp/Test.photoslibrary" {
		t.Errorf("library path = %q", cfg.Library.Path)
	}
	if cfg.Retry.Attempts != 3 || cfg.Retry.MinDelayMS != 50 || cfg.Retry.MaxDelayMS != 1000 {
		t.Errorf("retry = %+v", cfg.Retry)
	}
	if cfg.Retry.Policy().MinDelay != 50*time.Millisecond {
		t.Errorf("policy min delay = %v", cfg.Retry.Policy().MinDelay)
	}
}

func TestLoadIfPresent_MissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	want := cfg.Library.Path
	if err := pkgconfig.LoadIfPresent(filepath.Join(t.TempDir(), "nope.yaml"), cfg); err != nil {
		t.Fatalf("LoadIfPresent: %v", err)
	}
	if cfg.Library.Path != want {
		t.Errorf("library path changed to %q", cfg.Library.Path)
	}
}
