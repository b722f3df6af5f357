package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. (testing.T.Chdir needs Go 1.24.)
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_ENV", "missing")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("port = %d", cfg.Port)
	}
	if cfg.Mode != "release" {
		t.Fatalf("mode = %q", cfg.Mode)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Fatalf("ping_period = %v", cfg.PingPeriod)
	}
	if cfg.ActivityRateLimit != 200 || cfg.ActivityRateInterval != 10*time.Second {
		t.Fatalf("activity limits = %d/%v", cfg.ActivityRateLimit, cfg.ActivityRateInterval)
	}
	if cfg.SendBuffer != 64 || cfg.ReadLimit != 65536 {
		t.Fatalf("buffers = %d/%d", cfg.SendBuffer, cfg.ReadLimit)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "mode: debug\nport: 9999\nactivity_rate_limit: 5\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("CONFIG_ENV", "test")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != "debug" || cfg.Port != 9999 || cfg.ActivityRateLimit != 5 {
		t.Fatalf("cfg = %+v", cfg)
	}
	// Unset keys still fall back to defaults.
	if cfg.PingPeriod != 54*time.Second {
		t.Fatalf("ping_period = %v", cfg.PingPeriod)
	}
}
