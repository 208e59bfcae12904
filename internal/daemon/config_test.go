package daemon_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/habitloop/habitd/internal/daemon"
)

// ═══════════════════════════════════════════════════════════════════════════
// Config Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HABITD_HOME", t.TempDir())
	cfg := daemon.DefaultConfig()

	if cfg.API.Host != "127.0.0.1" || cfg.API.Port != 7337 {
		t.Errorf("unexpected API defaults: %+v", cfg.API)
	}
	if cfg.Reminders.TickSeconds != 60 || cfg.Reminders.Workers != 4 {
		t.Errorf("unexpected reminder defaults: %+v", cfg.Reminders)
	}
	if cfg.Reminders.DefaultHour != 9 || cfg.Reminders.DefaultMinute != 0 {
		t.Errorf("unexpected default reminder time: %+v", cfg.Reminders)
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("prometheus should default to enabled")
	}
	if cfg.Store.Dir == "" {
		t.Error("store dir should default to the habitd home")
	}
}

func TestHomeEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HABITD_HOME", dir)

	if got := daemon.Home(); got != dir {
		t.Errorf("Home() = %q, want %q", got, dir)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HABITD_HOME", t.TempDir())

	cfg, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != 7337 {
		t.Errorf("expected defaults without a config file, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HABITD_HOME", t.TempDir())

	cfg := daemon.DefaultConfig()
	cfg.API.Port = 9000
	cfg.Reminders.Workers = 8
	if err := daemon.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := daemon.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.API.Port != 9000 {
		t.Errorf("port = %d, want 9000", loaded.API.Port)
	}
	if loaded.Reminders.Workers != 8 {
		t.Errorf("workers = %d, want 8", loaded.Reminders.Workers)
	}
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HABITD_HOME", dir)

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("api = {{{"), 0600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := daemon.LoadConfig(); err == nil {
		t.Error("malformed config should fail to load")
	}
}
