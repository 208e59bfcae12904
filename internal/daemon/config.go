// Package daemon manages the habitd daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Store     StoreConfig     `toml:"store"`
	Reminders RemindersConfig `toml:"reminders"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StoreConfig controls record storage.
type StoreConfig struct {
	Dir string `toml:"dir"`
}

// RemindersConfig controls the due-evaluation tick loop.
type RemindersConfig struct {
	// TickSeconds is the evaluation interval. The evaluator matches
	// schedules to the exact minute, so anything above 60 drops
	// reminders by design of the tick, not of the schedule.
	TickSeconds   int `toml:"tick_seconds"`
	Workers       int `toml:"workers"`
	DefaultHour   int `toml:"default_hour"`
	DefaultMinute int `toml:"default_minute"`
}

// TelemetryConfig controls observability.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7337,
		},
		Store: StoreConfig{
			Dir: habitdHome(),
		},
		Reminders: RemindersConfig{
			TickSeconds:   60,
			Workers:       4,
			DefaultHour:   9,
			DefaultMinute: 0,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
	}
}

// LoadConfig reads config from ~/.habitd/config.toml, falling back to
// defaults when no file exists yet.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(habitdHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.habitd/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(habitdHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// habitdHome returns the habitd data directory.
func habitdHome() string {
	if env := os.Getenv("HABITD_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".habitd")
}

// Home is exported for use by other packages.
func Home() string {
	return habitdHome()
}
