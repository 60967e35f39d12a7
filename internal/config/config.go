// Package config loads the daemon configuration from a YAML file with
// PLANNERD_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level daemon configuration.
type Config struct {
	// DataFile is the path of the JSON planner store.
	DataFile string `yaml:"data_file"`

	// CheckIntervalSeconds is the reminder polling interval.
	CheckIntervalSeconds int `yaml:"check_interval_seconds"`

	// EventBuffer is the reminder event channel capacity.
	EventBuffer int `yaml:"event_buffer"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		DataFile:             "data/schedules.json",
		CheckIntervalSeconds: 30,
		EventBuffer:          16,
		LogLevel:             "info",
	}
}

// Normalize fills missing or out-of-range values with defaults so a
// partially-filled file still behaves.
func (c *Config) Normalize() {
	def := Default()
	if strings.TrimSpace(c.DataFile) == "" {
		c.DataFile = def.DataFile
	}
	if c.CheckIntervalSeconds <= 0 {
		c.CheckIntervalSeconds = def.CheckIntervalSeconds
	}
	if c.EventBuffer <= 0 {
		c.EventBuffer = def.EventBuffer
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = def.LogLevel
	}
}

// Load reads the config file, then applies environment overrides. An
// absent file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run: defaults plus env.
	case err != nil:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg = FromEnv(cfg)
	cfg.Normalize()
	return cfg, nil
}

// FromEnv overlays PLANNERD_* environment variables on base.
func FromEnv(base Config) Config {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("PLANNERD_DATA_FILE")); v != "" {
		cfg.DataFile = v
	}
	if v, ok := getEnvInt("PLANNERD_CHECK_INTERVAL_SECONDS"); ok && v > 0 {
		cfg.CheckIntervalSeconds = v
	}
	if v, ok := getEnvInt("PLANNERD_EVENT_BUFFER"); ok && v > 0 {
		cfg.EventBuffer = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANNERD_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
