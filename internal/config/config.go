// Package config handles configuration loading and validation for vpiano.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"vpiano/internal/timing"
)

// Config holds the complete player configuration.
type Config struct {
	// Library configuration for the sheet collection.
	Library LibraryConfig `toml:"library" json:"library" yaml:"library"`

	// Distribution weights the playback timeline; see the timing package.
	Distribution timing.Distribution `toml:"distribution" json:"distribution" yaml:"distribution"`

	// Playback configuration.
	Playback PlaybackConfig `toml:"playback" json:"playback" yaml:"playback"`

	// History configuration for play records.
	History HistoryConfig `toml:"history" json:"history" yaml:"history"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// LibraryConfig holds sheet collection configuration.
type LibraryConfig struct {
	// Dir is the directory containing sheet files.
	Dir string `toml:"dir" json:"dir" yaml:"dir"`

	// Watch reloads the library when sheet files change.
	Watch bool `toml:"watch" json:"watch" yaml:"watch"`
}

// PlaybackConfig holds playback timing configuration.
type PlaybackConfig struct {
	// BlankRestMs is the duration of the blank-line rest in
	// milliseconds. It is configured here because the timing allocator
	// does not derive it from the sheet length.
	BlankRestMs int `toml:"blank_rest_ms" json:"blank_rest_ms" yaml:"blank_rest_ms"`

	// LeadInSec is the countdown before playback starts, giving the
	// player time to focus the target window.
	LeadInSec int `toml:"lead_in_sec" json:"lead_in_sec" yaml:"lead_in_sec"`

	// InhibitScreenSaver keeps the desktop session unlocked during
	// playback (Linux only; ignored elsewhere).
	InhibitScreenSaver bool `toml:"inhibit_screensaver" json:"inhibit_screensaver" yaml:"inhibit_screensaver"`
}

// HistoryConfig holds play history configuration.
type HistoryConfig struct {
	// Enabled determines whether plays are recorded.
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`

	// Path is the path to the history database.
	Path string `toml:"path" json:"path" yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is the log format: "text" or "json".
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is the log output: "stdout", "stderr", or "file".
	Output string `toml:"output" json:"output" yaml:"output"`

	// FilePath is the path to the log file (when Output is "file").
	FilePath string `toml:"file_path" json:"file_path" yaml:"file_path"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	dataDir := PlatformDataDir()

	return &Config{
		Library: LibraryConfig{
			Dir:   filepath.Join(dataDir, "sheets"),
			Watch: true,
		},
		Distribution: timing.Distribution{
			Short:              0.2,
			Standard:           0.3,
			Long:               0.5,
			PauseRatio:         20,
			ManyFastProportion: 0.15,
		},
		Playback: PlaybackConfig{
			BlankRestMs:        1000,
			LeadInSec:          5,
			InhibitScreenSaver: true,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dataDir, "history.db"),
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "stderr",
			FilePath: filepath.Join(PlatformLogDir(), "vpiano.log"),
		},
	}
}

// ConfigPath returns the default configuration file path.
func ConfigPath() string {
	return filepath.Join(PlatformConfigDir(), "config.toml")
}

// Load reads configuration from the specified path. If the file doesn't
// exist, it returns the default configuration. TOML, JSON, and YAML are
// supported, chosen by file extension.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		// TOML is the default format.
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides. Variables
// are prefixed with VPIANO_.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("VPIANO_SHEETS_DIR"); v != "" {
		c.Library.Dir = v
	}
	if v := os.Getenv("VPIANO_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("VPIANO_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VPIANO_LEAD_IN_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Playback.LeadInSec = n
		}
	}
}
