package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"
)

// Config holds every setting the CLI reads from its config file. Command-line
// flags override these values when they are set explicitly.
type Config struct {
	LogLevel      string `json:"log_level" toml:"log_level"`
	DatabasePath  string `json:"database_path" toml:"database_path"`
	WindowLength  int    `json:"window_length" toml:"window_length"`
	Length        int    `json:"length" toml:"length"`
	FixedSeed     int64  `json:"fixed_seed" toml:"fixed_seed"`
	RecordHistory bool   `json:"record_history" toml:"record_history"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		DatabasePath:  "./data/charkov.db" + sqliteParams,
		WindowLength:  3,
		Length:        200,
		FixedSeed:     20,
		RecordHistory: true,
	}
}

// LoadConfig reads the configuration from the file at path. A path ending in
// .toml is decoded as TOML and a missing TOML file just means defaults. Any
// other path is JSON; if it doesn't exist, it is created with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return config, nil
			}
			return nil, fmt.Errorf("failed to stat config: %w", err)
		}
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
		return config, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Defaults still work without the file on disk.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Level maps LogLevel onto a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
