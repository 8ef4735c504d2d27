// Package config resolves clockwork settings from an optional YAML file and
// CLOCKWORK_* environment variables. Environment values win over the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDB          = "CLOCKWORK_DB"
	EnvTickMs      = "CLOCKWORK_TICK_MS"
	EnvLogUseCases = "CLOCKWORK_LOG_USE_CASES"
	EnvConfig      = "CLOCKWORK_CONFIG"
)

// DirName is the per-user directory holding the database and config file.
const DirName = ".clockwork"

// Config holds all runtime settings.
type Config struct {
	DBPath       string
	TickInterval time.Duration
	LogUseCases  bool
	// ConfigPath is the file that was read, or would have been read.
	ConfigPath string
}

// fileConfig mirrors config.yaml. Pointers distinguish unset keys.
type fileConfig struct {
	DB          string `yaml:"db"`
	TickMs      *int   `yaml:"tick_ms"`
	LogUseCases *bool  `yaml:"log_use_cases"`
}

// DefaultConfig returns settings rooted at home.
func DefaultConfig(home string) Config {
	dir := filepath.Join(home, DirName)
	return Config{
		DBPath:       filepath.Join(dir, "clockwork.db"),
		TickInterval: time.Second,
		LogUseCases:  false,
		ConfigPath:   filepath.Join(dir, "config.yaml"),
	}
}

// Load applies the config file, then environment overrides, on top of the
// defaults. A missing file is not an error; a malformed one is.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := DefaultConfig(home)

	if v := os.Getenv(EnvConfig); v != "" {
		cfg.ConfigPath = v
	}
	if err := applyFile(&cfg, cfg.ConfigPath, home); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path, home string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.DB != "" {
		cfg.DBPath = expandHome(fc.DB, home)
	}
	if fc.TickMs != nil && *fc.TickMs > 0 {
		cfg.TickInterval = time.Duration(*fc.TickMs) * time.Millisecond
	}
	if fc.LogUseCases != nil {
		cfg.LogUseCases = *fc.LogUseCases
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvTickMs); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TickInterval = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv(EnvLogUseCases); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
}

// expandHome resolves a leading "~/" against home.
func expandHome(path, home string) string {
	if len(path) >= 2 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
