// Package config loads client settings from an optional YAML file with
// environment overrides. A missing file falls back to defaults so the
// client runs with zero setup against a local server.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds everything the client needs to reach the server and log.
type Config struct {
	ServerURL      string        `yaml:"server_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogFile        string        `yaml:"log_file"`
	LogLevel       string        `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		ServerURL:      "http://localhost:5000",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
	}
}

// Load reads the config file (the default location when path is empty),
// then applies .env and environment overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, errors.Wrapf(err, "parse config %s", path)
			}
		case !os.IsNotExist(err):
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	// .env is optional; explicit environment always wins.
	_ = godotenv.Load()

	if v := os.Getenv("AURA_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("AURA_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.Wrap(err, "parse AURA_TIMEOUT")
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("AURA_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("AURA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults().RequestTimeout
	}
	return cfg, nil
}

// defaultConfigPath prefers XDG_CONFIG_HOME, empty when no home exists.
func defaultConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "aura", "config.yaml")
}
