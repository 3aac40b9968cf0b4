package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, loaded from an optional YAML
// file and overridden by environment variables.
type Config struct {
	App struct {
		DataDir             string `yaml:"data_dir" env:"PORTAL_DATA_DIR"`
		Seed                bool   `yaml:"seed" env:"PORTAL_SEED"`
		BackupRetentionDays int    `yaml:"backup_retention_days" env:"PORTAL_BACKUP_RETENTION_DAYS"`
	} `yaml:"app"`

	Session struct {
		Secret   string `yaml:"secret" env:"PORTAL_SESSION_SECRET"`
		Lifetime string `yaml:"lifetime" env:"PORTAL_SESSION_LIFETIME"`
		Issuer   string `yaml:"issuer" env:"PORTAL_SESSION_ISSUER"`
	} `yaml:"session"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults plus environment apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func setDefaults(config *Config) {
	config.App.DataDir = "data"
	config.App.Seed = true
	config.App.BackupRetentionDays = 30

	config.Session.Secret = "eduportal-dev-secret"
	config.Session.Lifetime = "12h"
	config.Session.Issuer = "eduportal.local"

	config.Logging.Level = "info"
	config.Logging.Format = "console"
}

func validateConfig(config *Config) error {
	if config.App.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if config.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if _, err := time.ParseDuration(config.Session.Lifetime); err != nil {
		return fmt.Errorf("invalid session lifetime format: %w", err)
	}
	if config.App.BackupRetentionDays < 0 {
		return fmt.Errorf("backup retention cannot be negative")
	}
	return nil
}

// SessionLifetime returns the parsed session token lifetime.
func (c *Config) SessionLifetime() time.Duration {
	d, err := time.ParseDuration(c.Session.Lifetime)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

// BackupRetention returns the backup retention as a duration.
func (c *Config) BackupRetention() time.Duration {
	return time.Duration(c.App.BackupRetentionDays) * 24 * time.Hour
}

// PrettyLogging reports whether console (human-readable) log output is
// configured rather than JSON lines.
func (c *Config) PrettyLogging() bool {
	return c.Logging.Format != "json"
}
