// Package config loads the backup configuration from a YAML file, applies
// defaults and VAULTBACKUP_* environment overrides, and validates the result.
// The configuration is immutable after load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config is the single configuration object read by every step of a run.
type Config struct {
	// Token authenticates the vault invocations. Prefer the
	// VAULTBACKUP_TOKEN environment variable over storing it in the file.
	Token string `yaml:"token"`

	VaultBin      string `yaml:"vault_bin"`
	BackupDir     string `yaml:"backup_dir"`
	RetentionDays int    `yaml:"retention_days"`
	Prune         bool   `yaml:"prune"`

	// AgeRecipients, when set, enable encryption of the written snapshot.
	AgeRecipients []string `yaml:"age_recipients"`

	// MetricsTextfile is an optional path for node_exporter textfile
	// collector output.
	MetricsTextfile string `yaml:"metrics_textfile"`

	// CommandTimeout bounds each external invocation. Zero means no
	// timeout, matching the historical behavior of the scheduled script.
	CommandTimeout time.Duration `yaml:"command_timeout"`

	EventSource string `yaml:"event_source"`

	// Cron drives the built-in schedule mode; unused for one-shot runs.
	Cron string `yaml:"cron"`
}

// Default returns the configuration used when no file or overrides are given.
func Default() *Config {
	return &Config{
		VaultBin:      "vault",
		BackupDir:     "/var/backups/vault",
		RetentionDays: 30,
		EventSource:   "vault-raft-backup",
	}
}

// Load reads the YAML file at path (optional; empty means defaults only),
// applies environment overrides, and validates. Load order: file, defaults,
// environment, validate.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VAULTBACKUP_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("VAULTBACKUP_VAULT_BIN"); v != "" {
		cfg.VaultBin = v
	}
	if v := os.Getenv("VAULTBACKUP_BACKUP_DIR"); v != "" {
		cfg.BackupDir = v
	}
	if v := os.Getenv("VAULTBACKUP_RETENTION_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RetentionDays = n
		}
	}
	if v := os.Getenv("VAULTBACKUP_PRUNE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Prune = b
		}
	}
	if v := os.Getenv("VAULTBACKUP_COMMAND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CommandTimeout = d
		}
	}
	if v := os.Getenv("VAULTBACKUP_EVENT_SOURCE"); v != "" {
		cfg.EventSource = v
	}
	if v := os.Getenv("VAULTBACKUP_METRICS_TEXTFILE"); v != "" {
		cfg.MetricsTextfile = v
	}
	if v := os.Getenv("VAULTBACKUP_CRON"); v != "" {
		cfg.Cron = v
	}
}

// Validate rejects configurations no run could execute with.
func Validate(cfg *Config) error {
	if cfg.VaultBin == "" {
		return fmt.Errorf("config: vault_bin must not be empty")
	}
	if cfg.BackupDir == "" {
		return fmt.Errorf("config: backup_dir must not be empty")
	}
	if cfg.RetentionDays < 0 {
		return fmt.Errorf("config: retention_days must be >= 0, got %d", cfg.RetentionDays)
	}
	if cfg.CommandTimeout < 0 {
		return fmt.Errorf("config: command_timeout must be >= 0")
	}
	if cfg.Cron != "" {
		if _, err := cron.ParseStandard(cfg.Cron); err != nil {
			return fmt.Errorf("config: invalid cron expression %q: %w", cfg.Cron, err)
		}
	}
	return nil
}
