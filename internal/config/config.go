package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level daybook.yaml configuration.
type Config struct {
	Profile    ProfileConfig    `yaml:"profile"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Inbox      InboxConfig      `yaml:"inbox"`
	Remind     RemindConfig     `yaml:"remind"`
	Git        GitConfig        `yaml:"git"`
}

// ProfileConfig identifies the ledger owner.
type ProfileConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // display symbol, e.g. "¥"
}

// ThresholdsConfig controls scan auto-confirmation and savings tracking.
type ThresholdsConfig struct {
	AutoConfirm   float64 `yaml:"auto_confirm"`
	ReviewFlag    float64 `yaml:"review_flag"`
	OnTrackFactor float64 `yaml:"on_track_factor"`
}

// InboxConfig controls the OCR-text intake directory.
type InboxConfig struct {
	Dir string `yaml:"dir"`
}

// RemindConfig controls the reminder daemon.
type RemindConfig struct {
	Interval string `yaml:"interval"` // cron @every duration, e.g. "1h"
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a daybook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(ownerName string) *Config {
	return &Config{
		Profile: ProfileConfig{
			Name:     ownerName,
			Currency: "¥",
		},
		Thresholds: ThresholdsConfig{
			AutoConfirm:   0.9,
			ReviewFlag:    0.6,
			OnTrackFactor: 0.9,
		},
		Inbox: InboxConfig{
			Dir: "inbox",
		},
		Remind: RemindConfig{
			Interval: "1h",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Daybook",
			AuthorEmail: "ledger@daybook.dev",
		},
	}
}
