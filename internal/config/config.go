// Package config loads the tracklog configuration from the config file and
// the command-line, in that order of precedence (lowest first).
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

type (
	// Config holds all configuration settings
	Config struct {
		Intervals     *Intervals         `mapstructure:"-"`
		CLI           CLIConfig          `mapstructure:"-"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Display       DisplayConfig      `mapstructure:"display"`
		Notifications NotificationConfig `mapstructure:"notifications"`
	}

	// SettingsConfig holds recording settings
	SettingsConfig struct {
		Category     string        `mapstructure:"category"      validate:"required,excludesall=/\\"`
		NamePrefix   string        `mapstructure:"name_prefix"   validate:"required,excludesall=/\\"`
		Folder       string        `mapstructure:"folder"`
		Cmd          string        `mapstructure:"cmd"`
		Units        string        `mapstructure:"units"         validate:"oneof=metric imperial"`
		LogInterval  time.Duration `mapstructure:"log_interval"  validate:"min=100ms,max=1h"`
		SaveInterval time.Duration `mapstructure:"save_interval" validate:"min=1s,max=1h"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		Zoom      int  `mapstructure:"zoom"       validate:"min=0,max=20"`
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// CLIConfig holds settings that only come from the command-line
	CLIConfig struct {
		Replay     string
		Fixed      []float64
		ConfigPath string
		AskName    bool
		Loop       bool
		Debug      bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config with default values and applies options
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	cfg.Intervals = NewIntervals(
		cfg.Settings.LogInterval,
		cfg.Settings.SaveInterval,
	)

	return cfg, nil
}

// TrackFolder returns the folder sessions of the configured category are
// written to. It lives under root unless a folder is configured.
func (c *Config) TrackFolder(root string) string {
	if c.Settings.Folder != "" {
		root = c.Settings.Folder
	}

	return filepath.Join(root, c.Settings.Category)
}

// String renders the config for debug output.
func (c *Config) String() string {
	return fmt.Sprintf(
		"category=%s prefix=%s log=%s save=%s units=%s zoom=%d notify=%t",
		c.Settings.Category,
		c.Settings.NamePrefix,
		c.Settings.LogInterval,
		c.Settings.SaveInterval,
		c.Settings.Units,
		c.Display.Zoom,
		c.Notifications.Enabled,
	)
}
