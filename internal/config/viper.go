package config

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyLogInterval          = "settings.log_interval"
	keySaveInterval         = "settings.save_interval"
	keyCategory             = "settings.category"
	keyNamePrefix           = "settings.name_prefix"
	keyFolder               = "settings.folder"
	keyCmd                  = "settings.cmd"
	keyUnits                = "settings.units"
	keyZoom                 = "display.zoom"
	keyDarkTheme            = "display.dark_theme"
	keyNotificationsEnabled = "notifications.enabled"
)

// WithViperConfig returns an Option that loads configuration from Viper.
// A missing config file is created with the default values.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		c.CLI.ConfigPath = configPath

		v := newViper(configPath)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setupViper(v)

	return v
}

// setupViper configures Viper with defaults.
func setupViper(v *viper.Viper) {
	v.SetDefault(keyLogInterval, "1s")
	v.SetDefault(keySaveInterval, "10s")
	v.SetDefault(keyCategory, "logs")
	v.SetDefault(keyNamePrefix, "log")
	v.SetDefault(keyFolder, "")
	v.SetDefault(keyCmd, "")
	v.SetDefault(keyUnits, UnitsMetric)
	v.SetDefault(keyZoom, 15)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyNotificationsEnabled, true)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}

// WatchIntervals reloads the recording intervals whenever the config file
// changes so that edits reach a running session.
func WatchIntervals(configPath string, intervals *Intervals) {
	v := newViper(configPath)

	if err := v.ReadInConfig(); err != nil {
		slog.Warn(
			"config file cannot be watched",
			slog.String("path", configPath),
			slog.Any("error", err),
		)

		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("reloading config failed", slog.Any("error", err))
			return
		}

		applyIntervals(intervals, map[IntervalKind]time.Duration{
			LogInterval:  v.GetDuration(keyLogInterval),
			SaveInterval: v.GetDuration(keySaveInterval),
		})

		slog.Debug("config reloaded", slog.String("op", e.Op.String()))
	})

	v.WatchConfig()
}

func applyIntervals(
	intervals *Intervals,
	values map[IntervalKind]time.Duration,
) {
	for kind, d := range values {
		if err := intervals.Set(kind, d); err != nil {
			slog.Warn(
				"ignoring interval from config",
				slog.String("interval", kind.String()),
				slog.Any("error", err),
			)
		}
	}
}
