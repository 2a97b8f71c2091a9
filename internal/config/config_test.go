package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func defaults() *Config {
	return &Config{
		Settings: SettingsConfig{
			Category:     "logs",
			NamePrefix:   "log",
			Units:        UnitsMetric,
			LogInterval:  time.Second,
			SaveInterval: 10 * time.Second,
		},
		Display: DisplayConfig{
			Zoom:      15,
			DarkTheme: true,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
	}
}

func TestWithViperConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Equal(t, defaults().Settings, cfg.Settings)
	assert.Equal(t, defaults().Display, cfg.Display)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, path, cfg.CLI.ConfigPath)
	assert.Equal(t, time.Second, cfg.Intervals.Get(LogInterval))
	assert.Equal(t, 10*time.Second, cfg.Intervals.Get(SaveInterval))
}

func TestWithViperConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	content := `settings:
    category: rides
    name_prefix: ride
    log_interval: 2s
    save_interval: 30s
    units: imperial
display:
    zoom: 12
notifications:
    enabled: false
`

	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, "rides", cfg.Settings.Category)
	assert.Equal(t, "ride", cfg.Settings.NamePrefix)
	assert.Equal(t, 2*time.Second, cfg.Settings.LogInterval)
	assert.Equal(t, 30*time.Second, cfg.Settings.SaveInterval)
	assert.Equal(t, UnitsImperial, cfg.Settings.Units)
	assert.Equal(t, 12, cfg.Display.Zoom)
	assert.True(t, cfg.Display.DarkTheme, "unset keys keep their default")
	assert.False(t, cfg.Notifications.Enabled)
}

func TestWithViperConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, os.WriteFile(path, []byte("settings: [unclosed"), 0o644))

	_, err := New(WithViperConfig(path))
	assert.ErrorIs(t, err, errConfigOption)
	assert.ErrorIs(t, err, errReadConfig)
}

func newCLIContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("test", flag.ContinueOnError)

	for _, name := range []string{
		"log-interval", "save-interval", "category", "name", "cmd",
		"units", "replay", "fixed",
	} {
		set.String(name, "", "")
	}

	set.Int("zoom", 0, "")

	for _, name := range []string{
		"disable-notification", "ask-name", "loop", "debug",
	} {
		set.Bool(name, false, "")
	}

	require.NoError(t, set.Parse(args))

	return cli.NewContext(cli.NewApp(), set, nil)
}

func withDefaults(c *Config) error {
	*c = *defaults()
	return nil
}

func TestWithCLIConfig(t *testing.T) {
	testCases := []struct {
		check func(t *testing.T, cfg *Config)
		name  string
		args  []string
	}{
		{
			name: "no flags keeps the file values",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, defaults().Settings, cfg.Settings)
				assert.Nil(t, cfg.CLI.Fixed)
			},
		},
		{
			name: "durations and names",
			args: []string{
				"--log-interval", "500ms",
				"--save-interval", "20",
				"--category", "hikes",
				"--name", "hike",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 500*time.Millisecond, cfg.Settings.LogInterval)
				assert.Equal(t, 20*time.Second, cfg.Settings.SaveInterval)
				assert.Equal(t, "hikes", cfg.Settings.Category)
				assert.Equal(t, "hike", cfg.Settings.NamePrefix)
			},
		},
		{
			name: "display and notification flags",
			args: []string{"--zoom", "9", "--disable-notification", "--units", "imperial"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9, cfg.Display.Zoom)
				assert.False(t, cfg.Notifications.Enabled)
				assert.Equal(t, UnitsImperial, cfg.Settings.Units)
			},
		},
		{
			name: "fixed position",
			args: []string{"--fixed", "6.5, 3.4"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []float64{6.5, 3.4}, cfg.CLI.Fixed)
			},
		},
		{
			name: "replay with loop",
			args: []string{"--replay", "trip.gpx", "--loop"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "trip.gpx", cfg.CLI.Replay)
				assert.True(t, cfg.CLI.Loop)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := New(withDefaults, WithCLIConfig(newCLIContext(t, tc.args...)))
			require.NoError(t, err)

			tc.check(t, cfg)
		})
	}
}

func TestWithCLIConfigErrors(t *testing.T) {
	testCases := []struct {
		err  error
		name string
		args []string
	}{
		{
			name: "bad duration",
			args: []string{"--log-interval", "often"},
			err:  errInvalidCLIDuration,
		},
		{
			name: "latitude out of range",
			args: []string{"--fixed", "91,3"},
			err:  errInvalidFixed,
		},
		{
			name: "missing longitude",
			args: []string{"--fixed", "6.5"},
			err:  errInvalidFixed,
		},
		{
			name: "two position sources",
			args: []string{"--fixed", "6.5,3.4", "--replay", "trip.gpx"},
			err:  errExclusiveSources,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(withDefaults, WithCLIConfig(newCLIContext(t, tc.args...)))
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		mutate func(c *Config)
		err    error
		name   string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:   "empty prefix",
			mutate: func(c *Config) { c.Settings.NamePrefix = "" },
			err:    errInvalidField,
		},
		{
			name:   "prefix with separator",
			mutate: func(c *Config) { c.Settings.NamePrefix = "a/b" },
			err:    errInvalidField,
		},
		{
			name:   "unknown units",
			mutate: func(c *Config) { c.Settings.Units = "nautical" },
			err:    errInvalidField,
		},
		{
			name:   "log interval too short",
			mutate: func(c *Config) { c.Settings.LogInterval = time.Millisecond },
			err:    errInvalidField,
		},
		{
			name:   "zoom out of range",
			mutate: func(c *Config) { c.Display.Zoom = 25 },
			err:    errInvalidField,
		},
		{
			name: "save shorter than log",
			mutate: func(c *Config) {
				c.Settings.LogInterval = 5 * time.Second
				c.Settings.SaveInterval = 2 * time.Second
			},
			err: errSaveBeforeLog,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := defaults()
			tc.mutate(c)

			err := c.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestIntervalsOnChange(t *testing.T) {
	i := NewIntervals(time.Second, 10*time.Second)

	type change struct {
		kind IntervalKind
		d    time.Duration
	}

	var got []change

	i.OnChange(func(kind IntervalKind, d time.Duration) {
		got = append(got, change{kind, d})
	})

	require.NoError(t, i.Set(LogInterval, 2*time.Second))
	require.NoError(t, i.Set(LogInterval, 2*time.Second))
	require.NoError(t, i.Set(SaveInterval, time.Minute))
	assert.ErrorIs(t, i.Set(SaveInterval, 0), errInvalidInterval)

	assert.Equal(t, []change{
		{LogInterval, 2 * time.Second},
		{SaveInterval, time.Minute},
	}, got)
	assert.Equal(t, time.Minute, i.Get(SaveInterval))
}

func TestApplyIntervalsSkipsInvalid(t *testing.T) {
	i := NewIntervals(time.Second, 10*time.Second)

	applyIntervals(i, map[IntervalKind]time.Duration{
		LogInterval:  0,
		SaveInterval: 20 * time.Second,
	})

	assert.Equal(t, time.Second, i.Get(LogInterval))
	assert.Equal(t, 20*time.Second, i.Get(SaveInterval))
}

func TestTrackFolder(t *testing.T) {
	c := defaults()
	assert.Equal(t, filepath.Join("/data", "logs"), c.TrackFolder("/data"))

	c.Settings.Folder = "/mnt/sd"
	assert.Equal(t, filepath.Join("/mnt/sd", "logs"), c.TrackFolder("/data"))
}
