package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	LogInterval   string
	SaveInterval  string
	Category      string
	NamePrefix    string
	Cmd           string
	Units         string
	Replay        string
	Fixed         string
	Zoom          int
	DisableNotify bool
	AskName       bool
	Loop          bool
	Debug         bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			LogInterval:   ctx.String("log-interval"),
			SaveInterval:  ctx.String("save-interval"),
			Category:      ctx.String("category"),
			NamePrefix:    ctx.String("name"),
			Cmd:           ctx.String("cmd"),
			Units:         ctx.String("units"),
			Replay:        ctx.String("replay"),
			Fixed:         ctx.String("fixed"),
			Zoom:          ctx.Int("zoom"),
			DisableNotify: ctx.Bool("disable-notification"),
			AskName:       ctx.Bool("ask-name"),
			Loop:          ctx.Bool("loop"),
			Debug:         ctx.Bool("debug"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if err := applyCLIDurations(c, opts); err != nil {
		return err
	}

	if opts.Category != "" {
		c.Settings.Category = opts.Category
	}

	if opts.NamePrefix != "" {
		c.Settings.NamePrefix = opts.NamePrefix
	}

	if opts.Cmd != "" {
		c.Settings.Cmd = opts.Cmd
	}

	if opts.Units != "" {
		c.Settings.Units = opts.Units
	}

	if opts.Zoom > 0 {
		c.Display.Zoom = opts.Zoom
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	c.CLI.AskName = opts.AskName
	c.CLI.Loop = opts.Loop
	c.CLI.Debug = opts.Debug

	if opts.Replay != "" && opts.Fixed != "" {
		return errExclusiveSources
	}

	c.CLI.Replay = opts.Replay

	if opts.Fixed != "" {
		pos, err := parseFixed(opts.Fixed)
		if err != nil {
			return err
		}

		c.CLI.Fixed = pos
	}

	return nil
}

// applyCLIDurations handles parsing and applying interval settings from CLI.
func applyCLIDurations(c *Config, opts CLIOptions) error {
	durations := []struct {
		target *time.Duration
		value  string
		kind   IntervalKind
	}{
		{target: &c.Settings.LogInterval, value: opts.LogInterval, kind: LogInterval},
		{target: &c.Settings.SaveInterval, value: opts.SaveInterval, kind: SaveInterval},
	}

	for _, d := range durations {
		if d.value == "" {
			continue
		}

		dur, err := parseDuration(d.value)
		if err != nil {
			return errInvalidCLIDuration.Fmt(d.kind).Wrap(err)
		}

		*d.target = dur
	}

	return nil
}

// parseDuration accepts Go duration strings and bare numbers of seconds.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	secs, serr := strconv.ParseFloat(s, 64)
	if serr != nil {
		return 0, err
	}

	return time.Duration(secs * float64(time.Second)), nil
}

// parseFixed reads a "lat,lon" pair.
func parseFixed(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, errInvalidFixed.Fmt(s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, errInvalidFixed.Fmt(s)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, errInvalidFixed.Fmt(s)
	}

	return []float64{lat, lon}, nil
}
