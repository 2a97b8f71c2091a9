package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Units        string
	LogInterval  time.Duration
	SaveInterval time.Duration
}

// WithPromptConfig returns an Option that configures settings via
// interactive prompts. It only prompts when the config file does not exist
// yet, so it must run before WithViperConfig creates it.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return err
		}

		v := newViper(configPath)
		v.Set(keyUnits, opts.Units)
		v.Set(keyLogInterval, opts.LogInterval.String())
		v.Set(keySaveInterval, opts.SaveInterval.String())

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	_ = pterm.DefaultBigText.WithLetters(putils.LettersFromString("tracklog")).
		Render()

	_ = putils.BulletListFromString(`Follow the prompts below to configure tracklog for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'tracklog edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Units").
				Options(
					huh.NewOption("Metric (km, km/h)", UnitsMetric).Selected(true),
					huh.NewOption("Imperial (mi, mph)", UnitsImperial),
				).
				Value(&opts.Units),
		),
		huh.NewGroup(
			huh.NewSelect[time.Duration]().
				Title("Record a point every").
				Options(
					huh.NewOption("second", time.Second).Selected(true),
					huh.NewOption("2 seconds", 2*time.Second),
					huh.NewOption("5 seconds", 5*time.Second),
					huh.NewOption("10 seconds", 10*time.Second),
				).
				Value(&opts.LogInterval),
		),
		huh.NewGroup(
			huh.NewSelect[time.Duration]().
				Title("Save to disk every").
				Options(
					huh.NewOption("10 seconds", 10*time.Second).Selected(true),
					huh.NewOption("30 seconds", 30*time.Second),
					huh.NewOption("minute", time.Minute),
				).
				Value(&opts.SaveInterval),
		),
	)

	if err := form.Run(); err != nil {
		return opts, err
	}

	if opts.SaveInterval < opts.LogInterval {
		opts.SaveInterval = opts.LogInterval
	}

	return opts, nil
}

// AskName prompts for the name prefix of the next session. The current
// prefix is offered as the default.
func AskName(current string) (string, error) {
	name := current

	err := huh.NewInput().
		Title("Track name").
		Value(&name).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" || strings.ContainsAny(s, `/\`) {
				return errInvalidName
			}

			return nil
		}).
		Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(name), nil
}
