package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]

			return errInvalidField.Fmt(fe.Namespace(), fe.Tag(), fe.Value())
		}

		return err
	}

	if c.Settings.SaveInterval < c.Settings.LogInterval {
		return errSaveBeforeLog.Fmt(
			c.Settings.SaveInterval,
			c.Settings.LogInterval,
		)
	}

	return nil
}
