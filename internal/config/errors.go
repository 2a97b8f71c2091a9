package config

import "github.com/ayoisaiah/tracklog/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidField = &apperr.Error{
		Message: "%s: %s check failed for value %v",
	}

	errSaveBeforeLog = &apperr.Error{
		Message: "save interval (%v) must not be shorter than the log interval (%v)",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s duration",
	}

	errInvalidFixed = &apperr.Error{
		Message: "fixed position must be given as lat,lon within range, got %q",
	}

	errExclusiveSources = &apperr.Error{
		Message: "--replay and --fixed cannot be combined",
	}

	errInvalidInterval = &apperr.Error{
		Message: "%s interval must be positive, got %v",
	}
)

var errInvalidName = &apperr.Error{
	Message: "track name must not be empty or contain path separators",
}
