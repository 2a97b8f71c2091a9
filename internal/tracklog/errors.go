package tracklog

import "github.com/ayoisaiah/tracklog/internal/apperr"

var (
	// ErrSessionState is returned for a command that is not valid in the
	// current session state. It is never fatal.
	ErrSessionState = &apperr.Error{
		Message: "invalid session state",
	}

	ErrAlreadyRecording = ErrSessionState.Derive(
		"track logging already in progress",
	)

	ErrNotRecording = ErrSessionState.Derive(
		"no track logging in progress",
	)

	ErrNotPaused = ErrSessionState.Derive(
		"track logging is not paused",
	)

	ErrAlreadyPaused = ErrSessionState.Derive(
		"track logging is already paused",
	)

	ErrNotRecovered = ErrSessionState.Derive(
		"orphaned logs must be recovered before a new session can start",
	)

	// ErrWriteDegraded reports that one redundant copy failed and recording
	// continues on the other.
	ErrWriteDegraded = &apperr.Error{
		Message: "%s log copy failed, continuing on the remaining copy",
	}

	ErrAllCopiesFailed = &apperr.Error{
		Message: "both log copies of %s failed",
	}

	// ErrExport reports that neither copy of a session could be exported.
	// The temporaries are kept for the next recovery pass.
	ErrExport = &apperr.Error{
		Message: "exporting track %s failed",
	}

	// ErrRecoveryExport reports an orphaned log that could not be exported.
	// The file is renamed with a .failed suffix, never deleted.
	ErrRecoveryExport = &apperr.Error{
		Message: "recovering orphaned log %s failed",
	}

	errNoFreeDestination = &apperr.Error{
		Message: "no free export destination for %s",
	}

	errHandleUnavailable = &apperr.Error{
		Message: "%s log copy is unavailable",
	}

	errMissingFolder = &apperr.Error{
		Message: "a log folder is required",
	}

	errMissingLocation = &apperr.Error{
		Message: "a location provider is required",
	}
)
