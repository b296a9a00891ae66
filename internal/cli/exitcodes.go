package cli

import (
	"errors"

	"github.com/yaklabco/oko/internal/configloader"
	"github.com/yaklabco/oko/pkg/fsutil"
	"github.com/yaklabco/oko/pkg/search"
)

// Exit codes for oko.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates an error with no more specific code.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage or an invalid pattern.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors used to select an exit code.
var (
	// ErrUsage marks bad arguments or flag values.
	ErrUsage = errors.New("invalid usage")

	// ErrWriteOutput marks a failure to write results.
	ErrWriteOutput = errors.New("write output")

	// ErrInternal marks a failure that indicates a bug.
	ErrInternal = errors.New("internal error")
)

// ExitCodeFromError maps an error returned by a command to an exit code.
func ExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage), errors.Is(err, search.ErrInvalidPattern):
		return ExitInvalidUsage
	case errors.Is(err, configloader.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, search.ErrRead),
		errors.Is(err, ErrWriteOutput),
		errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	case errors.Is(err, ErrInternal):
		return ExitInternalError
	default:
		return ExitFailure
	}
}
