package cmd

import (
	"context"
	"errors"

	clierrors "github.com/salmonumbrella/sheetdump/internal/errors"
	"github.com/salmonumbrella/sheetdump/internal/sheet"
)

const (
	ExitOK       = 0
	ExitSystem   = 1
	ExitUser     = 2
	ExitNotFound = 4
	ExitCanceled = 130
)

// ExitCode maps a command error to a stable process exit code for automation.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCanceled
	}
	if clierrors.IsFileNotFound(err) {
		return ExitNotFound
	}
	// A file we do not know how to read is the caller's mistake, not ours.
	if errors.Is(err, sheet.ErrUnsupportedFormat) {
		return ExitUser
	}
	if clierrors.IsValidationError(err) || clierrors.IsUserError(err) {
		return ExitUser
	}

	return ExitSystem
}
