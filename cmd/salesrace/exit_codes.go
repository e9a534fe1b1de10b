package main

import (
	"errors"
	"os"

	salesrace "github.com/alnah/go-salesrace"
	"github.com/alnah/go-salesrace/internal/config"
	"github.com/alnah/go-salesrace/internal/hints"
)

// Exit codes for the salesrace CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All variants rendered
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input data validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteCleaned) ||
		errors.Is(err, ErrWriteGIF) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldOutOfRange) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidHold) ||
		errors.Is(err, salesrace.ErrNoRecords) ||
		errors.Is(err, salesrace.ErrMissingColumn) ||
		errors.Is(err, salesrace.ErrBadOrderDate) ||
		errors.Is(err, salesrace.ErrBadHeader) ||
		errors.Is(err, salesrace.ErrEmptyTable) ||
		errors.Is(err, salesrace.ErrNotNumeric) ||
		errors.Is(err, salesrace.ErrInvalidCanvasSize) ||
		errors.Is(err, salesrace.ErrInvalidMargins) ||
		errors.Is(err, salesrace.ErrInvalidLabelPos) ||
		errors.Is(err, salesrace.ErrInvalidSteps) ||
		errors.Is(err, salesrace.ErrInvalidPeriodLength) ||
		errors.Is(err, salesrace.ErrInvalidBarSize) ||
		errors.Is(err, salesrace.ErrInvalidBarAlpha) ||
		errors.Is(err, salesrace.ErrInvalidMaxBars) ||
		errors.Is(err, salesrace.ErrUnknownPlatform) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for known failure modes, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, ErrNoInput):
		return hints.ForNoInput()
	case errors.Is(err, salesrace.ErrUnknownPlatform):
		return hints.ForUnknownPlatform(salesrace.PlatformNames())
	case errors.Is(err, salesrace.ErrMissingColumn), errors.Is(err, salesrace.ErrBadHeader):
		return hints.ForMissingColumn()
	case errors.Is(err, salesrace.ErrBadOrderDate):
		return hints.ForBadOrderDate()
	default:
		return ""
	}
}
