package salesrace

import "errors"

// Sentinel errors for library operations.
var (
	// Dataset errors.
	ErrNoRecords     = errors.New("no sales records found")
	ErrMissingColumn = errors.New("required column missing from CSV header")
	ErrBadOrderDate  = errors.New("unparseable order date")
	ErrBadHeader     = errors.New("failed to read CSV header")

	// Table errors.
	ErrEmptyTable = errors.New("table has no rows or columns")
	ErrNotNumeric = errors.New("table cell is not numeric")

	// Layout validation errors.
	ErrInvalidCanvasSize = errors.New("invalid canvas size")
	ErrInvalidMargins    = errors.New("invalid margins")
	ErrInvalidLabelPos   = errors.New("invalid period label position")

	// Animation validation errors.
	ErrInvalidSteps        = errors.New("invalid steps per period")
	ErrInvalidPeriodLength = errors.New("invalid period length")
	ErrInvalidBarSize      = errors.New("invalid bar size")
	ErrInvalidBarAlpha     = errors.New("invalid bar alpha")
	ErrInvalidMaxBars      = errors.New("invalid max bars")

	// Platform preset errors.
	ErrUnknownPlatform = errors.New("unknown platform")

	// Rendering errors.
	ErrGIFEncode = errors.New("GIF encoding failed")
)
