package arrangement

import "errors"

// Sentinel errors for arrangement loading and validation.
var (
	// ErrNotFound indicates the arrangement file does not exist.
	ErrNotFound = errors.New("arrangement file not found")
	// ErrDuplicateID indicates two or more clips share the same ID.
	ErrDuplicateID = errors.New("duplicate clip ID")
	// ErrUnknownKind indicates a clip kind other than video or audio.
	ErrUnknownKind = errors.New("unknown clip kind")
	// ErrNegative indicates a start or duration below zero.
	ErrNegative = errors.New("value must be >= 0")
	// ErrInvalid is returned by Check when Validate reports problems.
	ErrInvalid = errors.New("invalid arrangement")
)

// ValidationCategory classifies a validation error for programmatic handling.
type ValidationCategory string

const (
	ValCatDuplicateID     ValidationCategory = "duplicate_id"
	ValCatUnknownKind     ValidationCategory = "unknown_kind"
	ValCatBoundsViolation ValidationCategory = "bounds_violation"
	ValCatInvalidZoom     ValidationCategory = "invalid_zoom"
)

// ValidationError records a validation problem with source context.
type ValidationError struct {
	Category   ValidationCategory
	ClipID     string
	SourceFile string
	Field      string
	Err        error
}

// Error returns a human-readable string including source file and clip context.
func (e *ValidationError) Error() string {
	if e.ClipID != "" {
		return e.SourceFile + ": clip " + e.ClipID + ": " + e.Err.Error()
	}
	return e.SourceFile + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
