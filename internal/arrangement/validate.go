package arrangement

import (
	"errors"
	"fmt"

	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// Validate checks an arrangement for structural correctness: a valid zoom,
// unique clip IDs, known kinds, and non-negative times.
func Validate(a *Arrangement) []ValidationError {
	var errs []ValidationError

	if a.Timeline.Zoom != 0 {
		if _, err := zoom.Lookup(zoom.Level(a.Timeline.Zoom)); err != nil {
			errs = append(errs, ValidationError{
				Category:   ValCatInvalidZoom,
				SourceFile: a.SourceFile,
				Field:      "timeline.zoom",
				Err:        err,
			})
		}
	}

	seen := make(map[string]bool)
	for _, c := range a.Clips {
		if seen[c.ID] {
			errs = append(errs, ValidationError{
				Category:   ValCatDuplicateID,
				ClipID:     c.ID,
				SourceFile: a.SourceFile,
				Field:      "id",
				Err:        fmt.Errorf("%w: %q", ErrDuplicateID, c.ID),
			})
		}
		seen[c.ID] = true

		if !timeline.Kind(c.Kind).Valid() {
			errs = append(errs, ValidationError{
				Category:   ValCatUnknownKind,
				ClipID:     c.ID,
				SourceFile: a.SourceFile,
				Field:      "kind",
				Err:        fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind),
			})
		}
		if c.StartMs < 0 {
			errs = append(errs, ValidationError{
				Category:   ValCatBoundsViolation,
				ClipID:     c.ID,
				SourceFile: a.SourceFile,
				Field:      "start_ms",
				Err:        fmt.Errorf("start_ms %w, got %v", ErrNegative, c.StartMs),
			})
		}
		if c.DurationMs < 0 {
			errs = append(errs, ValidationError{
				Category:   ValCatBoundsViolation,
				ClipID:     c.ID,
				SourceFile: a.SourceFile,
				Field:      "duration_ms",
				Err:        fmt.Errorf("duration_ms %w, got %v", ErrNegative, c.DurationMs),
			})
		}
	}

	return errs
}

// Check runs Validate and joins any problems into one error that matches
// ErrInvalid and each individual ValidationError.
func Check(a *Arrangement) error {
	errs := Validate(a)
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, 0, len(errs)+1)
	joined = append(joined, ErrInvalid)
	for i := range errs {
		joined = append(joined, &errs[i])
	}
	return errors.Join(joined...)
}
