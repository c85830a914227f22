// Package drag turns pointer input into timeline updates: scrubbing the
// playhead (with edge auto-scroll) and repositioning media clips.
package drag

import "errors"

// Sentinel errors for drag controllers.
var (
	// ErrUnknownClip indicates a clip drag was started on an id not in the timeline.
	ErrUnknownClip = errors.New("unknown media item")
	// ErrNotDragging indicates a move or release arrived with no drag in progress.
	ErrNotDragging = errors.New("no drag in progress")
)

// Pointer is a pointer event position in client coordinates.
type Pointer struct {
	ClientX float64
	ClientY float64
}

// Target names what a drag session is moving.
type Target int

const (
	TargetPlayhead Target = iota
	TargetClip
)

// String implements fmt.Stringer.
func (t Target) String() string {
	if t == TargetClip {
		return "clip"
	}
	return "playhead"
}

// Session is the ephemeral record of one drag, created on pointer-down and
// discarded on pointer-up. It is owned by the controller running the drag.
type Session struct {
	Target        Target
	ClipID        string
	OriginClientX float64
	// OriginValue is the dragged value at pointer-down: elapsed milliseconds
	// for the playhead, start milliseconds for a clip.
	OriginValue float64
	LastClientX float64
}
