package remote

import (
	"github.com/papapumpkin/cutline/internal/timecode"
	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// Message types on the /ws stream.
const (
	TypeStateUpdated = "STATE_UPDATED"
	TypeError        = "ERROR"
	TypeSetPlay      = "SET_PLAY"
	TypeSetZoom      = "SET_ZOOM"
	TypeSeek         = "SEEK"
)

// Output is the envelope of every server message.
type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Item is a clip as seen by remote clients.
type Item struct {
	ID         string  `json:"id"`
	Name       string  `json:"name,omitempty"`
	Kind       string  `json:"kind"`
	StartMs    float64 `json:"start_ms"`
	DurationMs float64 `json:"duration_ms"`
}

// State is the JSON rendering of a timeline snapshot.
type State struct {
	Play       bool    `json:"play"`
	Zoom       int     `json:"zoom"`
	ElapsedMs  float64 `json:"elapsed_ms"`
	PlayheadPx float64 `json:"playhead_px"`
	Timecode   string  `json:"timecode"`
	Items      []Item  `json:"items"`
	Version    uint64  `json:"version"`
}

// StateFrom converts a snapshot for the wire.
func StateFrom(s timeline.Snapshot) State {
	items := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, Item{
			ID:         it.ID,
			Name:       it.Name,
			Kind:       string(it.Kind),
			StartMs:    it.StartMs,
			DurationMs: it.DurationMs,
		})
	}
	return State{
		Play:       s.Play,
		Zoom:       int(s.Zoom),
		ElapsedMs:  s.ElapsedMs,
		PlayheadPx: s.PlayheadPx,
		Timecode:   timecode.Format(s.ElapsedMs),
		Items:      items,
		Version:    s.Version,
	}
}

// SetPlayInput is the payload of SET_PLAY.
type SetPlayInput struct {
	Play *bool `json:"play" validate:"required"`
}

// SetZoomInput is the payload of SET_ZOOM.
type SetZoomInput struct {
	Zoom int `json:"zoom" validate:"min=1,max=6"`
}

// SeekInput is the payload of SEEK.
type SeekInput struct {
	Ms *float64 `json:"ms" validate:"required,gte=0"`
}

// Command is a validated remote request, handed to the host to apply on
// its own goroutine.
type Command struct {
	Type   string
	Play   bool
	Zoom   zoom.Level
	SeekMs float64
}

// Dispatcher applies commands.
type Dispatcher interface {
	Dispatch(Command)
}

// DispatchFunc adapts a function to Dispatcher.
type DispatchFunc func(Command)

// Dispatch calls f(c).
func (f DispatchFunc) Dispatch(c Command) { f(c) }
