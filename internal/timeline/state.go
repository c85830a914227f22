// Package timeline owns the shared timeline state: play flag, zoom level,
// elapsed time, playhead position and media items.
//
// Elapsed time is canonical. The playhead position is always derived from
// it at the current zoom; Reconcile restores that relationship after a zoom
// change. State is not safe for concurrent use: all reads and writes happen
// on the host's single event goroutine.
package timeline

import (
	"math"

	"github.com/papapumpkin/cutline/internal/zoom"
)

// State is the timeline state container. The zero value is not usable;
// construct with New.
type State struct {
	play       bool
	zoom       zoom.Level
	elapsedMs  float64
	playheadPx float64
	items      []MediaItem
	version    uint64
}

// Snapshot is a read-only copy of the state for renderers.
type Snapshot struct {
	Play       bool
	Zoom       zoom.Level
	ElapsedMs  float64
	PlayheadPx float64
	Items      []MediaItem
	Version    uint64
}

// New creates a stopped state at level z with no media items. An invalid
// level falls back to zoom.Default.
func New(z zoom.Level) *State {
	if !z.Valid() {
		z = zoom.Default
	}
	return &State{zoom: z}
}

// Play reports whether playback is requested.
func (s *State) Play() bool { return s.play }

// SetPlay sets the play flag.
func (s *State) SetPlay(play bool) {
	s.play = play
	s.touch()
}

// UpdatePlay applies fn to the current play flag.
func (s *State) UpdatePlay(fn func(prev bool) bool) {
	s.SetPlay(fn(s.play))
}

// Zoom returns the current zoom level.
func (s *State) Zoom() zoom.Level { return s.zoom }

// SetZoom changes the zoom level. An invalid level is rejected and the
// prior zoom is kept. SetZoom does not move the playhead; call Reconcile.
func (s *State) SetZoom(z zoom.Level) error {
	if _, err := zoom.Lookup(z); err != nil {
		return err
	}
	s.zoom = z
	s.touch()
	return nil
}

// UpdateZoom applies fn to the current zoom level.
func (s *State) UpdateZoom(fn func(prev zoom.Level) zoom.Level) error {
	return s.SetZoom(fn(s.zoom))
}

// ElapsedMs returns the canonical playback position in milliseconds.
func (s *State) ElapsedMs() float64 { return s.elapsedMs }

// SetElapsedMs sets the elapsed time. Negative and NaN values clamp to 0.
func (s *State) SetElapsedMs(ms float64) {
	s.elapsedMs = nonNegative(ms)
	s.touch()
}

// UpdateElapsedMs applies fn to the current elapsed time.
func (s *State) UpdateElapsedMs(fn func(prev float64) float64) {
	s.SetElapsedMs(fn(s.elapsedMs))
}

// PlayheadPx returns the playhead's pixel offset in content space.
func (s *State) PlayheadPx() float64 { return s.playheadPx }

// SetPlayheadPx sets the playhead position. Negative and NaN values clamp to 0.
func (s *State) SetPlayheadPx(px float64) {
	s.playheadPx = nonNegative(px)
	s.touch()
}

// UpdatePlayheadPx applies fn to the current playhead position.
func (s *State) UpdatePlayheadPx(fn func(prev float64) float64) {
	s.SetPlayheadPx(fn(s.playheadPx))
}

// Seek moves elapsed time to ms and derives the playhead from it.
func (s *State) Seek(ms float64) {
	s.SetElapsedMs(ms)
	s.Reconcile()
}

// Reconcile recomputes the playhead from elapsed time at the current zoom.
func (s *State) Reconcile() {
	px, err := zoom.ToPixels(s.elapsedMs, s.zoom)
	if err != nil {
		// zoom is validated on every write; unreachable.
		return
	}
	s.SetPlayheadPx(px)
}

// MediaItems returns a copy of the media items in order.
func (s *State) MediaItems() []MediaItem {
	out := make([]MediaItem, len(s.items))
	copy(out, s.items)
	return out
}

// SetMediaItems replaces the media items with a copy of items.
func (s *State) SetMediaItems(items []MediaItem) {
	s.items = make([]MediaItem, len(items))
	copy(s.items, items)
	s.touch()
}

// UpdateMediaItems applies fn to a copy of the current items and stores the result.
func (s *State) UpdateMediaItems(fn func(prev []MediaItem) []MediaItem) {
	s.SetMediaItems(fn(s.MediaItems()))
}

// MediaItem returns the item with the given id.
func (s *State) MediaItem(id string) (MediaItem, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return MediaItem{}, false
}

// ReplaceStart sets the start of the item matching id, leaving every other
// item untouched. It reports whether a match was found.
func (s *State) ReplaceStart(id string, startMs float64) bool {
	found := false
	s.UpdateMediaItems(func(prev []MediaItem) []MediaItem {
		for i := range prev {
			if prev[i].ID == id {
				prev[i].StartMs = nonNegative(startMs)
				found = true
			}
		}
		return prev
	})
	return found
}

// Version increases on every write. Hosts compare it to decide whether
// to redraw.
func (s *State) Version() uint64 { return s.version }

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Play:       s.play,
		Zoom:       s.zoom,
		ElapsedMs:  s.elapsedMs,
		PlayheadPx: s.playheadPx,
		Items:      s.MediaItems(),
		Version:    s.version,
	}
}

func (s *State) touch() {
	s.version++
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
