// Package arrangement imports clip layouts from arrangement.toml files and
// watches them for edits. An arrangement is how an external collaborator
// hands clips to the timeline; the timeline itself never writes one back.
package arrangement

import (
	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// Header is the [timeline] table.
type Header struct {
	Name string `toml:"name"`
	Zoom int    `toml:"zoom"` // 0 means "use the configured zoom"
}

// Clip is one [[clip]] entry.
type Clip struct {
	ID         string  `toml:"id"`
	Name       string  `toml:"name"`
	Kind       string  `toml:"kind"`
	StartMs    float64 `toml:"start_ms"`
	DurationMs float64 `toml:"duration_ms"`
}

// Arrangement is a parsed arrangement.toml.
type Arrangement struct {
	Timeline   Header `toml:"timeline"`
	Clips      []Clip `toml:"clip"`
	SourceFile string `toml:"-"`
}

// ZoomLevel returns the arrangement's zoom and whether it set one.
func (a *Arrangement) ZoomLevel() (zoom.Level, bool) {
	if a.Timeline.Zoom == 0 {
		return 0, false
	}
	return zoom.Level(a.Timeline.Zoom), true
}

// MediaItems converts the clips to timeline items, in file order.
func (a *Arrangement) MediaItems() []timeline.MediaItem {
	items := make([]timeline.MediaItem, 0, len(a.Clips))
	for _, c := range a.Clips {
		items = append(items, timeline.MediaItem{
			ID:         c.ID,
			Name:       c.Name,
			Kind:       timeline.Kind(c.Kind),
			StartMs:    c.StartMs,
			DurationMs: c.DurationMs,
		})
	}
	return items
}
