package tui

import (
	"math"

	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// clipSpan is a clip's horizontal extent in content pixels.
type clipSpan struct {
	item  timeline.MediaItem
	left  float64
	right float64
}

// preview is the clip currently being dragged and its transient left edge.
type preview struct {
	id     string
	leftPx float64
	ok     bool
}

// layoutClips places every clip of kind in content pixels, substituting
// the drag preview position for the clip being dragged.
func layoutClips(items []timeline.MediaItem, kind timeline.Kind, level zoom.Level, pv preview) []clipSpan {
	var spans []clipSpan
	for _, it := range items {
		if it.Kind != kind {
			continue
		}
		left, err := zoom.ToPixels(it.StartMs, level)
		if err != nil {
			continue
		}
		width, _ := zoom.ToPixels(it.DurationMs, level)
		if pv.ok && pv.id == it.ID {
			left = pv.leftPx
		}
		spans = append(spans, clipSpan{item: it, left: left, right: left + width})
	}
	return spans
}

// clipAt returns the topmost clip under content pixel x. Later clips are
// drawn over earlier ones.
func clipAt(spans []clipSpan, x float64) (timeline.MediaItem, bool) {
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		if x >= s.left && x < max(s.right, s.left+1) {
			return s.item, true
		}
	}
	return timeline.MediaItem{}, false
}

// renderTrack draws trackHeight rows of clips for the visible window. The
// first row carries the clip name.
func renderTrack(width int, scroll float64, spans []clipSpan, style cellStyle, draggingID string) []line {
	rows := make([]line, trackHeight)
	for i := range rows {
		rows[i] = newLine(width)
	}
	for _, s := range spans {
		from := int(math.Floor(s.left - scroll))
		to := int(math.Ceil(s.right - scroll))
		if to <= from {
			to = from + 1
		}
		if to <= 0 || from >= width {
			continue
		}
		st := style
		if s.item.ID == draggingID {
			st = cellDragging
		}
		for _, r := range rows {
			r.fill(from, to, ' ', st)
		}
		name := s.item.Name
		if name == "" {
			name = s.item.ID
		}
		start := max(from, 0) + 1
		end := min(to, width)
		rows[0].text(start, end, TruncateWithEllipsis(name, end-start), st)
	}
	return rows
}
