package drag

import "github.com/papapumpkin/cutline/internal/viewport"

// Edge auto-scroll defaults, in pixels and pixels per frame.
const (
	DefaultEdgeThresholdPx = 48
	DefaultMaxEdgeSpeedPx  = 24
)

// EdgeScroll maps pointer proximity to a visible edge onto a scroll
// velocity in pixels per frame.
type EdgeScroll struct {
	ThresholdPx float64
	MaxSpeedPx  float64
}

// DefaultEdgeScroll returns the default easing parameters.
func DefaultEdgeScroll() EdgeScroll {
	return EdgeScroll{ThresholdPx: DefaultEdgeThresholdPx, MaxSpeedPx: DefaultMaxEdgeSpeedPx}
}

// Velocity returns the scroll velocity for a pointer at clientX inside
// bounds. It is 0 outside the threshold band, negative near the left edge,
// positive near the right edge, and grows quadratically to MaxSpeedPx as
// the pointer reaches (or passes) the edge.
func (e EdgeScroll) Velocity(clientX float64, bounds viewport.Rect) float64 {
	if e.ThresholdPx <= 0 || e.MaxSpeedPx <= 0 {
		return 0
	}
	if d := clientX - bounds.Left; d < e.ThresholdPx {
		return -e.ease(d)
	}
	if d := bounds.Right() - clientX; d < e.ThresholdPx {
		return e.ease(d)
	}
	return 0
}

func (e EdgeScroll) ease(dist float64) float64 {
	ratio := viewport.Clamp((e.ThresholdPx-dist)/e.ThresholdPx, 0, 1)
	return e.MaxSpeedPx * ratio * ratio
}
