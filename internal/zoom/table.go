// Package zoom holds the discrete zoom table and the time/pixel mapping
// derived from it. Every pixels-per-second computation in cutline goes
// through this package.
package zoom

import (
	"fmt"
	"math"
)

// Level selects one row of the zoom table. Higher levels show more pixels
// per second.
type Level int

// Bounds of the zoom table.
const (
	Min     Level = 1
	Max     Level = 6
	Default Level = 3
)

// Ruler extent constants. The ruler always spans at least MinTimelineSeconds
// of time but is never drawn wider than MaxRulerWidthPx.
const (
	MinTimelineSeconds = 300
	MaxRulerWidthPx    = 50000
)

// Scale is the per-level scale record.
type Scale struct {
	MajorTickSeconds float64
	PixelsPerSecond  float64
}

// table is indexed by Level. Index 0 is unused.
var table = [...]Scale{
	{},
	{MajorTickSeconds: 300, PixelsPerSecond: 5},
	{MajorTickSeconds: 60, PixelsPerSecond: 10},
	{MajorTickSeconds: 30, PixelsPerSecond: 30},
	{MajorTickSeconds: 10, PixelsPerSecond: 100},
	{MajorTickSeconds: 5, PixelsPerSecond: 200},
	{MajorTickSeconds: 1, PixelsPerSecond: 600},
}

// Valid reports whether l is a row of the zoom table.
func (l Level) Valid() bool {
	return l >= Min && l <= Max
}

// In returns the next higher level, saturating at Max.
func (l Level) In() Level {
	if l >= Max {
		return Max
	}
	if l < Min {
		return Min
	}
	return l + 1
}

// Out returns the next lower level, saturating at Min.
func (l Level) Out() Level {
	if l <= Min {
		return Min
	}
	if l > Max {
		return Max
	}
	return l - 1
}

// String renders the level as "3x".
func (l Level) String() string {
	return fmt.Sprintf("%dx", int(l))
}

// Lookup returns the scale for l, or ErrInvalidZoomLevel.
func Lookup(l Level) (Scale, error) {
	if !l.Valid() {
		return Scale{}, fmt.Errorf("zoom level %d: %w", int(l), ErrInvalidZoomLevel)
	}
	return table[l], nil
}

// Levels returns every level in ascending order.
func Levels() []Level {
	out := make([]Level, 0, int(Max-Min)+1)
	for l := Min; l <= Max; l++ {
		out = append(out, l)
	}
	return out
}

// RulerWidth returns how many pixels of ruler to draw at level l for a
// viewport of the given width: enough whole major ticks to cover
// MinTimelineSeconds, at least the viewport, capped at MaxRulerWidthPx.
func RulerWidth(l Level, viewportWidth float64) (float64, error) {
	s, err := Lookup(l)
	if err != nil {
		return 0, err
	}
	ticks := math.Ceil(MinTimelineSeconds / s.MajorTickSeconds)
	width := math.Max(viewportWidth, ticks*s.MajorTickSeconds*s.PixelsPerSecond)
	return math.Min(width, MaxRulerWidthPx), nil
}
