package tui

import (
	"math"

	"github.com/papapumpkin/cutline/internal/timecode"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// minorTicks is the number of minor divisions per major tick.
const minorTicks = 10

// renderRuler draws the time ruler for the visible window starting at
// content pixel scroll. Major ticks carry a time label when they are far
// enough apart.
func renderRuler(width int, scroll float64, level zoom.Level) line {
	l := newLine(width)
	tickPx, err := zoom.MajorTickPx(level)
	if err != nil {
		return l
	}
	majorSec, _ := zoom.TickSeconds(1, level)
	majorPx := max(int(math.Round(tickPx)), 1)
	minorPx := max(majorPx/minorTicks, 1)
	origin := int(math.Floor(scroll))

	var majors []int
	for col := range width {
		x := origin + col
		switch {
		case x%majorPx == 0:
			l.put(col, '│', cellTick)
			majors = append(majors, col)
		case x%minorPx == 0:
			l.put(col, '╵', cellTick)
		}
	}

	if !timecode.ShowLabels(float64(majorPx)) {
		return l
	}
	for _, col := range majors {
		at, _ := zoom.TickSeconds((origin+col)/majorPx, level)
		label := timecode.TickLabel(at, majorSec)
		l.text(col+1, width, label, cellLabel)
	}
	return l
}
