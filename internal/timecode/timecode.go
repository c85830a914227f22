// Package timecode renders timeline times for the status bar and ruler.
package timecode

import (
	"fmt"
	"math"
)

// LabelMinGapPx is the narrowest major tick gap that still gets a text
// label on the ruler.
const LabelMinGapPx = 60

// Format renders ms as m:ss:mmm. Negative and NaN inputs render as zero.
func Format(ms float64) string {
	if math.IsNaN(ms) || ms < 0 {
		ms = 0
	}
	total := int64(math.Round(ms))
	minutes := total / 60000
	seconds := (total % 60000) / 1000
	millis := total % 1000
	return fmt.Sprintf("%d:%02d:%03d", minutes, seconds, millis)
}

// TickLabel renders the ruler label for a major tick at totalSeconds. Coarse
// rulers (major ticks of a minute or more) show MM:SS; finer ones add
// milliseconds as MM:SS:mmm.
func TickLabel(totalSeconds, majorTickSeconds float64) string {
	if math.IsNaN(totalSeconds) || totalSeconds < 0 {
		totalSeconds = 0
	}
	minutes := int64(totalSeconds / 60)
	seconds := int64(math.Mod(totalSeconds, 60))
	if majorTickSeconds >= 60 {
		return fmt.Sprintf("%02d:%02d", minutes, seconds)
	}
	millis := int64(math.Round(math.Mod(totalSeconds, 1) * 1000))
	if millis >= 1000 {
		millis = 999
	}
	return fmt.Sprintf("%02d:%02d:%03d", minutes, seconds, millis)
}

// ShowLabels reports whether ticks gapPx apart leave room for labels.
func ShowLabels(gapPx float64) bool {
	return gapPx >= LabelMinGapPx
}
