package tui

import "github.com/mattn/go-runewidth"

// Minimum terminal dimensions for usable rendering.
const (
	MinWidth  = 40
	MinHeight = 10
)

// CompactWidth triggers compact mode for the status bar and footer.
const CompactWidth = 60

// Screen rows. Each track is trackHeight rows tall.
const (
	rowStatus   = 0
	rowRuler    = 1
	trackHeight = 2
	rowVideo    = rowRuler + 1
	rowAudio    = rowVideo + trackHeight
	rowMessage  = rowAudio + trackHeight
)

// trackAt returns the track kind drawn at screen row y.
func trackAt(y int) (video, audio bool) {
	switch {
	case y >= rowVideo && y < rowVideo+trackHeight:
		return true, false
	case y >= rowAudio && y < rowAudio+trackHeight:
		return false, true
	}
	return false, false
}

// TruncateWithEllipsis truncates s to maxWidth terminal columns, appending
// "…" when cut. East Asian wide runes count as two columns.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return runewidth.Truncate(s, 1, "")
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
