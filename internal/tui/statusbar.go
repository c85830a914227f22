package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/cutline/internal/timecode"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// StatusBar renders the persistent top bar with timeline name, playback
// state, timecode and zoom.
type StatusBar struct {
	Name      string
	Playing   bool
	ElapsedMs float64
	Zoom      zoom.Level
	Drag      string // "scrub", "clip" or empty
	Clients   int    // connected remote clients
	Width     int
}

// statusSegment represents a styled segment of the status bar with a drop priority.
// Lower priority values are dropped first when the terminal is too narrow.
type statusSegment struct {
	text     string
	priority int
}

// View renders the status bar as a single line.
// Adapts to narrow terminals by truncating the name and dropping low-priority
// segments (clients → drag → zoom) to guarantee single-line rendering.
func (s StatusBar) View() string {
	compact := s.Width < CompactWidth

	// The outer styleStatusBar applies Padding(0,1), consuming 2 columns.
	const barPadding = 2
	innerWidth := max(s.Width-barPadding, 0)

	barBg := lipgloss.NewStyle().Background(colorSurface)
	segments := s.buildRightSegments(compact)
	prefix := styleStatusLabel.Render("cutline") + barBg.Render("  ") + s.renderPlayState(compact) + barBg.Render("  ")
	prefixWidth := lipgloss.Width(prefix)

	const minGap = 1
	if prefixWidth+totalWidth(segments)+minGap > innerWidth {
		segments = dropSegments(segments, innerWidth-prefixWidth-minGap)
	}
	right := joinSegments(segments)
	rightWidth := lipgloss.Width(right)

	name := TruncateWithEllipsis(s.Name, innerWidth-prefixWidth-rightWidth-minGap)
	left := prefix + styleStatusValue.Render(name)
	leftWidth := lipgloss.Width(left)

	gap := max(innerWidth-leftWidth-rightWidth, 1)
	line := left + barBg.Render(strings.Repeat(" ", gap)) + right
	return styleStatusBar.Width(s.Width).MaxHeight(1).Render(line)
}

func (s StatusBar) renderPlayState(compact bool) string {
	icon, label, style := "⏸", "paused", styleStatusValue
	if s.Playing {
		icon, label, style = "▶", "playing", styleStatusPlaying
	}
	if compact {
		return style.Render(icon)
	}
	return style.Render(icon + " " + label)
}

// buildRightSegments assembles the right-side segments in display order.
func (s StatusBar) buildRightSegments(compact bool) []statusSegment {
	barBg := lipgloss.NewStyle().Background(colorSurface)
	var segments []statusSegment

	if s.Clients > 0 {
		label := "remote"
		if !compact {
			label = fmt.Sprintf("%d remote", s.Clients)
		}
		segments = append(segments, statusSegment{
			text:     styleStatusLabel.Render(label) + barBg.Render("  "),
			priority: 0,
		})
	}
	if s.Drag != "" {
		segments = append(segments, statusSegment{
			text:     styleStatusDrag.Render(s.Drag) + barBg.Render("  "),
			priority: 1,
		})
	}
	segments = append(segments, statusSegment{
		text:     styleStatusLabel.Render("zoom ") + styleStatusValue.Render(s.Zoom.String()) + barBg.Render("  "),
		priority: 2,
	})
	segments = append(segments, statusSegment{
		text:     styleStatusValue.Render(timecode.Format(s.ElapsedMs)),
		priority: 3,
	})
	return segments
}

// joinSegments concatenates segment texts with a trailing styled space.
func joinSegments(segments []statusSegment) string {
	barBg := lipgloss.NewStyle().Background(colorSurface)
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.text)
	}
	b.WriteString(barBg.Render(" "))
	return b.String()
}

// dropSegments removes lowest-priority segments until the combined width fits within maxWidth.
func dropSegments(segments []statusSegment, maxWidth int) []statusSegment {
	result := make([]statusSegment, len(segments))
	copy(result, segments)

	for totalWidth(result) > maxWidth && len(result) > 0 {
		minIdx := 0
		minPri := result[0].priority
		for i, seg := range result {
			if seg.priority < minPri {
				minPri = seg.priority
				minIdx = i
			}
		}
		result = append(result[:minIdx], result[minIdx+1:]...)
	}
	return result
}

// totalWidth computes the rendered width of all segments plus trailing space.
func totalWidth(segments []statusSegment) int {
	w := 1 // trailing space from joinSegments
	for _, seg := range segments {
		w += lipgloss.Width(seg.text)
	}
	return w
}
