package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/papapumpkin/cutline/internal/timeline"
)

// View renders the full TUI.
func (m AppModel) View() string {
	if m.Width < MinWidth || m.Height < MinHeight {
		return fmt.Sprintf("terminal too small (%dx%d); need %dx%d", m.Width, m.Height, MinWidth, MinHeight)
	}
	snap := m.Engine.Snapshot()
	scroll, _ := m.Pane.ScrollOffset()

	sb := m.StatusBar
	sb.Playing = snap.Play
	sb.ElapsedMs = snap.ElapsedMs
	sb.Zoom = snap.Zoom
	sb.Drag = m.dragLabel()
	if m.Publisher != nil {
		sb.Clients = m.Publisher.Clients()
	}

	rows := m.timelineRows(snap, scroll)
	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, sb.View())
	for _, r := range rows {
		lines = append(lines, r.render())
	}
	lines = append(lines, m.messageLine())

	bindings := TimelineFooterBindings(m.Keys)
	if m.Engine.Dragging() {
		bindings = DragFooterBindings(m.Keys)
	}
	body := strings.Join(lines, "\n")
	footer := Footer{Width: m.Width, Bindings: bindings}.View()
	if gap := m.Height - strings.Count(body, "\n") - 1 - 2; gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + footer
}

// timelineRows draws the ruler and both tracks with the playhead on top.
func (m AppModel) timelineRows(snap timeline.Snapshot, scroll float64) []line {
	id, left, ok := m.Engine.ClipPreview()
	pv := preview{id: id, leftPx: left, ok: ok}
	dragging := ""
	if ok {
		dragging = id
	}

	rows := []line{renderRuler(m.Width, scroll, snap.Zoom)}
	rows = append(rows, renderTrack(m.Width, scroll, layoutClips(snap.Items, timeline.KindVideo, snap.Zoom, pv), cellVideo, dragging)...)
	rows = append(rows, renderTrack(m.Width, scroll, layoutClips(snap.Items, timeline.KindAudio, snap.Zoom, pv), cellAudio, dragging)...)

	col := int(math.Round(snap.PlayheadPx - scroll))
	rows[0].put(col, '▼', cellPlayhead)
	for _, r := range rows[1:] {
		r.put(col, '│', cellPlayhead)
	}
	return rows
}

func (m AppModel) dragLabel() string {
	if !m.Engine.Dragging() {
		return ""
	}
	if _, _, ok := m.Engine.ClipPreview(); ok {
		return "clip"
	}
	return "scrub"
}

func (m AppModel) messageLine() string {
	if m.Message == "" {
		return ""
	}
	msg := TruncateWithEllipsis(m.Message, m.Width)
	if m.MessageErr {
		return styleMessageError.Render(msg)
	}
	return styleMessage.Render(msg)
}
