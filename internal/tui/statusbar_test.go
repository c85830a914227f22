package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStatusBarView(t *testing.T) {
	t.Parallel()

	t.Run("paused with timecode and zoom", func(t *testing.T) {
		t.Parallel()
		sb := StatusBar{Name: "rough cut", ElapsedMs: 61_500, Zoom: 3, Width: 100}
		view := sb.View()
		for _, want := range []string{"cutline", "paused", "rough cut", "1:01:500", "zoom", "3x"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected %q in view, got: %s", want, view)
			}
		}
	})

	t.Run("playing", func(t *testing.T) {
		t.Parallel()
		view := StatusBar{Playing: true, Zoom: 4, Width: 100}.View()
		if !strings.Contains(view, "playing") {
			t.Errorf("expected playing state, got: %s", view)
		}
	})

	t.Run("drag and clients shown when wide", func(t *testing.T) {
		t.Parallel()
		view := StatusBar{Drag: "scrub", Clients: 2, Zoom: 3, Width: 100}.View()
		if !strings.Contains(view, "scrub") || !strings.Contains(view, "2 remote") {
			t.Errorf("expected drag and client badges, got: %s", view)
		}
	})

	t.Run("narrow drops low priority segments", func(t *testing.T) {
		t.Parallel()
		sb := StatusBar{Name: "a very long timeline name indeed", Drag: "clip", Clients: 3, ElapsedMs: 2000, Zoom: 3, Width: 40}
		view := sb.View()
		if lipgloss.Width(view) > 40 {
			t.Errorf("view width %d exceeds 40: %s", lipgloss.Width(view), view)
		}
		if !strings.Contains(view, "0:02:000") {
			t.Errorf("timecode should survive narrowing, got: %s", view)
		}
		if strings.Contains(view, "remote") {
			t.Errorf("client badge should be dropped first, got: %s", view)
		}
	})
}

func TestDropSegments(t *testing.T) {
	t.Parallel()

	segs := []statusSegment{{text: "aaaa", priority: 2}, {text: "bb", priority: 0}, {text: "ccc", priority: 1}}
	got := dropSegments(segs, 8)
	if len(got) != 2 || got[0].text != "aaaa" || got[1].text != "ccc" {
		t.Errorf("dropSegments = %+v", got)
	}
	if len(segs) != 3 {
		t.Error("dropSegments modified its input")
	}
}
