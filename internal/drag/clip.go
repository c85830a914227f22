package drag

import (
	"fmt"
	"log/slog"

	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/viewport"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// Placer repositions a media clip. During the drag only a preview offset
// changes; the clip's start time is written once, on release.
//
// Placement is free: clips may overlap their neighbours and nothing snaps.
type Placer struct {
	state  *timeline.State
	view   viewport.Geometry
	logger *slog.Logger

	session *Session
	// grabPx is the pointer's distance from the clip's left edge, in content pixels.
	grabPx    float64
	previewPx float64
}

// NewPlacer creates an idle clip placer.
func NewPlacer(state *timeline.State, view viewport.Geometry, opts ...Option) *Placer {
	o := buildOptions(opts)
	return &Placer{
		state:  state,
		view:   view,
		logger: o.logger,
	}
}

// Dragging reports whether a clip drag is in progress.
func (p *Placer) Dragging() bool { return p.session != nil }

// Preview returns the dragged clip's id and its transient left edge in
// content pixels.
func (p *Placer) Preview() (id string, leftPx float64, ok bool) {
	if p.session == nil {
		return "", 0, false
	}
	return p.session.ClipID, p.previewPx, true
}

// Begin starts dragging clip id from ev. It fails with ErrUnknownClip for an
// id not on the timeline and with viewport.ErrNotMounted before mount.
func (p *Placer) Begin(id string, ev Pointer) error {
	item, ok := p.state.MediaItem(id)
	if !ok {
		return fmt.Errorf("clip %q: %w", id, ErrUnknownClip)
	}
	x, err := p.contentX(ev.ClientX)
	if err != nil {
		return err
	}
	left, err := zoom.ToPixels(item.StartMs, p.state.Zoom())
	if err != nil {
		return err
	}
	p.grabPx = x - left
	p.previewPx = left
	p.session = &Session{
		Target:        TargetClip,
		ClipID:        id,
		OriginClientX: ev.ClientX,
		OriginValue:   item.StartMs,
		LastClientX:   ev.ClientX,
	}
	return nil
}

// Move updates the preview position. State is not touched.
func (p *Placer) Move(ev Pointer) error {
	if p.session == nil {
		return ErrNotDragging
	}
	p.session.LastClientX = ev.ClientX
	x, err := p.contentX(ev.ClientX)
	if err != nil {
		p.logger.Debug("clip preview deferred", "reason", err)
		return nil
	}
	p.previewPx = x - p.grabPx
	return nil
}

// End commits the new start time for the dragged clip and returns the
// updated item. Negative starts clamp to 0.
func (p *Placer) End(ev Pointer) (timeline.MediaItem, error) {
	if p.session == nil {
		return timeline.MediaItem{}, ErrNotDragging
	}
	id := p.session.ClipID
	defer p.Cancel()

	left := p.previewPx
	if x, err := p.contentX(ev.ClientX); err == nil {
		left = x - p.grabPx
	} else {
		p.logger.Debug("clip release measured from last preview", "reason", err)
	}

	startMs, err := zoom.ToTimeMs(left, p.state.Zoom())
	if err != nil {
		return timeline.MediaItem{}, err
	}
	if startMs < 0 {
		p.logger.Debug("negative position clamped", "clip", id, "start_ms", startMs)
		startMs = 0
	}
	if !p.state.ReplaceStart(id, startMs) {
		return timeline.MediaItem{}, fmt.Errorf("clip %q: %w", id, ErrUnknownClip)
	}
	item, _ := p.state.MediaItem(id)
	return item, nil
}

// Cancel abandons the drag without committing.
func (p *Placer) Cancel() {
	p.session = nil
	p.grabPx = 0
	p.previewPx = 0
}

func (p *Placer) contentX(clientX float64) (float64, error) {
	rect, err := p.view.Bounds()
	if err != nil {
		return 0, err
	}
	scroll, err := p.view.ScrollOffset()
	if err != nil {
		return 0, err
	}
	return clientX - rect.Left + scroll, nil
}
