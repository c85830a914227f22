package drag

import (
	"errors"
	"log/slog"

	"github.com/papapumpkin/cutline/internal/frame"
	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/viewport"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// Playhead scrubs the playhead from pointer input. It is Idle until Begin
// and Dragging until End or Close.
//
// While the pointer sits in an edge band the controller runs its own
// per-frame auto-scroll tick. The tick reads the current velocity every
// frame instead of being restarted by pointer moves, so the scroll speed
// does not depend on how often the input device reports motion.
type Playhead struct {
	state  *timeline.State
	sched  frame.Scheduler
	view   viewport.Geometry
	logger *slog.Logger
	edge   EdgeScroll

	session   *Session
	velocity  float64
	scrolling bool
	handle    frame.Handle
	// gen ends with every drag; auto-scroll frames from an ended drag are ignored.
	gen uint64
}

// NewPlayhead creates an idle playhead controller.
func NewPlayhead(state *timeline.State, sched frame.Scheduler, view viewport.Geometry, opts ...Option) *Playhead {
	o := buildOptions(opts)
	return &Playhead{
		state:  state,
		sched:  sched,
		view:   view,
		logger: o.logger,
		edge:   o.edge,
	}
}

// Dragging reports whether a drag is in progress.
func (p *Playhead) Dragging() bool { return p.session != nil }

// Velocity returns the current edge auto-scroll velocity in pixels per frame.
func (p *Playhead) Velocity() float64 { return p.velocity }

// AutoScrolling reports whether the auto-scroll tick is scheduled.
func (p *Playhead) AutoScrolling() bool { return p.scrolling }

// Begin starts a drag at ev. A drag already in progress is ended first.
// Begin does not move the playhead; the first Move does.
func (p *Playhead) Begin(ev Pointer) {
	if p.session != nil {
		p.teardown()
	}
	p.session = &Session{
		Target:        TargetPlayhead,
		OriginClientX: ev.ClientX,
		OriginValue:   p.state.ElapsedMs(),
		LastClientX:   ev.ClientX,
	}
}

// Move scrubs to ev and updates the edge auto-scroll velocity.
func (p *Playhead) Move(ev Pointer) error {
	if p.session == nil {
		return ErrNotDragging
	}
	p.session.LastClientX = ev.ClientX

	rect, ok := p.scrubTo(ev.ClientX)
	if !ok {
		p.velocity = 0
		return nil
	}
	p.velocity = p.edge.Velocity(ev.ClientX, rect)
	if p.velocity != 0 {
		p.ensureAutoScroll()
	}
	return nil
}

// End finishes the drag and returns its session.
func (p *Playhead) End(ev Pointer) (Session, error) {
	if p.session == nil {
		return Session{}, ErrNotDragging
	}
	p.session.LastClientX = ev.ClientX
	s := *p.session
	p.teardown()
	return s, nil
}

// Close ends any drag in progress without further state changes.
func (p *Playhead) Close() {
	if p.session != nil {
		p.teardown()
	}
}

func (p *Playhead) teardown() {
	p.velocity = 0
	if p.scrolling {
		p.sched.Cancel(p.handle)
	}
	p.scrolling = false
	p.handle = 0
	p.gen++
	p.session = nil
}

// scrubTo moves elapsed time and playhead to the content position under
// clientX. It reports false when the viewport cannot be measured.
func (p *Playhead) scrubTo(clientX float64) (viewport.Rect, bool) {
	rect, err := p.view.Bounds()
	if err != nil {
		p.skip(err)
		return viewport.Rect{}, false
	}
	scroll, err := p.view.ScrollOffset()
	if err != nil {
		p.skip(err)
		return viewport.Rect{}, false
	}

	contentPx := clientX - rect.Left + scroll
	if contentPx < 0 {
		p.logger.Debug("negative position clamped", "content_px", contentPx)
		contentPx = 0
	}
	ms, err := zoom.ToTimeMs(contentPx, p.state.Zoom())
	if err != nil {
		p.logger.Warn("scrub skipped", "error", err)
		return rect, false
	}
	p.state.SetElapsedMs(ms)
	p.state.SetPlayheadPx(contentPx)
	return rect, true
}

func (p *Playhead) ensureAutoScroll() {
	if p.scrolling {
		return
	}
	p.scrolling = true
	p.handle = p.sched.Request(p.autoScrollFunc(p.gen))
}

func (p *Playhead) autoScrollFunc(gen uint64) frame.Callback {
	return func(float64) {
		if gen != p.gen || p.session == nil {
			return
		}
		if p.velocity == 0 {
			p.scrolling = false
			p.handle = 0
			return
		}
		p.autoScroll()
		p.handle = p.sched.Request(p.autoScrollFunc(gen))
	}
}

// autoScroll advances the scroll offset by the current velocity and
// re-derives the playhead from the last pointer position, so the playhead
// keeps moving while the pointer rests at the edge.
func (p *Playhead) autoScroll() {
	rect, err := p.view.Bounds()
	if err != nil {
		p.skip(err)
		return
	}
	scroll, err := p.view.ScrollOffset()
	if err != nil {
		p.skip(err)
		return
	}
	content, err := p.view.ContentWidth()
	if err != nil {
		p.skip(err)
		return
	}
	next := viewport.Clamp(scroll+p.velocity, 0, content-rect.Width)
	if err := p.view.SetScrollOffset(next); err != nil {
		p.skip(err)
		return
	}
	p.scrubTo(p.session.LastClientX)
}

func (p *Playhead) skip(err error) {
	if errors.Is(err, viewport.ErrNotMounted) {
		p.logger.Debug("scrub deferred", "reason", err)
		return
	}
	p.logger.Warn("scrub failed", "error", err)
}
