// Package playback advances the timeline's elapsed time from frame
// timestamps while playback is running.
package playback

import (
	"errors"
	"log/slog"

	"github.com/papapumpkin/cutline/internal/frame"
	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/viewport"
)

// DefaultFollowPaddingPx is the distance from a visible edge at which the
// clock scrolls the viewport to keep the playhead in view.
const DefaultFollowPaddingPx = 50

// Status is the clock's state machine position.
type Status int

const (
	Stopped Status = iota
	Running
)

// String implements fmt.Stringer.
func (s Status) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Clock drives elapsed time forward once per frame.
//
// Each Start opens a new generation. A callback carries the generation it
// was scheduled under and does nothing once that generation has ended, so a
// frame delivered after Stop is harmless even if the host failed to cancel it.
type Clock struct {
	state  *timeline.State
	sched  frame.Scheduler
	view   viewport.Geometry
	logger *slog.Logger

	followPadding float64

	status Status
	handle frame.Handle
	gen    uint64
	lastMs float64
	seeded bool
}

// Option configures a Clock.
type Option func(*Clock)

// WithViewport enables follow-scrolling against g.
func WithViewport(g viewport.Geometry) Option {
	return func(c *Clock) { c.view = g }
}

// WithLogger sets the logger. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Clock) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFollowPadding sets the follow-scroll edge padding in pixels.
func WithFollowPadding(px float64) Option {
	return func(c *Clock) {
		if px >= 0 {
			c.followPadding = px
		}
	}
}

// New creates a stopped clock that writes to state and schedules on sched.
func New(state *timeline.State, sched frame.Scheduler, opts ...Option) *Clock {
	c := &Clock{
		state:         state,
		sched:         sched,
		logger:        slog.New(slog.DiscardHandler),
		followPadding: DefaultFollowPaddingPx,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Status returns the current state machine position.
func (c *Clock) Status() Status { return c.status }

// Start moves Stopped to Running and requests the first frame. The first
// frame only records its timestamp. Start on a running clock does nothing.
func (c *Clock) Start() {
	if c.status == Running {
		return
	}
	c.gen++
	c.status = Running
	c.seeded = false
	c.handle = c.sched.Request(c.frameFunc(c.gen))
	c.logger.Debug("playback started", "elapsed_ms", c.state.ElapsedMs())
}

// Stop moves Running to Stopped, cancels the pending frame and forgets the
// last timestamp. Elapsed time is kept.
func (c *Clock) Stop() {
	if c.status != Running {
		return
	}
	c.sched.Cancel(c.handle)
	c.handle = 0
	c.gen++
	c.status = Stopped
	c.seeded = false
	c.logger.Debug("playback stopped", "elapsed_ms", c.state.ElapsedMs())
}

// Close tears the clock down. It is equivalent to Stop.
func (c *Clock) Close() {
	c.Stop()
}

func (c *Clock) frameFunc(gen uint64) frame.Callback {
	return func(nowMs float64) {
		if gen != c.gen || c.status != Running {
			return
		}
		c.tick(nowMs)
		c.handle = c.sched.Request(c.frameFunc(gen))
	}
}

func (c *Clock) tick(nowMs float64) {
	if !c.seeded {
		c.lastMs = nowMs
		c.seeded = true
		return
	}
	delta := nowMs - c.lastMs
	c.lastMs = nowMs
	if delta < 0 {
		delta = 0
	}

	c.state.UpdateElapsedMs(func(prev float64) float64 { return prev + delta })
	// Position is recomputed from elapsed time at whatever zoom is current,
	// never advanced by a per-frame pixel step.
	c.state.Reconcile()
	c.follow(c.state.PlayheadPx())
}

// follow scrolls the viewport when the playhead comes within followPadding
// of either visible edge.
func (c *Clock) follow(pos float64) {
	if c.view == nil {
		return
	}
	rect, err := c.view.Bounds()
	if err != nil {
		c.skip(err)
		return
	}
	scroll, err := c.view.ScrollOffset()
	if err != nil {
		c.skip(err)
		return
	}
	content, err := c.view.ContentWidth()
	if err != nil {
		c.skip(err)
		return
	}

	pad := c.followPadding
	if pad > rect.Width/2 {
		pad = rect.Width / 2
	}

	target := scroll
	switch {
	case pos > scroll+rect.Width-pad:
		target = pos - rect.Width + pad
	case pos < scroll+pad:
		target = pos - pad
	default:
		return
	}
	target = viewport.Clamp(target, 0, content-rect.Width)
	if target == scroll {
		return
	}
	if err := c.view.SetScrollOffset(target); err != nil {
		c.skip(err)
	}
}

func (c *Clock) skip(err error) {
	if errors.Is(err, viewport.ErrNotMounted) {
		c.logger.Debug("follow scroll skipped", "reason", err)
		return
	}
	c.logger.Warn("follow scroll failed", "error", err)
}
