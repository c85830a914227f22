// Package engine is the timeline's single controller. It owns the timeline
// state, the playback clock and the drag controllers, and exposes the
// operations a host wires its input to.
//
// An Engine must be driven from one goroutine: pointer events, key events
// and frame callbacks are each processed to completion before the next.
package engine

import (
	"errors"
	"log/slog"

	"github.com/papapumpkin/cutline/internal/drag"
	"github.com/papapumpkin/cutline/internal/frame"
	"github.com/papapumpkin/cutline/internal/playback"
	"github.com/papapumpkin/cutline/internal/telemetry"
	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/viewport"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// Tuning holds the pixel parameters of playback follow-scroll and edge
// auto-scroll.
type Tuning struct {
	FollowPaddingPx float64
	EdgeThresholdPx float64
	EdgeMaxSpeedPx  float64
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		FollowPaddingPx: playback.DefaultFollowPaddingPx,
		EdgeThresholdPx: drag.DefaultEdgeThresholdPx,
		EdgeMaxSpeedPx:  drag.DefaultMaxEdgeSpeedPx,
	}
}

// Recorder receives engine events. *telemetry.Emitter satisfies it.
type Recorder interface {
	Emit(evt telemetry.Event) error
}

// pointerTarget is whichever controller holds pointer capture.
type pointerTarget int

const (
	captureNone pointerTarget = iota
	capturePlayhead
	captureClip
)

// Engine wires the timeline components together.
type Engine struct {
	state    *timeline.State
	clock    *playback.Clock
	playhead *drag.Playhead
	placer   *drag.Placer
	logger   *slog.Logger
	recorder Recorder
	tuning   Tuning

	capture pointerTarget
	// resume is set when a scrub paused running playback.
	resume bool
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder sets the telemetry recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithTuning overrides the default scroll tuning.
func WithTuning(t Tuning) Option {
	return func(e *Engine) { e.tuning = t }
}

// New creates an engine at the given zoom, scheduling frames on sched and
// measuring view. An invalid zoom falls back to zoom.Default.
func New(z zoom.Level, sched frame.Scheduler, view viewport.Geometry, opts ...Option) *Engine {
	e := &Engine{
		logger: slog.New(slog.DiscardHandler),
		tuning: DefaultTuning(),
	}
	for _, o := range opts {
		o(e)
	}
	if !z.Valid() {
		e.logger.Warn("invalid initial zoom, using default", "zoom", int(z), "default", int(zoom.Default))
	}

	e.state = timeline.New(z)
	e.clock = playback.New(e.state, sched,
		playback.WithViewport(view),
		playback.WithLogger(e.logger.With("component", "playback")),
		playback.WithFollowPadding(e.tuning.FollowPaddingPx),
	)
	dragOpts := []drag.Option{
		drag.WithLogger(e.logger.With("component", "drag")),
		drag.WithEdgeScroll(drag.EdgeScroll{
			ThresholdPx: e.tuning.EdgeThresholdPx,
			MaxSpeedPx:  e.tuning.EdgeMaxSpeedPx,
		}),
	}
	e.playhead = drag.NewPlayhead(e.state, sched, view, dragOpts...)
	e.placer = drag.NewPlacer(e.state, view, dragOpts...)
	return e
}

// Snapshot returns a copy of the timeline state for rendering.
func (e *Engine) Snapshot() timeline.Snapshot {
	return e.state.Snapshot()
}

// Version returns the state version; it changes on every write.
func (e *Engine) Version() uint64 {
	return e.state.Version()
}

// PlaybackStatus reports whether the clock is currently advancing.
func (e *Engine) PlaybackStatus() playback.Status {
	return e.clock.Status()
}

// SetZoom changes the zoom level and re-derives the playhead from elapsed
// time. An invalid level is rejected and the prior zoom kept.
func (e *Engine) SetZoom(z zoom.Level) error {
	if e.closed {
		return nil
	}
	prev := e.state.Zoom()
	if err := e.state.SetZoom(z); err != nil {
		e.logger.Info("zoom change rejected", "zoom", int(z), "error", err)
		return err
	}
	e.state.Reconcile()
	if prev != z {
		e.record(telemetry.KindZoomChange, "", map[string]any{"from": int(prev), "to": int(z)})
	}
	return nil
}

// ZoomIn steps one level in, saturating at zoom.Max.
func (e *Engine) ZoomIn() error {
	return e.SetZoom(e.state.Zoom().In())
}

// ZoomOut steps one level out, saturating at zoom.Min.
func (e *Engine) ZoomOut() error {
	return e.SetZoom(e.state.Zoom().Out())
}

// SetPlay starts or stops playback. While the playhead is being dragged the
// request is recorded and the clock starts when the drag ends.
func (e *Engine) SetPlay(play bool) {
	if e.closed {
		return
	}
	was := e.state.Play()
	e.state.SetPlay(play)
	switch {
	case play && e.capture == capturePlayhead:
		e.resume = true
	case play:
		e.clock.Start()
	default:
		e.resume = false
		e.clock.Stop()
	}
	if was == play {
		return
	}
	kind := telemetry.KindPlayStop
	if play {
		kind = telemetry.KindPlayStart
	}
	e.record(kind, "", map[string]any{"elapsed_ms": e.state.ElapsedMs()})
}

// TogglePlay flips the play flag.
func (e *Engine) TogglePlay() {
	e.SetPlay(!e.state.Play())
}

// Seek jumps to ms (clamped at 0) and derives the playhead.
func (e *Engine) Seek(ms float64) {
	if e.closed {
		return
	}
	e.state.Seek(ms)
	e.record(telemetry.KindSeek, "", map[string]any{"elapsed_ms": e.state.ElapsedMs()})
}

// LoadMediaItems replaces the clips on the timeline. A clip drag whose clip
// disappears fails at release without touching state.
func (e *Engine) LoadMediaItems(items []timeline.MediaItem) {
	if e.closed {
		return
	}
	e.state.SetMediaItems(items)
}

// ReloadMediaItems replaces the clips after the arrangement at source
// changed on disk. A clip drag in progress is abandoned.
func (e *Engine) ReloadMediaItems(items []timeline.MediaItem, source string) {
	if e.closed {
		return
	}
	if e.capture == captureClip {
		e.releaseCapture()
	}
	e.state.SetMediaItems(items)
	e.logger.Info("arrangement reloaded", "source", source, "clips", len(items))
	e.record(telemetry.KindArrangementReload, "", map[string]any{"source": source, "clips": len(items)})
}

// BeginPlayheadDrag captures the pointer for scrubbing. Running playback is
// held until the drag ends.
func (e *Engine) BeginPlayheadDrag(ev drag.Pointer) {
	if e.closed {
		return
	}
	e.releaseCapture()
	if e.clock.Status() == playback.Running {
		e.clock.Stop()
		e.resume = true
	}
	e.playhead.Begin(ev)
	e.capture = capturePlayhead
}

// BeginClipDrag captures the pointer for moving clip id.
func (e *Engine) BeginClipDrag(id string, ev drag.Pointer) error {
	if e.closed {
		return nil
	}
	e.releaseCapture()
	if err := e.placer.Begin(id, ev); err != nil {
		if errors.Is(err, viewport.ErrNotMounted) {
			e.logger.Debug("clip drag ignored", "clip", id, "reason", err)
		}
		return err
	}
	e.capture = captureClip
	return nil
}

// Dragging reports whether any controller holds pointer capture.
func (e *Engine) Dragging() bool {
	return e.capture != captureNone
}

// ScrubVelocity returns the playhead's current edge auto-scroll velocity.
func (e *Engine) ScrubVelocity() float64 {
	return e.playhead.Velocity()
}

// ClipPreview returns the clip being dragged and its transient left edge in
// content pixels.
func (e *Engine) ClipPreview() (id string, leftPx float64, ok bool) {
	return e.placer.Preview()
}

// PointerMove routes a pointer move to the capturing controller. Moves with
// no capture are ignored.
func (e *Engine) PointerMove(ev drag.Pointer) {
	var err error
	switch e.capture {
	case capturePlayhead:
		err = e.playhead.Move(ev)
	case captureClip:
		err = e.placer.Move(ev)
	default:
		return
	}
	if err != nil {
		e.logger.Debug("pointer move dropped", "error", err)
	}
}

// PointerUp ends the captured drag and releases capture.
func (e *Engine) PointerUp(ev drag.Pointer) {
	switch e.capture {
	case capturePlayhead:
		e.capture = captureNone
		s, err := e.playhead.End(ev)
		if err != nil {
			e.logger.Debug("pointer up dropped", "error", err)
			return
		}
		e.record(telemetry.KindScrubEnd, "", map[string]any{
			"from_ms": s.OriginValue,
			"to_ms":   e.state.ElapsedMs(),
		})
		e.resumePlayback()
	case captureClip:
		e.capture = captureNone
		item, err := e.placer.End(ev)
		if err != nil {
			e.logger.Info("clip commit dropped", "error", err)
			return
		}
		e.record(telemetry.KindClipCommit, item.ID, map[string]any{
			"start_ms":    item.StartMs,
			"duration_ms": item.DurationMs,
		})
	}
}

// CancelDrag abandons the current drag. A scrub keeps the position it
// reached; a clip drag is discarded without commit.
func (e *Engine) CancelDrag() {
	e.releaseCapture()
}

// Close stops playback and tears down every drag and scheduled callback.
// The engine ignores input afterwards.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.playhead.Close()
	e.placer.Cancel()
	e.clock.Close()
	e.capture = captureNone
	e.resume = false
	e.closed = true
}

func (e *Engine) releaseCapture() {
	switch e.capture {
	case capturePlayhead:
		e.playhead.Close()
		e.resumePlayback()
	case captureClip:
		e.placer.Cancel()
	}
	e.capture = captureNone
}

func (e *Engine) resumePlayback() {
	if !e.resume {
		return
	}
	e.resume = false
	if e.state.Play() {
		e.clock.Start()
	}
}

func (e *Engine) record(kind, clipID string, data map[string]any) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Emit(telemetry.Event{Kind: kind, ClipID: clipID, Data: data}); err != nil {
		e.logger.Warn("telemetry emit failed", "kind", kind, "error", err)
	}
}
