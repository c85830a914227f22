package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/cutline/internal/arrangement"
	"github.com/papapumpkin/cutline/internal/drag"
	"github.com/papapumpkin/cutline/internal/engine"
	"github.com/papapumpkin/cutline/internal/frame"
	"github.com/papapumpkin/cutline/internal/playback"
	"github.com/papapumpkin/cutline/internal/remote"
	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/viewport"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

// scrollStep is how far one key press or wheel notch scrolls, in columns.
const scrollStep = 8

// Publisher receives state after every change. *remote.Server satisfies it.
type Publisher interface {
	Publish(remote.State)
	Clients() int
}

// AppModel is the root BubbleTea model. It hosts the engine, drives the
// frame queue from tea.Tick, and translates mouse and key input into
// engine operations. All engine calls happen on the BubbleTea goroutine.
type AppModel struct {
	Engine     *engine.Engine
	Queue      *frame.Queue
	Pane       *viewport.Pane
	StatusBar  StatusBar
	Keys       KeyMap
	Width      int
	Height     int
	Interval   time.Duration
	Changes    <-chan arrangement.Change // optional arrangement reloads
	Publisher  Publisher                 // optional remote mirror
	Message    string
	MessageErr bool
	Done       bool

	start        time.Time
	ticking      bool
	published    uint64
	hasPublished bool
}

// NewAppModel creates a root model around eng, whose frames are scheduled
// on q and whose geometry is pane.
func NewAppModel(eng *engine.Engine, q *frame.Queue, pane *viewport.Pane) AppModel {
	return AppModel{
		Engine:   eng,
		Queue:    q,
		Pane:     pane,
		Keys:     DefaultKeyMap(),
		Interval: time.Second / DefaultFPS,
		start:    time.Now(),
	}
}

// SetFPS sets the frame interval. Non-positive values keep the default.
func (m *AppModel) SetFPS(fps int) {
	if fps > 0 {
		m.Interval = time.Second / time.Duration(fps)
	}
}

// Init starts listening for arrangement changes.
func (m AppModel) Init() tea.Cmd {
	return waitForChange(m.Changes)
}

// frameCmd returns a command that sends a frame after interval.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return MsgFrame{Time: t}
	})
}

// waitForChange blocks on the watcher channel and delivers one change.
func waitForChange(ch <-chan arrangement.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return MsgArrangement{Change: c}
	}
}

// Update handles all messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.StatusBar.Width = msg.Width
		m.Pane.Mount(viewport.Rect{Left: 0, Width: float64(msg.Width)})

	case tea.KeyMsg:
		if quit := m.handleKey(msg); quit {
			m.Engine.Close()
			m.Done = true
			return m, tea.Quit
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case MsgFrame:
		m.ticking = false
		m.Queue.Flush(m.nowMs(msg.Time))

	case MsgRemote:
		m.applyRemote(msg.Cmd)

	case MsgArrangement:
		m.applyArrangement(msg.Change)
		cmds = append(cmds, waitForChange(m.Changes))

	case MsgInfo:
		m.Message, m.MessageErr = msg.Msg, false

	case MsgError:
		m.Message, m.MessageErr = msg.Msg, true
	}

	m.syncContent()
	m.publish()
	cmds = append(cmds, m.scheduleFrame())
	return m, tea.Batch(cmds...)
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (quit bool) {
	km := m.keys()
	switch {
	case key.Matches(msg, km.Quit):
		return true
	case key.Matches(msg, km.Play):
		m.Engine.TogglePlay()
	case key.Matches(msg, km.ZoomIn):
		m.setZoomErr(m.Engine.ZoomIn())
	case key.Matches(msg, km.ZoomOut):
		m.setZoomErr(m.Engine.ZoomOut())
	case key.Matches(msg, km.Home):
		m.Engine.Seek(0)
		_ = m.Pane.SetScrollOffset(0)
	case key.Matches(msg, km.ScrollLeft):
		m.scrollBy(-scrollStep)
	case key.Matches(msg, km.ScrollRight):
		m.scrollBy(scrollStep)
	case key.Matches(msg, km.Cancel):
		m.Engine.CancelDrag()
	}
	return false
}

// keys returns the bindings active in the current interaction state.
func (m AppModel) keys() KeyMap {
	if m.Engine.Dragging() {
		km := DragKeyMap()
		km.Play, km.Cancel, km.Quit = m.Keys.Play, m.Keys.Cancel, m.Keys.Quit
		return km
	}
	return m.Keys
}

func (m *AppModel) handleMouse(msg tea.MouseMsg) {
	ev := drag.Pointer{ClientX: float64(msg.X), ClientY: float64(msg.Y)}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.pointerDown(msg.X, msg.Y, ev)
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
			m.scrollBy(-scrollStep)
		case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
			m.scrollBy(scrollStep)
		}
	case tea.MouseActionMotion:
		m.Engine.PointerMove(ev)
	case tea.MouseActionRelease:
		m.Engine.PointerUp(ev)
	}
}

// pointerDown starts a scrub on the ruler or the playhead line, or a clip
// drag on a clip.
func (m *AppModel) pointerDown(x, y int, ev drag.Pointer) {
	snap := m.Engine.Snapshot()
	scroll, err := m.Pane.ScrollOffset()
	if err != nil {
		return
	}
	video, audio := trackAt(y)
	playCol := int(math.Round(snap.PlayheadPx - scroll))

	if y == rowRuler || ((video || audio) && x == playCol) {
		m.Engine.BeginPlayheadDrag(ev)
		m.Engine.PointerMove(ev)
		return
	}

	kind := timeline.KindVideo
	switch {
	case audio:
		kind = timeline.KindAudio
	case !video:
		return
	}
	spans := layoutClips(snap.Items, kind, snap.Zoom, preview{})
	item, ok := clipAt(spans, scroll+float64(x))
	if !ok {
		return
	}
	if err := m.Engine.BeginClipDrag(item.ID, ev); err != nil {
		m.Message, m.MessageErr = err.Error(), true
	}
}

func (m *AppModel) scrollBy(cols float64) {
	scroll, err := m.Pane.ScrollOffset()
	if err != nil {
		return
	}
	_ = m.Pane.SetScrollOffset(scroll + cols)
}

func (m *AppModel) setZoomErr(err error) {
	if err != nil {
		m.Message, m.MessageErr = err.Error(), true
	}
}

func (m *AppModel) applyRemote(c remote.Command) {
	switch c.Type {
	case remote.TypeSetPlay:
		m.Engine.SetPlay(c.Play)
	case remote.TypeSetZoom:
		m.setZoomErr(m.Engine.SetZoom(c.Zoom))
	case remote.TypeSeek:
		m.Engine.Seek(c.SeekMs)
	}
}

func (m *AppModel) applyArrangement(c arrangement.Change) {
	if c.Err != nil {
		reason := firstLine(c.Err.Error())
		var ve *arrangement.ValidationError
		if errors.As(c.Err, &ve) {
			reason = ve.Error()
		}
		m.Message, m.MessageErr = "reload failed: "+reason, true
		return
	}
	a := c.Arrangement
	m.Engine.ReloadMediaItems(a.MediaItems(), c.File)
	if z, ok := a.ZoomLevel(); ok {
		m.setZoomErr(m.Engine.SetZoom(z))
	}
	if a.Timeline.Name != "" {
		m.StatusBar.Name = a.Timeline.Name
	}
	m.Message, m.MessageErr = fmt.Sprintf("reloaded %d clips", len(a.Clips)), false
}

// syncContent sizes the scrollable content to cover the ruler, every clip
// and the playhead. While playing, one view width of room is kept past the
// playhead for follow-scroll.
func (m *AppModel) syncContent() {
	if !m.Pane.Mounted() {
		return
	}
	snap := m.Engine.Snapshot()
	content, err := zoom.RulerWidth(snap.Zoom, float64(m.Width))
	if err != nil {
		return
	}
	tail := 1.0
	if m.Engine.PlaybackStatus() == playback.Running {
		tail = float64(m.Width)
	}
	content = max(content, snap.PlayheadPx+tail)
	for _, it := range snap.Items {
		if end, err := zoom.ToPixels(it.EndMs(), snap.Zoom); err == nil {
			content = max(content, end)
		}
	}
	m.Pane.SetContentWidth(content)
}

func (m *AppModel) publish() {
	if m.Publisher == nil {
		return
	}
	v := m.Engine.Version()
	if m.hasPublished && v == m.published {
		return
	}
	m.Publisher.Publish(remote.StateFrom(m.Engine.Snapshot()))
	m.published, m.hasPublished = v, true
}

// scheduleFrame starts the frame tick when callbacks are waiting and no
// tick is in flight.
func (m *AppModel) scheduleFrame() tea.Cmd {
	if m.ticking || m.Queue.Pending() == 0 {
		return nil
	}
	m.ticking = true
	return frameCmd(m.Interval)
}

func (m AppModel) nowMs(t time.Time) float64 {
	return float64(t.Sub(m.start).Microseconds()) / 1000
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
