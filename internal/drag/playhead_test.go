package drag

import (
	"errors"
	"math"
	"testing"

	"github.com/papapumpkin/cutline/internal/frame"
	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/viewport"
)

// newScrubFixture builds a zoom-3 (30 px/s) timeline in a mounted pane.
func newScrubFixture(rect viewport.Rect, content, scroll float64) (*timeline.State, *frame.Queue, *viewport.Pane, *Playhead) {
	st := timeline.New(3)
	q := frame.NewQueue()
	pane := viewport.NewPane()
	pane.Mount(rect)
	pane.SetContentWidth(content)
	_ = pane.SetScrollOffset(scroll)
	return st, q, pane, NewPlayhead(st, q, pane)
}

func TestEdgeScrollVelocity(t *testing.T) {
	t.Parallel()

	e := EdgeScroll{ThresholdPx: 40, MaxSpeedPx: 20}
	bounds := viewport.Rect{Left: 100, Width: 400}

	tests := []struct {
		name    string
		clientX float64
		want    float64
	}{
		{"center", 300, 0},
		{"just outside left band", 140, 0},
		{"halfway into left band", 120, -5},
		{"at left edge", 100, -20},
		{"past left edge", 40, -20},
		{"halfway into right band", 480, 5},
		{"at right edge", 500, 20},
		{"past right edge", 900, 20},
		{"just outside right band", 460, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := e.Velocity(tt.clientX, bounds)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Velocity(%v) = %v, want %v", tt.clientX, got, tt.want)
			}
		})
	}

	t.Run("disabled easing", func(t *testing.T) {
		t.Parallel()
		if v := (EdgeScroll{}).Velocity(100, bounds); v != 0 {
			t.Errorf("zero EdgeScroll velocity = %v, want 0", v)
		}
	})
}

func TestPlayheadScrub(t *testing.T) {
	t.Parallel()

	t.Run("maps client x through container origin and scroll", func(t *testing.T) {
		t.Parallel()
		st, _, _, p := newScrubFixture(viewport.Rect{Left: 10, Width: 400}, 5000, 100)
		p.Begin(Pointer{ClientX: 70})
		if err := p.Move(Pointer{ClientX: 70}); err != nil {
			t.Fatal(err)
		}
		if st.PlayheadPx() != 160 {
			t.Errorf("PlayheadPx() = %v, want 160", st.PlayheadPx())
		}
		if math.Abs(st.ElapsedMs()-160.0/30*1000) > 1e-9 {
			t.Errorf("ElapsedMs() = %v, want %v", st.ElapsedMs(), 160.0/30*1000)
		}
	})

	t.Run("left of origin clamps to zero", func(t *testing.T) {
		t.Parallel()
		st, _, _, p := newScrubFixture(viewport.Rect{Left: 10, Width: 400}, 5000, 0)
		st.Seek(9000)
		p.Begin(Pointer{ClientX: 100})
		if err := p.Move(Pointer{ClientX: -30}); err != nil { // contentPx = -40
			t.Fatal(err)
		}
		if st.PlayheadPx() != 0 || st.ElapsedMs() != 0 {
			t.Errorf("got playhead=%v elapsed=%v, want 0 and 0", st.PlayheadPx(), st.ElapsedMs())
		}
	})

	t.Run("no upper clamp", func(t *testing.T) {
		t.Parallel()
		st, _, _, p := newScrubFixture(viewport.Rect{Width: 100}, 100, 0)
		p.Begin(Pointer{})
		_ = p.Move(Pointer{ClientX: 3000})
		if st.PlayheadPx() != 3000 {
			t.Errorf("PlayheadPx() = %v, want 3000", st.PlayheadPx())
		}
	})

	t.Run("begin does not move the playhead", func(t *testing.T) {
		t.Parallel()
		st, _, _, p := newScrubFixture(viewport.Rect{Width: 400}, 5000, 0)
		st.Seek(1000)
		p.Begin(Pointer{ClientX: 200})
		if !p.Dragging() {
			t.Fatal("expected Dragging after Begin")
		}
		if st.ElapsedMs() != 1000 {
			t.Errorf("ElapsedMs() = %v, want 1000", st.ElapsedMs())
		}
	})

	t.Run("move while idle", func(t *testing.T) {
		t.Parallel()
		_, _, _, p := newScrubFixture(viewport.Rect{Width: 400}, 5000, 0)
		if err := p.Move(Pointer{ClientX: 5}); !errors.Is(err, ErrNotDragging) {
			t.Errorf("Move() error = %v, want ErrNotDragging", err)
		}
		if _, err := p.End(Pointer{}); !errors.Is(err, ErrNotDragging) {
			t.Errorf("End() error = %v, want ErrNotDragging", err)
		}
	})

	t.Run("unmounted viewport defers the sample", func(t *testing.T) {
		t.Parallel()
		st := timeline.New(3)
		st.Seek(500)
		p := NewPlayhead(st, frame.NewQueue(), viewport.NewPane())
		p.Begin(Pointer{})
		if err := p.Move(Pointer{ClientX: 90}); err != nil {
			t.Fatalf("Move() error = %v, want nil", err)
		}
		if st.ElapsedMs() != 500 {
			t.Errorf("ElapsedMs() = %v, want unchanged 500", st.ElapsedMs())
		}
	})
}

func TestPlayheadEndReturnsSession(t *testing.T) {
	t.Parallel()

	st, q, _, p := newScrubFixture(viewport.Rect{Width: 400}, 5000, 0)
	st.Seek(1000)
	p.Begin(Pointer{ClientX: 30})
	_ = p.Move(Pointer{ClientX: 395})
	s, err := p.End(Pointer{ClientX: 395})
	if err != nil {
		t.Fatal(err)
	}
	if s.Target != TargetPlayhead || s.OriginClientX != 30 || s.OriginValue != 1000 || s.LastClientX != 395 {
		t.Errorf("unexpected session %+v", s)
	}
	if p.Dragging() || p.AutoScrolling() || p.Velocity() != 0 {
		t.Error("expected idle controller after End")
	}
	if q.Pending() != 0 {
		t.Errorf("Pending() = %d, want auto-scroll cancelled", q.Pending())
	}
}

func TestPlayheadAutoScroll(t *testing.T) {
	t.Parallel()

	t.Run("keeps moving while pointer rests at right edge", func(t *testing.T) {
		t.Parallel()
		st, q, pane, p := newScrubFixture(viewport.Rect{Width: 200}, 5000, 0)
		p.Begin(Pointer{ClientX: 100})
		_ = p.Move(Pointer{ClientX: 200})
		if p.Velocity() != DefaultMaxEdgeSpeedPx {
			t.Fatalf("Velocity() = %v, want %v", p.Velocity(), DefaultMaxEdgeSpeedPx)
		}
		if !p.AutoScrolling() {
			t.Fatal("expected auto-scroll tick scheduled")
		}

		for i := 1; i <= 3; i++ {
			q.Flush(float64(i) * 16)
			scroll, _ := pane.ScrollOffset()
			if scroll != float64(i)*DefaultMaxEdgeSpeedPx {
				t.Fatalf("frame %d: ScrollOffset() = %v", i, scroll)
			}
			if st.PlayheadPx() != 200+scroll {
				t.Fatalf("frame %d: PlayheadPx() = %v, want %v", i, st.PlayheadPx(), 200+scroll)
			}
		}
	})

	t.Run("scrolls left near left edge", func(t *testing.T) {
		t.Parallel()
		st, q, pane, p := newScrubFixture(viewport.Rect{Left: 10, Width: 200}, 5000, 500)
		p.Begin(Pointer{ClientX: 100})
		_ = p.Move(Pointer{ClientX: 10})
		q.Flush(16)
		scroll, _ := pane.ScrollOffset()
		if scroll != 500-DefaultMaxEdgeSpeedPx {
			t.Errorf("ScrollOffset() = %v, want %v", scroll, 500-DefaultMaxEdgeSpeedPx)
		}
		if st.PlayheadPx() != scroll {
			t.Errorf("PlayheadPx() = %v, want %v", st.PlayheadPx(), scroll)
		}
	})

	t.Run("scroll clamps to content", func(t *testing.T) {
		t.Parallel()
		_, q, pane, p := newScrubFixture(viewport.Rect{Width: 200}, 250, 0)
		p.Begin(Pointer{})
		_ = p.Move(Pointer{ClientX: 200})
		for i := 0; i < 10; i++ {
			q.Flush(float64(i))
		}
		scroll, _ := pane.ScrollOffset()
		if scroll != 50 {
			t.Errorf("ScrollOffset() = %v, want 50", scroll)
		}
	})

	t.Run("tick stops once pointer leaves the band", func(t *testing.T) {
		t.Parallel()
		_, q, pane, p := newScrubFixture(viewport.Rect{Width: 200}, 5000, 0)
		p.Begin(Pointer{})
		_ = p.Move(Pointer{ClientX: 199})
		q.Flush(0)
		_ = p.Move(Pointer{ClientX: 100})
		before, _ := pane.ScrollOffset()
		q.Flush(16)
		after, _ := pane.ScrollOffset()
		if before != after {
			t.Errorf("scroll moved from %v to %v after velocity dropped to 0", before, after)
		}
		if p.AutoScrolling() {
			t.Error("expected auto-scroll tick to stop itself")
		}
		if q.Pending() != 0 {
			t.Errorf("Pending() = %d, want 0", q.Pending())
		}
	})

	t.Run("move while unmounted zeroes velocity", func(t *testing.T) {
		t.Parallel()
		_, q, pane, p := newScrubFixture(viewport.Rect{Width: 200}, 5000, 0)
		p.Begin(Pointer{})
		_ = p.Move(Pointer{ClientX: 200})
		if p.Velocity() == 0 {
			t.Fatal("expected edge velocity before unmount")
		}
		pane.Unmount()
		_ = p.Move(Pointer{ClientX: 200})
		if p.Velocity() != 0 {
			t.Errorf("Velocity() = %v, want 0", p.Velocity())
		}
		q.Flush(16)
		if p.AutoScrolling() {
			t.Error("expected auto-scroll tick to stop")
		}
		pane.Mount(viewport.Rect{Width: 200})
		if scroll, _ := pane.ScrollOffset(); scroll != 0 {
			t.Errorf("ScrollOffset() = %v, want 0", scroll)
		}
	})

	t.Run("repeated moves keep a single tick", func(t *testing.T) {
		t.Parallel()
		_, q, _, p := newScrubFixture(viewport.Rect{Width: 200}, 5000, 0)
		p.Begin(Pointer{})
		for i := 0; i < 5; i++ {
			_ = p.Move(Pointer{ClientX: 195})
		}
		if q.Pending() != 1 {
			t.Errorf("Pending() = %d, want 1", q.Pending())
		}
	})

	t.Run("leaked tick after close is ignored", func(t *testing.T) {
		t.Parallel()
		st := timeline.New(3)
		pane := viewport.NewPane()
		pane.Mount(viewport.Rect{Width: 200})
		pane.SetContentWidth(5000)
		var leaked []frame.Callback
		sched := schedFunc(func(cb frame.Callback) { leaked = append(leaked, cb) })
		p := NewPlayhead(st, sched, pane)

		p.Begin(Pointer{})
		_ = p.Move(Pointer{ClientX: 200})
		p.Close()
		for _, cb := range leaked {
			cb(16)
		}
		scroll, _ := pane.ScrollOffset()
		if scroll != 0 {
			t.Errorf("ScrollOffset() = %v after teardown, want 0", scroll)
		}
	})
}

// schedFunc is a Scheduler that records requests and ignores Cancel.
type schedFunc func(cb frame.Callback)

func (f schedFunc) Request(cb frame.Callback) frame.Handle {
	f(cb)
	return 1
}

func (schedFunc) Cancel(frame.Handle) {}
