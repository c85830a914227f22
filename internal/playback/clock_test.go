package playback

import (
	"math"
	"testing"

	"github.com/papapumpkin/cutline/internal/frame"
	"github.com/papapumpkin/cutline/internal/timeline"
	"github.com/papapumpkin/cutline/internal/viewport"
)

// leakyScheduler never honours Cancel, so every callback it ever received
// can be fired later. It models a host that delivers a frame after teardown.
type leakyScheduler struct {
	next frame.Handle
	cbs  []frame.Callback
}

func (s *leakyScheduler) Request(cb frame.Callback) frame.Handle {
	s.next++
	s.cbs = append(s.cbs, cb)
	return s.next
}

func (s *leakyScheduler) Cancel(frame.Handle) {}

func (s *leakyScheduler) fireAll(now float64) {
	cbs := s.cbs
	s.cbs = nil
	for _, cb := range cbs {
		cb(now)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClockAdvancesFromDeltas(t *testing.T) {
	t.Parallel()

	st := timeline.New(4) // 100 px/s
	q := frame.NewQueue()
	c := New(st, q)

	c.Start()
	for _, ts := range []float64{1000, 1016, 1032, 1049} {
		q.Flush(ts)
	}

	if st.ElapsedMs() != 49 {
		t.Errorf("ElapsedMs() = %v, want 49", st.ElapsedMs())
	}
	if !approx(st.PlayheadPx(), 4.9) {
		t.Errorf("PlayheadPx() = %v, want 4.9", st.PlayheadPx())
	}
}

func TestClockFirstTickOnlySeeds(t *testing.T) {
	t.Parallel()

	st := timeline.New(3)
	q := frame.NewQueue()
	c := New(st, q)
	c.Start()
	q.Flush(5000)
	if st.ElapsedMs() != 0 {
		t.Errorf("ElapsedMs() after first tick = %v, want 0", st.ElapsedMs())
	}
}

func TestClockMonotonic(t *testing.T) {
	t.Parallel()

	st := timeline.New(3)
	q := frame.NewQueue()
	c := New(st, q)
	c.Start()

	prev := -1.0
	// Includes a timestamp that goes backwards.
	for _, ts := range []float64{0, 16, 33, 20, 50, 66} {
		q.Flush(ts)
		if st.ElapsedMs() < prev {
			t.Fatalf("elapsed decreased from %v to %v at ts=%v", prev, st.ElapsedMs(), ts)
		}
		prev = st.ElapsedMs()
	}
}

func TestClockStopRestartKeepsElapsed(t *testing.T) {
	t.Parallel()

	st := timeline.New(3)
	q := frame.NewQueue()
	c := New(st, q)

	c.Start()
	q.Flush(0)
	q.Flush(100)
	c.Stop()
	if c.Status() != Stopped {
		t.Fatalf("Status() = %v, want stopped", c.Status())
	}
	if q.Pending() != 0 {
		t.Errorf("Pending() after Stop = %d, want 0", q.Pending())
	}

	// A long pause must not be counted as playback time.
	c.Start()
	q.Flush(60_000)
	q.Flush(60_010)
	if st.ElapsedMs() != 110 {
		t.Errorf("ElapsedMs() = %v, want 110", st.ElapsedMs())
	}
}

func TestClockZoomChangeWhileRunning(t *testing.T) {
	t.Parallel()

	st := timeline.New(3)
	q := frame.NewQueue()
	c := New(st, q)
	c.Start()
	q.Flush(0)
	q.Flush(1000)
	if st.PlayheadPx() != 30 {
		t.Fatalf("PlayheadPx() at zoom 3 = %v, want 30", st.PlayheadPx())
	}

	if err := st.SetZoom(6); err != nil {
		t.Fatal(err)
	}
	q.Flush(2000)
	if st.ElapsedMs() != 2000 {
		t.Errorf("ElapsedMs() = %v, want 2000", st.ElapsedMs())
	}
	if st.PlayheadPx() != 1200 {
		t.Errorf("PlayheadPx() = %v, want 1200 (recomputed, not 30+30)", st.PlayheadPx())
	}
}

func TestClockDanglingCallbackIsNoop(t *testing.T) {
	t.Parallel()

	st := timeline.New(3)
	s := &leakyScheduler{}
	c := New(st, s)

	c.Start()
	s.fireAll(0)
	s.fireAll(100)
	leaked := s.cbs
	s.cbs = nil
	c.Close()

	// The scheduler ignored Cancel; the leaked callback fires anyway.
	for _, cb := range leaked {
		cb(5000)
	}
	if st.ElapsedMs() != 100 {
		t.Errorf("ElapsedMs() after teardown = %v, want 100", st.ElapsedMs())
	}

	// A new session is not disturbed by callbacks from the old one.
	c.Start()
	for _, cb := range leaked {
		cb(9000)
	}
	s.fireAll(6000)
	s.fireAll(6010)
	if st.ElapsedMs() != 110 {
		t.Errorf("ElapsedMs() = %v, want 110", st.ElapsedMs())
	}
}

func TestClockStartIdempotent(t *testing.T) {
	t.Parallel()

	st := timeline.New(3)
	q := frame.NewQueue()
	c := New(st, q)
	c.Start()
	c.Start()
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, want a single scheduled frame", q.Pending())
	}
	c.Stop()
	c.Stop()
	if c.Status() != Stopped {
		t.Error("expected stopped")
	}
}

func TestClockFollowScroll(t *testing.T) {
	t.Parallel()

	t.Run("scrolls when playhead nears right edge", func(t *testing.T) {
		t.Parallel()
		st := timeline.New(4) // 100 px/s
		pane := viewport.NewPane()
		pane.Mount(viewport.Rect{Left: 0, Width: 200})
		pane.SetContentWidth(10000)
		q := frame.NewQueue()
		c := New(st, q, WithViewport(pane), WithFollowPadding(50))

		st.Seek(1400) // 140px, inside the view
		c.Start()
		q.Flush(0)
		q.Flush(200) // 160px, past 200-50
		scroll, _ := pane.ScrollOffset()
		if scroll != 10 {
			t.Errorf("ScrollOffset() = %v, want 10", scroll)
		}
	})

	t.Run("no scroll inside the padded band", func(t *testing.T) {
		t.Parallel()
		st := timeline.New(4)
		pane := viewport.NewPane()
		pane.Mount(viewport.Rect{Width: 200})
		pane.SetContentWidth(10000)
		q := frame.NewQueue()
		c := New(st, q, WithViewport(pane))
		st.Seek(600)
		c.Start()
		q.Flush(0)
		q.Flush(100)
		scroll, _ := pane.ScrollOffset()
		if scroll != 0 {
			t.Errorf("ScrollOffset() = %v, want 0", scroll)
		}
	})

	t.Run("scrolls back when playhead is left of view", func(t *testing.T) {
		t.Parallel()
		st := timeline.New(4)
		pane := viewport.NewPane()
		pane.Mount(viewport.Rect{Width: 200})
		pane.SetContentWidth(10000)
		_ = pane.SetScrollOffset(1000)
		q := frame.NewQueue()
		c := New(st, q, WithViewport(pane))
		st.Seek(2000) // 200px, far left of scroll 1000
		c.Start()
		q.Flush(0)
		q.Flush(10)
		scroll, _ := pane.ScrollOffset()
		if scroll != 151 {
			t.Errorf("ScrollOffset() = %v, want 151", scroll)
		}
	})

	t.Run("unmounted viewport only skips follow", func(t *testing.T) {
		t.Parallel()
		st := timeline.New(4)
		pane := viewport.NewPane()
		q := frame.NewQueue()
		c := New(st, q, WithViewport(pane))
		c.Start()
		q.Flush(0)
		q.Flush(500)
		if st.ElapsedMs() != 500 {
			t.Errorf("ElapsedMs() = %v, want 500", st.ElapsedMs())
		}
		if q.Pending() != 1 {
			t.Errorf("clock stopped rescheduling after a missing viewport")
		}
	})
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	if Running.String() != "running" || Stopped.String() != "stopped" {
		t.Errorf("unexpected status strings %q %q", Running, Stopped)
	}
}
