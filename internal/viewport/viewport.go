// Package viewport describes the scrollable container the timeline is drawn
// in. Controllers depend only on the Geometry interface; Pane is the
// in-memory implementation the terminal host drives.
package viewport

import (
	"errors"
	"math"
)

// ErrNotMounted is returned by geometry queries made before the container
// exists. Callers skip the current update and try again on the next event.
var ErrNotMounted = errors.New("viewport not mounted")

// Rect is the visible region of the container in client coordinates.
type Rect struct {
	Left  float64
	Width float64
}

// Right returns Left + Width.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Geometry is the narrow capability the timeline needs from its container.
type Geometry interface {
	Bounds() (Rect, error)
	ScrollOffset() (float64, error)
	SetScrollOffset(px float64) error
	// ContentWidth is the full scrollable width of the content.
	ContentWidth() (float64, error)
}

// Pane is a Geometry backed by plain fields. A Pane starts unmounted.
type Pane struct {
	mounted bool
	rect    Rect
	scroll  float64
	content float64
}

// NewPane creates an unmounted pane.
func NewPane() *Pane {
	return &Pane{}
}

// Mount places the pane at rect and makes geometry queries succeed.
func (p *Pane) Mount(rect Rect) {
	p.mounted = true
	p.rect = rect
	p.clamp()
}

// Unmount makes geometry queries fail with ErrNotMounted again.
func (p *Pane) Unmount() {
	p.mounted = false
}

// Mounted reports whether the pane is mounted.
func (p *Pane) Mounted() bool { return p.mounted }

// SetContentWidth sets the scrollable width. It never shrinks below the
// visible width.
func (p *Pane) SetContentWidth(w float64) {
	p.content = w
	p.clamp()
}

// Bounds implements Geometry.
func (p *Pane) Bounds() (Rect, error) {
	if !p.mounted {
		return Rect{}, ErrNotMounted
	}
	return p.rect, nil
}

// ScrollOffset implements Geometry.
func (p *Pane) ScrollOffset() (float64, error) {
	if !p.mounted {
		return 0, ErrNotMounted
	}
	return p.scroll, nil
}

// SetScrollOffset implements Geometry. The offset is clamped to
// [0, ContentWidth-Width].
func (p *Pane) SetScrollOffset(px float64) error {
	if !p.mounted {
		return ErrNotMounted
	}
	p.scroll = px
	p.clamp()
	return nil
}

// ContentWidth implements Geometry.
func (p *Pane) ContentWidth() (float64, error) {
	if !p.mounted {
		return 0, ErrNotMounted
	}
	return math.Max(p.content, p.rect.Width), nil
}

// MaxScroll returns the largest valid scroll offset.
func (p *Pane) MaxScroll() float64 {
	return math.Max(0, p.content-p.rect.Width)
}

func (p *Pane) clamp() {
	p.scroll = Clamp(p.scroll, 0, p.MaxScroll())
}

// Clamp limits v to [lo, hi]. When hi < lo the result is lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo || math.IsNaN(v) {
		v = lo
	}
	return v
}
