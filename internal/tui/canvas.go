package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// cellStyle selects a style from cellStyles.
type cellStyle uint8

const (
	cellBlank cellStyle = iota
	cellTick
	cellLabel
	cellVideo
	cellAudio
	cellDragging
	cellPlayhead
)

// cell is one terminal column. A zero rune marks the second column of a
// wide rune.
type cell struct {
	r     rune
	style cellStyle
}

// line is a fixed-width row of cells, one per terminal column.
type line []cell

func newLine(width int) line {
	l := make(line, max(width, 0))
	for i := range l {
		l[i] = cell{r: ' '}
	}
	return l
}

// put writes a single-width rune at col, breaking any wide rune it lands on.
func (l line) put(col int, r rune, st cellStyle) {
	if col < 0 || col >= len(l) {
		return
	}
	l.clearWide(col)
	l[col] = cell{r: r, style: st}
}

// fill paints cols [from, to) with r.
func (l line) fill(from, to int, r rune, st cellStyle) {
	for c := max(from, 0); c < min(to, len(l)); c++ {
		l.put(c, r, st)
	}
}

// text writes s starting at col, stopping before limit. It returns the
// column after the last rune written.
func (l line) text(col, limit int, s string, st cellStyle) int {
	limit = min(limit, len(l))
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col < 0 {
			col += w
			continue
		}
		if col+w > limit {
			break
		}
		l.put(col, r, st)
		if w == 2 {
			l.clearWide(col + 1)
			l[col+1] = cell{r: 0, style: st}
		}
		col += w
	}
	return col
}

func (l line) clearWide(col int) {
	if l[col].r == 0 && col > 0 {
		l[col-1] = cell{r: ' ', style: l[col-1].style}
	}
	if col+1 < len(l) && l[col+1].r == 0 && l[col].r != 0 {
		l[col+1] = cell{r: ' ', style: l[col+1].style}
	}
}

// plain returns the row without styling.
func (l line) plain() string {
	var b strings.Builder
	for _, c := range l {
		if c.r != 0 {
			b.WriteRune(c.r)
		}
	}
	return b.String()
}

// render returns the row with runs of equal style rendered together.
func (l line) render() string {
	var b strings.Builder
	var run strings.Builder
	cur := cellBlank
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(cellStyles[cur].Render(run.String()))
		run.Reset()
	}
	for _, c := range l {
		if c.style != cur {
			flush()
			cur = c.style
		}
		if c.r != 0 {
			run.WriteRune(c.r)
		}
	}
	flush()
	return b.String()
}
