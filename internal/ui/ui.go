// Package ui prints the one-shot output of cutline's non-interactive
// commands: arrangement validation results, the zoom table and telemetry
// event lines.
package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/papapumpkin/cutline/internal/ansi"
	"github.com/papapumpkin/cutline/internal/arrangement"
	"github.com/papapumpkin/cutline/internal/telemetry"
	"github.com/papapumpkin/cutline/internal/timecode"
	"github.com/papapumpkin/cutline/internal/zoom"
)

// Printer writes colored, human-oriented command output.
type Printer struct {
	out io.Writer
}

// New returns a printer writing to stderr.
func New() *Printer {
	return &Printer{out: os.Stderr}
}

// NewWriter returns a printer writing to w.
func NewWriter(w io.Writer) *Printer {
	return &Printer{out: w}
}

// Error prints msg as an error.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.out, ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

// Info prints msg dimmed.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.out, ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}

// ArrangementValidateResult prints the outcome of validating an
// arrangement file.
func (p *Printer) ArrangementValidateResult(a *arrangement.Arrangement, errs []arrangement.ValidationError) {
	name := a.Timeline.Name
	if name == "" {
		name = a.SourceFile
	}
	if len(errs) == 0 {
		fmt.Fprintf(p.out, ansi.Green+ansi.Bold+"✓ arrangement %q"+ansi.Reset+": %d clip(s), no errors\n", name, len(a.Clips))
		return
	}
	fmt.Fprintf(p.out, ansi.Red+ansi.Bold+"✗ arrangement %q"+ansi.Reset+": %d error(s)\n", name, len(errs))
	for _, e := range errs {
		fmt.Fprintf(p.out, "  "+ansi.Red+"•"+ansi.Reset+" %s "+ansi.Dim+"[%s]"+ansi.Reset+"\n", e.Error(), e.Category)
	}
}

// ZoomTable prints every zoom level with its tick spacing and scale.
// The current level is marked.
func (p *Printer) ZoomTable(current zoom.Level) {
	fmt.Fprintf(p.out, ansi.Bold+"%-6s %-10s %-8s %s"+ansi.Reset+"\n", "level", "major", "px/s", "px/major")
	for _, l := range zoom.Levels() {
		s, err := zoom.Lookup(l)
		if err != nil {
			continue
		}
		tickPx, _ := zoom.MajorTickPx(l)
		major := timecode.TickLabel(s.MajorTickSeconds, s.MajorTickSeconds)
		row := fmt.Sprintf("%-6s %-10s %-8g %g", l, major, s.PixelsPerSecond, tickPx)
		if l == current {
			fmt.Fprintln(p.out, ansi.Cyan+ansi.Bold+row+ansi.Reset+ansi.Yellow+"  ◀"+ansi.Reset)
			continue
		}
		fmt.Fprintln(p.out, row)
	}
}

// Event prints one telemetry event as a single line.
func (p *Printer) Event(evt telemetry.Event) {
	fmt.Fprintln(p.out, EventLine(evt))
}

// EventLine formats evt as "[hh:mm:ss] kind clip=... k=v ...".
func EventLine(evt telemetry.Event) string {
	parts := []string{fmt.Sprintf("[%s]", evt.Timestamp.Format(time.TimeOnly)), evt.Kind}
	if evt.ClipID != "" {
		parts = append(parts, "clip="+evt.ClipID)
	}
	switch d := evt.Data.(type) {
	case nil:
	case map[string]any:
		if len(d) > 0 {
			parts = append(parts, formatDataMap(d))
		}
	default:
		parts = append(parts, fmt.Sprint(d))
	}
	return strings.Join(parts, " ")
}

// formatDataMap formats a data map as key=value pairs sorted by key.
func formatDataMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, m[k])
	}
	return b.String()
}
