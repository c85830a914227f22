package timeline

// Kind classifies a media item by the track it lives on.
type Kind string

// Media item kinds.
const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindVideo || k == KindAudio
}

// MediaItem is a clip placed on the timeline.
type MediaItem struct {
	ID         string
	Name       string
	Kind       Kind
	StartMs    float64
	DurationMs float64
}

// EndMs returns StartMs + DurationMs.
func (m MediaItem) EndMs() float64 {
	return m.StartMs + m.DurationMs
}

// Contains reports whether ms falls within [StartMs, EndMs).
func (m MediaItem) Contains(ms float64) bool {
	return ms >= m.StartMs && ms < m.EndMs()
}
