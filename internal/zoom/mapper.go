package zoom

// ToPixels converts a time in milliseconds to a pixel offset at level l.
func ToPixels(timeMs float64, l Level) (float64, error) {
	s, err := Lookup(l)
	if err != nil {
		return 0, err
	}
	return timeMs / 1000 * s.PixelsPerSecond, nil
}

// ToTimeMs converts a pixel offset at level l to milliseconds.
func ToTimeMs(px float64, l Level) (float64, error) {
	s, err := Lookup(l)
	if err != nil {
		return 0, err
	}
	return px / s.PixelsPerSecond * 1000, nil
}

// MajorTickPx returns the pixel gap between major ruler ticks at level l.
func MajorTickPx(l Level) (float64, error) {
	s, err := Lookup(l)
	if err != nil {
		return 0, err
	}
	return s.MajorTickSeconds * s.PixelsPerSecond, nil
}

// TickSeconds returns the time of the n-th major ruler tick at level l.
func TickSeconds(n int, l Level) (float64, error) {
	s, err := Lookup(l)
	if err != nil {
		return 0, err
	}
	return float64(n) * s.MajorTickSeconds, nil
}
