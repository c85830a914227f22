package zoom

import "errors"

// ErrInvalidZoomLevel indicates a level outside the zoom table.
var ErrInvalidZoomLevel = errors.New("invalid zoom level")
