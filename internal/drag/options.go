package drag

import "log/slog"

type options struct {
	logger *slog.Logger
	edge   EdgeScroll
}

// Option configures a drag controller.
type Option func(*options)

// WithLogger sets the logger. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEdgeScroll sets the playhead edge auto-scroll easing.
func WithEdgeScroll(e EdgeScroll) Option {
	return func(o *options) { o.edge = e }
}

func buildOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.DiscardHandler),
		edge:   DefaultEdgeScroll(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
