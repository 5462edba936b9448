package watch

import "time"

// DefaultPollInterval is the pause between prefix rescans of a follow stream.
const DefaultPollInterval = 100 * time.Millisecond

// Options contains resolved configuration for follow streams.
type Options struct {
	// PollInterval is the pause between prefix rescans.
	PollInterval time.Duration
}

// Option is a function that configures follow stream options.
type Option func(*Options)

// WithPollInterval configures how often a follow stream rescans the prefix.
// Non-positive values fall back to DefaultPollInterval.
func WithPollInterval(interval time.Duration) Option {
	return func(opts *Options) {
		opts.PollInterval = interval
	}
}

// NewOptions resolves opts over the defaults.
func NewOptions(opts ...Option) Options {
	out := Options{PollInterval: DefaultPollInterval}

	for _, opt := range opts {
		opt(&out)
	}

	if out.PollInterval <= 0 {
		out.PollInterval = DefaultPollInterval
	}

	return out
}
