package pgmgo

import "github.com/hupe1980/pgmgo/resource"

// Options contains configuration options for container construction.
type Options struct {
	// Epsilon is the leaf error bound of the learned index. Larger values
	// shrink the index, smaller values shrink the final search window.
	// Must be at least MinEpsilon.
	Epsilon int

	// SizeHint pre-sizes the collection buffer when building from a key
	// stream whose length is unknown.
	SizeHint int

	// Logger receives structured build and set-operation logs.
	// If nil, logging is disabled.
	Logger *Logger

	// Metrics receives operational metrics. If nil, collection is disabled.
	Metrics MetricsCollector

	// Controller bounds the concurrency and key throughput of cooperative
	// builds, the ingestion throughput of key streams, and the scratch
	// memory of set operations. A nil controller enforces nothing.
	Controller *resource.Controller
}

// DefaultOptions contains the default configuration options for container
// construction.
var DefaultOptions = Options{
	Epsilon: DefaultEpsilon,
}

// WithEpsilon sets the leaf error bound.
func WithEpsilon(epsilon int) func(o *Options) {
	return func(o *Options) {
		o.Epsilon = epsilon
	}
}

// WithSizeHint sets the expected input size for stream construction.
func WithSizeHint(n int) func(o *Options) {
	return func(o *Options) {
		o.SizeHint = n
	}
}

// WithLogger sets the logger used for build and set-operation logs.
func WithLogger(l *Logger) func(o *Options) {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m MetricsCollector) func(o *Options) {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithController sets the resource controller cooperative builds run under.
func WithController(c *resource.Controller) func(o *Options) {
	return func(o *Options) {
		o.Controller = c
	}
}

func resolveOptions(optFns []func(o *Options)) Options {
	o := DefaultOptions
	for _, fn := range optFns {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = noopLogger
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetricsCollector{}
	}
	return o
}

var noopLogger = NoopLogger()
