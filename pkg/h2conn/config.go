// Package h2conn is the public facade over the HTTP/2 connection
// bookkeeping core in internal/stream: stream lifecycle, the priority
// dependency tree, and per-endpoint allocation rules, wired up with
// structured logging, Prometheus metrics, and OpenTelemetry tracing.
package h2conn

import (
	"math"

	"go.uber.org/zap"
)

// Config holds the options for a Connection's ambient stack. It does not
// configure the bookkeeping semantics themselves (those are fixed by the
// protocol); it configures what the Connection does alongside them.
type Config struct {
	// Server selects which endpoint role is local.
	Server bool

	// MaxConcurrentStreams caps the number of streams the local endpoint
	// will allow to exist at once. Zero means unbounded.
	MaxConcurrentStreams uint32

	// AllowPushTo controls whether the local endpoint accepts pushed
	// streams from the peer. Meaningful only on a client Connection;
	// setting it on a server Connection makes New return an error.
	AllowPushTo bool

	// Logger receives structured stream lifecycle events. Defaults to
	// zap.NewNop() if nil.
	Logger *zap.Logger

	// MetricsEnabled attaches a listener that updates the package's
	// Prometheus collectors for stream lifecycle counts and gauges when
	// true. The collectors themselves are registered with the default
	// registry when the package loads, whatever this field says.
	MetricsEnabled bool

	// TracingEnabled starts an OpenTelemetry span per stream lifetime
	// when true.
	TracingEnabled bool
}

// DefaultConfig returns a Config with sensible default values for a
// server-role Connection.
func DefaultConfig() Config {
	return Config{
		Server:               true,
		MaxConcurrentStreams: 100,
		AllowPushTo:          false,
		Logger:               zap.NewNop(),
		MetricsEnabled:       true,
		TracingEnabled:       true,
	}
}

// Validate normalizes the configuration, filling in defaults for unset
// fields.
func (c *Config) Validate() error {
	if c.MaxConcurrentStreams == 0 {
		c.MaxConcurrentStreams = math.MaxInt32
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}
