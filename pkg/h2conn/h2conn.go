package h2conn

import "github.com/albertbausili/h2conn/internal/stream"

// Re-exported types so callers never need to import internal/stream
// directly.
type (
	Stream        = stream.Stream
	Connection    = stream.Connection
	Endpoint      = stream.Endpoint
	State         = stream.State
	Listener      = stream.Listener
	BaseListener  = stream.BaseListener
	RemovalPolicy = stream.RemovalPolicy
	ProtocolError = stream.ProtocolError
)

const (
	StateIdle             = stream.StateIdle
	StateOpen             = stream.StateOpen
	StateReservedLocal    = stream.StateReservedLocal
	StateReservedRemote   = stream.StateReservedRemote
	StateHalfClosedLocal  = stream.StateHalfClosedLocal
	StateHalfClosedRemote = stream.StateHalfClosedRemote
	StateClosed           = stream.StateClosed

	MinWeight     = stream.MinWeight
	MaxWeight     = stream.MaxWeight
	DefaultWeight = stream.DefaultWeight
)

// IsProtocolError reports whether err is a ProtocolError.
func IsProtocolError(err error) bool { return stream.IsProtocolError(err) }

// NewImmediateRemovalPolicy returns the default RemovalPolicy, which
// unlinks a closed stream from its Connection synchronously.
func NewImmediateRemovalPolicy() *stream.ImmediateRemovalPolicy {
	return stream.NewImmediateRemovalPolicy()
}

// New builds a Connection from cfg, wiring the logging, metrics, and
// tracing listeners that cfg enables. cfg is validated (and defaulted)
// in place before use.
func New(cfg Config) (*Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn := stream.NewConnection(cfg.Server)
	conn.Local().SetMaxStreams(cfg.MaxConcurrentStreams)
	if err := conn.Local().SetAllowPushTo(cfg.AllowPushTo); err != nil {
		return nil, err
	}

	conn.AddListener(newLoggingListener(cfg.Logger))
	if cfg.MetricsEnabled {
		conn.AddListener(newMetricsListener(cfg.Server))
	}
	if cfg.TracingEnabled {
		conn.AddListener(newTracingListener())
	}

	return conn, nil
}
