package h2conn

import "testing"

func TestNew_ServerConnectionLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server = true

	conn, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	s, err := conn.Local().CreateStream(2, false)
	if err != nil {
		t.Fatalf("CreateStream(2) error = %v", err)
	}
	if s.State() != StateOpen {
		t.Errorf("state = %v, want open", s.State())
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, ok := conn.Stream(2); ok {
		t.Error("stream 2 still registered after Close()")
	}
}

func TestNew_ClientConnectionHonorsAllowPushTo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server = false
	cfg.AllowPushTo = true

	conn, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !conn.Local().AllowPushTo() {
		t.Error("client Local().AllowPushTo() = false, want true")
	}
}

func TestNew_WithoutMetricsOrTracing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsEnabled = false
	cfg.TracingEnabled = false

	conn, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := conn.Local().CreateStream(2, false); err != nil {
		t.Fatalf("CreateStream(2) error = %v", err)
	}
}
