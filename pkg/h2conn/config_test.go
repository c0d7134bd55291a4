package h2conn

import "testing"

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Logger == nil {
		t.Error("Logger is nil after Validate()")
	}
}

func TestConfig_ValidateFillsDefaults(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.MaxConcurrentStreams == 0 {
		t.Error("MaxConcurrentStreams still 0 after Validate()")
	}
	if cfg.Logger == nil {
		t.Error("Logger still nil after Validate()")
	}
}
