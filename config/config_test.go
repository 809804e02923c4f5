package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PADEL_API_URL", "PADEL_SESSION_FILE", "PADEL_REQUEST_TIMEOUT", "SERVER_PORT", "JWT_SECRET_KEY"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:3333/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.SessionFile == "" {
		t.Error("SessionFile empty")
	}
	if cfg.RequestTimeout <= 0 {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.ServerPort != 3333 {
		t.Errorf("ServerPort = %d, want 3333", cfg.ServerPort)
	}
	if cfg.JWTSecretKey == "" {
		t.Error("JWTSecretKey empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PADEL_API_URL", "https://padel.example.com/api")
	t.Setenv("PADEL_REQUEST_TIMEOUT", "30s")
	t.Setenv("SERVER_PORT", "8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://padel.example.com/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d", cfg.ServerPort)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a non-numeric port")
	}
	t.Setenv("SERVER_PORT", "70000")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an out-of-range port")
	}
}
