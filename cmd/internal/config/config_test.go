package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "6060" {
		t.Fatalf("Port = %q, want 6060", cfg.Port)
	}
	if cfg.AppointmentServiceURL != "http://localhost:8081" {
		t.Fatalf("AppointmentServiceURL = %q", cfg.AppointmentServiceURL)
	}
	if cfg.UserServiceURL != "http://localhost:8082" {
		t.Fatalf("UserServiceURL = %q", cfg.UserServiceURL)
	}
	if cfg.GatewayTimeout != 5*time.Second {
		t.Fatalf("GatewayTimeout = %s, want 5s", cfg.GatewayTimeout)
	}
	if cfg.TrustAllCerts {
		t.Fatal("TrustAllCerts should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("APPOINTMENT_SERVICE_URL", "https://appointments.internal")
	t.Setenv("USER_SERVICE_URL", "https://users.internal")
	t.Setenv("GATEWAY_TIMEOUT", "250ms")
	t.Setenv("TRUST_ALL_CERTS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "7070" {
		t.Fatalf("Port = %q, want 7070", cfg.Port)
	}
	if cfg.AppointmentServiceURL != "https://appointments.internal" {
		t.Fatalf("AppointmentServiceURL = %q", cfg.AppointmentServiceURL)
	}
	if cfg.GatewayTimeout != 250*time.Millisecond {
		t.Fatalf("GatewayTimeout = %s, want 250ms", cfg.GatewayTimeout)
	}
	if !cfg.TrustAllCerts {
		t.Fatal("TrustAllCerts not picked up")
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("GATEWAY_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unparsable timeout")
	}
}
