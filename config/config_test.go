package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("auth:\n  jwt_secret: \"0123456789abcdef\"\nscheduling:\n  stamp_policy: lifecycle\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should succeed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Scheduling.StampPolicy != "lifecycle" {
		t.Errorf("expected stamp_policy=lifecycle, got %q", cfg.Scheduling.StampPolicy)
	}
	if cfg.Auth.AccessTokenTTL.Hours() != 8 {
		t.Errorf("expected access_token_ttl=8h, got %s", cfg.Auth.AccessTokenTTL)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: 8080},
			Auth:       AuthConfig{JWTSecret: "0123456789abcdef"},
			Scheduling: SchedulingConfig{StampPolicy: "none"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	short := base()
	short.Auth.JWTSecret = "short"
	if err := short.Validate(); err == nil {
		t.Error("expected short jwt secret to be rejected")
	}

	port := base()
	port.Server.Port = 70000
	if err := port.Validate(); err == nil {
		t.Error("expected out-of-range port to be rejected")
	}

	policy := base()
	policy.Scheduling.StampPolicy = "always"
	if err := policy.Validate(); err == nil {
		t.Error("expected unknown stamp policy to be rejected")
	}
}
