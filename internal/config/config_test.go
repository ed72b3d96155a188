package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 8484 {
		t.Errorf("Server.Port = %d, want 8484", cfg.Server.Port)
	}
	if cfg.Account.ID != "default" {
		t.Errorf("Account.ID = %q, want default", cfg.Account.ID)
	}
	if cfg.Overseerr.VerboseErrors {
		t.Error("VerboseErrors should default to false")
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8484 {
		t.Errorf("Server.Port = %d, want 8484", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	os.Setenv("ASKARR_OVERSEERR_URL", "http://env:5055")
	os.Setenv("ASKARR_ACCOUNT_ID", "living-room")
	defer os.Unsetenv("ASKARR_OVERSEERR_URL")
	defer os.Unsetenv("ASKARR_ACCOUNT_ID")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Overseerr.URL != "http://env:5055" {
		t.Errorf("Overseerr.URL = %q, want env value", cfg.Overseerr.URL)
	}
	if cfg.Account.ID != "living-room" {
		t.Errorf("Account.ID = %q, want env value", cfg.Account.ID)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("server:\n  port: 9999\noverseerr:\n  verbose_errors: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if !cfg.Overseerr.VerboseErrors {
		t.Error("VerboseErrors should be true from config file")
	}
}

func TestServerConfig_Address(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 8484}
	if got := c.Address(); got != "127.0.0.1:8484" {
		t.Errorf("Address() = %q, want 127.0.0.1:8484", got)
	}
}
