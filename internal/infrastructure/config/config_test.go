package config

import (
	"context"
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// The developer's shell may carry these; defaults only kick in when
	// the variables are unset.
	for _, key := range []string{"RENTLY_DIRECTORY", "RENTLY_SESSION_STORE", "RENTLY_API_BASE_URL", "RENTLY_STATE_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Directory != DirectoryLocal {
		t.Fatalf("expected local directory default, got %q", cfg.Directory)
	}
	if cfg.SessionStore != SessionStoreFile {
		t.Fatalf("expected file session store default, got %q", cfg.SessionStore)
	}
	if cfg.APIBaseURL == "" {
		t.Fatalf("expected a default API base URL")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RENTLY_DIRECTORY", "remote")
	t.Setenv("RENTLY_SESSION_STORE", "redis")
	t.Setenv("RENTLY_API_BASE_URL", "https://identity.rently.example")
	t.Setenv("RENTLY_STATE_DIR", "/tmp/rently-test")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Directory != DirectoryRemote || cfg.SessionStore != SessionStoreRedis {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.APIBaseURL != "https://identity.rently.example" {
		t.Fatalf("unexpected base URL %q", cfg.APIBaseURL)
	}
	if cfg.StateDir != "/tmp/rently-test" {
		t.Fatalf("explicit state dir must win, got %q", cfg.StateDir)
	}
}
