package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadMissingFileReturnsDefaults proves an absent config file is
// not an error
func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("default listen addr = %q", cfg.ListenAddr)
	}
}

// TestSaveLoadRoundTrip proves configuration survives a write/read
// cycle
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.WebhookURL = "https://example.com/leads"
	cfg.RedisAddr = "localhost:6379"
	cfg.StandardBBR = 0.0425

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.WebhookURL != cfg.WebhookURL || loaded.RedisAddr != cfg.RedisAddr || loaded.StandardBBR != cfg.StandardBBR {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

// TestLoadRejectsMalformedJSON proves a corrupt file is surfaced, not
// silently defaulted
func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := Save(Default(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Corrupt it
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupting file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}
