package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no config file should not fail: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("default theme = %q, want light", cfg.Theme)
	}
	if cfg.APIKey != "" {
		t.Error("default config must not carry an API key")
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.Model = "gpt-4o-mini"
	cfg.Theme = "dark"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Config lands in the project-local dot dir
	if _, err := os.Stat(filepath.Join(dir, ".codesphere", "config.json")); err != nil {
		t.Fatalf("expected project-local config file: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.APIKey != "test-key" || loaded.Model != "gpt-4o-mini" || loaded.Theme != "dark" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}
