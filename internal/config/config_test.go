package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultModel != "openai/gpt-3.5-turbo" {
		t.Errorf("Expected default model to be 'openai/gpt-3.5-turbo', got '%s'", cfg.DefaultModel)
	}

	if !cfg.TypingEffect {
		t.Error("Expected TypingEffect to be enabled by default")
	}

	if cfg.TypingDelayMS != 3 {
		t.Errorf("Expected TypingDelayMS to be 3, got %d", cfg.TypingDelayMS)
	}

	if cfg.Verbose != false {
		t.Errorf("Expected Verbose to be false, got %v", cfg.Verbose)
	}
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir == "" {
		t.Error("GetConfigDir() returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("GetConfigDir() returned relative path: %s", dir)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.DefaultModel != DefaultConfig().DefaultModel {
		t.Errorf("expected defaults, got model %q", cfg.DefaultModel)
	}
}

func TestSaveLoadConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.DefaultModel = "openrouter/auto"
	cfg.TypingEffect = false
	cfg.CopyToClipboard = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded.DefaultModel != "openrouter/auto" {
		t.Errorf("DefaultModel = %q", loaded.DefaultModel)
	}
	if loaded.TypingEffect {
		t.Error("TypingEffect should be false")
	}
	if !loaded.CopyToClipboard {
		t.Error("CopyToClipboard should be true")
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".routerchat")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
	// Falls back to defaults rather than a zero config
	if cfg.DefaultModel == "" {
		t.Error("expected default config on parse failure")
	}
}

func TestLoadConfig_ZeroTypingDelayNormalized(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".routerchat")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	raw, _ := json.Marshal(map[string]any{"typing_delay_ms": 0})
	if err := os.WriteFile(filepath.Join(dir, "config.json"), raw, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.TypingDelayMS <= 0 {
		t.Errorf("TypingDelayMS = %d, want positive", cfg.TypingDelayMS)
	}
}

func TestSaveConfigPermissions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := SaveConfig(DefaultConfig()); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}
}
