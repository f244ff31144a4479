package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFLUENCE_URL", "https://example.atlassian.net/wiki")
	t.Setenv("CONFLUENCE_USERNAME", "user@example.com")
	t.Setenv("CONFLUENCE_API_TOKEN", "secret")
	t.Setenv("GEMINI_API_KEY", "gemini-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.URL != "https://example.atlassian.net/wiki" {
		t.Fatalf("URL = %q", cfg.URL)
	}
	if cfg.Username != "user@example.com" || cfg.Token != "secret" || cfg.GeminiKey != "gemini-secret" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := cfg.ValidateGemini(); err != nil {
		t.Fatalf("ValidateGemini() error = %v", err)
	}
}

func TestValidateReportsMissingFields(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Fatal("expected error for empty config")
	}
	cfg := Config{URL: "https://x", Username: "u"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing token")
	}
	if err := cfg.ValidateGemini(); err == nil {
		t.Fatal("expected error for missing Gemini key")
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	want := Config{
		URL:       "https://example.atlassian.net/wiki",
		Username:  "user@example.com",
		Token:     "secret",
		GeminiKey: "gemini-secret",
	}

	if err := Save(want, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}
