package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Errorf("default addr = %q", cfg.Addr)
	}
	if cfg.DataFile != "data.json" {
		t.Errorf("default data file = %q", cfg.DataFile)
	}
	if cfg.Answer.Backend != "mock" {
		t.Errorf("default answer backend = %q", cfg.Answer.Backend)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "addr: \":8080\"\nanswer:\n  backend: llm\n  model: gpt-4o-mini\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Addr)
	}
	if cfg.Answer.Backend != "llm" || cfg.Answer.Model != "gpt-4o-mini" {
		t.Errorf("answer config = %+v", cfg.Answer)
	}
	// Untouched keys keep their defaults.
	if cfg.DataFile != "data.json" {
		t.Errorf("data file = %q, want default", cfg.DataFile)
	}
	if cfg.Answer.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("api key env = %q, want default", cfg.Answer.APIKeyEnv)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() with a missing file did not error")
	}
}
