// Package config loads server configuration from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `yaml:"addr"`
	// DataFile is the path of the JSON snapshot.
	DataFile string `yaml:"data_file"`
	// WebDir, when set, is served as static files at the root path.
	WebDir string `yaml:"web_dir"`
	Answer Answer `yaml:"answer"`
}

// Answer selects the answering backend. The mock is the default; "llm"
// routes questions through an OpenAI-compatible endpoint instead.
type Answer struct {
	Backend   string `yaml:"backend"` // mock or llm
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

func Default() Config {
	return Config{
		Addr:     ":5000",
		DataFile: "data.json",
		Answer: Answer{
			Backend:   "mock",
			BaseURL:   "http://localhost:11434/v1/",
			Model:     "llama3.1:8b",
			APIKeyEnv: "OPENAI_API_KEY",
		},
	}
}

// Load reads the config at path over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
