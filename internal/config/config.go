// SPDX-License-Identifier: Apache-2.0

// Package config loads the trf-mcp YAML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds the service settings. The API key itself never lives in the
// file; only the name of the environment variable that carries it does.
type Config struct {
	// DataDir is the directory scanned for .trf report documents.
	DataDir string `yaml:"data_dir"`
	// Model is the chat-completions model used for extraction and summaries.
	Model string `yaml:"model"`
	// BaseURL is the OpenAI-compatible API endpoint.
	BaseURL string `yaml:"base_url"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`
	// TimeoutSeconds bounds each model call.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// PromptMaxLength caps user query text before extraction.
	PromptMaxLength int `yaml:"prompt_max_length"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:         "data",
		Model:           "llama-3.1-8b-instant",
		BaseURL:         "https://api.groq.com/openai/v1",
		APIKeyEnv:       "GROQ_API_KEY",
		TimeoutSeconds:  60,
		PromptMaxLength: 800,
	}
}

// Load reads a YAML config file, layering it over the defaults. An empty
// path or a missing file yields the defaults; a present but malformed file
// is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for fields the file left empty or invalid.
func (c *Config) fillDefaults() {
	def := Default()
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = def.APIKeyEnv
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.PromptMaxLength <= 0 {
		c.PromptMaxLength = def.PromptMaxLength
	}
}
