package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Categorization.Provider = "openai"
	cfg.Categorization.Model = "gpt-test"
	cfg.Categorization.OpenaiApiKey = "sk-test"
	cfg.Categorization.ChunkSize = 100
	cfg.History.Path = "history.db"
	cfg.Worker.Concurrency = 4
	cfg.Worker.Queues = map[string]int{"default": 1}
	return cfg
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Failures(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown provider", func(c *Config) { c.Categorization.Provider = "anthropic" }},
		{"openai without key", func(c *Config) { c.Categorization.OpenaiApiKey = "" }},
		{"gemini without key", func(c *Config) { c.Categorization.Provider = "gemini"; c.Categorization.GeminiApiKey = "" }},
		{"missing model", func(c *Config) { c.Categorization.Model = "" }},
		{"zero chunk size", func(c *Config) { c.Categorization.ChunkSize = 0 }},
		{"missing history path", func(c *Config) { c.History.Path = "" }},
		{"zero concurrency", func(c *Config) { c.Worker.Concurrency = 0 }},
		{"bad queue priority", func(c *Config) { c.Worker.Queues = map[string]int{"default": 0} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
