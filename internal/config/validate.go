package config

import (
	"errors"
	"fmt"
)

func (c *Config) Validate() error {
	switch c.Categorization.Provider {
	case "openai":
		if c.Categorization.OpenaiApiKey == "" {
			return errors.New("categorization.openai_api_key (or OPENAI_API_KEY) is required for the openai provider")
		}
	case "gemini":
		if c.Categorization.GeminiApiKey == "" {
			return errors.New("categorization.gemini_api_key (or GEMINI_API_KEY) is required for the gemini provider")
		}
	default:
		return fmt.Errorf("categorization.provider must be 'openai' or 'gemini', got '%s'", c.Categorization.Provider)
	}

	if c.Categorization.Model == "" {
		return errors.New("categorization.model is required")
	}
	if c.Categorization.ChunkSize <= 0 {
		return errors.New("categorization.chunk_size must be a positive integer")
	}

	if c.History.Path == "" {
		return errors.New("history.path is required")
	}

	// Worker config is only exercised by the worker and batch commands, but
	// a malformed queue table should fail fast regardless.
	if c.Worker.Concurrency <= 0 {
		return errors.New("worker.concurrency must be a positive integer")
	}
	for name, priority := range c.Worker.Queues {
		if name == "" {
			return errors.New("worker.queues contains an empty queue name")
		}
		if priority <= 0 {
			return fmt.Errorf("worker.queues priority for queue '%s' must be positive", name)
		}
	}

	return nil
}
