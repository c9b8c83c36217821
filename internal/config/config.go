package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// PricingInfo holds cost details per token for a specific model.
type PricingInfo struct {
	InputPerToken  float64 `mapstructure:"input_per_token"`
	OutputPerToken float64 `mapstructure:"output_per_token"`
}

type Config struct {
	Categorization struct {
		Provider     string `mapstructure:"provider"`       // "openai" or "gemini"
		Model        string `mapstructure:"model"`          // Model name for the provider
		OpenaiApiKey string `mapstructure:"openai_api_key"` // Bound to OPENAI_API_KEY
		GeminiApiKey string `mapstructure:"gemini_api_key"` // Bound to GEMINI_API_KEY
		ChunkSize    int    `mapstructure:"chunk_size"`     // Items per classification request
	} `mapstructure:"categorization"`

	History struct {
		Path string `mapstructure:"path"` // SQLite database file for run history
	} `mapstructure:"history"`

	Server struct {
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`

	// Pricing: map[model] = struct{input_per_token, output_per_token}
	Pricing map[string]PricingInfo `mapstructure:"pricing"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/colcat")

	viper.AutomaticEnv()
	// Bind provider credentials to their conventional environment variables
	// so no config file entry is needed for them.
	viper.BindEnv("categorization.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("categorization.gemini_api_key", "GEMINI_API_KEY")

	viper.SetDefault("categorization.provider", "openai")
	viper.SetDefault("categorization.model", "gpt-4o-mini")
	viper.SetDefault("categorization.chunk_size", 100)
	viper.SetDefault("history.path", "colcat-history.db")
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("redis.address", "127.0.0.1:6379")
	viper.SetDefault("worker.concurrency", 4)
	viper.SetDefault("worker.queues", map[string]int{"default": 1})

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults and env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
