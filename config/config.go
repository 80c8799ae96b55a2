// Package config provides configuration for the game server.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration. It is built once at startup and
// passed by reference into the component constructors; nothing reads the
// environment during request handling.
type Config struct {
	// Server settings
	Port int `env:"PORT" envDefault:"3000"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" envDefault:"file:dualdm.db?cache=shared&mode=rwc"`

	// Backend settings
	LLMBaseURL string        `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai"`
	LLMAPIKey  string        `env:"GROQ_API_KEY"`
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	// The two judge identities, fixed per deployment and stamped onto every
	// new session at creation time.
	ModelA string `env:"MODEL_A" envDefault:"llama-3.3-70b-versatile"`
	ModelB string `env:"MODEL_B" envDefault:"qwen-2.5-72b-instruct"`

	// Sampling, fixed per deployment rather than per call.
	Temperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"800"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
