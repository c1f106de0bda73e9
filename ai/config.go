// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/ssearch/core"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Backend selects the embedding implementation.
	// Default: ollama
	Backend Backend

	// Host is the base URL for the embedding service API.
	// Example: "http://localhost:11434" for Ollama, "https://api.openai.com/v1" for OpenAI.
	// Ignored by the hashing backend.
	Host string

	// Model is the model identifier to use for text embeddings.
	// Example: "all-minilm", "text-embedding-3-small"
	Model string

	// APIKey authenticates against hosted OpenAI-compatible services.
	// Local servers accept the placeholder "none".
	APIKey string

	// Device is passed through to the backend untouched.
	// Availability checks belong to the backend.
	Device core.Device

	// Dimensions is the vector length produced by the hashing backend.
	// Default: 384
	Dimensions int

	// MaxAttempts bounds how often a failed embedding request is sent.
	// Values of 1 or less disable retries.
	// Default: 1
	MaxAttempts int

	// RetryDelay is the base delay for exponential backoff between attempts.
	// Default: 500ms
	RetryDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBackend selects the embedding backend and resets host and model to
// that backend's defaults. Apply WithHost and WithModel after it.
func WithBackend(backend Backend) ConfigOption {
	return func(c *Config) {
		c.Backend = backend
		switch backend {
		case BackendOpenAI:
			c.Host = DefaultOpenAIHost
			c.Model = DefaultOpenAIModel
		case BackendHashing:
			c.Host = ""
			c.Model = DefaultHashingModel
		default:
			c.Host = DefaultOllamaHost
			c.Model = DefaultOllamaModel
		}
	}
}

// WithHost sets the embedding service host URL.
// An empty host keeps the backend default.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		if host != "" {
			c.Host = host
		}
	}
}

// WithModel sets the embedding model identifier.
// An empty model keeps the backend default.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		if model != "" {
			c.Model = model
		}
	}
}

// WithAPIKey sets the API key for hosted services.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithDevice sets the device hint.
func WithDevice(device core.Device) ConfigOption {
	return func(c *Config) {
		c.Device = device
	}
}

// WithDimensions sets the hashing backend vector length.
func WithDimensions(dims int) ConfigOption {
	return func(c *Config) {
		c.Dimensions = dims
	}
}

// WithRetry sets the attempt limit and base backoff delay for embedding requests.
func WithRetry(maxAttempts int, baseDelay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = maxAttempts
		c.RetryDelay = baseDelay
	}
}

// DefaultConfig returns a Config for a local Ollama server running the
// MiniLM sentence embedding model.
func DefaultConfig() *Config {
	return &Config{
		Backend:     BackendOllama,
		Host:        DefaultOllamaHost,
		Model:       DefaultOllamaModel,
		Dimensions:  DefaultDimensions,
		MaxAttempts: DefaultMaxAttempts,
		RetryDelay:  DefaultRetryDelay,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
// This is the recommended way to create a Config with custom settings.
//
// Example:
//   cfg := NewConfig(
//       WithBackend(BackendOpenAI),
//       WithModel("text-embedding-3-large"),
//       WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// OpenAI-compatible hosts get a /v1 suffix; Ollama hosts lose one, since
// the Ollama client adds its own /api paths.
func (c *Config) Normalize() {
	c.Host = strings.TrimSuffix(strings.TrimSpace(c.Host), "/")
	switch c.Backend {
	case BackendOpenAI:
		if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
			c.Host = c.Host + "/v1"
		}
		if c.APIKey == "" {
			c.APIKey = "none"
		}
	case BackendOllama:
		c.Host = strings.TrimSuffix(c.Host, "/v1")
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if _, err := ParseBackend(string(c.Backend)); err != nil {
		return err
	}
	if err := core.ValidateDevice(c.Device); err != nil {
		return errors.New("ai config: " + err.Error())
	}

	if c.Backend == BackendHashing {
		if c.Dimensions < 1 {
			return errors.New("ai config: Dimensions must be positive")
		}
		return nil
	}

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if u, err := url.Parse(c.Host); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ai config: Host %q must be an absolute URL", c.Host)
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	return nil
}
