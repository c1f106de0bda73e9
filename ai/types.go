package ai

import (
	"fmt"
	"time"
)

// Backend names an embedding service implementation.
type Backend string

const (
	// BackendOllama embeds through a local Ollama server.
	BackendOllama Backend = "ollama"
	// BackendOpenAI embeds through an OpenAI-compatible /v1 API.
	BackendOpenAI Backend = "openai"
	// BackendHashing embeds offline with hashed word and trigram features.
	BackendHashing Backend = "hashing"
)

// Backends lists the supported backends in help-text order.
var Backends = []Backend{
	BackendOllama,
	BackendOpenAI,
	BackendHashing,
}

// ParseBackend converts a backend name into a Backend.
func ParseBackend(s string) (Backend, error) {
	for _, b := range Backends {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("ai config: unknown backend %q", s)
}

// Backend defaults.
const (
	DefaultOllamaHost   = "http://localhost:11434"
	DefaultOllamaModel  = "all-minilm"
	DefaultOpenAIHost   = "https://api.openai.com/v1"
	DefaultOpenAIModel  = "text-embedding-3-small"
	DefaultHashingModel = "hashing-trigram"
	DefaultDimensions   = 384
	DefaultMaxAttempts  = 1
	DefaultRetryDelay   = 500 * time.Millisecond
)
