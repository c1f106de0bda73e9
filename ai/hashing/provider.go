package hashing

import "github.com/poiesic/ssearch/ai"

// Provider implements ai.AIProvider around the hashing embedder.
type Provider struct {
	embedder *Embedder
}

// NewProvider creates a provider that embeds offline.
//
// Returns ai.AIProvider interface to enforce abstraction.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}
	return &Provider{embedder: embedder}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close is a no-op.
func (p *Provider) Close() error {
	return nil
}
