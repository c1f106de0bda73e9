package ollama

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
	"github.com/poiesic/ssearch/ai"
	"github.com/poiesic/ssearch/core"
)

// Embedder implements ai.Embedder using a local Ollama server.
type Embedder struct {
	client  *api.Client
	model   string
	options map[string]any
	logger  *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(config.Host)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "ollama-embedder")
	options := deviceOptions(config.Device)
	logger.Debug("configured ollama client", "host", config.Host, "model", config.Model, "device", config.Device)

	return &Embedder{
		client:  api.NewClient(base, http.DefaultClient),
		model:   config.Model,
		options: options,
		logger:  logger,
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// deviceOptions translates the device hint into model options sent with
// each request. The cpu hint asks for zero GPU layers; cuda and auto leave
// offload to the server, which falls back to CPU when no GPU is present.
func deviceOptions(device core.Device) map[string]any {
	if device == core.DeviceCPU {
		return map[string]any{"num_gpu": 0}
	}
	return nil
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(vectors) == 0 {
		e.logger.Warn("embedder returned empty result")
		return []float32{}, nil
	}

	return vectors[0], nil
}

// EmbedTexts sends the whole batch to /api/embed in one request.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts), "model", e.model)

	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model:   e.model,
		Input:   ai.StripNewLines(texts),
		Options: e.options,
	})
	if err != nil {
		var statusErr api.StatusError
		if errors.As(err, &statusErr) {
			err = &ai.StatusError{StatusCode: statusErr.StatusCode, Message: statusErr.ErrorMessage}
		}
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}

	return resp.Embeddings, nil
}
