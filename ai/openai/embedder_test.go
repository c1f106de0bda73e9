package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/poiesic/ssearch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	calls [][]string
	err   error
}

func (f *fakeClient) CreateEmbedding(_ context.Context, texts []string) ([][]float32, error) {
	f.calls = append(f.calls, texts)
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i + 1), 1}
	}
	return out, nil
}

func TestNewProvider(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		provider, err := NewProvider(ai.NewConfig(ai.WithBackend(ai.BackendOpenAI)))
		require.NoError(t, err)
		require.NotNil(t, provider)
		assert.NotNil(t, provider.Embedder())
		assert.NoError(t, provider.Close())
	})

	t.Run("invalid configuration", func(t *testing.T) {
		cfg := ai.NewConfig(ai.WithBackend(ai.BackendOpenAI))
		cfg.Model = ""
		_, err := NewProvider(cfg)
		assert.Error(t, err)
	})
}

func TestEmbedder_EmbedTexts(t *testing.T) {
	client := &fakeClient{}
	e := &Embedder{client: client, model: "test", logger: slog.Default()}

	vectors, err := e.EmbedTexts(context.Background(), []string{"query", "notes.md\nline two"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	require.Len(t, client.calls, 1, "batch must go out in one call")
	assert.Equal(t, []string{"query", "notes.md line two"}, client.calls[0])
}

func TestEmbedder_EmbedText(t *testing.T) {
	client := &fakeClient{}
	e := &Embedder{client: client, model: "test", logger: slog.Default()}

	vector, err := e.EmbedText(context.Background(), "query")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1}, vector)
}

func TestEmbedder_Error(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	e := &Embedder{client: client, model: "test", logger: slog.Default()}

	_, err := e.EmbedTexts(context.Background(), []string{"query"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestEmbedder_StatusError(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "input must not be empty"},
		})
	}))
	defer server.Close()

	embedder, err := NewEmbedder(ai.NewConfig(
		ai.WithBackend(ai.BackendOpenAI),
		ai.WithHost(server.URL),
		ai.WithAPIKey("test-key"),
	))
	require.NoError(t, err)

	_, err = embedder.EmbedTexts(context.Background(), []string{"query"})

	var statusErr *ai.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "input must not be empty", statusErr.Message)
	assert.False(t, ai.Retryable(err))
	assert.Equal(t, int32(1), requests.Load())
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "bad key", errorMessage([]byte(`{"error":{"message":"bad key"}}`)))
	assert.Equal(t, "upstream timeout", errorMessage([]byte("upstream timeout\n")))
}
