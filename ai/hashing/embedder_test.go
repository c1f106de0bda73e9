package hashing

import (
	"context"
	"math"
	"testing"

	"github.com/poiesic/ssearch/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmbedder(t *testing.T, dims int) *Embedder {
	t.Helper()
	e, err := newEmbedder(ai.NewConfig(ai.WithBackend(ai.BackendHashing), ai.WithDimensions(dims)))
	require.NoError(t, err)
	return e
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"invoice", "march", "2024", "pdf"}, tokenize("Invoice_March-2024.pdf"))
	assert.Empty(t, tokenize("._-"))
}

func TestTrigrams(t *testing.T) {
	assert.Equal(t, []string{"^ca", "cat", "at$"}, trigrams("cat"))
	assert.Equal(t, []string{"^a$"}, trigrams("a"))
}

func TestEmbedTexts_Deterministic(t *testing.T) {
	e := newTestEmbedder(t, 128)
	ctx := context.Background()

	first, err := e.EmbedTexts(ctx, []string{"invoice", "cat_photo.png"})
	require.NoError(t, err)
	second, err := e.EmbedTexts(ctx, []string{"invoice", "cat_photo.png"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for _, v := range first {
		assert.Len(t, v, 128)
	}
}

func TestEmbedTexts_LexicalSimilarity(t *testing.T) {
	e := newTestEmbedder(t, 384)

	vectors, err := e.EmbedTexts(context.Background(), []string{
		"invoice",
		"invoice_march.pdf",
		"cat_photo.png",
	})
	require.NoError(t, err)

	related := cosine(vectors[0], vectors[1])
	unrelated := cosine(vectors[0], vectors[2])
	assert.Greater(t, related, unrelated)
	assert.Greater(t, related, 0.3)
}

func TestEmbedText_SeparatorsOnly(t *testing.T) {
	e := newTestEmbedder(t, 32)

	vector, err := e.EmbedText(context.Background(), "...")
	require.NoError(t, err)

	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	assert.Greater(t, norm, 0.0, "non-empty text must not embed to the zero vector")
}

func TestEmbedTexts_Canceled(t *testing.T) {
	e := newTestEmbedder(t, 32)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.EmbedTexts(ctx, []string{"a"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(ai.NewConfig(ai.WithBackend(ai.BackendHashing)))
	require.NoError(t, err)
	assert.NotNil(t, provider.Embedder())
	assert.NoError(t, provider.Close())

	_, err = NewProvider(ai.NewConfig(ai.WithBackend(ai.BackendHashing), ai.WithDimensions(0)))
	assert.Error(t, err)
}
