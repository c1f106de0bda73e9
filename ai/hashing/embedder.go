package hashing

import (
	"context"
	"encoding/binary"
	"hash"
	"log/slog"
	"strings"
	"unicode"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/ssearch/ai"
)

// Feature weights. Whole words dominate; trigrams let "invoices" and
// "invoice_march" still land near "invoice".
const (
	wordWeight    = 1.0
	trigramWeight = 0.5
)

// Embedder implements ai.Embedder with signed feature hashing.
// Each word and each boundary-padded character trigram is hashed with
// BLAKE2b-64 into one of Dimensions buckets. Output is deterministic and
// needs no model, at the cost of purely lexical semantics.
type Embedder struct {
	dims   int
	logger *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Embedder{
		dims:   config.Dimensions,
		logger: slog.Default().With("component", "hashing-embedder"),
	}, nil
}

// NewEmbedder creates a new hashing embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	h, err := blake2b.New(8, nil)
	if err != nil {
		return nil, err
	}
	return e.embed(h, text), nil
}

// EmbedTexts generates vector embeddings for multiple text strings.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings for texts", "count", len(texts), "dimensions", e.dims)

	h, err := blake2b.New(8, nil)
	if err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = e.embed(h, text)
	}
	return vectors, nil
}

func (e *Embedder) embed(h hash.Hash, text string) []float32 {
	vector := make([]float32, e.dims)
	words := tokenize(text)

	// Text made only of separators still deserves a non-zero vector
	if len(words) == 0 && text != "" {
		e.add(h, vector, "raw:"+text, wordWeight)
		return vector
	}

	for _, word := range words {
		e.add(h, vector, "w:"+word, wordWeight)
		for _, tri := range trigrams(word) {
			e.add(h, vector, "c:"+tri, trigramWeight)
		}
	}
	return vector
}

// add hashes a feature into its bucket. The top bit picks the sign so that
// collisions cancel out on average instead of piling up.
func (e *Embedder) add(h hash.Hash, vector []float32, feature string, weight float32) {
	h.Reset()
	h.Write([]byte(feature))
	sum := binary.LittleEndian.Uint64(h.Sum(nil))

	idx := int(sum % uint64(e.dims))
	if sum>>63 == 1 {
		vector[idx] -= weight
	} else {
		vector[idx] += weight
	}
}

// tokenize lowercases text and splits it on anything that is not a letter
// or digit, so "Invoice_March-2024.pdf" yields invoice, march, 2024, pdf.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// trigrams returns the character trigrams of "^word$".
func trigrams(word string) []string {
	runes := []rune("^" + word + "$")
	if len(runes) < 3 {
		return nil
	}
	out := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, string(runes[i:i+3]))
	}
	return out
}
