package search

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/ssearch/ai/mock"
	"github.com/poiesic/ssearch/core"
	"github.com/poiesic/ssearch/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func invoiceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"invoice_march.pdf": "",
		"cat_photo.png":     "",
		"invoice_april.pdf": "",
	})
	return dir
}

func TestNewSearcher(t *testing.T) {
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(provider)
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(provider, WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(provider, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher.logger)
	})

	t.Run("pool size has a floor of one", func(t *testing.T) {
		searcher, err := NewSearcher(provider, WithPoolSize(-4))
		require.NoError(t, err)
		assert.Equal(t, 1, searcher.poolSize)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

func TestSearch_InvoiceScenario(t *testing.T) {
	dir := invoiceDir(t)
	embedder := invoiceEmbedder()
	searcher, err := NewSearcher(mock.NewMockProviderWithEmbedder(embedder))
	require.NoError(t, err)

	cfg := core.DefaultSearchConfig(dir, "invoice")
	cfg.MaxResults = 2

	result, err := searcher.Search(context.Background(), cfg)
	require.NoError(t, err)

	// Equal scores keep enumeration order, which is lexical.
	assert.Equal(t, []string{"invoice_april.pdf", "invoice_march.pdf"}, keptNames(result))
	assert.Equal(t, filepath.Join(dir, "invoice_april.pdf"), result.Kept[0].Candidate.Path)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, 1, result.FilteredOut())
	assert.Equal(t, 1, embedder.CallCount())
}

func TestSearch_Idempotent(t *testing.T) {
	dir := invoiceDir(t)
	searcher, err := NewSearcher(mock.NewMockProviderWithEmbedder(invoiceEmbedder()))
	require.NoError(t, err)

	cfg := core.DefaultSearchConfig(dir, "invoice")

	first, err := searcher.Search(context.Background(), cfg)
	require.NoError(t, err)
	second, err := searcher.Search(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSearch_InvalidConfigSkipsWork(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	searcher, err := NewSearcher(mock.NewMockProviderWithEmbedder(embedder))
	require.NoError(t, err)

	cfg := core.DefaultSearchConfig("/definitely/not/here", "invoice")
	cfg.Threshold = 1.5

	result, err := searcher.Search(context.Background(), cfg)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
	assert.ErrorIs(t, err, core.ErrInvalidThreshold)
	assert.Zero(t, embedder.CallCount())
}

func TestSearch_MissingDirectory(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	searcher, err := NewSearcher(mock.NewMockProviderWithEmbedder(embedder))
	require.NoError(t, err)

	cfg := core.DefaultSearchConfig(filepath.Join(t.TempDir(), "missing"), "invoice")

	_, err = searcher.Search(context.Background(), cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, embedder.CallCount())
}

func TestSearch_FileInsteadOfDirectory(t *testing.T) {
	dir := invoiceDir(t)
	searcher, err := NewSearcher(mock.NewMockProvider())
	require.NoError(t, err)

	cfg := core.DefaultSearchConfig(filepath.Join(dir, "cat_photo.png"), "cat")

	_, err = searcher.Search(context.Background(), cfg)
	assert.ErrorIs(t, err, scan.ErrNotDirectory)
}

func TestSearch_EmptyDirectory(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	searcher, err := NewSearcher(mock.NewMockProviderWithEmbedder(embedder))
	require.NoError(t, err)

	result, err := searcher.Search(context.Background(), core.DefaultSearchConfig(t.TempDir(), "anything"))
	require.NoError(t, err)
	assert.Empty(t, result.Kept)
	assert.Zero(t, result.Total)
	assert.Zero(t, embedder.CallCount())
}

func TestSearch_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"top.txt":          "",
		"nested/inner.txt": "",
	})
	embedder := mock.NewMockEmbedder()
	searcher, err := NewSearcher(mock.NewMockProviderWithEmbedder(embedder))
	require.NoError(t, err)

	cfg := core.DefaultSearchConfig(dir, "text")
	cfg.Threshold = 0

	flat, err := searcher.Search(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, flat.Total)

	cfg.Recursive = true
	deep, err := searcher.Search(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, deep.Total)
	assert.ElementsMatch(t, []string{"text", "inner.txt", "top.txt"}, embedder.Batches()[1])
}

func TestSearch_ContentMode(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"notes.txt": "budget review for the quarter",
		"image.bin": "\x89PNG\x00\x00\x00\x0dIHDR",
	})
	embedder := mock.NewMockEmbedder()
	searcher, err := NewSearcher(mock.NewMockProviderWithEmbedder(embedder), WithPoolSize(2))
	require.NoError(t, err)

	cfg := core.DefaultSearchConfig(dir, "budget")
	cfg.Content = true
	cfg.MaxContentSize = 13
	cfg.Threshold = 0

	monitor := &testMonitor{}
	_, err = searcher.SearchWithMonitor(context.Background(), cfg, monitor)
	require.NoError(t, err)

	require.Equal(t, 1, embedder.CallCount())
	assert.Equal(t, []string{"budget", "image.bin", "notes.txt budget review"}, embedder.Batches()[0])
	assert.Equal(t, 1, monitor.degraded)
}

func TestSearch_ContentDisabledIgnoresBody(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"notes.txt": "budget review"})
	embedder := mock.NewMockEmbedder()
	searcher, err := NewSearcher(mock.NewMockProviderWithEmbedder(embedder))
	require.NoError(t, err)

	_, err = searcher.Search(context.Background(), core.DefaultSearchConfig(dir, "budget"))
	require.NoError(t, err)
	assert.Equal(t, []string{"budget", "notes.txt"}, embedder.Batches()[0])
}

func TestSearchWithMonitor(t *testing.T) {
	dir := invoiceDir(t)
	searcher, err := NewSearcher(mock.NewMockProviderWithEmbedder(invoiceEmbedder()))
	require.NoError(t, err)

	cfg := core.DefaultSearchConfig(dir, "invoice")
	monitor := &testMonitor{}

	result, err := searcher.SearchWithMonitor(context.Background(), cfg, monitor)
	require.NoError(t, err)

	assert.True(t, monitor.startCalled)
	assert.Equal(t, "invoice", monitor.query)
	assert.Equal(t, 3, monitor.enumerated)
	assert.False(t, monitor.contentRead, "content hook only fires in content mode")
	assert.Equal(t, 3, monitor.scored)
	assert.True(t, monitor.finishCalled)
	assert.Same(t, result, monitor.result)
}

// testMonitor is a simple test implementation of SearchMonitor
type testMonitor struct {
	startCalled  bool
	query        string
	enumerated   int
	contentRead  bool
	degraded     int
	scored       int
	finishCalled bool
	result       *core.FilterResult
}

func (m *testMonitor) Start(cfg core.SearchConfig) {
	m.startCalled = true
	m.query = cfg.Query
}

func (m *testMonitor) AfterEnumeration(candidates []core.Candidate) {
	m.enumerated = len(candidates)
}

func (m *testMonitor) AfterContentRead(_ []core.Candidate, degraded int) {
	m.contentRead = true
	m.degraded = degraded
}

func (m *testMonitor) AfterRanking(scored []core.ScoredResult) {
	m.scored = len(scored)
}

func (m *testMonitor) Finish(result *core.FilterResult) {
	m.finishCalled = true
	m.result = result
}
