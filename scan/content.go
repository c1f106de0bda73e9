package scan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/ssearch/core"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ExcerptReader reads bounded content excerpts for candidates.
type ExcerptReader struct {
	maxBytes int
	poolSize int
	progress io.Writer
	logger   *slog.Logger
}

// ExcerptOption configures an ExcerptReader.
type ExcerptOption func(*ExcerptReader)

// WithPoolSize sets the number of concurrent file reads.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) ExcerptOption {
	return func(r *ExcerptReader) {
		if size < 1 {
			size = 1
		}
		r.poolSize = size
	}
}

// WithProgress reports read progress to w (typically os.Stderr).
func WithProgress(w io.Writer) ExcerptOption {
	return func(r *ExcerptReader) {
		r.progress = w
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ExcerptOption {
	return func(r *ExcerptReader) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewExcerptReader creates a reader that keeps at most maxBytes of each file.
func NewExcerptReader(maxBytes int, opts ...ExcerptOption) *ExcerptReader {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	r := &ExcerptReader{
		maxBytes: max(maxBytes, 0),
		poolSize: poolSize,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "excerpt-reader")
	return r
}

// Read returns a copy of candidates with Excerpt populated, in the same
// order, plus the number of candidates that fell back to name-only text.
// Per-file failures never fail the call; only cancellation does.
func (r *ExcerptReader) Read(ctx context.Context, candidates []core.Candidate) ([]core.Candidate, int, error) {
	out := make([]core.Candidate, len(candidates))
	copy(out, candidates)

	if len(out) == 0 || r.maxBytes == 0 {
		return out, 0, nil
	}

	r.logger.Debug("reading content excerpts",
		"files", len(out),
		"limit", humanize.Bytes(uint64(r.maxBytes)),
		"workers", r.poolSize)

	pool, err := ants.NewPool(r.poolSize)
	if err != nil {
		return nil, 0, fmt.Errorf("create read pool: %w", err)
	}
	defer pool.Release()

	var tracker *ProgressTracker
	if r.progress != nil {
		tracker = NewProgressTracker(r.progress, len(out), max(len(out)/20, 1))
		tracker.Start()
	}

	var (
		wg       sync.WaitGroup
		degraded atomic.Int64
		total    atomic.Int64
	)

	for i := range out {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			if tracker != nil {
				defer tracker.Increment(1)
			}
			if ctx.Err() != nil {
				return
			}

			excerpt, err := readExcerpt(out[i].Path, r.maxBytes)
			if err != nil {
				r.logger.Debug("using name only", "path", out[i].Path, "err", err)
				degraded.Add(1)
				return
			}
			// Each task owns exactly one slot, so no locking is needed
			out[i].Excerpt = excerpt
			total.Add(int64(len(excerpt)))
		}

		if err := pool.Submit(task); err != nil {
			wg.Done()
			r.logger.Warn("could not schedule content read", "path", out[i].Path, "err", err)
			degraded.Add(1)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if tracker != nil {
		tracker.Finish()
	}

	r.logger.Debug("content excerpts read",
		"bytes", humanize.Bytes(uint64(total.Load())),
		"degraded", degraded.Load())

	return out, int(degraded.Load()), nil
}

// readExcerpt reads up to maxBytes from path and decodes it to text.
func readExcerpt(path string, maxBytes int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, int64(maxBytes)))
	if err != nil {
		return "", err
	}
	return decodeExcerpt(raw)
}

// decodeExcerpt turns a raw prefix into UTF-8 text. A byte order mark
// selects UTF-8 or UTF-16 decoding. A rune cut off by the byte limit is
// dropped. Text that is still not valid UTF-8 is read as ISO-8859-1. NUL
// bytes mark binary content.
func decodeExcerpt(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	if isUTF16BOM(raw) && len(raw)%2 == 1 {
		raw = raw[:len(raw)-1]
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBinaryContent, err)
	}

	if bytes.IndexByte(decoded, 0) >= 0 {
		return "", ErrBinaryContent
	}

	if trimmed := trimPartialRune(decoded); utf8.Valid(trimmed) {
		return string(trimmed), nil
	}

	latin1, err := charmap.ISO8859_1.NewDecoder().Bytes(decoded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBinaryContent, err)
	}
	return string(latin1), nil
}

func isUTF16BOM(b []byte) bool {
	return len(b) >= 2 && ((b[0] == 0xFE && b[1] == 0xFF) || (b[0] == 0xFF && b[1] == 0xFE))
}

// trimPartialRune drops an incomplete multi-byte sequence at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax && i <= len(b); i++ {
		start := len(b) - i
		if !utf8.RuneStart(b[start]) {
			continue
		}
		if !utf8.FullRune(b[start:]) {
			return b[:start]
		}
		break
	}
	return b
}
