package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/poiesic/ssearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(total, matched int, paths ...string) *core.FilterResult {
	r := &core.FilterResult{Total: total, Matched: matched}
	for _, p := range paths {
		r.Kept = append(r.Kept, core.ScoredResult{Candidate: core.Candidate{Path: p}})
	}
	return r
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name       string
		result     *core.FilterResult
		threshold  float64
		maxResults int
		want       string
	}{
		{
			name:       "filtered only",
			result:     result(3, 2, "/d/invoice_april.pdf", "/d/invoice_march.pdf"),
			threshold:  0.3,
			maxResults: 2,
			want: "/d/invoice_april.pdf\n/d/invoice_march.pdf\n\n" +
				"1 files were filtered out because they did not meet the similarity threshold of 0.3\n",
		},
		{
			name:       "capped and filtered",
			result:     result(10, 4, "/d/a", "/d/b"),
			threshold:  0.5,
			maxResults: 2,
			want: "/d/a\n/d/b\n\n" +
				"Showing only the top 2 results (out of 4). You can increase the number of results using the --max-results option\n" +
				"6 files were filtered out because they did not meet the similarity threshold of 0.5\n",
		},
		{
			name:       "zero max results",
			result:     result(3, 3),
			threshold:  0,
			maxResults: 0,
			want: "\n" +
				"Showing only the top 0 results (out of 3). You can increase the number of results using the --max-results option\n",
		},
		{
			name:       "everything shown",
			result:     result(1, 1, "/d/only"),
			threshold:  0.3,
			maxResults: 25,
			want:       "/d/only\n\n",
		},
		{
			name:       "empty directory",
			result:     result(0, 0),
			threshold:  0.3,
			maxResults: 25,
			want:       "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, tt.result, tt.threshold, tt.maxResults))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestSummary_CapMessageIffCapped(t *testing.T) {
	for matched := 0; matched <= 5; matched++ {
		for maxResults := 0; maxResults <= 5; maxResults++ {
			lines := Summary(result(5, matched), 0.3, maxResults)
			hasCap := len(lines) > 0 && lines[0] == CapMessage(maxResults, matched)
			assert.Equal(t, matched > maxResults, hasCap, "matched=%d max=%d", matched, maxResults)
		}
	}
}

func TestFilteredMessage_ThresholdFormatting(t *testing.T) {
	assert.Equal(t, "2 files were filtered out because they did not meet the similarity threshold of 0.25",
		FilteredMessage(2, 0.25))
	assert.Equal(t, "1 files were filtered out because they did not meet the similarity threshold of 1",
		FilteredMessage(1, 1))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWrite_PropagatesWriterError(t *testing.T) {
	err := Write(failingWriter{}, result(1, 1, "/d/a"), 0.3, 25)
	assert.Error(t, err)
}
