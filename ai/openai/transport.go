package openai

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/poiesic/ssearch/ai"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 4 << 10

// statusDoer turns HTTP error responses into *ai.StatusError so callers can
// tell client errors from transient failures.
type statusDoer struct {
	client *http.Client
}

func (d *statusDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < http.StatusBadRequest {
		return resp, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, &ai.StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
}

// errorMessage extracts error.message from an OpenAI-style error body,
// falling back to the raw text.
func errorMessage(body []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return string(bytes.TrimSpace(body))
}
