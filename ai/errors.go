package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)

// StatusError reports an HTTP error status returned by an embedding service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("embedding service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("embedding service returned status %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether sending the same request again may succeed.
// Context errors and client errors are final; 408 and 429 are the
// exceptions among client errors.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return true
		}
		return statusErr.StatusCode >= http.StatusInternalServerError
	}
	return true
}
