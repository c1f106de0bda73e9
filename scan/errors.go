package scan

import "errors"

var (
	// ErrNotDirectory is returned when the search root is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrBinaryContent is returned when a file excerpt does not decode to text.
	ErrBinaryContent = errors.New("content is not text")
)
