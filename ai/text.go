package ai

import "strings"

// StripNewLines replaces line breaks with spaces in each text.
// Embedding models treat newlines as noise and some servers reject them.
func StripNewLines(texts []string) []string {
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = strings.Join(strings.Fields(text), " ")
	}
	return out
}
