// Package hashing provides an offline ai.Embedder based on feature hashing.
//
// Vectors are built from lowercased words and padded character trigrams,
// hashed with BLAKE2b into a fixed number of signed buckets. Results are
// deterministic across runs and machines, which makes the backend useful
// when no model server is available and for end-to-end tests.
package hashing
