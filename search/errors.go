// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import "errors"

var (
	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmbedding wraps failures reported by the embedding backend.
	ErrEmbedding = errors.New("embedding failed")

	// ErrEmbedderContract indicates the embedder returned output that breaks
	// its contract. It points at the backend or environment, not user input.
	ErrEmbedderContract = errors.New("embedder contract violation")

	// ErrBatchSizeMismatch indicates a vector count different from the text count.
	ErrBatchSizeMismatch = errors.New("embedding batch size mismatch")

	// ErrZeroVector indicates a vector whose L2 norm cannot be divided by.
	ErrZeroVector = errors.New("embedding vector has zero or non-finite norm")

	// ErrDimensionMismatch indicates vectors of different lengths in one batch.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
