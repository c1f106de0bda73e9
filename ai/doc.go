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


// Package ai provides abstractions for the embedding services used by ssearch.
//
// The ranking pipeline depends only on the Embedder interface, so it can be
// exercised against deterministic test doubles without running inference.
//
// # Design Principles
//
// The package is designed around two interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - AIProvider: Owns an Embedder and its lifecycle
//
// # Implementation Packages
//
//   - ai/ollama: Local Ollama server (default, MiniLM model)
//   - ai/openai: OpenAI-compatible /v1 embedding APIs
//   - ai/hashing: Offline hashed-feature embeddings, no model server needed
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (ollama.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types. Test utility constructors (mock.NewMockEmbedder) return
// CONCRETE types so tests can inject behaviour and inspect call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithDevice(core.DeviceCPU))
//	provider, err := ollama.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vectors, err := provider.Embedder().EmbedTexts(ctx, []string{"invoice", "invoice_march.pdf"})
//
// # Device Hint
//
// Config.Device is opaque to everything but the backend. The Ollama backend
// maps "cpu" to zero GPU layers; the others ignore it.
package ai
