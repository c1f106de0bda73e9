// Package ollama provides an ai.Embedder backed by a local Ollama server.
//
// The default model is all-minilm, the MiniLM-L6 sentence-transformers model
// packaged for Ollama. Pull it once with `ollama pull all-minilm`.
//
// Each batch is sent as one /api/embed request. The device hint travels in
// the request options: "cpu" sets num_gpu to 0, while "cuda" and auto leave
// GPU offload to the server.
package ollama
