// Package embeddings provides embedding generation via multiple providers.
//
// Supports FastEmbed (local ONNX), OpenAI-compatible APIs, and TEI
// (Text Embeddings Inference) servers. A factory selects the provider at
// runtime and detects embedding dimensions for common models.
package embeddings
