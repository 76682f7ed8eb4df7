// Package generator provides hosted language model clients for
// recommendation and impact-narrative generation.
//
// Supports OpenAI, Groq (OpenAI-compatible) and Anthropic chat APIs. All
// clients rate-limit outgoing requests and retry transient failures with
// exponential backoff.
package generator
