// Package openai implements the ai.Embedder interface using OpenAI-compatible
// embedding APIs. It works with any server exposing the OpenAI embeddings
// endpoint, including Ollama, LocalAI and vLLM.
package openai
