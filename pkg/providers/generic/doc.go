// Package generic adapts any OpenAI-compatible endpoint (Ollama, vLLM,
// LM Studio, FastChat) to the providers.Provider interface by delegating to
// the openai adapter with a custom base URL and an optional API key.
package generic
