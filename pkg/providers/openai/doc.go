// Package openai implements the providers.Provider interface for OpenAI's
// Chat Completions API. The generic adapter reuses this package for any
// OpenAI-compatible endpoint.
package openai
