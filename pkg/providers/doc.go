// Package providers defines the provider-agnostic LLM completion interface and
// the shared HTTP machinery that concrete adapters build on.
//
// A Provider accepts a normalized CompletionRequest, transforms it to the
// provider's wire format, sends it with retry and backoff, and normalizes the
// response back into a CompletionResponse. Adapters for specific APIs live in
// subpackages (anthropic, openai, generic); pick one by type through
// providers/factory.
//
// The judge capability in pkg/judge and the send command both speak this
// interface and are indifferent to which adapter sits behind it.
package providers
