// Package anthropic implements the providers.Provider interface for
// Anthropic's Messages API.
//
// The adapter extracts the system message into Anthropic's dedicated system
// field, enforces the user/assistant alternation the API requires, and
// normalizes stop reasons back to the provider-agnostic values.
package anthropic
