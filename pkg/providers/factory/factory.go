// Package factory constructs provider adapters by type. It lives outside
// package providers so the concrete adapters can import the shared interface
// without a cycle.
package factory

import (
	"fmt"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers/anthropic"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers/generic"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers/openai"
)

// New creates a provider adapter for the given configuration, dispatching on
// config.Type. Supported types are "anthropic", "openai", and "generic"
// (any OpenAI-compatible endpoint).
func New(config providers.ProviderConfig) (providers.Provider, error) {
	switch config.Type {
	case "anthropic":
		return anthropic.NewProvider(config)
	case "openai":
		return openai.NewProvider(config)
	case "generic":
		return generic.NewProvider(config)
	default:
		return nil, fmt.Errorf("unknown provider type %q (supported: anthropic, openai, generic)", config.Type)
	}
}
