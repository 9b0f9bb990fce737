// Echo PDK is a prompt development kit built around EPL, a small templating
// language for assembling LLM prompts.
//
// EPL documents mix literal text, variable interpolation, named sections,
// imports/includes, and conditional branches whose predicates may be
// AI-judged (an LLM answers a yes/no question about a value) or backed by
// externally stored context assets.
//
// Usage:
//
//	# Validate a template and report every diagnostic
//	echo lint --file prompt.epl
//
//	# Render a template with bindings
//	echo render --file prompt.epl --var name=World
//
//	# Re-render on every save
//	echo render --file prompt.epl --var name=World --watch
//
//	# Render and submit through a configured provider
//	echo send --file prompt.epl --provider anthropic
//
//	# Manage the local context asset store
//	echo context put plp://guides/style ./style.md
//	echo context sync
//
//	# Show version information
//	echo version
package main

func main() {
	Execute()
}
