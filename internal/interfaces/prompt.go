package interfaces

import "informal-cli/pkg/informal"

// PromptRenderer expands prompt text against the answers collected so far
type PromptRenderer interface {
	// Render executes text as a template with data
	Render(name, text string, data map[string]interface{}) (string, error)
}

// ResolverProvider hands out resolvers bound to the configured input backend
type ResolverProvider interface {
	// Resolver returns the resolver to use, hiding typed input when secret is set
	Resolver(secret bool) *informal.Resolver
}
