package rules

import "github.com/platinummonkey/pslint/pkg/linter"

// DefaultRules returns all built-in lint rules in their canonical
// registration order. Registration order fixes diagnostic order within a
// node, so this list is ordering-sensitive.
func DefaultRules() []linter.Rule {
	return []linter.Rule{
		// Naming rules
		NewFunctionNamingRule(),
		NewTypeNamingRule(),
		NewAttributeNamingRule(),
		NewGlobalVariableNamingRule(),
		NewParameterNamingRule(),
		NewConstantNamingRule(),

		// Layout rules
		NewBlankLinesRule(),
		NewFileEndRule(),

		// Structural rules
		NewBlockOrderRule(),
		NewContinueContextRule(),
		NewReturnContextRule(),
	}
}

// NewDefaultRegistry builds a registry preloaded with the built-in rules.
func NewDefaultRegistry() *linter.Registry {
	registry := linter.NewRegistry()
	registry.MustRegister(DefaultRules()...)
	return registry
}
