package rules

import (
	"regexp"

	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// A single capitalized word: no internal uppercase, no separators.
var typeNamePattern = regexp.MustCompile(`^[A-Z][a-z0-9]*$`)

// TypeNamingRule checks that class names are a single capitalized word
type TypeNamingRule struct {
	BaseRule
}

// NewTypeNamingRule creates a new type naming rule
func NewTypeNamingRule() *TypeNamingRule {
	return &TypeNamingRule{
		BaseRule: BaseRule{
			RuleName:        "type-naming",
			RuleKinds:       []script.NodeKind{script.KindTypeDefinition},
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Class names must be a single capitalized word",
		},
	}
}

// Check validates class names
func (r *TypeNamingRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	cls, ok := node.(*script.TypeDefinitionNode)
	if !ok || cls.Name == "" {
		return nil, nil
	}
	if typeNamePattern.MatchString(cls.Name) {
		return nil, nil
	}
	return []linter.Diagnostic{
		r.diagnostic(node, ctx, "Class name '"+cls.Name+"' should be a single capitalized word"),
	}, nil
}
