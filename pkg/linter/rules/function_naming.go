package rules

import (
	"regexp"

	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// Verb-Noun: each side one or more capitalized words, exactly one hyphen.
var functionNamePattern = regexp.MustCompile(`^([A-Z][a-z]*)+-([A-Z][a-z]*)+$`)

// FunctionNamingRule checks that function names follow the Verb-Noun form
type FunctionNamingRule struct {
	BaseRule
}

// NewFunctionNamingRule creates a new function naming rule
func NewFunctionNamingRule() *FunctionNamingRule {
	return &FunctionNamingRule{
		BaseRule: BaseRule{
			RuleName:        "function-naming",
			RuleKinds:       []script.NodeKind{script.KindFunctionDefinition},
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Function names must use the Verb-Noun form with capitalized words",
		},
	}
}

// Check validates function names
func (r *FunctionNamingRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	fn, ok := node.(*script.FunctionDefinitionNode)
	if !ok || fn.Name == "" {
		return nil, nil
	}
	if functionNamePattern.MatchString(fn.Name) {
		return nil, nil
	}
	return []linter.Diagnostic{
		r.diagnostic(node, ctx, "Function name '"+fn.Name+"' should use the Verb-Noun form, e.g. 'Get-Item'"),
	}, nil
}
