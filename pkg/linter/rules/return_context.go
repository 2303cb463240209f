package rules

import (
	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// ReturnContextRule reports a return statement at script top level, i.e.
// one whose ancestor chain reaches the root without crossing a function.
// Top-level return ends the whole script, which is usually unintended, so
// this reports at info severity rather than flagging an error.
type ReturnContextRule struct {
	BaseRule
}

// NewReturnContextRule creates a new return context rule
func NewReturnContextRule() *ReturnContextRule {
	return &ReturnContextRule{
		BaseRule: BaseRule{
			RuleName:        "return-outside-function",
			RuleKinds:       []script.NodeKind{script.KindReturnStatement},
			RuleSeverity:    linter.SeverityInfo,
			RuleDescription: "return at script top level ends the entire script",
		},
	}
}

// Check validates the return statement's context
func (r *ReturnContextRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	for p := node.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == script.KindFunctionDefinition {
			return nil, nil
		}
	}
	return []linter.Diagnostic{
		r.diagnostic(node, ctx, "return used outside of a function"),
	}, nil
}
