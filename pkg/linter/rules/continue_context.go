package rules

import (
	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// ContinueContextRule flags a continue statement with no enclosing loop.
// The upward walk stops at the nearest function boundary: a continue
// inside a function body cannot target a loop outside it.
type ContinueContextRule struct {
	BaseRule
}

// NewContinueContextRule creates a new continue context rule
func NewContinueContextRule() *ContinueContextRule {
	return &ContinueContextRule{
		BaseRule: BaseRule{
			RuleName:        "continue-outside-loop",
			RuleKinds:       []script.NodeKind{script.KindContinueStatement},
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "continue must appear inside a loop",
		},
	}
}

// Check validates the continue statement's context
func (r *ContinueContextRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	for p := node.Parent(); p != nil; p = p.Parent() {
		switch p.Kind() {
		case script.KindLoopStatement:
			return nil, nil
		case script.KindFunctionDefinition:
			return []linter.Diagnostic{
				r.diagnostic(node, ctx, "continue used outside of a loop"),
			}, nil
		}
	}
	return []linter.Diagnostic{
		r.diagnostic(node, ctx, "continue used outside of a loop"),
	}, nil
}
