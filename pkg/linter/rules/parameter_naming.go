package rules

import (
	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// ParameterNamingRule checks that parameter names start uppercase
type ParameterNamingRule struct {
	BaseRule
}

// NewParameterNamingRule creates a new parameter naming rule
func NewParameterNamingRule() *ParameterNamingRule {
	return &ParameterNamingRule{
		BaseRule: BaseRule{
			RuleName:        "parameter-naming",
			RuleKinds:       []script.NodeKind{script.KindParameter},
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Parameter names must start with an uppercase letter",
		},
	}
}

// Check validates parameter names
func (r *ParameterNamingRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	p, ok := node.(*script.ParameterNode)
	if !ok || p.Name == "" {
		return nil, nil
	}
	if startsUpper(p.Name) {
		return nil, nil
	}
	return []linter.Diagnostic{
		r.diagnostic(node, ctx, "Parameter '"+p.Name+"' should start with an uppercase letter"),
	}, nil
}
