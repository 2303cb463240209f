package rules

import (
	"strings"

	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// GlobalVariableNamingRule checks that global variables start uppercase
type GlobalVariableNamingRule struct {
	BaseRule
}

// NewGlobalVariableNamingRule creates a new global variable naming rule
func NewGlobalVariableNamingRule() *GlobalVariableNamingRule {
	return &GlobalVariableNamingRule{
		BaseRule: BaseRule{
			RuleName:        "global-variable-naming",
			RuleKinds:       []script.NodeKind{script.KindVariable},
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Global variable names must start with an uppercase letter",
		},
	}
}

// Check validates global variable names. Only globally scoped variables
// are constrained; locals are free-form.
func (r *GlobalVariableNamingRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	v, ok := node.(*script.VariableNode)
	if !ok || v.Name == "" {
		return nil, nil
	}
	if !strings.EqualFold(v.Scope, "global") {
		return nil, nil
	}
	if startsUpper(v.Name) {
		return nil, nil
	}
	return []linter.Diagnostic{
		r.diagnostic(node, ctx, "Global variable '"+v.Name+"' should start with an uppercase letter"),
	}, nil
}
