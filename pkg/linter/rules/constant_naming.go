package rules

import (
	"strings"

	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// ConstantNamingRule checks constants declared via New-Variable or
// Set-Variable with -Option Constant: the literal -Name argument must
// start with an uppercase letter. Names built dynamically (variables,
// expressions) are out of reach and skipped.
type ConstantNamingRule struct {
	BaseRule
}

// NewConstantNamingRule creates a new constant naming rule
func NewConstantNamingRule() *ConstantNamingRule {
	return &ConstantNamingRule{
		BaseRule: BaseRule{
			RuleName:        "constant-naming",
			RuleKinds:       []script.NodeKind{script.KindCommand},
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Constant names must start with an uppercase letter",
		},
	}
}

// Check validates constant declarations
func (r *ConstantNamingRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	cmd, ok := node.(*script.CommandNode)
	if !ok {
		return nil, nil
	}
	name := strings.ToLower(cmd.Name)
	if name != "new-variable" && name != "set-variable" {
		return nil, nil
	}
	if !hasOptionConstant(cmd) {
		return nil, nil
	}
	constName, ok := cmd.ArgAfter("-Name")
	if !ok {
		return nil, nil
	}
	constName = strings.Trim(constName, `"'`)
	if constName == "" || strings.HasPrefix(constName, "$") {
		return nil, nil
	}
	if startsUpper(constName) {
		return nil, nil
	}
	return []linter.Diagnostic{
		r.diagnostic(node, ctx, "Constant '"+constName+"' should start with an uppercase letter"),
	}, nil
}

func hasOptionConstant(cmd *script.CommandNode) bool {
	opt, ok := cmd.ArgAfter("-Option")
	return ok && strings.EqualFold(opt, "Constant")
}
