package rules

import (
	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// AttributeNamingRule checks that attribute type names start uppercase
type AttributeNamingRule struct {
	BaseRule
}

// NewAttributeNamingRule creates a new attribute naming rule
func NewAttributeNamingRule() *AttributeNamingRule {
	return &AttributeNamingRule{
		BaseRule: BaseRule{
			RuleName:        "attribute-naming",
			RuleKinds:       []script.NodeKind{script.KindAttribute},
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Attribute names must start with an uppercase letter",
		},
	}
}

// Check validates attribute type names
func (r *AttributeNamingRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	attr, ok := node.(*script.AttributeNode)
	if !ok || attr.TypeName == "" {
		return nil, nil
	}
	if startsUpper(attr.TypeName) {
		return nil, nil
	}
	return []linter.Diagnostic{
		r.diagnostic(node, ctx, "Attribute name '"+attr.TypeName+"' should start with an uppercase letter"),
	}, nil
}
