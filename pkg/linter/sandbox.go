package linter

import (
	"errors"

	"github.com/platinummonkey/pslint/pkg/observability"
	"github.com/platinummonkey/pslint/pkg/script"
)

// invokeRule runs one rule against one node with full isolation: a panic
// or error in the rule becomes a RuleFault and the traversal carries on.
// A rule that fails with ErrFileUnavailable is skipped silently, since
// missing source text is an environmental condition, not a rule defect.
func invokeRule(rule Rule, node script.Node, ctx *Context) (diags []Diagnostic, fault *RuleFault) {
	defer func() {
		if r := recover(); r != nil {
			diags = nil
			fault = &RuleFault{
				Rule: rule.Name(),
				Kind: node.Kind(),
				Err:  observability.MustRecover(r),
			}
		}
	}()

	diags, err := rule.Check(node, ctx)
	if err != nil {
		if errors.Is(err, ErrFileUnavailable) {
			return nil, nil
		}
		return nil, &RuleFault{Rule: rule.Name(), Kind: node.Kind(), Err: err}
	}
	return diags, nil
}
