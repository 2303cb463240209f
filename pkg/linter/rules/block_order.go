package rules

import (
	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// Canonical ordering of the labeled sub-sections of a body. Blocks outside
// this set carry no ordering constraint.
var blockRank = map[string]int{
	"param":   0,
	"begin":   1,
	"process": 2,
	"end":     3,
	"clean":   4,
}

// BlockOrderRule checks that the named blocks of a body appear in their
// canonical order: param, begin, process, end, clean. The first
// out-of-order pair is reported once, anchored at the second block.
type BlockOrderRule struct {
	BaseRule
}

// NewBlockOrderRule creates a new block order rule
func NewBlockOrderRule() *BlockOrderRule {
	return &BlockOrderRule{
		BaseRule: BaseRule{
			RuleName:        "named-block-order",
			RuleKinds:       []script.NodeKind{script.KindScriptBlock},
			RuleSeverity:    linter.SeverityError,
			RuleDescription: "Named blocks must appear in param, begin, process, end, clean order",
		},
	}
}

// Check validates named block ordering among a block's immediate children
func (r *BlockOrderRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	var blocks []*script.NamedBlockNode
	for _, child := range node.Children() {
		nb, ok := child.(*script.NamedBlockNode)
		if !ok {
			continue
		}
		if _, ranked := blockRank[nb.BlockName]; ranked {
			blocks = append(blocks, nb)
		}
	}
	if len(blocks) < 2 {
		return nil, nil
	}

	for i := 1; i < len(blocks); i++ {
		prev, cur := blocks[i-1], blocks[i]
		if blockRank[cur.BlockName] < blockRank[prev.BlockName] {
			return []linter.Diagnostic{
				r.diagnostic(cur, ctx,
					"Block '"+cur.BlockName+"' must come before '"+prev.BlockName+"'"),
			}, nil
		}
	}
	return nil, nil
}
