package rules

import (
	"strings"

	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// BlankLinesRule checks that function and class definitions are set off by
// at least two blank lines on each side. Definitions touching the start or
// end of the file trivially satisfy that side.
type BlankLinesRule struct {
	BaseRule
}

// NewBlankLinesRule creates a new blank lines rule
func NewBlankLinesRule() *BlankLinesRule {
	return &BlankLinesRule{
		BaseRule: BaseRule{
			RuleName: "blank-lines-around-declarations",
			RuleKinds: []script.NodeKind{
				script.KindFunctionDefinition,
				script.KindTypeDefinition,
			},
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Function and class definitions must have at least 2 blank lines before and after",
		},
	}
}

// Check validates surrounding blank lines
func (r *BlankLinesRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	lines, err := ctx.Lines()
	if err != nil {
		return nil, err
	}

	startLine := node.Position().Line
	endLine := node.End().Line

	var diags []linter.Diagnostic
	if !blankRun(lines, startLine-2, startLine-1) {
		diags = append(diags, r.diagnostic(node, ctx,
			declarationLabel(node)+" should be preceded by at least 2 blank lines"))
	}
	if !blankRun(lines, endLine+1, endLine+2) {
		diags = append(diags, r.diagnostic(node, ctx,
			declarationLabel(node)+" should be followed by at least 2 blank lines"))
	}
	return diags, nil
}

// blankRun reports whether every 1-based line in [from, to] is blank.
// Lines outside the file count as blank: the file boundary satisfies the
// spacing requirement.
func blankRun(lines []string, from, to int) bool {
	for ln := from; ln <= to; ln++ {
		if ln < 1 || ln > len(lines) {
			continue
		}
		if strings.TrimSpace(lines[ln-1]) != "" {
			return false
		}
	}
	return true
}

func declarationLabel(node script.Node) string {
	switch n := node.(type) {
	case *script.FunctionDefinitionNode:
		if n.Name != "" {
			return "Function '" + n.Name + "'"
		}
		return "Function"
	case *script.TypeDefinitionNode:
		if n.Name != "" {
			return "Class '" + n.Name + "'"
		}
		return "Class"
	}
	return "Declaration"
}
