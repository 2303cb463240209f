package rules

import (
	"strings"

	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// FileEndRule checks that a file ends with exactly one trailing newline.
// It fires on the tree root only, so one file yields at most one
// diagnostic: either the newline is missing or there is more than one,
// never both.
type FileEndRule struct {
	BaseRule
}

// NewFileEndRule creates a new file end rule
func NewFileEndRule() *FileEndRule {
	return &FileEndRule{
		BaseRule: BaseRule{
			RuleName:        "file-end-newline",
			RuleKinds:       []script.NodeKind{script.KindScriptBlock},
			RuleSeverity:    linter.SeverityWarning,
			RuleDescription: "Files must end with exactly one trailing newline",
		},
	}
}

// Check validates the file's trailing newline
func (r *FileEndRule) Check(node script.Node, ctx *linter.Context) ([]linter.Diagnostic, error) {
	if node.Parent() != nil {
		return nil, nil
	}

	text, err := ctx.RawText()
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	if !strings.HasSuffix(text, "\n") {
		return []linter.Diagnostic{
			r.diagnostic(node, ctx, "File should end with a newline"),
		}, nil
	}
	if strings.HasSuffix(strings.TrimSuffix(text, "\n"), "\n") {
		return []linter.Diagnostic{
			r.diagnostic(node, ctx, "File should end with exactly one trailing newline"),
		}, nil
	}
	return nil, nil
}
