package rules

import (
	"unicode"
	"unicode/utf8"

	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/script"
)

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleName        string
	RuleKinds       []script.NodeKind
	RuleSeverity    linter.Severity
	RuleDescription string
}

func (r *BaseRule) Name() string              { return r.RuleName }
func (r *BaseRule) Kinds() []script.NodeKind  { return r.RuleKinds }
func (r *BaseRule) Severity() linter.Severity { return r.RuleSeverity }
func (r *BaseRule) Description() string       { return r.RuleDescription }

// diagnostic builds a diagnostic for node with the rule's own severity.
func (r *BaseRule) diagnostic(node script.Node, ctx *linter.Context, message string) linter.Diagnostic {
	return linter.Diagnostic{
		Rule:     r.RuleName,
		Severity: r.RuleSeverity,
		Message:  message,
		Span:     linter.SpanOf(node, ctx.FilePath),
	}
}

// startsUpper reports whether the first rune of s is an uppercase letter.
// Names may contain internal capitals, numerals and underscores; only the
// leading character is constrained.
func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
