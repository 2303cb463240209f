package linter

import "github.com/platinummonkey/pslint/pkg/script"

// Span locates a diagnostic in source: byte offsets plus 1-based lines.
type Span struct {
	File        string `json:"file,omitempty"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
}

// SpanOf builds a Span covering node n in the named file.
func SpanOf(n script.Node, file string) Span {
	return Span{
		File:        file,
		StartOffset: n.Position().Offset,
		EndOffset:   n.End().Offset,
		StartLine:   n.Position().Line,
		EndLine:     n.End().Line,
	}
}

// Diagnostic is a single finding produced by a rule. Diagnostics are
// immutable once collected.
type Diagnostic struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Span     Span     `json:"span"`
}
