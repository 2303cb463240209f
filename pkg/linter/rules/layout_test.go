package rules

import (
	"strings"
	"testing"

	"github.com/platinummonkey/pslint/pkg/script"
)

// fnAt builds a function definition spanning the given 1-based lines,
// matching what the parser produces for position bookkeeping.
func fnAt(name string, startLine, endLine int) *script.FunctionDefinitionNode {
	return &script.FunctionDefinitionNode{
		Name:   name,
		Pos:    script.Position{Line: startLine, Column: 1},
		EndPos: script.Position{Line: endLine, Column: 2},
	}
}

func TestBlankLinesRule(t *testing.T) {
	rule := NewBlankLinesRule()

	tests := []struct {
		name      string
		src       string
		startLine int
		endLine   int
		wantDiags int
	}{
		{
			name:      "two blank lines on each side",
			src:       "Get-Item\n\n\nfunction Get-Thing {\n}\n\n\nGet-Item\n",
			startLine: 4,
			endLine:   5,
			wantDiags: 0,
		},
		{
			name:      "none before three after",
			src:       "Get-Item\nfunction Get-Thing {\n}\n\n\n\nGet-Item\n",
			startLine: 2,
			endLine:   3,
			wantDiags: 1,
		},
		{
			name:      "none on either side",
			src:       "Get-Item\nfunction Get-Thing {\n}\nGet-Item\n",
			startLine: 2,
			endLine:   3,
			wantDiags: 2,
		},
		{
			name:      "one blank line is not enough",
			src:       "Get-Item\n\nfunction Get-Thing {\n}\n\nGet-Item\n",
			startLine: 3,
			endLine:   4,
			wantDiags: 2,
		},
		{
			name:      "file boundaries count as blank",
			src:       "function Get-Thing {\n}\n",
			startLine: 1,
			endLine:   2,
			wantDiags: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := fnAt("Get-Thing", tt.startLine, tt.endLine)

			diags, err := rule.Check(node, testContext(tt.src))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(diags) != tt.wantDiags {
				t.Errorf("Expected %d diagnostics, got %d", tt.wantDiags, len(diags))
				for _, d := range diags {
					t.Logf("  %s", d.Message)
				}
			}
		})
	}
}

func TestBlankLinesRuleClassLabel(t *testing.T) {
	rule := NewBlankLinesRule()
	node := &script.TypeDefinitionNode{
		Name:   "Widget",
		Pos:    script.Position{Line: 2, Column: 1},
		EndPos: script.Position{Line: 3, Column: 2},
	}

	diags, err := rule.Check(node, testContext("Get-Item\nclass Widget {\n}\nGet-Item\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d", len(diags))
	}
	for _, d := range diags {
		if !strings.HasPrefix(d.Message, "Class 'Widget'") {
			t.Errorf("Expected message to name the class, got %q", d.Message)
		}
	}
}

func TestFileEndRule(t *testing.T) {
	rule := NewFileEndRule()

	tests := []struct {
		name      string
		src       string
		wantDiags int
	}{
		{"single trailing newline", "Get-Item\n", 0},
		{"missing trailing newline", "Get-Item", 1},
		{"too many trailing newlines", "Get-Item\n\n\n", 1},
		{"empty file", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &script.ScriptBlockNode{File: "test.ps1"}

			diags, err := rule.Check(node, testContext(tt.src))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(diags) != tt.wantDiags {
				t.Errorf("Expected %d diagnostics, got %d", tt.wantDiags, len(diags))
			}
		})
	}
}

func TestFileEndRuleIgnoresNestedBlocks(t *testing.T) {
	rule := NewFileEndRule()

	root := &script.ScriptBlockNode{File: "test.ps1"}
	body := &script.ScriptBlockNode{File: "test.ps1"}
	script.Adopt(root, body)

	diags, err := rule.Check(body, testContext("Get-Item"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("Expected nested block to be skipped, got %d diagnostics", len(diags))
	}
}
