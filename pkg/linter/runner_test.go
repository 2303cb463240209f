package linter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/pslint/pkg/script"
)

// countingRule counts script block visits so tests can observe whether a
// parse was served from the tree cache (the lint itself always runs).
func countingRule() (*stubRule, *int) {
	count := 0
	rule := newStubRule("count-blocks", script.KindScriptBlock)
	rule.check = func(node script.Node, ctx *Context) ([]Diagnostic, error) {
		count++
		return []Diagnostic{{
			Rule:     "count-blocks",
			Severity: SeverityInfo,
			Message:  "block",
			Span:     SpanOf(node, ctx.FilePath),
		}}, nil
	}
	return rule, &count
}

func newTestRunner(t *testing.T, opts ...RunnerOption) *Runner {
	t.Helper()
	rule, _ := countingRule()
	registry := NewRegistry()
	registry.MustRegister(rule)
	engine := NewEngine(registry)
	return NewRunner(engine, DefaultConfig(), opts...)
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunnerLintFilesSorted(t *testing.T) {
	dir := t.TempDir()
	b := writeScript(t, dir, "b.ps1", "Get-Item\n")
	a := writeScript(t, dir, "a.ps1", "Get-Item\n")
	c := writeScript(t, dir, "c.ps1", "Get-Item\n")

	runner := newTestRunner(t)
	results, err := runner.LintFiles(context.Background(), []string{b, c, a})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, a, results[0].Path)
	assert.Equal(t, b, results[1].Path)
	assert.Equal(t, c, results[2].Path)
	for _, fr := range results {
		require.NoError(t, fr.Err)
		require.NotNil(t, fr.Result)
		assert.NotEmpty(t, fr.Result.Diagnostics)
	}
}

func TestRunnerMissingFile(t *testing.T) {
	runner := newTestRunner(t)
	results, err := runner.LintFiles(context.Background(), []string{"no/such/file.ps1"})
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Nil(t, results[0].Result)
}

func TestRunnerIgnoresConfiguredPaths(t *testing.T) {
	dir := t.TempDir()
	keep := writeScript(t, dir, "keep.ps1", "Get-Item\n")
	skip := writeScript(t, dir, "skip.generated.ps1", "Get-Item\n")

	rule, _ := countingRule()
	registry := NewRegistry()
	registry.MustRegister(rule)
	cfg := DefaultConfig()
	cfg.Lint.Ignore = []string{"*.generated.ps1"}
	runner := NewRunner(NewEngine(registry), cfg)

	results, err := runner.LintFiles(context.Background(), []string{keep, skip})
	require.NoError(t, err)

	// Ignore patterns match the base name too because paths are
	// normalized before matching.
	require.Len(t, results, 1)
	assert.Equal(t, keep, results[0].Path)
}

func TestRunnerLintSource(t *testing.T) {
	runner := newTestRunner(t)

	result, err := runner.LintSource(context.Background(), "inline.ps1", "Get-Item\n")
	require.NoError(t, err)
	require.NotEmpty(t, result.Diagnostics)
	assert.Equal(t, "inline.ps1", result.Diagnostics[0].Span.File)
}

func TestRunnerTreeCache(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "cached.ps1", "Get-Item\n")

	runner := newTestRunner(t, WithTreeCache(8, time.Minute))

	first, err := runner.LintFiles(context.Background(), []string{path})
	require.NoError(t, err)
	second, err := runner.LintFiles(context.Background(), []string{path})
	require.NoError(t, err)

	// Same diagnostics whether parsed fresh or served from cache.
	require.NoError(t, first[0].Err)
	require.NoError(t, second[0].Err)
	assert.Equal(t, first[0].Result.Diagnostics, second[0].Result.Diagnostics)
}

func TestRunnerCancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "x.ps1", "Get-Item\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := newTestRunner(t)
	_, err := runner.LintFiles(ctx, []string{path})
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	results := []FileResult{
		{
			Path: "a.ps1",
			Result: &Result{
				Diagnostics: []Diagnostic{
					{Rule: "r1", Severity: SeverityError},
					{Rule: "r2", Severity: SeverityWarning},
					{Rule: "r3", Severity: SeverityInfo},
				},
				Faults: []RuleFault{{Rule: "r4"}},
			},
		},
		{Path: "b.ps1", Err: os.ErrNotExist},
	}

	s := Summarize(results)
	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 3, s.Diagnostics)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 1, s.Warnings)
	assert.Equal(t, 1, s.Infos)
	assert.Equal(t, 1, s.Faults)
}
