package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFunction(t *testing.T) {
	src := "function Get-Item {\n    Write-Output $x\n}\n"
	root := Parse(src, "test.ps1")

	require.NotNil(t, root)
	assert.Equal(t, "test.ps1", root.File)
	assert.Nil(t, root.Parent())
	require.Len(t, root.Statements, 1)

	fn, ok := root.Statements[0].(*FunctionDefinitionNode)
	require.True(t, ok)
	assert.Equal(t, "Get-Item", fn.Name)
	assert.Equal(t, KindFunctionDefinition, fn.Kind())
	assert.Equal(t, 1, fn.Position().Line)
	assert.Same(t, root, fn.Parent().(*ScriptBlockNode))

	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Statements, 1)
	cmd, ok := fn.Body.Statements[0].(*CommandNode)
	require.True(t, ok)
	assert.Equal(t, "Write-Output", cmd.Name)
	require.Len(t, cmd.Args, 1)
	assert.Equal(t, "$x", cmd.Args[0].Text)
}

func TestParseClass(t *testing.T) {
	src := "class Good {\n}\n"
	root := ParseString(src)

	require.Len(t, root.Statements, 1)
	cls, ok := root.Statements[0].(*TypeDefinitionNode)
	require.True(t, ok)
	assert.Equal(t, "Good", cls.Name)
	assert.NotNil(t, cls.Body)
}

func TestParseParamBlock(t *testing.T) {
	src := `param(
    [Parameter(Mandatory)]
    [string]$Name,
    $other
)
`
	root := ParseString(src)

	require.Len(t, root.Statements, 1)
	blk, ok := root.Statements[0].(*NamedBlockNode)
	require.True(t, ok)
	assert.Equal(t, "param", blk.BlockName)
	require.Len(t, blk.Parameters, 2)

	first := blk.Parameters[0]
	assert.Equal(t, "Name", first.Name)
	require.Len(t, first.Attributes, 1)
	assert.Equal(t, "Parameter", first.Attributes[0].TypeName)
	assert.Equal(t, []string{"Mandatory"}, first.Attributes[0].Arguments)

	assert.Equal(t, "other", blk.Parameters[1].Name)
	assert.Empty(t, blk.Parameters[1].Attributes)
}

func TestParseFunctionHoistsParamBlock(t *testing.T) {
	src := `function Set-Widget {
    param($Alpha, $Beta)
    Write-Output $Alpha
}
`
	root := ParseString(src)

	require.Len(t, root.Statements, 1)
	fn := root.Statements[0].(*FunctionDefinitionNode)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "Alpha", fn.Parameters[0].Name)
	assert.Equal(t, "Beta", fn.Parameters[1].Name)

	// Hoisting moves ownership: the params hang off the function, and the
	// kept param block no longer lists them.
	for _, param := range fn.Parameters {
		assert.Same(t, fn, param.Parent().(*FunctionDefinitionNode))
	}
	blk, ok := fn.Body.Statements[0].(*NamedBlockNode)
	require.True(t, ok)
	assert.Equal(t, "param", blk.BlockName)
	assert.Empty(t, blk.Parameters)
	assert.Empty(t, blk.Children())
}

func TestParseFunctionParamsVisitedOnce(t *testing.T) {
	src := "function Get-Item {\n    param($lower)\n}\n"
	root := ParseString(src)

	seen := 0
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Kind() == KindParameter {
			seen++
		}
		stack = append(stack, n.Children()...)
	}
	assert.Equal(t, 1, seen)
}

func TestParseNamedBlocks(t *testing.T) {
	src := `begin {
    $x = 1
}
process {
    Write-Output $x
}
end {
}
`
	root := ParseString(src)

	require.Len(t, root.Statements, 3)
	names := []string{}
	for _, st := range root.Statements {
		nb, ok := st.(*NamedBlockNode)
		require.True(t, ok)
		names = append(names, nb.BlockName)
	}
	assert.Equal(t, []string{"begin", "process", "end"}, names)
}

func TestParseVariables(t *testing.T) {
	src := "$global:Counter = 1\n$local = 2\n"
	root := ParseString(src)

	require.Len(t, root.Statements, 2)

	v1 := root.Statements[0].(*VariableNode)
	assert.Equal(t, "Counter", v1.Name)
	assert.Equal(t, "global", v1.Scope)

	v2 := root.Statements[1].(*VariableNode)
	assert.Equal(t, "local", v2.Name)
	assert.Equal(t, "", v2.Scope)
}

func TestParseCommandFlags(t *testing.T) {
	src := "New-Variable -Name Threshold -Option Constant -Value 5\n"
	root := ParseString(src)

	require.Len(t, root.Statements, 1)
	cmd := root.Statements[0].(*CommandNode)
	assert.Equal(t, "New-Variable", cmd.Name)

	name, ok := cmd.ArgAfter("-Name")
	require.True(t, ok)
	assert.Equal(t, "Threshold", name)

	opt, ok := cmd.ArgAfter("-Option")
	require.True(t, ok)
	assert.Equal(t, "Constant", opt)

	assert.True(t, cmd.HasArg("-Value"))
	_, ok = cmd.ArgAfter("-Missing")
	assert.False(t, ok)
}

func TestParseLoopAndStatements(t *testing.T) {
	src := `while ($true) {
    continue
}
return
`
	root := ParseString(src)

	require.Len(t, root.Statements, 2)

	loop, ok := root.Statements[0].(*LoopStatementNode)
	require.True(t, ok)
	assert.Equal(t, "while", loop.Keyword)
	require.NotNil(t, loop.Body)
	require.Len(t, loop.Body.Statements, 1)

	cont, ok := loop.Body.Statements[0].(*ContinueStatementNode)
	require.True(t, ok)
	assert.Equal(t, KindContinueStatement, cont.Kind())

	ret, ok := root.Statements[1].(*ReturnStatementNode)
	require.True(t, ok)
	assert.Equal(t, KindReturnStatement, ret.Kind())
}

func TestParseSubExpression(t *testing.T) {
	src := "$( Get-Date )\n"
	root := ParseString(src)

	require.Len(t, root.Statements, 1)
	sub, ok := root.Statements[0].(*SubExpressionNode)
	require.True(t, ok)
	require.NotNil(t, sub.Body)
	require.Len(t, sub.Body.Statements, 1)
	assert.Equal(t, "Get-Date", sub.Body.Statements[0].(*CommandNode).Name)
}

func TestParseMalformedInputDoesNotError(t *testing.T) {
	// Unbalanced braces and stray punctuation still yield a tree.
	root := ParseString("function {{{ ]]] @@@")
	require.NotNil(t, root)
	assert.Equal(t, KindScriptBlock, root.Kind())
}

func TestRootWalksParentLinks(t *testing.T) {
	src := "function Get-Item {\n    while ($true) {\n        continue\n    }\n}\n"
	root := ParseString(src)

	fn := root.Statements[0].(*FunctionDefinitionNode)
	loop := fn.Body.Statements[0].(*LoopStatementNode)
	cont := loop.Body.Statements[0]

	assert.Same(t, root, Root(cont).(*ScriptBlockNode))
}

func TestNodeKindString(t *testing.T) {
	assert.Equal(t, "ScriptBlock", KindScriptBlock.String())
	assert.Equal(t, "FunctionDefinition", KindFunctionDefinition.String())
	assert.Equal(t, "Unknown", KindUnknown.String())
	assert.Equal(t, "Unknown", NodeKind(99).String())
}
