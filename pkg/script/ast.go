package script

// NodeKind identifies the type of a syntax tree node.
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindScriptBlock
	KindFunctionDefinition
	KindTypeDefinition
	KindNamedBlock
	KindParameter
	KindAttribute
	KindVariable
	KindCommand
	KindCommandArgument
	KindLoopStatement
	KindReturnStatement
	KindContinueStatement
	KindSubExpression
)

// String returns the node kind name.
func (k NodeKind) String() string {
	switch k {
	case KindScriptBlock:
		return "ScriptBlock"
	case KindFunctionDefinition:
		return "FunctionDefinition"
	case KindTypeDefinition:
		return "TypeDefinition"
	case KindNamedBlock:
		return "NamedBlock"
	case KindParameter:
		return "Parameter"
	case KindAttribute:
		return "Attribute"
	case KindVariable:
		return "Variable"
	case KindCommand:
		return "Command"
	case KindCommandArgument:
		return "CommandArgument"
	case KindLoopStatement:
		return "LoopStatement"
	case KindReturnStatement:
		return "ReturnStatement"
	case KindContinueStatement:
		return "ContinueStatement"
	case KindSubExpression:
		return "SubExpression"
	}
	return "Unknown"
}

// Position represents a position in the source code.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Node represents a node in the script syntax tree.
//
// The parent/child relation forms a tree: children are owned by their
// parent, parent links are lookup-only. A tree is immutable for the
// duration of a traversal.
type Node interface {
	Kind() NodeKind
	Position() Position
	End() Position
	Parent() Node
	Children() []Node
}

// parentSetter is implemented by every concrete node so Adopt can wire
// parent links without knowing the concrete type.
type parentSetter interface {
	setParent(Node)
}

// Adopt wires child nodes to a parent. Tree producers (the bundled parser
// or an external one) call this when attaching children; the linter never
// mutates parent links.
func Adopt(parent Node, children ...Node) {
	for _, child := range children {
		if child == nil {
			continue
		}
		if ps, ok := child.(parentSetter); ok {
			ps.setParent(parent)
		}
	}
}

// Root walks parent links from n to the tree root.
func Root(n Node) Node {
	for n != nil && n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

// ScriptBlockNode is a brace-delimited block of statements. The tree root
// is a ScriptBlockNode with a nil parent and the originating file path.
type ScriptBlockNode struct {
	File       string // empty for blocks parsed from anonymous input
	Statements []Node
	Pos        Position
	EndPos     Position
	parent     Node
}

func (n *ScriptBlockNode) Kind() NodeKind     { return KindScriptBlock }
func (n *ScriptBlockNode) Position() Position { return n.Pos }
func (n *ScriptBlockNode) End() Position      { return n.EndPos }
func (n *ScriptBlockNode) Parent() Node       { return n.parent }
func (n *ScriptBlockNode) Children() []Node   { return n.Statements }
func (n *ScriptBlockNode) setParent(p Node)   { n.parent = p }

// FunctionDefinitionNode is a `function Verb-Noun { ... }` declaration.
type FunctionDefinitionNode struct {
	Name       string
	Attributes []*AttributeNode
	Parameters []*ParameterNode
	Body       *ScriptBlockNode
	Pos        Position
	EndPos     Position
	parent     Node
}

func (n *FunctionDefinitionNode) Kind() NodeKind     { return KindFunctionDefinition }
func (n *FunctionDefinitionNode) Position() Position { return n.Pos }
func (n *FunctionDefinitionNode) End() Position      { return n.EndPos }
func (n *FunctionDefinitionNode) Parent() Node       { return n.parent }
func (n *FunctionDefinitionNode) setParent(p Node)   { n.parent = p }

func (n *FunctionDefinitionNode) Children() []Node {
	children := make([]Node, 0, len(n.Attributes)+len(n.Parameters)+1)
	for _, a := range n.Attributes {
		children = append(children, a)
	}
	for _, p := range n.Parameters {
		children = append(children, p)
	}
	if n.Body != nil {
		children = append(children, n.Body)
	}
	return children
}

// TypeDefinitionNode is a `class Name { ... }` declaration.
type TypeDefinitionNode struct {
	Name       string
	Attributes []*AttributeNode
	Body       *ScriptBlockNode
	Pos        Position
	EndPos     Position
	parent     Node
}

func (n *TypeDefinitionNode) Kind() NodeKind     { return KindTypeDefinition }
func (n *TypeDefinitionNode) Position() Position { return n.Pos }
func (n *TypeDefinitionNode) End() Position      { return n.EndPos }
func (n *TypeDefinitionNode) Parent() Node       { return n.parent }
func (n *TypeDefinitionNode) setParent(p Node)   { n.parent = p }

func (n *TypeDefinitionNode) Children() []Node {
	children := make([]Node, 0, len(n.Attributes)+1)
	for _, a := range n.Attributes {
		children = append(children, a)
	}
	if n.Body != nil {
		children = append(children, n.Body)
	}
	return children
}

// NamedBlockNode is one of the conventional labeled sub-sections of a
// script or function body: param, begin, process, end, clean.
type NamedBlockNode struct {
	BlockName  string
	Parameters []*ParameterNode // param blocks only
	Body       *ScriptBlockNode // nil for param blocks
	Pos        Position
	EndPos     Position
	parent     Node
}

func (n *NamedBlockNode) Kind() NodeKind     { return KindNamedBlock }
func (n *NamedBlockNode) Position() Position { return n.Pos }
func (n *NamedBlockNode) End() Position      { return n.EndPos }
func (n *NamedBlockNode) Parent() Node       { return n.parent }
func (n *NamedBlockNode) setParent(p Node)   { n.parent = p }

func (n *NamedBlockNode) Children() []Node {
	children := make([]Node, 0, len(n.Parameters)+1)
	for _, p := range n.Parameters {
		children = append(children, p)
	}
	if n.Body != nil {
		children = append(children, n.Body)
	}
	return children
}

// ParameterNode is a single declared parameter, with any attached
// attributes. Name excludes the leading $ sigil.
type ParameterNode struct {
	Name       string
	Attributes []*AttributeNode
	Pos        Position
	EndPos     Position
	parent     Node
}

func (n *ParameterNode) Kind() NodeKind     { return KindParameter }
func (n *ParameterNode) Position() Position { return n.Pos }
func (n *ParameterNode) End() Position      { return n.EndPos }
func (n *ParameterNode) Parent() Node       { return n.parent }
func (n *ParameterNode) setParent(p Node)   { n.parent = p }

func (n *ParameterNode) Children() []Node {
	children := make([]Node, 0, len(n.Attributes))
	for _, a := range n.Attributes {
		children = append(children, a)
	}
	return children
}

// AttributeNode is a bracketed attribute such as [CmdletBinding()] or
// [Parameter(Mandatory)]. TypeName excludes the brackets and arguments.
type AttributeNode struct {
	TypeName  string
	Arguments []string
	Pos       Position
	EndPos    Position
	parent    Node
}

func (n *AttributeNode) Kind() NodeKind     { return KindAttribute }
func (n *AttributeNode) Position() Position { return n.Pos }
func (n *AttributeNode) End() Position      { return n.EndPos }
func (n *AttributeNode) Parent() Node       { return n.parent }
func (n *AttributeNode) Children() []Node   { return nil }
func (n *AttributeNode) setParent(p Node)   { n.parent = p }

// VariableNode is a variable reference. Scope is the qualifier before the
// colon ("global", "script", ...) or empty; Name excludes sigil and scope.
type VariableNode struct {
	Name   string
	Scope  string
	Pos    Position
	EndPos Position
	parent Node
}

func (n *VariableNode) Kind() NodeKind     { return KindVariable }
func (n *VariableNode) Position() Position { return n.Pos }
func (n *VariableNode) End() Position      { return n.EndPos }
func (n *VariableNode) Parent() Node       { return n.parent }
func (n *VariableNode) Children() []Node   { return nil }
func (n *VariableNode) setParent(p Node)   { n.parent = p }

// CommandNode is a command invocation: the command name followed by its
// arguments up to the end of the statement.
type CommandNode struct {
	Name   string
	Args   []*CommandArgumentNode
	Pos    Position
	EndPos Position
	parent Node
}

func (n *CommandNode) Kind() NodeKind     { return KindCommand }
func (n *CommandNode) Position() Position { return n.Pos }
func (n *CommandNode) End() Position      { return n.EndPos }
func (n *CommandNode) Parent() Node       { return n.parent }
func (n *CommandNode) setParent(p Node)   { n.parent = p }

func (n *CommandNode) Children() []Node {
	children := make([]Node, 0, len(n.Args))
	for _, a := range n.Args {
		children = append(children, a)
	}
	return children
}

// ArgAfter returns the textual argument following the named flag
// (e.g. ArgAfter("-Name")), or "" if absent.
func (n *CommandNode) ArgAfter(flag string) (string, bool) {
	for i, a := range n.Args {
		if a.Text == flag && i+1 < len(n.Args) {
			return n.Args[i+1].Text, true
		}
	}
	return "", false
}

// HasArg reports whether the command carries the exact argument text.
func (n *CommandNode) HasArg(text string) bool {
	for _, a := range n.Args {
		if a.Text == text {
			return true
		}
	}
	return false
}

// CommandArgumentNode is a single command argument token.
type CommandArgumentNode struct {
	Text   string
	Pos    Position
	EndPos Position
	parent Node
}

func (n *CommandArgumentNode) Kind() NodeKind     { return KindCommandArgument }
func (n *CommandArgumentNode) Position() Position { return n.Pos }
func (n *CommandArgumentNode) End() Position      { return n.EndPos }
func (n *CommandArgumentNode) Parent() Node       { return n.parent }
func (n *CommandArgumentNode) Children() []Node   { return nil }
func (n *CommandArgumentNode) setParent(p Node)   { n.parent = p }

// LoopStatementNode is a while/for/foreach/do loop with its body.
type LoopStatementNode struct {
	Keyword string
	Body    *ScriptBlockNode
	Pos     Position
	EndPos  Position
	parent  Node
}

func (n *LoopStatementNode) Kind() NodeKind     { return KindLoopStatement }
func (n *LoopStatementNode) Position() Position { return n.Pos }
func (n *LoopStatementNode) End() Position      { return n.EndPos }
func (n *LoopStatementNode) Parent() Node       { return n.parent }
func (n *LoopStatementNode) setParent(p Node)   { n.parent = p }

func (n *LoopStatementNode) Children() []Node {
	if n.Body == nil {
		return nil
	}
	return []Node{n.Body}
}

// ReturnStatementNode is a `return` statement.
type ReturnStatementNode struct {
	Pos    Position
	EndPos Position
	parent Node
}

func (n *ReturnStatementNode) Kind() NodeKind     { return KindReturnStatement }
func (n *ReturnStatementNode) Position() Position { return n.Pos }
func (n *ReturnStatementNode) End() Position      { return n.EndPos }
func (n *ReturnStatementNode) Parent() Node       { return n.parent }
func (n *ReturnStatementNode) Children() []Node   { return nil }
func (n *ReturnStatementNode) setParent(p Node)   { n.parent = p }

// ContinueStatementNode is a `continue` statement.
type ContinueStatementNode struct {
	Pos    Position
	EndPos Position
	parent Node
}

func (n *ContinueStatementNode) Kind() NodeKind     { return KindContinueStatement }
func (n *ContinueStatementNode) Position() Position { return n.Pos }
func (n *ContinueStatementNode) End() Position      { return n.EndPos }
func (n *ContinueStatementNode) Parent() Node       { return n.parent }
func (n *ContinueStatementNode) Children() []Node   { return nil }
func (n *ContinueStatementNode) setParent(p Node)   { n.parent = p }

// SubExpressionNode is a $( ... ) sub-expression.
type SubExpressionNode struct {
	Body   *ScriptBlockNode
	Pos    Position
	EndPos Position
	parent Node
}

func (n *SubExpressionNode) Kind() NodeKind     { return KindSubExpression }
func (n *SubExpressionNode) Position() Position { return n.Pos }
func (n *SubExpressionNode) End() Position      { return n.EndPos }
func (n *SubExpressionNode) Parent() Node       { return n.parent }
func (n *SubExpressionNode) setParent(p Node)   { n.parent = p }

func (n *SubExpressionNode) Children() []Node {
	if n.Body == nil {
		return nil
	}
	return []Node{n.Body}
}
