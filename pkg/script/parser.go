package script

import "strings"

// Parser builds a structural node tree from script source. It recognizes
// the declaration shapes the bundled rules care about (functions, classes,
// named blocks, attributes, parameters, variables, commands, loops) and
// skips tokens it does not understand rather than erroring: a partial tree
// over malformed input is more useful to a linter than a parse failure.
type Parser struct {
	sc   *Scanner
	tok  Token
	file string
}

// Parse parses src into a script block tree rooted at a ScriptBlockNode
// carrying the file path. It never returns an error.
func Parse(src, file string) *ScriptBlockNode {
	p := &Parser{sc: NewScanner(src), file: file}
	p.next()
	root := &ScriptBlockNode{
		File: file,
		Pos:  Position{Line: 1, Column: 1, Offset: 0},
	}
	root.Statements = p.parseStatements(func(t Token) bool { return t.Type == TokenEOF })
	root.EndPos = p.tok.Pos
	Adopt(root, root.Statements...)
	return root
}

// ParseString parses anonymous input with no file association.
func ParseString(src string) *ScriptBlockNode {
	return Parse(src, "")
}

// next advances to the next non-comment token.
func (p *Parser) next() {
	for {
		p.tok = p.sc.Scan()
		if p.tok.Type != TokenComment {
			return
		}
	}
}

func (p *Parser) parseStatements(stop func(Token) bool) []Node {
	var stmts []Node
	for !stop(p.tok) && p.tok.Type != TokenEOF {
		switch p.tok.Type {
		case TokenNewline:
			p.next()
		case TokenIdentifier:
			if n := p.parseIdentifierStatement(); n != nil {
				stmts = append(stmts, n)
			}
		case TokenVariable:
			stmts = append(stmts, p.parseVariableStatement())
		case TokenDollarParen:
			stmts = append(stmts, p.parseSubExpression())
		case TokenPunctuation:
			if p.tok.Text == "[" {
				if n, ok := p.parseBracket(); ok {
					stmts = append(stmts, n)
				}
			} else {
				p.next()
			}
		default:
			p.next()
		}
	}
	return stmts
}

func (p *Parser) parseIdentifierStatement() Node {
	switch strings.ToLower(p.tok.Text) {
	case "function", "filter":
		return p.parseFunction()
	case "class":
		return p.parseClass()
	case "param":
		return p.parseParamBlock()
	case "begin", "process", "end", "clean", "dynamicparam":
		return p.parseNamedBlock()
	case "while", "for", "foreach", "do", "until":
		return p.parseLoop()
	case "return":
		n := &ReturnStatementNode{Pos: p.tok.Pos, EndPos: p.tok.EndPos}
		p.next()
		p.skipToStatementEnd()
		return n
	case "continue":
		n := &ContinueStatementNode{Pos: p.tok.Pos, EndPos: p.tok.EndPos}
		p.next()
		p.skipToStatementEnd()
		return n
	default:
		return p.parseCommand()
	}
}

func (p *Parser) parseFunction() Node {
	fn := &FunctionDefinitionNode{Pos: p.tok.Pos}
	p.next()
	if p.tok.Type == TokenIdentifier {
		fn.Name = p.tok.Text
		p.next()
	}
	if p.isPunct("{") {
		fn.Body = p.parseBlock()
		p.hoistFunctionMembers(fn)
	}
	if fn.Body != nil {
		fn.EndPos = fn.Body.EndPos
	} else {
		fn.EndPos = p.tok.Pos
	}
	for _, a := range fn.Attributes {
		Adopt(fn, a)
	}
	for _, pr := range fn.Parameters {
		Adopt(fn, pr)
	}
	if fn.Body != nil {
		Adopt(fn, fn.Body)
	}
	return fn
}

// hoistFunctionMembers lifts attribute statements and param-block
// parameters out of a function body onto the function node, matching how
// declarations attach in the source language. Ownership of hoisted
// parameters moves to the function: the param block is kept in the body
// for block-order checks but emptied, so each parameter has exactly one
// parent and the traversal sees it exactly once.
func (p *Parser) hoistFunctionMembers(fn *FunctionDefinitionNode) {
	if fn.Body == nil {
		return
	}
	kept := fn.Body.Statements[:0]
	for _, st := range fn.Body.Statements {
		switch n := st.(type) {
		case *AttributeNode:
			fn.Attributes = append(fn.Attributes, n)
		case *NamedBlockNode:
			if n.BlockName == "param" {
				fn.Parameters = append(fn.Parameters, n.Parameters...)
				n.Parameters = nil
			}
			kept = append(kept, st)
		default:
			kept = append(kept, st)
		}
	}
	fn.Body.Statements = kept
}

func (p *Parser) parseClass() Node {
	cls := &TypeDefinitionNode{Pos: p.tok.Pos}
	p.next()
	if p.tok.Type == TokenIdentifier {
		cls.Name = p.tok.Text
		p.next()
	}
	// base class list: `class Name : Base`
	for !p.isPunct("{") && p.tok.Type != TokenEOF && p.tok.Type != TokenNewline {
		p.next()
	}
	if p.isPunct("{") {
		cls.Body = p.parseBlock()
	}
	if cls.Body != nil {
		cls.EndPos = cls.Body.EndPos
	} else {
		cls.EndPos = p.tok.Pos
	}
	for _, a := range cls.Attributes {
		Adopt(cls, a)
	}
	if cls.Body != nil {
		Adopt(cls, cls.Body)
	}
	return cls
}

func (p *Parser) parseParamBlock() Node {
	blk := &NamedBlockNode{BlockName: "param", Pos: p.tok.Pos}
	p.next()
	if !p.isPunct("(") {
		blk.EndPos = p.tok.Pos
		return blk
	}
	p.next()
	blk.Parameters = p.parseParameterList()
	if p.isPunct(")") {
		p.next()
	}
	blk.EndPos = p.tok.Pos
	for _, pr := range blk.Parameters {
		Adopt(blk, pr)
	}
	return blk
}

func (p *Parser) parseNamedBlock() Node {
	blk := &NamedBlockNode{BlockName: strings.ToLower(p.tok.Text), Pos: p.tok.Pos}
	p.next()
	if p.isPunct("{") {
		blk.Body = p.parseBlock()
		blk.EndPos = blk.Body.EndPos
		Adopt(blk, blk.Body)
	} else {
		blk.EndPos = p.tok.Pos
	}
	return blk
}

func (p *Parser) parseLoop() Node {
	loop := &LoopStatementNode{Keyword: strings.ToLower(p.tok.Text), Pos: p.tok.Pos}
	p.next()
	// condition / iterator clause
	if p.isPunct("(") {
		p.skipBalanced("(", ")")
	}
	if p.isPunct("{") {
		loop.Body = p.parseBlock()
		loop.EndPos = loop.Body.EndPos
		Adopt(loop, loop.Body)
	} else {
		loop.EndPos = p.tok.Pos
	}
	return loop
}

func (p *Parser) parseBlock() *ScriptBlockNode {
	blk := &ScriptBlockNode{Pos: p.tok.Pos}
	p.next() // {
	blk.Statements = p.parseStatements(func(t Token) bool {
		return t.Type == TokenPunctuation && t.Text == "}"
	})
	if p.isPunct("}") {
		blk.EndPos = p.tok.EndPos
		p.next()
	} else {
		blk.EndPos = p.tok.Pos
	}
	Adopt(blk, blk.Statements...)
	return blk
}

func (p *Parser) parseVariableStatement() Node {
	scope, name := splitVariableName(p.tok.Text)
	v := &VariableNode{Name: name, Scope: scope, Pos: p.tok.Pos, EndPos: p.tok.EndPos}
	p.next()
	p.skipToStatementEnd()
	return v
}

func (p *Parser) parseSubExpression() Node {
	sub := &SubExpressionNode{Pos: p.tok.Pos}
	p.next() // $(
	sub.Body = &ScriptBlockNode{Pos: p.tok.Pos}
	sub.Body.Statements = p.parseStatements(func(t Token) bool {
		return t.Type == TokenPunctuation && t.Text == ")"
	})
	if p.isPunct(")") {
		sub.Body.EndPos = p.tok.EndPos
		p.next()
	} else {
		sub.Body.EndPos = p.tok.Pos
	}
	sub.EndPos = sub.Body.EndPos
	Adopt(sub.Body, sub.Body.Statements...)
	Adopt(sub, sub.Body)
	return sub
}

// parseBracket handles a [ ... ] group at statement position. A group
// whose contents include a parenthesized argument list is an attribute
// ([CmdletBinding()], [Parameter(Mandatory)]); a bare type literal like
// [int] is structural noise and is skipped.
func (p *Parser) parseBracket() (Node, bool) {
	attr := &AttributeNode{Pos: p.tok.Pos}
	p.next() // [
	sawParens := false
	for p.tok.Type != TokenEOF {
		if p.isPunct("]") {
			attr.EndPos = p.tok.EndPos
			p.next()
			break
		}
		if p.tok.Type == TokenIdentifier && attr.TypeName == "" {
			attr.TypeName = p.tok.Text
			p.next()
			continue
		}
		if p.isPunct("(") {
			sawParens = true
			p.next()
			for p.tok.Type != TokenEOF && !p.isPunct(")") {
				if p.tok.Type != TokenNewline && p.tok.Text != "," {
					attr.Arguments = append(attr.Arguments, p.tok.Text)
				}
				p.next()
			}
			if p.isPunct(")") {
				p.next()
			}
			continue
		}
		p.next()
	}
	if !sawParens {
		return nil, false
	}
	return attr, true
}

// parseParameterList parses the contents of a param(...) list: runs of
// attributes and type literals followed by a variable, separated by
// commas. Defaults are skipped.
func (p *Parser) parseParameterList() []*ParameterNode {
	var params []*ParameterNode
	var pending []*AttributeNode
	var pendingPos *Position
	for p.tok.Type != TokenEOF && !p.isPunct(")") {
		switch {
		case p.tok.Type == TokenNewline:
			p.next()
		case p.isPunct("["):
			start := p.tok.Pos
			if n, ok := p.parseBracket(); ok {
				attr := n.(*AttributeNode)
				pending = append(pending, attr)
				if pendingPos == nil {
					pendingPos = &start
				}
			} else if pendingPos == nil {
				pendingPos = &start
			}
		case p.tok.Type == TokenVariable:
			_, name := splitVariableName(p.tok.Text)
			param := &ParameterNode{
				Name:       name,
				Attributes: pending,
				Pos:        p.tok.Pos,
				EndPos:     p.tok.EndPos,
			}
			if pendingPos != nil {
				param.Pos = *pendingPos
			}
			for _, a := range pending {
				Adopt(param, a)
			}
			params = append(params, param)
			pending = nil
			pendingPos = nil
			p.next()
			p.skipParameterDefault()
		case p.isPunct(","):
			p.next()
		default:
			p.next()
		}
	}
	return params
}

func (p *Parser) skipParameterDefault() {
	if !p.isPunct("=") {
		return
	}
	p.next()
	for p.tok.Type != TokenEOF && !p.isPunct(",") && !p.isPunct(")") {
		switch {
		case p.isPunct("("):
			p.skipBalanced("(", ")")
		case p.isPunct("{"):
			p.skipBalanced("{", "}")
		case p.isPunct("["):
			p.skipBalanced("[", "]")
		default:
			p.next()
		}
	}
}

// parseCommand consumes a command invocation: the name token plus textual
// arguments up to the end of the statement. Nested bracket groups are
// skipped wholesale; argument text is kept flat because the bundled rules
// only match literal flags and names.
func (p *Parser) parseCommand() Node {
	cmd := &CommandNode{Name: p.tok.Text, Pos: p.tok.Pos, EndPos: p.tok.EndPos}
	p.next()
	for {
		switch {
		case p.tok.Type == TokenEOF || p.tok.Type == TokenNewline:
			p.finishCommand(cmd)
			return cmd
		case p.isPunct(";") || p.isPunct("}") || p.isPunct("|") || p.isPunct(")"):
			if p.isPunct(";") || p.isPunct("|") {
				p.next()
			}
			p.finishCommand(cmd)
			return cmd
		case p.isPunct("{"):
			p.skipBalanced("{", "}")
		case p.isPunct("("):
			p.skipBalanced("(", ")")
		case p.isPunct("["):
			p.skipBalanced("[", "]")
		case p.tok.Type == TokenVariable:
			arg := &CommandArgumentNode{Text: "$" + p.tok.Text, Pos: p.tok.Pos, EndPos: p.tok.EndPos}
			cmd.Args = append(cmd.Args, arg)
			p.next()
		case p.tok.Type == TokenIdentifier || p.tok.Type == TokenString ||
			p.tok.Type == TokenNumber:
			arg := &CommandArgumentNode{Text: p.tok.Text, Pos: p.tok.Pos, EndPos: p.tok.EndPos}
			cmd.Args = append(cmd.Args, arg)
			p.next()
		default:
			p.next()
		}
	}
}

func (p *Parser) finishCommand(cmd *CommandNode) {
	if len(cmd.Args) > 0 {
		cmd.EndPos = cmd.Args[len(cmd.Args)-1].EndPos
	}
	for _, a := range cmd.Args {
		Adopt(cmd, a)
	}
}

// skipToStatementEnd discards tokens up to a newline, semicolon or block
// close. A closing brace is left unconsumed for the enclosing block.
func (p *Parser) skipToStatementEnd() {
	for p.tok.Type != TokenEOF && p.tok.Type != TokenNewline {
		if p.isPunct("}") {
			return
		}
		if p.isPunct(";") {
			p.next()
			return
		}
		p.next()
	}
}

// skipBalanced consumes from the current open delimiter through its
// matching close. $( counts as an opener when matching parentheses.
func (p *Parser) skipBalanced(open, close string) {
	depth := 0
	for p.tok.Type != TokenEOF {
		switch {
		case p.isPunct(close):
			depth--
			p.next()
			if depth == 0 {
				return
			}
		case p.isPunct(open):
			depth++
			p.next()
		case p.tok.Type == TokenDollarParen && close == ")":
			depth++
			p.next()
		default:
			p.next()
		}
	}
}

func (p *Parser) isPunct(text string) bool {
	return p.tok.Type == TokenPunctuation && p.tok.Text == text
}
