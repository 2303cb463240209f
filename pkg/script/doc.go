// Package script provides a scanner and structural parser for shell-style
// automation scripts, producing a traversable syntax tree.
//
// # Overview
//
// This package turns script source text into a tree of typed nodes with
// parent links and source positions. The parser is deliberately lenient:
// it recognizes the constructs lint rules care about (functions, classes,
// named blocks, parameters, attributes, variables, commands, loops) and
// skips over everything else without ever returning an error.
//
// # Usage Example
//
// Parse a file:
//
//	data, _ := os.ReadFile("deploy.ps1")
//	root := script.Parse(data, "deploy.ps1")
//
//	for _, stmt := range root.Statements {
//		if fn, ok := stmt.(*script.FunctionDefinitionNode); ok {
//			fmt.Printf("function %s at line %d\n", fn.Name, fn.Position().Line)
//		}
//	}
//
// Walk upward from any node:
//
//	for p := node.Parent(); p != nil; p = p.Parent() {
//		if p.Kind() == script.KindLoopStatement {
//			// node sits inside a loop
//		}
//	}
//
// # Positions
//
// Every node carries a start and end Position (1-based line and column,
// 0-based byte offset) so diagnostics can point at exact source spans.
//
// # Related Packages
//
//   - pkg/linter: Traverses the tree and dispatches lint rules
//   - pkg/linter/rules: Inspects individual node types
package script
