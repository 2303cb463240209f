// Package linter provides syntax-tree lint traversal and rule dispatch.
//
// # Overview
//
// This package walks a parsed script tree pre-order, dispatches each node
// to the rules registered for its kind, and collects structured
// diagnostics. Rule failures are isolated: a panicking or erroring rule
// becomes a RuleFault and the rest of the run proceeds.
//
// # Usage Example
//
// Lint a single source string:
//
//	registry := linter.NewRegistry()
//	registry.MustRegister(rules.DefaultRules()...)
//
//	engine := linter.NewEngine(registry)
//	root := script.Parse(content, "deploy.ps1")
//	result, err := engine.Run(ctx, root, "deploy.ps1")
//
//	for _, d := range result.Diagnostics {
//		fmt.Printf("%s:%d [%s] %s\n",
//			d.Span.File, d.Span.StartLine, d.Rule, d.Message)
//	}
//
// Lint many files concurrently with tree caching:
//
//	runner := linter.NewRunner(engine, config)
//	results, err := runner.LintFiles(ctx, paths)
//	summary := linter.Summarize(results)
//
// # Related Packages
//
//   - pkg/script: node model and structural parser
//   - pkg/linter/rules: individual lint rules
package linter
