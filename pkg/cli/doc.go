// Package cli provides the pslint command-line interface for linting script files.
//
// # Overview
//
// This package implements the `pslint` CLI tool for developers to lint scripts
// locally or in CI, inspect the rule set, and control output formatting.
//
// # Commands
//
// lint: Lint script files
//
//	pslint lint --dir ./scripts
//	pslint lint deploy.ps1 modules/helper.psm1
//	pslint lint --dir ./scripts --config pslint.yaml --format json
//
// CI usage with GitHub annotations:
//
//	pslint lint --dir ./scripts --format github
//
// Failure thresholds:
//
//	pslint lint --dir ./scripts --fail-on-warning
//	pslint lint --dir ./scripts --fail-on-error=false
//
// rules: List registered rules
//
//	pslint rules
//
// # File Discovery
//
// Without explicit file arguments, lint walks --dir recursively for .ps1,
// .psm1, and .psd1 files, skipping hidden, vendor, and third_party
// directories. Explicit file arguments bypass discovery.
//
// # Related Packages
//
//   - pkg/linter: Runs the actual lint engine
//   - pkg/linter/rules: The default rule set
package cli
