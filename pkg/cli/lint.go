package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/platinummonkey/pslint/pkg/linter"
	"github.com/platinummonkey/pslint/pkg/linter/rules"
	"github.com/platinummonkey/pslint/pkg/observability"
)

// scriptExtensions are the file suffixes treated as lintable scripts.
var scriptExtensions = map[string]bool{
	".ps1":  true,
	".psm1": true,
	".psd1": true,
}

// newLintCommand creates a new lint command
func newLintCommand() *Command {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)

	var (
		dir           = fs.String("dir", ".", "Directory containing script files")
		configFile    = fs.String("config", "", "Path to lint config file (pslint.yaml)")
		format        = fs.String("format", "text", "Output format: text, json, github")
		failOnError   = fs.Bool("fail-on-error", true, "Exit with error code on lint errors")
		failOnWarning = fs.Bool("fail-on-warning", false, "Exit with error code on lint warnings")
		verbose       = fs.Bool("verbose", false, "Verbose output")
	)

	return &Command{
		Name:        "lint",
		Description: "Lint script files for style and convention violations",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			return runLint(fs.Args(), *dir, *configFile, *format, *failOnError, *failOnWarning, *verbose)
		},
	}
}

func runLint(files []string, dir, configFile, format string, failOnError, failOnWarning, verbose bool) error {
	// Load configuration
	var config *linter.Config
	var err error
	if configFile != "" {
		config, err = linter.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		config, err = linter.LoadConfigFromDir(dir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	registry := rules.NewDefaultRegistry()
	logger := observability.NewLogger(observability.ErrorLevel, os.Stderr)
	engine := linter.NewEngine(registry,
		linter.WithConfig(config),
		linter.WithLogger(logger),
	)
	runner := linter.NewRunner(engine, config)

	// Explicit file arguments take precedence over directory discovery
	if len(files) == 0 {
		files, err = findScriptFiles(dir)
		if err != nil {
			return fmt.Errorf("failed to find script files: %w", err)
		}
	}

	if len(files) == 0 {
		fmt.Printf("No script files found in %s\n", dir)
		return nil
	}

	if verbose {
		fmt.Printf("Linting %d script files...\n", len(files))
	}

	results, err := runner.LintFiles(context.Background(), files)
	if err != nil {
		return err
	}

	summary := linter.Summarize(results)

	switch format {
	case "json":
		return lintOutputJSON(results, summary)
	case "github":
		return lintOutputGitHub(results)
	default:
		return lintOutputText(results, summary, failOnError, failOnWarning)
	}
}

func findScriptFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories and vendor directories
		if info.IsDir() {
			name := info.Name()
			if strings.HasPrefix(name, ".") && name != "." || name == "vendor" || name == "third_party" {
				return filepath.SkipDir
			}
			return nil
		}

		if scriptExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

func lintOutputText(results []linter.FileResult, summary linter.Summary, failOnError, failOnWarning bool) error {
	hasDiagnostics := false

	for _, result := range results {
		if result.Err != nil {
			hasDiagnostics = true
			fmt.Printf("\n%s: %v\n", result.Path, result.Err)
			continue
		}
		if result.Result == nil || len(result.Result.Diagnostics) == 0 {
			continue
		}

		hasDiagnostics = true
		fmt.Printf("\n%s:\n", result.Path)

		for _, d := range result.Result.Diagnostics {
			fmt.Printf("  %s:%d: [%s] %s (%s)\n",
				result.Path,
				d.Span.StartLine,
				d.Severity,
				d.Message,
				d.Rule,
			)
		}

		for _, f := range result.Result.Faults {
			fmt.Printf("  fault: %s\n", f.Error())
		}
	}

	// Print summary
	fmt.Printf("\n")
	fmt.Printf("Summary:\n")
	fmt.Printf("  Files:       %d\n", summary.Files)
	fmt.Printf("  Diagnostics: %d\n", summary.Diagnostics)
	fmt.Printf("  Errors:      %d\n", summary.Errors)
	fmt.Printf("  Warnings:    %d\n", summary.Warnings)
	fmt.Printf("  Infos:       %d\n", summary.Infos)

	if failOnError && summary.Errors > 0 {
		return fmt.Errorf("lint failed with %d errors", summary.Errors)
	}

	if failOnWarning && summary.Warnings > 0 {
		return fmt.Errorf("lint failed with %d warnings", summary.Warnings)
	}

	if !hasDiagnostics {
		fmt.Println("\n✓ All files passed linting")
	}

	return nil
}

func lintOutputJSON(results []linter.FileResult, summary linter.Summary) error {
	type fileOutput struct {
		Path   string         `json:"path"`
		Result *linter.Result `json:"result,omitempty"`
		Error  string         `json:"error,omitempty"`
	}

	files := make([]fileOutput, 0, len(results))
	for _, r := range results {
		out := fileOutput{Path: r.Path, Result: r.Result}
		if r.Err != nil {
			out.Error = r.Err.Error()
		}
		files = append(files, out)
	}

	output := struct {
		Results []fileOutput   `json:"results"`
		Summary linter.Summary `json:"summary"`
	}{
		Results: files,
		Summary: summary,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func lintOutputGitHub(results []linter.FileResult) error {
	// GitHub Actions annotation format
	// ::error file={name},line={line}::{message}
	for _, result := range results {
		if result.Result == nil {
			continue
		}
		for _, d := range result.Result.Diagnostics {
			level := "error"
			if d.Severity == linter.SeverityWarning {
				level = "warning"
			} else if d.Severity == linter.SeverityInfo {
				level = "notice"
			}

			fmt.Printf("::%s file=%s,line=%d::[%s] %s\n",
				level,
				result.Path,
				d.Span.StartLine,
				d.Rule,
				d.Message,
			)
		}
	}

	return nil
}
