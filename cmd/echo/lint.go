package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/cli"
	eplerrors "github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/errors"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/epl/parser"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate EPL templates",
	Long: `Parse EPL templates and report every diagnostic from a single pass.

Errors are collected, not aborted on: one lint run reports every syntax
problem in the file, each with its source location and, where possible, a
suggested fix.

Examples:
  # Lint a single template
  echo lint --file prompt.epl

  # Lint every template in a directory
  echo lint --dir prompts/

  # JSON output for CI
  echo lint --file prompt.epl --format json`,
	RunE: lintTemplates,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "template file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of templates")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// lintResult is the lint outcome for a single template file.
type lintResult struct {
	File        string           `json:"file"`
	Valid       bool             `json:"valid"`
	Diagnostics []lintDiagnostic `json:"diagnostics,omitempty"`
}

type lintDiagnostic struct {
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Type       string `json:"type,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func lintTemplates(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		matches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.epl"))
		if err != nil {
			return fmt.Errorf("failed to list templates: %w", err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no template files found")
	}

	results := make([]lintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(file))
	}

	if lintFlags.format == "json" {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, results); err != nil {
			return err
		}
		return lintExitStatus(results)
	}
	return lintOutputText(results)
}

func lintFile(path string) lintResult {
	result := lintResult{File: path, Valid: true}

	parsed := parser.ParseFile(path)
	if parsed.Success() {
		return result
	}

	result.Valid = false
	for _, e := range parsed.Errors.Errors {
		result.Diagnostics = append(result.Diagnostics, lintDiagnostic{
			Line:       e.Location.Line,
			Column:     e.Location.Column,
			Type:       string(e.Type),
			Message:    e.Message,
			Suggestion: e.Suggestion,
		})
	}
	return result
}

func lintOutputText(results []lintResult) error {
	total := 0
	for _, result := range results {
		fmt.Printf("Linting %s...\n", result.File)

		if result.Valid {
			fmt.Println("✓ Template parses cleanly")
			fmt.Println()
			continue
		}

		for _, d := range result.Diagnostics {
			fmt.Printf("✗ %s", d.Message)
			if d.Line > 0 {
				fmt.Printf(" (line %d", d.Line)
				if d.Column > 0 {
					fmt.Printf(", col %d", d.Column)
				}
				fmt.Print(")")
			}
			if d.Type != "" && d.Type != string(eplerrors.ErrorTypeSyntax) {
				fmt.Printf(" [%s]", d.Type)
			}
			fmt.Println()
			if d.Suggestion != "" {
				fmt.Printf("  suggestion: %s\n", d.Suggestion)
			}
			total++
		}
		fmt.Println()
	}

	fmt.Printf("Summary: %d error(s) in %d file(s)\n", total, len(results))
	return lintExitStatus(results)
}

func lintExitStatus(results []lintResult) error {
	for _, r := range results {
		if !r.Valid {
			return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
		}
	}
	return nil
}
