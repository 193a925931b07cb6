// Command langc is the CLI front-end for the language's compiler core:
// tokenize, parse, and check subcommands drive the lexer, parser, and
// semantic analyzer over a source file or a langproject.toml manifest
// (SPEC_FULL.md §A), grounded on the teacher's cobra-based cmd/surge
// command layout.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "langc",
	Short: "Front-end compiler for the language: lexer, parser, and semantic analyzer",
	Long:  `langc tokenizes, parses, and type-checks source files, producing a typed AST and symbol table for a downstream code generator.`,
}

func main() {
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to collect")

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func wantColor(cmd *cobra.Command) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	return flag == "on" || (flag == "auto" && isTerminal(os.Stderr))
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	return n
}
