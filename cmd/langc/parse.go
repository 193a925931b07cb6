package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/diagfmt"
	"langcore/internal/lexer"
	"langcore/internal/parser"
	"langcore/internal/printer"
	"langcore/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().Bool("print-code", false, "re-emit the parsed tree as source text instead of a debug tree")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(path, content)

	bag := diag.NewBag(maxDiagnostics(cmd))
	reporter := diag.BagReporter{Bag: bag}
	ts := lexer.Tokenize(fileID, content, lexer.DefaultOptions(), reporter)
	tree := ast.NewTree()
	unit, _ := parser.Parse(ts, tree, fileID, reporter)

	if bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.Options{Color: wantColor(cmd), Context: 1, ShowNotes: true})
	}

	printCode, _ := cmd.Flags().GetBool("print-code")
	if printCode {
		printer.NewAstToCodePrinter(os.Stdout).Print(unit)
	} else {
		printer.NewAstPrinter(os.Stdout, printer.Options{ShowTypes: false, Indent: "  "}).Print(unit)
	}

	if bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
