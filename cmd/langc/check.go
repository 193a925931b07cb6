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
	"langcore/internal/project"
	"langcore/internal/sema"
	"langcore/internal/snapshot"
	"langcore/internal/source"
	"langcore/internal/symbols"
	"langcore/internal/types"
)

var checkCmd = &cobra.Command{
	Use:   "check <file-or-manifest>",
	Short: "Run the full lex/parse/typecheck pipeline and report diagnostics",
	Long:  `check accepts either a single source file or a langproject.toml manifest; a manifest builds every listed source file in parallel.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("print-symbols", false, "print the resolved symbol table after checking")
	checkCmd.Flags().Bool("print-ast", false, "print the type-annotated syntax tree after checking")
	checkCmd.Flags().String("dump", "", "write a msgpack snapshot (tokens + symbol dump) to this path")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers when checking a manifest (0=auto)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	if isManifestPath(path) {
		return runCheckManifest(cmd, path)
	}
	return runCheckFile(cmd, path)
}

func isManifestPath(path string) bool {
	return len(path) > 5 && path[len(path)-5:] == ".toml"
}

func runCheckFile(cmd *cobra.Command, path string) error {
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

	table := symbols.NewTable()
	sys := types.NewSystem()
	sema.NewSymbolBuilder(table, sys, reporter).Build(unit)
	sema.NewTypeResolver(table, sys, reporter).Resolve(unit)

	bag.Sort()
	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.Options{Color: wantColor(cmd), Context: 1, ShowNotes: true})
	}

	if printAST, _ := cmd.Flags().GetBool("print-ast"); printAST {
		printer.NewAstPrinter(os.Stdout, printer.DefaultOptions()).Print(unit)
	}
	if printSyms, _ := cmd.Flags().GetBool("print-symbols"); printSyms {
		table.Dump(os.Stdout, table.Root(), 0)
	}

	if dumpPath, _ := cmd.Flags().GetString("dump"); dumpPath != "" {
		snap := &snapshot.Snapshot{
			Tokens:  snapshot.FromTokenStream(ts),
			Symbols: snapshot.FromSymbolTable(table),
		}
		if err := snapshot.WriteFile(dumpPath, snap); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}

	if bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func runCheckManifest(cmd *cobra.Command, path string) error {
	manifest, err := project.Load(path)
	if err != nil {
		return err
	}
	jobs, _ := cmd.Flags().GetInt("jobs")

	result, err := project.Build(cmd.Context(), manifest, jobs)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	anyErrors := false
	for _, f := range result.Files {
		f.Bag.Sort()
		if f.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, f.Bag, result.FileSet, diagfmt.Options{Color: wantColor(cmd), Context: 1, ShowNotes: true})
		}
		if f.Bag.HasErrors() {
			anyErrors = true
		}
	}
	for _, c := range result.Conflicts {
		fmt.Fprintf(os.Stderr, "error: %s\n", c)
		anyErrors = true
	}

	if anyErrors {
		os.Exit(1)
	}
	return nil
}
