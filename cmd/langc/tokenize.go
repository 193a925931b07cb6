package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"langcore/internal/diag"
	"langcore/internal/diagfmt"
	"langcore/internal/lexer"
	"langcore/internal/snapshot"
	"langcore/internal/source"
	"langcore/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Tokenize a source file and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("dump", "", "write a msgpack token snapshot to this path")
}

func runTokenize(cmd *cobra.Command, args []string) error {
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

	if bag.HasErrors() || bag.Len() > 0 {
		bag.Sort()
		diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.Options{Color: wantColor(cmd), Context: 1, ShowNotes: true})
	}

	for {
		tok := ts.Current()
		fmt.Printf("%-4d:%-3d %-12s %q\n", tok.Span.Start.Line, tok.Span.Start.Column, token.ToString(tok.Kind), tok.Text)
		if tok.IsEOF() {
			break
		}
		ts.Advance()
	}
	ts.Restore(0)

	if dumpPath, _ := cmd.Flags().GetString("dump"); dumpPath != "" {
		snap := &snapshot.Snapshot{Tokens: snapshot.FromTokenStream(ts)}
		if err := snapshot.WriteFile(dumpPath, snap); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}

	if bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}
