package printer_test

import (
	"strings"
	"testing"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/lexer"
	"langcore/internal/parser"
	"langcore/internal/printer"
	"langcore/internal/source"
)

func mustParse(t *testing.T, src string) *ast.CompilationUnit {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.lang", []byte(src))
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(fileID, []byte(src), lexer.DefaultOptions(), reporter)
	tree := ast.NewTree()
	unit, _ := parser.Parse(toks, tree, fileID, reporter)
	if bag.HasErrors() {
		t.Fatalf("unexpected parse diagnostics for %q: %v", src, bag.Items())
	}
	return unit
}

func structuralDump(unit *ast.CompilationUnit) string {
	var sb strings.Builder
	p := printer.NewAstPrinter(&sb, printer.Options{ShowTypes: false, Indent: "  "})
	p.Print(unit)
	return sb.String()
}

// TestAstPrinterShapesANonEmptyTree is a smoke test that AstPrinter
// produces a tree reflecting the function's structure.
func TestAstPrinterShapesANonEmptyTree(t *testing.T) {
	unit := mustParse(t, "fn add(i32 a, i32 b) : i32 { return a + b; }")
	dump := structuralDump(unit)
	for _, want := range []string{"Function(add)", "Param(a)", "Param(b)", "Return"} {
		if !strings.Contains(dump, want) {
			t.Errorf("expected dump to contain %q, got:\n%s", want, dump)
		}
	}
}

// TestRoundTripPrintingReparsesToStructurallyIdenticalTree checks spec
// §8.1: AstToCodePrinter(parse(S)) parses back to a structurally identical
// tree. Structural identity is checked via AstPrinter's type-free dump,
// since two independently-built trees are never pointer-equal.
func TestRoundTripPrintingReparsesToStructurallyIdenticalTree(t *testing.T) {
	sources := []string{
		"fn add(i32 a, i32 b) : i32 { return a + b; }",
		"type Point { i32 X; i32 Y; fn sum() : i32 { return X + Y; } }",
		`type Shape {
	i32 Area { get; set; }
}`,
		"fn f() { if (1 > 0) { return; } else { return; } }",
		"fn f() { for (var i = 0; i < 10; i = i + 1) { } }",
		"namespace App.Core;\nusing System;\nfn main() : void { }",
		"enum Color { Red, Green, Blue }",
	}
	for _, src := range sources {
		original := mustParse(t, src)
		originalDump := structuralDump(original)

		var sb strings.Builder
		printer.NewAstToCodePrinter(&sb).Print(original)
		reprinted := sb.String()

		reparsed := mustParse(t, reprinted)
		reparsedDump := structuralDump(reparsed)

		if originalDump != reparsedDump {
			t.Errorf("round trip mismatch for %q:\nreprinted source:\n%s\noriginal dump:\n%s\nreparsed dump:\n%s",
				src, reprinted, originalDump, reparsedDump)
		}
	}
}
