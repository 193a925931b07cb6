package project

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/lexer"
	"langcore/internal/parser"
	"langcore/internal/sema"
	"langcore/internal/source"
	"langcore/internal/symbols"
	"langcore/internal/token"
	"langcore/internal/types"
)

// FileResult holds everything produced for one compiled source file: its
// own token stream, tree, and symbol table are kept self-contained (spec
// §4.7/§4.9 run per compilation unit), so a file's diagnostics and symbols
// can be inspected independently of how it merges into the project.
type FileResult struct {
	Path   string
	FileID source.FileID
	Tokens *lexer.TokenStream
	Tree   *ast.Tree
	Unit   *ast.CompilationUnit
	Table  *symbols.Table
	Bag    *diag.Bag
}

// BuildResult is the outcome of compiling an entire project.
type BuildResult struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Conflicts lists cross-file duplicate-declaration messages discovered
	// while folding each file's symbol table into the project-wide one
	// (spec §8.2 scenario 5), in file order.
	Conflicts []string
}

// Build compiles every source file named by m (spec §5's concurrency
// model): files are lexed, parsed, and semantically analyzed in parallel —
// one Lexer/Parser/SymbolBuilder/TypeResolver pipeline per file, each
// writing into its own arena-backed Tree and Table — then folded
// sequentially into a single project-wide symbol table via symbols.Merge,
// grounded on the teacher's errgroup-based internal/driver/parallel.go.
func Build(ctx context.Context, m *Manifest, jobs int) (*BuildResult, error) {
	paths := m.SourcePaths()
	fs := source.NewFileSet()
	fileIDs := make([]source.FileID, len(paths))
	for i, p := range paths {
		id, err := fs.Load(p)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to load source %s: %w", m.Path, p, err)
		}
		fileIDs[i] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = compileFile(path, fileIDs[i], fs, m.Build.MaxDiagnostics)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	master := symbols.NewTable()
	var conflicts []string
	for i := range results {
		conflicts = append(conflicts, master.Merge(results[i].Table)...)
	}

	return &BuildResult{FileSet: fs, Files: results, Conflicts: conflicts}, nil
}

func compileFile(path string, fileID source.FileID, fs *source.FileSet, maxDiagnostics int) FileResult {
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	file := fs.File(fileID)

	toks := lexer.Tokenize(fileID, file.Content, lexer.DefaultOptions(), reporter)
	tree := ast.NewTree()
	unit, _ := parser.Parse(toks, tree, fileID, reporter)

	table := symbols.NewTable()
	sys := types.NewSystem()
	sema.NewSymbolBuilder(table, sys, reporter).Build(unit)
	sema.NewTypeResolver(table, sys, reporter).Resolve(unit)

	return FileResult{
		Path: path, FileID: fileID, Tokens: toks, Tree: tree, Unit: unit, Table: table, Bag: bag,
	}
}

// TokenKindName exposes token.ToString for callers that only have a
// project import.
func TokenKindName(k token.Kind) string { return token.ToString(k) }
