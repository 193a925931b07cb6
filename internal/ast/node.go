// Package ast defines the typed syntax tree the parser produces: a closed
// sum over Expression, Statement, and Declaration (a refinement of
// Statement), plus supporting nodes (spec §3.4). Nodes are allocated from a
// per-compilation Tree (backed by internal/arena's bump allocator, one
// typed sub-arena per concrete node kind) and referenced by plain Go
// pointers — stable for the arena's lifetime, and non-owning the way spec
// §3.3 describes: the Tree owns storage, edges between nodes don't.
//
// Go has no closed sum type, so the variant hierarchy is the same pattern
// go/ast uses: each category is an interface with an unexported marker
// method, concrete node types implement it via a pointer receiver, and a
// Walk function dispatches by type switch — the "one arm per variant"
// guarantee spec §9 asks for, expressed as an exhaustive switch instead of
// virtual dispatch.
package ast

import (
	"langcore/internal/source"
	"langcore/internal/types"
)

// SymbolID identifies a symbol.Symbol without ast importing the symbols
// package — see ExprAnnotation.ResolvedSymbol.
// Symbols own no AST pointers (spec §3.7 invariant 4); the reverse
// ast->symbol link lives in a side table (symbols.Table), not on the node.
type SymbolID uint32

// NoSymbol is the absent SymbolID.
const NoSymbol SymbolID = 0

// Node is implemented by every syntax tree element.
type Node interface {
	Span() source.Range
}

// Expr is implemented by every expression node. Annotation fields
// (ResolvedType, IsLValue, ResolvedSymbol) are filled in by the semantic
// phase (spec §3.4's "Expression annotations").
type Expr interface {
	Node
	exprNode()
	Annotation() *ExprAnnotation
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is implemented by every declaration node; declarations are also
// statements (spec §3.4).
type Decl interface {
	Stmt
	declNode()
}

// ExprAnnotation holds the mutable fields the type resolver fills in on
// every expression node, refining them on each of its fixed-point passes
// (spec §3.4, §4.9.8).
type ExprAnnotation struct {
	ResolvedType   *types.Type
	IsLValue       bool
	ResolvedSymbol SymbolID
}

// Base embeds into every concrete node for its source span. It is exported
// (unlike go/ast's private embedding) so the parser package, which lives
// outside ast, can populate it directly in node-literal construction.
type Base struct {
	Range source.Range
}

func (b Base) Span() source.Range { return b.Range }

// NewBase builds a Base covering span.
func NewBase(span source.Range) Base { return Base{Range: span} }

// ExprBase embeds into every expression node, carrying the shared span and
// semantic annotation.
type ExprBase struct {
	Base
	Ann ExprAnnotation
}

func (e *ExprBase) exprNode() {}

func (e *ExprBase) Annotation() *ExprAnnotation { return &e.Ann }

// NewExprBase builds an ExprBase covering span with a zeroed annotation.
func NewExprBase(span source.Range) ExprBase { return ExprBase{Base: NewBase(span)} }

// StmtBase embeds into every plain statement node.
type StmtBase struct{ Base }

func (s *StmtBase) stmtNode() {}

// NewStmtBase builds a StmtBase covering span.
func NewStmtBase(span source.Range) StmtBase { return StmtBase{Base: NewBase(span)} }

// DeclBase embeds into every declaration node (which is also a statement).
type DeclBase struct{ StmtBase }

func (d *DeclBase) declNode() {}

// NewDeclBase builds a DeclBase covering span.
func NewDeclBase(span source.Range) DeclBase { return DeclBase{StmtBase: NewStmtBase(span)} }
