// Package sema implements the two AST passes that turn a parsed
// CompilationUnit into a fully typed program (spec §4.8, §4.9):
// SymbolBuilder populates the scope graph in source order, and TypeResolver
// runs a bounded Hindley-Milner-style unification fixed point over it.
package sema

import (
	"strings"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/symbols"
	"langcore/internal/types"
)

// SymbolBuilder is AST pass 1 (spec §4.8): a recursive descent over
// declarations and statements that populates a symbols.Table in-order,
// introducing anonymous child scopes for blocks and control-flow bodies so
// locals get a distinct home.
type SymbolBuilder struct {
	table    *symbols.Table
	types    *types.System
	reporter diag.Reporter

	nextTypeParamID uint32
}

// NewSymbolBuilder creates a builder writing into table using sys to mint
// placeholder types for declarations whose annotation isn't known until
// TypeResolver runs.
func NewSymbolBuilder(table *symbols.Table, sys *types.System, reporter diag.Reporter) *SymbolBuilder {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &SymbolBuilder{table: table, types: sys, reporter: reporter}
}

// Build walks unit's top-level statements, declaring every symbol the file
// introduces.
func (b *SymbolBuilder) Build(unit *ast.CompilationUnit) {
	for _, s := range unit.TopLevelStatements {
		b.stmt(s)
	}
}

func (b *SymbolBuilder) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.NamespaceDecl:
		b.namespaceDecl(n)
	case *ast.TypeDecl:
		b.typeDecl(n)
	case *ast.FunctionDecl:
		b.functionDecl(n)
	case *ast.ConstructorDecl:
		b.constructorDecl(n)
	case *ast.VariableDecl:
		b.variableDecl(n)
	case *ast.PropertyDecl:
		b.propertyDecl(n)
	case *ast.EnumCaseDecl:
		b.enumCaseDecl(n)
	case *ast.Block:
		b.block(n, "$block")
	case *ast.If:
		b.ifStmt(n)
	case *ast.While:
		b.whileStmt(n)
	case *ast.For:
		b.forStmt(n)
	case *ast.UsingDirective, *ast.Return, *ast.Break, *ast.Continue,
		*ast.ExpressionStmt, *ast.MissingStmt:
		// No symbol introduced; UsingDirective's target is resolved by
		// TypeResolver, and the rest are leaves.
	}
}

func accessFromModifiers(m ast.Modifiers) symbols.Access {
	switch {
	case m.Has(ast.ModPublic):
		return symbols.AccessPublic
	case m.Has(ast.ModProtected):
		return symbols.AccessProtected
	default:
		return symbols.AccessPrivate
	}
}

// defineChecked declares name under parent, reporting SymDuplicateDeclaration
// unless every existing same-named sibling and the new symbol are both
// functions (overloads are never conflicts at this pass; true signature
// clashes surface later, at Table.Merge, per spec §4.7).
func (b *SymbolBuilder) defineChecked(parent symbols.ID, kind symbols.SymbolKind, name string, span ast.Node) symbols.ID {
	for _, id := range b.table.LookupLocal(parent, name) {
		existing := b.table.Get(id)
		if existing.Kind != symbols.KindFunction || kind != symbols.KindFunction {
			diag.Errorf(b.reporter, diag.SymDuplicateDeclaration, span.Span(), "duplicate declaration of %q", name)
			break
		}
	}
	id := b.table.Define(parent, kind, name)
	b.table.Get(id).Location = span.Span()
	return id
}

func (b *SymbolBuilder) namespaceDecl(n *ast.NamespaceDecl) {
	parent := b.table.CurrentScope()
	var id symbols.ID
	for _, seg := range strings.Split(n.Name, ".") {
		if existing := b.table.LookupLocal(parent, seg); len(existing) == 1 && b.table.Get(existing[0]).Kind == symbols.KindNamespace {
			id = existing[0]
		} else {
			id = b.table.Define(parent, symbols.KindNamespace, seg)
			b.table.Get(id).Location = n.Span()
		}
		parent = id
	}
	b.table.BindAST(n, id)
	b.table.PushScope(id)
	for _, s := range n.Body {
		b.stmt(s)
	}
	b.table.PopScope()
}

func (b *SymbolBuilder) typeDecl(n *ast.TypeDecl) {
	id := b.defineChecked(b.table.CurrentScope(), symbols.KindType, n.Name, n)
	sym := b.table.Get(id)
	sym.Modifiers = n.Modifiers
	sym.Access = accessFromModifiers(n.Modifiers)
	sym.TypeDeclKind = n.Kind
	sym.Type = b.types.GetNamed(sym)
	b.table.BindAST(n, id)

	b.table.PushScope(id)
	for _, tp := range n.TypeParams {
		b.typeParam(tp, id)
	}
	for _, m := range n.Members {
		b.stmt(m)
	}
	b.table.PopScope()
}

func (b *SymbolBuilder) typeParam(tp *ast.TypeParameterDecl, owner symbols.ID) {
	id := b.table.Define(owner, symbols.KindType, tp.Name)
	sym := b.table.Get(id)
	sym.Location = tp.Span()
	b.nextTypeParamID++
	sym.Type = b.types.GetTypeParameter(tp.Name, b.nextTypeParamID)
	b.table.BindAST(tp, id)
	b.table.Get(owner).TypeParams = append(b.table.Get(owner).TypeParams, id)
}

func (b *SymbolBuilder) functionDecl(n *ast.FunctionDecl) {
	id := b.defineChecked(b.table.CurrentScope(), symbols.KindFunction, n.Name, n)
	sym := b.table.Get(id)
	sym.Modifiers = n.Modifiers
	sym.Access = accessFromModifiers(n.Modifiers)
	sym.ReturnType = b.types.GetUnresolved()
	b.table.BindAST(n, id)

	b.table.PushScope(id)
	for _, tp := range n.TypeParams {
		b.typeParam(tp, id)
	}
	for i, p := range n.Params {
		b.parameterDecl(p, id, i)
	}
	if n.Body != nil {
		for _, s := range n.Body.Statements {
			b.stmt(s)
		}
	}
	b.table.PopScope()
}

func (b *SymbolBuilder) parameterDecl(p *ast.ParameterDecl, fn symbols.ID, index int) {
	id := b.defineChecked(fn, symbols.KindVariable, p.Param.Name, p)
	sym := b.table.Get(id)
	sym.VarKind = symbols.VarParameter
	sym.VarType = b.types.GetUnresolved()
	sym.ParamIndex = index
	sym.HasDefault = p.Default != nil
	sym.IsRef = p.Modifiers.Has(ast.ModRef)
	b.table.BindAST(p, id)
	fnSym := b.table.Get(fn)
	fnSym.Parameters = append(fnSym.Parameters, id)
}

func (b *SymbolBuilder) constructorDecl(n *ast.ConstructorDecl) {
	owner := b.table.CurrentScope()
	if b.table.Get(owner).Kind != symbols.KindType {
		diag.Errorf(b.reporter, diag.SymDuplicateDeclaration, n.Span(), "constructor declared outside a type")
	}
	id := b.table.Define(owner, symbols.KindFunction, "New")
	sym := b.table.Get(id)
	sym.Location = n.Span()
	sym.Modifiers = n.Modifiers
	sym.IsConstructor = true
	sym.ReturnType = b.types.GetUnresolved()
	b.table.BindAST(n, id)

	b.table.PushScope(id)
	for i, p := range n.Params {
		b.parameterDecl(p, id, i)
	}
	if n.Body != nil {
		for _, s := range n.Body.Statements {
			b.stmt(s)
		}
	}
	b.table.PopScope()
}

func (b *SymbolBuilder) variableDecl(n *ast.VariableDecl) {
	owner := b.table.CurrentScope()
	id := b.defineChecked(owner, symbols.KindVariable, n.Variable.Name, n)
	sym := b.table.Get(id)
	sym.Modifiers = n.Modifiers
	sym.Access = accessFromModifiers(n.Modifiers)
	if b.table.Get(owner).Kind == symbols.KindType {
		sym.VarKind = symbols.VarField
	} else {
		sym.VarKind = symbols.VarLocal
	}
	sym.VarType = b.types.GetUnresolved()
	b.table.BindAST(n, id)
}

func (b *SymbolBuilder) propertyDecl(n *ast.PropertyDecl) {
	owner := b.table.CurrentScope()
	id := b.defineChecked(owner, symbols.KindProperty, n.Variable.Name, n)
	sym := b.table.Get(id)
	sym.Modifiers = n.Modifiers
	sym.Access = accessFromModifiers(n.Modifiers)
	sym.PropType = b.types.GetUnresolved()
	sym.HasGetter = n.Getter != nil
	sym.HasSetter = n.Setter != nil
	b.table.BindAST(n, id)

	b.table.PushScope(id)
	if n.Getter != nil {
		b.accessor(n.Getter, id, "get")
	}
	if n.Setter != nil {
		b.accessor(n.Setter, id, "set")
	}
	b.table.PopScope()
}

func (b *SymbolBuilder) accessor(a *ast.PropertyAccessor, prop symbols.ID, name string) {
	id := b.table.Define(prop, symbols.KindFunction, name)
	sym := b.table.Get(id)
	sym.Location = a.Span()
	sym.ReturnType = b.types.GetUnresolved()
	b.table.BindAST(a, id)

	if name == "set" {
		valID := b.table.Define(id, symbols.KindVariable, "value")
		val := b.table.Get(valID)
		val.VarKind = symbols.VarParameter
		val.VarType = b.types.GetUnresolved()
		sym.Parameters = append(sym.Parameters, valID)
	}
	if a.BodyKind == ast.AccessorBlock && a.Body != nil {
		b.table.PushScope(id)
		for _, s := range a.Body.Statements {
			b.stmt(s)
		}
		b.table.PopScope()
	}
}

func (b *SymbolBuilder) enumCaseDecl(n *ast.EnumCaseDecl) {
	owner := b.table.CurrentScope()
	ordinal := int64(len(b.table.Children(owner)))
	id := b.defineChecked(owner, symbols.KindEnumCase, n.Name, n)
	sym := b.table.Get(id)
	sym.Modifiers = n.Modifiers
	sym.EnumValue = ordinal
	sym.AssociatedTypes = make([]*types.Type, len(n.AssociatedData))
	for i := range sym.AssociatedTypes {
		sym.AssociatedTypes[i] = b.types.GetUnresolved()
	}
	b.table.BindAST(n, id)
}

// branch declares the anonymous scope for an `if`/`while` arm (spec §4.8's
// $if_then/$if_else/$while), binding it to the arm statement itself rather
// than to a Block, since an unbraced single-statement arm has no Block node
// to bind to.
func (b *SymbolBuilder) branch(label string, s ast.Stmt) {
	if s == nil {
		return
	}
	id := b.table.Define(b.table.CurrentScope(), symbols.KindBlock, label)
	b.table.Get(id).Location = s.Span()
	b.table.BindAST(s, id)
	b.table.PushScope(id)
	if blk, ok := s.(*ast.Block); ok {
		for _, st := range blk.Statements {
			b.stmt(st)
		}
	} else {
		b.stmt(s)
	}
	b.table.PopScope()
}

func (b *SymbolBuilder) ifStmt(n *ast.If) {
	b.branch("$if_then", n.Then)
	if n.Else != nil {
		b.branch("$if_else", n.Else)
	}
}

func (b *SymbolBuilder) whileStmt(n *ast.While) {
	b.branch("$while", n.Body)
}

func (b *SymbolBuilder) forStmt(n *ast.For) {
	id := b.table.Define(b.table.CurrentScope(), symbols.KindBlock, "$for")
	b.table.Get(id).Location = n.Span()
	b.table.BindAST(n, id)
	b.table.PushScope(id)
	if n.Init != nil {
		b.stmt(n.Init)
	}
	if blk, ok := n.Body.(*ast.Block); ok {
		for _, st := range blk.Statements {
			b.stmt(st)
		}
	} else if n.Body != nil {
		b.stmt(n.Body)
	}
	b.table.PopScope()
}

func (b *SymbolBuilder) block(n *ast.Block, label string) {
	id := b.table.Define(b.table.CurrentScope(), symbols.KindBlock, label)
	b.table.Get(id).Location = n.Span()
	b.table.BindAST(n, id)
	b.table.PushScope(id)
	for _, s := range n.Statements {
		b.stmt(s)
	}
	b.table.PopScope()
}
