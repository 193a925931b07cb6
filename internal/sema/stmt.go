package sema

import (
	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/symbols"
	"langcore/internal/types"
)

func (r *TypeResolver) visitStmts(stmts []ast.Stmt, scope symbols.ID) {
	for _, s := range stmts {
		r.visitStmt(s, scope)
	}
}

func (r *TypeResolver) visitStmt(s ast.Stmt, scope symbols.ID) {
	switch n := s.(type) {
	case *ast.NamespaceDecl:
		r.visitStmts(n.Body, r.scopeFor(n, scope))
	case *ast.TypeDecl:
		r.visitTypeDecl(n, scope)
	case *ast.FunctionDecl:
		r.visitFunctionDecl(n, scope)
	case *ast.ConstructorDecl:
		r.visitConstructorDecl(n, scope)
	case *ast.VariableDecl:
		r.visitVariableDecl(n, scope)
	case *ast.PropertyDecl:
		r.visitPropertyDecl(n, scope)
	case *ast.EnumCaseDecl:
		r.visitEnumCaseDecl(n, scope)
	case *ast.UsingDirective:
		if n.Kind == ast.UsingAlias {
			r.resolveTypeExpr(scope, n.AliasedType)
		}
	case *ast.Block:
		r.visitStmts(n.Statements, r.scopeFor(n, scope))
	case *ast.If:
		r.visitExpr(n.Cond, scope)
		r.checkBool(n.Cond, scope)
		r.visitBranch(n.Then, scope)
		if n.Else != nil {
			r.visitBranch(n.Else, scope)
		}
	case *ast.While:
		r.visitExpr(n.Cond, scope)
		r.checkBool(n.Cond, scope)
		r.visitBranch(n.Body, scope)
	case *ast.For:
		r.visitForStmt(n, scope)
	case *ast.Return:
		r.visitReturn(n, scope)
	case *ast.ExpressionStmt:
		r.visitExpr(n.Expr, scope)
	case *ast.Break:
		if !r.enclosingLoop(scope) {
			r.reportOnce(n, diag.SymBreakOutsideLoop, "break outside of loop")
		}
	case *ast.Continue:
		if !r.enclosingLoop(scope) {
			r.reportOnce(n, diag.SymContinueOutsideLoop, "continue outside of loop")
		}
	case *ast.MissingStmt:
		// Leaves; nothing to type.
	}
}

// visitBranch visits an if/while arm in its anonymous scope (spec §4.8's
// $if_then/$if_else/$while), iterating a Block's statements directly so it
// doesn't introduce a redundant nested scope on top of the one
// SymbolBuilder already created for the arm.
func (r *TypeResolver) visitBranch(s ast.Stmt, parentScope symbols.ID) {
	scope := r.scopeFor(s, parentScope)
	if blk, ok := s.(*ast.Block); ok {
		r.visitStmts(blk.Statements, scope)
		return
	}
	r.visitStmt(s, scope)
}

func (r *TypeResolver) visitForStmt(n *ast.For, parentScope symbols.ID) {
	scope := r.scopeFor(n, parentScope)
	if n.Init != nil {
		r.visitStmt(n.Init, scope)
	}
	if n.Cond != nil {
		r.visitExpr(n.Cond, scope)
		r.checkBool(n.Cond, scope)
	}
	for _, u := range n.Updates {
		r.visitExpr(u, scope)
	}
	if blk, ok := n.Body.(*ast.Block); ok {
		r.visitStmts(blk.Statements, scope)
	} else if n.Body != nil {
		r.visitStmt(n.Body, scope)
	}
}

func (r *TypeResolver) checkBool(cond ast.Expr, scope symbols.ID) {
	if cond == nil {
		return
	}
	t, _ := r.visitExpr(cond, scope)
	t = r.applySubstitution(t)
	pk, ok := t.IsPrimitive()
	if (!ok || pk != types.Bool) && t.Tag() != types.TagUnresolved {
		r.reportOnce(cond, diag.TypeMismatch, "condition must be bool, got %s", t.GetName())
	}
}

func (r *TypeResolver) visitTypeDecl(n *ast.TypeDecl, scope symbols.ID) {
	id, ok := r.table.SymbolFor(n)
	if !ok {
		return
	}
	sym := r.table.Get(id)
	for i, bt := range n.BaseTypes {
		bType := r.applySubstitution(r.resolveTypeExpr(scope, bt))
		baseSym := r.typeSymbolOf(bType)
		if baseSym == nil {
			continue
		}
		if i == 0 {
			sym.BaseClass = baseSym.ID()
		} else {
			sym.Interfaces = append(sym.Interfaces, baseSym.ID())
		}
	}
	for _, m := range n.Members {
		r.visitStmt(m, id)
	}
}

func (r *TypeResolver) visitFunctionDecl(n *ast.FunctionDecl, scope symbols.ID) {
	fnID, ok := r.table.SymbolFor(n)
	if !ok {
		return
	}
	fnSym := r.table.Get(fnID)
	declaredReturn := r.resolveTypeExpr(scope, n.ReturnType)
	fnSym.ReturnType = r.unify(fnSym.ReturnType, declaredReturn, n, "function return type")

	for i, p := range n.Params {
		if i >= len(fnSym.Parameters) {
			break
		}
		r.visitParameterDecl(p, fnSym.Parameters[i], scope, fnID)
	}
	if n.Body != nil {
		r.visitStmts(n.Body.Statements, fnID)
		r.checkReturnCoverage(n, n.Body, fnSym)
	}
}

func (r *TypeResolver) visitParameterDecl(p *ast.ParameterDecl, paramID symbols.ID, declScope, bodyScope symbols.ID) {
	paramSym := r.table.Get(paramID)
	declared := r.resolveTypeExpr(declScope, p.Param.Type)
	paramSym.VarType = r.unify(paramSym.VarType, declared, p, "parameter type")
	if p.Default != nil {
		defType, _ := r.visitExpr(p.Default, bodyScope)
		r.unify(paramSym.VarType, defType, p, "parameter default value")
	}
}

func (r *TypeResolver) visitConstructorDecl(n *ast.ConstructorDecl, scope symbols.ID) {
	ctorID, ok := r.table.SymbolFor(n)
	if !ok {
		return
	}
	ctorSym := r.table.Get(ctorID)
	ctorSym.ReturnType = r.types.Void()
	for i, p := range n.Params {
		if i >= len(ctorSym.Parameters) {
			break
		}
		r.visitParameterDecl(p, ctorSym.Parameters[i], scope, ctorID)
	}
	if n.Body != nil {
		r.visitStmts(n.Body.Statements, ctorID)
	}
}

func (r *TypeResolver) visitVariableDecl(n *ast.VariableDecl, scope symbols.ID) {
	id, ok := r.table.SymbolFor(n)
	if !ok {
		return
	}
	sym := r.table.Get(id)
	if n.Variable.Type != nil {
		declared := r.resolveTypeExpr(scope, n.Variable.Type)
		sym.VarType = r.unify(sym.VarType, declared, n, "variable declaration")
	}
	if n.Initializer != nil {
		initType, _ := r.visitExpr(n.Initializer, scope)
		sym.VarType = r.unify(sym.VarType, initType, n, "variable initializer")
	}
}

func (r *TypeResolver) visitPropertyDecl(n *ast.PropertyDecl, scope symbols.ID) {
	id, ok := r.table.SymbolFor(n)
	if !ok {
		return
	}
	sym := r.table.Get(id)
	declared := r.resolveTypeExpr(scope, n.Variable.Type)
	sym.PropType = r.unify(sym.PropType, declared, n, "property declaration")
	if n.Getter != nil {
		r.visitAccessor(n.Getter, id, sym.PropType, true)
	}
	if n.Setter != nil {
		r.visitAccessor(n.Setter, id, sym.PropType, false)
	}
}

func (r *TypeResolver) visitAccessor(a *ast.PropertyAccessor, propScope symbols.ID, propType *types.Type, isGetter bool) {
	accID, ok := r.table.SymbolFor(a)
	if !ok {
		return
	}
	accSym := r.table.Get(accID)
	accSym.ReturnType = propType
	if !isGetter && len(accSym.Parameters) > 0 {
		valSym := r.table.Get(accSym.Parameters[0])
		valSym.VarType = r.unify(valSym.VarType, propType, a, "property setter value")
	}
	switch a.BodyKind {
	case ast.AccessorExpression:
		t, _ := r.visitExpr(a.Expr, accID)
		if isGetter {
			r.unify(propType, t, a, "property getter")
		}
	case ast.AccessorBlock:
		if a.Body != nil {
			r.visitStmts(a.Body.Statements, accID)
		}
	case ast.AccessorAuto:
		// Compiler-synthesized backing field; no body to type.
	}
}

func (r *TypeResolver) visitEnumCaseDecl(n *ast.EnumCaseDecl, scope symbols.ID) {
	id, ok := r.table.SymbolFor(n)
	if !ok {
		return
	}
	sym := r.table.Get(id)
	for i, p := range n.AssociatedData {
		if i >= len(sym.AssociatedTypes) {
			break
		}
		declared := r.resolveTypeExpr(scope, p.Param.Type)
		sym.AssociatedTypes[i] = r.unify(sym.AssociatedTypes[i], declared, p, "enum case associated data")
	}
}

func (r *TypeResolver) visitReturn(n *ast.Return, scope symbols.ID) {
	fnID := r.enclosingFunction(scope)
	if fnID == symbols.NoID {
		return // parser already reported 'return' outside a function
	}
	fnSym := r.table.Get(fnID)
	var valType *types.Type
	if n.Value != nil {
		valType, _ = r.visitExpr(n.Value, scope)
	} else {
		valType = r.types.Void()
	}
	fnSym.ReturnType = r.unify(fnSym.ReturnType, valType, n, "return statement")
}

// checkReturnCoverage reports TypeMissingReturn when a non-void function's
// body contains no Return statement at all. This is a
// conservative presence check, not a full control-flow reachability
// analysis (an `if` with both branches returning still passes because each
// branch's Return is present in the tree).
func (r *TypeResolver) checkReturnCoverage(n *ast.FunctionDecl, body *ast.Block, fnSym *symbols.Symbol) {
	ret := r.applySubstitution(fnSym.ReturnType)
	if ret.IsVoid() {
		return
	}
	if !hasReturn(body.Statements) {
		r.reportOnce(n, diag.TypeMissingReturn, "function %q must return a value", n.Name)
	}
}

func hasReturn(stmts []ast.Stmt) bool {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.Return:
			return true
		case *ast.Block:
			if hasReturn(n.Statements) {
				return true
			}
		case *ast.If:
			if hasReturn(asSlice(n.Then)) || (n.Else != nil && hasReturn(asSlice(n.Else))) {
				return true
			}
		case *ast.While:
			if hasReturn(asSlice(n.Body)) {
				return true
			}
		case *ast.For:
			if n.Body != nil && hasReturn(asSlice(n.Body)) {
				return true
			}
		}
	}
	return false
}

func asSlice(s ast.Stmt) []ast.Stmt {
	if blk, ok := s.(*ast.Block); ok {
		return blk.Statements
	}
	return []ast.Stmt{s}
}
