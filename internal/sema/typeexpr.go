package sema

import (
	"strconv"
	"strings"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/symbols"
	"langcore/internal/types"
)

var primitiveByName = func() map[string]types.PrimitiveKind {
	m := make(map[string]types.PrimitiveKind)
	for k := types.Void; k <= types.F64; k++ {
		m[k.String()] = k
	}
	return m
}()

// resolveTypeExpr turns a type-position AST expression into a canonical
// *types.Type (spec §4.9's declared-type resolution, distinct from unify:
// a declared type is ground truth, read straight off the syntax, never
// inferred). scope anchors name lookup for bare and dotted names.
func (r *TypeResolver) resolveTypeExpr(scope symbols.ID, expr ast.Expr) *types.Type {
	if expr == nil {
		return r.types.Void()
	}
	switch n := expr.(type) {
	case *ast.Identifier:
		// parseTypeExpression only ever builds a bare Identifier for the
		// `void` keyword; every other name goes through parseNameExpr.
		if n.Text == "void" {
			return r.types.Void()
		}
		return r.resolveNamedOrPrimitive(scope, n.Text, n)
	case *ast.NameExpr:
		return r.resolveNamedOrPrimitive(scope, n.Name, n)
	case *ast.QualifiedName:
		return r.resolveNamedPath(scope, flattenQualified(n), n)
	case *ast.GenericName:
		return r.resolveGenericType(scope, n.BaseExpr, n.TypeArgs, n)
	case *ast.GenericType:
		return r.resolveGenericType(scope, n.Base, n.Args, n)
	case *ast.PointerType:
		return r.types.GetPointer(r.resolveTypeExpr(scope, n.Base))
	case *ast.ArrayType:
		return r.types.GetArray(r.resolveTypeExpr(scope, n.Elem), arraySize(n.Size))
	case *ast.FunctionType:
		params := make([]*types.Type, len(n.ParamTypes))
		for i, p := range n.ParamTypes {
			params[i] = r.resolveTypeExpr(scope, p)
		}
		return r.types.GetFunction(r.resolveTypeExpr(scope, n.ReturnType), params)
	case *ast.MissingExpr:
		return r.types.GetUnresolved()
	default:
		return r.types.GetUnresolved()
	}
}

// arraySize extracts a constant array length from a size expression, or -1
// (unsized) when absent or not a simple integer literal. Array bounds in
// this grammar are always literal, so a richer constant-folding pass isn't
// needed here.
func arraySize(size ast.Expr) int32 {
	if size == nil {
		return -1
	}
	lit, ok := size.(*ast.Literal)
	if !ok || (lit.Kind != ast.LitInt && lit.Kind != ast.LitLong) {
		return -1
	}
	v, err := strconv.ParseInt(lit.RawText, 10, 32)
	if err != nil {
		return -1
	}
	return int32(v)
}

func flattenQualified(n *ast.QualifiedName) []string {
	var path []string
	var walk func(e ast.Expr)
	walk = func(e ast.Expr) {
		switch x := e.(type) {
		case *ast.QualifiedName:
			walk(x.Left)
			path = append(path, x.Right)
		case *ast.NameExpr:
			path = append(path, x.Name)
		case *ast.Identifier:
			path = append(path, x.Text)
		}
	}
	walk(n)
	return path
}

func (r *TypeResolver) resolveNamedOrPrimitive(scope symbols.ID, name string, node ast.Node) *types.Type {
	if pk, ok := primitiveByName[name]; ok {
		return r.types.Primitive(pk)
	}
	ids := r.table.ResolveFrom(scope, name)
	if len(ids) == 0 {
		r.reportOnce(node, diag.SymUnresolvedName, "unresolved type name %q", name)
		return r.types.GetUnresolved()
	}
	return r.typeOfTypeSymbol(ids[0], name, node)
}

func (r *TypeResolver) resolveNamedPath(scope symbols.ID, path []string, node ast.Node) *types.Type {
	ids := r.table.ResolveDotted(scope, path)
	if len(ids) == 0 {
		r.reportOnce(node, diag.SymUnresolvedName, "unresolved type name %q", strings.Join(path, "."))
		return r.types.GetUnresolved()
	}
	return r.typeOfTypeSymbol(ids[0], strings.Join(path, "."), node)
}

func (r *TypeResolver) typeOfTypeSymbol(id symbols.ID, name string, node ast.Node) *types.Type {
	sym := r.table.Get(id)
	if sym.Kind != symbols.KindType {
		r.reportOnce(node, diag.SymUnresolvedName, "%q is not a type", name)
		return r.types.GetUnresolved()
	}
	return sym.Type
}

// resolveGenericType resolves Base<Args...>: Base is resolved by simple
// name (a dotted generic base is a rare enough construct in this grammar
// that only its final segment is consulted, a documented simplification).
func (r *TypeResolver) resolveGenericType(scope symbols.ID, baseExpr ast.Expr, argExprs []ast.Expr, node ast.Node) *types.Type {
	args := make([]*types.Type, len(argExprs))
	for i, a := range argExprs {
		args[i] = r.resolveTypeExpr(scope, a)
	}
	var name string
	switch b := baseExpr.(type) {
	case *ast.NameExpr:
		name = b.Name
	case *ast.Identifier:
		name = b.Text
	case *ast.QualifiedName:
		path := flattenQualified(b)
		name = path[len(path)-1]
	default:
		return r.types.GetUnresolved()
	}
	ids := r.table.ResolveFrom(scope, name)
	if len(ids) == 0 {
		r.reportOnce(node, diag.SymUnresolvedName, "unresolved type name %q", name)
		return r.types.GetUnresolved()
	}
	sym := r.table.Get(ids[0])
	if sym.Kind != symbols.KindType {
		r.reportOnce(node, diag.SymUnresolvedName, "%q is not a type", name)
		return r.types.GetUnresolved()
	}
	return r.types.GetGeneric(sym, args)
}
