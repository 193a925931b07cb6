package sema

import (
	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/symbols"
	"langcore/internal/types"
)

// visitCall types a call expression (spec §4.9.6): argument types are
// computed first, then the callee resolves to either a named overload set
// (a bare/qualified/member-access function name) or a function-typed value
// (anything else — a variable holding a lambda, say).
func (r *TypeResolver) visitCall(n *ast.Call, scope symbols.ID) (*types.Type, symbols.ID) {
	argTypes := make([]*types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i], _ = r.visitExpr(a, scope)
	}

	candidates := r.callCandidates(n.Callee, scope)
	if len(candidates) == 0 {
		calleeType, _ := r.visitExpr(n.Callee, scope)
		calleeType = r.applySubstitution(calleeType)
		if calleeType.Tag() == types.TagFunction {
			params := calleeType.Params()
			for i, pt := range params {
				if i < len(argTypes) {
					r.unify(pt, argTypes[i], n.Args[i], "call argument")
				}
			}
			return calleeType.Return(), symbols.NoID
		}
		if calleeType.Tag() != types.TagUnresolved {
			r.reportOnce(n, diag.TypeNoOverload, "callee is not callable")
		}
		return r.types.GetUnresolved(), symbols.NoID
	}

	chosen, ok := r.resolveOverload(candidates, argTypes, n)
	if !ok {
		return r.types.GetUnresolved(), symbols.NoID
	}
	fnSym := r.table.Get(chosen)
	for i, pid := range fnSym.Parameters {
		if i < len(n.Args) {
			r.unify(r.table.Get(pid).VarType, argTypes[i], n.Args[i], "call argument")
		}
	}
	ret := fnSym.ReturnType
	if ma, ok := n.Callee.(*ast.MemberAccess); ok {
		if objType := ma.Object.Annotation().ResolvedType; objType != nil {
			if owner := r.typeSymbolOf(objType); owner != nil {
				ret = r.instantiate(r.applySubstitution(ret), owner, r.genericArgsOf(objType))
			}
		}
	}
	return ret, chosen
}

// callCandidates finds the overload set a call expression's callee names,
// without re-resolving it as a generic value expression (a bare function
// name is not itself a well-typed identifier reference the way a variable
// is — it only makes sense applied).
func (r *TypeResolver) callCandidates(callee ast.Expr, scope symbols.ID) []symbols.ID {
	switch c := callee.(type) {
	case *ast.Identifier:
		return r.filterFunctions(r.table.ResolveFrom(scope, c.Text))
	case *ast.NameExpr:
		return r.filterFunctions(r.table.ResolveFrom(scope, c.Name))
	case *ast.QualifiedName:
		return r.filterFunctions(r.table.ResolveDotted(scope, flattenQualified(c)))
	case *ast.MemberAccess:
		objType, _ := r.visitExpr(c.Object, scope)
		objType = r.applySubstitution(objType)
		sym := r.typeSymbolOf(objType)
		if sym == nil {
			return nil
		}
		return r.filterFunctions(r.table.LookupLocal(sym.ID(), c.Member))
	default:
		return nil
	}
}

func (r *TypeResolver) filterFunctions(ids []symbols.ID) []symbols.ID {
	var out []symbols.ID
	for _, id := range ids {
		if r.table.Get(id).Kind == symbols.KindFunction {
			out = append(out, id)
		}
	}
	return out
}

// resolveOverload picks the best-matching candidate (spec §4.9.6):
// discard wrong-arity and non-implicitly-convertible candidates, then
// prefer fewest non-Identity conversions, breaking ties by fewest widening
// conversions; an unbreakable tie is ambiguous.
func (r *TypeResolver) resolveOverload(candidates []symbols.ID, argTypes []*types.Type, node ast.Node) (symbols.ID, bool) {
	type scored struct {
		id                    symbols.ID
		nonIdentity, widening int
	}
	var viable []scored
	for _, id := range candidates {
		sym := r.table.Get(id)
		if len(sym.Parameters) != len(argTypes) {
			continue
		}
		ok := true
		nonIdentity, widening := 0, 0
		for i, pid := range sym.Parameters {
			pt := r.applySubstitution(r.table.Get(pid).VarType)
			at := r.naturalType(r.applySubstitution(argTypes[i]))
			kind := types.CheckConversion(at, pt, r.isBaseOf)
			if !kind.IsImplicit() {
				ok = false
				break
			}
			if kind != types.Identity {
				nonIdentity++
			}
			if kind == types.ImplicitNumericWidening {
				widening++
			}
		}
		if ok {
			viable = append(viable, scored{id, nonIdentity, widening})
		}
	}
	if len(viable) == 0 {
		r.reportOnce(node, diag.TypeNoOverload, "no matching overload found")
		return symbols.NoID, false
	}

	best := viable[0]
	ambiguous := false
	for _, v := range viable[1:] {
		switch {
		case v.nonIdentity < best.nonIdentity || (v.nonIdentity == best.nonIdentity && v.widening < best.widening):
			best = v
			ambiguous = false
		case v.nonIdentity == best.nonIdentity && v.widening == best.widening:
			ambiguous = true
		}
	}
	if ambiguous {
		r.reportOnce(node, diag.TypeAmbiguousOverload, "ambiguous overload resolution")
		return symbols.NoID, false
	}
	return best.id, true
}

func (r *TypeResolver) visitNew(n *ast.New, scope symbols.ID) *types.Type {
	declared := r.applySubstitution(r.resolveTypeExpr(scope, n.Type))
	argTypes := make([]*types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i], _ = r.visitExpr(a, scope)
	}
	if sym := r.typeSymbolOf(declared); sym != nil {
		if ctors := r.table.LookupLocal(sym.ID(), "New"); len(ctors) > 0 {
			if chosen, ok := r.resolveOverload(ctors, argTypes, n); ok {
				ctorSym := r.table.Get(chosen)
				for i, pid := range ctorSym.Parameters {
					if i < len(n.Args) {
						r.unify(r.table.Get(pid).VarType, argTypes[i], n.Args[i], "constructor argument")
					}
				}
			}
		}
	}
	if declared.IsReferenceType() {
		return r.types.GetPointer(declared)
	}
	return declared
}

func (r *TypeResolver) visitCast(n *ast.Cast, scope symbols.ID) *types.Type {
	fromType, _ := r.visitExpr(n.Value, scope)
	toType := r.resolveTypeExpr(scope, n.TargetType)
	fromSub := r.applySubstitution(fromType)
	kind := types.CheckConversion(fromSub, toType, r.isBaseOf)
	if kind == types.NotConvertible && fromSub.Tag() != types.TagUnresolved {
		r.reportOnce(n, diag.TypeNoConversion, "cannot convert %s to %s", fromSub.GetName(), toType.GetName())
	}
	return toType
}

// visitLambda types a lambda expression (spec §4.9.4). A lambda introduces
// its own anonymous scope on first visit (SymbolBuilder doesn't walk
// expressions, so lambda parameters have no symbols until the type
// resolver reaches them) and reuses that scope on later passes.
func (r *TypeResolver) visitLambda(n *ast.Lambda, scope symbols.ID) *types.Type {
	lscope, isNew := r.lambdaScope(n, scope)
	if !isNew {
		for i, p := range n.Params {
			if p.Type == nil {
				continue
			}
			ids := r.table.Children(lscope)
			if i < len(ids) {
				r.table.Get(ids[i]).VarType = r.resolveTypeExpr(scope, p.Type)
			}
		}
	}

	paramIDs := r.table.Children(lscope)
	paramTypes := make([]*types.Type, len(paramIDs))
	for i, pid := range paramIDs {
		paramTypes[i] = r.table.Get(pid).VarType
	}

	var bodyType *types.Type
	switch b := n.Body.(type) {
	case ast.Expr:
		bodyType, _ = r.visitExpr(b, lscope)
	case *ast.Block:
		r.visitStmts(b.Statements, lscope)
		bodyType = r.types.Void()
	default:
		bodyType = r.types.Void()
	}
	return r.types.GetFunction(bodyType, paramTypes)
}

func (r *TypeResolver) lambdaScope(n *ast.Lambda, parent symbols.ID) (symbols.ID, bool) {
	if id, ok := r.lambdaScopes[n]; ok {
		return id, false
	}
	id := r.table.Define(parent, symbols.KindBlock, "$lambda")
	for i, p := range n.Params {
		pid := r.table.Define(id, symbols.KindVariable, p.Name)
		psym := r.table.Get(pid)
		psym.VarKind = symbols.VarParameter
		psym.ParamIndex = i
		if p.Type != nil {
			psym.VarType = r.resolveTypeExpr(parent, p.Type)
		} else {
			psym.VarType = r.types.GetUnresolved()
		}
	}
	r.lambdaScopes[n] = id
	return id, true
}
