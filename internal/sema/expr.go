package sema

import (
	"strings"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/symbols"
	"langcore/internal/token"
	"langcore/internal/types"
)

// visitExpr types one expression node (spec §4.9.4), annotating it with its
// resolved type, lvalueness, and (when it names one) the symbol it refers
// to, then returns the same pair for the caller's own unification.
func (r *TypeResolver) visitExpr(e ast.Expr, scope symbols.ID) (*types.Type, bool) {
	if e == nil {
		return r.types.Void(), false
	}
	var t *types.Type
	var lv bool
	sym := symbols.NoID

	switch n := e.(type) {
	case *ast.Literal:
		t = r.literalType(n)
	case *ast.ArrayLiteral:
		t = r.visitArrayLiteral(n, scope)
	case *ast.Identifier:
		t, lv, sym = r.resolveIdentLike(n.Text, scope, n)
	case *ast.NameExpr:
		t, lv, sym = r.resolveIdentLike(n.Name, scope, n)
	case *ast.QualifiedName:
		t, lv, sym = r.resolveQualifiedValue(n, scope)
	case *ast.GenericName:
		t = r.resolveTypeExpr(scope, n)
	case *ast.This:
		t = r.visitThis(n, scope)
	case *ast.Parenthesized:
		t, lv = r.visitExpr(n.Inner, scope)
	case *ast.Unary:
		t, lv = r.visitUnary(n, scope)
	case *ast.Binary:
		t = r.visitBinary(n, scope)
	case *ast.Assignment:
		t, lv = r.visitAssignment(n, scope)
	case *ast.Conditional:
		t = r.visitConditional(n, scope)
	case *ast.MemberAccess:
		t, lv, sym = r.visitMemberAccess(n, scope)
	case *ast.Indexer:
		t, lv = r.visitIndexer(n, scope)
	case *ast.Call:
		t, sym = r.visitCall(n, scope)
	case *ast.New:
		t = r.visitNew(n, scope)
	case *ast.Cast:
		t = r.visitCast(n, scope)
	case *ast.Lambda:
		t = r.visitLambda(n, scope)
	case *ast.TypeOf:
		r.resolveTypeExpr(scope, n.Type)
		t = r.typeHandleType()
	case *ast.SizeOf:
		r.resolveTypeExpr(scope, n.Type)
		t = r.types.Primitive(types.U64)
	case *ast.RangeExpr:
		lo, _ := r.visitExpr(n.Low, scope)
		hi, _ := r.visitExpr(n.High, scope)
		t = r.unify(lo, hi, n, "range bounds")
	case *ast.EnumShorthand:
		t = r.enumShorthandType(n)
	case *ast.MissingExpr:
		t = r.types.GetUnresolved()
	default:
		t = r.types.GetUnresolved()
	}

	if t == nil {
		t = r.types.GetUnresolved()
	}
	ann := e.Annotation()
	ann.ResolvedType = t
	ann.IsLValue = lv
	if sym != symbols.NoID {
		ann.ResolvedSymbol = ast.SymbolID(sym)
	}
	return t, lv
}

// seeded returns a node's previously-annotated type if this is not the
// first pass to visit it, so per-node type variables (an int literal's
// default-candidate var, a lambda's inferred parameter types) are minted
// once and then reused/chased across passes instead of discarded.
func (r *TypeResolver) seeded(n ast.Expr) (*types.Type, bool) {
	if prev := n.Annotation().ResolvedType; prev != nil {
		return r.applySubstitution(prev), true
	}
	return nil, false
}

func (r *TypeResolver) literalType(n *ast.Literal) *types.Type {
	if t, ok := r.seeded(n); ok {
		return t
	}
	switch n.Kind {
	case ast.LitInt:
		v := r.types.GetUnresolved()
		r.defaultFor[v] = r.types.I32()
		return v
	case ast.LitLong:
		return r.types.Primitive(types.I64)
	case ast.LitFloat:
		return r.types.Primitive(types.F32)
	case ast.LitDouble:
		v := r.types.GetUnresolved()
		r.defaultFor[v] = r.types.F64()
		return v
	case ast.LitString:
		return r.types.String()
	case ast.LitChar:
		return r.types.Char()
	case ast.LitBool:
		return r.types.Bool()
	case ast.LitNull:
		pointee := r.types.GetUnresolved()
		r.defaultFor[pointee] = r.types.Void()
		return r.types.GetPointer(pointee)
	default:
		return r.types.GetUnresolved()
	}
}

func (r *TypeResolver) enumShorthandType(n *ast.EnumShorthand) *types.Type {
	if t, ok := r.seeded(n); ok {
		return t
	}
	// The enum type this shorthand belongs to is only known from its usage
	// context (e.g. the variable it initializes); without threading an
	// expected-type parameter through every caller, it's left Unresolved
	// and reported at finalization if nothing ever constrains it.
	return r.types.GetUnresolved()
}

func (r *TypeResolver) visitArrayLiteral(n *ast.ArrayLiteral, scope symbols.ID) *types.Type {
	var elem *types.Type
	for _, el := range n.Elements {
		et, _ := r.visitExpr(el, scope)
		if elem == nil {
			elem = et
		} else {
			elem = r.unify(elem, et, n, "array literal element")
		}
	}
	if elem == nil {
		elem = r.types.GetUnresolved()
	}
	return r.types.GetArray(elem, int32(len(n.Elements)))
}

func (r *TypeResolver) visitThis(n *ast.This, scope symbols.ID) *types.Type {
	tid := r.containingType(scope)
	if tid == symbols.NoID {
		r.reportOnce(n, diag.SymUnresolvedName, "'this' used outside a type's method")
		return r.types.GetUnresolved()
	}
	return r.table.Get(tid).Type
}

func (r *TypeResolver) resolveIdentLike(name string, scope symbols.ID, node ast.Node) (*types.Type, bool, symbols.ID) {
	ids := r.table.ResolveFrom(scope, name)
	if len(ids) == 0 {
		r.reportOnce(node, diag.SymUnresolvedName, "unresolved name %q", name)
		return r.types.GetUnresolved(), false, symbols.NoID
	}
	return r.symbolExprType(r.table.Get(ids[0]))
}

func (r *TypeResolver) resolveQualifiedValue(n *ast.QualifiedName, scope symbols.ID) (*types.Type, bool, symbols.ID) {
	path := flattenQualified(n)
	ids := r.table.ResolveDotted(scope, path)
	if len(ids) == 0 {
		r.reportOnce(n, diag.SymUnresolvedName, "unresolved name %q", strings.Join(path, "."))
		return r.types.GetUnresolved(), false, symbols.NoID
	}
	return r.symbolExprType(r.table.Get(ids[0]))
}

func (r *TypeResolver) symbolExprType(sym *symbols.Symbol) (*types.Type, bool, symbols.ID) {
	switch sym.Kind {
	case symbols.KindVariable:
		return sym.VarType, true, sym.ID()
	case symbols.KindProperty:
		return sym.PropType, true, sym.ID()
	case symbols.KindFunction:
		return r.functionType(sym), false, sym.ID()
	case symbols.KindType:
		return sym.Type, false, sym.ID()
	case symbols.KindEnumCase:
		return r.table.Get(sym.Parent).Type, false, sym.ID()
	default:
		return r.types.GetUnresolved(), false, sym.ID()
	}
}

func (r *TypeResolver) functionType(sym *symbols.Symbol) *types.Type {
	params := make([]*types.Type, len(sym.Parameters))
	for i, pid := range sym.Parameters {
		params[i] = r.table.Get(pid).VarType
	}
	return r.types.GetFunction(sym.ReturnType, params)
}

func (r *TypeResolver) visitUnary(n *ast.Unary, scope symbols.ID) (*types.Type, bool) {
	operandType, operandLV := r.visitExpr(n.Operand, scope)
	switch n.Op {
	case token.Bang:
		r.unify(operandType, r.types.Bool(), n, "logical not operand")
		return r.types.Bool(), false
	case token.Minus, token.Plus, token.Tilde:
		sub := r.naturalType(r.applySubstitution(operandType))
		if prim, ok := sub.IsPrimitive(); sub.Tag() != types.TagUnresolved && (!ok || !prim.IsNumeric()) {
			r.reportOnce(n, diag.TypeMismatch, "unary %s requires a numeric operand, got %s", n.Op, sub.GetName())
		}
		return operandType, false
	case token.PlusPlus, token.MinusMinus:
		if !operandLV {
			r.reportOnce(n, diag.TypeNotLValue, "increment/decrement requires an lvalue")
		}
		return operandType, false
	case token.Amp:
		return r.types.GetPointer(operandType), false
	case token.Star:
		sub := r.applySubstitution(operandType)
		if sub.Tag() == types.TagPointer {
			return sub.Pointee(), true
		}
		if sub.Tag() != types.TagUnresolved {
			r.reportOnce(n, diag.TypeInvalidOperand, "cannot dereference non-pointer type %s", sub.GetName())
		}
		return r.types.GetUnresolved(), true
	default:
		return operandType, false
	}
}

func isLogicalOp(op token.Kind) bool { return op == token.AndAnd || op == token.OrOr }

func isComparisonOp(op token.Kind) bool {
	switch op {
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return true
	default:
		return false
	}
}

func (r *TypeResolver) visitBinary(n *ast.Binary, scope symbols.ID) *types.Type {
	lt, _ := r.visitExpr(n.Left, scope)
	rt, _ := r.visitExpr(n.Right, scope)
	switch {
	case isLogicalOp(n.Op):
		r.unify(lt, r.types.Bool(), n, "logical operator operand")
		r.unify(rt, r.types.Bool(), n, "logical operator operand")
		return r.types.Bool()
	case isComparisonOp(n.Op):
		r.unify(lt, rt, n, "comparison operands")
		return r.types.Bool()
	default:
		return r.unify(lt, rt, n, "binary operator operands")
	}
}

func (r *TypeResolver) visitAssignment(n *ast.Assignment, scope symbols.ID) (*types.Type, bool) {
	targetType, targetLV := r.visitExpr(n.Target, scope)
	valueType, _ := r.visitExpr(n.Value, scope)
	if !targetLV {
		r.reportOnce(n, diag.TypeNotLValue, "assignment target is not an lvalue")
	}
	result := r.unify(targetType, valueType, n, "assignment")
	return result, targetLV
}

func (r *TypeResolver) visitConditional(n *ast.Conditional, scope symbols.ID) *types.Type {
	condType, _ := r.visitExpr(n.Cond, scope)
	r.unify(condType, r.types.Bool(), n, "ternary condition")
	thenType, _ := r.visitExpr(n.Then, scope)
	elseType, _ := r.visitExpr(n.Else, scope)
	return r.unify(thenType, elseType, n, "ternary branches")
}

func (r *TypeResolver) visitMemberAccess(n *ast.MemberAccess, scope symbols.ID) (*types.Type, bool, symbols.ID) {
	objType, _ := r.visitExpr(n.Object, scope)
	objType = r.applySubstitution(objType)
	containerSym := r.typeSymbolOf(objType)
	if containerSym == nil {
		if objType.Tag() != types.TagUnresolved {
			r.reportOnce(n, diag.SymUnresolvedName, "cannot access member %q on %s", n.Member, objType.GetName())
		}
		return r.types.GetUnresolved(), false, symbols.NoID
	}
	ids := r.table.LookupLocal(containerSym.ID(), n.Member)
	if len(ids) == 0 {
		r.reportOnce(n, diag.SymUnresolvedName, "no member %q on type %s", n.Member, objType.GetName())
		return r.types.GetUnresolved(), false, symbols.NoID
	}
	return r.symbolExprType(r.table.Get(ids[0]))
}

func (r *TypeResolver) visitIndexer(n *ast.Indexer, scope symbols.ID) (*types.Type, bool) {
	objType, _ := r.visitExpr(n.Object, scope)
	idxType, _ := r.visitExpr(n.Index, scope)
	r.unify(idxType, r.types.I32(), n, "index expression")
	objType = r.applySubstitution(objType)
	switch objType.Tag() {
	case types.TagArray:
		return objType.Element(), true
	case types.TagPointer:
		return objType.Pointee(), true
	default:
		if objType.Tag() != types.TagUnresolved {
			r.reportOnce(n, diag.TypeInvalidOperand, "cannot index type %s", objType.GetName())
		}
		return r.types.GetUnresolved(), true
	}
}

func (r *TypeResolver) typeHandleType() *types.Type {
	// No dedicated runtime "type handle" primitive exists in this type
	// system; an opaque pointer to void is used as the result type of a
	// typeof expression.
	return r.types.GetPointer(r.types.Void())
}
