package sema

import (
	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/source"
	"langcore/internal/symbols"
	"langcore/internal/types"
)

// maxPasses bounds the fixed-point loop TypeResolver runs over the tree
// (spec §4.9.1): ten rounds is far more than any program built from this
// grammar's finite nesting needs to reach a fixed point, and a bound keeps a
// pathological input from looping forever instead of reporting failure.
const maxPasses = 10

// TypeResolver is AST pass 2 (spec §4.9): Hindley-Milner-style unification
// over the tree SymbolBuilder already populated with a Table. Declared
// types are resolved directly from their type-expression AST (resolveTypeExpr);
// unify only propagates inference constraints — between an initializer and
// its variable's declared-or-inferred type, between a call's arguments and
// its chosen overload's parameters, and so on.
type TypeResolver struct {
	table    *symbols.Table
	types    *types.System
	reporter diag.Reporter

	subst map[*types.Type]*types.Type // Unresolved var -> its binding
	progress bool

	// defaultFor records the fallback concrete type an Unresolved variable
	// defaults to at finalization if nothing ever constrained it (spec
	// §4.9.8 step 2): i32 for a bare integer literal, f64 for a bare
	// floating-point literal, void for a bare `null`'s pointee.
	defaultFor map[*types.Type]*types.Type

	lambdaScopes map[*ast.Lambda]symbols.ID

	reported map[reportKey]bool
}

type reportKey struct {
	key  any
	code diag.Code
}

// NewTypeResolver creates a resolver over table, minting types through sys
// and reporting diagnostics through reporter.
func NewTypeResolver(table *symbols.Table, sys *types.System, reporter diag.Reporter) *TypeResolver {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &TypeResolver{
		table:        table,
		types:        sys,
		reporter:     reporter,
		subst:        make(map[*types.Type]*types.Type),
		defaultFor:   make(map[*types.Type]*types.Type),
		lambdaScopes: make(map[*ast.Lambda]symbols.ID),
		reported:     make(map[reportKey]bool),
	}
}

// Resolve runs the bounded fixed-point loop over unit, then finalizes every
// expression's and symbol's type (spec §4.9.1, §4.9.8).
func (r *TypeResolver) Resolve(unit *ast.CompilationUnit) {
	for pass := 0; pass < maxPasses; pass++ {
		r.progress = false
		r.visitStmts(unit.TopLevelStatements, r.table.Root())
		if !r.progress {
			break
		}
	}
	r.visitStmts(unit.TopLevelStatements, r.table.Root())
	r.finalizeSymbols(r.table.Root())
	r.finalizeExprs(unit)
}

// reportOnce reports code at node's span the first time this (node, code)
// pair is seen, suppressing the duplicates that would otherwise fire once
// per remaining fixed-point pass.
func (r *TypeResolver) reportOnce(node ast.Node, code diag.Code, format string, args ...any) {
	r.reportAt(node, code, node.Span(), format, args...)
}

func (r *TypeResolver) reportAt(key any, code diag.Code, span source.Range, format string, args ...any) {
	rk := reportKey{key: key, code: code}
	if r.reported[rk] {
		return
	}
	r.reported[rk] = true
	diag.Errorf(r.reporter, code, span, format, args...)
}

// applySubstitution chases t through the binding map to a fixed point,
// reconstructing composite types via the canonicalizing System so the
// result stays interned (spec §4.9.2).
func (r *TypeResolver) applySubstitution(t *types.Type) *types.Type {
	if t == nil {
		return r.types.Void()
	}
	switch t.Tag() {
	case types.TagUnresolved:
		if bound, ok := r.subst[t]; ok {
			return r.applySubstitution(bound)
		}
		return t
	case types.TagPointer:
		return r.types.GetPointer(r.applySubstitution(t.Pointee()))
	case types.TagArray:
		return r.types.GetArray(r.applySubstitution(t.Element()), t.FixedSize())
	case types.TagFunction:
		params := make([]*types.Type, len(t.Params()))
		for i, p := range t.Params() {
			params[i] = r.applySubstitution(p)
		}
		return r.types.GetFunction(r.applySubstitution(t.Return()), params)
	case types.TagGeneric:
		args := make([]*types.Type, len(t.Args()))
		for i, a := range t.Args() {
			args[i] = r.applySubstitution(a)
		}
		return r.types.GetGeneric(t.Definition(), args)
	default:
		return t
	}
}

// occurs reports whether v appears anywhere inside t, guarding bind against
// constructing an infinite type (spec §4.9.3).
func (r *TypeResolver) occurs(v, t *types.Type) bool {
	t = r.applySubstitution(t)
	if t == v {
		return true
	}
	switch t.Tag() {
	case types.TagPointer:
		return r.occurs(v, t.Pointee())
	case types.TagArray:
		return r.occurs(v, t.Element())
	case types.TagFunction:
		if r.occurs(v, t.Return()) {
			return true
		}
		for _, p := range t.Params() {
			if r.occurs(v, p) {
				return true
			}
		}
		return false
	case types.TagGeneric:
		for _, a := range t.Args() {
			if r.occurs(v, a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// bind records v := t and marks a pass as having made progress, unless v
// would occur within t (in which case the substitution is unsound and is
// skipped, leaving v unresolved).
func (r *TypeResolver) bind(v, t *types.Type, node ast.Node) bool {
	if r.occurs(v, t) {
		r.reportOnce(node, diag.TypeMismatch, "type depends on itself")
		return false
	}
	r.subst[v] = t
	r.progress = true
	return true
}

// unify reconciles a and b to a single type (spec §4.9.2, §4.9.3): an
// Unresolved side binds to the other; two composite types unify
// structurally, recursing into their parts; two unequal concrete types are
// a type-mismatch diagnostic at node. The return value is always the most
// specific type known for the pair so far.
func (r *TypeResolver) unify(a, b *types.Type, node ast.Node, what string) *types.Type {
	a = r.applySubstitution(a)
	b = r.applySubstitution(b)

	if a == b {
		return a
	}
	if a.Tag() == types.TagUnresolved {
		if r.bind(a, b, node) {
			return r.applySubstitution(a)
		}
		return b
	}
	if b.Tag() == types.TagUnresolved {
		if r.bind(b, a, node) {
			return r.applySubstitution(b)
		}
		return a
	}
	if a.Tag() != b.Tag() {
		r.reportOnce(node, diag.TypeMismatch, "%s: type mismatch, expected %s but found %s", what, a.GetName(), b.GetName())
		return a
	}
	switch a.Tag() {
	case types.TagPointer:
		return r.types.GetPointer(r.unify(a.Pointee(), b.Pointee(), node, what))
	case types.TagArray:
		elem := r.unify(a.Element(), b.Element(), node, what)
		size := a.FixedSize()
		if size < 0 {
			size = b.FixedSize()
		}
		return r.types.GetArray(elem, size)
	case types.TagFunction:
		if len(a.Params()) != len(b.Params()) {
			r.reportOnce(node, diag.TypeMismatch, "%s: function arity mismatch", what)
			return a
		}
		params := make([]*types.Type, len(a.Params()))
		for i := range params {
			params[i] = r.unify(a.Params()[i], b.Params()[i], node, what)
		}
		return r.types.GetFunction(r.unify(a.Return(), b.Return(), node, what), params)
	case types.TagGeneric:
		if a.Definition() != b.Definition() || len(a.Args()) != len(b.Args()) {
			r.reportOnce(node, diag.TypeMismatch, "%s: type mismatch, expected %s but found %s", what, a.GetName(), b.GetName())
			return a
		}
		args := make([]*types.Type, len(a.Args()))
		for i := range args {
			args[i] = r.unify(a.Args()[i], b.Args()[i], node, what)
		}
		return r.types.GetGeneric(a.Definition(), args)
	default:
		if a != b {
			r.reportOnce(node, diag.TypeMismatch, "%s: type mismatch, expected %s but found %s", what, a.GetName(), b.GetName())
		}
		return a
	}
}

// naturalType reports the type an Unresolved argument should be scored
// against during overload resolution (spec §4.9.6): an untyped literal
// (e.g. an int literal, Unresolved with defaultFor recording i32) has a
// natural type even before anything has constrained it, and candidates are
// ranked against that natural type rather than against the bare type
// variable, which converts to nothing. This never binds v — the real
// binding happens through unify once resolveOverload has picked a winner,
// so trying one candidate can't poison the score of the next.
func (r *TypeResolver) naturalType(t *types.Type) *types.Type {
	if t.Tag() != types.TagUnresolved {
		return t
	}
	if d, ok := r.defaultFor[t]; ok {
		return r.defaultType(d)
	}
	return t
}

// defaultType substitutes and, for any Unresolved leaf left over, applies
// its recorded default; an Unresolved with no recorded default is left as
// Unresolved so finalizeExprs can report the inference failure (spec
// §4.9.8).
func (r *TypeResolver) defaultType(t *types.Type) *types.Type {
	t = r.applySubstitution(t)
	switch t.Tag() {
	case types.TagUnresolved:
		if d, ok := r.defaultFor[t]; ok {
			return r.defaultType(d)
		}
		return t
	case types.TagPointer:
		return r.types.GetPointer(r.defaultType(t.Pointee()))
	case types.TagArray:
		return r.types.GetArray(r.defaultType(t.Element()), t.FixedSize())
	case types.TagFunction:
		params := make([]*types.Type, len(t.Params()))
		for i, p := range t.Params() {
			params[i] = r.defaultType(p)
		}
		return r.types.GetFunction(r.defaultType(t.Return()), params)
	case types.TagGeneric:
		args := make([]*types.Type, len(t.Args()))
		for i, a := range t.Args() {
			args[i] = r.defaultType(a)
		}
		return r.types.GetGeneric(t.Definition(), args)
	default:
		return t
	}
}

// isBaseOf supplies types.CheckConversion's inheritance relation: whether
// base is somewhere in derived's BaseClass chain (spec §4.9.5).
func (r *TypeResolver) isBaseOf(base, derived types.Definition) bool {
	derivedSym, ok := derived.(*symbols.Symbol)
	baseSym, ok2 := base.(*symbols.Symbol)
	if !ok || !ok2 {
		return false
	}
	for cur := derivedSym; cur != nil && cur.BaseClass != symbols.NoID; {
		if cur.BaseClass == baseSym.ID() {
			return true
		}
		cur = r.table.Get(cur.BaseClass)
	}
	return false
}

// typeSymbolOf unwraps t (through any number of pointer indirections) to
// the TypeSymbol it names, or nil if t isn't backed by one.
func (r *TypeResolver) typeSymbolOf(t *types.Type) *symbols.Symbol {
	t = r.applySubstitution(t)
	switch t.Tag() {
	case types.TagNamed, types.TagGeneric:
		if sym, ok := t.Definition().(*symbols.Symbol); ok {
			return sym
		}
		return nil
	case types.TagPointer:
		return r.typeSymbolOf(t.Pointee())
	default:
		return nil
	}
}

// genericArgsOf unwraps t through pointer indirection to the instantiation
// arguments of a Generic type, or nil if t isn't (or doesn't wrap) one.
func (r *TypeResolver) genericArgsOf(t *types.Type) []*types.Type {
	t = r.applySubstitution(t)
	switch t.Tag() {
	case types.TagGeneric:
		return t.Args()
	case types.TagPointer:
		return r.genericArgsOf(t.Pointee())
	default:
		return nil
	}
}

// instantiate substitutes t's TypeParameter leaves using owner's declared
// type parameters mapped positionally onto args (spec §4.9.7): a field or
// method reached through a Generic{owner, args} receiver is typed with
// owner's <T, ...> binders replaced by args, the same way applySubstitution
// replaces an Unresolved variable with its binding.
func (r *TypeResolver) instantiate(t *types.Type, owner *symbols.Symbol, args []*types.Type) *types.Type {
	if t == nil || len(owner.TypeParams) == 0 {
		return t
	}
	switch t.Tag() {
	case types.TagTypeParameter:
		for i, tpID := range owner.TypeParams {
			if i >= len(args) {
				break
			}
			if r.table.Get(tpID).Type == t {
				return args[i]
			}
		}
		return t
	case types.TagPointer:
		return r.types.GetPointer(r.instantiate(t.Pointee(), owner, args))
	case types.TagArray:
		return r.types.GetArray(r.instantiate(t.Element(), owner, args), t.FixedSize())
	case types.TagFunction:
		params := make([]*types.Type, len(t.Params()))
		for i, p := range t.Params() {
			params[i] = r.instantiate(p, owner, args)
		}
		return r.types.GetFunction(r.instantiate(t.Return(), owner, args), params)
	case types.TagGeneric:
		gargs := make([]*types.Type, len(t.Args()))
		for i, a := range t.Args() {
			gargs[i] = r.instantiate(a, owner, args)
		}
		return r.types.GetGeneric(t.Definition(), gargs)
	default:
		return t
	}
}

func (r *TypeResolver) containingType(scope symbols.ID) symbols.ID {
	for s := scope; s != symbols.NoID; {
		sym := r.table.Get(s)
		if sym == nil {
			return symbols.NoID
		}
		if sym.Kind == symbols.KindType {
			return s
		}
		s = sym.Parent
	}
	return symbols.NoID
}

func (r *TypeResolver) enclosingFunction(scope symbols.ID) symbols.ID {
	for s := scope; s != symbols.NoID; {
		sym := r.table.Get(s)
		if sym == nil {
			return symbols.NoID
		}
		if sym.Kind == symbols.KindFunction {
			return s
		}
		s = sym.Parent
	}
	return symbols.NoID
}

// enclosingLoop reports whether scope is lexically nested inside a
// while/for body, stopping at the first enclosing function boundary (a
// lambda or method body does not inherit a break/continue target from the
// function that defines it).
func (r *TypeResolver) enclosingLoop(scope symbols.ID) bool {
	for s := scope; s != symbols.NoID; {
		sym := r.table.Get(s)
		if sym == nil {
			return false
		}
		if sym.Kind == symbols.KindBlock && (sym.Name == "$while" || sym.Name == "$for") {
			return true
		}
		if sym.Kind == symbols.KindFunction || (sym.Kind == symbols.KindBlock && sym.Name == "$lambda") {
			return false
		}
		s = sym.Parent
	}
	return false
}

func (r *TypeResolver) scopeFor(node ast.Node, fallback symbols.ID) symbols.ID {
	if id, ok := r.table.SymbolFor(node); ok {
		return id
	}
	return fallback
}

// finalizeSymbols applies the substitution and default pass to every
// symbol's type-valued fields, recursively over the whole graph (spec
// §4.9.8); a return/variable/property type left Unresolved after defaulting
// is a genuine inference failure.
func (r *TypeResolver) finalizeSymbols(id symbols.ID) {
	sym := r.table.Get(id)
	if sym == nil {
		return
	}
	switch sym.Kind {
	case symbols.KindFunction:
		sym.ReturnType = r.defaultType(sym.ReturnType)
		if sym.ReturnType.Tag() == types.TagUnresolved {
			r.reportAt(id, diag.TypeUnresolvedOperand, sym.Location, "cannot infer return type for %q", sym.Name)
		}
		for _, pid := range sym.Parameters {
			psym := r.table.Get(pid)
			psym.VarType = r.defaultType(psym.VarType)
			if psym.VarType.Tag() == types.TagUnresolved {
				r.reportAt(pid, diag.TypeUnresolvedOperand, psym.Location, "cannot infer type for parameter %q", psym.Name)
			}
		}
	case symbols.KindVariable:
		sym.VarType = r.defaultType(sym.VarType)
		if sym.VarType.Tag() == types.TagUnresolved {
			r.reportAt(id, diag.TypeUnresolvedOperand, sym.Location, "cannot infer type for %q", sym.Name)
		}
	case symbols.KindProperty:
		sym.PropType = r.defaultType(sym.PropType)
		if sym.PropType.Tag() == types.TagUnresolved {
			r.reportAt(id, diag.TypeUnresolvedOperand, sym.Location, "cannot infer type for property %q", sym.Name)
		}
	case symbols.KindEnumCase:
		for i, t := range sym.AssociatedTypes {
			sym.AssociatedTypes[i] = r.defaultType(t)
		}
	}
	for _, c := range r.table.Children(id) {
		r.finalizeSymbols(c)
	}
}

// finalizeExprs walks every expression in unit, substituting and defaulting
// its annotated type (spec §4.9.8 step 3); anything still Unresolved after
// defaulting is reported once.
func (r *TypeResolver) finalizeExprs(unit *ast.CompilationUnit) {
	fz := &finalizer{r: r}
	for _, s := range unit.TopLevelStatements {
		ast.Walk(s, fz)
	}
}

type finalizer struct{ r *TypeResolver }

func (f *finalizer) Visit(n ast.Node) ast.Visitor {
	if e, ok := n.(ast.Expr); ok {
		ann := e.Annotation()
		if ann.ResolvedType != nil {
			t := f.r.defaultType(ann.ResolvedType)
			ann.ResolvedType = t
			if t.Tag() == types.TagUnresolved {
				f.r.reportOnce(n, diag.TypeUnresolvedOperand, "could not infer a concrete type for this expression")
			}
		}
	}
	return f
}
