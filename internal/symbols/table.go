package symbols

import (
	"fmt"
	"io"

	"langcore/internal/arena"
	"langcore/internal/ast"
)

// Table owns the full symbol graph for one compilation (or, after Merge,
// for a linked program). Symbols live in a single arena and reference each
// other by ID (spec §9's cyclic-symbol-graph design note).
type Table struct {
	arena *arena.Arena[Symbol]
	root  ID

	// AST->symbol map: the only persistent link from the AST back to
	// symbols (spec §3.7 invariant 4). Declaration nodes never hold a
	// symbol pointer directly.
	astToSymbol map[ast.Node]ID

	// current_scope for the SymbolBuilder's single active scope stack
	// (spec §4.7).
	scopeStack []ID
}

// NewTable creates a Table with an empty root namespace (name "").
func NewTable() *Table {
	t := &Table{
		arena:       arena.New[Symbol](),
		astToSymbol: make(map[ast.Node]ID),
	}
	root := t.newSymbol(KindNamespace, "", NoID)
	t.root = root
	t.scopeStack = []ID{root}
	return t
}

// Root returns the ID of the root namespace.
func (t *Table) Root() ID { return t.root }

// Get returns the Symbol for id, or nil for NoID / an unknown id.
func (t *Table) Get(id ID) *Symbol {
	if id == NoID {
		return nil
	}
	return t.arena.Get(arena.Id(id))
}

func (t *Table) newSymbol(kind SymbolKind, name string, parent ID) ID {
	id := ID(t.arena.Alloc(Symbol{Kind: kind, Name: name, Parent: parent}))
	sym := t.arena.Get(arena.Id(id))
	sym.id = id
	sym.table = t
	if sym.IsContainer() {
		sym.childrenByName = make(map[string][]ID)
	}
	return id
}

// Define creates a new child symbol of parent with the given kind/name and
// registers it in parent's multimap (both the lookup map and the ordered
// list, per spec §3.7). It does not check for duplicates; callers that
// need duplicate-detection (SymbolBuilder) call LookupLocal first.
func (t *Table) Define(parent ID, kind SymbolKind, name string) ID {
	id := t.newSymbol(kind, name, parent)
	t.addChild(parent, name, id)
	return id
}

func (t *Table) addChild(parent ID, name string, child ID) {
	p := t.Get(parent)
	if p == nil || !p.IsContainer() {
		return
	}
	p.childrenByName[name] = append(p.childrenByName[name], child)
	p.childrenOrder = append(p.childrenOrder, child)
}

// Children returns parent's children in declaration order.
func (t *Table) Children(parent ID) []ID {
	p := t.Get(parent)
	if p == nil {
		return nil
	}
	return p.childrenOrder
}

// LookupLocal returns every child of parent named name (an overload set
// has more than one entry).
func (t *Table) LookupLocal(parent ID, name string) []ID {
	p := t.Get(parent)
	if p == nil {
		return nil
	}
	return p.childrenByName[name]
}

// PushScope sets the builder's current_scope to s (spec §4.7).
func (t *Table) PushScope(s ID) { t.scopeStack = append(t.scopeStack, s) }

// PopScope restores the current_scope to its value before the matching
// PushScope.
func (t *Table) PopScope() {
	if len(t.scopeStack) > 1 {
		t.scopeStack = t.scopeStack[:len(t.scopeStack)-1]
	}
}

// CurrentScope returns the builder's active scope.
func (t *Table) CurrentScope() ID { return t.scopeStack[len(t.scopeStack)-1] }

// Resolve walks from the current scope outward to the root namespace,
// consulting each container's children for name (spec §4.7).
func (t *Table) Resolve(name string) []ID {
	for i := len(t.scopeStack) - 1; i >= 0; i-- {
		if ids := t.LookupLocal(t.scopeStack[i], name); len(ids) > 0 {
			return ids
		}
	}
	return nil
}

// ResolveFrom is like Resolve but starts walking outward from scope
// instead of the builder's current_scope, used once scopes are no longer
// being pushed/popped live (e.g. by the type resolver revisiting a
// function body).
func (t *Table) ResolveFrom(scope ID, name string) []ID {
	for s := scope; s != NoID; s = t.Get(s).Parent {
		if ids := t.LookupLocal(s, name); len(ids) > 0 {
			return ids
		}
	}
	return nil
}

// ResolveDotted resolves a dotted path [a, b, c] by resolving a in scope,
// then descending into containers for each subsequent segment (spec
// §4.7). It returns the matches for the final segment (an overload set for
// a function, a single-element slice otherwise) or nil if any segment
// fails to resolve.
func (t *Table) ResolveDotted(scope ID, path []string) []ID {
	if len(path) == 0 {
		return nil
	}
	matches := t.ResolveFrom(scope, path[0])
	if len(matches) == 0 {
		return nil
	}
	cur := matches[0]
	for _, seg := range path[1:] {
		next := t.LookupLocal(cur, seg)
		if len(next) == 0 {
			return nil
		}
		if len(next) > 1 {
			return next // final segment is itself an overload set
		}
		cur = next[0]
	}
	return []ID{cur}
}

// QualifiedName returns the dotted path from the root namespace to id
// (spec §3.7 invariant 2).
func (t *Table) QualifiedName(id ID) string {
	var parts []string
	for s := t.Get(id); s != nil && s.id != t.root; s = t.Get(s.Parent) {
		parts = append([]string{s.Name}, parts...)
	}
	result := ""
	for i, p := range parts {
		if i > 0 {
			result += "."
		}
		result += p
	}
	return result
}

// BindAST records that astNode created sym — the only persistent AST->
// symbol link (spec §3.7 invariant 4).
func (t *Table) BindAST(astNode ast.Node, sym ID) { t.astToSymbol[astNode] = sym }

// SymbolFor looks up the symbol a declaration AST node created.
func (t *Table) SymbolFor(astNode ast.Node) (ID, bool) {
	id, ok := t.astToSymbol[astNode]
	return id, ok
}

// Merge folds other's entire symbol graph into t (spec §4.7). other's whole
// backing arena is copied into t's in one pass first (Arena.AppendAll), and
// every Id-valued field on the copied symbols is renumbered by the
// resulting offset, so the structural union below — which decides, name by
// name, whether to graft a subtree in place, recurse into two same-named
// namespaces, add a non-conflicting overload, or report a conflict — only
// ever dereferences Ids that live in t's own arena. Doing the union against
// two separate arenas (the original design) left every Id adopted from a
// prior Merge dangling the moment a later Merge needed to dereference it
// through t.Get, since t.Get only ever looks inside t's own arena.
func (t *Table) Merge(other *Table) []string {
	offset := t.arena.AppendAll(other.arena)
	remap := func(id ID) ID {
		if id == NoID {
			return NoID
		}
		return id + ID(offset)
	}
	for i := ID(1); i <= ID(other.arena.Len()); i++ {
		sym := t.Get(i + ID(offset))
		sym.id = i + ID(offset)
		sym.table = t
		sym.Parent = remap(sym.Parent)
		sym.BaseClass = remap(sym.BaseClass)
		for j := range sym.Interfaces {
			sym.Interfaces[j] = remap(sym.Interfaces[j])
		}
		for j := range sym.TypeParams {
			sym.TypeParams[j] = remap(sym.TypeParams[j])
		}
		for j := range sym.VTable {
			sym.VTable[j] = remap(sym.VTable[j])
		}
		for j := range sym.Parameters {
			sym.Parameters[j] = remap(sym.Parameters[j])
		}
		if sym.childrenByName != nil {
			remapped := make(map[string][]ID, len(sym.childrenByName))
			for name, ids := range sym.childrenByName {
				out := make([]ID, len(ids))
				for k, id := range ids {
					out[k] = remap(id)
				}
				remapped[name] = out
			}
			sym.childrenByName = remapped
		}
		for j := range sym.childrenOrder {
			sym.childrenOrder[j] = remap(sym.childrenOrder[j])
		}
	}
	return t.mergeInto(t.root, remap(other.root), "")
}

func (t *Table) mergeInto(dst, src ID, path string) []string {
	var conflicts []string
	dstSym := t.Get(dst)
	srcSym := t.Get(src)
	for _, childID := range append([]ID(nil), srcSym.childrenOrder...) {
		child := t.Get(childID)
		existing := dstSym.childrenByName[child.Name]

		switch {
		case len(existing) == 0:
			t.relocate(dst, childID)

		case child.Kind == KindNamespace && len(existing) == 1 && t.Get(existing[0]).Kind == KindNamespace:
			conflicts = append(conflicts, t.mergeInto(existing[0], childID, joinPath(path, child.Name))...)

		case child.Kind == KindFunction && allFunctions(t, existing):
			if _, ok := findSignatureConflict(t, existing, childID); ok {
				conflicts = append(conflicts, fmt.Sprintf(
					"Symbol conflict: '%s' already exists in namespace '%s'", child.Name, path))
			} else {
				t.relocate(dst, childID)
			}

		default:
			conflicts = append(conflicts, fmt.Sprintf(
				"Symbol conflict: '%s' already exists in namespace '%s'", child.Name, path))
		}
	}
	return conflicts
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func allFunctions(t *Table, ids []ID) bool {
	for _, id := range ids {
		if t.Get(id).Kind != KindFunction {
			return false
		}
	}
	return true
}

// findSignatureConflict reports whether childID's function signature
// matches one already present in existing.
func findSignatureConflict(t *Table, existing []ID, childID ID) (ID, bool) {
	for _, id := range existing {
		if SignatureMatches(t, id, childID) {
			return id, true
		}
	}
	return NoID, false
}

// SignatureMatches reports whether two FunctionSymbols have identical
// parameter types (spec §3.7 invariant 3 / §4.8.5).
func SignatureMatches(t *Table, a, b ID) bool {
	fa, fb := t.Get(a), t.Get(b)
	if len(fa.Parameters) != len(fb.Parameters) {
		return false
	}
	for i := range fa.Parameters {
		pa := t.Get(fa.Parameters[i])
		pb := t.Get(fb.Parameters[i])
		if pa.VarType != pb.VarType {
			return false
		}
	}
	return true
}

// relocate re-parents child (and, transitively, its whole subtree, whose
// descendants already carry the correct Parent chain from the copy Merge
// performed) to dst. Both Ids already live in t's arena by the time this
// runs, so this is just bookkeeping, not a cross-arena move.
func (t *Table) relocate(dst, child ID) {
	sym := t.Get(child)
	sym.Parent = dst
	t.addChild(dst, sym.Name, child)
}

// Dump writes an indented recursive tree of the symbol graph rooted at id,
// children in declaration order (spec §9's original-source-parity symbol
// table dump, SPEC_FULL §C.4).
func (t *Table) Dump(w io.Writer, id ID, indent int) {
	s := t.Get(id)
	if s == nil {
		return
	}
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	fmt.Fprintf(w, "%s%s %s\n", pad, s.Kind, s.Name)
	for _, c := range s.childrenOrder {
		t.Dump(w, c, indent+1)
	}
}
