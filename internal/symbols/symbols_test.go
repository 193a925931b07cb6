package symbols_test

import (
	"testing"

	"langcore/internal/symbols"
	"langcore/internal/types"
)

// TestDefineRegistersChildInBothMaps checks spec §3.7: a child's Parent
// points back to the container that holds it, and the container's ordered
// list preserves declaration order.
func TestDefineRegistersChildInBothMaps(t *testing.T) {
	table := symbols.NewTable()
	root := table.Root()
	a := table.Define(root, symbols.KindFunction, "a")
	b := table.Define(root, symbols.KindFunction, "b")

	order := table.Children(root)
	if len(order) != 2 || order[0] != a || order[1] != b {
		t.Fatalf("expected declaration order [a, b], got %v", order)
	}
	if table.Get(a).Parent != root {
		t.Fatalf("expected a's parent to be root")
	}
	if got := table.LookupLocal(root, "a"); len(got) != 1 || got[0] != a {
		t.Fatalf("expected LookupLocal to find a in root's name map, got %v", got)
	}
}

// TestQualifiedNameIsDottedPathFromRoot checks spec §3.7 invariant 2.
func TestQualifiedNameIsDottedPathFromRoot(t *testing.T) {
	table := symbols.NewTable()
	root := table.Root()
	ns := table.Define(root, symbols.KindNamespace, "App")
	ty := table.Define(ns, symbols.KindType, "Widget")
	fn := table.Define(ty, symbols.KindFunction, "render")

	if got := table.QualifiedName(fn); got != "App.Widget.render" {
		t.Fatalf("expected qualified name 'App.Widget.render', got %q", got)
	}
}

// TestOverloadsShareNameInMultimap checks spec §3.7 invariant 3: two
// functions may share a name in one container, both reachable via
// LookupLocal.
func TestOverloadsShareNameInMultimap(t *testing.T) {
	table := symbols.NewTable()
	root := table.Root()
	table.Define(root, symbols.KindFunction, "f")
	table.Define(root, symbols.KindFunction, "f")

	overloads := table.LookupLocal(root, "f")
	if len(overloads) != 2 {
		t.Fatalf("expected 2 overloads sharing the name 'f', got %d", len(overloads))
	}
}

// TestResolveWalksScopeStackOutward checks spec §4.7: Resolve finds a name
// declared in an outer scope when the inner scope doesn't shadow it.
func TestResolveWalksScopeStackOutward(t *testing.T) {
	table := symbols.NewTable()
	root := table.Root()
	outer := table.Define(root, symbols.KindVariable, "x")
	inner := table.Define(root, symbols.KindBlock, "$block")

	table.PushScope(inner)
	defer table.PopScope()

	found := table.Resolve("x")
	if len(found) != 1 || found[0] != outer {
		t.Fatalf("expected Resolve to find 'x' in the outer scope, got %v", found)
	}
}

// TestResolveLocalDoesNotEscapeContainer checks that LookupLocal only
// consults the given container, not its ancestors.
func TestResolveLocalDoesNotEscapeContainer(t *testing.T) {
	table := symbols.NewTable()
	root := table.Root()
	table.Define(root, symbols.KindVariable, "x")
	inner := table.Define(root, symbols.KindBlock, "$block")

	if found := table.LookupLocal(inner, "x"); len(found) != 0 {
		t.Fatalf("expected LookupLocal(inner, x) to find nothing, got %v", found)
	}
}

// TestMergeCommutativityForDisjointNamespaces checks spec §8.1: when A and
// B declare no overlapping names, merge(A,B) and merge(B,A) produce
// equivalent tables (same set of qualified names reachable from root, no
// conflicts either way).
func TestMergeCommutativityForDisjointNamespaces(t *testing.T) {
	buildA := func() *symbols.Table {
		table := symbols.NewTable()
		ns := table.Define(table.Root(), symbols.KindNamespace, "A")
		table.Define(ns, symbols.KindFunction, "foo")
		return table
	}
	buildB := func() *symbols.Table {
		table := symbols.NewTable()
		ns := table.Define(table.Root(), symbols.KindNamespace, "B")
		table.Define(ns, symbols.KindFunction, "bar")
		return table
	}

	mergedAB := symbols.NewTable()
	if conflicts := mergedAB.Merge(buildA()); len(conflicts) != 0 {
		t.Fatalf("unexpected conflicts merging A: %v", conflicts)
	}
	if conflicts := mergedAB.Merge(buildB()); len(conflicts) != 0 {
		t.Fatalf("unexpected conflicts merging B into A: %v", conflicts)
	}

	mergedBA := symbols.NewTable()
	if conflicts := mergedBA.Merge(buildB()); len(conflicts) != 0 {
		t.Fatalf("unexpected conflicts merging B: %v", conflicts)
	}
	if conflicts := mergedBA.Merge(buildA()); len(conflicts) != 0 {
		t.Fatalf("unexpected conflicts merging A into B: %v", conflicts)
	}

	namesOf := func(table *symbols.Table, id symbols.ID) []string {
		var out []string
		var walk func(symbols.ID)
		walk = func(id symbols.ID) {
			for _, c := range table.Children(id) {
				out = append(out, table.QualifiedName(c))
				walk(c)
			}
		}
		walk(id)
		return out
	}

	namesAB := namesOf(mergedAB, mergedAB.Root())
	namesBA := namesOf(mergedBA, mergedBA.Root())
	if len(namesAB) != len(namesBA) {
		t.Fatalf("expected equivalent merge results, got %v vs %v", namesAB, namesBA)
	}
	seen := make(map[string]bool)
	for _, n := range namesAB {
		seen[n] = true
	}
	for _, n := range namesBA {
		if !seen[n] {
			t.Fatalf("merge(B,A) produced %q which merge(A,B) did not", n)
		}
	}
}

// TestMergeReportsSignatureConflictOnlyWhenSignaturesMatch checks spec
// §4.7: two functions with the same name but different signatures merge
// as overloads, not a conflict.
func TestMergeReportsSignatureConflictOnlyWhenSignaturesMatch(t *testing.T) {
	sys := types.NewSystem()

	buildWithParam := func(paramType *types.Type) *symbols.Table {
		table := symbols.NewTable()
		fn := table.Define(table.Root(), symbols.KindFunction, "f")
		table.PushScope(fn)
		p := table.Define(fn, symbols.KindVariable, "x")
		table.Get(p).VarKind = symbols.VarParameter
		table.Get(p).VarType = paramType
		table.Get(fn).Parameters = []symbols.ID{p}
		table.PopScope()
		return table
	}

	master := symbols.NewTable()
	master.Merge(buildWithParam(sys.I32()))
	conflicts := master.Merge(buildWithParam(sys.Bool()))
	if len(conflicts) != 0 {
		t.Fatalf("expected distinct signatures to merge as overloads, got conflicts: %v", conflicts)
	}
	if overloads := master.LookupLocal(master.Root(), "f"); len(overloads) != 2 {
		t.Fatalf("expected 2 overloads after merge, got %d", len(overloads))
	}

	conflicted := master.Merge(buildWithParam(sys.I32()))
	if len(conflicted) != 1 {
		t.Fatalf("expected a conflict merging a duplicate signature, got %v", conflicted)
	}
}

// TestSymbolForUnboundNodeReportsAbsent checks spec §3.7 invariant 4's
// absence case; the positive round-trip (BindAST then SymbolFor on a real
// declaration node) is exercised by the sema package's own tests, which
// have real ast.Node values to bind.
func TestSymbolForUnboundNodeReportsAbsent(t *testing.T) {
	table := symbols.NewTable()
	sym := table.Define(table.Root(), symbols.KindFunction, "f")
	if _, ok := table.SymbolFor(nil); ok {
		t.Fatalf("expected no symbol bound for a nil node")
	}
	_ = sym
}
