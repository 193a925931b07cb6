package sema

import (
	"testing"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/symbols"
	"langcore/internal/types"
)

// TestIdempotentSubstitution checks spec §8.1: applying the resolver's
// substitution twice to the same type gives the same result as applying
// it once, for both a directly-bound variable and one reached through a
// composite type.
func TestIdempotentSubstitution(t *testing.T) {
	sys := types.NewSystem()
	table := symbols.NewTable()
	r := NewTypeResolver(table, sys, diag.NopReporter{})

	v := sys.GetUnresolved()
	r.subst[v] = sys.I32()

	once := r.applySubstitution(v)
	twice := r.applySubstitution(once)
	if once != twice {
		t.Fatalf("expected applySubstitution to be idempotent on a bound variable, got %v vs %v", once, twice)
	}
	if once != sys.I32() {
		t.Fatalf("expected the bound variable to resolve to i32, got %v", once)
	}

	composite := sys.GetPointer(v)
	onceComposite := r.applySubstitution(composite)
	twiceComposite := r.applySubstitution(onceComposite)
	if onceComposite != twiceComposite {
		t.Fatalf("expected idempotent substitution through a Pointer, got %v vs %v", onceComposite, twiceComposite)
	}
	if onceComposite != sys.GetPointer(sys.I32()) {
		t.Fatalf("expected *?v to substitute to *i32, got %v", onceComposite)
	}
}

// TestUnifyBindsUnresolvedToConcrete checks spec §4.9.3: unifying an
// Unresolved variable with a concrete type binds it, and the binding is
// visible through applySubstitution.
func TestUnifyBindsUnresolvedToConcrete(t *testing.T) {
	sys := types.NewSystem()
	table := symbols.NewTable()
	r := NewTypeResolver(table, sys, diag.NopReporter{})

	v := sys.GetUnresolved()
	result := r.unify(v, sys.Bool(), &ast.Literal{}, "test")
	if result != sys.Bool() {
		t.Fatalf("expected unify(Unresolved, bool) to resolve to bool, got %v", result)
	}
	if got := r.applySubstitution(v); got != sys.Bool() {
		t.Fatalf("expected v to now substitute to bool, got %v", got)
	}
}

func TestOccursCheckRejectsSelfReferentialBinding(t *testing.T) {
	sys := types.NewSystem()
	table := symbols.NewTable()
	bag := diag.NewBag(10)
	r := NewTypeResolver(table, sys, diag.BagReporter{Bag: bag})

	v := sys.GetUnresolved()
	cyclic := sys.GetPointer(v)
	ok := r.bind(v, cyclic, &ast.Literal{})
	if ok {
		t.Fatalf("expected bind to refuse a self-referential type")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic reporting the occurs-check failure")
	}
}
