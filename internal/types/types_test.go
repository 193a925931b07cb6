package types_test

import (
	"testing"

	"langcore/internal/types"
)

type stubDef struct{ name string }

func (d stubDef) TypeName() string          { return d.name }
func (d stubDef) QualifiedTypeName() string { return d.name }
func (d stubDef) IsReferenceKind() bool     { return false }

// TestPrimitivesAreCanonical checks spec §4.6: repeated lookups of the same
// primitive kind return the identical *Type value.
func TestPrimitivesAreCanonical(t *testing.T) {
	sys := types.NewSystem()
	if sys.I32() != sys.Primitive(types.I32) {
		t.Fatalf("expected I32() and Primitive(I32) to share identity")
	}
	if sys.Bool() != sys.Primitive(types.Bool) {
		t.Fatalf("expected Bool() to be canonical")
	}
}

// TestTypeCanonicalizationStructuralEquality checks spec §8.1's invariant:
// two structurally identical composite types built independently compare
// equal (by identity), and differently-shaped ones do not.
func TestTypeCanonicalizationStructuralEquality(t *testing.T) {
	sys := types.NewSystem()

	p1 := sys.GetPointer(sys.I32())
	p2 := sys.GetPointer(sys.I32())
	if p1 != p2 {
		t.Fatalf("expected two Pointer<i32> constructions to canonicalize to the same Type")
	}

	a1 := sys.GetArray(sys.I32(), 10)
	a2 := sys.GetArray(sys.I32(), 10)
	if a1 != a2 {
		t.Fatalf("expected two Array<i32, 10> constructions to canonicalize")
	}
	a3 := sys.GetArray(sys.I32(), 11)
	if a1 == a3 {
		t.Fatalf("expected Array<i32,10> and Array<i32,11> to be distinct types")
	}

	f1 := sys.GetFunction(sys.Bool(), []*types.Type{sys.I32(), sys.I32()})
	f2 := sys.GetFunction(sys.Bool(), []*types.Type{sys.I32(), sys.I32()})
	if f1 != f2 {
		t.Fatalf("expected two identical Function types to canonicalize")
	}
	f3 := sys.GetFunction(sys.I32(), []*types.Type{sys.I32(), sys.I32()})
	if f1 == f3 {
		t.Fatalf("expected a different return type to produce a distinct Function type")
	}

	def := stubDef{name: "Box"}
	g1 := sys.GetGeneric(def, []*types.Type{sys.I32()})
	g2 := sys.GetGeneric(def, []*types.Type{sys.I32()})
	if g1 != g2 {
		t.Fatalf("expected two identical Generic instantiations to canonicalize")
	}
	g3 := sys.GetGeneric(def, []*types.Type{sys.Bool()})
	if g1 == g3 {
		t.Fatalf("expected Box<i32> and Box<bool> to be distinct types")
	}
}

// TestUnresolvedVariablesAreNeverCanonicalized checks spec §4.6: each call
// to GetUnresolved mints a fresh, distinct type variable.
func TestUnresolvedVariablesAreNeverCanonicalized(t *testing.T) {
	sys := types.NewSystem()
	v1 := sys.GetUnresolved()
	v2 := sys.GetUnresolved()
	if v1 == v2 {
		t.Fatalf("expected distinct Unresolved variables from separate GetUnresolved calls")
	}
	if v1.VarID() == v2.VarID() {
		t.Fatalf("expected monotonically distinct variable ids")
	}
}

// TestStringIsPointerToChar checks spec §3.6: String is an alias for
// Pointer<Char>.
func TestStringIsPointerToChar(t *testing.T) {
	sys := types.NewSystem()
	str := sys.String()
	if str.Tag() != types.TagPointer {
		t.Fatalf("expected String to be a Pointer, got tag %v", str.Tag())
	}
	if str.Pointee() != sys.Char() {
		t.Fatalf("expected String's pointee to be Char")
	}
	if !str.IsString() {
		t.Fatalf("expected IsString() to report true for Pointer<Char>")
	}
}

// TestStorageKindsMatchSpec checks spec §3.6's Direct/Indirect/Explicit
// split: primitives and value-kind named types are Direct, a pointer is
// Explicit, and a reference-kind named type is Indirect.
func TestStorageKindsMatchSpec(t *testing.T) {
	sys := types.NewSystem()
	if sys.I32().StorageKind() != types.Direct {
		t.Fatalf("expected i32 to be Direct, got %v", sys.I32().StorageKind())
	}
	if sys.GetPointer(sys.I32()).StorageKind() != types.Explicit {
		t.Fatalf("expected *i32 to be Explicit, got %v", sys.GetPointer(sys.I32()).StorageKind())
	}

	valueDef := stubDef{name: "Point"}
	valueType := sys.GetNamed(valueDef)
	if valueType.StorageKind() != types.Direct {
		t.Fatalf("expected a value-kind named type to be Direct, got %v", valueType.StorageKind())
	}
}

type refDef struct{ name string }

func (d refDef) TypeName() string          { return d.name }
func (d refDef) QualifiedTypeName() string { return d.name }
func (d refDef) IsReferenceKind() bool     { return true }

func TestReferenceKindNamedTypeIsIndirect(t *testing.T) {
	sys := types.NewSystem()
	refType := sys.GetNamed(refDef{name: "Widget"})
	if refType.StorageKind() != types.Indirect {
		t.Fatalf("expected a ref-kind named type to be Indirect, got %v", refType.StorageKind())
	}
	if !refType.IsReferenceType() {
		t.Fatalf("expected IsReferenceType() to report true")
	}
}

// TestGetNameRoundTripsSpellings checks spec §3.6's get_name() contract for
// a representative sample of composite shapes.
func TestGetNameRoundTripsSpellings(t *testing.T) {
	sys := types.NewSystem()
	cases := []struct {
		t    *types.Type
		want string
	}{
		{sys.I32(), "i32"},
		{sys.GetPointer(sys.Char()), "*char"},
		{sys.GetArray(sys.I32(), 3), "i32[3]"},
		{sys.GetArray(sys.I32(), -1), "i32[]"},
		{sys.GetFunction(sys.Bool(), []*types.Type{sys.I32()}), "fn(i32) -> bool"},
		{sys.GetFunction(sys.Void(), nil), "fn()"},
	}
	for _, c := range cases {
		if got := c.t.GetName(); got != c.want {
			t.Errorf("GetName() = %q, want %q", got, c.want)
		}
	}
}
