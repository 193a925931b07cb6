package types

import "fmt"

// Definition is the minimal view of a type-introducing symbol that the
// types package needs in order to name and print Named/Generic types. It
// is satisfied structurally by *symbols.Symbol without types importing
// symbols — symbols already imports types for Symbol's own Type field,
// so the dependency only runs one way.
type Definition interface {
	TypeName() string
	QualifiedTypeName() string
	IsReferenceKind() bool
}

// TypeParam names a generic type parameter / type variable binder.
type TypeParam struct {
	Name string
	ID   uint32
}

// Type is a canonicalized, tagged-union type value (spec §3.6). Callers
// never construct a Type directly; they go through a System so that
// structurally equal types share identity and can be compared with ==.
type Type struct {
	tag Tag

	primitive PrimitiveKind

	pointee *Type // Pointer

	elem      *Type // Array
	fixedSize int32 // Array; -1 = unsized

	ret    *Type   // Function
	params []*Type // Function

	def  Definition // Named, Generic
	args []*Type    // Generic

	param TypeParam // TypeParameter

	varID uint64 // Unresolved
}

// Tag reports which variant of the sum type t is.
func (t *Type) Tag() Tag { return t.tag }

// IsVoid reports whether t is the primitive Void type.
func (t *Type) IsVoid() bool { return t.tag == TagPrimitive && t.primitive == Void }

// IsPrimitive reports whether t is a Primitive and returns its kind.
func (t *Type) IsPrimitive() (PrimitiveKind, bool) {
	if t.tag == TagPrimitive {
		return t.primitive, true
	}
	return 0, false
}

// Primitive returns t's PrimitiveKind; callers must check Tag() first.
func (t *Type) Primitive() PrimitiveKind { return t.primitive }

// Pointee returns the pointee type of a Pointer; nil otherwise.
func (t *Type) Pointee() *Type {
	if t.tag == TagPointer {
		return t.pointee
	}
	return nil
}

// Element returns the element type of an Array; nil otherwise.
func (t *Type) Element() *Type {
	if t.tag == TagArray {
		return t.elem
	}
	return nil
}

// FixedSize returns an Array's fixed length, or -1 if unsized/not an Array.
func (t *Type) FixedSize() int32 {
	if t.tag == TagArray {
		return t.fixedSize
	}
	return -1
}

// Return returns a Function's return type.
func (t *Type) Return() *Type {
	if t.tag == TagFunction {
		return t.ret
	}
	return nil
}

// Params returns a Function's parameter types.
func (t *Type) Params() []*Type {
	if t.tag == TagFunction {
		return t.params
	}
	return nil
}

// Definition returns a Named or Generic type's defining symbol.
func (t *Type) Definition() Definition {
	if t.tag == TagNamed || t.tag == TagGeneric {
		return t.def
	}
	return nil
}

// Args returns a Generic type's instantiation arguments.
func (t *Type) Args() []*Type {
	if t.tag == TagGeneric {
		return t.args
	}
	return nil
}

// TypeParameter returns a TypeParameter variant's binder info.
func (t *Type) TypeParameter() TypeParam { return t.param }

// VarID returns an Unresolved type variable's monotonic id.
func (t *Type) VarID() uint64 { return t.varID }

// IsValueType reports whether values of t are stored/copied by value.
func (t *Type) IsValueType() bool { return t.StorageKind() == Direct }

// IsReferenceType reports whether values of t are heap objects accessed
// through an implicit reference.
func (t *Type) IsReferenceType() bool { return t.StorageKind() == Indirect }

// StorageKind classifies how t's values are passed and stored (spec §3.6).
func (t *Type) StorageKind() StorageKind {
	switch t.tag {
	case TagPointer:
		return Explicit
	case TagNamed, TagGeneric:
		if t.def != nil && t.def.IsReferenceKind() {
			return Indirect
		}
		return Direct
	default:
		return Direct
	}
}

// Size returns t's size in bytes, or 0 for types without a fixed native
// representation (Function, Generic, TypeParameter, Unresolved).
func (t *Type) Size() int {
	switch t.tag {
	case TagPrimitive:
		return t.primitive.size()
	case TagPointer:
		return 8
	case TagArray:
		if t.fixedSize < 0 || t.elem == nil {
			return 8 // unsized array decays to a pointer+length view
		}
		return t.elem.Size() * int(t.fixedSize)
	case TagNamed:
		if t.StorageKind() == Indirect {
			return 8
		}
		return 0 // layout owned by the (external) code generator
	default:
		return 0
	}
}

// Alignment returns t's required alignment in bytes.
func (t *Type) Alignment() int {
	switch t.tag {
	case TagPrimitive, TagPointer:
		if s := t.Size(); s > 0 {
			return s
		}
		return 1
	case TagArray:
		if t.elem != nil {
			return t.elem.Alignment()
		}
		return 8
	default:
		return 8
	}
}

// GetName returns a human-readable, round-trippable spelling of t.
func (t *Type) GetName() string {
	switch t.tag {
	case TagPrimitive:
		return t.primitive.String()
	case TagPointer:
		return "*" + t.pointee.GetName()
	case TagArray:
		if t.fixedSize < 0 {
			return t.elem.GetName() + "[]"
		}
		return fmt.Sprintf("%s[%d]", t.elem.GetName(), t.fixedSize)
	case TagFunction:
		params := ""
		for i, p := range t.params {
			if i > 0 {
				params += ", "
			}
			params += p.GetName()
		}
		if t.ret == nil || t.ret.IsVoid() {
			return fmt.Sprintf("fn(%s)", params)
		}
		return fmt.Sprintf("fn(%s) -> %s", params, t.ret.GetName())
	case TagNamed:
		if t.def != nil {
			return t.def.TypeName()
		}
		return "<named>"
	case TagGeneric:
		name := "<generic>"
		if t.def != nil {
			name = t.def.TypeName()
		}
		args := ""
		for i, a := range t.args {
			if i > 0 {
				args += ", "
			}
			args += a.GetName()
		}
		return fmt.Sprintf("%s<%s>", name, args)
	case TagTypeParameter:
		return t.param.Name
	case TagUnresolved:
		return fmt.Sprintf("?%d", t.varID)
	default:
		return "<invalid type>"
	}
}

func (t *Type) String() string { return t.GetName() }

// IsString reports whether t is the String alias (Pointer<Char>, spec §3.6).
func (t *Type) IsString() bool {
	return t.tag == TagPointer && t.pointee != nil && t.pointee.tag == TagPrimitive && t.pointee.primitive == Char
}
