package types

// ConversionKind classifies how (if at all) a value of one type converts
// to another (spec §4.9.5).
type ConversionKind uint8

const (
	NotConvertible ConversionKind = iota
	Identity
	ImplicitNumericWidening
	ImplicitReferenceUpcast
	ExplicitNumericNarrowing
	ExplicitUnrelatedPointer
)

// IsImplicit reports whether a conversion of this kind may happen without
// an explicit cast.
func (k ConversionKind) IsImplicit() bool {
	return k == Identity || k == ImplicitNumericWidening || k == ImplicitReferenceUpcast
}

// widenRank orders numeric primitive kinds by how "wide" they are within
// their family (signed, unsigned, or floating); a conversion from a
// smaller to a larger rank in the same family is an implicit widening.
var widenRank = map[PrimitiveKind]int{
	I8: 1, I16: 2, I32: 3, I64: 4,
	U8: 1, U16: 2, U32: 3, U64: 4,
	F32: 1, F64: 2,
}

// CheckConversion classifies converting a value of type from to type to
// (spec §4.9.5). IsBaseOf supplies the reference-upcast relation (a
// subtype relation over TypeSymbols), since types itself has no notion of
// inheritance.
func CheckConversion(from, to *Type, isBaseOf func(base, derived Definition) bool) ConversionKind {
	if from == to {
		return Identity
	}
	if from == nil || to == nil {
		return NotConvertible
	}

	if from.tag == TagPrimitive && to.tag == TagPrimitive {
		return checkNumericConversion(from.primitive, to.primitive)
	}

	if from.tag == TagPointer && to.tag == TagPointer {
		if from.pointee == to.pointee {
			return Identity
		}
		return ExplicitUnrelatedPointer
	}

	if (from.tag == TagNamed || from.tag == TagGeneric) && (to.tag == TagNamed || to.tag == TagGeneric) {
		if from.def == to.def {
			if from.tag == TagGeneric && to.tag == TagGeneric {
				if len(from.args) != len(to.args) {
					return NotConvertible
				}
				for i := range from.args {
					if from.args[i] != to.args[i] {
						return NotConvertible
					}
				}
			}
			return Identity
		}
		if isBaseOf != nil && isBaseOf(to.def, from.def) {
			return ImplicitReferenceUpcast
		}
		return NotConvertible
	}

	if from.tag == TagArray && to.tag == TagArray {
		if from.elem == to.elem {
			return Identity
		}
		return NotConvertible
	}

	return NotConvertible
}

func checkNumericConversion(from, to PrimitiveKind) ConversionKind {
	if from == to {
		return Identity
	}
	if from == Bool || to == Bool {
		return NotConvertible
	}
	if from == Void || to == Void {
		return NotConvertible
	}
	sameFamily := (from.IsFloating() && to.IsFloating()) ||
		(from.IsSigned() && to.IsSigned()) ||
		(from.IsIntegral() && !from.IsSigned() && to.IsIntegral() && !to.IsSigned())

	fromRank, fromOK := widenRank[from]
	toRank, toOK := widenRank[to]

	if from.IsIntegral() && to.IsFloating() {
		return ImplicitNumericWidening
	}
	if from.IsFloating() && to.IsIntegral() {
		return ExplicitNumericNarrowing
	}
	if sameFamily && fromOK && toOK {
		if fromRank <= toRank {
			return ImplicitNumericWidening
		}
		return ExplicitNumericNarrowing
	}
	if from.IsIntegral() && to.IsIntegral() {
		return ExplicitNumericNarrowing
	}
	return NotConvertible
}
