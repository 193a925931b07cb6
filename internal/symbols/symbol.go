// Package symbols builds and queries the scoped symbol graph the semantic
// analyzer populates from the AST: namespaces, types, functions,
// variables, properties, and enum cases, each tagged by SymbolKind (spec
// §3.7). Symbols reference each other by ID into a Table-owned arena
// rather than by Go pointer — design note §9's "cyclic symbol graphs"
// recommendation, since parent/base/vtable/overload edges naturally form
// cycles a plain pointer graph would need the GC to untangle anyway, and
// IDs keep mutation (type field updates during resolution) decoupled from
// borrowing.
package symbols

import (
	"langcore/internal/ast"
	"langcore/internal/source"
	"langcore/internal/types"
)

// ID identifies a Symbol within a Table. The zero value, NoID, never
// refers to a live symbol.
type ID uint32

// NoID is the absent symbol reference.
const NoID ID = 0

// SymbolKind tags the variant of a Symbol (spec §3.7).
type SymbolKind uint8

const (
	KindNamespace SymbolKind = iota
	KindType
	KindFunction
	KindVariable
	KindProperty
	KindEnumCase
	KindBlock
)

func (k SymbolKind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindType:
		return "type"
	case KindFunction:
		return "function"
	case KindVariable:
		return "variable"
	case KindProperty:
		return "property"
	case KindEnumCase:
		return "enum case"
	case KindBlock:
		return "block"
	default:
		return "?"
	}
}

// Access is a declaration's accessibility level.
type Access uint8

const (
	AccessPrivate Access = iota
	AccessProtected
	AccessPublic
)

// VarKind distinguishes the three VariableSymbol subtypes (spec §3.7).
type VarKind uint8

const (
	VarField VarKind = iota
	VarParameter
	VarLocal
)

// TypeDeclKind mirrors ast.TypeDeclKind for a TypeSymbol, without symbols
// needing to import ast beyond the SymbolID / Modifiers link it already
// has.
type TypeDeclKind = ast.TypeDeclKind

// Symbol is a single entry in the scope graph. Like types.Type, it is
// modeled as one struct tagged by Kind carrying only the fields its kind
// uses, rather than seven separate Go types — symbols never change kind
// once created, and every consumer already switches on Kind the way it
// would switch on a sum type's tag.
type Symbol struct {
	id    ID
	table *Table // back-reference, needed only for QualifiedTypeName's walk to root
	Kind      SymbolKind
	Name      string
	Location  source.Range
	Access    Access
	Parent    ID
	Modifiers ast.Modifiers

	// Container symbols (Namespace, Type, Function, Block, Property): a
	// multimap of children by name (multiple entries permit overloads)
	// plus an ordered list for deterministic iteration (spec §3.7).
	childrenByName map[string][]ID
	childrenOrder  []ID

	// TypeSymbol payload.
	Type          *types.Type
	BaseClass     ID // NoID if none
	Interfaces    []ID
	TypeParams    []ID
	VTable        []ID
	TypeDeclKind  TypeDeclKind

	// FunctionSymbol payload.
	ReturnType    *types.Type
	Parameters    []ID // ParameterSymbol children, in declared order
	VTableIndex   int
	IsConstructor bool
	IsOperator    bool

	// VariableSymbol payload (Kind == KindVariable).
	VarKind     VarKind
	VarType     *types.Type
	FieldOffset int    // VarField
	ParamIndex  int    // VarParameter
	HasDefault  bool   // VarParameter
	IsRef       bool   // VarParameter
	IsOut       bool   // VarParameter
	IsCaptured  bool   // VarLocal

	// PropertySymbol payload.
	PropType   *types.Type
	HasGetter  bool
	HasSetter  bool

	// EnumCaseSymbol payload.
	AssociatedTypes []*types.Type
	EnumValue       int64
}

// ID returns s's own identity.
func (s *Symbol) ID() ID { return s.id }

// IsContainer reports whether s holds a multimap of named children.
func (s *Symbol) IsContainer() bool {
	switch s.Kind {
	case KindNamespace, KindType, KindFunction, KindBlock, KindProperty:
		return true
	default:
		return false
	}
}

// TypeName implements types.Definition: the symbol's simple name.
func (s *Symbol) TypeName() string { return s.Name }

// QualifiedTypeName implements types.Definition: the dotted path from the
// root namespace (spec §3.7 invariant 2's get_qualified_name()).
func (s *Symbol) QualifiedTypeName() string {
	if s.table == nil {
		return s.Name
	}
	return s.table.QualifiedName(s.id)
}

// IsReferenceKind implements types.Definition: whether values of this
// TypeSymbol's type are reference-typed (spec §3.6's storage_kind split
// mirrors ast.TypeDeclKind — `ref type` and `static type` are
// heap/reference-like; a plain `type` and an `enum` are value types).
func (s *Symbol) IsReferenceKind() bool {
	return s.TypeDeclKind == ast.KindRefType || s.TypeDeclKind == ast.KindStaticType
}
