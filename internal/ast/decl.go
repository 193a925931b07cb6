package ast

// TypedIdentifier is the shared `name: type?` building block used by
// variables, parameters, and properties; a nil Type means the type is
// inferred (spec §3.4).
type TypedIdentifier struct {
	Base
	Name string
	Type Expr // nil means inferred
}

// VariableDecl is `modifiers (var NAME (: type)? | TYPE NAME) (= init)?;`.
type VariableDecl struct {
	DeclBase
	Modifiers   Modifiers
	Variable    TypedIdentifier
	Initializer Expr // nil when absent
}

// AccessorKind distinguishes a property's get/set accessor.
type AccessorKind uint8

const (
	AccessorGet AccessorKind = iota
	AccessorSet
)

// AccessorBodyKind discriminates how a PropertyAccessor's body is written.
type AccessorBodyKind uint8

const (
	AccessorAuto       AccessorBodyKind = iota // `get;` / `set;` — compiler-synthesized
	AccessorExpression                         // `get => expr;`
	AccessorBlock                              // `get { ... }`
)

// PropertyAccessor is one `get`/`set` clause of a PropertyDecl.
type PropertyAccessor struct {
	Base
	Kind      AccessorKind
	Modifiers Modifiers
	BodyKind  AccessorBodyKind
	Expr      Expr   // set when BodyKind == AccessorExpression
	Body      *Block // set when BodyKind == AccessorBlock
}

// PropertyDecl is `modifiers TYPE NAME { get...; set...; }`.
type PropertyDecl struct {
	DeclBase
	Modifiers Modifiers
	Variable  TypedIdentifier
	Getter    *PropertyAccessor // nil when absent
	Setter    *PropertyAccessor // nil when absent
}

// ParameterDecl is one parameter of a function/constructor/property
// accessor.
type ParameterDecl struct {
	DeclBase
	Modifiers Modifiers
	Param     TypedIdentifier
	Default   Expr // nil when absent
}

// TypeParameterDecl is a single `<T>` binder (constraints reserved, spec
// §4.5.3).
type TypeParameterDecl struct {
	DeclBase
	Name string
}

// FunctionDecl is `modifiers fn NAME <typarams>? (params) (: returnType)?
// body-or-semicolon`; a nil Body means the declaration is abstract/extern.
type FunctionDecl struct {
	DeclBase
	Modifiers  Modifiers
	Name       string
	TypeParams []*TypeParameterDecl
	Params     []*ParameterDecl
	ReturnType Expr // nil means void
	Body       *Block
}

// ConstructorDecl is `modifiers new (params) block`.
type ConstructorDecl struct {
	DeclBase
	Modifiers Modifiers
	Params    []*ParameterDecl
	Body      *Block
}

// EnumCaseDecl is a single `NAME` or `NAME(paramList)` case inside an enum
// body.
type EnumCaseDecl struct {
	DeclBase
	Modifiers      Modifiers
	Name           string
	AssociatedData []*ParameterDecl
}

// TypeDeclKind distinguishes the four TypeDecl forms.
type TypeDeclKind uint8

const (
	KindType TypeDeclKind = iota
	KindRefType
	KindStaticType
	KindEnum
)

// TypeDecl is `modifiers ('type'|'ref type'|'static type'|'enum') NAME
// <typarams>? (: baseTypes)? { members }`.
type TypeDecl struct {
	DeclBase
	Modifiers  Modifiers
	Name       string
	Kind       TypeDeclKind
	TypeParams []*TypeParameterDecl
	BaseTypes  []Expr
	Members    []Decl
}

// NamespaceDecl is `namespace NAME;` (file-scoped, Body == nil) or
// `namespace NAME { body }` (block-scoped).
type NamespaceDecl struct {
	DeclBase
	Name        string
	IsFileScoped bool
	Body        []Stmt // nil for a file-scoped directive
}

// CompilationUnit is the root of one file's syntax tree.
type CompilationUnit struct {
	Base
	TopLevelStatements []Stmt
}
