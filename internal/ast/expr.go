package ast

import "langcore/internal/token"

// LiteralKind classifies a Literal expression's value domain.
type LiteralKind uint8

const (
	LitInt LiteralKind = iota
	LitLong
	LitFloat
	LitDouble
	LitString
	LitChar
	LitBool
	LitNull
)

// Literal is a literal value; RawText is retained verbatim for round-trip
// printing (spec §3.4).
type Literal struct {
	ExprBase
	Kind    LiteralKind
	RawText string
}

// ArrayLiteral is a bracketed list of element expressions: `[a, b, c]`.
type ArrayLiteral struct {
	ExprBase
	Elements []Expr
}

// Identifier is a single unqualified name.
type Identifier struct {
	ExprBase
	Text string
}

// NameExpr wraps a bare identifier as a name-position expression (the
// left-most segment of what may become a QualifiedName).
type NameExpr struct {
	ExprBase
	Name string
}

// QualifiedName is a dotted `left.right` name chain.
type QualifiedName struct {
	ExprBase
	Left  Expr
	Right string
}

// GenericName is a name applied to explicit type arguments: `Base<Args>`.
type GenericName struct {
	ExprBase
	BaseExpr Expr
	TypeArgs []Expr
}

// This is the `this` receiver expression.
type This struct {
	ExprBase
}

// Parenthesized wraps `(inner)`, preserved so the printer can round-trip
// explicit grouping.
type Parenthesized struct {
	ExprBase
	Inner Expr
}

// Unary is a prefix or postfix unary operator application.
type Unary struct {
	ExprBase
	Op        token.Kind
	Operand   Expr
	IsPostfix bool
}

// Binary is an infix binary operator application.
type Binary struct {
	ExprBase
	Left  Expr
	Op    token.Kind
	Right Expr
}

// Assignment is `target op value` for `=` and the compound assignment
// operators.
type Assignment struct {
	ExprBase
	Target Expr
	Op     token.Kind
	Value  Expr
}

// Conditional is the ternary `cond ? then : else`.
type Conditional struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

// MemberAccess is `object.member`.
type MemberAccess struct {
	ExprBase
	Object Expr
	Member string
}

// Indexer is `object[index]`.
type Indexer struct {
	ExprBase
	Object Expr
	Index  Expr
}

// Call is `callee(args...)`.
type Call struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// New is `new Type(args...)`.
type New struct {
	ExprBase
	Type Expr
	Args []Expr
}

// Cast is `(TargetType)expr` / `expr as TargetType` depending on surface
// syntax; the AST only records the semantic pair.
type Cast struct {
	ExprBase
	TargetType Expr
	Value      Expr
}

// LambdaParam is one parameter of a Lambda, optionally type-annotated.
type LambdaParam struct {
	Name string
	Type Expr // nil when the parameter's type is inferred
}

// Lambda is `(params) => body`.
type Lambda struct {
	ExprBase
	Params []LambdaParam
	Body   Node // Expr for an expression-bodied lambda, *Block otherwise
}

// TypeOf is `typeof(T)`.
type TypeOf struct {
	ExprBase
	Type Expr
}

// SizeOf is `sizeof(T)`.
type SizeOf struct {
	ExprBase
	Type Expr
}

// ArrayType is `Elem[Size?]` in type position.
type ArrayType struct {
	ExprBase
	Elem Expr
	Size Expr // nil for an unsized array type
}

// PointerType is `*Base` in type position.
type PointerType struct {
	ExprBase
	Base Expr
}

// FunctionType is `fn(Params...) -> Return` in type position.
type FunctionType struct {
	ExprBase
	ParamTypes []Expr
	ReturnType Expr // nil means void
}

// GenericType is `Base<Args...>` in type position (the type-expression
// counterpart of GenericName, used once the parser has committed to a
// type context rather than a name expression).
type GenericType struct {
	ExprBase
	Base Expr
	Args []Expr
}

// RangeExpr is `lo..hi` / `lo..=hi`.
type RangeExpr struct {
	ExprBase
	Low       Expr
	High      Expr
	Inclusive bool
}

// EnumShorthand is the leading-dot enum-member shorthand `.Case`, resolved
// against the expected type during type checking.
type EnumShorthand struct {
	ExprBase
	Case string
}

// MissingExpr is an error-recovery placeholder standing in for an
// expression the parser could not parse, preserving any sub-trees it
// managed to salvage (spec §4.5.7, §9's two independent Missing* shapes).
type MissingExpr struct {
	ExprBase
	Message  string
	Salvaged []Node
}

