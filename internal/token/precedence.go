package token

// Precedence levels from spec §4.5.5, low to high. Each is a total function
// of Kind, computed once via a map-based lookup table (never from parser
// context) per original_source/src/common/token.hpp.
const (
	PrecNone           = 0
	PrecAssignment     = 10
	PrecTernary        = 20
	PrecLogicalOr      = 30
	PrecLogicalAnd     = 40
	PrecBitwiseOr      = 50
	PrecBitwiseXor     = 60
	PrecBitwiseAnd     = 70
	PrecEquality       = 80
	PrecRelational     = 90
	PrecShift          = 100
	PrecAdditive       = 110
	PrecMultiplicative = 120
	PrecUnary          = 130
	PrecPostfix        = 140
	PrecPrimary        = 150
)

// Associativity describes how a binary operator chains with itself.
type Associativity uint8

const (
	LeftAssoc Associativity = iota
	RightAssoc
)

type opAttrs struct {
	binaryPrec  int
	assoc       Associativity
	isAssign    bool
	unary       bool // valid as a prefix unary operator
	postfixIncr bool // ++ / --, valid as postfix
}

var opTable = map[Kind]opAttrs{
	Assign:             {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	PlusAssign:         {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	MinusAssign:        {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	StarAssign:         {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	SlashAssign:        {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	PercentAssign:      {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	AmpAssign:          {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	PipeAssign:         {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	CaretAssign:        {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	ShlAssign:          {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	ShrAssign:          {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},
	QuestionQuestionEq: {binaryPrec: PrecAssignment, assoc: RightAssoc, isAssign: true},

	OrOr: {binaryPrec: PrecLogicalOr, assoc: LeftAssoc},

	QuestionQuestion: {binaryPrec: PrecLogicalOr, assoc: RightAssoc},

	AndAnd: {binaryPrec: PrecLogicalAnd, assoc: LeftAssoc},

	Pipe: {binaryPrec: PrecBitwiseOr, assoc: LeftAssoc},

	Caret: {binaryPrec: PrecBitwiseXor, assoc: LeftAssoc},

	Amp: {binaryPrec: PrecBitwiseAnd, assoc: LeftAssoc, unary: true},

	EqEq:   {binaryPrec: PrecEquality, assoc: LeftAssoc},
	BangEq: {binaryPrec: PrecEquality, assoc: LeftAssoc},

	Lt:   {binaryPrec: PrecRelational, assoc: LeftAssoc},
	LtEq: {binaryPrec: PrecRelational, assoc: LeftAssoc},
	Gt:   {binaryPrec: PrecRelational, assoc: LeftAssoc},
	GtEq: {binaryPrec: PrecRelational, assoc: LeftAssoc},

	Shl: {binaryPrec: PrecShift, assoc: LeftAssoc},
	Shr: {binaryPrec: PrecShift, assoc: LeftAssoc},

	Plus:  {binaryPrec: PrecAdditive, assoc: LeftAssoc, unary: true},
	Minus: {binaryPrec: PrecAdditive, assoc: LeftAssoc, unary: true},

	Star:    {binaryPrec: PrecMultiplicative, assoc: LeftAssoc, unary: true}, // unary: pointer deref
	Slash:   {binaryPrec: PrecMultiplicative, assoc: LeftAssoc},
	Percent: {binaryPrec: PrecMultiplicative, assoc: LeftAssoc},

	DotDot:   {binaryPrec: PrecPrimary, assoc: LeftAssoc},
	DotDotEq: {binaryPrec: PrecPrimary, assoc: LeftAssoc},

	Bang:  {unary: true},
	Tilde: {unary: true},

	PlusPlus:   {unary: true, postfixIncr: true},
	MinusMinus: {unary: true, postfixIncr: true},
}

// BinaryPrecedence returns the binary operator precedence of k, or
// PrecNone if k is not a binary operator.
func (k Kind) BinaryPrecedence() int { return opTable[k].binaryPrec }

// Associativity returns k's associativity as a binary operator.
func (k Kind) Associativity() Associativity { return opTable[k].assoc }

// IsAssignmentOp reports whether k is one of the compound-or-simple
// assignment operators.
func (k Kind) IsAssignmentOp() bool { return opTable[k].isAssign }

// IsUnaryOp reports whether k can prefix an operand as a unary operator.
func (k Kind) IsUnaryOp() bool { return opTable[k].unary }

// IsPostfixIncrDecr reports whether k is ++ or -- usable postfix.
func (k Kind) IsPostfixIncrDecr() bool { return opTable[k].postfixIncr }

// StartsExpression reports whether a token of kind k can begin an
// expression.
func (k Kind) StartsExpression() bool {
	switch {
	case k.IsLiteral(), k == Ident:
		return true
	case k == KwThis, k == KwTrue, k == KwFalse, k == KwNull:
		return true
	case k == KwNew, k == KwTypeOf, k == KwSizeOf:
		return true
	case k == LParen, k == LBracket:
		return true
	case k == Plus, k == Minus, k == Bang, k == Tilde, k == Star, k == Amp:
		return true
	case k == PlusPlus, k == MinusMinus:
		return true
	case k == Dot: // leading-dot enum shorthand
		return true
	default:
		return false
	}
}

// StartsStatement reports whether a token of kind k can begin a statement.
func (k Kind) StartsStatement() bool {
	switch k {
	case LBrace, KwIf, KwWhile, KwFor, KwReturn, KwBreak, KwContinue:
		return true
	default:
		return k.StartsExpression() || k.StartsDeclaration()
	}
}

// StartsDeclaration reports whether a token of kind k can begin a
// declaration (ignoring any leading modifier tokens, which the caller is
// expected to have already skipped).
func (k Kind) StartsDeclaration() bool {
	switch k {
	case KwType, KwEnum, KwFn, KwNew, KwVar, KwUsing, KwNamespace, Ident:
		return true
	default:
		return k.IsModifier()
	}
}
