package diag

import "fmt"

// Code identifies a specific diagnostic. Codes are grouped by compiler phase
// in thousand-blocks: 1000s lexical, 2000s syntax, 3000s symbol resolution,
// 4000s type checking.
type Code uint16

const (
	Unknown Code = 0

	// Lexical (1000s)
	LexInvalidCharacter Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexMalformedNumber Code = 1004
	LexInvalidEscape Code = 1005

	// Syntax (2000s)
	SynUnexpectedToken    Code = 2001
	SynExpectedToken      Code = 2002
	SynExpectedExpression Code = 2003
	SynExpectedType       Code = 2004
	SynExpectedIdentifier Code = 2005
	SynUnclosedDelimiter  Code = 2006
	SynMissingSemicolon   Code = 2007
	SynInvalidModifier    Code = 2008
	SynDuplicateAccessor  Code = 2009

	// Symbol resolution (3000s)
	SymDuplicateDeclaration Code = 3001
	SymUnresolvedName       Code = 3002
	SymAmbiguousName        Code = 3003
	SymBreakOutsideLoop     Code = 3004
	SymContinueOutsideLoop  Code = 3005
	SymReturnOutsideFunc    Code = 3006

	// Type checking (4000s)
	TypeMismatch           Code = 4001
	TypeNoConversion       Code = 4002
	TypeNotLValue          Code = 4003
	TypeUnresolvedOperand  Code = 4004
	TypeNoOverload         Code = 4005
	TypeAmbiguousOverload  Code = 4006
	TypeMissingReturn      Code = 4007
	TypeInvalidOperand     Code = 4008
	TypeCannotInferGeneric Code = 4009
)

var codeTitles = map[Code]string{
	Unknown: "unknown error",

	LexInvalidCharacter:         "invalid character",
	LexUnterminatedString:      "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexMalformedNumber:          "malformed numeric literal",
	LexInvalidEscape:            "invalid escape sequence",

	SynUnexpectedToken:    "unexpected token",
	SynExpectedToken:      "expected token",
	SynExpectedExpression: "expected expression",
	SynExpectedType:       "expected type",
	SynExpectedIdentifier: "expected identifier",
	SynUnclosedDelimiter:  "unclosed delimiter",
	SynMissingSemicolon:   "missing semicolon",
	SynInvalidModifier:    "modifier not allowed here",
	SynDuplicateAccessor:  "duplicate property accessor",

	SymDuplicateDeclaration: "duplicate declaration",
	SymUnresolvedName:       "unresolved name",
	SymAmbiguousName:        "ambiguous name",
	SymBreakOutsideLoop:     "break outside loop",
	SymContinueOutsideLoop:  "continue outside loop",
	SymReturnOutsideFunc:    "return outside function",

	TypeMismatch:           "type mismatch",
	TypeNoConversion:       "no conversion between types",
	TypeNotLValue:          "expression is not an lvalue",
	TypeUnresolvedOperand:  "operand type could not be resolved",
	TypeNoOverload:         "no matching overload",
	TypeAmbiguousOverload:  "ambiguous overload resolution",
	TypeMissingReturn:      "missing return in function",
	TypeInvalidOperand:     "invalid operand for operator",
	TypeCannotInferGeneric: "cannot infer generic type argument",
}

// Phase returns the short phase tag a code belongs to, used as a prefix in
// the code's ID (e.g. "LEX1001").
func (c Code) Phase() string {
	switch n := int(c); {
	case n >= 1000 && n < 2000:
		return "LEX"
	case n >= 2000 && n < 3000:
		return "SYN"
	case n >= 3000 && n < 4000:
		return "SYM"
	case n >= 4000 && n < 5000:
		return "TYP"
	default:
		return "E"
	}
}

// ID returns the stable printable identifier for the code, e.g. "LEX1001".
func (c Code) ID() string {
	return fmt.Sprintf("%s%04d", c.Phase(), int(c))
}

// Title returns the short human-readable description registered for c.
func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[Unknown]
}

func (c Code) String() string {
	return fmt.Sprintf("%s: %s", c.ID(), c.Title())
}
