package token

var kindNames = map[Kind]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	Ident:   "Ident",

	KwPublic:    "public",
	KwPrivate:   "private",
	KwProtected: "protected",
	KwStatic:    "static",
	KwVirtual:   "virtual",
	KwOverride:  "override",
	KwAbstract:  "abstract",
	KwExtern:    "extern",
	KwEnforced:  "enforced",
	KwInherit:   "inherit",
	KwAsync:     "async",
	KwRef:       "ref",
	KwType:      "type",
	KwEnum:      "enum",
	KwFn:        "fn",
	KwNew:       "new",
	KwVar:       "var",
	KwUsing:     "using",
	KwNamespace: "namespace",
	KwReturn:    "return",
	KwBreak:     "break",
	KwContinue:  "continue",
	KwIf:        "if",
	KwElse:      "else",
	KwWhile:     "while",
	KwFor:       "for",
	KwThis:      "this",
	KwTrue:      "true",
	KwFalse:     "false",
	KwNull:      "null",
	KwTypeOf:    "typeof",
	KwSizeOf:    "sizeof",
	KwGet:       "get",
	KwSet:       "set",
	KwVoid:      "void",

	IntLit:    "IntLit",
	LongLit:   "LongLit",
	FloatLit:  "FloatLit",
	DoubleLit: "DoubleLit",
	StringLit: "StringLit",
	CharLit:   "CharLit",

	Plus:               "+",
	Minus:              "-",
	Star:               "*",
	Slash:              "/",
	Percent:            "%",
	Assign:             "=",
	EqEq:               "==",
	BangEq:             "!=",
	Lt:                 "<",
	LtEq:               "<=",
	Gt:                 ">",
	GtEq:               ">=",
	AndAnd:             "&&",
	OrOr:               "||",
	Arrow:              "->",
	FatArrow:           "=>",
	ColonColon:         "::",
	DotDot:             "..",
	DotDotEq:           "..=",
	QuestionQuestion:   "??",
	QuestionQuestionEq: "??=",
	Shl:                "<<",
	Shr:                ">>",
	ShlAssign:          "<<=",
	ShrAssign:          ">>=",
	PlusAssign:         "+=",
	MinusAssign:        "-=",
	StarAssign:         "*=",
	SlashAssign:        "/=",
	PercentAssign:      "%=",
	AmpAssign:          "&=",
	PipeAssign:         "|=",
	CaretAssign:        "^=",
	Bang:               "!",
	Tilde:              "~",
	Amp:                "&",
	Pipe:               "|",
	Caret:              "^",
	Question:           "?",
	Colon:              ":",
	Semicolon:          ";",
	Comma:              ",",
	Dot:                ".",
	LParen:             "(",
	RParen:             ")",
	LBrace:             "{",
	RBrace:             "}",
	LBracket:           "[",
	RBracket:           "]",
	PlusPlus:           "++",
	MinusMinus:         "--",
}

// ToString returns the canonical spelling for an operator/keyword kind, or
// its enum name otherwise — spec §4.3's to_string(kind).
func ToString(k Kind) string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return k.String()
}
