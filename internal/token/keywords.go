package token

var keywords = map[string]Kind{
	"public":    KwPublic,
	"private":   KwPrivate,
	"protected": KwProtected,
	"static":    KwStatic,
	"virtual":   KwVirtual,
	"override":  KwOverride,
	"abstract":  KwAbstract,
	"extern":    KwExtern,
	"enforced":  KwEnforced,
	"inherit":   KwInherit,
	"async":     KwAsync,
	"ref":       KwRef,
	"type":      KwType,
	"enum":      KwEnum,
	"fn":        KwFn,
	"new":       KwNew,
	"var":       KwVar,
	"using":     KwUsing,
	"namespace": KwNamespace,
	"return":    KwReturn,
	"break":     KwBreak,
	"continue":  KwContinue,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"for":       KwFor,
	"this":      KwThis,
	"true":      KwTrue,
	"false":     KwFalse,
	"null":      KwNull,
	"typeof":    KwTypeOf,
	"sizeof":    KwSizeOf,
	"get":       KwGet,
	"set":       KwSet,
	"void":      KwVoid,
}

// GetKeywordKind performs a map lookup across the ~35 reserved words; text
// that isn't a keyword resolves to Ident. Lookup is case-sensitive — only
// the exact lowercase spelling is recognized.
func GetKeywordKind(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}
