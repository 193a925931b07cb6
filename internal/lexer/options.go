package lexer

// Options configures a Lexer run. PreserveTrivia controls whether scanned
// trivia (whitespace, comments) is retained on tokens at all — disabling it
// lets callers that only need the token stream (e.g. a quick syntax check)
// skip the trivia bookkeeping that a faithful code printer needs (spec
// §3.2). Tokenize always keeps trivia separated onto the token either way;
// PreserveTrivia=false simply discards it after collection instead of
// attaching it.
type Options struct {
	PreserveTrivia bool
}

// DefaultOptions preserves trivia, matching the driver's default so
// round-trip printing works unless a caller opts out.
func DefaultOptions() Options {
	return Options{PreserveTrivia: true}
}
