package token

import "langcore/internal/source"

// TriviaKind classifies a run of non-code source text attached to a token.
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaNewline
	TriviaLineComment  // // ...
	TriviaBlockComment // /* ... */
	TriviaDocComment   // /// ... or /** ... */
)

// Trivia is a span of whitespace or comment text attached to a token's
// leading or trailing trivia list. Trivia never becomes a syntax tree node
// (spec §3.2); it is retained only so a code printer can reproduce the
// source verbatim.
type Trivia struct {
	Kind TriviaKind
	Span source.Range
	Text string
}
