package lexer

import (
	"langcore/internal/source"
	"langcore/internal/token"
)

// Checkpoint is an opaque cursor position into a TokenStream, restorable
// via TokenStream.Restore. Used for the parser's speculative lookahead
// (generic argument lists, parenthesized-expression-vs-lambda, §4.5.6).
type Checkpoint int

// TokenStream is a random-access, cursor-based view over a fully scanned
// token sequence (spec §4.4's TokenStream operations). It never re-lexes;
// Tokenize produces the full sequence up front.
type TokenStream struct {
	toks []token.Token
	pos  int
}

// NewTokenStream wraps a pre-scanned token sequence. toks must end with an
// EOF token; Current/Peek clamp to it once the stream is exhausted.
func NewTokenStream(toks []token.Token) *TokenStream {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		toks = append(toks, token.Token{Kind: token.EOF})
	}
	return &TokenStream{toks: toks}
}

// Current returns the token at the cursor without consuming it.
func (ts *TokenStream) Current() token.Token { return ts.at(ts.pos) }

// Peek returns the token k positions ahead of the cursor (Peek(0) ==
// Current()) without consuming anything.
func (ts *TokenStream) Peek(k int) token.Token { return ts.at(ts.pos + k) }

func (ts *TokenStream) at(i int) token.Token {
	if i < 0 {
		i = 0
	}
	if i >= len(ts.toks) {
		return ts.toks[len(ts.toks)-1]
	}
	return ts.toks[i]
}

// Advance consumes and returns the current token, moving the cursor
// forward unless already at EOF.
func (ts *TokenStream) Advance() token.Token {
	t := ts.Current()
	if ts.pos < len(ts.toks)-1 {
		ts.pos++
	}
	return t
}

// AtEnd reports whether the cursor sits on the terminal EOF token.
func (ts *TokenStream) AtEnd() bool { return ts.Current().Kind == token.EOF }

// Check reports whether the current token has the given kind, without
// consuming it.
func (ts *TokenStream) Check(k token.Kind) bool { return ts.Current().Kind == k }

// CheckAny reports whether the current token matches any of the given
// kinds.
func (ts *TokenStream) CheckAny(kinds ...token.Kind) bool {
	cur := ts.Current().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// CheckSequence reports whether the upcoming tokens, starting at the
// cursor, match kinds in order.
func (ts *TokenStream) CheckSequence(kinds ...token.Kind) bool {
	for i, k := range kinds {
		if ts.Peek(i).Kind != k {
			return false
		}
	}
	return true
}

// Consume advances past the current token if it has kind k, reporting
// whether it did.
func (ts *TokenStream) Consume(k token.Kind) bool {
	if ts.Check(k) {
		ts.Advance()
		return true
	}
	return false
}

// ConsumeAnyGet advances past the current token if it matches one of kinds,
// returning the matched kind (or token.Invalid if none matched).
func (ts *TokenStream) ConsumeAnyGet(kinds ...token.Kind) token.Kind {
	cur := ts.Current().Kind
	for _, k := range kinds {
		if cur == k {
			ts.Advance()
			return k
		}
	}
	return token.Invalid
}

// Checkpoint captures the current cursor position for later restoration.
func (ts *TokenStream) Checkpoint() Checkpoint { return Checkpoint(ts.pos) }

// Restore rewinds the cursor to a previously captured Checkpoint.
func (ts *TokenStream) Restore(cp Checkpoint) { ts.pos = int(cp) }

// SkipTo advances the cursor until it reaches a token of kind k or EOF,
// without consuming that token — used by the parser's synchronization
// strategy (spec §4.5.7) to reach a safe-harbor token.
func (ts *TokenStream) SkipTo(k token.Kind) {
	for !ts.AtEnd() && !ts.Check(k) {
		ts.Advance()
	}
}

// SplitRightShift splits the current ">>" token in place into two adjacent
// ">" tokens, each of width 1, so a nested generic argument list like
// `Foo<Bar<Baz>>` can close both levels without the lexer ever having
// tokenized two separate '>' characters (spec §4.4's splitRightShift). A
// ">>=" token splits into ">" and ">=". It is a no-op returning false if the
// current token isn't Shr or ShrAssign.
func (ts *TokenStream) SplitRightShift() bool {
	cur := ts.Current()
	var first, second token.Kind
	switch cur.Kind {
	case token.Shr:
		first, second = token.Gt, token.Gt
	case token.ShrAssign:
		first, second = token.Gt, token.GtEq
	default:
		return false
	}
	half := cur.Span.Width / 2
	firstTok := token.Token{Kind: first, Text: token.ToString(first), Span: shrinkRange(cur.Span, 0, half)}
	secondTok := token.Token{Kind: second, Text: token.ToString(second), Span: shrinkRange(cur.Span, half, cur.Span.Width-half), Trailing: cur.Trailing}

	rest := make([]token.Token, 0, len(ts.toks)+1)
	rest = append(rest, ts.toks[:ts.pos]...)
	rest = append(rest, firstTok, secondTok)
	rest = append(rest, ts.toks[ts.pos+1:]...)
	ts.toks = rest
	return true
}

func shrinkRange(r source.Range, offset, width uint32) source.Range {
	start := r.Start
	start.Offset += offset
	start.Column += offset
	return source.Range{Start: start, Width: width}
}
