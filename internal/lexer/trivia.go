package lexer

import (
	"langcore/internal/source"
	"langcore/internal/token"
)

// collectLeading gathers the maximal run of whitespace, newlines, and
// comments preceding a significant token. Runs of spaces/tabs coalesce into
// one Trivia, as do runs of newlines; each comment is its own Trivia.
func (lx *Lexer) collectLeading() []token.Trivia {
	var out []token.Trivia
	for !lx.cur.eof() {
		start := lx.cur.mark()
		b := lx.cur.peek()

		switch {
		case b == ' ' || b == '\t':
			for lx.cur.peek() == ' ' || lx.cur.peek() == '\t' {
				lx.cur.bump()
			}
			out = append(out, lx.makeTrivia(token.TriviaWhitespace, start))

		case b == '\n':
			for lx.cur.peek() == '\n' {
				lx.cur.bump()
			}
			out = append(out, lx.makeTrivia(token.TriviaNewline, start))

		case b == '\r':
			lx.cur.bump()
			if lx.cur.peek() == '\n' {
				lx.cur.bump()
			}
			out = append(out, lx.makeTrivia(token.TriviaNewline, start))

		case b == '/' && (lx.cur.peekAt(1) == '/' || lx.cur.peekAt(1) == '*'):
			if t, ok := lx.scanComment(start); ok {
				out = append(out, t)
				continue
			}
			return out

		default:
			return out
		}
	}
	return out
}

// collectTrailing consumes whitespace up to and including the first
// newline after a token, per spec §4.4's trailing-trivia rule.
func (lx *Lexer) collectTrailing() []token.Trivia {
	var out []token.Trivia
	for !lx.cur.eof() {
		start := lx.cur.mark()
		b := lx.cur.peek()
		switch {
		case b == ' ' || b == '\t':
			for lx.cur.peek() == ' ' || lx.cur.peek() == '\t' {
				lx.cur.bump()
			}
			out = append(out, lx.makeTrivia(token.TriviaWhitespace, start))
		case b == '\r':
			lx.cur.bump()
			if lx.cur.peek() == '\n' {
				lx.cur.bump()
			}
			out = append(out, lx.makeTrivia(token.TriviaNewline, start))
			return out
		case b == '\n':
			lx.cur.bump()
			out = append(out, lx.makeTrivia(token.TriviaNewline, start))
			return out
		case b == '/' && (lx.cur.peekAt(1) == '/' || lx.cur.peekAt(1) == '*'):
			if t, ok := lx.scanComment(start); ok {
				out = append(out, t)
				if t.Kind == token.TriviaLineComment || t.Kind == token.TriviaDocComment {
					return out
				}
				continue
			}
			return out
		default:
			return out
		}
	}
	return out
}

// scanComment scans a single "//", "///", or "/* */" comment starting at
// the current cursor position (already positioned at '/').
func (lx *Lexer) scanComment(start source.Location) (token.Trivia, bool) {
	lx.cur.bump() // first '/'
	switch lx.cur.peek() {
	case '/':
		lx.cur.bump()
		kind := token.TriviaLineComment
		if lx.cur.peek() == '/' {
			lx.cur.bump()
			kind = token.TriviaDocComment
		}
		for !lx.cur.eof() && lx.cur.peek() != '\n' && lx.cur.peek() != '\r' {
			lx.cur.bump()
		}
		return lx.makeTrivia(kind, start), true

	case '*':
		lx.cur.bump()
		depth := 1
		for !lx.cur.eof() && depth > 0 {
			if lx.cur.peek() == '/' && lx.cur.peekAt(1) == '*' {
				lx.cur.bump()
				lx.cur.bump()
				depth++
				continue
			}
			if lx.cur.peek() == '*' && lx.cur.peekAt(1) == '/' {
				lx.cur.bump()
				lx.cur.bump()
				depth--
				continue
			}
			lx.cur.bump()
		}
		sp := lx.cur.spanFrom(start)
		if depth > 0 {
			lx.errorf(diagUnterminatedBlockComment, sp, "unterminated block comment")
		}
		isDoc := len(lx.cur.content) > int(sp.Start.Offset)+2 && lx.cur.content[sp.Start.Offset+2] == '*'
		kind := token.TriviaBlockComment
		if isDoc {
			kind = token.TriviaDocComment
		}
		return token.Trivia{Kind: kind, Span: sp, Text: string(lx.cur.content[sp.Start.Offset:lx.cur.offset])}, true

	default:
		return token.Trivia{}, false
	}
}

func (lx *Lexer) makeTrivia(kind token.TriviaKind, start source.Location) token.Trivia {
	sp := lx.cur.spanFrom(start)
	return token.Trivia{Kind: kind, Span: sp, Text: string(lx.cur.content[sp.Start.Offset:lx.cur.offset])}
}
