package lexer

import (
	"golang.org/x/text/unicode/norm"

	"langcore/internal/diag"
	"langcore/internal/source"
	"langcore/internal/token"
)

// scanIdent scans an ASCII-initiated identifier or keyword: greedy
// [A-Za-z0-9_]*, classified against the keyword table afterward (spec
// §4.4.2).
func (lx *Lexer) scanIdent(start source.Location) token.Token {
	for isIdentContinueByte(lx.cur.peek()) {
		lx.cur.bump()
	}
	// Unicode identifiers may continue past the ASCII run (e.g. `café`);
	// non-ASCII code points are classified with isIdentContinueRune once we
	// fall off the ASCII fast path.
	for lx.cur.peek() >= 0x80 {
		r, size := lx.cur.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		for i := 0; i < size; i++ {
			lx.cur.bump()
		}
	}
	sp := lx.cur.spanFrom(start)
	text := string(lx.cur.content[sp.Start.Offset:lx.cur.offset])
	return token.Token{Kind: token.GetKeywordKind(text), Text: text, Span: sp}
}

// scanUnicodeIdent handles identifiers that begin with a non-ASCII letter.
// The language only needs identifier classification, not full locale
// folding, so this narrowly exercises golang.org/x/text/unicode/norm's
// NFC check to warn about unnormalized identifiers (which are still
// returned as Ident tokens) rather than pulling in the rest of its i18n
// surface.
func (lx *Lexer) scanUnicodeIdent(start source.Location) token.Token {
	r, size := lx.cur.peekRune()
	if !isIdentStartRune(r) {
		lx.cur.bumpRune()
		sp := lx.cur.spanFrom(start)
		lx.errorf(diagInvalidCharacter, sp, "invalid character %q", r)
		return token.Token{Kind: token.Invalid, Text: string(lx.cur.content[sp.Start.Offset:lx.cur.offset]), Span: sp}
	}
	for i := 0; i < size; i++ {
		lx.cur.bump()
	}
	for {
		r, size := lx.cur.peekRune()
		if size == 0 || !isIdentContinueRune(r) {
			break
		}
		for i := 0; i < size; i++ {
			lx.cur.bump()
		}
	}
	sp := lx.cur.spanFrom(start)
	text := string(lx.cur.content[sp.Start.Offset:lx.cur.offset])
	if !norm.NFC.IsNormalString(text) {
		diag.Warnf(lx.reporter, diagInvalidCharacter, sp, "identifier %q is not in Unicode NFC normal form", text)
	}
	return token.Token{Kind: token.Ident, Text: text, Span: sp}
}
