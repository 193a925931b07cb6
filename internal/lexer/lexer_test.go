package lexer_test

import (
	"testing"

	"langcore/internal/diag"
	"langcore/internal/lexer"
	"langcore/internal/source"
	"langcore/internal/token"
)

func tokenize(t *testing.T, src string) (*lexer.TokenStream, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lang", []byte(src))
	bag := diag.NewBag(100)
	ts := lexer.Tokenize(fileID, []byte(src), lexer.DefaultOptions(), diag.BagReporter{Bag: bag})
	return ts, bag
}

func kinds(ts *lexer.TokenStream) []token.Kind {
	var out []token.Kind
	for {
		tok := ts.Current()
		out = append(out, tok.Kind)
		if tok.IsEOF() {
			break
		}
		ts.Advance()
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	ts, bag := tokenize(t, src)
	want = append(want, token.EOF)
	got := kinds(ts)
	if len(got) != len(want) {
		t.Fatalf("tokenize(%q): got %d tokens %v, want %d %v (diagnostics: %d)", src, len(got), got, len(want), want, bag.Len())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tokenize(%q): token %d = %v, want %v", src, i, got[i], want[i])
		}
	}
}

func TestKeywordsClassifyCorrectly(t *testing.T) {
	expectKinds(t, "fn type enum var using namespace return break continue if else while for this true false null typeof sizeof get set void",
		token.KwFn, token.KwType, token.KwEnum, token.KwVar, token.KwUsing, token.KwNamespace,
		token.KwReturn, token.KwBreak, token.KwContinue, token.KwIf, token.KwElse, token.KwWhile,
		token.KwFor, token.KwThis, token.KwTrue, token.KwFalse, token.KwNull, token.KwTypeOf,
		token.KwSizeOf, token.KwGet, token.KwSet, token.KwVoid)
}

func TestIdentifierIsNotAKeywordLookalike(t *testing.T) {
	expectKinds(t, "fnord", token.Ident)
}

func TestOperatorsPickLongestSpelling(t *testing.T) {
	cases := []struct {
		src  string
		want []token.Kind
	}{
		{"??=", []token.Kind{token.QuestionQuestionEq}},
		{"??", []token.Kind{token.QuestionQuestion}},
		{"?? =", []token.Kind{token.QuestionQuestion, token.Assign}},
		{"..=", []token.Kind{token.DotDotEq}},
		{"..", []token.Kind{token.DotDot}},
		{"<<=", []token.Kind{token.ShlAssign}},
		{">>=", []token.Kind{token.ShrAssign}},
		{"<<", []token.Kind{token.Shl}},
		{">>", []token.Kind{token.Shr}},
		{"->", []token.Kind{token.Arrow}},
		{"=>", []token.Kind{token.FatArrow}},
		{"++", []token.Kind{token.PlusPlus}},
		{"+ +", []token.Kind{token.Plus, token.Plus}},
		{"+=", []token.Kind{token.PlusAssign}},
	}
	for _, c := range cases {
		expectKinds(t, c.src, c.want...)
	}
}

func TestNumberLiteralKinds(t *testing.T) {
	cases := []struct {
		src  string
		want token.Kind
	}{
		{"42", token.IntLit},
		{"42L", token.LongLit},
		{"42l", token.LongLit},
		{"3.14", token.DoubleLit},
		{"3.14F", token.FloatLit},
		{"3.14D", token.DoubleLit},
		{"1e10", token.DoubleLit},
		{"1e-10", token.DoubleLit},
		{"0x1F", token.IntLit},
		{"0b101", token.IntLit},
		{"0o17", token.IntLit},
		{"1_000_000", token.IntLit},
	}
	for _, c := range cases {
		expectKinds(t, c.src, c.want)
	}
}

func TestMalformedHexLiteralReportsError(t *testing.T) {
	_, bag := tokenize(t, "0x")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for '0x' with no hex digits")
	}
	if bag.Items()[0].Code != diag.LexMalformedNumber {
		t.Fatalf("expected LexMalformedNumber, got %v", bag.Items()[0].Code)
	}
}

func TestStringLiteralWithEscapes(t *testing.T) {
	ts, bag := tokenize(t, `"hi\n\t\"there\""`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	tok := ts.Current()
	if tok.Kind != token.StringLit {
		t.Fatalf("expected StringLit, got %v", tok.Kind)
	}
}

func TestUnterminatedStringReportsErrorAndRecovers(t *testing.T) {
	ts, bag := tokenize(t, "\"unterminated\nx")
	if !bag.HasErrors() {
		t.Fatalf("expected unterminated string diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected LexUnterminatedString, got %v", bag.Items()[0].Code)
	}
	// lexer must keep scanning after the bad token, not abort the file.
	if ts.Current().Kind != token.Invalid {
		t.Fatalf("expected Invalid token for the unterminated literal, got %v", ts.Current().Kind)
	}
	ts.Advance()
	if ts.Current().Kind != token.Ident || ts.Current().Text != "x" {
		t.Fatalf("expected lexer to continue past the bad string, got %v %q", ts.Current().Kind, ts.Current().Text)
	}
}

func TestInvalidEscapeReportsButKeepsText(t *testing.T) {
	_, bag := tokenize(t, `"\q"`)
	if !bag.HasErrors() {
		t.Fatalf("expected invalid escape diagnostic")
	}
	if bag.Items()[0].Code != diag.LexInvalidEscape {
		t.Fatalf("expected LexInvalidEscape, got %v", bag.Items()[0].Code)
	}
}

func TestCharLiteral(t *testing.T) {
	expectKinds(t, `'a'`, token.CharLit)
	expectKinds(t, `'\n'`, token.CharLit)
}

func TestUnterminatedBlockCommentReportsError(t *testing.T) {
	_, bag := tokenize(t, "/* never closed")
	if !bag.HasErrors() {
		t.Fatalf("expected unterminated block comment diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("expected LexUnterminatedBlockComment, got %v", bag.Items()[0].Code)
	}
}

func TestNestedBlockCommentsClose(t *testing.T) {
	_, bag := tokenize(t, "/* outer /* inner */ still outer */")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

// TestTriviaRoundTrip checks the lexer's core invariant (spec §8.1): for
// every token, leading trivia text + token text + trailing trivia text,
// concatenated in order across the whole stream, reproduces the source
// exactly.
func TestTriviaRoundTrip(t *testing.T) {
	srcs := []string{
		"fn main() { return 0 ; }",
		"  // a comment\nvar x = 1;\n",
		"x = 1 /* inline */ + 2;\n\n\ty ;",
		"/// doc comment\nfn f() {}\n",
	}
	for _, src := range srcs {
		fs := source.NewFileSet()
		fileID := fs.AddVirtual("rt.lang", []byte(src))
		ts := lexer.Tokenize(fileID, []byte(src), lexer.DefaultOptions(), diag.NopReporter{})

		var rebuilt string
		for {
			tok := ts.Current()
			for _, tr := range tok.Leading {
				rebuilt += tr.Text
			}
			rebuilt += tok.Text
			for _, tr := range tok.Trailing {
				rebuilt += tr.Text
			}
			if tok.IsEOF() {
				break
			}
			ts.Advance()
		}
		if rebuilt != src {
			t.Errorf("round-trip mismatch:\n got: %q\nwant: %q", rebuilt, src)
		}
	}
}

// TestPositionsAreMonotonic checks that successive tokens never go backward
// in byte offset, and that line/column tracking advances across newlines.
func TestPositionsAreMonotonic(t *testing.T) {
	src := "fn main() {\n  var x = 1;\n  return x;\n}\n"
	ts, bag := tokenize(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	var prevOffset uint32
	var prevLine uint32 = 1
	for {
		tok := ts.Current()
		if tok.Span.Start.Offset < prevOffset {
			t.Fatalf("token %q offset went backward: %d < %d", tok.Text, tok.Span.Start.Offset, prevOffset)
		}
		if tok.Span.Start.Line < prevLine {
			t.Fatalf("token %q line went backward: %d < %d", tok.Text, tok.Span.Start.Line, prevLine)
		}
		prevOffset = tok.Span.Start.Offset
		prevLine = tok.Span.Start.Line
		if tok.IsEOF() {
			break
		}
		ts.Advance()
	}
}

func TestCheckpointRestore(t *testing.T) {
	ts, _ := tokenize(t, "a b c")
	cp := ts.Checkpoint()
	ts.Advance()
	ts.Advance()
	if ts.Current().Text != "c" {
		t.Fatalf("expected to be at 'c', got %q", ts.Current().Text)
	}
	ts.Restore(cp)
	if ts.Current().Text != "a" {
		t.Fatalf("expected restore to rewind to 'a', got %q", ts.Current().Text)
	}
}

func TestSplitRightShiftSplitsNestedGenericClose(t *testing.T) {
	ts, _ := tokenize(t, ">>")
	if ts.Current().Kind != token.Shr {
		t.Fatalf("expected Shr before split, got %v", ts.Current().Kind)
	}
	if !ts.SplitRightShift() {
		t.Fatalf("expected SplitRightShift to succeed on Shr")
	}
	if ts.Current().Kind != token.Gt {
		t.Fatalf("expected first half to be Gt, got %v", ts.Current().Kind)
	}
	ts.Advance()
	if ts.Current().Kind != token.Gt {
		t.Fatalf("expected second half to be Gt, got %v", ts.Current().Kind)
	}
}

func TestPreserveTriviaFalseDropsTrivia(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("notrivia.lang", []byte("  x  "))
	ts := lexer.Tokenize(fileID, []byte("  x  "), lexer.Options{PreserveTrivia: false}, diag.NopReporter{})
	tok := ts.Current()
	if tok.Leading != nil || tok.Trailing != nil {
		t.Fatalf("expected no trivia retained, got leading=%v trailing=%v", tok.Leading, tok.Trailing)
	}
}
