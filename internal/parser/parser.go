// Package parser turns a lexer.TokenStream into a typed ast.CompilationUnit
// via a recursive-descent driver for declarations/statements interleaved
// with a Pratt precedence climber for expressions (spec §4.5). The parser
// never panics or throws to its caller: on a parse error it records a
// ParseError, synthesizes a Missing* placeholder, synchronizes to a safe
// harbor, and keeps going, so one malformed construct never aborts an
// entire file's parse (spec §4.5.7, §7).
package parser

import (
	"fmt"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/lexer"
	"langcore/internal/source"
	"langcore/internal/token"
)

// Severity mirrors spec §4.5's ParseError levels. It is a local type (not
// diag.Severity) because a Fatal parse error also tells the driver the
// rest of this file's parse was abandoned, which diag.Severity doesn't
// model.
type Severity uint8

const (
	SevWarning Severity = iota
	SevError
	SevFatal
)

// ParseError is one diagnostic produced during parsing.
type ParseError struct {
	Level   Severity
	Message string
	Range   source.Range
}

// Context is pushed/popped around matching constructs (spec §4.5.2),
// driving break/continue/return/this validation queries.
type Context uint8

const (
	CtxTopLevel Context = iota
	CtxTypeBody
	CtxNamespace
	CtxFunction
	CtxLoop
	CtxPropertyGetter
	CtxPropertySetter
)

// Parser drives ast.Tree construction from a lexer.TokenStream.
type Parser struct {
	ts       *lexer.TokenStream
	tree     *ast.Tree
	file     source.FileID
	reporter diag.Reporter
	errors   []ParseError
	ctxStack []Context
	prevEnd  source.Location
}

// New creates a Parser over an already-tokenized stream, allocating nodes
// from tree.
func New(ts *lexer.TokenStream, tree *ast.Tree, file source.FileID, reporter diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Parser{ts: ts, tree: tree, file: file, reporter: reporter, ctxStack: []Context{CtxTopLevel}}
}

// Parse runs the parser to completion, returning the resulting
// CompilationUnit and every ParseError recorded along the way (spec
// §6.3). The returned unit is always well-formed, possibly containing
// MissingExpr/MissingStmt placeholders.
func Parse(ts *lexer.TokenStream, tree *ast.Tree, file source.FileID, reporter diag.Reporter) (*ast.CompilationUnit, []ParseError) {
	p := New(ts, tree, file, reporter)
	return p.parseUnit(), p.errors
}

func (p *Parser) parseUnit() *ast.CompilationUnit {
	start := p.here()
	var stmts []ast.Stmt
	for !p.ts.AtEnd() {
		before := p.ts.Checkpoint()
		stmts = append(stmts, p.parseTopLevel())
		if p.ts.Checkpoint() == before {
			// Safety valve: guarantee forward progress even if a
			// production somehow consumed nothing.
			p.advance()
		}
	}
	return p.tree.NewCompilationUnit(ast.CompilationUnit{
		Base:               ast.NewBase(p.spanFrom(start)),
		TopLevelStatements: stmts,
	})
}

func (p *Parser) parseTopLevel() ast.Stmt {
	if p.startsDeclarationHere() {
		return p.parseDeclaration()
	}
	return p.parseStatement()
}

// --- context stack -------------------------------------------------------

func (p *Parser) pushCtx(c Context) { p.ctxStack = append(p.ctxStack, c) }
func (p *Parser) popCtx() {
	if len(p.ctxStack) > 1 {
		p.ctxStack = p.ctxStack[:len(p.ctxStack)-1]
	}
}

func (p *Parser) inContext(c Context) bool {
	for _, x := range p.ctxStack {
		if x == c {
			return true
		}
	}
	return false
}

func (p *Parser) inLoop() bool     { return p.topCtx() == CtxLoop }
func (p *Parser) inFunction() bool { return p.inContext(CtxFunction) }
func (p *Parser) inTypeBody() bool { return p.topCtx() == CtxTypeBody || p.inContext(CtxTypeBody) }

func (p *Parser) topCtx() Context { return p.ctxStack[len(p.ctxStack)-1] }

// --- token helpers --------------------------------------------------------

func (p *Parser) cur() token.Token         { return p.ts.Current() }
func (p *Parser) peekAt(k int) token.Token { return p.ts.Peek(k) }
func (p *Parser) here() source.Location    { return p.cur().Span.Start }

// spanFrom builds the Range from start up to the end of the most recently
// consumed token, for wrapping a just-finished production's node.
func (p *Parser) spanFrom(start source.Location) source.Range {
	end := p.prevEnd
	if end.Offset < start.Offset {
		end = start
	}
	return source.Range{Start: start, Width: end.Offset - start.Offset}
}

func (p *Parser) advance() token.Token {
	t := p.ts.Advance()
	p.prevEnd = t.Span.End()
	return t
}

func (p *Parser) check(k token.Kind) bool { return p.ts.Check(k) }

func (p *Parser) consume(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of kind k, or records SynExpectedToken and
// returns a zero Token otherwise. Callers that need to keep parsing use
// the bool to decide whether to salvage a Missing* node.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	tok := p.cur()
	p.errorf(diag.SynExpectedToken, tok.Span, "expected %s, found %s", token.ToString(k), describeToken(tok))
	return tok, false
}

func describeToken(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", t.String())
}

func (p *Parser) errorf(code diag.Code, span source.Range, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, ParseError{Level: SevError, Message: msg, Range: span})
	diag.Errorf(p.reporter, code, span, "%s", msg)
}

// synchronize advances to the next safe-harbor token (spec §4.5.7): a
// top-level declaration keyword, a block boundary, a statement separator,
// or a major statement keyword. It stops AT (not past) a closing
// delimiter so an enclosing construct can still close cleanly.
func (p *Parser) synchronize() {
	for !p.ts.AtEnd() {
		switch p.cur().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace, token.RParen, token.RBracket:
			return
		case token.LBrace:
			return
		case token.KwFn, token.KwType, token.KwEnum, token.KwUsing, token.KwNamespace,
			token.KwIf, token.KwWhile, token.KwFor, token.KwReturn, token.KwVar:
			return
		default:
			p.advance()
		}
	}
}
