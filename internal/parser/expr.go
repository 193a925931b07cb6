package parser

import (
	"fmt"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/source"
	"langcore/internal/token"
)

// parseExpression implements the Pratt precedence climber (spec §4.5.5):
// parse a prefix, apply postfix chains, then loop consuming binary
// operators whose precedence is at least minPrec, finally checking for a
// trailing ternary when minPrec admits it.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	left := p.parsePostfix(p.parseUnary())

	for {
		opKind := p.cur().Kind
		prec := opKind.BinaryPrecedence()
		if prec == token.PrecNone || prec < minPrec {
			break
		}
		opTok := p.advance()
		next := prec + 1
		if opKind.Associativity() == token.RightAssoc {
			next = prec
		}
		right := p.parseExpression(next)
		left = p.combineBinary(left, opTok, right)
	}

	if p.cur().Kind == token.Question && minPrec <= token.PrecTernary {
		left = p.parseTernary(left)
	}
	return left
}

func (p *Parser) combineBinary(left ast.Expr, opTok token.Token, right ast.Expr) ast.Expr {
	span := left.Span().Cover(right.Span())
	switch {
	case opTok.Kind.IsAssignmentOp():
		return p.tree.NewAssignment(ast.Assignment{
			ExprBase: ast.NewExprBase(span), Target: left, Op: opTok.Kind, Value: right,
		})
	case opTok.Kind == token.DotDot || opTok.Kind == token.DotDotEq:
		return p.tree.NewRangeExpr(ast.RangeExpr{
			ExprBase: ast.NewExprBase(span), Low: left, High: right, Inclusive: opTok.Kind == token.DotDotEq,
		})
	default:
		return p.tree.NewBinary(ast.Binary{
			ExprBase: ast.NewExprBase(span), Left: left, Op: opTok.Kind, Right: right,
		})
	}
}

func (p *Parser) parseTernary(cond ast.Expr) ast.Expr {
	start := cond.Span().Start
	p.advance() // '?'
	then := p.parseExpression(token.PrecTernary)
	p.expect(token.Colon)
	els := p.parseExpression(token.PrecAssignment)
	return p.tree.NewConditional(ast.Conditional{
		ExprBase: ast.NewExprBase(p.spanFrom(start)), Cond: cond, Then: then, Else: els,
	})
}

// parseUnary handles prefix unary operators (`+ - ! ~ * &`, `++`/`--`),
// recursing so chains like `--x` or `!!b` parse left-to-right naturally.
func (p *Parser) parseUnary() ast.Expr {
	if p.cur().Kind.IsUnaryOp() {
		start := p.here()
		opTok := p.advance()
		operand := p.parseUnary()
		return p.tree.NewUnary(ast.Unary{
			ExprBase: ast.NewExprBase(p.spanFrom(start)), Op: opTok.Kind, Operand: operand,
		})
	}
	return p.parsePrimary()
}

// parsePostfix applies call/indexer/member/postfix-incr-decr chains to an
// already-parsed primary (spec §4.5.5 step 2).
func (p *Parser) parsePostfix(left ast.Expr) ast.Expr {
	for {
		start := left.Span().Start
		switch p.cur().Kind {
		case token.LParen:
			p.advance()
			args := p.parseArgList(token.RParen)
			p.expect(token.RParen)
			left = p.tree.NewCall(ast.Call{ExprBase: ast.NewExprBase(p.spanFrom(start)), Callee: left, Args: args})
		case token.LBracket:
			p.advance()
			idx := p.parseExpression(token.PrecAssignment)
			p.expect(token.RBracket)
			left = p.tree.NewIndexer(ast.Indexer{ExprBase: ast.NewExprBase(p.spanFrom(start)), Object: left, Index: idx})
		case token.Dot:
			p.advance()
			name, _ := p.expectIdentText()
			left = p.tree.NewMemberAccess(ast.MemberAccess{ExprBase: ast.NewExprBase(p.spanFrom(start)), Object: left, Member: name})
		case token.PlusPlus, token.MinusMinus:
			opTok := p.advance()
			left = p.tree.NewUnary(ast.Unary{ExprBase: ast.NewExprBase(p.spanFrom(start)), Op: opTok.Kind, Operand: left, IsPostfix: true})
		default:
			return left
		}
	}
}

// parseArgList parses a comma-separated expression list up to (but not
// consuming) close.
func (p *Parser) parseArgList(close token.Kind) []ast.Expr {
	var args []ast.Expr
	if p.check(close) {
		return args
	}
	for {
		before := p.ts.Checkpoint()
		args = append(args, p.parseExpression(token.PrecAssignment))
		if p.ts.Checkpoint() == before {
			p.advance()
		}
		if !p.consume(token.Comma) {
			break
		}
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.here()
	tok := p.cur()

	switch {
	case tok.Kind.IsLiteral():
		p.advance()
		return p.tree.NewLiteral(ast.Literal{
			ExprBase: ast.NewExprBase(p.spanFrom(start)), Kind: literalKindFor(tok.Kind), RawText: tok.Text,
		})
	case tok.Kind == token.KwTrue || tok.Kind == token.KwFalse:
		p.advance()
		return p.tree.NewLiteral(ast.Literal{
			ExprBase: ast.NewExprBase(p.spanFrom(start)), Kind: ast.LitBool, RawText: tok.Text,
		})
	case tok.Kind == token.KwNull:
		p.advance()
		return p.tree.NewLiteral(ast.Literal{
			ExprBase: ast.NewExprBase(p.spanFrom(start)), Kind: ast.LitNull, RawText: tok.Text,
		})
	case tok.Kind == token.KwThis:
		p.advance()
		return p.tree.NewThis(ast.This{ExprBase: ast.NewExprBase(p.spanFrom(start))})
	case tok.Kind == token.Ident:
		// A bare identifier with no dotted/generic continuation parses as a
		// plain Identifier; anything that might chain goes through the
		// shared name-chain builder also used by type expressions.
		if p.peekAt(1).Kind != token.Dot && p.peekAt(1).Kind != token.Lt {
			p.advance()
			return p.tree.NewIdentifier(ast.Identifier{ExprBase: ast.NewExprBase(p.spanFrom(start)), Text: tok.Text})
		}
		return p.parseNameExpr()
	case tok.Kind == token.LParen:
		return p.parseParenOrLambda()
	case tok.Kind == token.LBracket:
		return p.parseArrayLiteral()
	case tok.Kind == token.KwNew:
		return p.parseNewExpr()
	case tok.Kind == token.KwTypeOf:
		return p.parseTypeOfExpr()
	case tok.Kind == token.KwSizeOf:
		return p.parseSizeOfExpr()
	case tok.Kind == token.Dot:
		p.advance()
		name, _ := p.expectIdentText()
		return p.tree.NewEnumShorthand(ast.EnumShorthand{ExprBase: ast.NewExprBase(p.spanFrom(start)), Case: name})
	default:
		return p.missingExpr(start, "expected expression, found %s", describeToken(tok))
	}
}

// parseNameExpr builds a NameExpr/QualifiedName/GenericName chain out of a
// dotted identifier path, speculatively trying generic argument lists at
// each segment (spec §4.5.6). Used both in value position (for names that
// may chain) and in type position.
func (p *Parser) parseNameExpr() ast.Expr {
	start := p.here()
	tok, ok := p.expect(token.Ident)
	if !ok {
		return p.missingExpr(start, "expected identifier")
	}
	var result ast.Expr = p.tree.NewNameExpr(ast.NameExpr{
		ExprBase: ast.NewExprBase(p.spanFrom(start)), Name: tok.Text,
	})
	result = p.maybeGenericInstantiation(result, start)

	for p.check(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance() // '.'
		seg := p.advance()
		result = p.tree.NewQualifiedName(ast.QualifiedName{
			ExprBase: ast.NewExprBase(p.spanFrom(start)), Left: result, Right: seg.Text,
		})
		result = p.maybeGenericInstantiation(result, start)
	}
	return result
}

// maybeGenericInstantiation speculatively parses a `<Args...>` suffix,
// committing only when the closing `>` is followed by a token that
// disambiguates it from a relational comparison (spec §4.5.6).
func (p *Parser) maybeGenericInstantiation(base ast.Expr, start source.Location) ast.Expr {
	if !p.check(token.Lt) {
		return base
	}
	cp := p.ts.Checkpoint()
	p.advance() // '<'

	var args []ast.Expr
	for !p.check(token.Gt) && p.cur().Kind != token.Shr && p.cur().Kind != token.ShrAssign {
		before := p.ts.Checkpoint()
		args = append(args, p.parseTypeExpression())
		if p.ts.Checkpoint() == before {
			p.ts.Restore(cp)
			return base
		}
		if !p.consume(token.Comma) {
			break
		}
	}
	if p.cur().Kind == token.Shr || p.cur().Kind == token.ShrAssign {
		p.ts.SplitRightShift()
	}
	if len(args) == 0 || !p.check(token.Gt) {
		p.ts.Restore(cp)
		return base
	}
	p.advance() // closing '>'
	if !genericCloseDisambiguates(p.cur().Kind) {
		p.ts.Restore(cp)
		return base
	}
	return p.tree.NewGenericName(ast.GenericName{
		ExprBase: ast.NewExprBase(p.spanFrom(start)), BaseExpr: base, TypeArgs: args,
	})
}

func genericCloseDisambiguates(k token.Kind) bool {
	switch k {
	case token.LParen, token.Dot, token.ColonColon, token.Comma, token.RParen,
		token.RBracket, token.Semicolon, token.LBrace, token.Question, token.Gt, token.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseParenOrLambda() ast.Expr {
	start := p.here()
	cp := p.ts.Checkpoint()

	params, ok := p.tryParseLambdaParams()
	if ok && p.check(token.FatArrow) {
		p.advance()
		var body ast.Node
		if p.check(token.LBrace) {
			body = p.parseBlock()
		} else {
			body = p.parseExpression(token.PrecAssignment)
		}
		return p.tree.NewLambda(ast.Lambda{
			ExprBase: ast.NewExprBase(p.spanFrom(start)), Params: params, Body: body,
		})
	}

	p.ts.Restore(cp)
	p.expect(token.LParen)
	inner := p.parseExpression(token.PrecAssignment)
	p.expect(token.RParen)
	return p.tree.NewParenthesized(ast.Parenthesized{ExprBase: ast.NewExprBase(p.spanFrom(start)), Inner: inner})
}

func (p *Parser) tryParseLambdaParams() ([]ast.LambdaParam, bool) {
	if !p.check(token.LParen) {
		return nil, false
	}
	p.advance()
	var params []ast.LambdaParam
	if !p.check(token.RParen) {
		for {
			nameTok, ok := p.expect(token.Ident)
			if !ok {
				return nil, false
			}
			var typ ast.Expr
			if p.consume(token.Colon) {
				typ = p.parseTypeExpression()
			}
			params = append(params, ast.LambdaParam{Name: nameTok.Text, Type: typ})
			if !p.consume(token.Comma) {
				break
			}
		}
	}
	if !p.check(token.RParen) {
		return nil, false
	}
	p.advance()
	return params, true
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.here()
	p.expect(token.LBracket)
	elems := p.parseArgList(token.RBracket)
	p.expect(token.RBracket)
	return p.tree.NewArrayLiteral(ast.ArrayLiteral{ExprBase: ast.NewExprBase(p.spanFrom(start)), Elements: elems})
}

func (p *Parser) parseNewExpr() ast.Expr {
	start := p.here()
	p.advance() // 'new'
	typ := p.parseTypeExpression()
	var args []ast.Expr
	if p.consume(token.LParen) {
		args = p.parseArgList(token.RParen)
		p.expect(token.RParen)
	}
	return p.tree.NewNew(ast.New{ExprBase: ast.NewExprBase(p.spanFrom(start)), Type: typ, Args: args})
}

func (p *Parser) parseTypeOfExpr() ast.Expr {
	start := p.here()
	p.advance() // 'typeof'
	p.expect(token.LParen)
	t := p.parseTypeExpression()
	p.expect(token.RParen)
	return p.tree.NewTypeOf(ast.TypeOf{ExprBase: ast.NewExprBase(p.spanFrom(start)), Type: t})
}

func (p *Parser) parseSizeOfExpr() ast.Expr {
	start := p.here()
	p.advance() // 'sizeof'
	p.expect(token.LParen)
	t := p.parseTypeExpression()
	p.expect(token.RParen)
	return p.tree.NewSizeOf(ast.SizeOf{ExprBase: ast.NewExprBase(p.spanFrom(start)), Type: t})
}

func (p *Parser) expectIdentText() (string, bool) {
	tok, ok := p.expect(token.Ident)
	return tok.Text, ok
}

// missingExpr records a diagnostic and synthesizes a MissingExpr in its
// place (spec §4.5.7). It advances past the offending token unless doing
// so would swallow a delimiter some enclosing construct still needs to see.
func (p *Parser) missingExpr(start source.Location, format string, args ...any) ast.Expr {
	tok := p.cur()
	msg := fmt.Sprintf(format, args...)
	p.errorf(diag.SynExpectedExpression, tok.Span, "%s", msg)
	if !isRecoveryBoundary(tok.Kind) {
		p.advance()
	}
	return p.tree.NewMissingExpr(ast.MissingExpr{ExprBase: ast.NewExprBase(p.spanFrom(start)), Message: msg})
}

func isRecoveryBoundary(k token.Kind) bool {
	switch k {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon,
		token.Colon, token.Gt, token.EOF:
		return true
	default:
		return false
	}
}

func literalKindFor(k token.Kind) ast.LiteralKind {
	switch k {
	case token.IntLit:
		return ast.LitInt
	case token.LongLit:
		return ast.LitLong
	case token.FloatLit:
		return ast.LitFloat
	case token.DoubleLit:
		return ast.LitDouble
	case token.StringLit:
		return ast.LitString
	case token.CharLit:
		return ast.LitChar
	default:
		return ast.LitInt
	}
}
