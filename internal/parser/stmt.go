package parser

import (
	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/source"
	"langcore/internal/token"
)

// parseStatement dispatches on the current token (spec §4.5.4): `{` opens a
// block, the control-flow keywords dispatch to their own productions, a
// declaration encountered where a statement is legal is parsed as a local
// declaration, and anything else is parsed as an expression statement.
func (p *Parser) parseStatement() ast.Stmt {
	start := p.here()
	switch p.cur().Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIfStmt(start)
	case token.KwWhile:
		return p.parseWhileStmt(start)
	case token.KwFor:
		return p.parseForStmt(start)
	case token.KwReturn:
		return p.parseReturnStmt(start)
	case token.KwBreak:
		return p.parseBreakStmt(start)
	case token.KwContinue:
		return p.parseContinueStmt(start)
	default:
		if p.startsDeclarationHere() {
			return p.parseDeclaration()
		}
		return p.parseExpressionStmt(start)
	}
}

func (p *Parser) parseBlock() *ast.Block {
	start := p.here()
	p.expect(token.LBrace)
	var stmts []ast.Stmt
	for !p.check(token.RBrace) && !p.ts.AtEnd() {
		before := p.ts.Checkpoint()
		stmts = append(stmts, p.parseStatement())
		if p.ts.Checkpoint() == before {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	return p.tree.NewBlock(ast.Block{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Statements: stmts})
}

func (p *Parser) parseIfStmt(start source.Location) ast.Stmt {
	p.advance() // 'if'
	p.expect(token.LParen)
	cond := p.parseExpression(token.PrecAssignment)
	p.expect(token.RParen)
	then := p.parseStatement()
	var els ast.Stmt
	if p.consume(token.KwElse) {
		els = p.parseStatement()
	}
	return p.tree.NewIf(ast.If{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Cond: cond, Then: then, Else: els})
}

func (p *Parser) parseWhileStmt(start source.Location) ast.Stmt {
	p.advance() // 'while'
	p.expect(token.LParen)
	cond := p.parseExpression(token.PrecAssignment)
	p.expect(token.RParen)
	p.pushCtx(CtxLoop)
	body := p.parseStatement()
	p.popCtx()
	return p.tree.NewWhile(ast.While{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Cond: cond, Body: body})
}

func (p *Parser) parseForStmt(start source.Location) ast.Stmt {
	p.advance() // 'for'
	p.expect(token.LParen)

	var init ast.Stmt
	switch {
	case p.check(token.Semicolon):
		p.advance()
	case p.startsDeclarationHere():
		init = p.parseDeclaration()
	default:
		init = p.parseExpressionStmt(p.here())
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.parseExpression(token.PrecAssignment)
	}
	p.expect(token.Semicolon)

	var updates []ast.Expr
	if !p.check(token.RParen) {
		for {
			updates = append(updates, p.parseExpression(token.PrecAssignment))
			if !p.consume(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RParen)

	p.pushCtx(CtxLoop)
	body := p.parseStatement()
	p.popCtx()

	return p.tree.NewFor(ast.For{
		StmtBase: ast.NewStmtBase(p.spanFrom(start)), Init: init, Cond: cond, Updates: updates, Body: body,
	})
}

func (p *Parser) parseReturnStmt(start source.Location) ast.Stmt {
	p.advance() // 'return'
	var val ast.Expr
	if !p.check(token.Semicolon) {
		val = p.parseExpression(token.PrecAssignment)
	}
	p.expectSemicolon()
	if !p.inFunction() {
		p.errorf(diag.SymReturnOutsideFunc, p.spanFrom(start), "'return' outside a function")
	}
	return p.tree.NewReturn(ast.Return{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Value: val})
}

func (p *Parser) parseBreakStmt(start source.Location) ast.Stmt {
	p.advance() // 'break'
	p.expectSemicolon()
	if !p.inLoop() {
		p.errorf(diag.SymBreakOutsideLoop, p.spanFrom(start), "'break' outside a loop")
	}
	return p.tree.NewBreak(ast.Break{StmtBase: ast.NewStmtBase(p.spanFrom(start))})
}

func (p *Parser) parseContinueStmt(start source.Location) ast.Stmt {
	p.advance() // 'continue'
	p.expectSemicolon()
	if !p.inLoop() {
		p.errorf(diag.SymContinueOutsideLoop, p.spanFrom(start), "'continue' outside a loop")
	}
	return p.tree.NewContinue(ast.Continue{StmtBase: ast.NewStmtBase(p.spanFrom(start))})
}

func (p *Parser) parseExpressionStmt(start source.Location) ast.Stmt {
	expr := p.parseExpression(token.PrecAssignment)
	p.expectSemicolon()
	return p.tree.NewExpressionStmt(ast.ExpressionStmt{StmtBase: ast.NewStmtBase(p.spanFrom(start)), Expr: expr})
}

func (p *Parser) expectSemicolon() {
	if !p.consume(token.Semicolon) {
		p.errorf(diag.SynMissingSemicolon, p.cur().Span, "expected ';'")
	}
}
