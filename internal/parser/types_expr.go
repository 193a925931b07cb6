package parser

import (
	"langcore/internal/ast"
	"langcore/internal/source"
	"langcore/internal/token"
)

// parseTypeExpression parses a type in type position: it reuses the
// expression grammar's name/generic machinery with a constrained primary
// set — qualified/generic names, `*T` pointer prefix, `T[size?]` array
// postfix, and `fn(T,...) -> T` function types (spec §4.5.6).
func (p *Parser) parseTypeExpression() ast.Expr {
	start := p.here()

	if p.check(token.Star) {
		p.advance()
		base := p.parseTypeExpression()
		return p.tree.NewPointerType(ast.PointerType{ExprBase: ast.NewExprBase(p.spanFrom(start)), Base: base})
	}
	if p.check(token.KwFn) {
		return p.parseFunctionType(start)
	}
	if p.check(token.KwVoid) {
		p.advance()
		return p.tree.NewIdentifier(ast.Identifier{ExprBase: ast.NewExprBase(p.spanFrom(start)), Text: "void"})
	}

	base := p.parseNameExpr()
	return p.parseTypePostfix(base, start)
}

func (p *Parser) parseTypePostfix(base ast.Expr, start source.Location) ast.Expr {
	for p.check(token.LBracket) {
		p.advance()
		var size ast.Expr
		if !p.check(token.RBracket) {
			size = p.parseExpression(token.PrecAssignment)
		}
		p.expect(token.RBracket)
		base = p.tree.NewArrayType(ast.ArrayType{ExprBase: ast.NewExprBase(p.spanFrom(start)), Elem: base, Size: size})
	}
	return base
}

func (p *Parser) parseFunctionType(start source.Location) ast.Expr {
	p.advance() // 'fn'
	p.expect(token.LParen)
	var params []ast.Expr
	if !p.check(token.RParen) {
		for {
			params = append(params, p.parseTypeExpression())
			if !p.consume(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RParen)
	var ret ast.Expr
	if p.consume(token.Arrow) {
		ret = p.parseTypeExpression()
	}
	return p.tree.NewFunctionType(ast.FunctionType{
		ExprBase: ast.NewExprBase(p.spanFrom(start)), ParamTypes: params, ReturnType: ret,
	})
}
