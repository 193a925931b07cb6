package parser

import (
	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/source"
	"langcore/internal/token"
)

// startsDeclarationHere peeks across zero-or-more modifier tokens and
// reports whether a declaration begins at the cursor (spec §4.5.3): one of
// the declaration keywords, or a type expression immediately followed by
// another identifier (the `TYPE NAME` form). The whole probe is
// speculative; the cursor never advances for real.
func (p *Parser) startsDeclarationHere() bool {
	cp := p.ts.Checkpoint()
	defer p.ts.Restore(cp)

	p.parseModifiers()
	switch p.cur().Kind {
	case token.KwType, token.KwEnum, token.KwFn, token.KwVar, token.KwUsing, token.KwNamespace:
		return true
	case token.Ident:
		before := p.ts.Checkpoint()
		_ = p.parseTypeExpression()
		if p.ts.Checkpoint() == before {
			return false
		}
		return p.check(token.Ident)
	default:
		return false
	}
}

// parseDeclaration dispatches to one of the declaration productions listed
// in spec §4.5.3. Its result is ast.Stmt rather than ast.Decl because
// UsingDirective, while a declaration in the grammar, is not itself a
// semantic declaration node (it introduces no symbol).
func (p *Parser) parseDeclaration() ast.Stmt {
	start := p.here()
	mods := p.parseModifiers()

	switch p.cur().Kind {
	case token.KwType:
		p.advance()
		kind := ast.KindType
		if mods.Has(ast.ModRef) {
			kind = ast.KindRefType
		}
		if mods.Has(ast.ModStatic) {
			kind = ast.KindStaticType
		}
		return p.parseTypeBody(start, mods, kind)
	case token.KwEnum:
		p.advance()
		return p.parseTypeBody(start, mods, ast.KindEnum)
	case token.KwFn:
		return p.parseFunctionDecl(start, mods)
	case token.KwUsing:
		return p.parseUsingDirective(start)
	case token.KwNamespace:
		return p.parseNamespaceDecl(start, mods)
	default:
		return p.parseVariableOrPropertyDecl(start, mods)
	}
}

func (p *Parser) parseModifiers() ast.Modifiers {
	var m ast.Modifiers
	for p.cur().Kind.IsModifier() {
		switch p.advance().Kind {
		case token.KwPublic:
			m |= ast.ModPublic
		case token.KwPrivate:
			m |= ast.ModPrivate
		case token.KwProtected:
			m |= ast.ModProtected
		case token.KwStatic:
			m |= ast.ModStatic
		case token.KwVirtual:
			m |= ast.ModVirtual
		case token.KwOverride:
			m |= ast.ModOverride
		case token.KwAbstract:
			m |= ast.ModAbstract
		case token.KwExtern:
			m |= ast.ModExtern
		case token.KwEnforced:
			m |= ast.ModEnforced
		case token.KwInherit:
			m |= ast.ModInherit
		case token.KwAsync:
			m |= ast.ModAsync
		case token.KwRef:
			m |= ast.ModRef
		}
	}
	return m
}

func (p *Parser) parseTypeBody(start source.Location, mods ast.Modifiers, kind ast.TypeDeclKind) ast.Decl {
	nameTok, _ := p.expect(token.Ident)

	var typeParams []*ast.TypeParameterDecl
	if p.check(token.Lt) {
		typeParams = p.parseTypeParamList()
	}

	var baseTypes []ast.Expr
	if p.consume(token.Colon) {
		for {
			baseTypes = append(baseTypes, p.parseTypeExpression())
			if !p.consume(token.Comma) {
				break
			}
		}
	}

	p.expect(token.LBrace)
	p.pushCtx(CtxTypeBody)
	var members []ast.Decl
	for !p.check(token.RBrace) && !p.ts.AtEnd() {
		before := p.ts.Checkpoint()
		if kind == ast.KindEnum {
			members = append(members, p.parseEnumCase())
		} else {
			members = append(members, p.parseTypeMember())
		}
		if p.ts.Checkpoint() == before {
			p.advance()
		}
	}
	p.popCtx()
	p.expect(token.RBrace)

	return p.tree.NewTypeDecl(ast.TypeDecl{
		DeclBase: ast.NewDeclBase(p.spanFrom(start)), Modifiers: mods, Name: nameTok.Text,
		Kind: kind, TypeParams: typeParams, BaseTypes: baseTypes, Members: members,
	})
}

func (p *Parser) parseTypeParamList() []*ast.TypeParameterDecl {
	p.expect(token.Lt)
	var params []*ast.TypeParameterDecl
	if !p.check(token.Gt) {
		for {
			pstart := p.here()
			tok, ok := p.expect(token.Ident)
			if !ok {
				break
			}
			params = append(params, p.tree.NewTypeParameterDecl(ast.TypeParameterDecl{
				DeclBase: ast.NewDeclBase(p.spanFrom(pstart)), Name: tok.Text,
			}))
			if !p.consume(token.Comma) {
				break
			}
		}
	}
	if p.cur().Kind == token.Shr || p.cur().Kind == token.ShrAssign {
		p.ts.SplitRightShift()
	}
	p.expect(token.Gt)
	return params
}

func (p *Parser) parseTypeMember() ast.Decl {
	start := p.here()
	mods := p.parseModifiers()
	switch {
	case p.check(token.KwNew):
		return p.parseConstructorDecl(start, mods)
	case p.check(token.KwFn):
		return p.parseFunctionDecl(start, mods)
	default:
		return p.parseVariableOrPropertyDecl(start, mods)
	}
}

func (p *Parser) parseVariableOrPropertyDecl(start source.Location, mods ast.Modifiers) ast.Decl {
	var typ ast.Expr
	if !p.consume(token.KwVar) {
		typ = p.parseTypeExpression()
	}
	nameTok, _ := p.expect(token.Ident)
	tid := ast.TypedIdentifier{Base: ast.NewBase(p.spanFrom(start)), Name: nameTok.Text, Type: typ}

	if p.check(token.LBrace) {
		return p.parsePropertyDecl(start, mods, tid)
	}

	var init ast.Expr
	if p.consume(token.Assign) {
		init = p.parseExpression(token.PrecAssignment)
	}
	p.expectSemicolon()
	return p.tree.NewVariableDecl(ast.VariableDecl{
		DeclBase: ast.NewDeclBase(p.spanFrom(start)), Modifiers: mods, Variable: tid, Initializer: init,
	})
}

func (p *Parser) parsePropertyDecl(start source.Location, mods ast.Modifiers, tid ast.TypedIdentifier) ast.Decl {
	p.expect(token.LBrace)
	var getter, setter *ast.PropertyAccessor
	for !p.check(token.RBrace) && !p.ts.AtEnd() {
		before := p.ts.Checkpoint()
		acc := p.parsePropertyAccessor()
		if acc != nil {
			if acc.Kind == ast.AccessorGet {
				getter = p.reportAccessorConflict(getter, acc)
			} else {
				setter = p.reportAccessorConflict(setter, acc)
			}
		}
		if p.ts.Checkpoint() == before {
			p.advance()
		}
	}
	p.expect(token.RBrace)
	return p.tree.NewPropertyDecl(ast.PropertyDecl{
		DeclBase: ast.NewDeclBase(p.spanFrom(start)), Modifiers: mods, Variable: tid, Getter: getter, Setter: setter,
	})
}

func (p *Parser) reportAccessorConflict(existing, next *ast.PropertyAccessor) *ast.PropertyAccessor {
	if existing != nil {
		p.errorf(diag.SynDuplicateAccessor, next.Span(), "duplicate property accessor")
		return existing
	}
	return next
}

func (p *Parser) parsePropertyAccessor() *ast.PropertyAccessor {
	start := p.here()
	mods := p.parseModifiers()

	var kind ast.AccessorKind
	switch {
	case p.check(token.KwGet):
		kind = ast.AccessorGet
	case p.check(token.KwSet):
		kind = ast.AccessorSet
	default:
		p.errorf(diag.SynExpectedToken, p.cur().Span, "expected 'get' or 'set'")
		return nil
	}
	p.advance()

	switch {
	case p.consume(token.Semicolon):
		return p.tree.NewPropertyAccessor(ast.PropertyAccessor{
			Base: ast.NewBase(p.spanFrom(start)), Kind: kind, Modifiers: mods, BodyKind: ast.AccessorAuto,
		})
	case p.consume(token.FatArrow):
		expr := p.parseExpression(token.PrecAssignment)
		p.expectSemicolon()
		return p.tree.NewPropertyAccessor(ast.PropertyAccessor{
			Base: ast.NewBase(p.spanFrom(start)), Kind: kind, Modifiers: mods, BodyKind: ast.AccessorExpression, Expr: expr,
		})
	case p.check(token.LBrace):
		ctxKind := CtxPropertyGetter
		if kind == ast.AccessorSet {
			ctxKind = CtxPropertySetter
		}
		p.pushCtx(ctxKind)
		body := p.parseBlock()
		p.popCtx()
		return p.tree.NewPropertyAccessor(ast.PropertyAccessor{
			Base: ast.NewBase(p.spanFrom(start)), Kind: kind, Modifiers: mods, BodyKind: ast.AccessorBlock, Body: body,
		})
	default:
		p.errorf(diag.SynExpectedToken, p.cur().Span, "expected ';', '=>', or '{' after accessor")
		return p.tree.NewPropertyAccessor(ast.PropertyAccessor{
			Base: ast.NewBase(p.spanFrom(start)), Kind: kind, Modifiers: mods, BodyKind: ast.AccessorAuto,
		})
	}
}

func (p *Parser) parseFunctionDecl(start source.Location, mods ast.Modifiers) ast.Decl {
	p.advance() // 'fn'
	nameTok, _ := p.expect(token.Ident)

	var typeParams []*ast.TypeParameterDecl
	if p.check(token.Lt) {
		typeParams = p.parseTypeParamList()
	}
	params := p.parseParamList()

	var ret ast.Expr
	if p.consume(token.Colon) {
		ret = p.parseTypeExpression()
	}

	var body *ast.Block
	if p.check(token.LBrace) {
		p.pushCtx(CtxFunction)
		body = p.parseBlock()
		p.popCtx()
	} else {
		p.expectSemicolon()
	}

	return p.tree.NewFunctionDecl(ast.FunctionDecl{
		DeclBase: ast.NewDeclBase(p.spanFrom(start)), Modifiers: mods, Name: nameTok.Text,
		TypeParams: typeParams, Params: params, ReturnType: ret, Body: body,
	})
}

func (p *Parser) parseParamList() []*ast.ParameterDecl {
	p.expect(token.LParen)
	var params []*ast.ParameterDecl
	if !p.check(token.RParen) {
		for {
			params = append(params, p.parseParameterDecl())
			if !p.consume(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RParen)
	return params
}

func (p *Parser) parseParameterDecl() *ast.ParameterDecl {
	start := p.here()
	mods := p.parseModifiers()
	typ := p.parseTypeExpression()
	nameTok, _ := p.expect(token.Ident)
	tid := ast.TypedIdentifier{Base: ast.NewBase(p.spanFrom(start)), Name: nameTok.Text, Type: typ}

	var def ast.Expr
	if p.consume(token.Assign) {
		def = p.parseExpression(token.PrecAssignment)
	}
	return p.tree.NewParameterDecl(ast.ParameterDecl{
		DeclBase: ast.NewDeclBase(p.spanFrom(start)), Modifiers: mods, Param: tid, Default: def,
	})
}

func (p *Parser) parseConstructorDecl(start source.Location, mods ast.Modifiers) ast.Decl {
	p.advance() // 'new'
	params := p.parseParamList()
	p.pushCtx(CtxFunction)
	body := p.parseBlock()
	p.popCtx()
	return p.tree.NewConstructorDecl(ast.ConstructorDecl{
		DeclBase: ast.NewDeclBase(p.spanFrom(start)), Modifiers: mods, Params: params, Body: body,
	})
}

func (p *Parser) parseEnumCase() ast.Decl {
	start := p.here()
	mods := p.parseModifiers()
	nameTok, _ := p.expect(token.Ident)

	var assoc []*ast.ParameterDecl
	if p.consume(token.LParen) {
		if !p.check(token.RParen) {
			for {
				assoc = append(assoc, p.parseParameterDecl())
				if !p.consume(token.Comma) {
					break
				}
			}
		}
		p.expect(token.RParen)
	}
	p.consume(token.Comma)

	return p.tree.NewEnumCaseDecl(ast.EnumCaseDecl{
		DeclBase: ast.NewDeclBase(p.spanFrom(start)), Modifiers: mods, Name: nameTok.Text, AssociatedData: assoc,
	})
}

func (p *Parser) parseUsingDirective(start source.Location) ast.Stmt {
	p.advance() // 'using'
	nameTok, _ := p.expect(token.Ident)
	target := nameTok.Text
	for p.check(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		seg := p.advance()
		target += "." + seg.Text
	}

	if p.consume(token.Assign) {
		aliasedType := p.parseTypeExpression()
		p.expectSemicolon()
		return p.tree.NewUsingDirective(ast.UsingDirective{
			StmtBase: ast.NewStmtBase(p.spanFrom(start)), Kind: ast.UsingAlias, Alias: target, AliasedType: aliasedType,
		})
	}
	p.expectSemicolon()
	return p.tree.NewUsingDirective(ast.UsingDirective{
		StmtBase: ast.NewStmtBase(p.spanFrom(start)), Kind: ast.UsingNamespace, Target: target,
	})
}

func (p *Parser) parseNamespaceDecl(start source.Location, mods ast.Modifiers) ast.Decl {
	p.advance() // 'namespace'
	nameTok, _ := p.expect(token.Ident)
	name := nameTok.Text
	for p.check(token.Dot) && p.peekAt(1).Kind == token.Ident {
		p.advance()
		seg := p.advance()
		name += "." + seg.Text
	}

	if p.consume(token.Semicolon) {
		return p.tree.NewNamespaceDecl(ast.NamespaceDecl{
			DeclBase: ast.NewDeclBase(p.spanFrom(start)), Name: name, IsFileScoped: true,
		})
	}

	p.expect(token.LBrace)
	p.pushCtx(CtxNamespace)
	var body []ast.Stmt
	for !p.check(token.RBrace) && !p.ts.AtEnd() {
		before := p.ts.Checkpoint()
		body = append(body, p.parseTopLevel())
		if p.ts.Checkpoint() == before {
			p.advance()
		}
	}
	p.popCtx()
	p.expect(token.RBrace)

	return p.tree.NewNamespaceDecl(ast.NamespaceDecl{
		DeclBase: ast.NewDeclBase(p.spanFrom(start)), Name: name, IsFileScoped: false, Body: body,
	})
}
