package printer

import (
	"fmt"
	"io"
	"strings"

	"langcore/internal/ast"
	"langcore/internal/token"
)

// AstToCodePrinter re-emits a parsed tree as source text (spec §4.10,
// grounded on the original's ast_code_printer.hpp). It reproduces every
// syntactic construct — modifiers in canonical order, operators via
// token.ToString, property-accessor auto/expression/block syntax — so that
// re-parsing its output yields a structurally identical tree (spec §8.1's
// round-trip invariant). The tree itself retains no trivia (comments live
// only on the token stream, never attached to AST nodes), so comments are
// not replayed; only structure and literal text survive the round trip.
type AstToCodePrinter struct {
	w      io.Writer
	indent int
}

// NewAstToCodePrinter returns a code printer writing to w.
func NewAstToCodePrinter(w io.Writer) *AstToCodePrinter {
	return &AstToCodePrinter{w: w}
}

// Print writes unit back out as source text.
func (p *AstToCodePrinter) Print(unit *ast.CompilationUnit) {
	p.stmts(unit.TopLevelStatements)
}

func (p *AstToCodePrinter) tab() string { return strings.Repeat("    ", p.indent) }

func (p *AstToCodePrinter) emit(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *AstToCodePrinter) emitLine(format string, args ...any) {
	p.emit("%s", p.tab())
	p.emit(format, args...)
	p.emit("\n")
}

func (p *AstToCodePrinter) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		p.stmt(s)
	}
}

func modPrefix(m ast.Modifiers) string {
	s := m.String()
	if s == "" {
		return ""
	}
	return s + " "
}

func (p *AstToCodePrinter) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.NamespaceDecl:
		if n.IsFileScoped {
			p.emitLine("namespace %s;", n.Name)
			return
		}
		p.emitLine("namespace %s {", n.Name)
		p.indent++
		p.stmts(n.Body)
		p.indent--
		p.emitLine("}")
	case *ast.TypeDecl:
		p.typeDecl(n)
	case *ast.FunctionDecl:
		p.functionDecl(n)
	case *ast.ConstructorDecl:
		p.emitLine("%snew(%s) {", modPrefix(n.Modifiers), paramListText(n.Params))
		p.indent++
		p.stmts(n.Body.Statements)
		p.indent--
		p.emitLine("}")
	case *ast.VariableDecl:
		p.variableDecl(n)
	case *ast.PropertyDecl:
		p.propertyDecl(n)
	case *ast.EnumCaseDecl:
		p.enumCaseDecl(n)
	case *ast.UsingDirective:
		if n.Kind == ast.UsingAlias {
			p.emitLine("using %s = %s;", n.Alias, p.exprText(n.AliasedType))
		} else {
			p.emitLine("using %s;", n.Target)
		}
	case *ast.Block:
		p.emitLine("{")
		p.indent++
		p.stmts(n.Statements)
		p.indent--
		p.emitLine("}")
	case *ast.If:
		p.emitLine("if (%s)", p.exprText(n.Cond))
		p.stmtAsBody(n.Then)
		if n.Else != nil {
			p.emitLine("else")
			p.stmtAsBody(n.Else)
		}
	case *ast.While:
		p.emitLine("while (%s)", p.exprText(n.Cond))
		p.stmtAsBody(n.Body)
	case *ast.For:
		p.emitLine("for (%s; %s; %s)", p.forInitText(n.Init), p.optExprText(n.Cond), p.exprListText(n.Updates))
		p.stmtAsBody(n.Body)
	case *ast.Return:
		if n.Value != nil {
			p.emitLine("return %s;", p.exprText(n.Value))
		} else {
			p.emitLine("return;")
		}
	case *ast.Break:
		p.emitLine("break;")
	case *ast.Continue:
		p.emitLine("continue;")
	case *ast.ExpressionStmt:
		p.emitLine("%s;", p.exprText(n.Expr))
	case *ast.MissingStmt:
		p.emitLine("/* missing: %s */", n.Message)
	}
}

// stmtAsBody prints s as the body of an if/while/for arm: a Block prints
// braced in place, anything else gets its own indented line (the grammar
// allows a bare statement as a control-flow body).
func (p *AstToCodePrinter) stmtAsBody(s ast.Stmt) {
	if blk, ok := s.(*ast.Block); ok {
		p.stmt(blk)
		return
	}
	p.indent++
	p.stmt(s)
	p.indent--
}

func (p *AstToCodePrinter) forInitText(s ast.Stmt) string {
	switch n := s.(type) {
	case nil:
		return ""
	case *ast.VariableDecl:
		return strings.TrimSuffix(p.variableDeclText(n), ";")
	case *ast.ExpressionStmt:
		return p.exprText(n.Expr)
	default:
		return ""
	}
}

func (p *AstToCodePrinter) optExprText(e ast.Expr) string {
	if e == nil {
		return ""
	}
	return p.exprText(e)
}

func (p *AstToCodePrinter) exprListText(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = p.exprText(e)
	}
	return strings.Join(parts, ", ")
}

func typedIdentText(t ast.TypedIdentifier) string {
	if t.Type == nil {
		return "var " + t.Name
	}
	return exprTextStatic(t.Type) + " " + t.Name
}

func paramListText(params []*ast.ParameterDecl) string {
	parts := make([]string, len(params))
	for i, pr := range params {
		s := modPrefix(pr.Modifiers) + typedIdentText(pr.Param)
		if pr.Default != nil {
			s += " = " + exprTextStatic(pr.Default)
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

func (p *AstToCodePrinter) variableDeclText(n *ast.VariableDecl) string {
	s := modPrefix(n.Modifiers) + typedIdentText(n.Variable)
	if n.Initializer != nil {
		s += " = " + p.exprText(n.Initializer)
	}
	return s + ";"
}

func (p *AstToCodePrinter) variableDecl(n *ast.VariableDecl) {
	p.emitLine("%s", p.variableDeclText(n))
}

func (p *AstToCodePrinter) typeDecl(n *ast.TypeDecl) {
	kw := "type"
	if n.Kind == ast.KindEnum {
		kw = "enum"
	}
	header := fmt.Sprintf("%s%s %s", modPrefix(n.Modifiers), kw, n.Name)
	if len(n.TypeParams) > 0 {
		names := make([]string, len(n.TypeParams))
		for i, tp := range n.TypeParams {
			names[i] = tp.Name
		}
		header += "<" + strings.Join(names, ", ") + ">"
	}
	if len(n.BaseTypes) > 0 {
		parts := make([]string, len(n.BaseTypes))
		for i, b := range n.BaseTypes {
			parts[i] = p.exprText(b)
		}
		header += " : " + strings.Join(parts, ", ")
	}
	p.emitLine("%s {", header)
	p.indent++
	p.stmts(declsToStmts(n.Members))
	p.indent--
	p.emitLine("}")
}

func declsToStmts(decls []ast.Decl) []ast.Stmt {
	out := make([]ast.Stmt, len(decls))
	for i, d := range decls {
		out[i] = d.(ast.Stmt)
	}
	return out
}

func (p *AstToCodePrinter) functionDecl(n *ast.FunctionDecl) {
	header := fmt.Sprintf("%sfn %s", modPrefix(n.Modifiers), n.Name)
	if len(n.TypeParams) > 0 {
		names := make([]string, len(n.TypeParams))
		for i, tp := range n.TypeParams {
			names[i] = tp.Name
		}
		header += "<" + strings.Join(names, ", ") + ">"
	}
	header += "(" + paramListText(n.Params) + ")"
	if n.ReturnType != nil {
		header += ": " + p.exprText(n.ReturnType)
	}
	if n.Body == nil {
		p.emitLine("%s;", header)
		return
	}
	p.emitLine("%s {", header)
	p.indent++
	p.stmts(n.Body.Statements)
	p.indent--
	p.emitLine("}")
}

func (p *AstToCodePrinter) propertyDecl(n *ast.PropertyDecl) {
	p.emitLine("%s%s {", modPrefix(n.Modifiers), typedIdentText(n.Variable))
	p.indent++
	if n.Getter != nil {
		p.accessor("get", n.Getter)
	}
	if n.Setter != nil {
		p.accessor("set", n.Setter)
	}
	p.indent--
	p.emitLine("}")
}

func (p *AstToCodePrinter) accessor(label string, a *ast.PropertyAccessor) {
	prefix := modPrefix(a.Modifiers) + label
	switch a.BodyKind {
	case ast.AccessorAuto:
		p.emitLine("%s;", prefix)
	case ast.AccessorExpression:
		p.emitLine("%s => %s;", prefix, p.exprText(a.Expr))
	case ast.AccessorBlock:
		p.emitLine("%s {", prefix)
		p.indent++
		if a.Body != nil {
			p.stmts(a.Body.Statements)
		}
		p.indent--
		p.emitLine("}")
	}
}

func (p *AstToCodePrinter) enumCaseDecl(n *ast.EnumCaseDecl) {
	if len(n.AssociatedData) == 0 {
		p.emitLine("%s%s,", modPrefix(n.Modifiers), n.Name)
		return
	}
	p.emitLine("%s%s(%s),", modPrefix(n.Modifiers), n.Name, paramListText(n.AssociatedData))
}

// exprText renders e via the shared stateless renderer; kept as a method so
// call sites read uniformly even though rendering an expression needs no
// indentation state.
func (p *AstToCodePrinter) exprText(e ast.Expr) string { return exprTextStatic(e) }

func exprTextStatic(e ast.Expr) string {
	if e == nil {
		return ""
	}
	switch n := e.(type) {
	case *ast.Literal:
		return n.RawText
	case *ast.ArrayLiteral:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = exprTextStatic(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.Identifier:
		return n.Text
	case *ast.NameExpr:
		return n.Name
	case *ast.QualifiedName:
		return exprTextStatic(n.Left) + "." + n.Right
	case *ast.GenericName:
		return exprTextStatic(n.BaseExpr) + "<" + exprListStatic(n.TypeArgs) + ">"
	case *ast.This:
		return "this"
	case *ast.Parenthesized:
		return "(" + exprTextStatic(n.Inner) + ")"
	case *ast.Unary:
		sym := token.ToString(n.Op)
		if n.IsPostfix {
			return exprTextStatic(n.Operand) + sym
		}
		return sym + exprTextStatic(n.Operand)
	case *ast.Binary:
		return exprTextStatic(n.Left) + " " + token.ToString(n.Op) + " " + exprTextStatic(n.Right)
	case *ast.Assignment:
		return exprTextStatic(n.Target) + " " + token.ToString(n.Op) + " " + exprTextStatic(n.Value)
	case *ast.Conditional:
		return exprTextStatic(n.Cond) + " ? " + exprTextStatic(n.Then) + " : " + exprTextStatic(n.Else)
	case *ast.MemberAccess:
		return exprTextStatic(n.Object) + "." + n.Member
	case *ast.Indexer:
		return exprTextStatic(n.Object) + "[" + exprTextStatic(n.Index) + "]"
	case *ast.Call:
		return exprTextStatic(n.Callee) + "(" + exprListStatic(n.Args) + ")"
	case *ast.New:
		s := "new " + exprTextStatic(n.Type)
		if n.Args != nil {
			s += "(" + exprListStatic(n.Args) + ")"
		}
		return s
	case *ast.Cast:
		return "(" + exprTextStatic(n.TargetType) + ")" + exprTextStatic(n.Value)
	case *ast.Lambda:
		params := make([]string, len(n.Params))
		for i, pr := range n.Params {
			if pr.Type != nil {
				params[i] = pr.Name + ": " + exprTextStatic(pr.Type)
			} else {
				params[i] = pr.Name
			}
		}
		body := ""
		switch b := n.Body.(type) {
		case ast.Expr:
			body = exprTextStatic(b)
		case *ast.Block:
			var sb strings.Builder
			(&AstToCodePrinter{w: &sb}).stmt(b)
			body = strings.TrimRight(sb.String(), "\n")
		}
		return "(" + strings.Join(params, ", ") + ") => " + body
	case *ast.TypeOf:
		return "typeof(" + exprTextStatic(n.Type) + ")"
	case *ast.SizeOf:
		return "sizeof(" + exprTextStatic(n.Type) + ")"
	case *ast.ArrayType:
		if n.Size != nil {
			return exprTextStatic(n.Elem) + "[" + exprTextStatic(n.Size) + "]"
		}
		return exprTextStatic(n.Elem) + "[]"
	case *ast.PointerType:
		return "*" + exprTextStatic(n.Base)
	case *ast.FunctionType:
		s := "fn(" + exprListStatic(n.ParamTypes) + ")"
		if n.ReturnType != nil {
			s += " -> " + exprTextStatic(n.ReturnType)
		}
		return s
	case *ast.GenericType:
		return exprTextStatic(n.Base) + "<" + exprListStatic(n.Args) + ">"
	case *ast.RangeExpr:
		op := ".."
		if n.Inclusive {
			op = "..="
		}
		return exprTextStatic(n.Low) + op + exprTextStatic(n.High)
	case *ast.EnumShorthand:
		return "." + n.Case
	case *ast.MissingExpr:
		return "/* missing */"
	default:
		return fmt.Sprintf("/* ?expr %T */", e)
	}
}

func exprListStatic(exprs []ast.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = exprTextStatic(e)
	}
	return strings.Join(parts, ", ")
}
