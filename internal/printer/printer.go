// Package printer renders a parsed syntax tree back out, in two distinct
// shapes (spec §4.10): AstPrinter emits a bracketed debug tree annotated
// with resolved types, for tests and `--print-ast`; AstToCodePrinter (in
// code_printer.go) re-emits source text: structure and literal text are
// reproduced, comments and the original whitespace are not.
package printer

import (
	"fmt"
	"io"
	"strings"

	"langcore/internal/ast"
)

// Options controls AstPrinter's output.
type Options struct {
	ShowTypes   bool // print each expression's resolved type in parens
	ShowSymbols bool // print each expression's resolved symbol ID
	Indent      string
}

// DefaultOptions prints resolved types but not symbol IDs, with two-space
// indentation.
func DefaultOptions() Options {
	return Options{ShowTypes: true, Indent: "  "}
}

// AstPrinter writes a bracketed, indented tree of a compilation unit to w.
// Each node is printed as `Kind(name)` or `Kind(value)` (e.g. `Function(add)`,
// `Literal(1)`), children nested below.
// Intended for golden tests and debugging, not for round-tripping source.
type AstPrinter struct {
	w    io.Writer
	opts Options
}

// NewAstPrinter returns a printer writing to w.
func NewAstPrinter(w io.Writer, opts Options) *AstPrinter {
	return &AstPrinter{w: w, opts: opts}
}

// Print writes unit's tree to the printer's writer.
func (p *AstPrinter) Print(unit *ast.CompilationUnit) {
	p.printStmts(unit.TopLevelStatements, 0)
}

func (p *AstPrinter) line(depth int, format string, args ...any) {
	fmt.Fprint(p.w, strings.Repeat(p.opts.Indent, depth))
	fmt.Fprintf(p.w, format, args...)
	fmt.Fprintln(p.w)
}

func (p *AstPrinter) printStmts(stmts []ast.Stmt, depth int) {
	for _, s := range stmts {
		p.printStmt(s, depth)
	}
}

func (p *AstPrinter) annot(e ast.Expr) string {
	if !p.opts.ShowTypes && !p.opts.ShowSymbols {
		return ""
	}
	ann := e.Annotation()
	var parts []string
	if p.opts.ShowTypes && ann.ResolvedType != nil {
		parts = append(parts, ann.ResolvedType.String())
	}
	if p.opts.ShowSymbols && ann.ResolvedSymbol != 0 {
		parts = append(parts, fmt.Sprintf("sym=%d", ann.ResolvedSymbol))
	}
	if len(parts) == 0 {
		return ""
	}
	return " :: " + strings.Join(parts, ", ")
}

func (p *AstPrinter) printStmt(s ast.Stmt, depth int) {
	switch n := s.(type) {
	case *ast.NamespaceDecl:
		p.line(depth, "Namespace(%s)", n.Name)
		p.printStmts(n.Body, depth+1)
	case *ast.TypeDecl:
		p.line(depth, "Type(%s %s%s)", typeDeclKindName(n.Kind), n.Name, modSuffix(n.Modifiers))
		for _, m := range n.Members {
			p.printStmt(m, depth+1)
		}
	case *ast.FunctionDecl:
		p.line(depth, "Function(%s%s)", n.Name, modSuffix(n.Modifiers))
		for _, param := range n.Params {
			p.printStmt(param, depth+1)
		}
		if n.Body != nil {
			p.printStmt(n.Body, depth+1)
		}
	case *ast.ConstructorDecl:
		p.line(depth, "Constructor%s", modSuffix(n.Modifiers))
		for _, param := range n.Params {
			p.printStmt(param, depth+1)
		}
		if n.Body != nil {
			p.printStmt(n.Body, depth+1)
		}
	case *ast.ParameterDecl:
		p.line(depth, "Param(%s)", n.Param.Name)
	case *ast.VariableDecl:
		p.line(depth, "Var(%s%s)", n.Variable.Name, modSuffix(n.Modifiers))
		if n.Initializer != nil {
			p.printExpr(n.Initializer, depth+1)
		}
	case *ast.PropertyDecl:
		p.line(depth, "Property(%s%s)", n.Variable.Name, modSuffix(n.Modifiers))
		if n.Getter != nil {
			p.printAccessor("get", n.Getter, depth+1)
		}
		if n.Setter != nil {
			p.printAccessor("set", n.Setter, depth+1)
		}
	case *ast.EnumCaseDecl:
		p.line(depth, "EnumCase(%s)", n.Name)
	case *ast.UsingDirective:
		if n.Kind == ast.UsingAlias {
			p.line(depth, "Using(%s = alias)", n.Alias)
		} else {
			p.line(depth, "Using(%s)", n.Target)
		}
	case *ast.Block:
		p.line(depth, "Block")
		p.printStmts(n.Statements, depth+1)
	case *ast.If:
		p.line(depth, "If")
		p.printExpr(n.Cond, depth+1)
		p.printStmt(n.Then, depth+1)
		if n.Else != nil {
			p.printStmt(n.Else, depth+1)
		}
	case *ast.While:
		p.line(depth, "While")
		p.printExpr(n.Cond, depth+1)
		p.printStmt(n.Body, depth+1)
	case *ast.For:
		p.line(depth, "For")
		if n.Init != nil {
			p.printStmt(n.Init, depth+1)
		}
		if n.Cond != nil {
			p.printExpr(n.Cond, depth+1)
		}
		for _, u := range n.Updates {
			p.printExpr(u, depth+1)
		}
		p.printStmt(n.Body, depth+1)
	case *ast.Return:
		p.line(depth, "Return")
		if n.Value != nil {
			p.printExpr(n.Value, depth+1)
		}
	case *ast.Break:
		p.line(depth, "Break")
	case *ast.Continue:
		p.line(depth, "Continue")
	case *ast.ExpressionStmt:
		p.printExpr(n.Expr, depth)
	case *ast.MissingStmt:
		p.line(depth, "MissingStmt(%q)", n.Message)
	default:
		p.line(depth, "?Stmt(%T)", s)
	}
}

func (p *AstPrinter) printAccessor(label string, a *ast.PropertyAccessor, depth int) {
	p.line(depth, "%s", label)
	switch a.BodyKind {
	case ast.AccessorExpression:
		p.printExpr(a.Expr, depth+1)
	case ast.AccessorBlock:
		if a.Body != nil {
			p.printStmt(a.Body, depth+1)
		}
	}
}

func (p *AstPrinter) printExpr(e ast.Expr, depth int) {
	if e == nil {
		return
	}
	switch n := e.(type) {
	case *ast.Literal:
		p.line(depth, "Literal(%s)%s", n.RawText, p.annot(e))
	case *ast.ArrayLiteral:
		p.line(depth, "ArrayLiteral%s", p.annot(e))
		for _, el := range n.Elements {
			p.printExpr(el, depth+1)
		}
	case *ast.Identifier:
		p.line(depth, "Ident(%s)%s", n.Text, p.annot(e))
	case *ast.NameExpr:
		p.line(depth, "Name(%s)%s", n.Name, p.annot(e))
	case *ast.QualifiedName:
		p.line(depth, "Qualified(.%s)%s", n.Right, p.annot(e))
		p.printExpr(n.Left, depth+1)
	case *ast.GenericName:
		p.line(depth, "GenericName%s", p.annot(e))
		p.printExpr(n.BaseExpr, depth+1)
		for _, a := range n.TypeArgs {
			p.printExpr(a, depth+1)
		}
	case *ast.This:
		p.line(depth, "This%s", p.annot(e))
	case *ast.Parenthesized:
		p.line(depth, "Paren%s", p.annot(e))
		p.printExpr(n.Inner, depth+1)
	case *ast.Unary:
		p.line(depth, "Unary(%s postfix=%v)%s", n.Op, n.IsPostfix, p.annot(e))
		p.printExpr(n.Operand, depth+1)
	case *ast.Binary:
		p.line(depth, "Binary(%s)%s", n.Op, p.annot(e))
		p.printExpr(n.Left, depth+1)
		p.printExpr(n.Right, depth+1)
	case *ast.Assignment:
		p.line(depth, "Assign(%s)%s", n.Op, p.annot(e))
		p.printExpr(n.Target, depth+1)
		p.printExpr(n.Value, depth+1)
	case *ast.Conditional:
		p.line(depth, "Conditional%s", p.annot(e))
		p.printExpr(n.Cond, depth+1)
		p.printExpr(n.Then, depth+1)
		p.printExpr(n.Else, depth+1)
	case *ast.MemberAccess:
		p.line(depth, "Member(.%s)%s", n.Member, p.annot(e))
		p.printExpr(n.Object, depth+1)
	case *ast.Indexer:
		p.line(depth, "Index%s", p.annot(e))
		p.printExpr(n.Object, depth+1)
		p.printExpr(n.Index, depth+1)
	case *ast.Call:
		p.line(depth, "Call%s", p.annot(e))
		p.printExpr(n.Callee, depth+1)
		for _, a := range n.Args {
			p.printExpr(a, depth+1)
		}
	case *ast.New:
		p.line(depth, "New%s", p.annot(e))
		p.printExpr(n.Type, depth+1)
		for _, a := range n.Args {
			p.printExpr(a, depth+1)
		}
	case *ast.Cast:
		p.line(depth, "Cast%s", p.annot(e))
		p.printExpr(n.TargetType, depth+1)
		p.printExpr(n.Value, depth+1)
	case *ast.Lambda:
		p.line(depth, "Lambda%s", p.annot(e))
		switch b := n.Body.(type) {
		case ast.Expr:
			p.printExpr(b, depth+1)
		case *ast.Block:
			p.printStmt(b, depth+1)
		}
	case *ast.TypeOf:
		p.line(depth, "TypeOf%s", p.annot(e))
		p.printExpr(n.Type, depth+1)
	case *ast.SizeOf:
		p.line(depth, "SizeOf%s", p.annot(e))
		p.printExpr(n.Type, depth+1)
	case *ast.ArrayType:
		p.line(depth, "ArrayType%s", p.annot(e))
		p.printExpr(n.Elem, depth+1)
	case *ast.PointerType:
		p.line(depth, "PointerType%s", p.annot(e))
		p.printExpr(n.Base, depth+1)
	case *ast.FunctionType:
		p.line(depth, "FunctionType%s", p.annot(e))
		for _, pt := range n.ParamTypes {
			p.printExpr(pt, depth+1)
		}
		p.printExpr(n.ReturnType, depth+1)
	case *ast.GenericType:
		p.line(depth, "GenericType%s", p.annot(e))
		p.printExpr(n.Base, depth+1)
		for _, a := range n.Args {
			p.printExpr(a, depth+1)
		}
	case *ast.RangeExpr:
		p.line(depth, "Range(incl=%v)%s", n.Inclusive, p.annot(e))
		p.printExpr(n.Low, depth+1)
		p.printExpr(n.High, depth+1)
	case *ast.EnumShorthand:
		p.line(depth, "EnumShorthand(.%s)%s", n.Case, p.annot(e))
	case *ast.MissingExpr:
		p.line(depth, "MissingExpr(%q)", n.Message)
	default:
		p.line(depth, "?Expr(%T)", e)
	}
}

func typeDeclKindName(k ast.TypeDeclKind) string {
	switch k {
	case ast.KindRefType:
		return "ref type"
	case ast.KindStaticType:
		return "static type"
	case ast.KindEnum:
		return "enum"
	default:
		return "type"
	}
}

func modSuffix(m ast.Modifiers) string {
	s := m.String()
	if s == "" {
		return ""
	}
	return " [" + s + "]"
}
