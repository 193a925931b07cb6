package ast

// Visitor is consulted by Walk at every node. Visit returns a (possibly
// different) Visitor to use for the node's children, or nil to stop
// descending into them — the same shape as go/ast.Visitor. Because Go has
// no virtual dispatch, "one entry per concrete variant" (spec §3.4) is
// expressed as a single type switch inside Visit rather than N override
// points; overriding the handling of one variant can't accidentally skip
// traversal of another, since Walk — not the visitor — drives descent into
// children by default.
type Visitor interface {
	Visit(n Node) (w Visitor)
}

// VisitorFunc adapts a plain function to a Visitor.
type VisitorFunc func(Node) Visitor

func (f VisitorFunc) Visit(n Node) Visitor { return f(n) }

// Walk traverses the tree rooted at n in source order, calling v.Visit
// before descending into each node's children (spec §3.4's "traversal by
// default": every variant visits its children in source order, and
// overriding one variant's handling never breaks traversal of the rest,
// since Walk always owns descent).
func Walk(n Node, v Visitor) {
	if n == nil || v == nil {
		return
	}
	v = v.Visit(n)
	if v == nil {
		return
	}
	walkChildren(n, v)
}

func walkChildren(n Node, v Visitor) {
	switch x := n.(type) {
	case *ArrayLiteral:
		for _, e := range x.Elements {
			Walk(e, v)
		}
	case *QualifiedName:
		Walk(x.Left, v)
	case *GenericName:
		Walk(x.BaseExpr, v)
		for _, a := range x.TypeArgs {
			Walk(a, v)
		}
	case *Parenthesized:
		Walk(x.Inner, v)
	case *Unary:
		Walk(x.Operand, v)
	case *Binary:
		Walk(x.Left, v)
		Walk(x.Right, v)
	case *Assignment:
		Walk(x.Target, v)
		Walk(x.Value, v)
	case *Conditional:
		Walk(x.Cond, v)
		Walk(x.Then, v)
		Walk(x.Else, v)
	case *MemberAccess:
		Walk(x.Object, v)
	case *Indexer:
		Walk(x.Object, v)
		Walk(x.Index, v)
	case *Call:
		Walk(x.Callee, v)
		for _, a := range x.Args {
			Walk(a, v)
		}
	case *New:
		Walk(x.Type, v)
		for _, a := range x.Args {
			Walk(a, v)
		}
	case *Cast:
		Walk(x.TargetType, v)
		Walk(x.Value, v)
	case *Lambda:
		for _, p := range x.Params {
			Walk(p.Type, v)
		}
		Walk(x.Body, v)
	case *TypeOf:
		Walk(x.Type, v)
	case *SizeOf:
		Walk(x.Type, v)
	case *ArrayType:
		Walk(x.Elem, v)
		Walk(x.Size, v)
	case *PointerType:
		Walk(x.Base, v)
	case *FunctionType:
		for _, p := range x.ParamTypes {
			Walk(p, v)
		}
		Walk(x.ReturnType, v)
	case *GenericType:
		Walk(x.Base, v)
		for _, a := range x.Args {
			Walk(a, v)
		}
	case *RangeExpr:
		Walk(x.Low, v)
		Walk(x.High, v)
	case *MissingExpr:
		for _, s := range x.Salvaged {
			Walk(s, v)
		}

	case *Block:
		for _, s := range x.Statements {
			Walk(s, v)
		}
	case *If:
		Walk(x.Cond, v)
		Walk(x.Then, v)
		Walk(x.Else, v)
	case *While:
		Walk(x.Cond, v)
		Walk(x.Body, v)
	case *For:
		Walk(x.Init, v)
		Walk(x.Cond, v)
		for _, u := range x.Updates {
			Walk(u, v)
		}
		Walk(x.Body, v)
	case *Return:
		Walk(x.Value, v)
	case *ExpressionStmt:
		Walk(x.Expr, v)
	case *UsingDirective:
		Walk(x.AliasedType, v)
	case *MissingStmt:
		for _, s := range x.Salvaged {
			Walk(s, v)
		}

	case *VariableDecl:
		Walk(x.Variable.Type, v)
		Walk(x.Initializer, v)
	case *PropertyDecl:
		Walk(x.Variable.Type, v)
		walkAccessor(x.Getter, v)
		walkAccessor(x.Setter, v)
	case *ParameterDecl:
		Walk(x.Param.Type, v)
		Walk(x.Default, v)
	case *FunctionDecl:
		for _, tp := range x.TypeParams {
			Walk(tp, v)
		}
		for _, p := range x.Params {
			Walk(p, v)
		}
		Walk(x.ReturnType, v)
		if x.Body != nil {
			Walk(x.Body, v)
		}
	case *ConstructorDecl:
		for _, p := range x.Params {
			Walk(p, v)
		}
		if x.Body != nil {
			Walk(x.Body, v)
		}
	case *EnumCaseDecl:
		for _, p := range x.AssociatedData {
			Walk(p, v)
		}
	case *TypeDecl:
		for _, tp := range x.TypeParams {
			Walk(tp, v)
		}
		for _, b := range x.BaseTypes {
			Walk(b, v)
		}
		for _, m := range x.Members {
			Walk(m, v)
		}
	case *NamespaceDecl:
		for _, s := range x.Body {
			Walk(s, v)
		}
	case *CompilationUnit:
		for _, s := range x.TopLevelStatements {
			Walk(s, v)
		}

	// Literal, Identifier, NameExpr, This, TypeParameterDecl,
	// EnumShorthand, Break, Continue have no children.
	default:
	}
}

func walkAccessor(a *PropertyAccessor, v Visitor) {
	if a == nil {
		return
	}
	switch a.BodyKind {
	case AccessorExpression:
		Walk(a.Expr, v)
	case AccessorBlock:
		if a.Body != nil {
			Walk(a.Body, v)
		}
	}
}
