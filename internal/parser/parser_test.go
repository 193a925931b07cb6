package parser_test

import (
	"testing"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/lexer"
	"langcore/internal/parser"
	"langcore/internal/source"
	"langcore/internal/token"
)

func parse(t *testing.T, src string) (*ast.CompilationUnit, *diag.Bag, []parser.ParseError) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lang", []byte(src))
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	ts := lexer.Tokenize(fileID, []byte(src), lexer.DefaultOptions(), reporter)
	tree := ast.NewTree()
	unit, errs := parser.Parse(ts, tree, fileID, reporter)
	return unit, bag, errs
}

func TestMinimalFunctionStructure(t *testing.T) {
	unit, bag, _ := parse(t, "fn main() : i32 { return 0; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(unit.TopLevelStatements) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(unit.TopLevelStatements))
	}
	fn, ok := unit.TopLevelStatements[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", unit.TopLevelStatements[0])
	}
	if fn.Name != "main" {
		t.Fatalf("expected name 'main', got %q", fn.Name)
	}
	if fn.Body == nil || len(fn.Body.Statements) != 1 {
		t.Fatalf("expected a single-statement body, got %v", fn.Body)
	}
	ret, ok := fn.Body.Statements[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", fn.Body.Statements[0])
	}
	lit, ok := ret.Value.(*ast.Literal)
	if !ok || lit.Kind != ast.LitInt {
		t.Fatalf("expected int literal return value, got %#v", ret.Value)
	}
}

func TestMissingSemicolonRecoversWithoutCascade(t *testing.T) {
	unit, bag, _ := parse(t, "fn f() { var x = 1\n var y = 2; }")
	if !bag.HasErrors() {
		t.Fatalf("expected a missing-token diagnostic")
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly 1 diagnostic (no cascade), got %d: %v", bag.Len(), bag.Items())
	}
	fn := unit.TopLevelStatements[0].(*ast.FunctionDecl)
	if len(fn.Body.Statements) != 2 {
		t.Fatalf("expected both declarations to be recovered, got %d statements", len(fn.Body.Statements))
	}
}

func TestBinaryPrecedenceAndAssociativity(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3).
	unit, bag, _ := parse(t, "fn f() { return 1 + 2 * 3; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := unit.TopLevelStatements[0].(*ast.FunctionDecl)
	ret := fn.Body.Statements[0].(*ast.Return)
	top, ok := ret.Value.(*ast.Binary)
	if !ok || top.Op != token.Plus {
		t.Fatalf("expected top-level '+', got %#v", ret.Value)
	}
	right, ok := top.Right.(*ast.Binary)
	if !ok || right.Op != token.Star {
		t.Fatalf("expected right-hand side to be '*', got %#v", top.Right)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	// a = b = 1 must parse as a = (b = 1).
	unit, bag, _ := parse(t, "fn f() { a = b = 1; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := unit.TopLevelStatements[0].(*ast.FunctionDecl)
	es := fn.Body.Statements[0].(*ast.ExpressionStmt)
	outer, ok := es.Expr.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected outer *ast.Assignment, got %T", es.Expr)
	}
	if _, ok := outer.Value.(*ast.Assignment); !ok {
		t.Fatalf("expected nested assignment as value, got %#v", outer.Value)
	}
}

func TestGenericArgumentListDisambiguatesFromComparison(t *testing.T) {
	// `Foo<Bar>(1)`: a `>` followed by `(` confirms the `<...>` as a generic
	// argument list, so the callee is a GenericName rather than the
	// comparison `Foo < Bar > (1)`.
	unit, bag, _ := parse(t, "fn f() { var x = Foo<Bar>(1); }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := unit.TopLevelStatements[0].(*ast.FunctionDecl)
	decl := fn.Body.Statements[0].(*ast.VariableDecl)
	call, ok := decl.Initializer.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %#v", decl.Initializer)
	}
	if _, ok := call.Callee.(*ast.GenericName); !ok {
		t.Fatalf("expected generic-name callee, got %#v", call.Callee)
	}
}

func TestNestedGenericClosingAngles(t *testing.T) {
	unit, bag, _ := parse(t, "fn f() { var x = Box<Pair<i32, i32>>(y); }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := unit.TopLevelStatements[0].(*ast.FunctionDecl)
	decl := fn.Body.Statements[0].(*ast.VariableDecl)
	call, ok := decl.Initializer.(*ast.Call)
	if !ok {
		t.Fatalf("expected *ast.Call, got %#v", decl.Initializer)
	}
	gen, ok := call.Callee.(*ast.GenericName)
	if !ok || len(gen.TypeArgs) != 1 {
		t.Fatalf("expected a single nested generic type arg, got %#v", call.Callee)
	}
}

func TestParenthesizedVsLambdaDisambiguation(t *testing.T) {
	unit, bag, _ := parse(t, "fn f() { var a = (1 + 2); var b = (x) => x + 1; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := unit.TopLevelStatements[0].(*ast.FunctionDecl)
	declA := fn.Body.Statements[0].(*ast.VariableDecl)
	if _, ok := declA.Initializer.(*ast.Parenthesized); !ok {
		t.Fatalf("expected Parenthesized expression for 'a', got %#v", declA.Initializer)
	}
	declB := fn.Body.Statements[1].(*ast.VariableDecl)
	lambda, ok := declB.Initializer.(*ast.Lambda)
	if !ok {
		t.Fatalf("expected Lambda expression for 'b', got %#v", declB.Initializer)
	}
	if len(lambda.Params) != 1 || lambda.Params[0].Name != "x" {
		t.Fatalf("expected single param 'x', got %#v", lambda.Params)
	}
}

func TestPropertyAccessorSyntaxVariants(t *testing.T) {
	src := `type Point {
		i32 X { get; set; }
		i32 Y { get => 0; }
	}`
	unit, bag, _ := parse(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	td := unit.TopLevelStatements[0].(*ast.TypeDecl)
	if len(td.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(td.Members))
	}
	propX := td.Members[0].(*ast.PropertyDecl)
	if propX.Getter == nil || propX.Getter.BodyKind != ast.AccessorAuto {
		t.Fatalf("expected auto getter on X")
	}
	if propX.Setter == nil || propX.Setter.BodyKind != ast.AccessorAuto {
		t.Fatalf("expected auto setter on X")
	}
	propY := td.Members[1].(*ast.PropertyDecl)
	if propY.Getter == nil || propY.Getter.BodyKind != ast.AccessorExpression {
		t.Fatalf("expected expression-bodied getter on Y")
	}
}

func TestTypeExpressionPointerArrayFunction(t *testing.T) {
	src := "fn f(*i32 p, i32[10] a, fn(i32) -> bool g) : void { }"
	unit, bag, _ := parse(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := unit.TopLevelStatements[0].(*ast.FunctionDecl)
	if _, ok := fn.Params[0].Param.Type.(*ast.PointerType); !ok {
		t.Fatalf("expected PointerType for 'p', got %#v", fn.Params[0].Param.Type)
	}
	arrType, ok := fn.Params[1].Param.Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("expected ArrayType for 'a', got %#v", fn.Params[1].Param.Type)
	}
	if arrType.Size == nil {
		t.Fatalf("expected a sized array type for 'a'")
	}
	if _, ok := fn.Params[2].Param.Type.(*ast.FunctionType); !ok {
		t.Fatalf("expected FunctionType for 'g', got %#v", fn.Params[2].Param.Type)
	}
}

func TestBreakIsSyntacticallyValidOutsideLoop(t *testing.T) {
	// break-outside-loop is reported at the type-resolution pass (see
	// sema.TypeResolver), not by the parser; a bare break parses cleanly.
	_, bag, _ := parse(t, "fn f() { break; }")
	if bag.HasErrors() {
		t.Fatalf("parser should not itself reject a bare break; got %v", bag.Items())
	}
}

func TestIfWhileForStatementsParse(t *testing.T) {
	src := `fn f() {
		if (x > 0) { y = 1; } else { y = 2; }
		while (x < 10) { x = x + 1; }
		for (var i = 0; i < 10; i = i + 1) { }
	}`
	unit, bag, _ := parse(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := unit.TopLevelStatements[0].(*ast.FunctionDecl)
	if len(fn.Body.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(fn.Body.Statements))
	}
	if _, ok := fn.Body.Statements[0].(*ast.If); !ok {
		t.Fatalf("expected *ast.If, got %T", fn.Body.Statements[0])
	}
	if _, ok := fn.Body.Statements[1].(*ast.While); !ok {
		t.Fatalf("expected *ast.While, got %T", fn.Body.Statements[1])
	}
	if _, ok := fn.Body.Statements[2].(*ast.For); !ok {
		t.Fatalf("expected *ast.For, got %T", fn.Body.Statements[2])
	}
}

func TestNamespaceAndUsingDirective(t *testing.T) {
	src := "namespace App.Core;\nusing System;\nfn main() : void { }"
	unit, bag, _ := parse(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	ns, ok := unit.TopLevelStatements[0].(*ast.NamespaceDecl)
	if !ok || !ns.IsFileScoped || ns.Name != "App.Core" {
		t.Fatalf("expected file-scoped namespace 'App.Core', got %#v", unit.TopLevelStatements[0])
	}
	using, ok := unit.TopLevelStatements[1].(*ast.UsingDirective)
	if !ok || using.Kind != ast.UsingNamespace || using.Target != "System" {
		t.Fatalf("expected using-namespace directive for 'System', got %#v", unit.TopLevelStatements[1])
	}
}

func TestUnclosedDelimiterSynchronizesWithoutInfiniteLoop(t *testing.T) {
	unit, bag, _ := parse(t, "fn f( { return 1; }")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for the malformed parameter list")
	}
	if unit == nil {
		t.Fatalf("expected a well-formed (possibly partial) unit even on error")
	}
}
