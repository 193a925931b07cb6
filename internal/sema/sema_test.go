package sema_test

import (
	"testing"

	"langcore/internal/ast"
	"langcore/internal/diag"
	"langcore/internal/lexer"
	"langcore/internal/parser"
	"langcore/internal/sema"
	"langcore/internal/source"
	"langcore/internal/symbols"
	"langcore/internal/types"
)

// compile runs the full front-end pipeline (lex -> parse -> SymbolBuilder
// -> TypeResolver) over src, mirroring internal/project.compileFile, and
// hands the test the unit/table/types it needs to inspect resolved
// annotations (spec §8.2's end-to-end scenarios).
func compile(t *testing.T, src string) (*ast.CompilationUnit, *symbols.Table, *types.System, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lang", []byte(src))
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}

	toks := lexer.Tokenize(fileID, []byte(src), lexer.DefaultOptions(), reporter)
	tree := ast.NewTree()
	unit, _ := parser.Parse(toks, tree, fileID, reporter)

	table := symbols.NewTable()
	sys := types.NewSystem()
	sema.NewSymbolBuilder(table, sys, reporter).Build(unit)
	sema.NewTypeResolver(table, sys, reporter).Resolve(unit)

	return unit, table, sys, bag
}

func findFunc(t *testing.T, unit *ast.CompilationUnit, name string) *ast.FunctionDecl {
	t.Helper()
	for _, s := range unit.TopLevelStatements {
		if fn, ok := s.(*ast.FunctionDecl); ok && fn.Name == name {
			return fn
		}
	}
	t.Fatalf("no function named %q", name)
	return nil
}

// Scenario 1 (spec §8.2): fn add(i32 a, i32 b): i32 { return a + b; }
func TestScenarioMinimalFunctionTypesResolveToI32(t *testing.T) {
	unit, _, _, bag := compile(t, "fn add(i32 a, i32 b) : i32 { return a + b; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := findFunc(t, unit, "add")
	ret := fn.Body.Statements[0].(*ast.Return)
	bin := ret.Value.(*ast.Binary)
	if got := bin.Annotation().ResolvedType.GetName(); got != "i32" {
		t.Fatalf("expected binary expr to resolve to i32, got %s", got)
	}
	left := bin.Left.(*ast.NameExpr)
	if got := left.Annotation().ResolvedType.GetName(); got != "i32" {
		t.Fatalf("expected 'a' to resolve to i32, got %s", got)
	}
}

// Scenario 2 (spec §8.2): overload resolution by argument type.
func TestScenarioOverloadResolutionPicksMatchingSignature(t *testing.T) {
	src := `fn f(i32 x) { }
fn f(f64 x) { }
fn main() { f(1); f(1.0); }`
	unit, table, _, bag := compile(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	overloads := table.LookupLocal(table.Root(), "f")
	if len(overloads) != 2 {
		t.Fatalf("expected 2 overloads of 'f', got %d", len(overloads))
	}

	main := findFunc(t, unit, "main")
	callInt := main.Body.Statements[0].(*ast.ExpressionStmt).Expr.(*ast.Call)
	callFloat := main.Body.Statements[1].(*ast.ExpressionStmt).Expr.(*ast.Call)

	symInt := symbols.ID(callInt.Annotation().ResolvedSymbol)
	symFloat := symbols.ID(callFloat.Annotation().ResolvedSymbol)
	if symInt == symbols.NoID || symFloat == symbols.NoID {
		t.Fatalf("expected both calls to resolve to a symbol, got %v and %v", symInt, symFloat)
	}
	if symInt == symFloat {
		t.Fatalf("expected f(1) and f(1.0) to bind to distinct overloads")
	}
	intParam := table.Get(table.Get(symInt).Parameters[0])
	floatParam := table.Get(table.Get(symFloat).Parameters[0])
	if intParam.VarType.GetName() != "i32" {
		t.Fatalf("expected f(1) to bind the i32 overload, got param type %s", intParam.VarType.GetName())
	}
	if floatParam.VarType.GetName() != "f64" {
		t.Fatalf("expected f(1.0) to bind the f64 overload, got param type %s", floatParam.VarType.GetName())
	}
}

// Scenario 3 (spec §8.2): inference chain through a, b, c.
func TestScenarioTypeInferenceChain(t *testing.T) {
	unit, _, _, bag := compile(t, "fn test() { var a = 42; var b = a; var c = b + 1; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := findFunc(t, unit, "test")
	for i, name := range []string{"a", "b", "c"} {
		decl := fn.Body.Statements[i].(*ast.VariableDecl)
		if decl.Variable.Name != name {
			t.Fatalf("statement %d: expected declaration of %q, got %q", i, name, decl.Variable.Name)
		}
		if got := decl.Initializer.Annotation().ResolvedType.GetName(); got != "i32" {
			t.Fatalf("expected %s's initializer to resolve to i32, got %s", name, got)
		}
	}
}

// Scenario 4 (spec §8.2): missing semicolon recovers without cascading.
func TestScenarioMissingSemicolonRecoversBothDeclarations(t *testing.T) {
	unit, _, _, bag := compile(t, "fn f() { var x = 1\n var y = 2; }")
	parseErrs := 0
	for _, it := range bag.Items() {
		if it.Code == diag.SynMissingSemicolon || it.Code == diag.SynExpectedToken {
			parseErrs++
		}
	}
	if parseErrs != 1 {
		t.Fatalf("expected exactly one missing-semicolon diagnostic, got %d (%v)", parseErrs, bag.Items())
	}
	fn := findFunc(t, unit, "f")
	if len(fn.Body.Statements) != 2 {
		t.Fatalf("expected both declarations recovered, got %d statements", len(fn.Body.Statements))
	}
	declX := fn.Body.Statements[0].(*ast.VariableDecl)
	declY := fn.Body.Statements[1].(*ast.VariableDecl)
	if declX.Initializer.Annotation().ResolvedType.GetName() != "i32" {
		t.Fatalf("expected x: i32, got %s", declX.Initializer.Annotation().ResolvedType.GetName())
	}
	if declY.Initializer.Annotation().ResolvedType.GetName() != "i32" {
		t.Fatalf("expected y: i32, got %s", declY.Initializer.Annotation().ResolvedType.GetName())
	}
}

// Scenario 5 (spec §8.2): cross-file merge conflict between a function and
// a variable sharing a name.
func TestScenarioSymbolMergeConflict(t *testing.T) {
	_, tableA, sysA, bagA := compile(t, "fn foo() {}")
	if bagA.HasErrors() {
		t.Fatalf("unexpected diagnostics in file A: %v", bagA.Items())
	}
	_, tableB, sysB, bagB := compile(t, "i32 foo;")
	if bagB.HasErrors() {
		t.Fatalf("unexpected diagnostics in file B: %v", bagB.Items())
	}
	_ = sysA
	_ = sysB

	merged := symbols.NewTable()
	conflicts := merged.Merge(tableA)
	if len(conflicts) != 0 {
		t.Fatalf("unexpected conflicts merging the first file: %v", conflicts)
	}
	conflicts = merged.Merge(tableB)
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %d: %v", len(conflicts), conflicts)
	}
	want := "Symbol conflict: 'foo' already exists in namespace ''"
	if conflicts[0] != want {
		t.Fatalf("expected %q, got %q", want, conflicts[0])
	}
}

// Scenario 6 (spec §8.2): a generic method's instantiated return type.
func TestScenarioGenericMethodInstantiation(t *testing.T) {
	src := `type Box<T> {
	T value;
	fn get() : T { return value; }
}
fn main() {
	var b = new Box<i32>();
	var v = b.get();
}`
	unit, _, _, bag := compile(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	main := findFunc(t, unit, "main")
	declB := main.Body.Statements[0].(*ast.VariableDecl)
	if got := declB.Initializer.Annotation().ResolvedType.GetName(); got != "Box<i32>" {
		t.Fatalf("expected b's type to be Box<i32>, got %s", got)
	}
	declV := main.Body.Statements[1].(*ast.VariableDecl)
	if got := declV.Initializer.Annotation().ResolvedType.GetName(); got != "i32" {
		t.Fatalf("expected v's type to be i32, got %s", got)
	}
}

// TestConstructorOverloadResolutionPicksMatchingSignatureForLiteralArg
// checks that visitNew's reuse of resolveOverload correctly picks a
// constructor overload when the argument is a bare literal, the same
// literal-argument case that scenario 2 covers for a free function.
func TestConstructorOverloadResolutionPicksMatchingSignatureForLiteralArg(t *testing.T) {
	src := `type Pair {
	new(i32 a) { }
	new(f64 a) { }
}
fn main() {
	var p = new Pair(1);
	var q = new Pair(1.0);
}`
	unit, table, _, bag := compile(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	ids := table.ResolveFrom(table.Root(), "Pair")
	if len(ids) != 1 {
		t.Fatalf("expected exactly one Pair type symbol, got %d", len(ids))
	}
	ctors := table.LookupLocal(ids[0], "New")
	if len(ctors) != 2 {
		t.Fatalf("expected 2 constructor overloads, got %d", len(ctors))
	}

	main := findFunc(t, unit, "main")
	declP := main.Body.Statements[0].(*ast.VariableDecl)
	declQ := main.Body.Statements[1].(*ast.VariableDecl)
	if got := declP.Initializer.Annotation().ResolvedType.GetName(); got != "Pair" {
		t.Fatalf("expected p's type to be Pair, got %s", got)
	}
	if got := declQ.Initializer.Annotation().ResolvedType.GetName(); got != "Pair" {
		t.Fatalf("expected q's type to be Pair, got %s", got)
	}
}

// Scenario 7 (spec §8.2): break outside a loop is a semantic error, not a
// parse error, and does not crash the resolver.
func TestScenarioBreakOutsideLoopReportsSemanticError(t *testing.T) {
	_, _, _, bag := compile(t, "fn main() { break; }")
	if !bag.HasErrors() {
		t.Fatalf("expected a 'break outside of loop' diagnostic")
	}
	found := false
	for _, it := range bag.Items() {
		if it.Code == diag.SymBreakOutsideLoop {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected diag.SymBreakOutsideLoop among diagnostics: %v", bag.Items())
	}
}

func TestContinueInsideWhileLoopIsFine(t *testing.T) {
	_, _, _, bag := compile(t, "fn main() { while (true) { continue; } }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for continue inside while: %v", bag.Items())
	}
}

func TestReturnOutsideFunctionReportsError(t *testing.T) {
	_, _, _, bag := compile(t, "return 1;")
	found := false
	for _, it := range bag.Items() {
		if it.Code == diag.SymReturnOutsideFunc {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected diag.SymReturnOutsideFunc among diagnostics: %v", bag.Items())
	}
}

func TestAssignmentToNonLvalueReportsError(t *testing.T) {
	_, _, _, bag := compile(t, "fn f() { 1 = 2; }")
	found := false
	for _, it := range bag.Items() {
		if it.Code == diag.TypeNotLValue {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected diag.TypeNotLValue among diagnostics: %v", bag.Items())
	}
}

func TestTypeMismatchInReturnReportsError(t *testing.T) {
	_, _, _, bag := compile(t, `fn f() : i32 { return true; }`)
	found := false
	for _, it := range bag.Items() {
		if it.Code == diag.TypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected diag.TypeMismatch among diagnostics: %v", bag.Items())
	}
}

// TestUnaryMinusOnStringReportsTypeMismatch checks spec §4.9.4's unary row:
// -/+/~ require a numeric/integral operand.
func TestUnaryMinusOnStringReportsTypeMismatch(t *testing.T) {
	_, _, _, bag := compile(t, `fn f() { var x = -"hello"; }`)
	found := false
	for _, it := range bag.Items() {
		if it.Code == diag.TypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected diag.TypeMismatch for unary - on a string, got %v", bag.Items())
	}
}

// TestUnaryMinusOnLiteralIsFine checks that the numeric-operand check added
// for spec §4.9.4 doesn't reject an untyped int literal, whose type is an
// Unresolved variable until defaulted.
func TestUnaryMinusOnLiteralIsFine(t *testing.T) {
	unit, _, _, bag := compile(t, "fn f() { var x = -1; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := findFunc(t, unit, "f")
	decl := fn.Body.Statements[0].(*ast.VariableDecl)
	if got := decl.Initializer.Annotation().ResolvedType.GetName(); got != "i32" {
		t.Fatalf("expected -1 to resolve to i32, got %s", got)
	}
}

func TestConditionalBranchesUnify(t *testing.T) {
	unit, _, _, bag := compile(t, "fn f() { var a = true ? 1 : 2; }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := findFunc(t, unit, "f")
	decl := fn.Body.Statements[0].(*ast.VariableDecl)
	if got := decl.Initializer.Annotation().ResolvedType.GetName(); got != "i32" {
		t.Fatalf("expected conditional to resolve to i32, got %s", got)
	}
}
