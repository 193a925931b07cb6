package ast

import "langcore/internal/arena"

// Tree owns every node allocated while parsing one compilation unit,
// backed by one internal/arena.Arena[T] per concrete node type (spec
// §3.3). Arena.Get returns a pointer stable for the arena's lifetime, so
// node constructors here return that pointer directly rather than a
// separate handle; callers hold plain Go pointers the same way
// go/ast callers do, except the backing storage is bump-allocated instead
// of one-object-per-new. A Tree is dropped as a unit at the end of a
// compilation by simply letting it become unreachable.
type Tree struct {
	literals       *arena.Arena[Literal]
	arrayLits      *arena.Arena[ArrayLiteral]
	idents         *arena.Arena[Identifier]
	names          *arena.Arena[NameExpr]
	qualNames      *arena.Arena[QualifiedName]
	genNames       *arena.Arena[GenericName]
	thisExprs      *arena.Arena[This]
	parens         *arena.Arena[Parenthesized]
	unaries        *arena.Arena[Unary]
	binaries       *arena.Arena[Binary]
	assigns        *arena.Arena[Assignment]
	conds          *arena.Arena[Conditional]
	members        *arena.Arena[MemberAccess]
	indexers       *arena.Arena[Indexer]
	calls          *arena.Arena[Call]
	news           *arena.Arena[New]
	casts          *arena.Arena[Cast]
	lambdas        *arena.Arena[Lambda]
	typeOfs        *arena.Arena[TypeOf]
	sizeOfs        *arena.Arena[SizeOf]
	arrayTypes     *arena.Arena[ArrayType]
	pointerTypes   *arena.Arena[PointerType]
	funcTypes      *arena.Arena[FunctionType]
	genericTypes   *arena.Arena[GenericType]
	ranges         *arena.Arena[RangeExpr]
	enumShorthands *arena.Arena[EnumShorthand]
	missingExprs   *arena.Arena[MissingExpr]

	blocks       *arena.Arena[Block]
	ifs          *arena.Arena[If]
	whiles       *arena.Arena[While]
	fors         *arena.Arena[For]
	returns      *arena.Arena[Return]
	breaks       *arena.Arena[Break]
	continues    *arena.Arena[Continue]
	exprStmts    *arena.Arena[ExpressionStmt]
	usings       *arena.Arena[UsingDirective]
	missingStmts *arena.Arena[MissingStmt]

	varDecls       *arena.Arena[VariableDecl]
	propDecls      *arena.Arena[PropertyDecl]
	accessors      *arena.Arena[PropertyAccessor]
	paramDecls     *arena.Arena[ParameterDecl]
	typeParamDecls *arena.Arena[TypeParameterDecl]
	funcDecls      *arena.Arena[FunctionDecl]
	ctorDecls      *arena.Arena[ConstructorDecl]
	enumCaseDecls  *arena.Arena[EnumCaseDecl]
	typeDecls      *arena.Arena[TypeDecl]
	namespaceDecls *arena.Arena[NamespaceDecl]
	units          *arena.Arena[CompilationUnit]
}

// NewTree creates an empty Tree ready to back one compilation unit's parse.
func NewTree() *Tree {
	return &Tree{
		literals:       arena.New[Literal](),
		arrayLits:      arena.New[ArrayLiteral](),
		idents:         arena.New[Identifier](),
		names:          arena.New[NameExpr](),
		qualNames:      arena.New[QualifiedName](),
		genNames:       arena.New[GenericName](),
		thisExprs:      arena.New[This](),
		parens:         arena.New[Parenthesized](),
		unaries:        arena.New[Unary](),
		binaries:       arena.New[Binary](),
		assigns:        arena.New[Assignment](),
		conds:          arena.New[Conditional](),
		members:        arena.New[MemberAccess](),
		indexers:       arena.New[Indexer](),
		calls:          arena.New[Call](),
		news:           arena.New[New](),
		casts:          arena.New[Cast](),
		lambdas:        arena.New[Lambda](),
		typeOfs:        arena.New[TypeOf](),
		sizeOfs:        arena.New[SizeOf](),
		arrayTypes:     arena.New[ArrayType](),
		pointerTypes:   arena.New[PointerType](),
		funcTypes:      arena.New[FunctionType](),
		genericTypes:   arena.New[GenericType](),
		ranges:         arena.New[RangeExpr](),
		enumShorthands: arena.New[EnumShorthand](),
		missingExprs:   arena.New[MissingExpr](),

		blocks:       arena.New[Block](),
		ifs:          arena.New[If](),
		whiles:       arena.New[While](),
		fors:         arena.New[For](),
		returns:      arena.New[Return](),
		breaks:       arena.New[Break](),
		continues:    arena.New[Continue](),
		exprStmts:    arena.New[ExpressionStmt](),
		usings:       arena.New[UsingDirective](),
		missingStmts: arena.New[MissingStmt](),

		varDecls:       arena.New[VariableDecl](),
		propDecls:      arena.New[PropertyDecl](),
		accessors:      arena.New[PropertyAccessor](),
		paramDecls:     arena.New[ParameterDecl](),
		typeParamDecls: arena.New[TypeParameterDecl](),
		funcDecls:      arena.New[FunctionDecl](),
		ctorDecls:      arena.New[ConstructorDecl](),
		enumCaseDecls:  arena.New[EnumCaseDecl](),
		typeDecls:      arena.New[TypeDecl](),
		namespaceDecls: arena.New[NamespaceDecl](),
		units:          arena.New[CompilationUnit](),
	}
}

// Stats sums chunk counts and bytes used across every sub-arena (spec §9's
// arena chunk statistics, SPEC_FULL §C.5).
func (t *Tree) Stats() (chunks int, bytesUsed int) {
	add := func(c, b int) { chunks += c; bytesUsed += b }
	add(t.literals.Stats())
	add(t.arrayLits.Stats())
	add(t.idents.Stats())
	add(t.names.Stats())
	add(t.qualNames.Stats())
	add(t.genNames.Stats())
	add(t.thisExprs.Stats())
	add(t.parens.Stats())
	add(t.unaries.Stats())
	add(t.binaries.Stats())
	add(t.assigns.Stats())
	add(t.conds.Stats())
	add(t.members.Stats())
	add(t.indexers.Stats())
	add(t.calls.Stats())
	add(t.news.Stats())
	add(t.casts.Stats())
	add(t.lambdas.Stats())
	add(t.typeOfs.Stats())
	add(t.sizeOfs.Stats())
	add(t.arrayTypes.Stats())
	add(t.pointerTypes.Stats())
	add(t.funcTypes.Stats())
	add(t.genericTypes.Stats())
	add(t.ranges.Stats())
	add(t.enumShorthands.Stats())
	add(t.missingExprs.Stats())
	add(t.blocks.Stats())
	add(t.ifs.Stats())
	add(t.whiles.Stats())
	add(t.fors.Stats())
	add(t.returns.Stats())
	add(t.breaks.Stats())
	add(t.continues.Stats())
	add(t.exprStmts.Stats())
	add(t.usings.Stats())
	add(t.missingStmts.Stats())
	add(t.varDecls.Stats())
	add(t.propDecls.Stats())
	add(t.accessors.Stats())
	add(t.paramDecls.Stats())
	add(t.typeParamDecls.Stats())
	add(t.funcDecls.Stats())
	add(t.ctorDecls.Stats())
	add(t.enumCaseDecls.Stats())
	add(t.typeDecls.Stats())
	add(t.namespaceDecls.Stats())
	add(t.units.Stats())
	return chunks, bytesUsed
}

func (t *Tree) NewLiteral(v Literal) *Literal { return t.literals.Get(t.literals.Alloc(v)) }
func (t *Tree) NewArrayLiteral(v ArrayLiteral) *ArrayLiteral {
	return t.arrayLits.Get(t.arrayLits.Alloc(v))
}
func (t *Tree) NewIdentifier(v Identifier) *Identifier { return t.idents.Get(t.idents.Alloc(v)) }
func (t *Tree) NewNameExpr(v NameExpr) *NameExpr        { return t.names.Get(t.names.Alloc(v)) }
func (t *Tree) NewQualifiedName(v QualifiedName) *QualifiedName {
	return t.qualNames.Get(t.qualNames.Alloc(v))
}
func (t *Tree) NewGenericName(v GenericName) *GenericName { return t.genNames.Get(t.genNames.Alloc(v)) }
func (t *Tree) NewThis(v This) *This                      { return t.thisExprs.Get(t.thisExprs.Alloc(v)) }
func (t *Tree) NewParenthesized(v Parenthesized) *Parenthesized {
	return t.parens.Get(t.parens.Alloc(v))
}
func (t *Tree) NewUnary(v Unary) *Unary           { return t.unaries.Get(t.unaries.Alloc(v)) }
func (t *Tree) NewBinary(v Binary) *Binary        { return t.binaries.Get(t.binaries.Alloc(v)) }
func (t *Tree) NewAssignment(v Assignment) *Assignment {
	return t.assigns.Get(t.assigns.Alloc(v))
}
func (t *Tree) NewConditional(v Conditional) *Conditional { return t.conds.Get(t.conds.Alloc(v)) }
func (t *Tree) NewMemberAccess(v MemberAccess) *MemberAccess {
	return t.members.Get(t.members.Alloc(v))
}
func (t *Tree) NewIndexer(v Indexer) *Indexer { return t.indexers.Get(t.indexers.Alloc(v)) }
func (t *Tree) NewCall(v Call) *Call           { return t.calls.Get(t.calls.Alloc(v)) }
func (t *Tree) NewNew(v New) *New              { return t.news.Get(t.news.Alloc(v)) }
func (t *Tree) NewCast(v Cast) *Cast           { return t.casts.Get(t.casts.Alloc(v)) }
func (t *Tree) NewLambda(v Lambda) *Lambda     { return t.lambdas.Get(t.lambdas.Alloc(v)) }
func (t *Tree) NewTypeOf(v TypeOf) *TypeOf     { return t.typeOfs.Get(t.typeOfs.Alloc(v)) }
func (t *Tree) NewSizeOf(v SizeOf) *SizeOf     { return t.sizeOfs.Get(t.sizeOfs.Alloc(v)) }
func (t *Tree) NewArrayType(v ArrayType) *ArrayType {
	return t.arrayTypes.Get(t.arrayTypes.Alloc(v))
}
func (t *Tree) NewPointerType(v PointerType) *PointerType {
	return t.pointerTypes.Get(t.pointerTypes.Alloc(v))
}
func (t *Tree) NewFunctionType(v FunctionType) *FunctionType {
	return t.funcTypes.Get(t.funcTypes.Alloc(v))
}
func (t *Tree) NewGenericType(v GenericType) *GenericType {
	return t.genericTypes.Get(t.genericTypes.Alloc(v))
}
func (t *Tree) NewRangeExpr(v RangeExpr) *RangeExpr { return t.ranges.Get(t.ranges.Alloc(v)) }
func (t *Tree) NewEnumShorthand(v EnumShorthand) *EnumShorthand {
	return t.enumShorthands.Get(t.enumShorthands.Alloc(v))
}
func (t *Tree) NewMissingExpr(v MissingExpr) *MissingExpr {
	return t.missingExprs.Get(t.missingExprs.Alloc(v))
}

func (t *Tree) NewBlock(v Block) *Block             { return t.blocks.Get(t.blocks.Alloc(v)) }
func (t *Tree) NewIf(v If) *If                      { return t.ifs.Get(t.ifs.Alloc(v)) }
func (t *Tree) NewWhile(v While) *While             { return t.whiles.Get(t.whiles.Alloc(v)) }
func (t *Tree) NewFor(v For) *For                   { return t.fors.Get(t.fors.Alloc(v)) }
func (t *Tree) NewReturn(v Return) *Return          { return t.returns.Get(t.returns.Alloc(v)) }
func (t *Tree) NewBreak(v Break) *Break             { return t.breaks.Get(t.breaks.Alloc(v)) }
func (t *Tree) NewContinue(v Continue) *Continue    { return t.continues.Get(t.continues.Alloc(v)) }
func (t *Tree) NewExpressionStmt(v ExpressionStmt) *ExpressionStmt {
	return t.exprStmts.Get(t.exprStmts.Alloc(v))
}
func (t *Tree) NewUsingDirective(v UsingDirective) *UsingDirective {
	return t.usings.Get(t.usings.Alloc(v))
}
func (t *Tree) NewMissingStmt(v MissingStmt) *MissingStmt {
	return t.missingStmts.Get(t.missingStmts.Alloc(v))
}

func (t *Tree) NewVariableDecl(v VariableDecl) *VariableDecl {
	return t.varDecls.Get(t.varDecls.Alloc(v))
}
func (t *Tree) NewPropertyDecl(v PropertyDecl) *PropertyDecl {
	return t.propDecls.Get(t.propDecls.Alloc(v))
}
func (t *Tree) NewPropertyAccessor(v PropertyAccessor) *PropertyAccessor {
	return t.accessors.Get(t.accessors.Alloc(v))
}
func (t *Tree) NewParameterDecl(v ParameterDecl) *ParameterDecl {
	return t.paramDecls.Get(t.paramDecls.Alloc(v))
}
func (t *Tree) NewTypeParameterDecl(v TypeParameterDecl) *TypeParameterDecl {
	return t.typeParamDecls.Get(t.typeParamDecls.Alloc(v))
}
func (t *Tree) NewFunctionDecl(v FunctionDecl) *FunctionDecl {
	return t.funcDecls.Get(t.funcDecls.Alloc(v))
}
func (t *Tree) NewConstructorDecl(v ConstructorDecl) *ConstructorDecl {
	return t.ctorDecls.Get(t.ctorDecls.Alloc(v))
}
func (t *Tree) NewEnumCaseDecl(v EnumCaseDecl) *EnumCaseDecl {
	return t.enumCaseDecls.Get(t.enumCaseDecls.Alloc(v))
}
func (t *Tree) NewTypeDecl(v TypeDecl) *TypeDecl { return t.typeDecls.Get(t.typeDecls.Alloc(v)) }
func (t *Tree) NewNamespaceDecl(v NamespaceDecl) *NamespaceDecl {
	return t.namespaceDecls.Get(t.namespaceDecls.Alloc(v))
}
func (t *Tree) NewCompilationUnit(v CompilationUnit) *CompilationUnit {
	return t.units.Get(t.units.Alloc(v))
}
