package semantic

import (
	"testing"

	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/errors"
	"github.com/hulklang/hulkc/internal/lexer"
	"github.com/hulklang/hulkc/internal/parser"
	"github.com/hulklang/hulkc/internal/types"
)

func analyze(t *testing.T, src string) (*ast.Program, *Analyzer) {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l, src, "")
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	a := New(src, "")
	a.Analyze(prog)
	return prog, a
}

func errKinds(a *Analyzer) []errors.Kind {
	kinds := make([]errors.Kind, len(a.Errors()))
	for i, e := range a.Errors() {
		kinds[i] = e.Kind
	}
	return kinds
}

func requireNoErrors(t *testing.T, a *Analyzer) {
	t.Helper()
	if len(a.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", errKinds(a))
	}
}

func requireKind(t *testing.T, a *Analyzer, kind errors.Kind) {
	t.Helper()
	for _, k := range errKinds(a) {
		if k == kind {
			return
		}
	}
	t.Fatalf("expected a %s diagnostic, got %v", kind, errKinds(a))
}

func TestAnalyze_LiteralsAndArithmetic(t *testing.T) {
	prog, a := analyze(t, "print(2 + 3 * 4);")
	requireNoErrors(t, a)
	printExpr := prog.Exprs[0].(*ast.PrintExpr)
	if got := printExpr.GetType(); got != types.Number {
		t.Errorf("print(2+3*4) type = %s, want Number", got)
	}
}

func TestAnalyze_UndefinedIdentifier(t *testing.T) {
	_, a := analyze(t, "print(x);")
	requireKind(t, a, errors.KindUnknownName)
}

func TestAnalyze_ArithmeticRequiresNumber(t *testing.T) {
	_, a := analyze(t, `print(1 + "a");`)
	requireKind(t, a, errors.KindTypeMismatch)
}

func TestAnalyze_ComparisonProducesBoolean(t *testing.T) {
	prog, a := analyze(t, "print(1 < 2);")
	requireNoErrors(t, a)
	printExpr := prog.Exprs[0].(*ast.PrintExpr)
	if got := printExpr.GetType(); got != types.Boolean {
		t.Errorf("print(1<2) type = %s, want Boolean", got)
	}
}

func TestAnalyze_EqualityAcrossDifferentTypesIsError(t *testing.T) {
	_, a := analyze(t, `print(1 == "a");`)
	requireKind(t, a, errors.KindTypeMismatch)
}

func TestAnalyze_ConcatenationAutoStringifiesNumberAndBoolean(t *testing.T) {
	prog, a := analyze(t, `print(1 @ true);`)
	requireNoErrors(t, a)
	printExpr := prog.Exprs[0].(*ast.PrintExpr)
	if got := printExpr.GetType(); got != types.String {
		t.Errorf("print(1 @ true) type = %s, want String", got)
	}
}

func TestAnalyze_LogicalRequiresBoolean(t *testing.T) {
	_, a := analyze(t, "print(1 & true);")
	requireKind(t, a, errors.KindTypeMismatch)
}

func TestAnalyze_UnaryNot(t *testing.T) {
	prog, a := analyze(t, "print(!true);")
	requireNoErrors(t, a)
	printExpr := prog.Exprs[0].(*ast.PrintExpr)
	if got := printExpr.GetType(); got != types.Boolean {
		t.Errorf("print(!true) type = %s, want Boolean", got)
	}
}

func TestAnalyze_FunctionCallArityAndType(t *testing.T) {
	_, a := analyze(t, `
function add(a: Number, b: Number): Number => a + b;
print(add(1, 2));
`)
	requireNoErrors(t, a)
}

func TestAnalyze_FunctionCallArityMismatch(t *testing.T) {
	_, a := analyze(t, `
function add(a: Number, b: Number): Number => a + b;
print(add(1));
`)
	requireKind(t, a, errors.KindArityMismatch)
}

func TestAnalyze_FunctionCallArgTypeMismatch(t *testing.T) {
	_, a := analyze(t, `
function add(a: Number, b: Number): Number => a + b;
print(add(1, "x"));
`)
	requireKind(t, a, errors.KindTypeMismatch)
}

func TestAnalyze_FunctionReturnTypeMismatch(t *testing.T) {
	_, a := analyze(t, `function f(): Number => "x";`)
	requireKind(t, a, errors.KindTypeMismatch)
}

func TestAnalyze_UndefinedFunctionCall(t *testing.T) {
	_, a := analyze(t, "print(missing(1));")
	requireKind(t, a, errors.KindUnknownName)
}

func TestAnalyze_TypeDeclAttributesAndMethods(t *testing.T) {
	prog, a := analyze(t, `
type Point(x: Number, y: Number) {
	x = x;
	y = y;
	getX(): Number => self.x;
}
print(new Point(1, 2).getX());
`)
	requireNoErrors(t, a)
	rec, ok := a.Env().LookupType("Point")
	if !ok {
		t.Fatal("expected Point to be declared")
	}
	if rec.Attributes["x"].Type != types.Number {
		t.Errorf("Point.x type = %s, want Number", rec.Attributes["x"].Type)
	}
	callExpr := prog.Exprs[0].(*ast.PrintExpr).Arg.(*ast.MethodCallExpr)
	if got := callExpr.GetType(); got != types.Number {
		t.Errorf("getX() call type = %s, want Number", got)
	}
}

func TestAnalyze_InheritanceAndOverride(t *testing.T) {
	_, a := analyze(t, `
type Animal() {
	speak(): String => "...";
}
type Dog() inherits Animal() {
	speak(): String => "woof";
}
print(new Dog().speak());
`)
	requireNoErrors(t, a)

	dog, _ := a.Env().LookupType("Dog")
	animal, _ := a.Env().LookupType("Animal")
	if dog.Methods["speak"].Slot != animal.Methods["speak"].Slot {
		t.Errorf("override should reuse parent's vtable slot: dog=%d animal=%d",
			dog.Methods["speak"].Slot, animal.Methods["speak"].Slot)
	}
}

func TestAnalyze_OverrideShapeMismatchIsInvalid(t *testing.T) {
	_, a := analyze(t, `
type Animal() {
	speak(n: Number): Number => n;
}
type Dog() inherits Animal() {
	speak(n: String): String => n;
}
print(new Dog().speak("woof"));
`)
	requireKind(t, a, errors.KindInvalidOverride)
}

func TestAnalyze_InheritanceCycle(t *testing.T) {
	_, a := analyze(t, `
type A() inherits B() { }
type B() inherits A() { }
`)
	requireKind(t, a, errors.KindInheritanceCycle)
}

func TestAnalyze_UnknownParentType(t *testing.T) {
	_, a := analyze(t, `type A() inherits Ghost() { }`)
	requireKind(t, a, errors.KindUnknownName)
}

func TestAnalyze_DuplicateAttributeCollidesWithInherited(t *testing.T) {
	_, a := analyze(t, `
type Animal() {
	name = "rex";
}
type Dog() inherits Animal() {
	name = "fido";
}
`)
	requireKind(t, a, errors.KindRedeclaration)
}

func TestAnalyze_MemberAccessOnUnknownAttribute(t *testing.T) {
	_, a := analyze(t, `
type Point(x: Number) {
	x = x;
}
print(new Point(1).y);
`)
	requireKind(t, a, errors.KindUnknownName)
}

func TestAnalyze_NewWithWrongArity(t *testing.T) {
	_, a := analyze(t, `
type Point(x: Number, y: Number) {
	x = x;
	y = y;
}
print(new Point(1));
`)
	requireKind(t, a, errors.KindArityMismatch)
}

func TestAnalyze_IfElseTypesAsLCA(t *testing.T) {
	prog, a := analyze(t, `
type Animal() { }
type Dog() inherits Animal() { }
type Cat() inherits Animal() { }
let x = true in if (x) new Dog() else new Cat();
`)
	requireNoErrors(t, a)
	letExpr := prog.Exprs[0].(*ast.LetExpr)
	ifExpr := letExpr.Body.(*ast.IfExpr)
	if got := ifExpr.GetType(); got != "Animal" {
		t.Errorf("if/else LCA type = %s, want Animal", got)
	}
}

func TestAnalyze_IfWithoutElseIsObject(t *testing.T) {
	prog, a := analyze(t, "if (true) 1;")
	requireNoErrors(t, a)
	ifExpr := prog.Exprs[0].(*ast.IfExpr)
	if got := ifExpr.GetType(); got != types.Object {
		t.Errorf("if without else type = %s, want Object", got)
	}
}

func TestAnalyze_IfConditionMustBeBoolean(t *testing.T) {
	_, a := analyze(t, "if (1) 2;")
	requireKind(t, a, errors.KindTypeMismatch)
}

func TestAnalyze_WhileIsObject(t *testing.T) {
	prog, a := analyze(t, "while (true) 1;")
	requireNoErrors(t, a)
	whileExpr := prog.Exprs[0].(*ast.WhileExpr)
	if got := whileExpr.GetType(); got != types.Object {
		t.Errorf("while type = %s, want Object", got)
	}
}

func TestAnalyze_ForRangeMustBeNumber(t *testing.T) {
	_, a := analyze(t, `for (i in range("a", 3)) print(i);`)
	requireKind(t, a, errors.KindTypeMismatch)
}

func TestAnalyze_ForLoopVarIsNumberInBody(t *testing.T) {
	prog, a := analyze(t, `for (i in range(0, 3)) print(i + 1);`)
	requireNoErrors(t, a)
	forExpr := prog.Exprs[0].(*ast.ForExpr)
	if got := forExpr.GetType(); got != types.Object {
		t.Errorf("for type = %s, want Object", got)
	}
}

func TestAnalyze_LetShadowing(t *testing.T) {
	prog, a := analyze(t, "let x = 1 in let x = true in x;")
	requireNoErrors(t, a)
	outer := prog.Exprs[0].(*ast.LetExpr)
	inner := outer.Body.(*ast.LetExpr)
	ident := inner.Body.(*ast.Identifier)
	if got := ident.GetType(); got != types.Boolean {
		t.Errorf("shadowed x type = %s, want Boolean", got)
	}
}

func TestAnalyze_BlockValueIsLastExpr(t *testing.T) {
	prog, a := analyze(t, "{ 1; true; };")
	requireNoErrors(t, a)
	block := prog.Exprs[0].(*ast.BlockExpr)
	if got := block.GetType(); got != types.Boolean {
		t.Errorf("block type = %s, want Boolean", got)
	}
}

func TestAnalyze_AssignRequiresSubtype(t *testing.T) {
	_, a := analyze(t, `let x = 1 in x := "a";`)
	requireKind(t, a, errors.KindTypeMismatch)
}

func TestAnalyze_AssignToUndefinedIdentifier(t *testing.T) {
	_, a := analyze(t, "x := 1;")
	requireKind(t, a, errors.KindUnknownName)
}

func TestAnalyze_AssignToAttributeThroughSelf(t *testing.T) {
	_, a := analyze(t, `
type Counter(start: Number) {
	count = start;
	bump(): Number => self.count := self.count + 1;
}
print(new Counter(0).bump());
`)
	requireNoErrors(t, a)
}

func TestAnalyze_MethodCallOnPrimitiveIsError(t *testing.T) {
	_, a := analyze(t, "print(1.foo());")
	requireKind(t, a, errors.KindTypeMismatch)
}

func TestAnalyze_DuplicateFunctionDeclaration(t *testing.T) {
	_, a := analyze(t, `
function f(): Number => 1;
function f(): Number => 2;
`)
	requireKind(t, a, errors.KindRedeclaration)
}

func TestAnalyze_DuplicateTypeDeclaration(t *testing.T) {
	_, a := analyze(t, `
type A() { }
type A() { }
`)
	requireKind(t, a, errors.KindRedeclaration)
}
