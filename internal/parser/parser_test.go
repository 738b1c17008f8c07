package parser

import (
	"testing"

	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := New(l, src, "")
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	return prog
}

func TestParseExpression_ArithmeticPrecedence(t *testing.T) {
	prog := parseProgram(t, "print(2 + 3 * 4);")
	if len(prog.Exprs) != 1 {
		t.Fatalf("expected 1 top-level expr, got %d", len(prog.Exprs))
	}
	printExpr, ok := prog.Exprs[0].(*ast.PrintExpr)
	if !ok {
		t.Fatalf("expected PrintExpr, got %T", prog.Exprs[0])
	}
	bin, ok := printExpr.Arg.(*ast.BinaryExpr)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected top-level '+' binary, got %#v", printExpr.Arg)
	}
	rightMul, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rightMul.Operator != "*" {
		t.Fatalf("expected '*' to bind tighter than '+', got %#v", bin.Right)
	}
}

func TestParseExpression_PowerIsRightAssociative(t *testing.T) {
	prog := parseProgram(t, "2 ^ 3 ^ 2;")
	bin := prog.Exprs[0].(*ast.BinaryExpr)
	if bin.Operator != "^" {
		t.Fatalf("expected outer '^', got %s", bin.Operator)
	}
	if _, ok := bin.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected right-associative nesting on the right, got %#v", bin.Right)
	}
	if _, ok := bin.Left.(*ast.NumberLiteral); !ok {
		t.Fatalf("expected left operand to be a bare literal, got %#v", bin.Left)
	}
}

func TestParseExpression_DestructiveAssignIsRightAssociativeAndLowest(t *testing.T) {
	prog := parseProgram(t, "let x = 1 in x := 2 | true;")
	letExpr := prog.Exprs[0].(*ast.LetExpr)
	assign, ok := letExpr.Body.(*ast.AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr body, got %#v", letExpr.Body)
	}
	if _, ok := assign.Value.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected '|' to bind tighter than ':=', got %#v", assign.Value)
	}
}

func TestParseForExpr_DesugarsRangeCall(t *testing.T) {
	prog := parseProgram(t, "for (i in range(0, 10)) print(i);")
	forExpr, ok := prog.Exprs[0].(*ast.ForExpr)
	if !ok {
		t.Fatalf("expected ForExpr, got %T", prog.Exprs[0])
	}
	if forExpr.Var != "i" {
		t.Errorf("Var = %q, want i", forExpr.Var)
	}
	if _, ok := forExpr.Start.(*ast.NumberLiteral); !ok {
		t.Errorf("Start = %#v, want NumberLiteral", forExpr.Start)
	}
}

func TestParseForExpr_RejectsNonRangeIterable(t *testing.T) {
	l := lexer.New("for (i in things()) print(i);")
	p := New(l, "", "")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for non-range for-iterable")
	}
}

func TestParseTypeDecl_WithInheritsAndMembers(t *testing.T) {
	src := `type Animal(name: String) {
  name = name;
  speak(): String => "...";
}
type Dog(name: String) inherits Animal(name) {
  speak(): String => "Woof";
}
`
	prog := parseProgram(t, src)
	if len(prog.Types) != 2 {
		t.Fatalf("expected 2 type decls, got %d", len(prog.Types))
	}
	dog := prog.Types[1]
	if dog.Parent != "Animal" {
		t.Errorf("Parent = %q, want Animal", dog.Parent)
	}
	if len(dog.ParentArgs) != 1 {
		t.Errorf("expected 1 parent arg, got %d", len(dog.ParentArgs))
	}
	if _, ok := dog.Methods["speak"]; !ok {
		t.Error("expected Dog to declare method 'speak'")
	}
}

func TestParseTypeDecl_DuplicateAttributeRecordsError(t *testing.T) {
	l := lexer.New(`type C() { x = 1; x = 2; }`)
	p := New(l, "", "")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a duplicate-attribute parse error")
	}
}

func TestParseFunctionDecl_ArrowAndBlockBodies(t *testing.T) {
	src := `function square(x: Number): Number => x * x;
function run(): Number {
  let y = 2 in y;
}
`
	prog := parseProgram(t, src)
	if len(prog.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(prog.Functions))
	}
	if _, ok := prog.Functions[0].Body.(*ast.BinaryExpr); !ok {
		t.Errorf("expected arrow body to be BinaryExpr, got %#v", prog.Functions[0].Body)
	}
	if _, ok := prog.Functions[1].Body.(*ast.BlockExpr); !ok {
		t.Errorf("expected block body to be BlockExpr, got %#v", prog.Functions[1].Body)
	}
}

func TestParseIfElifElse(t *testing.T) {
	prog := parseProgram(t, `if (true) 1 elif (false) 2 else 3;`)
	ifExpr := prog.Exprs[0].(*ast.IfExpr)
	if len(ifExpr.Clauses) != 2 {
		t.Fatalf("expected if+elif = 2 clauses, got %d", len(ifExpr.Clauses))
	}
	if ifExpr.Else == nil {
		t.Error("expected an else clause")
	}
}

func TestParseMethodCallAndMemberAccess(t *testing.T) {
	prog := parseProgram(t, `print((new A(7)).get());`)
	printExpr := prog.Exprs[0].(*ast.PrintExpr)
	call, ok := printExpr.Arg.(*ast.MethodCallExpr)
	if !ok {
		t.Fatalf("expected MethodCallExpr, got %#v", printExpr.Arg)
	}
	if call.Method != "get" {
		t.Errorf("Method = %q, want get", call.Method)
	}
	if _, ok := call.Receiver.(*ast.NewExpr); !ok {
		t.Errorf("expected receiver to be NewExpr, got %#v", call.Receiver)
	}
}
