package ast

import (
	"strings"

	"github.com/hulklang/hulkc/internal/lexer"
)

// Branch is one `if`/`elif` arm: a condition and its result expression.
type Branch struct {
	Condition Expr
	Body      Expr
}

// IfExpr is an if/elif/else chain. Else is nil when the chain has no
// else clause, in which case the analyzer types the whole expression as
// Object regardless of the then-branch's type (spec §4.3).
type IfExpr struct {
	typedNode
	Token   lexer.Token
	Clauses []Branch // first entry is the `if`, rest are `elif`
	Else    Expr     // nil if absent
}

func (n *IfExpr) exprNode()           {}
func (n *IfExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *IfExpr) String() string {
	var sb strings.Builder
	for i, c := range n.Clauses {
		if i == 0 {
			sb.WriteString("if (")
		} else {
			sb.WriteString(" elif (")
		}
		sb.WriteString(c.Condition.String())
		sb.WriteString(") ")
		sb.WriteString(c.Body.String())
	}
	if n.Else != nil {
		sb.WriteString(" else ")
		sb.WriteString(n.Else.String())
	}
	return sb.String()
}

// WhileExpr is a `while (cond) body` loop. Its value, per spec §4.3, is
// typed Object; the code generator lowers any consumption of that value
// to a typed zero default (spec §9, resolved open question).
type WhileExpr struct {
	typedNode
	Token     lexer.Token
	Condition Expr
	Body      Expr
}

func (n *WhileExpr) exprNode()           {}
func (n *WhileExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *WhileExpr) String() string {
	return "while (" + n.Condition.String() + ") " + n.Body.String()
}

// ForExpr is `for (Var in range(Start,End)) Body`, already desugared by
// the parser from the `range(a,b)` call-shaped surface syntax (spec
// §4.1). Var is bound as Number within Body.
type ForExpr struct {
	typedNode
	Token lexer.Token
	Var   string
	Start Expr
	End   Expr
	Body  Expr
}

func (n *ForExpr) exprNode()           {}
func (n *ForExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *ForExpr) String() string {
	return "for (" + n.Var + " in range(" + n.Start.String() + ", " + n.End.String() + ")) " + n.Body.String()
}

// LetBinding is one `name = initializer` entry of a `let` expression.
// Attribute initializers have the same fields but their own type,
// AttributeDecl, evaluated by the constructor.
type LetBinding struct {
	Name string
	Init Expr
	Span lexer.Position
}

// LetExpr is `let b1, b2, ... in body`. Bindings are analyzed and
// lowered left to right, each extending the scope the next binding and
// the body see — this is what makes `let x = 1 in let x = true in x`
// resolve the inner x as Boolean (spec §8 boundary behavior: shadowing).
type LetExpr struct {
	typedNode
	Token    lexer.Token
	Bindings []LetBinding
	Body     Expr
}

func (n *LetExpr) exprNode()           {}
func (n *LetExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *LetExpr) String() string {
	parts := make([]string, len(n.Bindings))
	for i, b := range n.Bindings {
		parts[i] = b.Name + " = " + b.Init.String()
	}
	return "let " + strings.Join(parts, ", ") + " in " + n.Body.String()
}

// BlockExpr is `{ e1; e2; ...; en }`. Its value is the last
// sub-expression's value, or Object if empty (spec §8 boundary
// behavior).
type BlockExpr struct {
	typedNode
	Token lexer.Token
	Exprs []Expr
}

func (n *BlockExpr) exprNode()           {}
func (n *BlockExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *BlockExpr) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, e := range n.Exprs {
		sb.WriteString(e.String())
		sb.WriteString("; ")
	}
	sb.WriteString("}")
	return sb.String()
}
