package ast

import (
	"strings"

	"github.com/hulklang/hulkc/internal/lexer"
)

// Param is one function/method/constructor parameter: its name, declared
// type name, and source span.
type Param struct {
	Name string
	Type string
	Span lexer.Position
}

// FunctionDecl is a global function or, with an implicit leading `self`
// parameter prepended by the semantic analyzer, a method (spec §3:
// "Methods are the same shape with an implicit self prepended at
// analysis time"). Body is either an arrow-expression or a code block;
// both are represented uniformly as Body Expr.
type FunctionDecl struct {
	Token      lexer.Token
	Name       string
	Params     []Param
	ReturnType string
	Body       Expr
}

func (n *FunctionDecl) Pos() lexer.Position { return n.Token.Pos }
func (n *FunctionDecl) String() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = p.Name + ": " + p.Type
	}
	return "function " + n.Name + "(" + strings.Join(parts, ", ") + "): " + n.ReturnType + " " + n.Body.String() + ";\n"
}
