// Package ast: this file holds the object-oriented declaration forms —
// type definitions, their attribute initializers, and their methods.
package ast

import (
	"strings"

	"github.com/hulklang/hulkc/internal/lexer"
)

// AttributeDecl is one `name = initializer;` entry in a type body.
// Structurally this is the same shape as an assignment (spec §3), kept
// as its own named type here for clarity at the declaration level.
type AttributeDecl struct {
	Name string
	Init Expr
	Span lexer.Position
}

// TypeDecl is a user type definition: its constructor parameters,
// optional parent (with forwarded constructor arguments), attributes in
// declaration order, and methods indexed by name.
type TypeDecl struct {
	Token          lexer.Token
	Name           string
	CtorParams     []Param
	Parent         string // "" if no `inherits` clause
	ParentArgs     []Expr
	Attributes     []*AttributeDecl
	AttributeIndex map[string]*AttributeDecl
	Methods        map[string]*FunctionDecl
	MethodOrder    []string
}

func (n *TypeDecl) Pos() lexer.Position { return n.Token.Pos }

func (n *TypeDecl) String() string {
	var sb strings.Builder
	sb.WriteString("type ")
	sb.WriteString(n.Name)
	sb.WriteString("(")
	ctorParts := make([]string, len(n.CtorParams))
	for i, p := range n.CtorParams {
		ctorParts[i] = p.Name + ": " + p.Type
	}
	sb.WriteString(strings.Join(ctorParts, ", "))
	sb.WriteString(")")
	if n.Parent != "" {
		sb.WriteString(" inherits ")
		sb.WriteString(n.Parent)
		sb.WriteString("(")
		sb.WriteString(joinExprs(n.ParentArgs))
		sb.WriteString(")")
	}
	sb.WriteString(" {\n")
	for _, a := range n.Attributes {
		sb.WriteString("  " + a.Name + " = " + a.Init.String() + ";\n")
	}
	for _, name := range n.MethodOrder {
		m := n.Methods[name]
		sb.WriteString("  " + m.String())
	}
	sb.WriteString("}\n")
	return sb.String()
}

// LookupAttribute returns the attribute declaration named name, if this
// type declares it directly (not considering inheritance — ancestor
// lookup goes through types.Env.AttributeOf).
func (n *TypeDecl) LookupAttribute(name string) (*AttributeDecl, bool) {
	a, ok := n.AttributeIndex[name]
	return a, ok
}
