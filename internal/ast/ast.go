// Package ast defines the Abstract Syntax Tree node types for HULK.
// Every node carries its source span and, for expressions, a mutable
// resolved-type slot written once by the semantic analyzer (spec C3)
// and read by the code generator (spec C5).
package ast

import (
	"bytes"
	"strings"

	"github.com/hulklang/hulkc/internal/lexer"
	"github.com/hulklang/hulkc/internal/types"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// Pos returns the position of the first token of this node.
	Pos() lexer.Position
	// String renders a debug representation of the node.
	String() string
}

// Expr is any node that produces a value. All expression nodes carry a
// mutable resolved-type slot.
type Expr interface {
	Node
	exprNode()
	// GetType returns the resolved type name, or "" if not yet set.
	GetType() string
	// SetType records the type resolved for this node by Pass B.
	SetType(t string)
}

// typedNode is embedded by every expression node to provide the
// resolved-type slot via GetType/SetType, mirroring the accessor pattern
// used throughout the expression hierarchy.
type typedNode struct {
	Type string
}

func (n *typedNode) GetType() string  { return n.Type }
func (n *typedNode) SetType(t string) { n.Type = t }

// Program is the root node: an ordered sequence of top-level items.
// Type and function definitions may appear in any order and are visible
// throughout the program (Pass A registers them before Pass B runs);
// top-level expressions execute in source order as the program's entry.
type Program struct {
	Types     []*TypeDecl
	Functions []*FunctionDecl
	Exprs     []Expr
	// Order preserves the original top-level sequence of type defs,
	// function defs, and expression statements, for pretty-printing and
	// for running top-level expressions in source order.
	Order []TopLevelItem
}

// TopLevelItem tags one entry in Program.Order so the driver can recover
// the original interleaving of definitions and expression statements.
type TopLevelItem struct {
	Kind  TopLevelKind
	Index int // index into Program.Types / Functions / Exprs
}

// TopLevelKind distinguishes the three kinds of top-level item.
type TopLevelKind int

const (
	TopLevelType TopLevelKind = iota
	TopLevelFunction
	TopLevelExpr
)

func (p *Program) Pos() lexer.Position {
	for _, item := range p.Order {
		switch item.Kind {
		case TopLevelType:
			return p.Types[item.Index].Pos()
		case TopLevelFunction:
			return p.Functions[item.Index].Pos()
		case TopLevelExpr:
			return p.Exprs[item.Index].Pos()
		}
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, item := range p.Order {
		switch item.Kind {
		case TopLevelType:
			sb.WriteString(p.Types[item.Index].String())
		case TopLevelFunction:
			sb.WriteString(p.Functions[item.Index].String())
		case TopLevelExpr:
			sb.WriteString(p.Exprs[item.Index].String())
			sb.WriteString(";\n")
		}
	}
	return sb.String()
}

// ----------------------------------------------------------------------
// Literals and identifiers
// ----------------------------------------------------------------------

// NumberLiteral is a numeric literal, always of type Number.
type NumberLiteral struct {
	typedNode
	Token lexer.Token
	Value float64
}

func (n *NumberLiteral) exprNode()          {}
func (n *NumberLiteral) Pos() lexer.Position { return n.Token.Pos }
func (n *NumberLiteral) String() string      { return n.Token.Literal }

// BoolLiteral is a boolean literal, always of type Boolean.
type BoolLiteral struct {
	typedNode
	Token lexer.Token
	Value bool
}

func (n *BoolLiteral) exprNode()           {}
func (n *BoolLiteral) Pos() lexer.Position { return n.Token.Pos }
func (n *BoolLiteral) String() string      { return n.Token.Literal }

// StringLiteral is a string literal, always of type String.
type StringLiteral struct {
	typedNode
	Token lexer.Token
	Value string
}

func (n *StringLiteral) exprNode()           {}
func (n *StringLiteral) Pos() lexer.Position { return n.Token.Pos }
func (n *StringLiteral) String() string      { return `"` + n.Value + `"` }

// Identifier is a reference to a bound name (let binding, parameter, or
// self).
type Identifier struct {
	typedNode
	Token lexer.Token
	Name  string
}

func (n *Identifier) exprNode()           {}
func (n *Identifier) Pos() lexer.Position { return n.Token.Pos }
func (n *Identifier) String() string      { return n.Name }

// ----------------------------------------------------------------------
// Operators
// ----------------------------------------------------------------------

// UnaryExpr is a prefix unary operator application: ! - +.
type UnaryExpr struct {
	typedNode
	Token    lexer.Token
	Operator string
	Operand  Expr
}

func (n *UnaryExpr) exprNode()           {}
func (n *UnaryExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *UnaryExpr) String() string {
	return "(" + n.Operator + n.Operand.String() + ")"
}

// BinaryExpr is an infix binary operator application.
type BinaryExpr struct {
	typedNode
	Token    lexer.Token
	Operator string
	Left     Expr
	Right    Expr
}

func (n *BinaryExpr) exprNode()           {}
func (n *BinaryExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *BinaryExpr) String() string {
	var sb bytes.Buffer
	sb.WriteString("(")
	sb.WriteString(n.Left.String())
	sb.WriteString(" " + n.Operator + " ")
	sb.WriteString(n.Right.String())
	sb.WriteString(")")
	return sb.String()
}

// ----------------------------------------------------------------------
// Calls, member access, instantiation
// ----------------------------------------------------------------------

// CallExpr is a call to a global function by name.
type CallExpr struct {
	typedNode
	Token    lexer.Token
	Function string
	Args     []Expr
}

func (n *CallExpr) exprNode()           {}
func (n *CallExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *CallExpr) String() string {
	return n.Function + "(" + joinExprs(n.Args) + ")"
}

// MemberAccessExpr is `receiver.name`, reading an attribute.
type MemberAccessExpr struct {
	typedNode
	Token    lexer.Token
	Receiver Expr
	Name     string
}

func (n *MemberAccessExpr) exprNode()           {}
func (n *MemberAccessExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *MemberAccessExpr) String() string {
	return n.Receiver.String() + "." + n.Name
}

// MethodCallExpr is `receiver.name(args)`, dynamically dispatched.
type MethodCallExpr struct {
	typedNode
	Token    lexer.Token
	Receiver Expr
	Method   string
	Args     []Expr
}

func (n *MethodCallExpr) exprNode()           {}
func (n *MethodCallExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *MethodCallExpr) String() string {
	return n.Receiver.String() + "." + n.Method + "(" + joinExprs(n.Args) + ")"
}

// NewExpr is `new T(args)`, instantiating a user type.
type NewExpr struct {
	typedNode
	Token    lexer.Token
	TypeName string
	Args     []Expr
}

func (n *NewExpr) exprNode()           {}
func (n *NewExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *NewExpr) String() string {
	return "new " + n.TypeName + "(" + joinExprs(n.Args) + ")"
}

// PrintExpr is `print(e)`; its value is e's value.
type PrintExpr struct {
	typedNode
	Token lexer.Token
	Arg   Expr
}

func (n *PrintExpr) exprNode()           {}
func (n *PrintExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *PrintExpr) String() string      { return "print(" + n.Arg.String() + ")" }

// ----------------------------------------------------------------------
// Assignment
// ----------------------------------------------------------------------

// AssignExpr is destructive assignment `target := value`. Target must be
// an Identifier or MemberAccessExpr (checked by the semantic analyzer).
type AssignExpr struct {
	typedNode
	Token  lexer.Token
	Target Expr
	Value  Expr
}

func (n *AssignExpr) exprNode()           {}
func (n *AssignExpr) Pos() lexer.Position { return n.Token.Pos }
func (n *AssignExpr) String() string {
	return n.Target.String() + " := " + n.Value.String()
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// Ensure types package stays imported for downstream packages that type
// -assert against the well-known primitive name constants via this
// package's re-export (kept here so callers need not also import types
// purely to spell "Number"/"Boolean"/"String"/"Object").
const (
	NumberType  = types.Number
	BooleanType = types.Boolean
	StringType  = types.String
	ObjectType  = types.Object
)
