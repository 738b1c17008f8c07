// Package parser implements a Pratt (precedence-climbing) recursive
// descent parser for HULK source text, producing an internal/ast tree.
//
// Key patterns, in the spirit of the wider compiler:
//   - prefixParseFns/infixParseFns maps dispatch on the current token.
//   - Two-token lookahead (curToken/peekToken) is enough; HULK's grammar
//     needs no speculative backtracking.
//   - Errors accumulate in p.errs rather than aborting at the first
//     failure, so a single compile run can report more than one mistake.
package parser

import (
	"fmt"

	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/errors"
	"github.com/hulklang/hulkc/internal/lexer"
)

// Precedence levels (lowest to highest), per the grammar's operator
// table: `:=` binds loosest and right-associates; `^` binds tightest
// among binary operators and also right-associates.
const (
	_ int = iota
	LOWEST
	ASSIGN         // :=
	LOGIC_OR       // |
	LOGIC_AND      // &
	EQUALITY       // == !=
	RELATIONAL     // < <= > >=
	ADDITIVE       // + - @
	MULTIPLICATIVE // * / %
	POWER          // ^
	UNARY          // ! - + (prefix)
	CALL           // f(args), receiver.name, receiver.name(args), new T(args)
)

var precedences = map[lexer.TokenType]int{
	lexer.DESTRUCTIVE: ASSIGN,
	lexer.OR:          LOGIC_OR,
	lexer.AND:         LOGIC_AND,
	lexer.EQ:          EQUALITY,
	lexer.NEQ:         EQUALITY,
	lexer.LT:          RELATIONAL,
	lexer.LE:          RELATIONAL,
	lexer.GT:          RELATIONAL,
	lexer.GE:          RELATIONAL,
	lexer.PLUS:        ADDITIVE,
	lexer.MINUS:       ADDITIVE,
	lexer.AT:          ADDITIVE,
	lexer.STAR:        MULTIPLICATIVE,
	lexer.SLASH:       MULTIPLICATIVE,
	lexer.PERCENT:     MULTIPLICATIVE,
	lexer.CARET:       POWER,
	lexer.DOT:         CALL,
}

// rightAssociative holds the operator tokens that recurse into their own
// precedence level on the right-hand side instead of climbing past it.
var rightAssociative = map[lexer.TokenType]bool{
	lexer.DESTRUCTIVE: true,
	lexer.CARET:       true,
}

type prefixParseFn func() ast.Expr
type infixParseFn func(ast.Expr) ast.Expr

// Parser turns a token stream into a *ast.Program.
type Parser struct {
	l      *lexer.Lexer
	source string
	file   string

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn

	errs []*errors.CompilerError
}

// New creates a Parser reading from l. source is the original text (used
// to render diagnostics); file is an optional display name.
func New(l *lexer.Lexer, source, file string) *Parser {
	p := &Parser{l: l, source: source, file: file}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.NUMBER: p.parseNumberLiteral,
		lexer.TRUE:   p.parseBoolLiteral,
		lexer.FALSE:  p.parseBoolLiteral,
		lexer.STRING: p.parseStringLiteral,
		lexer.IDENT:  p.parseIdentifierOrCall,
		lexer.NOT:    p.parseUnaryExpr,
		lexer.MINUS:  p.parseUnaryExpr,
		lexer.PLUS:   p.parseUnaryExpr,
		lexer.LPAREN: p.parseGroupedExpr,
		lexer.NEW:    p.parseNewExpr,
		lexer.PRINT:  p.parsePrintExpr,
		lexer.IF:     p.parseIfExpr,
		lexer.WHILE:  p.parseWhileExpr,
		lexer.FOR:    p.parseForExpr,
		lexer.LET:    p.parseLetExpr,
		lexer.LBRACE: p.parseBlockExpr,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.OR:          p.parseBinaryExpr,
		lexer.AND:         p.parseBinaryExpr,
		lexer.EQ:          p.parseBinaryExpr,
		lexer.NEQ:         p.parseBinaryExpr,
		lexer.LT:          p.parseBinaryExpr,
		lexer.LE:          p.parseBinaryExpr,
		lexer.GT:          p.parseBinaryExpr,
		lexer.GE:          p.parseBinaryExpr,
		lexer.PLUS:        p.parseBinaryExpr,
		lexer.MINUS:       p.parseBinaryExpr,
		lexer.AT:          p.parseBinaryExpr,
		lexer.STAR:        p.parseBinaryExpr,
		lexer.SLASH:       p.parseBinaryExpr,
		lexer.PERCENT:     p.parseBinaryExpr,
		lexer.CARET:       p.parseBinaryExpr,
		lexer.DESTRUCTIVE: p.parseAssignExpr,
		lexer.DOT:         p.parseMemberOrMethodCall,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns accumulated parse diagnostics.
func (p *Parser) Errors() []*errors.CompilerError { return p.errs }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances and returns true if the peek token matches t,
// otherwise records an error and leaves the cursor untouched.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t lexer.TokenType) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	p.addError(p.peekToken.Pos, msg)
}

func (p *Parser) addError(pos lexer.Position, msg string) {
	p.errs = append(p.errs, errors.New(errors.KindParseError, pos, msg, p.source, p.file))
}

func (p *Parser) noPrefixParseFnError(t lexer.TokenType) {
	p.addError(p.curToken.Pos, fmt.Sprintf("unexpected token %s", t))
}

func currentPrecedence(t lexer.TokenType) int {
	if prec, ok := precedences[t]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression is the Pratt-parsing core: one prefix parse followed
// by a precedence-climbing loop over infix operators.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.SEMI) && precedence < currentPrecedence(p.peekToken.Type) {
		infix, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			break
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

// ParseProgram parses a full source file into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(lexer.EOF) {
		switch {
		case p.curTokenIs(lexer.TYPE):
			if td := p.parseTypeDecl(); td != nil {
				program.Types = append(program.Types, td)
				program.Order = append(program.Order, ast.TopLevelItem{Kind: ast.TopLevelType, Index: len(program.Types) - 1})
			}
		case p.curTokenIs(lexer.FUNCTION):
			if fn := p.parseFunctionDecl(); fn != nil {
				program.Functions = append(program.Functions, fn)
				program.Order = append(program.Order, ast.TopLevelItem{Kind: ast.TopLevelFunction, Index: len(program.Functions) - 1})
			}
		default:
			expr := p.parseExpression(LOWEST)
			if expr != nil {
				program.Exprs = append(program.Exprs, expr)
				program.Order = append(program.Order, ast.TopLevelItem{Kind: ast.TopLevelExpr, Index: len(program.Exprs) - 1})
			}
			if !p.expectPeek(lexer.SEMI) {
				p.synchronize()
			}
		}
		p.nextToken()
	}

	return program
}

// synchronize skips tokens after a parse error until a plausible
// top-level restart point (`;`, `type`, `function`, or EOF).
func (p *Parser) synchronize() {
	for !p.curTokenIs(lexer.EOF) {
		if p.curTokenIs(lexer.SEMI) {
			return
		}
		if p.peekTokenIs(lexer.TYPE) || p.peekTokenIs(lexer.FUNCTION) {
			return
		}
		p.nextToken()
	}
}
