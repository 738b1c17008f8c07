package parser

import (
	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/errors"
	"github.com/hulklang/hulkc/internal/lexer"
)

// parseIfExpr parses `if (cond) body (elif (cond) body)* (else body)?`.
func (p *Parser) parseIfExpr() ast.Expr {
	tok := p.curToken
	expr := &ast.IfExpr{Token: tok}

	branch, ok := p.parseIfClause()
	if !ok {
		return nil
	}
	expr.Clauses = append(expr.Clauses, branch)

	for p.peekTokenIs(lexer.ELIF) {
		p.nextToken() // consume 'elif'
		branch, ok := p.parseIfClause()
		if !ok {
			return nil
		}
		expr.Clauses = append(expr.Clauses, branch)
	}

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken() // consume 'else'
		p.nextToken() // move to else body
		elseBody := p.parseExpression(LOWEST)
		if elseBody == nil {
			return nil
		}
		expr.Else = elseBody
	}

	return expr
}

// parseIfClause parses `(cond) body`. PRE: curToken is `if` or `elif`.
func (p *Parser) parseIfClause() (ast.Branch, bool) {
	if !p.expectPeek(lexer.LPAREN) {
		return ast.Branch{}, false
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return ast.Branch{}, false
	}
	if !p.expectPeek(lexer.RPAREN) {
		return ast.Branch{}, false
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return ast.Branch{}, false
	}
	return ast.Branch{Condition: cond, Body: body}, true
}

// parseWhileExpr parses `while (cond) body`.
func (p *Parser) parseWhileExpr() ast.Expr {
	tok := p.curToken
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	return &ast.WhileExpr{Token: tok, Condition: cond, Body: body}
}

// parseForExpr parses `for (x in range(a,b)) body`, validating the
// iterable shape and desugaring straight to a ForExpr (spec §4.1: any
// iterable other than a two-argument call to `range` is a parse error).
func (p *Parser) parseForExpr() ast.Expr {
	tok := p.curToken
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	varName := p.curToken.Literal

	if !p.expectPeek(lexer.IN) {
		return nil
	}
	if !p.expectPeek(lexer.IDENT) || p.curToken.Literal != "range" {
		p.errs = append(p.errs, errors.New(errors.KindInvalidForIterable, p.curToken.Pos,
			"invalid for iterable: expected 'range(start, end)'", p.source, p.file))
		return nil
	}
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	start := p.parseExpression(LOWEST)
	if start == nil {
		return nil
	}
	if !p.expectPeek(lexer.COMMA) {
		p.errs = append(p.errs, errors.New(errors.KindInvalidForIterable, p.curToken.Pos,
			"invalid for iterable: 'range' requires exactly two arguments", p.source, p.file))
		return nil
	}
	p.nextToken()
	end := p.parseExpression(LOWEST)
	if end == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	return &ast.ForExpr{Token: tok, Var: varName, Start: start, End: end, Body: body}
}

// parseLetExpr parses `let b1, b2, ... in body`.
func (p *Parser) parseLetExpr() ast.Expr {
	tok := p.curToken

	var bindings []ast.LetBinding
	for {
		binding, ok := p.parseLetBinding()
		if !ok {
			return nil
		}
		bindings = append(bindings, binding)
		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken() // consume ','
	}

	if !p.expectPeek(lexer.IN) {
		return nil
	}
	p.nextToken()
	body := p.parseExpression(LOWEST)
	if body == nil {
		return nil
	}
	return &ast.LetExpr{Token: tok, Bindings: bindings, Body: body}
}

// parseLetBinding parses `name = init`. PRE: curToken is the token
// before the binding (`let` or `,`).
func (p *Parser) parseLetBinding() (ast.LetBinding, bool) {
	if !p.expectPeek(lexer.IDENT) {
		return ast.LetBinding{}, false
	}
	name := p.curToken.Literal
	span := p.curToken.Pos
	if !p.expectPeek(lexer.ASSIGN) {
		return ast.LetBinding{}, false
	}
	p.nextToken()
	init := p.parseExpression(LOWEST)
	if init == nil {
		return ast.LetBinding{}, false
	}
	return ast.LetBinding{Name: name, Init: init, Span: span}, true
}

// parseBlockExpr parses `{ e1; e2; ...; en }`. A trailing `;` after the
// last expression is optional.
func (p *Parser) parseBlockExpr() ast.Expr {
	tok := p.curToken
	block := &ast.BlockExpr{Token: tok}

	p.nextToken()
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		block.Exprs = append(block.Exprs, expr)

		if p.peekTokenIs(lexer.SEMI) {
			p.nextToken() // consume ';'
		}
		p.nextToken()
	}

	if !p.curTokenIs(lexer.RBRACE) {
		p.addError(tok.Pos, "unterminated block: expected '}'")
		return nil
	}
	return block
}
