package parser

import (
	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/lexer"
)

// parseFunctionDecl parses `function name(params): ReturnType body`,
// where body is `=> expr;` or a `{ block }`. PRE: curToken is `function`.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	params := p.parseParamList()

	if !p.expectPeek(lexer.COLON) {
		return nil
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	returnType := p.curToken.Literal

	body := p.parseFunctionBody()
	if body == nil {
		return nil
	}

	return &ast.FunctionDecl{Token: tok, Name: name, Params: params, ReturnType: returnType, Body: body}
}

// parseFunctionBody parses `=> expr;` or `{ block }`, leaving curToken on
// the trailing `;` for the arrow form, or on `}` for the block form.
func (p *Parser) parseFunctionBody() ast.Expr {
	switch {
	case p.peekTokenIs(lexer.ARROW):
		p.nextToken() // consume '=>'
		p.nextToken() // move to body expression
		body := p.parseExpression(LOWEST)
		if body == nil {
			return nil
		}
		if !p.expectPeek(lexer.SEMI) {
			return nil
		}
		return body
	case p.peekTokenIs(lexer.LBRACE):
		p.nextToken() // consume '{'
		return p.parseBlockExpr()
	default:
		p.peekError(lexer.ARROW)
		return nil
	}
}

// parseParamList parses `(name: Type, ...)`. PRE: curToken is '('.
// POST: curToken is ')'.
func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	for {
		param, ok := p.parseParam()
		if !ok {
			return params
		}
		params = append(params, param)
		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken() // consume ','
		p.nextToken() // move to next param name
	}

	if !p.expectPeek(lexer.RPAREN) {
		return params
	}
	return params
}

// parseParam parses `name: Type`. PRE: curToken is the param name.
func (p *Parser) parseParam() (ast.Param, bool) {
	if !p.curTokenIs(lexer.IDENT) {
		p.addError(p.curToken.Pos, "expected parameter name")
		return ast.Param{}, false
	}
	name := p.curToken.Literal
	span := p.curToken.Pos

	if !p.expectPeek(lexer.COLON) {
		return ast.Param{}, false
	}
	if !p.expectPeek(lexer.IDENT) {
		return ast.Param{}, false
	}
	return ast.Param{Name: name, Type: p.curToken.Literal, Span: span}, true
}
