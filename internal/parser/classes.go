package parser

import (
	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/lexer"
)

// parseTypeDecl parses `type Name(params?) (inherits Parent(args?))? { body }`.
// PRE: curToken is `type`.
func (p *Parser) parseTypeDecl() *ast.TypeDecl {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	ctorParams := p.parseParamList()

	decl := &ast.TypeDecl{
		Token:          tok,
		Name:           name,
		CtorParams:     ctorParams,
		AttributeIndex: map[string]*ast.AttributeDecl{},
		Methods:        map[string]*ast.FunctionDecl{},
	}

	if p.peekTokenIs(lexer.INHERITS) {
		p.nextToken() // consume 'inherits'
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		decl.Parent = p.curToken.Literal
		if !p.expectPeek(lexer.LPAREN) {
			return nil
		}
		if p.peekTokenIs(lexer.RPAREN) {
			p.nextToken()
		} else {
			p.nextToken()
			decl.ParentArgs = p.parseExprList(lexer.RPAREN)
		}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil
	}
	p.nextToken() // move to first body item, or '}'

	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		if !p.parseTypeBodyItem(decl) {
			return nil
		}
		p.nextToken()
	}

	if !p.curTokenIs(lexer.RBRACE) {
		p.addError(tok.Pos, "unterminated type body: expected '}'")
		return nil
	}

	return decl
}

// parseTypeBodyItem parses one `attr = expr;` or method definition, PRE:
// curToken is the item's first token; POST: curToken is the trailing ';'.
func (p *Parser) parseTypeBodyItem(decl *ast.TypeDecl) bool {
	if !p.curTokenIs(lexer.IDENT) {
		p.addError(p.curToken.Pos, "expected attribute or method definition in type body")
		return false
	}

	if p.peekTokenIs(lexer.ASSIGN) {
		return p.parseAttributeDecl(decl)
	}
	if p.peekTokenIs(lexer.LPAREN) {
		return p.parseMethodDecl(decl)
	}

	p.addError(p.curToken.Pos, "expected '=' or '(' after identifier in type body")
	return false
}

func (p *Parser) parseAttributeDecl(decl *ast.TypeDecl) bool {
	name := p.curToken.Literal
	span := p.curToken.Pos

	if !p.expectPeek(lexer.ASSIGN) {
		return false
	}
	p.nextToken()
	init := p.parseExpression(LOWEST)
	if init == nil {
		return false
	}
	if !p.expectPeek(lexer.SEMI) {
		return false
	}

	attr := &ast.AttributeDecl{Name: name, Init: init, Span: span}
	if _, dup := decl.AttributeIndex[name]; dup {
		p.addError(span, "duplicate attribute '"+name+"' in type '"+decl.Name+"'")
	}
	decl.Attributes = append(decl.Attributes, attr)
	decl.AttributeIndex[name] = attr
	return true
}

func (p *Parser) parseMethodDecl(decl *ast.TypeDecl) bool {
	tok := p.curToken
	name := p.curToken.Literal

	if !p.expectPeek(lexer.LPAREN) {
		return false
	}
	params := p.parseParamList()

	if !p.expectPeek(lexer.COLON) {
		return false
	}
	if !p.expectPeek(lexer.IDENT) {
		return false
	}
	returnType := p.curToken.Literal

	var body ast.Expr
	switch {
	case p.peekTokenIs(lexer.ARROW):
		p.nextToken() // consume '=>'
		p.nextToken()
		body = p.parseExpression(LOWEST)
		if body == nil {
			return false
		}
	case p.peekTokenIs(lexer.LBRACE):
		p.nextToken() // consume '{'
		body = p.parseBlockExpr()
		if body == nil {
			return false
		}
	default:
		p.peekError(lexer.ARROW)
		return false
	}

	if !p.expectPeek(lexer.SEMI) {
		return false
	}

	if _, dup := decl.Methods[name]; dup {
		p.addError(tok.Pos, "duplicate method '"+name+"' in type '"+decl.Name+"'")
	}
	method := &ast.FunctionDecl{Token: tok, Name: name, Params: params, ReturnType: returnType, Body: body}
	decl.Methods[name] = method
	decl.MethodOrder = append(decl.MethodOrder, name)
	return true
}
