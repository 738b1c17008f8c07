package parser

import (
	"strconv"

	"github.com/hulklang/hulkc/internal/ast"
	"github.com/hulklang/hulkc/internal/lexer"
)

func (p *Parser) parseNumberLiteral() ast.Expr {
	tok := p.curToken
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.addError(tok.Pos, "invalid number literal '"+tok.Literal+"'")
		return nil
	}
	return &ast.NumberLiteral{Token: tok, Value: v}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	tok := p.curToken
	return &ast.BoolLiteral{Token: tok, Value: tok.Type == lexer.TRUE}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	tok := p.curToken
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

// parseIdentifierOrCall handles a bare identifier, a global function call
// `name(args)`, or the `self` receiver — calls are a tight primary-level
// form, so the lookahead for `(` happens right here.
func (p *Parser) parseIdentifierOrCall() ast.Expr {
	tok := p.curToken
	if !p.peekTokenIs(lexer.LPAREN) {
		return &ast.Identifier{Token: tok, Name: tok.Literal}
	}

	p.nextToken() // move onto '('
	p.nextToken() // move to the first argument, or ')'
	args := p.parseExprList(lexer.RPAREN)
	return &ast.CallExpr{Token: tok, Function: tok.Literal, Args: args}
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	tok := p.curToken
	p.nextToken()
	operand := p.parseExpression(UNARY)
	if operand == nil {
		return nil
	}
	return &ast.UnaryExpr{Token: tok, Operator: tok.Literal, Operand: operand}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nextToken() // consume '('
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	tok := p.curToken
	prec := currentPrecedence(tok.Type)
	if rightAssociative[tok.Type] {
		prec--
	}
	p.nextToken()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.BinaryExpr{Token: tok, Operator: tok.Literal, Left: left, Right: right}
}

func (p *Parser) parseAssignExpr(target ast.Expr) ast.Expr {
	tok := p.curToken
	switch target.(type) {
	case *ast.Identifier, *ast.MemberAccessExpr:
	default:
		p.addError(tok.Pos, "invalid assignment target")
	}
	prec := ASSIGN - 1 // := is right-associative
	p.nextToken()
	value := p.parseExpression(prec)
	if value == nil {
		return nil
	}
	return &ast.AssignExpr{Token: tok, Target: target, Value: value}
}

// parseMemberOrMethodCall handles `receiver.name` and `receiver.name(args)`.
func (p *Parser) parseMemberOrMethodCall(receiver ast.Expr) ast.Expr {
	dotTok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	name := p.curToken.Literal

	if !p.peekTokenIs(lexer.LPAREN) {
		return &ast.MemberAccessExpr{Token: dotTok, Receiver: receiver, Name: name}
	}

	p.nextToken() // move onto '('
	p.nextToken() // move to the first argument, or ')'
	args := p.parseExprList(lexer.RPAREN)
	return &ast.MethodCallExpr{Token: dotTok, Receiver: receiver, Method: name, Args: args}
}

func (p *Parser) parseNewExpr() ast.Expr {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	typeName := p.curToken.Literal
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken() // consume '('
	args := p.parseExprList(lexer.RPAREN)
	return &ast.NewExpr{Token: tok, TypeName: typeName, Args: args}
}

func (p *Parser) parsePrintExpr() ast.Expr {
	tok := p.curToken
	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return &ast.PrintExpr{Token: tok, Arg: arg}
}

// parseExprList parses a comma-separated list of expressions up to and
// including the closing token. PRE: curToken is the first list element,
// or end itself when the list is empty (the opening delimiter has
// already been passed). POST: curToken is end.
func (p *Parser) parseExprList(end lexer.TokenType) []ast.Expr {
	var list []ast.Expr

	if p.curTokenIs(end) {
		return list
	}

	expr := p.parseExpression(LOWEST)
	if expr != nil {
		list = append(list, expr)
	}

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken() // consume ','
		p.nextToken() // move to next element
		expr := p.parseExpression(LOWEST)
		if expr != nil {
			list = append(list, expr)
		}
	}

	if !p.expectPeek(end) {
		return list
	}
	return list
}
