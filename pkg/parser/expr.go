package parser

import (
	"strconv"

	"gradus/pkg/ast"
	"gradus/pkg/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	id := ast.NewIdentifier(p.curToken.Pos, p.curToken.Literal)
	return id
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	pos := p.curToken.Pos
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(pos, "could not parse %q as number", p.curToken.Literal)
	}
	lit := &ast.NumberLiteral{Value: v}
	lit.PosInfo = pos
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	lit := &ast.StringLiteral{Value: p.curToken.Literal}
	lit.PosInfo = p.curToken.Pos
	return lit
}

func (p *Parser) parsePatternLiteral() ast.Expression {
	lit := &ast.PatternLiteral{Pattern: p.curToken.Literal}
	lit.PosInfo = p.curToken.Pos
	return lit
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	lit := &ast.BoolLiteral{Value: p.curIs(token.TRUE)}
	lit.PosInfo = p.curToken.Pos
	return lit
}

func (p *Parser) parseNoneLiteral() ast.Expression {
	lit := &ast.NoneLiteral{}
	lit.PosInfo = p.curToken.Pos
	return lit
}

func (p *Parser) parseThisExpr() ast.Expression {
	e := &ast.ThisExpr{}
	e.PosInfo = p.curToken.Pos
	return e
}

// parseParenOrTuple disambiguates `(expr)` from `(a, b, ...)`: more
// than one comma-separated element (or a trailing comma) makes a
// tuple literal.
func (p *Parser) parseParenOrTuple() ast.Expression {
	pos := p.curToken.Pos
	p.nextToken()

	if p.curIs(token.RPAREN) {
		tup := &ast.TupleExpr{}
		tup.PosInfo = pos
		return tup
	}

	first := p.parseExpression(LOWEST)
	elems := []ast.Expression{first}
	isTuple := false

	for p.peekIs(token.COMMA) {
		isTuple = true
		p.nextToken()
		if p.peekIs(token.RPAREN) {
			break
		}
		p.nextToken()
		elems = append(elems, p.parseExpression(LOWEST))
	}
	if !p.expect(token.RPAREN) {
		return nil
	}

	if isTuple {
		tup := &ast.TupleExpr{Elements: elems}
		tup.PosInfo = pos
		return tup
	}
	paren := &ast.ParenExpr{Inner: first}
	paren.PosInfo = pos
	return paren
}

func (p *Parser) parseListExpr() ast.Expression {
	pos := p.curToken.Pos
	elems := p.parseExpressionList(token.RBRACKET)
	lst := &ast.ListExpr{Elements: elems}
	lst.PosInfo = pos
	return lst
}

func (p *Parser) parseExpressionList(end token.Kind) []ast.Expression {
	var list []ast.Expression
	if p.peekIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expect(end) {
		return nil
	}
	return list
}

func (p *Parser) parseUnaryExpr() ast.Expression {
	pos := p.curToken.Pos
	op := string(p.curToken.Kind)
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	e := &ast.UnaryExpr{Op: op, Operand: operand}
	e.PosInfo = pos
	return e
}

// parseNewExpr parses `new ClassName(args)`: the class name itself is
// parsed at CALL - 1 precedence so the following parenthesized argument
// list attaches as a CallExpr-shaped infix, then unwrapped into Class
// + Args on the NewExpr.
func (p *Parser) parseNewExpr() ast.Expression {
	pos := p.curToken.Pos
	p.nextToken()
	target := p.parseExpression(CALL - 1)
	e := &ast.NewExpr{}
	e.PosInfo = pos
	if call, ok := target.(*ast.CallExpr); ok {
		e.Class = call.Callee
		e.Args = call.Args
	} else {
		e.Class = target
	}
	return e
}

func (p *Parser) parseBinaryExpr(left ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	op := string(p.curToken.Kind)
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	e := &ast.BinaryExpr{Op: op, Left: left, Right: right}
	e.PosInfo = pos
	return e
}

func (p *Parser) parseCallExpr(callee ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	args := p.parseExpressionList(token.RPAREN)
	e := &ast.CallExpr{Callee: callee, Args: args}
	e.PosInfo = pos
	return e
}

func (p *Parser) parseIndexExpr(object ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if !p.expect(token.RBRACKET) {
		return nil
	}
	e := &ast.IndexExpr{Object: object, Index: idx}
	e.PosInfo = pos
	return e
}

func (p *Parser) parseMemberExpr(object ast.Expression) ast.Expression {
	pos := p.curToken.Pos
	if !p.expect(token.IDENT) {
		return nil
	}
	e := &ast.MemberExpr{Object: object, Property: p.curToken.Literal}
	e.PosInfo = pos
	return e
}
