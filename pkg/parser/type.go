package parser

import (
	"gradus/pkg/ast"
	"gradus/pkg/token"
)

// parseTypeExpr parses the small type-annotation sublanguage:
// `Any`, `void`, a possibly-generic name (`list<int>`), a
// parenthesized tuple (`(int, str)`), or a callable signature
// (`func(int, str?) -> bool`).
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	switch p.curToken.Kind {
	case token.ANY:
		t := &ast.AnyTypeExpr{}
		t.PosInfo = p.curToken.Pos
		return t
	case token.VOID:
		t := &ast.VoidTypeExpr{}
		t.PosInfo = p.curToken.Pos
		return t
	case token.FUNC:
		return p.parseCallableTypeExpr()
	case token.LPAREN:
		return p.parseTupleTypeExpr()
	case token.IDENT:
		return p.parseNameTypeExpr()
	default:
		p.errorf(p.curToken.Pos, "expected type, got %s", p.curToken.Kind)
		return nil
	}
}

func (p *Parser) parseNameTypeExpr() ast.TypeExpr {
	pos := p.curToken.Pos
	name := p.curToken.Literal
	nt := &ast.NameTypeExpr{Name: name}
	nt.PosInfo = pos

	if p.peekIs(token.LT) {
		p.nextToken()
		p.nextToken()
		nt.Args = append(nt.Args, p.parseTypeExpr())
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			nt.Args = append(nt.Args, p.parseTypeExpr())
		}
		if !p.expect(token.GT) {
			return nil
		}
	}
	return nt
}

func (p *Parser) parseTupleTypeExpr() ast.TypeExpr {
	pos := p.curToken.Pos
	tt := &ast.TupleTypeExpr{}
	tt.PosInfo = pos

	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return tt
	}
	p.nextToken()
	tt.Items = append(tt.Items, p.parseTypeExpr())
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		tt.Items = append(tt.Items, p.parseTypeExpr())
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return tt
}

func (p *Parser) parseCallableTypeExpr() ast.TypeExpr {
	pos := p.curToken.Pos
	ct := &ast.CallableTypeExpr{}
	ct.PosInfo = pos

	if !p.expect(token.LPAREN) {
		return nil
	}

	if !p.peekIs(token.RPAREN) {
		p.nextToken()
		for {
			if p.curIs(token.ELLIPSIS) {
				p.nextToken()
				ct.RestType = p.parseTypeExpr()
				break
			}
			item := p.parseTypeExpr()
			optional := false
			if p.peekIs(token.QUESTION) {
				p.nextToken()
				optional = true
			}
			ct.Params = append(ct.Params, item)
			ct.Optional = append(ct.Optional, optional)
			if !p.peekIs(token.COMMA) {
				break
			}
			p.nextToken()
			p.nextToken()
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.ARROW) {
		return nil
	}
	p.nextToken()
	ct.Ret = p.parseTypeExpr()
	return ct
}
