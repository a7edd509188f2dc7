package parser

import (
	"gradus/pkg/ast"
	"gradus/pkg/token"
)

// parseFuncDeclGroup parses one `func` declaration, then — if it was
// a signature-only entry (`;` instead of a body) — keeps consuming
// further signature-only `func` declarations of the same name,
// wrapping the run plus the final body-bearing declaration into an
// OverloadedFuncDecl. A single declaration with a body is returned
// as a bare *FuncDecl.
func (p *Parser) parseFuncDeclGroup() ast.Statement {
	first := p.parseFuncDecl(false)
	if first == nil || first.Body != nil {
		return first
	}

	group := &OverloadedFuncDeclBuilder{Name: first.Name}
	group.Signatures = append(group.Signatures, first)

	for p.peekIs(token.FUNC) {
		savedLexer, savedCur, savedPeek := *p.l, p.curToken, p.peekToken
		p.nextToken()
		if p.peekToken.Literal != group.Name {
			// A differently named func starts its own declaration.
			*p.l, p.curToken, p.peekToken = savedLexer, savedCur, savedPeek
			break
		}
		next := p.parseFuncDecl(false)
		if next == nil {
			break
		}
		if next.Body != nil {
			return group.Finish(next)
		}
		group.Signatures = append(group.Signatures, next)
	}
	// No implementation followed; treat the last signature as the
	// (degenerate, bodyless) implementation so the tree stays well
	// formed for the checker to reject with its own diagnostic.
	last := group.Signatures[len(group.Signatures)-1]
	group.Signatures = group.Signatures[:len(group.Signatures)-1]
	return group.Finish(last)
}

// OverloadedFuncDeclBuilder accumulates signature-only entries before
// the implementation arrives.
type OverloadedFuncDeclBuilder struct {
	Name       string
	Signatures []*ast.FuncDecl
}

func (b *OverloadedFuncDeclBuilder) Finish(impl *ast.FuncDecl) ast.Statement {
	if len(b.Signatures) == 0 {
		return impl
	}
	decl := &ast.OverloadedFuncDecl{
		Name:           b.Name,
		Signatures:     b.Signatures,
		Implementation: impl,
	}
	decl.PosInfo = impl.Pos()
	return decl
}

// parseFuncDecl parses `[static] func name(params) [-> Type] ( { body } | ; )`.
func (p *Parser) parseFuncDecl(isStatic bool) *ast.FuncDecl {
	pos := p.curToken.Pos
	if !p.expect(token.IDENT) {
		return nil
	}
	decl := &ast.FuncDecl{Name: p.curToken.Literal, IsStatic: isStatic}
	decl.PosInfo = pos

	if !p.expect(token.LPAREN) {
		return nil
	}
	decl.Params = p.parseParamList()

	if p.peekIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		decl.Ret = p.parseTypeExpr()
	}

	if p.peekIs(token.SEMI) {
		p.nextToken()
		return decl
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	decl.Body = p.parseBlock()
	return decl
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseParam())
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseParam())
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseParam() *ast.Param {
	param := &ast.Param{}
	if p.curIs(token.ELLIPSIS) {
		param.IsVarArg = true
		p.nextToken()
	}
	param.Name = p.curToken.Literal

	if p.peekIs(token.QUESTION) {
		p.nextToken()
		param.Optional = true
	}
	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		param.Type = p.parseTypeExpr()
	}
	return param
}

// parseClassDecl parses `class`/`interface` declarations, optionally
// generic, with `extends`/`implements` clauses.
func (p *Parser) parseClassDecl() ast.Statement {
	pos := p.curToken.Pos
	isInterface := p.curIs(token.INTERFACE)

	if !p.expect(token.IDENT) {
		return nil
	}
	decl := &ast.ClassDecl{Name: p.curToken.Literal, IsInterface: isInterface}
	decl.PosInfo = pos

	if p.peekIs(token.LT) {
		p.nextToken()
		p.nextToken()
		decl.TypeParams = append(decl.TypeParams, p.curToken.Literal)
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			decl.TypeParams = append(decl.TypeParams, p.curToken.Literal)
		}
		if !p.expect(token.GT) {
			return nil
		}
	}

	if p.peekIs(token.EXTENDS) {
		p.nextToken()
		p.nextToken()
		if nt, ok := p.parseNameTypeExpr().(*ast.NameTypeExpr); ok {
			decl.Extends = nt
		}
		for p.peekIs(token.COMMA) {
			// interfaces may extend multiple interfaces; fold extras
			// into Implements since both resolve through the same
			// ancestor-walk in the checker.
			p.nextToken()
			p.nextToken()
			if nt, ok := p.parseNameTypeExpr().(*ast.NameTypeExpr); ok {
				decl.Implements = append(decl.Implements, nt)
			}
		}
	}

	if p.peekIs(token.IMPLEMENTS) {
		p.nextToken()
		p.nextToken()
		if nt, ok := p.parseNameTypeExpr().(*ast.NameTypeExpr); ok {
			decl.Implements = append(decl.Implements, nt)
		}
		for p.peekIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			if nt, ok := p.parseNameTypeExpr().(*ast.NameTypeExpr); ok {
				decl.Implements = append(decl.Implements, nt)
			}
		}
	}

	if !p.expect(token.LBRACE) {
		return nil
	}
	p.nextToken()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		decl.Members = append(decl.Members, p.parseClassMember())
		p.nextToken()
	}
	return decl
}

func (p *Parser) parseClassMember() ast.Statement {
	if p.curIs(token.STATIC) {
		p.nextToken() // now at FUNC
		return p.parseFuncDecl(true)
	}
	if p.curIs(token.FUNC) {
		return p.parseFuncDeclGroup()
	}
	if p.curIs(token.VAR) {
		return p.parseVarDecl()
	}
	p.errorf(p.curToken.Pos, "expected class member, got %s", p.curToken.Kind)
	return nil
}
