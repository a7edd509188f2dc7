package parser

import (
	"gradus/pkg/ast"
	"gradus/pkg/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Kind {
	case token.VAR:
		return p.parseVarDecl()
	case token.FUNC:
		return p.parseFuncDeclGroup()
	case token.CLASS, token.INTERFACE:
		return p.parseClassDecl()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.TRY:
		return p.parseTryStmt()
	case token.RAISE:
		return p.parseRaiseStmt()
	case token.ASSERT:
		return p.parseAssertStmt()
	case token.DEL:
		return p.parseDelStmt()
	case token.YIELD:
		return p.parseYieldStmt()
	case token.WITH:
		return p.parseWithStmt()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseBlock() *ast.Block {
	pos := p.curToken.Pos
	blk := &ast.Block{}
	blk.PosInfo = pos
	p.nextToken() // consume '{'
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			blk.Stmts = append(blk.Stmts, stmt)
		}
		p.nextToken()
	}
	return blk
}

func (p *Parser) skipSemi() {
	if p.peekIs(token.SEMI) {
		p.nextToken()
	}
}

func (p *Parser) parseVarDecl() ast.Statement {
	pos := p.curToken.Pos
	if !p.expect(token.IDENT) {
		return nil
	}
	name := p.curToken.Literal
	decl := &ast.VarDecl{Name: name}
	decl.PosInfo = pos

	if p.peekIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		decl.Type = p.parseTypeExpr()
	}
	if !p.expect(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	decl.Value = p.parseExpression(LOWEST)
	p.skipSemi()
	return decl
}

func (p *Parser) parseReturnStmt() ast.Statement {
	pos := p.curToken.Pos
	stmt := &ast.ReturnStmt{}
	stmt.PosInfo = pos
	if p.peekIs(token.SEMI) || p.peekIs(token.RBRACE) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.skipSemi()
	return stmt
}

func (p *Parser) parseIfStmt() ast.Statement {
	pos := p.curToken.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	then := p.parseBlock()

	stmt := &ast.IfStmt{Cond: cond, Then: then}
	stmt.PosInfo = pos

	if p.peekIs(token.ELSE) {
		p.nextToken()
		if p.peekIs(token.IF) {
			p.nextToken()
			stmt.Else = p.parseIfStmt()
		} else if p.expect(token.LBRACE) {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Statement {
	pos := p.curToken.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	stmt := &ast.WhileStmt{Cond: cond, Body: body}
	stmt.PosInfo = pos
	return stmt
}

func (p *Parser) parseForStmt() ast.Statement {
	pos := p.curToken.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	p.nextToken()
	// Parsed above `in`'s own precedence so the loop keyword is not
	// consumed as a membership test.
	target := p.parseExpression(LESSGREATER)
	if !p.expect(token.IN) {
		return nil
	}
	p.nextToken()
	iter := p.parseExpression(LOWEST)
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	stmt := &ast.ForStmt{Target: target, Iter: iter, Body: body}
	stmt.PosInfo = pos
	return stmt
}

func (p *Parser) parseTryStmt() ast.Statement {
	pos := p.curToken.Pos
	if !p.expect(token.LBRACE) {
		return nil
	}
	body := p.parseBlock()
	stmt := &ast.TryStmt{Body: body}
	stmt.PosInfo = pos

	for p.peekIs(token.EXCEPT) {
		p.nextToken()
		h := &ast.ExceptHandler{}
		h.PosInfo = p.curToken.Pos
		if !p.peekIs(token.LBRACE) {
			p.nextToken()
			h.Type = p.parseTypeExpr()
			if p.peekIs(token.AS) {
				p.nextToken()
				if !p.expect(token.IDENT) {
					return nil
				}
				h.Name = p.curToken.Literal
			}
		}
		if !p.expect(token.LBRACE) {
			return nil
		}
		h.Body = p.parseBlock()
		stmt.Handlers = append(stmt.Handlers, h)
	}

	if p.peekIs(token.FINALLY) {
		p.nextToken()
		if !p.expect(token.LBRACE) {
			return nil
		}
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseRaiseStmt() ast.Statement {
	pos := p.curToken.Pos
	stmt := &ast.RaiseStmt{}
	stmt.PosInfo = pos
	if p.peekIs(token.SEMI) || p.peekIs(token.RBRACE) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.skipSemi()
	return stmt
}

func (p *Parser) parseAssertStmt() ast.Statement {
	pos := p.curToken.Pos
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	stmt := &ast.AssertStmt{Cond: cond}
	stmt.PosInfo = pos
	if p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		stmt.Msg = p.parseExpression(LOWEST)
	}
	p.skipSemi()
	return stmt
}

func (p *Parser) parseDelStmt() ast.Statement {
	pos := p.curToken.Pos
	p.nextToken()
	target := p.parseExpression(LOWEST)
	stmt := &ast.DelStmt{Target: target}
	stmt.PosInfo = pos
	p.skipSemi()
	return stmt
}

func (p *Parser) parseYieldStmt() ast.Statement {
	pos := p.curToken.Pos
	stmt := &ast.YieldStmt{}
	stmt.PosInfo = pos
	if p.peekIs(token.SEMI) || p.peekIs(token.RBRACE) {
		return stmt
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.skipSemi()
	return stmt
}

func (p *Parser) parseWithStmt() ast.Statement {
	pos := p.curToken.Pos
	if !p.expect(token.LPAREN) {
		return nil
	}
	p.nextToken()
	ctx := p.parseExpression(LOWEST)
	stmt := &ast.WithStmt{Ctx: ctx}
	stmt.PosInfo = pos
	if p.peekIs(token.AS) {
		p.nextToken()
		if !p.expect(token.IDENT) {
			return nil
		}
		stmt.Name = p.curToken.Literal
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlock()
	return stmt
}

// opAssignOps maps a compound-assignment token to its bare operator
// spelling, used both for OpAssignStmt.Op and for the
// incompatible_operator_assignment diagnostic's operator table.
var opAssignOps = map[token.Kind]string{
	token.PLUS_ASSIGN:     "+",
	token.MINUS_ASSIGN:    "-",
	token.STAR_ASSIGN:     "*",
	token.SLASH_ASSIGN:    "/",
	token.PERCENT_ASSIGN:  "%",
	token.FSLASH2_ASSIGN:  "//",
	token.STARSTAR_ASSIGN: "**",
	token.AMP_ASSIGN:      "&",
	token.PIPE_ASSIGN:     "|",
	token.CARET_ASSIGN:    "^",
	token.SHL_ASSIGN:      "<<",
	token.SHR_ASSIGN:      ">>",
}

// parseSimpleStmt handles expression statements, single/multi-target
// assignment (including tuple/list destructuring), chained
// assignment, and operator-assignment — the constructs that all start
// with an expression.
func (p *Parser) parseSimpleStmt() ast.Statement {
	pos := p.curToken.Pos
	first := p.parseExpression(LOWEST)

	if op, ok := opAssignOps[p.peekToken.Kind]; ok {
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		stmt := &ast.OpAssignStmt{Target: first, Op: op, Value: value}
		stmt.PosInfo = pos
		p.skipSemi()
		return stmt
	}

	if !p.peekIs(token.ASSIGN) {
		p.skipSemi()
		stmt := &ast.ExprStmt{X: first}
		stmt.PosInfo = pos
		return stmt
	}

	targets := []ast.AssignTarget{first}
	for p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		next := p.parseExpression(LOWEST)
		if p.peekIs(token.ASSIGN) {
			targets = append(targets, next)
			continue
		}
		p.skipSemi()
		if len(targets) > 1 {
			stmt := &ast.ChainedAssignStmt{Targets: targets, Value: next}
			stmt.PosInfo = pos
			return stmt
		}
		stmt := &ast.AssignStmt{Targets: targets, Value: next}
		stmt.PosInfo = pos
		return stmt
	}
	// unreachable
	return nil
}
