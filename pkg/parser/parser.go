// Package parser builds the pkg/ast tree from a pkg/lexer token
// stream: a recursive-descent statement parser over a Pratt
// expression parser, grounded in the teacher's pkg/parser/parser.go
// split between prefix/infix registration tables and per-construct
// parse methods.
package parser

import (
	"fmt"

	"gradus/pkg/ast"
	"gradus/pkg/diagnostics"
	"gradus/pkg/lexer"
	"gradus/pkg/token"
)

const debugParser = false

func debugPrint(format string, args ...interface{}) {
	if debugParser {
		fmt.Printf("[parser] "+format+"\n", args...)
	}
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGNMENT
	LOGICAL_OR
	LOGICAL_AND
	BITWISE_OR
	BITWISE_XOR
	BITWISE_AND
	EQUALS
	LESSGREATER
	SHIFT
	SUM
	PRODUCT
	POWER
	PREFIX
	CALL
	INDEX
	MEMBER
)

var precedences = map[token.Kind]int{
	token.OR:  LOGICAL_OR,
	token.AND: LOGICAL_AND,

	token.PIPE:  BITWISE_OR,
	token.CARET: BITWISE_XOR,
	token.AMP:   BITWISE_AND,

	token.EQ:  EQUALS,
	token.NEQ: EQUALS,

	token.LT: LESSGREATER,
	token.GT: LESSGREATER,
	token.LE: LESSGREATER,
	token.GE: LESSGREATER,
	token.IN: LESSGREATER,

	token.SHL: SHIFT,
	token.SHR: SHIFT,

	token.PLUS:  SUM,
	token.MINUS: SUM,

	token.STAR:    PRODUCT,
	token.SLASH:   PRODUCT,
	token.PERCENT: PRODUCT,
	token.FSLASH2: PRODUCT,

	token.STARSTAR: POWER,

	token.LPAREN:   CALL,
	token.LBRACKET: INDEX,
	token.DOT:      MEMBER,
}

// Parser turns a token stream into a *ast.Block of top-level
// statements plus any syntax diagnostics collected along the way.
type Parser struct {
	l *lexer.Lexer

	errs []*diagnostics.SyntaxError

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.Kind]prefixParseFn
	infixParseFns  map[token.Kind]infixParseFn
}

// New creates a Parser over l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Kind]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.NUMBER:   p.parseNumberLiteral,
		token.STRING:   p.parseStringLiteral,
		token.REGEX:    p.parsePatternLiteral,
		token.TRUE:     p.parseBoolLiteral,
		token.FALSE:    p.parseBoolLiteral,
		token.NONE:     p.parseNoneLiteral,
		token.THIS:     p.parseThisExpr,
		token.LPAREN:   p.parseParenOrTuple,
		token.LBRACKET: p.parseListExpr,
		token.MINUS:    p.parseUnaryExpr,
		token.BANG:     p.parseUnaryExpr,
		token.TILDE:    p.parseUnaryExpr,
		token.NEW:      p.parseNewExpr,
	}

	p.infixParseFns = map[token.Kind]infixParseFn{}
	for kind := range precedences {
		switch kind {
		case token.LPAREN:
			p.infixParseFns[kind] = p.parseCallExpr
		case token.LBRACKET:
			p.infixParseFns[kind] = p.parseIndexExpr
		case token.DOT:
			p.infixParseFns[kind] = p.parseMemberExpr
		default:
			p.infixParseFns[kind] = p.parseBinaryExpr
		}
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) Errors() []*diagnostics.SyntaxError { return p.errs }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curToken.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peekToken.Kind == k }

func (p *Parser) expect(k token.Kind) bool {
	if p.peekIs(k) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken.Pos, "expected next token to be %s, got %s instead", k, p.peekToken.Kind)
	return false
}

func (p *Parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.errs = append(p.errs, diagnostics.NewSyntaxError(pos, format, args...))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Kind]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Kind]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into a *ast.Block of
// top-level statements.
func (p *Parser) ParseProgram() *ast.Block {
	pos := p.curToken.Pos
	blk := &ast.Block{}
	blk.PosInfo = pos
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			blk.Stmts = append(blk.Stmts, stmt)
		}
		p.nextToken()
	}
	return blk
}

// parseExpression is the Pratt loop shared by every expression
// context.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Kind]
	if prefix == nil {
		p.errorf(p.curToken.Pos, "no prefix parse function for %s found", p.curToken.Kind)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMI) && precedence < p.peekPrecedence() {
		// A `(` or `[` opening a new line starts the next statement
		// rather than calling or indexing the expression before it.
		if (p.peekIs(token.LPAREN) || p.peekIs(token.LBRACKET)) && p.peekToken.Pos.Line > p.curToken.Pos.Line {
			return left
		}
		infix := p.infixParseFns[p.peekToken.Kind]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}
