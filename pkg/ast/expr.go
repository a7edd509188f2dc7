package ast

import "gradus/pkg/token"

// Identifier is a name reference or, when IsDef is true, the binding
// occurrence of a first assignment. The parser never sets it and the
// checker only reads it.
type Identifier struct {
	exprBase
	Name  string
	IsDef bool
}

func (*Identifier) exprNode() {}

func NewIdentifier(pos token.Position, name string) *Identifier {
	return &Identifier{exprBase: exprBase{base: base{pos}}, Name: name}
}

type NumberLiteral struct {
	exprBase
	Value float64
}

func (*NumberLiteral) exprNode() {}

type StringLiteral struct {
	exprBase
	Value string
}

func (*StringLiteral) exprNode() {}

type BoolLiteral struct {
	exprBase
	Value bool
}

func (*BoolLiteral) exprNode() {}

// NoneLiteral is the null literal; its type is always NoneType.
type NoneLiteral struct{ exprBase }

func (*NoneLiteral) exprNode() {}

// PatternLiteral is a validated regular-expression literal (re"...").
type PatternLiteral struct {
	exprBase
	Pattern string
}

func (*PatternLiteral) exprNode() {}

type ThisExpr struct{ exprBase }

func (*ThisExpr) exprNode() {}

// ParenExpr preserves explicit parenthesization so Unwrap can strip it
// without losing position info for diagnostics.
type ParenExpr struct {
	exprBase
	Inner Expression
}

func (*ParenExpr) exprNode() {}

// TupleExpr is both a tuple literal in value position and a tuple
// destructuring pattern in lvalue position.
type TupleExpr struct {
	exprBase
	Elements []Expression
}

func (*TupleExpr) exprNode() {}

// ListExpr is both a list literal in value position and a list
// destructuring pattern in lvalue position.
type ListExpr struct {
	exprBase
	Elements []Expression
}

func (*ListExpr) exprNode() {}

// MemberExpr is `object.property`; IsDef mirrors Identifier.IsDef for
// a first-binding member assignment (e.g. `self.x = 1` in __init__).
type MemberExpr struct {
	exprBase
	Object   Expression
	Property string
	IsDef    bool
}

func (*MemberExpr) exprNode() {}

type IndexExpr struct {
	exprBase
	Object Expression
	Index  Expression
}

func (*IndexExpr) exprNode() {}

type CallExpr struct {
	exprBase
	Callee Expression
	Args   []Expression
}

func (*CallExpr) exprNode() {}

type NewExpr struct {
	exprBase
	Class Expression
	Args  []Expression
}

func (*NewExpr) exprNode() {}

type BinaryExpr struct {
	exprBase
	Op    string
	Left  Expression
	Right Expression
}

func (*BinaryExpr) exprNode() {}

type UnaryExpr struct {
	exprBase
	Op      string
	Operand Expression
}

func (*UnaryExpr) exprNode() {}

// Unwrap strips ParenExpr wrappers, exposing the refined node the
// statement checker actually matches on.
func Unwrap(e Expression) Expression {
	for {
		p, ok := e.(*ParenExpr)
		if !ok {
			return e
		}
		e = p.Inner
	}
}

// UnwrapList unwraps each element of a slice.
func UnwrapList(es []Expression) []Expression {
	out := make([]Expression, len(es))
	for i, e := range es {
		out[i] = Unwrap(e)
	}
	return out
}
