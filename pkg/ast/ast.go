// Package ast defines the node set the parser produces and the checker
// consumes: the "already-parsed, semantically-analyzed" tree the type
// checker treats as an external input.
package ast

import (
	"gradus/pkg/token"
	"gradus/pkg/types"
)

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
}

// Statement is implemented by every statement and declaration node —
// declarations (functions, classes, top-level variables) are
// statements too, exactly as they are definitions at module scope.
type Statement interface {
	Node
	stmtNode()
}

// Expression is implemented by every expression node. GetComputedType
// / SetComputedType back the type_map: the checker's accept() records
// a node's computed type here as it visits.
type Expression interface {
	Node
	exprNode()
	GetComputedType() types.Type
	SetComputedType(t types.Type)
}

// base carries the position every node needs.
type base struct {
	PosInfo token.Position
}

func (b base) Pos() token.Position { return b.PosInfo }

// exprBase adds the computed-type slot shared by every expression.
type exprBase struct {
	base
	computed types.Type
}

func (e *exprBase) GetComputedType() types.Type      { return e.computed }
func (e *exprBase) SetComputedType(t types.Type)     { e.computed = t }

// TypeExpr is the small sublanguage used for type annotations; the
// checker resolves these into types.Type values.
type TypeExpr interface {
	Node
	typeExprNode()
}

type typeExprBase struct{ base }

func (typeExprBase) typeExprNode() {}

// NameTypeExpr names a class/primitive, optionally with type
// arguments (e.g. list<int>).
type NameTypeExpr struct {
	typeExprBase
	Name string
	Args []TypeExpr
}

// AnyTypeExpr spells the dynamic type explicitly.
type AnyTypeExpr struct{ typeExprBase }

// VoidTypeExpr spells the no-value return type.
type VoidTypeExpr struct{ typeExprBase }

// TupleTypeExpr is a fixed-arity product type annotation.
type TupleTypeExpr struct {
	typeExprBase
	Items []TypeExpr
}

// CallableTypeExpr annotates a function-valued parameter or field.
type CallableTypeExpr struct {
	typeExprBase
	Params   []TypeExpr
	Optional []bool
	RestType TypeExpr // nil if not variadic
	Ret      TypeExpr
}
