package checker

import (
	"gradus/pkg/ast"
	"gradus/pkg/diagnostics"
	"gradus/pkg/types"
)

// opDunder is §4.5's binary-operator to dunder-method dispatch table.
var opDunder = map[string]string{
	"+":  "__add__",
	"-":  "__sub__",
	"*":  "__mul__",
	"/":  "__truediv__",
	"%":  "__mod__",
	"//": "__floordiv__",
	"**": "__pow__",
	"&":  "__and__",
	"|":  "__or__",
	"^":  "__xor__",
	"<<": "__lshift__",
	">>": "__rshift__",
	"==": "__eq__",
	"!=": "__ne__",
	"<":  "__lt__",
	"<=": "__le__",
	">":  "__gt__",
	">=": "__ge__",
	"IN": "__contains__",
}

// boolDunder keys match token.AND/token.OR's Kind spelling ("&&"/"||"),
// which is also their source spelling; token.IN is the keyword operator
// whose Kind ("IN") differs from its source text "in" — see opDunder
// above.
var boolDunder = map[string]bool{
	"&&": true, "||": true,
}

// visitExpr is the concrete dispatch accept() delegates to: the
// external-member-access, call-checking, and operator-checking
// collaborator a bare type-algebra package cannot itself supply.
func (c *Checker) visitExpr(node ast.Expression) types.Type {
	switch e := node.(type) {
	case *ast.Identifier:
		return c.visitIdentifier(e)
	case *ast.NumberLiteral:
		return c.instanceOf("int")
	case *ast.StringLiteral:
		return c.instanceOf("str")
	case *ast.BoolLiteral:
		return c.instanceOf("bool")
	case *ast.NoneLiteral:
		return types.NoneType
	case *ast.PatternLiteral:
		return types.Any
	case *ast.ThisExpr:
		if t, ok := c.lookup("this"); ok {
			return t
		}
		c.fail(e, "'this' used outside of a method")
		return types.Any
	case *ast.ParenExpr:
		return c.accept(e.Inner, c.currentContext())
	case *ast.TupleExpr:
		items := make([]types.Type, len(e.Elements))
		for i, el := range e.Elements {
			items[i] = c.accept(el, nil)
		}
		return &types.TupleType{Items: items}
	case *ast.ListExpr:
		return c.visitListExpr(e)
	case *ast.MemberExpr:
		return c.visitMemberExpr(e)
	case *ast.IndexExpr:
		return c.visitIndexExpr(e)
	case *ast.CallExpr:
		return c.visitCallExpr(e)
	case *ast.NewExpr:
		return c.visitNewExpr(e)
	case *ast.BinaryExpr:
		return c.visitBinaryExpr(e)
	case *ast.UnaryExpr:
		return c.visitUnaryExpr(e)
	}
	return types.Any
}

func (c *Checker) instanceOf(name string) types.Type {
	if c.builtins == nil {
		return types.Any
	}
	ci, ok := c.builtins.Classes[name]
	if !ok {
		return types.Any
	}
	return &types.Instance{Class: ci}
}

func (c *Checker) visitIdentifier(e *ast.Identifier) types.Type {
	t, ok := c.lookup(e.Name)
	if !ok {
		c.fail(e, "Name %q is not defined", e.Name)
		return types.Any
	}
	return t
}

// visitListExpr infers list<T> from the expected context when one is
// present (so `var xs: list<float> = []` accepts the empty literal),
// falling back to the first element's type. An empty, unannotated
// list has nothing to pin its element type to, so it infers as
// list<NoneType> — invalid-for-inference like the original's
// None-contaminated partial type — forcing callers that bind it to a
// fresh variable to demand an explicit annotation instead.
func (c *Checker) visitListExpr(e *ast.ListExpr) types.Type {
	var elemCtx types.Type
	if lst, ok := types.IsListInstance(c.currentContext()); ok {
		elemCtx = lst
	}
	if len(e.Elements) == 0 {
		if elemCtx != nil {
			return types.ListOf(elemCtx)
		}
		return types.ListOf(types.NoneType)
	}
	first := c.accept(e.Elements[0], elemCtx)
	for _, el := range e.Elements[1:] {
		t := c.accept(el, elemCtx)
		if !types.IsEquivalent(t, first) {
			first = types.Any
		}
	}
	return types.ListOf(first)
}

// resolveMember implements analyse_external_member_access: Any
// propagates, an Instance resolves a method or field by walking the
// base chain, and anything else is a failure.
func (c *Checker) resolveMember(objType types.Type, name string) (types.Type, bool) {
	if objType == types.Any {
		return types.Any, true
	}
	inst, ok := objType.(*types.Instance)
	if !ok {
		return nil, false
	}
	if m, owner, ok := inst.Class.GetMethod(name); ok {
		return types.MapTypeFromSupertype(m, inst.Class, owner), true
	}
	if f, ok := inst.Class.GetField(name); ok {
		return f, true
	}
	return nil, false
}

func (c *Checker) visitMemberExpr(e *ast.MemberExpr) types.Type {
	objType := c.accept(e.Object, nil)
	t, ok := c.resolveMember(objType, e.Property)
	if !ok {
		if objType != types.Any {
			c.fail(e, "%q has no attribute %q", objType, e.Property)
		}
		return types.Any
	}
	return t
}

// visitIndexExpr dispatches subscripting through __getitem__, with a
// direct shortcut for list<T> and tuple component access so index
// expressions on those two built-ins don't need a literal method.
func (c *Checker) visitIndexExpr(e *ast.IndexExpr) types.Type {
	objType := c.accept(e.Object, nil)
	if objType == types.Any {
		c.accept(e.Index, nil)
		return types.Any
	}
	if elem, ok := types.IsListInstance(objType); ok {
		c.accept(e.Index, c.instanceOf("int"))
		return elem
	}
	if tup, ok := objType.(*types.TupleType); ok {
		c.accept(e.Index, c.instanceOf("int"))
		if n, ok := e.Index.(*ast.NumberLiteral); ok {
			idx := int(n.Value)
			if idx >= 0 && idx < len(tup.Items) {
				return tup.Items[idx]
			}
		}
		return types.Any
	}
	return c.dispatchMethod(e, objType, "__getitem__", []ast.Expression{e.Index})
}

func (c *Checker) visitCallExpr(e *ast.CallExpr) types.Type {
	callee := ast.Unwrap(e.Callee)
	if me, ok := callee.(*ast.MemberExpr); ok {
		objType := c.accept(me.Object, nil)
		return c.dispatchMethod(e, objType, me.Property, e.Args)
	}
	fnType := c.accept(e.Callee, nil)
	return c.checkCallSignature(e, fnType, e.Args)
}

// dispatchMethod resolves and checks a method call `obj.name(args)`,
// used both directly (CallExpr on a MemberExpr) and for dunder-based
// operator/indexing dispatch.
func (c *Checker) dispatchMethod(site ast.Node, objType types.Type, name string, args []ast.Expression) types.Type {
	if objType == types.Any {
		for _, a := range args {
			c.accept(a, nil)
		}
		return types.Any
	}
	inst, ok := objType.(*types.Instance)
	if !ok {
		for _, a := range args {
			c.accept(a, nil)
		}
		return types.Any
	}
	m, owner, ok := inst.Class.GetMethod(name)
	if !ok {
		c.fail(site, "%q has no method %q", objType, name)
		for _, a := range args {
			c.accept(a, nil)
		}
		return types.Any
	}
	// Map from a view whose base is inst.Class with inst.Args as its
	// type arguments, so the owner's type parameters are replaced by
	// this instance's own arguments (list<int>.append takes an int).
	view := &types.ClassInfo{Base: inst.Class, BaseTypeArgs: inst.Args}
	m = types.MapTypeFromSupertype(m, view, owner)
	return c.checkCallSignature(site, m, args)
}

// checkCallSignature implements check_call: arity and per-argument
// subtype checking against a Callable or the first matching
// alternative of an Overloaded.
func (c *Checker) checkCallSignature(site ast.Node, fnType types.Type, args []ast.Expression) types.Type {
	if fnType == types.Any {
		for _, a := range args {
			c.accept(a, nil)
		}
		return types.Any
	}
	switch ft := fnType.(type) {
	case *types.Callable:
		return c.checkCallable(site, ft, args)
	case *types.Overloaded:
		for _, item := range ft.Items {
			if len(args) >= item.MinArgs && (item.IsVarArg || len(args) <= len(item.Params)) {
				return c.checkCallable(site, item, args)
			}
		}
		c.fail(site, "No overload matches this call")
		for _, a := range args {
			c.accept(a, nil)
		}
		return types.Any
	default:
		c.fail(site, "%q is not callable", fnType)
		for _, a := range args {
			c.accept(a, nil)
		}
		return types.Any
	}
}

func (c *Checker) checkCallable(site ast.Node, fn *types.Callable, args []ast.Expression) types.Type {
	if len(args) < fn.MinArgs || (!fn.IsVarArg && len(args) > len(fn.Params)) {
		c.sink.Add(diagnostics.NewIncompatibleValueCount(site.Pos(), len(fn.Params), len(args)))
		for _, a := range args {
			c.accept(a, nil)
		}
	} else {
		for i, a := range args {
			var want types.Type
			switch {
			case fn.IsVarArg && len(fn.Params) > 0 && i >= len(fn.Params)-1:
				want = fn.Params[len(fn.Params)-1]
			case i < len(fn.Params):
				want = fn.Params[i]
			}
			got := c.accept(a, want)
			if want != nil && !types.IsSubtype(got, want) {
				c.fail(a, "Argument %d has incompatible type %q, expected %q", i+1, got, want)
			}
		}
	}
	ret := fn.Ret
	if ret == nil {
		ret = types.Void
	}
	return ret
}

func (c *Checker) visitNewExpr(e *ast.NewExpr) types.Type {
	nameExpr, ok := ast.Unwrap(e.Class).(*ast.Identifier)
	if !ok {
		c.fail(e, "Expected a class name after 'new'")
		for _, a := range e.Args {
			c.accept(a, nil)
		}
		return types.Any
	}
	ci, ok := c.resolveClassByName(nameExpr.Name)
	if !ok {
		c.fail(e, "Cannot resolve class %q", nameExpr.Name)
		for _, a := range e.Args {
			c.accept(a, nil)
		}
		return types.Any
	}
	if init, _, ok := ci.GetMethod("__init__"); ok {
		if fn, ok := init.(*types.Callable); ok {
			c.checkCallable(e, fn, e.Args)
		}
	} else {
		for _, a := range e.Args {
			c.accept(a, nil)
		}
	}
	args := make([]types.Type, len(ci.TypeParameters))
	for i := range args {
		args[i] = types.Any
	}
	return &types.Instance{Class: ci, Args: args}
}

func (c *Checker) visitBinaryExpr(e *ast.BinaryExpr) types.Type {
	if boolDunder[e.Op] {
		c.accept(e.Left, nil)
		c.accept(e.Right, nil)
		return c.instanceOf("bool")
	}
	dunder, ok := opDunder[e.Op]
	if !ok {
		c.accept(e.Left, nil)
		c.accept(e.Right, nil)
		return types.Any
	}
	leftType := c.accept(e.Left, nil)
	return c.dispatchMethod(e, leftType, dunder, []ast.Expression{e.Right})
}

var unaryDunder = map[string]string{
	"-": "__neg__",
	"~": "__invert__",
}

func (c *Checker) visitUnaryExpr(e *ast.UnaryExpr) types.Type {
	if e.Op == "!" {
		c.accept(e.Operand, nil)
		return c.instanceOf("bool")
	}
	dunder, ok := unaryDunder[e.Op]
	operandType := c.accept(e.Operand, nil)
	if !ok {
		return operandType
	}
	return c.dispatchMethod(e, operandType, dunder, nil)
}

// checkIndexedAssignment type-checks `obj[idx] = value` by dispatching
// through __setitem__ (§4.3's Indexed lvalue kind).
func (c *Checker) checkIndexedAssignment(target *ast.IndexExpr, value ast.Expression) {
	objType := c.accept(target.Object, nil)
	if elem, ok := types.IsListInstance(objType); ok {
		c.accept(target.Index, c.instanceOf("int"))
		got := c.accept(value, elem)
		if !types.IsSubtype(got, elem) {
			c.fail(value, "Incompatible types in assignment (expression has type %q, variable has type %q)", got, elem)
		}
		return
	}
	c.dispatchMethod(target, objType, "__setitem__", []ast.Expression{target.Index, value})
}

// checkIndexedAssignmentValue is checkIndexedAssignment's
// already-typed-value variant, used from multi-assignment where the
// right-hand component has already been computed.
func (c *Checker) checkIndexedAssignmentValue(target *ast.IndexExpr, componentType types.Type) {
	objType := c.accept(target.Object, nil)
	if elem, ok := types.IsListInstance(objType); ok {
		c.accept(target.Index, c.instanceOf("int"))
		if !types.IsSubtype(componentType, elem) {
			c.fail(target, "Incompatible types in assignment (expression has type %q, variable has type %q)", componentType, elem)
		}
		return
	}
	if objType == types.Any {
		c.accept(target.Index, nil)
		return
	}
	inst, ok := objType.(*types.Instance)
	if !ok {
		return
	}
	m, owner, ok := inst.Class.GetMethod("__setitem__")
	if !ok {
		c.fail(target, "%q has no method \"__setitem__\"", objType)
		return
	}
	fn, ok := types.MapTypeFromSupertype(m, inst.Class, owner).(*types.Callable)
	if !ok || len(fn.Params) < 2 {
		return
	}
	c.accept(target.Index, fn.Params[0])
	if !types.IsSubtype(componentType, fn.Params[1]) {
		c.fail(target, "Incompatible types in assignment (expression has type %q, variable has type %q)", componentType, fn.Params[1])
	}
}
