package checker

import (
	"gradus/pkg/ast"
	"gradus/pkg/diagnostics"
	"gradus/pkg/types"
)

// checkStmt dispatches one statement inside a body. Nested
// declarations (a function or class defined inside another function)
// self-heal their missing hoisted signature on first visit, since
// hoistFile only walks the top level.
func (c *Checker) checkStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		c.checkBlock(s)
	case *ast.ExprStmt:
		c.accept(s.X, nil)
	case *ast.VarDecl:
		c.checkVarDecl(s)
	case *ast.AssignStmt:
		c.checkAssignStmt(s)
	case *ast.ChainedAssignStmt:
		c.checkChainedAssignStmt(s)
	case *ast.OpAssignStmt:
		c.checkOpAssignStmt(s)
	case *ast.ReturnStmt:
		c.checkReturnStmt(s)
	case *ast.IfStmt:
		c.checkIfStmt(s)
	case *ast.WhileStmt:
		c.accept(s.Cond, nil)
		c.checkBlock(s.Body)
	case *ast.ForStmt:
		c.checkForStmt(s)
	case *ast.TryStmt:
		c.checkTryStmt(s)
	case *ast.RaiseStmt:
		c.checkRaiseStmt(s)
	case *ast.AssertStmt:
		c.accept(s.Cond, nil)
		if s.Msg != nil {
			c.accept(s.Msg, nil)
		}
	case *ast.DelStmt:
		c.checkDelStmt(s)
	case *ast.YieldStmt:
		c.sink.Add(diagnostics.NewNotImplemented(s.Pos(), "yield is not supported"))
		if s.Value != nil {
			c.accept(s.Value, nil)
		}
	case *ast.WithStmt:
		c.checkWithStmt(s)
	case *ast.FuncDecl:
		c.checkFuncDecl(s, false, nil)
	case *ast.OverloadedFuncDecl:
		c.checkOverloadedFuncDecl(s, false, nil)
	case *ast.ClassDecl:
		if s.ResolvedClass == nil {
			c.hoistFile(&ast.Block{Stmts: []ast.Statement{s}})
		}
		c.checkClassDecl(s)
	}
}

func (c *Checker) checkBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		c.checkStmt(s)
	}
}

func (c *Checker) checkReturnStmt(s *ast.ReturnStmt) {
	ret := c.currentReturn()
	if s.Value == nil {
		if ret != nil && ret != types.Void && ret != types.Any && !c.inDynamicFunc() {
			c.fail(s, "Return value expected")
		}
		return
	}
	got := c.accept(s.Value, ret)
	if ret != nil && !types.IsSubtype(got, ret) {
		c.fail(s.Value, "Incompatible return value type (got %q, expected %q)", got, ret)
	}
}

func (c *Checker) checkIfStmt(s *ast.IfStmt) {
	c.accept(s.Cond, nil)
	c.checkBlock(s.Then)
	if s.Else != nil {
		c.checkStmt(s.Else)
	}
}

// checkOpAssignStmt implements §4.5's compound assignment: the target
// must already be bound, and the dunder method's result must remain a
// subtype of the target's own type or the assignment's widening is
// rejected outright rather than silently re-typed.
func (c *Checker) checkOpAssignStmt(s *ast.OpAssignStmt) {
	targetType, ok := c.existingLvalueType(s.Target)
	if !ok {
		c.fail(s.Target, "Name is not defined")
		c.accept(s.Value, nil)
		return
	}
	dunder, ok := opDunder[s.Op]
	if !ok {
		c.accept(s.Value, nil)
		return
	}
	resultType := c.dispatchMethod(s, targetType, dunder, []ast.Expression{s.Value})
	if !types.IsSubtype(resultType, targetType) {
		c.sink.Add(diagnostics.NewIncompatibleOperatorAssignment(s.Pos(), s.Op))
	}
}

// elementTypeOfIterable resolves the element type a for-loop (or
// other iteration site) binds, via list<T>'s direct shortcut or the
// __iter__/__next__ protocol for any other Iterable.
func (c *Checker) elementTypeOfIterable(t types.Type) (types.Type, bool) {
	if elem, ok := types.IsListInstance(t); ok {
		return elem, true
	}
	if t == types.Any {
		return types.Any, true
	}
	inst, ok := t.(*types.Instance)
	if !ok {
		return nil, false
	}
	m, owner, ok := inst.Class.GetMethod("__iter__")
	if !ok {
		return nil, false
	}
	fn, ok := types.MapTypeFromSupertype(m, inst.Class, owner).(*types.Callable)
	if !ok {
		return types.Any, true
	}
	iterInst, ok := fn.Ret.(*types.Instance)
	if !ok {
		return types.Any, true
	}
	nm, nowner, ok := iterInst.Class.GetMethod("__next__")
	if !ok {
		return types.Any, true
	}
	nfn, ok := types.MapTypeFromSupertype(nm, iterInst.Class, nowner).(*types.Callable)
	if !ok {
		return types.Any, true
	}
	return nfn.Ret, true
}

func (c *Checker) checkForStmt(s *ast.ForStmt) {
	iterType := c.accept(s.Iter, nil)
	elem, ok := c.elementTypeOfIterable(iterType)
	if !ok {
		if iterType != types.Any {
			c.fail(s.Iter, "%q is not iterable", iterType)
		}
		elem = types.Any
	}
	targets := c.expandLvalues(s.Target)
	if len(targets) == 1 {
		c.bindLvalue(targets[0], nil, elem)
	} else if tup, ok := elem.(*types.TupleType); ok && len(tup.Items) == len(targets) {
		for i, t := range targets {
			c.bindLvalue(t, nil, tup.Items[i])
		}
	} else {
		for _, t := range targets {
			c.bindLvalue(t, nil, types.Any)
		}
	}
	c.checkBlock(s.Body)
}

func (c *Checker) checkTryStmt(s *ast.TryStmt) {
	c.checkBlock(s.Body)
	for _, h := range s.Handlers {
		c.checkExceptHandler(h)
	}
	if s.Finally != nil {
		c.checkBlock(s.Finally)
	}
}

func (c *Checker) checkExceptHandler(h *ast.ExceptHandler) {
	if h.Type == nil {
		c.checkBlock(h.Body)
		return
	}
	t := c.resolveType(h.Type)
	inst, ok := t.(*types.Instance)
	if !ok {
		c.fail(h.Type, "Exception type must be a class")
		c.checkBlock(h.Body)
		return
	}
	if c.builtins != nil && c.builtins.BaseException != nil {
		want := &types.Instance{Class: c.builtins.BaseException}
		if !types.IsSubtype(inst, want) {
			c.fail(h.Type, "%q does not derive from BaseException", inst)
		}
	}
	if h.Name != "" {
		c.defineLocalOrGlobal(h.Name, inst)
	}
	c.checkBlock(h.Body)
}

func (c *Checker) checkRaiseStmt(s *ast.RaiseStmt) {
	if s.Value == nil {
		return
	}
	t := c.accept(s.Value, nil)
	if c.builtins != nil && c.builtins.BaseException != nil && t != types.Any {
		want := &types.Instance{Class: c.builtins.BaseException}
		if !types.IsSubtype(t, want) {
			c.fail(s.Value, "Exceptions must derive from BaseException")
		}
	}
}

// checkDelStmt rewrites an indexed deletion target through
// __delitem__; any other target is simply type-checked for its
// subexpression diagnostics.
func (c *Checker) checkDelStmt(s *ast.DelStmt) {
	target := ast.Unwrap(s.Target)
	if ix, ok := target.(*ast.IndexExpr); ok {
		objType := c.accept(ix.Object, nil)
		c.dispatchMethod(s, objType, "__delitem__", []ast.Expression{ix.Index})
		return
	}
	c.accept(target, nil)
}

func (c *Checker) checkWithStmt(s *ast.WithStmt) {
	c.sink.Add(diagnostics.NewNotImplemented(s.Pos(), "with-statement context managers are not supported"))
	c.accept(s.Ctx, nil)
	if s.Name != "" {
		c.defineLocalOrGlobal(s.Name, types.Any)
	}
	c.checkBlock(s.Body)
}
