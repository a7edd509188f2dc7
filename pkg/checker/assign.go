package checker

import (
	"gradus/pkg/ast"
	"gradus/pkg/diagnostics"
	"gradus/pkg/types"
)

// checkAssignStmt dispatches a single AssignStmt to single- or
// multi-target assignment checking, after expanding the one lvalue
// AssignStmt.Targets carries into its destructured components (§4.3).
func (c *Checker) checkAssignStmt(s *ast.AssignStmt) {
	if len(s.Targets) != 1 {
		return
	}
	lvalues := c.expandLvalues(s.Targets[0])
	if len(lvalues) == 1 {
		c.checkSingleAssignment(lvalues[0], s.Value)
		return
	}
	c.checkMultiAssignment(lvalues, s.Value)
}

// checkChainedAssignStmt always rejects `a = b = c` as unsupported
// (§4.3), still checking every operand so a single bad chain does not
// also swallow unrelated diagnostics inside it.
func (c *Checker) checkChainedAssignStmt(s *ast.ChainedAssignStmt) {
	c.sink.Add(diagnostics.NewNotImplemented(s.Pos(), "Chained assignment is not supported"))
	c.accept(s.Value, nil)
	for _, t := range s.Targets {
		c.accept(t, nil)
	}
}

// expandLvalues flattens parens around the single target and, if it
// is a top-level tuple/list destructuring pattern, returns its
// elements (each themselves unwrapped); otherwise returns the target
// alone.
func (c *Checker) expandLvalues(target ast.Expression) []ast.Expression {
	target = ast.Unwrap(target)
	switch t := target.(type) {
	case *ast.TupleExpr:
		return ast.UnwrapList(t.Elements)
	case *ast.ListExpr:
		return ast.UnwrapList(t.Elements)
	default:
		return []ast.Expression{target}
	}
}

// lvalueKind classifies one expanded lvalue per §4.3.
type lvalueKind int

const (
	lvalDefinition lvalueKind = iota // fresh Identifier/MemberExpr binding (IsDef)
	lvalExisting                    // Identifier/MemberExpr referring to an existing binding
	lvalIndexed                     // IndexExpr target, dispatched through __setitem__
)

func classifyLvalue(target ast.Expression) lvalueKind {
	switch t := target.(type) {
	case *ast.Identifier:
		if t.IsDef {
			return lvalDefinition
		}
		return lvalExisting
	case *ast.MemberExpr:
		if t.IsDef {
			return lvalDefinition
		}
		return lvalExisting
	case *ast.IndexExpr:
		return lvalIndexed
	default:
		return lvalExisting
	}
}

// checkSingleAssignment implements check_assignment: a Definition
// target infers a fresh binding, an Existing target is checked
// against its already-known type, and an Indexed target dispatches
// through __setitem__.
func (c *Checker) checkSingleAssignment(target, value ast.Expression) {
	switch classifyLvalue(target) {
	case lvalIndexed:
		c.checkIndexedAssignment(target.(*ast.IndexExpr), value)
	case lvalDefinition:
		got := c.accept(value, nil)
		c.bindLvalue(target, value, got)
	default:
		want, ok := c.existingLvalueType(target)
		if !ok {
			got := c.accept(value, nil)
			c.bindLvalue(target, value, got)
			return
		}
		got := c.accept(value, want)
		if !types.IsSubtype(got, want) {
			c.fail(value, "Incompatible types in assignment (expression has type %q, variable has type %q)", got, want)
		}
	}
}

// checkMultiAssignment implements check_multi_assignment: the value
// must be a tuple (or a homogeneous list) supplying exactly as many
// components as there are targets; each target is then checked
// against its corresponding component independently.
func (c *Checker) checkMultiAssignment(targets []ast.Expression, value ast.Expression) {
	got := c.accept(value, nil)

	if list, ok := types.IsListInstance(got); ok {
		for _, t := range targets {
			c.assignComponent(t, list)
		}
		return
	}

	tup, ok := got.(*types.TupleType)
	if !ok {
		if got != types.Any {
			c.fail(value, "Right hand side of multiple assignment is not a tuple")
		}
		for _, t := range targets {
			c.assignComponent(t, types.Any)
		}
		return
	}
	if len(tup.Items) != len(targets) {
		c.sink.Add(diagnostics.NewIncompatibleValueCount(value.Pos(), len(targets), len(tup.Items)))
		for _, t := range targets {
			c.assignComponent(t, types.Any)
		}
		return
	}
	for i, t := range targets {
		c.assignComponent(t, tup.Items[i])
	}
}

func (c *Checker) assignComponent(target ast.Expression, componentType types.Type) {
	switch classifyLvalue(target) {
	case lvalIndexed:
		c.checkIndexedAssignmentValue(target.(*ast.IndexExpr), componentType)
	case lvalDefinition:
		c.bindLvalue(target, nil, componentType)
	default:
		want, ok := c.existingLvalueType(target)
		if !ok {
			c.bindLvalue(target, nil, componentType)
			return
		}
		if !types.IsSubtype(componentType, want) {
			c.fail(target, "Incompatible types in assignment (expression has type %q, variable has type %q)", componentType, want)
		}
	}
}

// existingLvalueType looks up the declared/previously-inferred type of
// an Existing-kind target, if one is already known.
func (c *Checker) existingLvalueType(target ast.Expression) (types.Type, bool) {
	switch t := target.(type) {
	case *ast.Identifier:
		return c.lookup(t.Name)
	case *ast.MemberExpr:
		objType := c.accept(t.Object, nil)
		return c.resolveMember(objType, t.Property)
	}
	return nil, false
}

// bindLvalue implements infer_variable_type for a Definition-kind
// target, via the shared §4.4 init_type guard in inferVariableType:
// Void aborts with a diagnostic, an invalid-for-inference type demands
// an annotation, and otherwise the widened (StripType) right-hand-side
// type becomes the fresh binding. value is the originating initializer
// expression where the caller has one (nil for a for-loop/tuple
// component binding), used only to name the diagnostic site and, for
// the Void case, the call that produced it.
func (c *Checker) bindLvalue(target, value ast.Expression, rhs types.Type) {
	switch tt := target.(type) {
	case *ast.Identifier:
		site := target
		if value != nil {
			site = value
		}
		inferred := c.inferVariableType(site, value, tt.Name, rhs)
		c.defineLocalOrGlobal(tt.Name, inferred)
	case *ast.MemberExpr:
		// Instance-field definitions (`this.x = v` in __init__) get
		// their declared type from the class's own VarDecl member, set
		// up by hoistClassMethods; an assignment-only definition with
		// no matching field declaration has no class-level home to
		// record into and is simply left to resolve dynamically.
	}
}
