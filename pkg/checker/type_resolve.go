package checker

import (
	"gradus/pkg/ast"
	"gradus/pkg/types"
)

// resolveType turns a parsed TypeExpr into a types.Type, resolving
// bare names against the current class's type parameters first, then
// builtins/module-level classes, and falling back to UnboundType on a
// miss (§7: unresolved symbols degrade rather than abort).
func (c *Checker) resolveType(te ast.TypeExpr) types.Type {
	if te == nil {
		return types.Any
	}
	switch t := te.(type) {
	case *ast.AnyTypeExpr:
		return types.Any
	case *ast.VoidTypeExpr:
		return types.Void
	case *ast.TupleTypeExpr:
		items := make([]types.Type, len(t.Items))
		for i, it := range t.Items {
			items[i] = c.resolveType(it)
		}
		return &types.TupleType{Items: items}
	case *ast.CallableTypeExpr:
		params := make([]types.Type, len(t.Params))
		minArgs := 0
		for i, p := range t.Params {
			params[i] = c.resolveType(p)
			optional := i < len(t.Optional) && t.Optional[i]
			if !optional {
				minArgs = i + 1
			}
		}
		isVarArg := t.RestType != nil
		if isVarArg {
			params = append(params, c.resolveType(t.RestType))
		}
		return &types.Callable{Params: params, MinArgs: minArgs, IsVarArg: isVarArg, Ret: c.resolveType(t.Ret)}
	case *ast.NameTypeExpr:
		if t.Name == "None" {
			return types.NoneType
		}
		if c.classTVars != nil {
			if tp, ok := c.classTVars[t.Name]; ok {
				return &types.TypeParameterType{Parameter: tp}
			}
		}
		ci, ok := c.resolveClassByName(t.Name)
		if !ok {
			return &types.UnboundType{Name: t.Name}
		}
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = c.resolveType(a)
		}
		return &types.Instance{Class: ci, Args: args}
	}
	return types.Any
}
