package checker

import (
	"gradus/pkg/ast"
	"gradus/pkg/modules"
	"gradus/pkg/types"
)

// hoistFile runs the pre-pass the driver needs before checking any
// body: it creates every class's TypeInfo shell and registers every
// top-level name, so mutually-recursive class references, forward
// function calls, and override lookups all resolve regardless of
// declaration order — the analogue of the semantic-analysis pass
// spec.md treats as already having happened (§1, §6).
func (c *Checker) hoistFile(prog *ast.Block) {
	for _, stmt := range prog.Stmts {
		if cd, ok := stmt.(*ast.ClassDecl); ok {
			ci := types.NewClassInfo(cd.Name)
			ci.IsInterface = cd.IsInterface
			for _, tp := range cd.TypeParams {
				ci.TypeParameters = append(ci.TypeParameters, &types.TypeParameter{Name: tp})
			}
			cd.ResolvedClass = ci
			c.file.Define(cd.Name, cd, modules.GDEF)
		}
	}

	for _, stmt := range prog.Stmts {
		switch s := stmt.(type) {
		case *ast.ClassDecl:
			c.wireClassGraph(s)
		case *ast.FuncDecl:
			c.file.Define(s.Name, s, modules.GDEF)
		case *ast.OverloadedFuncDecl:
			c.file.Define(s.Name, s, modules.GDEF)
		case *ast.VarDecl:
			c.file.Define(s.Name, s, modules.GDEF)
		}
	}

	for _, stmt := range prog.Stmts {
		if cd, ok := stmt.(*ast.ClassDecl); ok {
			c.hoistClassMethods(cd)
		}
	}

	for _, stmt := range prog.Stmts {
		switch s := stmt.(type) {
		case *ast.FuncDecl:
			c.hoistFuncSignature(s, false, nil)
			if entry, ok := c.file.Lookup(s.Name); ok {
				entry.Type = s.ResolvedType
			}
		case *ast.OverloadedFuncDecl:
			c.hoistOverloadedSignature(s)
			if entry, ok := c.file.Lookup(s.Name); ok {
				entry.Type = s.ResolvedType
			}
		case *ast.VarDecl:
			if s.Type != nil {
				if entry, ok := c.file.Lookup(s.Name); ok {
					entry.Type = c.resolveType(s.Type)
				}
			}
		}
	}
}

// wireClassGraph resolves Base/Interfaces for a class whose shell
// already exists (so siblings declared later still resolve).
func (c *Checker) wireClassGraph(cd *ast.ClassDecl) {
	ci := cd.ResolvedClass
	restore := c.enterClassTVars(ci)
	defer restore()

	if cd.Extends != nil {
		if base, ok := c.resolveClassByName(cd.Extends.Name); ok {
			ci.Base = base
			for _, a := range cd.Extends.Args {
				ci.BaseTypeArgs = append(ci.BaseTypeArgs, c.resolveType(a))
			}
		} else {
			c.fail(cd.Extends, "Cannot resolve base class %q", cd.Extends.Name)
		}
	} else if !ci.IsInterface && c.builtins != nil {
		ci.Base = c.builtins.Object
	}

	for _, ifaceExpr := range cd.Implements {
		iface, ok := c.resolveClassByName(ifaceExpr.Name)
		if !ok {
			c.fail(ifaceExpr, "Cannot resolve interface %q", ifaceExpr.Name)
			continue
		}
		args := make([]types.Type, len(ifaceExpr.Args))
		for i, a := range ifaceExpr.Args {
			args[i] = c.resolveType(a)
		}
		ci.Interfaces = append(ci.Interfaces, iface)
		ci.InterfaceTypeArgs = append(ci.InterfaceTypeArgs, args)
	}
}

func (c *Checker) enterClassTVars(ci *types.ClassInfo) (restore func()) {
	prevTVars := c.classTVars
	prevType := c.curType
	c.classTVars = make(map[string]*types.TypeParameter, len(ci.TypeParameters))
	for _, tp := range ci.TypeParameters {
		c.classTVars[tp.Name] = tp
	}
	c.curType = ci.Name
	return func() {
		c.classTVars = prevTVars
		c.curType = prevType
	}
}

// hoistClassMethods computes each method's Callable signature (but
// does not check bodies) so override checking and sibling method
// calls see every signature up front.
func (c *Checker) hoistClassMethods(cd *ast.ClassDecl) {
	ci := cd.ResolvedClass
	restore := c.enterClassTVars(ci)
	defer restore()

	for _, m := range cd.Members {
		switch fd := m.(type) {
		case *ast.FuncDecl:
			c.hoistFuncSignature(fd, true, ci)
			ci.Methods[fd.Name] = fd.ResolvedType
		case *ast.OverloadedFuncDecl:
			c.hoistOverloadedSignature(fd)
			ci.Methods[fd.Name] = fd.ResolvedType
		case *ast.VarDecl:
			if fd.Type != nil {
				ci.Fields[fd.Name] = c.resolveType(fd.Type)
			} else {
				ci.Fields[fd.Name] = types.Any
			}
		}
	}
}

// hoistFuncSignature resolves decl's Callable type from its
// annotations without entering the body, and stores it on
// decl.ResolvedType.
func (c *Checker) hoistFuncSignature(decl *ast.FuncDecl, isMethod bool, owner *types.ClassInfo) {
	if decl.Ret == nil {
		decl.ResolvedType = &types.Callable{Ret: types.Any, Name: decl.Name, IsVarArg: hasVarArg(decl.Params), MinArgs: minArgs(decl.Params), Params: anyParams(decl.Params)}
		return
	}
	params := make([]types.Type, 0, len(decl.Params))
	for _, p := range decl.Params {
		params = append(params, c.resolveType(p.Type))
	}
	decl.ResolvedType = &types.Callable{
		Params:   params,
		MinArgs:  minArgs(decl.Params),
		IsVarArg: hasVarArg(decl.Params),
		Ret:      c.resolveType(decl.Ret),
		Name:     decl.Name,
	}
}

func (c *Checker) hoistOverloadedSignature(decl *ast.OverloadedFuncDecl) {
	ov := &types.Overloaded{}
	for _, sig := range decl.Signatures {
		c.hoistFuncSignature(sig, false, nil)
		ov.Items = append(ov.Items, sig.ResolvedType.(*types.Callable))
	}
	decl.ResolvedType = ov
}

func minArgs(params []*ast.Param) int {
	n := 0
	for i, p := range params {
		if p.IsVarArg {
			break
		}
		if !p.Optional {
			n = i + 1
		}
	}
	return n
}

func hasVarArg(params []*ast.Param) bool {
	return len(params) > 0 && params[len(params)-1].IsVarArg
}

func anyParams(params []*ast.Param) []types.Type {
	out := make([]types.Type, len(params))
	for i := range params {
		out[i] = types.Any
	}
	return out
}
