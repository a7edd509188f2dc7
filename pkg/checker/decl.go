package checker

import (
	"gradus/pkg/ast"
	"gradus/pkg/modules"
	"gradus/pkg/types"
)

// checkTopLevel visits one top-level definition or statement after
// hoisting has already populated every forward reference.
func (c *Checker) checkTopLevel(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ClassDecl:
		c.checkClassDecl(s)
	case *ast.FuncDecl:
		c.checkFuncDecl(s, false, nil)
	case *ast.OverloadedFuncDecl:
		c.checkOverloadedFuncDecl(s, false, nil)
	default:
		c.checkStmt(stmt)
	}
}

// checkFuncDecl implements §4.2's function-definition checking. The
// Callable signature was already computed by hoistFuncSignature; this
// pass enters the body scope and checks it.
func (c *Checker) checkFuncDecl(decl *ast.FuncDecl, isMethod bool, owner *types.ClassInfo) {
	dynamic := decl.Ret == nil
	c.pushDynamic(dynamic)
	defer c.popDynamic()

	restoreFn := c.setFunction(decl.Name)
	defer restoreFn()

	if decl.ResolvedType == nil {
		c.hoistFuncSignature(decl, isMethod, owner)
	}
	sig := decl.ResolvedType.(*types.Callable)

	if isMethod && decl.Name == "__init__" && !dynamic && sig.Ret != types.Void {
		c.fail(decl, "The __init__ method must not have a return type")
	}

	c.pushReturn(sig.Ret)
	defer c.popReturn()

	outerLocals := c.locals
	c.locals = NewEnvironment()
	defer func() { c.locals = outerLocals }()

	for i, p := range decl.Params {
		pt := types.Any
		if i < len(sig.Params) {
			pt = sig.Params[i]
		}
		if p.IsVarArg {
			if elem, ok := types.IsListInstance(pt); ok {
				pt = elem
			}
			pt = types.ListOf(pt)
		}
		c.locals.Define(p.Name, pt)
	}
	if isMethod && owner != nil {
		c.locals.Define("this", &types.Instance{Class: owner})
	}

	if decl.Body != nil {
		c.checkBlock(decl.Body)
	}
}

// checkOverloadedFuncDecl checks each overload item independently,
// then — if it is a method — runs override checking once against the
// Overloaded signature as a whole (§4.2, §4.6).
func (c *Checker) checkOverloadedFuncDecl(decl *ast.OverloadedFuncDecl, isMethod bool, owner *types.ClassInfo) {
	for _, sig := range decl.Signatures {
		c.checkFuncDecl(sig, isMethod, owner)
	}
	c.checkFuncDecl(decl.Implementation, isMethod, owner)
	if isMethod && owner != nil {
		c.checkMethodOverride(decl, owner, decl.Name, decl.ResolvedType)
	}
}

// checkClassDecl implements §4.2's class-definition checking: the
// TypeInfo and method signatures were built by hoistClassMethods; this
// pass runs the interface/override obligations and checks every
// member body.
func (c *Checker) checkClassDecl(cd *ast.ClassDecl) {
	ci := cd.ResolvedClass
	restore := c.enterClassTVars(ci)
	defer restore()

	restoreType := c.setType(cd.Name)
	defer restoreType()

	c.checkDuplicateInterfaces(cd, ci)
	c.checkInterfaceObligations(cd, ci)

	for _, m := range cd.Members {
		switch fd := m.(type) {
		case *ast.FuncDecl:
			c.checkFuncDecl(fd, true, ci)
			if fd.Name != "__init__" {
				c.checkMethodOverride(fd, ci, fd.Name, fd.ResolvedType)
			}
		case *ast.OverloadedFuncDecl:
			c.checkOverloadedFuncDecl(fd, true, ci)
		case *ast.VarDecl:
			c.checkVarDecl(fd)
		}
	}
}

// checkVarDecl implements §4.2's variable-definition checking for the
// annotated/unannotated-with-initializer cases; the
// unannotated-without-initializer case is rejected unless at top
// level or inside a dynamic function.
func (c *Checker) checkVarDecl(decl *ast.VarDecl) {
	if decl.Value == nil {
		if !c.atTopLevel() && !c.inDynamicFunc() {
			c.fail(decl, "Need type annotation for variable %q", decl.Name)
		}
		return
	}

	if decl.Type != nil {
		want := c.resolveType(decl.Type)
		got := c.accept(decl.Value, want)
		if !types.IsSubtype(got, want) {
			c.fail(decl.Value, "Incompatible types in assignment (expression has type %q, variable has type %q)", got, want)
		}
		c.defineLocalOrGlobal(decl.Name, want)
		return
	}

	got := c.accept(decl.Value, nil)
	inferred := c.inferVariableType(decl.Value, decl.Value, decl.Name, got)
	c.defineLocalOrGlobal(decl.Name, inferred)
}

func (c *Checker) defineLocalOrGlobal(name string, t types.Type) {
	if c.locals != nil {
		c.locals.Define(name, t)
		return
	}
	if c.file != nil {
		c.file.Define(name, nil, modules.GDEF).Type = t
	}
}
