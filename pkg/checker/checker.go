// Package checker is the type-checking core: the statement-level
// visitor, assignment/inference logic, override-compatibility
// algorithm, and the driver that ties them to a concrete expression
// checker — grounded in the teacher's pkg/checker/checker.go (visitor
// shape, Environment chain, debug-gated logging) but checking a
// different, smaller type system: a gradually-typed, class-based OO
// language rather than TypeScript generics.
package checker

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"gradus/pkg/ast"
	"gradus/pkg/builtinstub"
	"gradus/pkg/diagnostics"
	"gradus/pkg/modules"
	"gradus/pkg/types"
)

const checkerDebug = false

func debugPrintf(format string, args ...interface{}) {
	if checkerDebug {
		fmt.Fprintf(os.Stderr, "[checker] "+format+"\n", args...)
	}
}

// Checker is a single check_file invocation's worth of state. It is
// never reused across files and never entered concurrently.
type Checker struct {
	builtins *builtinstub.Builtins
	modules  *modules.Registry
	strict   bool

	sink *diagnostics.Sink

	file *modules.ModuleFile

	// Scope chain, per §4.7: locals -> class_tvars -> globals -> builtins.
	locals     *Environment
	classTVars map[string]*types.TypeParameter

	// Per-checker mutable stacks (§3, §5). Must be symmetric on every
	// exit path, including error paths.
	returnTypes  []types.Type
	typeContext  []types.Type
	dynamicFuncs []bool

	typeMap map[ast.Expression]types.Type

	// Diagnostic context, set/restored around declarations.
	curFile string
	curFunc string
	curType string
}

// NewChecker creates a checker ready to check one file against the
// given built-in scope and module registry (for qualified lookup).
func NewChecker(b *builtinstub.Builtins, reg *modules.Registry, strict bool) *Checker {
	return &Checker{
		builtins: b,
		modules:  reg,
		strict:   strict,
		typeMap:  make(map[ast.Expression]types.Type),
	}
}

// CheckFile is check_file(file, path): binds globals to file's symbol
// table, clears locals/class_tvars, visits every top-level
// definition, and returns a fresh diagnostic sink stamped with a run
// ID for cross-run correlation.
func (c *Checker) CheckFile(file *modules.ModuleFile, path string, prog *ast.Block) *diagnostics.Sink {
	c.sink = diagnostics.NewSink(uuid.NewString())
	c.file = file
	c.curFile = path
	c.locals = nil
	c.classTVars = nil

	c.hoistFile(prog)

	for _, stmt := range prog.Stmts {
		c.checkTopLevel(stmt)
	}

	if len(c.returnTypes) != 0 || len(c.typeContext) != 0 || len(c.dynamicFuncs) != 0 {
		debugPrintf("stack leakage after CheckFile: returns=%d context=%d dynamic=%d",
			len(c.returnTypes), len(c.typeContext), len(c.dynamicFuncs))
	}
	return c.sink
}

// TypeOf returns the type recorded for an already-checked expression.
func (c *Checker) TypeOf(e ast.Expression) (types.Type, bool) {
	t, ok := c.typeMap[e]
	return t, ok
}

// --- stacks ---

func (c *Checker) pushReturn(t types.Type)  { c.returnTypes = append(c.returnTypes, t) }
func (c *Checker) popReturn()               { c.returnTypes = c.returnTypes[:len(c.returnTypes)-1] }
func (c *Checker) currentReturn() types.Type {
	if len(c.returnTypes) == 0 {
		return nil
	}
	return c.returnTypes[len(c.returnTypes)-1]
}

func (c *Checker) pushContext(t types.Type) { c.typeContext = append(c.typeContext, t) }
func (c *Checker) popContext()              { c.typeContext = c.typeContext[:len(c.typeContext)-1] }
func (c *Checker) currentContext() types.Type {
	if len(c.typeContext) == 0 {
		return nil
	}
	return c.typeContext[len(c.typeContext)-1]
}

func (c *Checker) pushDynamic(b bool) { c.dynamicFuncs = append(c.dynamicFuncs, b) }
func (c *Checker) popDynamic()        { c.dynamicFuncs = c.dynamicFuncs[:len(c.dynamicFuncs)-1] }
func (c *Checker) inDynamicFunc() bool {
	if len(c.dynamicFuncs) == 0 {
		return false
	}
	return c.dynamicFuncs[len(c.dynamicFuncs)-1]
}

// atTopLevel reports whether we are outside any function body.
func (c *Checker) atTopLevel() bool { return c.locals == nil }

// accept is the universal expression entry point (§4.1): push
// expected, dispatch, pop, record, then mask through Any if the
// innermost function is dynamic.
func (c *Checker) accept(node ast.Expression, expected types.Type) types.Type {
	if node == nil {
		return types.Any
	}
	c.pushContext(expected)
	t := c.visitExpr(node)
	c.popContext()
	if t == nil {
		t = types.Any
	}
	c.typeMap[node] = t
	node.SetComputedType(t)
	if c.inDynamicFunc() {
		return types.Any
	}
	return t
}

// --- diagnostics helpers ---

func (c *Checker) setFunction(name string) (restore func()) {
	prev := c.curFunc
	c.curFunc = name
	return func() { c.curFunc = prev }
}

func (c *Checker) setType(name string) (restore func()) {
	prev := c.curType
	c.curType = name
	return func() { c.curType = prev }
}

func (c *Checker) fail(pos ast.Node, format string, args ...interface{}) {
	c.sink.Add(diagnostics.NewTypeError(pos.Pos(), format, args...))
}

// inferVariableType implements §4.4's init_type guard shared by every
// inference site (var declaration, assignment, for-loop binding): a
// Void initializer aborts with a does-not-return-a-value diagnostic
// rather than binding a useless type, and an invalid-for-inference
// type (NoneType, or an Instance/TupleType with one) demands an
// explicit annotation instead of silently widening to Any. value is
// the originating initializer expression where one exists (nil for a
// for-loop/tuple-component binding with no single source expression);
// site anchors the diagnostic's position.
func (c *Checker) inferVariableType(site ast.Node, value ast.Expression, name string, got types.Type) types.Type {
	if got == types.Void {
		c.sink.Add(diagnostics.NewDoesNotReturnValue(site.Pos(), calleeName(value)))
		return types.Any
	}
	inferred := types.StripType(got)
	if types.IsInvalidForInference(inferred) {
		c.fail(site, "Need type annotation for variable %q", name)
		return types.Any
	}
	return inferred
}

// calleeName extracts a display name for a does-not-return-a-value
// diagnostic: the callee's simple name for a direct call, the
// property name for a method call, and a generic fallback when no
// single call expression produced the value.
func calleeName(e ast.Expression) string {
	if e == nil {
		return "expression"
	}
	call, ok := ast.Unwrap(e).(*ast.CallExpr)
	if !ok {
		return "expression"
	}
	switch callee := ast.Unwrap(call.Callee).(type) {
	case *ast.Identifier:
		return callee.Name
	case *ast.MemberExpr:
		return callee.Property
	default:
		return "expression"
	}
}

// lookup resolves name through locals -> class_tvars -> globals ->
// builtins, per §4.7.
func (c *Checker) lookup(name string) (types.Type, bool) {
	if c.locals != nil {
		if t, ok := c.locals.Resolve(name); ok {
			return t, true
		}
	}
	if c.classTVars != nil {
		if tp, ok := c.classTVars[name]; ok {
			return &types.TypeParameterType{Parameter: tp}, true
		}
	}
	if c.file != nil {
		if entry, ok := c.file.Lookup(name); ok && entry.Type != nil {
			return entry.Type, true
		}
	}
	if c.builtins != nil {
		if ci, ok := c.builtins.Classes[name]; ok {
			return &types.Callable{Ret: &types.Instance{Class: ci}, IsTypeObj: true, Name: name}, true
		}
	}
	return nil, false
}

// lookupQualified resolves a dotted reference (§4.7): a single
// segment delegates to lookup; a two-segment path crosses exactly one
// module boundary via the registry.
func (c *Checker) lookupQualified(path []string) (types.Type, bool) {
	if len(path) == 1 {
		return c.lookup(path[0])
	}
	if c.modules == nil {
		return nil, false
	}
	entry, ok := c.modules.LookupQualified(path)
	if !ok || entry.Type == nil {
		return nil, false
	}
	return entry.Type, true
}

// resolveClassByName resolves a class name against builtins, then
// locally-declared classes; it reports false on a miss and leaves the
// diagnostic to the caller.
func (c *Checker) resolveClassByName(name string) (*types.ClassInfo, bool) {
	if c.builtins != nil {
		if ci, ok := c.builtins.Classes[name]; ok {
			return ci, true
		}
	}
	if c.file != nil {
		if entry, ok := c.file.Lookup(name); ok {
			if cd, ok := entry.Node.(*ast.ClassDecl); ok && cd.ResolvedClass != nil {
				return cd.ResolvedClass, true
			}
		}
	}
	return nil, false
}
