package checker

import "gradus/pkg/types"

// Environment is a local-scope symbol table, chained to its enclosing
// scope exactly the way the teacher's pkg/checker/environment.go
// chains function scopes — adapted here to store a single resolved
// Type per name (no const-tracking, no type aliases: this language
// has neither).
type Environment struct {
	symbols map[string]types.Type
	outer   *Environment
}

// NewEnvironment creates a top-level (function-body) environment.
func NewEnvironment() *Environment {
	return &Environment{symbols: make(map[string]types.Type)}
}

// NewEnclosedEnvironment creates an environment nested within outer,
// for a block that introduces no new lvalues of its own today but
// keeps the door open for block-scoped extensions later.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{symbols: make(map[string]types.Type), outer: outer}
}

// Define binds name in this scope, overwriting any existing binding —
// first-assignment VarDecl semantics allow that without a runtime
// conflict check (this surface language has no other redeclaration
// grammar).
func (e *Environment) Define(name string, t types.Type) {
	e.symbols[name] = t
}

// Update assigns a new type to an existing binding reachable from e,
// returning false if name isn't bound anywhere in the chain.
func (e *Environment) Update(name string, t types.Type) bool {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.symbols[name]; ok {
			env.symbols[name] = t
			return true
		}
	}
	return false
}

// Resolve looks up name in this scope and then each enclosing scope.
func (e *Environment) Resolve(name string) (types.Type, bool) {
	for env := e; env != nil; env = env.outer {
		if t, ok := env.symbols[name]; ok {
			return t, true
		}
	}
	return nil, false
}
