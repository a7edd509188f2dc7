// Package modules tracks the checked source files making up one run
// and the definitions each exposes to others, adapted from the
// teacher's pkg/modules registry: that registry tracks a module
// through resolve/load/parse/check/compile states for an async
// bundler; this one keeps no per-module state, only the symbol table
// each file exports.
package modules

import (
	"gradus/pkg/ast"
	"gradus/pkg/types"
)

// SymbolKind classifies a name bound at module scope, mirroring
// check.py's GDEF/MDEF/LDEF distinction (module-level, class-member,
// and local-function scope respectively).
type SymbolKind int

const (
	GDEF SymbolKind = iota // module-level global
	MDEF                   // class member
	LDEF                   // function-local
)

func (k SymbolKind) String() string {
	switch k {
	case GDEF:
		return "GDEF"
	case MDEF:
		return "MDEF"
	case LDEF:
		return "LDEF"
	default:
		return "?"
	}
}

// SymbolTableNode is one entry of a module's or class's symbol table:
// the statement that defines the name, the kind of scope it belongs
// to, and (once the checker has run) its resolved type.
type SymbolTableNode struct {
	Node Statement
	Kind SymbolKind
	Type types.Type
}

// Statement aliases ast.Statement so callers outside pkg/ast don't
// need a second import just to spell the symbol table's value type.
type Statement = ast.Statement

// ModuleFile is one source file's worth of top-level definitions,
// keyed for qualified (`module.name`) lookup the way check.py resolves
// `a.b.c` member-chain references against imported modules.
type ModuleFile struct {
	Name        string
	SymbolTable map[string]*SymbolTableNode
	Definitions []Statement
}

// NewModuleFile creates an empty module file ready for the checker's
// hoisting pass to populate.
func NewModuleFile(name string) *ModuleFile {
	return &ModuleFile{Name: name, SymbolTable: make(map[string]*SymbolTableNode)}
}

// Define registers name at module scope. A redefinition silently
// overwrites the previous entry; no duplicate-definition diagnostic is
// produced.
func (m *ModuleFile) Define(name string, node Statement, kind SymbolKind) *SymbolTableNode {
	entry := &SymbolTableNode{Node: node, Kind: kind}
	m.SymbolTable[name] = entry
	m.Definitions = append(m.Definitions, node)
	return entry
}

func (m *ModuleFile) Lookup(name string) (*SymbolTableNode, bool) {
	n, ok := m.SymbolTable[name]
	return n, ok
}

// Registry holds every module file loaded during one check_file
// invocation, supporting the qualified `module.name` lookup that
// Checker.lookupQualified performs (member-expression checking does
// not call it).
type Registry struct {
	files map[string]*ModuleFile
}

func NewRegistry() *Registry {
	return &Registry{files: make(map[string]*ModuleFile)}
}

func (r *Registry) Add(f *ModuleFile) { r.files[f.Name] = f }

func (r *Registry) Get(name string) (*ModuleFile, bool) {
	f, ok := r.files[name]
	return f, ok
}

// LookupQualified resolves a dotted path like "mathutil.Vector" by
// treating the first segment as a module name and the remainder as a
// plain symbol-table lookup within it. Returns false if the first
// segment isn't a known module or the rest of the path isn't a single
// symbol (nested module member chains beyond one level aren't
// supported, matching spec's module-member-access scope).
func (r *Registry) LookupQualified(path []string) (*SymbolTableNode, bool) {
	if len(path) != 2 {
		return nil, false
	}
	f, ok := r.files[path[0]]
	if !ok {
		return nil, false
	}
	return f.Lookup(path[1])
}
