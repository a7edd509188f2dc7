package types

// TypeParameter is a class- or function-level generic parameter.
type TypeParameter struct {
	Name       string
	Constraint Type // nil if unconstrained
}

// TypeParameterType is a reference to a TypeParameter occurring inside
// a signature or instance's type arguments.
type TypeParameterType struct {
	Parameter *TypeParameter
}

func (t *TypeParameterType) String() string { return t.Parameter.Name }
func (t *TypeParameterType) typeNode()      {}

// ClassInfo is the class descriptor: name, base, directly implemented
// interfaces, method table and the is_interface flag. It is built once,
// by pkg/builtinstub for builtins and by the checker's hoisting pass for
// declared classes, and is not changed after hoisting.
type ClassInfo struct {
	Name           string
	QualifiedName  string
	Base           *ClassInfo   // nil for a root class
	BaseTypeArgs   []Type       // type arguments supplied in the `extends` clause
	Interfaces     []*ClassInfo // directly implemented interfaces, in source order
	InterfaceTypeArgs [][]Type  // type arguments supplied per entry of Interfaces
	Methods        map[string]Type
	Fields         map[string]Type // instance variables declared directly on this class
	IsInterface    bool
	TypeParameters []*TypeParameter
}

func NewClassInfo(name string) *ClassInfo {
	return &ClassInfo{
		Name:    name,
		Methods: make(map[string]Type),
		Fields:  make(map[string]Type),
	}
}

func (ci *ClassInfo) String() string { return ci.Name }

// OwnMethod looks up a method declared directly on this class, without
// walking the base chain.
func (ci *ClassInfo) OwnMethod(name string) (Type, bool) {
	if ci == nil {
		return nil, false
	}
	m, ok := ci.Methods[name]
	return m, ok
}

// GetMethod walks the base chain and returns the method together with
// the class that owns it (the first ancestor, starting from ci itself,
// that declares it directly).
func (ci *ClassInfo) GetMethod(name string) (Type, *ClassInfo, bool) {
	for c := ci; c != nil; c = c.Base {
		if m, ok := c.Methods[name]; ok {
			return m, c, true
		}
	}
	return nil, nil, false
}

// HasMethod reports whether the method is available anywhere in the
// base chain.
func (ci *ClassInfo) HasMethod(name string) bool {
	_, _, ok := ci.GetMethod(name)
	return ok
}

// GetField walks the base chain for a directly-declared instance
// variable.
func (ci *ClassInfo) GetField(name string) (Type, bool) {
	for c := ci; c != nil; c = c.Base {
		if f, ok := c.Fields[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// Ancestors returns the transitive base chain, nearest first, not
// including ci itself.
func (ci *ClassInfo) Ancestors() []*ClassInfo {
	var out []*ClassInfo
	for c := ci.Base; c != nil; c = c.Base {
		out = append(out, c)
	}
	return out
}

// AllDirectlyImplementedInterfaces returns the transitive closure of
// every interface implemented by ci or any of its ancestors, each
// appearing once (by pointer identity), in discovery order. This is the
// deduplicating traversal called for in the design notes: the ancestor
// set is walked once rather than re-entering diamonds through both
// Base and Interfaces.
func (ci *ClassInfo) AllDirectlyImplementedInterfaces() []*ClassInfo {
	seen := make(map[*ClassInfo]bool)
	var out []*ClassInfo
	// visit adds an interface plus everything it extends (its Base
	// chain) and implements, so interface inheritance is followed too.
	var visit func(iface *ClassInfo)
	visit = func(iface *ClassInfo) {
		for i := iface; i != nil && !seen[i]; i = i.Base {
			seen[i] = true
			out = append(out, i)
			for _, parent := range i.Interfaces {
				visit(parent)
			}
		}
	}
	for c := ci; c != nil; c = c.Base {
		for _, iface := range c.Interfaces {
			visit(iface)
		}
	}
	return out
}

// DuplicateImplementsPosition reports the class in whose `implements`
// list the first interface re-mentioned at a second distinct position
// of the closure appears, and the interface itself. Used to produce a
// single diagnostic per duplicate rather than one per occurrence.
func (ci *ClassInfo) DuplicateImplementsPosition() (owner *ClassInfo, dup *ClassInfo, found bool) {
	seen := make(map[*ClassInfo]bool)
	for c := ci; c != nil; c = c.Base {
		for _, iface := range c.Interfaces {
			if seen[iface] {
				return c, iface, true
			}
			seen[iface] = true
		}
	}
	return nil, nil, false
}
