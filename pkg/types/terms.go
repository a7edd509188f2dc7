package types

import "strings"

// Instance is a nominal instantiation of a class. Args length equals
// Class.TypeParameters length (empty for a non-generic class).
type Instance struct {
	Class *ClassInfo
	Args  []Type
}

func (it *Instance) typeNode() {}
func (it *Instance) String() string {
	if len(it.Args) == 0 {
		return it.Class.Name
	}
	parts := make([]string, len(it.Args))
	for i, a := range it.Args {
		parts[i] = a.String()
	}
	return it.Class.Name + "<" + strings.Join(parts, ", ") + ">"
}

// Callable is an ordered-parameter-list function type. MinArgs gives
// the count of non-defaulted leading parameters; IsVarArg makes the
// last parameter a rest parameter (its declared type is the element
// type, not list<T> — callers needing list<T> wrap it themselves).
// Name is cosmetic metadata stripped before the type is stored as an
// inferred variable type (see StripType).
type Callable struct {
	Params    []Type
	MinArgs   int
	IsVarArg  bool
	Ret       Type
	IsTypeObj bool // true for a class's constructor signature
	Name      string
	Variables []*TypeParameter
}

func (c *Callable) typeNode() {}
func (c *Callable) String() string {
	parts := make([]string, len(c.Params))
	for i, p := range c.Params {
		parts[i] = p.String()
	}
	prefix := ""
	if c.Name != "" {
		prefix = c.Name + " "
	}
	return prefix + "(" + strings.Join(parts, ", ") + ") -> " + c.Ret.String()
}

// Overloaded is an ordered set of alternative Callable signatures.
type Overloaded struct {
	Items []*Callable
}

func (o *Overloaded) typeNode() {}
func (o *Overloaded) String() string {
	parts := make([]string, len(o.Items))
	for i, it := range o.Items {
		parts[i] = it.String()
	}
	return "overload(" + strings.Join(parts, " | ") + ")"
}

// TupleType is a fixed-arity heterogeneous product.
type TupleType struct {
	Items []Type
}

func (t *TupleType) typeNode() {}
func (t *TupleType) String() string {
	parts := make([]string, len(t.Items))
	for i, it := range t.Items {
		parts[i] = it.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// UnboundType is a named type that failed to resolve. It is propagated
// rather than rejected so that a single bad annotation does not
// cascade into unrelated diagnostics; the judgments below treat it as
// compatible with everything.
type UnboundType struct {
	Name string
}

func (u *UnboundType) typeNode()      {}
func (u *UnboundType) String() string { return "Unbound(" + u.Name + ")" }
