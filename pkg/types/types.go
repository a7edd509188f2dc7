// Package types implements the type algebra the checker reasons over:
// the dynamic type Any, the structural/nominal hybrid used for class
// instances, and the judgments (subtype, equivalence, same-type,
// supertype substitution) the checker core treats as primitives.
package types

// Type is the interface implemented by every type term.
type Type interface {
	String() string
	typeNode() // closes the Type interface to this package
}

// Primitive is a singleton, name-identified type term. Any, Void and
// NoneType are all represented this way; pointer identity is their
// equality.
type Primitive struct {
	Name string
}

func (p *Primitive) String() string { return p.Name }
func (p *Primitive) typeNode()      {}

var (
	// Any is the dynamic type: subtype of and supertype of everything.
	Any = &Primitive{Name: "Any"}
	// Void is the no-value type returned by procedures.
	Void = &Primitive{Name: "void"}
	// NoneType is the type of the null literal.
	NoneType = &Primitive{Name: "NoneType"}
)
