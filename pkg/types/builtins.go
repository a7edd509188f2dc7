package types

// Well-known class descriptors the checker core references directly:
// the root of the nominal hierarchy, the exception root `raise`/`except`
// check against, and the single built-in generic container the for-loop
// and list-target inference rules reason about.
var (
	ObjectClass        = NewClassInfo("object")
	BaseExceptionClass = NewClassInfo("BaseException")
	IterableClass      = NewClassInfo("Iterable")
	ListClass          = NewClassInfo("list")
)

func init() {
	BaseExceptionClass.Base = ObjectClass

	iterT := &TypeParameter{Name: "T"}
	IterableClass.TypeParameters = []*TypeParameter{iterT}
	IterableClass.IsInterface = true

	listT := &TypeParameter{Name: "T"}
	ListClass.TypeParameters = []*TypeParameter{listT}
	ListClass.Base = ObjectClass
	ListClass.Interfaces = []*ClassInfo{IterableClass}
	ListClass.InterfaceTypeArgs = [][]Type{{&TypeParameterType{Parameter: listT}}}
}

// ListOf builds the Instance for list<elem>.
func ListOf(elem Type) *Instance {
	return &Instance{Class: ListClass, Args: []Type{elem}}
}

// IsListInstance reports whether t is list<elem> and returns elem.
func IsListInstance(t Type) (Type, bool) {
	inst, ok := t.(*Instance)
	if !ok || inst.Class != ListClass || len(inst.Args) != 1 {
		return nil, false
	}
	return inst.Args[0], true
}

// IterableOf builds the Instance for Iterable<elem>.
func IterableOf(elem Type) *Instance {
	return &Instance{Class: IterableClass, Args: []Type{elem}}
}
