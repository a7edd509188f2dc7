package types

// IsSubtype reports whether a is usable wherever b is expected. Any is
// subtype of and supertype of every type; UnboundType is treated as
// compatible with everything so that one bad annotation does not
// cascade into unrelated diagnostics.
func IsSubtype(a, b Type) bool {
	if a == nil || b == nil {
		return true
	}
	if a == Any || b == Any {
		return true
	}
	if _, ok := a.(*UnboundType); ok {
		return true
	}
	if _, ok := b.(*UnboundType); ok {
		return true
	}
	if a == Void || b == Void {
		return a == Void && b == Void
	}
	if a == NoneType {
		return b == NoneType
	}

	switch bt := b.(type) {
	case *Instance:
		at, ok := a.(*Instance)
		if !ok {
			return false
		}
		return instanceIsSubtype(at, bt)
	case *Callable:
		switch at := a.(type) {
		case *Callable:
			return callableIsSubtype(at, bt)
		case *Overloaded:
			for _, item := range at.Items {
				if callableIsSubtype(item, bt) {
					return true
				}
			}
			return false
		}
		return false
	case *Overloaded:
		switch at := a.(type) {
		case *Callable:
			for _, item := range bt.Items {
				if callableIsSubtype(at, item) {
					return true
				}
			}
			return false
		case *Overloaded:
			for _, item := range at.Items {
				if !IsSubtype(item, bt) {
					return false
				}
			}
			return true
		}
		return false
	case *TupleType:
		at, ok := a.(*TupleType)
		if !ok || len(at.Items) != len(bt.Items) {
			return false
		}
		for i := range at.Items {
			if !IsSubtype(at.Items[i], bt.Items[i]) {
				return false
			}
		}
		return true
	case *TypeParameterType:
		at, ok := a.(*TypeParameterType)
		return ok && at.Parameter == bt.Parameter
	case *Primitive:
		return a == b
	}
	return IsSameType(a, b)
}

func instanceIsSubtype(a, b *Instance) bool {
	if b.Class.IsInterface {
		if !implementsInterface(a.Class, b.Class) {
			return false
		}
		mappedArgs := interfaceArgsFor(a, b.Class)
		return typeArgsSubtype(mappedArgs, b.Args)
	}
	for c := a.Class; c != nil; c = c.Base {
		if c == b.Class {
			if c == a.Class {
				return typeArgsSubtype(a.Args, b.Args)
			}
			// a's class is a proper descendant of b's class: the
			// instantiation at b's level is a.Args mapped through the
			// base chain, one substitution per ancestor hop.
			return typeArgsSubtype(instanceArgsAtAncestor(a, b.Class), b.Args)
		}
	}
	return false
}

func implementsInterface(c *ClassInfo, iface *ClassInfo) bool {
	for _, i := range c.AllDirectlyImplementedInterfaces() {
		if i == iface {
			return true
		}
	}
	return false
}

// interfaceArgsFor computes the type arguments iface is instantiated
// with when viewed from instance a, by substituting a's own type
// arguments into the InterfaceTypeArgs recorded at whichever ancestor
// of a.Class directly lists iface.
func interfaceArgsFor(a *Instance, iface *ClassInfo) []Type {
	for c := a.Class; c != nil; c = c.Base {
		for i, decl := range c.Interfaces {
			if decl == iface {
				sub := substitutionFor(c, a)
				args := c.InterfaceTypeArgs[i]
				out := make([]Type, len(args))
				for j, arg := range args {
					out[j] = substitute(arg, sub)
				}
				return out
			}
		}
	}
	return nil
}

// instanceArgsAtAncestor walks from a.Class up to (and including)
// ancestor, composing one BaseTypeArgs substitution per hop, and
// returns the type arguments the instance carries once viewed at
// ancestor's level.
func instanceArgsAtAncestor(a *Instance, ancestor *ClassInfo) []Type {
	args := a.Args
	for c := a.Class; c != nil && c != ancestor; c = c.Base {
		sub := substitutionFor(c, &Instance{Class: c, Args: args})
		next := make([]Type, len(c.BaseTypeArgs))
		for i, t := range c.BaseTypeArgs {
			next[i] = substitute(t, sub)
		}
		args = next
	}
	return args
}

func typeArgsSubtype(a, b []Type) bool {
	if len(a) != len(b) {
		return len(a) == 0 || len(b) == 0
	}
	for i := range a {
		if !IsSubtype(a[i], b[i]) {
			return false
		}
	}
	return true
}

func callableIsSubtype(a, b *Callable) bool {
	if a.IsVarArg != b.IsVarArg {
		if !(a.IsVarArg && len(a.Params) <= b.MinArgs) {
			return false
		}
	}
	if len(a.Params) < len(b.Params) && !a.IsVarArg {
		return false
	}
	if b.MinArgs < a.MinArgs {
		return false
	}
	for i, bp := range b.Params {
		var ap Type
		switch {
		case i < len(a.Params):
			ap = a.Params[i]
		case a.IsVarArg:
			ap = a.Params[len(a.Params)-1]
		default:
			return false
		}
		// parameters are contravariant: the overriding/narrower
		// callable must accept at least what b accepts.
		if !IsSubtype(bp, ap) {
			return false
		}
	}
	return IsSubtype(a.Ret, b.Ret)
}

// IsEquivalent is symmetric compatibility: true if either side is Any,
// or both are subtypes of each other.
func IsEquivalent(a, b Type) bool {
	if a == Any || b == Any {
		return true
	}
	return IsSubtype(a, b) && IsSubtype(b, a)
}

// IsSameType is structural identity, not mere mutual subtyping (e.g.
// Any and int are mutual subtypes but not the same type).
func IsSameType(a, b Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch at := a.(type) {
	case *Primitive:
		bt, ok := b.(*Primitive)
		return ok && at == bt
	case *Instance:
		bt, ok := b.(*Instance)
		if !ok || at.Class != bt.Class || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !IsSameType(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case *Callable:
		bt, ok := b.(*Callable)
		if !ok || len(at.Params) != len(bt.Params) || at.MinArgs != bt.MinArgs || at.IsVarArg != bt.IsVarArg {
			return false
		}
		for i := range at.Params {
			if !IsSameType(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return IsSameType(at.Ret, bt.Ret)
	case *Overloaded:
		bt, ok := b.(*Overloaded)
		if !ok || len(at.Items) != len(bt.Items) {
			return false
		}
		for i := range at.Items {
			if !IsSameType(at.Items[i], bt.Items[i]) {
				return false
			}
		}
		return true
	case *TupleType:
		bt, ok := b.(*TupleType)
		if !ok || len(at.Items) != len(bt.Items) {
			return false
		}
		for i := range at.Items {
			if !IsSameType(at.Items[i], bt.Items[i]) {
				return false
			}
		}
		return true
	case *UnboundType:
		bt, ok := b.(*UnboundType)
		return ok && at.Name == bt.Name
	case *TypeParameterType:
		bt, ok := b.(*TypeParameterType)
		return ok && at.Parameter == bt.Parameter
	}
	return false
}

// substitutionFor pairs c's TypeParameters with the arguments carried
// by instance inst (inst.Class must be c).
func substitutionFor(c *ClassInfo, inst *Instance) map[*TypeParameter]Type {
	sub := make(map[*TypeParameter]Type, len(c.TypeParameters))
	for i, tp := range c.TypeParameters {
		if i < len(inst.Args) {
			sub[tp] = inst.Args[i]
		}
	}
	return sub
}

func substitute(t Type, sub map[*TypeParameter]Type) Type {
	switch v := t.(type) {
	case *TypeParameterType:
		if repl, ok := sub[v.Parameter]; ok {
			return repl
		}
		return t
	case *Instance:
		if len(v.Args) == 0 {
			return v
		}
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = substitute(a, sub)
		}
		return &Instance{Class: v.Class, Args: args}
	case *Callable:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = substitute(p, sub)
		}
		return &Callable{
			Params: params, MinArgs: v.MinArgs, IsVarArg: v.IsVarArg,
			Ret: substitute(v.Ret, sub), IsTypeObj: v.IsTypeObj,
			Name: v.Name, Variables: v.Variables,
		}
	case *Overloaded:
		items := make([]*Callable, len(v.Items))
		for i, it := range v.Items {
			items[i] = substitute(it, sub).(*Callable)
		}
		return &Overloaded{Items: items}
	case *TupleType:
		items := make([]Type, len(v.Items))
		for i, it := range v.Items {
			items[i] = substitute(it, sub)
		}
		return &TupleType{Items: items}
	default:
		return t
	}
}

// MapTypeFromSupertype substitutes super's type parameters occurring in
// t with sub's corresponding type arguments, by walking sub's base
// chain up to super one hop at a time (mirroring how a subclass's
// instantiation of a generic base composes across multiple levels of
// inheritance).
func MapTypeFromSupertype(t Type, sub, super *ClassInfo) Type {
	if super == nil || len(super.TypeParameters) == 0 {
		return t
	}
	// Walk from sub up to super, composing one substitution per hop.
	type hop struct {
		class *ClassInfo
		args  []Type
	}
	var chain []hop
	cur := sub
	args := identityArgs(sub)
	for cur != nil && cur != super {
		chain = append(chain, hop{class: cur, args: args})
		subMap := substitutionFor(cur, &Instance{Class: cur, Args: args})
		next := make([]Type, len(cur.BaseTypeArgs))
		for i, a := range cur.BaseTypeArgs {
			next[i] = substitute(a, subMap)
		}
		args = next
		cur = cur.Base
	}
	if cur != super {
		// super is not on sub's direct base chain (e.g. it's an
		// interface); fall back to identity — nothing to substitute
		// with confidence.
		return t
	}
	subMap := substitutionFor(super, &Instance{Class: super, Args: args})
	return substitute(t, subMap)
}

func identityArgs(c *ClassInfo) []Type {
	args := make([]Type, len(c.TypeParameters))
	for i, tp := range c.TypeParameters {
		args[i] = &TypeParameterType{Parameter: tp}
	}
	return args
}

// IsInvalidForInference reports whether t cannot be pinned down as an
// inferred variable type: it is NoneType itself, or it is an Instance
// or TupleType with an invalid type argument/item. Preserved as-is per
// the design notes even though it also rejects nested containers like
// list<list<NoneType>>.
func IsInvalidForInference(t Type) bool {
	switch v := t.(type) {
	case nil:
		return false
	case *Primitive:
		return v == NoneType
	case *Instance:
		for _, a := range v.Args {
			if IsInvalidForInference(a) {
				return true
			}
		}
		return false
	case *TupleType:
		for _, it := range v.Items {
			if IsInvalidForInference(it) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// StripType drops cosmetic metadata — a Callable's attached name — so
// the result is a canonical type suitable for storing as an inferred
// variable type.
func StripType(t Type) Type {
	c, ok := t.(*Callable)
	if !ok || c.Name == "" {
		return t
	}
	cp := *c
	cp.Name = ""
	return &cp
}
