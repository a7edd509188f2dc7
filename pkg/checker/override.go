package checker

import (
	"gradus/pkg/ast"
	"gradus/pkg/diagnostics"
	"gradus/pkg/types"
)

// checkMethodOverride implements §4.6: a method re-declared on a
// subclass must be compatible with every ancestor (base class or
// directly/transitively implemented interface) that already declares
// a method of the same name — parameter equivalence plus covariant
// return, not contravariance, since the language's gradual-typing
// Any shortcut already covers the contravariant cases that matter.
func (c *Checker) checkMethodOverride(site ast.Node, ci *types.ClassInfo, name string, sig types.Type) {
	for _, ancestor := range overrideCandidates(ci) {
		baseSig, ok := ancestor.OwnMethod(name)
		if !ok {
			continue
		}
		mapped := types.MapTypeFromSupertype(baseSig, ci, ancestor)
		switch overrideCompatible(sig, mapped) {
		case overrideReturnMismatch:
			c.sink.Add(diagnostics.NewReturnTypeIncompatible(site.Pos(), name, ancestor.Name))
		case overrideIncompatible:
			c.sink.Add(diagnostics.NewSignatureIncompatible(site.Pos(), name, ancestor.Name))
		}
	}
}

// overrideCandidates lists every ancestor (base chain first, then
// directly-implemented interfaces) a method can be overriding, in the
// order their declarations should be checked against.
func overrideCandidates(ci *types.ClassInfo) []*types.ClassInfo {
	out := append([]*types.ClassInfo{}, ci.Ancestors()...)
	out = append(out, ci.AllDirectlyImplementedInterfaces()...)
	return out
}

// overrideVerdict distinguishes why an override failed (§4.6 step 4
// requires a distinct diagnostic per failure mode) from a clean pass.
type overrideVerdict int

const (
	overrideOK overrideVerdict = iota
	overrideIncompatible   // parameter-equivalence, or whole-signature, failure
	overrideReturnMismatch // parameters equivalent, return type not covariant
)

// overrideCompatible implements the element-wise check for the common
// Callable/Callable case — parameters failing equivalence and the
// return type failing covariance are reported as distinct verdicts —
// and falls back to whole-signature subtyping for any arity mismatch
// or overloaded signature, where a parameter count difference makes
// element-wise comparison meaningless.
func overrideCompatible(override, base types.Type) overrideVerdict {
	oc, oOK := override.(*types.Callable)
	bc, bOK := base.(*types.Callable)
	if !oOK || !bOK {
		if types.IsSubtype(override, base) {
			return overrideOK
		}
		return overrideIncompatible
	}
	if len(oc.Params) != len(bc.Params) || oc.IsVarArg != bc.IsVarArg {
		if types.IsSubtype(override, base) {
			return overrideOK
		}
		return overrideIncompatible
	}
	for i := range oc.Params {
		if !types.IsEquivalent(oc.Params[i], bc.Params[i]) {
			return overrideIncompatible
		}
	}
	if !types.IsSubtype(oc.Ret, bc.Ret) {
		return overrideReturnMismatch
	}
	return overrideOK
}

// checkDuplicateInterfaces implements §4.2's duplicate-implements
// diagnostic: the ancestor/interface graph is walked once (via
// DuplicateImplementsPosition) so a diamond implements re-encountered
// through two different ancestors is reported exactly once.
func (c *Checker) checkDuplicateInterfaces(cd *ast.ClassDecl, ci *types.ClassInfo) {
	if _, dup, found := ci.DuplicateImplementsPosition(); found {
		c.sink.Add(diagnostics.NewDuplicateInterface(cd.Pos(), dup.Name))
	}
}

// checkInterfaceObligations implements §4.2/§4.6: every method of
// every directly (or transitively, through the base chain)
// implemented interface must be present somewhere in ci's own method
// table or base chain.
func (c *Checker) checkInterfaceObligations(cd *ast.ClassDecl, ci *types.ClassInfo) {
	if ci.IsInterface {
		return
	}
	for _, iface := range ci.AllDirectlyImplementedInterfaces() {
		for member := range iface.Methods {
			if !ci.HasMethod(member) {
				c.sink.Add(diagnostics.NewInterfaceMemberNotImplemented(cd.Pos(), ci.Name, iface.Name, member))
			}
		}
	}
}
