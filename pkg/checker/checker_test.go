package checker

import (
	"testing"

	"gradus/pkg/builtinstub"
	"gradus/pkg/diagnostics"
	"gradus/pkg/lexer"
	"gradus/pkg/modules"
	"gradus/pkg/parser"
)

// check lexes, parses and checks src against the embedded builtins,
// failing the test on a syntax error (the scenarios below all probe
// type-checking behavior, not parsing).
func check(t *testing.T, src string) *diagnostics.Sink {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}

	builtins, err := builtinstub.Load("")
	if err != nil {
		t.Fatalf("loading builtins: %v", err)
	}
	reg := modules.NewRegistry()
	file := modules.NewModuleFile("test")
	reg.Add(file)

	c := NewChecker(builtins, reg, false)
	return c.CheckFile(file, "test.gs", prog)
}

func kinds(sink *diagnostics.Sink) []string {
	var out []string
	for _, d := range sink.Diagnostics() {
		out = append(out, d.Kind())
	}
	return out
}

func TestAnnotatedAssignmentMismatch(t *testing.T) {
	sink := check(t, `var x: int = "hello"`)
	if !sink.HasErrors() {
		t.Fatalf("expected a type error assigning str to int, got none")
	}
}

func TestAnnotatedAssignmentCompatible(t *testing.T) {
	sink := check(t, `var x: int = 1`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestInferredLocalUsedConsistently(t *testing.T) {
	sink := check(t, `
		var x = 1
		var y: int = x
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestInferredLocalRejectsIncompatibleReuse(t *testing.T) {
	sink := check(t, `
		var x = 1
		var y: str = x
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a type error: x infers to int, assigned into a str variable")
	}
}

func TestInferredAssignmentFromNoneRequiresAnnotation(t *testing.T) {
	sink := check(t, `
		var x = None
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected annotation-required diagnostic: None is invalid for inference")
	}
}

func TestInferredAssignmentFromVoidCallRejected(t *testing.T) {
	sink := check(t, `
		func sideEffect() -> void {
		}
		var x = sideEffect()
	`)
	found := false
	for _, d := range sink.Diagnostics() {
		if _, ok := d.(*diagnostics.DoesNotReturnValueError); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a DoesNotReturnValueError, got: %v", sink.Diagnostics())
	}
}

func TestEmptyListWithoutContextRequiresAnnotation(t *testing.T) {
	sink := check(t, `
		var xs = []
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected annotation-required diagnostic: a context-free empty list can't infer an element type")
	}
}

func TestDynamicFunctionContaminatesBody(t *testing.T) {
	sink := check(t, `
		func loose(a) {
			var x: int = a
		}
	`)
	if sink.HasErrors() {
		t.Fatalf("a dynamic function's unannotated parameter should widen to Any and pass any assignment, got: %v", sink.Diagnostics())
	}
}

func TestAnnotatedFunctionRejectsBadReturn(t *testing.T) {
	sink := check(t, `
		func one() -> int {
			return "not an int"
		}
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a return-type mismatch")
	}
}

func TestAnnotatedFunctionAcceptsGoodReturn(t *testing.T) {
	sink := check(t, `
		func one() -> int {
			return 1
		}
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestTupleAssignmentCompatible(t *testing.T) {
	sink := check(t, `
		var t: (int, int, int) = (1, 2, 3)
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestMultiAssignmentArityError(t *testing.T) {
	sink := check(t, `
		var a = 1
		var b = 2
		(a, b) = (1, 2, 3)
	`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Kind() == "assignment" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an assignment-kind diagnostic for the arity mismatch, got: %v", sink.Diagnostics())
	}
}

func TestMultiAssignmentListSource(t *testing.T) {
	sink := check(t, `
		var xs: list<int> = [1, 2, 3]
		var a = 1
		var b = 2
		(a, b) = xs
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics binding a list's element type across multiple targets: %v", sink.Diagnostics())
	}
}

func TestOverrideReturnTypeViolation(t *testing.T) {
	sink := check(t, `
		class Animal {
			func speak() -> str {
				return "..."
			}
		}

		class Robot extends Animal {
			func speak() -> int {
				return 1
			}
		}
	`)
	found := false
	for _, d := range sink.Diagnostics() {
		if _, ok := d.(*diagnostics.ReturnTypeIncompatibleError); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a ReturnTypeIncompatibleError for the incompatible return type, got: %v", sink.Diagnostics())
	}
}

func TestOverrideCovariantReturnAllowed(t *testing.T) {
	sink := check(t, `
		class Animal {
			func clone() -> Animal {
				return this
			}
		}

		class Dog extends Animal {
			func clone() -> Dog {
				return this
			}
		}
	`)
	for _, d := range sink.Diagnostics() {
		if d.Kind() == "override" {
			t.Fatalf("covariant return should be allowed, got: %v", d)
		}
	}
}

func TestOverrideParameterMismatchReportsSignatureDiagnostic(t *testing.T) {
	sink := check(t, `
		class Animal {
			func feed(amount: int) -> void {
			}
		}

		class Dog extends Animal {
			func feed(amount: str) -> void {
			}
		}
	`)
	found := false
	for _, d := range sink.Diagnostics() {
		switch d.(type) {
		case *diagnostics.ReturnTypeIncompatibleError:
			t.Fatalf("a parameter mismatch should report SignatureIncompatibleError, not ReturnTypeIncompatibleError, got: %v", d)
		case *diagnostics.SignatureIncompatibleError:
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a SignatureIncompatibleError for the incompatible parameter, got: %v", sink.Diagnostics())
	}
}

func TestInterfaceMemberNotImplemented(t *testing.T) {
	sink := check(t, `
		interface Speaker {
			func speak() -> str;
		}

		class Rock implements Speaker {
		}
	`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Kind() == "class" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a class-kind diagnostic for the unimplemented interface member, got: %v", sink.Diagnostics())
	}
}

func TestInterfaceSatisfiedNoDiagnostic(t *testing.T) {
	sink := check(t, `
		interface Speaker {
			func speak() -> str;
		}

		class Parrot implements Speaker {
			func speak() -> str {
				return "squawk"
			}
		}
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestDuplicateInterfaceImplementation(t *testing.T) {
	sink := check(t, `
		interface Speaker {
			func speak() -> str;
		}

		class Base implements Speaker {
			func speak() -> str {
				return "base"
			}
		}

		class Derived extends Base implements Speaker {
		}
	`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Kind() == "class" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate-interface diagnostic, got: %v", sink.Diagnostics())
	}
}

func TestInitMustNotReturnValue(t *testing.T) {
	sink := check(t, `
		class Point {
			func __init__() -> int {
				return 1
			}
		}
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a type error: __init__ must not declare a return type")
	}
}

func TestChainedAssignmentRejected(t *testing.T) {
	sink := check(t, `
		var x = 1
		var y = 2
		x = y = 3
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected chained assignment to be rejected")
	}
}

func TestForLoopOverList(t *testing.T) {
	sink := check(t, `
		var xs: list<int> = [1, 2, 3]
		for (x in xs) {
			var y: int = x
		}
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestForLoopOverNonIterable(t *testing.T) {
	sink := check(t, `
		var n: int = 1
		for (x in n) {
		}
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic: int is not iterable")
	}
}

func TestForLoopOverCustomIterable(t *testing.T) {
	sink := check(t, `
		class Counter {
			func __iter__() -> CounterIterator {
				return new CounterIterator()
			}
		}

		class CounterIterator {
			func __next__() -> int {
				return 0
			}
		}

		var c = new Counter()
		for (x in c) {
			var y: int = x
		}
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics iterating a custom __iter__/__next__ class: %v", sink.Diagnostics())
	}
}

func TestRaiseRequiresBaseException(t *testing.T) {
	sink := check(t, `
		class NotAnException {
		}

		func boom() -> void {
			raise new NotAnException()
		}
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic: raised value does not derive from BaseException")
	}
}

func TestRaiseCustomException(t *testing.T) {
	sink := check(t, `
		class MyError extends BaseException {
		}

		func boom() {
			raise new MyError()
		}
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestBareReraiseAllowed(t *testing.T) {
	sink := check(t, `
		class MyError extends BaseException {
		}

		func boom() {
			try {
				var x = 1
			} except MyError {
				raise
			}
		}
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestIndexedAssignmentThroughDunder(t *testing.T) {
	sink := check(t, `
		var xs: list<int> = [1, 2, 3]
		xs[0] = 9
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestIndexedAssignmentTypeMismatch(t *testing.T) {
	sink := check(t, `
		var xs: list<int> = [1, 2, 3]
		xs[0] = "nope"
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic assigning str into a list<int> slot")
	}
}

func TestBinaryOperatorDispatchesToDunder(t *testing.T) {
	sink := check(t, `
		var x: int = 1 + 2
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestBinaryOperatorRejectsUnrelatedOperand(t *testing.T) {
	sink := check(t, `
		var x: int = 1 + "nope"
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic: int.__add__ does not accept str")
	}
}

func TestAndOrShortCircuitToBool(t *testing.T) {
	sink := check(t, `
		var a = true
		var b = false
		var x: bool = a && b
		var y: bool = a || b
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestUndefinedNameReported(t *testing.T) {
	sink := check(t, `var x: int = undefinedThing`)
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic for an undefined name")
	}
}

func TestEmptyListInfersFromAnnotation(t *testing.T) {
	sink := check(t, `
		var xs: list<int> = []
		xs.append(1)
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestEmptyListRejectsWrongAppend(t *testing.T) {
	sink := check(t, `
		var xs: list<int> = []
		xs.append("nope")
	`)
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic appending a str into a list<int>")
	}
}

func TestVarArgWrapsIntoList(t *testing.T) {
	sink := check(t, `
		func sum(first: int, ...rest: int) -> int {
			var total: int = first
			for (r in rest) {
				var y: int = r
			}
			return total
		}

		sum(1, 2, 3)
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}

func TestCallArityMismatch(t *testing.T) {
	sink := check(t, `
		func add(a: int, b: int) -> int {
			return a + b
		}

		add(1)
	`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Kind() == "assignment" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an assignment-kind (incompatible value count) diagnostic for the arity mismatch, got: %v", sink.Diagnostics())
	}
}

func TestWithStatementReportsUnsupported(t *testing.T) {
	sink := check(t, `
		func f() {
			var lock = 1
			with (lock) {
				var x = 1
			}
		}
	`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Kind() == "unsupported" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unsupported-kind diagnostic for the with-statement, got: %v", sink.Diagnostics())
	}
}

func TestYieldReportsUnsupported(t *testing.T) {
	sink := check(t, `
		func gen() {
			yield 1
		}
	`)
	found := false
	for _, d := range sink.Diagnostics() {
		if d.Kind() == "unsupported" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unsupported-kind diagnostic for yield, got: %v", sink.Diagnostics())
	}
}

func TestDelThroughDelitem(t *testing.T) {
	sink := check(t, `
		var xs: list<int> = [1, 2, 3]
		del xs[0]
	`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
}
