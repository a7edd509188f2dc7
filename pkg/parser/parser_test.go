package parser

import (
	"testing"

	"gradus/pkg/ast"
	"gradus/pkg/lexer"
)

func parseOK(t *testing.T, src string) *ast.Block {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := parseOK(t, "var x: int = 1")
	if len(prog.Stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Stmts))
	}
	decl, ok := prog.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("want *ast.VarDecl, got %T", prog.Stmts[0])
	}
	if decl.Name != "x" {
		t.Fatalf("name = %q, want x", decl.Name)
	}
	if decl.Type == nil {
		t.Fatalf("expected a type annotation")
	}
	if decl.Value == nil {
		t.Fatalf("expected an initializer")
	}
}

func TestParseInferredVarDecl(t *testing.T) {
	prog := parseOK(t, "var y = 1")
	decl := prog.Stmts[0].(*ast.VarDecl)
	if decl.Type != nil {
		t.Fatalf("expected no type annotation, got %#v", decl.Type)
	}
}

func TestParseFuncDecl(t *testing.T) {
	prog := parseOK(t, `func add(a: int, b: int) -> int {
		return a + b
	}`)
	decl, ok := prog.Stmts[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("want *ast.FuncDecl, got %T", prog.Stmts[0])
	}
	if decl.Name != "add" {
		t.Fatalf("name = %q, want add", decl.Name)
	}
	if len(decl.Params) != 2 {
		t.Fatalf("want 2 params, got %d", len(decl.Params))
	}
	if decl.Ret == nil {
		t.Fatalf("expected a return annotation")
	}
	if len(decl.Body.Stmts) != 1 {
		t.Fatalf("want 1 body statement, got %d", len(decl.Body.Stmts))
	}
	ret, ok := decl.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("want *ast.ReturnStmt, got %T", decl.Body.Stmts[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("want *ast.BinaryExpr, got %T", ret.Value)
	}
	if bin.Op != "+" {
		t.Fatalf("op = %q, want +", bin.Op)
	}
}

func TestParseDynamicFuncDecl(t *testing.T) {
	prog := parseOK(t, `func loose(a) {
		return a
	}`)
	decl := prog.Stmts[0].(*ast.FuncDecl)
	if decl.Ret != nil {
		t.Fatalf("expected no return annotation for a dynamic function, got %#v", decl.Ret)
	}
}

func TestParseClassDecl(t *testing.T) {
	prog := parseOK(t, `class Animal {
		func speak() -> str {
			return "..."
		}
	}

	class Dog extends Animal {
		func speak() -> str {
			return "woof"
		}
	}`)
	if len(prog.Stmts) != 2 {
		t.Fatalf("want 2 statements, got %d", len(prog.Stmts))
	}
	dog, ok := prog.Stmts[1].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("want *ast.ClassDecl, got %T", prog.Stmts[1])
	}
	if dog.Name != "Dog" {
		t.Fatalf("name = %q, want Dog", dog.Name)
	}
	if dog.Extends == nil || dog.Extends.Name != "Animal" {
		t.Fatalf("extends = %#v, want Animal", dog.Extends)
	}
	if len(dog.Members) != 1 {
		t.Fatalf("want 1 member, got %d", len(dog.Members))
	}
}

func TestParseMultiAssignment(t *testing.T) {
	prog := parseOK(t, "(a, b) = (1, 2)")
	stmt, ok := prog.Stmts[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("want *ast.AssignStmt, got %T", prog.Stmts[0])
	}
	if len(stmt.Targets) != 1 {
		t.Fatalf("want a single Targets slot (pre-expansion), got %d", len(stmt.Targets))
	}
	tup, ok := stmt.Targets[0].(*ast.TupleExpr)
	if !ok {
		t.Fatalf("want *ast.TupleExpr target, got %T", stmt.Targets[0])
	}
	if len(tup.Elements) != 2 {
		t.Fatalf("want 2 tuple elements, got %d", len(tup.Elements))
	}
}

func TestParseChainedAssignment(t *testing.T) {
	prog := parseOK(t, "x = y = 1")
	if _, ok := prog.Stmts[0].(*ast.ChainedAssignStmt); !ok {
		t.Fatalf("want *ast.ChainedAssignStmt, got %T", prog.Stmts[0])
	}
}

func TestParseForStmt(t *testing.T) {
	prog := parseOK(t, `for (x in xs) {
		print(x)
	}`)
	s, ok := prog.Stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("want *ast.ForStmt, got %T", prog.Stmts[0])
	}
	if _, ok := s.Target.(*ast.Identifier); !ok {
		t.Fatalf("want *ast.Identifier target, got %T", s.Target)
	}
}

func TestParseTryExcept(t *testing.T) {
	prog := parseOK(t, `try {
		risky()
	} except ValueError as e {
		handle(e)
	}`)
	s, ok := prog.Stmts[0].(*ast.TryStmt)
	if !ok {
		t.Fatalf("want *ast.TryStmt, got %T", prog.Stmts[0])
	}
	if len(s.Handlers) != 1 {
		t.Fatalf("want 1 handler, got %d", len(s.Handlers))
	}
	if s.Handlers[0].Name != "e" {
		t.Fatalf("handler name = %q, want e", s.Handlers[0].Name)
	}
}

func TestParseNewExpr(t *testing.T) {
	prog := parseOK(t, `var d = new Dog()`)
	decl := prog.Stmts[0].(*ast.VarDecl)
	if _, ok := decl.Value.(*ast.NewExpr); !ok {
		t.Fatalf("want *ast.NewExpr, got %T", decl.Value)
	}
}

func TestParseIndexAndMember(t *testing.T) {
	prog := parseOK(t, "a.b[0]")
	stmt := prog.Stmts[0].(*ast.ExprStmt)
	ix, ok := stmt.X.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("want *ast.IndexExpr, got %T", stmt.X)
	}
	if _, ok := ix.Object.(*ast.MemberExpr); !ok {
		t.Fatalf("want *ast.MemberExpr object, got %T", ix.Object)
	}
}
