package parser

import (
	"testing"

	"github.com/scriptlang/transpiler/internal/ast"
	"github.com/scriptlang/transpiler/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	prog, err := Parse(l)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return prog
}

func TestParseBareAssignment(t *testing.T) {
	prog := mustParse(t, "x = close[1] + 1\n")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", prog.Statements[0])
	}
	ident, ok := decl.Left.(*ast.Identifier)
	if !ok || ident.Name != "x" {
		t.Errorf("expected declaration target \"x\", got %+v", decl.Left)
	}
}

func TestParseIfElse(t *testing.T) {
	src := "if close > open\n    x = 1\nelse\n    x = 2\n"
	prog := mustParse(t, src)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", prog.Statements[0])
	}
	if stmt.Else == nil {
		t.Error("expected an else branch")
	}
}

func TestParseWhileLoop(t *testing.T) {
	prog := mustParse(t, "while i < 10\n    i = i + 1\n")
	if _, ok := prog.Statements[0].(*ast.WhileStatement); !ok {
		t.Fatalf("expected *ast.WhileStatement, got %T", prog.Statements[0])
	}
}

func TestParseForToLoop(t *testing.T) {
	prog := mustParse(t, "for i = 0 to 10\n    x = i\n")
	stmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected *ast.ForStatement, got %T", prog.Statements[0])
	}
	if stmt.IndexVar != "" {
		t.Errorf("to-form loop should not set IndexVar, got %q", stmt.IndexVar)
	}
}

func TestParseForInTupleDestructure(t *testing.T) {
	prog := mustParse(t, "for [i, v] in values\n    x = v\n")
	stmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected *ast.ForStatement, got %T", prog.Statements[0])
	}
	if stmt.IndexVar != "i" || stmt.ValueVar != "v" {
		t.Errorf("expected IndexVar=i ValueVar=v, got IndexVar=%q ValueVar=%q", stmt.IndexVar, stmt.ValueVar)
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := mustParse(t, "double(x) => x * 2\n")
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", prog.Statements[0])
	}
	if fn.Name != "double" || len(fn.Params) != 1 {
		t.Errorf("unexpected function shape: %+v", fn)
	}
}

func TestParseCallWithNamedArgument(t *testing.T) {
	prog := mustParse(t, "plot(close, color=color.red)\n")
	exprStmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected *ast.ExpressionStatement, got %T", prog.Statements[0])
	}
	call, ok := exprStmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected *ast.CallExpression, got %T", exprStmt.Expression)
	}
	if len(call.Args) != 2 {
		t.Errorf("expected 2 args, got %d", len(call.Args))
	}
}

func TestParseBestEffortCollectsMultipleErrors(t *testing.T) {
	src := "x = \ny = \n"
	l := lexer.New(src)
	_, errs := ParseBestEffort(l)
	if len(errs) < 2 {
		t.Errorf("expected a parse error for each of the two statements, got %d", len(errs))
	}
}

func TestParseSwitchStatement(t *testing.T) {
	src := "switch x\n    1 => y = 1\n    2 => y = 2\n"
	prog := mustParse(t, src)
	if _, ok := prog.Statements[0].(*ast.SwitchStatement); !ok {
		t.Fatalf("expected *ast.SwitchStatement, got %T", prog.Statements[0])
	}
}
