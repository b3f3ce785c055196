package parser

import (
	"strconv"
	"testing"

	"evalkit/pkg/ast"
	"evalkit/pkg/lexer"
	"evalkit/pkg/source"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.NewLexer(input)
	p := New(l, source.NewEvalSource(input))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", input, errs[0])
	}
	return prog
}

func TestParseLetDeclaration(t *testing.T) {
	prog := parse(t, "let x = 1 + 2;")
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Body))
	}
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", prog.Body[0])
	}
	if decl.Keyword != "let" || len(decl.Declarations) != 1 {
		t.Fatalf("unexpected declaration: %+v", decl)
	}
	bin, ok := decl.Declarations[0].Init.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected an addition initializer, got %T", decl.Declarations[0].Init)
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := parse(t, "function add(a, b) { return a + b; }")
	fn, ok := prog.Body[0].(*ast.FunctionNode)
	if !ok {
		t.Fatalf("expected *ast.FunctionNode, got %T", prog.Body[0])
	}
	if fn.NodeKind != ast.FunctionDeclarationKind {
		t.Fatalf("expected a FunctionDeclarationKind, got %v", fn.NodeKind)
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parse(t, "if (x) { y; } else { z; }")
	ifStmt, ok := prog.Body[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", prog.Body[0])
	}
	if ifStmt.Alternate == nil {
		t.Fatal("expected an else branch")
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1+(2*3))"},
		{"(1 + 2) * 3", "((1+2)*3)"},
		{"1 < 2 == 3 < 4", "((1<2)==(3<4))"},
		{"a = b = 1", "(a=(b=1))"},
	}
	for _, tt := range tests {
		prog := parse(t, tt.input+";")
		got := stringify(prog.Body[0])
		if got != tt.want {
			t.Errorf("input %q: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseForOfAndForIn(t *testing.T) {
	prog := parse(t, "for (let x of xs) { }")
	forOf, ok := prog.Body[0].(*ast.ForOfStatement)
	if !ok || forOf.Binding.Name != "x" {
		t.Fatalf("expected a ForOfStatement binding x, got %+v", prog.Body[0])
	}

	prog = parse(t, "for (let k in obj) { }")
	forIn, ok := prog.Body[0].(*ast.ForInStatement)
	if !ok || forIn.Binding.Name != "k" {
		t.Fatalf("expected a ForInStatement binding k, got %+v", prog.Body[0])
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := parse(t, "try { a; } catch (e) { b; } finally { c; }")
	tryStmt, ok := prog.Body[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("expected *ast.TryStatement, got %T", prog.Body[0])
	}
	if tryStmt.Handler == nil || tryStmt.Handler.Param.Name != "e" {
		t.Fatalf("unexpected handler: %+v", tryStmt.Handler)
	}
	if tryStmt.Finalizer == nil {
		t.Fatal("expected a finalizer block")
	}
}

func TestParseObjectAndArrayLiterals(t *testing.T) {
	prog := parse(t, `[1, 2, {a: 1, "b": 2}];`)
	es, ok := prog.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected *ast.ExpressionStatement, got %T", prog.Body[0])
	}
	arr, ok := es.Expression.(*ast.ArrayExpression)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("expected a 3-element array, got %+v", es.Expression)
	}
	obj, ok := arr.Elements[2].(*ast.ObjectExpression)
	if !ok || len(obj.Properties) != 2 {
		t.Fatalf("expected a 2-property object, got %+v", arr.Elements[2])
	}
}

func TestParseReportsSyntaxError(t *testing.T) {
	l := lexer.NewLexer("let x = ;")
	p := New(l, source.NewEvalSource("let x = ;"))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one syntax error")
	}
}

// stringify renders a node as a fully-parenthesized expression, enough to
// assert precedence/associativity without a full pretty-printer.
func stringify(n ast.Node) string {
	switch v := n.(type) {
	case *ast.ExpressionStatement:
		return stringify(v.Expression)
	case *ast.BinaryExpression:
		return "(" + stringify(v.Left) + v.Operator + stringify(v.Right) + ")"
	case *ast.AssignmentExpression:
		return "(" + identOrExpr(v.Target) + v.Operator + stringify(v.Value) + ")"
	case *ast.Literal:
		return formatLiteral(v)
	case *ast.Identifier:
		return v.Name
	default:
		return "?"
	}
}

func identOrExpr(n ast.Node) string {
	if id, ok := n.(*ast.Identifier); ok {
		return id.Name
	}
	return stringify(n)
}

func formatLiteral(l *ast.Literal) string {
	switch l.LitKind {
	case ast.LiteralNumber:
		if l.Number == float64(int64(l.Number)) {
			return strconv.FormatInt(int64(l.Number), 10)
		}
		return "?"
	default:
		return "?"
	}
}
