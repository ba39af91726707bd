// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/torc-lang/torc/build/ir"
	"github.com/torc-lang/torc/build/source"
)

var ignoreOffsets = cmpopts.IgnoreFields(ir.Base{}, "Off")

// typesEqual compares type annotations with the semantic equality of the
// type system instead of descending into their representation.
var typesEqual = cmp.Comparer(func(a, b ir.Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b)
})

func parseExpr(t *testing.T, input string) ir.Expr {
	t.Helper()
	e, err := ParseExpression(source.NewText(input))
	if err != nil {
		t.Fatalf("ParseExpression(%q): %v", input, err)
	}
	return e
}

func parseStmt(t *testing.T, input string) ir.Stmt {
	t.Helper()
	s, err := ParseStatement(source.NewText(input))
	if err != nil {
		t.Fatalf("ParseStatement(%q): %v", input, err)
	}
	return s
}

func num(v int32) ir.Expr  { return &ir.Num{Value: v} }
func id(name string) ir.Expr { return &ir.Id{Name: name} }

func binary(op ir.Op, left, right ir.Expr) ir.Expr {
	return &ir.Binary{Op: op, Left: left, Right: right}
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  ir.Expr
	}{
		{"42", num(42)},
		{"true", &ir.Bool{Value: true}},
		{"false", &ir.Bool{Value: false}},
		{"undefined", &ir.Undefined{}},
		{"null", &ir.Null{}},
		{"x", id("x")},
		{"!x", &ir.Not{X: id("x")}},
		{`"hello world"`, &ir.StringLiteral{Text: "hello world"}},
		{`""`, &ir.StringLiteral{Text: ""}},
		{"[1, 2, 3]", &ir.ArrayLiteral{Elems: []ir.Expr{num(1), num(2), num(3)}}},
		{"[]", &ir.ArrayLiteral{}},
		{"a[i]", &ir.ArrayLookup{Array: id("a"), Index: id("i")}},
		{"length(a)", &ir.Length{Array: id("a")}},
		{"f()", &ir.Call{Callee: "f"}},
		{"f(1, x)", &ir.Call{Callee: "f", Args: []ir.Expr{num(1), id("x")}}},
		{"length(a, b)", &ir.Call{Callee: "length", Args: []ir.Expr{id("a"), id("b")}}},
		{"length", id("length")},
		{"(x)", id("x")},
		// Precedence: product binds tighter than sum binds tighter than
		// comparison.
		{"1 + 2 * 3", binary(ir.Add, num(1), binary(ir.Multiply, num(2), num(3)))},
		{"(1 + 2) * 3", binary(ir.Multiply, binary(ir.Add, num(1), num(2)), num(3))},
		{"1 == 2 + 3", binary(ir.Equal, num(1), binary(ir.Add, num(2), num(3)))},
		{"1 != 2", binary(ir.NotEqual, num(1), num(2))},
		// Left associativity: a - b - c is (a - b) - c.
		{"10 - 3 - 2", binary(ir.Subtract, binary(ir.Subtract, num(10), num(3)), num(2))},
		{"8 / 4 / 2", binary(ir.Divide, binary(ir.Divide, num(8), num(4)), num(2))},
		// Comments and whitespace separate tokens.
		{"1 /* mid */ + // end\n 2", binary(ir.Add, num(1), num(2))},
	}
	for _, test := range tests {
		got := parseExpr(t, test.input)
		if diff := cmp.Diff(test.want, got, ignoreOffsets, typesEqual); diff != "" {
			t.Errorf("ParseExpression(%q) mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestNumberOutOfRange(t *testing.T) {
	_, err := ParseExpression(source.NewText("99999999999"))
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("ParseExpression error = %v, want out-of-range", err)
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		input string
		want  ir.Stmt
	}{
		{"return x;", &ir.Return{Value: id("x")}},
		{"var x = 1;", &ir.Var{Name: "x", Init: num(1)}},
		{"var x: bool = true;", &ir.Var{Name: "x", Ann: ir.BoolType(), Init: &ir.Bool{Value: true}}},
		{"var a: array<number> = [1];", &ir.Var{
			Name: "a",
			Ann:  ir.NewArrayType(ir.NumberType()),
			Init: &ir.ArrayLiteral{Elems: []ir.Expr{num(1)}},
		}},
		{"x = 1;", &ir.Assign{Name: "x", Value: num(1)}},
		{"f(x);", &ir.ExprStmt{X: &ir.Call{Callee: "f", Args: []ir.Expr{id("x")}}}},
		{"x == y;", &ir.ExprStmt{X: binary(ir.Equal, id("x"), id("y"))}},
		{"{}", &ir.Block{}},
		{"{ x = 1; }", &ir.Block{Stmts: []ir.Stmt{&ir.Assign{Name: "x", Value: num(1)}}}},
		{
			"if (x) { f(1); } else { f(2); }",
			&ir.If{
				Cond: id("x"),
				Then: &ir.Block{Stmts: []ir.Stmt{&ir.ExprStmt{X: &ir.Call{Callee: "f", Args: []ir.Expr{num(1)}}}}},
				Else: &ir.Block{Stmts: []ir.Stmt{&ir.ExprStmt{X: &ir.Call{Callee: "f", Args: []ir.Expr{num(2)}}}}},
			},
		},
		{
			"while (x != 0) x = x - 1;",
			&ir.While{
				Cond: binary(ir.NotEqual, id("x"), num(0)),
				Body: &ir.Assign{Name: "x", Value: binary(ir.Subtract, id("x"), num(1))},
			},
		},
		{
			"for (var i = 0; i != 3; i = i + 1;) { f(i); }",
			&ir.For{
				Init: &ir.Var{Name: "i", Init: num(0)},
				Cond: binary(ir.NotEqual, id("i"), num(3)),
				Step: &ir.Assign{Name: "i", Value: binary(ir.Add, id("i"), num(1))},
				Body: &ir.Block{Stmts: []ir.Stmt{&ir.ExprStmt{X: &ir.Call{Callee: "f", Args: []ir.Expr{id("i")}}}}},
			},
		},
	}
	for _, test := range tests {
		got := parseStmt(t, test.input)
		if diff := cmp.Diff(test.want, got, ignoreOffsets, typesEqual); diff != "" {
			t.Errorf("ParseStatement(%q) mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestIfRequiresElse(t *testing.T) {
	_, err := ParseStatement(source.NewText("if (x) { f(1); }"))
	if err == nil {
		t.Errorf("ParseStatement accepted an if without else")
	}
}

func TestForCondMustBeExpression(t *testing.T) {
	_, err := ParseStatement(source.NewText("for (var i = 0; var j = 1; i = i + 1;) {}"))
	if err == nil || !strings.Contains(err.Error(), "condition must be an expression") {
		t.Errorf("ParseStatement error = %v, want condition-must-be-expression", err)
	}
}

func TestFunctionStatement(t *testing.T) {
	s := parseStmt(t, "function add(a: number, b: number): number { return a + b; }")
	f, ok := s.(*ir.Func)
	if !ok {
		t.Fatalf("ParseStatement = %T, want *ir.Func", s)
	}
	if f.Name != "add" {
		t.Errorf("Name = %q, want \"add\"", f.Name)
	}
	if got, want := f.Sig.String(), "function(number, number): number"; got != want {
		t.Errorf("Sig = %q, want %q", got, want)
	}
	if len(f.Body.Stmts) != 1 {
		t.Errorf("Body has %d statements, want 1", len(f.Body.Stmts))
	}
}

func TestFunctionDefaultsToNumber(t *testing.T) {
	s := parseStmt(t, "function f(a, b) { return a; }")
	f := s.(*ir.Func)
	if got, want := f.Sig.String(), "function(number, number): number"; got != want {
		t.Errorf("Sig = %q, want %q", got, want)
	}
}

func TestFunctionArrayTypes(t *testing.T) {
	s := parseStmt(t, "function f(a: array<array<number>>): void {}")
	f := s.(*ir.Func)
	if got, want := f.Sig.String(), "function(array<array<number>>): void"; got != want {
		t.Errorf("Sig = %q, want %q", got, want)
	}
}

func TestFunctionDuplicateParameter(t *testing.T) {
	_, err := ParseStatement(source.NewText("function f(a, a) { return a; }"))
	if err == nil || !strings.Contains(err.Error(), "duplicate parameter") {
		t.Errorf("ParseStatement error = %v, want duplicate-parameter", err)
	}
}

func TestParseProgram(t *testing.T) {
	prog, err := ParseProgram(source.NewText(`
		// Entry point.
		function main() {
			putchar(72);
			putchar(105);
		}
	`))
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("program has %d statements, want 1", len(prog.Stmts))
	}
	f, ok := prog.Stmts[0].(*ir.Func)
	if !ok || f.Name != "main" {
		t.Errorf("first statement = %#v, want function main", prog.Stmts[0])
	}
}

func TestParseDeterministic(t *testing.T) {
	src := `
		function f(a: array<number>, b): number {
			for (var i = 0; i != length(a); i = i + 1;) {
				b = b + a[i] * 2;
			}
			if (b == 0) { return 1; } else { return b; }
		}
	`
	first, err := ParseProgram(source.NewText(src))
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	second, err := ParseProgram(source.NewText(src))
	if err != nil {
		t.Fatalf("ParseProgram (second run): %v", err)
	}
	f1, f2 := first.Stmts[0].(*ir.Func), second.Stmts[0].(*ir.Func)
	if diff := cmp.Diff(f1.Body, f2.Body, typesEqual); diff != "" {
		t.Errorf("two parses disagree (-first +second):\n%s", diff)
	}
	if !f1.Sig.Equal(f2.Sig) {
		t.Errorf("two parses disagree on the signature: %s vs %s", f1.Sig, f2.Sig)
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseProgram(source.NewText("function main() { return 1 + ; }"))
	if err == nil {
		t.Fatalf("ParseProgram accepted a broken program")
	}
	perr, ok := err.(source.ErrorWithPos)
	if !ok {
		t.Fatalf("error is %T, want source.ErrorWithPos", err)
	}
	// The furthest cursor reached is past "1 + ", at the semicolon.
	if perr.Offset() < len("function main() { return 1 + ") {
		t.Errorf("error offset = %d, too early", perr.Offset())
	}
}

func TestOffsetsRecorded(t *testing.T) {
	e := parseExpr(t, "  1 + 2")
	b := e.(*ir.Binary)
	if b.Offset() != 2 {
		t.Errorf("binary offset = %d, want 2", b.Offset())
	}
	if b.Right.Offset() != 6 {
		t.Errorf("right operand offset = %d, want 6", b.Right.Offset())
	}
}
