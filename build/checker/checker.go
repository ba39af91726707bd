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

// Package checker assigns a type to every expression of a Torc tree and
// reports the nodes that violate the typing rules.
//
// The checker does not stop at the first violation. Each ill-typed node is
// assigned the invalid type and checking continues; nodes whose operands are
// already invalid are not reported again, so one mistake produces one
// diagnostic. All diagnostics are aggregated into the returned error.
package checker

import (
	"strings"

	"github.com/torc-lang/torc/build/ir"
	"github.com/torc-lang/torc/build/source"
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// builtins are the functions every program may call without declaring them.
// They are provided by the C library the emitted assembly links against.
func builtins() map[string]*ir.FuncType {
	putchar := ir.NewFuncType(ir.VoidType())
	putchar.AddParam("c", ir.NumberType())
	return map[string]*ir.FuncType{"putchar": putchar}
}

type checker struct {
	text  *source.Text
	funcs map[string]*ir.FuncType
	errs  error
}

// scope is the state local to one function body: the variable environment
// and the declared return type. The top level has a nil return type.
type scope struct {
	vars map[string]ir.Type
	ret  ir.Type
}

// Check validates a whole program. The returned error aggregates every
// diagnostic found; nil means the program is well typed.
func Check(text *source.Text, prog *ir.Block) error {
	c := &checker{text: text, funcs: builtins()}
	c.checkStmt(prog, &scope{vars: map[string]ir.Type{}})
	return c.errs
}

// CheckExpression validates a single expression against an empty environment
// and returns its type.
func CheckExpression(text *source.Text, e ir.Expr) (ir.Type, error) {
	c := &checker{text: text, funcs: builtins()}
	t := c.checkExpr(e, &scope{vars: map[string]ir.Type{}})
	return t, c.errs
}

func (c *checker) errorf(n ir.Node, format string, a ...any) {
	c.errs = multierr.Append(c.errs, source.Errorf(c.text, n.Offset(), format, a...))
}

// invalid reports whether any of the types is the invalid placeholder, in
// which case the node's own diagnostic has already been emitted and the
// caller stays silent.
func invalid(ts ...ir.Type) bool {
	for _, t := range ts {
		if ir.IsInvalid(t) {
			return true
		}
	}
	return false
}

func (c *checker) checkExpr(e ir.Expr, sc *scope) ir.Type {
	switch e := e.(type) {
	case *ir.Num:
		return ir.NumberType()
	case *ir.Bool:
		return ir.BoolType()
	case *ir.Undefined, *ir.Null:
		return ir.VoidType()
	case *ir.StringLiteral:
		return ir.NewArrayType(ir.NumberType())
	case *ir.Id:
		t, ok := sc.vars[e.Name]
		if !ok {
			c.errorf(e, "undefined variable %s", e.Name)
			return ir.InvalidType()
		}
		return t
	case *ir.Not:
		t := c.checkExpr(e.X, sc)
		if !invalid(t) && !t.Equal(ir.BoolType()) {
			c.errorf(e, "operand of ! must be bool, got %s", t)
		}
		return ir.BoolType()
	case *ir.Binary:
		return c.checkBinary(e, sc)
	case *ir.ArrayLiteral:
		return c.checkArrayLiteral(e, sc)
	case *ir.ArrayLookup:
		return c.checkArrayLookup(e, sc)
	case *ir.Length:
		t := c.checkExpr(e.Array, sc)
		if !invalid(t) && t.Kind() != ir.ArrayKind && t.Kind() != ir.StringKind {
			c.errorf(e, "length requires an array, got %s", t)
		}
		return ir.NumberType()
	case *ir.Call:
		return c.checkCall(e, sc)
	default:
		c.errorf(e, "cannot type expression %T", e)
		return ir.InvalidType()
	}
}

func (c *checker) checkBinary(e *ir.Binary, sc *scope) ir.Type {
	left := c.checkExpr(e.Left, sc)
	right := c.checkExpr(e.Right, sc)
	switch e.Op {
	case ir.Equal, ir.NotEqual:
		if !invalid(left, right) && !left.Equal(right) {
			c.errorf(e, "operands of %s must have the same type: %s vs %s", e.Op, left, right)
		}
		return ir.BoolType()
	default:
		if !invalid(left) && !left.Equal(ir.NumberType()) {
			c.errorf(e.Left, "left operand of %s must be number, got %s", e.Op, left)
		}
		if !invalid(right) && !right.Equal(ir.NumberType()) {
			c.errorf(e.Right, "right operand of %s must be number, got %s", e.Op, right)
		}
		return ir.NumberType()
	}
}

func (c *checker) checkArrayLiteral(e *ir.ArrayLiteral, sc *scope) ir.Type {
	if len(e.Elems) == 0 {
		c.errorf(e, "cannot infer the element type of an empty array literal")
		return ir.InvalidType()
	}
	elem := c.checkExpr(e.Elems[0], sc)
	for _, el := range e.Elems[1:] {
		t := c.checkExpr(el, sc)
		if !invalid(elem, t) && !t.Equal(elem) {
			c.errorf(el, "array element has type %s, want %s", t, elem)
		}
	}
	if invalid(elem) {
		return ir.InvalidType()
	}
	return ir.NewArrayType(elem)
}

func (c *checker) checkArrayLookup(e *ir.ArrayLookup, sc *scope) ir.Type {
	array := c.checkExpr(e.Array, sc)
	index := c.checkExpr(e.Index, sc)
	if !invalid(index) && !index.Equal(ir.NumberType()) {
		c.errorf(e.Index, "array index must be number, got %s", index)
	}
	switch {
	case invalid(array):
		return ir.InvalidType()
	case array.Kind() == ir.ArrayKind:
		return array.(*ir.ArrayType).Elem
	case array.Kind() == ir.StringKind:
		return ir.NumberType()
	default:
		c.errorf(e, "cannot index a value of type %s", array)
		return ir.InvalidType()
	}
}

func (c *checker) checkCall(e *ir.Call, sc *scope) ir.Type {
	sig, ok := c.funcs[e.Callee]
	if !ok {
		c.errorf(e, "undefined function %s%s", e.Callee, c.suggest(e.Callee))
		for _, arg := range e.Args {
			c.checkExpr(arg, sc)
		}
		return ir.InvalidType()
	}
	if len(e.Args) != sig.Params.Size() {
		c.errorf(e, "%s takes %d arguments, got %d", e.Callee, sig.Params.Size(), len(e.Args))
	}
	for i, arg := range e.Args {
		t := c.checkExpr(arg, sc)
		if i >= sig.Params.Size() {
			continue
		}
		_, want := sig.Params.At(i)
		if !invalid(t) && !t.Equal(want) {
			c.errorf(arg, "argument %d of %s has type %s, want %s", i+1, e.Callee, t, want)
		}
	}
	return sig.Return
}

// suggest renders a hint listing the known functions, for the undefined
// function diagnostic.
func (c *checker) suggest(string) string {
	names := maps.Keys(c.funcs)
	if len(names) == 0 {
		return ""
	}
	slices.Sort(names)
	return " (defined functions: " + strings.Join(names, ", ") + ")"
}

func (c *checker) checkStmt(s ir.Stmt, sc *scope) {
	switch s := s.(type) {
	case *ir.Block:
		for _, st := range s.Stmts {
			c.checkStmt(st, sc)
		}
	case *ir.ExprStmt:
		c.checkExpr(s.X, sc)
	case *ir.Return:
		t := c.checkExpr(s.Value, sc)
		if sc.ret == nil {
			c.errorf(s, "return outside a function")
			return
		}
		if !invalid(t, sc.ret) && !t.Equal(sc.ret) {
			c.errorf(s, "return value has type %s, want %s", t, sc.ret)
		}
	case *ir.If:
		c.checkExpr(s.Cond, sc)
		c.checkStmt(s.Then, sc)
		c.checkStmt(s.Else, sc)
	case *ir.While:
		c.checkExpr(s.Cond, sc)
		c.checkStmt(s.Body, sc)
	case *ir.For:
		c.checkStmt(s.Init, sc)
		c.checkExpr(s.Cond, sc)
		c.checkStmt(s.Step, sc)
		c.checkStmt(s.Body, sc)
	case *ir.Var:
		t := c.checkExpr(s.Init, sc)
		if s.Ann != nil {
			if !invalid(t) && !t.Equal(s.Ann) {
				c.errorf(s, "cannot initialize %s of type %s with a %s value", s.Name, s.Ann, t)
			}
			t = s.Ann
		}
		// Shadowing rebinds the name; there is no block scope.
		sc.vars[s.Name] = t
	case *ir.Assign:
		t := c.checkExpr(s.Value, sc)
		bound, ok := sc.vars[s.Name]
		if !ok {
			c.errorf(s, "assignment to undefined variable %s", s.Name)
			return
		}
		if !invalid(t, bound) && !t.Equal(bound) {
			c.errorf(s, "cannot assign %s to %s of type %s", t, s.Name, bound)
		}
	case *ir.Func:
		c.checkFunc(s)
	default:
		c.errorf(s, "cannot check statement %T", s)
	}
}

func (c *checker) checkFunc(f *ir.Func) {
	c.funcs[f.Name] = f.Sig
	vars := map[string]ir.Type{}
	for name, t := range f.Sig.Params.Iter() {
		vars[name] = t
	}
	c.checkStmt(f.Body, &scope{vars: vars, ret: f.Sig.Return})
}
