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
	"strconv"

	"github.com/torc-lang/torc/build/ir"
)

// initExpressions defines the expression rule. Precedence is encoded by
// layered rules, lowest precedence outermost:
//
//	expression ← comparison
//	comparison ← sum (("==" | "!=") sum)*
//	sum        ← product (("+" | "-") product)*
//	product    ← unary (("*" | "/") unary)*
//	unary      ← "!"? atom
//	atom       ← call | arrayLit | stringLit | arrayLookup | scalar
//	           | "(" expression ")"
func (g *grammar) initExpressions() {
	expression := g.expression.Parser()

	// args ← (expression ("," expression)*)?
	args := Maybe(Bind(expression, func(first ir.Expr) Parser[[]ir.Expr] {
		return Map(ZeroOrMore(And(g.comma, expression)), func(rest []ir.Expr) []ir.Expr {
			return append([]ir.Expr{first}, rest...)
		})
	}))

	call := Bind(Pos(), func(off int) Parser[ir.Expr] {
		return Bind(g.identifier, func(callee string) Parser[ir.Expr] {
			return And(g.leftParen, Bind(args, func(as []ir.Expr) Parser[ir.Expr] {
				return And(g.rightParen, Constant(newCall(off, callee, as)))
			}))
		})
	})

	arrayLit := Bind(Pos(), func(off int) Parser[ir.Expr] {
		return And(g.leftBracket, Bind(args, func(elems []ir.Expr) Parser[ir.Expr] {
			return And(g.rightBracket, Constant(ir.Expr(&ir.ArrayLiteral{
				Base:  ir.Base{Off: off},
				Elems: elems,
			})))
		}))
	})

	stringLit := Bind(Pos(), func(off int) Parser[ir.Expr] {
		return Map(g.stringLit, func(s string) ir.Expr {
			return &ir.StringLiteral{Base: ir.Base{Off: off}, Text: s[1 : len(s)-1]}
		})
	})

	arrayLookup := Bind(Pos(), func(off int) Parser[ir.Expr] {
		return Bind(g.identifier, func(name string) Parser[ir.Expr] {
			return And(g.leftBracket, Bind(expression, func(index ir.Expr) Parser[ir.Expr] {
				return And(g.rightBracket, Constant(ir.Expr(&ir.ArrayLookup{
					Base:  ir.Base{Off: off},
					Array: &ir.Id{Base: ir.Base{Off: off}, Name: name},
					Index: index,
				})))
			}))
		})
	})

	number := Bind(Pos(), func(off int) Parser[ir.Expr] {
		return Bind(g.number, func(s string) Parser[ir.Expr] {
			v, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return Fail[ir.Expr]("number literal out of range: " + s)
			}
			return Constant(ir.Expr(&ir.Num{Base: ir.Base{Off: off}, Value: int32(v)}))
		})
	})

	scalar := Bind(Pos(), func(off int) Parser[ir.Expr] {
		at := ir.Base{Off: off}
		return Map(g.kwTrue, func(string) ir.Expr { return &ir.Bool{Base: at, Value: true} }).
			Or(Map(g.kwFalse, func(string) ir.Expr { return &ir.Bool{Base: at, Value: false} })).
			Or(Map(g.kwUndefined, func(string) ir.Expr { return &ir.Undefined{Base: at} })).
			Or(Map(g.kwNull, func(string) ir.Expr { return &ir.Null{Base: at} })).
			Or(Map(g.identifier, func(name string) ir.Expr { return &ir.Id{Base: at, Name: name} })).
			Or(number)
	})

	paren := And(g.leftParen, Bind(expression, func(e ir.Expr) Parser[ir.Expr] {
		return And(g.rightParen, Constant(e))
	}))

	// Ordered choice: call wins over arrayLookup wins over a bare Id
	// (which scalar produces).
	atom := call.Or(arrayLit).Or(stringLit).Or(arrayLookup).Or(scalar).Or(paren)

	unary := Bind(Pos(), func(off int) Parser[ir.Expr] {
		return Bind(Maybe(g.bang), func(bang string) Parser[ir.Expr] {
			if bang == "" {
				return atom
			}
			return Map(atom, func(x ir.Expr) ir.Expr {
				return &ir.Not{Base: ir.Base{Off: off}, X: x}
			})
		})
	})

	productOp := Map(g.star, func(string) ir.Op { return ir.Multiply }).
		Or(Map(g.slash, func(string) ir.Op { return ir.Divide }))
	sumOp := Map(g.plus, func(string) ir.Op { return ir.Add }).
		Or(Map(g.minus, func(string) ir.Op { return ir.Subtract }))
	comparisonOp := Map(g.equal, func(string) ir.Op { return ir.Equal }).
		Or(Map(g.notEqual, func(string) ir.Op { return ir.NotEqual }))

	product := infix(productOp, unary)
	sum := infix(sumOp, product)
	comparison := infix(comparisonOp, sum)

	g.expression.Define(comparison)
}

// newCall builds a call node. A one-argument call to length is the length
// operation on its argument; any other spelling of length falls through as
// an ordinary call.
func newCall(off int, callee string, args []ir.Expr) ir.Expr {
	if callee == "length" && len(args) == 1 {
		return &ir.Length{Base: ir.Base{Off: off}, Array: args[0]}
	}
	return &ir.Call{Base: ir.Base{Off: off}, Callee: callee, Args: args}
}

// infix folds a left-associative binary operator layer: a op b op c parses
// as (a op b) op c.
func infix(operator Parser[ir.Op], operand Parser[ir.Expr]) Parser[ir.Expr] {
	type opRhs struct {
		op  ir.Op
		rhs ir.Expr
	}
	pair := Bind(operator, func(op ir.Op) Parser[opRhs] {
		return Map(operand, func(rhs ir.Expr) opRhs { return opRhs{op: op, rhs: rhs} })
	})
	return Bind(Pos(), func(off int) Parser[ir.Expr] {
		return Bind(operand, func(first ir.Expr) Parser[ir.Expr] {
			return Map(ZeroOrMore(pair), func(rest []opRhs) ir.Expr {
				e := first
				for _, p := range rest {
					e = &ir.Binary{Base: ir.Base{Off: off}, Op: p.op, Left: e, Right: p.rhs}
				}
				return e
			})
		})
	})
}
