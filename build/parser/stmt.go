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
	"github.com/torc-lang/torc/build/ir"
)

// initStatements defines the statement rule and the block rule:
//
//	statement ← returnStmt | functionStmt | ifStmt | whileStmt | forStmt
//	          | varStmt | assignStmt | blockStmt | exprStmt
//	block     ← "{" statement* "}"
func (g *grammar) initStatements() {
	expression := g.expression.Parser()
	statement := g.statement.Parser()

	g.block = Bind(Pos(), func(off int) Parser[*ir.Block] {
		return And(g.leftBrace, Bind(ZeroOrMore(statement), func(stmts []ir.Stmt) Parser[*ir.Block] {
			return And(g.rightBrace, Constant(&ir.Block{Base: ir.Base{Off: off}, Stmts: stmts}))
		}))
	})

	returnStmt := Bind(Pos(), func(off int) Parser[ir.Stmt] {
		return And(g.kwReturn, Bind(expression, func(value ir.Expr) Parser[ir.Stmt] {
			return And(g.semicolon, Constant(ir.Stmt(&ir.Return{
				Base:  ir.Base{Off: off},
				Value: value,
			})))
		}))
	})

	ifStmt := Bind(Pos(), func(off int) Parser[ir.Stmt] {
		return And(g.kwIf, And(g.leftParen, Bind(expression, func(cond ir.Expr) Parser[ir.Stmt] {
			return And(g.rightParen, Bind(statement, func(then ir.Stmt) Parser[ir.Stmt] {
				return And(g.kwElse, Map(statement, func(alt ir.Stmt) ir.Stmt {
					return &ir.If{
						Base: ir.Base{Off: off},
						Cond: cond,
						Then: then,
						Else: alt,
					}
				}))
			}))
		})))
	})

	whileStmt := Bind(Pos(), func(off int) Parser[ir.Stmt] {
		return And(g.kwWhile, And(g.leftParen, Bind(expression, func(cond ir.Expr) Parser[ir.Stmt] {
			return And(g.rightParen, Map(statement, func(body ir.Stmt) ir.Stmt {
				return &ir.While{Base: ir.Base{Off: off}, Cond: cond, Body: body}
			}))
		})))
	})

	// The for header reads as three statements, each ending in its own
	// semicolon, so the step carries one right before the closing paren:
	//
	//	for (var i = 0; i != 3; i = i + 1;) { ... }
	//
	// The middle statement must be an expression statement; its expression
	// becomes the loop condition.
	forStmt := Bind(Pos(), func(off int) Parser[ir.Stmt] {
		return And(g.kwFor, And(g.leftParen, Bind(statement, func(init ir.Stmt) Parser[ir.Stmt] {
			return Bind(statement, func(condStmt ir.Stmt) Parser[ir.Stmt] {
				cond, ok := condStmt.(*ir.ExprStmt)
				if !ok {
					return Fail[ir.Stmt]("for loop condition must be an expression")
				}
				return Bind(statement, func(step ir.Stmt) Parser[ir.Stmt] {
					return And(g.rightParen, Map(statement, func(body ir.Stmt) ir.Stmt {
						return &ir.For{
							Base: ir.Base{Off: off},
							Init: init,
							Cond: cond.X,
							Step: step,
							Body: body,
						}
					}))
				})
			})
		})))
	})

	// The annotation is optional with no default: an unannotated var takes
	// the type of its initializer.
	varAnn := Maybe(And(g.colon, g.typeRule.Parser()))
	varStmt := Bind(Pos(), func(off int) Parser[ir.Stmt] {
		return And(g.kwVar, Bind(g.identifier, func(name string) Parser[ir.Stmt] {
			return Bind(varAnn, func(ann ir.Type) Parser[ir.Stmt] {
				return And(g.assign, Bind(expression, func(init ir.Expr) Parser[ir.Stmt] {
					return And(g.semicolon, Constant(ir.Stmt(&ir.Var{
						Base: ir.Base{Off: off},
						Name: name,
						Ann:  ann,
						Init: init,
					})))
				}))
			})
		}))
	})

	assignStmt := Bind(Pos(), func(off int) Parser[ir.Stmt] {
		return Bind(g.identifier, func(name string) Parser[ir.Stmt] {
			return And(g.assign, Bind(expression, func(value ir.Expr) Parser[ir.Stmt] {
				return And(g.semicolon, Constant(ir.Stmt(&ir.Assign{
					Base:  ir.Base{Off: off},
					Name:  name,
					Value: value,
				})))
			}))
		})
	})

	blockStmt := Map(g.block, func(b *ir.Block) ir.Stmt { return b })

	funcStmt := Bind(Pos(), func(off int) Parser[ir.Stmt] {
		return And(g.kwFunction, Bind(g.identifier, func(name string) Parser[ir.Stmt] {
			return And(g.leftParen, Bind(g.parameters(), func(params []param) Parser[ir.Stmt] {
				return And(g.rightParen, Bind(g.optTypeAnn(), func(ret ir.Type) Parser[ir.Stmt] {
					sig := ir.NewFuncType(ret)
					for _, p := range params {
						if !sig.AddParam(p.name, p.typ) {
							return Fail[ir.Stmt]("duplicate parameter " + p.name + " in function " + name)
						}
					}
					return Map(g.block, func(body *ir.Block) ir.Stmt {
						return &ir.Func{
							Base: ir.Base{Off: off},
							Name: name,
							Sig:  sig,
							Body: body,
						}
					})
				}))
			}))
		}))
	})

	exprStmt := Bind(Pos(), func(off int) Parser[ir.Stmt] {
		return Bind(expression, func(x ir.Expr) Parser[ir.Stmt] {
			return And(g.semicolon, Constant(ir.Stmt(&ir.ExprStmt{
				Base: ir.Base{Off: off},
				X:    x,
			})))
		})
	})

	g.statement.Define(
		returnStmt.
			Or(funcStmt).
			Or(ifStmt).
			Or(whileStmt).
			Or(forStmt).
			Or(varStmt).
			Or(assignStmt).
			Or(blockStmt).
			Or(exprStmt))
}

type param struct {
	name string
	typ  ir.Type
}

// parameters ← (parameter ("," parameter)*)?
func (g *grammar) parameters() Parser[[]param] {
	parameter := Bind(g.identifier, func(name string) Parser[param] {
		return Map(g.optTypeAnn(), func(t ir.Type) param {
			return param{name: name, typ: t}
		})
	})
	return Maybe(Bind(parameter, func(first param) Parser[[]param] {
		return Map(ZeroOrMore(And(g.comma, parameter)), func(rest []param) []param {
			return append([]param{first}, rest...)
		})
	}))
}
