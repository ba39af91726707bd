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
	"github.com/torc-lang/torc/build/source"
)

// grammar holds every rule of the Torc grammar. Construction patches the
// three forward-referenced rules exactly once; after newGrammar returns, the
// grammar is immutable and safe to share.
type grammar struct {
	tokens

	expression *Forward[ir.Expr]
	statement  *Forward[ir.Stmt]
	typeRule   *Forward[ir.Type]

	block   Parser[*ir.Block]
	program Parser[*ir.Block]
}

func newGrammar() *grammar {
	g := &grammar{
		tokens:     newTokens(),
		expression: NewForward[ir.Expr]("expression"),
		statement:  NewForward[ir.Stmt]("statement"),
		typeRule:   NewForward[ir.Type]("type"),
	}
	g.initTypes()
	g.initExpressions()
	g.initStatements()
	g.program = And(ignored, Bind(Pos(), func(off int) Parser[*ir.Block] {
		return Map(ZeroOrMore(g.statement.Parser()), func(stmts []ir.Stmt) *ir.Block {
			return &ir.Block{Base: ir.Base{Off: off}, Stmts: stmts}
		})
	}))
	return g
}

// torc is the grammar of the language, built once.
var torc = newGrammar()

// ParseProgram parses a whole compilation unit.
func ParseProgram(text *source.Text) (*ir.Block, error) {
	return Run(torc.program, text)
}

// ParseExpression parses a single expression spanning the whole unit.
func ParseExpression(text *source.Text) (ir.Expr, error) {
	return Run(And(ignored, torc.expression.Parser()), text)
}

// ParseStatement parses a single statement spanning the whole unit.
func ParseStatement(text *source.Text) (ir.Stmt, error) {
	return Run(And(ignored, torc.statement.Parser()), text)
}
