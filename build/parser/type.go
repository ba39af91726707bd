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

// initTypes defines the type rule:
//
//	type      ← "void" | "bool" | "number" | "string" | arrayType
//	arrayType ← "array" "<" type ">"
func (g *grammar) initTypes() {
	typ := g.typeRule.Parser()

	arrayType := And(g.kwArray, And(g.lessThan, Bind(typ, func(elem ir.Type) Parser[ir.Type] {
		return And(g.greaterThan, Constant(ir.Type(ir.NewArrayType(elem))))
	})))

	g.typeRule.Define(
		Map(g.kwVoid, func(string) ir.Type { return ir.VoidType() }).
			Or(Map(g.kwBool, func(string) ir.Type { return ir.BoolType() })).
			Or(Map(g.kwNumber, func(string) ir.Type { return ir.NumberType() })).
			Or(Map(g.kwString, func(string) ir.Type { return ir.StringType() })).
			Or(arrayType))
}

// optTypeAnn parses an optional ":" type annotation, defaulting to Number
// when absent.
func (g *grammar) optTypeAnn() Parser[ir.Type] {
	return Map(Maybe(And(g.colon, g.typeRule.Parser())), func(t ir.Type) ir.Type {
		if t == nil {
			return ir.NumberType()
		}
		return t
	})
}
