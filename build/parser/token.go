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

// ignored matches input that separates tokens: whitespace, line comments,
// and block comments. It always produces a result.
var ignored = ZeroOrMore(
	Regexp(`[ \t\r\n]+`).
		Or(Regexp(`//[^\n]*`)).
		Or(Regexp(`(?s:/\*.*?\*/)`)))

// token matches expr then swallows trailing ignored input. Every terminal
// of the grammar goes through token so that rules never see whitespace.
func token(expr string) Parser[string] {
	return Bind(Regexp(expr), func(s string) Parser[string] {
		return And(ignored, Constant(s))
	})
}

// keyword matches a reserved word with a right word boundary so that the
// keyword does not swallow the prefix of an identifier.
func keyword(kw string) Parser[string] {
	return token(kw + `\b`)
}

// tokens holds every lexical terminal of the grammar.
type tokens struct {
	kwFunction  Parser[string]
	kwIf        Parser[string]
	kwElse      Parser[string]
	kwReturn    Parser[string]
	kwVar       Parser[string]
	kwWhile     Parser[string]
	kwFor       Parser[string]
	kwTrue      Parser[string]
	kwFalse     Parser[string]
	kwUndefined Parser[string]
	kwNull      Parser[string]
	kwArray     Parser[string]
	kwVoid      Parser[string]
	kwBool      Parser[string]
	kwNumber    Parser[string]
	kwString    Parser[string]

	comma        Parser[string]
	semicolon    Parser[string]
	leftParen    Parser[string]
	rightParen   Parser[string]
	leftBrace    Parser[string]
	rightBrace   Parser[string]
	leftBracket  Parser[string]
	rightBracket Parser[string]
	lessThan     Parser[string]
	greaterThan  Parser[string]
	colon        Parser[string]

	bang     Parser[string]
	assign   Parser[string]
	plus     Parser[string]
	minus    Parser[string]
	star     Parser[string]
	slash    Parser[string]
	equal    Parser[string]
	notEqual Parser[string]

	identifier Parser[string]
	number     Parser[string]
	stringLit  Parser[string]
}

func newTokens() tokens {
	return tokens{
		kwFunction:  keyword("function"),
		kwIf:        keyword("if"),
		kwElse:      keyword("else"),
		kwReturn:    keyword("return"),
		kwVar:       keyword("var"),
		kwWhile:     keyword("while"),
		kwFor:       keyword("for"),
		kwTrue:      keyword("true"),
		kwFalse:     keyword("false"),
		kwUndefined: keyword("undefined"),
		kwNull:      keyword("null"),
		kwArray:     keyword("array"),
		kwVoid:      keyword("void"),
		kwBool:      keyword("bool"),
		kwNumber:    keyword("number"),
		kwString:    keyword("string"),

		comma:        token(`,`),
		semicolon:    token(`;`),
		leftParen:    token(`\(`),
		rightParen:   token(`\)`),
		leftBrace:    token(`\{`),
		rightBrace:   token(`\}`),
		leftBracket:  token(`\[`),
		rightBracket: token(`\]`),
		lessThan:     token(`<`),
		greaterThan:  token(`>`),
		colon:        token(`:`),

		bang:     token(`!`),
		assign:   token(`=`),
		plus:     token(`\+`),
		minus:    token(`-`),
		star:     token(`\*`),
		slash:    token(`/`),
		equal:    token(`==`),
		notEqual: token(`!=`),

		identifier: token(`[A-Za-z_][A-Za-z0-9_]*`),
		number:     token(`[0-9]+`),
		// The string body is deliberately restrictive: letters, digits
		// and spaces, no escape sequences.
		stringLit: token(`"[A-Za-z0-9 ]*"`),
	}
}
