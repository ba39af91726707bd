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

// Package parser parses Torc source into the ir tree.
//
// The package is built in two layers: a generic parser combinator core
// (this file) and the concrete grammar built on top of it (token.go,
// type.go, expr.go, stmt.go). A parser either produces a value and an
// advanced cursor, or no result, in which case ordered choice falls back to
// the next alternative from the same cursor.
package parser

import (
	"github.com/torc-lang/torc/build/source"
)

type (
	// Result is a produced value paired with the cursor advanced past the
	// consumed input.
	Result[T any] struct {
		Value T
		Next  source.Cursor
	}

	// Parser wraps a function from cursor to result. The boolean reports
	// whether the parser produced a result; false carries no error, it is
	// the no-result signal ordered choice backtracks on.
	Parser[T any] struct {
		parse func(source.Cursor) (Result[T], bool)
	}
)

// New wraps a parse function into a parser.
func New[T any](parse func(source.Cursor) (Result[T], bool)) Parser[T] {
	return Parser[T]{parse: parse}
}

// Parse runs the parser at the cursor.
func (p Parser[T]) Parse(c source.Cursor) (Result[T], bool) {
	return p.parse(c)
}

// Regexp returns a parser matching expr anchored at the cursor and yielding
// the matched text. The expression is compiled once, at grammar
// construction.
func Regexp(expr string) Parser[string] {
	re := source.Pattern(expr)
	return New(func(c source.Cursor) (Result[string], bool) {
		s, next, ok := c.Match(re)
		if !ok {
			return Result[string]{}, false
		}
		return Result[string]{Value: s, Next: next}, true
	})
}

// Constant returns a parser consuming nothing and yielding v.
func Constant[T any](v T) Parser[T] {
	return New(func(c source.Cursor) (Result[T], bool) {
		return Result[T]{Value: v, Next: c}, true
	})
}

// failure aborts the whole parse when a Fail parser runs. It unwinds to Run,
// which turns it into a positioned error.
type failure struct {
	msg string
	off int
}

// Fail returns a parser that, when invoked, fails the entire parse with msg.
// It serves both as the initial body of forward-referenced rules, so an
// unpatched reference fails loudly, and as a mid-grammar error with a
// configured message.
func Fail[T any](msg string) Parser[T] {
	return New(func(c source.Cursor) (Result[T], bool) {
		panic(&failure{msg: msg, off: c.Offset()})
	})
}

// Pos yields the current cursor offset without consuming input. Grammar
// rules use it to record node positions.
func Pos() Parser[int] {
	return New(func(c source.Cursor) (Result[int], bool) {
		return Result[int]{Value: c.Offset(), Next: c}, true
	})
}

// Or is ordered choice: try p, and on no result try q from the same cursor.
// The first alternative to produce a result wins; there is no lookahead
// beyond what p itself consumed.
func (p Parser[T]) Or(q Parser[T]) Parser[T] {
	return New(func(c source.Cursor) (Result[T], bool) {
		if res, ok := p.Parse(c); ok {
			return res, true
		}
		return q.Parse(c)
	})
}

// Bind runs p, passes its value to f, and runs the returned parser from p's
// advanced cursor.
func Bind[T, U any](p Parser[T], f func(T) Parser[U]) Parser[U] {
	return New(func(c source.Cursor) (Result[U], bool) {
		res, ok := p.Parse(c)
		if !ok {
			return Result[U]{}, false
		}
		return f(res.Value).Parse(res.Next)
	})
}

// And runs p then q, discarding p's value.
func And[T, U any](p Parser[T], q Parser[U]) Parser[U] {
	return Bind(p, func(T) Parser[U] { return q })
}

// Map transforms the value produced by p.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return Bind(p, func(v T) Parser[U] { return Constant(f(v)) })
}

// Maybe always produces a result: p's value, or the zero value of T when p
// produces none.
func Maybe[T any](p Parser[T]) Parser[T] {
	var zero T
	return p.Or(Constant(zero))
}

// ZeroOrMore greedily applies p until it produces no result and yields the
// accumulated values, possibly none. It always produces a result.
func ZeroOrMore[T any](p Parser[T]) Parser[[]T] {
	return New(func(c source.Cursor) (Result[[]T], bool) {
		var values []T
		for {
			res, ok := p.Parse(c)
			if !ok {
				return Result[[]T]{Value: values, Next: c}, true
			}
			values = append(values, res.Value)
			c = res.Next
		}
	})
}

// Forward is a placeholder for a rule that is referenced before it is
// defined. Three non-terminals (expression, statement, type) are mutually
// recursive with the rest of the grammar; each starts as a Forward whose
// body is patched exactly once when the dependent rules have been built.
type Forward[T any] struct {
	name    string
	p       Parser[T]
	defined bool
}

// NewForward returns a placeholder rule. Until Define is called, running
// the rule fails the parse loudly.
func NewForward[T any](name string) *Forward[T] {
	return &Forward[T]{
		name: name,
		p:    Fail[T]("grammar rule " + name + " used before definition"),
	}
}

// Parser returns a parser delegating to the rule's current body.
func (f *Forward[T]) Parser() Parser[T] {
	return New(func(c source.Cursor) (Result[T], bool) {
		return f.p.Parse(c)
	})
}

// Define patches the rule body. Patching is one-shot at grammar
// construction; a second call is a bug in the grammar.
func (f *Forward[T]) Define(p Parser[T]) {
	if f.defined {
		panic("parser: grammar rule " + f.name + " defined twice")
	}
	f.defined = true
	f.p = p
}

// Run parses a whole compilation unit with p, requiring the input to be
// consumed to the end. When p produces no result or stops short of the end,
// the error carries the furthest position reached by any cursor; when a Fail
// parser aborts the parse, the error carries its message and the offset
// where it ran.
func Run[T any](p Parser[T], text *source.Text) (value T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f, ok := r.(*failure)
		if !ok {
			panic(r)
		}
		err = source.Errorf(text, f.off, "%s", f.msg)
	}()
	res, ok := p.Parse(text.Cursor())
	if !ok || res.Next.Offset() != len(text.Content()) {
		off := text.Furthest()
		return value, source.Errorf(text, off, "parse error (offset %d)", off)
	}
	return res.Value, nil
}
