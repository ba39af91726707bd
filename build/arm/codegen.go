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

// Package arm lowers a checked Torc tree to GNU-syntax assembly for 32-bit
// ARM, linkable against the C library for malloc and putchar.
//
// The calling convention is deliberately simple. r0 holds the most recently
// evaluated value; binary operators stash one operand on the stack while the
// other evaluates. Every stack adjustment moves in 8-byte steps so the stack
// pointer stays aligned across calls.
package arm

import (
	"io"

	"github.com/torc-lang/torc/build/ir"
	"github.com/torc-lang/torc/build/source"
)

// maxArgs is the number of values the convention passes in registers.
// Beyond r0-r3 the emitter has no spill scheme, so larger signatures and
// call sites are rejected.
const maxArgs = 4

type generator struct {
	text   *source.Text
	out    *emitter
	labels *labelCounter

	// locals maps a name to its fp-relative byte offset. Parameters and
	// var declarations share the map; there is no block scope.
	locals    map[string]int
	nextLocal int
}

// Emit lowers a whole program and writes the assembly to out. Emission
// stops at the first error: an oversized signature or call, or a name no
// declaration reaches.
func Emit(text *source.Text, prog *ir.Block, out io.Writer) error {
	e := newEmitter(out)
	g := &generator{
		text:   text,
		out:    e,
		labels: &labelCounter{},
		locals: map[string]int{},
	}
	if err := g.stmt(prog); err != nil {
		return err
	}
	return e.err
}

func (g *generator) errorf(n ir.Node, format string, a ...any) error {
	return source.Errorf(g.text, n.Offset(), format, a...)
}

func (g *generator) expr(e ir.Expr) error {
	switch e := e.(type) {
	case *ir.Num:
		g.out.op("ldr r0, =%d", e.Value)
	case *ir.Bool:
		if e.Value {
			g.out.op("mov r0, #1")
		} else {
			g.out.op("mov r0, #0")
		}
	case *ir.Undefined, *ir.Null:
		g.out.op("mov r0, #0")
	case *ir.StringLiteral:
		g.heapArray(len(e.Text), func(i int) error {
			g.out.op("ldr r0, =%d", e.CharCodes()[i])
			return nil
		})
	case *ir.Id:
		off, ok := g.locals[e.Name]
		if !ok {
			return g.errorf(e, "undefined variable %s", e.Name)
		}
		g.out.op("ldr r0, [fp, #%d]", off)
	case *ir.Not:
		if err := g.expr(e.X); err != nil {
			return err
		}
		g.out.op("cmp r0, #0")
		g.out.op("moveq r0, #1")
		g.out.op("movne r0, #0")
	case *ir.Binary:
		return g.binary(e)
	case *ir.Call:
		return g.call(e)
	case *ir.ArrayLiteral:
		return g.heapArray(len(e.Elems), func(i int) error {
			return g.expr(e.Elems[i])
		})
	case *ir.ArrayLookup:
		return g.lookup(e)
	case *ir.Length:
		if err := g.expr(e.Array); err != nil {
			return err
		}
		g.out.op("ldr r0, [r0]")
	default:
		return g.errorf(e, "cannot emit expression %T", e)
	}
	return nil
}

// binary evaluates one operand, parks it on the stack and evaluates the
// other. Addition evaluates left first; every other operator evaluates
// right first, which leaves the left operand in r0 for the non-commutative
// instructions.
func (g *generator) binary(e *ir.Binary) error {
	first, second := e.Left, e.Right
	if e.Op != ir.Add {
		first, second = e.Right, e.Left
	}
	if err := g.expr(first); err != nil {
		return err
	}
	g.out.op("push {r0, ip}")
	if err := g.expr(second); err != nil {
		return err
	}
	g.out.op("pop {r1, ip}")
	switch e.Op {
	case ir.Add:
		g.out.op("add r0, r0, r1")
	case ir.Subtract:
		g.out.op("sub r0, r0, r1")
	case ir.Multiply:
		g.out.op("mul r0, r0, r1")
	case ir.Divide:
		g.out.op("udiv r0, r0, r1")
	case ir.Equal:
		g.out.op("cmp r0, r1")
		g.out.op("moveq r0, #1")
		g.out.op("movne r0, #0")
	case ir.NotEqual:
		g.out.op("cmp r0, r1")
		g.out.op("moveq r0, #0")
		g.out.op("movne r0, #1")
	default:
		return g.errorf(e, "cannot emit operator %s", e.Op)
	}
	return nil
}

func (g *generator) call(e *ir.Call) error {
	switch n := len(e.Args); {
	case n == 0:
		g.out.op("bl %s", e.Callee)
	case n == 1:
		if err := g.expr(e.Args[0]); err != nil {
			return err
		}
		g.out.op("bl %s", e.Callee)
	case n <= maxArgs:
		g.out.op("sub sp, sp, #16")
		for i, arg := range e.Args {
			if err := g.expr(arg); err != nil {
				return err
			}
			g.out.op("str r0, [sp, #%d]", 4*i)
		}
		g.out.op("pop {r0, r1, r2, r3}")
		g.out.op("bl %s", e.Callee)
	default:
		return g.errorf(e, "call to %s passes %d arguments, the convention allows at most %d", e.Callee, n, maxArgs)
	}
	return nil
}

// heapArray emits a malloc'ed block holding the length followed by n
// elements. element must leave element i in r0. r4 holds the block pointer
// while the elements evaluate and is restored before returning the pointer
// in r0. Blocks are never freed.
func (g *generator) heapArray(n int, element func(i int) error) error {
	g.out.op("ldr r0, =%d", 4*(n+1))
	g.out.op("bl malloc")
	g.out.op("push {r4, ip}")
	g.out.op("mov r4, r0")
	g.out.op("ldr r0, =%d", n)
	g.out.op("str r0, [r4]")
	for i := 0; i < n; i++ {
		if err := element(i); err != nil {
			return err
		}
		g.out.op("str r0, [r4, #%d]", 4*(i+1))
	}
	g.out.op("mov r0, r4")
	g.out.op("pop {r4, ip}")
	return nil
}

// lookup bounds-checks the index against the stored length. An index at or
// past the length yields zero instead of trapping.
func (g *generator) lookup(e *ir.ArrayLookup) error {
	if err := g.expr(e.Array); err != nil {
		return err
	}
	g.out.op("push {r0, ip}")
	if err := g.expr(e.Index); err != nil {
		return err
	}
	g.out.op("pop {r1, ip}")
	g.out.op("ldr r2, [r1]")
	g.out.op("cmp r0, r2")
	g.out.op("movhs r0, #0")
	g.out.op("addlo r1, r1, #4")
	g.out.op("lsllo r0, r0, #2")
	g.out.op("ldrlo r0, [r1, r0]")
	return nil
}

func (g *generator) stmt(s ir.Stmt) error {
	switch s := s.(type) {
	case *ir.Block:
		for _, st := range s.Stmts {
			if err := g.stmt(st); err != nil {
				return err
			}
		}
	case *ir.ExprStmt:
		return g.expr(s.X)
	case *ir.Return:
		if err := g.expr(s.Value); err != nil {
			return err
		}
		g.out.op("mov sp, fp")
		g.out.op("pop {fp, pc}")
	case *ir.If:
		return g.ifStmt(s)
	case *ir.While:
		return g.whileStmt(s)
	case *ir.For:
		return g.forStmt(s)
	case *ir.Var:
		if err := g.expr(s.Init); err != nil {
			return err
		}
		g.out.op("push {r0, ip}")
		g.locals[s.Name] = g.nextLocal - 4
		g.nextLocal -= 8
	case *ir.Assign:
		if err := g.expr(s.Value); err != nil {
			return err
		}
		off, ok := g.locals[s.Name]
		if !ok {
			return g.errorf(s, "assignment to undefined variable %s", s.Name)
		}
		g.out.op("str r0, [fp, #%d]", off)
	case *ir.Func:
		return g.funcStmt(s)
	default:
		return g.errorf(s, "cannot emit statement %T", s)
	}
	return nil
}

func (g *generator) ifStmt(s *ir.If) error {
	alt, end := g.labels.next(), g.labels.next()
	if err := g.expr(s.Cond); err != nil {
		return err
	}
	g.out.op("cmp r0, #0")
	g.out.op("beq %s", alt)
	if err := g.stmt(s.Then); err != nil {
		return err
	}
	g.out.op("b %s", end)
	g.out.label(alt)
	if err := g.stmt(s.Else); err != nil {
		return err
	}
	g.out.label(end)
	return nil
}

func (g *generator) whileStmt(s *ir.While) error {
	start, end := g.labels.next(), g.labels.next()
	g.out.label(start)
	if err := g.expr(s.Cond); err != nil {
		return err
	}
	g.out.op("cmp r0, #0")
	g.out.op("beq %s", end)
	if err := g.stmt(s.Body); err != nil {
		return err
	}
	g.out.op("b %s", start)
	g.out.label(end)
	return nil
}

func (g *generator) forStmt(s *ir.For) error {
	start, end := g.labels.next(), g.labels.next()
	if err := g.stmt(s.Init); err != nil {
		return err
	}
	g.out.label(start)
	if err := g.expr(s.Cond); err != nil {
		return err
	}
	g.out.op("cmp r0, #0")
	g.out.op("beq %s", end)
	if err := g.stmt(s.Body); err != nil {
		return err
	}
	if err := g.stmt(s.Step); err != nil {
		return err
	}
	g.out.op("b %s", start)
	g.out.label(end)
	return nil
}

// funcStmt emits one function: global symbol, prologue spilling the
// argument registers into the frame, the body in a fresh scope, and an
// epilogue returning zero when the body falls through.
func (g *generator) funcStmt(s *ir.Func) error {
	if s.Sig.Params.Size() > maxArgs {
		return g.errorf(s, "function %s declares %d parameters, the convention allows at most %d", s.Name, s.Sig.Params.Size(), maxArgs)
	}
	g.out.blank()
	g.out.directive(".global %s", s.Name)
	g.out.label(s.Name)
	g.out.op("push {fp, lr}")
	g.out.op("mov fp, sp")
	g.out.op("push {r0, r1, r2, r3}")

	body := &generator{
		text:      g.text,
		out:       g.out,
		labels:    g.labels,
		locals:    map[string]int{},
		nextLocal: -20,
	}
	i := 0
	for name := range s.Sig.Params.Keys() {
		body.locals[name] = 4*i - 16
		i++
	}
	if err := body.stmt(s.Body); err != nil {
		return err
	}

	g.out.op("mov sp, fp")
	g.out.op("mov r0, #0")
	g.out.op("pop {fp, pc}")
	return nil
}
