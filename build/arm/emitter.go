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

package arm

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// emitter is the append-only assembly sink. Write errors are sticky: the
// first one is kept and every later write is a no-op, so the code generator
// never checks errors line by line.
type emitter struct {
	w   io.Writer
	err error
}

func newEmitter(w io.Writer) *emitter {
	return &emitter{w: w}
}

// op writes one indented instruction line.
func (e *emitter) op(format string, a ...any) {
	e.line("\t"+format, a...)
}

// label writes a label definition at column zero.
func (e *emitter) label(name string) {
	e.line("%s:", name)
}

// directive writes an assembler directive at column zero.
func (e *emitter) directive(format string, a ...any) {
	e.line(format, a...)
}

func (e *emitter) blank() {
	e.line("")
}

func (e *emitter) line(format string, a ...any) {
	if e.err != nil {
		return
	}
	if _, err := fmt.Fprintf(e.w, format+"\n", a...); err != nil {
		e.err = errors.Wrap(err, "cannot write assembly")
	}
}

// labelCounter hands out .L<n> branch targets. The counter is shared by
// every function of a compilation run and only ever grows.
type labelCounter struct {
	n int
}

func (c *labelCounter) next() string {
	l := fmt.Sprintf(".L%d", c.n)
	c.n++
	return l
}
