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

// Package source represents a compilation unit and positions within it.
//
// A Text owns the full input of a compilation. A Cursor is an immutable
// (text, byte offset) pair; matching against a cursor is always anchored at
// its offset and never searches forward.
package source

import (
	"fmt"
	"regexp"
	"strings"
)

// Text is the full input of a compilation unit.
type Text struct {
	content string
	// furthest is the highest offset any cursor reached while matching.
	// It locates the failure point when a parse does not complete.
	furthest int
}

// NewText returns a new compilation unit for the given input.
func NewText(content string) *Text {
	return &Text{content: content}
}

// Content returns the full input.
func (t *Text) Content() string {
	return t.content
}

// Furthest returns the highest offset reached by matching so far.
func (t *Text) Furthest() int {
	return t.furthest
}

// Position resolves a byte offset into a 1-based line and column.
func (t *Text) Position(off int) (line, col int) {
	if off > len(t.content) {
		off = len(t.content)
	}
	before := t.content[:off]
	line = strings.Count(before, "\n") + 1
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		col = off - i
	} else {
		col = off + 1
	}
	return line, col
}

// Cursor returns a cursor at the start of the text.
func (t *Text) Cursor() Cursor {
	return Cursor{text: t}
}

// Cursor is an immutable position in a compilation unit.
type Cursor struct {
	text *Text
	off  int
}

// Text returns the compilation unit the cursor points into.
func (c Cursor) Text() *Text {
	return c.text
}

// Offset returns the byte offset of the cursor.
func (c Cursor) Offset() int {
	return c.off
}

// String renders the cursor position as line:col.
func (c Cursor) String() string {
	line, col := c.text.Position(c.off)
	return fmt.Sprintf("%d:%d", line, col)
}

// Match attempts an anchored match of re at the cursor. The expression must
// have been compiled with Pattern so that it cannot match past the cursor.
// On success, Match returns the matched text and a cursor advanced past it.
func (c Cursor) Match(re *regexp.Regexp) (string, Cursor, bool) {
	if c.off > c.text.furthest {
		c.text.furthest = c.off
	}
	loc := re.FindStringIndex(c.text.content[c.off:])
	if loc == nil {
		return "", c, false
	}
	next := Cursor{text: c.text, off: c.off + loc[1]}
	if next.off > c.text.furthest {
		c.text.furthest = next.off
	}
	return c.text.content[c.off+loc[0] : c.off+loc[1]], next, true
}

// Pattern compiles a regular expression anchored at the match start.
// Pattern panics if the expression does not compile; patterns are
// grammar-construction constants.
func Pattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`\A(?:` + expr + `)`)
}
