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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/torc-lang/torc/build/source"
)

func parseAll[T any](t *testing.T, p Parser[T], input string) T {
	t.Helper()
	v, err := Run(p, source.NewText(input))
	if err != nil {
		t.Fatalf("Run(%q): %v", input, err)
	}
	return v
}

func TestRegexpAnchored(t *testing.T) {
	p := Regexp(`[0-9]+`)
	if _, ok := p.Parse(source.NewText("abc123").Cursor()); ok {
		t.Errorf("Regexp matched unanchored input")
	}
	res, ok := p.Parse(source.NewText("123abc").Cursor())
	if !ok || res.Value != "123" {
		t.Errorf("Regexp = %q, %v, want \"123\", true", res.Value, ok)
	}
	if res.Next.Offset() != 3 {
		t.Errorf("cursor offset = %d, want 3", res.Next.Offset())
	}
}

func TestOrBacktracks(t *testing.T) {
	p := Regexp(`ab`).Or(Regexp(`a`))
	res, ok := p.Parse(source.NewText("ac").Cursor())
	if !ok || res.Value != "a" {
		t.Errorf("Or = %q, %v, want \"a\", true", res.Value, ok)
	}
}

func TestOrFirstWins(t *testing.T) {
	p := Regexp(`a`).Or(Regexp(`ab`))
	res, ok := p.Parse(source.NewText("ab").Cursor())
	if !ok || res.Value != "a" {
		t.Errorf("Or = %q, %v, want \"a\", true (no lookahead)", res.Value, ok)
	}
}

func TestMaybeZeroValue(t *testing.T) {
	p := Maybe(Regexp(`x`))
	res, ok := p.Parse(source.NewText("y").Cursor())
	if !ok || res.Value != "" {
		t.Errorf("Maybe = %q, %v, want \"\", true", res.Value, ok)
	}
	if res.Next.Offset() != 0 {
		t.Errorf("Maybe consumed input: offset %d", res.Next.Offset())
	}
}

func TestZeroOrMore(t *testing.T) {
	p := ZeroOrMore(Regexp(`a`))
	got := parseAll(t, p, "aaa")
	if diff := cmp.Diff([]string{"a", "a", "a"}, got); diff != "" {
		t.Errorf("ZeroOrMore mismatch (-want +got):\n%s", diff)
	}
	res, ok := p.Parse(source.NewText("b").Cursor())
	if !ok || len(res.Value) != 0 {
		t.Errorf("ZeroOrMore on no match = %v, %v, want empty, true", res.Value, ok)
	}
}

func TestBindThreadsCursor(t *testing.T) {
	p := Bind(Regexp(`a+`), func(as string) Parser[string] {
		return Map(Regexp(`b+`), func(bs string) string { return as + bs })
	})
	if got := parseAll(t, p, "aabbb"); got != "aabbb" {
		t.Errorf("Bind = %q, want \"aabbb\"", got)
	}
}

func TestPosDoesNotConsume(t *testing.T) {
	p := And(Regexp(`ab`), Pos())
	if got := parseAll(t, p, "ab"); got != 2 {
		t.Errorf("Pos = %d, want 2", got)
	}
}

func TestFailAbortsParse(t *testing.T) {
	p := Regexp(`a`).Or(Fail[string]("boom")).Or(Regexp(`b`))
	_, err := Run(p, source.NewText("b"))
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Run error = %v, want to contain \"boom\"", err)
	}
}

func TestRunRequiresFullConsumption(t *testing.T) {
	_, err := Run(Regexp(`a`), source.NewText("ab"))
	if err == nil || !strings.Contains(err.Error(), "parse error") {
		t.Errorf("Run error = %v, want parse error", err)
	}
}

func TestForwardUndefined(t *testing.T) {
	f := NewForward[string]("thing")
	_, err := Run(f.Parser(), source.NewText("x"))
	if err == nil || !strings.Contains(err.Error(), "used before definition") {
		t.Errorf("Run error = %v, want used-before-definition", err)
	}
}

func TestForwardDefineTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("second Define did not panic")
		}
	}()
	f := NewForward[string]("thing")
	f.Define(Regexp(`x`))
	f.Define(Regexp(`y`))
}
