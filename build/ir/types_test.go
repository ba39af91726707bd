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

package ir_test

import (
	"testing"

	"github.com/torc-lang/torc/build/ir"
)

func sig(ret ir.Type, params ...ir.Type) *ir.FuncType {
	t := ir.NewFuncType(ret)
	names := []string{"a", "b", "c", "d"}
	for i, p := range params {
		t.AddParam(names[i], p)
	}
	return t
}

func TestTypeEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b ir.Type
		want bool
	}{
		{name: "same scalar", a: ir.NumberType(), b: ir.NumberType(), want: true},
		{name: "scalar is nominal", a: ir.NumberType(), b: ir.BoolType(), want: false},
		{name: "string is not an array type", a: ir.StringType(), b: ir.NewArrayType(ir.NumberType()), want: false},
		{
			name: "array is structural",
			a:    ir.NewArrayType(ir.NumberType()),
			b:    ir.NewArrayType(ir.NumberType()),
			want: true,
		},
		{
			name: "array element mismatch",
			a:    ir.NewArrayType(ir.NumberType()),
			b:    ir.NewArrayType(ir.BoolType()),
			want: false,
		},
		{
			name: "nested arrays",
			a:    ir.NewArrayType(ir.NewArrayType(ir.BoolType())),
			b:    ir.NewArrayType(ir.NewArrayType(ir.BoolType())),
			want: true,
		},
		{
			name: "function structural equality",
			a:    sig(ir.NumberType(), ir.NumberType(), ir.BoolType()),
			b:    sig(ir.NumberType(), ir.NumberType(), ir.BoolType()),
			want: true,
		},
		{
			name: "function parameter count",
			a:    sig(ir.NumberType(), ir.NumberType()),
			b:    sig(ir.NumberType()),
			want: false,
		},
		{
			name: "function parameter type",
			a:    sig(ir.VoidType(), ir.NumberType()),
			b:    sig(ir.VoidType(), ir.BoolType()),
			want: false,
		},
		{
			name: "function return type",
			a:    sig(ir.NumberType()),
			b:    sig(ir.VoidType()),
			want: false,
		},
		{
			name: "function against scalar",
			a:    sig(ir.NumberType()),
			b:    ir.NumberType(),
			want: false,
		},
	}
	for _, test := range tests {
		if got := test.a.Equal(test.b); got != test.want {
			t.Errorf("%s: %s.Equal(%s) = %v, want %v", test.name, test.a, test.b, got, test.want)
		}
		if got := test.b.Equal(test.a); got != test.want {
			t.Errorf("%s: %s.Equal(%s) = %v, want %v (symmetry)", test.name, test.b, test.a, got, test.want)
		}
	}
}

func TestFuncTypeParamUniqueness(t *testing.T) {
	ft := ir.NewFuncType(ir.VoidType())
	if !ft.AddParam("n", ir.NumberType()) {
		t.Fatal("first AddParam(n) rejected")
	}
	if ft.AddParam("n", ir.BoolType()) {
		t.Fatal("duplicate AddParam(n) accepted")
	}
	if ft.Params.Size() != 1 {
		t.Errorf("Params.Size() = %d, want 1", ft.Params.Size())
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  ir.Type
		want string
	}{
		{typ: ir.NumberType(), want: "number"},
		{typ: ir.BoolType(), want: "bool"},
		{typ: ir.VoidType(), want: "void"},
		{typ: ir.StringType(), want: "string"},
		{typ: ir.NewArrayType(ir.NumberType()), want: "array<number>"},
		{typ: ir.NewArrayType(ir.NewArrayType(ir.BoolType())), want: "array<array<bool>>"},
		{typ: sig(ir.NumberType(), ir.NumberType(), ir.BoolType()), want: "function(number, bool): number"},
		{typ: sig(ir.VoidType()), want: "function(): void"},
	}
	for _, test := range tests {
		if got := test.typ.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestStringCharCodes(t *testing.T) {
	s := &ir.StringLiteral{Text: "hi"}
	codes := s.CharCodes()
	want := []int32{'h', 'i'}
	if len(codes) != len(want) {
		t.Fatalf("CharCodes() has %d elements, want %d", len(codes), len(want))
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("CharCodes()[%d] = %d, want %d", i, codes[i], want[i])
		}
	}
}
