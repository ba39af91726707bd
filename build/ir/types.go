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

package ir

import (
	"strings"

	"github.com/torc-lang/torc/base/ordered"
)

// Kind identifies a family of types.
type Kind int

// The kinds of Torc types.
const (
	InvalidKind Kind = iota
	NumberKind
	BoolKind
	VoidKind
	StringKind
	ArrayKind
	FuncKind
)

// String returns the source-level name of the kind.
func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case BoolKind:
		return "bool"
	case VoidKind:
		return "void"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case FuncKind:
		return "function"
	}
	return "invalid"
}

// Type is a semantic type. Scalar equality is nominal; array equality is
// structural on the element type; function equality is structural on the
// parameters and the return type.
type Type interface {
	Kind() Kind
	Equal(Type) bool
	String() string
}

type scalarType struct {
	kind Kind
}

var _ Type = (*scalarType)(nil)

func (t *scalarType) Kind() Kind { return t.kind }

func (t *scalarType) Equal(o Type) bool {
	return t.kind == o.Kind()
}

func (t *scalarType) String() string { return t.kind.String() }

var (
	invalidT = &scalarType{kind: InvalidKind}
	numberT  = &scalarType{kind: NumberKind}
	boolT    = &scalarType{kind: BoolKind}
	voidT    = &scalarType{kind: VoidKind}
	stringT  = &scalarType{kind: StringKind}
)

// InvalidType returns the invalid type, a placeholder assigned to
// expressions whose type could not be determined. Checks against it are
// suppressed: the error has already been reported.
func InvalidType() Type { return invalidT }

// NumberType returns the 32-bit integer type.
func NumberType() Type { return numberT }

// BoolType returns the boolean type.
func BoolType() Type { return boolT }

// VoidType returns the void type.
func VoidType() Type { return voidT }

// StringType returns the string type.
func StringType() Type { return stringT }

// IsInvalid returns true if the type is the invalid placeholder.
func IsInvalid(t Type) bool { return t.Kind() == InvalidKind }

// ArrayType is the type of arrays with element type Elem.
type ArrayType struct {
	Elem Type
}

var _ Type = (*ArrayType)(nil)

// NewArrayType returns the array type with the given element type.
func NewArrayType(elem Type) *ArrayType {
	return &ArrayType{Elem: elem}
}

// Kind of an array type.
func (t *ArrayType) Kind() Kind { return ArrayKind }

// Equal is structural: arrays are equal when their element types are.
func (t *ArrayType) Equal(o Type) bool {
	other, ok := o.(*ArrayType)
	if !ok {
		return false
	}
	return t.Elem.Equal(other.Elem)
}

func (t *ArrayType) String() string {
	return "array<" + t.Elem.String() + ">"
}

// FuncType is a function signature: parameters in declaration order and a
// return type.
type FuncType struct {
	Params *ordered.Map[string, Type]
	Return Type
}

var _ Type = (*FuncType)(nil)

// NewFuncType returns a signature with no parameters and the given return
// type. Parameters are added with AddParam in declaration order.
func NewFuncType(ret Type) *FuncType {
	return &FuncType{Params: ordered.NewMap[string, Type](), Return: ret}
}

// AddParam appends a parameter. It returns false if the name is already
// declared: parameter names must be unique within a signature.
func (t *FuncType) AddParam(name string, typ Type) bool {
	if t.Params.Has(name) {
		return false
	}
	t.Params.Store(name, typ)
	return true
}

// Kind of a function type.
func (t *FuncType) Kind() Kind { return FuncKind }

// Equal is structural: both signatures must declare the same number of
// parameters with equal types position by position, and equal return types.
// Parameter names do not participate.
func (t *FuncType) Equal(o Type) bool {
	other, ok := o.(*FuncType)
	if !ok {
		return false
	}
	if t.Params.Size() != other.Params.Size() {
		return false
	}
	for i := range t.Params.Size() {
		_, p := t.Params.At(i)
		_, q := other.Params.At(i)
		if !p.Equal(q) {
			return false
		}
	}
	return t.Return.Equal(other.Return)
}

func (t *FuncType) String() string {
	var b strings.Builder
	b.WriteString("function(")
	first := true
	for _, typ := range t.Params.Iter() {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(typ.String())
	}
	b.WriteString("): ")
	b.WriteString(t.Return.String())
	return b.String()
}
