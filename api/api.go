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

// Package api runs the Torc compilation pipeline: parse, check, emit.
package api

import (
	"io"

	"github.com/pkg/errors"
	"github.com/torc-lang/torc/build/arm"
	"github.com/torc-lang/torc/build/checker"
	"github.com/torc-lang/torc/build/ir"
	"github.com/torc-lang/torc/build/parser"
	"github.com/torc-lang/torc/build/source"
)

// Compile parses, type-checks and lowers a compilation unit, writing the
// assembly to out. Nothing is written before the tree has checked.
func Compile(text *source.Text, out io.Writer) error {
	prog, err := Check(text)
	if err != nil {
		return err
	}
	if err := arm.Emit(text, prog, out); err != nil {
		return errors.Wrap(err, "emit")
	}
	return nil
}

// CompileString compiles source held in a string.
func CompileString(src string, out io.Writer) error {
	return Compile(source.NewText(src), out)
}

// Check parses and type-checks a compilation unit and returns its tree.
func Check(text *source.Text) (*ir.Block, error) {
	prog, err := parser.ParseProgram(text)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	if err := checker.Check(text, prog); err != nil {
		return nil, errors.Wrap(err, "check")
	}
	return prog, nil
}
