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

package source

import (
	"fmt"

	"github.com/pkg/errors"
)

type (
	// ErrorWithPos is an error attached to a position in Torc code.
	ErrorWithPos interface {
		error
		Text() *Text
		Offset() int
		Err() error
	}

	errorWithPos struct {
		text *Text
		off  int
		err  error
	}
)

var _ ErrorWithPos = (*errorWithPos)(nil)

// Position attaches position information to an error.
func Position(text *Text, off int, err error) ErrorWithPos {
	return &errorWithPos{text: text, off: off, err: err}
}

// Errorf returns a formatted compiler error positioned in the unit.
func Errorf(text *Text, off int, format string, a ...any) error {
	return Position(text, off, errors.Errorf(format, a...))
}

// Error renders the error as line:col: message.
func (e *errorWithPos) Error() string {
	if e.text == nil {
		return e.err.Error()
	}
	line, col := e.text.Position(e.off)
	return fmt.Sprintf("%d:%d: %v", line, col, e.err)
}

// Unwrap the error.
func (e *errorWithPos) Unwrap() error {
	return e.err
}

func (e *errorWithPos) Text() *Text {
	return e.text
}

func (e *errorWithPos) Offset() int {
	return e.off
}

func (e *errorWithPos) Err() error {
	return e.err
}
