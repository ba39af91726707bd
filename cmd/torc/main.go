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

// torc compiles Torc source to 32-bit ARM assembly.
//
// Usage:
//
//	torc [flags] [source.torc]
//
// With no source argument, the driver reads torc.yml from the working
// directory. The emitted assembly assembles with the GNU toolchain and
// links against the C library.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/torc-lang/torc/api"
	"github.com/torc-lang/torc/build/source"
)

var (
	output       = flag.String("o", "", "write assembly to this file instead of stdout")
	manifestPath = flag.String("manifest", "", "read the compilation manifest from this file")
	demo         = flag.Bool("demo", false, "compile a built-in sample program and exit")
)

// demoProgram greets on stdout when assembled, linked and run.
const demoProgram = `
function main() {
	var s = "hello from torc";
	for (var i = 0; i != length(s); i = i + 1;) {
		putchar(s[i]);
	}
	putchar(10);
}
`

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "torc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	src, out, err := inputs()
	if err != nil {
		return err
	}
	sink := io.Writer(os.Stdout)
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrapf(err, "cannot create %s", out)
		}
		defer f.Close()
		sink = f
	}
	return api.Compile(src, sink)
}

// inputs resolves the source text and output path from the flags, the
// argument list and the manifest, in that order of precedence.
func inputs() (*source.Text, string, error) {
	if *demo {
		return source.NewText(demoProgram), *output, nil
	}
	if flag.NArg() > 1 {
		return nil, "", errors.New("at most one source file")
	}
	if flag.NArg() == 1 {
		text, err := readSource(flag.Arg(0))
		return text, *output, err
	}
	path := *manifestPath
	if path == "" {
		path = manifestName
	}
	m, err := loadManifest(path)
	if err != nil {
		return nil, "", err
	}
	out := m.Output
	if *output != "" {
		out = *output
	}
	text, err := readSource(m.Source)
	return text, out, err
}

func readSource(path string) (*source.Text, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	return source.NewText(string(data)), nil
}
