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

package main

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// manifestName is the file the driver looks for in the working directory
// when no source file is given on the command line.
const manifestName = "torc.yml"

// manifest configures a compilation run. Command-line flags override the
// fields read from the file.
type manifest struct {
	// Source is the path of the compilation unit.
	Source string `yaml:"source"`
	// Output is the path of the assembly file, or empty for stdout.
	Output string `yaml:"output"`
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read manifest %s", path)
	}
	return parseManifest(path, data)
}

func parseManifest(path string, data []byte) (*manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	// Unknown keys are mistakes, not extensions.
	dec.KnownFields(true)
	m := &manifest{}
	if err := dec.Decode(m); err != nil {
		return nil, errors.Wrapf(err, "cannot parse manifest %s", path)
	}
	if m.Source == "" {
		return nil, errors.Errorf("manifest %s declares no source", path)
	}
	return m, nil
}
