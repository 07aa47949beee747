// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testdata carries the wire corpus: YAML cases that declare a
// handful of string fields, provide encoded specimens, and state what the
// fields must hold after parsing them.
package testdata

import (
	"bytes"
	"embed"
	"encoding/hex"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/protocolbuffers/protoscope"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arenastr/arenastr/internal/debug"
)

//go:embed *.yaml
var testdata embed.FS

// Harness is a generalization of [testing.TB] that also includes the
// [testing.T.Run] method. It must be generic because the signature of that
// method varies across [testing.T] and [testing.B].
type Harness[T any] interface {
	testing.TB
	Run(string, func(T)) bool
}

// TestCase is one case from the corpus.
type TestCase struct {
	Name string `yaml:"-"`

	// Field declarations: wire number to field name.
	Fields map[int32]string `yaml:"fields"`

	// Per-field default contents, for declarations whose default is not the
	// empty string. Fields without an entry use the shared empty sentinel.
	Defaults map[string]string `yaml:"defaults"`

	// Two ways to encode a specimen: hex and protoscope.
	Hex        []string `yaml:"hex"`
	Protoscope []string `yaml:"protoscope"`

	// Expected contents per field name after a successful parse. Fields
	// absent from Want must come out unset.
	Want map[string]string `yaml:"want"`

	// If non-empty, parsing must fail with an error containing this text.
	Err string `yaml:"err"`

	Specimens [][]byte `yaml:"-"`
}

// RunAll runs every corpus case against the given harness.
func RunAll[T Harness[T]](t T, f func(T, *TestCase)) {
	t.Helper()

	err := fs.WalkDir(testdata, ".", func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err, "loading test %q", path)

		if d.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		t.Run(path, func(t T) {
			if t, ok := any(t).(*testing.T); ok {
				t.Parallel()
			}

			data, err := fs.ReadFile(testdata, path)
			require.NoError(t, err, "loading test %q", path)

			f(t, parseTestCase(t, path, data))
		})

		return nil
	})
	require.NoError(t, err)
}

// parseTestCase parses a single case from the given data.
//
// This will call t.FailNow() if parsing fails.
func parseTestCase(t testing.TB, path string, file []byte) *TestCase {
	t.Helper()
	defer debug.WithTesting(t)()

	require.True(t, bytes.HasSuffix(file, []byte("\n")), "missing trailing newline in %q", path)

	test := new(TestCase)
	dec := yaml.NewDecoder(bytes.NewReader(file))
	dec.KnownFields(true)
	err := dec.Decode(test)
	require.NoError(t, err, "loading test %q", path)

	test.Name = path

	for _, raw := range test.Hex {
		r := strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "")
		b, err := hex.DecodeString(r.Replace(raw))
		require.NoError(t, err, "loading test %q", path)

		test.Specimens = append(test.Specimens, b)
	}

	for _, raw := range test.Protoscope {
		b, err := protoscope.NewScanner(raw).Exec()
		require.NoError(t, err, "loading test %q", path)

		test.Specimens = append(test.Specimens, b)
	}

	return test
}
