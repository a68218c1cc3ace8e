// Copyright 2015 Google Inc. All rights reserved
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

package modsys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModuleFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestJSONLoaderDistinguishesIntFromFloatLiterals(t *testing.T) {
	dir := t.TempDir()
	writeModuleFile(t, dir, "module_demo.json", `{"n": 3, "f": 3.5}`)

	l := NewJSONLoader(dir)
	n, err := l.Module("demo", "n")
	require.NoError(t, err)
	assert.Equal(t, KindInt, n.Kind())

	f, err := l.Module("demo", "f")
	require.NoError(t, err)
	assert.Equal(t, KindFloat, f.Kind())
}

func TestJSONLoaderSeqAndField(t *testing.T) {
	dir := t.TempDir()
	writeModuleFile(t, dir, "module_demo.json", `{"items": [{"name": "sword"}, {"name": "shield"}]}`)

	l := NewJSONLoader(dir)
	v, err := l.Module("demo", "items")
	require.NoError(t, err)

	seq, ok := v.Seq()
	require.True(t, ok)
	require.Len(t, seq, 2)

	name, ok := seq[0].Field("name")
	require.True(t, ok)
	s, ok := name.Str()
	require.True(t, ok)
	assert.Equal(t, "sword", s)
}

func TestJSONLoaderResetForcesReread(t *testing.T) {
	dir := t.TempDir()
	writeModuleFile(t, dir, "module_demo.json", `{"n": 1}`)

	l := NewJSONLoader(dir)
	_, err := l.Module("demo", "n")
	require.NoError(t, err)

	writeModuleFile(t, dir, "module_demo.json", `{"n": 2}`)
	require.NoError(t, l.Reset())

	v, err := l.Module("demo", "n")
	require.NoError(t, err)
	n, _ := v.Int()
	assert.Equal(t, int64(2), n)
}

func TestJSONLoaderMissingAttributeIsError(t *testing.T) {
	dir := t.TempDir()
	writeModuleFile(t, dir, "module_demo.json", `{"n": 1}`)

	l := NewJSONLoader(dir)
	_, err := l.Module("demo", "missing")
	assert.Error(t, err)
}
