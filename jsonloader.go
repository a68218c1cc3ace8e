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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// jsonValue adapts a decoded JSON document (numbers kept as
// json.Number so integer and float literals stay distinguishable, per
// ParseOperand's int-vs-float dispatch) to the Value interface.
type jsonValue struct {
	v any
}

func newJSONValue(v any) Value { return jsonValue{v: v} }

func isIntLiteral(s string) bool {
	return !strings.ContainsAny(s, ".eE")
}

func (j jsonValue) Kind() Kind {
	switch t := j.v.(type) {
	case nil:
		return KindNil
	case json.Number:
		if isIntLiteral(string(t)) {
			return KindInt
		}
		return KindFloat
	case string:
		return KindString
	case []any:
		return KindSeq
	default:
		return KindNil
	}
}

func (j jsonValue) Int() (int64, bool) {
	n, ok := j.v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

func (j jsonValue) Float() (float64, bool) {
	n, ok := j.v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

func (j jsonValue) Str() (string, bool) {
	s, ok := j.v.(string)
	return s, ok
}

func (j jsonValue) Seq() ([]Value, bool) {
	arr, ok := j.v.([]any)
	if !ok {
		return nil, false
	}
	vals := make([]Value, len(arr))
	for i, e := range arr {
		vals[i] = newJSONValue(e)
	}
	return vals, true
}

func (j jsonValue) Field(name string) (Value, bool) {
	switch t := j.v.(type) {
	case map[string]any:
		e, ok := t[name]
		if !ok {
			return nil, false
		}
		return newJSONValue(e), true
	case []any:
		i, err := strconv.Atoi(name)
		if err != nil || i < 0 || i >= len(t) {
			return nil, false
		}
		return newJSONValue(t[i]), true
	}
	return nil, false
}

func (j jsonValue) Len() int {
	switch t := j.v.(type) {
	case []any:
		return len(t)
	case map[string]any:
		return len(t)
	}
	return 0
}

// JSONLoader is the reference Loader adapter: each module is a single
// file named "module_<name>.json" (or "<name>.json" for bootstrap
// modules like module_info and header_operations) under Dir, holding a
// JSON object whose keys are the attribute names the compiler core asks
// for. It is deliberately simple: production embedders of this package
// are expected to supply a Loader backed by their own scripting
// evaluator, per the Loader contract.
type JSONLoader struct {
	Dir string

	cache map[string]map[string]any
}

// NewJSONLoader returns a loader reading module_*.json files from dir.
func NewJSONLoader(dir string) *JSONLoader {
	return &JSONLoader{Dir: dir, cache: map[string]map[string]any{}}
}

func (l *JSONLoader) read(moduleName string) (map[string]any, error) {
	if doc, ok := l.cache[moduleName]; ok {
		return doc, nil
	}
	path := filepath.Join(l.Dir, "module_"+moduleName+".json")
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(l.Dir, moduleName+".json")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load module %q: %w", moduleName, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse module %q: %w", moduleName, err)
	}
	l.cache[moduleName] = doc
	return doc, nil
}

// Module implements Loader.
func (l *JSONLoader) Module(moduleName, attrName string) (Value, error) {
	doc, err := l.read(moduleName)
	if err != nil {
		return nil, err
	}
	v, ok := doc[attrName]
	if !ok {
		return nil, fmt.Errorf("module %q has no attribute %q", moduleName, attrName)
	}
	return newJSONValue(v), nil
}

// Reset drops the loader's per-pass cache, forcing the next Module call
// to re-read from disk. This is the JSON loader's analogue of
// UnloadPythonInterpreter/LoadPythonInterpreter: a real scripting-backed
// Loader would tear down and recreate its interpreter here so pass-1
// evaluation side effects don't leak into pass 2.
func (l *JSONLoader) Reset() error {
	l.cache = map[string]map[string]any{}
	return nil
}
