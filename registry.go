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
	"fmt"
	"strings"
	"sync"
)

// idTable is one entity category's identifier table: a dense name list
// indexed by assigned ID, plus the reverse lookup and a per-name usage
// counter. The dense slice keeps Names/emitters cache-friendly: most
// callers want every name in ID order, not random access by name.
type idTable struct {
	names []string
	index map[string]uint32
	uses  map[string]uint32
}

func newIDTable() *idTable {
	return &idTable{index: map[string]uint32{}, uses: map[string]uint32{}}
}

// Registry assigns stable numeric IDs to every named entity across all
// loaded modules, keyed by the entity's category prefix ("trp", "itm",
// "script", "dlgs", ...). IDs are assigned in first-occurrence
// order and never reassigned, so a second pass over the same modules
// reproduces identical IDs (the byte-reproducibility property pass 1
// and pass 2 both depend on).
type Registry struct {
	mu       sync.Mutex
	tables   map[string]*idTable
	tags     map[string]int64
	reporter *Reporter
}

// NewRegistry returns an empty Registry reporting duplicate-identifier
// warnings through r.
func NewRegistry(r *Reporter) *Registry {
	return &Registry{tables: map[string]*idTable{}, tags: map[string]int64{}, reporter: r}
}

// SetTag assigns prefix's category its operand tag byte (pre-shifted
// into bit 56), the per-module equivalent of OperandTagRegister and
// friends. Each category a module declares gets one, per the header's
// tag table; "str" is always tagged since quick text is never referred
// to by bare index.
func (reg *Registry) SetTag(prefix string, tag int64) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.tags[prefix] = tag
}

// Tag returns prefix's assigned operand tag (already shifted into bit
// 56), or 0 if none was ever assigned.
func (reg *Registry) Tag(prefix string) int64 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.tags[prefix]
}

func (reg *Registry) table(prefix string) *idTable {
	t, ok := reg.tables[prefix]
	if !ok {
		t = newIDTable()
		reg.tables[prefix] = t
	}
	return t
}

// Declare registers name as belonging to prefix's category, at
// definition time (e.g. while walking module_troops.troops). The first
// declaration wins the index; a repeated declaration of the same name
// is a warning, not an error, and returns the original index.
func (reg *Registry) Declare(prefix, name string) uint32 {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	key := strings.ToLower(name)
	t := reg.table(prefix)
	if idx, ok := t.index[key]; ok {
		reg.reporter.Warnf(fmt.Sprintf("%s:%s", prefix, name), "duplicate identifier declaration, keeping first occurrence (id %d)", idx)
		return idx
	}
	idx := uint32(len(t.names))
	t.names = append(t.names, key)
	t.index[key] = idx
	trace("registry: declared %s_%s = %d", prefix, key, idx)
	return idx
}

// Resolve looks up name's index in prefix's category. Operand parsing
// calls this for an identifier referenced as part of a statement
// (an operand like "trp_player"); unlike Declare, an unknown name is
// auto-registered rather than rejected, since forward references across
// modules are routine (a script can reference a troop defined later in
// module_troops, or in a different module entirely).
func (reg *Registry) Resolve(prefix, name string) uint32 {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	key := strings.ToLower(name)
	t := reg.table(prefix)
	idx, ok := t.index[key]
	if !ok {
		idx = uint32(len(t.names))
		t.names = append(t.names, key)
		t.index[key] = idx
	}
	t.uses[key]++
	return idx
}

// Usage returns how many times name has been resolved (referenced as an
// operand) within prefix's category.
func (reg *Registry) Usage(prefix, name string) uint32 {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.table(prefix).uses[strings.ToLower(name)]
}

// Names returns every name registered under prefix, in ID order. The
// returned slice must not be modified.
func (reg *Registry) Names(prefix string) []string {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.table(prefix).names
}

// Len returns how many identifiers are registered under prefix.
func (reg *Registry) Len(prefix string) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.table(prefix).names)
}

// IndexOf returns the already-assigned index of name in prefix's
// category without registering it, and whether it was found.
func (reg *Registry) IndexOf(prefix, name string) (uint32, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	idx, ok := reg.table(prefix).index[strings.ToLower(name)]
	return idx, ok
}
