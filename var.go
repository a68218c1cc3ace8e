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
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// MaxLocalVars is the maximum number of local variables a single
// statement block may reference. The original compiler enforces this so
// the per-statement local slot array never needs to grow.
const MaxLocalVars = 128

// Variable is one slot in a variable table: a global ("$g_gold") or
// local (":gold") name bound to a stable numeric index, plus the
// bookkeeping needed to diagnose unused or never-assigned variables
// after compilation finishes.
type Variable struct {
	Name        string
	Index       uint32
	Assignments uint32
	Usages      uint32
	// Compat marks a global variable that was present in a
	// previously-compiled variables.txt but not referenced by any
	// loaded module this run; its slot is preserved so older save
	// games (which address globals by index) don't shift underfoot.
	Compat bool
}

// varTable is one scope's worth of variable slots: a lookup map plus
// the insertion order, since variables.txt is written in index order.
type varTable struct {
	byName map[string]*Variable
	order  []*Variable
}

func newVarTable() *varTable {
	return &varTable{byName: map[string]*Variable{}}
}

func (t *varTable) get(name string) (*Variable, bool) {
	v, ok := t.byName[name]
	return v, ok
}

func (t *varTable) declare(name string, compat bool) *Variable {
	v := &Variable{Name: name, Index: uint32(len(t.order)), Compat: compat}
	t.byName[name] = v
	t.order = append(t.order, v)
	return v
}

// VariableTable tracks the compiler's two variable scopes: Global
// variables persist across every statement block in a module and are
// round-tripped through variables.txt between compiler invocations;
// Local variables live only for the duration of the statement block
// currently being compiled and are discarded (ClearLocal) between
// blocks.
type VariableTable struct {
	mu       sync.Mutex
	global   *varTable
	local    *varTable
	reporter *Reporter
}

// NewVariableTable returns an empty VariableTable reporting through r.
func NewVariableTable(r *Reporter) *VariableTable {
	return &VariableTable{global: newVarTable(), local: newVarTable(), reporter: r}
}

// LoadGlobals seeds the global scope from a previously written
// variables.txt, so indices assigned in an earlier compilation are
// preserved across runs. Lines are "name index", one per line; entries
// present here but never touched again this run are kept with
// Compat=true rather than dropped.
func (vt *VariableTable) LoadGlobals(r io.Reader) error {
	vt.mu.Lock()
	defer vt.mu.Unlock()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("malformed variables.txt line %q", line)
		}
		idx, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return fmt.Errorf("malformed variables.txt line %q: %w", line, err)
		}
		name := fields[0]
		if _, exists := vt.global.byName[name]; exists {
			continue
		}
		v := &Variable{Name: name, Index: uint32(idx), Compat: true}
		vt.global.byName[name] = v
		vt.global.order = append(vt.global.order, v)
	}
	return scanner.Err()
}

// WriteGlobals writes the current global scope back out as
// variables.txt, in index order.
func (vt *VariableTable) WriteGlobals(w io.Writer) error {
	return vt.WriteGlobalsNamed(w, nil)
}

// WriteGlobalsNamed is WriteGlobals with an optional name transform
// applied to each variable before it's written, the hook
// -hide-global-vars uses to obfuscate names in the shipped
// variables.txt without touching the compiler's own bookkeeping (which
// always keys variables by their real name).
func (vt *VariableTable) WriteGlobalsNamed(w io.Writer, rename func(string) string) error {
	vt.mu.Lock()
	defer vt.mu.Unlock()

	ordered := make([]*Variable, len(vt.global.order))
	copy(ordered, vt.global.order)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })
	for _, v := range ordered {
		name := v.Name
		if rename != nil {
			name = rename(name)
		}
		if _, err := fmt.Fprintf(w, "%s %d\n", name, v.Index); err != nil {
			return err
		}
	}
	return nil
}

// AssignGlobal records an assignment (an LHS occurrence) to a global
// variable, declaring it on first use, and returns its index.
func (vt *VariableTable) AssignGlobal(name string) uint32 {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	v, ok := vt.global.get(name)
	if !ok {
		v = vt.global.declare(name, false)
	}
	v.Compat = false
	v.Assignments++
	return v.Index
}

// UseGlobal records a read of a global variable, declaring it on first
// use since globals may legitimately be read before any module-level
// statement assigns them (e.g. engine-maintained globals).
func (vt *VariableTable) UseGlobal(name string) uint32 {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	v, ok := vt.global.get(name)
	if !ok {
		v = vt.global.declare(name, false)
	}
	v.Compat = false
	v.Usages++
	return v.Index
}

// ClearLocal discards every local variable, to be called once per
// statement block before it is compiled.
func (vt *VariableTable) ClearLocal() {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	vt.local = newVarTable()
}

// AssignLocal records an assignment to a local variable, declaring a
// new slot on first use. It returns an error once MaxLocalVars slots
// are already in use.
func (vt *VariableTable) AssignLocal(name string) (uint32, error) {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	v, ok := vt.local.get(name)
	if !ok {
		if len(vt.local.order) >= MaxLocalVars {
			return 0, fmt.Errorf("too many local variables in one statement block (max %d)", MaxLocalVars)
		}
		v = vt.local.declare(name, false)
	}
	v.Assignments++
	return v.Index, nil
}

// UseLocal records a read of a local variable. Unlike globals, a local
// read before any assignment within the same block is an error: local
// slots are block-scoped and garbage otherwise.
func (vt *VariableTable) UseLocal(name string) (uint32, error) {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	v, ok := vt.local.get(name)
	if !ok {
		return 0, fmt.Errorf("usage of unassigned local variable %q", name)
	}
	v.Usages++
	return v.Index, nil
}

// UnassignedGlobals returns every global variable that has usages but
// no assignments, for the post-compile diagnostic pass.
func (vt *VariableTable) UnassignedGlobals() []*Variable {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	var out []*Variable
	for _, v := range vt.global.order {
		if v.Usages > 0 && v.Assignments == 0 && !v.Compat {
			out = append(out, v)
		}
	}
	return out
}

// UnusedGlobals returns every global variable that has been assigned
// but never read, for the post-compile diagnostic pass.
func (vt *VariableTable) UnusedGlobals() []*Variable {
	vt.mu.Lock()
	defer vt.mu.Unlock()
	var out []*Variable
	for _, v := range vt.global.order {
		if v.Assignments > 0 && v.Usages == 0 {
			out = append(out, v)
		}
	}
	return out
}
