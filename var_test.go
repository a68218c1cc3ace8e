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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalVariablesPersistAcrossStatementBlocks(t *testing.T) {
	vt := NewVariableTable(NewReporter(false, true))

	idx := vt.AssignGlobal("g_gold")
	vt.ClearLocal() // simulate moving to the next statement block
	idx2 := vt.UseGlobal("g_gold")

	assert.Equal(t, idx, idx2)
}

func TestLocalVariablesAreClearedBetweenBlocks(t *testing.T) {
	vt := NewVariableTable(NewReporter(false, true))

	_, err := vt.AssignLocal("tmp")
	require.NoError(t, err)
	_, err = vt.UseLocal("tmp")
	require.NoError(t, err)

	vt.ClearLocal()

	_, err = vt.UseLocal("tmp")
	assert.Error(t, err, "a local variable must not survive ClearLocal")
}

func TestUseOfUnassignedLocalVariableIsAnError(t *testing.T) {
	vt := NewVariableTable(NewReporter(false, true))

	_, err := vt.UseLocal("never_assigned")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unassigned local variable")
}

func TestLocalVariableLimitIsEnforced(t *testing.T) {
	vt := NewVariableTable(NewReporter(false, true))

	for i := 0; i < MaxLocalVars; i++ {
		_, err := vt.AssignLocal(nthLocalName(i))
		require.NoError(t, err)
	}

	_, err := vt.AssignLocal("one_too_many")
	assert.Error(t, err)
}

func nthLocalName(i int) string {
	return "local_" + strings.Repeat("x", i+1)
}

func TestLoadGlobalsPreservesCompatSlots(t *testing.T) {
	vt := NewVariableTable(NewReporter(false, true))
	require.NoError(t, vt.LoadGlobals(strings.NewReader("g_gold 0\ng_reputation 1\n")))

	unassigned := vt.UnassignedGlobals()
	assert.Empty(t, unassigned, "compat-loaded globals are not flagged as unassigned even though nothing in this run assigns them")

	idx := vt.UseGlobal("g_gold")
	assert.Equal(t, uint32(0), idx)
}

func TestWriteGlobalsRoundTripsThroughLoadGlobals(t *testing.T) {
	vt := NewVariableTable(NewReporter(false, true))
	vt.AssignGlobal("g_gold")
	vt.AssignGlobal("g_reputation")

	var buf strings.Builder
	require.NoError(t, vt.WriteGlobals(&buf))

	vt2 := NewVariableTable(NewReporter(false, true))
	require.NoError(t, vt2.LoadGlobals(strings.NewReader(buf.String())))

	idx, ok := vt2.global.get("g_gold")
	require.True(t, ok)
	assert.Equal(t, uint32(0), idx.Index)
}
