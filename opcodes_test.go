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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	opTryBegin = 100
	opTryEnd   = 101
	opNormal   = 1
)

func newTestOpcodeTable(t *testing.T) *OpcodeTable {
	t.Helper()
	table := NewOpcodeTable(NewReporter(false, true))
	require.NoError(t, table.Register(opTryBegin, OpFlagCF, 1))
	require.NoError(t, table.Register(opTryEnd, OpFlagCF, -1))
	require.NoError(t, table.Register(opNormal, 0, 0))
	return table
}

func TestTryDepthTrackerBalancesNestedTryBlocks(t *testing.T) {
	table := newTestOpcodeTable(t)
	var d TryDepthTracker

	require.NoError(t, d.Apply(table, opTryBegin))
	require.NoError(t, d.Apply(table, opTryBegin))
	assert.Equal(t, 2, d.Depth())
	require.NoError(t, d.Apply(table, opTryEnd))
	require.NoError(t, d.Apply(table, opTryEnd))
	assert.True(t, d.Balanced())
}

func TestTryDepthTrackerFlagsCloseWithoutOpen(t *testing.T) {
	table := newTestOpcodeTable(t)
	var d TryDepthTracker

	err := d.Apply(table, opTryEnd)
	assert.Error(t, err)
	assert.False(t, d.Balanced())
}

func TestTryDepthTrackerIgnoresNonControlFlowOpcodes(t *testing.T) {
	table := newTestOpcodeTable(t)
	var d TryDepthTracker

	require.NoError(t, d.Apply(table, opNormal))
	assert.Equal(t, 0, d.Depth())
	assert.True(t, d.Balanced())
}

func TestOpcodeTableRejectsOutOfRangeOpcode(t *testing.T) {
	table := NewOpcodeTable(NewReporter(false, true))
	err := table.Register(MaxOpcodes, 0, 0)
	assert.Error(t, err)
}

func TestOpcodeMaskTruncatesTo28Bits(t *testing.T) {
	table := NewOpcodeTable(NewReporter(false, true))
	require.NoError(t, table.Register(5, OpFlagLHS, 0))
	assert.True(t, table.IsLHS(5))
	assert.True(t, table.IsLHS(5|(1<<30)), "high bits above the opcode mask must not affect lookup")
}
