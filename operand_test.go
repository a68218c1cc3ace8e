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

type testStringValue string

func (v testStringValue) Kind() Kind                    { return KindString }
func (v testStringValue) Int() (int64, bool)             { return 0, false }
func (v testStringValue) Float() (float64, bool)         { return 0, false }
func (v testStringValue) Str() (string, bool)            { return string(v), true }
func (v testStringValue) Seq() ([]Value, bool)           { return nil, false }
func (v testStringValue) Field(name string) (Value, bool) { return nil, false }
func (v testStringValue) Len() int                        { return 0 }

type testIntValue int64

func (v testIntValue) Kind() Kind                    { return KindInt }
func (v testIntValue) Int() (int64, bool)             { return int64(v), true }
func (v testIntValue) Float() (float64, bool)         { return float64(v), true }
func (v testIntValue) Str() (string, bool)            { return "", false }
func (v testIntValue) Seq() ([]Value, bool)           { return nil, false }
func (v testIntValue) Field(name string) (Value, bool) { return nil, false }
func (v testIntValue) Len() int                        { return 0 }

func newTestOperandContext() *OperandContext {
	r := NewReporter(false, true)
	return &OperandContext{
		Registry:  NewRegistry(r),
		Variables: NewVariableTable(r),
		Strings:   NewQuickStringPool(),
		Reporter:  r,
		Context:   "test",
	}
}

func TestParseOperandLiteralInt(t *testing.T) {
	ctx := newTestOperandContext()
	v, err := ParseOperand(testIntValue(42), ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
	assert.False(t, IsTaggedOperand(v))
}

func TestParseOperandRegister(t *testing.T) {
	ctx := newTestOperandContext()
	v, err := ParseOperand(testStringValue("reg3"), ctx)
	require.NoError(t, err)
	assert.Equal(t, OperandTagRegister, OperandTag(v))
	assert.Equal(t, int64(3), OperandPayload(v))
}

func TestParseOperandGlobalVariable(t *testing.T) {
	ctx := newTestOperandContext()
	v, err := ParseOperand(testStringValue("$g_gold"), ctx)
	require.NoError(t, err)
	assert.Equal(t, OperandTagGlobalVar, OperandTag(v))
}

func TestParseOperandLocalVariableUseBeforeAssignIsError(t *testing.T) {
	ctx := newTestOperandContext()
	_, err := ParseOperand(testStringValue(":temp"), ctx)
	assert.Error(t, err)
}

func TestParseOperandLocalVariableLHSAssigns(t *testing.T) {
	ctx := newTestOperandContext()
	ctx.IsLHS = true
	v, err := ParseOperand(testStringValue(":temp"), ctx)
	require.NoError(t, err)
	assert.Equal(t, OperandTagLocalVar, OperandTag(v))

	ctx.IsLHS = false
	v2, err := ParseOperand(testStringValue(":temp"), ctx)
	require.NoError(t, err)
	assert.Equal(t, v, v2, "a read of an already-assigned local variable reuses its slot")
}

func TestParseOperandEntityIdentifierResolvesThroughRegistry(t *testing.T) {
	ctx := newTestOperandContext()
	// "trp_player" must resolve under the bare name "player" in the
	// "trp" category, per the header's "split on the first underscore"
	// rule: a module declares its entities by bare name, so an operand
	// referencing one has to strip the prefix the same way to land on
	// the same registry slot.
	v, err := ParseOperand(testStringValue("trp_player"), ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), OperandPayload(v))
	assert.Equal(t, uint32(0), ctx.Registry.Resolve("trp", "player"))

	// Once the category has a declared tag, referencing it again ORs
	// that tag into the operand's high byte.
	ctx2 := newTestOperandContext()
	ctx2.Registry.SetTag("trp", 4<<56)
	v2, err := ParseOperand(testStringValue("trp_player"), ctx2)
	require.NoError(t, err)
	assert.True(t, IsTaggedOperand(v2))
	assert.Equal(t, int64(4<<56), OperandTag(v2))
	assert.Equal(t, int64(0), OperandPayload(v2))
}

func TestParseOperandEntityIdentifierSplitsOnFirstUnderscoreOnly(t *testing.T) {
	ctx := newTestOperandContext()
	v, err := ParseOperand(testStringValue("itm_practice_sword"), ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(OperandPayload(v)), ctx.Registry.Resolve("itm", "practice_sword"))
}

func TestParseOperandLiteralTextInternsAsQuickString(t *testing.T) {
	ctx := newTestOperandContext()
	v, err := ParseOperand(testStringValue("You have won the battle!"), ctx)
	require.NoError(t, err)
	assert.Equal(t, OperandTagQuickString, OperandTag(v))
}
