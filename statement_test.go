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

type testSeqValue []Value

func (v testSeqValue) Kind() Kind                    { return KindSeq }
func (v testSeqValue) Int() (int64, bool)             { return 0, false }
func (v testSeqValue) Float() (float64, bool)         { return 0, false }
func (v testSeqValue) Str() (string, bool)            { return "", false }
func (v testSeqValue) Seq() ([]Value, bool)           { return []Value(v), true }
func (v testSeqValue) Field(name string) (Value, bool) { return nil, false }
func (v testSeqValue) Len() int                        { return len(v) }

func record(opcode int64, operands ...Value) Value {
	fields := append([]Value{testIntValue(opcode)}, operands...)
	return testSeqValue(fields)
}

func TestCompileStatementEncodesOpcodeAndOperands(t *testing.T) {
	ctx := newTestOperandContext()
	table := NewOpcodeTable(ctx.Reporter)

	stmt, err := CompileStatement(testIntValue(7), []Value{testIntValue(1), testIntValue(2)}, ctx, table)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), stmt.Opcode)
	assert.Equal(t, "7 2 1 2", stmt.Encode())
}

func TestCompileStatementTruncatesExcessOperands(t *testing.T) {
	ctx := newTestOperandContext()
	table := NewOpcodeTable(ctx.Reporter)

	operands := make([]Value, MaxOperands+5)
	for i := range operands {
		operands[i] = testIntValue(int64(i))
	}
	stmt, err := CompileStatement(testIntValue(1), operands, ctx, table)
	require.NoError(t, err)
	assert.Len(t, stmt.Operands, MaxOperands)
}

func TestCompileBlockBalancesTryDepth(t *testing.T) {
	ctx := newTestOperandContext()
	table := NewOpcodeTable(ctx.Reporter)
	require.NoError(t, table.Register(100, OpFlagCF, 1))
	require.NoError(t, table.Register(101, OpFlagCF, -1))

	block := testSeqValue{
		record(100),
		record(1, testIntValue(5)),
		record(101),
	}

	compiled, err := CompileBlock(block, ctx, table)
	require.NoError(t, err)
	assert.Len(t, compiled.Statements, 3)
	assert.Equal(t, "3 100 0 1 1 5 101 0", EncodeBlock(compiled))
	assert.Empty(t, ctx.Reporter.Diagnostics(), "a balanced try block raises no try-depth diagnostic")
}

func TestCompileBlockClearsLocalsFromPriorBlock(t *testing.T) {
	ctx := newTestOperandContext()
	table := NewOpcodeTable(ctx.Reporter)

	_, err := ctx.Variables.AssignLocal("leftover")
	require.NoError(t, err)

	block := testSeqValue{record(1)}
	_, err = CompileBlock(block, ctx, table)
	require.NoError(t, err)

	_, err = ctx.Variables.UseLocal("leftover")
	assert.Error(t, err, "CompileBlock must clear locals from any previous block before compiling")
}
