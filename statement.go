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
	"strconv"
	"strings"
)

// MaxOperands is the highest operand count a single statement may
// carry before the compiler starts truncating. This matches the fixed
// operand buffer size the original compiler allocates per statement.
const MaxOperands = 16

// Statement is one compiled opcode plus its tagged operands, ready to
// be written as "<opcode> <count> <operand>...".
type Statement struct {
	Opcode   uint32
	Operands []int64
}

// Encode renders the statement in the exact token layout every emitter
// writes it in.
func (s Statement) Encode() string {
	parts := make([]string, 0, len(s.Operands)+2)
	parts = append(parts, strconv.Itoa(int(s.Opcode)), strconv.Itoa(len(s.Operands)))
	for _, o := range s.Operands {
		parts = append(parts, strconv.FormatInt(o, 10))
	}
	return strings.Join(parts, " ")
}

// CompileStatement parses one module-definition statement record
// (an opcode value followed by its operand values) against table and
// ctx's variable/identifier/string tables.
func CompileStatement(opcodeVal Value, operandVals []Value, ctx *OperandContext, table *OpcodeTable) (Statement, error) {
	rawOp, ok := opcodeVal.Int()
	if !ok {
		return Statement{}, fmt.Errorf("statement opcode is not numeric")
	}
	opcode := uint32(rawOp) & OpcodeMask

	if len(operandVals) > MaxOperands {
		ctx.Reporter.Warnf(ctx.Context, "statement has %d operands, truncating to %d", len(operandVals), MaxOperands)
		operandVals = operandVals[:MaxOperands]
	}

	operands := make([]int64, 0, len(operandVals))
	for i, ov := range operandVals {
		octx := *ctx
		octx.IsLHS = i == 0 && table.IsLHS(opcode)
		parsed, err := ParseOperand(ov, &octx)
		if err != nil {
			return Statement{}, fmt.Errorf("%s: operand %d: %w", ctx.Context, i, err)
		}
		operands = append(operands, parsed)
	}
	return Statement{Opcode: opcode, Operands: operands}, nil
}

// Block is a compiled statement block: the statement list a trigger or
// script body evaluates top to bottom, with its own local variable
// scope and try-block nesting.
type Block struct {
	Statements []Statement
}

// CompileBlock compiles every statement in blockVal (a sequence of
// [opcode, operand...] records), clearing local variables first since
// each block gets a fresh local scope, and verifying try-block opcodes
// balance by the end of the block.
func CompileBlock(blockVal Value, ctx *OperandContext, table *OpcodeTable) (Block, error) {
	ctx.Variables.ClearLocal()

	records, ok := blockVal.Seq()
	if !ok {
		return Block{}, fmt.Errorf("%s: statement block is not a sequence", ctx.Context)
	}

	var depth TryDepthTracker
	block := Block{Statements: make([]Statement, 0, len(records))}
	for i, rec := range records {
		fields, ok := rec.Seq()
		if !ok || len(fields) == 0 {
			return Block{}, fmt.Errorf("%s: statement %d is not a well-formed record", ctx.Context, i)
		}
		opcodeVal := fields[0]
		operandVals := fields[1:]

		stmtCtx := *ctx
		stmtCtx.Context = fmt.Sprintf("%s, statement %d", ctx.Context, i)
		stmt, err := CompileStatement(opcodeVal, operandVals, &stmtCtx, table)
		if err != nil {
			return Block{}, err
		}
		if err := depth.Apply(table, stmt.Opcode); err != nil {
			ctx.Reporter.Warnf(stmtCtx.Context, "%v", err)
		}
		block.Statements = append(block.Statements, stmt)
	}
	if !depth.Balanced() {
		ctx.Reporter.Warnf(ctx.Context, "statement block ends with %d unclosed try block(s)", depth.Depth())
	}
	return block, nil
}

// EncodeBlock renders a block as "<count> <statement> <statement> ...",
// the form WriteStatementBlock and the trigger writers emit: a leading
// statement count, then each statement's own encoded form.
func EncodeBlock(b Block) string {
	parts := make([]string, 0, len(b.Statements)+1)
	parts = append(parts, strconv.Itoa(len(b.Statements)))
	for _, s := range b.Statements {
		parts = append(parts, s.Encode())
	}
	return strings.Join(parts, " ")
}
