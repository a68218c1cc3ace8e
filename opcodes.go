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

import "fmt"

// MaxOpcodes bounds the opcode space: Register refuses any opcode whose
// masked number is MaxOpcodes or above.
const MaxOpcodes = 8192

// OpcodeMask is applied to every operand's numeric value before it is
// treated as an opcode number, matching ModuleSystem.h's OPCODE macro.
const OpcodeMask = 0xFFFFFFF

// Tag values OR'd into the high byte of an operand's 64-bit encoding to
// mark what kind of reference it carries, per ModuleSystem.h's
// opmask_* constants.
const (
	OperandTagRegister    int64 = 0x01 << 56
	OperandTagGlobalVar   int64 = 0x02 << 56
	OperandTagLocalVar    int64 = 0x11 << 56
	OperandTagQuickString int64 = 0x16 << 56
)

// operandTagMask isolates the tag byte from a tagged operand.
const operandTagMask int64 = 0xFF << 56

// operandPayloadMask isolates the 56-bit payload below the tag byte.
const operandPayloadMask int64 = (1 << 56) - 1

// OpFlag records per-opcode metadata bits read from header_operations.
type OpFlag uint8

const (
	// OpFlagLHS marks an opcode whose first operand is an assignment
	// target (a "left hand side"): the operand parser must allow an
	// unassigned local variable there instead of raising "usage of
	// unassigned local variable".
	OpFlagLHS OpFlag = 1 << iota
	// OpFlagGHS marks an opcode whose first operand is a global variable
	// assignment target. The flag is stored and reported by IsGHS, but
	// operand parsing does not consult it: a global in operand 0 counts
	// as an assignment whenever the opcode has OpFlagLHS.
	OpFlagGHS
	// OpFlagCF marks a control-flow opcode (a try/else/end_try family
	// member) that adjusts the current try-block depth.
	OpFlagCF
)

func (f OpFlag) has(bit OpFlag) bool { return f&bit != 0 }

// OpMeta is one opcode's registered metadata.
type OpMeta struct {
	Flags      OpFlag
	DepthDelta int // try-block depth change a CF opcode applies, e.g. +1 for try_*, -1 for end_try
}

// OpcodeTable is the fixed-size opcode metadata table loaded from
// header_operations, indexed directly by opcode number (not through a
// map) so statement compilation never pays a hashing cost per operand,
// matching ModuleSystem.h's m_operations[max_num_opcodes] array.
type OpcodeTable struct {
	meta     [MaxOpcodes]OpMeta
	defined  [MaxOpcodes]bool
	reporter *Reporter
}

// NewOpcodeTable returns an empty OpcodeTable reporting through r.
func NewOpcodeTable(r *Reporter) *OpcodeTable {
	return &OpcodeTable{reporter: r}
}

// Register records metadata for opcode, masked to the valid opcode
// range first. Registering the same opcode twice overwrites the
// earlier entry and logs a warning, since header_operations listing
// the same opcode name twice is almost certainly a definition error.
func (t *OpcodeTable) Register(opcode uint32, flags OpFlag, depthDelta int) error {
	op := opcode & OpcodeMask
	if op >= MaxOpcodes {
		return fmt.Errorf("opcode %d exceeds max_num_opcodes (%d)", op, MaxOpcodes)
	}
	if t.defined[op] {
		t.reporter.Warnf(fmt.Sprintf("opcode %d", op), "redefining previously registered opcode")
	}
	t.meta[op] = OpMeta{Flags: flags, DepthDelta: depthDelta}
	t.defined[op] = true
	return nil
}

// Lookup returns the metadata registered for opcode, or the zero value
// and false if it was never registered.
func (t *OpcodeTable) Lookup(opcode uint32) (OpMeta, bool) {
	op := opcode & OpcodeMask
	if op >= MaxOpcodes || !t.defined[op] {
		return OpMeta{}, false
	}
	return t.meta[op], true
}

// IsLHS reports whether opcode's first operand position is an
// assignment target.
func (t *OpcodeTable) IsLHS(opcode uint32) bool {
	m, ok := t.Lookup(opcode)
	return ok && m.Flags.has(OpFlagLHS)
}

// IsGHS reports whether opcode was registered with OpFlagGHS.
func (t *OpcodeTable) IsGHS(opcode uint32) bool {
	m, ok := t.Lookup(opcode)
	return ok && m.Flags.has(OpFlagGHS)
}

// IsCF reports whether opcode is a control-flow opcode affecting
// try-block depth.
func (t *OpcodeTable) IsCF(opcode uint32) bool {
	m, ok := t.Lookup(opcode)
	return ok && m.Flags.has(OpFlagCF)
}

// TryDepthTracker walks a statement block's opcodes in order, applying
// each control-flow opcode's DepthDelta to a running try-block depth
// and flagging any CF opcode that would take the depth below zero (a
// try-block closer with no matching opener, e.g. a stray end_try).
type TryDepthTracker struct {
	depth      int
	failedAtZero bool
}

// Apply advances the tracker past one statement's opcode. It returns
// an error the first time a CF opcode's delta would drive depth
// negative; the tracker still applies the delta (clamped at zero) so
// later statements in the same block are checked against a sane depth.
func (d *TryDepthTracker) Apply(table *OpcodeTable, opcode uint32) error {
	m, ok := table.Lookup(opcode)
	if !ok || !m.Flags.has(OpFlagCF) {
		return nil
	}
	d.depth += m.DepthDelta
	if d.depth < 0 {
		d.depth = 0
		d.failedAtZero = true
		return fmt.Errorf("control-flow opcode %d closes a try block that was never opened", opcode&OpcodeMask)
	}
	return nil
}

// Depth returns the current try-block nesting depth.
func (d *TryDepthTracker) Depth() int { return d.depth }

// Balanced reports whether the block ended with every try block closed
// and no close-without-open ever observed.
func (d *TryDepthTracker) Balanced() bool { return d.depth == 0 && !d.failedAtZero }
