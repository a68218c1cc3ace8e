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

// OperandContext bundles the tables ParseOperand consults: the
// identifier Registry (for cross-module entity references), the
// VariableTable (for $global and :local references), and the
// QuickStringPool (for literal display text).
type OperandContext struct {
	Registry  *Registry
	Variables *VariableTable
	Strings   *QuickStringPool
	Reporter  *Reporter
	// Context names the statement being compiled, for diagnostics.
	Context string
	// IsLHS is true while parsing operand 0 of an opcode registered
	// with OpFlagLHS: an unassigned local variable there is a new
	// assignment target, not a use-before-assignment error.
	IsLHS bool
}

// ParseOperand converts one already-evaluated module-definition value
// into the tagged int64 wire form the rest of the compiler and every
// emitter works with, following ModuleSystem.cpp's ParseOperand.
func ParseOperand(v Value, ctx *OperandContext) (int64, error) {
	switch v.Kind() {
	case KindInt:
		i, _ := v.Int()
		return i, nil
	case KindFloat:
		f, _ := v.Float()
		return int64(f), nil
	case KindString:
		s, _ := v.Str()
		return parseOperandString(s, ctx)
	default:
		return 0, fmt.Errorf("operand has unsupported kind %s", v.Kind())
	}
}

func parseOperandString(s string, ctx *OperandContext) (int64, error) {
	switch {
	case strings.HasPrefix(s, "reg"):
		numStr := strings.TrimPrefix(s, "reg")
		n, err := strconv.ParseInt(numStr, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("malformed register operand %q", s)
		}
		return OperandTagRegister | (n & operandPayloadMask), nil

	case strings.HasPrefix(s, "$"):
		name := strings.TrimPrefix(s, "$")
		var idx uint32
		if ctx.IsLHS {
			idx = ctx.Variables.AssignGlobal(name)
		} else {
			idx = ctx.Variables.UseGlobal(name)
		}
		return OperandTagGlobalVar | (int64(idx) & operandPayloadMask), nil

	case strings.HasPrefix(s, ":"):
		name := strings.TrimPrefix(s, ":")
		var idx uint32
		var err error
		if ctx.IsLHS {
			idx, err = ctx.Variables.AssignLocal(name)
		} else {
			idx, err = ctx.Variables.UseLocal(name)
		}
		if err != nil {
			ctx.Reporter.Errorf(ctx.Context, "%v", err)
			return 0, err
		}
		return OperandTagLocalVar | (int64(idx) & operandPayloadMask), nil

	default:
		if prefix, name, ok := splitEntityPrefix(s); ok {
			idx := ctx.Registry.Resolve(prefix, name)
			tag := ctx.Registry.Tag(prefix)
			return tag | (int64(idx) & operandPayloadMask), nil
		}
		key := ctx.Strings.GetOrCreate(s, s)
		idx := ctx.Registry.Resolve("qstr", key)
		return OperandTagQuickString | (int64(idx) & operandPayloadMask), nil
	}
}

// splitEntityPrefix recognizes identifier-shaped operand text
// ("trp_player", "itm_practice_sword") and splits it, on the first
// underscore, into the category prefix and the bare entity name the
// Registry actually declares entities under. Anything that doesn't
// look like one of these underscored identifiers is treated as literal
// display text bound for the quick string pool instead.
func splitEntityPrefix(s string) (prefix, name string, ok bool) {
	i := strings.IndexByte(s, '_')
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	prefix = s[:i]
	for _, r := range prefix {
		if r < 'a' || r > 'z' {
			return "", "", false
		}
	}
	return prefix, s[i+1:], true
}

// OperandTag extracts the tag byte from a parsed operand.
func OperandTag(v int64) int64 { return v & operandTagMask }

// OperandPayload extracts the 56-bit payload from a tagged operand.
func OperandPayload(v int64) int64 { return v & operandPayloadMask }

// IsTaggedOperand reports whether v carries any non-zero tag byte,
// whether one of the four fixed tags (register, global, local, quick
// string) or a per-module entity tag assigned through Registry.SetTag,
// as opposed to being a plain literal number.
func IsTaggedOperand(v int64) bool {
	return OperandTag(v) != 0
}
