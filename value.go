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

// Kind is the dynamic type of a Value as seen by the compiler core.
type Kind int

// The kinds a definition module can hand the compiler. There is no
// boolean kind: the source language represents truth as 0/1 integers.
const (
	KindNil Kind = iota
	KindInt
	KindFloat
	KindString
	KindSeq
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSeq:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is the narrow view the compiler core has of a definition-module
// record. It stands in for the host evaluator's native object model
// (lists, tuples, numbers, strings) without tying the core to any one
// evaluator implementation. Loader implementations adapt their own
// in-memory representation to this interface once; everything downstream
// of the Loader only ever sees a Value.
type Value interface {
	// Kind reports the dynamic type of the value.
	Kind() Kind
	// Int returns the value as a 64-bit integer, and whether the value
	// is numeric (Int or Float; Float is truncated toward zero).
	Int() (int64, bool)
	// Float returns the value as a float64, and whether the value is
	// numeric.
	Float() (float64, bool)
	// Str returns the value as a string, and whether the value is a
	// string.
	Str() (string, bool)
	// Seq returns the value's elements, and whether the value is a
	// sequence (list or tuple in the source language).
	Seq() ([]Value, bool)
	// Field looks up a named attribute of an object-like value (the
	// stat objects of troop and item records are read this way), or
	// indexes into a sequence by a position formatted as a decimal
	// string ("0", "1", ...). Returns ok=false if the attribute is
	// absent, name isn't a valid index, or the value has no fields.
	Field(name string) (Value, bool)
	// Len returns the number of elements in a sequence, or 0 otherwise.
	Len() int
}

// At returns the i'th element of a sequence Value, or an error.
func At(v Value, i int) (Value, error) {
	seq, ok := v.Seq()
	if !ok {
		return nil, fmt.Errorf("not a sequence: %v", v)
	}
	if i < 0 || i >= len(seq) {
		return nil, fmt.Errorf("index %d out of range (len %d)", i, len(seq))
	}
	return seq[i], nil
}

// AtOr returns the i'th element of a sequence Value, or def if the
// sequence is too short. This is the Go shape of the many "if
// record.Len() > N" optional trailing field checks throughout the
// entity emitters.
func AtOr(v Value, i int, def Value) Value {
	seq, ok := v.Seq()
	if !ok || i < 0 || i >= len(seq) {
		return def
	}
	return seq[i]
}

// Has reports whether a sequence Value has at least n+1 elements, i.e.
// whether index n is present.
func Has(v Value, n int) bool {
	seq, ok := v.Seq()
	return ok && n < len(seq)
}
